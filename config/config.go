package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 服务运行配置，全部来自环境变量(可由 .env 提供)
type Config struct {
	Port    string
	GinMode string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	JWTSecret string

	LogLevel string
	LogDir   string

	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// Load 读取 .env(不存在时忽略)和环境变量
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8081"),
		GinMode:       getEnv("GIN_MODE", "release"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "series"),
		DBPath:        getEnv("DB_PATH", "series.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogDir:        getEnv("LOG_DIR", "logs"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultPort(cfg.DBDriver)
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, errors.New("PORT must be numeric")
	}
	return cfg, nil
}

// Addr 返回 gin 监听地址
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func defaultPort(driver string) string {
	switch driver {
	case "postgres":
		return "5432"
	default:
		return "3306"
	}
}
