package main

import (
	"context"
	"log"
	"time"

	"seriesapi/config"
	_ "seriesapi/docs" // 导入 swagger 生成的文档
	"seriesapi/migrations"
	"seriesapi/repository"
	"seriesapi/router"
	"seriesapi/services/activity"
	"seriesapi/services/auth"
	"seriesapi/utils"

	"github.com/gin-gonic/gin"
)

// @title           剧集目录 API
// @version         1.0
// @description     平台、类型、剧集、季和单集的增删改查接口

// @host      localhost:8081
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description 请在此输入 Bearer token
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	if err := utils.InitLogger(cfg.LogDir, cfg.LogLevel); err != nil {
		log.Fatal("Error initializing logger:", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.LogError("Error connecting to database", err)
		log.Fatal(err)
	}
	utils.LogInfo("数据库连接成功")

	secret := cfg.JWTSecret
	if secret == "" {
		secret, err = auth.RandomSecret()
		if err != nil {
			log.Fatal("Error generating JWT secret:", err)
		}
		utils.LogWarn("未设置 JWT_SECRET，已生成临时密钥，重启后已签发的令牌将失效")
	}

	activityService := activity.NewActivityService(db)
	if _, err := migrations.SeedAdmin(context.Background(), db, activityService,
		cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		utils.LogError("初始化管理员失败", err)
	}

	gin.SetMode(cfg.GinMode)
	r := router.Setup(router.Deps{
		DB:       db,
		Repos:    repository.New(db),
		Tokens:   auth.NewTokenService(secret, 24*time.Hour),
		Activity: activityService,
	})

	utils.LogInfo("服务启动，监听 " + cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		utils.LogError("服务退出", err)
		log.Fatal(err)
	}
}
