package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"seriesapi/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken 令牌缺失、过期或签名不符
var ErrInvalidToken = errors.New("invalid token")

// randomSecretBytes 编码后为 48 个字符
const randomSecretBytes = 36

// RandomSecret 生成进程级临时签名密钥，未配置 JWT_SECRET 时使用，重启后旧令牌失效
func RandomSecret() (string, error) {
	b := make([]byte, randomSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("生成签名密钥失败: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// TokenService 签发和校验 HS256 令牌
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Generate 为用户签发令牌，载荷包含 user_id、role 和 exp
func (s *TokenService) Generate(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Parse 校验令牌并返回载荷
func (s *TokenService) Parse(tokenString string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserID 从载荷中取出用户ID，JSON 数字解码后为 float64
func UserID(claims jwt.MapClaims) (uint, bool) {
	v, ok := claims["user_id"].(float64)
	if !ok || v <= 0 {
		return 0, false
	}
	return uint(v), true
}

// Role 从载荷中取出角色
func Role(claims jwt.MapClaims) string {
	role, _ := claims["role"].(string)
	return role
}
