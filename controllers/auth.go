package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"seriesapi/middleware"
	"seriesapi/models"
	"seriesapi/services/activity"
	"seriesapi/services/auth"
	"seriesapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthController struct {
	DB              *gorm.DB
	tokens          *auth.TokenService
	activityService *activity.ActivityService
}

func NewAuthController(db *gorm.DB, tokens *auth.TokenService, activityService *activity.ActivityService) *AuthController {
	return &AuthController{
		DB:              db,
		tokens:          tokens,
		activityService: activityService,
	}
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Role  string `json:"role" example:"regular"`
}

// Register godoc
// @Summary      用户注册
// @Description  注册新用户，角色固定为 regular
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        user  body      models.RegisterRequest  true  "注册信息"
// @Success      201   {object}  models.User
// @Failure      400   {object}  Response
// @Router       /register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user := models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     models.RoleRegular,
	}
	if err := user.HashPassword(); err != nil {
		utils.LogError("密码加密失败", err)
		c.JSON(http.StatusInternalServerError, Response{Error: "Internal server error"})
		return
	}

	if err := ac.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, Response{Error: "Username or email already exists"})
			return
		}
		utils.LogError("创建用户失败", err)
		c.JSON(http.StatusInternalServerError, Response{Error: "Internal server error"})
		return
	}

	ac.activityService.RecordActivity(c.Request.Context(), models.ActivityUser, fmt.Sprintf("新用户 \"%s\" 注册成功", user.Username))
	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary      用户登录
// @Description  用户登录并获取token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "登录信息"
// @Success      200    {object}  LoginResponse
// @Failure      400    {object}  Response
// @Failure      401    {object}  Response
// @Router       /login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	if err := ac.DB.WithContext(c.Request.Context()).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("查询用户失败", err)
		}
		c.JSON(http.StatusUnauthorized, Response{Error: "Invalid username or password"})
		return
	}
	if err := user.ComparePassword(req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, Response{Error: "Invalid username or password"})
		return
	}

	token, err := ac.tokens.Generate(&user)
	if err != nil {
		utils.LogError("生成令牌失败", err)
		c.JSON(http.StatusInternalServerError, Response{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		Role:  user.Role,
	})
}

// GetUserInfo godoc
// @Summary      获取当前用户信息
// @Tags         认证
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  Response
// @Security     Bearer
// @Router       /user/info [get]
func (ac *AuthController) GetUserInfo(c *gin.Context) {
	value, _ := c.Get(middleware.ClaimsKey)
	claims, _ := value.(jwt.MapClaims)
	userID, ok := auth.UserID(claims)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Error: "Invalid token claims"})
		return
	}

	var user models.User
	if err := ac.DB.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{Error: "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
