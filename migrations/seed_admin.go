package migrations

import (
	"context"
	"errors"
	"fmt"

	"seriesapi/models"
	"seriesapi/services/activity"
	"seriesapi/utils"

	"gorm.io/gorm"
)

// ErrAdminConflict 配置的管理员用户名或邮箱已属于其他账号
var ErrAdminConflict = errors.New("admin username or email already registered")

// SeedAdmin 在还没有管理员时按配置创建一个，用户名或密码为空时跳过
// 返回是否新建了管理员
func SeedAdmin(ctx context.Context, db *gorm.DB, activities *activity.ActivityService, username, password, email string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询管理员失败: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if email == "" {
		email = username + "@localhost"
	}
	admin := models.User{
		Username: username,
		Password: password,
		Email:    email,
		Role:     models.RoleAdmin,
	}
	if err := admin.HashPassword(); err != nil {
		return false, fmt.Errorf("密码加密失败: %w", err)
	}

	// 用户名或邮箱已被注册时不提升已有账号，该账号的密码不属于运维方
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, fmt.Errorf("%w: %s / %s", ErrAdminConflict, username, email)
		}
		return false, fmt.Errorf("创建管理员失败: %w", err)
	}

	utils.LogInfo(fmt.Sprintf("已创建管理员 %s", username))
	activities.RecordActivity(ctx, models.ActivitySystem, fmt.Sprintf("初始化管理员 \"%s\"", username))
	return true, nil
}
