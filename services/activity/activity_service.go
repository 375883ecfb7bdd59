package activity

import (
	"context"

	"seriesapi/models"
	"seriesapi/utils"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ActivityService 活动记录服务
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// RecordActivity 记录新的活动，失败只记日志，不影响调用方的主流程
func (s *ActivityService) RecordActivity(ctx context.Context, activityType string, content string) error {
	activity := models.Activity{
		Type:    activityType,
		Content: content,
	}

	if err := s.db.WithContext(ctx).Create(&activity).Error; err != nil {
		utils.LogError("记录活动失败", err)
		return err
	}
	return nil
}

// GetRecentActivities 获取最近的活动记录，limit 超出范围时使用默认值或上限
func (s *ActivityService) GetRecentActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	activities := []models.Activity{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&activities).Error; err != nil {
		utils.LogError("获取最近活动记录失败", err)
		return nil, err
	}
	return activities, nil
}
