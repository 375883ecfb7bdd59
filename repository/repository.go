// Package repository 封装剧集目录的数据访问，控制器只依赖这里定义的接口。
package repository

import (
	"context"
	"errors"

	"seriesapi/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrMultipleResults 期望唯一结果时查到多条记录
	ErrMultipleResults = errors.New("multiple records found")
	// ErrDuplicate 违反唯一约束
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidReference 引用的父记录不存在
	ErrInvalidReference = errors.New("invalid reference")
)

type PlatformRepository interface {
	List(ctx context.Context) ([]models.Platform, error)
	Get(ctx context.Context, id uint) (*models.Platform, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, p *models.Platform) error
	Update(ctx context.Context, p *models.Platform) error
	Delete(ctx context.Context, id uint) error
}

type GenderRepository interface {
	List(ctx context.Context) ([]models.Gender, error)
	Get(ctx context.Context, id uint) (*models.Gender, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Gender, error)
	Create(ctx context.Context, g *models.Gender) error
	Update(ctx context.Context, g *models.Gender) error
	Delete(ctx context.Context, id uint) error
}

type SerieRepository interface {
	List(ctx context.Context) ([]models.Serie, error)
	Get(ctx context.Context, id uint) (*models.Serie, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindByPlatform(ctx context.Context, platformID uint) ([]models.Serie, error)
	FindByGender(ctx context.Context, genderID uint) ([]models.Serie, error)
	// FindByTitle 按标题精确匹配唯一剧集，重名时返回 ErrMultipleResults
	FindByTitle(ctx context.Context, title string) (*models.Serie, error)
	Create(ctx context.Context, s *models.Serie) error
	Update(ctx context.Context, s *models.Serie) error
	Delete(ctx context.Context, id uint) error
}

type SeasonRepository interface {
	List(ctx context.Context) ([]models.Season, error)
	Get(ctx context.Context, id uint) (*models.Season, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindBySerie(ctx context.Context, serieID uint) ([]models.Season, error)
	// NumberTaken 检查同一剧集内季号是否已被 excludeID 以外的记录占用
	NumberTaken(ctx context.Context, serieID uint, number int, excludeID uint) (bool, error)
	Create(ctx context.Context, s *models.Season) error
	Update(ctx context.Context, s *models.Season) error
	Delete(ctx context.Context, id uint) error
}

type EpisodeRepository interface {
	List(ctx context.Context) ([]models.Episode, error)
	Get(ctx context.Context, id uint) (*models.Episode, error)
	FindBySerie(ctx context.Context, serieID uint) ([]models.Episode, error)
	FindBySeason(ctx context.Context, seasonID uint) ([]models.Episode, error)
	NumberTaken(ctx context.Context, seasonID uint, number int, excludeID uint) (bool, error)
	Create(ctx context.Context, e *models.Episode) error
	Update(ctx context.Context, e *models.Episode) error
	Delete(ctx context.Context, id uint) error
}

// Repositories 汇总全部仓储，便于在路由和工具之间传递
type Repositories struct {
	Platforms PlatformRepository
	Genders   GenderRepository
	Series    SerieRepository
	Seasons   SeasonRepository
	Episodes  EpisodeRepository
}

// New 基于同一个 gorm 连接创建全部仓储
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Platforms: NewPlatformRepository(db),
		Genders:   NewGenderRepository(db),
		Series:    NewSerieRepository(db),
		Seasons:   NewSeasonRepository(db),
		Episodes:  NewEpisodeRepository(db),
	}
}

// translate 把 gorm 错误转换为仓储层错误
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInvalidReference
	}
	return err
}

func findByID[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var v T
	if err := db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func exists[T any](ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// affected 删除或更新时把 0 行影响视为记录不存在
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
