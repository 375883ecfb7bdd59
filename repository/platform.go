package repository

import (
	"context"

	"seriesapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPlatformRepository struct {
	db *gorm.DB
}

func NewPlatformRepository(db *gorm.DB) *GormPlatformRepository {
	return &GormPlatformRepository{db: db}
}

func (r *GormPlatformRepository) List(ctx context.Context) ([]models.Platform, error) {
	var platforms []models.Platform
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&platforms).Error
	return platforms, err
}

func (r *GormPlatformRepository) Get(ctx context.Context, id uint) (*models.Platform, error) {
	return findByID[models.Platform](ctx, r.db, id)
}

func (r *GormPlatformRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists[models.Platform](ctx, r.db, id)
}

func (r *GormPlatformRepository) Create(ctx context.Context, p *models.Platform) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *GormPlatformRepository) Update(ctx context.Context, p *models.Platform) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error)
}

// Delete 删除平台及其下全部剧集、季和单集
func (r *GormPlatformRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var serieIDs []uint
		if err := tx.Model(&models.Serie{}).Where("platform_id = ?", id).Pluck("id", &serieIDs).Error; err != nil {
			return err
		}
		if err := deleteSeries(tx, serieIDs); err != nil {
			return err
		}
		return affected(tx.Delete(&models.Platform{}, id))
	})
}
