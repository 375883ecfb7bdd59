package repository

import (
	"context"

	"seriesapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormGenderRepository struct {
	db *gorm.DB
}

func NewGenderRepository(db *gorm.DB) *GormGenderRepository {
	return &GormGenderRepository{db: db}
}

func (r *GormGenderRepository) List(ctx context.Context) ([]models.Gender, error) {
	var genders []models.Gender
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&genders).Error
	return genders, err
}

func (r *GormGenderRepository) Get(ctx context.Context, id uint) (*models.Gender, error) {
	return findByID[models.Gender](ctx, r.db, id)
}

func (r *GormGenderRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists[models.Gender](ctx, r.db, id)
}

// FindByIDs 返回存在的类型，调用方通过比较长度判断是否有无效ID
func (r *GormGenderRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Gender, error) {
	genders := []models.Gender{}
	if len(ids) == 0 {
		return genders, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&genders).Error
	return genders, err
}

func (r *GormGenderRepository) Create(ctx context.Context, g *models.Gender) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error)
}

func (r *GormGenderRepository) Update(ctx context.Context, g *models.Gender) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(g).Error)
}

// Delete 只解除与剧集的关联，不删除剧集
func (r *GormGenderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gender_id = ?", id).Delete(&serieGender{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&models.Gender{}, id))
	})
}
