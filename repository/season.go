package repository

import (
	"context"

	"seriesapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormSeasonRepository struct {
	db *gorm.DB
}

func NewSeasonRepository(db *gorm.DB) *GormSeasonRepository {
	return &GormSeasonRepository{db: db}
}

func (r *GormSeasonRepository) List(ctx context.Context) ([]models.Season, error) {
	var seasons []models.Season
	err := r.db.WithContext(ctx).
		Order("serie_id ASC").Order("number ASC").Order("id ASC").
		Find(&seasons).Error
	return seasons, err
}

func (r *GormSeasonRepository) Get(ctx context.Context, id uint) (*models.Season, error) {
	return findByID[models.Season](ctx, r.db, id)
}

func (r *GormSeasonRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists[models.Season](ctx, r.db, id)
}

func (r *GormSeasonRepository) FindBySerie(ctx context.Context, serieID uint) ([]models.Season, error) {
	var seasons []models.Season
	err := r.db.WithContext(ctx).
		Where("serie_id = ?", serieID).
		Order("number ASC").Order("id ASC").
		Find(&seasons).Error
	return seasons, err
}

func (r *GormSeasonRepository) NumberTaken(ctx context.Context, serieID uint, number int, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Season{}).
		Where("serie_id = ? AND number = ? AND id <> ?", serieID, number, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormSeasonRepository) Create(ctx context.Context, s *models.Season) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error)
}

func (r *GormSeasonRepository) Update(ctx context.Context, s *models.Season) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error)
}

// Delete 删除季及其单集
func (r *GormSeasonRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("season_id = ?", id).Delete(&models.Episode{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&models.Season{}, id))
	})
}

func deleteSeasons(tx *gorm.DB, seasonIDs []uint) error {
	if len(seasonIDs) == 0 {
		return nil
	}
	if err := tx.Where("season_id IN ?", seasonIDs).Delete(&models.Episode{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", seasonIDs).Delete(&models.Season{}).Error
}
