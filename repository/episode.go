package repository

import (
	"context"

	"seriesapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormEpisodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) *GormEpisodeRepository {
	return &GormEpisodeRepository{db: db}
}

func (r *GormEpisodeRepository) joinSeasons(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Episode{}).
		Joins("JOIN seasons ON seasons.id = episodes.season_id")
}

// List 按(所属剧集, 集号)排序，集号相同时按季号区分
func (r *GormEpisodeRepository) List(ctx context.Context) ([]models.Episode, error) {
	var episodes []models.Episode
	err := r.joinSeasons(ctx).
		Order("seasons.serie_id ASC").
		Order("episodes.number ASC").
		Order("seasons.number ASC").
		Order("episodes.id ASC").
		Find(&episodes).Error
	return episodes, err
}

func (r *GormEpisodeRepository) Get(ctx context.Context, id uint) (*models.Episode, error) {
	return findByID[models.Episode](ctx, r.db, id)
}

// FindBySerie 经由季关联查询剧集的全部单集，按(季号, 集号)升序
func (r *GormEpisodeRepository) FindBySerie(ctx context.Context, serieID uint) ([]models.Episode, error) {
	var episodes []models.Episode
	err := r.joinSeasons(ctx).
		Where("seasons.serie_id = ?", serieID).
		Order("seasons.number ASC").
		Order("episodes.number ASC").
		Find(&episodes).Error
	return episodes, err
}

func (r *GormEpisodeRepository) FindBySeason(ctx context.Context, seasonID uint) ([]models.Episode, error) {
	var episodes []models.Episode
	err := r.db.WithContext(ctx).
		Where("season_id = ?", seasonID).
		Order("number ASC").Order("id ASC").
		Find(&episodes).Error
	return episodes, err
}

func (r *GormEpisodeRepository) NumberTaken(ctx context.Context, seasonID uint, number int, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Episode{}).
		Where("season_id = ? AND number = ? AND id <> ?", seasonID, number, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormEpisodeRepository) Create(ctx context.Context, e *models.Episode) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

func (r *GormEpisodeRepository) Update(ctx context.Context, e *models.Episode) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error)
}

func (r *GormEpisodeRepository) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).Delete(&models.Episode{}, id))
}
