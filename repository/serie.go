package repository

import (
	"context"

	"seriesapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// serieGender 对应 many2many:serie_genders 关联表
type serieGender struct {
	SerieID  uint `gorm:"primaryKey"`
	GenderID uint `gorm:"primaryKey"`
}

func (serieGender) TableName() string {
	return "serie_genders"
}

type GormSerieRepository struct {
	db *gorm.DB
}

func NewSerieRepository(db *gorm.DB) *GormSerieRepository {
	return &GormSerieRepository{db: db}
}

func preloadGenders(db *gorm.DB) *gorm.DB {
	return db.Preload("Genders", func(db *gorm.DB) *gorm.DB {
		return db.Order("genders.id ASC")
	})
}

func (r *GormSerieRepository) query(ctx context.Context) *gorm.DB {
	return preloadGenders(r.db.WithContext(ctx))
}

func (r *GormSerieRepository) List(ctx context.Context) ([]models.Serie, error) {
	var series []models.Serie
	err := r.query(ctx).Order("title ASC").Order("id ASC").Find(&series).Error
	return series, err
}

func (r *GormSerieRepository) Get(ctx context.Context, id uint) (*models.Serie, error) {
	var serie models.Serie
	if err := r.query(ctx).First(&serie, id).Error; err != nil {
		return nil, translate(err)
	}
	return &serie, nil
}

func (r *GormSerieRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists[models.Serie](ctx, r.db, id)
}

func (r *GormSerieRepository) FindByPlatform(ctx context.Context, platformID uint) ([]models.Serie, error) {
	var series []models.Serie
	err := r.query(ctx).
		Where("platform_id = ?", platformID).
		Order("title ASC").Order("id ASC").
		Find(&series).Error
	return series, err
}

func (r *GormSerieRepository) FindByGender(ctx context.Context, genderID uint) ([]models.Serie, error) {
	var series []models.Serie
	err := r.query(ctx).
		Joins("JOIN serie_genders ON serie_genders.serie_id = series.id").
		Where("serie_genders.gender_id = ?", genderID).
		Order("series.title ASC").Order("series.id ASC").
		Find(&series).Error
	return series, err
}

func (r *GormSerieRepository) FindByTitle(ctx context.Context, title string) (*models.Serie, error) {
	var series []models.Serie
	// 取两条即可区分唯一与重名
	if err := r.query(ctx).Where("title = ?", title).Order("id ASC").Limit(2).Find(&series).Error; err != nil {
		return nil, err
	}
	switch len(series) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &series[0], nil
	default:
		return nil, ErrMultipleResults
	}
}

// Create 写入剧集和类型关联，不回写类型记录本身
func (r *GormSerieRepository) Create(ctx context.Context, s *models.Serie) error {
	return translate(r.db.WithContext(ctx).Omit("Platform", "Seasons", "Genders.*").Create(s).Error)
}

// Update 保存剧集字段并以 s.Genders 整体替换类型关联
func (r *GormSerieRepository) Update(ctx context.Context, s *models.Serie) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(s).Error; err != nil {
			return err
		}
		if err := tx.Where("serie_id = ?", s.ID).Delete(&serieGender{}).Error; err != nil {
			return err
		}
		if len(s.Genders) == 0 {
			return nil
		}
		links := make([]serieGender, 0, len(s.Genders))
		for _, g := range s.Genders {
			links = append(links, serieGender{SerieID: s.ID, GenderID: g.ID})
		}
		return tx.Create(&links).Error
	})
	return translate(err)
}

// Delete 删除剧集及其季和单集
func (r *GormSerieRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteSerieChildren(tx, []uint{id}); err != nil {
			return err
		}
		return affected(tx.Delete(&models.Serie{}, id))
	})
}

// 子记录显式删除，sqlite 默认不启用外键级联
func deleteSeries(tx *gorm.DB, serieIDs []uint) error {
	if len(serieIDs) == 0 {
		return nil
	}
	if err := deleteSerieChildren(tx, serieIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", serieIDs).Delete(&models.Serie{}).Error
}

func deleteSerieChildren(tx *gorm.DB, serieIDs []uint) error {
	var seasonIDs []uint
	if err := tx.Model(&models.Season{}).Where("serie_id IN ?", serieIDs).Pluck("id", &seasonIDs).Error; err != nil {
		return err
	}
	if err := deleteSeasons(tx, seasonIDs); err != nil {
		return err
	}
	return tx.Where("serie_id IN ?", serieIDs).Delete(&serieGender{}).Error
}
