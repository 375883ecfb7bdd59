package repository

import (
	"context"
	"fmt"
	"testing"

	"seriesapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepos(t *testing.T) (*Repositories, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return New(db), db
}

// seed 创建一个平台和一部剧集
func seed(t *testing.T, repos *Repositories, title string) *models.Serie {
	ctx := context.Background()
	platform := models.Platform{Name: "platform-" + title}
	require.NoError(t, repos.Platforms.Create(ctx, &platform))
	serie := models.Serie{Title: title, PlatformID: platform.ID}
	require.NoError(t, repos.Series.Create(ctx, &serie))
	return &serie
}

func TestFindByTitle(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	_, err := repos.Series.FindByTitle(ctx, "Missing")
	assert.ErrorIs(t, err, ErrNotFound)

	first := seed(t, repos, "Foo Bar")
	got, err := repos.Series.FindByTitle(ctx, "Foo Bar")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	dup := models.Serie{Title: "Foo Bar", PlatformID: first.PlatformID}
	require.NoError(t, repos.Series.Create(ctx, &dup))
	_, err = repos.Series.FindByTitle(ctx, "Foo Bar")
	assert.ErrorIs(t, err, ErrMultipleResults)
}

func TestDuplicateNameIsTranslated(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Genders.Create(ctx, &models.Gender{Name: "Drama"}))
	err := repos.Genders.Create(ctx, &models.Gender{Name: "Drama"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestNumberTaken(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()
	serie := seed(t, repos, "Show")

	season := models.Season{SerieID: serie.ID, Number: 1}
	require.NoError(t, repos.Seasons.Create(ctx, &season))

	taken, err := repos.Seasons.NumberTaken(ctx, serie.ID, 1, 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repos.Seasons.NumberTaken(ctx, serie.ID, 1, season.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a record does not conflict with itself")

	episode := models.Episode{SeasonID: season.ID, Number: 3}
	require.NoError(t, repos.Episodes.Create(ctx, &episode))
	taken, err = repos.Episodes.NumberTaken(ctx, season.ID, 3, 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repos.Episodes.NumberTaken(ctx, season.ID, 4, 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestEpisodeOrdering(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()
	serie := seed(t, repos, "Show")

	s2 := models.Season{SerieID: serie.ID, Number: 2}
	s1 := models.Season{SerieID: serie.ID, Number: 1}
	require.NoError(t, repos.Seasons.Create(ctx, &s2))
	require.NoError(t, repos.Seasons.Create(ctx, &s1))
	for _, e := range []models.Episode{
		{SeasonID: s2.ID, Number: 1},
		{SeasonID: s1.ID, Number: 2},
		{SeasonID: s1.ID, Number: 1},
	} {
		e := e
		require.NoError(t, repos.Episodes.Create(ctx, &e))
	}

	bySerie, err := repos.Episodes.FindBySerie(ctx, serie.ID)
	require.NoError(t, err)
	require.Len(t, bySerie, 3)
	assert.Equal(t, [][2]int{{1, 1}, {1, 2}, {2, 1}}, seasonEpisodePairs(bySerie, map[uint]int{s1.ID: 1, s2.ID: 2}))

	// 全量列表按(剧集, 集号)排序
	all, err := repos.Episodes.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, [][2]int{{1, 1}, {2, 1}, {1, 2}}, seasonEpisodePairs(all, map[uint]int{s1.ID: 1, s2.ID: 2}))
}

func seasonEpisodePairs(episodes []models.Episode, seasonNumbers map[uint]int) [][2]int {
	out := make([][2]int, 0, len(episodes))
	for _, e := range episodes {
		out = append(out, [2]int{seasonNumbers[e.SeasonID], e.Number})
	}
	return out
}

func TestSerieGenders(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	drama := models.Gender{Name: "Drama"}
	comedy := models.Gender{Name: "Comedy"}
	require.NoError(t, repos.Genders.Create(ctx, &drama))
	require.NoError(t, repos.Genders.Create(ctx, &comedy))

	serie := seed(t, repos, "Show")
	serie.Genders = []models.Gender{drama}
	require.NoError(t, repos.Series.Update(ctx, serie))

	byGender, err := repos.Series.FindByGender(ctx, drama.ID)
	require.NoError(t, err)
	require.Len(t, byGender, 1)
	assert.Equal(t, serie.ID, byGender[0].ID)

	serie.Genders = []models.Gender{comedy}
	require.NoError(t, repos.Series.Update(ctx, serie))

	byGender, err = repos.Series.FindByGender(ctx, drama.ID)
	require.NoError(t, err)
	assert.Empty(t, byGender)

	got, err := repos.Series.Get(ctx, serie.ID)
	require.NoError(t, err)
	require.Len(t, got.Genders, 1)
	assert.Equal(t, "Comedy", got.Genders[0].Name)
}

func TestPlatformDeleteCascades(t *testing.T) {
	repos, db := setupRepos(t)
	ctx := context.Background()
	serie := seed(t, repos, "Show")

	gender := models.Gender{Name: "Drama"}
	require.NoError(t, repos.Genders.Create(ctx, &gender))
	serie.Genders = []models.Gender{gender}
	require.NoError(t, repos.Series.Update(ctx, serie))

	season := models.Season{SerieID: serie.ID, Number: 1}
	require.NoError(t, repos.Seasons.Create(ctx, &season))
	require.NoError(t, repos.Episodes.Create(ctx, &models.Episode{SeasonID: season.ID, Number: 1}))

	require.NoError(t, repos.Platforms.Delete(ctx, serie.PlatformID))

	for _, model := range []interface{}{&models.Serie{}, &models.Season{}, &models.Episode{}, &serieGender{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T", model)
	}

	found, err := repos.Genders.Exists(ctx, gender.ID)
	require.NoError(t, err)
	assert.True(t, found, "genders survive platform deletion")

	assert.ErrorIs(t, repos.Platforms.Delete(ctx, serie.PlatformID), ErrNotFound)
}
