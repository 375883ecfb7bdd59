package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"seriesapi/models"
	"seriesapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sample = `
platforms: [Netflix]
genders: [Drama, Comedy]
series:
  - title: Show A
    description: first show
    platform: Netflix
    genders: [Drama]
    seasons:
      - number: 1
        episodes:
          - {number: 1, title: Pilot}
          - {number: 2}
      - number: 2
        episodes:
          - {number: 1}
  - title: Show B
    platform: HBO
    genders: [Comedy, Thriller]
`

func setupRepos(t *testing.T) *repository.Repositories {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return repository.New(db)
}

func TestImport(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	stats, err := NewImporter(repos).Import(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, Stats{Platforms: 2, Genders: 3, Series: 2, Seasons: 2, Episodes: 3}, stats)

	serie, err := repos.Series.FindByTitle(ctx, "Show A")
	require.NoError(t, err)
	assert.Equal(t, "first show", serie.Description)
	require.Len(t, serie.Genders, 1)
	assert.Equal(t, "Drama", serie.Genders[0].Name)

	episodes, err := repos.Episodes.FindBySerie(ctx, serie.ID)
	require.NoError(t, err)
	require.Len(t, episodes, 3)
	assert.Equal(t, "Pilot", episodes[0].Title)
}

func TestImportIsIdempotent(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	_, err = NewImporter(repos).Import(ctx, f)
	require.NoError(t, err)

	stats, err := NewImporter(repos).Import(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	series, err := repos.Series.List(ctx)
	require.NoError(t, err)
	assert.Len(t, series, 2)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("platform: [Netflix]\n"))
	assert.Error(t, err)
}

func TestImportRejectsInvalidNumbers(t *testing.T) {
	repos := setupRepos(t)

	f := &File{Series: []Serie{{
		Title:    "Show C",
		Platform: "Netflix",
		Seasons:  []Season{{Number: 0}},
	}}}
	_, err := NewImporter(repos).Import(context.Background(), f)
	assert.Error(t, err)
}
