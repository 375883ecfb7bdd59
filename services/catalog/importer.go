// Package catalog 从 YAML 文件批量导入平台、类型、剧集、季和单集。
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"seriesapi/models"
	"seriesapi/repository"

	"gopkg.in/yaml.v3"
)

// File 导入文件的顶层结构
type File struct {
	Platforms []string `yaml:"platforms"`
	Genders   []string `yaml:"genders"`
	Series    []Serie  `yaml:"series"`
}

type Serie struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Platform    string   `yaml:"platform"`
	Genders     []string `yaml:"genders"`
	Seasons     []Season `yaml:"seasons"`
}

type Season struct {
	Number   int       `yaml:"number"`
	Title    string    `yaml:"title"`
	Episodes []Episode `yaml:"episodes"`
}

type Episode struct {
	Number int    `yaml:"number"`
	Title  string `yaml:"title"`
}

// Stats 本次导入新建的记录数
type Stats struct {
	Platforms int
	Genders   int
	Series    int
	Seasons   int
	Episodes  int
}

// Parse 解析 YAML 导入文件
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("解析导入文件失败: %w", err)
	}
	return &f, nil
}

// Importer 通过仓储写入数据，已存在的名称、标题和编号会被复用，重复导入不会产生新记录
type Importer struct {
	repos *repository.Repositories

	platforms map[string]uint
	genders   map[string]uint
}

func NewImporter(repos *repository.Repositories) *Importer {
	return &Importer{repos: repos}
}

func (im *Importer) Import(ctx context.Context, f *File) (Stats, error) {
	var stats Stats
	if err := im.loadNames(ctx); err != nil {
		return stats, err
	}

	for _, name := range f.Platforms {
		if _, err := im.platform(ctx, name, &stats); err != nil {
			return stats, err
		}
	}
	for _, name := range f.Genders {
		if _, err := im.gender(ctx, name, &stats); err != nil {
			return stats, err
		}
	}
	for _, s := range f.Series {
		if err := im.serie(ctx, s, &stats); err != nil {
			return stats, fmt.Errorf("导入剧集 %q 失败: %w", s.Title, err)
		}
	}
	return stats, nil
}

func (im *Importer) loadNames(ctx context.Context) error {
	platforms, err := im.repos.Platforms.List(ctx)
	if err != nil {
		return err
	}
	im.platforms = make(map[string]uint, len(platforms))
	for _, p := range platforms {
		im.platforms[p.Name] = p.ID
	}

	genders, err := im.repos.Genders.List(ctx)
	if err != nil {
		return err
	}
	im.genders = make(map[string]uint, len(genders))
	for _, g := range genders {
		im.genders[g.Name] = g.ID
	}
	return nil
}

func (im *Importer) platform(ctx context.Context, name string, stats *Stats) (uint, error) {
	if name == "" {
		return 0, errors.New("平台名称不能为空")
	}
	if id, ok := im.platforms[name]; ok {
		return id, nil
	}
	p := models.Platform{Name: name}
	if err := im.repos.Platforms.Create(ctx, &p); err != nil {
		return 0, fmt.Errorf("创建平台 %q 失败: %w", name, err)
	}
	im.platforms[name] = p.ID
	stats.Platforms++
	return p.ID, nil
}

func (im *Importer) gender(ctx context.Context, name string, stats *Stats) (uint, error) {
	if name == "" {
		return 0, errors.New("类型名称不能为空")
	}
	if id, ok := im.genders[name]; ok {
		return id, nil
	}
	g := models.Gender{Name: name}
	if err := im.repos.Genders.Create(ctx, &g); err != nil {
		return 0, fmt.Errorf("创建类型 %q 失败: %w", name, err)
	}
	im.genders[name] = g.ID
	stats.Genders++
	return g.ID, nil
}

func (im *Importer) serie(ctx context.Context, in Serie, stats *Stats) error {
	if in.Title == "" {
		return errors.New("标题不能为空")
	}

	serie, err := im.repos.Series.FindByTitle(ctx, in.Title)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		platformID, err := im.platform(ctx, in.Platform, stats)
		if err != nil {
			return err
		}
		serie = &models.Serie{
			Title:       in.Title,
			Description: in.Description,
			PlatformID:  platformID,
		}
		for _, name := range in.Genders {
			id, err := im.gender(ctx, name, stats)
			if err != nil {
				return err
			}
			serie.Genders = append(serie.Genders, models.Gender{ID: id, Name: name})
		}
		if err := im.repos.Series.Create(ctx, serie); err != nil {
			return err
		}
		stats.Series++
	case err != nil:
		return err
	}

	existing, err := im.repos.Seasons.FindBySerie(ctx, serie.ID)
	if err != nil {
		return err
	}
	seasons := make(map[int]uint, len(existing))
	for _, s := range existing {
		seasons[s.Number] = s.ID
	}

	for _, in := range in.Seasons {
		if in.Number < 1 {
			return fmt.Errorf("季号 %d 无效", in.Number)
		}
		seasonID, ok := seasons[in.Number]
		if !ok {
			season := models.Season{SerieID: serie.ID, Number: in.Number, Title: in.Title}
			if err := im.repos.Seasons.Create(ctx, &season); err != nil {
				return err
			}
			seasonID = season.ID
			seasons[in.Number] = seasonID
			stats.Seasons++
		}
		if err := im.episodes(ctx, seasonID, in.Episodes, stats); err != nil {
			return fmt.Errorf("第 %d 季: %w", in.Number, err)
		}
	}
	return nil
}

func (im *Importer) episodes(ctx context.Context, seasonID uint, in []Episode, stats *Stats) error {
	existing, err := im.repos.Episodes.FindBySeason(ctx, seasonID)
	if err != nil {
		return err
	}
	numbers := make(map[int]bool, len(existing))
	for _, e := range existing {
		numbers[e.Number] = true
	}

	for _, e := range in {
		if e.Number < 1 {
			return fmt.Errorf("集号 %d 无效", e.Number)
		}
		if numbers[e.Number] {
			continue
		}
		episode := models.Episode{SeasonID: seasonID, Number: e.Number, Title: e.Title}
		if err := im.repos.Episodes.Create(ctx, &episode); err != nil {
			return err
		}
		numbers[e.Number] = true
		stats.Episodes++
	}
	return nil
}
