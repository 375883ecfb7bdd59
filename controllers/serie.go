package controllers

import (
	"context"
	"net/http"
	"strings"

	"seriesapi/models"
	"seriesapi/repository"

	"github.com/gin-gonic/gin"
)

type SerieController struct {
	series    repository.SerieRepository
	platforms repository.PlatformRepository
	genders   repository.GenderRepository
	seasons   repository.SeasonRepository
	episodes  repository.EpisodeRepository
}

func NewSerieController(repos *repository.Repositories) *SerieController {
	return &SerieController{
		series:    repos.Series,
		platforms: repos.Platforms,
		genders:   repos.Genders,
		seasons:   repos.Seasons,
		episodes:  repos.Episodes,
	}
}

// List godoc
// @Summary      获取所有剧集
// @Description  按标题升序返回全部剧集，不分页
// @Tags         剧集
// @Produce      json
// @Success      200  {array}  models.SerieResponse
// @Router       /series/ [get]
func (sc *SerieController) List(c *gin.Context) {
	series, err := sc.series.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Serie")
		return
	}
	c.JSON(http.StatusOK, models.NewSerieResponses(series))
}

// Retrieve godoc
// @Summary      获取剧集详情
// @Tags         剧集
// @Produce      json
// @Param        id   path      int  true  "剧集ID"
// @Success      200  {object}  models.SerieResponse
// @Failure      404  {object}  Response
// @Router       /series/{id}/ [get]
func (sc *SerieController) Retrieve(c *gin.Context) {
	id, ok := parseID(c, "Serie")
	if !ok {
		return
	}
	serie, err := sc.series.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Serie")
		return
	}
	c.JSON(http.StatusOK, models.NewSerieResponse(*serie))
}

// Create godoc
// @Summary      创建剧集
// @Description  platform 和 genders 必须引用已存在的记录
// @Tags         剧集
// @Accept       json
// @Produce      json
// @Param        serie  body      models.SerieCreateRequest  true  "剧集信息"
// @Success      201    {object}  models.SerieResponse
// @Failure      400    {object}  Response
// @Failure      401    {object}  Response
// @Security     Bearer
// @Router       /series/ [post]
func (sc *SerieController) Create(c *gin.Context) {
	var req models.SerieCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	var serie models.Serie
	req.Apply(&serie)
	if err := sc.resolve(ctx, &serie, req.Genders); err != nil {
		respondError(c, err, "Serie")
		return
	}
	if err := sc.series.Create(ctx, &serie); err != nil {
		respondError(c, err, "Serie")
		return
	}
	c.JSON(http.StatusCreated, models.NewSerieResponse(serie))
}

// Update godoc
// @Summary      整体更新剧集
// @Description  genders 会整体替换原有关联
// @Tags         剧集
// @Accept       json
// @Produce      json
// @Param        id     path      int                        true  "剧集ID"
// @Param        serie  body      models.SerieCreateRequest  true  "剧集信息"
// @Success      200    {object}  models.SerieResponse
// @Failure      400    {object}  Response
// @Failure      404    {object}  Response
// @Security     Bearer
// @Router       /series/{id}/ [put]
func (sc *SerieController) Update(c *gin.Context) {
	var req models.SerieCreateRequest
	sc.update(c, &req, func(s *models.Serie) *[]uint {
		req.Apply(s)
		return &req.Genders
	})
}

// PartialUpdate godoc
// @Summary      部分更新剧集
// @Description  未提供 genders 时保留原有关联
// @Tags         剧集
// @Accept       json
// @Produce      json
// @Param        id     path      int                        true  "剧集ID"
// @Param        serie  body      models.SerieUpdateRequest  true  "需要修改的字段"
// @Success      200    {object}  models.SerieResponse
// @Failure      400    {object}  Response
// @Failure      404    {object}  Response
// @Security     Bearer
// @Router       /series/{id}/ [patch]
func (sc *SerieController) PartialUpdate(c *gin.Context) {
	var req models.SerieUpdateRequest
	sc.update(c, &req, func(s *models.Serie) *[]uint {
		req.Apply(s)
		return req.Genders
	})
}

// update 的 apply 返回新的类型ID列表，nil 表示不修改关联
func (sc *SerieController) update(c *gin.Context, req interface{}, apply func(*models.Serie) *[]uint) {
	id, ok := parseID(c, "Serie")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	serie, err := sc.series.Get(ctx, id)
	if err != nil {
		respondError(c, err, "Serie")
		return
	}
	if !bindJSON(c, req) {
		return
	}

	genders := apply(serie)
	var genderIDs []uint
	if genders != nil {
		genderIDs = *genders
	} else {
		for _, g := range serie.Genders {
			genderIDs = append(genderIDs, g.ID)
		}
	}
	if err := sc.resolve(ctx, serie, genderIDs); err != nil {
		respondError(c, err, "Serie")
		return
	}
	if err := sc.series.Update(ctx, serie); err != nil {
		respondError(c, err, "Serie")
		return
	}
	c.JSON(http.StatusOK, models.NewSerieResponse(*serie))
}

// resolve 校验平台存在并加载类型记录
func (sc *SerieController) resolve(ctx context.Context, serie *models.Serie, genderIDs []uint) error {
	found, err := sc.platforms.Exists(ctx, serie.PlatformID)
	if err != nil {
		return err
	}
	if !found {
		return invalid("Invalid platform id %d", serie.PlatformID)
	}

	ids := uniqueIDs(genderIDs)
	genders, err := sc.genders.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(genders) != len(ids) {
		return invalid("Invalid gender id in %v", genderIDs)
	}
	serie.Genders = genders
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Delete godoc
// @Summary      删除剧集
// @Description  同时删除剧集的季和单集
// @Tags         剧集
// @Param        id  path  int  true  "剧集ID"
// @Success      204
// @Failure      404  {object}  Response
// @Security     Bearer
// @Router       /series/{id}/ [delete]
func (sc *SerieController) Delete(c *gin.Context) {
	id, ok := parseID(c, "Serie")
	if !ok {
		return
	}
	if err := sc.series.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Serie")
		return
	}
	c.Status(http.StatusNoContent)
}

// requireSerie 在子资源查询前确认剧集存在
func (sc *SerieController) requireSerie(c *gin.Context) (uint, bool) {
	id, ok := parseID(c, "Serie")
	if !ok {
		return 0, false
	}
	found, err := sc.series.Exists(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Serie")
		return 0, false
	}
	if !found {
		respondError(c, repository.ErrNotFound, "Serie")
		return 0, false
	}
	return id, true
}

// SeasonsList godoc
// @Summary      获取剧集的季列表
// @Description  按季号升序
// @Tags         剧集
// @Produce      json
// @Param        id   path      int  true  "剧集ID"
// @Success      200  {array}   models.SeasonResponse
// @Failure      404  {object}  Response
// @Router       /series/{id}/seasons_list/ [get]
func (sc *SerieController) SeasonsList(c *gin.Context) {
	id, ok := sc.requireSerie(c)
	if !ok {
		return
	}
	seasons, err := sc.seasons.FindBySerie(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Season")
		return
	}
	c.JSON(http.StatusOK, models.NewSeasonResponses(seasons))
}

// EpisodesList godoc
// @Summary      获取剧集的全部单集
// @Description  按(季号, 集号)升序
// @Tags         剧集
// @Produce      json
// @Param        id   path      int  true  "剧集ID"
// @Success      200  {array}   models.EpisodeResponse
// @Failure      404  {object}  Response
// @Router       /series/{id}/episodes_list/ [get]
func (sc *SerieController) EpisodesList(c *gin.Context) {
	id, ok := sc.requireSerie(c)
	if !ok {
		return
	}
	episodes, err := sc.episodes.FindBySerie(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Episode")
		return
	}
	c.JSON(http.StatusOK, models.NewEpisodeResponses(episodes))
}

// Search godoc
// @Summary      按标题查找剧集
// @Description  标题中的下划线视为空格，精确匹配唯一剧集
// @Tags         剧集
// @Produce      json
// @Param        title  query     string  true  "剧集标题"
// @Success      200    {object}  models.SerieResponse
// @Failure      400    {object}  Response
// @Failure      404    {object}  Response
// @Failure      409    {object}  Response
// @Router       /series/search/ [get]
func (sc *SerieController) Search(c *gin.Context) {
	title, ok := c.GetQuery("title")
	if !ok || strings.TrimSpace(title) == "" {
		c.JSON(http.StatusBadRequest, Response{Error: `Missing parameter "title"`})
		return
	}

	serie, err := sc.series.FindByTitle(c.Request.Context(), NormalizeTitle(title))
	if err != nil {
		respondError(c, err, "Serie")
		return
	}
	c.JSON(http.StatusOK, models.NewSerieResponse(*serie))
}

// NormalizeTitle 把 URL 友好的 Foo_Bar 还原为 Foo Bar
func NormalizeTitle(title string) string {
	return strings.ReplaceAll(title, "_", " ")
}
