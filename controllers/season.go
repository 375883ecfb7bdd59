package controllers

import (
	"context"
	"net/http"

	"seriesapi/models"
	"seriesapi/repository"

	"github.com/gin-gonic/gin"
)

type SeasonController struct {
	seasons  repository.SeasonRepository
	series   repository.SerieRepository
	episodes repository.EpisodeRepository
}

func NewSeasonController(repos *repository.Repositories) *SeasonController {
	return &SeasonController{
		seasons:  repos.Seasons,
		series:   repos.Series,
		episodes: repos.Episodes,
	}
}

// List godoc
// @Summary      获取所有季
// @Description  按(剧集, 季号)升序
// @Tags         季
// @Produce      json
// @Success      200  {array}  models.SeasonResponse
// @Router       /seasons/ [get]
func (sc *SeasonController) List(c *gin.Context) {
	seasons, err := sc.seasons.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Season")
		return
	}
	c.JSON(http.StatusOK, models.NewSeasonResponses(seasons))
}

// Retrieve godoc
// @Summary      获取季详情
// @Tags         季
// @Produce      json
// @Param        id   path      int  true  "季ID"
// @Success      200  {object}  models.SeasonResponse
// @Failure      404  {object}  Response
// @Router       /seasons/{id}/ [get]
func (sc *SeasonController) Retrieve(c *gin.Context) {
	id, ok := parseID(c, "Season")
	if !ok {
		return
	}
	season, err := sc.seasons.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Season")
		return
	}
	c.JSON(http.StatusOK, models.NewSeasonResponse(*season))
}

// Create godoc
// @Summary      创建季
// @Tags         季
// @Accept       json
// @Produce      json
// @Param        season  body      models.SeasonCreateRequest  true  "季信息"
// @Success      201     {object}  models.SeasonResponse
// @Failure      400     {object}  Response
// @Failure      401     {object}  Response
// @Security     Bearer
// @Router       /seasons/ [post]
func (sc *SeasonController) Create(c *gin.Context) {
	var req models.SeasonCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	var season models.Season
	req.Apply(&season)
	if err := sc.validate(ctx, &season); err != nil {
		respondError(c, err, "Season")
		return
	}
	if err := sc.seasons.Create(ctx, &season); err != nil {
		respondError(c, err, "Season")
		return
	}
	c.JSON(http.StatusCreated, models.NewSeasonResponse(season))
}

// Update godoc
// @Summary      整体更新季
// @Tags         季
// @Accept       json
// @Produce      json
// @Param        id      path      int                         true  "季ID"
// @Param        season  body      models.SeasonCreateRequest  true  "季信息"
// @Success      200     {object}  models.SeasonResponse
// @Security     Bearer
// @Router       /seasons/{id}/ [put]
func (sc *SeasonController) Update(c *gin.Context) {
	var req models.SeasonCreateRequest
	sc.update(c, &req, func(s *models.Season) { req.Apply(s) })
}

// PartialUpdate godoc
// @Summary      部分更新季
// @Tags         季
// @Accept       json
// @Produce      json
// @Param        id      path      int                         true  "季ID"
// @Param        season  body      models.SeasonUpdateRequest  true  "需要修改的字段"
// @Success      200     {object}  models.SeasonResponse
// @Security     Bearer
// @Router       /seasons/{id}/ [patch]
func (sc *SeasonController) PartialUpdate(c *gin.Context) {
	var req models.SeasonUpdateRequest
	sc.update(c, &req, func(s *models.Season) { req.Apply(s) })
}

func (sc *SeasonController) update(c *gin.Context, req interface{}, apply func(*models.Season)) {
	id, ok := parseID(c, "Season")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	season, err := sc.seasons.Get(ctx, id)
	if err != nil {
		respondError(c, err, "Season")
		return
	}
	if !bindJSON(c, req) {
		return
	}

	apply(season)
	if err := sc.validate(ctx, season); err != nil {
		respondError(c, err, "Season")
		return
	}
	if err := sc.seasons.Update(ctx, season); err != nil {
		respondError(c, err, "Season")
		return
	}
	c.JSON(http.StatusOK, models.NewSeasonResponse(*season))
}

// validate 检查所属剧集存在且季号在剧集内唯一
func (sc *SeasonController) validate(ctx context.Context, season *models.Season) error {
	found, err := sc.series.Exists(ctx, season.SerieID)
	if err != nil {
		return err
	}
	if !found {
		return invalid("Invalid serie id %d", season.SerieID)
	}
	taken, err := sc.seasons.NumberTaken(ctx, season.SerieID, season.Number, season.ID)
	if err != nil {
		return err
	}
	if taken {
		return invalid("Season %d already exists for serie %d", season.Number, season.SerieID)
	}
	return nil
}

// Delete godoc
// @Summary      删除季
// @Description  同时删除季下的单集
// @Tags         季
// @Param        id  path  int  true  "季ID"
// @Success      204
// @Security     Bearer
// @Router       /seasons/{id}/ [delete]
func (sc *SeasonController) Delete(c *gin.Context) {
	id, ok := parseID(c, "Season")
	if !ok {
		return
	}
	if err := sc.seasons.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Season")
		return
	}
	c.Status(http.StatusNoContent)
}

// EpisodesList godoc
// @Summary      获取季下的单集
// @Description  按集号升序
// @Tags         季
// @Produce      json
// @Param        id   path      int  true  "季ID"
// @Success      200  {array}   models.EpisodeResponse
// @Failure      404  {object}  Response
// @Router       /seasons/{id}/episodes_list/ [get]
func (sc *SeasonController) EpisodesList(c *gin.Context) {
	id, ok := parseID(c, "Season")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	found, err := sc.seasons.Exists(ctx, id)
	if err != nil {
		respondError(c, err, "Season")
		return
	}
	if !found {
		respondError(c, repository.ErrNotFound, "Season")
		return
	}

	episodes, err := sc.episodes.FindBySeason(ctx, id)
	if err != nil {
		respondError(c, err, "Episode")
		return
	}
	c.JSON(http.StatusOK, models.NewEpisodeResponses(episodes))
}
