package controllers

import (
	"context"
	"net/http"

	"seriesapi/models"
	"seriesapi/repository"

	"github.com/gin-gonic/gin"
)

type EpisodeController struct {
	episodes repository.EpisodeRepository
	seasons  repository.SeasonRepository
}

func NewEpisodeController(episodes repository.EpisodeRepository, seasons repository.SeasonRepository) *EpisodeController {
	return &EpisodeController{
		episodes: episodes,
		seasons:  seasons,
	}
}

// List godoc
// @Summary      获取所有单集
// @Description  按(所属剧集, 集号)升序
// @Tags         单集
// @Produce      json
// @Success      200  {array}  models.EpisodeResponse
// @Router       /episodes/ [get]
func (ec *EpisodeController) List(c *gin.Context) {
	episodes, err := ec.episodes.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Episode")
		return
	}
	c.JSON(http.StatusOK, models.NewEpisodeResponses(episodes))
}

// Retrieve godoc
// @Summary      获取单集详情
// @Tags         单集
// @Produce      json
// @Param        id   path      int  true  "单集ID"
// @Success      200  {object}  models.EpisodeResponse
// @Failure      404  {object}  Response
// @Router       /episodes/{id}/ [get]
func (ec *EpisodeController) Retrieve(c *gin.Context) {
	id, ok := parseID(c, "Episode")
	if !ok {
		return
	}
	episode, err := ec.episodes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Episode")
		return
	}
	c.JSON(http.StatusOK, models.NewEpisodeResponse(*episode))
}

// Create godoc
// @Summary      创建单集
// @Tags         单集
// @Accept       json
// @Produce      json
// @Param        episode  body      models.EpisodeCreateRequest  true  "单集信息"
// @Success      201      {object}  models.EpisodeResponse
// @Failure      400      {object}  Response
// @Failure      401      {object}  Response
// @Security     Bearer
// @Router       /episodes/ [post]
func (ec *EpisodeController) Create(c *gin.Context) {
	var req models.EpisodeCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	var episode models.Episode
	req.Apply(&episode)
	if err := ec.validate(ctx, &episode); err != nil {
		respondError(c, err, "Episode")
		return
	}
	if err := ec.episodes.Create(ctx, &episode); err != nil {
		respondError(c, err, "Episode")
		return
	}
	c.JSON(http.StatusCreated, models.NewEpisodeResponse(episode))
}

// Update godoc
// @Summary      整体更新单集
// @Tags         单集
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "单集ID"
// @Param        episode  body      models.EpisodeCreateRequest  true  "单集信息"
// @Success      200      {object}  models.EpisodeResponse
// @Security     Bearer
// @Router       /episodes/{id}/ [put]
func (ec *EpisodeController) Update(c *gin.Context) {
	var req models.EpisodeCreateRequest
	ec.update(c, &req, func(e *models.Episode) { req.Apply(e) })
}

// PartialUpdate godoc
// @Summary      部分更新单集
// @Tags         单集
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "单集ID"
// @Param        episode  body      models.EpisodeUpdateRequest  true  "需要修改的字段"
// @Success      200      {object}  models.EpisodeResponse
// @Security     Bearer
// @Router       /episodes/{id}/ [patch]
func (ec *EpisodeController) PartialUpdate(c *gin.Context) {
	var req models.EpisodeUpdateRequest
	ec.update(c, &req, func(e *models.Episode) { req.Apply(e) })
}

func (ec *EpisodeController) update(c *gin.Context, req interface{}, apply func(*models.Episode)) {
	id, ok := parseID(c, "Episode")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	episode, err := ec.episodes.Get(ctx, id)
	if err != nil {
		respondError(c, err, "Episode")
		return
	}
	if !bindJSON(c, req) {
		return
	}

	apply(episode)
	if err := ec.validate(ctx, episode); err != nil {
		respondError(c, err, "Episode")
		return
	}
	if err := ec.episodes.Update(ctx, episode); err != nil {
		respondError(c, err, "Episode")
		return
	}
	c.JSON(http.StatusOK, models.NewEpisodeResponse(*episode))
}

func (ec *EpisodeController) validate(ctx context.Context, episode *models.Episode) error {
	found, err := ec.seasons.Exists(ctx, episode.SeasonID)
	if err != nil {
		return err
	}
	if !found {
		return invalid("Invalid season id %d", episode.SeasonID)
	}
	taken, err := ec.episodes.NumberTaken(ctx, episode.SeasonID, episode.Number, episode.ID)
	if err != nil {
		return err
	}
	if taken {
		return invalid("Episode %d already exists for season %d", episode.Number, episode.SeasonID)
	}
	return nil
}

// Delete godoc
// @Summary      删除单集
// @Tags         单集
// @Param        id  path  int  true  "单集ID"
// @Success      204
// @Security     Bearer
// @Router       /episodes/{id}/ [delete]
func (ec *EpisodeController) Delete(c *gin.Context) {
	id, ok := parseID(c, "Episode")
	if !ok {
		return
	}
	if err := ec.episodes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Episode")
		return
	}
	c.Status(http.StatusNoContent)
}
