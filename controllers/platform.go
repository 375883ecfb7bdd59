package controllers

import (
	"net/http"

	"seriesapi/models"
	"seriesapi/repository"

	"github.com/gin-gonic/gin"
)

type PlatformController struct {
	platforms repository.PlatformRepository
	series    repository.SerieRepository
}

func NewPlatformController(platforms repository.PlatformRepository, series repository.SerieRepository) *PlatformController {
	return &PlatformController{
		platforms: platforms,
		series:    series,
	}
}

// List godoc
// @Summary      获取所有平台
// @Description  按名称升序返回全部平台，不分页
// @Tags         平台
// @Produce      json
// @Success      200  {array}   models.PlatformResponse
// @Router       /platforms/ [get]
func (pc *PlatformController) List(c *gin.Context) {
	platforms, err := pc.platforms.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Platform")
		return
	}
	c.JSON(http.StatusOK, models.NewPlatformResponses(platforms))
}

// Retrieve godoc
// @Summary      获取平台详情
// @Tags         平台
// @Produce      json
// @Param        id   path      int  true  "平台ID"
// @Success      200  {object}  models.PlatformResponse
// @Failure      404  {object}  Response
// @Router       /platforms/{id}/ [get]
func (pc *PlatformController) Retrieve(c *gin.Context) {
	id, ok := parseID(c, "Platform")
	if !ok {
		return
	}
	platform, err := pc.platforms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Platform")
		return
	}
	c.JSON(http.StatusOK, models.NewPlatformResponse(*platform))
}

// Create godoc
// @Summary      创建平台
// @Tags         平台
// @Accept       json
// @Produce      json
// @Param        platform  body      models.PlatformCreateRequest  true  "平台信息"
// @Success      201       {object}  models.PlatformResponse
// @Failure      400       {object}  Response
// @Failure      401       {object}  Response
// @Security     Bearer
// @Router       /platforms/ [post]
func (pc *PlatformController) Create(c *gin.Context) {
	var req models.PlatformCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	var platform models.Platform
	req.Apply(&platform)
	if err := pc.platforms.Create(c.Request.Context(), &platform); err != nil {
		respondError(c, err, "Platform")
		return
	}
	c.JSON(http.StatusCreated, models.NewPlatformResponse(platform))
}

// Update godoc
// @Summary      整体更新平台
// @Tags         平台
// @Accept       json
// @Produce      json
// @Param        id        path      int                           true  "平台ID"
// @Param        platform  body      models.PlatformCreateRequest  true  "平台信息"
// @Success      200       {object}  models.PlatformResponse
// @Failure      400       {object}  Response
// @Failure      401       {object}  Response
// @Failure      404       {object}  Response
// @Security     Bearer
// @Router       /platforms/{id}/ [put]
func (pc *PlatformController) Update(c *gin.Context) {
	var req models.PlatformCreateRequest
	pc.update(c, &req, func(p *models.Platform) { req.Apply(p) })
}

// PartialUpdate godoc
// @Summary      部分更新平台
// @Tags         平台
// @Accept       json
// @Produce      json
// @Param        id        path      int                           true  "平台ID"
// @Param        platform  body      models.PlatformUpdateRequest  true  "需要修改的字段"
// @Success      200       {object}  models.PlatformResponse
// @Failure      400       {object}  Response
// @Failure      401       {object}  Response
// @Failure      404       {object}  Response
// @Security     Bearer
// @Router       /platforms/{id}/ [patch]
func (pc *PlatformController) PartialUpdate(c *gin.Context) {
	var req models.PlatformUpdateRequest
	pc.update(c, &req, func(p *models.Platform) { req.Apply(p) })
}

func (pc *PlatformController) update(c *gin.Context, req interface{}, apply func(*models.Platform)) {
	id, ok := parseID(c, "Platform")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	platform, err := pc.platforms.Get(ctx, id)
	if err != nil {
		respondError(c, err, "Platform")
		return
	}
	if !bindJSON(c, req) {
		return
	}

	apply(platform)
	if err := pc.platforms.Update(ctx, platform); err != nil {
		respondError(c, err, "Platform")
		return
	}
	c.JSON(http.StatusOK, models.NewPlatformResponse(*platform))
}

// Delete godoc
// @Summary      删除平台
// @Description  同时删除该平台下的剧集、季和单集
// @Tags         平台
// @Param        id   path  int  true  "平台ID"
// @Success      204
// @Failure      401  {object}  Response
// @Failure      404  {object}  Response
// @Security     Bearer
// @Router       /platforms/{id}/ [delete]
func (pc *PlatformController) Delete(c *gin.Context) {
	id, ok := parseID(c, "Platform")
	if !ok {
		return
	}
	if err := pc.platforms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Platform")
		return
	}
	c.Status(http.StatusNoContent)
}

// SeriesList godoc
// @Summary      获取平台下的剧集
// @Description  按标题升序返回平台拥有的全部剧集，不分页
// @Tags         平台
// @Produce      json
// @Param        id   path      int  true  "平台ID"
// @Success      200  {array}   models.SerieResponse
// @Failure      404  {object}  Response
// @Router       /platforms/{id}/series_list/ [get]
func (pc *PlatformController) SeriesList(c *gin.Context) {
	id, ok := parseID(c, "Platform")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	found, err := pc.platforms.Exists(ctx, id)
	if err != nil {
		respondError(c, err, "Platform")
		return
	}
	if !found {
		respondError(c, repository.ErrNotFound, "Platform")
		return
	}

	series, err := pc.series.FindByPlatform(ctx, id)
	if err != nil {
		respondError(c, err, "Serie")
		return
	}
	c.JSON(http.StatusOK, models.NewSerieResponses(series))
}
