package controllers

import (
	"net/http"

	"seriesapi/models"
	"seriesapi/repository"

	"github.com/gin-gonic/gin"
)

type GenderController struct {
	genders repository.GenderRepository
	series  repository.SerieRepository
}

func NewGenderController(genders repository.GenderRepository, series repository.SerieRepository) *GenderController {
	return &GenderController{
		genders: genders,
		series:  series,
	}
}

// List godoc
// @Summary      获取所有类型
// @Tags         类型
// @Produce      json
// @Success      200  {array}  models.GenderResponse
// @Router       /genders/ [get]
func (gc *GenderController) List(c *gin.Context) {
	genders, err := gc.genders.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Gender")
		return
	}
	c.JSON(http.StatusOK, models.NewGenderResponses(genders))
}

// Retrieve godoc
// @Summary      获取类型详情
// @Tags         类型
// @Produce      json
// @Param        id   path      int  true  "类型ID"
// @Success      200  {object}  models.GenderResponse
// @Failure      404  {object}  Response
// @Router       /genders/{id}/ [get]
func (gc *GenderController) Retrieve(c *gin.Context) {
	id, ok := parseID(c, "Gender")
	if !ok {
		return
	}
	gender, err := gc.genders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Gender")
		return
	}
	c.JSON(http.StatusOK, models.NewGenderResponse(*gender))
}

// Create godoc
// @Summary      创建类型
// @Tags         类型
// @Accept       json
// @Produce      json
// @Param        gender  body      models.GenderCreateRequest  true  "类型信息"
// @Success      201     {object}  models.GenderResponse
// @Failure      400     {object}  Response
// @Failure      401     {object}  Response
// @Security     Bearer
// @Router       /genders/ [post]
func (gc *GenderController) Create(c *gin.Context) {
	var req models.GenderCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	var gender models.Gender
	req.Apply(&gender)
	if err := gc.genders.Create(c.Request.Context(), &gender); err != nil {
		respondError(c, err, "Gender")
		return
	}
	c.JSON(http.StatusCreated, models.NewGenderResponse(gender))
}

// Update godoc
// @Summary      整体更新类型
// @Tags         类型
// @Accept       json
// @Produce      json
// @Param        id      path      int                         true  "类型ID"
// @Param        gender  body      models.GenderCreateRequest  true  "类型信息"
// @Success      200     {object}  models.GenderResponse
// @Security     Bearer
// @Router       /genders/{id}/ [put]
func (gc *GenderController) Update(c *gin.Context) {
	var req models.GenderCreateRequest
	gc.update(c, &req, func(g *models.Gender) { req.Apply(g) })
}

// PartialUpdate godoc
// @Summary      部分更新类型
// @Tags         类型
// @Accept       json
// @Produce      json
// @Param        id      path      int                         true  "类型ID"
// @Param        gender  body      models.GenderUpdateRequest  true  "需要修改的字段"
// @Success      200     {object}  models.GenderResponse
// @Security     Bearer
// @Router       /genders/{id}/ [patch]
func (gc *GenderController) PartialUpdate(c *gin.Context) {
	var req models.GenderUpdateRequest
	gc.update(c, &req, func(g *models.Gender) { req.Apply(g) })
}

func (gc *GenderController) update(c *gin.Context, req interface{}, apply func(*models.Gender)) {
	id, ok := parseID(c, "Gender")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	gender, err := gc.genders.Get(ctx, id)
	if err != nil {
		respondError(c, err, "Gender")
		return
	}
	if !bindJSON(c, req) {
		return
	}

	apply(gender)
	if err := gc.genders.Update(ctx, gender); err != nil {
		respondError(c, err, "Gender")
		return
	}
	c.JSON(http.StatusOK, models.NewGenderResponse(*gender))
}

// Delete godoc
// @Summary      删除类型
// @Description  只解除与剧集的关联
// @Tags         类型
// @Param        id  path  int  true  "类型ID"
// @Success      204
// @Security     Bearer
// @Router       /genders/{id}/ [delete]
func (gc *GenderController) Delete(c *gin.Context) {
	id, ok := parseID(c, "Gender")
	if !ok {
		return
	}
	if err := gc.genders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Gender")
		return
	}
	c.Status(http.StatusNoContent)
}

// SeriesList godoc
// @Summary      获取某类型下的剧集
// @Description  返回剧集结构(而非类型结构)，按标题升序
// @Tags         类型
// @Produce      json
// @Param        id   path      int  true  "类型ID"
// @Success      200  {array}   models.SerieResponse
// @Failure      404  {object}  Response
// @Router       /genders/{id}/series_list/ [get]
func (gc *GenderController) SeriesList(c *gin.Context) {
	id, ok := parseID(c, "Gender")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	found, err := gc.genders.Exists(ctx, id)
	if err != nil {
		respondError(c, err, "Gender")
		return
	}
	if !found {
		respondError(c, repository.ErrNotFound, "Gender")
		return
	}

	series, err := gc.series.FindByGender(ctx, id)
	if err != nil {
		respondError(c, err, "Serie")
		return
	}
	c.JSON(http.StatusOK, models.NewSerieResponses(series))
}
