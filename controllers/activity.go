package controllers

import (
	"net/http"
	"strconv"

	"seriesapi/services/activity"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	activityService *activity.ActivityService
}

func NewActivityController(activityService *activity.ActivityService) *ActivityController {
	return &ActivityController{
		activityService: activityService,
	}
}

// GetRecentActivities godoc
// @Summary      获取最近活动记录
// @Description  获取系统中最近的活动记录，包括用户注册和管理员初始化
// @Tags         系统管理
// @Produce      json
// @Param        limit  query    int     false  "返回记录数量限制(默认20)"  minimum(1) maximum(100)
// @Success      200    {object} Response{data=[]models.Activity}
// @Failure      401    {object} Response "未授权"
// @Failure      403    {object} Response "权限不足"
// @Security     Bearer
// @Router       /admin/activities [get]
func (ac *ActivityController) GetRecentActivities(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(activity.DefaultLimit)))
	if err != nil {
		limit = activity.DefaultLimit
	}

	activities, err := ac.activityService.GetRecentActivities(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Error: "Failed to load activities",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Data: activities,
	})
}
