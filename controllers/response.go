package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"seriesapi/repository"
	"seriesapi/utils"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构，错误时只填 Error
type Response struct {
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// validationError 请求内容合法但与现有数据冲突，例如引用了不存在的父记录
type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}

func invalid(format string, args ...interface{}) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// respondError 把仓储层和校验错误映射为 HTTP 状态码
func respondError(c *gin.Context, err error, resource string) {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, Response{Error: verr.msg})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Error: resource + " not found"})
	case errors.Is(err, repository.ErrMultipleResults):
		c.JSON(http.StatusConflict, Response{Error: "Multiple " + resource + " records match"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusBadRequest, Response{Error: resource + " with these values already exists"})
	case errors.Is(err, repository.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, Response{Error: "Invalid reference to a related record"})
	default:
		utils.LogError(fmt.Sprintf("%s %s 失败", c.Request.Method, c.Request.URL.Path), err)
		c.JSON(http.StatusInternalServerError, Response{Error: "Internal server error"})
	}
}

// parseID 解析路径中的 id，非法 id 与不存在的记录一样返回 404
func parseID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, Response{Error: resource + " not found"})
		return 0, false
	}
	return uint(id), true
}

// bindJSON 绑定并校验请求体，失败时直接写出 400
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return false
	}
	return true
}
