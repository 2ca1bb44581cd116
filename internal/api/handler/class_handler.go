package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/service"
	"github.com/Cameron2125/HackathonApp/pkg/response"
)

// ClassHandler 课程模块 Handler
type ClassHandler struct {
	svc service.ClassService
}

// NewClassHandler 创建 ClassHandler 实例
func NewClassHandler(svc service.ClassService) *ClassHandler {
	return &ClassHandler{svc: svc}
}

// CreateClass 添加课程
// POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.Created(c, resp)
}

// ListClasses 我的课程
// GET /api/v1/classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteClass 删除课程
// DELETE /api/v1/classes/:id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, nil)
}

// ImportICS 导入 ICS 课表
// POST /api/v1/classes/import
//
// 支持两种方式：
//   - 文件上传: multipart/form-data, field="file"
//   - 原始内容: Content-Type: text/calendar
func (h *ClassHandler) ImportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if strings.HasPrefix(c.ContentType(), "text/calendar") {
		resp, err := h.svc.ImportICS(c.Request.Context(), userID, c.Request.Body)
		if err != nil {
			handleClassError(c, err)
			return
		}
		response.Created(c, resp)
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondBindError(c, err)
			return
		}
		response.BadRequest(c, 30100, "请上传 ICS 文件")
		return
	}
	defer file.Close()

	resp, err := h.svc.ImportICS(c.Request.Context(), userID, file)
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.Created(c, resp)
}

// handleClassError 统一课程模块错误映射
func handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 30001, err.Error())
	case errors.Is(err, service.ErrClassInvalidDays):
		response.BadRequest(c, 30002, err.Error())
	case errors.Is(err, service.ErrClassInvalidTime):
		response.BadRequest(c, 30003, err.Error())
	case errors.Is(err, service.ErrICSParseFailed):
		response.BadRequest(c, 30101, err.Error())
	case errors.Is(err, service.ErrICSEmpty):
		response.BadRequest(c, 30102, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, response.CodeForbidden, err.Error())
	default:
		response.InternalError(c)
	}
}
