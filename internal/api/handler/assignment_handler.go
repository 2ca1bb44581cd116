package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/service"
	"github.com/Cameron2125/HackathonApp/pkg/response"
)

// AssignmentHandler 作业模块 Handler
type AssignmentHandler struct {
	svc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler 实例
func NewAssignmentHandler(svc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc}
}

// CreateAssignment 添加作业
// POST /api/v1/assignments
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}
	response.Created(c, resp)
}

// ListAssignments 我的作业
// GET /api/v1/assignments
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}
	response.OK(c, resp)
}

// SetCompletion 设置作业完成状态
// PUT /api/v1/assignments/:id/completion
func (h *AssignmentHandler) SetCompletion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.ToggleComplete(c.Request.Context(), userID, c.Param("id"), *req.Completed)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}
	response.OK(c, resp)
}

// ── 待办 ──

// TaskHandler 待办模块 Handler
type TaskHandler struct {
	svc service.TaskService
}

// NewTaskHandler 创建 TaskHandler 实例
func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// CreateTask 添加待办
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}
	response.Created(c, resp)
}

// ListTasks 我的待办
// GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}
	response.OK(c, resp)
}

// SetCompletion 设置待办完成状态
// PUT /api/v1/tasks/:id/completion
func (h *TaskHandler) SetCompletion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.ToggleComplete(c.Request.Context(), userID, c.Param("id"), *req.Completed)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleAssignmentError 统一作业 / 待办错误映射
func handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 30201, err.Error())
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 30301, err.Error())
	case errors.Is(err, service.ErrInvalidDueDate):
		response.BadRequest(c, 30202, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, response.CodeForbidden, err.Error())
	default:
		response.InternalError(c)
	}
}
