package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/service"
	"github.com/Cameron2125/HackathonApp/pkg/response"
)

// ForumHandler 社区问答模块 HTTP 处理器
type ForumHandler struct {
	svc service.ForumService
}

// NewForumHandler 创建 ForumHandler
func NewForumHandler(svc service.ForumService) *ForumHandler {
	return &ForumHandler{svc: svc}
}

// ListCommunities 社区列表
// GET /api/v1/communities
func (h *ForumHandler) ListCommunities(c *gin.Context) {
	resp, err := h.svc.ListCommunities(c.Request.Context())
	if err != nil {
		handleForumError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListQuestions 社区问题列表
// GET /api/v1/communities/:id/questions
func (h *ForumHandler) ListQuestions(c *gin.Context) {
	resp, err := h.svc.ListQuestions(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleForumError(c, err)
		return
	}
	response.OK(c, resp)
}

// AskQuestion 提问
// POST /api/v1/communities/:id/questions
func (h *ForumHandler) AskQuestion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.AskQuestion(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		handleForumError(c, err)
		return
	}
	response.Created(c, resp)
}

// SeedQuestions 初始化空社区的问题
// POST /api/v1/communities/:id/questions/seed
func (h *ForumHandler) SeedQuestions(c *gin.Context) {
	resp, err := h.svc.SeedQuestions(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleForumError(c, err)
		return
	}
	response.Created(c, resp)
}

// VoteQuestion 问题赞 / 踩
// POST /api/v1/questions/:id/votes
func (h *ForumHandler) VoteQuestion(c *gin.Context) {
	var req dto.VoteQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.VoteQuestion(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleForumError(c, err)
		return
	}
	response.OK(c, resp)
}

// MarkAnswered 标记已解答
// PUT /api/v1/questions/:id/answered
func (h *ForumHandler) MarkAnswered(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MarkAnsweredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.MarkAnswered(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		handleForumError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListMessages 问题回复列表
// GET /api/v1/questions/:id/messages
func (h *ForumHandler) ListMessages(c *gin.Context) {
	resp, err := h.svc.ListMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleForumError(c, err)
		return
	}
	response.OK(c, resp)
}

// PostMessage 回复问题
// POST /api/v1/questions/:id/messages
func (h *ForumHandler) PostMessage(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.PostMessage(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		handleForumError(c, err)
		return
	}
	response.Created(c, resp)
}

// VoteMessage 回复点赞 / 点踩
// POST /api/v1/messages/:id/votes
func (h *ForumHandler) VoteMessage(c *gin.Context) {
	var req dto.VoteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.VoteMessage(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleForumError(c, err)
		return
	}
	response.OK(c, resp)
}

// RemoveMessage 删除回复
// DELETE /api/v1/messages/:id
func (h *ForumHandler) RemoveMessage(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.RemoveMessage(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleForumError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleForumError 统一社区问答模块错误映射
func handleForumError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommunityNotFound):
		response.NotFound(c, 40001, err.Error())
	case errors.Is(err, service.ErrQuestionNotFound):
		response.NotFound(c, 40101, err.Error())
	case errors.Is(err, service.ErrMessageNotFound):
		response.NotFound(c, 40201, err.Error())
	case errors.Is(err, service.ErrInvalidDirection):
		response.BadRequest(c, 40102, err.Error())
	case errors.Is(err, service.ErrResponseMismatch):
		response.BadRequest(c, 40103, err.Error())
	case errors.Is(err, service.ErrCommunityNotEmpty):
		response.Error(c, http.StatusConflict, 40002, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, response.CodeForbidden, err.Error())
	default:
		response.InternalError(c)
	}
}
