package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Cameron2125/HackathonApp/internal/calendar"
	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/service"
	"github.com/Cameron2125/HackathonApp/pkg/response"
)

// CalendarHandler 日历模块 HTTP 处理器
type CalendarHandler struct {
	svc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(svc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// GetAgenda 首页未来一周议程
// GET /api/v1/calendar/agenda
func (h *CalendarHandler) GetAgenda(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetAgenda(c.Request.Context(), userID)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetEvents 全部事件
// GET /api/v1/calendar/events
func (h *CalendarHandler) GetEvents(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetEvents(c.Request.Context(), userID)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetView 日 / 周 / 月视图
// GET /api/v1/calendar/view?mode=day|week|month&date=YYYY-MM-DD
func (h *CalendarHandler) GetView(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.GetView(c.Request.Context(), userID, &req)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetNow 当前时间指示线
// GET /api/v1/calendar/now
func (h *CalendarHandler) GetNow(c *gin.Context) {
	response.OK(c, h.svc.GetNowIndicator())
}

// StreamNow 以 SSE 推送指示线，每个刷新间隔一次，客户端断开后结束
// GET /api/v1/calendar/now/stream
func (h *CalendarHandler) StreamNow(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	// 长连接不受服务器 WriteTimeout 约束
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	_ = h.svc.WatchNow(c.Request.Context(), func(n calendar.NowIndicator) {
		c.SSEvent("now", n)
		c.Writer.Flush()
	})
}

// GetDayStrip 横向日期条
// GET /api/v1/calendar/day-strip?seed=&length=&visible_index=
func (h *CalendarHandler) GetDayStrip(c *gin.Context) {
	var req dto.DayStripRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.svc.GetDayStrip(&req)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleCalendarError 统一日历模块错误映射
func handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCalendarInvalidDate):
		response.BadRequest(c, 20001, err.Error())
	case errors.Is(err, service.ErrCalendarInvalidMode):
		response.BadRequest(c, 20002, err.Error())
	case errors.Is(err, calendar.ErrMalformedInput):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 20003, "日程数据格式无效", err.Error())
	default:
		response.InternalError(c)
	}
}
