package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Cameron2125/HackathonApp/internal/service"
	"github.com/Cameron2125/HackathonApp/pkg/response"
)

const (
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{calendarSvc: calendarSvc}
}

// ExportICS 导出 iCalendar
// GET /api/v1/calendar/export.ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	body, filename, err := h.calendarSvc.ExportICS(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.Attachment(c, contentTypeICS, filename, body)
}

// ExportWeekExcel 导出周课表
// GET /api/v1/calendar/export.xlsx?date=YYYY-MM-DD
func (h *ExportHandler) ExportWeekExcel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	body, filename, err := h.calendarSvc.ExportWeekExcel(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.Attachment(c, contentTypeXLSX, filename, body)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoEvents):
		response.NotFound(c, 20101, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handleCalendarError(c, err)
	}
}
