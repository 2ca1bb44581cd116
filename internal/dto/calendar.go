package dto

import "github.com/Cameron2125/HackathonApp/internal/calendar"

// ── 首页议程 / 事件 ──

// AgendaResponse 首页“未来一周”议程
type AgendaResponse struct {
	From  string          `json:"from"` // YYYY-MM-DD
	To    string          `json:"to"`
	Items []calendar.Item `json:"items"`
}

// EventsResponse 归一化后的全部事件
type EventsResponse struct {
	Events []calendar.Event `json:"events"`
}

// ── 视图 ──

// ViewRequest 日历视图查询参数
type ViewRequest struct {
	Mode string `form:"mode"`                     // day | week | month，大小写不敏感，默认 day
	Date string `form:"date" binding:"omitempty"` // YYYY-MM-DD，默认今天
}

// ViewResponse 日历视图；按 mode 只填充对应字段
type ViewResponse struct {
	Mode   string                 `json:"mode"`
	Anchor string                 `json:"anchor"`
	Day    *calendar.DayColumn    `json:"day,omitempty"`
	Week   []calendar.DayColumn   `json:"week,omitempty"`
	Month  *calendar.MonthView    `json:"month,omitempty"`
	Now    *calendar.NowIndicator `json:"now,omitempty"` // 锚点为今天时返回
}

// ── 日期条 ──

// DayStripRequest 日期条查询参数
//
// 服务端无状态：客户端回传当前长度与可见下标，服务端重放增长后返回完整日期序列。
type DayStripRequest struct {
	Seed         string `form:"seed"          binding:"omitempty"` // YYYY-MM-DD，默认今天
	Length       int    `form:"length"        binding:"omitempty,min=0,max=366"` // 与 calendar.DayStripLimit 一致
	VisibleIndex int    `form:"visible_index" binding:"omitempty,min=0,max=366"`
}

// DayStripResponse 日期条
type DayStripResponse struct {
	Dates    []string `json:"dates"`
	Appended int      `json:"appended"`
}
