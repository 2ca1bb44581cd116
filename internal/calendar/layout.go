package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultRowHeight 每小时行高（像素）
const DefaultRowHeight = 60.0

// ViewMode 日历视图模式
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ParseViewMode 解析视图模式（大小写不敏感），空值视为 day
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewDay:
		return ViewDay, nil
	case ViewWeek:
		return ViewWeek, nil
	case ViewMonth:
		return ViewMonth, nil
	}
	return "", fmt.Errorf("%w: 未知视图模式 %q", ErrMalformedInput, s)
}

// VerticalOffset 时刻在 24 行网格中的纵向位置：(时 + 分/60) * rowHeight
func VerticalOffset(t time.Time, rowHeight float64) float64 {
	return (float64(t.Hour()) + float64(t.Minute())/60) * rowHeight
}

// PositionedEvent 带纵向布局信息的事件
type PositionedEvent struct {
	Event
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// DayColumn 日视图 / 周视图中的一列
type DayColumn struct {
	Date   time.Time         `json:"date"`
	Events []PositionedEvent `json:"events"`
}

func position(e Event, loc *time.Location, rowHeight float64) PositionedEvent {
	return PositionedEvent{
		Event:  e,
		Top:    VerticalOffset(e.Start.In(loc), rowHeight),
		Height: e.Duration().Hours() * rowHeight,
	}
}

func sortPositioned(evs []PositionedEvent) {
	sort.SliceStable(evs, func(i, j int) bool {
		return evs[i].Start.Before(evs[j].Start)
	})
}

// LayoutDay 日视图：保留开始时刻与 anchor 同一天的事件
func LayoutDay(anchor time.Time, events []Event, rowHeight float64) DayColumn {
	col := DayColumn{Date: StartOfDay(anchor), Events: []PositionedEvent{}}
	for _, e := range events {
		if SameDate(anchor, e.Start) {
			col.Events = append(col.Events, position(e, anchor.Location(), rowHeight))
		}
	}
	sortPositioned(col.Events)
	return col
}

// LayoutWeek 周视图：从周首日起 7 列，开始或结束落在该日的事件进入该列
func LayoutWeek(anchor time.Time, events []Event, rowHeight float64, weekStart time.Weekday) []DayColumn {
	first := StartOfWeek(anchor, weekStart)
	cols := make([]DayColumn, 7)
	for i := range cols {
		date := first.AddDate(0, 0, i)
		col := DayColumn{Date: date, Events: []PositionedEvent{}}
		for _, e := range events {
			if SameDate(date, e.Start) || SameDate(date, e.End) {
				col.Events = append(col.Events, position(e, date.Location(), rowHeight))
			}
		}
		sortPositioned(col.Events)
		cols[i] = col
	}
	return cols
}

// ── 月视图 ──

// MonthCell 月网格单元
type MonthCell struct {
	Date     time.Time `json:"date"`
	InMonth  bool      `json:"in_month"`
	Selected bool      `json:"selected"`
	IsToday  bool      `json:"is_today"`
	Events   []Event   `json:"events"`
}

// MonthView 月视图
type MonthView struct {
	Year  int         `json:"year"`
	Month time.Month  `json:"month"`
	Cells []MonthCell `json:"cells"`
}

// MonthGrid 月网格：从“月初所在周首日”到“月末所在周末日”，长度恒为 7 的倍数
func MonthGrid(anchor time.Time, events []Event, today time.Time, weekStart time.Weekday) MonthView {
	y, m, _ := anchor.Date()
	loc := anchor.Location()
	firstOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	from := StartOfWeek(firstOfMonth, weekStart)
	to := EndOfWeek(lastOfMonth, weekStart)

	view := MonthView{Year: y, Month: m}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		cell := MonthCell{
			Date:     d,
			InMonth:  d.Month() == m,
			Selected: SameDate(d, anchor),
			IsToday:  SameDate(d, today),
			Events:   []Event{},
		}
		for _, e := range events {
			if SameDate(d, e.Start) {
				cell.Events = append(cell.Events, e)
			}
		}
		sort.SliceStable(cell.Events, func(i, j int) bool {
			return cell.Events[i].Start.Before(cell.Events[j].Start)
		})
		view.Cells = append(view.Cells, cell)
	}
	return view
}
