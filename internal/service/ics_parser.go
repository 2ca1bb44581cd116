package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Cameron2125/HackathonApp/internal/calendar"
	"github.com/Cameron2125/HackathonApp/internal/model"
)

// ── ICS 解析器 ──────────────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容解析为每周重复的课程列表。
//
// 设计决策：
//   - DTSTART/DTEND 确定上课时刻（按服务时区换算为 HH:MM）
//   - RRULE 含 BYDAY 时取其全部星期，否则取 DTSTART 所在星期
//   - 单次事件同样视为该星期的课程（学校系统常把每次课导出为独立事件）
//   - 合并同 name+startTime+endTime 的事件，星期取并集
// ─────────────────────────────────────────────────────────────

const icsMaxFileSize = 5 * 1024 * 1024 // 5MB

// icsByDay RRULE BYDAY 代码 → 星期
var icsByDay = map[string]time.Weekday{
	"SU": time.Sunday, "MO": time.Monday, "TU": time.Tuesday, "WE": time.Wednesday,
	"TH": time.Thursday, "FR": time.Friday, "SA": time.Saturday,
}

// parsedClassEvent ICS 解析中间结构
type parsedClassEvent struct {
	Name      string
	Category  string
	Days      [7]bool
	StartTime string
	EndTime   string
}

// ParseICS 解析 ICS 内容并转为课程列表（未落库，UID 由调用方填写）
func ParseICS(reader io.Reader, loc *time.Location) ([]model.Class, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	// 阶段 1: 解析所有 VEVENT
	var events []parsedClassEvent
	for _, comp := range cal.Events() {
		evt, ok := parseVEvent(comp, loc)
		if !ok {
			continue
		}
		events = append(events, evt)
	}

	// 阶段 2: 合并同课程（name+startTime+endTime 相同）的星期
	merged := mergeEvents(events)

	// 阶段 3: 转为 model.Class
	result := make([]model.Class, 0, len(merged))
	for _, evt := range merged {
		var days []string
		for d, on := range evt.Days {
			if on {
				days = append(days, calendar.WeekdayCode(time.Weekday(d)))
			}
		}
		result = append(result, model.Class{
			Name:       evt.Name,
			DaysOfWeek: days,
			StartTime:  evt.StartTime,
			EndTime:    evt.EndTime,
			ClassType:  evt.Category,
		})
	}
	return result, nil
}

// parseVEvent 解析单个 VEVENT 组件
func parseVEvent(evt *ics.VEvent, loc *time.Location) (parsedClassEvent, bool) {
	summary := evt.GetProperty(ics.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return parsedClassEvent{}, false
	}

	dtStart, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return parsedClassEvent{}, false
	}
	dtEnd, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil || !dtEnd.After(dtStart) {
		// 无 DTEND 时使用默认课程时长
		dtEnd = dtStart.Add(calendar.DefaultClassDuration)
	}
	// 跨天的事件截断到当天 23:59
	if !calendar.SameDate(dtStart, dtEnd) {
		y, m, d := dtStart.Date()
		dtEnd = time.Date(y, m, d, 23, 59, 0, 0, loc)
	}

	parsed := parsedClassEvent{
		Name:      strings.TrimSpace(summary.Value),
		StartTime: dtStart.Format("15:04"),
		EndTime:   dtEnd.Format("15:04"),
	}
	if cat := evt.GetProperty(ics.ComponentPropertyCategories); cat != nil {
		parsed.Category = strings.TrimSpace(strings.SplitN(cat.Value, ",", 2)[0])
	}

	byDay := false
	if rruleProp := evt.GetProperty(ics.ComponentPropertyRrule); rruleProp != nil {
		for _, d := range parseRRuleByDay(rruleProp.Value) {
			parsed.Days[d] = true
			byDay = true
		}
	}
	if !byDay {
		parsed.Days[dtStart.Weekday()] = true
	}
	return parsed, true
}

// parseRRuleByDay 解析 RRULE 中 FREQ=WEEKLY 的 BYDAY（如 FREQ=WEEKLY;BYDAY=MO,WE）
func parseRRuleByDay(value string) []time.Weekday {
	var freq string
	var days []time.Weekday
	for _, part := range strings.Split(value, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToUpper(kv[0]) {
		case "FREQ":
			freq = strings.ToUpper(kv[1])
		case "BYDAY":
			for _, code := range strings.Split(kv[1], ",") {
				code = strings.ToUpper(strings.TrimSpace(code))
				// 去掉序数前缀（如 1MO、-1FR）
				if len(code) > 2 {
					code = code[len(code)-2:]
				}
				if d, ok := icsByDay[code]; ok {
					days = append(days, d)
				}
			}
		}
	}
	if freq != "WEEKLY" {
		return nil
	}
	return days
}

// mergeEvents 合并相同课程事件的星期
func mergeEvents(events []parsedClassEvent) []parsedClassEvent {
	type key struct {
		Name      string
		StartTime string
		EndTime   string
	}
	merged := make(map[key]*parsedClassEvent)
	order := []key{}

	for _, e := range events {
		k := key{Name: e.Name, StartTime: e.StartTime, EndTime: e.EndTime}
		if existing, ok := merged[k]; ok {
			for d, on := range e.Days {
				if on {
					existing.Days[d] = true
				}
			}
			if existing.Category == "" {
				existing.Category = e.Category
			}
		} else {
			cp := e
			merged[k] = &cp
			order = append(order, k)
		}
	}

	result := make([]parsedClassEvent, 0, len(merged))
	for _, k := range order {
		result = append(result, *merged[k])
	}
	return result
}

// parseICSDateTime 从 VEVENT 中解析日期时间属性
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", propName)
	}
	val := prop.Value

	// 尝试多种 ICS 日期格式
	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}

	// 检查 TZID 参数
	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	for _, layout := range formats {
		if t, err := time.Parse(layout, val); err == nil {
			if strings.HasSuffix(layout, "Z") {
				return t.In(loc), nil
			}
			if tzid != "" {
				if tzLoc, err := time.LoadLocation(tzid); err == nil {
					return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, tzLoc).In(loc), nil
				}
			}
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("无法解析日期: %s", val)
}
