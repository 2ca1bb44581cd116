package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/Cameron2125/HackathonApp/pkg/errors"
)

// ErrMalformedInput 星期代码或 HH:MM 时间无法解析
var ErrMalformedInput = apperrors.ErrMalformedInput

// weekdayCodes 星期代码表，下标与 time.Weekday 一致（0=周日）
var weekdayCodes = [7]string{"Su", "M", "T", "W", "Th", "F", "Sa"}

// WeekdayCodes 返回全部星期代码（周日开始）
func WeekdayCodes() []string {
	out := make([]string, len(weekdayCodes))
	copy(out, weekdayCodes[:])
	return out
}

// ParseWeekday 将星期代码解析为 time.Weekday
func ParseWeekday(code string) (time.Weekday, error) {
	for i, c := range weekdayCodes {
		if c == code {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: 未知星期代码 %q", ErrMalformedInput, code)
}

// UniqueDays 按星期去重，保留首次出现的顺序
// 无法解析的代码原样保留，由调用方在解析时报错
func UniqueDays(codes []string) []string {
	var seen [7]bool
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		d, err := ParseWeekday(code)
		if err == nil {
			if seen[d] {
				continue
			}
			seen[d] = true
		}
		out = append(out, code)
	}
	return out
}

// WeekdayCode 返回 time.Weekday 对应的星期代码
func WeekdayCode(d time.Weekday) string {
	return weekdayCodes[int(d)%7]
}

// TimeOfDay 一天中的时刻（24 小时制）
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay 解析 "HH:MM"，小时 0-23、分钟 0-59
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return TimeOfDay{}, fmt.Errorf("%w: 时间格式应为 HH:MM，实际 %q", ErrMalformedInput, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: 小时无效 %q", ErrMalformedInput, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: 分钟无效 %q", ErrMalformedInput, s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// String 格式化为 HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes 距零点的分钟数
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// On 将时刻落到 date 所在日历日
func (t TimeOfDay) On(date time.Time) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, t.Hour, t.Minute, 0, 0, date.Location())
}

// ── 日期工具 ──

// StartOfDay 当日零点
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate 两个时刻是否落在同一日历日（按 a 的时区比较）
func SameDate(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfWeek 返回包含 t 的那一周的第一天零点
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	diff := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return StartOfDay(t).AddDate(0, 0, -diff)
}

// EndOfWeek 返回包含 t 的那一周的最后一天零点
func EndOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	return StartOfWeek(t, weekStart).AddDate(0, 0, 6)
}

// daysBetween 两个日历日之间相差的天数（b - a）
func daysBetween(a, b time.Time) int {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// instantLayouts 截止时刻可接受的格式，带时区的优先
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInstant 解析 ISO 日期时间；未带时区的文本按 loc 解释
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range instantLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: 无法解析日期时间 %q", ErrMalformedInput, s)
}
