package calendar

import (
	"sort"
	"time"
)

// DefaultWindowDays 首页“未来一周”窗口天数（含今天）
const DefaultWindowDays = 7

// Item 首页议程条目
// 课程按星期拆分后的每个实例、每个作业、每个待办各占一条
type Item struct {
	Kind      EventKind `json:"kind"`
	SourceID  string    `json:"source_id"`
	Name      string    `json:"name"`
	Day       string    `json:"day,omitempty"` // 仅课程实例
	At        time.Time `json:"at"`
	Category  string    `json:"category,omitempty"`
	ClassName string    `json:"class_name,omitempty"`
	Completed bool      `json:"completed"`
}

// SplitClassByDays 将课程拆成每个上课星期一条，At 为该星期的出现时刻
func SplitClassByDays(today time.Time, c ClassSchedule) ([]Item, error) {
	tod, err := ParseTimeOfDay(c.StartTime)
	if err != nil {
		return nil, err
	}
	days := UniqueDays(c.Days)
	items := make([]Item, 0, len(days))
	for _, code := range days {
		day, err := ParseWeekday(code)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{
			Kind:     KindClass,
			SourceID: c.ID,
			Name:     c.Name,
			Day:      code,
			At:       NextOccurrence(today, day, tod),
			Category: c.Category,
		})
	}
	return items, nil
}

// AssignmentItem 作业条目，At 为截止时刻
func AssignmentItem(a Assignment) Item {
	return Item{
		Kind:      KindAssignment,
		SourceID:  a.ID,
		Name:      a.Name,
		At:        a.Due,
		ClassName: a.ClassName,
		Completed: a.Completed,
	}
}

// TaskItem 待办条目，At 为截止时刻
func TaskItem(t Task) Item {
	return Item{
		Kind:      KindTask,
		SourceID:  t.ID,
		Name:      t.Name,
		At:        t.Due,
		Completed: t.Completed,
	}
}

// SortItems 按 At 升序稳定排序，相同时刻保持输入顺序；返回新切片
func SortItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.Before(out[j].At)
	})
	return out
}

// InWindow 判断 t 的日历日是否落在从 today 开始的 days 个日历日内（只比较日期）
func InWindow(today, t time.Time, days int) bool {
	d := daysBetween(today, t)
	return d >= 0 && d < days
}

// FilterWindow 保留落在窗口内的条目，顺序不变
func FilterWindow(today time.Time, items []Item, days int) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if InWindow(today, it.At, days) {
			out = append(out, it)
		}
	}
	return out
}

// BuildAgenda 首页议程：拆分 → 窗口过滤 → 排序
func BuildAgenda(today time.Time, classes []ClassSchedule, assignments []Assignment, tasks []Task, days int) ([]Item, error) {
	if days <= 0 {
		days = DefaultWindowDays
	}

	items := make([]Item, 0, len(classes)*2+len(assignments)+len(tasks))
	for _, c := range classes {
		split, err := SplitClassByDays(today, c)
		if err != nil {
			return nil, err
		}
		items = append(items, split...)
	}
	for _, a := range assignments {
		items = append(items, AssignmentItem(a))
	}
	for _, t := range tasks {
		items = append(items, TaskItem(t))
	}

	return SortItems(FilterWindow(today, items, days)), nil
}
