package calendar

import (
	"fmt"
	"time"
)

// DefaultClassDuration 未填写结束时间的课程默认时长
const DefaultClassDuration = time.Hour

// ── 输入记录 ──

// ClassSchedule 每周重复的课程
type ClassSchedule struct {
	ID        string
	Name      string
	Days      []string // 星期代码集合，如 ["M","W"]
	StartTime string   // HH:MM
	EndTime   string   // HH:MM，可为空
	Category  string
}

// Assignment 一次性的作业，截止时刻即事件时刻
type Assignment struct {
	ID              string
	Name            string
	Due             time.Time
	ClassName       string
	Description     string
	EstimatedEffort string
	Completed       bool
}

// Task 与课程无关的一次性待办
type Task struct {
	ID              string
	Name            string
	Due             time.Time
	Description     string
	EstimatedEffort string
	Completed       bool
}

// EventKind 事件来源类型
type EventKind string

const (
	KindClass      EventKind = "class"
	KindAssignment EventKind = "assignment"
	KindTask       EventKind = "task"
)

// Event 日历渲染使用的统一事件，每次计算生成，不落库
type Event struct {
	ID       string    `json:"id"`
	SourceID string    `json:"source_id"`
	Kind     EventKind `json:"kind"`
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Duration 事件时长
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Normalizer 把课程、作业、待办转换为 Event 列表
type Normalizer struct {
	ClassDuration time.Duration
}

// Normalize 使用默认课程时长进行转换
func Normalize(today time.Time, classes []ClassSchedule, assignments []Assignment, tasks []Task) ([]Event, error) {
	return Normalizer{ClassDuration: DefaultClassDuration}.Normalize(today, classes, assignments, tasks)
}

// Normalize 每门课按星期拆成多个事件；作业与待办各生成一个起止相同的事件
//
// 输出长度 = Σ|课程星期集合| + |作业| + |待办|。
func (n Normalizer) Normalize(today time.Time, classes []ClassSchedule, assignments []Assignment, tasks []Task) ([]Event, error) {
	size := len(assignments) + len(tasks)
	for i := range classes {
		size += len(classes[i].Days)
	}
	events := make([]Event, 0, size)

	for i := range classes {
		evs, err := n.ClassEvents(today, &classes[i])
		if err != nil {
			return nil, err
		}
		events = append(events, evs...)
	}
	for _, a := range assignments {
		events = append(events, AssignmentEvent(a))
	}
	for _, t := range tasks {
		events = append(events, TaskEvent(t))
	}
	return events, nil
}

// ClassEvents 为课程的每个上课星期生成一个事件，ID 为 <课程ID>-<星期代码>
func (n Normalizer) ClassEvents(today time.Time, c *ClassSchedule) ([]Event, error) {
	start, err := ParseTimeOfDay(c.StartTime)
	if err != nil {
		return nil, fmt.Errorf("课程 %s: %w", c.ID, err)
	}

	var end *TimeOfDay
	if c.EndTime != "" {
		e, err := ParseTimeOfDay(c.EndTime)
		if err != nil {
			return nil, fmt.Errorf("课程 %s: %w", c.ID, err)
		}
		if e.Minutes() <= start.Minutes() {
			return nil, fmt.Errorf("课程 %s: %w: 结束时间 %s 不晚于开始时间 %s", c.ID, ErrMalformedInput, e, start)
		}
		end = &e
	}

	dur := n.ClassDuration
	if dur <= 0 {
		dur = DefaultClassDuration
	}

	// 同一星期重复出现时只生成一个事件，保证事件 ID 唯一
	days := UniqueDays(c.Days)
	events := make([]Event, 0, len(days))
	for _, code := range days {
		day, err := ParseWeekday(code)
		if err != nil {
			return nil, fmt.Errorf("课程 %s: %w", c.ID, err)
		}
		at := NextOccurrence(today, day, start)
		finish := at.Add(dur)
		if end != nil {
			finish = end.On(at)
		}
		events = append(events, Event{
			ID:       c.ID + "-" + code,
			SourceID: c.ID,
			Kind:     KindClass,
			Name:     c.Name,
			Start:    at,
			End:      finish,
		})
	}
	return events, nil
}

// AssignmentEvent 作业事件：start == end == 截止时刻
func AssignmentEvent(a Assignment) Event {
	return Event{ID: a.ID, SourceID: a.ID, Kind: KindAssignment, Name: a.Name, Start: a.Due, End: a.Due}
}

// TaskEvent 待办事件：start == end == 截止时刻
func TaskEvent(t Task) Event {
	return Event{ID: t.ID, SourceID: t.ID, Kind: KindTask, Name: t.Name, Start: t.Due, End: t.Due}
}
