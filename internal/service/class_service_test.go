package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/repository"
)

func setupTestClassService() (ClassService, *repository.Repository) {
	repo, _ := newTestRepo()
	return NewClassService(time.UTC, repo, zap.NewNop()), repo
}

// ── Create ──

func TestClassService_Create(t *testing.T) {
	svc, repo := setupTestClassService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, "u1", &dto.CreateClassRequest{
		Name:       "Math",
		DaysOfWeek: []string{"W", "M", "W"},
		StartTime:  "09:30",
		EndTime:    "10:45",
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if resp.ID == "" {
		t.Error("应返回生成的 ID")
	}
	if !reflect.DeepEqual(resp.DaysOfWeek, []string{"M", "W"}) {
		t.Errorf("星期应去重并按 Su..Sa 排序，实际 %v", resp.DaysOfWeek)
	}

	stored, err := repo.Class.GetByID(ctx, resp.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if stored.UID != "u1" {
		t.Errorf("期望 UID=u1，实际 %s", stored.UID)
	}
}

func TestClassService_Create_Invalid(t *testing.T) {
	svc, _ := setupTestClassService()
	ctx := context.Background()

	cases := []struct {
		req  dto.CreateClassRequest
		want error
	}{
		{dto.CreateClassRequest{Name: "A", DaysOfWeek: []string{"Mo"}, StartTime: "09:00"}, ErrClassInvalidDays},
		{dto.CreateClassRequest{Name: "A", StartTime: "09:00"}, ErrClassInvalidDays},
		{dto.CreateClassRequest{Name: "A", DaysOfWeek: []string{"M"}, StartTime: "9am"}, ErrClassInvalidTime},
		{dto.CreateClassRequest{Name: "A", DaysOfWeek: []string{"M"}, StartTime: "10:00", EndTime: "10:00"}, ErrClassInvalidTime},
	}
	for _, tc := range cases {
		req := tc.req
		if _, err := svc.Create(ctx, "u1", &req); !errors.Is(err, tc.want) {
			t.Errorf("请求 %+v 期望 %v，实际 %v", tc.req, tc.want, err)
		}
	}
}

// ── List / Delete ──

func TestClassService_ListAndDelete(t *testing.T) {
	svc, _ := setupTestClassService()
	ctx := context.Background()

	mine, _ := svc.Create(ctx, "u1", &dto.CreateClassRequest{Name: "Math", DaysOfWeek: []string{"M"}, StartTime: "09:00"})
	theirs, _ := svc.Create(ctx, "u2", &dto.CreateClassRequest{Name: "Bio", DaysOfWeek: []string{"T"}, StartTime: "10:00"})

	list, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Math" {
		t.Errorf("期望只列出 u1 的课程，实际 %+v", list)
	}

	if err := svc.Delete(ctx, "u1", theirs.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("删除他人课程期望 ErrNotOwner，实际: %v", err)
	}
	if err := svc.Delete(ctx, "u1", mine.ID); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if err := svc.Delete(ctx, "u1", mine.ID); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("重复删除期望 ErrClassNotFound，实际: %v", err)
	}
}

// ── ImportICS ──

const testICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test//EN
BEGIN:VEVENT
UID:1@test
DTSTART:20240108T093000Z
DTEND:20240108T104500Z
RRULE:FREQ=WEEKLY;BYDAY=MO,WE
SUMMARY:Math
CATEGORIES:Lecture
END:VEVENT
BEGIN:VEVENT
UID:2@test
DTSTART:20240109T140000Z
DTEND:20240109T150000Z
SUMMARY:Lab
END:VEVENT
BEGIN:VEVENT
UID:3@test
DTSTART:20240111T140000Z
DTEND:20240111T150000Z
SUMMARY:Lab
END:VEVENT
BEGIN:VEVENT
UID:4@test
DTSTART:20240112T080000Z
END:VEVENT
END:VCALENDAR
`

func TestClassService_ImportICS(t *testing.T) {
	svc, repo := setupTestClassService()
	ctx := context.Background()

	resp, err := svc.ImportICS(ctx, "u1", strings.NewReader(strings.ReplaceAll(testICS, "\n", "\r\n")))
	if err != nil {
		t.Fatalf("ImportICS 失败: %v", err)
	}
	if resp.ImportedCount != 2 {
		t.Fatalf("期望导入 2 门课程（无 SUMMARY 的事件跳过），实际 %d", resp.ImportedCount)
	}

	math, lab := resp.Classes[0], resp.Classes[1]
	if math.Name != "Math" || !reflect.DeepEqual(math.DaysOfWeek, []string{"M", "W"}) ||
		math.StartTime != "09:30" || math.EndTime != "10:45" || math.ClassType != "Lecture" {
		t.Errorf("Math 解析结果不符: %+v", math)
	}
	// 两个单次 Lab 事件合并为每周二、四
	if lab.Name != "Lab" || !reflect.DeepEqual(lab.DaysOfWeek, []string{"T", "Th"}) {
		t.Errorf("Lab 应合并为 T/Th，实际 %+v", lab)
	}

	stored, _ := repo.Class.ListByOwner(ctx, "u1")
	if len(stored) != 2 {
		t.Errorf("期望落库 2 条，实际 %d", len(stored))
	}
}

func TestClassService_ImportICS_Errors(t *testing.T) {
	svc, _ := setupTestClassService()
	ctx := context.Background()

	empty := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n"
	if _, err := svc.ImportICS(ctx, "u1", strings.NewReader(empty)); !errors.Is(err, ErrICSEmpty) {
		t.Errorf("空日历期望 ErrICSEmpty，实际: %v", err)
	}
	if _, err := svc.ImportICS(ctx, "u1", strings.NewReader("not a calendar")); !errors.Is(err, ErrICSParseFailed) {
		t.Errorf("非法内容期望 ErrICSParseFailed，实际: %v", err)
	}
}

func TestParseRRuleByDay(t *testing.T) {
	got := parseRRuleByDay("FREQ=WEEKLY;BYDAY=TU,1TH,-1FR")
	want := []time.Weekday{time.Tuesday, time.Thursday, time.Friday}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
	if got := parseRRuleByDay("FREQ=DAILY;BYDAY=MO"); got != nil {
		t.Errorf("非 WEEKLY 规则应忽略 BYDAY，实际 %v", got)
	}
}
