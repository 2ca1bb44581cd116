package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/internal/calendar"
	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/model"
	"github.com/Cameron2125/HackathonApp/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrClassNotFound    = errors.New("课程不存在")
	ErrClassInvalidDays = errors.New("上课星期无效，应为 Su M T W Th F Sa")
	ErrClassInvalidTime = errors.New("上课时间无效，应为 HH:MM 且结束晚于开始")
	ErrICSParseFailed   = errors.New("ICS 文件解析失败")
	ErrICSEmpty         = errors.New("ICS 文件中没有可导入的课程")
)

// ClassService 课程业务接口
type ClassService interface {
	Create(ctx context.Context, userID string, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	List(ctx context.Context, userID string) ([]dto.ClassResponse, error)
	Delete(ctx context.Context, userID, classID string) error
	// ImportICS 从 iCalendar 文件导入每周课程
	ImportICS(ctx context.Context, userID string, reader io.Reader) (*dto.ImportICSResponse, error)
}

type classService struct {
	loc    *time.Location
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService 创建 ClassService 实例
func NewClassService(loc *time.Location, repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{loc: loc, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *classService) Create(ctx context.Context, userID string, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	days, err := normalizeDays(req.DaysOfWeek)
	if err != nil {
		return nil, err
	}
	if err := checkClassTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	class := &model.Class{
		UID:        userID,
		Name:       req.Name,
		DaysOfWeek: days,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		ClassType:  req.ClassType,
	}
	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("创建课程失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toClassResponse(class)
	return &resp, nil
}

// normalizeDays 校验星期代码，去重并按 Su..Sa 排序
func normalizeDays(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, ErrClassInvalidDays
	}
	var seen [7]bool
	for _, code := range codes {
		d, err := calendar.ParseWeekday(code)
		if err != nil {
			return nil, ErrClassInvalidDays
		}
		seen[d] = true
	}
	out := make([]string, 0, len(codes))
	for d, on := range seen {
		if on {
			out = append(out, calendar.WeekdayCode(time.Weekday(d)))
		}
	}
	return out, nil
}

// checkClassTimes 开始时间必填；结束时间可选，填写时须晚于开始
func checkClassTimes(start, end string) error {
	st, err := calendar.ParseTimeOfDay(start)
	if err != nil {
		return ErrClassInvalidTime
	}
	if end == "" {
		return nil
	}
	et, err := calendar.ParseTimeOfDay(end)
	if err != nil || et.Minutes() <= st.Minutes() {
		return ErrClassInvalidTime
	}
	return nil
}

// ────────────────────── List ──────────────────────

func (s *classService) List(ctx context.Context, userID string) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		out = append(out, toClassResponse(&classes[i]))
	}
	return out, nil
}

// ────────────────────── Delete ──────────────────────

func (s *classService) Delete(ctx context.Context, userID, classID string) error {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	if class.UID != userID {
		return ErrNotOwner
	}
	if err := s.repo.Class.Delete(ctx, classID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrClassNotFound
		}
		s.logger.Error("删除课程失败", zap.String("class_id", classID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ImportICS ──────────────────────

func (s *classService) ImportICS(ctx context.Context, userID string, reader io.Reader) (*dto.ImportICSResponse, error) {
	parsed, err := ParseICS(reader, s.loc)
	if err != nil {
		s.logger.Warn("ICS 解析失败", zap.String("user_id", userID), zap.Error(err))
		return nil, ErrICSParseFailed
	}
	if len(parsed) == 0 {
		return nil, ErrICSEmpty
	}

	resp := &dto.ImportICSResponse{Classes: make([]dto.ClassResponse, 0, len(parsed))}
	for i := range parsed {
		class := &parsed[i]
		if err := checkClassTimes(class.StartTime, class.EndTime); err != nil {
			s.logger.Warn("跳过时间无效的 ICS 课程", zap.String("name", class.Name), zap.Error(err))
			continue
		}
		class.UID = userID
		if err := s.repo.Class.Create(ctx, class); err != nil {
			s.logger.Error("导入课程失败", zap.String("user_id", userID), zap.String("name", class.Name), zap.Error(err))
			return nil, err
		}
		resp.Classes = append(resp.Classes, toClassResponse(class))
	}
	if len(resp.Classes) == 0 {
		return nil, ErrICSEmpty
	}
	resp.ImportedCount = len(resp.Classes)

	s.logger.Info("ICS 课程导入完成", zap.String("user_id", userID), zap.Int("count", resp.ImportedCount))
	return resp, nil
}

func toClassResponse(c *model.Class) dto.ClassResponse {
	return dto.ClassResponse{
		ID:         c.ID,
		Name:       c.Name,
		DaysOfWeek: c.DaysOfWeek,
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
		ClassType:  c.ClassType,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}
