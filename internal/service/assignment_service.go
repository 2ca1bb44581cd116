package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/internal/calendar"
	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/model"
	"github.com/Cameron2125/HackathonApp/internal/repository"
)

// ── 作业 / 待办模块业务错误 ──

var (
	ErrAssignmentNotFound = errors.New("作业不存在")
	ErrTaskNotFound       = errors.New("待办不存在")
	ErrInvalidDueDate     = errors.New("截止时间格式无效，应为 ISO 8601")
)

// AssignmentService 作业业务接口
type AssignmentService interface {
	Create(ctx context.Context, userID string, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	List(ctx context.Context, userID string) ([]dto.AssignmentResponse, error)
	// ToggleComplete 设置完成状态（completed 为作业唯一可变字段）
	ToggleComplete(ctx context.Context, userID, assignmentID string, completed bool) (*dto.AssignmentResponse, error)
}

type assignmentService struct {
	loc    *time.Location
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(loc *time.Location, repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{loc: loc, repo: repo, logger: logger}
}

func (s *assignmentService) Create(ctx context.Context, userID string, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if _, err := calendar.ParseInstant(req.DueDate, s.loc); err != nil {
		return nil, ErrInvalidDueDate
	}

	a := &model.Assignment{
		UID:               userID,
		Name:              req.Name,
		DueDate:           req.DueDate,
		ClassName:         req.ClassName,
		Description:       req.Description,
		AnticipatedLength: req.AnticipatedLength,
	}
	if err := s.repo.Assignment.Create(ctx, a); err != nil {
		s.logger.Error("创建作业失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toAssignmentResponse(a)
	return &resp, nil
}

func (s *assignmentService) List(ctx context.Context, userID string) ([]dto.AssignmentResponse, error) {
	list, err := s.repo.Assignment.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("查询作业列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toAssignmentResponse(&list[i]))
	}
	return out, nil
}

func (s *assignmentService) ToggleComplete(ctx context.Context, userID, assignmentID string, completed bool) (*dto.AssignmentResponse, error) {
	a, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if a.UID != userID {
		return nil, ErrNotOwner
	}
	if err := s.repo.Assignment.SetCompleted(ctx, assignmentID, completed); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("更新作业状态失败", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}
	a.Completed = completed
	resp := toAssignmentResponse(a)
	return &resp, nil
}

func toAssignmentResponse(a *model.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:                a.ID,
		Name:              a.Name,
		DueDate:           a.DueDate,
		ClassName:         a.ClassName,
		Description:       a.Description,
		AnticipatedLength: a.AnticipatedLength,
		Completed:         a.Completed,
	}
}

// ═══════════════════════════════════════════════════════════
// TaskService 与课程无关的待办（MiscTasks）
// ═══════════════════════════════════════════════════════════

// TaskService 待办业务接口
type TaskService interface {
	Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	List(ctx context.Context, userID string) ([]dto.TaskResponse, error)
	ToggleComplete(ctx context.Context, userID, taskID string, completed bool) (*dto.TaskResponse, error)
}

type taskService struct {
	loc    *time.Location
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(loc *time.Location, repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{loc: loc, repo: repo, logger: logger}
}

func (s *taskService) Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if _, err := calendar.ParseInstant(req.DueDate, s.loc); err != nil {
		return nil, ErrInvalidDueDate
	}

	m := &model.MiscTask{
		UID:               userID,
		Name:              req.Name,
		DueDate:           req.DueDate,
		Description:       req.Description,
		AnticipatedLength: req.AnticipatedLength,
	}
	if err := s.repo.MiscTask.Create(ctx, m); err != nil {
		s.logger.Error("创建待办失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toTaskResponse(m)
	return &resp, nil
}

func (s *taskService) List(ctx context.Context, userID string) ([]dto.TaskResponse, error) {
	list, err := s.repo.MiscTask.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("查询待办列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(list))
	for i := range list {
		out = append(out, toTaskResponse(&list[i]))
	}
	return out, nil
}

func (s *taskService) ToggleComplete(ctx context.Context, userID, taskID string, completed bool) (*dto.TaskResponse, error) {
	m, err := s.repo.MiscTask.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if m.UID != userID {
		return nil, ErrNotOwner
	}
	if err := s.repo.MiscTask.SetCompleted(ctx, taskID, completed); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("更新待办状态失败", zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}
	m.Completed = completed
	resp := toTaskResponse(m)
	return &resp, nil
}

func toTaskResponse(m *model.MiscTask) dto.TaskResponse {
	return dto.TaskResponse{
		ID:                m.ID,
		Name:              m.Name,
		DueDate:           m.DueDate,
		Description:       m.Description,
		AnticipatedLength: m.AnticipatedLength,
		Completed:         m.Completed,
	}
}
