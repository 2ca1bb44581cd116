package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/model"
	"github.com/Cameron2125/HackathonApp/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserProfileNotFound = errors.New("用户资料不存在")
)

// UserService 用户资料业务接口
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	// UpsertProfile 写入资料；空字段保留原值
	UpsertProfile(ctx context.Context, userID string, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── GetProfile ──────────────────────

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	p, err := s.repo.User.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrUserProfileNotFound
		}
		s.logger.Error("查询用户资料失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

// ────────────────────── UpsertProfile ──────────────────────

func (s *userService) UpsertProfile(ctx context.Context, userID string, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	p, err := s.repo.User.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			s.logger.Error("查询用户资料失败", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
		p = &model.UserProfile{ID: userID}
	}

	if req.Email != "" {
		p.Email = req.Email
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.School != "" {
		p.School = req.School
	}
	if req.GradeLevel != "" {
		p.GradeLevel = req.GradeLevel
	}
	if req.IndustryInterest != "" {
		p.IndustryInterest = req.IndustryInterest
	}

	if err := s.repo.User.Upsert(ctx, p); err != nil {
		s.logger.Error("写入用户资料失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

func toProfileResponse(p *model.UserProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:               p.ID,
		Email:            p.Email,
		Name:             p.Name,
		School:           p.School,
		GradeLevel:       p.GradeLevel,
		IndustryInterest: p.IndustryInterest,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}
