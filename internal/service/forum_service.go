package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/config"
	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/model"
	"github.com/Cameron2125/HackathonApp/internal/repository"
)

// ── 社区问答模块业务错误 ──

var (
	ErrQuestionNotFound  = errors.New("问题不存在")
	ErrMessageNotFound   = errors.New("回复不存在")
	ErrCommunityNotFound = errors.New("社区不存在")
	ErrInvalidDirection  = errors.New("投票方向无效")
	ErrResponseMismatch  = errors.New("采纳的回复不属于该问题")
	ErrCommunityNotEmpty = errors.New("社区已有问题，无需初始化")
)

const defaultRemovalMargin = 5

// starterQuestions 空社区的初始问题
var starterQuestions = []model.Question{
	{Question: "What is the best study resource?"},
	{Question: "Any tips for first-year students?", Answered: true},
	{Question: "What's the best place to eat on campus?"},
}

// ForumService 社区问答业务接口
type ForumService interface {
	ListCommunities(ctx context.Context) ([]dto.CommunityResponse, error)
	ListQuestions(ctx context.Context, communityID string) ([]dto.QuestionResponse, error)
	AskQuestion(ctx context.Context, userID, communityID string, req *dto.AskQuestionRequest) (*dto.QuestionResponse, error)
	// VoteQuestion 赞 / 踩；踩数超出赞数达到阈值时删除问题及其回复
	VoteQuestion(ctx context.Context, questionID string, req *dto.VoteQuestionRequest) (*dto.VoteQuestionResponse, error)
	MarkAnswered(ctx context.Context, userID, questionID string, req *dto.MarkAnsweredRequest) (*dto.QuestionResponse, error)
	ListMessages(ctx context.Context, questionID string) ([]dto.MessageResponse, error)
	PostMessage(ctx context.Context, userID, questionID string, req *dto.PostMessageRequest) (*dto.MessageResponse, error)
	VoteMessage(ctx context.Context, messageID string, req *dto.VoteMessageRequest) (*dto.MessageResponse, error)
	RemoveMessage(ctx context.Context, userID, messageID string) error
	// SeedQuestions 向空社区写入初始问题
	SeedQuestions(ctx context.Context, communityID string) (*dto.SeedQuestionsResponse, error)
}

type forumService struct {
	cfg    *config.ForumConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewForumService 创建 ForumService 实例
func NewForumService(cfg *config.ForumConfig, repo *repository.Repository, logger *zap.Logger) ForumService {
	return &forumService{cfg: cfg, repo: repo, logger: logger}
}

func (s *forumService) removalMargin() int {
	if s.cfg.RemovalMargin <= 0 {
		return defaultRemovalMargin
	}
	return s.cfg.RemovalMargin
}

// ────────────────────── Communities ──────────────────────

func (s *forumService) ListCommunities(ctx context.Context) ([]dto.CommunityResponse, error) {
	list, err := s.repo.Community.List(ctx)
	if err != nil {
		s.logger.Error("查询社区列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.CommunityResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CommunityResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return out, nil
}

// ────────────────────── Questions ──────────────────────

func (s *forumService) ListQuestions(ctx context.Context, communityID string) ([]dto.QuestionResponse, error) {
	list, err := s.repo.Question.ListByCommunity(ctx, communityID)
	if err != nil {
		s.logger.Error("查询问题列表失败", zap.String("community_id", communityID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.QuestionResponse, 0, len(list))
	for i := range list {
		out = append(out, toQuestionResponse(&list[i]))
	}
	return out, nil
}

func (s *forumService) AskQuestion(ctx context.Context, userID, communityID string, req *dto.AskQuestionRequest) (*dto.QuestionResponse, error) {
	if err := s.checkCommunity(ctx, communityID); err != nil {
		return nil, err
	}
	q := &model.Question{
		CID:      communityID,
		Question: req.Question,
		UID:      userID,
	}
	if err := s.repo.Question.Create(ctx, q); err != nil {
		s.logger.Error("创建问题失败", zap.String("community_id", communityID), zap.Error(err))
		return nil, err
	}
	resp := toQuestionResponse(q)
	return &resp, nil
}

// checkCommunity 默认社区不存在时自动创建，其它社区须已存在
func (s *forumService) checkCommunity(ctx context.Context, communityID string) error {
	_, err := s.repo.Community.GetByID(ctx, communityID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return err
	}
	if communityID != s.cfg.DefaultCommunity {
		return ErrCommunityNotFound
	}
	return s.repo.Community.Ensure(ctx, &model.Community{ID: communityID, Name: "General"})
}

func (s *forumService) VoteQuestion(ctx context.Context, questionID string, req *dto.VoteQuestionRequest) (*dto.VoteQuestionResponse, error) {
	q, err := s.getQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	switch req.Direction {
	case "up":
		q.Upvotes = applyVote(q.Upvotes, req.Undo)
	case "down":
		q.Downvotes = applyVote(q.Downvotes, req.Undo)
	default:
		return nil, ErrInvalidDirection
	}

	if q.ShouldRemove(s.removalMargin()) {
		if err := s.removeQuestion(ctx, q); err != nil {
			return nil, err
		}
		s.logger.Info("问题因踩数过多被删除",
			zap.String("question_id", q.ID),
			zap.Int("upvotes", q.Upvotes),
			zap.Int("downvotes", q.Downvotes),
		)
		return &dto.VoteQuestionResponse{Removed: true}, nil
	}

	if err := s.repo.Question.UpdateVotes(ctx, q.ID, q.Upvotes, q.Downvotes); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		s.logger.Error("更新问题投票失败", zap.String("question_id", q.ID), zap.Error(err))
		return nil, err
	}
	resp := toQuestionResponse(q)
	return &dto.VoteQuestionResponse{Question: &resp}, nil
}

// applyVote 计数 +1，撤销时 -1 且不低于 0
func applyVote(n int, undo bool) int {
	if !undo {
		return n + 1
	}
	if n > 0 {
		return n - 1
	}
	return 0
}

// removeQuestion 先删除回复再删除问题，避免遗留孤立回复
func (s *forumService) removeQuestion(ctx context.Context, q *model.Question) error {
	messages, err := s.repo.Message.ListByQuestion(ctx, q.ID)
	if err != nil {
		s.logger.Error("查询问题回复失败", zap.String("question_id", q.ID), zap.Error(err))
		return err
	}
	for _, m := range messages {
		if err := s.repo.Message.Delete(ctx, m.ID); err != nil && !errors.Is(err, docstore.ErrNotFound) {
			s.logger.Error("删除回复失败", zap.String("message_id", m.ID), zap.Error(err))
			return err
		}
	}
	if err := s.repo.Question.Delete(ctx, q.ID); err != nil && !errors.Is(err, docstore.ErrNotFound) {
		s.logger.Error("删除问题失败", zap.String("question_id", q.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *forumService) MarkAnswered(ctx context.Context, userID, questionID string, req *dto.MarkAnsweredRequest) (*dto.QuestionResponse, error) {
	q, err := s.getQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	// 初始问题没有提问者，任何人可标记
	if q.UID != "" && q.UID != userID {
		return nil, ErrNotOwner
	}

	answered := *req.Answered
	responseMID := ""
	if answered && req.ResponseMID != "" {
		m, err := s.repo.Message.GetByID(ctx, req.ResponseMID)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return nil, ErrMessageNotFound
			}
			return nil, err
		}
		if m.QID != q.ID {
			return nil, ErrResponseMismatch
		}
		responseMID = m.ID
	}

	if err := s.repo.Question.SetAnswered(ctx, q.ID, answered, responseMID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		s.logger.Error("更新问题解答状态失败", zap.String("question_id", q.ID), zap.Error(err))
		return nil, err
	}
	q.Answered = answered
	q.ResponseMID = responseMID
	resp := toQuestionResponse(q)
	return &resp, nil
}

func (s *forumService) getQuestion(ctx context.Context, questionID string) (*model.Question, error) {
	q, err := s.repo.Question.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// ────────────────────── Messages ──────────────────────

func (s *forumService) ListMessages(ctx context.Context, questionID string) ([]dto.MessageResponse, error) {
	if _, err := s.getQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	list, err := s.repo.Message.ListByQuestion(ctx, questionID)
	if err != nil {
		s.logger.Error("查询回复列表失败", zap.String("question_id", questionID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.MessageResponse, 0, len(list))
	for i := range list {
		out = append(out, toMessageResponse(&list[i]))
	}
	return out, nil
}

func (s *forumService) PostMessage(ctx context.Context, userID, questionID string, req *dto.PostMessageRequest) (*dto.MessageResponse, error) {
	if _, err := s.getQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	m := &model.Message{
		QID:     questionID,
		Message: req.Message,
		UID:     userID,
	}
	if err := s.repo.Message.Create(ctx, m); err != nil {
		s.logger.Error("创建回复失败", zap.String("question_id", questionID), zap.Error(err))
		return nil, err
	}
	resp := toMessageResponse(m)
	return &resp, nil
}

func (s *forumService) VoteMessage(ctx context.Context, messageID string, req *dto.VoteMessageRequest) (*dto.MessageResponse, error) {
	m, err := s.getMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	switch req.Direction {
	case "like":
		m.Likes = applyVote(m.Likes, req.Undo)
	case "dislike":
		m.Dislikes = applyVote(m.Dislikes, req.Undo)
	default:
		return nil, ErrInvalidDirection
	}

	if err := s.repo.Message.UpdateVotes(ctx, m.ID, m.Likes, m.Dislikes); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		s.logger.Error("更新回复投票失败", zap.String("message_id", m.ID), zap.Error(err))
		return nil, err
	}
	resp := toMessageResponse(m)
	return &resp, nil
}

func (s *forumService) RemoveMessage(ctx context.Context, userID, messageID string) error {
	m, err := s.getMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if m.UID != "" && m.UID != userID {
		return ErrNotOwner
	}
	if err := s.repo.Message.Delete(ctx, m.ID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrMessageNotFound
		}
		s.logger.Error("删除回复失败", zap.String("message_id", m.ID), zap.Error(err))
		return err
	}

	// 被采纳的回复删除后清除问题上的引用
	q, err := s.repo.Question.GetByID(ctx, m.QID)
	if err == nil && q.ResponseMID == m.ID {
		if err := s.repo.Question.SetAnswered(ctx, q.ID, q.Answered, ""); err != nil {
			s.logger.Warn("清除采纳回复失败", zap.String("question_id", q.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *forumService) getMessage(ctx context.Context, messageID string) (*model.Message, error) {
	m, err := s.repo.Message.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return m, nil
}

// ────────────────────── SeedQuestions ──────────────────────

func (s *forumService) SeedQuestions(ctx context.Context, communityID string) (*dto.SeedQuestionsResponse, error) {
	if err := s.checkCommunity(ctx, communityID); err != nil {
		return nil, err
	}
	exists, err := s.repo.Question.HasAny(ctx, communityID)
	if err != nil {
		s.logger.Error("查询社区问题失败", zap.String("community_id", communityID), zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrCommunityNotEmpty
	}

	for _, tpl := range starterQuestions {
		q := tpl
		q.CID = communityID
		if err := s.repo.Question.Create(ctx, &q); err != nil {
			s.logger.Error("写入初始问题失败", zap.String("community_id", communityID), zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("社区初始问题写入完成", zap.String("community_id", communityID), zap.Int("count", len(starterQuestions)))
	return &dto.SeedQuestionsResponse{Seeded: len(starterQuestions)}, nil
}

// ── 转换 ──

func toQuestionResponse(q *model.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:          q.ID,
		CommunityID: q.CID,
		Question:    q.Question,
		Answered:    q.Answered,
		Upvotes:     q.Upvotes,
		Downvotes:   q.Downvotes,
		ResponseMID: q.ResponseMID,
	}
}

func toMessageResponse(m *model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:         m.ID,
		QuestionID: m.QID,
		Message:    m.Message,
		Likes:      m.Likes,
		Dislikes:   m.Dislikes,
	}
}
