package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/config"
	"github.com/Cameron2125/HackathonApp/internal/calendar"
	"github.com/Cameron2125/HackathonApp/internal/dto"
	"github.com/Cameron2125/HackathonApp/internal/repository"
)

// ── 日历模块业务错误 ──

var (
	ErrCalendarInvalidDate = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrCalendarInvalidMode = errors.New("视图模式无效，应为 day | week | month")
)

const dateLayout = "2006-01-02"

// CalendarService 日历业务接口
//
// 所有派生数据（事件、议程、视图布局）在每次请求时由存储中的课程、作业、待办重新计算，不落库。
type CalendarService interface {
	// GetAgenda 首页议程：未来 window_days 个日历日内的课程实例、作业、待办，按时间升序
	GetAgenda(ctx context.Context, userID string) (*dto.AgendaResponse, error)
	// GetEvents 归一化后的全部事件
	GetEvents(ctx context.Context, userID string) (*dto.EventsResponse, error)
	// GetView 日 / 周 / 月视图布局
	GetView(ctx context.Context, userID string, req *dto.ViewRequest) (*dto.ViewResponse, error)
	// GetNowIndicator 当前时间指示线
	GetNowIndicator() calendar.NowIndicator
	// WatchNow 按刷新间隔持续推送指示线，直到 ctx 结束
	WatchNow(ctx context.Context, fn func(calendar.NowIndicator)) error
	// GetDayStrip 横向日期条
	GetDayStrip(req *dto.DayStripRequest) (*dto.DayStripResponse, error)
	// ExportICS 导出 iCalendar
	ExportICS(ctx context.Context, userID string) ([]byte, string, error)
	// ExportWeekExcel 导出锚点所在周的课表 Excel
	ExportWeekExcel(ctx context.Context, userID, date string) ([]byte, string, error)
}

type calendarService struct {
	cfg        *config.CalendarConfig
	loc        *time.Location
	normalizer calendar.Normalizer
	repo       *repository.Repository
	logger     *zap.Logger
	now        Clock
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(cfg *config.CalendarConfig, loc *time.Location, repo *repository.Repository, logger *zap.Logger, now Clock) CalendarService {
	if now == nil {
		now = time.Now
	}
	return &calendarService{
		cfg:        cfg,
		loc:        loc,
		normalizer: calendar.Normalizer{ClassDuration: cfg.DefaultClassDuration},
		repo:       repo,
		logger:     logger,
		now:        now,
	}
}

func (s *calendarService) today() time.Time {
	return s.now().In(s.loc)
}

func (s *calendarService) rowHeight() float64 {
	if s.cfg.RowHeight <= 0 {
		return calendar.DefaultRowHeight
	}
	return s.cfg.RowHeight
}

func (s *calendarService) weekStart() time.Weekday {
	return time.Weekday(s.cfg.WeekStart)
}

// ── 数据源 ──

type calendarSources struct {
	classes     []calendar.ClassSchedule
	assignments []calendar.Assignment
	tasks       []calendar.Task
}

// loadSources 读取用户的课程、作业、待办并转为日历层输入
// 无法参与计算的记录（时间非法、结束早于开始）记录日志后跳过
func (s *calendarService) loadSources(ctx context.Context, userID string, today time.Time) (*calendarSources, error) {
	classes, err := s.repo.Class.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("查询课程失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("查询作业失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	tasks, err := s.repo.MiscTask.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("查询待办失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	src := &calendarSources{}
	for i := range classes {
		sched := classes[i].Schedule()
		if _, err := s.normalizer.ClassEvents(today, &sched); err != nil {
			s.logger.Warn("跳过无法展开的课程", zap.String("class_id", sched.ID), zap.Error(err))
			continue
		}
		src.classes = append(src.classes, sched)
	}
	for i := range assignments {
		a, err := assignments[i].Calendar(s.loc)
		if err != nil {
			s.logger.Warn("跳过截止时间无效的作业", zap.String("assignment_id", assignments[i].ID), zap.Error(err))
			continue
		}
		src.assignments = append(src.assignments, a)
	}
	for i := range tasks {
		t, err := tasks[i].Calendar(s.loc)
		if err != nil {
			s.logger.Warn("跳过截止时间无效的待办", zap.String("task_id", tasks[i].ID), zap.Error(err))
			continue
		}
		src.tasks = append(src.tasks, t)
	}
	return src, nil
}

func (s *calendarService) events(ctx context.Context, userID string, today time.Time) ([]calendar.Event, error) {
	src, err := s.loadSources(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Normalize(today, src.classes, src.assignments, src.tasks)
}

// ────────────────────── GetAgenda ──────────────────────

func (s *calendarService) GetAgenda(ctx context.Context, userID string) (*dto.AgendaResponse, error) {
	today := s.today()
	src, err := s.loadSources(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	days := s.cfg.WindowDays
	if days <= 0 {
		days = calendar.DefaultWindowDays
	}
	items, err := calendar.BuildAgenda(today, src.classes, src.assignments, src.tasks, days)
	if err != nil {
		return nil, err
	}

	return &dto.AgendaResponse{
		From:  today.Format(dateLayout),
		To:    today.AddDate(0, 0, days-1).Format(dateLayout),
		Items: items,
	}, nil
}

// ────────────────────── GetEvents ──────────────────────

func (s *calendarService) GetEvents(ctx context.Context, userID string) (*dto.EventsResponse, error) {
	events, err := s.events(ctx, userID, s.today())
	if err != nil {
		return nil, err
	}
	return &dto.EventsResponse{Events: events}, nil
}

// ────────────────────── GetView ──────────────────────

func (s *calendarService) GetView(ctx context.Context, userID string, req *dto.ViewRequest) (*dto.ViewResponse, error) {
	mode, err := calendar.ParseViewMode(req.Mode)
	if err != nil {
		return nil, ErrCalendarInvalidMode
	}

	today := s.today()
	anchor, err := s.parseDate(req.Date, today)
	if err != nil {
		return nil, err
	}

	events, err := s.events(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	resp := &dto.ViewResponse{Mode: string(mode), Anchor: anchor.Format(dateLayout)}
	switch mode {
	case calendar.ViewDay:
		col := calendar.LayoutDay(anchor, events, s.rowHeight())
		resp.Day = &col
	case calendar.ViewWeek:
		resp.Week = calendar.LayoutWeek(anchor, events, s.rowHeight(), s.weekStart())
	case calendar.ViewMonth:
		month := calendar.MonthGrid(anchor, events, today, s.weekStart())
		resp.Month = &month
	}

	if mode != calendar.ViewMonth && calendar.SameDate(anchor, today) {
		now := calendar.ComputeNowIndicator(today, s.rowHeight())
		resp.Now = &now
	}
	return resp, nil
}

// parseDate 解析 YYYY-MM-DD，空值为今天
func (s *calendarService) parseDate(raw string, today time.Time) (time.Time, error) {
	if raw == "" {
		return calendar.StartOfDay(today), nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, s.loc)
	if err != nil {
		return time.Time{}, ErrCalendarInvalidDate
	}
	return d, nil
}

// ────────────────────── Now indicator ──────────────────────

func (s *calendarService) GetNowIndicator() calendar.NowIndicator {
	return calendar.ComputeNowIndicator(s.today(), s.rowHeight())
}

func (s *calendarService) WatchNow(ctx context.Context, fn func(calendar.NowIndicator)) error {
	ticker := &calendar.NowTicker{
		Interval:  s.cfg.NowRefreshInterval,
		RowHeight: s.rowHeight(),
		Clock:     s.today,
	}
	return ticker.Run(ctx, fn)
}

// ────────────────────── GetDayStrip ──────────────────────

func (s *calendarService) GetDayStrip(req *dto.DayStripRequest) (*dto.DayStripResponse, error) {
	seed, err := s.parseDate(req.Seed, s.today())
	if err != nil {
		return nil, err
	}

	limit := calendar.EffectiveDayStripMax(s.cfg.DayStripMax)
	length := req.Length
	if length > limit {
		length = limit
	}

	strip := calendar.NewDayStrip(seed, s.cfg.DayStripBatch, s.cfg.DayStripThreshold, limit)
	// 重放客户端已加载的批次
	for strip.Len() < length {
		if strip.OnScroll(strip.Len()-1) == 0 {
			break
		}
	}
	appended := strip.OnScroll(req.VisibleIndex)

	dates := strip.Dates()
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(dateLayout)
	}
	return &dto.DayStripResponse{Dates: out, Appended: appended}, nil
}
