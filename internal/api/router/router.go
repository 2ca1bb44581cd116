package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/config"
	"github.com/Cameron2125/HackathonApp/internal/api/handler"
	"github.com/Cameron2125/HackathonApp/internal/api/middleware"
	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/pkg/jwt"
	"github.com/Cameron2125/HackathonApp/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时限流中间件降级放行
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, "/health"))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}
	forumWrite := middleware.RateLimit(limiter, cfg.Forum.RateLimit, cfg.Forum.RateWindow, logger)

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	{
		// 日历模块
		cal := v1.Group("/calendar")
		{
			cal.GET("/agenda", h.Calendar.GetAgenda)
			cal.GET("/events", h.Calendar.GetEvents)
			cal.GET("/view", h.Calendar.GetView)
			cal.GET("/now", h.Calendar.GetNow)
			cal.GET("/now/stream", h.Calendar.StreamNow)
			cal.GET("/day-strip", h.Calendar.GetDayStrip)
			cal.GET("/export.ics", h.Export.ExportICS)
			cal.GET("/export.xlsx", h.Export.ExportWeekExcel)
		}

		// 课程模块
		classes := v1.Group("/classes")
		{
			classes.GET("", h.Class.ListClasses)
			classes.POST("", h.Class.CreateClass)
			classes.DELETE("/:id", h.Class.DeleteClass)
			classes.POST("/import", h.Class.ImportICS)
		}

		// 作业模块
		assignments := v1.Group("/assignments")
		{
			assignments.GET("", h.Assignment.ListAssignments)
			assignments.POST("", h.Assignment.CreateAssignment)
			assignments.PUT("/:id/completion", h.Assignment.SetCompletion)
		}

		// 待办模块
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", h.Task.ListTasks)
			tasks.POST("", h.Task.CreateTask)
			tasks.PUT("/:id/completion", h.Task.SetCompletion)
		}

		// 社区问答模块（写操作限流）
		communities := v1.Group("/communities")
		{
			communities.GET("", h.Forum.ListCommunities)
			communities.GET("/:id/questions", h.Forum.ListQuestions)
			communities.POST("/:id/questions", forumWrite, h.Forum.AskQuestion)
			communities.POST("/:id/questions/seed", forumWrite, h.Forum.SeedQuestions)
		}
		questions := v1.Group("/questions")
		{
			questions.POST("/:id/votes", forumWrite, h.Forum.VoteQuestion)
			questions.PUT("/:id/answered", forumWrite, h.Forum.MarkAnswered)
			questions.GET("/:id/messages", h.Forum.ListMessages)
			questions.POST("/:id/messages", forumWrite, h.Forum.PostMessage)
		}
		messages := v1.Group("/messages")
		{
			messages.POST("/:id/votes", forumWrite, h.Forum.VoteMessage)
			messages.DELETE("/:id", forumWrite, h.Forum.RemoveMessage)
		}

		// 用户资料
		users := v1.Group("/users")
		{
			users.GET("/me", h.User.GetProfile)
			users.PUT("/me", h.User.UpsertProfile)
		}
	}

	return r, nil
}

// registerValidators 为 gin 请求绑定注册 weekday / hhmm / isotime 规则
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("gin 校验引擎类型不符: %T", binding.Validator.Engine())
	}
	return docstore.RegisterRules(v)
}
