package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/api/handler"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/api/middleware"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/metrics"
)

// maxBodyBytes 请求体上限，附件只上传元数据
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时登录不限流
func Setup(cfg *config.Config, h *handler.Handler, auth middleware.SessionAuthenticator, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders(cfg.Auth.Cookie.Secure))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 公开路由 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/login", middleware.OptionalSession(auth), h.Auth.SessionStatus)
	r.POST("/login",
		middleware.LoginRateLimit(limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow),
		h.Auth.Login,
	)
	r.POST("/logout", middleware.OptionalSession(auth), h.Auth.Logout)

	// ── 需要会话的路由 ──
	authorized := r.Group("")
	authorized.Use(middleware.SessionAuth(auth))
	{
		authorized.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/dashboard")
		})

		authorized.GET("/dashboard", h.Dashboard.Get)

		ps := authorized.Group("/problem-statements")
		{
			ps.GET("", h.ProblemStatement.List)
			ps.POST("", h.ProblemStatement.Create)
			ps.GET("/:id", h.ProblemStatement.Get)
			ps.PUT("/:id", h.ProblemStatement.Update)
			ps.DELETE("/:id", h.ProblemStatement.Delete)
		}

		authorized.GET("/submit", h.Submission.Readiness)
		authorized.POST("/submit", h.Submission.Submit)

		reviews := authorized.Group("/reviews")
		{
			reviews.GET("", h.Review.List)
			reviews.GET("/export.xlsx", h.Review.ExportXLSX)
			reviews.GET("/deadline.ics", h.Review.DeadlineICS)
		}

		messages := authorized.Group("/messages")
		{
			messages.GET("", h.Message.Threads)
			messages.GET("/:psId", h.Message.Thread)
			messages.POST("/:psId", h.Message.Reply)
		}

		authorized.GET("/profile", h.Auth.GetProfile)
		authorized.PUT("/profile/password", h.Auth.ChangePassword)

		// 机构侧审核
		institution := authorized.Group("/institution/problem-statements")
		institution.Use(middleware.RoleAuth(model.RoleInstitutionAdmin))
		{
			institution.POST("/:id/begin-review", h.Review.BeginReview)
			institution.POST("/:id/approve", h.Review.Approve)
			institution.POST("/:id/request-revision", h.Review.RequestRevision)
		}
	}

	return r
}
