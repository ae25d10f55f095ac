package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mhndckngyn/askdev-api/internal/config"
	"github.com/mhndckngyn/askdev-api/internal/database"
	"github.com/mhndckngyn/askdev-api/internal/handlers"
	"github.com/mhndckngyn/askdev-api/internal/metrics"
	"github.com/mhndckngyn/askdev-api/internal/middleware"
)

type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	db      *database.Database
	handler *handlers.Handler
	metrics *metrics.Collector
	limiter *middleware.RateLimiter
}

// NewServer builds the HTTP server around an already-wired handler set.
func NewServer(
	cfg *config.Config,
	log *slog.Logger,
	db *database.Database,
	handler *handlers.Handler,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
) *http.Server {
	s := &Server{
		cfg:     cfg,
		log:     log,
		db:      db,
		handler: handler,
		metrics: collector,
		limiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	router := s.RegisterRoutes(gatherer)

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes(gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(s.metrics.Middleware())
	r.Use(s.limiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	// uploaded images are served straight from disk
	r.Static("/uploads", s.cfg.UploadDir)

	auth := middleware.Auth([]byte(s.cfg.JWTSecret))

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/verify-email", s.handler.Auth.VerifyEmail)
		api.POST("/login", s.handler.Auth.Login)
		api.POST("/password-reset/request", s.handler.Auth.RequestPasswordReset)
		api.POST("/password-reset/confirm", s.handler.Auth.ConfirmPasswordReset)
		api.POST("/password-reset", s.handler.Auth.ResetPassword)

		// Public reads
		api.GET("/questions", s.handler.Question.List)
		api.GET("/questions/:id", s.handler.Question.Get)
		api.GET("/questions/:id/answers", s.handler.Answer.ListByQuestion)
		api.GET("/questions/:id/edit-history", s.handler.Question.EditHistory)
		api.GET("/answers/:id/comments", s.handler.Comment.ListByAnswer)
		api.GET("/answers/:id/edit-history", s.handler.Answer.EditHistory)
		api.GET("/comments/:id/edit-history", s.handler.Comment.EditHistory)
		api.GET("/tags", s.handler.Tag.List)
		api.GET("/tags/:id", s.handler.Tag.Get)
		api.GET("/users/:id", s.handler.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(auth)
		{
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.PUT("/me", s.handler.Auth.UpdateProfile)

			protected.POST("/questions", s.handler.Question.Create)
			protected.PUT("/questions/:id", s.handler.Question.Update)
			protected.DELETE("/questions/:id", s.handler.Question.Delete)
			protected.POST("/questions/:id/vote", s.handler.Question.Vote)
			protected.GET("/questions/:id/vote", s.handler.Question.VoteStatus)

			protected.POST("/questions/:id/answers", s.handler.Answer.Create)
			protected.PUT("/answers/:id", s.handler.Answer.Update)
			protected.DELETE("/answers/:id", s.handler.Answer.Delete)
			protected.POST("/answers/:id/vote", s.handler.Answer.Vote)
			protected.GET("/answers/:id/vote", s.handler.Answer.VoteStatus)
			protected.POST("/answers/:id/chosen", s.handler.Answer.MarkChosen)

			protected.POST("/answers/:id/comments", s.handler.Comment.Create)
			protected.PUT("/comments/:id", s.handler.Comment.Update)
			protected.DELETE("/comments/:id", s.handler.Comment.Delete)
			protected.POST("/comments/:id/vote", s.handler.Comment.Vote)
			protected.GET("/comments/:id/vote", s.handler.Comment.VoteStatus)

			protected.GET("/history", s.handler.History.List)
			protected.DELETE("/history/:id", s.handler.History.DeleteOne)
			protected.POST("/history/delete", s.handler.History.DeleteMany)
			protected.DELETE("/history", s.handler.History.DeleteAll)

			protected.GET("/notifications", s.handler.Notification.List)
			protected.PUT("/notifications/:id/read", s.handler.Notification.SetRead)
			protected.PUT("/notifications/read-all", s.handler.Notification.SetAllRead)
			protected.DELETE("/notifications/:id", s.handler.Notification.DeleteOne)
			protected.DELETE("/notifications", s.handler.Notification.DeleteAll)

			protected.POST("/reports", s.handler.Report.Create)

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/reports", s.handler.Admin.ListReports)
				admin.PUT("/content/hidden", s.handler.Admin.SetHidden)
			}
		}
	}

	return r
}
