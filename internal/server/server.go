package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aifolio/backend/config"
	"github.com/aifolio/backend/internal/api"
	"github.com/aifolio/backend/internal/database"
	"github.com/aifolio/backend/internal/middleware"
	"github.com/aifolio/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New wires services and routes into a server instance. The redis
// client, mailer and image store may be nil; the matching features
// degrade gracefully.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	var mailer service.Mailer
	if cfg.SMTPHost != "" {
		mailer = service.NewEmailService(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword,
			cfg.EmailFrom, cfg.EmailFromName, cfg.BaseURL,
		)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, mailer)
	profileService := service.NewProfileService(db)
	projectService := service.NewProjectService(db)
	imageService := service.NewImageService(s3cfg)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     20,
			KeyPrefix: "ratelimit:auth",
		})
	}

	dev := cfg.Environment == config.Development

	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(authService, dev).RegisterRoutes(v1, limiter)
	api.NewProfileHandler(profileService, projectService, dev).RegisterRoutes(v1, authService)
	api.NewProjectHandler(projectService, imageService, dev).RegisterRoutes(v1, authService)
	api.NewSkillsHandler(profileService, dev).RegisterRoutes(v1, authService)

	return &Server{
		router: router,
		db:     db,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
