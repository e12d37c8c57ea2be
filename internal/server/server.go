package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickchat/config"
	"quickchat/internal/handler"
	"quickchat/internal/middleware"
	appredis "quickchat/internal/redis"
	"quickchat/internal/services"
	"quickchat/internal/transport/httpdto"
	"quickchat/internal/websocket"
	"quickchat/pkg/database"
	"quickchat/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Message *handler.MessageHandler
	WS      *websocket.Handler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter *appredis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "pong"})
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "healthy"})
	})

	authRL := middleware.AuthRateLimitMiddleware(limiter)
	requireAuth := middleware.AuthMiddleware(authService)

	s.engine.POST("/signup", authRL, handlers.Auth.Signup)
	s.engine.POST("/login", authRL, handlers.Auth.Login)
	s.engine.GET("/check", requireAuth, handlers.Auth.Check)
	s.engine.PATCH("/update-profile", requireAuth, handlers.User.UpdateProfile)

	s.engine.GET("/users", requireAuth, handlers.Message.Users)

	messages := s.engine.Group("/messages", requireAuth)
	{
		messages.GET("/:partnerId", handlers.Message.Conversation)
		messages.PUT("/seen/:id", handlers.Message.MarkSeen)
		messages.POST("/send/:partnerId", middleware.MessageRateLimitMiddleware(limiter), handlers.Message.Send)
	}

	if handlers.WS != nil {
		s.engine.GET("/ws", handlers.WS.Connect)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	if s.logger != nil {
		s.logger.Infof("Shutdown signal received, draining for up to 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
