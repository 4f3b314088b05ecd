package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/casemedia/casemedia-backend/internal/auth/middleware"
	"github.com/casemedia/casemedia-backend/internal/conf"
	"github.com/casemedia/casemedia-backend/internal/data"
	mediaservice "github.com/casemedia/casemedia-backend/internal/media/service"
	"github.com/casemedia/casemedia-backend/internal/pkg/logger"
	"github.com/casemedia/casemedia-backend/internal/pkg/metrics"
	"github.com/casemedia/casemedia-backend/internal/pkg/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

func NewHTTPServer(
	config *conf.Config,
	log *logger.Logger,
	d *data.Data,
	mediaService *mediaservice.MediaService,
	m *metrics.Metrics,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("handler panic", zap.Any("panic", recovered))
		response.InternalError(c, "internal server error")
	}))
	router.Use(LoggerMiddleware(log.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	// Health check: pings both backing stores
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		if err := d.DB.HealthCheck(ctx); err != nil {
			dbStatus = "unavailable"
			status = http.StatusServiceUnavailable
		}

		minioStatus := "ok"
		if err := d.MinIOClient.Ping(ctx); err != nil {
			minioStatus = "unavailable"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"minio":    minioStatus,
			"time":     time.Now().Format(time.RFC3339),
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))

	// API routes
	api := router.Group("/api/v1")
	authed := router.Group("/api/v1")
	authed.Use(middleware.JWTAuth(config.Auth.JWTSecret, log))

	mediaService.RegisterRoutes(api, authed)

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)

	return &HTTPServer{
		server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
		logger: log,
	}
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
