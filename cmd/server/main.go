package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casemedia/casemedia-backend/internal/conf"
	"github.com/casemedia/casemedia-backend/internal/data"
	mediabiz "github.com/casemedia/casemedia-backend/internal/media/biz"
	mediadata "github.com/casemedia/casemedia-backend/internal/media/data"
	mediaservice "github.com/casemedia/casemedia-backend/internal/media/service"
	"github.com/casemedia/casemedia-backend/internal/pkg/logger"
	"github.com/casemedia/casemedia-backend/internal/pkg/metrics"
	"github.com/casemedia/casemedia-backend/internal/pkg/workerpool"
	"github.com/casemedia/casemedia-backend/internal/server"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger with config
	logConfig := &logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	}

	log, err := logger.New(logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := logger.InitGlobal(logConfig); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	log.Info("config loaded successfully")

	// Initialize data layer
	d, cleanup, err := data.NewData(config, log)
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	// Initialize metrics
	m := metrics.New()

	// Initialize worker pool for bulk operations
	pool, err := workerpool.New(&workerpool.Config{
		Workers:   config.Media.BulkWorkers,
		QueueSize: config.Media.BulkWorkers * 16,
	}, log.Logger)
	if err != nil {
		log.Fatal("failed to create worker pool", zap.Error(err))
	}
	defer pool.Shutdown()

	// Initialize repositories and adapters
	mediaRepo := mediadata.NewMediaRepo(d.DB)
	objectStorage := mediadata.NewMinioObjectStorage(d.MinIOClient, config.MinIO.Bucket)
	readModelCache := mediadata.NewRedisReadModelCache(d.RedisClient, log)

	// Initialize use cases
	mediaUseCase := mediabiz.NewMediaUseCase(
		mediaRepo,
		objectStorage,
		readModelCache,
		pool,
		m,
		&mediabiz.Config{
			MaxUploadBytes:   config.Media.MaxUploadBytes,
			DefaultDirectory: config.Media.DefaultDirectory,
			PublicBaseURL:    config.Media.PublicBaseURL,
		},
		log,
	)

	// Start orphaned blob reconciler
	reconciler := mediabiz.NewReconciler(
		mediaRepo,
		objectStorage,
		m,
		log,
		config.Media.ReconcileInterval,
		config.Media.ReconcileGrace,
	)
	reconciler.Start(context.Background())
	defer reconciler.Stop()

	// Initialize services
	mediaService := mediaservice.NewMediaService(mediaUseCase, log)

	// Initialize server
	httpServer := server.NewHTTPServer(config, log, d, mediaService, m)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
