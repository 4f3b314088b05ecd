package data

import (
	"context"
	"fmt"

	"github.com/casemedia/casemedia-backend/internal/conf"
	mediadata "github.com/casemedia/casemedia-backend/internal/media/data"
	"github.com/casemedia/casemedia-backend/internal/pkg/database"
	"github.com/casemedia/casemedia-backend/internal/pkg/logger"
	pkgminio "github.com/casemedia/casemedia-backend/internal/pkg/minio"
	"github.com/redis/go-redis/v9"
)

// Data holds the shared store clients
type Data struct {
	DB          *database.DB
	RedisClient *redis.Client
	MinIOClient *pkgminio.Client
	Logger      *logger.Logger
}

// NewData initializes all backing stores
func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	db, err := initDB(config, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init database: %w", err)
	}

	redisClient := initRedis(config)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	minioClient, err := initMinIO(config, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init minio: %w", err)
	}

	d := &Data{
		DB:          db,
		RedisClient: redisClient,
		MinIOClient: minioClient,
		Logger:      log,
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if err := db.Close(); err != nil {
			log.Warn("failed to close database: " + err.Error())
		}

		if redisClient != nil {
			redisClient.Close()
		}

		if minioClient != nil {
			minioClient.Close()
		}
	}

	return d, cleanup, nil
}

func initDB(config *conf.Config, log *logger.Logger) (*database.DB, error) {
	dbConfig := database.DefaultConfig()
	dbConfig.Host = config.Database.Host
	dbConfig.Port = config.Database.Port
	dbConfig.User = config.Database.User
	dbConfig.Password = config.Database.Password
	dbConfig.DBName = config.Database.DBName
	dbConfig.SSLMode = config.Database.SSLMode

	db, err := database.New(dbConfig, log)
	if err != nil {
		return nil, err
	}

	// Auto migrate
	if err := db.AutoMigrate(&mediadata.MediaRecordPO{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}

func initRedis(config *conf.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Redis.Host, config.Redis.Port),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
}

func initMinIO(config *conf.Config, log *logger.Logger) (*pkgminio.Client, error) {
	client, err := pkgminio.NewClient(&pkgminio.Config{
		Endpoint:        config.MinIO.Endpoint,
		AccessKeyID:     config.MinIO.AccessKey,
		SecretAccessKey: config.MinIO.SecretKey,
		UseSSL:          config.MinIO.UseSSL,
	}, log.Logger)
	if err != nil {
		return nil, err
	}

	// Create bucket if not exists
	if err := client.EnsureBucket(context.Background(), config.MinIO.Bucket); err != nil {
		return nil, err
	}

	return client, nil
}
