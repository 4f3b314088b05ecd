package biz

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/casemedia/casemedia-backend/internal/auth"
	"github.com/casemedia/casemedia-backend/internal/pkg/logger"
	"github.com/casemedia/casemedia-backend/internal/pkg/metrics"
	"github.com/casemedia/casemedia-backend/internal/pkg/workerpool"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaType 媒体类型
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeDocument MediaType = "document"
)

// 缓存键
const (
	cacheKeyDirectories = "media:directories"
	cacheKeyTags        = "media:tags"

	readModelCacheTTL = 5 * time.Minute
)

// MediaRecord 媒体记录业务对象
type MediaRecord struct {
	ID           string
	OriginalName string    // 调用方提供的原始文件名
	FileName     string    // 服务端生成的防冲突文件名
	FilePath     string    // 对象存储中的键
	FileSize     int64     // 实际写入对象存储的字节数
	MimeType     string
	MediaType    MediaType // 由 MimeType 前缀推导
	Directory    string
	Tags         []string
	IsPublic     bool
	Description  string
	UploadedBy   string
	UploadedAt   time.Time
	UpdatedAt    time.Time
}

// Caller 已认证（或未认证）的调用者
type Caller struct {
	ID            string
	Role          auth.Role
	Authenticated bool
}

// StoredObject 对象存储中的一个对象
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// MediaRepo 媒体元数据仓储接口
type MediaRepo interface {
	Create(ctx context.Context, record *MediaRecord) error
	GetByID(ctx context.Context, id string) (*MediaRecord, error)
	Update(ctx context.Context, record *MediaRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req *ListMediaRequest) ([]*MediaRecord, int64, error)
	Directories(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
	ExistsByPath(ctx context.Context, filePath string) (bool, error)
}

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	// Put 写入对象。upsert 为 false 时不得覆盖已有对象
	Put(ctx context.Context, objectKey string, data []byte, contentType string, upsert bool) error
	Remove(ctx context.Context, objectKey string) error
	List(ctx context.Context, prefix string) ([]StoredObject, error)
}

// ReadModelCache 读模型缓存接口（目录/标签列表）
type ReadModelCache interface {
	GetStrings(ctx context.Context, key string) ([]string, bool)
	SetStrings(ctx context.Context, key string, values []string, ttl time.Duration)
	Invalidate(ctx context.Context, keys ...string)
}

// Config 媒体管线配置
type Config struct {
	MaxUploadBytes   int64  // 解码后大小上限
	DefaultDirectory string // 未指定目录时的兜底目录
	PublicBaseURL    string // 公开 URL 前缀
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		MaxUploadBytes:   8 << 20, // 8 MiB
		DefaultDirectory: "allgemein",
		PublicBaseURL:    "http://localhost:9000/casemedia",
	}
}

// DefaultDirectories 目录读模型的静态兜底列表
var DefaultDirectories = []string{"allgemein", "artikel", "einsaetze", "dokumente"}

// UploadRequest 上传请求
type UploadRequest struct {
	FileBase64  string
	FileName    string
	ContentType string
	Directory   string
	Tags        []string
	IsPublic    bool
}

// UploadResult 上传结果
type UploadResult struct {
	Record *MediaRecord
	URL    string
}

// UpdateMediaRequest 更新请求（仅允许的可变字段）
type UpdateMediaRequest struct {
	Tags        *[]string
	Directory   *string
	Description *string
	IsPublic    *bool
}

// applyPatch 把更新请求应用到记录上。单条与批量路径共用，
// 保证目录规范化和标签去重在两条路径上一致
func applyPatch(record *MediaRecord, req *UpdateMediaRequest) {
	if req.Tags != nil {
		record.Tags = normalizeTags(*req.Tags)
	}
	if req.Directory != nil {
		if dir := strings.Trim(*req.Directory, "/"); dir != "" {
			record.Directory = dir
		}
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.IsPublic != nil {
		record.IsPublic = *req.IsPublic
	}
	record.UpdatedAt = time.Now().UTC()
}

// MediaUseCase 媒体用例：上传、变更、删除、查询的协调者
type MediaUseCase struct {
	repo    MediaRepo
	storage ObjectStorage
	cache   ReadModelCache
	pool    *workerpool.Pool
	metrics *metrics.Metrics
	config  *Config
	logger  *logger.Logger
}

// NewMediaUseCase 创建媒体用例
func NewMediaUseCase(
	repo MediaRepo,
	storage ObjectStorage,
	cache ReadModelCache,
	pool *workerpool.Pool,
	m *metrics.Metrics,
	config *Config,
	log *logger.Logger,
) *MediaUseCase {
	if config == nil {
		config = DefaultConfig()
	}
	if m == nil {
		m = metrics.New()
	}
	if log == nil {
		log = logger.L()
	}
	return &MediaUseCase{
		repo:    repo,
		storage: storage,
		cache:   cache,
		pool:    pool,
		metrics: m,
		config:  config,
		logger:  log,
	}
}

// requireRole 授权门：每个变更入口独立调用
func requireRole(caller Caller, min auth.Role) error {
	if !caller.Authenticated || caller.ID == "" {
		return ErrUnauthorized
	}
	if !caller.Role.AtLeast(min) {
		return ErrForbidden
	}
	return nil
}

// decodePayload 解码 base64 负载，容忍 data URL 前缀
func decodePayload(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ";base64,"); idx >= 0 {
		payload = payload[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return data, nil
}

// Upload 上传协调者。顺序不可变：先写对象存储，再写元数据。
// 元数据写入失败时补偿删除刚写入的对象；补偿也失败则记录孤儿对象。
func (uc *MediaUseCase) Upload(ctx context.Context, caller Caller, req *UploadRequest) (*UploadResult, error) {
	if err := requireRole(caller, auth.RoleEditor); err != nil {
		return nil, err
	}

	data, err := decodePayload(req.FileBase64)
	if err != nil {
		uc.metrics.UploadsTotal.WithLabelValues("invalid_payload").Inc()
		return nil, err
	}

	if err := ValidateUploadSize(int64(len(data)), uc.config.MaxUploadBytes); err != nil {
		uc.metrics.UploadsTotal.WithLabelValues("too_large").Inc()
		return nil, err
	}

	directory := strings.Trim(req.Directory, "/")
	if directory == "" {
		directory = uc.config.DefaultDirectory
	}

	fileName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFileName(req.FileName))
	filePath := directory + "/" + fileName

	// 先写对象存储；失败则不产生任何元数据
	if err := uc.storage.Put(ctx, filePath, data, req.ContentType, false); err != nil {
		uc.metrics.UploadsTotal.WithLabelValues("storage_error").Inc()
		uc.logger.Error("object store write failed",
			zap.String("file_path", filePath),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	now := time.Now().UTC()
	record := &MediaRecord{
		ID:           uuid.New().String(),
		OriginalName: req.FileName,
		FileName:     fileName,
		FilePath:     filePath,
		FileSize:     int64(len(data)),
		MimeType:     req.ContentType,
		MediaType:    DeriveMediaType(req.ContentType),
		Directory:    directory,
		Tags:         normalizeTags(req.Tags),
		IsPublic:     req.IsPublic,
		UploadedBy:   caller.ID,
		UploadedAt:   now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Create(ctx, record); err != nil {
		// 对象已写入但没有元数据行：补偿删除，失败则留下日志供离线对账
		uc.metrics.UploadsTotal.WithLabelValues("metadata_error").Inc()
		uc.logger.Error("metadata insert failed after blob write",
			zap.String("file_path", filePath),
			zap.Error(err))

		if rmErr := uc.storage.Remove(ctx, filePath); rmErr != nil {
			uc.metrics.OrphanedBlobsTotal.Inc()
			uc.logger.Error("compensating delete failed, orphaned blob left behind",
				zap.String("file_path", filePath),
				zap.Error(rmErr))
		}

		return nil, fmt.Errorf("%w: %v", ErrMetadataFailed, err)
	}

	uc.metrics.UploadsTotal.WithLabelValues("success").Inc()
	uc.metrics.UploadBytesTotal.Add(float64(record.FileSize))
	uc.invalidateReadModels(ctx)

	return &UploadResult{
		Record: record,
		URL:    uc.PublicURL(record.FilePath),
	}, nil
}

// PublicURL 根据对象键构造确定性的公开 URL
func (uc *MediaUseCase) PublicURL(filePath string) string {
	return strings.TrimRight(uc.config.PublicBaseURL, "/") + "/" + filePath
}

// Get 获取单条记录
func (uc *MediaUseCase) Get(ctx context.Context, id string) (*MediaRecord, error) {
	record, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Update 更新可变字段（标签、目录、描述、可见性）
func (uc *MediaUseCase) Update(ctx context.Context, caller Caller, id string, req *UpdateMediaRequest) (*MediaRecord, error) {
	if err := requireRole(caller, auth.RoleEditor); err != nil {
		return nil, err
	}

	record, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPatch(record, req)

	if err := uc.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	uc.invalidateReadModels(ctx)
	return record, nil
}

// Delete 删除单条记录。先删元数据行（元数据是可用性的事实来源），
// 再尽力删除对象；对象删除失败记录孤儿日志。
func (uc *MediaUseCase) Delete(ctx context.Context, caller Caller, id string) error {
	if err := requireRole(caller, auth.RoleAdmin); err != nil {
		return err
	}

	return uc.deleteOne(ctx, id)
}

// deleteOne 无授权检查的内部删除，供单删与批删复用
func (uc *MediaUseCase) deleteOne(ctx context.Context, id string) error {
	record, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := uc.storage.Remove(ctx, record.FilePath); err != nil {
		uc.metrics.OrphanedBlobsTotal.Inc()
		uc.logger.Warn("blob delete failed after metadata delete, orphaned blob left behind",
			zap.String("media_id", id),
			zap.String("file_path", record.FilePath),
			zap.Error(err))
	}

	uc.invalidateReadModels(ctx)
	return nil
}

// invalidateReadModels 变更后使目录/标签读模型缓存失效
func (uc *MediaUseCase) invalidateReadModels(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, cacheKeyDirectories, cacheKeyTags)
	}
}
