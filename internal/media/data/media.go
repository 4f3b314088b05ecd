package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casemedia/casemedia-backend/internal/media/biz"
	"github.com/casemedia/casemedia-backend/internal/pkg/database"
	"gorm.io/gorm"
)

// MediaRecordPO 媒体记录数据库模型
type MediaRecordPO struct {
	ID           string    `gorm:"type:uuid;primarykey"`
	OriginalName string    `gorm:"column:original_name;size:255;not null"`
	FileName     string    `gorm:"column:file_name;size:255;not null"`
	FilePath     string    `gorm:"column:file_path;size:500;not null;uniqueIndex:idx_media_file_path"`
	FileSize     int64     `gorm:"column:file_size;not null"`
	MimeType     string    `gorm:"column:mime_type;size:100;not null"`
	MediaType    string    `gorm:"column:media_type;size:20;not null;index:idx_media_type"`
	Directory    string    `gorm:"column:directory;size:255;not null;index:idx_media_directory"`
	Tags         string    `gorm:"column:tags;type:jsonb;not null;default:'[]'"`
	IsPublic     bool      `gorm:"column:is_public;not null;default:false"`
	Description  string    `gorm:"column:description;type:text"`
	UploadedBy   string    `gorm:"column:uploaded_by;type:uuid;not null;index:idx_media_uploaded_by"`
	UploadedAt   time.Time `gorm:"column:uploaded_at;not null;index:idx_media_uploaded_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (MediaRecordPO) TableName() string {
	return "media_records"
}

// MediaRepo 媒体仓储实现
type MediaRepo struct {
	db *database.DB
}

// NewMediaRepo 创建媒体仓储
func NewMediaRepo(db *database.DB) *MediaRepo {
	return &MediaRepo{db: db}
}

// Create 插入媒体记录
func (r *MediaRepo) Create(ctx context.Context, record *biz.MediaRecord) error {
	po, err := toPO(record)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		return fmt.Errorf("failed to create media record: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取媒体记录
func (r *MediaRepo) GetByID(ctx context.Context, id string) (*biz.MediaRecord, error) {
	var po MediaRecordPO
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to get media record: %w", err)
	}

	return toDomain(&po)
}

// Update 更新可变字段。身份、大小与路径不可变
func (r *MediaRepo) Update(ctx context.Context, record *biz.MediaRecord) error {
	tagsJSON, err := marshalTags(record.Tags)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&MediaRecordPO{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"tags":        tagsJSON,
			"directory":   record.Directory,
			"description": record.Description,
			"is_public":   record.IsPublic,
			"updated_at":  time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update media record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return biz.ErrMediaNotFound
	}

	return nil
}

// Delete 删除媒体记录
func (r *MediaRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MediaRecordPO{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete media record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return biz.ErrMediaNotFound
	}

	return nil
}

// List 过滤分页查询
func (r *MediaRepo) List(ctx context.Context, req *biz.ListMediaRequest) ([]*biz.MediaRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&MediaRecordPO{}).
		Scopes(
			database.WhereIf(req.Search != "", "original_name ILIKE ? OR description ILIKE ?",
				"%"+req.Search+"%", "%"+req.Search+"%"),
			database.WhereIf(req.MediaType != "", "media_type = ?", req.MediaType),
			database.WhereIf(req.Directory != "", "directory = ?", req.Directory),
			database.WhereIf(req.UploadedBy != "", "uploaded_by = ?", req.UploadedBy),
			database.WhereIf(req.From != nil, "uploaded_at >= ?", req.From),
			database.WhereIf(req.To != nil, "uploaded_at <= ?", req.To),
		)

	// 标签重叠语义：任一标签命中即匹配
	if len(req.Tags) > 0 {
		query = query.Where("jsonb_exists_any(tags, ?::text[])", req.Tags)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count media records: %w", err)
	}

	var pos []MediaRecordPO
	err := query.
		Scopes(
			database.OrderBy(sortColumn(req.SortBy), req.SortDesc),
			database.Paginate(req.Page, req.Limit),
		).
		Find(&pos).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list media records: %w", err)
	}

	records := make([]*biz.MediaRecord, 0, len(pos))
	for i := range pos {
		record, err := toDomain(&pos[i])
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}

	return records, total, nil
}

// Directories 实际使用中的去重目录
func (r *MediaRepo) Directories(ctx context.Context) ([]string, error) {
	var dirs []string
	err := r.db.WithContext(ctx).Model(&MediaRecordPO{}).
		Distinct("directory").
		Order("directory").
		Pluck("directory", &dirs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query directories: %w", err)
	}

	return dirs, nil
}

// Tags 实际使用中的去重标签（展开 jsonb 数组）
func (r *MediaRepo) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	err := r.db.WithContext(ctx).
		Raw("SELECT DISTINCT jsonb_array_elements_text(tags) AS tag FROM media_records ORDER BY tag").
		Scan(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}

	return tags, nil
}

// ExistsByPath 判断对象键是否有对应的元数据行（供对账任务使用）
func (r *MediaRepo) ExistsByPath(ctx context.Context, filePath string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&MediaRecordPO{}).
		Where("file_path = ?", filePath).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check media path: %w", err)
	}

	return count > 0, nil
}

// sortColumn 排序键到列名的映射（biz 层已做白名单校验）
func sortColumn(sortBy string) string {
	switch sortBy {
	case "file_size":
		return "file_size"
	case "original_name":
		return "original_name"
	default:
		return "uploaded_at"
	}
}

// marshalTags 序列化标签为 jsonb 字符串
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(data), nil
}

// toPO 业务对象转数据库模型
func toPO(record *biz.MediaRecord) (*MediaRecordPO, error) {
	tagsJSON, err := marshalTags(record.Tags)
	if err != nil {
		return nil, err
	}

	return &MediaRecordPO{
		ID:           record.ID,
		OriginalName: record.OriginalName,
		FileName:     record.FileName,
		FilePath:     record.FilePath,
		FileSize:     record.FileSize,
		MimeType:     record.MimeType,
		MediaType:    string(record.MediaType),
		Directory:    record.Directory,
		Tags:         tagsJSON,
		IsPublic:     record.IsPublic,
		Description:  record.Description,
		UploadedBy:   record.UploadedBy,
		UploadedAt:   record.UploadedAt,
		UpdatedAt:    record.UpdatedAt,
	}, nil
}

// toDomain 数据库模型转业务对象
func toDomain(po *MediaRecordPO) (*biz.MediaRecord, error) {
	var tags []string
	if po.Tags != "" {
		if err := json.Unmarshal([]byte(po.Tags), &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	if tags == nil {
		tags = []string{}
	}

	return &biz.MediaRecord{
		ID:           po.ID,
		OriginalName: po.OriginalName,
		FileName:     po.FileName,
		FilePath:     po.FilePath,
		FileSize:     po.FileSize,
		MimeType:     po.MimeType,
		MediaType:    biz.MediaType(po.MediaType),
		Directory:    po.Directory,
		Tags:         tags,
		IsPublic:     po.IsPublic,
		Description:  po.Description,
		UploadedBy:   po.UploadedBy,
		UploadedAt:   po.UploadedAt,
		UpdatedAt:    po.UpdatedAt,
	}, nil
}
