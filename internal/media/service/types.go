package service

import (
	"time"

	"github.com/casemedia/casemedia-backend/internal/media/biz"
)

// UploadMediaRequest 上传请求
type UploadMediaRequest struct {
	FileData    string   `json:"file_data" binding:"required"` // base64 编码的文件内容
	FileName    string   `json:"file_name" binding:"required"`
	ContentType string   `json:"content_type" binding:"required"`
	Directory   string   `json:"directory"`
	Tags        []string `json:"tags"`
	IsPublic    bool     `json:"is_public"`
}

// UpdateMediaRequest 更新请求（字段均可选）
type UpdateMediaRequest struct {
	Tags        *[]string `json:"tags"`
	Directory   *string   `json:"directory"`
	Description *string   `json:"description"`
	IsPublic    *bool     `json:"is_public"`
}

// BulkDeleteRequest 批量删除请求
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkUpdateRequest 批量更新请求
type BulkUpdateRequest struct {
	IDs   []string           `json:"ids"`
	Patch UpdateMediaRequest `json:"patch"`
}

// ListMediaRequest 列表查询参数
type ListMediaRequest struct {
	Search     string `form:"search"`
	MediaType  string `form:"media_type"`
	Directory  string `form:"directory"`
	Tags       string `form:"tags"` // 逗号分隔
	UploadedBy string `form:"uploaded_by"`
	From       string `form:"from"` // RFC 3339
	To         string `form:"to"`   // RFC 3339
	SortBy     string `form:"sort_by"`
	SortDir    string `form:"sort_dir"` // asc | desc
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// MediaRecordResponse 媒体记录响应
type MediaRecordResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	MediaType    string    `json:"media_type"`
	Directory    string    `json:"directory"`
	Tags         []string  `json:"tags"`
	IsPublic     bool      `json:"is_public"`
	Description  string    `json:"description,omitempty"`
	UploadedBy   string    `json:"uploaded_by"`
	UploadedAt   time.Time `json:"uploaded_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	URL          string    `json:"url"`
}

// UploadMediaResponse 上传响应
type UploadMediaResponse struct {
	Record *MediaRecordResponse `json:"record"`
	URL    string               `json:"url"`
}

// ListMediaResponse 列表响应
type ListMediaResponse struct {
	Items   []*MediaRecordResponse `json:"items"`
	Total   int64                  `json:"total"`
	HasMore bool                   `json:"has_more"`
	Page    int                    `json:"page"`
	Limit   int                    `json:"limit"`
}

// BulkResultResponse 批量操作响应
type BulkResultResponse struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// StringListResponse 字符串列表响应（目录/标签）
type StringListResponse struct {
	Items []string `json:"items"`
}

func toMediaRecordResponse(record *biz.MediaRecord, url string) *MediaRecordResponse {
	return &MediaRecordResponse{
		ID:           record.ID,
		OriginalName: record.OriginalName,
		FileName:     record.FileName,
		FilePath:     record.FilePath,
		FileSize:     record.FileSize,
		MimeType:     record.MimeType,
		MediaType:    string(record.MediaType),
		Directory:    record.Directory,
		Tags:         record.Tags,
		IsPublic:     record.IsPublic,
		Description:  record.Description,
		UploadedBy:   record.UploadedBy,
		UploadedAt:   record.UploadedAt,
		UpdatedAt:    record.UpdatedAt,
		URL:          url,
	}
}
