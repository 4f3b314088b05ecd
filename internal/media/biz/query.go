package biz

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// 分页边界
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListMediaRequest 列表查询请求
type ListMediaRequest struct {
	Search     string     // 针对文件名/描述的模糊匹配
	MediaType  string     // image | video | document
	Directory  string
	Tags       []string   // 重叠语义：命中任一标签即匹配
	UploadedBy string
	From       *time.Time // 上传时间下界（含）
	To         *time.Time // 上传时间上界（含）
	SortBy     string     // uploaded_at | file_size | original_name
	SortDesc   bool
	Page       int
	Limit      int
}

// MediaList 列表查询结果
type MediaList struct {
	Items   []*MediaRecord
	Total   int64
	HasMore bool
}

// Normalize 规范化分页与排序参数，limit 限制在 1..100
func (r *ListMediaRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = DefaultPageSize
	}
	if r.Limit > MaxPageSize {
		r.Limit = MaxPageSize
	}

	switch r.SortBy {
	case "uploaded_at", "file_size", "original_name":
	default:
		r.SortBy = "uploaded_at"
		r.SortDesc = true
	}
}

// List 过滤分页查询。存储失败时降级为空结果，不向调用方冒泡错误
func (uc *MediaUseCase) List(ctx context.Context, req *ListMediaRequest) *MediaList {
	req.Normalize()

	items, total, err := uc.repo.List(ctx, req)
	if err != nil {
		uc.logger.Error("media list query failed, degrading to empty result", zap.Error(err))
		return &MediaList{Items: []*MediaRecord{}}
	}

	if items == nil {
		items = []*MediaRecord{}
	}

	return &MediaList{
		Items:   items,
		Total:   total,
		HasMore: int64(req.Page*req.Limit) < total,
	}
}

// Directories 实际使用中的去重目录列表。只读、仅供过滤 UI，
// 存储失败时返回静态兜底列表而不是错误
func (uc *MediaUseCase) Directories(ctx context.Context) []string {
	if uc.cache != nil {
		if cached, ok := uc.cache.GetStrings(ctx, cacheKeyDirectories); ok {
			return cached
		}
	}

	dirs, err := uc.repo.Directories(ctx)
	if err != nil {
		uc.logger.Warn("directories query failed, falling back to defaults", zap.Error(err))
		return DefaultDirectories
	}

	if len(dirs) == 0 {
		dirs = DefaultDirectories
	}

	if uc.cache != nil {
		uc.cache.SetStrings(ctx, cacheKeyDirectories, dirs, readModelCacheTTL)
	}
	return dirs
}

// Tags 实际使用中的去重标签列表，失败时返回空列表
func (uc *MediaUseCase) Tags(ctx context.Context) []string {
	if uc.cache != nil {
		if cached, ok := uc.cache.GetStrings(ctx, cacheKeyTags); ok {
			return cached
		}
	}

	tags, err := uc.repo.Tags(ctx)
	if err != nil {
		uc.logger.Warn("tags query failed, falling back to empty list", zap.Error(err))
		return []string{}
	}

	if tags == nil {
		tags = []string{}
	}

	if uc.cache != nil {
		uc.cache.SetStrings(ctx, cacheKeyTags, tags, readModelCacheTTL)
	}
	return tags
}
