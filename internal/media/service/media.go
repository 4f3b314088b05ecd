package service

import (
	"errors"
	"strings"
	"time"

	authmw "github.com/casemedia/casemedia-backend/internal/auth/middleware"
	"github.com/casemedia/casemedia-backend/internal/media/biz"
	apperrors "github.com/casemedia/casemedia-backend/internal/pkg/errors"
	"github.com/casemedia/casemedia-backend/internal/pkg/logger"
	"github.com/casemedia/casemedia-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// MediaService 媒体 HTTP 服务
type MediaService struct {
	useCase *biz.MediaUseCase
	logger  *logger.Logger
}

// NewMediaService 创建媒体服务
func NewMediaService(useCase *biz.MediaUseCase, logger *logger.Logger) *MediaService {
	return &MediaService{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterRoutes 注册路由。读接口公开，写接口要求认证
func (s *MediaService) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/media", s.GetMediaList)
	public.GET("/media/directories", s.GetDirectories)
	public.GET("/media/tags", s.GetTags)

	authed.POST("/media", s.UploadMedia)
	authed.PATCH("/media/:id", s.UpdateMedia)
	authed.DELETE("/media/:id", s.DeleteMedia)
	authed.POST("/media/bulk-delete", s.BulkDeleteMedia)
	authed.POST("/media/bulk-update", s.BulkUpdateMedia)
}

// callerFromContext 从 gin 上下文构造调用者
func callerFromContext(c *gin.Context) biz.Caller {
	userID, hasID := authmw.GetUserID(c)
	role, hasRole := authmw.GetRole(c)

	return biz.Caller{
		ID:            userID,
		Role:          role,
		Authenticated: hasID && hasRole,
	}
}

// UploadMedia 上传媒体文件
func (s *MediaService) UploadMedia(c *gin.Context) {
	var req UploadMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := s.useCase.Upload(c.Request.Context(), callerFromContext(c), &biz.UploadRequest{
		FileBase64:  req.FileData,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Directory:   req.Directory,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Created(c, &UploadMediaResponse{
		Record: toMediaRecordResponse(result.Record, result.URL),
		URL:    result.URL,
	})
}

// GetMediaList 过滤分页查询媒体列表
func (s *MediaService) GetMediaList(c *gin.Context) {
	var req ListMediaRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bizReq := &biz.ListMediaRequest{
		Search:     req.Search,
		MediaType:  req.MediaType,
		Directory:  req.Directory,
		UploadedBy: req.UploadedBy,
		SortBy:     req.SortBy,
		SortDesc:   req.SortDir != "asc",
		Page:       req.Page,
		Limit:      req.Limit,
	}

	if req.Tags != "" {
		for _, tag := range strings.Split(req.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				bizReq.Tags = append(bizReq.Tags, tag)
			}
		}
	}

	if req.From != "" {
		from, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			response.BadRequest(c, "invalid from timestamp")
			return
		}
		bizReq.From = &from
	}
	if req.To != "" {
		to, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			response.BadRequest(c, "invalid to timestamp")
			return
		}
		bizReq.To = &to
	}

	list := s.useCase.List(c.Request.Context(), bizReq)

	items := make([]*MediaRecordResponse, len(list.Items))
	for i, record := range list.Items {
		items[i] = toMediaRecordResponse(record, s.useCase.PublicURL(record.FilePath))
	}

	response.Success(c, &ListMediaResponse{
		Items:   items,
		Total:   list.Total,
		HasMore: list.HasMore,
		Page:    bizReq.Page,
		Limit:   bizReq.Limit,
	})
}

// UpdateMedia 更新单条媒体记录
func (s *MediaService) UpdateMedia(c *gin.Context) {
	id := c.Param("id")

	var req UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	record, err := s.useCase.Update(c.Request.Context(), callerFromContext(c), id, &biz.UpdateMediaRequest{
		Tags:        req.Tags,
		Directory:   req.Directory,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toMediaRecordResponse(record, s.useCase.PublicURL(record.FilePath)))
}

// DeleteMedia 删除单条媒体记录（仅 admin）
func (s *MediaService) DeleteMedia(c *gin.Context) {
	id := c.Param("id")

	if err := s.useCase.Delete(c.Request.Context(), callerFromContext(c), id); err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, gin.H{"success": true})
}

// BulkDeleteMedia 批量删除（仅 admin），单条失败不是顶层错误
func (s *MediaService) BulkDeleteMedia(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := s.useCase.BulkDelete(c.Request.Context(), callerFromContext(c), req.IDs)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, &BulkResultResponse{
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Total:     result.Total,
	})
}

// BulkUpdateMedia 批量更新（editor 及以上）
func (s *MediaService) BulkUpdateMedia(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := s.useCase.BulkUpdate(c.Request.Context(), callerFromContext(c), req.IDs, &biz.UpdateMediaRequest{
		Tags:        req.Patch.Tags,
		Directory:   req.Patch.Directory,
		Description: req.Patch.Description,
		IsPublic:    req.Patch.IsPublic,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, &BulkResultResponse{
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Total:     result.Total,
	})
}

// GetDirectories 目录读模型，永不报错
func (s *MediaService) GetDirectories(c *gin.Context) {
	response.Success(c, &StringListResponse{
		Items: s.useCase.Directories(c.Request.Context()),
	})
}

// GetTags 标签读模型，永不报错
func (s *MediaService) GetTags(c *gin.Context) {
	response.Success(c, &StringListResponse{
		Items: s.useCase.Tags(c.Request.Context()),
	})
}

// handleError 业务错误到 AppError 的映射，再统一走 response.HandleError。
// 存储内部细节只留在 AppError 的 Err 链里，不进响应
func (s *MediaService) handleError(c *gin.Context, err error) {
	response.HandleError(c, s.toAppError(err))
}

func (s *MediaService) toAppError(err error) *apperrors.AppError {
	var tooLarge *biz.FileTooLargeError
	if errors.As(err, &tooLarge) {
		return apperrors.Wrapf(err, apperrors.ErrMediaFileTooLarge,
			"actual=%d bytes, max=%d bytes", tooLarge.Actual, tooLarge.Max)
	}

	switch {
	case errors.Is(err, biz.ErrUnauthorized):
		return apperrors.NewUnauthorizedError()
	case errors.Is(err, biz.ErrForbidden):
		return apperrors.NewForbiddenError()
	case errors.Is(err, biz.ErrMediaNotFound):
		return apperrors.NewMediaNotFound()
	case errors.Is(err, biz.ErrInvalidPayload):
		return apperrors.NewInvalidPayload()
	default:
		return apperrors.Wrap(err, apperrors.ErrInternalServer)
	}
}
