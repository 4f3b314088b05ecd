package biz

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/casemedia/casemedia-backend/internal/auth"
	"go.uber.org/zap"
)

// BulkResult 批量操作的聚合结果。单条失败不是顶层错误
type BulkResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// BulkDelete 批量删除。每个 ID 独立处理，互不阻塞；
// 空 ID 列表返回成功的空操作结果。删除要求 admin（高于单条更新的 editor）
func (uc *MediaUseCase) BulkDelete(ctx context.Context, caller Caller, ids []string) (*BulkResult, error) {
	if err := requireRole(caller, auth.RoleAdmin); err != nil {
		return nil, err
	}

	result := uc.forEachID(ctx, "delete", ids, func(ctx context.Context, id string) error {
		return uc.deleteOne(ctx, id)
	})

	if result.Total > 0 {
		uc.invalidateReadModels(ctx)
	}
	return result, nil
}

// BulkUpdate 批量更新可变字段。每个 ID 独立处理
func (uc *MediaUseCase) BulkUpdate(ctx context.Context, caller Caller, ids []string, req *UpdateMediaRequest) (*BulkResult, error) {
	if err := requireRole(caller, auth.RoleEditor); err != nil {
		return nil, err
	}

	result := uc.forEachID(ctx, "update", ids, func(ctx context.Context, id string) error {
		return uc.updateOne(ctx, id, req)
	})

	if result.Total > 0 {
		uc.invalidateReadModels(ctx)
	}
	return result, nil
}

// updateOne 无授权检查的内部更新，供批量路径复用
func (uc *MediaUseCase) updateOne(ctx context.Context, id string, req *UpdateMediaRequest) error {
	record, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	applyPatch(record, req)

	return uc.repo.Update(ctx, record)
}

// forEachID 通过 worker pool 有界并发地处理每个 ID，
// 收集成功/失败计数，任何单条失败都不会中止批次
func (uc *MediaUseCase) forEachID(ctx context.Context, op string, ids []string, fn func(ctx context.Context, id string) error) *BulkResult {
	total := len(ids)
	if total == 0 {
		return &BulkResult{}
	}

	var succeeded, failed int64
	var wg sync.WaitGroup
	wg.Add(total)

	for _, id := range ids {
		id := id
		submit := func() {
			defer wg.Done()

			if err := fn(ctx, id); err != nil {
				atomic.AddInt64(&failed, 1)
				uc.metrics.BulkItemsTotal.WithLabelValues(op, "failed").Inc()
				uc.logger.Warn("bulk item failed",
					zap.String("op", op),
					zap.String("media_id", id),
					zap.Error(err))
				return
			}

			atomic.AddInt64(&succeeded, 1)
			uc.metrics.BulkItemsTotal.WithLabelValues(op, "succeeded").Inc()
		}

		if uc.pool != nil {
			if err := uc.pool.Submit(submit); err != nil {
				// pool 已关闭时退化为同步执行
				submit()
			}
			continue
		}
		submit()
	}

	wg.Wait()

	if uc.pool != nil {
		stats := uc.pool.Stats()
		uc.logger.Debug("bulk batch completed",
			zap.String("op", op),
			zap.Int("batch_size", total),
			zap.Int64("pool_submitted", stats.Submitted),
			zap.Int64("pool_completed", stats.Completed),
			zap.Int("pool_running", uc.pool.Running()),
			zap.Int("pool_free", uc.pool.Free()))
	}

	return &BulkResult{
		Succeeded: int(succeeded),
		Failed:    int(failed),
		Total:     total,
	}
}
