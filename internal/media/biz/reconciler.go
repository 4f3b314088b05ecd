package biz

import (
	"context"
	"sync"
	"time"

	"github.com/casemedia/casemedia-backend/internal/pkg/logger"
	"github.com/casemedia/casemedia-backend/internal/pkg/metrics"
	"go.uber.org/zap"
)

// Reconciler 周期性对账任务：清理没有元数据行的孤儿对象。
// 宽限期内的对象不处理，避免误删正在进行的上传
type Reconciler struct {
	repo    MediaRepo
	storage ObjectStorage
	metrics *metrics.Metrics
	logger  *logger.Logger

	interval time.Duration
	grace    time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReconciler 创建对账任务
func NewReconciler(repo MediaRepo, storage ObjectStorage, m *metrics.Metrics, log *logger.Logger, interval, grace time.Duration) *Reconciler {
	if interval <= 0 {
		interval = time.Hour
	}
	if grace <= 0 {
		grace = time.Hour
	}
	if m == nil {
		m = metrics.New()
	}
	if log == nil {
		log = logger.L()
	}
	return &Reconciler{
		repo:     repo,
		storage:  storage,
		metrics:  m,
		logger:   log,
		interval: interval,
		grace:    grace,
	}
}

// Start 启动后台对账循环
func (r *Reconciler) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.Sweep(ctx); err != nil {
					r.logger.Error("reconciliation sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop 停止对账循环并等待退出
func (r *Reconciler) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// Sweep 执行一次对账：列出所有对象，删除超过宽限期且无元数据行的对象
func (r *Reconciler) Sweep(ctx context.Context) error {
	objects, err := r.storage.List(ctx, "")
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-r.grace)
	removed := 0

	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}

		exists, err := r.repo.ExistsByPath(ctx, obj.Key)
		if err != nil {
			r.logger.Warn("metadata lookup failed during sweep",
				zap.String("object_key", obj.Key),
				zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		if err := r.storage.Remove(ctx, obj.Key); err != nil {
			r.logger.Warn("failed to remove orphaned blob",
				zap.String("object_key", obj.Key),
				zap.Error(err))
			continue
		}

		removed++
		r.logger.Info("orphaned blob removed",
			zap.String("object_key", obj.Key),
			zap.Int64("size", obj.Size))
	}

	r.metrics.ReconcilerSweeps.Inc()
	r.logger.Info("reconciliation sweep completed",
		zap.Int("objects_scanned", len(objects)),
		zap.Int("orphans_removed", removed))

	return nil
}
