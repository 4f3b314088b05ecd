package biz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/casemedia/casemedia-backend/internal/pkg/workerpool"
	"go.uber.org/zap"
)

func seedRecords(t *testing.T, f *fixture, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		result, err := f.uc.Upload(context.Background(), editor(), &UploadRequest{
			FileBase64:  "aGFsbG8=", // "hallo"
			FileName:    fmt.Sprintf("bild-%d.jpg", i),
			ContentType: "image/jpeg",
			Directory:   "einsaetze",
		})
		if err != nil {
			t.Fatalf("seed upload %d failed: %v", i, err)
		}
		ids = append(ids, result.Record.ID)
	}
	return ids
}

func TestBulkDeletePartialFailure(t *testing.T) {
	f := newFixture()
	ids := seedRecords(t, f, 3)
	ids = append(ids, "missing-1", "missing-2")

	result, err := f.uc.BulkDelete(context.Background(), admin(), ids)
	if err != nil {
		t.Fatalf("BulkDelete failed: %v", err)
	}

	if result.Total != 5 {
		t.Errorf("expected total 5, got %d", result.Total)
	}
	if result.Succeeded != 3 {
		t.Errorf("expected 3 succeeded, got %d", result.Succeeded)
	}
	if result.Failed != 2 {
		t.Errorf("expected 2 failed, got %d", result.Failed)
	}
	if result.Succeeded+result.Failed != result.Total {
		t.Error("succeeded + failed must equal total")
	}

	if f.repo.count() != 0 {
		t.Errorf("expected all seeded records deleted, %d remain", f.repo.count())
	}
	if f.storage.count() != 0 {
		t.Errorf("expected all blobs deleted, %d remain", f.storage.count())
	}
}

func TestBulkDeleteEmptyBatch(t *testing.T) {
	f := newFixture()

	result, err := f.uc.BulkDelete(context.Background(), admin(), nil)
	if err != nil {
		t.Fatalf("empty batch must be a successful no-op, got %v", err)
	}
	if result.Total != 0 || result.Succeeded != 0 || result.Failed != 0 {
		t.Errorf("expected zero counts, got %+v", result)
	}
}

func TestBulkDeleteRequiresAdmin(t *testing.T) {
	f := newFixture()
	ids := seedRecords(t, f, 1)

	if _, err := f.uc.BulkDelete(context.Background(), editor(), ids); !errors.Is(err, ErrForbidden) {
		t.Fatalf("editor bulk delete should be forbidden, got %v", err)
	}

	// 授权失败时不得处理任何一条
	if f.repo.count() != 1 {
		t.Error("forbidden bulk delete must not mutate anything")
	}
}

func TestBulkUpdateRequiresEditor(t *testing.T) {
	f := newFixture()
	ids := seedRecords(t, f, 1)
	public := true
	req := &UpdateMediaRequest{IsPublic: &public}

	if _, err := f.uc.BulkUpdate(context.Background(), plainUser(), ids, req); !errors.Is(err, ErrForbidden) {
		t.Fatalf("user bulk update should be forbidden, got %v", err)
	}

	result, err := f.uc.BulkUpdate(context.Background(), editor(), ids, req)
	if err != nil {
		t.Fatalf("editor bulk update failed: %v", err)
	}
	if result.Succeeded != 1 {
		t.Errorf("expected 1 succeeded, got %+v", result)
	}

	record, err := f.repo.GetByID(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("record vanished: %v", err)
	}
	if !record.IsPublic {
		t.Error("patch not applied")
	}
}

func TestBulkUpdatePartialFailure(t *testing.T) {
	f := newFixture()
	ids := seedRecords(t, f, 2)
	desc := "Sammelaktualisierung"

	result, err := f.uc.BulkUpdate(context.Background(), editor(), append(ids, "missing"), &UpdateMediaRequest{
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("BulkUpdate failed: %v", err)
	}

	if result.Succeeded != 2 || result.Failed != 1 || result.Total != 3 {
		t.Errorf("unexpected result %+v", result)
	}

	// 存在的记录都被更新，缺失的不影响它们
	for _, id := range ids {
		record, err := f.repo.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("record %s vanished: %v", id, err)
		}
		if record.Description != desc {
			t.Errorf("record %s not updated", id)
		}
	}
}

func TestBulkUpdateNormalizesDirectory(t *testing.T) {
	f := newFixture()
	ids := seedRecords(t, f, 1)
	dir := "akten/"

	result, err := f.uc.BulkUpdate(context.Background(), editor(), ids, &UpdateMediaRequest{Directory: &dir})
	if err != nil {
		t.Fatalf("BulkUpdate failed: %v", err)
	}
	if result.Succeeded != 1 {
		t.Fatalf("expected 1 succeeded, got %+v", result)
	}

	// 批量路径与单条路径使用同一套目录规范化
	record, err := f.repo.GetByID(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("record vanished: %v", err)
	}
	if record.Directory != "akten" {
		t.Errorf("expected trimmed directory %q, got %q", "akten", record.Directory)
	}

	single, err := f.uc.Update(context.Background(), editor(), ids[0], &UpdateMediaRequest{Directory: &dir})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if single.Directory != "akten" {
		t.Errorf("single path stored %q, want %q", single.Directory, "akten")
	}
}

func TestBulkDeleteWithWorkerPool(t *testing.T) {
	f := newFixture()
	pool, err := workerpool.New(&workerpool.Config{Workers: 4, QueueSize: 16}, zap.NewNop())
	if err != nil {
		t.Fatalf("pool init failed: %v", err)
	}
	defer pool.Shutdown()
	f.uc.pool = pool

	ids := seedRecords(t, f, 20)

	result, err := f.uc.BulkDelete(context.Background(), admin(), ids)
	if err != nil {
		t.Fatalf("BulkDelete failed: %v", err)
	}
	if result.Succeeded != 20 || result.Failed != 0 {
		t.Errorf("unexpected result %+v", result)
	}
	if f.repo.count() != 0 {
		t.Errorf("%d records remain", f.repo.count())
	}
}
