package workerpool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPoolExecutesSubmittedTasks(t *testing.T) {
	pool, err := New(&Config{Workers: 4, QueueSize: 16}, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer pool.Shutdown()

	const tasks = 50
	var counter int64
	var wg sync.WaitGroup
	wg.Add(tasks)

	for i := 0; i < tasks; i++ {
		err := pool.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&counter, 1)
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	wg.Wait()

	if got := atomic.LoadInt64(&counter); got != tasks {
		t.Errorf("expected %d executions, got %d", tasks, got)
	}

	// 统计信息最终一致
	deadline := time.Now().Add(time.Second)
	for {
		stats := pool.Stats()
		if stats.Completed == tasks || time.Now().After(deadline) {
			if stats.Submitted != tasks {
				t.Errorf("expected %d submitted, got %d", tasks, stats.Submitted)
			}
			if stats.Completed != tasks {
				t.Errorf("expected %d completed, got %d", tasks, stats.Completed)
			}
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPoolCapacityAccounting(t *testing.T) {
	pool, err := New(&Config{Workers: 2, QueueSize: 4}, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer pool.Shutdown()

	if pool.Running() != 0 {
		t.Errorf("expected no running workers, got %d", pool.Running())
	}
	if pool.Free() != 2 {
		t.Errorf("expected 2 free workers, got %d", pool.Free())
	}
}

func TestPoolRejectsAfterShutdown(t *testing.T) {
	pool, err := New(nil, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pool.Shutdown()

	if err := pool.Submit(func() {}); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}
