package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversAllItems(t *testing.T) {
	const items = 1000
	var count int64

	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt64(&count, 1)
		}
	})

	if count != items {
		t.Errorf("expected %d items processed, got %d", items, count)
	}
}

func TestParallelizeWithWorkers(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		workers int
	}{
		{"single worker", 100, 1},
		{"more workers than items", 3, 8},
		{"zero items", 0, 4},
		{"non-positive workers falls back", 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make([]int64, tt.items)
			ParallelizeWithWorkers(tt.items, tt.workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt64(&seen[i], 1)
				}
			})
			for i, n := range seen {
				if n != 1 {
					t.Errorf("item %d processed %d times, want 1", i, n)
				}
			}
		})
	}
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	var calls int
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("expected single range (0,10), got (%d,%d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected one sequential call, got %d", calls)
	}
}
