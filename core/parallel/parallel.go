// Package parallel provides helpers for splitting row ranges across
// goroutines. The Relief selector uses it to spread its neighbor scans over
// the worker count given by the CLI parallelism hint.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides items across one worker per CPU core and executes fn
// for each (start, end) range.
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeWithWorkers(items, runtime.NumCPU(), fn)
}

// ParallelizeWithWorkers divides items across the given number of workers and
// executes fn for each (start, end) range. A worker count below 1 falls back
// to the number of CPU cores.
func ParallelizeWithWorkers(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items // no need for more workers than items
	}

	// Number of items each worker handles (ceiling division).
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}

		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold parallelizes only when items exceeds the
// threshold; below it the range is processed sequentially.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}

	Parallelize(items, fn)
}
