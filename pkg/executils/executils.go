package executils

import (
	"runtime"
	"sync"

	"go.uber.org/atomic"
)

// ParallelExec calls fn with every element of vals. Small slices are walked
// serially on the caller's goroutine; once len(vals) reaches
// parallelThreshold the elements are claimed in chunks of step by one worker
// per CPU. Either way every call has completed when ParallelExec returns,
// which room broadcasts rely on.
func ParallelExec[T any](vals []T, parallelThreshold, step uint64, fn func(T)) {
	total := uint64(len(vals))
	if total < parallelThreshold {
		for _, v := range vals {
			fn(v)
		}
		return
	}

	cursor := atomic.NewUint64(0)

	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	wg.Add(workers)
	for p := 0; p < workers; p++ {
		go func() {
			defer wg.Done()
			for {
				claimed := cursor.Add(step)
				if claimed >= total+step {
					return
				}

				for i := claimed - step; i < claimed && i < total; i++ {
					fn(vals[i])
				}
			}
		}()
	}
	wg.Wait()
}
