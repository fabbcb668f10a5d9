package clahe

import (
	"runtime"
	"sync"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

var (
	defaultPoolOnce sync.Once
	defaultPool     *workerpool.Pool
)

// sharedPool returns the package-wide pool, created on first use with one
// worker per GOMAXPROCS. It is never closed.
func sharedPool() *workerpool.Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = workerpool.New(runtime.GOMAXPROCS(0))
	})
	return defaultPool
}

// forRows runs fn over disjoint bands of [0, height). fn must only write rows
// inside its band.
func forRows(pool *workerpool.Pool, height int, fn func(y0, y1 int)) {
	pool.ParallelFor(height, fn)
}

// forEach runs fn once per index in [0, n) with work stealing, for tasks of
// uneven cost such as tiles with remainder pixels.
func forEach(pool *workerpool.Pool, n int, fn func(i int)) {
	pool.ParallelForAtomic(n, fn)
}
