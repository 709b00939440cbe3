package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// bandsPerWorker splits the rows finer than one band per worker so a slow
// band does not leave the other workers idle at the barrier.
const bandsPerWorker = 4

var workers atomic.Int64

// SetWorkers sets how many goroutines Rows uses. n <= 0 restores the
// default of GOMAXPROCS.
func SetWorkers(n int) {
	if n < 0 {
		n = 0
	}
	workers.Store(int64(n))
}

// Workers returns the effective worker count.
func Workers() int {
	if n := int(workers.Load()); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// Rows calls fn for disjoint row bands [y0, y1) covering [0, h) and returns
// once every band is done. fn may write its own rows of a shared output
// without locking; it must not write rows outside its band.
func Rows(h int, fn func(y0, y1 int)) {
	if h <= 0 {
		return
	}
	n := Workers()
	band := (h + n*bandsPerWorker - 1) / (n * bandsPerWorker)
	if band < 1 {
		band = 1
	}
	count := (h + band - 1) / band
	if n > count {
		n = count
	}
	if n == 1 {
		fn(0, h)
		return
	}

	bands := make(chan int, count)
	for i := 0; i < count; i++ {
		bands <- i
	}
	close(bands)

	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range bands {
				y0 := i * band
				fn(y0, min(y0+band, h))
			}
		}()
	}
	wg.Wait()
}
