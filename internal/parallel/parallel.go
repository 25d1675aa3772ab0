// Package parallel fans contiguous index ranges out over goroutines
package parallel

import (
	"runtime"
	"sync"
)

// Workers returns n if positive, otherwise the number of CPUs
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Chunks returns how many chunks For will split n items into: at most
// Workers(workers), and never fewer than grain items per chunk.
func Chunks(n, workers, grain int) int {
	if n <= 0 {
		return 0
	}
	if grain < 1 {
		grain = 1
	}
	c := (n + grain - 1) / grain
	if w := Workers(workers); c > w {
		c = w
	}
	return c
}

// For splits [0, n) into Chunks(n, workers, grain) contiguous ranges and
// calls fn once per range, each on its own goroutine, returning when all
// are done. A single chunk runs on the calling goroutine.
func For(n, workers, grain int, fn func(chunk, lo, hi int)) {
	c := Chunks(n, workers, grain)
	switch c {
	case 0:
		return
	case 1:
		fn(0, 0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(c)
	for i := 0; i < c; i++ {
		go func(chunk int) {
			defer wg.Done()
			fn(chunk, chunk*n/c, (chunk+1)*n/c)
		}(i)
	}
	wg.Wait()
}
