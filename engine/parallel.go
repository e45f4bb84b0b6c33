// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements the bulk-synchronous kernel-dispatch substrate
// shared by every stage of the step orchestrator: LES, phase field,
// particle integration/scatter, collision, streaming, boundary enforcement
// and macro recovery each run as one call to ParallelFor with an implicit
// barrier at return, matching the "independent within a kernel, barrier
// between kernels" execution model.
package engine

import (
	"runtime"
	"sync"
)

// MinChunk is the index-range length below which ParallelFor and
// ParallelForErr run sequentially instead of fanning out; it avoids
// goroutine overhead dominating trivially small kernels (e.g. a 4-cell
// test grid).
const MinChunk = 256

// ParallelFor invokes body(i) for every i in [lo, hi) and returns only once
// every invocation has completed (the kernel barrier). Iterations must be
// independent: ParallelFor makes no ordering guarantee across i, and body
// must not retain state across calls other than through indexed slots it
// owns exclusively.
func ParallelFor(lo, hi int, body func(i int)) {
	n := hi - lo
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 || n < MinChunk {
		for i := lo; i < hi; i++ {
			body(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := lo + w*chunk
		end := start + chunk
		if start >= hi {
			break
		}
		if end > hi {
			end = hi
		}
		wg.Add(1)
		go func(a, b int) {
			defer wg.Done()
			for i := a; i < b; i++ {
				body(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ParallelForErr is the error-returning variant used by kernels that can
// fail per-index (e.g. the stability gate). The first non-nil error
// observed is returned after every worker has drained; workers do not
// stop early since the gate must still inspect every cell for diagnostics.
func ParallelForErr(lo, hi int, body func(i int) error) error {
	n := hi - lo
	if n <= 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 || n < MinChunk {
		var first error
		for i := lo; i < hi; i++ {
			if err := body(i); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	chunk := (n + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := lo + w*chunk
		end := start + chunk
		if start >= hi {
			break
		}
		if end > hi {
			end = hi
		}
		wg.Add(1)
		go func(a, b, slot int) {
			defer wg.Done()
			for i := a; i < b; i++ {
				if err := body(i); err != nil && errs[slot] == nil {
					errs[slot] = err
				}
			}
		}(start, end, w)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
