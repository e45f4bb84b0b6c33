// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// AddForceAt atomically accumulates (fx,fy,fz) into the body-force field
// at cell idx. This is the only write path into Force once ZeroForce has
// run for the step; phase field, porous, particle and thermal kernels
// may all call it concurrently from within their own ParallelFor,
// satisfying the "accumulate only through atomic add" shared-resource
// policy.
func (g *Grid) AddForceAt(idx int, fx, fy, fz float64) {
	b := idx * 3
	addFloat64(&g.Force[b], fx)
	addFloat64(&g.Force[b+1], fy)
	addFloat64(&g.Force[b+2], fz)
}

// addFloat64 performs a lock-free compare-and-swap accumulation into *dst,
// since the standard library has no atomic float64 add primitive.
func addFloat64(dst *float64, delta float64) {
	addr := (*uint64)(unsafe.Pointer(dst))
	for {
		old := atomic.LoadUint64(addr)
		newBits := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(addr, old, newBits) {
			return
		}
	}
}
