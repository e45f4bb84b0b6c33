// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package particles implements the Lagrangian coffee-grounds system: a
// structure-of-arrays pool with two-way momentum coupling to the fluid
// through Schiller-Naumann drag and trilinear grid scatter, soft-sphere
// particle-particle contacts, and elastic wall reflection. Particles are
// created once at seeding and never destroyed during a run.
package particles

// Pool is a structure-of-arrays particle store with capacity PMax.
// Inactive slots (index >= Count, or Active[i]==false) carry no meaning.
type Pool struct {
	PMax int

	X, Y, Z    []float64
	VX, VY, VZ []float64
	Radius     []float64
	Mass       []float64
	Density    []float64
	Active     []bool
	CellIdx    []int // cached flat lattice index, refreshed each step

	Count int // number of slots populated so far (<= PMax)
}

// NewPool allocates a pool with the given capacity.
func NewPool(pmax int) *Pool {
	return &Pool{
		PMax:    pmax,
		X:       make([]float64, pmax),
		Y:       make([]float64, pmax),
		Z:       make([]float64, pmax),
		VX:      make([]float64, pmax),
		VY:      make([]float64, pmax),
		VZ:      make([]float64, pmax),
		Radius:  make([]float64, pmax),
		Mass:    make([]float64, pmax),
		Density: make([]float64, pmax),
		Active:  make([]bool, pmax),
		CellIdx: make([]int, pmax),
	}
}

// ActiveCount returns the number of currently active particles.
func (p *Pool) ActiveCount() int {
	n := 0
	for i := 0; i < p.Count; i++ {
		if p.Active[i] {
			n++
		}
	}
	return n
}

// Add appends one particle to the pool, returning its index and false if
// the pool is already at capacity (ResourceError territory for the
// caller).
func (p *Pool) Add(x, y, z, radius, density float64) (idx int, ok bool) {
	if p.Count >= p.PMax {
		return 0, false
	}
	idx = p.Count
	p.Count++
	p.X[idx], p.Y[idx], p.Z[idx] = x, y, z
	p.VX[idx], p.VY[idx], p.VZ[idx] = 0, 0, 0
	p.Radius[idx] = radius
	p.Density[idx] = density
	p.Mass[idx] = density * (4.0 / 3.0) * 3.141592653589793 * radius * radius * radius
	p.Active[idx] = true
	return idx, true
}
