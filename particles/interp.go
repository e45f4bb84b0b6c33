// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"github.com/latteine1217/pour-over-coffee-lbm/force"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// trilinearWeights returns the 8 surrounding-cell flat indices and their
// trilinear interpolation weights for a position (x,y,z) in lattice
// units, clamped to the interior so the stencil never reaches outside
// the grid on non-periodic axes.
func trilinearWeights(g *lattice.Grid, x, y, z float64) (idx [8]int, w [8]float64, ok bool) {
	x0 := int(floor(x))
	y0 := int(floor(y))
	z0 := int(floor(z))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if z0 < 0 {
		z0 = 0
	}
	if x0 >= g.Nx-1 {
		x0 = g.Nx - 2
	}
	if y0 >= g.Ny-1 {
		y0 = g.Ny - 2
	}
	if z0 >= g.Nz-1 {
		z0 = g.Nz - 2
	}
	if x0 < 0 || y0 < 0 || z0 < 0 {
		return idx, w, false
	}
	fx := x - float64(x0)
	fy := y - float64(y0)
	fz := z - float64(z0)

	corners := [8][3]int{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}
	for c, off := range corners {
		idx[c] = g.Idx(x0+off[0], y0+off[1], z0+off[2])
		wx := fx
		if off[0] == 0 {
			wx = 1 - fx
		}
		wy := fy
		if off[1] == 0 {
			wy = 1 - fy
		}
		wz := fz
		if off[2] == 0 {
			wz = 1 - fz
		}
		w[c] = wx * wy * wz
	}
	return idx, w, true
}

func floor(v float64) float64 {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
}

// InterpolateVelocity returns the fluid velocity at (x,y,z) via trilinear
// interpolation over the eight surrounding cells.
func InterpolateVelocity(g *lattice.Grid, x, y, z float64) (u [3]float64, ok bool) {
	idx, w, ok := trilinearWeights(g, x, y, z)
	if !ok {
		return u, false
	}
	for c := 0; c < 8; c++ {
		ui := g.UAt(idx[c])
		u[0] += w[c] * ui[0]
		u[1] += w[c] * ui[1]
		u[2] += w[c] * ui[2]
	}
	return u, true
}

// InterpolateDensity returns rho at (x,y,z) via the same trilinear
// stencil, used to evaluate the local fluid density for drag.
func InterpolateDensity(g *lattice.Grid, x, y, z float64) (rho float64, ok bool) {
	idx, w, ok := trilinearWeights(g, x, y, z)
	if !ok {
		return 0, false
	}
	for c := 0; c < 8; c++ {
		rho += w[c] * g.Rho[idx[c]]
	}
	return rho, true
}

// ScatterReaction accumulates -Fdrag onto the same eight surrounding
// cells with the identical trilinear weights used to interpolate the
// fluid velocity, satisfying Newton's third law for the two-way
// coupling.
func ScatterReaction(g *lattice.Grid, x, y, z float64, reaction [3]float64, sink force.Sink) {
	idx, w, ok := trilinearWeights(g, x, y, z)
	if !ok {
		return
	}
	for c := 0; c < 8; c++ {
		if w[c] == 0 {
			continue
		}
		sink.AddForceAt(idx[c], w[c]*reaction[0], w[c]*reaction[1], w[c]*reaction[2])
	}
}
