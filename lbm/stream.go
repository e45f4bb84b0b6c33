// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lbm

import (
	"github.com/latteine1217/pour-over-coffee-lbm/engine"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// Stream propagates the post-collision distributions in FNew along each
// discrete velocity into F at the downstream neighbor. When the
// downstream neighbor is a Solid cell, half-way bounce-back applies
// instead: the distribution is reflected back into the opposite
// direction of the source cell, with Ladd's correction
// -2 w_i rho (e_i . u_wall) / cs^2 added for a moving wall (nonzero
// UWall). When the downstream neighbor is off-grid on a non-periodic
// axis (an open inlet/outlet boundary, not a solid wall), the population
// simply leaves the domain and nothing is written; the corresponding
// "missing" population at the boundary node (which nothing streams in
// from outside) is left at zero for the boundary package's Zou-He or
// extrapolation treatment to fill in afterward.
func Stream(g *lattice.Grid) {
	n := g.N()
	dst := make([]float64, len(g.F))
	engine.ParallelFor(0, n, func(idx int) {
		if !g.Tags[idx].IsFlowing() {
			return
		}
		x, y, z := g.Coords(idx)
		base := idx * lattice.Q
		rho := g.Rho[idx]
		for i := 0; i < lattice.Q; i++ {
			val := g.FNew[base+i]
			nb, ok := g.Neighbor(x, y, z, lattice.E[i][0], lattice.E[i][1], lattice.E[i][2])
			if !ok {
				continue
			}
			if g.Tags[nb] == lattice.Solid {
				wb := nb * 3
				uw := [3]float64{g.UWall[wb], g.UWall[wb+1], g.UWall[wb+2]}
				eu := float64(lattice.E[i][0])*uw[0] + float64(lattice.E[i][1])*uw[1] + float64(lattice.E[i][2])*uw[2]
				ladd := -2 * lattice.W[i] * rho * eu / lattice.CsSqr
				dst[base+lattice.Opp[i]] += val + ladd
				continue
			}
			dst[nb*lattice.Q+i] += val
		}
	})
	copy(g.F, dst)
}
