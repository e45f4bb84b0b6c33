// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boundary

import (
	"github.com/latteine1217/pour-over-coffee-lbm/engine"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// ApplyOutlet reconstructs the populations streaming could not supply at
// every Outlet-tagged cell by second-order extrapolation from the two
// interior neighbors along the face normal (first-order copy from the
// single neighbor when only one exists), then corrects the cell's
// density to exactly rhoOut (the target p_out = rho_out * cs^2) by
// redistributing the residual across the reconstructed directions,
// weighted by their lattice weight.
func ApplyOutlet(g *lattice.Grid, rhoOut float64) {
	n := g.N()
	engine.ParallelFor(0, n, func(idx int) {
		if g.Tags[idx] != lattice.Outlet {
			return
		}
		x, y, z := g.Coords(idx)
		face, ok := findFace(g, x, y, z)
		if !ok {
			return
		}
		_, _, unknownIn := classify(face)

		var off [3]int
		off[face.Axis] = face.DirIn
		n1, ok1 := g.Neighbor(x, y, z, off[0], off[1], off[2])
		n2, ok2 := g.Neighbor(x, y, z, 2*off[0], 2*off[1], 2*off[2])

		base := idx * lattice.Q
		if ok1 && ok2 {
			b1, b2 := n1*lattice.Q, n2*lattice.Q
			for _, i := range unknownIn {
				g.F[base+i] = 2*g.F[b1+i] - g.F[b2+i]
			}
		} else if ok1 {
			b1 := n1 * lattice.Q
			for _, i := range unknownIn {
				g.F[base+i] = g.F[b1+i]
			}
		} else {
			return
		}

		var rhoNow float64
		for i := 0; i < lattice.Q; i++ {
			rhoNow += g.F[base+i]
		}
		var wSum float64
		for _, i := range unknownIn {
			wSum += lattice.W[i]
		}
		if wSum > 0 {
			delta := rhoOut - rhoNow
			for _, i := range unknownIn {
				g.F[base+i] += delta * lattice.W[i] / wSum
			}
		}
		g.Rho[idx] = rhoOut
	})
}
