// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boundary

import (
	"github.com/latteine1217/pour-over-coffee-lbm/engine"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// ApplyInlet reconstructs the populations streaming could not supply at
// every Inlet-tagged cell, using Zou-He's velocity condition generalized
// to an axis-aligned face: the wall-normal density is recovered from the
// known populations and the prescribed velocity, then each unknown
// population is set to its equilibrium plus the non-equilibrium part of
// its opposite (already-known) direction. The prescribed velocity is
// read from g.UIn, set by the pouring subsystem through
// Simulation.SetInletVelocity.
func ApplyInlet(g *lattice.Grid) {
	n := g.N()
	engine.ParallelFor(0, n, func(idx int) {
		if g.Tags[idx] != lattice.Inlet {
			return
		}
		x, y, z := g.Coords(idx)
		face, ok := findFace(g, x, y, z)
		if !ok {
			return
		}
		tangential, knownOut, unknownIn := classify(face)

		ub := idx * 3
		u := [3]float64{g.UIn[ub], g.UIn[ub+1], g.UIn[ub+2]}

		base := idx * lattice.Q
		var tangSum, outSum float64
		for _, i := range tangential {
			tangSum += g.F[base+i]
		}
		for _, i := range knownOut {
			outSum += g.F[base+i]
		}
		denom := 1 - float64(face.DirIn)*u[face.Axis]
		if denom <= 0 {
			// prescribed velocity faces outward or is degenerate; leave the
			// existing (likely zero) unknowns rather than divide by a
			// non-positive denominator.
			return
		}
		rho := (tangSum + 2*outSum) / denom
		g.Rho[idx] = rho

		var feq [lattice.Q]float64
		lattice.EquilibriumAll(&feq, rho, u)

		for _, i := range unknownIn {
			opp := lattice.Opp[i]
			g.F[base+i] = feq[i] + (g.F[base+opp] - feq[opp])
		}
	})
}
