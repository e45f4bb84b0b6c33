// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lbm implements the unified D3Q19 collision and streaming
// kernels: BGK relaxation toward the local equilibrium with Guo's
// consistent body-force correction, and streaming with a built-in
// half-way bounce-back for solid neighbors (moving-wall cases apply
// Ladd's correction). Zou-He inlet and extrapolation-outlet treatment,
// which act on the already-streamed distributions, live in the
// boundary package.
package lbm

import (
	"github.com/latteine1217/pour-over-coffee-lbm/engine"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// Collide relaxes F toward the Guo-forced equilibrium at every flowing
// cell, writing the post-collision state into FNew. tauEffAt supplies the
// already-clamped effective relaxation time for a cell (computed by the
// LES closure one cell at a time, since it depends on that cell's strain
// rate and molecular relaxation time).
func Collide(g *lattice.Grid, tauEffAt func(idx int) float64) {
	n := g.N()
	engine.ParallelFor(0, n, func(idx int) {
		if !g.Tags[idx].IsFlowing() {
			return
		}
		rho := g.Rho[idx]
		u := g.UAt(idx)
		fBody := g.ForceAt(idx)
		tauEff := tauEffAt(idx)

		var feq [lattice.Q]float64
		lattice.EquilibriumAll(&feq, rho, u)

		base := idx * lattice.Q
		for i := 0; i < lattice.Q; i++ {
			fOld := g.F[base+i]
			guo := lattice.GuoForcing(i, tauEff, u, fBody)
			g.FNew[base+i] = fOld - (fOld-feq[i])/tauEff + guo
		}
	})
}
