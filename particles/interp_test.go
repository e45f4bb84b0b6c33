// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"math"
	"testing"

	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

func TestInterpolateVelocityOnUniformFieldReturnsThatValue(t *testing.T) {
	g := lattice.NewGrid(5, 5, 5, false)
	for i := 0; i < g.N(); i++ {
		b := i * 3
		g.U[b], g.U[b+1], g.U[b+2] = 0.1, -0.2, 0.3
	}
	u, ok := InterpolateVelocity(g, 2.3, 2.6, 2.1)
	if !ok {
		t.Fatalf("InterpolateVelocity reported ok=false inside the domain")
	}
	if math.Abs(u[0]-0.1) > 1e-9 || math.Abs(u[1]-(-0.2)) > 1e-9 || math.Abs(u[2]-0.3) > 1e-9 {
		t.Fatalf("InterpolateVelocity = %v, want (0.1,-0.2,0.3) on a uniform field", u)
	}
}

func TestInterpolateDensityInterpolatesLinearly(t *testing.T) {
	g := lattice.NewGrid(3, 3, 3, false)
	g.Rho[g.Idx(0, 0, 0)] = 1.0
	g.Rho[g.Idx(1, 0, 0)] = 2.0
	rho, ok := InterpolateDensity(g, 0.5, 0, 0)
	if !ok {
		t.Fatalf("InterpolateDensity reported ok=false inside the domain")
	}
	if math.Abs(rho-1.5) > 1e-9 {
		t.Fatalf("InterpolateDensity at the midpoint = %v, want 1.5", rho)
	}
}

func TestScatterReactionConservesTotalForce(t *testing.T) {
	g := lattice.NewGrid(3, 3, 3, false)
	ScatterReaction(g, 1.5, 1.5, 1.5, [3]float64{2, 0, 0}, g)
	var sumFx float64
	for i := 0; i < g.N(); i++ {
		f := g.ForceAt(i)
		sumFx += f[0]
	}
	if math.Abs(sumFx-2) > 1e-9 {
		t.Fatalf("sum of scattered fx = %v, want 2 (conserved across the 8-corner stencil)", sumFx)
	}
}
