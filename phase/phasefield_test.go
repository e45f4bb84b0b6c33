// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"math"
	"testing"

	"github.com/latteine1217/pour-over-coffee-lbm/force"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

func TestLocalDensityInterpolatesBetweenPhases(t *testing.T) {
	m := NewModel(0.01, 1.0, 0.001, 1000, 1.2)
	if got := m.LocalDensity(1.0); math.Abs(got-1000) > 1e-9 {
		t.Fatalf("LocalDensity(1) = %v, want 1000 (pure water)", got)
	}
	if got := m.LocalDensity(-1.0); math.Abs(got-1.2) > 1e-9 {
		t.Fatalf("LocalDensity(-1) = %v, want 1.2 (pure air)", got)
	}
}

func TestEvolveClampsPhiToUnitRange(t *testing.T) {
	g := lattice.NewGrid(4, 4, 4, false)
	for i := range g.Tags {
		g.Tags[i] = lattice.Fluid
	}
	idx := g.Idx(2, 2, 2)
	g.Phi[idx] = 0.999
	m := NewModel(0.5, 1.0, 0.001, 1000, 1.2)
	m.Evolve(g, 1.0)
	for _, v := range g.Phi {
		if v < -1 || v > 1 {
			t.Fatalf("phi = %v, out of [-1,1]", v)
		}
	}
}

func TestEvolveLeavesSolidCellsUnchanged(t *testing.T) {
	g := lattice.NewGrid(4, 4, 4, false)
	idx := g.Idx(1, 1, 1)
	g.Tags[idx] = lattice.Solid
	g.Phi[idx] = 0.42
	m := NewModel(0.5, 1.0, 0.001, 1000, 1.2)
	m.Evolve(g, 1.0)
	if g.Phi[idx] != 0.42 {
		t.Fatalf("Phi at Solid cell = %v, want unchanged 0.42", g.Phi[idx])
	}
}

func TestComputeNormalCurvatureZeroGradientGivesZeroNormal(t *testing.T) {
	g := lattice.NewGrid(4, 4, 4, false)
	for i := range g.Tags {
		g.Tags[i] = lattice.Fluid
	}
	for i := range g.Phi {
		g.Phi[i] = 0.5 // uniform: zero gradient everywhere
	}
	m := NewModel(0.5, 1.0, 0.001, 1000, 1.2)
	m.ComputeNormalCurvature(g)
	idx := g.Idx(2, 2, 2)
	b := idx * 3
	if g.Normal[b] != 0 || g.Normal[b+1] != 0 || g.Normal[b+2] != 0 {
		t.Fatalf("Normal at uniform phi = (%v,%v,%v), want zero", g.Normal[b], g.Normal[b+1], g.Normal[b+2])
	}
}

func TestAccumulateSurfaceTensionSkipsOutsideInterfaceBand(t *testing.T) {
	g := lattice.NewGrid(4, 4, 4, false)
	for i := range g.Tags {
		g.Tags[i] = lattice.Fluid
	}
	idx := g.Idx(2, 2, 2)
	g.Phi[idx] = 1.0 // bulk water, |phi|>=0.9
	g.Kappa[idx] = 10
	m := NewModel(0.5, 1.0, 0.001, 1000, 1.2)
	m.AccumulateSurfaceTension(g, g)
	f := g.ForceAt(idx)
	fx := f[0]
	fy := f[1]
	fz := f[2]
	if fx != 0 || fy != 0 || fz != 0 {
		t.Fatalf("force outside interface band = (%v,%v,%v), want zero", fx, fy, fz)
	}
}

func TestTotalVolumeExcludesSolidCells(t *testing.T) {
	g := lattice.NewGrid(2, 1, 1, false)
	g.Tags[0] = lattice.Fluid
	g.Tags[1] = lattice.Solid
	g.Phi[0] = 0.3
	g.Phi[1] = 100 // must be excluded
	m := NewModel(0.5, 1.0, 0.001, 1000, 1.2)
	if got := m.TotalVolume(g); math.Abs(got-0.3) > 1e-12 {
		t.Fatalf("TotalVolume = %v, want 0.3", got)
	}
}

var _ force.Sink = (*lattice.Grid)(nil)
