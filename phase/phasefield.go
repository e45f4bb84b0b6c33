// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package phase implements the Cahn-Hilliard-style multiphase closure:
// the order parameter phi in [-1,1] tracks the water-air interface, its
// gradient and curvature drive a continuum surface-tension body force,
// and a density mapping rho(phi) feeds the per-cell molecular relaxation
// time without altering how distributions are recovered (a single
// equilibrium from the local rho recovered from sum f_i).
package phase

import (
	"math"

	"github.com/cpmech/gosl/utl"

	"github.com/latteine1217/pour-over-coffee-lbm/engine"
	"github.com/latteine1217/pour-over-coffee-lbm/force"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// GradientEpsilon guards the interface-normal division when |grad phi| is
// too small to normalize safely.
const GradientEpsilon = 1e-8

// Model holds the phase-field parameters.
type Model struct {
	Mobility float64 // M
	Xi       float64 // interface thickness parameter
	Sigma    float64 // surface tension, lattice units
	RhoWater float64
	RhoAir   float64

	scratch []float64 // reused buffer for the new phi field
}

// NewModel builds a phase-field model from the given parameters as is: it
// does not derive Xi from a target band width (a band of about 4 cells
// corresponds to Xi ~ 4/(2*sqrt(2)*atanh(0.9))) and does not validate
// sigma.
func NewModel(mobility, xi, sigma, rhoWater, rhoAir float64) *Model {
	return &Model{Mobility: mobility, Xi: xi, Sigma: sigma, RhoWater: rhoWater, RhoAir: rhoAir}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// gradScalar evaluates the gradient of a scalar field at (x,y,z) with
// central differences in the interior and one-sided differences adjacent
// to solid cells or the domain edge on non-periodic axes, mirroring the
// LES closure's stencil-selection rule.
func gradScalar(g *lattice.Grid, field []float64, x, y, z int) [3]float64 {
	var grad [3]float64
	offsets := [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	here := g.Idx(x, y, z)
	for a := 0; a < 3; a++ {
		dx, dy, dz := offsets[a][0], offsets[a][1], offsets[a][2]
		plusIdx, plusOK := g.Neighbor(x, y, z, dx, dy, dz)
		minusIdx, minusOK := g.Neighbor(x, y, z, -dx, -dy, -dz)
		plusSolid := plusOK && g.Tags[plusIdx] == lattice.Solid
		minusSolid := minusOK && g.Tags[minusIdx] == lattice.Solid
		switch {
		case plusOK && !plusSolid && minusOK && !minusSolid:
			grad[a] = (field[plusIdx] - field[minusIdx]) / 2.0
		case plusOK && !plusSolid:
			grad[a] = field[plusIdx] - field[here]
		case minusOK && !minusSolid:
			grad[a] = field[here] - field[minusIdx]
		default:
			grad[a] = 0
		}
	}
	return grad
}

// laplacianScalar evaluates the standard second-order 7-point Laplacian
// stencil, treating solid or off-grid neighbors as zero-flux (Neumann)
// boundaries by mirroring the center value.
func laplacianScalar(g *lattice.Grid, field []float64, x, y, z int) float64 {
	here := g.Idx(x, y, z)
	center := field[here]
	var sum float64
	offsets := [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, o := range offsets {
		idx, ok := g.Neighbor(x, y, z, o[0], o[1], o[2])
		if !ok || g.Tags[idx] == lattice.Solid {
			sum += center // mirror: zero-flux
			continue
		}
		sum += field[idx]
	}
	return sum - 6*center
}

// Evolve advances phi by one explicit-Euler step of
//
//	d_t phi + u.grad(phi) = M div(grad(mu)),  mu = phi^3 - phi - xi^2 lap(phi)
//
// over all non-solid cells, writing the result into m.scratch and then
// swapping it into g.Phi. Values are clamped to [-1,1] per the data-model
// invariant.
func (m *Model) Evolve(g *lattice.Grid, dt float64) {
	n := g.N()
	if len(m.scratch) != n {
		m.scratch = make([]float64, n)
	}
	mu := make([]float64, n)
	engine.ParallelFor(0, n, func(idx int) {
		if g.Tags[idx] == lattice.Solid {
			mu[idx] = 0
			return
		}
		x, y, z := g.Coords(idx)
		lap := laplacianScalar(g, g.Phi, x, y, z)
		phi := g.Phi[idx]
		mu[idx] = phi*phi*phi - phi - m.Xi*m.Xi*lap
	})
	engine.ParallelFor(0, n, func(idx int) {
		if g.Tags[idx] == lattice.Solid {
			m.scratch[idx] = g.Phi[idx]
			return
		}
		x, y, z := g.Coords(idx)
		u := g.UAt(idx)
		gradPhi := gradScalar(g, g.Phi, x, y, z)
		advect := utl.Dot3d(u[:], gradPhi[:])
		lapMu := laplacianScalar(g, mu, x, y, z)
		phiNext := g.Phi[idx] + dt*(-advect+m.Mobility*lapMu)
		m.scratch[idx] = clamp(phiNext, -1, 1)
	})
	copy(g.Phi, m.scratch)
}

// ComputeNormalCurvature fills g.Normal and g.Kappa from the current phi
// field: n = grad(phi)/|grad(phi)| (safeguarded below GradientEpsilon)
// and kappa = -div(n), evaluated on the already-computed normal field
// with the same central/one-sided differences as gradScalar.
func (m *Model) ComputeNormalCurvature(g *lattice.Grid) {
	n := g.N()
	// First pass: normalized gradient.
	engine.ParallelFor(0, n, func(idx int) {
		x, y, z := g.Coords(idx)
		grad := gradScalar(g, g.Phi, x, y, z)
		mag := math.Sqrt(grad[0]*grad[0] + grad[1]*grad[1] + grad[2]*grad[2])
		b := idx * 3
		if mag < GradientEpsilon {
			g.Normal[b], g.Normal[b+1], g.Normal[b+2] = 0, 0, 0
			return
		}
		g.Normal[b] = grad[0] / mag
		g.Normal[b+1] = grad[1] / mag
		g.Normal[b+2] = grad[2] / mag
	})
	// Second pass: curvature = -div(n), using the just-computed field.
	nx := make([]float64, n)
	ny := make([]float64, n)
	nz := make([]float64, n)
	for i := 0; i < n; i++ {
		nx[i], ny[i], nz[i] = g.Normal[i*3], g.Normal[i*3+1], g.Normal[i*3+2]
	}
	engine.ParallelFor(0, n, func(idx int) {
		x, y, z := g.Coords(idx)
		gx := gradScalar(g, nx, x, y, z)
		gy := gradScalar(g, ny, x, y, z)
		gz := gradScalar(g, nz, x, y, z)
		div := gx[0] + gy[1] + gz[2]
		g.Kappa[idx] = -div
	})
}

// AccumulateSurfaceTension adds the continuum surface-tension body force
// F_st = sigma * kappa * grad(phi) into sink for every cell inside the
// interface band (|phi| < 0.9); outside the band the force is
// numerically negligible and skipped for efficiency.
func (m *Model) AccumulateSurfaceTension(g *lattice.Grid, sink force.Sink) {
	n := g.N()
	engine.ParallelFor(0, n, func(idx int) {
		if math.Abs(g.Phi[idx]) >= 0.9 {
			return
		}
		if g.Tags[idx] == lattice.Solid {
			return
		}
		x, y, z := g.Coords(idx)
		grad := gradScalar(g, g.Phi, x, y, z)
		k := g.Kappa[idx]
		sink.AddForceAt(idx, m.Sigma*k*grad[0], m.Sigma*k*grad[1], m.Sigma*k*grad[2])
	})
}

// LocalDensity maps the order parameter to a density used only to derive
// tau_mol per cell: rho(phi) = rho_w(phi+1)/2 + rho_a(1-phi)/2.
func (m *Model) LocalDensity(phi float64) float64 {
	return m.RhoWater*(phi+1)/2 + m.RhoAir*(1-phi)/2
}

// TotalVolume integrates phi over all non-solid cells; used by the
// conservation diagnostic (∫phi dV within 1e-4 over 1e4 steps).
func (m *Model) TotalVolume(g *lattice.Grid) float64 {
	var sum float64
	n := g.N()
	for idx := 0; idx < n; idx++ {
		if g.Tags[idx] == lattice.Solid {
			continue
		}
		sum += g.Phi[idx]
	}
	return sum
}
