// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package les implements the Smagorinsky eddy-viscosity closure: the
// strain-rate tensor is differenced on the velocity field with
// second-order central differences in the interior and one-sided
// differences adjacent to solid cells, and the subgrid viscosity
// nu_s = (Cs*Delta)^2 |S| is suppressed in porous cells, the phase-field
// interface band, and low-shear cells. The strain tensor itself is
// allocated with gosl/la rather than a bare [3][3]float64, mirroring how
// the teacher's fem package allocates small dense matrices for Jacobians.
package les

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// Cs is the Smagorinsky constant.
const Cs = 0.18

// LowShearThreshold is the |S| floor below which nu_s is suppressed to
// zero to avoid unphysical damping of near-quiescent flow.
const LowShearThreshold = 1e-3

// Closure evaluates the LES closure over a grid's fluid cells, writing
// nu_s into g.NuS. Delta is the filter width (Dx*Dy*Dz)^(1/3), normally 1
// in lattice units for a uniform Dx=1 grid.
type Closure struct {
	Delta float64
}

// NewClosure builds a Closure for a uniform grid with the given filter
// width.
func NewClosure(delta float64) *Closure {
	return &Closure{Delta: delta}
}

// strain evaluates the symmetric strain-rate tensor S_ab = 1/2(db ua + da
// ub) at cell (x,y,z) via central differences on interior neighbors and
// one-sided differences where a neighbor is solid or off-grid.
func strain(g *lattice.Grid, x, y, z int) [][]float64 {
	s := la.MatAlloc(3, 3)

	// du_a/dx_b for a,b in {0,1,2} (x,y,z).
	var grad [3][3]float64
	offsets := [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for b := 0; b < 3; b++ {
		dx, dy, dz := offsets[b][0], offsets[b][1], offsets[b][2]
		plusIdx, plusOK := g.Neighbor(x, y, z, dx, dy, dz)
		minusIdx, minusOK := g.Neighbor(x, y, z, -dx, -dy, -dz)
		plusSolid := plusOK && g.Tags[plusIdx] == lattice.Solid
		minusSolid := minusOK && g.Tags[minusIdx] == lattice.Solid

		for a := 0; a < 3; a++ {
			switch {
			case plusOK && !plusSolid && minusOK && !minusSolid:
				up := g.U[plusIdx*3+a]
				um := g.U[minusIdx*3+a]
				grad[a][b] = (up - um) / 2.0
			case plusOK && !plusSolid:
				here := g.Idx(x, y, z)
				up := g.U[plusIdx*3+a]
				u0 := g.U[here*3+a]
				grad[a][b] = up - u0
			case minusOK && !minusSolid:
				here := g.Idx(x, y, z)
				um := g.U[minusIdx*3+a]
				u0 := g.U[here*3+a]
				grad[a][b] = u0 - um
			default:
				grad[a][b] = 0
			}
		}
	}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			s[a][b] = 0.5 * (grad[a][b] + grad[b][a])
		}
	}
	return s
}

// norm computes the Frobenius-style strain-rate magnitude
// |S| = sqrt(2 S_ab S_ab) used by the Smagorinsky model.
func norm(s [][]float64) float64 {
	var sum float64
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			sum += s[a][b] * s[a][b]
		}
	}
	return math.Sqrt(2.0 * sum)
}

// Compute evaluates nu_s at cell idx=(x,y,z) and stores it in g.NuS.
// Suppression rules (porous, interface band, low shear) are applied here
// so callers never need to special-case the output.
func (c *Closure) Compute(g *lattice.Grid, idx, x, y, z int) {
	if g.Tags[idx] == lattice.Porous {
		g.NuS[idx] = 0
		return
	}
	if math.Abs(g.Phi[idx]) < 0.9 {
		g.NuS[idx] = 0
		return
	}
	s := strain(g, x, y, z)
	sMag := norm(s)
	if sMag < LowShearThreshold {
		g.NuS[idx] = 0
		return
	}
	filtered := c.Delta * c.Delta
	g.NuS[idx] = Cs * Cs * filtered * sMag
}

// EffectiveTau combines the molecular relaxation time with the subgrid
// contribution, tau_eff = tau_mol + 3*nu_s, clamped to [0.51, 2.0].
// Returns the clamped value and whether a clamp occurred (the caller
// increments the diagnostic counter on true).
func EffectiveTau(tauMol, nuS float64) (tauEff float64, clipped bool) {
	tauEff = tauMol + 3.0*nuS
	if tauEff < 0.51 {
		return 0.51, true
	}
	if tauEff > 2.0 {
		return 2.0, true
	}
	return tauEff, false
}
