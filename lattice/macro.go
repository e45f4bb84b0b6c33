// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import "math"

// RecoverMacro recomputes rho, u and p at cell idx from the current F and
// the aggregated body force, applying the Guo half-force correction:
//
//	rho = sum_i f_i
//	rho*u = sum_i f_i e_i + (dt/2) F
//
// Solid cells are skipped by convention (their rho/u are not consumed,
// per the data-model invariant); callers filter on Tags before calling.
func (g *Grid) RecoverMacro(idx int) {
	base := idx * Q
	var rho float64
	var mom [3]float64
	for i := 0; i < Q; i++ {
		fi := g.F[base+i]
		rho += fi
		mom[0] += fi * float64(E[i][0])
		mom[1] += fi * float64(E[i][1])
		mom[2] += fi * float64(E[i][2])
	}
	fb := idx * 3
	mom[0] += 0.5 * g.Force[fb]
	mom[1] += 0.5 * g.Force[fb+1]
	mom[2] += 0.5 * g.Force[fb+2]

	g.Rho[idx] = rho
	if rho > 0 {
		g.U[fb] = mom[0] / rho
		g.U[fb+1] = mom[1] / rho
		g.U[fb+2] = mom[2] / rho
	}
	g.P[idx] = rho * CsSqr
}

// RecoverMacroT recomputes the temperature at cell idx as the zeroth
// moment of the thermal distribution: T = sum_j g_j.
func (g *Grid) RecoverMacroT(idx int) {
	base := idx * D7
	var T float64
	for j := 0; j < D7; j++ {
		T += g.G[base+j]
	}
	g.T[idx] = T
}

// FailureReason enumerates the stability-gate failure kinds from spec
// §4.1 and §8.
type FailureReason int

const (
	// OK indicates no failure.
	OK FailureReason = iota
	// NonPositiveDensity indicates rho <= 0 at a flowing cell.
	NonPositiveDensity
	// NonFinite indicates a NaN or Inf value in rho, u or f.
	NonFinite
	// MachExceeded indicates |u| > 0.3 c_s (the hard stability limit; the
	// softer 0.1 c_s Mach gate is checked separately as a warning/fatal
	// threshold by the orchestrator).
	MachExceeded
)

// CheckCell validates the hard stability conditions at cell idx: rho>0,
// |u|<=0.3*Cs, and finiteness of rho, u and all 19 distributions. It does
// not check CFL or tau_eff — those are whole-step, not per-cell,
// properties checked by the orchestrator's stability gate.
func (g *Grid) CheckCell(idx int) FailureReason {
	if !g.Tags[idx].IsFlowing() {
		return OK
	}
	rho := g.Rho[idx]
	if math.IsNaN(rho) || math.IsInf(rho, 0) {
		return NonFinite
	}
	if rho <= 0 {
		return NonPositiveDensity
	}
	b := idx * 3
	u0, u1, u2 := g.U[b], g.U[b+1], g.U[b+2]
	if math.IsNaN(u0) || math.IsNaN(u1) || math.IsNaN(u2) ||
		math.IsInf(u0, 0) || math.IsInf(u1, 0) || math.IsInf(u2, 0) {
		return NonFinite
	}
	speed := math.Sqrt(u0*u0 + u1*u1 + u2*u2)
	if speed > 0.3*Cs {
		return MachExceeded
	}
	base := idx * Q
	for i := 0; i < Q; i++ {
		f := g.F[base+i]
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return NonFinite
		}
	}
	return OK
}

// MaxSpeed returns the maximum |u| over all flowing cells, used by the
// CFL/Mach stability gate.
func (g *Grid) MaxSpeed() float64 {
	var max float64
	n := g.N()
	for idx := 0; idx < n; idx++ {
		if !g.Tags[idx].IsFlowing() {
			continue
		}
		b := idx * 3
		u0, u1, u2 := g.U[b], g.U[b+1], g.U[b+2]
		speed := math.Sqrt(u0*u0 + u1*u1 + u2*u2)
		if speed > max {
			max = speed
		}
	}
	return max
}

// TotalMass sums rho over all flowing cells, used by the mass-conservation
// diagnostic.
func (g *Grid) TotalMass() float64 {
	var sum float64
	n := g.N()
	for idx := 0; idx < n; idx++ {
		if !g.Tags[idx].IsFlowing() {
			continue
		}
		sum += g.Rho[idx]
	}
	return sum
}

// KineticEnergy sums 1/2 rho |u|^2 over all flowing cells, reported
// through Diagnostics and checked by the Taylor-Green decay scenario.
func (g *Grid) KineticEnergy() float64 {
	var sum float64
	n := g.N()
	for idx := 0; idx < n; idx++ {
		if !g.Tags[idx].IsFlowing() {
			continue
		}
		b := idx * 3
		u0, u1, u2 := g.U[b], g.U[b+1], g.U[b+2]
		sum += 0.5 * g.Rho[idx] * (u0*u0 + u1*u1 + u2*u2)
	}
	return sum
}
