// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thermal implements the optional D3Q7 thermal distribution:
// BGK collision with relaxation time tau_T, streaming (advection of T is
// encoded by the streaming itself), a Vogel-type temperature-dependent
// viscosity update propagated into the fluid's molecular relaxation
// time, and a Boussinesq buoyancy body force. Two coupling modes are
// supported, mirroring the teacher's mdl/thermomech split between a
// thermal model used standalone and one feeding a mechanical response.
package thermal

import (
	"math"

	"github.com/latteine1217/pour-over-coffee-lbm/engine"
	"github.com/latteine1217/pour-over-coffee-lbm/force"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// Mode selects the thermal coupling strength.
type Mode int

const (
	// Off disables the thermal solver entirely.
	Off Mode = iota
	// Weak couples only viscosity update and advection; T does not
	// modify distributions and no buoyancy is applied.
	Weak
	// Strong activates all three couplings: advection, viscosity, and
	// Boussinesq buoyancy.
	Strong
)

// Model holds the thermal solver's physical parameters.
type Model struct {
	Mode Mode
	TauT float64 // D3Q7 BGK relaxation time

	// Vogel viscosity correlation: mu = Mu0 * exp(Ea/Rgas * (1/T - 1/T0)).
	Mu0   float64
	Ea    float64
	Rgas  float64
	TRef0 float64 // T0 in the Vogel correlation

	// Boussinesq buoyancy: F_b = Rho0 * BetaT * (T - TRef) * g.
	Rho0    float64
	BetaT   float64
	TRef    float64
	Gravity [3]float64
}

// Alpha returns the thermal diffusivity alpha = cs_T^2 (tau_T - 1/2).
func (m *Model) Alpha() float64 {
	return lattice.CsSqrT * (m.TauT - 0.5)
}

// CheckCFL reports whether the thermal CFL number alpha*dt/dx^2 respects
// the strong-coupling stability bound of 0.1 (spec §4.6).
func (m *Model) CheckCFL(dt, dx float64) bool {
	return m.Alpha()*dt/(dx*dx) <= 0.1
}

// Rayleigh evaluates Ra = betaT*g*deltaT*L^3/(nu*alpha), the strong-mode
// stability criterion (<=1e6).
func Rayleigh(betaT, g, deltaT, L, nu, alpha float64) float64 {
	return betaT * g * deltaT * L * L * L / (nu * alpha)
}

// Collide performs BGK relaxation of the D3Q7 distribution toward its
// equilibrium, writing the post-collision state into GNew.
func (m *Model) Collide(grid *lattice.Grid) {
	n := grid.N()
	engine.ParallelFor(0, n, func(idx int) {
		if !grid.Tags[idx].IsFlowing() {
			return
		}
		T := grid.T[idx]
		u := grid.UAt(idx)
		base := idx * lattice.D7
		for j := 0; j < lattice.D7; j++ {
			geq := lattice.EquilibriumT(j, T, u)
			gOld := grid.G[base+j]
			grid.GNew[base+j] = gOld - (gOld-geq)/m.TauT
		}
	})
}

// Stream propagates GNew along each D3Q7 direction into G at the
// downstream neighbor, mirroring the fluid stencil's Opp/E tables
// (ET indexes into the same E array used by the D3Q19 stencil).
func (m *Model) Stream(grid *lattice.Grid) {
	n := grid.N()
	newG := make([]float64, len(grid.G))
	engine.ParallelFor(0, n, func(idx int) {
		x, y, z := grid.Coords(idx)
		for j := 0; j < lattice.D7; j++ {
			i := lattice.ET[j]
			dst, ok := grid.Neighbor(x, y, z, lattice.E[i][0], lattice.E[i][1], lattice.E[i][2])
			val := grid.GNew[idx*lattice.D7+j]
			if !ok {
				// non-periodic boundary: bounce back into the same cell;
				// ApplyBC overwrites it only where the cell carries a
				// thermal boundary tag, otherwise the edge is adiabatic.
				newG[idx*lattice.D7+lattice.Opp[i]] += val
				continue
			}
			newG[dst*lattice.D7+j] += val
		}
	})
	copy(grid.G, newG)
}

// ApplyBC enforces the per-cell thermal boundary condition after
// streaming: Dirichlet fixes T and resets g to the equilibrium at that T;
// Neumann(0) copies the interior neighbor's distribution (zero gradient);
// Robin relaxes toward an environment temperature through film
// coefficient h.
func (m *Model) ApplyBC(grid *lattice.Grid) {
	n := grid.N()
	engine.ParallelFor(0, n, func(idx int) {
		switch grid.ThermalBCs[idx] {
		case lattice.ThermalDirichlet:
			T := grid.TDirVal[idx]
			u := grid.UAt(idx)
			base := idx * lattice.D7
			for j := 0; j < lattice.D7; j++ {
				grid.G[base+j] = lattice.EquilibriumT(j, T, u)
			}
		case lattice.ThermalNeumannZero:
			x, y, z := grid.Coords(idx)
			found := false
			for _, o := range [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
				nb, ok := grid.Neighbor(x, y, z, o[0], o[1], o[2])
				if ok && grid.Tags[nb].IsFlowing() {
					copy(grid.G[idx*lattice.D7:idx*lattice.D7+lattice.D7], grid.G[nb*lattice.D7:nb*lattice.D7+lattice.D7])
					found = true
					break
				}
			}
			_ = found
		case lattice.ThermalRobin:
			h := grid.HCoef[idx]
			tEnv := grid.TEnv[idx]
			Tcur := grid.T[idx]
			Tnew := Tcur - h*(Tcur-tEnv)
			u := grid.UAt(idx)
			base := idx * lattice.D7
			for j := 0; j < lattice.D7; j++ {
				grid.G[base+j] = lattice.EquilibriumT(j, Tnew, u)
			}
		}
	})
}

// RecoverMacro recomputes T = sum_j g_j for every flowing cell.
func (m *Model) RecoverMacro(grid *lattice.Grid) {
	n := grid.N()
	engine.ParallelFor(0, n, func(idx int) {
		if !grid.Tags[idx].IsFlowing() {
			return
		}
		grid.RecoverMacroT(idx)
	})
}

// Viscosity evaluates the Vogel correlation mu = Mu0 exp(Ea/Rgas (1/T -
// 1/T0)).
func (m *Model) Viscosity(T float64) float64 {
	if T <= 0 {
		T = m.TRef0
	}
	if m.Ea == 0 {
		return m.Mu0 // no activation energy: constant viscosity
	}
	return m.Mu0 * math.Exp(m.Ea/m.Rgas*(1.0/T-1.0/m.TRef0))
}

// UpdateTauMol propagates the temperature-dependent viscosity into the
// per-cell molecular relaxation time: tau_mol = mu(T)/(rho*cs^2) + 1/2.
func (m *Model) UpdateTauMol(grid *lattice.Grid) {
	if m.Mode == Off {
		return
	}
	n := grid.N()
	engine.ParallelFor(0, n, func(idx int) {
		if !grid.Tags[idx].IsFlowing() {
			return
		}
		T := grid.T[idx]
		mu := m.Viscosity(T)
		rho := grid.Rho[idx]
		if rho <= 0 {
			return
		}
		nu := mu / rho
		grid.TauMl[idx] = nu/lattice.CsSqr + 0.5
	})
}

// AccumulateBuoyancy adds the Boussinesq body force F_b = Rho0 BetaT (T -
// TRef) g into sink, only in Strong coupling mode.
func (m *Model) AccumulateBuoyancy(grid *lattice.Grid, sink force.Sink) {
	if m.Mode != Strong {
		return
	}
	n := grid.N()
	engine.ParallelFor(0, n, func(idx int) {
		if !grid.Tags[idx].IsFlowing() {
			return
		}
		T := grid.T[idx]
		coef := m.Rho0 * m.BetaT * (T - m.TRef)
		sink.AddForceAt(idx, coef*m.Gravity[0], coef*m.Gravity[1], coef*m.Gravity[2])
	})
}
