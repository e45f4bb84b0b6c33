// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package porous implements the Darcy-Forchheimer resistance model for
// porous cells (the V60 paper filter and the coffee bed), following the
// teacher's mdl/porous convention of a Model struct populated from a
// dbf.Params list plus a set of named derived-quantity helpers, adapted
// from an unsaturated-soil retention model to a single-phase Ergun
// resistance law.
package porous

import (
	"math"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/num"

	"github.com/latteine1217/pour-over-coffee-lbm/engine"
	"github.com/latteine1217/pour-over-coffee-lbm/force"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// Model holds the constants needed to derive K and beta from a porosity
// field, plus the Newton-iteration controls used by PorosityFromK.
type Model struct {
	// parameters
	GrainDiam float64 // d_p: mean grain diameter

	// Newton iteration controls for the porosity inversion (mirrors the
	// teacher's mdl/porous NmaxIt/Itol convention).
	NmaxIt int
	Itol   float64
}

// NewModel builds a Model from a dbf.Params list, falling back to
// reasonable defaults for any unset parameter (grounded on the teacher's
// mdl/porous Init pattern of iterating prms and switching on p.N).
func NewModel(prms dbf.Params) *Model {
	o := &Model{GrainDiam: 5e-4, NmaxIt: 20, Itol: 1e-9}
	for _, p := range prms {
		switch p.N {
		case "GrainDiam":
			o.GrainDiam = p.V
		case "NmaxIt":
			o.NmaxIt = int(p.V)
		case "Itol":
			o.Itol = p.V
		}
	}
	return o
}

// GetPrms returns the current (or, if example, a representative example)
// parameter set, mirroring the teacher's Model.GetPrms signature.
func (o Model) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "GrainDiam", V: 5e-4},
		}
	}
	return dbf.Params{
		&dbf.P{N: "GrainDiam", V: o.GrainDiam},
	}
}

// Permeability returns the Ergun-estimated permeability
// K = eps^3 d_p^2 / (180 (1-eps)^2).
func Permeability(eps, dp float64) float64 {
	return eps * eps * eps * dp * dp / (180.0 * (1 - eps) * (1 - eps))
}

// ErgunBeta returns the Ergun inertial coefficient beta = 1.75/eps^3.
func ErgunBeta(eps float64) float64 {
	return 1.75 / (eps * eps * eps)
}

// PorosityFromK inverts Permeability(eps, dp) = K for eps via Newton
// iteration. Returns a value in [1e-3, 0.999]. sim.LoadGeometry does not
// call it: it receives porosity directly.
func (o *Model) PorosityFromK(K float64) float64 {
	eps := 0.4 // initial guess, typical packed-bed porosity
	dp := o.GrainDiam
	f := func(e float64) float64 { return Permeability(e, dp) - K }
	residual := func(e float64, args ...interface{}) float64 { return f(e) }
	for it := 0; it < o.NmaxIt; it++ {
		fe := f(eps)
		if math.Abs(fe) < o.Itol {
			break
		}
		d := num.DerivCen(residual, eps)
		if d == 0 {
			break
		}
		eps -= fe / d
		eps = math.Max(1e-3, math.Min(0.999, eps))
	}
	return eps
}

// EffectiveHeatCapacity returns the porous-cell thermal inertia
// eps*rhoW*cpW + (1-eps)*rhoC*cpC, spec §3/§4.6.A.
func EffectiveHeatCapacity(eps, rhoW, cpW, rhoC, cpC float64) float64 {
	return eps*rhoW*cpW + (1-eps)*rhoC*cpC
}

// AccumulateResistance adds the Darcy + Forchheimer body force
//
//	F_por = -(mu/K) u - (rho*beta/sqrt(K)) |u| u
//
// into sink for every porous cell, using the cell-local K and beta
// fields (never a single hardcoded value).
func AccumulateResistance(g *lattice.Grid, mu float64, sink force.Sink) {
	n := g.N()
	engine.ParallelFor(0, n, func(idx int) {
		if g.Tags[idx] != lattice.Porous {
			return
		}
		K := g.PorousK[idx]
		beta := g.PorousBeta[idx]
		if K <= 0 {
			return
		}
		u := g.UAt(idx)
		speed := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
		rho := g.Rho[idx]
		darcyCoef := mu / K
		forchCoef := rho * beta / math.Sqrt(K) * speed
		fx := -darcyCoef*u[0] - forchCoef*u[0]
		fy := -darcyCoef*u[1] - forchCoef*u[1]
		fz := -darcyCoef*u[2] - forchCoef*u[2]
		sink.AddForceAt(idx, fx, fy, fz)
	})
}
