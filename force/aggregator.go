// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package force implements the body-force aggregator: the single
// 3-component field that the force-producing components (phase field,
// porous, particle, thermal) write into through atomic accumulation,
// and that the LBM core reads once per step through the Guo forcing
// scheme. Only body-force driving is permitted during time stepping;
// density-based driving is reserved for initialization, to preserve the
// equation of state.
package force

import (
	"github.com/latteine1217/pour-over-coffee-lbm/engine"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// Sink is the capability the LBM core and every force contributor depend
// on: "accumulates into a body-force field". *lattice.Grid implements it
// directly; this interface exists so contributors never need a
// dependency on the concrete Grid type, per the capability-record design
// note (no inheritance hierarchy, just a thin behavioral contract).
type Sink interface {
	AddForceAt(idx int, fx, fy, fz float64)
}

// Aggregator holds the constant contributors to the body force: gravity
// and an optional pressure-gradient drive vector. Both are configured
// once at Create time and applied identically every step; all other
// contributions (surface tension, porous resistance, particle reaction,
// buoyancy) are written directly into the Sink by their owning
// components.
type Aggregator struct {
	Gravity [3]float64
	Drive   [3]float64
	// DriveEnabled toggles the pressure-gradient driver; when false, only
	// gravity (and whatever other components write) contributes.
	DriveEnabled bool
}

// NewAggregator builds an Aggregator with the given gravity vector and no
// drive.
func NewAggregator(gravity [3]float64) *Aggregator {
	return &Aggregator{Gravity: gravity}
}

// Zero resets the aggregated body-force field to zero. This must be the
// first action of every step, before any contributor writes to it
// (ordering guarantee (a)).
func Zero(g *lattice.Grid) {
	g.ZeroForce()
}

// AccumulateConstant adds gravity (scaled by local density, as is
// standard for a body force per unit volume in LBM) and, if enabled, the
// constant drive vector, to every flowing cell.
func (a *Aggregator) AccumulateConstant(g *lattice.Grid) {
	n := g.N()
	engine.ParallelFor(0, n, func(idx int) {
		if !g.Tags[idx].IsFlowing() {
			return
		}
		rho := g.Rho[idx]
		fx := a.Gravity[0] * rho
		fy := a.Gravity[1] * rho
		fz := a.Gravity[2] * rho
		if a.DriveEnabled {
			fx += a.Drive[0]
			fy += a.Drive[1]
			fz += a.Drive[2]
		}
		g.AddForceAt(idx, fx, fy, fz)
	})
}
