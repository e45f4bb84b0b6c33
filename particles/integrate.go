// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"math"

	"github.com/latteine1217/pour-over-coffee-lbm/engine"
	"github.com/latteine1217/pour-over-coffee-lbm/force"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// IntegrateParams holds the per-step constants for particle integration.
type IntegrateParams struct {
	Dt       float64
	Gravity  [3]float64
	MuF      float64 // fluid dynamic viscosity, used for Re
	Alpha    float64 // drag under-relaxation factor, [0.5,0.8]
	MaxDv    float64 // adaptive sub-step bound on |delta v|, spec: 0.1*cs
	Contact  ContactParams
	DomainLo [3]float64
	DomainHi [3]float64
}

// Integrate advances every active particle by one explicit-Euler step:
// interpolate the local fluid velocity, compute Schiller-Naumann drag,
// add gravity and Archimedes buoyancy and the precomputed contact force,
// under-relax the drag-induced velocity change, clamp it to the adaptive
// sub-step bound, update velocity and position, reflect off the domain
// walls, and scatter the reaction force back onto the lattice at the
// reflected position.
func Integrate(p *Pool, g *lattice.Grid, rhoF float64, params IntegrateParams, sink force.Sink) {
	contactForce := make([]float64, p.Count*3)
	ResolveContacts(p, params.Contact, contactForce)

	engine.ParallelFor(0, p.Count, func(i int) {
		if !p.Active[i] {
			return
		}
		uf, ok := InterpolateVelocity(g, p.X[i], p.Y[i], p.Z[i])
		if !ok {
			return
		}
		localRho, okRho := InterpolateDensity(g, p.X[i], p.Y[i], p.Z[i])
		if !okRho || localRho <= 0 {
			localRho = rhoF
		}
		vp := [3]float64{p.VX[i], p.VY[i], p.VZ[i]}
		fDrag := DragForce(localRho, params.MuF, p.Radius[i], uf, vp)

		m := p.Mass[i]
		volume := (4.0 / 3.0) * math.Pi * p.Radius[i] * p.Radius[i] * p.Radius[i]
		fGrav := [3]float64{m * params.Gravity[0], m * params.Gravity[1], m * params.Gravity[2]}
		fBuoy := [3]float64{
			-localRho * volume * params.Gravity[0],
			-localRho * volume * params.Gravity[1],
			-localRho * volume * params.Gravity[2],
		}
		fContact := [3]float64{contactForce[i*3], contactForce[i*3+1], contactForce[i*3+2]}

		dvDrag := [3]float64{
			params.Alpha * fDrag[0] / m * params.Dt,
			params.Alpha * fDrag[1] / m * params.Dt,
			params.Alpha * fDrag[2] / m * params.Dt,
		}
		dvOther := [3]float64{
			(fGrav[0] + fBuoy[0] + fContact[0]) / m * params.Dt,
			(fGrav[1] + fBuoy[1] + fContact[1]) / m * params.Dt,
			(fGrav[2] + fBuoy[2] + fContact[2]) / m * params.Dt,
		}
		dv := [3]float64{dvDrag[0] + dvOther[0], dvDrag[1] + dvOther[1], dvDrag[2] + dvOther[2]}
		dvMag := math.Sqrt(dv[0]*dv[0] + dv[1]*dv[1] + dv[2]*dv[2])
		if params.MaxDv > 0 && dvMag > params.MaxDv {
			scale := params.MaxDv / dvMag
			dv[0] *= scale
			dv[1] *= scale
			dv[2] *= scale
		}

		p.VX[i] += dv[0]
		p.VY[i] += dv[1]
		p.VZ[i] += dv[2]
		p.X[i] += p.VX[i] * params.Dt
		p.Y[i] += p.VY[i] * params.Dt
		p.Z[i] += p.VZ[i] * params.Dt

		ReflectWalls(p, i, params.DomainLo, params.DomainHi, params.Contact.Restitution)

		reaction := [3]float64{-fDrag[0], -fDrag[1], -fDrag[2]}
		ScatterReaction(g, p.X[i], p.Y[i], p.Z[i], reaction, sink)

		if idx, ok := cellOf(g, p.X[i], p.Y[i], p.Z[i]); ok {
			p.CellIdx[i] = idx
		}
	})
}

func cellOf(g *lattice.Grid, x, y, z float64) (int, bool) {
	xi, yi, zi := int(x), int(y), int(z)
	if xi < 0 || yi < 0 || zi < 0 || xi >= g.Nx || yi >= g.Ny || zi >= g.Nz {
		return 0, false
	}
	return g.Idx(xi, yi, zi), true
}
