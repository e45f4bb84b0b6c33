// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/latteine1217/pour-over-coffee-lbm/particles"

// ParticleView is the thin, read-only accessor over the particle pool,
// valid only until the next Step call (mirroring lattice.MacroView).
type ParticleView struct {
	p *particles.Pool
}

// Count returns the number of populated pool slots (active or not).
func (v ParticleView) Count() int { return v.p.Count }

// Active reports whether slot i currently holds a live particle.
func (v ParticleView) Active(i int) bool { return v.p.Active[i] }

// Position returns particle i's center.
func (v ParticleView) Position(i int) (x, y, z float64) {
	return v.p.X[i], v.p.Y[i], v.p.Z[i]
}

// Velocity returns particle i's velocity.
func (v ParticleView) Velocity(i int) (vx, vy, vz float64) {
	return v.p.VX[i], v.p.VY[i], v.p.VZ[i]
}

// Radius returns particle i's radius.
func (v ParticleView) Radius(i int) float64 { return v.p.Radius[i] }

// ActiveCount returns the number of currently active particles.
func (v ParticleView) ActiveCount() int { return v.p.ActiveCount() }
