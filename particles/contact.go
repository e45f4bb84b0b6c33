// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// ContactParams holds the soft-sphere normal-spring constants and wall
// restitution coefficient.
type ContactParams struct {
	Kn          float64 // normal spring stiffness
	GammaN      float64 // normal damping
	Restitution float64 // wall-impact restitution, in [0,1]
}

// pairForce evaluates the soft-sphere normal-spring contact force that
// particle a exerts on particle b when the spheres overlap by delta>0:
// F = (kn*delta - gammaN*(vrel.n)) n, with n the unit vector from a to b
// and vrel = v_b - v_a, so the spring pushes b away from a and the
// damping opposes the normal relative velocity. Tangential friction is
// not modeled, per spec §4.5.
func pairForce(p *Pool, a, b int, params ContactParams) (fx, fy, fz float64) {
	dx := p.X[b] - p.X[a]
	dy := p.Y[b] - p.Y[a]
	dz := p.Z[b] - p.Z[a]
	dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if dist == 0 {
		return 0, 0, 0
	}
	overlap := (p.Radius[a] + p.Radius[b]) - dist
	if overlap <= 0 {
		return 0, 0, 0
	}
	n := []float64{dx / dist, dy / dist, dz / dist}
	vrel := []float64{p.VX[b] - p.VX[a], p.VY[b] - p.VY[a], p.VZ[b] - p.VZ[a]}
	vrelDotN := utl.Dot3d(vrel, n)
	mag := params.Kn*overlap - params.GammaN*vrelDotN
	nx, ny, nz := n[0], n[1], n[2]
	// Force on b, directed along n (away from a); equal and opposite is
	// applied to a by the caller.
	return mag * nx, mag * ny, mag * nz
}

// cellBucket groups active-particle indices by their cached lattice cell
// index, giving an O(1)-amortized neighbor search without depending on an
// external spatial-bin type for the per-step hot path (gosl/gm.Bins is
// used instead for the one-time seeding placement check, see seed.go).
func cellBucket(p *Pool) map[int][]int {
	buckets := make(map[int][]int, p.Count)
	for i := 0; i < p.Count; i++ {
		if !p.Active[i] {
			continue
		}
		buckets[p.CellIdx[i]] = append(buckets[p.CellIdx[i]], i)
	}
	return buckets
}

// ResolveContacts accumulates soft-sphere contact forces for every active
// particle pair whose cached cell indices are equal (a conservative
// same-cell neighbor test; grind particles are small relative to a
// lattice cell so cross-cell overlap is rare and handled by the next
// step's updated binning). contactForce must be pre-sized to p.Count*3
// and is zeroed by the caller before accumulation.
func ResolveContacts(p *Pool, params ContactParams, contactForce []float64) {
	buckets := cellBucket(p)
	for _, members := range buckets {
		for i := 0; i < len(members); i++ {
			a := members[i]
			for j := i + 1; j < len(members); j++ {
				b := members[j]
				fx, fy, fz := pairForce(p, a, b, params)
				contactForce[b*3] += fx
				contactForce[b*3+1] += fy
				contactForce[b*3+2] += fz
				contactForce[a*3] -= fx
				contactForce[a*3+1] -= fy
				contactForce[a*3+2] -= fz
			}
		}
	}
}

// ReflectWalls clamps a particle's position into [lo,hi]^3 and reflects
// its velocity elastically (scaled by restitution) on any axis where it
// would otherwise have left the bounding box.
func ReflectWalls(p *Pool, i int, lo, hi [3]float64, restitution float64) {
	pos := [3]*float64{&p.X[i], &p.Y[i], &p.Z[i]}
	vel := [3]*float64{&p.VX[i], &p.VY[i], &p.VZ[i]}
	for a := 0; a < 3; a++ {
		if *pos[a] < lo[a] {
			*pos[a] = lo[a] + (lo[a] - *pos[a])
			*vel[a] = -restitution * *vel[a]
		} else if *pos[a] > hi[a] {
			*pos[a] = hi[a] - (*pos[a] - hi[a])
			*vel[a] = -restitution * *vel[a]
		}
	}
}
