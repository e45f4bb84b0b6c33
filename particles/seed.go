// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"math"

	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/rnd"

	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// GrindDistribution names the radius-sampling law used at seeding,
// mirroring the style of inp/sim.go's rnd.GetDistribution-driven
// AdjRandom parameters: a named distribution plus its moments.
type GrindDistribution struct {
	MeanRadius   float64
	StdDevRadius float64
	MinRadius    float64
	MaxRadius    float64
}

// sampleLogNormal draws one sample from a log-normal distribution with
// the given mean and standard deviation of the underlying normal,
// transforming two gosl/rnd uniform draws through the Box-Muller scheme
// (gosl/rnd exposes seeded uniform sampling via rnd.Init/rnd.Float64;
// the log-normal density itself is assembled here since the grind-size
// law is domain-specific, not a named distribution gosl ships).
func sampleLogNormal(mu, sigma float64) float64 {
	u1 := rnd.Float64(1e-12, 1.0)
	u2 := rnd.Float64(0.0, 1.0)
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return math.Exp(mu + sigma*z)
}

// SeedParticles draws count particle radii from the configured grind-size
// distribution, places them at uniformly drawn positions whose cell is
// not Solid (Porous and other non-solid cells are accepted), and adds
// them to pool. Candidate positions are not tested against already-placed
// particles, so seeded particles may overlap; a gm.Bins spatial index
// records each placed center (mirroring the teacher's out/out.go
// NodBins.Init/Append usage pattern) but is not queried during placement.
func SeedParticles(pool *Pool, g *lattice.Grid, count int, dist GrindDistribution, density float64, seed int) (placed int, err error) {
	rnd.Init(seed)

	xi := []float64{0, 0, 0}
	xf := []float64{float64(g.Nx), float64(g.Ny), float64(g.Nz)}
	var bins gm.Bins
	if e := bins.Init(xi, xf, 20); e != nil {
		return 0, e
	}

	mu := math.Log(dist.MeanRadius*dist.MeanRadius / math.Sqrt(dist.StdDevRadius*dist.StdDevRadius+dist.MeanRadius*dist.MeanRadius))
	sigma := math.Sqrt(math.Log(1 + (dist.StdDevRadius*dist.StdDevRadius)/(dist.MeanRadius*dist.MeanRadius)))

	const maxAttemptsPerParticle = 64
	for placed < count && pool.Count < pool.PMax {
		radius := sampleLogNormal(mu, sigma)
		if radius < dist.MinRadius {
			radius = dist.MinRadius
		}
		if radius > dist.MaxRadius {
			radius = dist.MaxRadius
		}

		ok := false
		var x, y, z float64
		for attempt := 0; attempt < maxAttemptsPerParticle; attempt++ {
			x = rnd.Float64(radius, float64(g.Nx)-radius)
			y = rnd.Float64(radius, float64(g.Ny)-radius)
			z = rnd.Float64(radius, float64(g.Nz)-radius)
			xi, yi, zi := int(x), int(y), int(z)
			if xi < 0 || yi < 0 || zi < 0 || xi >= g.Nx || yi >= g.Ny || zi >= g.Nz {
				continue
			}
			if g.Tags[g.Idx(xi, yi, zi)] == lattice.Solid {
				continue
			}
			ok = true
			break
		}
		if !ok {
			continue
		}

		idx, added := pool.Add(x, y, z, radius, density)
		if !added {
			break
		}
		if e := bins.Append([]float64{x, y, z}, idx); e != nil {
			return placed, e
		}
		placed++
	}
	return placed, nil
}
