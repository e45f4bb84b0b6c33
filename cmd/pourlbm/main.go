// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pourlbm is a thin example driver around the sim package: it
// builds a small rectangular V60-like geometry, pours at a constant
// rate for a fixed number of steps, and prints a one-line diagnostics
// summary every 20 steps. It is a demonstration harness, not the engine; the
// core lives entirely in sim and its collaborator packages.
package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
	"github.com/latteine1217/pour-over-coffee-lbm/sim"
)

func main() {
	nx := flag.Int("nx", 24, "grid extent in x")
	ny := flag.Int("ny", 24, "grid extent in y")
	nz := flag.Int("nz", 48, "grid extent in z, pour axis")
	steps := flag.Int("steps", 200, "number of steps to run")
	tau := flag.Float64("tau", 0.8, "base molecular relaxation time")
	uin := flag.Float64("uin", 0.02, "inlet velocity, lattice units")
	flag.Parse()

	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.Pfred("pourlbm: fatal: %v\n", err)
		}
	}()

	cfg := sim.Config{
		Nx: *nx, Ny: *ny, Nz: *nz,
		Dt:      1.0,
		TauMol:  *tau,
		MuFluid: 1.0e-3,
		RhoRef:  1.0,
		Gravity: [3]float64{0, 0, -1e-5},
		RhoOut:  1.0,
	}
	s, err := sim.Create(cfg)
	if err != nil {
		io.Pfred("pourlbm: create: %v\n", err)
		return
	}

	tags := buildV60Mask(*nx, *ny, *nz)
	if err := s.LoadGeometry(tags, nil); err != nil {
		io.Pfred("pourlbm: load geometry: %v\n", err)
		return
	}

	inletX, inletY := *nx/2, *ny/2
	for step := 0; step < *steps; step++ {
		if err := s.SetInletVelocity(inletX, inletY, *nz-1, 0, 0, -*uin); err != nil {
			io.Pfred("pourlbm: set inlet: %v\n", err)
			return
		}
		if err := s.Step(); err != nil {
			io.Pfred("pourlbm: step %d failed: %v\n", step, err)
			return
		}
		if step%20 == 0 {
			d := s.Diagnostics()
			io.Pf("step=%d mach=%.4f mass=%.3f\n", d.Step, d.MaxMach, d.TotalMass)
		}
	}
	io.Pfgreen("pourlbm: completed %d steps\n", *steps)
}

// buildV60Mask tags a rectangular box's boundary as Solid, carves a
// single inlet cell at the center of the top face, and a single outlet
// cell at the center of the bottom face, with the interior left Fluid.
// This is a placeholder geometry for the demonstration driver; a real
// V60 cone/filter mask is out of scope for this example.
func buildV60Mask(nx, ny, nz int) []lattice.Tag {
	n := nx * ny * nz
	tags := make([]lattice.Tag, n)
	idx := func(x, y, z int) int { return (z*ny+y)*nx + x }
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				onWall := x == 0 || x == nx-1 || y == 0 || y == ny-1 || z == 0 || z == nz-1
				tags[idx(x, y, z)] = lattice.Fluid
				if onWall {
					tags[idx(x, y, z)] = lattice.Solid
				}
			}
		}
	}
	tags[idx(nx/2, ny/2, nz-1)] = lattice.Inlet
	tags[idx(nx/2, ny/2, 0)] = lattice.Outlet
	return tags
}
