// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim implements the step orchestrator: it owns the lattice
// grid and every physics collaborator (LES closure, phase field, porous
// resistance, thermal solver, particle pool), wires them together in
// the fixed per-step order the data-dependency graph requires, and
// exposes the read-only views, diagnostics and persistence helpers
// external callers use instead of touching the grid directly.
package sim

import "github.com/latteine1217/pour-over-coffee-lbm/particles"

// Config collects every parameter needed to create a Simulation. LES,
// phase field and particles are switched on by their *Enabled flags,
// the thermal solver by a non-zero ThermalMode, and the porous model by
// GrainDiam > 0.
type Config struct {
	Nx, Ny, Nz          int
	PeriodicX, PeriodicY, PeriodicZ bool

	Dt      float64 // physical time step, lattice units (1.0 is standard)
	TauMol  float64 // base molecular BGK relaxation time, must be > 0.5
	MuFluid float64 // fluid dynamic viscosity, used by porous resistance and particle drag
	RhoRef  float64 // reference fluid density fed to particle drag when local interpolation fails

	Gravity      [3]float64
	DriveEnabled bool
	Drive        [3]float64

	RhoOut float64 // outlet target density; p_out = RhoOut * cs^2

	LESEnabled bool
	LESDelta   float64 // filter width, 1.0 for a uniform Dx=1 grid

	PhaseEnabled bool
	Mobility     float64
	Xi           float64
	Sigma        float64
	RhoWater     float64
	RhoAir       float64
	MuWater      float64 // used only to derive the phase-blended tau_mol
	MuAir        float64

	ThermalMode   int // thermal.Off / thermal.Weak / thermal.Strong
	TauT          float64
	VogelMu0      float64
	VogelEa       float64
	VogelRgas     float64
	VogelTRef0    float64
	BoussinesqRho0  float64
	BoussinesqBetaT float64
	BoussinesqTRef  float64

	// ThermalDeltaT is the characteristic temperature difference (e.g.
	// inlet pour temperature minus BoussinesqTRef) used only to validate
	// the Rayleigh number against spec §4.6's Strong-mode bound Ra<=1e6
	// at Create time; it plays no role in the per-step solve itself.
	ThermalDeltaT float64

	ParticlesEnabled bool
	PMax             int
	GrainDiam        float64 // porous model grain diameter, Ergun law

	ParticleAlpha float64 // drag under-relaxation, [0.5,0.8]
	ParticleMaxDv float64 // adaptive sub-step velocity bound
	Contact       particles.ContactParams
}
