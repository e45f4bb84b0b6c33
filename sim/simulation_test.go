// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
	"github.com/latteine1217/pour-over-coffee-lbm/particles"
	"github.com/latteine1217/pour-over-coffee-lbm/thermal"
)

func baseConfig() Config {
	return Config{
		Nx: 6, Ny: 6, Nz: 6,
		Dt:     1.0,
		TauMol: 0.8,
		RhoOut: 1.0,
	}
}

func TestCreateRejectsNonPositiveExtents(t *testing.T) {
	cfg := baseConfig()
	cfg.Nx = 0
	if _, err := Create(cfg); err == nil {
		t.Fatalf("expected Create to reject a zero grid extent")
	}
}

func TestCreateRejectsTauMolAtOrBelowHalf(t *testing.T) {
	cfg := baseConfig()
	cfg.TauMol = 0.5
	if _, err := Create(cfg); err == nil {
		t.Fatalf("expected Create to reject TauMol = 0.5")
	}
}

func TestCreateRejectsExcessiveRayleighInStrongThermalMode(t *testing.T) {
	cfg := baseConfig()
	cfg.Nx, cfg.Ny, cfg.Nz = 224, 224, 224
	cfg.ThermalMode = int(thermal.Strong)
	cfg.TauT = 0.8
	cfg.MuFluid = 1e-6
	cfg.RhoWater = 1.0
	cfg.BoussinesqBetaT = 2e-4
	cfg.ThermalDeltaT = 70.0
	cfg.Gravity = [3]float64{0, 0, -1e-5}
	if _, err := Create(cfg); err == nil {
		t.Fatalf("expected Create to reject a configuration with Ra far above 1e6")
	}
}

func TestCreateAcceptsModestRayleighInStrongThermalMode(t *testing.T) {
	cfg := baseConfig()
	cfg.ThermalMode = int(thermal.Strong)
	cfg.TauT = 0.8
	cfg.MuFluid = 1.0
	cfg.RhoWater = 1.0
	cfg.BoussinesqBetaT = 1e-6
	cfg.ThermalDeltaT = 1.0
	cfg.Gravity = [3]float64{0, 0, -1e-5}
	if _, err := Create(cfg); err != nil {
		t.Fatalf("Create rejected a modest-Ra strong thermal config: %v", err)
	}
}

func TestCreateDefaultsRhoOutWhenUnset(t *testing.T) {
	cfg := baseConfig()
	cfg.RhoOut = 0
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.cfg.RhoOut != 1.0 {
		t.Fatalf("RhoOut defaulted to %v, want 1.0", s.cfg.RhoOut)
	}
}

func boxWithInletOutlet(nx, ny, nz int) []lattice.Tag {
	tags := make([]lattice.Tag, nx*ny*nz)
	idx := func(x, y, z int) int { return (z*ny+y)*nx + x }
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				onWall := x == 0 || x == nx-1 || y == 0 || y == ny-1 || z == 0 || z == nz-1
				if onWall {
					tags[idx(x, y, z)] = lattice.Solid
				} else {
					tags[idx(x, y, z)] = lattice.Fluid
				}
			}
		}
	}
	tags[idx(nx/2, ny/2, nz-1)] = lattice.Inlet
	tags[idx(nx/2, ny/2, 0)] = lattice.Outlet
	return tags
}

func TestStepAdvancesStepCountOnSuccess(t *testing.T) {
	cfg := baseConfig()
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.LoadGeometry(boxWithInletOutlet(cfg.Nx, cfg.Ny, cfg.Nz), nil); err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if s.StepCount() != 1 {
		t.Fatalf("StepCount = %d, want 1", s.StepCount())
	}
}

func TestSetInletVelocityRejectsNonInletCell(t *testing.T) {
	cfg := baseConfig()
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.LoadGeometry(boxWithInletOutlet(cfg.Nx, cfg.Ny, cfg.Nz), nil); err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}
	if err := s.SetInletVelocity(1, 1, 1, 0, 0, -0.01); err == nil {
		t.Fatalf("expected SetInletVelocity to reject a non-Inlet cell")
	}
}

func TestSeedParticlesFailsWhenNotEnabled(t *testing.T) {
	cfg := baseConfig()
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	dist := particles.GrindDistribution{MeanRadius: 0.3, StdDevRadius: 0.05, MinRadius: 0.1, MaxRadius: 0.6}
	if _, err := s.SeedParticles(1, dist, 1000, 1); err == nil {
		t.Fatalf("expected SeedParticles to fail when particles are not enabled")
	}
}

func TestStepRefusesToRunAfterFailureUntilReset(t *testing.T) {
	cfg := baseConfig()
	cfg.TauMol = 0.51
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.LoadGeometry(boxWithInletOutlet(cfg.Nx, cfg.Ny, cfg.Nz), nil); err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}
	// force an immediate instability: absurd density at a fluid cell.
	g := s.grid
	idx := g.Idx(cfg.Nx/2, cfg.Ny/2, cfg.Nz/2)
	g.Rho[idx] = -5
	if err := s.Step(); err == nil {
		t.Fatalf("expected Step to fail on a non-positive density")
	}
	if err := s.Step(); err == nil {
		t.Fatalf("expected Step to refuse to run again before Reset")
	}
	s.Reset()
	g.Rho[idx] = 1.0
	for i := 0; i < lattice.Q; i++ {
		g.F[idx*lattice.Q+i] = lattice.W[i] * 1.0
	}
	if err := s.Step(); err != nil {
		t.Fatalf("Step after Reset: %v", err)
	}
}

func TestMacroViewReflectsGridDimensions(t *testing.T) {
	cfg := baseConfig()
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	mv := s.MacroView()
	nx, ny, nz := mv.Dims()
	if nx != cfg.Nx || ny != cfg.Ny || nz != cfg.Nz {
		t.Fatalf("MacroView.Dims() = (%d,%d,%d), want (%d,%d,%d)", nx, ny, nz, cfg.Nx, cfg.Ny, cfg.Nz)
	}
}

func TestParticleViewReportsDisabledWhenNotConfigured(t *testing.T) {
	cfg := baseConfig()
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := s.ParticleView(); ok {
		t.Fatalf("ParticleView reported ok=true without ParticlesEnabled")
	}
}
