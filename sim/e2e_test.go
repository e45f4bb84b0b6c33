// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"
	"testing"

	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
	"github.com/latteine1217/pour-over-coffee-lbm/porous"
	"github.com/latteine1217/pour-over-coffee-lbm/thermal"
)

// This file holds the end-to-end scenario tests E1-E6, run at reduced
// grid sizes and step counts suitable for fast CI execution rather than
// the full-size configurations a long-running validation suite would
// use. Tolerances are loose on purpose: a handful of lattice sites and a
// few hundred steps cannot reproduce continuum analytics to more than a
// coarse sanity check, but a gross regression (wrong sign, wrong order
// of magnitude, wrong trend) still trips these.

func uniformTags(nx, ny, nz int, tag lattice.Tag) []lattice.Tag {
	tags := make([]lattice.Tag, nx*ny*nz)
	for i := range tags {
		tags[i] = tag
	}
	return tags
}

// E1: pressure-driven (body-force-driven) flow between two solid plates
// relaxes to the parabolic Poiseuille profile u(y) = G/(2 nu) y (H-y).
func TestE1PoiseuilleChannelMatchesAnalyticalProfile(t *testing.T) {
	const nx, ny, nz = 4, 18, 4
	const tauMol = 0.8
	const drive = 2e-5
	nu := lattice.CsSqr * (tauMol - 0.5)

	cfg := Config{
		Nx: nx, Ny: ny, Nz: nz,
		PeriodicX: true, PeriodicZ: true,
		Dt: 1.0, TauMol: tauMol, RhoOut: 1.0,
		DriveEnabled: true, Drive: [3]float64{drive, 0, 0},
	}
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	tags := uniformTags(nx, ny, nz, lattice.Fluid)
	idx := func(x, y, z int) int { return (z*ny+y)*nx + x }
	for x := 0; x < nx; x++ {
		for z := 0; z < nz; z++ {
			tags[idx(x, 0, z)] = lattice.Solid
			tags[idx(x, ny-1, z)] = lattice.Solid
		}
	}
	if err := s.LoadGeometry(tags, nil); err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}
	for i := 0; i < 3000; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	mv := s.MacroView()
	H := float64(ny - 2) // fluid layers between the two bounce-back walls
	profile := func(y float64) float64 {
		yy := y - 1
		return drive / (2 * nu) * yy * (H - yy)
	}

	centerY := ny / 2
	uCenter := mv.Velocity(nx/2, centerY, nz/2)[0]
	wantCenter := profile(float64(centerY))
	if wantCenter <= 0 {
		t.Fatalf("analytical centerline velocity is non-positive: %v", wantCenter)
	}
	if relErr := math.Abs(uCenter-wantCenter) / wantCenter; relErr > 0.35 {
		t.Fatalf("centerline u = %v, want approx %v (rel err %v)", uCenter, wantCenter, relErr)
	}

	uNearWall := mv.Velocity(nx/2, 1, nz/2)[0]
	if uNearWall >= uCenter {
		t.Fatalf("near-wall u (%v) should be well below centerline u (%v)", uNearWall, uCenter)
	}

	uLo := mv.Velocity(nx/2, 2, nz/2)[0]
	uHi := mv.Velocity(nx/2, ny-3, nz/2)[0]
	if uLo <= 0 || uHi <= 0 {
		t.Fatalf("symmetric offsets from the walls should both carry positive flow: %v, %v", uLo, uHi)
	}
	if relErr := math.Abs(uLo-uHi) / uLo; relErr > 0.35 {
		t.Fatalf("profile not symmetric about centerline: u(2)=%v u(ny-3)=%v (rel err %v)", uLo, uHi, relErr)
	}
}

// E2: a Taylor-Green vortex decays exponentially, with kinetic energy
// falling off as exp(-4 nu k^2 t).
func TestE2TaylorGreenVortexKineticEnergyDecay(t *testing.T) {
	const n = 16
	const tauMol = 0.55
	const u0 = 0.02
	nu := lattice.CsSqr * (tauMol - 0.5)
	k := 2 * math.Pi / float64(n)

	cfg := Config{
		Nx: n, Ny: n, Nz: n,
		PeriodicX: true, PeriodicY: true, PeriodicZ: true,
		Dt: 1.0, TauMol: tauMol, RhoOut: 1.0,
	}
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.LoadGeometry(uniformTags(n, n, n, lattice.Fluid), nil); err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}

	g := s.grid
	for idx := 0; idx < g.N(); idx++ {
		x, y, _ := g.Coords(idx)
		u := [3]float64{
			u0 * math.Cos(k*float64(x)) * math.Sin(k*float64(y)),
			-u0 * math.Sin(k*float64(x)) * math.Cos(k*float64(y)),
			0,
		}
		lattice.EquilibriumAll((*[lattice.Q]float64)(g.F[idx*lattice.Q:idx*lattice.Q+lattice.Q]), cfg.RhoOut, u)
	}

	ke0 := g.KineticEnergy()
	if ke0 <= 0 {
		t.Fatalf("initial kinetic energy is non-positive: %v", ke0)
	}

	const steps = 200
	for i := 0; i < steps; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	keN := s.Diagnostics().KineticEnergy
	wantRatio := math.Exp(-4 * nu * k * k * float64(steps))
	gotRatio := keN / ke0
	if gotRatio <= 0 {
		t.Fatalf("kinetic energy ratio is non-positive: %v", gotRatio)
	}
	if gotRatio >= 1 {
		t.Fatalf("kinetic energy did not decay: ke0=%v keN=%v", ke0, keN)
	}
	if gotRatio < wantRatio/3 || gotRatio > wantRatio*3 {
		t.Fatalf("decay ratio %v not within factor 3 of analytical %v", gotRatio, wantRatio)
	}
}

// E3: a single settling particle in quiescent fluid approaches the
// Stokes terminal velocity v_t = (2/9)(rho_p-rho_f) r^2 g / mu.
func TestE3StokesSettlingApproachesTerminalVelocity(t *testing.T) {
	const nx, ny, nz = 8, 8, 48
	const muF = 0.5
	const radius = 1.0
	const rhoF = 1.0
	const rhoP = 22.5
	const gMag = 0.001

	cfg := Config{
		Nx: nx, Ny: ny, Nz: nz,
		PeriodicX: true, PeriodicY: true,
		Dt: 1.0, TauMol: 0.8, RhoOut: rhoF,
		MuFluid: muF, RhoRef: rhoF,
		Gravity:          [3]float64{0, 0, -gMag},
		ParticlesEnabled: true,
		PMax:             1,
		ParticleAlpha:    1.0,
	}
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// A solid floor and ceiling contain the fluid column so gravity drives
	// it toward hydrostatic equilibrium (near-zero bulk velocity) instead
	// of uniform free-fall, which a gravity-loaded fully periodic domain
	// would otherwise undergo with nothing to balance the net body force.
	tags := uniformTags(nx, ny, nz, lattice.Fluid)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			tags[(0*ny+y)*nx+x] = lattice.Solid
			tags[((nz-1)*ny+y)*nx+x] = lattice.Solid
		}
	}
	if err := s.LoadGeometry(tags, nil); err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}
	if _, ok := s.pool.Add(float64(nx)/2, float64(ny)/2, float64(nz)/2, radius, rhoP); !ok {
		t.Fatalf("pool.Add failed")
	}

	const steps = 400
	for i := 0; i < steps; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	pv, ok := s.ParticleView()
	if !ok {
		t.Fatalf("ParticleView reported disabled")
	}
	_, _, vz := pv.Velocity(0)

	vt := (2.0 / 9.0) * (rhoP - rhoF) * radius * radius * gMag / muF
	gotSpeed := -vz // settling is in -z
	if gotSpeed <= 0 {
		t.Fatalf("particle did not settle downward: vz=%v", vz)
	}
	if relErr := math.Abs(gotSpeed-vt) / vt; relErr > 0.4 {
		t.Fatalf("settling speed = %v, want approx Stokes vt = %v (rel err %v)", gotSpeed, vt, relErr)
	}
}

// E4: a static spherical water droplet in air relaxes to a Young-Laplace
// pressure jump Delta p = 2 sigma / R, higher pressure on the inside.
func TestE4LaplaceDropletPressureJump(t *testing.T) {
	const n = 20
	const radius = 5.0
	const sigma = 1e-4
	const xi = 0.7
	const mobility = 0.02

	cfg := Config{
		Nx: n, Ny: n, Nz: n,
		PeriodicX: true, PeriodicY: true, PeriodicZ: true,
		Dt: 1.0, TauMol: 0.8, RhoOut: 1.0,
		PhaseEnabled: true,
		Mobility:     mobility,
		Xi:           xi,
		Sigma:        sigma,
		RhoWater:     1.0,
		RhoAir:       1.0,
		MuWater:      1.0,
		MuAir:        1.0,
	}
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.LoadGeometry(uniformTags(n, n, n, lattice.Fluid), nil); err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}

	g := s.grid
	center := float64(n) / 2
	for idx := 0; idx < g.N(); idx++ {
		x, y, z := g.Coords(idx)
		dx, dy, dz := float64(x)-center, float64(y)-center, float64(z)-center
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		g.Phi[idx] = math.Tanh((radius - dist) / (math.Sqrt2 * xi))
	}

	const steps = 1500
	for i := 0; i < steps; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	mv := s.MacroView()
	cI := int(center)
	pIn := mv.Pressure(cI, cI, cI)
	pOut := mv.Pressure(0, 0, 0)
	deltaP := pIn - pOut
	if deltaP <= 0 {
		t.Fatalf("expected higher pressure inside the droplet, got pIn=%v pOut=%v", pIn, pOut)
	}

	want := 2 * sigma / radius
	if deltaP < want*0.2 || deltaP > want*5 {
		t.Fatalf("pressure jump %v not within a loose band of Young-Laplace prediction %v", deltaP, want)
	}
}

// E5: a uniformly porous column driven by a constant body force relaxes
// to the Darcy-Forchheimer (Ergun) steady-state velocity.
func TestE5PorousColumnMatchesDarcyForchheimerVelocity(t *testing.T) {
	const nx, ny, nz = 6, 6, 6
	const muF = 0.05
	const eps = 0.4
	const grainDiam = 0.6
	const drive = 1e-5

	cfg := Config{
		Nx: nx, Ny: ny, Nz: nz,
		PeriodicX: true, PeriodicY: true, PeriodicZ: true,
		Dt: 1.0, TauMol: 0.8, RhoOut: 1.0,
		MuFluid:      muF,
		GrainDiam:    grainDiam,
		DriveEnabled: true, Drive: [3]float64{drive, 0, 0},
	}
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	porosity := make([]float64, nx*ny*nz)
	for i := range porosity {
		porosity[i] = eps
	}
	if err := s.LoadGeometry(uniformTags(nx, ny, nz, lattice.Porous), porosity); err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}

	const steps = 2000
	for i := 0; i < steps; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	mv := s.MacroView()
	uMeasured := mv.Velocity(nx/2, ny/2, nz/2)[0]

	K := porous.Permeability(eps, grainDiam)
	beta := porous.ErgunBeta(eps)
	// Solve drive = (mu/K) u + rho*beta/sqrt(K) u^2 for u >= 0.
	a := cfg.RhoOut * beta / math.Sqrt(K)
	b := muF / K
	uWant := (-b + math.Sqrt(b*b+4*a*drive)) / (2 * a)

	if uMeasured <= 0 {
		t.Fatalf("porous flow did not develop in the drive direction: %v", uMeasured)
	}
	if relErr := math.Abs(uMeasured-uWant) / uWant; relErr > 0.35 {
		t.Fatalf("steady Darcy-Forchheimer velocity = %v, want approx %v (rel err %v)", uMeasured, uWant, relErr)
	}
}

// E6: a thermal step profile in a quiescent fluid diffuses following the
// 1D error-function solution T(x,t) = Tmean - dT/2 erf((x-x0)/(2 sqrt(alpha t))).
func TestE6ThermalAdvectionDiffusionMatchesErfFront(t *testing.T) {
	const nx, ny, nz = 40, 4, 4
	const tHot, tCold = 1.0, 0.0
	const tauT = 0.8

	cfg := Config{
		Nx: nx, Ny: ny, Nz: nz,
		PeriodicX: true, PeriodicY: true, PeriodicZ: true,
		Dt: 1.0, TauMol: 0.8, RhoOut: 1.0,
		ThermalMode: int(thermal.Weak),
		TauT:        tauT,
		VogelTRef0:  tHot,
		VogelMu0:    1.0,
	}
	s, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.LoadGeometry(uniformTags(nx, ny, nz, lattice.Fluid), nil); err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}

	g := s.grid
	x0 := nx / 2
	for idx := 0; idx < g.N(); idx++ {
		x, _, _ := g.Coords(idx)
		T := tCold
		if x < x0 {
			T = tHot
		}
		g.T[idx] = T
		for j := 0; j < lattice.D7; j++ {
			g.G[idx*lattice.D7+j] = lattice.EquilibriumT(j, T, [3]float64{})
		}
	}
	sumBefore := 0.0
	for _, T := range g.T {
		sumBefore += T
	}

	const steps = 300
	for i := 0; i < steps; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	sumAfter := 0.0
	for _, T := range g.T {
		sumAfter += T
	}
	if relErr := math.Abs(sumAfter-sumBefore) / sumBefore; relErr > 0.05 {
		t.Fatalf("total thermal energy not conserved by pure diffusion: before=%v after=%v (rel err %v)", sumBefore, sumAfter, relErr)
	}

	alpha := s.thermal.Alpha()
	erfArg := func(dist float64) float64 {
		return math.Erf(dist / (2 * math.Sqrt(alpha*float64(steps))))
	}
	mean := (tHot + tCold) / 2
	half := (tHot - tCold) / 2
	checkAt := func(x int) {
		dist := float64(x - x0)
		want := mean - half*erfArg(dist)
		got := g.T[g.Idx(x, 0, 0)]
		if math.Abs(got-want) > 0.2*(tHot-tCold) {
			t.Fatalf("T(x=%d) = %v, want approx erf prediction %v", x, got, want)
		}
	}
	checkAt(x0)
	checkAt(x0 - 3)
	checkAt(x0 + 3)
}
