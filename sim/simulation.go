// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"

	"github.com/cpmech/gosl/fun/dbf"

	"github.com/latteine1217/pour-over-coffee-lbm/boundary"
	"github.com/latteine1217/pour-over-coffee-lbm/engine"
	"github.com/latteine1217/pour-over-coffee-lbm/force"
	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
	"github.com/latteine1217/pour-over-coffee-lbm/lbm"
	"github.com/latteine1217/pour-over-coffee-lbm/les"
	"github.com/latteine1217/pour-over-coffee-lbm/particles"
	"github.com/latteine1217/pour-over-coffee-lbm/phase"
	"github.com/latteine1217/pour-over-coffee-lbm/porous"
	"github.com/latteine1217/pour-over-coffee-lbm/simerr"
	"github.com/latteine1217/pour-over-coffee-lbm/thermal"
)

// SnapshotFunc is invoked at the end of every successful Step, before
// the next one begins, so a caller can record trajectories without
// polling after each call.
type SnapshotFunc func(step uint64, diag Diagnostics)

// Simulation orchestrates one D3Q19 (+ optional D3Q7 thermal) lattice
// over its full per-step pipeline. It is not safe for concurrent use by
// multiple goroutines; internal kernels parallelize across cells
// through engine.ParallelFor instead.
type Simulation struct {
	cfg Config
	grid *lattice.Grid

	les     *les.Closure
	phase   *phase.Model
	porous  *porous.Model
	thermal *thermal.Model
	forceAgg *force.Aggregator
	pool    *particles.Pool

	tauEff []float64 // scratch, length N, refreshed every step before Collide

	step     uint64
	failed   bool
	lastErr  error
	lastDiag Diagnostics
	snapshot SnapshotFunc
}

// Create validates cfg and allocates a Simulation with every cell
// initialized to Fluid, default tau_mol, and zero velocity/force. Call
// LoadGeometry next to place solid, porous, inlet and outlet cells.
func Create(cfg Config) (*Simulation, error) {
	if cfg.Nx <= 0 || cfg.Ny <= 0 || cfg.Nz <= 0 {
		return nil, simerr.NewConfigurationError("grid extents must be positive, got (%d,%d,%d)", cfg.Nx, cfg.Ny, cfg.Nz)
	}
	if cfg.TauMol <= 0.5 {
		return nil, simerr.NewConfigurationError("tau_mol must be > 0.5, got %f", cfg.TauMol)
	}
	if cfg.Dt <= 0 {
		cfg.Dt = 1.0
	}
	if cfg.RhoOut == 0 {
		cfg.RhoOut = 1.0
	}

	thermalOn := cfg.ThermalMode != int(thermal.Off)
	if thermalOn && cfg.TauT <= 0.5 {
		return nil, simerr.NewConfigurationError("tau_T must be > 0.5, got %f", cfg.TauT)
	}
	if cfg.ThermalMode == int(thermal.Strong) {
		alpha := lattice.CsSqrT * (cfg.TauT - 0.5)
		rhoRef := cfg.RhoRef
		if rhoRef == 0 {
			rhoRef = cfg.RhoWater
		}
		if rhoRef <= 0 {
			return nil, simerr.NewConfigurationError("thermal strong coupling requires a positive reference density")
		}
		nu := cfg.MuFluid / rhoRef
		gMag := math.Sqrt(cfg.Gravity[0]*cfg.Gravity[0] + cfg.Gravity[1]*cfg.Gravity[1] + cfg.Gravity[2]*cfg.Gravity[2])
		lChar := float64(cfg.Nx)
		if cfg.Ny > cfg.Nx {
			lChar = float64(cfg.Ny)
		}
		if cfg.Nz > int(lChar) {
			lChar = float64(cfg.Nz)
		}
		ra := thermal.Rayleigh(cfg.BoussinesqBetaT, gMag, cfg.ThermalDeltaT, lChar, nu, alpha)
		if ra > 1e6 {
			return nil, simerr.NewConfigurationError("Rayleigh number %e exceeds the strong-coupling stability bound 1e6", ra)
		}
	}
	g := lattice.NewGrid(cfg.Nx, cfg.Ny, cfg.Nz, thermalOn)
	g.PeriodicX, g.PeriodicY, g.PeriodicZ = cfg.PeriodicX, cfg.PeriodicY, cfg.PeriodicZ
	for i := range g.Rho {
		g.Rho[i] = cfg.RhoOut
		g.TauMl[i] = cfg.TauMol
	}
	for i := 0; i < g.N()*lattice.Q; i += lattice.Q {
		lattice.EquilibriumAll((*[lattice.Q]float64)(g.F[i:i+lattice.Q]), cfg.RhoOut, [3]float64{})
	}

	s := &Simulation{
		cfg:      cfg,
		grid:     g,
		forceAgg: force.NewAggregator(cfg.Gravity),
		tauEff:   make([]float64, g.N()),
	}
	s.forceAgg.DriveEnabled = cfg.DriveEnabled
	s.forceAgg.Drive = cfg.Drive

	if cfg.LESEnabled {
		delta := cfg.LESDelta
		if delta == 0 {
			delta = 1.0
		}
		s.les = les.NewClosure(delta)
	}
	if cfg.PhaseEnabled {
		s.phase = phase.NewModel(cfg.Mobility, cfg.Xi, cfg.Sigma, cfg.RhoWater, cfg.RhoAir)
	}
	if cfg.GrainDiam > 0 {
		s.porous = porous.NewModel(dbf.Params{
			&dbf.P{N: "GrainDiam", V: cfg.GrainDiam},
		})
	}
	if thermalOn {
		s.thermal = &thermal.Model{
			Mode:  thermal.Mode(cfg.ThermalMode),
			TauT:  cfg.TauT,
			Mu0:   cfg.VogelMu0,
			Ea:    cfg.VogelEa,
			Rgas:  cfg.VogelRgas,
			TRef0: cfg.VogelTRef0,
			Rho0:  cfg.BoussinesqRho0,
			BetaT: cfg.BoussinesqBetaT,
			TRef:  cfg.BoussinesqTRef,
			Gravity: cfg.Gravity,
		}
		for i := range g.T {
			g.T[i] = cfg.VogelTRef0
			for j := 0; j < lattice.D7; j++ {
				g.G[i*lattice.D7+j] = lattice.EquilibriumT(j, cfg.VogelTRef0, [3]float64{})
			}
		}
	}
	if cfg.ParticlesEnabled {
		s.pool = particles.NewPool(cfg.PMax)
	}
	return s, nil
}

// LoadGeometry assigns the per-cell tag and (for Porous cells) porosity
// used to derive the Darcy-Forchheimer coefficients. tags must have
// length Nx*Ny*Nz; porosity must too, or be nil, in which case every
// Porous cell uses 0.4. Porosity entries are consulted only where
// tags[idx]==lattice.Porous, and only when Config.GrainDiam > 0 built a
// porous model; otherwise no coefficients are derived.
func (s *Simulation) LoadGeometry(tags []lattice.Tag, porosity []float64) error {
	n := s.grid.N()
	if len(tags) != n {
		return simerr.NewConfigurationError("tags length %d does not match grid size %d", len(tags), n)
	}
	if porosity != nil && len(porosity) != n {
		return simerr.NewConfigurationError("porosity length %d does not match grid size %d", len(porosity), n)
	}
	copy(s.grid.Tags, tags)
	if s.porous == nil {
		return nil
	}
	for idx, tag := range tags {
		if tag != lattice.Porous {
			continue
		}
		eps := 0.4
		if porosity != nil {
			eps = porosity[idx]
		}
		dp := s.porous.GrainDiam
		s.grid.PorousK[idx] = porous.Permeability(eps, dp)
		s.grid.PorousBeta[idx] = porous.ErgunBeta(eps)
		s.grid.PorousCeff[idx] = porous.EffectiveHeatCapacity(eps, s.cfg.RhoWater, s.cfg.MuWater, s.cfg.RhoAir, s.cfg.MuAir)
	}
	return nil
}

// SeedParticles draws count grind particles from dist and places them
// into the fluid region; it is a no-op error if particles were not
// enabled in Config.
func (s *Simulation) SeedParticles(count int, dist particles.GrindDistribution, density float64, seed int) (int, error) {
	if s.pool == nil {
		return 0, simerr.NewPreconditionError("particles not enabled in Config")
	}
	placed, err := particles.SeedParticles(s.pool, s.grid, count, dist, density, seed)
	if err != nil {
		return placed, err
	}
	if placed < count {
		return placed, simerr.NewResourceError("only placed %d of %d requested particles (pool capacity or domain too constrained)", placed, count)
	}
	return placed, nil
}

// SetInletVelocity sets the prescribed velocity at a single Inlet-tagged
// cell, consumed by the Zou-He boundary treatment on the next Step. The
// pouring subsystem calls this every time its target position or rate
// changes; cells left unset default to zero velocity.
func (s *Simulation) SetInletVelocity(x, y, z int, ux, uy, uz float64) error {
	if x < 0 || x >= s.grid.Nx || y < 0 || y >= s.grid.Ny || z < 0 || z >= s.grid.Nz {
		return simerr.NewConfigurationError("inlet coordinate (%d,%d,%d) out of bounds", x, y, z)
	}
	idx := s.grid.Idx(x, y, z)
	if s.grid.Tags[idx] != lattice.Inlet {
		return simerr.NewPreconditionError("cell (%d,%d,%d) is not tagged Inlet", x, y, z)
	}
	b := idx * 3
	s.grid.UIn[b], s.grid.UIn[b+1], s.grid.UIn[b+2] = ux, uy, uz
	return nil
}

// Step advances the simulation by one Dt, running the fixed pipeline:
// zero force, LES/molecular-relaxation update, phase-field evolution
// and surface tension, gravity/drive/porous/buoyancy accumulation,
// particle interpolation-integration-scatter, Guo-forced collision,
// streaming, open-boundary reconstruction, macro recovery, and the
// stability gate. It refuses to run again after a StabilityError until
// Reset is called.
func (s *Simulation) Step() error {
	if s.failed {
		return simerr.NewPreconditionError("simulation is in a failed state; call Reset before stepping again")
	}

	g := s.grid
	n := g.N()

	force.Zero(g)

	s.updateTauEff()

	if s.phase != nil {
		s.phase.Evolve(g, s.cfg.Dt)
		s.phase.ComputeNormalCurvature(g)
		s.phase.AccumulateSurfaceTension(g, g)
		s.updatePhaseBlendedTau()
	}

	s.forceAgg.AccumulateConstant(g)
	if s.porous != nil {
		porous.AccumulateResistance(g, s.cfg.MuFluid, g)
	}
	if s.thermal != nil {
		s.thermal.AccumulateBuoyancy(g, g)
	}

	if s.pool != nil {
		rhoRef := s.cfg.RhoRef
		if rhoRef == 0 {
			rhoRef = s.cfg.RhoWater
		}
		params := particles.IntegrateParams{
			Dt:      s.cfg.Dt,
			Gravity: s.cfg.Gravity,
			MuF:     s.cfg.MuFluid,
			Alpha:   s.cfg.ParticleAlpha,
			MaxDv:   s.cfg.ParticleMaxDv,
			Contact: s.cfg.Contact,
			DomainLo: [3]float64{0, 0, 0},
			DomainHi: [3]float64{float64(g.Nx - 1), float64(g.Ny - 1), float64(g.Nz - 1)},
		}
		particles.Integrate(s.pool, g, rhoRef, params, g)
	}

	lbm.Collide(g, func(idx int) float64 { return s.tauEff[idx] })
	if s.thermal != nil {
		s.thermal.Collide(g)
	}

	lbm.Stream(g)
	if s.thermal != nil {
		s.thermal.Stream(g)
	}

	boundary.ApplyInlet(g)
	boundary.ApplyOutlet(g, s.cfg.RhoOut)
	if s.thermal != nil {
		s.thermal.ApplyBC(g)
	}

	engine.ParallelFor(0, n, func(idx int) {
		if !g.Tags[idx].IsFlowing() {
			return
		}
		g.RecoverMacro(idx)
	})
	if s.thermal != nil {
		s.thermal.RecoverMacro(g)
		s.thermal.UpdateTauMol(g)
	}

	diag := s.computeDiagnostics()
	if reason := s.checkStability(diag); reason != "" {
		s.failed = true
		s.lastErr = simerr.NewStabilityError(reason, diag)
		return s.lastErr
	}

	s.step++
	s.lastDiag = diag
	if s.snapshot != nil {
		s.snapshot(s.step, diag)
	}
	return nil
}

// updateTauEff refreshes s.tauEff for every flowing cell from the LES
// closure (when enabled) or from g.TauMl directly.
func (s *Simulation) updateTauEff() {
	g := s.grid
	n := g.N()
	if s.les == nil {
		copy(s.tauEff, g.TauMl)
		return
	}
	engine.ParallelFor(0, n, func(idx int) {
		if !g.Tags[idx].IsFlowing() {
			s.tauEff[idx] = g.TauMl[idx]
			return
		}
		x, y, z := g.Coords(idx)
		s.les.Compute(g, idx, x, y, z)
		tauEff, clipped := les.EffectiveTau(g.TauMl[idx], g.NuS[idx])
		s.tauEff[idx] = tauEff
		if clipped {
			g.TauEffClips++
		}
	})
}

// updatePhaseBlendedTau derives tau_mol at every non-solid cell from the
// phase-blended density and viscosity, feeding updateTauEff on the next
// step. Thermal Vogel viscosity (when active) overrides this afterward
// through UpdateTauMol, consistent with the strong-coupling precedence
// of temperature over the phase blend.
func (s *Simulation) updatePhaseBlendedTau() {
	g := s.grid
	n := g.N()
	muW, muA := s.cfg.MuWater, s.cfg.MuAir
	engine.ParallelFor(0, n, func(idx int) {
		if g.Tags[idx] == lattice.Solid {
			return
		}
		phi := g.Phi[idx]
		rhoPhi := s.phase.LocalDensity(phi)
		if rhoPhi <= 0 {
			return
		}
		mu := muW*(phi+1)/2 + muA*(1-phi)/2
		nu := mu / rhoPhi
		g.TauMl[idx] = nu/lattice.CsSqr + 0.5
	})
}

// cellFailure wraps a lattice.FailureReason so ParallelForErr can surface
// the first cell-level violation found by the gate kernel; it is never
// returned to a caller outside checkStability.
type cellFailure lattice.FailureReason

func (e cellFailure) Error() string {
	switch lattice.FailureReason(e) {
	case lattice.NonPositiveDensity:
		return "non-positive density"
	case lattice.NonFinite:
		return "non-finite field"
	case lattice.MachExceeded:
		return "mach number exceeded hard limit"
	default:
		return "unknown cell failure"
	}
}

// checkStability runs the hard per-cell gate plus the whole-step Mach,
// CFL, thermal-CFL and tau_eff > 0.5 checks, returning a non-empty
// reason string on failure.
func (s *Simulation) checkStability(diag Diagnostics) string {
	g := s.grid
	n := g.N()
	if err := engine.ParallelForErr(0, n, func(idx int) error {
		if reason := g.CheckCell(idx); reason != lattice.OK {
			return cellFailure(reason)
		}
		return nil
	}); err != nil {
		return err.Error()
	}
	if diag.MaxMach > 0.1 {
		return "mach gate exceeded: max|u|/cs above 0.1"
	}
	if diag.MaxCFL > 0.1 {
		return "CFL gate exceeded: max|u|*dt/dx above 0.1"
	}
	if s.thermal != nil && !s.thermal.CheckCFL(s.cfg.Dt, 1.0) {
		return "thermal CFL exceeded stability bound"
	}
	for idx, te := range s.tauEff {
		if g.Tags[idx].IsFlowing() && te <= 0.5 {
			return "tau_eff gate exceeded: tau_eff at or below 0.5"
		}
	}
	return ""
}

// computeDiagnostics gathers the whole-grid scalars reported through
// Diagnostics.
func (s *Simulation) computeDiagnostics() Diagnostics {
	g := s.grid
	maxSpeed := g.MaxSpeed()
	d := Diagnostics{
		Step:          s.step + 1,
		MaxMach:       maxSpeed / lattice.Cs,
		MaxCFL:        maxSpeed * s.cfg.Dt,
		KineticEnergy: g.KineticEnergy(),
		TotalMass:     g.TotalMass(),
		TauEffClips:   g.TauEffClips,
	}
	if s.phase != nil {
		d.PhaseVolume = s.phase.TotalVolume(g)
	}
	if s.pool != nil {
		d.ActiveParticles = s.pool.ActiveCount()
	}
	if s.thermal != nil {
		d.MeanTemperature = meanTemperature(g)
	}
	return d
}

func meanTemperature(g *lattice.Grid) float64 {
	var sum float64
	var count int
	n := g.N()
	for idx := 0; idx < n; idx++ {
		if !g.Tags[idx].IsFlowing() {
			continue
		}
		sum += g.T[idx]
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Reset clears the failed flag after a StabilityError, allowing Step to
// run again. It does not rewind any state; callers typically combine it
// with RestoreMask/DumpMacro-based rollback to a known-good snapshot.
func (s *Simulation) Reset() {
	s.failed = false
	s.lastErr = nil
}

// SetSnapshotFunc installs (or clears, with nil) a hook invoked after
// every successful Step.
func (s *Simulation) SetSnapshotFunc(fn SnapshotFunc) { s.snapshot = fn }

// MacroView returns a read-only view over the current macroscopic
// fields, valid until the next Step call.
func (s *Simulation) MacroView() lattice.MacroView { return lattice.NewMacroView(s.grid) }

// ParticleView returns a read-only view over the particle pool; ok is
// false when particles were not enabled in Config.
func (s *Simulation) ParticleView() (ParticleView, bool) {
	if s.pool == nil {
		return ParticleView{}, false
	}
	return ParticleView{p: s.pool}, true
}

// Diagnostics returns the snapshot computed at the end of the last
// successful Step.
func (s *Simulation) Diagnostics() Diagnostics { return s.lastDiag }

// StepCount returns the number of steps completed successfully so far.
func (s *Simulation) StepCount() uint64 { return s.step }

// LastError returns the error from the most recent failed Step, or nil
// if the simulation has never failed (or was Reset since).
func (s *Simulation) LastError() error { return s.lastErr }
