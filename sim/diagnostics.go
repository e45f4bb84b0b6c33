// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// Diagnostics is the whole-grid scalar snapshot computed at the end of
// every Step. It is cheap enough to compute every step (each field is an
// O(N) reduction). A failing Step puts the snapshot it computed into its
// StabilityError.
type Diagnostics struct {
	Step uint64

	// MaxMach is the peak |u|/c_s over all flowing cells; the Mach gate
	// (spec §3/§8) trips fatal above 0.1, well below the 0.3 c_s hard
	// per-cell corruption limit CheckCell enforces independently.
	MaxMach float64

	// MaxCFL is the peak |u| Dt/Dx over all flowing cells (Dx=1 in
	// lattice units, so this is MaxSpeed*Dt); the gate trips fatal above
	// 0.1, mirroring the Mach gate's bound (spec §3/§8).
	MaxCFL float64

	// KineticEnergy is sum(1/2 rho |u|^2) over all flowing cells, used by
	// the Taylor-Green decay scenario and exposed through diagnostics()
	// per spec §6.
	KineticEnergy float64

	// TotalMass is sum(rho) over all flowing cells, tracked for the
	// mass-conservation diagnostic.
	TotalMass float64

	// PhaseVolume is integral(phi) over all non-solid cells, zero when
	// the phase field is disabled.
	PhaseVolume float64

	// MeanTemperature is the flowing-cell average of T, zero when
	// thermal is disabled.
	MeanTemperature float64

	// ActiveParticles is the current particle-pool occupancy, zero when
	// particles are disabled.
	ActiveParticles int

	// TauEffClips is the cumulative count of tau_eff clamps into
	// [0.51, 2.0] since the simulation was created.
	TauEffClips uint64
}
