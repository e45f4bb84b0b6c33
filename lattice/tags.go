// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

// Tag classifies a cell for boundary and forcing treatment.
type Tag uint8

const (
	// Fluid cells receive no boundary treatment beyond the ordinary
	// collide-stream-recover pipeline.
	Fluid Tag = iota
	// Solid cells apply half-way bounce-back and contribute no ρ/u to the
	// diagnostic or macro views.
	Solid
	// Porous cells behave like Fluid but additionally accumulate the
	// Darcy-Forchheimer body force from their local K, β fields.
	Porous
	// Inlet cells enforce Zou-He velocity boundary conditions.
	Inlet
	// Outlet cells enforce second-order extrapolation plus a pressure
	// correction toward p_out.
	Outlet
	// InterfaceBand marks cells inside the phase-field interface band;
	// it carries no boundary treatment of its own (the surface-tension
	// body force handles the physics) but is tracked so the LES closure
	// can suppress subgrid viscosity there.
	InterfaceBand
)

// String names a tag for diagnostics and error messages.
func (t Tag) String() string {
	switch t {
	case Fluid:
		return "fluid"
	case Solid:
		return "solid"
	case Porous:
		return "porous"
	case Inlet:
		return "inlet"
	case Outlet:
		return "outlet"
	case InterfaceBand:
		return "interface-thick-band"
	default:
		return "unknown"
	}
}

// ThermalBC classifies the thermal boundary treatment of a cell.
type ThermalBC uint8

const (
	// ThermalNone applies no special thermal treatment (interior fluid).
	ThermalNone ThermalBC = iota
	// ThermalDirichlet fixes T to a prescribed value (e.g. hot water inlet).
	ThermalDirichlet
	// ThermalNeumannZero enforces a zero-gradient (adiabatic) condition.
	ThermalNeumannZero
	// ThermalRobin enforces convective exchange with an environment at
	// T_env through coefficient h.
	ThermalRobin
)

// IsFlowing reports whether cells of tag t participate in the LBM
// collision/streaming pipeline (fluid, porous, inlet, outlet all do;
// solid cells only mirror).
func (t Tag) IsFlowing() bool {
	switch t {
	case Fluid, Porous, Inlet, Outlet, InterfaceBand:
		return true
	default:
		return false
	}
}
