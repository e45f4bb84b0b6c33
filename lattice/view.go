// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

// MacroView is the thin, read-only accessor returned by the external API
// (spec §6's macro_view). It is valid only until the next Step call; the
// orchestrator refreshes the backing Grid in place rather than handing out
// a defensive copy, so callers must not retain it across a Step.
type MacroView struct {
	g *Grid
}

// NewMacroView wraps g for read-only external consumption.
func NewMacroView(g *Grid) MacroView { return MacroView{g: g} }

// Dims returns the grid extents.
func (v MacroView) Dims() (nx, ny, nz int) { return v.g.Nx, v.g.Ny, v.g.Nz }

// Rho returns the density at (x,y,z).
func (v MacroView) Rho(x, y, z int) float64 { return v.g.Rho[v.g.Idx(x, y, z)] }

// Pressure returns p = rho*cs^2 at (x,y,z).
func (v MacroView) Pressure(x, y, z int) float64 { return v.g.P[v.g.Idx(x, y, z)] }

// Velocity returns u at (x,y,z).
func (v MacroView) Velocity(x, y, z int) [3]float64 { return v.g.UAt(v.g.Idx(x, y, z)) }

// Phi returns the phase-field order parameter at (x,y,z).
func (v MacroView) Phi(x, y, z int) float64 { return v.g.Phi[v.g.Idx(x, y, z)] }

// Temperature returns T at (x,y,z); zero when the thermal solver is
// disabled.
func (v MacroView) Temperature(x, y, z int) float64 {
	if v.g.T == nil {
		return 0
	}
	return v.g.T[v.g.Idx(x, y, z)]
}

// SubgridViscosity returns nu_s at (x,y,z).
func (v MacroView) SubgridViscosity(x, y, z int) float64 { return v.g.NuS[v.g.Idx(x, y, z)] }

// Tag returns the cell classification at (x,y,z).
func (v MacroView) Tag(x, y, z int) Tag { return v.g.Tags[v.g.Idx(x, y, z)] }

// RhoRaw exposes the backing density slice directly, for dump helpers that
// need a contiguous raw buffer; callers must treat it as read-only.
func (v MacroView) RhoRaw() []float64 { return v.g.Rho }

// URaw exposes the backing velocity slice (N*3, interleaved x,y,z).
func (v MacroView) URaw() []float64 { return v.g.U }

// PhiRaw exposes the backing phase-field slice.
func (v MacroView) PhiRaw() []float64 { return v.g.Phi }

// TemperatureRaw exposes the backing temperature slice, or nil if thermal
// is disabled.
func (v MacroView) TemperatureRaw() []float64 { return v.g.T }
