// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import "github.com/cpmech/gosl/chk"

// Grid is the structured Cartesian lattice: distribution arrays, macro
// fields and per-cell tags, laid out as structure-of-arrays with each
// direction stored as a contiguous block (favoring coalesced access under
// a SIMT/SIMD backend, per the resource model). Grid is owned exclusively
// by the step orchestrator; every other component receives a read-only
// view or writes only into the fields it is documented to own (Phi for
// the phase field, particle arrays for the particle system, G/GNew/T for
// the thermal solver, Force through atomic accumulation).
type Grid struct {
	Nx, Ny, Nz int
	PeriodicX  bool
	PeriodicY  bool
	PeriodicZ  bool

	// Distributions, double-buffered: size N*Q.
	F, FNew []float64

	// Macro scalars, size N.
	Rho   []float64
	P     []float64
	Phi   []float64
	NuS   []float64
	TauMl []float64 // per-cell molecular relaxation time (varies with T)
	Kappa []float64 // interface curvature

	// Macro vectors, size N*3.
	U      []float64
	Force  []float64
	Normal []float64

	// Cell classification, size N.
	Tags       []Tag
	ThermalBCs []ThermalBC

	// Porous parameters, size N (valid only where Tags[idx]==Porous).
	PorousK    []float64
	PorousBeta []float64
	PorousCeff []float64 // effective volumetric heat capacity

	// Thermal distribution, double-buffered: size N*D7. Nil when the
	// thermal solver is disabled.
	G, GNew []float64
	T       []float64
	TDirVal []float64 // Dirichlet target T, valid where ThermalBCs==ThermalDirichlet
	TEnv    []float64 // Robin environment T, valid where ThermalBCs==ThermalRobin
	HCoef   []float64 // Robin film coefficient h, valid where ThermalBCs==ThermalRobin

	// Inlet velocity field, size N*3; only entries at Inlet-tagged cells
	// are consulted. Updated at any time by the pouring collaborator via
	// SetInletVelocity.
	UIn []float64

	// UWall holds a per-cell moving-wall velocity (size N*3), consulted
	// only at Solid-tagged cells; zero for stationary walls (the default,
	// and the common case for the V60 geometry).
	UWall []float64

	// TauEffClips counts clamps of tau_eff into [0.51, 2.0]; exposed
	// through diagnostics, never causes a failure on its own.
	TauEffClips uint64
}

// NewGrid allocates a grid of the given extents. thermal selects whether
// the D3Q7 distribution and associated fields are allocated.
func NewGrid(nx, ny, nz int, thermal bool) *Grid {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		chk.Panic("grid extents must be positive; got (%d,%d,%d). sim.Config validation should have caught this", nx, ny, nz)
	}
	n := nx * ny * nz
	g := &Grid{
		Nx: nx, Ny: ny, Nz: nz,
		F:          make([]float64, n*Q),
		FNew:       make([]float64, n*Q),
		Rho:        make([]float64, n),
		P:          make([]float64, n),
		Phi:        make([]float64, n),
		NuS:        make([]float64, n),
		TauMl:      make([]float64, n),
		Kappa:      make([]float64, n),
		U:          make([]float64, n*3),
		Force:      make([]float64, n*3),
		Normal:     make([]float64, n*3),
		Tags:       make([]Tag, n),
		ThermalBCs: make([]ThermalBC, n),
		PorousK:    make([]float64, n),
		PorousBeta: make([]float64, n),
		PorousCeff: make([]float64, n),
		UIn:        make([]float64, n*3),
		UWall:      make([]float64, n*3),
	}
	for i := range g.Phi {
		g.Phi[i] = -1 // default: air
	}
	if thermal {
		g.G = make([]float64, n*D7)
		g.GNew = make([]float64, n*D7)
		g.T = make([]float64, n)
		g.TDirVal = make([]float64, n)
		g.TEnv = make([]float64, n)
		g.HCoef = make([]float64, n)
	}
	return g
}

// N returns the total cell count.
func (g *Grid) N() int { return g.Nx * g.Ny * g.Nz }

// ThermalActive reports whether the D3Q7 thermal fields are allocated.
func (g *Grid) ThermalActive() bool { return g.T != nil }

// Idx maps a 3D cell coordinate to its flat index. It neither wraps nor
// bounds-checks: coordinates must lie inside [0,Nx)x[0,Ny)x[0,Nz).
// Offsets that may leave the domain go through Neighbor, which applies
// the periodic wrap.
func (g *Grid) Idx(x, y, z int) int {
	return (z*g.Ny+y)*g.Nx + x
}

// Coords is the inverse of Idx.
func (g *Grid) Coords(idx int) (x, y, z int) {
	x = idx % g.Nx
	rem := idx / g.Nx
	y = rem % g.Ny
	z = rem / g.Ny
	return
}

// Neighbor returns the flat index of the cell offset by (dx,dy,dz) from
// (x,y,z), applying periodic wrap on the axes configured as periodic, and
// reports false when the offset leaves the domain on a non-periodic axis.
func (g *Grid) Neighbor(x, y, z, dx, dy, dz int) (idx int, ok bool) {
	nx, ny, nz := x+dx, y+dy, z+dz
	if nx < 0 || nx >= g.Nx {
		if !g.PeriodicX {
			return 0, false
		}
		nx = ((nx % g.Nx) + g.Nx) % g.Nx
	}
	if ny < 0 || ny >= g.Ny {
		if !g.PeriodicY {
			return 0, false
		}
		ny = ((ny % g.Ny) + g.Ny) % g.Ny
	}
	if nz < 0 || nz >= g.Nz {
		if !g.PeriodicZ {
			return 0, false
		}
		nz = ((nz % g.Nz) + g.Nz) % g.Nz
	}
	return g.Idx(nx, ny, nz), true
}

// UAt returns the velocity vector at cell idx.
func (g *Grid) UAt(idx int) [3]float64 {
	b := idx * 3
	return [3]float64{g.U[b], g.U[b+1], g.U[b+2]}
}

// ForceAt returns the aggregated body force at cell idx.
func (g *Grid) ForceAt(idx int) [3]float64 {
	b := idx * 3
	return [3]float64{g.Force[b], g.Force[b+1], g.Force[b+2]}
}

// ZeroForce resets the aggregated body-force field to zero; this must run
// before any kernel accumulates a contribution into it (spec's ordering
// guarantee (a)).
func (g *Grid) ZeroForce() {
	for i := range g.Force {
		g.Force[i] = 0
	}
}
