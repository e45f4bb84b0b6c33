// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"encoding/binary"
	"io"

	"github.com/latteine1217/pour-over-coffee-lbm/lattice"
)

// DumpMask writes the current cell-tag array to w; see
// lattice.DumpMask for the wire format.
func (s *Simulation) DumpMask(w io.Writer) error { return lattice.DumpMask(s.grid, w) }

// RestoreMask overwrites the cell-tag array from r, which must have been
// produced by DumpMask against a grid of identical extents. Porous
// K/beta/Ceff fields are not restored; call LoadGeometry again if the
// geometry previously carried porous cells.
func (s *Simulation) RestoreMask(r io.Reader) error { return lattice.RestoreMask(s.grid, r) }

// macroMagic identifies the raw macro-field dump format: 4 bytes "PLBM",
// a 4-byte header (version, thermal flag 0/1, two zero bytes), then
// Nx,Ny,Nz as little-endian uint32, then the
// raw float32 fields in a fixed order (rho, u, phi, T-if-present).
var macroMagic = [4]byte{'P', 'L', 'B', 'M'}

const macroVersion = 1

// DumpMacro writes the current macroscopic fields (rho, u, phi, and T
// when thermal is active) to w as a minimal raw-float32 dump with a
// small fixed header. It is not a format this engine is responsible for
// versioning beyond the single byte already present; actual file
// handling is left to the caller.
func (s *Simulation) DumpMacro(w io.Writer) error {
	g := s.grid
	if err := binary.Write(w, binary.LittleEndian, macroMagic); err != nil {
		return err
	}
	thermalByte := byte(0)
	if g.ThermalActive() {
		thermalByte = 1
	}
	header := []byte{macroVersion, thermalByte, 0, 0}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	dims := [3]uint32{uint32(g.Nx), uint32(g.Ny), uint32(g.Nz)}
	if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
		return err
	}
	if err := writeFloat32Slice(w, g.Rho); err != nil {
		return err
	}
	if err := writeFloat32Slice(w, g.U); err != nil {
		return err
	}
	if err := writeFloat32Slice(w, g.Phi); err != nil {
		return err
	}
	if g.ThermalActive() {
		if err := writeFloat32Slice(w, g.T); err != nil {
			return err
		}
	}
	return nil
}

func writeFloat32Slice(w io.Writer, data []float64) error {
	buf := make([]float32, len(data))
	for i, v := range data {
		buf[i] = float32(v)
	}
	return binary.Write(w, binary.LittleEndian, buf)
}

// particleMagic identifies the raw particle dump format.
var particleMagic = [4]byte{'P', 'L', 'B', 'P'}

// DumpParticles writes every active particle's position, velocity and
// radius to w as a raw float32 dump: a 4-byte magic, a little-endian
// uint32 count, then count * (x,y,z,vx,vy,vz,radius) float32 records.
func (s *Simulation) DumpParticles(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, particleMagic); err != nil {
		return err
	}
	if s.pool == nil {
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}
	p := s.pool
	count := p.ActiveCount()
	if err := binary.Write(w, binary.LittleEndian, uint32(count)); err != nil {
		return err
	}
	rec := make([]float32, 0, 7)
	for i := 0; i < p.Count; i++ {
		if !p.Active[i] {
			continue
		}
		rec = rec[:0]
		rec = append(rec, float32(p.X[i]), float32(p.Y[i]), float32(p.Z[i]),
			float32(p.VX[i]), float32(p.VY[i]), float32(p.VZ[i]), float32(p.Radius[i]))
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return err
		}
	}
	return nil
}
