// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import (
	"encoding/binary"
	"fmt"
	"io"
)

// maskMagic identifies the cell-tag dump format: 4 bytes "PLBT", then
// Nx,Ny,Nz as little-endian uint32, then one byte per cell (the Tag
// value), in the same Idx order as the rest of the grid's flat arrays.
var maskMagic = [4]byte{'P', 'L', 'B', 'T'}

// DumpMask writes g.Tags to w bit-exactly, prefixed with the grid
// extents so RestoreMask can validate it is being applied to a
// compatible grid.
func DumpMask(g *Grid, w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, maskMagic); err != nil {
		return err
	}
	dims := [3]uint32{uint32(g.Nx), uint32(g.Ny), uint32(g.Nz)}
	if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
		return err
	}
	raw := make([]byte, len(g.Tags))
	for i, t := range g.Tags {
		raw[i] = byte(t)
	}
	_, err := w.Write(raw)
	return err
}

// RestoreMask reads a DumpMask payload from r and overwrites g.Tags,
// returning an error if the stored extents do not match g.
func RestoreMask(g *Grid, r io.Reader) error {
	var magic [4]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return err
	}
	if magic != maskMagic {
		return fmt.Errorf("lattice: bad mask magic %q", magic)
	}
	var dims [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return err
	}
	if int(dims[0]) != g.Nx || int(dims[1]) != g.Ny || int(dims[2]) != g.Nz {
		return fmt.Errorf("lattice: mask extents (%d,%d,%d) do not match grid (%d,%d,%d)",
			dims[0], dims[1], dims[2], g.Nx, g.Ny, g.Nz)
	}
	raw := make([]byte, len(g.Tags))
	if _, err := io.ReadFull(r, raw); err != nil {
		return err
	}
	for i, b := range raw {
		g.Tags[i] = Tag(b)
	}
	return nil
}
