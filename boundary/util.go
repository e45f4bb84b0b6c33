// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package boundary implements the open-boundary treatments that act on
// already-streamed distributions: Zou-He velocity inlet and
// second-order-extrapolation pressure outlet. Half-way bounce-back for
// solid cells (and its Ladd moving-wall correction) is built into
// lbm.Stream, since it requires no post-stream reconstruction; this
// package only fills in the populations that streaming could not supply
// because they would have arrived from outside the domain.
package boundary

import "github.com/latteine1217/pour-over-coffee-lbm/lattice"

// faceAxis identifies the domain face a boundary cell sits on: Axis in
// {0,1,2} for x,y,z, and DirIn = +1 if the fluid interior lies in the
// increasing direction along Axis (the boundary is the "low" face) or -1
// if the interior lies in the decreasing direction (the boundary is the
// "high" face).
type faceAxis struct {
	Axis  int
	DirIn int
}

// findFace locates the domain face a boundary cell (x,y,z) sits on by
// finding the one axis-aligned neighbor direction that leaves the grid
// (an open, non-periodic boundary). Cells at a true corner/edge (two or
// three such directions) report the first one found, which is
// sufficient for the rectangular box domains this engine targets (inlet
// and outlet planes are configured as single flat faces).
func findFace(g *lattice.Grid, x, y, z int) (faceAxis, bool) {
	checks := []struct {
		axis, dx, dy, dz int
	}{
		{0, -1, 0, 0}, {0, 1, 0, 0},
		{1, 0, -1, 0}, {1, 0, 1, 0},
		{2, 0, 0, -1}, {2, 0, 0, 1},
	}
	for _, c := range checks {
		_, ok := g.Neighbor(x, y, z, c.dx, c.dy, c.dz)
		if ok {
			continue
		}
		// the missing neighbor is at (dx,dy,dz); the interior lies the
		// opposite way.
		sum := c.dx + c.dy + c.dz
		dirIn := 1
		if sum > 0 {
			dirIn = -1
		}
		return faceAxis{Axis: c.axis, DirIn: dirIn}, true
	}
	return faceAxis{}, false
}

// classify splits the 19 directions into tangential (e_i[axis]==0),
// known-out (pointing out of the domain, e_i[axis]*dirIn==-1) and
// unknown-in (pointing into the domain from outside, e_i[axis]*dirIn==+1)
// sets for the given face.
func classify(f faceAxis) (tangential, knownOut, unknownIn []int) {
	for i := 0; i < lattice.Q; i++ {
		c := lattice.E[i][f.Axis] * f.DirIn
		switch {
		case c == 0:
			tangential = append(tangential, i)
		case c < 0:
			knownOut = append(knownOut, i)
		default:
			unknownIn = append(unknownIn, i)
		}
	}
	return
}
