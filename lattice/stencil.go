// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lattice owns the grid geometry, the D3Q19 discrete-velocity
// stencil and the macroscopic fields (ρ, u, p, φ, T, νₛ) that every other
// component reads through a view. The lattice and macro fields are owned
// exclusively by the step orchestrator; everything else holds read-only
// views, per the ownership rule in the data model.
package lattice

// Q is the number of discrete velocities in the D3Q19 stencil.
const Q = 19

// CsSqr is the lattice sound speed squared, c_s² = 1/3.
const CsSqr = 1.0 / 3.0

// Cs is the lattice sound speed.
const Cs = 0.5773502691896258 // math.Sqrt(1.0 / 3.0)

// E holds the 19 discrete velocity vectors: the rest direction, the six
// axis-aligned unit vectors and the twelve face-diagonal vectors.
var E = [Q][3]int{
	{0, 0, 0},
	{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
	{1, 1, 0}, {-1, -1, 0}, {1, -1, 0}, {-1, 1, 0},
	{1, 0, 1}, {-1, 0, -1}, {1, 0, -1}, {-1, 0, 1},
	{0, 1, 1}, {0, -1, -1}, {0, 1, -1}, {0, -1, 1},
}

// W holds the stencil weights: w0=1/3, w{1..6}=1/18, w{7..18}=1/36.
var W = [Q]float64{
	1.0 / 3.0,
	1.0 / 18.0, 1.0 / 18.0, 1.0 / 18.0, 1.0 / 18.0, 1.0 / 18.0, 1.0 / 18.0,
	1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0,
	1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0,
	1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0,
}

// Opp maps each direction i to the index ī such that e_ī = -e_i, used by
// half-way bounce-back.
var Opp = [Q]int{
	0,
	2, 1, 4, 3, 6, 5,
	8, 7, 10, 9,
	12, 11, 14, 13,
	16, 15, 18, 17,
}

// Equilibrium evaluates the D3Q19 Maxwell-Boltzmann equilibrium
// distribution for direction i given density rho and velocity u.
//
//	f_i^eq = w_i rho [1 + (e_i.u)/cs^2 + (e_i.u)^2/(2 cs^4) - (u.u)/(2 cs^2)]
func Equilibrium(i int, rho float64, u [3]float64) float64 {
	eu := float64(E[i][0])*u[0] + float64(E[i][1])*u[1] + float64(E[i][2])*u[2]
	uu := u[0]*u[0] + u[1]*u[1] + u[2]*u[2]
	return W[i] * rho * (1.0 + eu/CsSqr + (eu*eu)/(2*CsSqr*CsSqr) - uu/(2*CsSqr))
}

// EquilibriumAll fills out[0:Q] with the equilibrium distribution for every
// direction; out must have length Q.
func EquilibriumAll(out *[Q]float64, rho float64, u [3]float64) {
	uu := u[0]*u[0] + u[1]*u[1] + u[2]*u[2]
	base := uu / (2 * CsSqr)
	for i := 0; i < Q; i++ {
		eu := float64(E[i][0])*u[0] + float64(E[i][1])*u[1] + float64(E[i][2])*u[2]
		out[i] = W[i] * rho * (1.0 + eu/CsSqr + (eu*eu)/(2*CsSqr*CsSqr) - base)
	}
}

// GuoForcing evaluates the Guo forcing term for direction i:
//
//	F_i = w_i (1 - 1/(2 tauEff)) [ (e_i - u)/cs^2 + (e_i.u) e_i / cs^4 ] . F
func GuoForcing(i int, tauEff float64, u, force [3]float64) float64 {
	ei := [3]float64{float64(E[i][0]), float64(E[i][1]), float64(E[i][2])}
	eu := ei[0]*u[0] + ei[1]*u[1] + ei[2]*u[2]
	prefac := W[i] * (1.0 - 1.0/(2.0*tauEff))
	var sum float64
	for a := 0; a < 3; a++ {
		term := (ei[a]-u[a])/CsSqr + eu*ei[a]/(CsSqr*CsSqr)
		sum += term * force[a]
	}
	return prefac * sum
}

// D7 is the number of discrete velocities in the D3Q7 thermal stencil: the
// rest direction plus the six axis-aligned unit vectors of D3Q19.
const D7 = 7

// CsSqrT is the D3Q7 lattice sound speed squared, c_{s,T}^2 = 1/4.
const CsSqrT = 0.25

// WT holds the D3Q7 weights: w0=1/4, w{1..6}=1/8.
var WT = [D7]float64{
	1.0 / 4.0,
	1.0 / 8.0, 1.0 / 8.0, 1.0 / 8.0, 1.0 / 8.0, 1.0 / 8.0, 1.0 / 8.0,
}

// ET holds the seven D3Q7 discrete velocities (a subset of E: rest plus the
// six axis-aligned directions, reusing their E/Opp indices).
var ET = [D7]int{0, 1, 2, 3, 4, 5, 6}

// EquilibriumT evaluates the D3Q7 scalar-transport equilibrium for
// direction j (indexing into ET/WT) given temperature T and velocity u.
func EquilibriumT(j int, T float64, u [3]float64) float64 {
	i := ET[j]
	eu := float64(E[i][0])*u[0] + float64(E[i][1])*u[1] + float64(E[i][2])*u[2]
	return WT[j] * T * (1.0 + eu/CsSqrT)
}
