// Copyright 2026 The Pour-Over LBM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import "math"

// DragCoefficient evaluates the Schiller-Naumann drag-coefficient
// correlation C_D(Re):
//
//	24/Re                          for Re < 0.1
//	(24/Re)(1 + 0.15 Re^0.687)     for 0.1 <= Re < 1000
//	0.44                           for Re >= 1000
//
// Below Re = 1e-12 (no relative motion) it returns 0 instead of 24/Re.
func DragCoefficient(re float64) float64 {
	switch {
	case re < 1e-12:
		return 0 // no relative velocity, no drag
	case re < 0.1:
		return 24.0 / re
	case re < 1000:
		return (24.0 / re) * (1.0 + 0.15*math.Pow(re, 0.687))
	default:
		return 0.44
	}
}

// Reynolds evaluates the particle Reynolds number
// Re = rho_f |u_f - v_p| (2 r_p) / mu_f.
func Reynolds(rhoF, relSpeed, radius, muF float64) float64 {
	if muF <= 0 {
		return 0
	}
	return rhoF * relSpeed * (2 * radius) / muF
}

// DragForce evaluates
//
//	F_drag = 1/2 C_D(Re) rho_f A_p |u_f - v_p| (u_f - v_p)
//
// where A_p = pi r_p^2 is the particle's projected area.
func DragForce(rhoF, muF, radius float64, uf, vp [3]float64) [3]float64 {
	rel := [3]float64{uf[0] - vp[0], uf[1] - vp[1], uf[2] - vp[2]}
	relSpeed := math.Sqrt(rel[0]*rel[0] + rel[1]*rel[1] + rel[2]*rel[2])
	if relSpeed == 0 {
		return [3]float64{0, 0, 0}
	}
	re := Reynolds(rhoF, relSpeed, radius, muF)
	cd := DragCoefficient(re)
	area := math.Pi * radius * radius
	coef := 0.5 * cd * rhoF * area * relSpeed
	return [3]float64{coef * rel[0], coef * rel[1], coef * rel[2]}
}
