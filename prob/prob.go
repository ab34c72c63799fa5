/*
Copyright © 2018 the MHDBox authors.
This file is part of MHDBox.

MHDBox is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MHDBox is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MHDBox.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package prob contains problem generators: each fills a grid (ghost
// zones included) with the initial condition of a standard test problem.
// Magnetized problems initialize the face fields divergence-free and set
// the cell-centered field to the mean of the bracketing faces.
package prob

import (
	"math"

	"github.com/astromodel/mhdbox"
)

// Sod fills g with the Sod (1978) shock-tube initial condition along x1:
// (d, P) = (1, 1) for x1 < 0.5 and (0.125, 0.1) beyond, at rest.
func Sod(g *mhdbox.Grid, gamma float64) {
	forAll(g, func(i, j, k int) {
		x1, _, _ := g.CellCenter(i, j, k)
		u := &g.U[k][j][i]
		if x1 < 0.5 {
			u.D = 1.0
			u.E = 1.0 / (gamma - 1.0)
		} else {
			u.D = 0.125
			u.E = 0.1 / (gamma - 1.0)
		}
		u.M1, u.M2, u.M3 = 0, 0, 0
		for n := range u.S {
			u.S[n] = 0.3 * u.D
		}
	})
}

// AcousticWave fills g with a traveling sound wave of relative amplitude
// amp on a uniform background d0 = P0 = 1, propagating along the unit
// vector (costheta, sintheta, 0) with wavenumber 2*pi.
func AcousticWave(g *mhdbox.Grid, gamma, amp, costheta, sintheta float64) {
	const (
		d0 = 1.0
		p0 = 1.0
	)
	wavenumber := 2.0 * math.Pi
	omega := math.Sqrt(gamma*p0*wavenumber*wavenumber/d0)

	forAll(g, func(i, j, k int) {
		x1, x2, _ := g.CellCenter(i, j, k)
		theta := wavenumber * (costheta*x1 + sintheta*x2)
		u := &g.U[k][j][i]
		u.D = d0 + amp*math.Cos(theta)
		u.M1 = costheta * amp * omega * math.Cos(theta) / wavenumber
		u.M2 = sintheta * amp * omega * math.Cos(theta) / wavenumber
		u.M3 = 0.0
		u.E = p0/(gamma-1.0) + amp*gamma*p0*math.Cos(theta)/(d0*(gamma-1.0))
		for n := range u.S {
			u.S[n] = 0.3 * u.D
		}
	})
}

// CPAlfven fills g with a circularly polarized Alfven wave (Toth 2000)
// propagating along x1: parallel field b0, perpendicular field amplitude
// amp, d = 1 and P = 0.1. The wave is an exact nonlinear solution, so any
// deformation measures the scheme's dissipation and dispersion.
func CPAlfven(g *mhdbox.Grid, gamma, amp, b0 float64) {
	const (
		d0 = 1.0
		p0 = 0.1
	)
	wavenumber := 2.0 * math.Pi

	bperp := func(x1 float64) (b2, b3 float64) {
		return amp * math.Sin(wavenumber*x1), amp * math.Cos(wavenumber*x1)
	}

	forAll(g, func(i, j, k int) {
		x1, _, _ := g.CellCenter(i, j, k)
		b2, b3 := bperp(x1)

		g.B1i[k][j][i] = b0
		g.B2i[k][j][i] = b2
		g.B3i[k][j][i] = b3

		u := &g.U[k][j][i]
		u.D = d0
		u.M1 = 0.0
		u.M2 = -d0 * b2 / math.Sqrt(d0)
		u.M3 = -d0 * b3 / math.Sqrt(d0)
		for n := range u.S {
			u.S[n] = 0.3 * u.D
		}
	})
	centerFields(g)
	forAll(g, func(i, j, k int) {
		u := &g.U[k][j][i]
		u.E = p0/(gamma-1.0) +
			0.5*(u.M1*u.M1+u.M2*u.M2+u.M3*u.M3)/u.D +
			0.5*(u.B1c*u.B1c+u.B2c*u.B2c+u.B3c*u.B3c)
	})
}

// OrszagTang fills g with the Orszag-Tang (1979) vortex in the x1-x2
// plane. The face fields derive from the vector potential
// Az = B0 (cos(4 pi x)/(4 pi) + cos(2 pi y)/(2 pi)), so the discrete
// divergence vanishes identically.
func OrszagTang(g *mhdbox.Grid, gamma float64) {
	d0 := 25.0 / (36.0 * math.Pi)
	p0 := 5.0 / (12.0 * math.Pi)
	b0 := 1.0 / math.Sqrt(4.0*math.Pi)

	forAll(g, func(i, j, k int) {
		x1, x2, _ := g.CellCenter(i, j, k)

		// B1 at the lower x1 face, B2 at the lower x2 face; each
		// depends only on the transverse coordinate, so the discrete
		// divergence vanishes cell by cell.
		g.B1i[k][j][i] = -b0 * math.Sin(2.0*math.Pi*x2)
		g.B2i[k][j][i] = b0 * math.Sin(4.0*math.Pi*x1)
		g.B3i[k][j][i] = 0.0

		u := &g.U[k][j][i]
		u.D = d0
		u.M1 = -d0 * math.Sin(2.0*math.Pi*x2)
		u.M2 = d0 * math.Sin(2.0*math.Pi*x1)
		u.M3 = 0.0
		for n := range u.S {
			u.S[n] = 0.3 * u.D
		}
	})
	centerFields(g)
	forAll(g, func(i, j, k int) {
		u := &g.U[k][j][i]
		u.E = p0/(gamma-1.0) +
			0.5*(u.M1*u.M1+u.M2*u.M2+u.M3*u.M3)/u.D +
			0.5*(u.B1c*u.B1c+u.B2c*u.B2c+u.B3c*u.B3c)
	})
}

// FieldLoop fills g with a weak magnetic field loop of potential
// amplitude amp and radius r0, advected by the uniform velocity
// (vx, vy, 0) (Gardiner & Stone 2005). The face fields are finite
// differences of the vector potential Az = amp*(r0 - r) inside the loop,
// so the discrete divergence vanishes identically and the loop shape
// measures how well the scheme preserves a passively advected field.
func FieldLoop(g *mhdbox.Grid, gamma, amp, r0, vx, vy float64) {
	const (
		d0 = 1.0
		p0 = 1.0
	)
	xc := g.X1Min + 0.5*float64(g.Nx1)*g.Dx1
	yc := g.X2Min + 0.5*float64(g.Nx2)*g.Dx2

	az := func(x, y float64) float64 {
		r := math.Hypot(x-xc, y-yc)
		if r < r0 {
			return amp * (r0 - r)
		}
		return 0.0
	}

	forAll(g, func(i, j, k int) {
		x1, x2, _ := g.CellCenter(i, j, k)

		// B1 at the lower x1 face, B2 at the lower x2 face, each from
		// the line integral of Az along the bounding edges.
		g.B1i[k][j][i] = (az(x1-0.5*g.Dx1, x2+0.5*g.Dx2) -
			az(x1-0.5*g.Dx1, x2-0.5*g.Dx2)) / g.Dx2
		g.B2i[k][j][i] = -(az(x1+0.5*g.Dx1, x2-0.5*g.Dx2) -
			az(x1-0.5*g.Dx1, x2-0.5*g.Dx2)) / g.Dx1
		g.B3i[k][j][i] = 0.0

		u := &g.U[k][j][i]
		u.D = d0
		u.M1 = d0 * vx
		u.M2 = d0 * vy
		u.M3 = 0.0
		for n := range u.S {
			u.S[n] = 0.3 * u.D
		}
	})
	centerFields(g)
	forAll(g, func(i, j, k int) {
		u := &g.U[k][j][i]
		u.E = p0/(gamma-1.0) +
			0.5*(u.M1*u.M1+u.M2*u.M2+u.M3*u.M3)/u.D +
			0.5*(u.B1c*u.B1c+u.B2c*u.B2c+u.B3c*u.B3c)
	})
}

// ShearingBoxEq fills g with the unstratified shearing-box equilibrium:
// uniform density d0 and pressure p0, threaded by the linear shear
// velocity v2 = -1.5*omega*x1. With orbital advection (fargo) the shear
// is carried by the background and the equilibrium is at rest. The state
// is an exact steady solution of the rotating-frame equations and any
// drift measures the integrator's source-term balance.
func ShearingBoxEq(g *mhdbox.Grid, gamma, d0, p0, omega float64, fargo bool) {
	forAll(g, func(i, j, k int) {
		x1, _, _ := g.CellCenter(i, j, k)
		u := &g.U[k][j][i]
		u.D = d0
		u.M1 = 0.0
		u.M2 = 0.0
		if !fargo {
			u.M2 = -1.5 * omega * x1 * d0
		}
		u.M3 = 0.0
		u.E = p0/(gamma-1.0) + 0.5*u.M2*u.M2/u.D
		for n := range u.S {
			u.S[n] = 0.3 * u.D
		}
	})
}

// forAll visits every cell of g, ghost zones included; boundary
// conditions refill the ghosts before the first step anyway.
func forAll(g *mhdbox.Grid, f func(i, j, k int)) {
	n1 := g.Nx1 + 2*mhdbox.Nghost
	n2 := g.Nx2 + 2*mhdbox.Nghost
	n3 := g.Nx3 + 2*mhdbox.Nghost
	for k := 0; k < n3; k++ {
		for j := 0; j < n2; j++ {
			for i := 0; i < n1; i++ {
				f(i, j, k)
			}
		}
	}
}

// centerFields sets the cell-centered field components to the mean of
// the bracketing face fields wherever both faces exist.
func centerFields(g *mhdbox.Grid) {
	n1 := g.Nx1 + 2*mhdbox.Nghost
	n2 := g.Nx2 + 2*mhdbox.Nghost
	n3 := g.Nx3 + 2*mhdbox.Nghost
	for k := 0; k < n3; k++ {
		for j := 0; j < n2; j++ {
			for i := 0; i < n1; i++ {
				u := &g.U[k][j][i]
				if i+1 < n1 {
					u.B1c = 0.5 * (g.B1i[k][j][i] + g.B1i[k][j][i+1])
				} else {
					u.B1c = g.B1i[k][j][i]
				}
				if j+1 < n2 {
					u.B2c = 0.5 * (g.B2i[k][j][i] + g.B2i[k][j+1][i])
				} else {
					u.B2c = g.B2i[k][j][i]
				}
				if k+1 < n3 {
					u.B3c = 0.5 * (g.B3i[k][j][i] + g.B3i[k+1][j][i])
				} else {
					u.B3c = g.B3i[k][j][i]
				}
			}
		}
	}
}
