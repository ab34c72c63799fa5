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

package mhdbox

import "math"

// Cons1D is the conserved state of a one-dimensional pencil through the
// grid. The momenta are relabeled so that Mx is always parallel to the
// sweep direction; By and Bz are the two transverse field components.
// The parallel field component is carried separately since it is constant
// across a one-dimensional interface.
type Cons1D struct {
	D  float64
	Mx float64
	My float64
	Mz float64
	E  float64 // unused in barotropic mode
	By float64
	Bz float64
	S  []float64
}

// Prim1D is the primitive form of Cons1D. The passive scalars are stored
// as concentrations (scalar density over mass density).
type Prim1D struct {
	D  float64
	Vx float64
	Vy float64
	Vz float64
	P  float64
	By float64
	Bz float64
	S  []float64
}

// ConsToPrim1D converts u to primitive variables in w. bx is the magnetic
// field component parallel to the pencil. In barotropic mode the pressure
// is set from the isothermal sound speed.
func (c *Config) ConsToPrim1D(u *Cons1D, w *Prim1D, bx float64) {
	di := 1.0 / u.D
	w.D = u.D
	w.Vx = u.Mx * di
	w.Vy = u.My * di
	w.Vz = u.Mz * di
	if c.Barotropic {
		w.P = c.IsoCs * c.IsoCs * u.D
	} else {
		w.P = u.E - 0.5*(u.Mx*u.Mx+u.My*u.My+u.Mz*u.Mz)*di
		if c.MHD {
			w.P -= 0.5 * (bx*bx + u.By*u.By + u.Bz*u.Bz)
		}
		w.P *= c.Gamma - 1.0
	}
	if c.MHD {
		w.By = u.By
		w.Bz = u.Bz
	}
	for n := 0; n < c.NScalars; n++ {
		w.S[n] = u.S[n] * di
	}
}

// PrimToCons1D converts w to conserved variables in u.
func (c *Config) PrimToCons1D(w *Prim1D, u *Cons1D, bx float64) {
	u.D = w.D
	u.Mx = w.D * w.Vx
	u.My = w.D * w.Vy
	u.Mz = w.D * w.Vz
	if !c.Barotropic {
		u.E = w.P/(c.Gamma-1.0) + 0.5*w.D*(w.Vx*w.Vx+w.Vy*w.Vy+w.Vz*w.Vz)
		if c.MHD {
			u.E += 0.5 * (bx*bx + w.By*w.By + w.Bz*w.Bz)
		}
	}
	if c.MHD {
		u.By = w.By
		u.Bz = w.Bz
	}
	for n := 0; n < c.NScalars; n++ {
		u.S[n] = w.S[n] * w.D
	}
}

// Cfast returns the fast magnetosonic speed of state u normal to an
// interface with parallel field bx. With the field disabled it reduces to
// the adiabatic (or isothermal) sound speed.
func (c *Config) Cfast(u *Cons1D, bx float64) float64 {
	di := 1.0 / u.D
	var asq float64
	if c.Barotropic {
		asq = c.IsoCs * c.IsoCs
	} else {
		p := u.E - 0.5*(u.Mx*u.Mx+u.My*u.My+u.Mz*u.Mz)*di
		if c.MHD {
			p -= 0.5 * (bx*bx + u.By*u.By + u.Bz*u.Bz)
		}
		p *= c.Gamma - 1.0
		asq = c.Gamma * p * di
	}
	if !c.MHD {
		return math.Sqrt(asq)
	}
	ctsq := (u.By*u.By + u.Bz*u.Bz) * di
	casq := bx * bx * di
	qsq := casq + ctsq + asq
	tmp := casq + ctsq - asq
	return math.Sqrt(0.5 * (qsq + math.Sqrt(tmp*tmp+4.0*asq*ctsq)))
}
