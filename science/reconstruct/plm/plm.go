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

// Package plm implements second-order piecewise-linear interface
// reconstruction with min-mod limited slopes on the primitive variables.
package plm

import "github.com/astromodel/mhdbox"

// Reconstructor fulfils the github.com/astromodel/mhdbox.Reconstructor
// interface.
type Reconstructor struct{}

// New returns a piecewise-linear reconstructor.
func New() Reconstructor { return Reconstructor{} }

// LRStates computes the interface states Wl[f], Wr[f] for every interface
// f in [lo, hi+1] from limited linear profiles in each cell: Wl[f] is the
// rightmost value of the profile in cell f-1 and Wr[f] the leftmost value
// of the profile in cell f. The states carry no characteristic tracing;
// the half-step time centering of the surrounding unsplit scheme comes
// from its transverse corrections and source terms.
func (Reconstructor) LRStates(w []mhdbox.Prim1D, bxc []float64, dt, dtodx float64,
	lo, hi int, wl, wr []mhdbox.Prim1D) {

	for m := lo - 1; m <= hi+1; m++ {
		c := &w[m]
		l := &w[m-1]
		r := &w[m+1]

		dD := minmod(c.D-l.D, r.D-c.D)
		dVx := minmod(c.Vx-l.Vx, r.Vx-c.Vx)
		dVy := minmod(c.Vy-l.Vy, r.Vy-c.Vy)
		dVz := minmod(c.Vz-l.Vz, r.Vz-c.Vz)
		dP := minmod(c.P-l.P, r.P-c.P)
		dBy := minmod(c.By-l.By, r.By-c.By)
		dBz := minmod(c.Bz-l.Bz, r.Bz-c.Bz)

		a := &wl[m+1]
		a.D = c.D + 0.5*dD
		a.Vx = c.Vx + 0.5*dVx
		a.Vy = c.Vy + 0.5*dVy
		a.Vz = c.Vz + 0.5*dVz
		a.P = c.P + 0.5*dP
		a.By = c.By + 0.5*dBy
		a.Bz = c.Bz + 0.5*dBz

		b := &wr[m]
		b.D = c.D - 0.5*dD
		b.Vx = c.Vx - 0.5*dVx
		b.Vy = c.Vy - 0.5*dVy
		b.Vz = c.Vz - 0.5*dVz
		b.P = c.P - 0.5*dP
		b.By = c.By - 0.5*dBy
		b.Bz = c.Bz - 0.5*dBz

		for n := range c.S {
			dS := minmod(c.S[n]-l.S[n], r.S[n]-c.S[n])
			a.S[n] = c.S[n] + 0.5*dS
			b.S[n] = c.S[n] - 0.5*dS
		}
	}
}

// minmod returns the smaller-magnitude argument when both have the same
// sign and zero otherwise.
func minmod(a, b float64) float64 {
	if a > 0 && b > 0 {
		if a < b {
			return a
		}
		return b
	}
	if a < 0 && b < 0 {
		if a > b {
			return a
		}
		return b
	}
	return 0
}
