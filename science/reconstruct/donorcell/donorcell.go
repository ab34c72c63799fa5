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

// Package donorcell implements first-order (piecewise constant)
// interface reconstruction. It is unconditionally monotone and serves as
// a robust fallback (the FirstOrder run option of mhdboxutil).
package donorcell

import "github.com/astromodel/mhdbox"

// Reconstructor fulfils the github.com/astromodel/mhdbox.Reconstructor
// interface.
type Reconstructor struct{}

// New returns a donor-cell reconstructor.
func New() Reconstructor { return Reconstructor{} }

// LRStates copies the cell averages to the bracketing interfaces:
// Wl[f] = W[f-1] and Wr[f] = W[f] for every f in [lo, hi+1].
func (Reconstructor) LRStates(w []mhdbox.Prim1D, bxc []float64, dt, dtodx float64,
	lo, hi int, wl, wr []mhdbox.Prim1D) {

	for f := lo; f <= hi+1; f++ {
		copyPrim(&wl[f], &w[f-1])
		copyPrim(&wr[f], &w[f])
	}
}

func copyPrim(dst, src *mhdbox.Prim1D) {
	s := dst.S
	*dst = *src
	dst.S = s
	for n := range s {
		s[n] = src.S[n]
	}
}
