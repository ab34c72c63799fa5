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

package donorcell

import (
	"testing"

	"github.com/astromodel/mhdbox"
)

func TestInterfaceStates(t *testing.T) {
	const n = 10
	w := make([]mhdbox.Prim1D, n)
	wl := make([]mhdbox.Prim1D, n)
	wr := make([]mhdbox.Prim1D, n)
	for i := range w {
		w[i].D = float64(i)
		w[i].P = 1.0
		w[i].S = []float64{float64(2 * i)}
		wl[i].S = make([]float64, 1)
		wr[i].S = make([]float64, 1)
	}

	New().LRStates(w, nil, 0.1, 1.0, 2, 7, wl, wr)

	for f := 2; f <= 8; f++ {
		if wl[f].D != w[f-1].D || wr[f].D != w[f].D {
			t.Fatalf("interface %d: got (%g, %g), want (%g, %g)",
				f, wl[f].D, wr[f].D, w[f-1].D, w[f].D)
		}
		if wl[f].S[0] != w[f-1].S[0] || wr[f].S[0] != w[f].S[0] {
			t.Fatalf("interface %d scalars not copied", f)
		}
	}
}
