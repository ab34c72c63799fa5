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

package plm

import (
	"math"
	"testing"

	"github.com/astromodel/mhdbox"
)

func pencil(n int, f func(i int) float64) []mhdbox.Prim1D {
	w := make([]mhdbox.Prim1D, n)
	for i := range w {
		w[i].D = f(i)
		w[i].P = 1.0
	}
	return w
}

func TestConstantStateExact(t *testing.T) {
	const n = 12
	w := pencil(n, func(int) float64 { return 2.5 })
	wl := make([]mhdbox.Prim1D, n)
	wr := make([]mhdbox.Prim1D, n)

	New().LRStates(w, nil, 0.1, 1.0, 3, 8, wl, wr)

	for f := 3; f <= 9; f++ {
		if wl[f].D != 2.5 || wr[f].D != 2.5 {
			t.Fatalf("constant state not reproduced at interface %d: %g, %g",
				f, wl[f].D, wr[f].D)
		}
	}
}

func TestLinearProfileExact(t *testing.T) {
	const n = 12
	w := pencil(n, func(i int) float64 { return 1.0 + 0.25*float64(i) })
	wl := make([]mhdbox.Prim1D, n)
	wr := make([]mhdbox.Prim1D, n)

	New().LRStates(w, nil, 0.1, 1.0, 3, 8, wl, wr)

	for f := 3; f <= 9; f++ {
		want := 1.0 + 0.25*(float64(f)-0.5)
		if math.Abs(wl[f].D-want) > 1e-14 || math.Abs(wr[f].D-want) > 1e-14 {
			t.Fatalf("linear profile not reproduced at interface %d: %g, %g, want %g",
				f, wl[f].D, wr[f].D, want)
		}
	}
}

func TestMonotone(t *testing.T) {
	const n = 12
	// A step with an overshoot-prone jump.
	w := pencil(n, func(i int) float64 {
		if i < 6 {
			return 1.0
		}
		return 0.1
	})
	wl := make([]mhdbox.Prim1D, n)
	wr := make([]mhdbox.Prim1D, n)

	New().LRStates(w, nil, 0.1, 1.0, 3, 8, wl, wr)

	for f := 3; f <= 9; f++ {
		lo, hi := w[f-1].D, w[f].D
		if lo > hi {
			lo, hi = hi, lo
		}
		if wl[f].D < lo-1e-14 || wl[f].D > hi+1e-14 ||
			wr[f].D < lo-1e-14 || wr[f].D > hi+1e-14 {
			t.Fatalf("interface %d states (%g, %g) outside neighbor range [%g, %g]",
				f, wl[f].D, wr[f].D, lo, hi)
		}
	}
}
