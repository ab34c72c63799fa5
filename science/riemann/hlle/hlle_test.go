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

package hlle

import (
	"math"
	"testing"

	"github.com/astromodel/mhdbox"
)

const gamma = 5.0 / 3.0

func state(d, vx, vy, vz, p, bx, by, bz float64) (mhdbox.Cons1D, mhdbox.Prim1D) {
	w := mhdbox.Prim1D{D: d, Vx: vx, Vy: vy, Vz: vz, P: p, By: by, Bz: bz}
	u := mhdbox.Cons1D{
		D: d, Mx: d * vx, My: d * vy, Mz: d * vz,
		E:  p/(gamma-1) + 0.5*d*(vx*vx+vy*vy+vz*vz) + 0.5*(bx*bx+by*by+bz*bz),
		By: by, Bz: bz,
	}
	return u, w
}

// The flux of two identical states must be the physical flux of that
// state.
func TestConsistency(t *testing.T) {
	s := New(gamma)
	u, w := state(1.2, 0.3, -0.1, 0.2, 0.9, 0.5, -0.3, 0.1)
	var got, want mhdbox.Cons1D
	got.S = []float64{}
	s.Flux(&u, &u, &w, &w, 0.5, 0, &got)
	s.physicalFlux(&u, &w, 0.5, &want)

	if math.Abs(got.D-want.D) > 1e-14 || math.Abs(got.Mx-want.Mx) > 1e-14 ||
		math.Abs(got.E-want.E) > 1e-14 || math.Abs(got.By-want.By) > 1e-14 {
		t.Errorf("flux not consistent: got %+v, want %+v", got, want)
	}
}

// A supersonic left state must be passed through unmodified.
func TestSupersonicUpwinding(t *testing.T) {
	s := New(gamma)
	ul, wl := state(1.0, 5.0, 0, 0, 1.0, 0, 0, 0)
	ur, wr := state(0.5, 5.0, 0, 0, 0.8, 0, 0, 0)
	var got, want mhdbox.Cons1D
	s.Flux(&ul, &ur, &wl, &wr, 0, 0, &got)
	s.physicalFlux(&ul, &wl, 0, &want)

	if math.Abs(got.D-want.D) > 1e-13 || math.Abs(got.Mx-want.Mx) > 1e-13 ||
		math.Abs(got.E-want.E) > 1e-13 {
		t.Errorf("supersonic flux not upwinded: got %+v, want %+v", got, want)
	}
}

// With both states sharing a scalar concentration, the scalar flux is
// the mass flux times that concentration.
func TestScalarFluxProportional(t *testing.T) {
	s := New(gamma)
	ul, wl := state(1.0, 0.4, 0, 0, 1.0, 0, 0, 0)
	ur, wr := state(0.5, -0.2, 0, 0, 0.8, 0, 0, 0)
	const alpha = 0.3
	ul.S = []float64{alpha * ul.D}
	ur.S = []float64{alpha * ur.D}
	wl.S = []float64{alpha}
	wr.S = []float64{alpha}
	var got mhdbox.Cons1D
	got.S = make([]float64, 1)
	s.Flux(&ul, &ur, &wl, &wr, 0, 0, &got)

	if math.Abs(got.S[0]-alpha*got.D) > 1e-15 {
		t.Errorf("scalar flux %g, want %g", got.S[0], alpha*got.D)
	}
}

// The H-correction speed must only widen the signal bounds, never
// change a flux whose bounds already exceed it.
func TestEtahWidensBounds(t *testing.T) {
	s := New(gamma)
	ul, wl := state(1.0, 0.0, 0, 0, 1.0, 0, 0, 0)
	ur, wr := state(0.5, 0.0, 0, 0, 0.8, 0, 0, 0)
	var a, b mhdbox.Cons1D
	s.Flux(&ul, &ur, &wl, &wr, 0, 0.01, &a)
	s.Flux(&ul, &ur, &wl, &wr, 0, 0, &b)
	// The signal bounds are about -1.63 and +1.63, wider than etah.
	if a.D != b.D || a.Mx != b.Mx {
		t.Errorf("etah changed a flux whose bounds already exceed it")
	}
}
