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

// Package hlle implements the HLLE approximate Riemann solver of Harten,
// Lax & van Leer (1983), with signal-speed bounds taken directly as the
// extremes of the left and right fast-magnetosonic speeds, for adiabatic or barotropic hydrodynamics and MHD. It is positively
// conservative but does not resolve contact, Alfven, or slow
// discontinuities.
package hlle

import (
	"math"

	"github.com/astromodel/mhdbox"
)

// Solver fulfils the github.com/astromodel/mhdbox.RiemannSolver
// interface.
type Solver struct {
	Gamma      float64
	IsoCs      float64 // isothermal sound speed, used when Barotropic
	Barotropic bool
}

// New returns an adiabatic HLLE solver.
func New(gamma float64) *Solver { return &Solver{Gamma: gamma} }

// Flux computes the HLLE flux through the interface. The H-correction
// speed etah widens the signal-speed bounds, which for an HLL-type solver
// adds the multidimensional dissipation directly.
func (s *Solver) Flux(ul, ur *mhdbox.Cons1D, wl, wr *mhdbox.Prim1D,
	bxi, etah float64, flux *mhdbox.Cons1D) {

	cfl := s.cfast(wl, bxi)
	cfr := s.cfast(wr, bxi)

	sl := wl.Vx - cfl
	if v := wr.Vx - cfr; v < sl {
		sl = v
	}
	sr := wr.Vx + cfr
	if v := wl.Vx + cfl; v > sr {
		sr = v
	}
	if etah > 0 {
		if -etah < sl {
			sl = -etah
		}
		if etah > sr {
			sr = etah
		}
	}

	bm := math.Min(sl, 0.0)
	bp := math.Max(sr, 0.0)

	var fl, fr mhdbox.Cons1D
	fl.S = make([]float64, len(flux.S))
	fr.S = make([]float64, len(flux.S))
	s.physicalFlux(ul, wl, bxi, &fl)
	s.physicalFlux(ur, wr, bxi, &fr)

	width := bp - bm
	if width == 0.0 {
		// Static degenerate interface; the two fluxes coincide.
		*flux = fl
		flux.S = append([]float64(nil), fl.S...)
		return
	}
	wi := 1.0 / width

	flux.D = (bp*fl.D - bm*fr.D + bp*bm*(ur.D-ul.D)) * wi
	flux.Mx = (bp*fl.Mx - bm*fr.Mx + bp*bm*(ur.Mx-ul.Mx)) * wi
	flux.My = (bp*fl.My - bm*fr.My + bp*bm*(ur.My-ul.My)) * wi
	flux.Mz = (bp*fl.Mz - bm*fr.Mz + bp*bm*(ur.Mz-ul.Mz)) * wi
	if !s.Barotropic {
		flux.E = (bp*fl.E - bm*fr.E + bp*bm*(ur.E-ul.E)) * wi
	}
	flux.By = (bp*fl.By - bm*fr.By + bp*bm*(ur.By-ul.By)) * wi
	flux.Bz = (bp*fl.Bz - bm*fr.Bz + bp*bm*(ur.Bz-ul.Bz)) * wi
	for n := range flux.S {
		flux.S[n] = (bp*fl.S[n] - bm*fr.S[n] + bp*bm*(ur.S[n]-ul.S[n])) * wi
	}
}

// physicalFlux evaluates the ideal MHD flux of state u along the pencil.
func (s *Solver) physicalFlux(u *mhdbox.Cons1D, w *mhdbox.Prim1D, bx float64, f *mhdbox.Cons1D) {
	ptot := w.P + 0.5*(bx*bx+u.By*u.By+u.Bz*u.Bz)

	f.D = u.Mx
	f.Mx = u.Mx*w.Vx + ptot - bx*bx
	f.My = u.My*w.Vx - bx*u.By
	f.Mz = u.Mz*w.Vx - bx*u.Bz
	if !s.Barotropic {
		f.E = (u.E+ptot)*w.Vx - bx*(bx*w.Vx+u.By*w.Vy+u.Bz*w.Vz)
	}
	f.By = u.By*w.Vx - bx*w.Vy
	f.Bz = u.Bz*w.Vx - bx*w.Vz
	for n := range f.S {
		f.S[n] = u.S[n] * w.Vx
	}
}

// cfast returns the fast magnetosonic speed of the primitive state.
func (s *Solver) cfast(w *mhdbox.Prim1D, bx float64) float64 {
	var asq float64
	if s.Barotropic {
		asq = s.IsoCs * s.IsoCs
	} else {
		asq = s.Gamma * w.P / w.D
	}
	btsq := (w.By*w.By + w.Bz*w.Bz) / w.D
	basq := bx * bx / w.D
	if btsq == 0 && basq == 0 {
		return math.Sqrt(asq)
	}
	qsq := basq + btsq + asq
	tmp := basq + btsq - asq
	return math.Sqrt(0.5 * (qsq + math.Sqrt(tmp*tmp+4.0*asq*btsq)))
}
