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

// GravPotFunc returns the fixed gravitational potential at a position.
// In a shearing-box run it supplies the tidal potential.
type GravPotFunc func(x1, x2, x3 float64) float64

// CoolingFunc returns the optically thin cooling rate (energy per volume
// per time) for the given density and pressure over an interval dt.
type CoolingFunc func(d, p, dt float64) float64

// RemapEyFunc computes the y-EMF remapped from the opposite radial
// boundary of a shearing box, filling out[k][j] for the boundary face.
type RemapEyFunc func(g *Grid, d *Domain, emf2 [][][]float64, out [][]float64)

// Config fixes the physics and feature set of an Integrator at
// construction time.
type Config struct {
	Gamma float64 // ratio of specific heats
	IsoCs float64 // isothermal sound speed, used when Barotropic

	MHD         bool // evolve magnetic fields
	Barotropic  bool // drop the energy equation
	SelfGravity bool // Phi-driven source terms and gravity stress fluxes
	HCorrection bool // multidimensional dissipation of Sanders et al. (1998)
	ShearingBox bool // rotating-frame Coriolis and tidal source terms
	Fargo       bool // orbital advection: azimuthal Coriolis coefficient Ω/2

	NScalars int // number of passive scalars

	Omega       float64 // rotation frequency of the shearing box
	FourPiG     float64 // 4πG for self-gravity
	GravMeanRho float64 // mean density subtracted in the Poisson solve

	StaticGravPot GravPotFunc // nil when no fixed potential
	Cooling       CoolingFunc // nil when no cooling
	RemapEyIx1    RemapEyFunc // shearing-box remap at the inner x1 boundary
	RemapEyOx1    RemapEyFunc // shearing-box remap at the outer x1 boundary
}

// Reconstructor produces left and right interface states from a pencil of
// primitive variables. Implementations must fill wl[f] and wr[f] for every
// interface f in [lo, hi+1], where wl[f] is reconstructed from cell f-1
// and wr[f] from cell f; w must be well-posed on [lo-2, hi+2] and is not
// modified. dt and dtodx allow time-centered reconstruction schemes.
type Reconstructor interface {
	LRStates(w []Prim1D, bxc []float64, dt, dtodx float64, lo, hi int, wl, wr []Prim1D)
}

// RiemannSolver computes the upwind flux through an interface separating
// states ul and ur (with primitive forms wl, wr) threaded by the parallel
// field bxi. etah is the H-correction dissipation speed (zero when the
// correction is disabled); solvers that cannot use it may ignore it. The
// result is written into flux, whose S slice is sized for the configured
// scalar count. Implementations must be conservative and consistent.
type RiemannSolver interface {
	Flux(ul, ur *Cons1D, wl, wr *Prim1D, bxi, etah float64, flux *Cons1D)
}
