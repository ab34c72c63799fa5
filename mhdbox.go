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

// Package mhdbox implements a three-dimensional finite-volume integrator
// for ideal magnetohydrodynamics on a uniform Cartesian grid.
//
// The integrator advances the conserved cell state (mass density, momentum,
// total energy, cell-centered magnetic field, and passive scalars) together
// with face-centered magnetic fields by one time step using the
// directionally unsplit corner-transport-upwind (CTU) method of
// Colella (1990) combined with the constrained-transport (CT) scheme of
// Gardiner & Stone (2008), which keeps the discrete divergence of the
// face-centered field at round-off level. Optional physics — a fixed
// gravitational potential, self-gravity, optically thin cooling, and
// rotating-frame (shearing box) source terms — are folded into the update
// at the points required for second-order accuracy.
//
// Interface reconstruction and the Riemann solver are pluggable: see the
// Reconstructor and RiemannSolver interfaces and the implementations under
// science/reconstruct and science/riemann.
package mhdbox

// Version is the version of this software.
const Version = "0.3.1"
