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

// Nghost is the number of ghost-cell layers on each side of the grid.
const Nghost = 4

// ConsState holds the conserved variables of a single grid cell.
// The cell-centered magnetic field components are maintained as the
// arithmetic mean of the face-centered fields bracketing the cell.
type ConsState struct {
	D          float64 // mass density
	M1, M2, M3 float64 // momentum density
	E          float64 // total energy density (unused in barotropic mode)
	B1c        float64 // cell-centered magnetic field
	B2c        float64
	B3c        float64
	S          []float64 // passive scalar densities
}

// Grid is the uniform Cartesian mesh state advanced by the integrator.
// All three-dimensional arrays are indexed [k][j][i] and include Nghost
// ghost layers on every side; the live index ranges are [Is..Ie],
// [Js..Je], [Ks..Ke]. The face field B1i[k][j][i] lives on the lower-x1
// face of cell (k,j,i), and similarly for B2i and B3i.
type Grid struct {
	Nx1, Nx2, Nx3 int // live cells per direction
	Is, Ie        int
	Js, Je        int
	Ks, Ke        int

	Dx1, Dx2, Dx3          float64 // cell spacing
	X1Min, X2Min, X3Min    float64 // position of the lower domain edge
	Time, Dt               float64

	U             [][][]ConsState
	B1i, B2i, B3i [][][]float64

	// Phi is the gravitational potential from the self-gravity Poisson
	// solve; nil unless self-gravity is enabled.
	Phi [][][]float64

	// Mass fluxes through cell faces, saved each step for the
	// self-gravity flux correction applied outside the integrator.
	X1MassFlux, X2MassFlux, X3MassFlux [][][]float64

	NScalars int
}

// NewGrid allocates a grid of nx1 × nx2 × nx3 live cells with nscalars
// passive scalars per cell. The domain spans [x1min, x1min+nx1·dx1] and
// analogously in x2 and x3.
func NewGrid(nx1, nx2, nx3, nscalars int, dx1, dx2, dx3, x1min, x2min, x3min float64) *Grid {
	n1 := nx1 + 2*Nghost
	n2 := nx2 + 2*Nghost
	n3 := nx3 + 2*Nghost
	g := &Grid{
		Nx1: nx1, Nx2: nx2, Nx3: nx3,
		Is: Nghost, Ie: Nghost + nx1 - 1,
		Js: Nghost, Je: Nghost + nx2 - 1,
		Ks: Nghost, Ke: Nghost + nx3 - 1,
		Dx1: dx1, Dx2: dx2, Dx3: dx3,
		X1Min: x1min, X2Min: x2min, X3Min: x3min,
		NScalars: nscalars,
	}
	g.U = makeState3D(n3, n2, n1, nscalars)
	g.B1i = makeFloat3D(n3, n2, n1)
	g.B2i = makeFloat3D(n3, n2, n1)
	g.B3i = makeFloat3D(n3, n2, n1)
	return g
}

// EnableSelfGravity allocates the potential array and the persistent
// mass-flux arrays consumed by the external Poisson solve.
func (g *Grid) EnableSelfGravity() {
	n1 := g.Nx1 + 2*Nghost
	n2 := g.Nx2 + 2*Nghost
	n3 := g.Nx3 + 2*Nghost
	g.Phi = makeFloat3D(n3, n2, n1)
	g.X1MassFlux = makeFloat3D(n3, n2, n1)
	g.X2MassFlux = makeFloat3D(n3, n2, n1)
	g.X3MassFlux = makeFloat3D(n3, n2, n1)
}

// CellCenter returns the physical position of the center of cell (i,j,k).
func (g *Grid) CellCenter(i, j, k int) (x1, x2, x3 float64) {
	x1 = g.X1Min + (float64(i-g.Is)+0.5)*g.Dx1
	x2 = g.X2Min + (float64(j-g.Js)+0.5)*g.Dx2
	x3 = g.X3Min + (float64(k-g.Ks)+0.5)*g.Dx3
	return
}

// Domain describes the parallel decomposition the grid belongs to. A
// single-process run uses the zero value (one rank in each direction).
// The integrator consults it only for the shearing-box EMF remap at the
// radial domain boundaries.
type Domain struct {
	NGridX1, NGridX2, NGridX3 int // ranks per direction (0 means 1)
	MyIProc, MyJProc, MyKProc int // this rank's position
}

func (d *Domain) nGridX1() int {
	if d == nil || d.NGridX1 < 1 {
		return 1
	}
	return d.NGridX1
}

func makeFloat3D(n3, n2, n1 int) [][][]float64 {
	a := make([][][]float64, n3)
	for k := range a {
		a[k] = make([][]float64, n2)
		for j := range a[k] {
			a[k][j] = make([]float64, n1)
		}
	}
	return a
}

func makeFloat2D(n2, n1 int) [][]float64 {
	a := make([][]float64, n2)
	for j := range a {
		a[j] = make([]float64, n1)
	}
	return a
}

func makeState3D(n3, n2, n1, ns int) [][][]ConsState {
	a := make([][][]ConsState, n3)
	for k := range a {
		a[k] = make([][]ConsState, n2)
		for j := range a[k] {
			a[k][j] = make([]ConsState, n1)
			if ns > 0 {
				for i := range a[k][j] {
					a[k][j][i].S = make([]float64, ns)
				}
			}
		}
	}
	return a
}

func makeCons3D(n3, n2, n1, ns int) [][][]Cons1D {
	a := make([][][]Cons1D, n3)
	for k := range a {
		a[k] = make([][]Cons1D, n2)
		for j := range a[k] {
			a[k][j] = make([]Cons1D, n1)
			if ns > 0 {
				for i := range a[k][j] {
					a[k][j][i].S = make([]float64, ns)
				}
			}
		}
	}
	return a
}

func makeCons1D(n, ns int) []Cons1D {
	a := make([]Cons1D, n)
	if ns > 0 {
		for i := range a {
			a[i].S = make([]float64, ns)
		}
	}
	return a
}

func makePrim1D(n, ns int) []Prim1D {
	a := make([]Prim1D, n)
	if ns > 0 {
		for i := range a {
			a[i].S = make([]float64, ns)
		}
	}
	return a
}
