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

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Totals holds domain-integrated conserved quantities (cell sums over the
// live zones; multiply by the cell volume for physical totals).
type Totals struct {
	Mass       float64
	M1, M2, M3 float64
	E          float64
	Scalars    []float64
}

// SumConserved integrates the conserved state over the live zones. Each
// row is reduced separately to keep the summation order independent of
// the grid decomposition.
func (g *Grid) SumConserved() Totals {
	t := Totals{Scalars: make([]float64, g.NScalars)}
	row := make([]float64, g.Nx1)
	sumRow := func(get func(u *ConsState) float64) float64 {
		total := 0.0
		for k := g.Ks; k <= g.Ke; k++ {
			for j := g.Js; j <= g.Je; j++ {
				for i := g.Is; i <= g.Ie; i++ {
					row[i-g.Is] = get(&g.U[k][j][i])
				}
				total += floats.Sum(row)
			}
		}
		return total
	}
	t.Mass = sumRow(func(u *ConsState) float64 { return u.D })
	t.M1 = sumRow(func(u *ConsState) float64 { return u.M1 })
	t.M2 = sumRow(func(u *ConsState) float64 { return u.M2 })
	t.M3 = sumRow(func(u *ConsState) float64 { return u.M3 })
	t.E = sumRow(func(u *ConsState) float64 { return u.E })
	for n := 0; n < g.NScalars; n++ {
		n := n
		t.Scalars[n] = sumRow(func(u *ConsState) float64 { return u.S[n] })
	}
	return t
}

// MaxDivB returns the largest magnitude of the discrete face-field
// divergence over the live zones. The constrained-transport update keeps
// this at round-off level for any initially divergence-free field.
func (g *Grid) MaxDivB() float64 {
	dx1i, dx2i, dx3i := 1.0/g.Dx1, 1.0/g.Dx2, 1.0/g.Dx3
	row := make([]float64, g.Nx1)
	maxdiv := 0.0
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				div := (g.B1i[k][j][i+1]-g.B1i[k][j][i])*dx1i +
					(g.B2i[k][j+1][i]-g.B2i[k][j][i])*dx2i +
					(g.B3i[k+1][j][i]-g.B3i[k][j][i])*dx3i
				row[i-g.Is] = math.Abs(div)
			}
			if m := floats.Max(row); m > maxdiv {
				maxdiv = m
			}
		}
	}
	return maxdiv
}

// MaxB returns the largest face-field magnitude over the live zones, used
// to normalize divergence diagnostics.
func (g *Grid) MaxB() float64 {
	maxb := 0.0
	for k := g.Ks; k <= g.Ke+1; k++ {
		for j := g.Js; j <= g.Je+1; j++ {
			for i := g.Is; i <= g.Ie+1; i++ {
				for _, b := range [3]float64{g.B1i[k][j][i], g.B2i[k][j][i], g.B3i[k][j][i]} {
					if a := math.Abs(b); a > maxb {
						maxb = a
					}
				}
			}
		}
	}
	return maxb
}

// MagneticEnergy integrates the cell-centered magnetic energy density
// over the live zones.
func (g *Grid) MagneticEnergy() float64 {
	row := make([]float64, g.Nx1)
	total := 0.0
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				u := &g.U[k][j][i]
				row[i-g.Is] = 0.5 * (u.B1c*u.B1c + u.B2c*u.B2c + u.B3c*u.B3c)
			}
			total += floats.Sum(row)
		}
	}
	return total * g.Dx1 * g.Dx2 * g.Dx3
}
