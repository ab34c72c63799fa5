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

// conservativeUpdate applies the flux-divergence update of each direction
// to the cell-centered state, with the component permutation of each
// sweep, then resets the cell-centered field to the average of the
// bracketing face fields.
func (in *Integrator) conservativeUpdate(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	dtodx1 := g.Dt / g.Dx1
	dtodx2 := g.Dt / g.Dx2
	dtodx3 := g.Dt / g.Dx3

	// x1-flux divergence.
	for k := ks; k <= ke; k++ {
		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				u := &g.U[k][j][i]
				u.D -= dtodx1 * (in.x1Flux[k][j][i+1].D - in.x1Flux[k][j][i].D)
				u.M1 -= dtodx1 * (in.x1Flux[k][j][i+1].Mx - in.x1Flux[k][j][i].Mx)
				u.M2 -= dtodx1 * (in.x1Flux[k][j][i+1].My - in.x1Flux[k][j][i].My)
				u.M3 -= dtodx1 * (in.x1Flux[k][j][i+1].Mz - in.x1Flux[k][j][i].Mz)
				if !c.Barotropic {
					u.E -= dtodx1 * (in.x1Flux[k][j][i+1].E - in.x1Flux[k][j][i].E)
				}
				for n := 0; n < c.NScalars; n++ {
					u.S[n] -= dtodx1 * (in.x1Flux[k][j][i+1].S[n] - in.x1Flux[k][j][i].S[n])
				}
			}
		}
	}

	// x2-flux divergence.
	for k := ks; k <= ke; k++ {
		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				u := &g.U[k][j][i]
				u.D -= dtodx2 * (in.x2Flux[k][j+1][i].D - in.x2Flux[k][j][i].D)
				u.M1 -= dtodx2 * (in.x2Flux[k][j+1][i].Mz - in.x2Flux[k][j][i].Mz)
				u.M2 -= dtodx2 * (in.x2Flux[k][j+1][i].Mx - in.x2Flux[k][j][i].Mx)
				u.M3 -= dtodx2 * (in.x2Flux[k][j+1][i].My - in.x2Flux[k][j][i].My)
				if !c.Barotropic {
					u.E -= dtodx2 * (in.x2Flux[k][j+1][i].E - in.x2Flux[k][j][i].E)
				}
				for n := 0; n < c.NScalars; n++ {
					u.S[n] -= dtodx2 * (in.x2Flux[k][j+1][i].S[n] - in.x2Flux[k][j][i].S[n])
				}
			}
		}
	}

	// x3-flux divergence.
	for k := ks; k <= ke; k++ {
		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				u := &g.U[k][j][i]
				u.D -= dtodx3 * (in.x3Flux[k+1][j][i].D - in.x3Flux[k][j][i].D)
				u.M1 -= dtodx3 * (in.x3Flux[k+1][j][i].My - in.x3Flux[k][j][i].My)
				u.M2 -= dtodx3 * (in.x3Flux[k+1][j][i].Mz - in.x3Flux[k][j][i].Mz)
				u.M3 -= dtodx3 * (in.x3Flux[k+1][j][i].Mx - in.x3Flux[k][j][i].Mx)
				if !c.Barotropic {
					u.E -= dtodx3 * (in.x3Flux[k+1][j][i].E - in.x3Flux[k][j][i].E)
				}
				for n := 0; n < c.NScalars; n++ {
					u.S[n] -= dtodx3 * (in.x3Flux[k+1][j][i].S[n] - in.x3Flux[k][j][i].S[n])
				}
			}
		}
	}

	// Cell-centered field from the updated face fields.
	if c.MHD {
		for k := ks; k <= ke; k++ {
			for j := js; j <= je; j++ {
				for i := is; i <= ie; i++ {
					u := &g.U[k][j][i]
					u.B1c = 0.5 * (g.B1i[k][j][i] + g.B1i[k][j][i+1])
					u.B2c = 0.5 * (g.B2i[k][j][i] + g.B2i[k][j+1][i])
					u.B3c = 0.5 * (g.B3i[k][j][i] + g.B3i[k+1][j][i])
				}
			}
		}
	}
}
