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

// Corner EMFs are built from the face fluxes of the transverse magnetic
// field components and cell-centered reference EMFs, upwinded on the sign
// of the mass flux through the adjacent face (Gardiner & Stone 2008). The
// face-flux components encode the edge EMFs as
//
//	x1Flux.By = -E3   x1Flux.Bz = +E2
//	x2Flux.By = -E1   x2Flux.Bz = +E3
//	x3Flux.By = -E2   x3Flux.Bz = +E1

// cellCenteredEMF evaluates the reference EMFs (B × v) from the
// cell-centered state at time n.
func (in *Integrator) cellCenteredEMF(g *Grid) {
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke

	for k := ks - 2; k <= ke+2; k++ {
		for j := js - 2; j <= je+2; j++ {
			for i := is - 2; i <= ie+2; i++ {
				u := &g.U[k][j][i]
				di := 1.0 / u.D
				in.emf1cc[k][j][i] = (u.B2c*u.M3 - u.B3c*u.M2) * di
				in.emf2cc[k][j][i] = (u.B3c*u.M1 - u.B1c*u.M3) * di
				in.emf3cc[k][j][i] = (u.B1c*u.M2 - u.B2c*u.M1) * di
			}
		}
	}
}

// cornerEMF1 integrates the x1-directed edge EMF to cell corners.
func (in *Integrator) cornerEMF1(g *Grid) {
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	var de1L2, de1R2, de1L3, de1R3 float64

	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 2; i <= ie+2; i++ {
				if in.x2Flux[k-1][j][i].D > 0.0 {
					de1L3 = in.x3Flux[k][j-1][i].Bz - in.emf1cc[k-1][j-1][i]
				} else if in.x2Flux[k-1][j][i].D < 0.0 {
					de1L3 = in.x3Flux[k][j][i].Bz - in.emf1cc[k-1][j][i]
				} else {
					de1L3 = 0.5 * (in.x3Flux[k][j-1][i].Bz - in.emf1cc[k-1][j-1][i] +
						in.x3Flux[k][j][i].Bz - in.emf1cc[k-1][j][i])
				}

				if in.x2Flux[k][j][i].D > 0.0 {
					de1R3 = in.x3Flux[k][j-1][i].Bz - in.emf1cc[k][j-1][i]
				} else if in.x2Flux[k][j][i].D < 0.0 {
					de1R3 = in.x3Flux[k][j][i].Bz - in.emf1cc[k][j][i]
				} else {
					de1R3 = 0.5 * (in.x3Flux[k][j-1][i].Bz - in.emf1cc[k][j-1][i] +
						in.x3Flux[k][j][i].Bz - in.emf1cc[k][j][i])
				}

				if in.x3Flux[k][j-1][i].D > 0.0 {
					de1L2 = -in.x2Flux[k-1][j][i].By - in.emf1cc[k-1][j-1][i]
				} else if in.x3Flux[k][j-1][i].D < 0.0 {
					de1L2 = -in.x2Flux[k][j][i].By - in.emf1cc[k][j-1][i]
				} else {
					de1L2 = 0.5 * (-in.x2Flux[k-1][j][i].By - in.emf1cc[k-1][j-1][i] -
						in.x2Flux[k][j][i].By - in.emf1cc[k][j-1][i])
				}

				if in.x3Flux[k][j][i].D > 0.0 {
					de1R2 = -in.x2Flux[k-1][j][i].By - in.emf1cc[k-1][j][i]
				} else if in.x3Flux[k][j][i].D < 0.0 {
					de1R2 = -in.x2Flux[k][j][i].By - in.emf1cc[k][j][i]
				} else {
					de1R2 = 0.5 * (-in.x2Flux[k-1][j][i].By - in.emf1cc[k-1][j][i] -
						in.x2Flux[k][j][i].By - in.emf1cc[k][j][i])
				}

				in.emf1[k][j][i] = 0.25 * (in.x3Flux[k][j][i].Bz + in.x3Flux[k][j-1][i].Bz -
					in.x2Flux[k][j][i].By - in.x2Flux[k-1][j][i].By +
					de1L2 + de1R2 + de1L3 + de1R3)
			}
		}
	}
}

// cornerEMF2 integrates the x2-directed edge EMF to cell corners.
func (in *Integrator) cornerEMF2(g *Grid) {
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	var de2L1, de2R1, de2L3, de2R3 float64

	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 2; j <= je+2; j++ {
			for i := is - 1; i <= ie+2; i++ {
				if in.x1Flux[k-1][j][i].D > 0.0 {
					de2L3 = -in.x3Flux[k][j][i-1].By - in.emf2cc[k-1][j][i-1]
				} else if in.x1Flux[k-1][j][i].D < 0.0 {
					de2L3 = -in.x3Flux[k][j][i].By - in.emf2cc[k-1][j][i]
				} else {
					de2L3 = 0.5 * (-in.x3Flux[k][j][i-1].By - in.emf2cc[k-1][j][i-1] -
						in.x3Flux[k][j][i].By - in.emf2cc[k-1][j][i])
				}

				if in.x1Flux[k][j][i].D > 0.0 {
					de2R3 = -in.x3Flux[k][j][i-1].By - in.emf2cc[k][j][i-1]
				} else if in.x1Flux[k][j][i].D < 0.0 {
					de2R3 = -in.x3Flux[k][j][i].By - in.emf2cc[k][j][i]
				} else {
					de2R3 = 0.5 * (-in.x3Flux[k][j][i-1].By - in.emf2cc[k][j][i-1] -
						in.x3Flux[k][j][i].By - in.emf2cc[k][j][i])
				}

				if in.x3Flux[k][j][i-1].D > 0.0 {
					de2L1 = in.x1Flux[k-1][j][i].Bz - in.emf2cc[k-1][j][i-1]
				} else if in.x3Flux[k][j][i-1].D < 0.0 {
					de2L1 = in.x1Flux[k][j][i].Bz - in.emf2cc[k][j][i-1]
				} else {
					de2L1 = 0.5 * (in.x1Flux[k-1][j][i].Bz - in.emf2cc[k-1][j][i-1] +
						in.x1Flux[k][j][i].Bz - in.emf2cc[k][j][i-1])
				}

				if in.x3Flux[k][j][i].D > 0.0 {
					de2R1 = in.x1Flux[k-1][j][i].Bz - in.emf2cc[k-1][j][i]
				} else if in.x3Flux[k][j][i].D < 0.0 {
					de2R1 = in.x1Flux[k][j][i].Bz - in.emf2cc[k][j][i]
				} else {
					de2R1 = 0.5 * (in.x1Flux[k-1][j][i].Bz - in.emf2cc[k-1][j][i] +
						in.x1Flux[k][j][i].Bz - in.emf2cc[k][j][i])
				}

				in.emf2[k][j][i] = 0.25 * (in.x1Flux[k][j][i].Bz + in.x1Flux[k-1][j][i].Bz -
					in.x3Flux[k][j][i].By - in.x3Flux[k][j][i-1].By +
					de2L1 + de2R1 + de2L3 + de2R3)
			}
		}
	}
}

// cornerEMF3 integrates the x3-directed edge EMF to cell corners.
func (in *Integrator) cornerEMF3(g *Grid) {
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	var de3L1, de3R1, de3L2, de3R2 float64

	for k := ks - 2; k <= ke+2; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 1; i <= ie+2; i++ {
				if in.x1Flux[k][j-1][i].D > 0.0 {
					de3L2 = in.x2Flux[k][j][i-1].Bz - in.emf3cc[k][j-1][i-1]
				} else if in.x1Flux[k][j-1][i].D < 0.0 {
					de3L2 = in.x2Flux[k][j][i].Bz - in.emf3cc[k][j-1][i]
				} else {
					de3L2 = 0.5 * (in.x2Flux[k][j][i-1].Bz - in.emf3cc[k][j-1][i-1] +
						in.x2Flux[k][j][i].Bz - in.emf3cc[k][j-1][i])
				}

				if in.x1Flux[k][j][i].D > 0.0 {
					de3R2 = in.x2Flux[k][j][i-1].Bz - in.emf3cc[k][j][i-1]
				} else if in.x1Flux[k][j][i].D < 0.0 {
					de3R2 = in.x2Flux[k][j][i].Bz - in.emf3cc[k][j][i]
				} else {
					de3R2 = 0.5 * (in.x2Flux[k][j][i-1].Bz - in.emf3cc[k][j][i-1] +
						in.x2Flux[k][j][i].Bz - in.emf3cc[k][j][i])
				}

				if in.x2Flux[k][j][i-1].D > 0.0 {
					de3L1 = -in.x1Flux[k][j-1][i].By - in.emf3cc[k][j-1][i-1]
				} else if in.x2Flux[k][j][i-1].D < 0.0 {
					de3L1 = -in.x1Flux[k][j][i].By - in.emf3cc[k][j][i-1]
				} else {
					de3L1 = 0.5 * (-in.x1Flux[k][j-1][i].By - in.emf3cc[k][j-1][i-1] -
						in.x1Flux[k][j][i].By - in.emf3cc[k][j][i-1])
				}

				if in.x2Flux[k][j][i].D > 0.0 {
					de3R1 = -in.x1Flux[k][j-1][i].By - in.emf3cc[k][j-1][i]
				} else if in.x2Flux[k][j][i].D < 0.0 {
					de3R1 = -in.x1Flux[k][j][i].By - in.emf3cc[k][j][i]
				} else {
					de3R1 = 0.5 * (-in.x1Flux[k][j-1][i].By - in.emf3cc[k][j-1][i] -
						in.x1Flux[k][j][i].By - in.emf3cc[k][j][i])
				}

				in.emf3[k][j][i] = 0.25 * (in.x2Flux[k][j][i-1].Bz + in.x2Flux[k][j][i].Bz -
					in.x1Flux[k][j-1][i].By - in.x1Flux[k][j][i].By +
					de3L1 + de3R1 + de3L2 + de3R2)
			}
		}
	}
}

// halfStepFaceFields advances the scratch face fields by dt/2 using the
// CT stencil, over the interior plus the one ghost layer needed by the
// transverse corrections.
func (in *Integrator) halfStepFaceFields(g *Grid) {
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	q1 := 0.5 * g.Dt / g.Dx1
	q2 := 0.5 * g.Dt / g.Dx2
	q3 := 0.5 * g.Dt / g.Dx3

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				in.b1Face[k][j][i] += q3*(in.emf2[k+1][j][i]-in.emf2[k][j][i]) -
					q2*(in.emf3[k][j+1][i]-in.emf3[k][j][i])
				in.b2Face[k][j][i] += q1*(in.emf3[k][j][i+1]-in.emf3[k][j][i]) -
					q3*(in.emf1[k+1][j][i]-in.emf1[k][j][i])
				in.b3Face[k][j][i] += q2*(in.emf1[k][j+1][i]-in.emf1[k][j][i]) -
					q1*(in.emf2[k][j][i+1]-in.emf2[k][j][i])
			}
			in.b1Face[k][j][ie+2] += q3*(in.emf2[k+1][j][ie+2]-in.emf2[k][j][ie+2]) -
				q2*(in.emf3[k][j+1][ie+2]-in.emf3[k][j][ie+2])
		}
		for i := is - 1; i <= ie+1; i++ {
			in.b2Face[k][je+2][i] += q1*(in.emf3[k][je+2][i+1]-in.emf3[k][je+2][i]) -
				q3*(in.emf1[k+1][je+2][i]-in.emf1[k][je+2][i])
		}
	}
	for j := js - 1; j <= je+1; j++ {
		for i := is - 1; i <= ie+1; i++ {
			in.b3Face[ke+2][j][i] += q2*(in.emf1[ke+2][j+1][i]-in.emf1[ke+2][j][i]) -
				q1*(in.emf2[ke+2][j][i+1]-in.emf2[ke+2][j][i])
		}
	}
}

// remapEy averages the x2-EMF at the radial boundary faces of a shearing
// box with the value remapped from the opposite side of the domain, so
// that the net vertical flux is conserved across the sheared boundary.
func (in *Integrator) remapEy(g *Grid, d *Domain) {
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	myIProc := 0
	if d != nil {
		myIProc = d.MyIProc
	}

	if myIProc == 0 && in.cfg.RemapEyIx1 != nil {
		in.cfg.RemapEyIx1(g, d, in.emf2, in.remapEyIib)
		for k := ks; k <= ke+1; k++ {
			for j := js; j <= je; j++ {
				in.emf2[k][j][is] = 0.5 * (in.emf2[k][j][is] + in.remapEyIib[k][j])
			}
		}
	}
	if myIProc == d.nGridX1()-1 && in.cfg.RemapEyOx1 != nil {
		in.cfg.RemapEyOx1(g, d, in.emf2, in.remapEyOib)
		for k := ks; k <= ke+1; k++ {
			for j := js; j <= je; j++ {
				in.emf2[k][j][ie+1] = 0.5 * (in.emf2[k][j][ie+1] + in.remapEyOib[k][j])
			}
		}
	}
}

// fullStepFaceFields applies the CT stencil with the full dt to the
// grid's face fields.
func (in *Integrator) fullStepFaceFields(g *Grid) {
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	dtodx1 := g.Dt / g.Dx1
	dtodx2 := g.Dt / g.Dx2
	dtodx3 := g.Dt / g.Dx3

	for k := ks; k <= ke; k++ {
		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				g.B1i[k][j][i] += dtodx3*(in.emf2[k+1][j][i]-in.emf2[k][j][i]) -
					dtodx2*(in.emf3[k][j+1][i]-in.emf3[k][j][i])
				g.B2i[k][j][i] += dtodx1*(in.emf3[k][j][i+1]-in.emf3[k][j][i]) -
					dtodx3*(in.emf1[k+1][j][i]-in.emf1[k][j][i])
				g.B3i[k][j][i] += dtodx2*(in.emf1[k][j+1][i]-in.emf1[k][j][i]) -
					dtodx1*(in.emf2[k][j][i+1]-in.emf2[k][j][i])
			}
			g.B1i[k][j][ie+1] += dtodx3*(in.emf2[k+1][j][ie+1]-in.emf2[k][j][ie+1]) -
				dtodx2*(in.emf3[k][j+1][ie+1]-in.emf3[k][j][ie+1])
		}
		for i := is; i <= ie; i++ {
			g.B2i[k][je+1][i] += dtodx1*(in.emf3[k][je+1][i+1]-in.emf3[k][je+1][i]) -
				dtodx3*(in.emf1[k+1][je+1][i]-in.emf1[k][je+1][i])
		}
	}
	for j := js; j <= je; j++ {
		for i := is; i <= ie; i++ {
			g.B3i[ke+1][j][i] += dtodx2*(in.emf1[ke+1][j+1][i]-in.emf1[ke+1][j][i]) -
				dtodx1*(in.emf2[ke+1][j][i+1]-in.emf2[ke+1][j][i])
		}
	}
}
