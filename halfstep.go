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

// halfStepPredictor assembles cell-centered density, momenta, pressure,
// and EMFs at t + dt/2 from the first-pass fluxes and the half-step face
// fields. The half-step density and pressure feed the full-step gravity
// and cooling source terms; the half-step EMFs become the reference for
// the second corner-EMF construction.
func (in *Integrator) halfStepPredictor(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	q1 := 0.5 * g.Dt / g.Dx1
	q2 := 0.5 * g.Dt / g.Dx2
	q3 := 0.5 * g.Dt / g.Dx3

	needDhalf := c.MHD || c.StaticGravPot != nil || c.Cooling != nil || c.ShearingBox
	if !needDhalf {
		return
	}

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				in.dhalf[k][j][i] = g.U[k][j][i].D -
					q1*(in.x1Flux[k][j][i+1].D-in.x1Flux[k][j][i].D) -
					q2*(in.x2Flux[k][j+1][i].D-in.x2Flux[k][j][i].D) -
					q3*(in.x3Flux[k+1][j][i].D-in.x3Flux[k][j][i].D)
			}
		}
	}

	if !c.MHD && c.Cooling == nil {
		return
	}

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				u := &g.U[k][j][i]

				m1h := u.M1 -
					q1*(in.x1Flux[k][j][i+1].Mx-in.x1Flux[k][j][i].Mx) -
					q2*(in.x2Flux[k][j+1][i].Mz-in.x2Flux[k][j][i].Mz) -
					q3*(in.x3Flux[k+1][j][i].My-in.x3Flux[k][j][i].My)

				m2h := u.M2 -
					q1*(in.x1Flux[k][j][i+1].My-in.x1Flux[k][j][i].My) -
					q2*(in.x2Flux[k][j+1][i].Mx-in.x2Flux[k][j][i].Mx) -
					q3*(in.x3Flux[k+1][j][i].Mz-in.x3Flux[k][j][i].Mz)

				m3h := u.M3 -
					q1*(in.x1Flux[k][j][i+1].Mz-in.x1Flux[k][j][i].Mz) -
					q2*(in.x2Flux[k][j+1][i].My-in.x2Flux[k][j][i].My) -
					q3*(in.x3Flux[k+1][j][i].Mx-in.x3Flux[k][j][i].Mx)

				eh := 0.0
				if !c.Barotropic {
					eh = u.E -
						q1*(in.x1Flux[k][j][i+1].E-in.x1Flux[k][j][i].E) -
						q2*(in.x2Flux[k][j+1][i].E-in.x2Flux[k][j][i].E) -
						q3*(in.x3Flux[k+1][j][i].E-in.x3Flux[k][j][i].E)
				}

				if c.StaticGravPot != nil {
					x1, x2, x3 := g.CellCenter(i, j, k)
					phir := c.StaticGravPot(x1+0.5*g.Dx1, x2, x3)
					phil := c.StaticGravPot(x1-0.5*g.Dx1, x2, x3)
					m1h -= q1 * (phir - phil) * u.D

					phir = c.StaticGravPot(x1, x2+0.5*g.Dx2, x3)
					phil = c.StaticGravPot(x1, x2-0.5*g.Dx2, x3)
					m2h -= q2 * (phir - phil) * u.D

					phir = c.StaticGravPot(x1, x2, x3+0.5*g.Dx3)
					phil = c.StaticGravPot(x1, x2, x3-0.5*g.Dx3)
					m3h -= q3 * (phir - phil) * u.D
				}

				if c.SelfGravity {
					phir := 0.5 * (g.Phi[k][j][i] + g.Phi[k][j][i+1])
					phil := 0.5 * (g.Phi[k][j][i] + g.Phi[k][j][i-1])
					m1h -= q1 * (phir - phil) * u.D

					phir = 0.5 * (g.Phi[k][j][i] + g.Phi[k][j+1][i])
					phil = 0.5 * (g.Phi[k][j][i] + g.Phi[k][j-1][i])
					m2h -= q2 * (phir - phil) * u.D

					phir = 0.5 * (g.Phi[k][j][i] + g.Phi[k+1][j][i])
					phil = 0.5 * (g.Phi[k][j][i] + g.Phi[k-1][j][i])
					m3h -= q3 * (phir - phil) * u.D
				}

				// Coriolis terms; the tidal potential is already in
				// StaticGravPot above.
				if c.ShearingBox {
					m1h += g.Dt * c.Omega * u.M2
					if c.Fargo {
						m2h -= 0.25 * g.Dt * c.Omega * u.M1
					} else {
						m2h -= g.Dt * c.Omega * u.M1
					}
				}

				if !c.Barotropic {
					in.phalf[k][j][i] = eh - 0.5*(m1h*m1h+m2h*m2h+m3h*m3h)/in.dhalf[k][j][i]
				}

				if c.MHD {
					b1ch := 0.5 * (in.b1Face[k][j][i] + in.b1Face[k][j][i+1])
					b2ch := 0.5 * (in.b2Face[k][j][i] + in.b2Face[k][j+1][i])
					b3ch := 0.5 * (in.b3Face[k][j][i] + in.b3Face[k+1][j][i])
					in.emf1cc[k][j][i] = (b2ch*m3h - b3ch*m2h) / in.dhalf[k][j][i]
					in.emf2cc[k][j][i] = (b3ch*m1h - b1ch*m3h) / in.dhalf[k][j][i]
					in.emf3cc[k][j][i] = (b1ch*m2h - b2ch*m1h) / in.dhalf[k][j][i]
					if !c.Barotropic {
						in.phalf[k][j][i] -= 0.5 * (b1ch*b1ch + b2ch*b2ch + b3ch*b3ch)
					}
				}

				if !c.Barotropic {
					in.phalf[k][j][i] *= c.Gamma - 1.0
				}
			}
		}
	}
}
