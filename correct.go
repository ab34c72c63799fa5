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

// The transverse corrections subtract half-step flux gradients of the two
// transverse directions from every interface state. Because a directional
// flux carries pencil-permuted components, applying an x2-sweep flux to an
// x1-face maps (x,y,z) on the right-hand side to (z,x,y) on the left, and
// an x3-sweep flux maps to (y,z,x); the analogous cyclic maps hold on the
// other faces. Under MHD the transverse field components are corrected
// with averaged corner EMFs, and per-face source terms restore the terms
// proportional to the parallel field derivative, min-mod limited as in
// Gardiner & Stone (2007). Gravity corrections use mass-flux-weighted
// potential differences for the energy so total energy stays conservative
// to round-off.

// correctX1 corrects the x1-interface states with x2- and x3-flux
// gradients and the per-face source terms.
func (in *Integrator) correctX1(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	dx1i, dx2i, dx3i := 1.0/g.Dx1, 1.0/g.Dx2, 1.0/g.Dx3
	hdt := 0.5 * g.Dt
	q2 := 0.5 * g.Dt / g.Dx2
	q3 := 0.5 * g.Dt / g.Dx3

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+2; i++ {
				ul := &in.ulX1[k][j][i]
				ur := &in.urX1[k][j][i]

				// x2-flux gradients: (x,y,z) on RHS -> (z,x,y) on LHS.
				ul.D -= q2 * (in.x2Flux[k][j+1][i-1].D - in.x2Flux[k][j][i-1].D)
				ul.Mx -= q2 * (in.x2Flux[k][j+1][i-1].Mz - in.x2Flux[k][j][i-1].Mz)
				ul.My -= q2 * (in.x2Flux[k][j+1][i-1].Mx - in.x2Flux[k][j][i-1].Mx)
				ul.Mz -= q2 * (in.x2Flux[k][j+1][i-1].My - in.x2Flux[k][j][i-1].My)
				if !c.Barotropic {
					ul.E -= q2 * (in.x2Flux[k][j+1][i-1].E - in.x2Flux[k][j][i-1].E)
				}
				if c.MHD {
					ul.Bz += q2 * 0.5 * ((in.emf1[k][j+1][i-1] - in.emf1[k][j][i-1]) +
						(in.emf1[k+1][j+1][i-1] - in.emf1[k+1][j][i-1]))
				}

				ur.D -= q2 * (in.x2Flux[k][j+1][i].D - in.x2Flux[k][j][i].D)
				ur.Mx -= q2 * (in.x2Flux[k][j+1][i].Mz - in.x2Flux[k][j][i].Mz)
				ur.My -= q2 * (in.x2Flux[k][j+1][i].Mx - in.x2Flux[k][j][i].Mx)
				ur.Mz -= q2 * (in.x2Flux[k][j+1][i].My - in.x2Flux[k][j][i].My)
				if !c.Barotropic {
					ur.E -= q2 * (in.x2Flux[k][j+1][i].E - in.x2Flux[k][j][i].E)
				}
				if c.MHD {
					ur.Bz += q2 * 0.5 * ((in.emf1[k][j+1][i] - in.emf1[k][j][i]) +
						(in.emf1[k+1][j+1][i] - in.emf1[k+1][j][i]))
				}
				for n := 0; n < c.NScalars; n++ {
					ul.S[n] -= q2 * (in.x2Flux[k][j+1][i-1].S[n] - in.x2Flux[k][j][i-1].S[n])
					ur.S[n] -= q2 * (in.x2Flux[k][j+1][i].S[n] - in.x2Flux[k][j][i].S[n])
				}

				// x3-flux gradients: (x,y,z) on RHS -> (y,z,x) on LHS.
				ul.D -= q3 * (in.x3Flux[k+1][j][i-1].D - in.x3Flux[k][j][i-1].D)
				ul.Mx -= q3 * (in.x3Flux[k+1][j][i-1].My - in.x3Flux[k][j][i-1].My)
				ul.My -= q3 * (in.x3Flux[k+1][j][i-1].Mz - in.x3Flux[k][j][i-1].Mz)
				ul.Mz -= q3 * (in.x3Flux[k+1][j][i-1].Mx - in.x3Flux[k][j][i-1].Mx)
				if !c.Barotropic {
					ul.E -= q3 * (in.x3Flux[k+1][j][i-1].E - in.x3Flux[k][j][i-1].E)
				}
				if c.MHD {
					ul.By -= q3 * 0.5 * ((in.emf1[k+1][j][i-1] - in.emf1[k][j][i-1]) +
						(in.emf1[k+1][j+1][i-1] - in.emf1[k][j+1][i-1]))
				}

				ur.D -= q3 * (in.x3Flux[k+1][j][i].D - in.x3Flux[k][j][i].D)
				ur.Mx -= q3 * (in.x3Flux[k+1][j][i].My - in.x3Flux[k][j][i].My)
				ur.My -= q3 * (in.x3Flux[k+1][j][i].Mz - in.x3Flux[k][j][i].Mz)
				ur.Mz -= q3 * (in.x3Flux[k+1][j][i].Mx - in.x3Flux[k][j][i].Mx)
				if !c.Barotropic {
					ur.E -= q3 * (in.x3Flux[k+1][j][i].E - in.x3Flux[k][j][i].E)
				}
				if c.MHD {
					ur.By -= q3 * 0.5 * ((in.emf1[k+1][j][i] - in.emf1[k][j][i]) +
						(in.emf1[k+1][j+1][i] - in.emf1[k][j+1][i]))
				}
				for n := 0; n < c.NScalars; n++ {
					ul.S[n] -= q3 * (in.x3Flux[k+1][j][i-1].S[n] - in.x3Flux[k][j][i-1].S[n])
					ur.S[n] -= q3 * (in.x3Flux[k+1][j][i].S[n] - in.x3Flux[k][j][i].S[n])
				}
			}
		}
	}

	// MHD source terms from the transverse flux gradients.
	if c.MHD {
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+2; i++ {
					db1 := (g.B1i[k][j][i] - g.B1i[k][j][i-1]) * dx1i
					db2 := (g.B2i[k][j+1][i-1] - g.B2i[k][j][i-1]) * dx2i
					db3 := (g.B3i[k+1][j][i-1] - g.B3i[k][j][i-1]) * dx3i
					u := &g.U[k][j][i-1]
					b1, b2, b3 := u.B1c, u.B2c, u.B3c
					v2 := u.M2 / u.D
					v3 := u.M3 / u.D
					mdb2 := minModOpposed(db1, db2)
					mdb3 := minModOpposed(db1, db3)

					ul := &in.ulX1[k][j][i]
					ul.Mx += hdt * b1 * db1
					ul.My += hdt * b2 * db1
					ul.Mz += hdt * b3 * db1
					ul.By += hdt * v2 * (-mdb3)
					ul.Bz += hdt * v3 * (-mdb2)
					if !c.Barotropic {
						ul.E += hdt * (b2*v2*(-mdb3) + b3*v3*(-mdb2))
					}

					db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) * dx1i
					db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) * dx2i
					db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) * dx3i
					u = &g.U[k][j][i]
					b1, b2, b3 = u.B1c, u.B2c, u.B3c
					v2 = u.M2 / u.D
					v3 = u.M3 / u.D
					mdb2 = minModOpposed(db1, db2)
					mdb3 = minModOpposed(db1, db3)

					ur := &in.urX1[k][j][i]
					ur.Mx += hdt * b1 * db1
					ur.My += hdt * b2 * db1
					ur.Mz += hdt * b3 * db1
					ur.By += hdt * v2 * (-mdb3)
					ur.Bz += hdt * v3 * (-mdb2)
					if !c.Barotropic {
						ur.E += hdt * (b2*v2*(-mdb3) + b3*v3*(-mdb2))
					}
				}
			}
		}
	}

	// Static-potential source terms from the x2- and x3-flux gradients.
	if c.StaticGravPot != nil {
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+2; i++ {
					x1, x2, x3 := g.CellCenter(i, j, k)
					phic := c.StaticGravPot(x1, x2, x3)
					phir := c.StaticGravPot(x1, x2+0.5*g.Dx2, x3)
					phil := c.StaticGravPot(x1, x2-0.5*g.Dx2, x3)

					ur := &in.urX1[k][j][i]
					ur.My -= q2 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q2 * (in.x2Flux[k][j][i].D*(phic-phil) +
							in.x2Flux[k][j+1][i].D*(phir-phic))
					}

					phir = c.StaticGravPot(x1, x2, x3+0.5*g.Dx3)
					phil = c.StaticGravPot(x1, x2, x3-0.5*g.Dx3)

					ur.Mz -= q3 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q3 * (in.x3Flux[k][j][i].D*(phic-phil) +
							in.x3Flux[k+1][j][i].D*(phir-phic))
					}

					phic = c.StaticGravPot(x1-g.Dx1, x2, x3)
					phir = c.StaticGravPot(x1-g.Dx1, x2+0.5*g.Dx2, x3)
					phil = c.StaticGravPot(x1-g.Dx1, x2-0.5*g.Dx2, x3)

					ul := &in.ulX1[k][j][i]
					ul.My -= q2 * (phir - phil) * g.U[k][j][i-1].D
					if !c.Barotropic {
						ul.E -= q2 * (in.x2Flux[k][j][i-1].D*(phic-phil) +
							in.x2Flux[k][j+1][i-1].D*(phir-phic))
					}

					phir = c.StaticGravPot(x1-g.Dx1, x2, x3+0.5*g.Dx3)
					phil = c.StaticGravPot(x1-g.Dx1, x2, x3-0.5*g.Dx3)

					ul.Mz -= q3 * (phir - phil) * g.U[k][j][i-1].D
					if !c.Barotropic {
						ul.E -= q3 * (in.x3Flux[k][j][i-1].D*(phic-phil) +
							in.x3Flux[k+1][j][i-1].D*(phir-phic))
					}
				}
			}
		}
	}

	// Self-gravity source terms from the x2- and x3-flux gradients.
	if c.SelfGravity {
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+2; i++ {
					phic := g.Phi[k][j][i]
					phir := 0.5 * (g.Phi[k][j][i] + g.Phi[k][j+1][i])
					phil := 0.5 * (g.Phi[k][j][i] + g.Phi[k][j-1][i])

					ur := &in.urX1[k][j][i]
					ur.My -= q2 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q2 * (in.x2Flux[k][j][i].D*(phic-phil) +
							in.x2Flux[k][j+1][i].D*(phir-phic))
					}

					phir = 0.5 * (g.Phi[k][j][i] + g.Phi[k+1][j][i])
					phil = 0.5 * (g.Phi[k][j][i] + g.Phi[k-1][j][i])

					ur.Mz -= q3 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q3 * (in.x3Flux[k][j][i].D*(phic-phil) +
							in.x3Flux[k+1][j][i].D*(phir-phic))
					}

					phic = g.Phi[k][j][i-1]
					phir = 0.5 * (g.Phi[k][j][i-1] + g.Phi[k][j+1][i-1])
					phil = 0.5 * (g.Phi[k][j][i-1] + g.Phi[k][j-1][i-1])

					ul := &in.ulX1[k][j][i]
					ul.My -= q2 * (phir - phil) * g.U[k][j][i-1].D
					if !c.Barotropic {
						ul.E -= q2 * (in.x2Flux[k][j][i-1].D*(phic-phil) +
							in.x2Flux[k][j+1][i-1].D*(phir-phic))
					}

					phir = 0.5 * (g.Phi[k][j][i-1] + g.Phi[k+1][j][i-1])
					phil = 0.5 * (g.Phi[k][j][i-1] + g.Phi[k-1][j][i-1])

					ul.Mz -= q3 * (phir - phil) * g.U[k][j][i-1].D
					if !c.Barotropic {
						ul.E -= q3 * (in.x3Flux[k][j][i-1].D*(phic-phil) +
							in.x3Flux[k+1][j][i-1].D*(phir-phic))
					}
				}
			}
		}
	}
}

// correctX2 corrects the x2-interface states with x1- and x3-flux
// gradients and the per-face source terms.
func (in *Integrator) correctX2(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	dx1i, dx2i, dx3i := 1.0/g.Dx1, 1.0/g.Dx2, 1.0/g.Dx3
	hdt := 0.5 * g.Dt
	q1 := 0.5 * g.Dt / g.Dx1
	q3 := 0.5 * g.Dt / g.Dx3

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 1; i <= ie+1; i++ {
				ul := &in.ulX2[k][j][i]
				ur := &in.urX2[k][j][i]

				// x1-flux gradients: (x,y,z) on RHS -> (y,z,x) on LHS.
				ul.D -= q1 * (in.x1Flux[k][j-1][i+1].D - in.x1Flux[k][j-1][i].D)
				ul.Mx -= q1 * (in.x1Flux[k][j-1][i+1].My - in.x1Flux[k][j-1][i].My)
				ul.My -= q1 * (in.x1Flux[k][j-1][i+1].Mz - in.x1Flux[k][j-1][i].Mz)
				ul.Mz -= q1 * (in.x1Flux[k][j-1][i+1].Mx - in.x1Flux[k][j-1][i].Mx)
				if !c.Barotropic {
					ul.E -= q1 * (in.x1Flux[k][j-1][i+1].E - in.x1Flux[k][j-1][i].E)
				}
				if c.MHD {
					ul.By -= q1 * 0.5 * ((in.emf2[k][j-1][i+1] - in.emf2[k][j-1][i]) +
						(in.emf2[k+1][j-1][i+1] - in.emf2[k+1][j-1][i]))
				}

				ur.D -= q1 * (in.x1Flux[k][j][i+1].D - in.x1Flux[k][j][i].D)
				ur.Mx -= q1 * (in.x1Flux[k][j][i+1].My - in.x1Flux[k][j][i].My)
				ur.My -= q1 * (in.x1Flux[k][j][i+1].Mz - in.x1Flux[k][j][i].Mz)
				ur.Mz -= q1 * (in.x1Flux[k][j][i+1].Mx - in.x1Flux[k][j][i].Mx)
				if !c.Barotropic {
					ur.E -= q1 * (in.x1Flux[k][j][i+1].E - in.x1Flux[k][j][i].E)
				}
				if c.MHD {
					ur.By -= q1 * 0.5 * ((in.emf2[k][j][i+1] - in.emf2[k][j][i]) +
						(in.emf2[k+1][j][i+1] - in.emf2[k+1][j][i]))
				}
				for n := 0; n < c.NScalars; n++ {
					ul.S[n] -= q1 * (in.x1Flux[k][j-1][i+1].S[n] - in.x1Flux[k][j-1][i].S[n])
					ur.S[n] -= q1 * (in.x1Flux[k][j][i+1].S[n] - in.x1Flux[k][j][i].S[n])
				}

				// x3-flux gradients: (x,y,z) on RHS -> (z,x,y) on LHS.
				ul.D -= q3 * (in.x3Flux[k+1][j-1][i].D - in.x3Flux[k][j-1][i].D)
				ul.Mx -= q3 * (in.x3Flux[k+1][j-1][i].Mz - in.x3Flux[k][j-1][i].Mz)
				ul.My -= q3 * (in.x3Flux[k+1][j-1][i].Mx - in.x3Flux[k][j-1][i].Mx)
				ul.Mz -= q3 * (in.x3Flux[k+1][j-1][i].My - in.x3Flux[k][j-1][i].My)
				if !c.Barotropic {
					ul.E -= q3 * (in.x3Flux[k+1][j-1][i].E - in.x3Flux[k][j-1][i].E)
				}
				if c.MHD {
					ul.Bz += q3 * 0.5 * ((in.emf2[k+1][j-1][i] - in.emf2[k][j-1][i]) +
						(in.emf2[k+1][j-1][i+1] - in.emf2[k][j-1][i+1]))
				}

				ur.D -= q3 * (in.x3Flux[k+1][j][i].D - in.x3Flux[k][j][i].D)
				ur.Mx -= q3 * (in.x3Flux[k+1][j][i].Mz - in.x3Flux[k][j][i].Mz)
				ur.My -= q3 * (in.x3Flux[k+1][j][i].Mx - in.x3Flux[k][j][i].Mx)
				ur.Mz -= q3 * (in.x3Flux[k+1][j][i].My - in.x3Flux[k][j][i].My)
				if !c.Barotropic {
					ur.E -= q3 * (in.x3Flux[k+1][j][i].E - in.x3Flux[k][j][i].E)
				}
				if c.MHD {
					ur.Bz += q3 * 0.5 * ((in.emf2[k+1][j][i] - in.emf2[k][j][i]) +
						(in.emf2[k+1][j][i+1] - in.emf2[k][j][i+1]))
				}
				for n := 0; n < c.NScalars; n++ {
					ul.S[n] -= q3 * (in.x3Flux[k+1][j-1][i].S[n] - in.x3Flux[k][j-1][i].S[n])
					ur.S[n] -= q3 * (in.x3Flux[k+1][j][i].S[n] - in.x3Flux[k][j][i].S[n])
				}
			}
		}
	}

	// MHD source terms from the transverse flux gradients.
	if c.MHD {
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+2; j++ {
				for i := is - 1; i <= ie+1; i++ {
					db1 := (g.B1i[k][j-1][i+1] - g.B1i[k][j-1][i]) * dx1i
					db2 := (g.B2i[k][j][i] - g.B2i[k][j-1][i]) * dx2i
					db3 := (g.B3i[k+1][j-1][i] - g.B3i[k][j-1][i]) * dx3i
					u := &g.U[k][j-1][i]
					b1, b2, b3 := u.B1c, u.B2c, u.B3c
					v1 := u.M1 / u.D
					v3 := u.M3 / u.D
					mdb1 := minModOpposed(db2, db1)
					mdb3 := minModOpposed(db2, db3)

					ul := &in.ulX2[k][j][i]
					ul.Mz += hdt * b1 * db2
					ul.Mx += hdt * b2 * db2
					ul.My += hdt * b3 * db2
					ul.By += hdt * v3 * (-mdb1)
					ul.Bz += hdt * v1 * (-mdb3)
					if !c.Barotropic {
						ul.E += hdt * (b3*v3*(-mdb1) + b1*v1*(-mdb3))
					}

					db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) * dx1i
					db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) * dx2i
					db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) * dx3i
					u = &g.U[k][j][i]
					b1, b2, b3 = u.B1c, u.B2c, u.B3c
					v1 = u.M1 / u.D
					v3 = u.M3 / u.D
					mdb1 = minModOpposed(db2, db1)
					mdb3 = minModOpposed(db2, db3)

					ur := &in.urX2[k][j][i]
					ur.Mz += hdt * b1 * db2
					ur.Mx += hdt * b2 * db2
					ur.My += hdt * b3 * db2
					ur.By += hdt * v3 * (-mdb1)
					ur.Bz += hdt * v1 * (-mdb3)
					if !c.Barotropic {
						ur.E += hdt * (b3*v3*(-mdb1) + b1*v1*(-mdb3))
					}
				}
			}
		}
	}

	// Static-potential source terms from the x1- and x3-flux gradients.
	if c.StaticGravPot != nil {
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+2; j++ {
				for i := is - 1; i <= ie+1; i++ {
					x1, x2, x3 := g.CellCenter(i, j, k)
					phic := c.StaticGravPot(x1, x2, x3)
					phir := c.StaticGravPot(x1+0.5*g.Dx1, x2, x3)
					phil := c.StaticGravPot(x1-0.5*g.Dx1, x2, x3)

					ur := &in.urX2[k][j][i]
					ur.Mz -= q1 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q1 * (in.x1Flux[k][j][i].D*(phic-phil) +
							in.x1Flux[k][j][i+1].D*(phir-phic))
					}

					phir = c.StaticGravPot(x1, x2, x3+0.5*g.Dx3)
					phil = c.StaticGravPot(x1, x2, x3-0.5*g.Dx3)

					ur.My -= q3 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q3 * (in.x3Flux[k][j][i].D*(phic-phil) +
							in.x3Flux[k+1][j][i].D*(phir-phic))
					}

					phic = c.StaticGravPot(x1, x2-g.Dx2, x3)
					phir = c.StaticGravPot(x1+0.5*g.Dx1, x2-g.Dx2, x3)
					phil = c.StaticGravPot(x1-0.5*g.Dx1, x2-g.Dx2, x3)

					ul := &in.ulX2[k][j][i]
					ul.Mz -= q1 * (phir - phil) * g.U[k][j-1][i].D
					if !c.Barotropic {
						ul.E -= q1 * (in.x1Flux[k][j-1][i].D*(phic-phil) +
							in.x1Flux[k][j-1][i+1].D*(phir-phic))
					}

					phir = c.StaticGravPot(x1, x2-g.Dx2, x3+0.5*g.Dx3)
					phil = c.StaticGravPot(x1, x2-g.Dx2, x3-0.5*g.Dx3)

					ul.My -= q3 * (phir - phil) * g.U[k][j-1][i].D
					if !c.Barotropic {
						ul.E -= q3 * (in.x3Flux[k][j-1][i].D*(phic-phil) +
							in.x3Flux[k+1][j-1][i].D*(phir-phic))
					}
				}
			}
		}
	}

	// Self-gravity source terms from the x1- and x3-flux gradients.
	if c.SelfGravity {
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+2; j++ {
				for i := is - 1; i <= ie+1; i++ {
					phic := g.Phi[k][j][i]
					phir := 0.5 * (g.Phi[k][j][i] + g.Phi[k][j][i+1])
					phil := 0.5 * (g.Phi[k][j][i] + g.Phi[k][j][i-1])

					ur := &in.urX2[k][j][i]
					ur.Mz -= q1 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q1 * (in.x1Flux[k][j][i].D*(phic-phil) +
							in.x1Flux[k][j][i+1].D*(phir-phic))
					}

					phir = 0.5 * (g.Phi[k][j][i] + g.Phi[k+1][j][i])
					phil = 0.5 * (g.Phi[k][j][i] + g.Phi[k-1][j][i])

					ur.My -= q3 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q3 * (in.x3Flux[k][j][i].D*(phic-phil) +
							in.x3Flux[k+1][j][i].D*(phir-phic))
					}

					phic = g.Phi[k][j-1][i]
					phir = 0.5 * (g.Phi[k][j-1][i] + g.Phi[k][j-1][i+1])
					phil = 0.5 * (g.Phi[k][j-1][i] + g.Phi[k][j-1][i-1])

					ul := &in.ulX2[k][j][i]
					ul.Mz -= q1 * (phir - phil) * g.U[k][j-1][i].D
					if !c.Barotropic {
						ul.E -= q1 * (in.x1Flux[k][j-1][i].D*(phic-phil) +
							in.x1Flux[k][j-1][i+1].D*(phir-phic))
					}

					phir = 0.5 * (g.Phi[k][j-1][i] + g.Phi[k+1][j-1][i])
					phil = 0.5 * (g.Phi[k][j-1][i] + g.Phi[k-1][j-1][i])

					ul.My -= q3 * (phir - phil) * g.U[k][j-1][i].D
					if !c.Barotropic {
						ul.E -= q3 * (in.x3Flux[k][j-1][i].D*(phic-phil) +
							in.x3Flux[k+1][j-1][i].D*(phir-phic))
					}
				}
			}
		}
	}

	// Shearing-box source terms. On an x2 face the x1 velocity is the
	// z-component and the x2 velocity is the x-component of the pencil.
	if c.ShearingBox {
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+2; j++ {
				for i := is - 1; i <= ie+1; i++ {
					ur := &in.urX2[k][j][i]
					ur.Mz += g.Dt * c.Omega * g.U[k][j][i].M2
					if c.Fargo {
						ur.Mx -= 0.25 * g.Dt * c.Omega * g.U[k][j][i].M1
					} else {
						ur.Mx -= g.Dt * c.Omega * g.U[k][j][i].M1
					}

					ul := &in.ulX2[k][j][i]
					ul.Mz += g.Dt * c.Omega * g.U[k][j-1][i].M2
					if c.Fargo {
						ul.Mx -= 0.25 * g.Dt * c.Omega * g.U[k][j-1][i].M1
					} else {
						ul.Mx -= g.Dt * c.Omega * g.U[k][j-1][i].M1
					}
				}
			}
		}
	}
}

// correctX3 corrects the x3-interface states with x1- and x2-flux
// gradients and the per-face source terms.
func (in *Integrator) correctX3(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	dx1i, dx2i, dx3i := 1.0/g.Dx1, 1.0/g.Dx2, 1.0/g.Dx3
	hdt := 0.5 * g.Dt
	q1 := 0.5 * g.Dt / g.Dx1
	q2 := 0.5 * g.Dt / g.Dx2

	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				ul := &in.ulX3[k][j][i]
				ur := &in.urX3[k][j][i]

				// x1-flux gradients: (x,y,z) on RHS -> (z,x,y) on LHS.
				ul.D -= q1 * (in.x1Flux[k-1][j][i+1].D - in.x1Flux[k-1][j][i].D)
				ul.Mx -= q1 * (in.x1Flux[k-1][j][i+1].Mz - in.x1Flux[k-1][j][i].Mz)
				ul.My -= q1 * (in.x1Flux[k-1][j][i+1].Mx - in.x1Flux[k-1][j][i].Mx)
				ul.Mz -= q1 * (in.x1Flux[k-1][j][i+1].My - in.x1Flux[k-1][j][i].My)
				if !c.Barotropic {
					ul.E -= q1 * (in.x1Flux[k-1][j][i+1].E - in.x1Flux[k-1][j][i].E)
				}
				if c.MHD {
					ul.Bz += q1 * 0.5 * ((in.emf3[k-1][j][i+1] - in.emf3[k-1][j][i]) +
						(in.emf3[k-1][j+1][i+1] - in.emf3[k-1][j+1][i]))
				}

				ur.D -= q1 * (in.x1Flux[k][j][i+1].D - in.x1Flux[k][j][i].D)
				ur.Mx -= q1 * (in.x1Flux[k][j][i+1].Mz - in.x1Flux[k][j][i].Mz)
				ur.My -= q1 * (in.x1Flux[k][j][i+1].Mx - in.x1Flux[k][j][i].Mx)
				ur.Mz -= q1 * (in.x1Flux[k][j][i+1].My - in.x1Flux[k][j][i].My)
				if !c.Barotropic {
					ur.E -= q1 * (in.x1Flux[k][j][i+1].E - in.x1Flux[k][j][i].E)
				}
				if c.MHD {
					ur.Bz += q1 * 0.5 * ((in.emf3[k][j][i+1] - in.emf3[k][j][i]) +
						(in.emf3[k][j+1][i+1] - in.emf3[k][j+1][i]))
				}
				for n := 0; n < c.NScalars; n++ {
					ul.S[n] -= q1 * (in.x1Flux[k-1][j][i+1].S[n] - in.x1Flux[k-1][j][i].S[n])
					ur.S[n] -= q1 * (in.x1Flux[k][j][i+1].S[n] - in.x1Flux[k][j][i].S[n])
				}

				// x2-flux gradients: (x,y,z) on RHS -> (y,z,x) on LHS.
				ul.D -= q2 * (in.x2Flux[k-1][j+1][i].D - in.x2Flux[k-1][j][i].D)
				ul.Mx -= q2 * (in.x2Flux[k-1][j+1][i].My - in.x2Flux[k-1][j][i].My)
				ul.My -= q2 * (in.x2Flux[k-1][j+1][i].Mz - in.x2Flux[k-1][j][i].Mz)
				ul.Mz -= q2 * (in.x2Flux[k-1][j+1][i].Mx - in.x2Flux[k-1][j][i].Mx)
				if !c.Barotropic {
					ul.E -= q2 * (in.x2Flux[k-1][j+1][i].E - in.x2Flux[k-1][j][i].E)
				}
				if c.MHD {
					ul.By -= q2 * 0.5 * ((in.emf3[k-1][j+1][i] - in.emf3[k-1][j][i]) +
						(in.emf3[k-1][j+1][i+1] - in.emf3[k-1][j][i+1]))
				}

				ur.D -= q2 * (in.x2Flux[k][j+1][i].D - in.x2Flux[k][j][i].D)
				ur.Mx -= q2 * (in.x2Flux[k][j+1][i].My - in.x2Flux[k][j][i].My)
				ur.My -= q2 * (in.x2Flux[k][j+1][i].Mz - in.x2Flux[k][j][i].Mz)
				ur.Mz -= q2 * (in.x2Flux[k][j+1][i].Mx - in.x2Flux[k][j][i].Mx)
				if !c.Barotropic {
					ur.E -= q2 * (in.x2Flux[k][j+1][i].E - in.x2Flux[k][j][i].E)
				}
				if c.MHD {
					ur.By -= q2 * 0.5 * ((in.emf3[k][j+1][i] - in.emf3[k][j][i]) +
						(in.emf3[k][j+1][i+1] - in.emf3[k][j][i+1]))
				}
				for n := 0; n < c.NScalars; n++ {
					ul.S[n] -= q2 * (in.x2Flux[k-1][j+1][i].S[n] - in.x2Flux[k-1][j][i].S[n])
					ur.S[n] -= q2 * (in.x2Flux[k][j+1][i].S[n] - in.x2Flux[k][j][i].S[n])
				}
			}
		}
	}

	// MHD source terms from the transverse flux gradients.
	if c.MHD {
		for k := ks - 1; k <= ke+2; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+1; i++ {
					db1 := (g.B1i[k-1][j][i+1] - g.B1i[k-1][j][i]) * dx1i
					db2 := (g.B2i[k-1][j+1][i] - g.B2i[k-1][j][i]) * dx2i
					db3 := (g.B3i[k][j][i] - g.B3i[k-1][j][i]) * dx3i
					u := &g.U[k-1][j][i]
					b1, b2, b3 := u.B1c, u.B2c, u.B3c
					v1 := u.M1 / u.D
					v2 := u.M2 / u.D
					mdb1 := minModOpposed(db3, db1)
					mdb2 := minModOpposed(db3, db2)

					ul := &in.ulX3[k][j][i]
					ul.My += hdt * b1 * db3
					ul.Mz += hdt * b2 * db3
					ul.Mx += hdt * b3 * db3
					ul.By += hdt * v1 * (-mdb2)
					ul.Bz += hdt * v2 * (-mdb1)
					if !c.Barotropic {
						ul.E += hdt * (b1*v1*(-mdb2) + b2*v2*(-mdb1))
					}

					db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) * dx1i
					db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) * dx2i
					db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) * dx3i
					u = &g.U[k][j][i]
					b1, b2, b3 = u.B1c, u.B2c, u.B3c
					v1 = u.M1 / u.D
					v2 = u.M2 / u.D
					mdb1 = minModOpposed(db3, db1)
					mdb2 = minModOpposed(db3, db2)

					ur := &in.urX3[k][j][i]
					ur.My += hdt * b1 * db3
					ur.Mz += hdt * b2 * db3
					ur.Mx += hdt * b3 * db3
					ur.By += hdt * v1 * (-mdb2)
					ur.Bz += hdt * v2 * (-mdb1)
					if !c.Barotropic {
						ur.E += hdt * (b1*v1*(-mdb2) + b2*v2*(-mdb1))
					}
				}
			}
		}
	}

	// Static-potential source terms from the x1- and x2-flux gradients.
	if c.StaticGravPot != nil {
		for k := ks - 1; k <= ke+2; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+1; i++ {
					x1, x2, x3 := g.CellCenter(i, j, k)
					phic := c.StaticGravPot(x1, x2, x3)
					phir := c.StaticGravPot(x1+0.5*g.Dx1, x2, x3)
					phil := c.StaticGravPot(x1-0.5*g.Dx1, x2, x3)

					ur := &in.urX3[k][j][i]
					ur.My -= q1 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q1 * (in.x1Flux[k][j][i].D*(phic-phil) +
							in.x1Flux[k][j][i+1].D*(phir-phic))
					}

					phir = c.StaticGravPot(x1, x2+0.5*g.Dx2, x3)
					phil = c.StaticGravPot(x1, x2-0.5*g.Dx2, x3)

					ur.Mz -= q2 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q2 * (in.x2Flux[k][j][i].D*(phic-phil) +
							in.x2Flux[k][j+1][i].D*(phir-phic))
					}

					phic = c.StaticGravPot(x1, x2, x3-g.Dx3)
					phir = c.StaticGravPot(x1+0.5*g.Dx1, x2, x3-g.Dx3)
					phil = c.StaticGravPot(x1-0.5*g.Dx1, x2, x3-g.Dx3)

					ul := &in.ulX3[k][j][i]
					ul.My -= q1 * (phir - phil) * g.U[k-1][j][i].D
					if !c.Barotropic {
						ul.E -= q1 * (in.x1Flux[k-1][j][i].D*(phic-phil) +
							in.x1Flux[k-1][j][i+1].D*(phir-phic))
					}

					phir = c.StaticGravPot(x1, x2+0.5*g.Dx2, x3-g.Dx3)
					phil = c.StaticGravPot(x1, x2-0.5*g.Dx2, x3-g.Dx3)

					ul.Mz -= q2 * (phir - phil) * g.U[k-1][j][i].D
					if !c.Barotropic {
						ul.E -= q2 * (in.x2Flux[k-1][j][i].D*(phic-phil) +
							in.x2Flux[k-1][j+1][i].D*(phir-phic))
					}
				}
			}
		}
	}

	// Self-gravity source terms from the x1- and x2-flux gradients.
	if c.SelfGravity {
		for k := ks - 1; k <= ke+2; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+1; i++ {
					phic := g.Phi[k][j][i]
					phir := 0.5 * (g.Phi[k][j][i] + g.Phi[k][j][i+1])
					phil := 0.5 * (g.Phi[k][j][i] + g.Phi[k][j][i-1])

					ur := &in.urX3[k][j][i]
					ur.My -= q1 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q1 * (in.x1Flux[k][j][i].D*(phic-phil) +
							in.x1Flux[k][j][i+1].D*(phir-phic))
					}

					phir = 0.5 * (g.Phi[k][j][i] + g.Phi[k][j+1][i])
					phil = 0.5 * (g.Phi[k][j][i] + g.Phi[k][j-1][i])

					ur.Mz -= q2 * (phir - phil) * g.U[k][j][i].D
					if !c.Barotropic {
						ur.E -= q2 * (in.x2Flux[k][j][i].D*(phic-phil) +
							in.x2Flux[k][j+1][i].D*(phir-phic))
					}

					phic = g.Phi[k-1][j][i]
					phir = 0.5 * (g.Phi[k-1][j][i] + g.Phi[k-1][j][i+1])
					phil = 0.5 * (g.Phi[k-1][j][i] + g.Phi[k-1][j][i-1])

					ul := &in.ulX3[k][j][i]
					ul.My -= q1 * (phir - phil) * g.U[k-1][j][i].D
					if !c.Barotropic {
						ul.E -= q1 * (in.x1Flux[k-1][j][i].D*(phic-phil) +
							in.x1Flux[k-1][j][i+1].D*(phir-phic))
					}

					phir = 0.5 * (g.Phi[k-1][j][i] + g.Phi[k-1][j+1][i])
					phil = 0.5 * (g.Phi[k-1][j][i] + g.Phi[k-1][j-1][i])

					ul.Mz -= q2 * (phir - phil) * g.U[k-1][j][i].D
					if !c.Barotropic {
						ul.E -= q2 * (in.x2Flux[k-1][j][i].D*(phic-phil) +
							in.x2Flux[k-1][j+1][i].D*(phir-phic))
					}
				}
			}
		}
	}

	// Shearing-box source terms. On an x3 face the x1 velocity is the
	// y-component and the x2 velocity is the z-component of the pencil.
	if c.ShearingBox {
		for k := ks - 1; k <= ke+2; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+1; i++ {
					ur := &in.urX3[k][j][i]
					ur.My += g.Dt * c.Omega * g.U[k][j][i].M2
					if c.Fargo {
						ur.Mz -= 0.25 * g.Dt * c.Omega * g.U[k][j][i].M1
					} else {
						ur.Mz -= g.Dt * c.Omega * g.U[k][j][i].M1
					}

					ul := &in.ulX3[k][j][i]
					ul.My += g.Dt * c.Omega * g.U[k-1][j][i].M2
					if c.Fargo {
						ul.Mz -= 0.25 * g.Dt * c.Omega * g.U[k-1][j][i].M1
					} else {
						ul.Mz -= g.Dt * c.Omega * g.U[k-1][j][i].M1
					}
				}
			}
		}
	}
}

// minModOpposed is the min-mod selection between the parallel field
// derivative a and the transverse derivative b used by the per-face MHD
// source terms: nonzero only when the two have opposing signs, in which
// case the smaller-magnitude of b and -a is returned.
func minModOpposed(a, b float64) float64 {
	if a > 0.0 && b < 0.0 {
		if b > -a {
			return b
		}
		return -a
	}
	if a < 0.0 && b > 0.0 {
		if b < -a {
			return b
		}
		return -a
	}
	return 0.0
}
