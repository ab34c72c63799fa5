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

// The three directional sweeps gather one-dimensional pencils of conserved
// variables, reconstruct interface states, fold in the half-step source
// terms (transverse-field, gravity, cooling, and in the x1 sweep the
// rotating frame; the x2 and x3 interface states receive their
// rotating-frame terms in the transverse corrections), and solve a
// first-pass Riemann problem at every interface. The momentum and field
// components are permuted so the sweep direction is always "x":
//
//	x1: (M1,M2,M3) -> (Mx,My,Mz), (B2c,B3c) -> (By,Bz)
//	x2: (M2,M3,M1) -> (Mx,My,Mz), (B3c,B1c) -> (By,Bz)
//	x3: (M3,M1,M2) -> (Mx,My,Mz), (B1c,B2c) -> (By,Bz)
//
// The flux range is one cell wider than the live range along the sweep
// axis and two wider on the transverse axes, feeding the later transverse
// corrections and corner-EMF construction.

func (in *Integrator) sweepX1(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	dtodx1 := g.Dt / g.Dx1
	dx1i, dx2i, dx3i := 1.0/g.Dx1, 1.0/g.Dx2, 1.0/g.Dx3
	hdt := 0.5 * g.Dt
	q1 := 0.5 * dtodx1

	for k := ks - 2; k <= ke+2; k++ {
		for j := js - 2; j <= je+2; j++ {
			// Load the pencil: U1d = (d, M1, M2, M3, E, B2c, B3c, s[n]).
			for i := is - Nghost; i <= ie+Nghost; i++ {
				u := &g.U[k][j][i]
				u1 := &in.u1d[i]
				u1.D = u.D
				u1.Mx = u.M1
				u1.My = u.M2
				u1.Mz = u.M3
				if !c.Barotropic {
					u1.E = u.E
				}
				if c.MHD {
					u1.By = u.B2c
					u1.Bz = u.B3c
					in.bxc[i] = u.B1c
					in.bxi[i] = g.B1i[k][j][i]
					in.b1Face[k][j][i] = g.B1i[k][j][i]
				}
				for n := 0; n < c.NScalars; n++ {
					u1.S[n] = u.S[n]
				}
			}

			for i := is - Nghost; i <= ie+Nghost; i++ {
				c.ConsToPrim1D(&in.u1d[i], &in.w[i], in.bxcAt(i))
			}

			in.rec.LRStates(in.w, in.bxc, g.Dt, dtodx1, is-1, ie+1, in.wl, in.wr)

			// MHD source terms for 0.5*dt, limited as in Gardiner & Stone.
			if c.MHD {
				for i := is - 1; i <= ie+2; i++ {
					// Left state: source terms from zone i-1.
					db1 := (g.B1i[k][j][i] - g.B1i[k][j][i-1]) * dx1i
					db2 := (g.B2i[k][j+1][i-1] - g.B2i[k][j][i-1]) * dx2i
					db3 := (g.B3i[k+1][j][i-1] - g.B3i[k][j][i-1]) * dx3i
					l2, l3 := limitDB(db1, db2, db3)

					ul := &g.U[k][j][i-1]
					in.wl[i].By += hdt * (ul.M2 / ul.D) * l2
					in.wl[i].Bz += hdt * (ul.M3 / ul.D) * l3

					// Right state: source terms from zone i.
					db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) * dx1i
					db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) * dx2i
					db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) * dx3i
					l2, l3 = limitDB(db1, db2, db3)

					ur := &g.U[k][j][i]
					in.wr[i].By += hdt * (ur.M2 / ur.D) * l2
					in.wr[i].Bz += hdt * (ur.M3 / ur.D) * l3
				}
			}

			// Static gravitational potential for 0.5*dt.
			if c.StaticGravPot != nil {
				for i := is - 1; i <= ie+2; i++ {
					x1, x2, x3 := g.CellCenter(i, j, k)
					phicr := c.StaticGravPot(x1, x2, x3)
					phicl := c.StaticGravPot(x1-g.Dx1, x2, x3)
					phifc := c.StaticGravPot(x1-0.5*g.Dx1, x2, x3)

					in.wl[i].Vx -= dtodx1 * (phifc - phicl)
					in.wr[i].Vx -= dtodx1 * (phicr - phifc)
				}
			}

			// Self-gravity for 0.5*dt.
			if c.SelfGravity {
				for i := is - 1; i <= ie+2; i++ {
					dphi := q1 * (g.Phi[k][j][i] - g.Phi[k][j][i-1])
					in.wl[i].Vx -= dphi
					in.wr[i].Vx -= dphi
				}
			}

			// Optically thin cooling for 0.5*dt.
			if c.Cooling != nil && !c.Barotropic {
				for i := is - 1; i <= ie+2; i++ {
					coolfl := c.Cooling(in.wl[i].D, in.wl[i].P, 0.5*g.Dt)
					coolfr := c.Cooling(in.wr[i].D, in.wr[i].P, 0.5*g.Dt)
					in.wl[i].P -= 0.5 * g.Dt * (c.Gamma - 1.0) * coolfl
					in.wr[i].P -= 0.5 * g.Dt * (c.Gamma - 1.0) * coolfr
				}
			}

			// Shearing-box Coriolis forces for 0.5*dt.
			if c.ShearingBox {
				for i := is - 1; i <= ie+2; i++ {
					in.wl[i].Vx += g.Dt * c.Omega * in.w[i-1].Vy
					in.wr[i].Vx += g.Dt * c.Omega * in.w[i].Vy
					if c.Fargo {
						in.wl[i].Vy -= 0.25 * g.Dt * c.Omega * in.w[i-1].Vx
						in.wr[i].Vy -= 0.25 * g.Dt * c.Omega * in.w[i].Vx
					} else {
						in.wl[i].Vy -= g.Dt * c.Omega * in.w[i-1].Vx
						in.wr[i].Vy -= g.Dt * c.Omega * in.w[i].Vx
					}
				}
			}

			// First-pass x1 fluxes.
			for i := is - 1; i <= ie+2; i++ {
				bx := 0.0
				if c.MHD {
					bx = in.bxi[i]
				}
				c.PrimToCons1D(&in.wl[i], &in.ulX1[k][j][i], bx)
				c.PrimToCons1D(&in.wr[i], &in.urX1[k][j][i], bx)
				in.rs.Flux(&in.ulX1[k][j][i], &in.urX1[k][j][i],
					&in.wl[i], &in.wr[i], bx, 0.0, &in.x1Flux[k][j][i])
			}
		}
	}
}

func (in *Integrator) sweepX2(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	dtodx2 := g.Dt / g.Dx2
	dx1i, dx2i, dx3i := 1.0/g.Dx1, 1.0/g.Dx2, 1.0/g.Dx3
	hdt := 0.5 * g.Dt
	q2 := 0.5 * dtodx2

	for k := ks - 2; k <= ke+2; k++ {
		for i := is - 2; i <= ie+2; i++ {
			// Load the pencil: U1d = (d, M2, M3, M1, E, B3c, B1c, s[n]).
			for j := js - Nghost; j <= je+Nghost; j++ {
				u := &g.U[k][j][i]
				u1 := &in.u1d[j]
				u1.D = u.D
				u1.Mx = u.M2
				u1.My = u.M3
				u1.Mz = u.M1
				if !c.Barotropic {
					u1.E = u.E
				}
				if c.MHD {
					u1.By = u.B3c
					u1.Bz = u.B1c
					in.bxc[j] = u.B2c
					in.bxi[j] = g.B2i[k][j][i]
					in.b2Face[k][j][i] = g.B2i[k][j][i]
				}
				for n := 0; n < c.NScalars; n++ {
					u1.S[n] = u.S[n]
				}
			}

			for j := js - Nghost; j <= je+Nghost; j++ {
				c.ConsToPrim1D(&in.u1d[j], &in.w[j], in.bxcAt(j))
			}

			in.rec.LRStates(in.w, in.bxc, g.Dt, dtodx2, js-1, je+1, in.wl, in.wr)

			if c.MHD {
				for j := js - 1; j <= je+2; j++ {
					// Left state: source terms from zone j-1.
					db1 := (g.B1i[k][j-1][i+1] - g.B1i[k][j-1][i]) * dx1i
					db2 := (g.B2i[k][j][i] - g.B2i[k][j-1][i]) * dx2i
					db3 := (g.B3i[k+1][j-1][i] - g.B3i[k][j-1][i]) * dx3i
					l3, l1 := limitDB(db2, db3, db1)

					ul := &g.U[k][j-1][i]
					in.wl[j].By += hdt * (ul.M3 / ul.D) * l3
					in.wl[j].Bz += hdt * (ul.M1 / ul.D) * l1

					// Right state: source terms from zone j.
					db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) * dx1i
					db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) * dx2i
					db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) * dx3i
					l3, l1 = limitDB(db2, db3, db1)

					ur := &g.U[k][j][i]
					in.wr[j].By += hdt * (ur.M3 / ur.D) * l3
					in.wr[j].Bz += hdt * (ur.M1 / ur.D) * l1
				}
			}

			if c.StaticGravPot != nil {
				for j := js - 1; j <= je+2; j++ {
					x1, x2, x3 := g.CellCenter(i, j, k)
					phicr := c.StaticGravPot(x1, x2, x3)
					phicl := c.StaticGravPot(x1, x2-g.Dx2, x3)
					phifc := c.StaticGravPot(x1, x2-0.5*g.Dx2, x3)

					in.wl[j].Vx -= dtodx2 * (phifc - phicl)
					in.wr[j].Vx -= dtodx2 * (phicr - phifc)
				}
			}

			if c.SelfGravity {
				for j := js - 1; j <= je+2; j++ {
					dphi := q2 * (g.Phi[k][j][i] - g.Phi[k][j-1][i])
					in.wl[j].Vx -= dphi
					in.wr[j].Vx -= dphi
				}
			}

			if c.Cooling != nil && !c.Barotropic {
				for j := js - 1; j <= je+2; j++ {
					coolfl := c.Cooling(in.wl[j].D, in.wl[j].P, 0.5*g.Dt)
					coolfr := c.Cooling(in.wr[j].D, in.wr[j].P, 0.5*g.Dt)
					in.wl[j].P -= 0.5 * g.Dt * (c.Gamma - 1.0) * coolfl
					in.wr[j].P -= 0.5 * g.Dt * (c.Gamma - 1.0) * coolfr
				}
			}

			// First-pass x2 fluxes.
			for j := js - 1; j <= je+2; j++ {
				bx := 0.0
				if c.MHD {
					bx = in.bxi[j]
				}
				c.PrimToCons1D(&in.wl[j], &in.ulX2[k][j][i], bx)
				c.PrimToCons1D(&in.wr[j], &in.urX2[k][j][i], bx)
				in.rs.Flux(&in.ulX2[k][j][i], &in.urX2[k][j][i],
					&in.wl[j], &in.wr[j], bx, 0.0, &in.x2Flux[k][j][i])
			}
		}
	}
}

func (in *Integrator) sweepX3(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	dtodx3 := g.Dt / g.Dx3
	dx1i, dx2i, dx3i := 1.0/g.Dx1, 1.0/g.Dx2, 1.0/g.Dx3
	hdt := 0.5 * g.Dt
	q3 := 0.5 * dtodx3

	for j := js - 2; j <= je+2; j++ {
		for i := is - 2; i <= ie+2; i++ {
			// Load the pencil: U1d = (d, M3, M1, M2, E, B1c, B2c, s[n]).
			for k := ks - Nghost; k <= ke+Nghost; k++ {
				u := &g.U[k][j][i]
				u1 := &in.u1d[k]
				u1.D = u.D
				u1.Mx = u.M3
				u1.My = u.M1
				u1.Mz = u.M2
				if !c.Barotropic {
					u1.E = u.E
				}
				if c.MHD {
					u1.By = u.B1c
					u1.Bz = u.B2c
					in.bxc[k] = u.B3c
					in.bxi[k] = g.B3i[k][j][i]
					in.b3Face[k][j][i] = g.B3i[k][j][i]
				}
				for n := 0; n < c.NScalars; n++ {
					u1.S[n] = u.S[n]
				}
			}

			for k := ks - Nghost; k <= ke+Nghost; k++ {
				c.ConsToPrim1D(&in.u1d[k], &in.w[k], in.bxcAt(k))
			}

			in.rec.LRStates(in.w, in.bxc, g.Dt, dtodx3, ks-1, ke+1, in.wl, in.wr)

			if c.MHD {
				for k := ks - 1; k <= ke+2; k++ {
					// Left state: source terms from zone k-1.
					db1 := (g.B1i[k-1][j][i+1] - g.B1i[k-1][j][i]) * dx1i
					db2 := (g.B2i[k-1][j+1][i] - g.B2i[k-1][j][i]) * dx2i
					db3 := (g.B3i[k][j][i] - g.B3i[k-1][j][i]) * dx3i
					l1, l2 := limitDB(db3, db1, db2)

					ul := &g.U[k-1][j][i]
					in.wl[k].By += hdt * (ul.M1 / ul.D) * l1
					in.wl[k].Bz += hdt * (ul.M2 / ul.D) * l2

					// Right state: source terms from zone k.
					db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) * dx1i
					db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) * dx2i
					db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) * dx3i
					l1, l2 = limitDB(db3, db1, db2)

					ur := &g.U[k][j][i]
					in.wr[k].By += hdt * (ur.M1 / ur.D) * l1
					in.wr[k].Bz += hdt * (ur.M2 / ur.D) * l2
				}
			}

			if c.StaticGravPot != nil {
				for k := ks - 1; k <= ke+2; k++ {
					x1, x2, x3 := g.CellCenter(i, j, k)
					phicr := c.StaticGravPot(x1, x2, x3)
					phicl := c.StaticGravPot(x1, x2, x3-g.Dx3)
					phifc := c.StaticGravPot(x1, x2, x3-0.5*g.Dx3)

					in.wl[k].Vx -= dtodx3 * (phifc - phicl)
					in.wr[k].Vx -= dtodx3 * (phicr - phifc)
				}
			}

			if c.SelfGravity {
				for k := ks - 1; k <= ke+2; k++ {
					dphi := q3 * (g.Phi[k][j][i] - g.Phi[k-1][j][i])
					in.wl[k].Vx -= dphi
					in.wr[k].Vx -= dphi
				}
			}

			if c.Cooling != nil && !c.Barotropic {
				for k := ks - 1; k <= ke+2; k++ {
					coolfl := c.Cooling(in.wl[k].D, in.wl[k].P, 0.5*g.Dt)
					coolfr := c.Cooling(in.wr[k].D, in.wr[k].P, 0.5*g.Dt)
					in.wl[k].P -= 0.5 * g.Dt * (c.Gamma - 1.0) * coolfl
					in.wr[k].P -= 0.5 * g.Dt * (c.Gamma - 1.0) * coolfr
				}
			}

			// First-pass x3 fluxes.
			for k := ks - 1; k <= ke+2; k++ {
				bx := 0.0
				if c.MHD {
					bx = in.bxi[k]
				}
				c.PrimToCons1D(&in.wl[k], &in.ulX3[k][j][i], bx)
				c.PrimToCons1D(&in.wr[k], &in.urX3[k][j][i], bx)
				in.rs.Flux(&in.ulX3[k][j][i], &in.urX3[k][j][i],
					&in.wl[k], &in.wr[k], bx, 0.0, &in.x3Flux[k][j][i])
			}
		}
	}
}

// bxcAt returns the parallel cell-centered field at pencil index i, or
// zero when the field is disabled.
func (in *Integrator) bxcAt(i int) float64 {
	if in.cfg.MHD {
		return in.bxc[i]
	}
	return 0.0
}

// limitDB computes the two clamped divergence terms used by the
// interface-state MHD source terms: with a the field derivative along the
// sweep axis and dbt1, dbt2 the two transverse derivatives, each result is
// a limited toward -dbt and clipped to the half-space matching the sign
// of a.
func limitDB(a, dbt1, dbt2 float64) (lt1, lt2 float64) {
	if a >= 0.0 {
		lt1 = a
		if -dbt1 < lt1 {
			lt1 = -dbt1
		}
		if lt1 < 0.0 {
			lt1 = 0.0
		}
		lt2 = a
		if -dbt2 < lt2 {
			lt2 = -dbt2
		}
		if lt2 < 0.0 {
			lt2 = 0.0
		}
	} else {
		lt1 = a
		if -dbt1 > lt1 {
			lt1 = -dbt1
		}
		if lt1 > 0.0 {
			lt1 = 0.0
		}
		lt2 = a
		if -dbt2 > lt2 {
			lt2 = -dbt2
		}
		if lt2 > 0.0 {
			lt2 = 0.0
		}
	}
	return
}
