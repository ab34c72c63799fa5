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

// applySourceTerms adds the full-step source terms using the half-step
// state: the fixed gravitational potential (with the Crank-Nicholson
// Coriolis update in a shearing box), self-gravity stress-tensor fluxes,
// and optically thin cooling. Energy source terms are assembled from
// mass-flux-weighted potential differences at cell faces so that total
// energy is conserved to round-off.
func (in *Integrator) applySourceTerms(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke
	dtodx1 := g.Dt / g.Dx1
	dtodx2 := g.Dt / g.Dx2
	dtodx3 := g.Dt / g.Dx3
	q1, q2, q3 := 0.5*dtodx1, 0.5*dtodx2, 0.5*dtodx3
	dx1i, dx2i, dx3i := 1.0/g.Dx1, 1.0/g.Dx2, 1.0/g.Dx3

	if c.ShearingBox {
		omdt := c.Omega * g.Dt
		fact := omdt / (1.0 + 0.25*omdt*omdt)
		thOm := 1.5 * c.Omega

		for k := ks; k <= ke; k++ {
			for j := js; j <= je; j++ {
				for i := is; i <= ie; i++ {
					x1, x2, x3 := g.CellCenter(i, j, k)
					u := &g.U[k][j][i]

					// State at time n: M1 and the y-momentum fluctuation.
					m1n := u.M1
					var dM2n float64
					if c.Fargo {
						dM2n = u.M2
					} else {
						dM2n = u.M2 + u.D*thOm*x1
					}

					// Fluxes of the y-momentum fluctuation.
					frx1 := in.x1Flux[k][j][i+1].My
					flx1 := in.x1Flux[k][j][i].My
					frx2 := in.x2Flux[k][j+1][i].Mx
					flx2 := in.x2Flux[k][j][i].Mx
					frx3 := in.x3Flux[k+1][j][i].Mz
					flx3 := in.x3Flux[k][j][i].Mz
					if !c.Fargo {
						frx1 += thOm * (x1 + 0.5*g.Dx1) * in.x1Flux[k][j][i+1].D
						flx1 += thOm * (x1 - 0.5*g.Dx1) * in.x1Flux[k][j][i].D
						frx2 += thOm * x1 * in.x2Flux[k][j+1][i].D
						flx2 += thOm * x1 * in.x2Flux[k][j][i].D
						frx3 += thOm * x1 * in.x3Flux[k+1][j][i].D
						flx3 += thOm * x1 * in.x3Flux[k][j][i].D
					}

					// Forward-Euler prediction to t + dt/2.
					m1e := m1n -
						q1*(in.x1Flux[k][j][i+1].Mx-in.x1Flux[k][j][i].Mx) -
						q2*(in.x2Flux[k][j+1][i].Mz-in.x2Flux[k][j][i].Mz) -
						q3*(in.x3Flux[k+1][j][i].My-in.x3Flux[k][j][i].My)
					dM2e := dM2n - q1*(frx1-flx1) - q2*(frx2-flx2) - q3*(frx3-flx3)

					// Crank-Nicholson update of the Coriolis-coupled pair.
					u.M1 += (2.0*dM2e - 0.5*omdt*m1e) * fact
					u.M2 -= 0.5 * (m1e + omdt*dM2e) * fact
					if !c.Fargo {
						u.M2 -= 0.75 * omdt * (in.x1Flux[k][j][i].D + in.x1Flux[k][j][i+1].D)
					}

					// Fixed-potential energy update and vertical
					// gravitational acceleration; the tidal potential is
					// supplied through StaticGravPot.
					if c.StaticGravPot != nil {
						phic := c.StaticGravPot(x1, x2, x3)
						phir := c.StaticGravPot(x1+0.5*g.Dx1, x2, x3)
						phil := c.StaticGravPot(x1-0.5*g.Dx1, x2, x3)
						if !c.Barotropic {
							u.E -= dtodx1 * (in.x1Flux[k][j][i].D*(phic-phil) +
								in.x1Flux[k][j][i+1].D*(phir-phic))
						}

						phir = c.StaticGravPot(x1, x2+0.5*g.Dx2, x3)
						phil = c.StaticGravPot(x1, x2-0.5*g.Dx2, x3)
						if !c.Barotropic {
							u.E -= dtodx2 * (in.x2Flux[k][j][i].D*(phic-phil) +
								in.x2Flux[k][j+1][i].D*(phir-phic))
						}

						phir = c.StaticGravPot(x1, x2, x3+0.5*g.Dx3)
						phil = c.StaticGravPot(x1, x2, x3-0.5*g.Dx3)
						u.M3 -= dtodx3 * (phir - phil) * in.dhalf[k][j][i]
						if !c.Barotropic {
							u.E -= dtodx3 * (in.x3Flux[k][j][i].D*(phic-phil) +
								in.x3Flux[k+1][j][i].D*(phir-phic))
						}
					}
				}
			}
		}
	} else if c.StaticGravPot != nil {
		for k := ks; k <= ke; k++ {
			for j := js; j <= je; j++ {
				for i := is; i <= ie; i++ {
					x1, x2, x3 := g.CellCenter(i, j, k)
					u := &g.U[k][j][i]
					phic := c.StaticGravPot(x1, x2, x3)
					phir := c.StaticGravPot(x1+0.5*g.Dx1, x2, x3)
					phil := c.StaticGravPot(x1-0.5*g.Dx1, x2, x3)
					u.M1 -= dtodx1 * (phir - phil) * in.dhalf[k][j][i]
					if !c.Barotropic {
						u.E -= dtodx1 * (in.x1Flux[k][j][i].D*(phic-phil) +
							in.x1Flux[k][j][i+1].D*(phir-phic))
					}

					phir = c.StaticGravPot(x1, x2+0.5*g.Dx2, x3)
					phil = c.StaticGravPot(x1, x2-0.5*g.Dx2, x3)
					u.M2 -= dtodx2 * (phir - phil) * in.dhalf[k][j][i]
					if !c.Barotropic {
						u.E -= dtodx2 * (in.x2Flux[k][j][i].D*(phic-phil) +
							in.x2Flux[k][j+1][i].D*(phir-phic))
					}

					phir = c.StaticGravPot(x1, x2, x3+0.5*g.Dx3)
					phil = c.StaticGravPot(x1, x2, x3-0.5*g.Dx3)
					u.M3 -= dtodx3 * (phir - phil) * in.dhalf[k][j][i]
					if !c.Barotropic {
						u.E -= dtodx3 * (in.x3Flux[k][j][i].D*(phic-phil) +
							in.x3Flux[k+1][j][i].D*(phir-phic))
					}
				}
			}
		}
	}

	// Self-gravity stress-tensor fluxes. A correction using the updated
	// potential is applied outside the integrator to make these second
	// order; the mass fluxes saved below feed that correction.
	if c.SelfGravity {
		fourPiGi := 1.0 / c.FourPiG

		// d/dx1 terms.
		for k := ks; k <= ke; k++ {
			for j := js; j <= je; j++ {
				for i := is; i <= ie; i++ {
					u := &g.U[k][j][i]
					phic := g.Phi[k][j][i]
					phil := 0.5 * (g.Phi[k][j][i-1] + g.Phi[k][j][i])
					phir := 0.5 * (g.Phi[k][j][i] + g.Phi[k][j][i+1])

					// Gravity vector at the L and R x1-faces.
					gxl := (g.Phi[k][j][i-1] - g.Phi[k][j][i]) * dx1i
					gxr := (g.Phi[k][j][i] - g.Phi[k][j][i+1]) * dx1i

					gyl := 0.25 * ((g.Phi[k][j-1][i-1] - g.Phi[k][j+1][i-1]) +
						(g.Phi[k][j-1][i] - g.Phi[k][j+1][i])) * dx2i
					gyr := 0.25 * ((g.Phi[k][j-1][i] - g.Phi[k][j+1][i]) +
						(g.Phi[k][j-1][i+1] - g.Phi[k][j+1][i+1])) * dx2i

					gzl := 0.25 * ((g.Phi[k-1][j][i-1] - g.Phi[k+1][j][i-1]) +
						(g.Phi[k-1][j][i] - g.Phi[k+1][j][i])) * dx3i
					gzr := 0.25 * ((g.Phi[k-1][j][i] - g.Phi[k+1][j][i]) +
						(g.Phi[k-1][j][i+1] - g.Phi[k+1][j][i+1])) * dx3i

					// The mean-density term implements Jean's swindle.
					flxM1l := 0.5*(gxl*gxl-gyl*gyl-gzl*gzl)*fourPiGi + c.GravMeanRho*phil
					flxM1r := 0.5*(gxr*gxr-gyr*gyr-gzr*gzr)*fourPiGi + c.GravMeanRho*phir
					flxM2l := gxl * gyl * fourPiGi
					flxM2r := gxr * gyr * fourPiGi
					flxM3l := gxl * gzl * fourPiGi
					flxM3r := gxr * gzr * fourPiGi

					u.M1 -= dtodx1 * (flxM1r - flxM1l)
					u.M2 -= dtodx1 * (flxM2r - flxM2l)
					u.M3 -= dtodx1 * (flxM3r - flxM3l)
					if !c.Barotropic {
						u.E -= dtodx1 * (in.x1Flux[k][j][i].D*(phic-phil) +
							in.x1Flux[k][j][i+1].D*(phir-phic))
					}
				}
			}
		}

		// d/dx2 terms.
		for k := ks; k <= ke; k++ {
			for j := js; j <= je; j++ {
				for i := is; i <= ie; i++ {
					u := &g.U[k][j][i]
					phic := g.Phi[k][j][i]
					phil := 0.5 * (g.Phi[k][j-1][i] + g.Phi[k][j][i])
					phir := 0.5 * (g.Phi[k][j][i] + g.Phi[k][j+1][i])

					gxl := 0.25 * ((g.Phi[k][j-1][i-1] - g.Phi[k][j-1][i+1]) +
						(g.Phi[k][j][i-1] - g.Phi[k][j][i+1])) * dx1i
					gxr := 0.25 * ((g.Phi[k][j][i-1] - g.Phi[k][j][i+1]) +
						(g.Phi[k][j+1][i-1] - g.Phi[k][j+1][i+1])) * dx1i

					gyl := (g.Phi[k][j-1][i] - g.Phi[k][j][i]) * dx2i
					gyr := (g.Phi[k][j][i] - g.Phi[k][j+1][i]) * dx2i

					gzl := 0.25 * ((g.Phi[k-1][j-1][i] - g.Phi[k+1][j-1][i]) +
						(g.Phi[k-1][j][i] - g.Phi[k+1][j][i])) * dx3i
					gzr := 0.25 * ((g.Phi[k-1][j][i] - g.Phi[k+1][j][i]) +
						(g.Phi[k-1][j+1][i] - g.Phi[k+1][j+1][i])) * dx3i

					flxM1l := gyl * gxl * fourPiGi
					flxM1r := gyr * gxr * fourPiGi
					flxM2l := 0.5*(gyl*gyl-gxl*gxl-gzl*gzl)*fourPiGi + c.GravMeanRho*phil
					flxM2r := 0.5*(gyr*gyr-gxr*gxr-gzr*gzr)*fourPiGi + c.GravMeanRho*phir
					flxM3l := gyl * gzl * fourPiGi
					flxM3r := gyr * gzr * fourPiGi

					u.M1 -= dtodx2 * (flxM1r - flxM1l)
					u.M2 -= dtodx2 * (flxM2r - flxM2l)
					u.M3 -= dtodx2 * (flxM3r - flxM3l)
					if !c.Barotropic {
						u.E -= dtodx2 * (in.x2Flux[k][j][i].D*(phic-phil) +
							in.x2Flux[k][j+1][i].D*(phir-phic))
					}
				}
			}
		}

		// d/dx3 terms.
		for k := ks; k <= ke; k++ {
			for j := js; j <= je; j++ {
				for i := is; i <= ie; i++ {
					u := &g.U[k][j][i]
					phic := g.Phi[k][j][i]
					phil := 0.5 * (g.Phi[k-1][j][i] + g.Phi[k][j][i])
					phir := 0.5 * (g.Phi[k][j][i] + g.Phi[k+1][j][i])

					gxl := 0.25 * ((g.Phi[k-1][j][i-1] - g.Phi[k-1][j][i+1]) +
						(g.Phi[k][j][i-1] - g.Phi[k][j][i+1])) * dx1i
					gxr := 0.25 * ((g.Phi[k][j][i-1] - g.Phi[k][j][i+1]) +
						(g.Phi[k+1][j][i-1] - g.Phi[k+1][j][i+1])) * dx1i

					gyl := 0.25 * ((g.Phi[k-1][j-1][i] - g.Phi[k-1][j+1][i]) +
						(g.Phi[k][j-1][i] - g.Phi[k][j+1][i])) * dx2i
					gyr := 0.25 * ((g.Phi[k][j-1][i] - g.Phi[k][j+1][i]) +
						(g.Phi[k+1][j-1][i] - g.Phi[k+1][j+1][i])) * dx2i

					gzl := (g.Phi[k-1][j][i] - g.Phi[k][j][i]) * dx3i
					gzr := (g.Phi[k][j][i] - g.Phi[k+1][j][i]) * dx3i

					flxM1l := gzl * gxl * fourPiGi
					flxM1r := gzr * gxr * fourPiGi
					flxM2l := gzl * gyl * fourPiGi
					flxM2r := gzr * gyr * fourPiGi
					flxM3l := 0.5*(gzl*gzl-gxl*gxl-gyl*gyl)*fourPiGi + c.GravMeanRho*phil
					flxM3r := 0.5*(gzr*gzr-gxr*gxr-gyr*gyr)*fourPiGi + c.GravMeanRho*phir

					u.M1 -= dtodx3 * (flxM1r - flxM1l)
					u.M2 -= dtodx3 * (flxM2r - flxM2l)
					u.M3 -= dtodx3 * (flxM3r - flxM3l)
					if !c.Barotropic {
						u.E -= dtodx3 * (in.x3Flux[k][j][i].D*(phic-phil) +
							in.x3Flux[k+1][j][i].D*(phir-phic))
					}
				}
			}
		}

		// Save mass fluxes for the Poisson source-term correction.
		for k := ks; k <= ke+1; k++ {
			for j := js; j <= je+1; j++ {
				for i := is; i <= ie+1; i++ {
					g.X1MassFlux[k][j][i] = in.x1Flux[k][j][i].D
					g.X2MassFlux[k][j][i] = in.x2Flux[k][j][i].D
					g.X3MassFlux[k][j][i] = in.x3Flux[k][j][i].D
				}
			}
		}
	}

	// Optically thin cooling over the full step, evaluated on the
	// half-step density and pressure.
	if c.Cooling != nil && !c.Barotropic {
		for k := ks; k <= ke; k++ {
			for j := js; j <= je; j++ {
				for i := is; i <= ie; i++ {
					coolf := c.Cooling(in.dhalf[k][j][i], in.phalf[k][j][i], g.Dt)
					g.U[k][j][i].E -= g.Dt * coolf
				}
			}
		}
	}
}
