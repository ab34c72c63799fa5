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

// computeEta stores the half wave-speed spread of each interface for the
// H-correction of Sanders et al. (1998): eta = 0.5*|lambdaR - lambdaL|
// with lambda the outermost fast magnetosonic characteristic speeds of
// the corrected interface states.
func (in *Integrator) computeEta(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+2; i++ {
				bx := in.faceB1(k, j, i)
				cfr := c.Cfast(&in.urX1[k][j][i], bx)
				cfl := c.Cfast(&in.ulX1[k][j][i], bx)
				lambdar := in.urX1[k][j][i].Mx/in.urX1[k][j][i].D + cfr
				lambdal := in.ulX1[k][j][i].Mx/in.ulX1[k][j][i].D - cfl
				in.eta1[k][j][i] = 0.5 * abs(lambdar-lambdal)
			}
		}
	}

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 1; i <= ie+1; i++ {
				bx := in.faceB2(k, j, i)
				cfr := c.Cfast(&in.urX2[k][j][i], bx)
				cfl := c.Cfast(&in.ulX2[k][j][i], bx)
				lambdar := in.urX2[k][j][i].Mx/in.urX2[k][j][i].D + cfr
				lambdal := in.ulX2[k][j][i].Mx/in.ulX2[k][j][i].D - cfl
				in.eta2[k][j][i] = 0.5 * abs(lambdar-lambdal)
			}
		}
	}

	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				bx := in.faceB3(k, j, i)
				cfr := c.Cfast(&in.urX3[k][j][i], bx)
				cfl := c.Cfast(&in.ulX3[k][j][i], bx)
				lambdar := in.urX3[k][j][i].Mx/in.urX3[k][j][i].D + cfr
				lambdal := in.ulX3[k][j][i].Mx/in.ulX3[k][j][i].D - cfl
				in.eta3[k][j][i] = 0.5 * abs(lambdar-lambdal)
			}
		}
	}
}

// finalFluxX1 computes the second-pass x1 fluxes from the corrected
// interface states, propagating the maximum of the nine bracketing
// wave-speed spreads into the Riemann solve when the H-correction is on.
func (in *Integrator) finalFluxX1(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is; i <= ie+1; i++ {
				etah := 0.0
				if c.HCorrection {
					etah = max2(in.eta2[k][j][i-1], in.eta2[k][j][i])
					etah = max2(etah, in.eta2[k][j+1][i-1])
					etah = max2(etah, in.eta2[k][j+1][i])

					etah = max2(etah, in.eta3[k][j][i-1])
					etah = max2(etah, in.eta3[k][j][i])
					etah = max2(etah, in.eta3[k+1][j][i-1])
					etah = max2(etah, in.eta3[k+1][j][i])

					etah = max2(etah, in.eta1[k][j][i])
				}
				bx := in.faceB1(k, j, i)
				c.ConsToPrim1D(&in.ulX1[k][j][i], &in.wl[i], bx)
				c.ConsToPrim1D(&in.urX1[k][j][i], &in.wr[i], bx)
				in.rs.Flux(&in.ulX1[k][j][i], &in.urX1[k][j][i],
					&in.wl[i], &in.wr[i], bx, etah, &in.x1Flux[k][j][i])
			}
		}
	}
}

// finalFluxX2 computes the second-pass x2 fluxes.
func (in *Integrator) finalFluxX2(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke

	for k := ks - 1; k <= ke+1; k++ {
		for j := js; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				etah := 0.0
				if c.HCorrection {
					etah = max2(in.eta1[k][j-1][i], in.eta1[k][j][i])
					etah = max2(etah, in.eta1[k][j-1][i+1])
					etah = max2(etah, in.eta1[k][j][i+1])

					etah = max2(etah, in.eta3[k][j-1][i])
					etah = max2(etah, in.eta3[k][j][i])
					etah = max2(etah, in.eta3[k+1][j-1][i])
					etah = max2(etah, in.eta3[k+1][j][i])

					etah = max2(etah, in.eta2[k][j][i])
				}
				bx := in.faceB2(k, j, i)
				c.ConsToPrim1D(&in.ulX2[k][j][i], &in.wl[i], bx)
				c.ConsToPrim1D(&in.urX2[k][j][i], &in.wr[i], bx)
				in.rs.Flux(&in.ulX2[k][j][i], &in.urX2[k][j][i],
					&in.wl[i], &in.wr[i], bx, etah, &in.x2Flux[k][j][i])
			}
		}
	}
}

// finalFluxX3 computes the second-pass x3 fluxes.
func (in *Integrator) finalFluxX3(g *Grid) {
	c := &in.cfg
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke

	for k := ks; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				etah := 0.0
				if c.HCorrection {
					etah = max2(in.eta1[k-1][j][i], in.eta1[k][j][i])
					etah = max2(etah, in.eta1[k-1][j][i+1])
					etah = max2(etah, in.eta1[k][j][i+1])

					etah = max2(etah, in.eta2[k-1][j][i])
					etah = max2(etah, in.eta2[k][j][i])
					etah = max2(etah, in.eta2[k-1][j+1][i])
					etah = max2(etah, in.eta2[k][j+1][i])

					etah = max2(etah, in.eta3[k][j][i])
				}
				bx := in.faceB3(k, j, i)
				c.ConsToPrim1D(&in.ulX3[k][j][i], &in.wl[i], bx)
				c.ConsToPrim1D(&in.urX3[k][j][i], &in.wr[i], bx)
				in.rs.Flux(&in.ulX3[k][j][i], &in.urX3[k][j][i],
					&in.wl[i], &in.wr[i], bx, etah, &in.x3Flux[k][j][i])
			}
		}
	}
}

func (in *Integrator) faceB1(k, j, i int) float64 {
	if in.cfg.MHD {
		return in.b1Face[k][j][i]
	}
	return 0.0
}

func (in *Integrator) faceB2(k, j, i int) float64 {
	if in.cfg.MHD {
		return in.b2Face[k][j][i]
	}
	return 0.0
}

func (in *Integrator) faceB3(k, j, i int) float64 {
	if in.cfg.MHD {
		return in.b3Face[k][j][i]
	}
	return 0.0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
