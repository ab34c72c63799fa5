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

import "fmt"

// Integrator owns the scratch arrays of the CTU/CT update and advances a
// Grid by one time step per call to Step. It is sized once at construction
// and may be reused for any grid whose dimensions do not exceed the
// construction sizes. An Integrator is not safe for concurrent use.
type Integrator struct {
	cfg Config
	rec Reconstructor
	rs  RiemannSolver

	nx1, nx2, nx3 int

	// L/R states of conserved variables and fluxes at each cell face.
	ulX1, urX1 [][][]Cons1D
	ulX2, urX2 [][][]Cons1D
	ulX3, urX3 [][][]Cons1D
	x1Flux     [][][]Cons1D
	x2Flux     [][][]Cons1D
	x3Flux     [][][]Cons1D

	// Interface magnetic fields and EMFs.
	b1Face, b2Face, b3Face    [][][]float64
	emf1, emf2, emf3          [][][]float64
	emf1cc, emf2cc, emf3cc    [][][]float64

	// 1D scratch pencils for reconstruction and flux evaluation.
	bxc, bxi []float64
	u1d      []Cons1D
	w        []Prim1D
	wl, wr   []Prim1D

	// Density and pressure at the half step, for MHD, cooling and gravity.
	dhalf, phalf [][][]float64

	// Wave-speed fields for the H-correction of Sanders et al. (1998).
	eta1, eta2, eta3 [][][]float64

	// Remapped y-EMF at the radial boundaries of a shearing box.
	remapEyIib, remapEyOib [][]float64
}

// New allocates an Integrator for grids of up to nx1 × nx2 × nx3 live
// cells under the given configuration and collaborator implementations.
func New(cfg Config, rec Reconstructor, rs RiemannSolver, nx1, nx2, nx3 int) *Integrator {
	n1 := nx1 + 2*Nghost
	n2 := nx2 + 2*Nghost
	n3 := nx3 + 2*Nghost
	nmax := n1
	if n2 > nmax {
		nmax = n2
	}
	if n3 > nmax {
		nmax = n3
	}
	ns := cfg.NScalars

	in := &Integrator{
		cfg: cfg, rec: rec, rs: rs,
		nx1: nx1, nx2: nx2, nx3: nx3,
	}

	in.ulX1 = makeCons3D(n3, n2, n1, ns)
	in.urX1 = makeCons3D(n3, n2, n1, ns)
	in.ulX2 = makeCons3D(n3, n2, n1, ns)
	in.urX2 = makeCons3D(n3, n2, n1, ns)
	in.ulX3 = makeCons3D(n3, n2, n1, ns)
	in.urX3 = makeCons3D(n3, n2, n1, ns)
	in.x1Flux = makeCons3D(n3, n2, n1, ns)
	in.x2Flux = makeCons3D(n3, n2, n1, ns)
	in.x3Flux = makeCons3D(n3, n2, n1, ns)

	in.u1d = makeCons1D(nmax, ns)
	in.w = makePrim1D(nmax, ns)
	in.wl = makePrim1D(nmax, ns)
	in.wr = makePrim1D(nmax, ns)

	if cfg.MHD {
		in.b1Face = makeFloat3D(n3, n2, n1)
		in.b2Face = makeFloat3D(n3, n2, n1)
		in.b3Face = makeFloat3D(n3, n2, n1)
		in.emf1 = makeFloat3D(n3, n2, n1)
		in.emf2 = makeFloat3D(n3, n2, n1)
		in.emf3 = makeFloat3D(n3, n2, n1)
		in.emf1cc = makeFloat3D(n3, n2, n1)
		in.emf2cc = makeFloat3D(n3, n2, n1)
		in.emf3cc = makeFloat3D(n3, n2, n1)
		in.bxc = make([]float64, nmax)
		in.bxi = make([]float64, nmax)
	}

	if cfg.MHD || cfg.StaticGravPot != nil || cfg.Cooling != nil || cfg.ShearingBox {
		in.dhalf = makeFloat3D(n3, n2, n1)
		in.phalf = makeFloat3D(n3, n2, n1)
	}

	if cfg.HCorrection {
		in.eta1 = makeFloat3D(n3, n2, n1)
		in.eta2 = makeFloat3D(n3, n2, n1)
		in.eta3 = makeFloat3D(n3, n2, n1)
	}

	if cfg.ShearingBox {
		in.remapEyIib = makeFloat2D(n3, n2)
		in.remapEyOib = makeFloat2D(n3, n2)
	}

	return in
}

// Config returns the configuration the Integrator was built with.
func (in *Integrator) Config() Config { return in.cfg }

// Destroy releases the scratch arrays. The Integrator must not be used
// afterwards.
func (in *Integrator) Destroy() {
	*in = Integrator{}
}

// Step advances g by one time step g.Dt. Ghost zones must hold valid
// boundary data on entry; on return the cell-centered state, the face
// fields, and g.Time have been advanced. d describes the parallel
// decomposition and may be nil for a single-process run.
//
// The update proceeds in the fixed phase order of the six-solve CTU
// scheme: three directional Riemann sweeps, corner-EMF construction and a
// half-step CT update of the face fields, transverse flux-gradient
// corrections of every interface state, the half-step predictor, a second
// set of Riemann solves, the full-step CT update, full-step source terms,
// and the conservative cell update.
func (in *Integrator) Step(g *Grid, d *Domain) error {
	if in.rec == nil || in.rs == nil {
		return fmt.Errorf("mhdbox: Step called without reconstruction or Riemann solver")
	}
	if in.u1d == nil {
		return fmt.Errorf("mhdbox: Step called on a destroyed Integrator")
	}
	if g.Nx1 > in.nx1 || g.Nx2 > in.nx2 || g.Nx3 > in.nx3 {
		return fmt.Errorf("mhdbox: grid %dx%dx%d exceeds integrator size %dx%dx%d",
			g.Nx1, g.Nx2, g.Nx3, in.nx1, in.nx2, in.nx3)
	}
	if g.NScalars != in.cfg.NScalars {
		return fmt.Errorf("mhdbox: grid has %d scalars, integrator configured for %d",
			g.NScalars, in.cfg.NScalars)
	}
	if in.cfg.SelfGravity && g.Phi == nil {
		return fmt.Errorf("mhdbox: self-gravity enabled but grid has no potential array")
	}

	// Steps 1-3: L/R interface states and first-pass fluxes per direction.
	in.sweepX1(g)
	in.sweepX2(g)
	in.sweepX3(g)

	// Step 4: corner EMFs from the time-n cell-centered state, then the
	// half-step CT update of the face fields.
	if in.cfg.MHD {
		in.cellCenteredEMF(g)
		in.cornerEMF1(g)
		in.cornerEMF2(g)
		in.cornerEMF3(g)
		in.halfStepFaceFields(g)
	}

	// Steps 5-7: transverse flux-gradient corrections of the interface
	// states, with the per-face MHD, gravity, and rotating-frame terms.
	in.correctX1(g)
	in.correctX2(g)
	in.correctX3(g)

	// Step 8: cell-centered density, pressure, and EMFs at t + dt/2.
	in.halfStepPredictor(g)

	// Step 9: second Riemann sweep on the corrected states.
	if in.cfg.HCorrection {
		in.computeEta(g)
	}
	in.finalFluxX1(g)
	in.finalFluxX2(g)
	in.finalFluxX3(g)

	// Step 10: corner EMFs from the half-step state and the full CT
	// update of the face fields.
	if in.cfg.MHD {
		in.cornerEMF1(g)
		in.cornerEMF2(g)
		in.cornerEMF3(g)
		if in.cfg.ShearingBox {
			in.remapEy(g, d)
		}
		in.fullStepFaceFields(g)
	}

	// Step 11: full-step source terms using the half-step state.
	in.applySourceTerms(g)

	// Step 12: conservative update and cell-centered field averaging.
	in.conservativeUpdate(g)

	g.Time += g.Dt
	return nil
}
