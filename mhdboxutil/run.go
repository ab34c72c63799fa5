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

package mhdboxutil

import (
	"fmt"
	"math"
	"os"

	"github.com/astromodel/mhdbox"
	"github.com/astromodel/mhdbox/prob"
	"github.com/astromodel/mhdbox/science/reconstruct/donorcell"
	"github.com/astromodel/mhdbox/science/reconstruct/plm"
	"github.com/astromodel/mhdbox/science/riemann/hlle"
	log "github.com/sirupsen/logrus"
)

// Run executes the simulation described by rc: it builds the grid and
// integrator, advances the state until TMax or MaxSteps, and writes the
// configured outputs. Time-step selection is the driver's job — the
// integrator takes whatever dt the grid carries — and uses a CFL scan of
// the fast-mode crossing times.
func Run(rc *RunConfig) error {
	g, cfg, err := buildProblem(rc)
	if err != nil {
		return err
	}

	var rec mhdbox.Reconstructor = plm.New()
	if rc.FirstOrder {
		rec = donorcell.New()
	}
	integ := mhdbox.New(cfg, rec,
		&hlle.Solver{Gamma: rc.Gamma}, rc.Nx1, rc.Nx2, rc.Nx3)
	defer integ.Destroy()

	log.WithFields(log.Fields{
		"problem": rc.Problem,
		"grid":    fmt.Sprintf("%dx%dx%d", rc.Nx1, rc.Nx2, rc.Nx3),
		"tmax":    rc.TMax,
	}).Info("starting run")

	nextDump := rc.OutputInterval
	for step := 0; step < rc.MaxSteps && g.Time < rc.TMax; step++ {
		applyBCs(g, rc)
		g.Dt = timestep(g, &cfg, rc.CFL)
		if g.Time+g.Dt > rc.TMax {
			g.Dt = rc.TMax - g.Time
		}
		if err := integ.Step(g, nil); err != nil {
			return fmt.Errorf("mhdboxutil: step %d: %v", step, err)
		}

		if step%100 == 0 {
			log.WithFields(log.Fields{
				"step": step,
				"t":    g.Time,
				"dt":   g.Dt,
			}).Info("advanced")
		}
		if rc.OutputFile != "" && rc.OutputInterval > 0 && g.Time >= nextDump {
			if err := dump(g, fmt.Sprintf("%s.%05d", rc.OutputFile, step)); err != nil {
				return err
			}
			nextDump += rc.OutputInterval
		}
	}

	if rc.OutputFile != "" {
		if err := dump(g, rc.OutputFile); err != nil {
			return err
		}
	}
	if rc.PlotFile != "" {
		if err := PlotDensityProfile(g, rc.PlotFile); err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{"t": g.Time}).Info("run finished")
	return nil
}

func buildProblem(rc *RunConfig) (*mhdbox.Grid, mhdbox.Config, error) {
	dx1 := (rc.X1Max - rc.X1Min) / float64(rc.Nx1)
	dx2 := (rc.X2Max - rc.X2Min) / float64(rc.Nx2)
	dx3 := (rc.X3Max - rc.X3Min) / float64(rc.Nx3)
	g := mhdbox.NewGrid(rc.Nx1, rc.Nx2, rc.Nx3, rc.NScalars,
		dx1, dx2, dx3, rc.X1Min, rc.X2Min, rc.X3Min)

	cfg := mhdbox.Config{
		Gamma:       rc.Gamma,
		NScalars:    rc.NScalars,
		HCorrection: rc.HCorrection,
	}

	switch rc.Problem {
	case "sod":
		prob.Sod(g, rc.Gamma)
	case "acoustic-wave":
		prob.AcousticWave(g, rc.Gamma, rc.Amplitude, 1, 0)
	case "alfven":
		cfg.MHD = true
		prob.CPAlfven(g, rc.Gamma, rc.Amplitude, 1.0)
	case "orszag-tang":
		cfg.MHD = true
		prob.OrszagTang(g, rc.Gamma)
	case "field-loop":
		cfg.MHD = true
		prob.FieldLoop(g, rc.Gamma, rc.Amplitude, 0.3, 1.0, 0.5)
	case "shearing-box":
		cfg.ShearingBox = true
		cfg.Fargo = rc.Fargo
		cfg.Omega = rc.Omega
		prob.ShearingBoxEq(g, rc.Gamma, 1.0, 1.0, rc.Omega, rc.Fargo)
	default:
		return nil, cfg, fmt.Errorf("mhdboxutil: unknown problem %q", rc.Problem)
	}
	return g, cfg, nil
}

func applyBCs(g *mhdbox.Grid, rc *RunConfig) {
	mhdbox.PeriodicBCs(g)
	if rc.OutflowX1 {
		mhdbox.OutflowX1BCs(g)
	}
}

// timestep returns the CFL-limited time step from the fastest signal
// speed in each direction.
func timestep(g *mhdbox.Grid, cfg *mhdbox.Config, cflNum float64) float64 {
	dtMin := math.Inf(1)
	var u1 mhdbox.Cons1D
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				u := &g.U[k][j][i]
				di := 1.0 / u.D

				u1 = mhdbox.Cons1D{D: u.D, Mx: u.M1, My: u.M2, Mz: u.M3,
					E: u.E, By: u.B2c, Bz: u.B3c}
				cf := cfg.Cfast(&u1, u.B1c)
				if dt := g.Dx1 / (math.Abs(u.M1*di) + cf); dt < dtMin {
					dtMin = dt
				}

				u1 = mhdbox.Cons1D{D: u.D, Mx: u.M2, My: u.M3, Mz: u.M1,
					E: u.E, By: u.B3c, Bz: u.B1c}
				cf = cfg.Cfast(&u1, u.B2c)
				if dt := g.Dx2 / (math.Abs(u.M2*di) + cf); dt < dtMin {
					dtMin = dt
				}

				u1 = mhdbox.Cons1D{D: u.D, Mx: u.M3, My: u.M1, Mz: u.M2,
					E: u.E, By: u.B1c, Bz: u.B2c}
				cf = cfg.Cfast(&u1, u.B3c)
				if dt := g.Dx3 / (math.Abs(u.M3*di) + cf); dt < dtMin {
					dtMin = dt
				}
			}
		}
	}
	return cflNum * dtMin
}

func dump(g *mhdbox.Grid, path string) error {
	f, err := os.Create(os.ExpandEnv(path))
	if err != nil {
		return fmt.Errorf("mhdboxutil: creating output file: %v", err)
	}
	defer f.Close()
	if err := g.WriteNetCDF(f); err != nil {
		return err
	}
	log.WithFields(log.Fields{"file": path, "t": g.Time}).Info("wrote state dump")
	return nil
}
