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
	"os"
	"path/filepath"
	"testing"
)

const testConfig = `
Problem = "acoustic-wave"
Nx1 = 32
Nx2 = 1
Nx3 = 1
X1Min = 0.0
X1Max = 1.0
X2Min = 0.0
X2Max = 1.0
X3Min = 0.0
X3Max = 1.0
Gamma = 1.6666666666666667
Amplitude = 1e-6
CFL = 0.4
TMax = 0.05
MaxSteps = 100
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	if err := os.WriteFile(path, []byte(testConfig), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRunConfig(t *testing.T) {
	cfg := InitializeConfig()
	cfg.Set("config", writeTestConfig(t))
	rc, err := loadRunConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if rc.Problem != "acoustic-wave" || rc.Nx1 != 32 || rc.CFL != 0.4 {
		t.Errorf("config not decoded: %+v", rc)
	}
}

func TestRunAcousticWave(t *testing.T) {
	dir := t.TempDir()
	rc := &RunConfig{
		Problem:   "acoustic-wave",
		Nx1:       32, Nx2: 1, Nx3: 1,
		X1Max:     1, X2Max: 1, X3Max: 1,
		Gamma:     5.0 / 3.0,
		Amplitude: 1e-6,
		CFL:       0.4,
		TMax:      0.05,
		MaxSteps:  100,
		OutputFile: filepath.Join(dir, "out.ncf"),
		PlotFile:   filepath.Join(dir, "out.png"),
	}
	if err := rc.check(); err != nil {
		t.Fatal(err)
	}
	if err := Run(rc); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(rc.OutputFile); err != nil {
		t.Errorf("state dump not written: %v", err)
	}
	if _, err := os.Stat(rc.PlotFile); err != nil {
		t.Errorf("plot not written: %v", err)
	}
}

func TestRunConfigValidation(t *testing.T) {
	rc := &RunConfig{Problem: "sod", Nx1: 0, Nx2: 1, Nx3: 1,
		X1Max: 1, X2Max: 1, X3Max: 1, Gamma: 1.4, CFL: 0.4, TMax: 1}
	if err := rc.check(); err == nil {
		t.Errorf("zero-size grid accepted")
	}
	rc.Nx1 = 8
	rc.CFL = 0.9
	if err := rc.check(); err == nil {
		t.Errorf("CFL above 0.5 accepted")
	}
}
