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

package mhdbox_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/astromodel/mhdbox"
	"github.com/astromodel/mhdbox/prob"
)

func TestNetCDFRoundTrip(t *testing.T) {
	g := mhdbox.NewGrid(16, 8, 4, 1, 1.0/16, 1.0/8, 1.0/4, 0, 0, 0)
	prob.OrszagTang(g, gamma)
	g.Time = 0.25
	g.Dt = 0.001

	path := filepath.Join(t.TempDir(), "state.ncf")
	w, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.WriteNetCDF(w); err != nil {
		t.Fatal(err)
	}
	w.Close()

	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	g2, err := mhdbox.ReadNetCDF(r)
	if err != nil {
		t.Fatal(err)
	}

	if g2.Nx1 != 16 || g2.Nx2 != 8 || g2.Nx3 != 4 || g2.NScalars != 1 {
		t.Fatalf("restored grid has wrong shape: %dx%dx%d, %d scalars",
			g2.Nx1, g2.Nx2, g2.Nx3, g2.NScalars)
	}
	if different(g2.Time, 0.25, 1e-14) {
		t.Errorf("time not preserved: %g", g2.Time)
	}

	// Dumps are single precision.
	const tol = 1e-6
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				a, b := &g.U[k][j][i], &g2.U[k][j][i]
				if different(a.D, b.D, tol) || different(a.E, b.E, tol) ||
					different(a.M1, b.M1, tol) || different(a.B2c, b.B2c, tol) ||
					different(a.S[0], b.S[0], tol) {
					t.Fatalf("state mismatch at (%d,%d,%d)", k, j, i)
				}
				if different(g.B1i[k][j][i], g2.B1i[k][j][i], tol) {
					t.Fatalf("face field mismatch at (%d,%d,%d)", k, j, i)
				}
			}
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := mhdbox.NewGrid(8, 8, 2, 2, 1.0/8, 1.0/8, 0.5, 0, 0, 0)
	prob.Sod(g, 1.4)
	g.Time = 0.125

	var buf bytes.Buffer
	if err := g.Save(&buf); err != nil {
		t.Fatal(err)
	}
	g2, err := mhdbox.Load(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if g2.Time != g.Time || g2.Nx1 != g.Nx1 || g2.NScalars != g.NScalars {
		t.Fatalf("restored grid metadata mismatch")
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				a, b := &g.U[k][j][i], &g2.U[k][j][i]
				if a.D != b.D || a.E != b.E || a.S[1] != b.S[1] {
					t.Fatalf("gob state mismatch at (%d,%d,%d)", k, j, i)
				}
			}
		}
	}
}
