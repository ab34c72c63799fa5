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

	"github.com/astromodel/mhdbox"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotDensityProfile writes a PNG plot of the density along the x1 pencil
// through the domain center.
func PlotDensityProfile(g *mhdbox.Grid, path string) error {
	j := (g.Js + g.Je) / 2
	k := (g.Ks + g.Ke) / 2

	pts := make(plotter.XYs, g.Nx1)
	for i := g.Is; i <= g.Ie; i++ {
		x1, _, _ := g.CellCenter(i, j, k)
		pts[i-g.Is].X = x1
		pts[i-g.Is].Y = g.U[k][j][i].D
	}

	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("mhdboxutil: creating plot: %v", err)
	}
	p.Title.Text = fmt.Sprintf("density, t = %.4g", g.Time)
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "density"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("mhdboxutil: creating line plot: %v", err)
	}
	p.Add(line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("mhdboxutil: saving plot to %s: %v", path, err)
	}
	return nil
}
