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

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// DataVersion identifies the on-disk layout of state dumps. It should
// change whenever the set of variables written by WriteNetCDF changes.
const DataVersion = "1.1.0"

// cellVars are the cell-centered fields written to every dump, in write
// order.
var cellVars = []struct {
	name, description string
	get               func(u *ConsState) float64
	set               func(u *ConsState, v float64)
}{
	{"d", "mass density",
		func(u *ConsState) float64 { return u.D },
		func(u *ConsState, v float64) { u.D = v }},
	{"M1", "x1 momentum density",
		func(u *ConsState) float64 { return u.M1 },
		func(u *ConsState, v float64) { u.M1 = v }},
	{"M2", "x2 momentum density",
		func(u *ConsState) float64 { return u.M2 },
		func(u *ConsState, v float64) { u.M2 = v }},
	{"M3", "x3 momentum density",
		func(u *ConsState) float64 { return u.M3 },
		func(u *ConsState, v float64) { u.M3 = v }},
	{"E", "total energy density",
		func(u *ConsState) float64 { return u.E },
		func(u *ConsState, v float64) { u.E = v }},
	{"B1c", "cell-centered x1 magnetic field",
		func(u *ConsState) float64 { return u.B1c },
		func(u *ConsState, v float64) { u.B1c = v }},
	{"B2c", "cell-centered x2 magnetic field",
		func(u *ConsState) float64 { return u.B2c },
		func(u *ConsState, v float64) { u.B2c = v }},
	{"B3c", "cell-centered x3 magnetic field",
		func(u *ConsState) float64 { return u.B3c },
		func(u *ConsState, v float64) { u.B3c = v }},
}

// WriteNetCDF writes the live zones of g to w as a NetCDF state dump: one
// variable per conserved field, the three face fields on their staggered
// dimensions, and the grid geometry and time as global attributes.
func (g *Grid) WriteNetCDF(w *os.File) error {
	h := cdf.NewHeader(
		[]string{"x", "y", "z", "xStagger", "yStagger", "zStagger"},
		[]int{g.Nx1, g.Nx2, g.Nx3, g.Nx1 + 1, g.Nx2 + 1, g.Nx3 + 1})
	h.AddAttribute("", "comment", "MHDBox state dump")
	h.AddAttribute("", "data_version", DataVersion)
	h.AddAttribute("", "dx1", []float64{g.Dx1})
	h.AddAttribute("", "dx2", []float64{g.Dx2})
	h.AddAttribute("", "dx3", []float64{g.Dx3})
	h.AddAttribute("", "x1min", []float64{g.X1Min})
	h.AddAttribute("", "x2min", []float64{g.X2Min})
	h.AddAttribute("", "x3min", []float64{g.X3Min})
	h.AddAttribute("", "time", []float64{g.Time})
	h.AddAttribute("", "dt", []float64{g.Dt})
	h.AddAttribute("", "nscalars", []int32{int32(g.NScalars)})

	for _, v := range cellVars {
		h.AddVariable(v.name, []string{"z", "y", "x"}, []float32{0})
		h.AddAttribute(v.name, "description", v.description)
	}
	for n := 0; n < g.NScalars; n++ {
		h.AddVariable(scalarName(n), []string{"z", "y", "x"}, []float32{0})
		h.AddAttribute(scalarName(n), "description", "passive scalar density")
	}
	h.AddVariable("B1i", []string{"z", "y", "xStagger"}, []float32{0})
	h.AddVariable("B2i", []string{"z", "yStagger", "x"}, []float32{0})
	h.AddVariable("B3i", []string{"zStagger", "y", "x"}, []float32{0})
	for _, v := range []string{"B1i", "B2i", "B3i"} {
		h.AddAttribute(v, "description", "face-centered magnetic field")
	}
	h.Define()

	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return fmt.Errorf("mhdbox: creating netcdf file: %v", err)
	}

	for _, v := range cellVars {
		data := sparse.ZerosDense(g.Nx3, g.Nx2, g.Nx1)
		for k := g.Ks; k <= g.Ke; k++ {
			for j := g.Js; j <= g.Je; j++ {
				for i := g.Is; i <= g.Ie; i++ {
					data.Set(v.get(&g.U[k][j][i]), k-g.Ks, j-g.Js, i-g.Is)
				}
			}
		}
		if err := writeNCF(f, v.name, data); err != nil {
			return err
		}
	}
	for n := 0; n < g.NScalars; n++ {
		data := sparse.ZerosDense(g.Nx3, g.Nx2, g.Nx1)
		for k := g.Ks; k <= g.Ke; k++ {
			for j := g.Js; j <= g.Je; j++ {
				for i := g.Is; i <= g.Ie; i++ {
					data.Set(g.U[k][j][i].S[n], k-g.Ks, j-g.Js, i-g.Is)
				}
			}
		}
		if err := writeNCF(f, scalarName(n), data); err != nil {
			return err
		}
	}

	if err := writeNCF(f, "B1i", g.faceArray(g.B1i, 0, 0, 1)); err != nil {
		return err
	}
	if err := writeNCF(f, "B2i", g.faceArray(g.B2i, 0, 1, 0)); err != nil {
		return err
	}
	if err := writeNCF(f, "B3i", g.faceArray(g.B3i, 1, 0, 0)); err != nil {
		return err
	}

	if err := cdf.UpdateNumRecs(w); err != nil {
		return fmt.Errorf("mhdbox: finalizing netcdf file: %v", err)
	}
	return nil
}

// ReadNetCDF restores a grid from a state dump written by WriteNetCDF.
// Dumps store 32-bit values, so the restored state carries single
// precision.
func ReadNetCDF(r *os.File) (*Grid, error) {
	f, err := cdf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("mhdbox: opening netcdf file: %v", err)
	}
	if v, ok := f.Header.GetAttribute("", "data_version").(string); !ok || v != DataVersion {
		return nil, fmt.Errorf("mhdbox: state dump version %v is not compatible with %s",
			f.Header.GetAttribute("", "data_version"), DataVersion)
	}

	dims := f.Header.Lengths("d")
	if len(dims) != 3 {
		return nil, fmt.Errorf("mhdbox: state dump variable d has %d dimensions", len(dims))
	}
	nx3, nx2, nx1 := dims[0], dims[1], dims[2]
	ns := int(f.Header.GetAttribute("", "nscalars").([]int32)[0])

	g := NewGrid(nx1, nx2, nx3, ns,
		f.Header.GetAttribute("", "dx1").([]float64)[0],
		f.Header.GetAttribute("", "dx2").([]float64)[0],
		f.Header.GetAttribute("", "dx3").([]float64)[0],
		f.Header.GetAttribute("", "x1min").([]float64)[0],
		f.Header.GetAttribute("", "x2min").([]float64)[0],
		f.Header.GetAttribute("", "x3min").([]float64)[0])
	g.Time = f.Header.GetAttribute("", "time").([]float64)[0]
	g.Dt = f.Header.GetAttribute("", "dt").([]float64)[0]

	for _, v := range cellVars {
		data, err := readNCF(f, v.name)
		if err != nil {
			return nil, err
		}
		for k := g.Ks; k <= g.Ke; k++ {
			for j := g.Js; j <= g.Je; j++ {
				for i := g.Is; i <= g.Ie; i++ {
					v.set(&g.U[k][j][i], data.Get(k-g.Ks, j-g.Js, i-g.Is))
				}
			}
		}
	}
	for n := 0; n < ns; n++ {
		data, err := readNCF(f, scalarName(n))
		if err != nil {
			return nil, err
		}
		for k := g.Ks; k <= g.Ke; k++ {
			for j := g.Js; j <= g.Je; j++ {
				for i := g.Is; i <= g.Ie; i++ {
					g.U[k][j][i].S[n] = data.Get(k-g.Ks, j-g.Js, i-g.Is)
				}
			}
		}
	}

	for _, fv := range []struct {
		name       string
		arr        [][][]float64
		dk, dj, di int
	}{
		{"B1i", g.B1i, 0, 0, 1},
		{"B2i", g.B2i, 0, 1, 0},
		{"B3i", g.B3i, 1, 0, 0},
	} {
		data, err := readNCF(f, fv.name)
		if err != nil {
			return nil, err
		}
		for k := 0; k < nx3+fv.dk; k++ {
			for j := 0; j < nx2+fv.dj; j++ {
				for i := 0; i < nx1+fv.di; i++ {
					fv.arr[k+g.Ks][j+g.Js][i+g.Is] = data.Get(k, j, i)
				}
			}
		}
	}

	return g, nil
}

// faceArray packs a face field into a dense array spanning the live zones
// plus the staggered extra layer in the face-normal direction.
func (g *Grid) faceArray(b [][][]float64, dk, dj, di int) *sparse.DenseArray {
	data := sparse.ZerosDense(g.Nx3+dk, g.Nx2+dj, g.Nx1+di)
	for k := g.Ks; k <= g.Ke+dk; k++ {
		for j := g.Js; j <= g.Je+dj; j++ {
			for i := g.Is; i <= g.Ie+di; i++ {
				data.Set(b[k][j][i], k-g.Ks, j-g.Js, i-g.Is)
			}
		}
	}
	return data
}

func scalarName(n int) string { return fmt.Sprintf("s%02d", n) }

func writeNCF(f *cdf.File, name string, data *sparse.DenseArray) error {
	n := 1
	for _, v := range data.Shape {
		n *= v
	}
	if len(data.Elements) != n {
		return fmt.Errorf("mhdbox: variable %s dims are %d but array length is %d",
			name, n, len(data.Elements))
	}
	data32 := make([]float32, len(data.Elements))
	for i, e := range data.Elements {
		data32[i] = float32(e)
	}
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	if _, err := w.Write(data32); err != nil {
		return fmt.Errorf("mhdbox: writing variable %s to netcdf file: %v", name, err)
	}
	return nil
}

func readNCF(f *cdf.File, name string) (*sparse.DenseArray, error) {
	dims := f.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("mhdbox: variable %v not in state dump", name)
	}
	nread := 1
	for _, dim := range dims {
		nread *= dim
	}
	r := f.Reader(name, nil, nil)
	buf := r.Zero(nread)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("mhdbox: reading netcdf variable %s: %v", name, err)
	}
	data := sparse.ZerosDense(dims...)
	for i, val := range buf.([]float32) {
		data.Elements[i] = float64(val)
	}
	return data, nil
}
