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
	"encoding/gob"
	"fmt"
	"io"
)

type versionGrid struct {
	// DataVersion holds the state layout version of the software that
	// saved this data; it must match DataVersion when loading.
	DataVersion string
	Grid        *Grid
}

// Save writes the full grid state (ghost zones included) to w as a gob
// stream, preserving double precision; use it for restart files where
// WriteNetCDF would lose accuracy.
func (g *Grid) Save(w io.Writer) error {
	e := gob.NewEncoder(w)
	if err := e.Encode(versionGrid{DataVersion: DataVersion, Grid: g}); err != nil {
		return fmt.Errorf("mhdbox: Grid.Save: %v", err)
	}
	return nil
}

// Load restores a grid previously written by Save.
func Load(r io.Reader) (*Grid, error) {
	dec := gob.NewDecoder(r)
	var data versionGrid
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("mhdbox: Load: %v", err)
	}
	if data.DataVersion != DataVersion {
		return nil, fmt.Errorf("mhdbox: saved state version %s is not compatible with "+
			"the required version %s", data.DataVersion, DataVersion)
	}
	return data.Grid, nil
}
