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

// Package mhdboxutil holds the command-line interface and run driver for
// the MHDBox model.
package mhdboxutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/astromodel/mhdbox"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
type Cfg struct {
	*viper.Viper

	Root, versionCmd, runCmd *cobra.Command
}

var options = []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	isInputFile            bool
	isOutputFile           bool
}{
	{
		name: "config",
		usage: `
              config specifies the path to a TOML run configuration file.`,
		shorthand:   "c",
		defaultVal:  "",
		isInputFile: true,
	},
	{
		name: "OutputFile",
		usage: `
              OutputFile is the path of the NetCDF state dump to write. An
              empty value disables dumps.`,
		shorthand:    "o",
		defaultVal:   "",
		isOutputFile: true,
	},
	{
		name: "PlotFile",
		usage: `
              PlotFile is the path of a PNG density-profile plot to write
              at the end of the run. An empty value disables plotting.`,
		defaultVal:   "",
		isOutputFile: true,
	},
	{
		name: "MaxSteps",
		usage: `
              MaxSteps caps the number of time steps regardless of TMax.`,
		defaultVal: 10000,
	},
}

// InitializeConfig sets up the CLI commands and the viper-backed
// configuration.
func InitializeConfig() *Cfg {
	cfg := &Cfg{
		Viper: viper.New(),
	}

	cfg.Root = &cobra.Command{
		Use:   "mhdbox",
		Short: "A finite-volume ideal-MHD model.",
		Long: `MHDBox advances an ideal magnetofluid on a uniform Cartesian grid with
the unsplit corner-transport-upwind scheme and constrained transport.
Configuration is read from a TOML file given with the --config flag.
OutputFile and PlotFile given as command-line arguments or as environment
variables named 'MHDBOX_var' override the file; MaxSteps given that way
applies only when the file does not set it.`,
		DisableAutoGenTag: true,
	}

	cfg.versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("MHDBox v%s\n", mhdbox.Version)
		},
		DisableAutoGenTag: true,
	}

	cfg.runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a simulation.",
		Long: `run advances the problem described by the configuration file until TMax
or MaxSteps is reached, writing state dumps and an optional profile plot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := loadRunConfig(cfg)
			if err != nil {
				return err
			}
			return Run(rc)
		},
		DisableAutoGenTag: true,
	}

	for _, option := range options {
		flagsets := []*pflag.FlagSet{cfg.Root.PersistentFlags()}
		for _, set := range flagsets {
			switch v := option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, v, strings.TrimSpace(option.usage))
				} else {
					set.StringP(option.name, option.shorthand, v, strings.TrimSpace(option.usage))
				}
			case int:
				set.Int(option.name, v, strings.TrimSpace(option.usage))
			default:
				panic(fmt.Sprintf("mhdboxutil: invalid option type %T", option.defaultVal))
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	cfg.Root.AddCommand(cfg.versionCmd, cfg.runCmd)
	cfg.SetEnvPrefix("MHDBOX")
	cfg.AutomaticEnv()
	return cfg
}

// RunConfig describes one simulation run. It is decoded from the TOML
// file named by the config option.
type RunConfig struct {
	// Problem selects the initial condition: "sod", "acoustic-wave",
	// "alfven", "orszag-tang", "field-loop", or "shearing-box".
	Problem string

	Nx1, Nx2, Nx3 int
	X1Min, X2Min, X3Min,
	X1Max, X2Max, X3Max float64

	Gamma     float64
	Amplitude float64 // wave problems
	NScalars  int

	CFL      float64
	TMax     float64
	MaxSteps int

	// OutflowX1 switches the x1 boundary from periodic to zero-gradient.
	OutflowX1 bool

	// Omega and Fargo configure the rotating frame of the shearing-box
	// problem.
	Omega float64
	Fargo bool

	// FirstOrder selects donor-cell reconstruction instead of
	// piecewise-linear, for runs that need maximum robustness.
	FirstOrder bool

	HCorrection bool

	OutputFile     string
	OutputInterval float64 // simulation time between dumps; 0 = final only
	PlotFile       string
}

func loadRunConfig(cfg *Cfg) (*RunConfig, error) {
	file := cfg.GetString("config")
	if file == "" {
		return nil, fmt.Errorf("mhdboxutil: no configuration file specified (use --config)")
	}
	rc := &RunConfig{
		Gamma:    5.0 / 3.0,
		CFL:      0.4,
		MaxSteps: cast.ToInt(cfg.Get("MaxSteps")),
	}
	if _, err := toml.DecodeFile(os.ExpandEnv(file), rc); err != nil {
		return nil, fmt.Errorf("mhdboxutil: reading configuration file %s: %v", file, err)
	}
	if s := cfg.GetString("OutputFile"); s != "" {
		rc.OutputFile = s
	}
	if s := cfg.GetString("PlotFile"); s != "" {
		rc.PlotFile = s
	}
	if err := rc.check(); err != nil {
		return nil, err
	}
	return rc, nil
}

func (rc *RunConfig) check() error {
	if rc.Nx1 < 1 || rc.Nx2 < 1 || rc.Nx3 < 1 {
		return fmt.Errorf("mhdboxutil: invalid grid size %dx%dx%d", rc.Nx1, rc.Nx2, rc.Nx3)
	}
	if rc.X1Max <= rc.X1Min || rc.X2Max <= rc.X2Min || rc.X3Max <= rc.X3Min {
		return fmt.Errorf("mhdboxutil: domain extents are empty")
	}
	if rc.CFL <= 0 || rc.CFL > 0.5 {
		return fmt.Errorf("mhdboxutil: CFL number %g outside (0, 0.5]", rc.CFL)
	}
	if rc.TMax <= 0 {
		return fmt.Errorf("mhdboxutil: TMax must be positive")
	}
	return nil
}
