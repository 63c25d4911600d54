// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data layer: settings files, PDB structures
// and measured scattering curves
package inp

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Settings holds all configuration, threaded explicitly through constructors.
// the core packages never read global state
type Settings struct {

	// general
	Verbose bool   // print progress messages (parsed, not consumed here)
	Threads int    // worker count (parsed, not consumed: the process-wide pool always starts hardware concurrency - 1 workers)
	Output  string // output directory

	// axes
	Qmin float64 // minimum momentum transfer [Å⁻¹]
	Qmax float64 // maximum momentum transfer [Å⁻¹]
	Nq   int     // number of q samples of the default axis
	Skip int     // number of leading data points to skip

	// histogram
	BinWidth     float64 // distance bin width [Å]
	WeightedBins bool    // track per-bin distance-weighted centres
	JobSize      int     // outer-loop iterations per parallel job
	Manager      string  // histogram manager: full, full-mt, partial, partial-mt, full-mt-ff

	// molecule
	WaterResidues []string // residue names identifying waters
	ImplicitH     bool     // drop explicit hydrogen atoms; no group form factors are assigned
	ThrowUnknown  bool     // unknown atoms: throw instead of warn-and-skip

	// grid
	GridWidth    float64 // cell width w [Å]
	GridScaling  float64 // padding fraction on each side
	GridMinBins  int     // minimum number of bins per axis
	RVol         float64 // effective atomic radius for expansion [Å]
	RHydration   float64 // hydration (water) radius [Å]
	WaterScaling float64 // culling target factor
	Placement    string  // hydration strategy: radial, axes, jan, pepsi
	Culling      string  // culling strategy: counter, random-counter, outlier, random-outlier, none
	ShellCorr    float64 // jan shell correction [Å]
	Seed         int     // seed for the random culling strategies

	// fit
	ExvMethod      string // simple, average, fraser, crysol, foxs, pepsi, grid
	FitHydration   bool   // fit the hydration scale
	FitExv         bool   // fit the excluded-volume scale
	FitSolvent     bool   // fit the solvent density
	FitDebyeWaller bool   // fit the atomic and exv Debye-Waller factors
	Minimizer      string // scan, limited-scan, golden, explorer
	MaxEvals       int    // evaluation bound of the outer minimizer

	// rigid body / crystal (collaborator surfaces; parsed, not consumed here)
	RigidBodyIters int     // iterations of the rigid-body sequencer
	CrystalMmax    float64 // maximum Miller index length
}

// NewSettings returns settings with default values
func NewSettings() (o *Settings) {
	o = new(Settings)
	o.Verbose = false
	o.Threads = 0
	o.Output = "."
	o.Qmin = 1e-4
	o.Qmax = 0.5
	o.Nq = 400
	o.Skip = 0
	o.BinWidth = 0.25
	o.WeightedBins = true
	o.JobSize = 128
	o.Manager = "partial-mt"
	o.WaterResidues = []string{"HOH", "SOL", "WAT", "H2O"}
	o.ImplicitH = true
	o.ThrowUnknown = false
	o.GridWidth = 1.0
	o.GridScaling = 0.25
	o.GridMinBins = 25
	o.RVol = 2.15
	o.RHydration = 1.5
	o.WaterScaling = 0.01
	o.Placement = "radial"
	o.Culling = "counter"
	o.ShellCorr = 0.5
	o.Seed = 1234
	o.ExvMethod = "simple"
	o.FitHydration = true
	o.FitExv = false
	o.FitSolvent = false
	o.FitDebyeWaller = false
	o.Minimizer = "golden"
	o.MaxEvals = 1000
	return
}

// settings filenames probed by Discover, in order
var settingsNames = []string{"settings.txt", "setting.txt", "setup.txt", "config.txt"}

// Discover looks for a settings file in the given folder and reads it if
// present. returns the path read, or "" if none was found
func (o *Settings) Discover(folder string) (fname string, err error) {
	for _, n := range settingsNames {
		path := filepath.Join(folder, n)
		if _, e := os.Stat(path); e == nil {
			return path, o.ReadFile(path)
		}
	}
	return "", nil
}

// ReadFile reads a key/value settings file. keys are section-qualified
// ("grid.width"); values are whitespace-separated tokens; comment markers are
// '#', ';' and "//"
func (o *Settings) ReadFile(fname string) (err error) {
	buf, err := io.ReadFile(fname)
	if err != nil {
		return chk.Err("io error: cannot read settings file %q:\n%v", fname, err)
	}
	for i, line := range strings.Split(string(buf), "\n") {
		if e := o.parseLine(line); e != nil {
			return chk.Err("parse error: %s:%d:\n%v", fname, i+1, e)
		}
	}
	return
}

func (o *Settings) parseLine(line string) (err error) {
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "//"); idx >= 0 {
		line = line[:idx]
	}
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return
	}
	if len(tokens) < 2 {
		return chk.Err("key %q has no value", tokens[0])
	}
	return o.Set(strings.ToLower(tokens[0]), tokens[1:])
}

// Set assigns one option from its key and value tokens
func (o *Settings) Set(key string, vals []string) (err error) {
	v := vals[0]
	switch key {
	case "general.verbose", "verbose":
		o.Verbose = io.Atob(v)
	case "general.threads", "threads":
		o.Threads = io.Atoi(v)
	case "general.output", "output":
		o.Output = v
	case "axes.qmin", "qmin":
		o.Qmin = io.Atof(v)
	case "axes.qmax", "qmax":
		o.Qmax = io.Atof(v)
	case "axes.nq", "nq":
		o.Nq = io.Atoi(v)
	case "axes.skip", "skip":
		o.Skip = io.Atoi(v)
	case "histogram.binwidth", "binwidth":
		o.BinWidth = io.Atof(v)
	case "histogram.weighted_bins", "weighted_bins":
		o.WeightedBins = io.Atob(v)
	case "histogram.jobsize":
		o.JobSize = io.Atoi(v)
	case "histogram.manager", "manager":
		o.Manager = v
		warnLegacyManager(v)
	case "molecule.water_residues":
		o.WaterResidues = append([]string{}, vals...)
	case "molecule.implicit_hydrogens":
		o.ImplicitH = io.Atob(v)
	case "molecule.throw_unknown":
		o.ThrowUnknown = io.Atob(v)
	case "grid.width":
		o.GridWidth = io.Atof(v)
	case "grid.scaling":
		o.GridScaling = io.Atof(v)
	case "grid.minbins":
		o.GridMinBins = io.Atoi(v)
	case "grid.rvol":
		o.RVol = io.Atof(v)
	case "grid.rhydration":
		o.RHydration = io.Atof(v)
	case "grid.water_scaling":
		o.WaterScaling = io.Atof(v)
	case "grid.placement_strategy", "placement_strategy":
		o.Placement = strings.ToLower(v)
	case "grid.culling_strategy", "culling_strategy":
		o.Culling = strings.ToLower(v)
	case "grid.shell_correction":
		o.ShellCorr = io.Atof(v)
	case "grid.seed":
		o.Seed = io.Atoi(v)
	case "fit.exv_method", "exv_method":
		o.ExvMethod = strings.ToLower(v)
	case "fit.hydration":
		o.FitHydration = io.Atob(v)
	case "fit.excluded_volume":
		o.FitExv = io.Atob(v)
	case "fit.solvent_density":
		o.FitSolvent = io.Atob(v)
	case "fit.debye_waller":
		o.FitDebyeWaller = io.Atob(v)
	case "fit.minimizer", "minimizer":
		o.Minimizer = strings.ToLower(v)
	case "fit.max_evals":
		o.MaxEvals = io.Atoi(v)
	case "rigidbody.iterations":
		o.RigidBodyIters = io.Atoi(v)
	case "crystal.mmax":
		o.CrystalMmax = io.Atof(v)
	default:
		return chk.Err("unknown option %q", key)
	}
	return
}

// CacheDir returns the per-user cache directory for the residue topology maps
func CacheDir() string {
	switch runtime.GOOS {
	case "windows":
		if d := os.Getenv("LOCALAPPDATA"); d != "" {
			return filepath.Join(d, "gosaxs")
		}
	case "darwin":
		if h := os.Getenv("HOME"); h != "" {
			return filepath.Join(h, "Library", "Caches", "gosaxs")
		}
	default:
		if d := os.Getenv("XDG_CACHE_HOME"); d != "" {
			return filepath.Join(d, "gosaxs")
		}
		if h := os.Getenv("HOME"); h != "" {
			return filepath.Join(h, ".cache", "gosaxs")
		}
	}
	return filepath.Join(os.TempDir(), "gosaxs")
}
