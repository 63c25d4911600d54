// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"
	"strings"

	"github.com/cpmech/gosaxs/fit"
	"github.com/cpmech/gosaxs/hist"
	"github.com/cpmech/gosaxs/hyd"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
	"github.com/cpmech/gosaxs/out"
	"github.com/cpmech/gosl/io"
)

// errClass extracts the error-class prefix for the one-line summary
func errClass(err error) string {
	msg := err.Error()
	for _, class := range []string{"parse error", "unknown atom", "out of range", "dimension mismatch", "io error", "bad state", "numeric error"} {
		if strings.Contains(msg, class) {
			return class
		}
	}
	return "error"
}

func main() {
	os.Exit(run())
}

func run() int {

	// input data
	var (
		pdbFile  = flag.String("pdb", "", "structure file (.pdb)")
		datFile  = flag.String("data", "", "measured scattering curve")
		qunit    = flag.String("qunit", "A", "q unit of the data file: A or nm")
		dirout   = flag.String("o", "/tmp/gosaxs", "output directory")
		hydrate  = flag.Bool("hydrate", true, "generate the hydration shell")
		doFit    = flag.Bool("fit", true, "fit the model to the data")
		writePdb = flag.Bool("writepdb", false, "write the hydrated structure")
		doPlot   = flag.Bool("plot", false, "plot the fitted curve")
	)
	flag.Parse()

	// message
	io.PfWhite("\nGosaxs -- small-angle X-ray scattering profiles\n\n")

	if *pdbFile == "" {
		io.PfRed("ERROR: please provide a structure file. Ex.: gosaxs -pdb model.pdb -data curve.dat\n")
		return 1
	}

	// settings: defaults, then discovery in the output folder, then flags
	stg := inp.NewSettings()
	if fname, err := stg.Discover(*dirout); err != nil {
		io.PfRed("ERROR: %s: %v\n", errClass(err), err)
		return 2
	} else if fname != "" {
		io.Pf("settings read from %s\n", fname)
	}
	stg.Output = *dirout

	// structure
	pdb, err := inp.ReadPdb(*pdbFile)
	if err != nil {
		io.PfRed("ERROR: %s: %v\n", errClass(err), err)
		return 2
	}
	m, err := mol.FromPdb(pdb, stg)
	if err != nil {
		io.PfRed("ERROR: %s: %v\n", errClass(err), err)
		return 2
	}
	io.Pf("%d bodies, %d atoms, %d waters from file\n", m.NumBodies(), m.NumAtoms(), len(m.AllWaters()))

	// hydration shell
	if *hydrate {
		gen, err := hyd.NewGenerator(stg, m)
		if err != nil {
			io.PfRed("ERROR: %s: %v\n", errClass(err), err)
			return 2
		}
		if err = gen.Hydrate(m); err != nil {
			io.PfRed("ERROR: %s: %v\n", errClass(err), err)
			return 2
		}
		io.Pf("%d waters placed (%s / %s)\n", len(m.AllWaters()), stg.Placement, stg.Culling)
	}

	// histogram
	mgrName := stg.Manager
	if exv, e := hist.NewExvModel(stg.ExvMethod); e == nil && exv.RequiresFF() {
		mgrName = "full-mt-ff"
	}
	mgr, err := hist.NewManager(mgrName, m, stg)
	if err != nil {
		io.PfRed("ERROR: %s: %v\n", errClass(err), err)
		return 2
	}
	h, err := mgr.CalculateAll()
	if err != nil {
		io.PfRed("ERROR: %s: %v\n", errClass(err), err)
		return 2
	}
	io.Pf("histogram: %d bins of %g A (%s, %s)\n", h.NumBins(), stg.BinWidth, mgrName, stg.ExvMethod)

	if *writePdb {
		out.SavePdb(*dirout, io.FnKey(*pdbFile)+"_hydrated", m)
	}

	// no data: report the profile and stop
	if *datFile == "" || !*doFit {
		q := hist.Axis{Bins: stg.Nq, Min: stg.Qmin, Max: stg.Qmax}
		I, err := h.DebyeTransform(q)
		if err != nil {
			io.PfRed("ERROR: %s: %v\n", errClass(err), err)
			return 2
		}
		io.Pf("I(qmin) = %g\n", I[0])
		return 0
	}

	// measured curve
	ds, err := inp.ReadDataset(*datFile, *qunit)
	if err != nil {
		io.PfRed("ERROR: %s: %v\n", errClass(err), err)
		return 2
	}
	ds.Restrict(stg.Qmin, stg.Qmax, stg.Skip)
	io.Pf("%d data points in [%g, %g]\n", ds.Len(), stg.Qmin, stg.Qmax)

	// fit
	sf, err := fit.NewSmartFitter(stg, ds, h)
	if err != nil {
		io.PfRed("ERROR: %s: %v\n", errClass(err), err)
		return 2
	}
	res, err := sf.Fit()
	if err != nil {
		io.PfRed("ERROR: %s: %v\n", errClass(err), err)
		return 2
	}

	out.Report(res)
	out.SaveReport(*dirout, io.FnKey(*datFile)+"_report", res)
	out.SaveCurves(*dirout, io.FnKey(*datFile), res)
	if *doPlot {
		if err := out.PlotFit(*dirout, io.FnKey(*datFile)+"_fit", res); err != nil {
			io.Pfyel("WARNING: cannot plot: %v\n", err)
		}
	}
	return 0
}
