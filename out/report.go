// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the output layer: fit reports, fit curves, PDB
// writeout and plots
package out

import (
	"bytes"

	"github.com/cpmech/gosaxs/fit"
	"github.com/cpmech/gosl/io"
)

// ReportString renders the fit report block
func ReportString(res *fit.FitResult) string {
	var buf bytes.Buffer
	io.Ff(&buf, "+--+ FIT REPORT +--+\n")
	if res.Converged {
		io.Ff(&buf, "status     converged\n")
	} else {
		io.Ff(&buf, "status     evaluation budget exhausted\n")
	}
	io.Ff(&buf, "fevals     %d\n", res.Fevals)
	io.Ff(&buf, "chi2       %g\n", res.Chi2)
	io.Ff(&buf, "dof        %d\n", res.Dof)
	io.Ff(&buf, "chi2/dof   %g\n", res.Chi2PerDof())
	for _, p := range res.Params {
		io.Ff(&buf, "%-20s | %13.6g | %12.4g\n", p.Name, p.V, p.Emax)
	}
	io.Ff(&buf, "+--+------------+--+\n")
	return buf.String()
}

// Report prints the fit report
func Report(res *fit.FitResult) {
	io.Pf("%s", ReportString(res))
}

// SaveReport writes the fit report to dirout/fnkey.txt
func SaveReport(dirout, fnkey string, res *fit.FitResult) {
	var buf bytes.Buffer
	io.Ff(&buf, "%s", ReportString(res))
	io.WriteFileVD(dirout, fnkey+".txt", &buf)
}

// SaveCurves writes the five-column fitted curve (q, I, I_err, I_fit,
// residuals) to dirout/fnkey.fit
func SaveCurves(dirout, fnkey string, res *fit.FitResult) {
	var buf bytes.Buffer
	io.Ff(&buf, "# q I I_err I_fit residuals\n")
	for i := range res.Q {
		io.Ff(&buf, "%15.8e %15.8e %15.8e %15.8e %15.8e\n",
			res.Q[i], res.IData[i], res.IErr[i], res.IModel[i], res.Residuals[i])
	}
	io.WriteFileVD(dirout, fnkey+".fit", &buf)
}
