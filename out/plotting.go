// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/gosaxs/fit"
	"github.com/cpmech/gosl/plt"
)

// PlotFit draws the measured curve, the fitted model and the residuals on a
// log-log intensity plot and saves it under dirout/fnkey
func PlotFit(dirout, fnkey string, res *fit.FitResult) (err error) {
	logq := make([]float64, len(res.Q))
	logd := make([]float64, len(res.Q))
	logm := make([]float64, len(res.Q))
	for i := range res.Q {
		logq[i] = math.Log10(res.Q[i])
		logd[i] = math.Log10(math.Max(res.IData[i], 1e-30))
		logm[i] = math.Log10(math.Max(res.IModel[i], 1e-30))
	}

	plt.Reset(true, nil)
	plt.Subplot(2, 1, 1)
	plt.Plot(logq, logd, &plt.A{C: "k", M: ".", Ls: "none", L: "data"})
	plt.Plot(logq, logm, &plt.A{C: "r", L: "fit"})
	plt.Gll("$\\log_{10} q$", "$\\log_{10} I$", nil)

	plt.Subplot(2, 1, 2)
	plt.Plot(logq, res.Residuals, &plt.A{C: "b", M: ".", Ls: "none", L: "residuals"})
	plt.Gll("$\\log_{10} q$", "$(I - I_{fit})/\\sigma$", nil)

	return plt.Save(dirout, fnkey)
}
