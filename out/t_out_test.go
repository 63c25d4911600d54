// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosaxs/fit"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
	"github.com/cpmech/gosl/chk"
)

func Test_report01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("report01. fit report format")

	res := &fit.FitResult{
		Converged: true,
		Fevals:    42,
		Chi2:      12.5,
		Dof:       10,
		Params: []fit.FittedParameter{
			{Name: "hydration", V: 1.8, Emin: -0.1, Emax: 0.1},
			{Name: "slope", V: 3.0, Emin: -0.05, Emax: 0.05},
		},
	}
	s := ReportString(res)
	if !strings.HasPrefix(s, "+--+ FIT REPORT +--+\n") {
		tst.Errorf("report must start with the header block\n")
		return
	}
	for _, want := range []string{"converged", "fevals", "chi2", "dof", "hydration", "slope"} {
		if !strings.Contains(s, want) {
			tst.Errorf("report is missing %q\n", want)
			return
		}
	}
}

func Test_pdbw01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("pdbw01. parse-write round trip of ATOM records")

	dir := tst.TempDir()
	fname := filepath.Join(dir, "in.pdb")
	content := "HEADER    ROUND TRIP\n" +
		"ATOM      1  CA  ALA A   1       1.000   2.000   3.000  1.00 10.00           C  \n" +
		"ATOM      2  CB  ALA A   1       2.500  -1.250   0.000  0.50  5.25           C  \n" +
		"TER\n" +
		"HETATM    3  O   HOH A   2       5.000   0.000   0.000  1.00 20.00           O  \n" +
		"END\n"
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		tst.Errorf("cannot write test file: %v\n", err)
		return
	}
	pdb, err := inp.ReadPdb(fname)
	if err != nil {
		tst.Errorf("ReadPdb failed: %v\n", err)
		return
	}

	// write back, reparse, and compare every parsed column
	fname2 := filepath.Join(dir, "out.pdb")
	if err := os.WriteFile(fname2, []byte(PdbFileString(pdb)), 0644); err != nil {
		tst.Errorf("cannot write output: %v\n", err)
		return
	}
	pdb2, err := inp.ReadPdb(fname2)
	if err != nil {
		tst.Errorf("reparse failed: %v\n", err)
		return
	}
	chk.Int(tst, "natoms", len(pdb2.Atoms), len(pdb.Atoms))
	for i := range pdb.Atoms {
		a, b := &pdb.Atoms[i], &pdb2.Atoms[i]
		if *a != *b {
			tst.Errorf("record %d does not round-trip:\n%v\n%v\n", i, *a, *b)
			return
		}
	}
}

func Test_pdbw02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("pdbw02. molecule writeout includes waters and TER")

	b := mol.NewBody([]mol.AtomFF{
		mol.NewAtomFF(0, 0, 0, ffs.C),
		mol.NewAtomFF(2, 0, 0, ffs.N),
	})
	m := mol.NewMolecule([]*mol.Body{b})
	m.SetGlobalHydration([]mol.Water{mol.NewWater(5, 0, 0)})

	s := PdbString(m)
	if strings.Count(s, "ATOM  ") != 3 {
		tst.Errorf("expected 3 ATOM records:\n%s", s)
		return
	}
	if !strings.Contains(s, "TER") || !strings.Contains(s, "HOH") || !strings.HasSuffix(s, "END\n") {
		tst.Errorf("writeout is missing TER/HOH/END:\n%s", s)
	}
}
