// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_settings01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("settings01. key/value file with comments")

	dir := tst.TempDir()
	fname := filepath.Join(dir, "settings.txt")
	content := `
# general
verbose 1
threads 4      ; trailing comment
grid.width 0.5 // another comment
axes.qmax 0.8
molecule.water_residues HOH WAT
fit.exv_method crysol
`
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		tst.Errorf("cannot write test file: %v\n", err)
		return
	}

	stg := NewSettings()
	read, err := stg.Discover(dir)
	if err != nil {
		tst.Errorf("Discover failed: %v\n", err)
		return
	}
	chk.String(tst, read, fname)
	if !stg.Verbose {
		tst.Errorf("verbose not set\n")
	}
	chk.Int(tst, "threads", stg.Threads, 4)
	chk.Float64(tst, "grid.width", 1e-15, stg.GridWidth, 0.5)
	chk.Float64(tst, "qmax", 1e-15, stg.Qmax, 0.8)
	chk.Strings(tst, "water residues", stg.WaterResidues, []string{"HOH", "WAT"})
	chk.String(tst, stg.ExvMethod, "crysol")

	// unknown keys are parse errors
	if err := stg.parseLine("grid.bogus 1"); err == nil {
		tst.Errorf("unknown option must fail\n")
	}
}

func Test_pdb01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("pdb01. ATOM/HETATM/TER parsing")

	dir := tst.TempDir()
	fname := filepath.Join(dir, "two.pdb")
	content := "HEADER    TEST PROTEIN\n" +
		"ATOM      1  CA  ALA A   1       0.000   0.000   0.000  1.00 10.00           C  \n" +
		"ATOM      2  CB  ALA A   1       2.000   0.000   0.000  1.00 10.00           C  \n" +
		"TER       3      ALA A   1\n" +
		"HETATM    4  O   HOH A   2       5.000   0.000   0.000  1.00 20.00           O  \n" +
		"END\n"
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		tst.Errorf("cannot write test file: %v\n", err)
		return
	}

	pdb, err := ReadPdb(fname)
	if err != nil {
		tst.Errorf("ReadPdb failed: %v\n", err)
		return
	}
	chk.Int(tst, "natoms", len(pdb.Atoms), 3)
	chk.Int(tst, "nheader", len(pdb.Header), 1)
	chk.Ints(tst, "ter", pdb.Ter, []int{2})

	a := pdb.Atoms[0]
	chk.Int(tst, "serial", a.Serial, 1)
	chk.String(tst, a.Name, "CA")
	chk.String(tst, a.ResName, "ALA")
	chk.String(tst, a.ChainID, "A")
	chk.String(tst, a.Element, "C")
	chk.Float64(tst, "x", 1e-15, pdb.Atoms[1].X, 2.0)

	stg := NewSettings()
	if stg.IsWater(&pdb.Atoms[0]) {
		tst.Errorf("CA must not be water\n")
	}
	if !stg.IsWater(&pdb.Atoms[2]) {
		tst.Errorf("HOH must be water\n")
	}
}

func Test_pdb02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("pdb02. _partN sibling concatenation")

	dir := tst.TempDir()
	part1 := filepath.Join(dir, "mol.pdb")
	part2 := filepath.Join(dir, "mol_part2.pdb")
	lineA := "ATOM      1  CA  ALA A   1       0.000   0.000   0.000  1.00 10.00           C  \n"
	lineB := "ATOM      2  CA  GLY A   2       3.000   0.000   0.000  1.00 10.00           C  \n"
	os.WriteFile(part1, []byte(lineA), 0644)
	os.WriteFile(part2, []byte(lineB), 0644)

	pdb, err := ReadPdb(part1)
	if err != nil {
		tst.Errorf("ReadPdb failed: %v\n", err)
		return
	}
	chk.Int(tst, "natoms", len(pdb.Atoms), 2)
	chk.String(tst, pdb.Atoms[1].ResName, "GLY")
}

func Test_dataset01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("dataset01. measured curve, units and restriction")

	dir := tst.TempDir()
	fname := filepath.Join(dir, "curve.dat")
	content := `# q I sigma
0.01  100.0  1.0
0.02   90.0  1.0
junk line here
0.03   80.0  1.0
0.80   10.0  1.0
`
	os.WriteFile(fname, []byte(content), 0644)

	ResetWarnings()
	ds, err := ReadDataset(fname, "A")
	if err != nil {
		tst.Errorf("ReadDataset failed: %v\n", err)
		return
	}
	chk.Int(tst, "npts", ds.Len(), 4)
	chk.Float64(tst, "q[0]", 1e-15, ds.Q[0], 0.01)

	ds.Restrict(0, 0.5, 1)
	chk.Int(tst, "npts restricted", ds.Len(), 2)
	chk.Float64(tst, "q[0] restricted", 1e-15, ds.Q[0], 0.02)

	// nm⁻¹ conversion
	ds2, err := ReadDataset(fname, "nm")
	if err != nil {
		tst.Errorf("ReadDataset failed: %v\n", err)
		return
	}
	chk.Float64(tst, "q[0] nm", 1e-15, ds2.Q[0], 0.001)
}
