// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"

	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
	"github.com/cpmech/gosl/io"
)

// element returns the element symbol of a form-factor type for writeout
func element(t ffs.Type) string {
	switch t {
	case ffs.H:
		return "H"
	case ffs.C, ffs.CH, ffs.CH2, ffs.CH3:
		return "C"
	case ffs.N, ffs.NH, ffs.NH2, ffs.NH3:
		return "N"
	case ffs.O, ffs.OH:
		return "O"
	case ffs.S, ffs.SH:
		return "S"
	}
	return "X"
}

// atomLine formats one ATOM record with PDB column widths
func atomLine(serial int, name, resName, chain string, resSeq int, x, y, z, occ, temp float64, elem string) string {
	return io.Sf("ATOM  %5d %-4s %-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
		serial, name, resName, chain, resSeq, x, y, z, occ, temp, elem)
}

// RecordString re-renders a parsed ATOM/HETATM record; per-column whitespace
// normalisation makes the output round-trippable against the input
func RecordString(a *inp.PdbAtom) string {
	head := "ATOM  "
	if a.Het {
		head = "HETATM"
	}
	name := a.Name
	if len(name) < 4 {
		name = " " + name // standard names start in column 14
	}
	return io.Sf("%s%5d %-4s%1s%-3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s%2s\n",
		head, a.Serial, name, a.AltLoc, a.ResName, a.ChainID, a.ResSeq, a.ICode,
		a.X, a.Y, a.Z, a.Occupancy, a.TempFactor, a.Element, a.Charge)
}

// PdbFileString re-renders a parsed file: header, records with TER
// separators, footer
func PdbFileString(pdb *inp.PdbFile) string {
	var buf bytes.Buffer
	for _, h := range pdb.Header {
		io.Ff(&buf, "%s\n", h)
	}
	ter := 0
	for i := range pdb.Atoms {
		for ter < len(pdb.Ter) && pdb.Ter[ter] == i {
			io.Ff(&buf, "TER\n")
			ter++
		}
		io.Ff(&buf, "%s", RecordString(&pdb.Atoms[i]))
	}
	for ter < len(pdb.Ter) {
		io.Ff(&buf, "TER\n")
		ter++
	}
	for _, f := range pdb.Footer {
		io.Ff(&buf, "%s\n", f)
	}
	io.Ff(&buf, "END\n")
	return buf.String()
}

// PdbString renders the molecule, body by body with TER separators, followed
// by the hydration waters
func PdbString(m *mol.Molecule) string {
	var buf bytes.Buffer
	serial := 0
	resSeq := 0
	for _, b := range m.Bodies {
		resSeq++
		for i := range b.Atoms {
			serial++
			a := &b.Atoms[i]
			e := element(a.Type)
			io.Ff(&buf, "%s", atomLine(serial, e, "UNK", "A", resSeq, a.X, a.Y, a.Z, 1.0, 0.0, e))
		}
		io.Ff(&buf, "TER   %5d      %-3s %1s%4d\n", serial+1, "UNK", "A", resSeq)
		serial++
	}
	for _, w := range m.AllWaters() {
		serial++
		resSeq++
		io.Ff(&buf, "%s", atomLine(serial, "O", "HOH", "A", resSeq, w.X, w.Y, w.Z, 1.0, 0.0, "O"))
	}
	io.Ff(&buf, "END\n")
	return buf.String()
}

// SavePdb writes the current molecule state including waters
func SavePdb(dirout, fnkey string, m *mol.Molecule) {
	var buf bytes.Buffer
	io.Ff(&buf, "%s", PdbString(m))
	io.WriteFileVD(dirout, fnkey+".pdb", &buf)
}
