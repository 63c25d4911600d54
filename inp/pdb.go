// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// PdbAtom holds one ATOM or HETATM record. field widths follow the PDB
// specification; the raw columns are preserved so writeout round-trips
type PdbAtom struct {
	Het        bool    // record is HETATM
	Serial     int     // atom serial number
	Name       string  // atom name
	AltLoc     string  // alternate location indicator
	ResName    string  // residue name
	ChainID    string  // chain identifier
	ResSeq     int     // residue sequence number
	ICode      string  // insertion code
	X, Y, Z    float64 // orthogonal coordinates [Å]
	Occupancy  float64 // occupancy
	TempFactor float64 // temperature factor
	Element    string  // element symbol
	Charge     string  // charge on the atom
}

// PdbFile holds the parsed content of a PDB file
type PdbFile struct {
	Header []string  // records before the first ATOM, passed through
	Atoms  []PdbAtom // ATOM and HETATM records in file order
	Ter    []int     // per TER record, the index into Atoms of the first atom after it
	Footer []string  // records after the last ATOM, passed through
}

// IsWater tells whether an atom belongs to the hydration layer according to
// the configured water residue names
func (o *Settings) IsWater(a *PdbAtom) bool {
	for _, r := range o.WaterResidues {
		if a.ResName == r {
			return true
		}
	}
	return false
}

// ReadPdb reads a PDB file. if siblings of the form "name_part2.pdb" exist
// next to "name.pdb" they are concatenated in order
func ReadPdb(fname string) (o *PdbFile, err error) {
	o = new(PdbFile)
	if err = o.readOne(fname); err != nil {
		return nil, err
	}
	ext := io.FnExt(fname)
	base := fname[:len(fname)-len(ext)]
	for n := 2; ; n++ {
		sibling := io.Sf("%s_part%d%s", base, n, ext)
		if _, e := os.Stat(sibling); e != nil {
			break
		}
		if err = o.readOne(sibling); err != nil {
			return nil, err
		}
	}
	return
}

func (o *PdbFile) readOne(fname string) (err error) {
	buf, err := os.ReadFile(fname)
	if err != nil {
		return chk.Err("io error: cannot read PDB file %q:\n%v", fname, err)
	}
	seenAtom := false
	for i, line := range strings.Split(string(buf), "\n") {
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			a, e := parseAtomLine(line)
			if e != nil {
				return chk.Err("parse error: %s:%d:\n%v", fname, i+1, e)
			}
			o.Atoms = append(o.Atoms, a)
			seenAtom = true
			o.Footer = o.Footer[:0]
		case strings.HasPrefix(line, "TER"):
			o.Ter = append(o.Ter, len(o.Atoms))
		case strings.HasPrefix(line, "END"):
			// terminator; keep scanning in case of concatenated parts
		case strings.TrimSpace(line) == "":
			// blank
		default:
			if seenAtom {
				o.Footer = append(o.Footer, line)
			} else {
				o.Header = append(o.Header, line)
			}
		}
	}
	return
}

// column extracts a field by PDB column range, tolerating short lines
func column(line string, lo, hi int) string {
	if len(line) < lo {
		return ""
	}
	if len(line) < hi {
		hi = len(line)
	}
	return strings.TrimSpace(line[lo:hi])
}

func parseAtomLine(line string) (a PdbAtom, err error) {
	a.Het = strings.HasPrefix(line, "HETATM")
	if len(line) < 54 {
		return a, chk.Err("record too short (%d columns)", len(line))
	}
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("malformed numeric field: %v", r)
		}
	}()
	a.Serial = io.Atoi(column(line, 6, 11))
	a.Name = column(line, 12, 16)
	a.AltLoc = column(line, 16, 17)
	a.ResName = column(line, 17, 20)
	a.ChainID = column(line, 21, 22)
	a.ResSeq = io.Atoi(column(line, 22, 26))
	a.ICode = column(line, 26, 27)
	a.X = io.Atof(column(line, 30, 38))
	a.Y = io.Atof(column(line, 38, 46))
	a.Z = io.Atof(column(line, 46, 54))
	if s := column(line, 54, 60); s != "" {
		a.Occupancy = io.Atof(s)
	} else {
		a.Occupancy = 1
	}
	if s := column(line, 60, 66); s != "" {
		a.TempFactor = io.Atof(s)
	}
	a.Element = column(line, 76, 78)
	a.Charge = column(line, 78, 80)
	if a.Element == "" {
		// fall back on the first letter of the atom name
		name := strings.TrimLeft(a.Name, "0123456789")
		if name != "" {
			a.Element = name[:1]
		}
	}
	return
}
