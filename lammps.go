/*
 * lammps.go, part of gocryst.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cryst

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	v3 "github.com/rmera/gocryst/v3"
	"gonum.org/v1/gonum/mat"
)

// the section headers a LAMMPS data file can contain.
var lammpsSections = map[string]bool{
	"Atoms": true, "Velocities": true, "Masses": true, "Ellipsoids": true, "Lines": true,
	"Triangles": true, "Bodies": true, "Bonds": true, "Angles": true, "Dihedrals": true,
	"Impropers": true, "Pair Coeffs": true, "PairIJ Coeffs": true, "Bond Coeffs": true,
	"Angle Coeffs": true, "Dihedral Coeffs": true, "Improper Coeffs": true,
}

type lammpsAtom struct {
	id   int
	typ  int
	cart [3]float64
}

// LammpsDataFileRead opens the file name and reads it with ReadLammpsData.
func LammpsDataFileRead(name string, typeSymbols []string) (*Structure, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &CError{err.Error(), []string{"LammpsDataFileRead"}}
	}
	defer f.Close()
	S, err := ReadLammpsData(f, typeSymbols)
	if err != nil {
		return nil, errDecorate(err, "LammpsDataFileRead: "+name)
	}
	return S, nil
}

// ReadLammpsData reads a LAMMPS data file with "atomic" (or "charge") atom style.
// Atoms are returned sorted by id. If typeSymbols is not nil, LAMMPS type t is
// taken to be the element typeSymbols[t-1]; otherwise the type is used as the
// atomic number. The box, including tilt factors if present, becomes the cell.
func ReadLammpsData(in io.Reader, typeSymbols []string) (*Structure, error) {
	r := bufio.NewScanner(in)
	r.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	natoms := -1
	var lo, hi [3]float64
	var tilt [3]float64 //xy xz yz
	var boxRead [3]bool
	var atoms []lammpsAtom
	section := ""
	style := "atomic"
	first := true
	for r.Scan() {
		line := r.Text()
		if first { //the first line is always a comment
			first = false
			continue
		}
		comment := ""
		if i := strings.Index(line, "#"); i >= 0 {
			comment = strings.TrimSpace(line[i+1:])
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if lammpsSections[line] {
			section = line
			if section == "Atoms" && comment != "" {
				style = comment
			}
			continue
		}
		fields := strings.Fields(line)
		if section == "" {
			if err := lammpsHeaderLine(fields, &natoms, &lo, &hi, &tilt, &boxRead); err != nil {
				return nil, errDecorate(err, "ReadLammpsData")
			}
			continue
		}
		if section != "Atoms" {
			continue
		}
		at, err := lammpsAtomLine(fields, style)
		if err != nil {
			return nil, errDecorate(err, "ReadLammpsData")
		}
		atoms = append(atoms, at)
	}
	if err := r.Err(); err != nil {
		return nil, &CError{err.Error(), []string{"ReadLammpsData"}}
	}
	if natoms < 0 || !boxRead[0] || !boxRead[1] || !boxRead[2] {
		return nil, &CError{ErrWrongFormat + ": incomplete LAMMPS header", []string{"ReadLammpsData"}}
	}
	if len(atoms) != natoms {
		return nil, &CError{fmt.Sprintf("%s: %d atoms declared, %d read", ErrWrongFormat, natoms, len(atoms)), []string{"ReadLammpsData"}}
	}
	sort.SliceStable(atoms, func(i, j int) bool { return atoms[i].id < atoms[j].id })
	L := v3.Zeros(3)
	L.SetRow(0, []float64{hi[0] - lo[0], 0, 0})
	L.SetRow(1, []float64{tilt[0], hi[1] - lo[1], 0})
	L.SetRow(2, []float64{tilt[1], tilt[2], hi[2] - lo[2]})
	var inv mat.Dense
	if err := inv.Inverse(L); err != nil {
		return nil, &CError{"Singular LAMMPS box: " + err.Error(), []string{"ReadLammpsData"}}
	}
	numbers := make([]int, len(atoms))
	frac := make([][3]float64, len(atoms))
	for i, a := range atoms {
		numbers[i] = a.typ
		if typeSymbols != nil {
			if a.typ < 1 || a.typ > len(typeSymbols) {
				return nil, &CError{fmt.Sprintf("Atom %d has type %d, but only %d symbols were given", a.id, a.typ, len(typeSymbols)), []string{"ReadLammpsData"}}
			}
			z, err := Number(typeSymbols[a.typ-1])
			if err != nil {
				return nil, errDecorate(err, "ReadLammpsData")
			}
			numbers[i] = z
		}
		for j := 0; j < 3; j++ {
			d := a.cart[j] - lo[j]
			frac[i][0] += d * inv.At(j, 0)
			frac[i][1] += d * inv.At(j, 1)
			frac[i][2] += d * inv.At(j, 2)
		}
	}
	S, err := NewStructure(frac, numbers, CellFromVectors(L))
	if err != nil {
		return nil, errDecorate(err, "ReadLammpsData")
	}
	return S, nil
}

func lammpsHeaderLine(fields []string, natoms *int, lo, hi, tilt *[3]float64, boxRead *[3]bool) error {
	var err error
	switch {
	case len(fields) == 2 && fields[1] == "atoms":
		*natoms, err = strconv.Atoi(fields[0])
	case len(fields) == 4 && fields[3][1:] == "hi" && fields[2][1:] == "lo":
		i := strings.Index("xyz", fields[2][:1])
		if i < 0 {
			return &CError{ErrWrongFormat + ": " + strings.Join(fields, " "), []string{"lammpsHeaderLine"}}
		}
		if lo[i], err = strconv.ParseFloat(fields[0], 64); err != nil {
			break
		}
		hi[i], err = strconv.ParseFloat(fields[1], 64)
		boxRead[i] = true
	case len(fields) == 6 && fields[3] == "xy" && fields[4] == "xz" && fields[5] == "yz":
		for i := 0; i < 3 && err == nil; i++ {
			tilt[i], err = strconv.ParseFloat(fields[i], 64)
		}
	}
	//other header lines (atom types, bonds...) are ignored.
	if err != nil {
		return &CError{fmt.Sprintf("%s: %s", ErrWrongFormat, err.Error()), []string{"lammpsHeaderLine"}}
	}
	return nil
}

func lammpsAtomLine(fields []string, style string) (lammpsAtom, error) {
	var at lammpsAtom
	first := 2 //column of the x coordinate
	if strings.HasPrefix(style, "charge") {
		first = 3
	}
	if len(fields) < first+3 {
		return at, &CError{fmt.Sprintf("%s: short Atoms line '%s'", ErrWrongFormat, strings.Join(fields, " ")), []string{"lammpsAtomLine"}}
	}
	var err error
	errs := make([]error, 5)
	at.id, errs[0] = strconv.Atoi(fields[0])
	at.typ, errs[1] = strconv.Atoi(fields[1])
	for j := 0; j < 3; j++ {
		at.cart[j], errs[2+j] = strconv.ParseFloat(fields[first+j], 64)
	}
	for _, err = range errs {
		if err != nil {
			return at, &CError{fmt.Sprintf("%s: %s", ErrWrongFormat, err.Error()), []string{"lammpsAtomLine"}}
		}
	}
	return at, nil
}

// MinDistance returns the shortest distance, in A, between two atoms of S
// under the minimum image convention. It returns +Inf for structures with
// fewer than 2 atoms.
func MinDistance(S *Structure) float64 {
	best := math.Inf(1)
	if S.Len() < 2 {
		return best
	}
	L := S.Cell.Vectors()
	for i := 0; i < S.Len(); i++ {
		fi := S.Frac.Vec(i)
		for j := i + 1; j < S.Len(); j++ {
			fj := S.Frac.Vec(j)
			var d [3]float64
			for k := range d {
				d[k] = fi[k] - fj[k]
				d[k] -= math.Round(d[k])
			}
			//the wrapped difference is not always the shortest one in skewed cells,
			//so the neighbouring images are checked too.
			for n0 := -1.0; n0 <= 1; n0++ {
				for n1 := -1.0; n1 <= 1; n1++ {
					for n2 := -1.0; n2 <= 1; n2++ {
						f := [3]float64{d[0] + n0, d[1] + n1, d[2] + n2}
						var c [3]float64
						for k := 0; k < 3; k++ {
							c[k] = f[0]*L.At(0, k) + f[1]*L.At(1, k) + f[2]*L.At(2, k)
						}
						if dist := norm(c); dist < best {
							best = dist
						}
					}
				}
			}
		}
	}
	return best
}
