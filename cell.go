/*
 * cell.go, part of gocryst.
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
	"math"

	v3 "github.com/rmera/gocryst/v3"
	"gonum.org/v1/gonum/mat"
)

// Cell is the lattice metric of a unit cell: the lengths of the three
// edges, in A, and the three angles between them, in degrees. Alpha is the
// angle between b and c, Beta between a and c and Gamma between a and b.
type Cell struct {
	Lengths [3]float64
	Angles  [3]float64
}

// NewCell returns the cell with the given lengths and angles.
func NewCell(lengths, angles [3]float64) Cell {
	return Cell{Lengths: lengths, Angles: angles}
}

// Params returns the six lattice parameters in the order a, b, c, alpha, beta, gamma.
func (C Cell) Params() [6]float64 {
	return [6]float64{C.Lengths[0], C.Lengths[1], C.Lengths[2], C.Angles[0], C.Angles[1], C.Angles[2]}
}

// used to snap right angles, so a cubic cell gives exact zeros off the diagonal.
const angleEpsilon = 2e-14

// cosSin returns the cosine and sine of deg degrees, exact for right angles.
func cosSin(deg float64) (float64, float64) {
	if math.Abs(deg-90) < angleEpsilon {
		return 0, 1
	}
	if math.Abs(deg+90) < angleEpsilon {
		return 0, -1
	}
	r := deg * Deg2Rad
	return math.Cos(r), math.Sin(r)
}

// Vectors returns the three lattice vectors, one per row, with a along
// the x axis and b in the xy plane. No check is performed on the
// parameters: for a malformed cell some elements will be NaN or Inf.
func (C Cell) Vectors() *v3.Matrix {
	a, b, c := C.Lengths[0], C.Lengths[1], C.Lengths[2]
	cosa, _ := cosSin(C.Angles[0])
	cosb, _ := cosSin(C.Angles[1])
	cosg, sing := cosSin(C.Angles[2])
	cx := cosb
	cy := (cosa - cosb*cosg) / sing
	cz := math.Sqrt(1 - cx*cx - cy*cy)
	L := v3.Zeros(3)
	L.SetRow(0, []float64{a, 0, 0})
	L.SetRow(1, []float64{b * cosg, b * sing, 0})
	L.SetRow(2, []float64{c * cx, c * cy, c * cz})
	return L
}

// CellFromVectors returns the Cell defined by the lattice vectors in L
// (one per row).
func CellFromVectors(L *v3.Matrix) Cell {
	var C Cell
	v := L.Vecs()
	for i := range v {
		C.Lengths[i] = norm(v[i])
	}
	C.Angles[0] = angle(v[1], v[2])
	C.Angles[1] = angle(v[0], v[2])
	C.Angles[2] = angle(v[0], v[1])
	return C
}

func norm(a [3]float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

// angle returns the angle between a and b, in degrees.
func angle(a, b [3]float64) float64 {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
	cos := dot / (norm(a) * norm(b))
	//floating point can take us slightly out of the domain of Acos.
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * Rad2Deg
}

// Volume returns the volume of the cell, in cubic A.
func (C Cell) Volume() float64 {
	return math.Abs(mat.Det(C.Vectors()))
}

// Validate checks that the parameters define a unit cell: positive,
// finite lengths; angles strictly between 0 and 180 degrees; and angles
// that can close a parallelepiped. It returns a *MalformedLatticeError
// otherwise. Nothing in the conversion calls this unless asked to.
func (C Cell) Validate() error {
	p := C.Params()
	fail := func(reason string) error {
		return &MalformedLatticeError{Params: p, Reason: reason, deco: []string{"Validate"}}
	}
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fail("non-finite parameter")
		}
	}
	for _, l := range C.Lengths {
		if l <= 0 {
			return fail("non-positive edge length")
		}
	}
	al, be, ga := C.Angles[0], C.Angles[1], C.Angles[2]
	for _, g := range C.Angles {
		if g <= 0 || g >= 180 {
			return fail("angle out of the (0, 180) range")
		}
	}
	if al+be+ga >= 360 || al+be <= ga || al+ga <= be || be+ga <= al {
		return fail("angles can't form a parallelepiped")
	}
	if C.Volume() <= 0 || math.IsNaN(C.Volume()) {
		return fail("zero volume")
	}
	return nil
}
