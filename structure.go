/*
 * structure.go, part of gocryst.
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
	"fmt"
	"sort"

	v3 "github.com/rmera/gocryst/v3"
)

/**Note: Some functions here panic instead of returning errors, when the only way
 * to trigger the panic is a programming error, such as an out of bounds index**/

// Atom contains the per-atom information of a structure, except for the
// position, which is kept in a matrix in the Structure.
type Atom struct {
	Number int    //atomic number, as given in the input. Not checked.
	Symbol string //empty if Number doesn't correspond to a known element.
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	return &Atom{Number: A.Number, Symbol: A.Symbol}
}

// Structure is one periodic atomic structure: a set of atoms with fractional
// positions in a unit cell.
type Structure struct {
	Atoms []*Atom
	Frac  *v3.Matrix //fractional coordinates, one row per atom
	Cell  Cell
}

// NewStructure builds a Structure from the fractional coordinates frac and the
// atomic numbers of the atoms, matched by order, in the unit cell cell. The only
// check performed is that there are as many coordinates as atoms: the lattice
// parameters are taken as they are.
func NewStructure(frac [][3]float64, numbers []int, cell Cell) (*Structure, error) {
	if len(frac) != len(numbers) {
		return nil, &ShapeMismatchError{What: "atomic species", Want: len(frac), Got: len(numbers), Structure: -1, Step: -1, deco: []string{"NewStructure"}}
	}
	if len(frac) == 0 {
		return &Structure{Atoms: []*Atom{}, Cell: cell}, nil
	}
	F, err := v3.FromVecs(frac)
	if err != nil {
		return nil, &CError{err.Error(), []string{"NewStructure"}}
	}
	atoms := make([]*Atom, len(numbers))
	for i, z := range numbers {
		atoms[i] = &Atom{Number: z}
		atoms[i].Symbol, _ = Symbol(z) //unknown elements are left to the writers.
	}
	return &Structure{Atoms: atoms, Frac: F, Cell: cell}, nil
}

// Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

// Atom returns the Atom with index i. Panics if out of range.
func (S *Structure) Atom(i int) *Atom {
	if i >= S.Len() || i < 0 {
		panic("Structure: Requested Atom out of bounds")
	}
	return S.Atoms[i]
}

// Numbers returns the atomic numbers of the atoms, in order.
func (S *Structure) Numbers() []int {
	ret := make([]int, S.Len())
	for i, a := range S.Atoms {
		ret[i] = a.Number
	}
	return ret
}

// Cartesian returns the cartesian coordinates, in A, of the atoms.
// Returns nil for a structure without atoms.
func (S *Structure) Cartesian() *v3.Matrix {
	if S.Len() == 0 {
		return nil
	}
	C := v3.Zeros(S.Len())
	C.Mul(S.Frac, S.Cell.Vectors())
	return C
}

// SomeAtoms returns a new structure with the atoms in list, in that order, and
// the same cell. Atoms are copied.
func (S *Structure) SomeAtoms(list []int) (*Structure, error) {
	ret := &Structure{Atoms: make([]*Atom, len(list)), Cell: S.Cell}
	for k, j := range list {
		if j >= S.Len() || j < 0 {
			return nil, &CError{fmt.Sprintf("Atom requested (Number: %d, value: %d) out of range", k, j), []string{"SomeAtoms"}}
		}
		ret.Atoms[k] = S.Atoms[j].Copy()
	}
	if len(list) == 0 {
		return ret, nil
	}
	ret.Frac = v3.Zeros(len(list))
	if err := ret.Frac.SomeVecsSafe(S.Frac, list); err != nil {
		return nil, errDecorate(&CError{err.Error(), nil}, "SomeAtoms")
	}
	return ret, nil
}

// SortBySymbol returns a copy of the structure with the atoms stably sorted by
// chemical symbol, so atoms of the same element end up contiguous and keep their
// relative order.
func (S *Structure) SortBySymbol() *Structure {
	idx := make([]int, S.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return S.Atoms[idx[i]].Symbol < S.Atoms[idx[j]].Symbol
	})
	ret, err := S.SomeAtoms(idx)
	if err != nil {
		panic("SortBySymbol: can't happen: " + err.Error())
	}
	return ret
}

// CheckSymbols returns an error naming the first atom that doesn't correspond to
// a known element, or nil.
func (S *Structure) CheckSymbols() error {
	for i, a := range S.Atoms {
		if a.Symbol == "" {
			return &CError{fmt.Sprintf("%s: atom %d has atomic number %d", ErrUnknownElement, i, a.Number), []string{"CheckSymbols"}}
		}
	}
	return nil
}

// Species returns the distinct chemical symbols, in order of first
// appearance, and the number of atoms of each.
func (S *Structure) Species() ([]string, []int) {
	var syms []string
	var counts []int
	pos := make(map[string]int)
	for _, a := range S.Atoms {
		p, ok := pos[a.Symbol]
		if !ok {
			pos[a.Symbol] = len(syms)
			syms = append(syms, a.Symbol)
			counts = append(counts, 1)
			continue
		}
		counts[p]++
	}
	return syms, counts
}

// Formula returns the chemical formula, with elements in order of first
// appearance (e.g. "Si2O4").
func (S *Structure) Formula() string {
	syms, counts := S.Species()
	f := ""
	for i, s := range syms {
		if counts[i] == 1 {
			f += s
			continue
		}
		f += fmt.Sprintf("%s%d", s, counts[i])
	}
	return f
}

// Mass returns the total mass, in amu, of the atoms in the structure.
func (S *Structure) Mass() float64 {
	var m float64
	for _, a := range S.Atoms {
		m += Mass(a.Number)
	}
	return m
}

// Density returns the density of the structure in g/cm^3.
func (S *Structure) Density() float64 {
	return S.Mass() * Amu2G / (S.Cell.Volume() * A32Cm3)
}
