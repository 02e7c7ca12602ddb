/*
 * batch.go, part of gocryst.
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

// Package batch holds the batched output of a structure generation run:
// several batch entries, each with the atoms of many structures concatenated
// along one axis, and the per-structure lattice parameters and atom counts
// needed to take them apart. Optionally, each entry also carries the whole
// generation trajectory.
//
// The package only deals with getting the data in and checking that every
// field is where it should be. Taking the entries apart is the job of
// cryst.Ragged and the convert package.
package batch

import (
	"fmt"
)

// Entry is one batch entry. All the slices are read-only.
type Entry struct {
	AtomTypes  []int        //atomic numbers of all the atoms of all the structures, concatenated
	FracCoords [][3]float64 //fractional coordinates, concatenated like AtomTypes
	Lengths    [][3]float64 //a, b, c for each structure
	Angles     [][3]float64 //alpha, beta, gamma for each structure
	NumAtoms   []int        //number of atoms of each structure

	//Trajectory data, nil unless the set has trajectories. The first index is the
	//step, the second runs over the concatenated atoms.
	AllFracCoordsStack [][][3]float64
	AllAtomTypesStack  [][]int
}

// Structures returns the number of structures in the entry.
func (E *Entry) Structures() int {
	return len(E.NumAtoms)
}

// Steps returns the number of trajectory steps in the entry, 0 if
// there is no trajectory.
func (E *Entry) Steps() int {
	return len(E.AllFracCoordsStack)
}

// Set is a whole batched data set, loaded once and only read afterwards.
type Set struct {
	Entries    []*Entry
	trajectory bool
}

// NewSet builds a set from entries. If any entry has trajectory data, all must.
func NewSet(entries []*Entry) (*Set, error) {
	S := &Set{Entries: entries}
	withTraj := 0
	for _, e := range entries {
		if e.AllFracCoordsStack != nil || e.AllAtomTypesStack != nil {
			withTraj++
		}
	}
	if withTraj != 0 && withTraj != len(entries) {
		return nil, Error{fmt.Sprintf("%d of %d entries have trajectory data", withTraj, len(entries)), []string{"NewSet"}}
	}
	S.trajectory = withTraj > 0
	if err := S.check(); err != nil {
		return nil, errDecorate(err, "NewSet")
	}
	return S, nil
}

// Len returns the number of batch entries.
func (S *Set) Len() int {
	return len(S.Entries)
}

// Entry returns the ith batch entry.
func (S *Set) Entry(i int) *Entry {
	return S.Entries[i]
}

// HasTrajectory returns true if the set carries trajectory data.
func (S *Set) HasTrajectory() bool {
	return S.trajectory
}

// Structures returns the total number of structures in the set.
func (S *Set) Structures() int {
	n := 0
	for _, e := range S.Entries {
		n += e.Structures()
	}
	return n
}

// check verifies that the per-structure fields agree with each other and
// that trajectory stacks are consistent. It does not verify that the atom
// counts add up to the number of atoms: that is caught when segmenting.
func (S *Set) check() error {
	for i, e := range S.Entries {
		if e.AtomTypes == nil || e.FracCoords == nil || e.Lengths == nil || e.Angles == nil || e.NumAtoms == nil {
			return Error{fmt.Sprintf("entry %d is missing one of atom_types, frac_coords, lengths, angles or num_atoms", i), []string{"check"}}
		}
		n := len(e.NumAtoms)
		if len(e.Lengths) != n || len(e.Angles) != n {
			return Error{fmt.Sprintf("entry %d: %d lengths and %d angles for %d structures", i, len(e.Lengths), len(e.Angles), n), []string{"check"}}
		}
		if !S.trajectory {
			continue
		}
		if e.AllFracCoordsStack == nil || e.AllAtomTypesStack == nil {
			return Error{fmt.Sprintf("entry %d: trajectory needs both all_frac_coords_stack and all_atom_types_stack", i), []string{"check"}}
		}
		if len(e.AllFracCoordsStack) != len(e.AllAtomTypesStack) {
			return Error{fmt.Sprintf("entry %d: %d coordinate steps but %d species steps", i, len(e.AllFracCoordsStack), len(e.AllAtomTypesStack)), []string{"check"}}
		}
	}
	return nil
}

// Error is the error type of the package. It implements cryst.Error.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return "batch: " + err.message }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return err
}
