/*
 * errors.go, part of gocryst.
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
	"strings"
)

// ShapeMismatchError is returned when per-atom data can't be segmented with
// the atom counts of a batch entry, i.e. the data doesn't have as many atoms
// as the counts add up to. It signals corrupted or incompatible input, and
// it is never recoverable for a single structure.
type ShapeMismatchError struct {
	Field     string //the input array that failed, if known
	What      string
	Want      int
	Got       int
	Structure int //-1 if the error is not about a particular structure
	Step      int //-1 if the error is not about a trajectory step
	Reason    string
	deco      []string
}

func (E *ShapeMismatchError) Error() string {
	var b strings.Builder
	b.WriteString("shape mismatch")
	if E.Field != "" {
		fmt.Fprintf(&b, " in %s", E.Field)
	}
	if E.Step >= 0 {
		fmt.Fprintf(&b, " at trajectory step %d", E.Step)
	}
	if E.Structure >= 0 {
		fmt.Fprintf(&b, " for structure %d", E.Structure)
	}
	if E.Reason != "" {
		fmt.Fprintf(&b, ": %s", E.Reason)
		return b.String()
	}
	fmt.Fprintf(&b, ": %d %s expected, %d given", E.Want, E.What, E.Got)
	return b.String()
}

// Decorate adds dec to the call chain of the error and returns the chain.
func (E *ShapeMismatchError) Decorate(dec string) []string {
	if dec != "" {
		E.deco = append(E.deco, dec)
	}
	return E.deco
}

// MalformedLatticeError is returned by Cell.Validate for lattice parameters
// that don't define a unit cell.
type MalformedLatticeError struct {
	Params [6]float64
	Reason string
	deco   []string
}

func (E *MalformedLatticeError) Error() string {
	p := E.Params
	return fmt.Sprintf("malformed lattice (a=%g b=%g c=%g alpha=%g beta=%g gamma=%g): %s", p[0], p[1], p[2], p[3], p[4], p[5], E.Reason)
}

// Decorate adds dec to the call chain of the error and returns the chain.
func (E *MalformedLatticeError) Decorate(dec string) []string {
	if dec != "" {
		E.deco = append(E.deco, dec)
	}
	return E.deco
}

// CError is the general error type of the package, for all errors
// that don't need a type of their own.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

// Decorate adds dec to the call chain of the error and returns the chain.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// errDecorate decorates err with the caller's name if err implements Error
// and returns it. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

// Some common messages
const (
	ErrUnknownElement = "Unknown element"
	ErrNilStructure   = "Given nil structure"
	ErrWrongFormat    = "Wrong format in file"
)
