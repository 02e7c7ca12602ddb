/*
 * trajectory.go, part of gocryst.
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

// TrajRagged applies the Ragged segmentation to every step of a
// trajectory. The data for each step contains the atoms of all the
// structures of a batch entry, concatenated, and the same counts
// segment every step: the number of atoms of a structure doesn't
// change along its trajectory.
type TrajRagged[T any] struct {
	steps []*Ragged[T]
	n     int
}

// NewTrajRagged segments each element of steps with counts. It returns
// a *ShapeMismatchError, with Step set to the offending step, if any step
// can't be segmented.
func NewTrajRagged[T any](steps [][]T, counts []int) (*TrajRagged[T], error) {
	ret := &TrajRagged[T]{steps: make([]*Ragged[T], len(steps)), n: len(counts)}
	for k, s := range steps {
		r, err := NewRagged(s, counts)
		if err != nil {
			e := err.(*ShapeMismatchError)
			e.Step = k
			e.Decorate("NewTrajRagged")
			return nil, e
		}
		ret.steps[k] = r
	}
	return ret, nil
}

// Steps returns the number of trajectory steps.
func (T *TrajRagged[E]) Steps() int {
	return len(T.steps)
}

// Len returns the number of structures.
func (T *TrajRagged[E]) Len() int {
	return T.n
}

// At returns the data of structure j at step k.
func (T *TrajRagged[E]) At(j, k int) []E {
	return T.steps[k].Slice(j)
}

// Structure returns, for structure j, one slice per step, in step order.
// Each slice has as many elements as the structure has atoms.
func (T *TrajRagged[E]) Structure(j int) [][]E {
	ret := make([][]E, len(T.steps))
	for k, s := range T.steps {
		ret[k] = s.Slice(j)
	}
	return ret
}
