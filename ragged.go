/*
 * ragged.go, part of gocryst.
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

import "fmt"

// Ragged is a sequence of variable-length sub-sequences stored
// concatenated in one flat slice, alongside the count vector that gives
// the length of each sub-sequence. In gocryst, the sub-sequences are the
// per-atom data of each structure in a batch entry, and the counts are the
// number of atoms of each structure.
//
// Slices returned by a Ragged share memory with the flat data.
type Ragged[T any] struct {
	data    []T
	counts  []int
	offsets []int //len(counts)+1 elements, offsets[len(counts)]==len(data)
}

// NewRagged segments data according to counts. Slice j of the result has
// exactly counts[j] elements, starting right after the elements of slices
// 0..j-1. It returns a *ShapeMismatchError if the counts don't add up to
// len(data) or if any count is negative. Nothing is ever truncated.
func NewRagged[T any](data []T, counts []int) (*Ragged[T], error) {
	offsets := make([]int, len(counts)+1)
	for j, c := range counts {
		if c < 0 {
			return nil, &ShapeMismatchError{What: "atoms", Got: c, Step: -1, Structure: j, Reason: fmt.Sprintf("negative atom count %d", c), deco: []string{"NewRagged"}}
		}
		offsets[j+1] = offsets[j] + c
	}
	if total := offsets[len(counts)]; total != len(data) {
		return nil, &ShapeMismatchError{What: "atoms", Want: total, Got: len(data), Step: -1, Structure: -1, deco: []string{"NewRagged"}}
	}
	return &Ragged[T]{data: data, counts: counts, offsets: offsets}, nil
}

// Len returns the number of sub-sequences.
func (R *Ragged[T]) Len() int {
	return len(R.counts)
}

// Count returns the number of elements in the jth sub-sequence.
func (R *Ragged[T]) Count(j int) int {
	return R.counts[j]
}

// Offset returns the position, in the flat data, of the first
// element of the jth sub-sequence.
func (R *Ragged[T]) Offset(j int) int {
	return R.offsets[j]
}

// Slice returns the jth sub-sequence. It panics if j is out of range.
func (R *Ragged[T]) Slice(j int) []T {
	if j < 0 || j >= R.Len() {
		panic("Ragged: requested sub-sequence out of range")
	}
	//the capacity is clipped so appending to a slice can't spill into the next one.
	return R.data[R.offsets[j]:R.offsets[j+1]:R.offsets[j+1]]
}

// Slices returns all the sub-sequences, in order.
func (R *Ragged[T]) Slices() [][]T {
	ret := make([][]T, R.Len())
	for j := range ret {
		ret[j] = R.Slice(j)
	}
	return ret
}

// Flat returns the concatenated data.
func (R *Ragged[T]) Flat() []T {
	return R.data
}
