/*
 * v3_test.go, part of gocryst.
 *
 * Copyright 2015 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	assert.Error(Te, err)
	_, err = NewMatrix(nil)
	assert.Error(Te, err)

	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	assert.Equal(Te, [3]float64{4, 5, 6}, A.Vec(1))
}

func TestVecView(Te *testing.T) {
	A, err := FromVecs([][3]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	require.NoError(Te, err)
	View := A.VecView(1)
	View.Set(0, 0, 100)
	assert.Equal(Te, 100.0, A.At(1, 0))
	assert.Equal(Te, [][3]float64{{1, 2, 3}, {100, 5, 6}, {7, 8, 9}}, A.Vecs())
}

func TestSomeVecs(Te *testing.T) {
	A, err := FromVecs([][3]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}})
	require.NoError(Te, err)
	B := Zeros(2)
	require.NoError(Te, B.SomeVecsSafe(A, []int{3, 1}))
	assert.Equal(Te, [][3]float64{{10, 11, 12}, {4, 5, 6}}, B.Vecs())

	C := Zeros(2)
	assert.Error(Te, C.SomeVecsSafe(A, []int{0, 9}))
	assert.Error(Te, C.SomeVecsSafe(A, []int{0}))
}
