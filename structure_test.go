/*
 * structure_test.go, part of gocryst.
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
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellVectors(Te *testing.T) {
	L := NewCell([3]float64{5, 5, 5}, [3]float64{90, 90, 90}).Vectors()
	assert.Equal(Te, [][3]float64{{5, 0, 0}, {0, 5, 0}, {0, 0, 5}}, L.Vecs())

	hex := NewCell([3]float64{4, 4, 6}, [3]float64{90, 90, 120})
	L = hex.Vectors()
	assert.InDelta(Te, -2, L.At(1, 0), 1e-12)
	assert.InDelta(Te, 2*math.Sqrt(3), L.At(1, 1), 1e-12)
	assert.InDelta(Te, 6, L.At(2, 2), 1e-12)
	assert.InDelta(Te, 4*4*math.Sqrt(3)/2*6, hex.Volume(), 1e-9)

	tri := NewCell([3]float64{4, 5, 6}, [3]float64{80, 95, 100})
	back := CellFromVectors(tri.Vectors()).Params()
	for i, v := range tri.Params() {
		assert.InDelta(Te, v, back[i], 1e-9)
	}
}

func TestCellValidate(Te *testing.T) {
	assert.NoError(Te, NewCell([3]float64{4, 5, 6}, [3]float64{80, 95, 100}).Validate())
	bad := []Cell{
		NewCell([3]float64{-1, 5, 5}, [3]float64{90, 90, 90}),
		NewCell([3]float64{5, 5, 5}, [3]float64{90, 90, 190}),
		NewCell([3]float64{5, 5, 5}, [3]float64{10, 10, 170}),
		NewCell([3]float64{5, 5, math.NaN()}, [3]float64{90, 90, 90}),
		NewCell([3]float64{5, 5, 5}, [3]float64{120, 120, 120}),
	}
	for _, c := range bad {
		err := c.Validate()
		var ml *MalformedLatticeError
		assert.True(Te, errors.As(err, &ml), "%v", c)
	}
}

func TestNewStructure(Te *testing.T) {
	cell := NewCell([3]float64{5, 5, 5}, [3]float64{90, 90, 90})
	_, err := NewStructure([][3]float64{{0, 0, 0}}, []int{1, 1}, cell)
	var sm *ShapeMismatchError
	require.True(Te, errors.As(err, &sm))

	S, err := NewStructure(nil, nil, cell)
	require.NoError(Te, err)
	assert.Equal(Te, 0, S.Len())
	assert.Nil(Te, S.Cartesian())

	S, err = NewStructure([][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}, {0.5, 0, 0}}, []int{17, 11, 17}, cell)
	require.NoError(Te, err)
	assert.Equal(Te, []int{17, 11, 17}, S.Numbers())
	assert.Equal(Te, "Cl2Na", S.Formula())
	assert.Equal(Te, [3]float64{2.5, 2.5, 2.5}, S.Cartesian().Vec(1))

	sorted := S.SortBySymbol()
	assert.Equal(Te, []int{17, 17, 11}, sorted.Numbers())
	assert.Equal(Te, [3]float64{0.5, 0, 0}, sorted.Frac.Vec(1))
	//S itself is left as it was.
	assert.Equal(Te, []int{17, 11, 17}, S.Numbers())

	//angles are not validated when assembling.
	_, err = NewStructure([][3]float64{{0, 0, 0}}, []int{1}, NewCell([3]float64{1, 1, 1}, [3]float64{0, 0, 0}))
	assert.NoError(Te, err)
}

func TestSymbols(Te *testing.T) {
	s, err := Symbol(14)
	require.NoError(Te, err)
	assert.Equal(Te, "Si", s)
	z, err := Number("Og")
	require.NoError(Te, err)
	assert.Equal(Te, 118, z)
	s, err = Symbol(0)
	require.NoError(Te, err)
	assert.Equal(Te, "X", s)
	z, err = Number("X")
	require.NoError(Te, err)
	assert.Equal(Te, 0, z)
	_, err = Symbol(-1)
	assert.Error(Te, err)
	_, err = Symbol(119)
	assert.Error(Te, err)
	_, err = Number("Xx")
	assert.Error(Te, err)
	assert.InDelta(Te, 28.085, Mass(14), 1e-9)
}

func testNaCl(Te *testing.T) *Structure {
	S, err := NewStructure([][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}, {0.5, 0, 0}}, []int{17, 11, 17},
		NewCell([3]float64{5, 5, 5}, [3]float64{90, 90, 90}))
	require.NoError(Te, err)
	return S
}

func TestWritePOSCAR(Te *testing.T) {
	var buf bytes.Buffer
	require.NoError(Te, WritePOSCAR(&buf, testNaCl(Te), ""))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(Te, lines, 11)
	assert.Equal(Te, "Cl Na", lines[0])
	assert.Equal(Te, "1.0000000000000000", strings.TrimSpace(lines[1]))
	assert.Equal(Te, []string{"5.0000000000000000", "0.0000000000000000", "0.0000000000000000"}, strings.Fields(lines[2]))
	assert.Equal(Te, []string{"Cl", "Na"}, strings.Fields(lines[5]))
	assert.Equal(Te, []string{"2", "1"}, strings.Fields(lines[6]))
	assert.Equal(Te, "Direct", lines[7])
	assert.Equal(Te, []string{"0.5000000000000000", "0.0000000000000000", "0.0000000000000000"}, strings.Fields(lines[9]))
	assert.Equal(Te, []string{"0.5000000000000000", "0.5000000000000000", "0.5000000000000000"}, strings.Fields(lines[10]))

	buf.Reset()
	require.NoError(Te, WritePOSCAR(&buf, testNaCl(Te), "rock salt"))
	assert.True(Te, strings.HasPrefix(buf.String(), "rock salt\n"))

	S := testNaCl(Te)
	S.Atoms[1].Symbol = ""
	assert.ErrorContains(Te, WritePOSCAR(&buf, S, ""), ErrUnknownElement)
	assert.Error(Te, WritePOSCAR(&buf, nil, ""))

	//dummy atoms are written as X.
	D, err := NewStructure([][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{0, 11}, NewCell([3]float64{5, 5, 5}, [3]float64{90, 90, 90}))
	require.NoError(Te, err)
	buf.Reset()
	require.NoError(Te, WritePOSCAR(&buf, D, ""))
	lines = strings.Split(buf.String(), "\n")
	assert.Equal(Te, []string{"Na", "X"}, strings.Fields(lines[5]))
}

func TestWriteCIF(Te *testing.T) {
	var buf bytes.Buffer
	require.NoError(Te, WriteCIF(&buf, testNaCl(Te), "0_1"))
	out := buf.String()
	assert.True(Te, strings.HasPrefix(out, "data_0_1\n"))
	assert.Contains(Te, out, "_cell_length_a       5.00000000")
	assert.Contains(Te, out, "_cell_angle_gamma    90.00000000")
	assert.Contains(Te, out, "_cell_volume         125.00000000")
	assert.Contains(Te, out, "'Cl2 Na1'")
	assert.Contains(Te, out, "  Na  Na0  1  0.50000000  0.50000000  0.50000000  1.0000")
	assert.Contains(Te, out, "  Cl  Cl1  1  0.50000000  0.00000000  0.00000000  1.0000")
}

func TestWriteXYZ(Te *testing.T) {
	var buf bytes.Buffer
	require.NoError(Te, WriteXYZ(&buf, testNaCl(Te)))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(Te, lines, 5)
	assert.Equal(Te, "3", lines[0])
	assert.Contains(Te, lines[1], `Lattice="5.00000000 0.00000000 0.00000000 0.00000000 5.00000000`)
	assert.Equal(Te, []string{"Na", "2.50000000", "2.50000000", "2.50000000"}, strings.Fields(lines[3]))
}
