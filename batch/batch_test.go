/*
 * batch_test.go, part of gocryst.
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

package batch

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(Te *testing.T) {
	S, err := Load("../test/batch.json")
	require.NoError(Te, err)
	assert.Equal(Te, 2, S.Len())
	assert.True(Te, S.HasTrajectory())
	assert.Equal(Te, 3, S.Structures())
	e := S.Entry(0)
	assert.Equal(Te, []int{2, 3}, e.NumAtoms)
	assert.Equal(Te, [3]float64{90, 90, 120}, e.Angles[1])
	assert.Equal(Te, 2, e.Steps())
	assert.Equal(Te, [3]float64{0.52, 0.5, 0.5}, e.AllFracCoordsStack[1][1])
	assert.Equal(Te, []int{6}, S.Entry(1).AllAtomTypesStack[0])
}

func TestSaveLoad(Te *testing.T) {
	S, err := Load("../test/batch.json")
	require.NoError(Te, err)
	for _, name := range []string{"set.json", "set.json.zst", "set.json.gz"} {
		path := filepath.Join(Te.TempDir(), name)
		require.NoError(Te, Save(path, S), name)
		S2, err := Load(path)
		require.NoError(Te, err, name)
		assert.Equal(Te, S, S2, name)
	}
}

func TestDecodeFinalOnly(Te *testing.T) {
	in := `{"atom_types": [[1, 1]], "frac_coords": [[[0,0,0],[0.5,0.5,0.5]]],
	"lengths": [[[2,2,2]]], "angles": [[[90,90,90]]], "num_atoms": [[2]]}`
	S, err := Decode(strings.NewReader(in))
	require.NoError(Te, err)
	assert.False(Te, S.HasTrajectory())
	assert.Nil(Te, S.Entry(0).AllFracCoordsStack)

	var buf bytes.Buffer
	require.NoError(Te, Encode(&buf, S))
	assert.NotContains(Te, buf.String(), "all_frac_coords_stack")
}

func TestDecodeErrors(Te *testing.T) {
	cases := map[string]string{
		"missing fields: angles, num_atoms": `{"atom_types": [[1]], "frac_coords": [[[0,0,0]]], "lengths": [[[2,2,2]]]}`,
		"number of batch entries": `{"atom_types": [[1], [1]], "frac_coords": [[[0,0,0]]],
			"lengths": [[[2,2,2]]], "angles": [[[90,90,90]]], "num_atoms": [[1]]}`,
		"3 expected": `{"atom_types": [[1]], "frac_coords": [[[0,0]]],
			"lengths": [[[2,2,2]]], "angles": [[[90,90,90]]], "num_atoms": [[1]]}`,
		"given together": `{"atom_types": [[1]], "frac_coords": [[[0,0,0]]],
			"lengths": [[[2,2,2]]], "angles": [[[90,90,90]]], "num_atoms": [[1]], "all_atom_types_stack": [[[1]]]}`,
		"1 lengths and 1 angles for 2 structures": `{"atom_types": [[1]], "frac_coords": [[[0,0,0]]],
			"lengths": [[[2,2,2]]], "angles": [[[90,90,90]]], "num_atoms": [[1, 0]]}`,
		"1 coordinate steps but 2 species steps": `{"atom_types": [[1]], "frac_coords": [[[0,0,0]]],
			"lengths": [[[2,2,2]]], "angles": [[[90,90,90]]], "num_atoms": [[1]],
			"all_frac_coords_stack": [[[[0,0,0]]]], "all_atom_types_stack": [[[1], [1]]]}`,
		"can't decode": `{"atom_types": [[1]`,
	}
	cases["missing fields: angles, atom_types, frac_coords, lengths, num_atoms"] = `{}`
	for want, in := range cases {
		_, err := Decode(strings.NewReader(in))
		require.Error(Te, err, want)
		assert.Contains(Te, err.Error(), want)
		assert.True(Te, strings.HasPrefix(err.Error(), "batch: "), err.Error())
	}
}

func TestNewSetMixedTrajectory(Te *testing.T) {
	e := func(traj bool) *Entry {
		ret := &Entry{AtomTypes: []int{1}, FracCoords: [][3]float64{{0, 0, 0}},
			Lengths: [][3]float64{{1, 1, 1}}, Angles: [][3]float64{{90, 90, 90}}, NumAtoms: []int{1}}
		if traj {
			ret.AllFracCoordsStack = [][][3]float64{{{0, 0, 0}}}
			ret.AllAtomTypesStack = [][]int{{1}}
		}
		return ret
	}
	_, err := NewSet([]*Entry{e(true), e(false)})
	assert.ErrorContains(Te, err, "1 of 2 entries")
	S, err := NewSet([]*Entry{e(true), e(true)})
	require.NoError(Te, err)
	assert.True(Te, S.HasTrajectory())
}

func TestUnevenAtomsAccepted(Te *testing.T) {
	//the atom counts are checked when segmenting, not when loading.
	e := &Entry{AtomTypes: []int{1, 1, 1}, FracCoords: [][3]float64{{0, 0, 0}},
		Lengths: [][3]float64{{1, 1, 1}}, Angles: [][3]float64{{90, 90, 90}}, NumAtoms: []int{2}}
	_, err := NewSet([]*Entry{e})
	assert.NoError(Te, err)
}
