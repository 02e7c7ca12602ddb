/*
 * dataset_test.go, part of gocryst.
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

package dataset

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtures = "../test/lmp"

func TestParseLogEnergy(Te *testing.T) {
	e, err := LogEnergyFileRead(filepath.Join(fixtures, "nacl.log"))
	require.NoError(Te, err)
	assert.Equal(Te, -6.375, e)

	//only the last run counts.
	two := "Step Temp E_pair\n 0 0 -1\nLoop time of 1\nStep Temp E_pair\n 0 0 -2\n 5 0 -3.5\nLoop time of 2\n"
	e, err = ParseLogEnergy(strings.NewReader(two))
	require.NoError(Te, err)
	assert.Equal(Te, -3.5, e)

	_, err = LogEnergyFileRead(filepath.Join(fixtures, "noloop.log"))
	assert.ErrorContains(Te, err, "Loop time")
	_, err = ParseLogEnergy(strings.NewReader("Loop time of 1\n"))
	assert.Error(Te, err)
	_, err = ParseLogEnergy(strings.NewReader("1 2 abc\nLoop time of 1\n"))
	assert.Error(Te, err)
}

func TestSplit(Te *testing.T) {
	for n, want := range map[int][3]int{0: {0, 0, 0}, 1: {1, 0, 0}, 5: {3, 1, 1}, 10: {6, 2, 2}, 7: {4, 2, 1}} {
		s := Split(n, 42)
		assert.Equal(Te, want, [3]int{len(s[0]), len(s[1]), len(s[2])}, "n=%d", n)
		var all []int
		for _, part := range s {
			all = append(all, part...)
		}
		sort.Ints(all)
		for i, v := range all {
			assert.Equal(Te, i, v)
		}
	}
	assert.Equal(Te, Split(20, 7), Split(20, 7))
}

func TestBuild(Te *testing.T) {
	dir := Te.TempDir()
	names := []string{"nacl", "close", "broken", "noloop", "missing", "nacl"}
	var structs, logs []string
	for _, n := range names {
		structs = append(structs, filepath.Join(fixtures, n+".data"))
		logs = append(logs, filepath.Join(fixtures, n+".log"))
	}
	res, err := Build(Options{
		StructureFiles: structs,
		LogFiles:       logs,
		Symbols:        []string{"Na", "Cl"},
		Seed:           1,
		OutDir:         dir,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(Te, err)
	assert.Equal(Te, Result{Train: 1, Val: 0, Test: 1, Skipped: 4}, res)

	var rows [][]string
	for _, name := range []string{"train.csv", "val.csv", "test.csv"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(Te, err)
		recs, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(Te, err, name)
		require.NotEmpty(Te, recs, name)
		assert.Equal(Te, []string{"", "material_id", "free_energy", "cif"}, recs[0])
		rows = append(rows, recs[1:]...)
	}
	require.Len(Te, rows, 2)
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	assert.Equal(Te, []string{"0", "0", "-6.375"}, rows[0][:3])
	assert.Equal(Te, []string{"1", "5", "-6.375"}, rows[1][:3])
	cif := rows[0][3]
	assert.True(Te, strings.HasPrefix(cif, "data_nacl\n"))
	assert.Contains(Te, cif, "'Cl1 Na1'")
	//atoms are sorted by symbol.
	assert.Less(Te, strings.Index(cif, "  Cl  Cl0"), strings.Index(cif, "  Na  Na0"))
}

func TestBuildBadOptions(Te *testing.T) {
	_, err := Build(Options{StructureFiles: []string{"a", "b"}, LogFiles: []string{"a"}, Symbols: []string{"H"}})
	assert.ErrorContains(Te, err, "2 structure files but 1 log files")
	_, err = Build(Options{StructureFiles: []string{"a"}, LogFiles: []string{"a"}})
	assert.Error(Te, err)
}
