/*
 * config_test.go, part of gocryst.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/gocryst/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(Te *testing.T) {
	c, err := New("../../test/convert.yaml")
	require.NoError(Te, err)
	assert.Equal(Te, &Config{Trajectory: true, Output: "poscars", Format: "cif", Workers: 4, CheckLattice: true}, c)
	cc, err := c.Convert()
	require.NoError(Te, err)
	assert.Equal(Te, convert.Config{Trajectory: true, Output: "poscars", Format: convert.CIF, Workers: 4, CheckLattice: true}, cc)
	assert.Equal(Te, convert.FileEmitter{Dir: "poscars", Format: convert.CIF}, cc.Emitter())
}

func TestNewErrors(Te *testing.T) {
	dir := Te.TempDir()
	cases := map[string]string{
		"format.yaml":  "format: pdb\n",
		"workers.yaml": "workers: -2\n",
		"unknown.yaml": "trajectroy: true\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		require.NoError(Te, os.WriteFile(path, []byte(content), 0o644))
		_, err := New(path)
		assert.Error(Te, err, name)
	}
	_, err := New(filepath.Join(dir, "nonexistent.yaml"))
	assert.Error(Te, err)
}

func TestDefaults(Te *testing.T) {
	c := &Config{}
	require.NoError(Te, c.Check())
	cc, err := c.Convert()
	require.NoError(Te, err)
	assert.Equal(Te, convert.POSCAR, cc.Format)
	assert.False(Te, cc.Trajectory)
}
