/*
 * config.go, part of gocryst.
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

// Package config reads the YAML configuration file for a conversion.
package config

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rmera/gocryst/convert"
	"gopkg.in/yaml.v3"
)

// Config is a structure containing the parameters specified in the
// configuration file. It can be instanced through New or by hand; in the
// latter case, use the Check method before using it.
type Config struct {
	// Trajectory requests one structure file per trajectory step, besides
	// the final states.
	Trajectory bool `yaml:"trajectory"`

	// Output is the directory where the structure files are written. It must
	// not exist.
	Output string `yaml:"output_location"`

	// Format is the structure file format: poscar (the default), cif or xyz.
	Format string `yaml:"format"`

	// Workers is the maximum number of files written at the same time.
	Workers int `yaml:"workers"`

	// CheckLattice makes the conversion fail on lattice parameters that don't
	// define a unit cell, instead of writing them as they are.
	CheckLattice bool `yaml:"check_lattice"`
}

// New opens and decodes the configuration file path, and checks it.
func New(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c Config
	dec := yaml.NewDecoder(bufio.NewReader(f))
	dec.KnownFields(true)
	if err = dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err = c.Check(); err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}
	return &c, nil
}

// Check returns an error if a field doesn't meet the requirements.
func (c *Config) Check() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be lower than 0")
	}
	if _, err := convert.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// Convert returns the options for the conversion driver.
func (c *Config) Convert() (convert.Config, error) {
	f, err := convert.ParseFormat(c.Format)
	if err != nil {
		return convert.Config{}, err
	}
	return convert.Config{
		Trajectory:   c.Trajectory,
		Output:       c.Output,
		Format:       f,
		Workers:      c.Workers,
		CheckLattice: c.CheckLattice,
	}, nil
}
