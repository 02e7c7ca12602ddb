/*
 * io.go, part of gocryst.
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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// rawSet is the on-disk layout: one JSON object with the named fields,
// the first index of every field being the batch entry.
type rawSet struct {
	AtomTypes          [][]int         `json:"atom_types"`
	FracCoords         [][][]float64   `json:"frac_coords"`
	Lengths            [][][]float64   `json:"lengths"`
	Angles             [][][]float64   `json:"angles"`
	NumAtoms           [][]int         `json:"num_atoms"`
	AllFracCoordsStack [][][][]float64 `json:"all_frac_coords_stack,omitempty"`
	AllAtomTypesStack  [][][]int       `json:"all_atom_types_stack,omitempty"`
}

// Decode reads a set from in. The five mandatory fields must be present and
// describe the same number of batch entries; the two trajectory fields must be
// both present or both absent.
func Decode(in io.Reader) (*Set, error) {
	var raw rawSet
	dec := json.NewDecoder(bufio.NewReader(in))
	if err := dec.Decode(&raw); err != nil {
		return nil, Error{"can't decode: " + err.Error(), []string{"Decode"}}
	}
	missing := make([]string, 0, 5)
	for name, present := range map[string]bool{"atom_types": raw.AtomTypes != nil, "frac_coords": raw.FracCoords != nil,
		"lengths": raw.Lengths != nil, "angles": raw.Angles != nil, "num_atoms": raw.NumAtoms != nil} {
		if !present {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, Error{"missing fields: " + strings.Join(missing, ", "), []string{"Decode"}}
	}
	n := len(raw.AtomTypes)
	if len(raw.FracCoords) != n || len(raw.Lengths) != n || len(raw.Angles) != n || len(raw.NumAtoms) != n {
		return nil, Error{fmt.Sprintf("fields disagree on the number of batch entries: atom_types %d, frac_coords %d, lengths %d, angles %d, num_atoms %d",
			n, len(raw.FracCoords), len(raw.Lengths), len(raw.Angles), len(raw.NumAtoms)), []string{"Decode"}}
	}
	traj := raw.AllFracCoordsStack != nil || raw.AllAtomTypesStack != nil
	if traj {
		if raw.AllFracCoordsStack == nil || raw.AllAtomTypesStack == nil {
			return nil, Error{"all_frac_coords_stack and all_atom_types_stack must be given together", []string{"Decode"}}
		}
		if len(raw.AllFracCoordsStack) != n || len(raw.AllAtomTypesStack) != n {
			return nil, Error{fmt.Sprintf("trajectory stacks have %d and %d entries, %d expected", len(raw.AllFracCoordsStack), len(raw.AllAtomTypesStack), n), []string{"Decode"}}
		}
	}
	entries := make([]*Entry, n)
	var err error
	for i := range entries {
		e := &Entry{AtomTypes: raw.AtomTypes[i], NumAtoms: raw.NumAtoms[i]}
		if e.FracCoords, err = vecs(raw.FracCoords[i], fmt.Sprintf("frac_coords[%d]", i)); err != nil {
			return nil, errDecorate(err, "Decode")
		}
		if e.Lengths, err = vecs(raw.Lengths[i], fmt.Sprintf("lengths[%d]", i)); err != nil {
			return nil, errDecorate(err, "Decode")
		}
		if e.Angles, err = vecs(raw.Angles[i], fmt.Sprintf("angles[%d]", i)); err != nil {
			return nil, errDecorate(err, "Decode")
		}
		if traj {
			steps := raw.AllFracCoordsStack[i]
			e.AllFracCoordsStack = make([][][3]float64, len(steps))
			for k, s := range steps {
				if e.AllFracCoordsStack[k], err = vecs(s, fmt.Sprintf("all_frac_coords_stack[%d][%d]", i, k)); err != nil {
					return nil, errDecorate(err, "Decode")
				}
			}
			e.AllAtomTypesStack = raw.AllAtomTypesStack[i]
			if e.AllAtomTypesStack == nil {
				e.AllAtomTypesStack = [][]int{}
			}
		}
		entries[i] = e
	}
	S, err := NewSet(entries)
	if err != nil {
		return nil, errDecorate(err, "Decode")
	}
	return S, nil
}

// vecs turns a slice of 3-element slices into a slice of arrays, failing
// if any element doesn't have exactly 3 components.
func vecs(in [][]float64, name string) ([][3]float64, error) {
	ret := make([][3]float64, len(in))
	for j, v := range in {
		if len(v) != 3 {
			return nil, Error{fmt.Sprintf("%s[%d] has %d components, 3 expected", name, j, len(v)), []string{"vecs"}}
		}
		copy(ret[j][:], v)
	}
	return ret, nil
}

func rawVecs(in [][3]float64) [][]float64 {
	ret := make([][]float64, len(in))
	for i, v := range in {
		ret[i] = []float64{v[0], v[1], v[2]}
	}
	return ret
}

// Encode writes S to out in the format read by Decode.
func Encode(out io.Writer, S *Set) error {
	raw := rawSet{
		AtomTypes:  make([][]int, S.Len()),
		FracCoords: make([][][]float64, S.Len()),
		Lengths:    make([][][]float64, S.Len()),
		Angles:     make([][][]float64, S.Len()),
		NumAtoms:   make([][]int, S.Len()),
	}
	if S.HasTrajectory() {
		raw.AllFracCoordsStack = make([][][][]float64, S.Len())
		raw.AllAtomTypesStack = make([][][]int, S.Len())
	}
	for i, e := range S.Entries {
		raw.AtomTypes[i] = e.AtomTypes
		raw.FracCoords[i] = rawVecs(e.FracCoords)
		raw.Lengths[i] = rawVecs(e.Lengths)
		raw.Angles[i] = rawVecs(e.Angles)
		raw.NumAtoms[i] = e.NumAtoms
		if !S.HasTrajectory() {
			continue
		}
		raw.AllFracCoordsStack[i] = make([][][]float64, len(e.AllFracCoordsStack))
		for k, s := range e.AllFracCoordsStack {
			raw.AllFracCoordsStack[i][k] = rawVecs(s)
		}
		raw.AllAtomTypesStack[i] = e.AllAtomTypesStack
	}
	if err := json.NewEncoder(out).Encode(raw); err != nil {
		return Error{"can't encode: " + err.Error(), []string{"Encode"}}
	}
	return nil
}

// compression is picked from the file extension: .zst or .zstd for
// z-standard, .gz for gzip, anything else is read as plain JSON.
func compression(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return "zstd"
	case ".gz":
		return "gzip"
	}
	return ""
}

// Load reads the set in the file name, decompressing it if needed.
func Load(name string) (*Set, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), []string{"Load"}}
	}
	defer f.Close()
	var in io.Reader = bufio.NewReader(f)
	switch compression(name) {
	case "zstd":
		zr, err := zstd.NewReader(in)
		if err != nil {
			return nil, Error{"can't open zstd stream: " + err.Error(), []string{"Load"}}
		}
		defer zr.Close()
		in = zr
	case "gzip":
		gr, err := gzip.NewReader(in)
		if err != nil {
			return nil, Error{"can't open gzip stream: " + err.Error(), []string{"Load"}}
		}
		defer gr.Close()
		in = gr
	}
	S, err := Decode(in)
	if err != nil {
		return nil, errDecorate(err, "Load: "+name)
	}
	return S, nil
}

// Save writes S to the file name, compressing it according to the extension.
func Save(name string, S *Set) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), []string{"Save"}}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = Error{cerr.Error(), []string{"Save"}}
		}
	}()
	var out io.WriteCloser
	switch compression(name) {
	case "zstd":
		out, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return Error{"can't open zstd stream: " + err.Error(), []string{"Save"}}
		}
	case "gzip":
		out = gzip.NewWriter(f)
	default:
		out = nopCloser{f}
	}
	if err = Encode(out, S); err != nil {
		out.Close()
		return errDecorate(err, "Save")
	}
	if err = out.Close(); err != nil {
		return Error{err.Error(), []string{"Save"}}
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
