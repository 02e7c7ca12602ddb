/*
 * dataset.go, part of gocryst.
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

// Package dataset builds training sets for structure-energy models out of
// relaxations run with LAMMPS. Each record pairs the final structure of a run,
// read from a LAMMPS data file and rendered as a CIF, with the final potential
// energy printed in the run's log. The records are shuffled and split 6:2:2
// into train.csv, val.csv and test.csv.
//
// Unlike the batch conversion, building a data set tolerates bad input: a
// structure that can't be read, or that has two atoms on top of each other,
// is logged and left out.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cryst "github.com/rmera/gocryst"
)

// Options for Build.
type Options struct {
	StructureFiles []string //LAMMPS data files, atomic style
	LogFiles       []string //the LAMMPS log for each structure file
	Symbols        []string //the element for each LAMMPS atom type, in type order
	Seed           uint64   //for the train/validation/test split
	OutDir         string   //where the CSV files are written. Defaults to the current directory.
	Logger         *slog.Logger
}

// Record is one row of the data set.
type Record struct {
	MaterialID int //position of the structure in the input file list
	FreeEnergy float64
	CIF        string
}

// Result summarizes what Build did.
type Result struct {
	Train, Val, Test int
	Skipped          int
}

// Build reads all the structure/log pairs in opts and writes the three CSV
// files. Pairs that can't be used are skipped with a warning. Only
// problems with the options themselves, or with writing the output, are
// returned as errors.
func Build(opts Options) (Result, error) {
	var res Result
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if len(opts.StructureFiles) != len(opts.LogFiles) {
		return res, fmt.Errorf("%d structure files but %d log files", len(opts.StructureFiles), len(opts.LogFiles))
	}
	if len(opts.Symbols) == 0 {
		return res, fmt.Errorf("no atomic symbols given")
	}
	records := make([]Record, 0, len(opts.StructureFiles))
	for i, name := range opts.StructureFiles {
		r, err := NewRecord(i, name, opts.LogFiles[i], opts.Symbols)
		if err != nil {
			log.Warn("skipping structure", "file", name, "log", opts.LogFiles[i], "error", err)
			res.Skipped++
			continue
		}
		records = append(records, r)
		log.Info("record added", "file", name, "done", i+1, "total", len(opts.StructureFiles))
	}
	sets := Split(len(records), opts.Seed)
	for k, name := range []string{"train.csv", "val.csv", "test.csv"} {
		path := filepath.Join(opts.OutDir, name)
		if err := writeCSVFile(path, records, sets[k]); err != nil {
			return res, err
		}
		log.Debug("wrote data set", "file", path, "records", len(sets[k]))
	}
	res.Train, res.Val, res.Test = len(sets[0]), len(sets[1]), len(sets[2])
	return res, nil
}

// NewRecord builds the record with material id id from the LAMMPS data file
// structure and the log logfile. LAMMPS type t is taken to be the element
// symbols[t-1]. Structures where two atoms are closer than
// cryst.MinSiteDistance are rejected.
func NewRecord(id int, structure, logfile string, symbols []string) (Record, error) {
	S, err := cryst.LammpsDataFileRead(structure, symbols)
	if err != nil {
		return Record{}, err
	}
	if d := cryst.MinDistance(S); d < cryst.MinSiteDistance {
		return Record{}, fmt.Errorf("site occupancy larger than 1: atoms %.3f A apart", d)
	}
	e, err := LogEnergyFileRead(logfile)
	if err != nil {
		return Record{}, err
	}
	var cif bytes.Buffer
	block := strings.TrimSuffix(filepath.Base(structure), filepath.Ext(structure))
	if err := cryst.WriteCIF(&cif, S.SortBySymbol(), block); err != nil {
		return Record{}, err
	}
	return Record{MaterialID: id, FreeEnergy: e, CIF: cif.String()}, nil
}

// LogEnergyFileRead opens the LAMMPS log name and reads it with ParseLogEnergy.
func LogEnergyFileRead(name string) (float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	e, err := ParseLogEnergy(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return e, nil
}

// ParseLogEnergy returns the pair energy of the last thermo output in a LAMMPS
// log with the default thermo style: the third column of the line right
// before the last "Loop time" line.
func ParseLogEnergy(in io.Reader) (float64, error) {
	r := bufio.NewScanner(in)
	var prev, last string
	found := false
	for r.Scan() {
		line := r.Text()
		if strings.Contains(line, "Loop time") {
			last = prev
			found = true
		}
		prev = line
	}
	if err := r.Err(); err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("no 'Loop time' line, the run didn't finish")
	}
	fields := strings.Fields(last)
	if len(fields) < 3 {
		return 0, fmt.Errorf("can't read the energy from thermo line %q", last)
	}
	e, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, fmt.Errorf("can't read the energy from thermo line %q: %w", last, err)
	}
	return e, nil
}

// Split shuffles the indexes 0..n-1 with the given seed and splits them
// into a training set with 60% of the elements, a validation set with half
// of the rest and a test set with what remains. Split is deterministic
// for a given n and seed.
func Split(n int, seed uint64) [3][]int {
	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)
	ntrain := int(math.RoundToEven(0.6 * float64(n)))
	nval := int(math.RoundToEven(0.5 * float64(n-ntrain)))
	return [3][]int{perm[:ntrain], perm[ntrain : ntrain+nval], perm[ntrain+nval:]}
}

// WriteCSV writes the records with the given indexes to out, with a
// header. The first, unnamed, column is the index of the record.
func WriteCSV(out io.Writer, records []Record, indexes []int) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"", "material_id", "free_energy", "cif"}); err != nil {
		return err
	}
	for _, i := range indexes {
		r := records[i]
		row := []string{strconv.Itoa(i), strconv.Itoa(r.MaterialID), strconv.FormatFloat(r.FreeEnergy, 'g', -1, 64), r.CIF}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeCSVFile(name string, records []Record, indexes []int) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records, indexes); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return f.Close()
}
