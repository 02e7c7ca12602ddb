/*
 * convert.go, part of gocryst.
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

// Package convert turns a batch.Set into structure files: for each batch
// entry it segments the concatenated per-atom arrays with the atom counts,
// builds every structure (and, if asked, every trajectory step of every
// structure) and hands them to an Emitter.
//
// A run is a single deterministic pass. Any error aborts it: a shape mismatch
// means the input is corrupted or was produced by an incompatible pipeline,
// so there is nothing sensible to do with the other structures.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	cryst "github.com/rmera/gocryst"
	"github.com/rmera/gocryst/batch"
	"golang.org/x/sync/errgroup"
)

// Config contains the options for a conversion.
type Config struct {
	Trajectory   bool   //also emit one structure per trajectory step
	Output       string //output location, where a FileEmitter writes
	Format       Format //file format for a FileEmitter
	Workers      int    //maximum concurrent emissions. 0 or 1 means sequential.
	CheckLattice bool   //fail on lattice parameters that don't define a cell
}

// Emitter receives every structure built in a conversion, with its identifier.
// The structure is not used by the Driver after Emit returns.
// Emit may be called concurrently if Config.Workers > 1.
type Emitter interface {
	Emit(id string, s *cryst.Structure) error
}

// ID returns the identifier for structure j of batch entry i, or, if a step
// is given, for that trajectory step of the structure: "i_j" or "i_j_k".
func ID(i, j int, step ...int) string {
	id := strconv.Itoa(i) + "_" + strconv.Itoa(j)
	if len(step) > 0 {
		id += "_" + strconv.Itoa(step[0])
	}
	return id
}

// Stats counts what a run emitted.
type Stats struct {
	Entries    int
	Structures int
	Frames     int //trajectory steps
}

// Driver performs conversions.
type Driver struct {
	cfg Config
	em  Emitter
	log *slog.Logger
}

// New returns a Driver that sends structures to em. If logger is nil, slog's
// default logger is used.
func New(cfg Config, em Emitter, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{cfg: cfg, em: em, log: logger}
}

// ErrNoTrajectory is returned when trajectory mode is requested for a set
// without trajectory data.
var ErrNoTrajectory = errors.New("trajectory mode requested, but the data has no trajectory stacks")

type job struct {
	id  string
	s   *cryst.Structure
	loc string //batch/structure/step, for error messages
}

// Run converts every structure in set, in input order, and returns the counts
// of what was emitted. It stops at the first error, which names the batch entry,
// structure and step involved; whatever was emitted before stays emitted.
func (D *Driver) Run(ctx context.Context, set *batch.Set) (Stats, error) {
	var st Stats
	if D.cfg.Trajectory && !set.HasTrajectory() {
		return st, ErrNoTrajectory
	}
	emit, wait := D.sequential(ctx)
	if D.cfg.Workers > 1 {
		emit, wait = D.parallel(ctx)
	}
	for i, e := range set.Entries {
		n, f, err := D.entry(i, e, emit)
		st.Structures += n
		st.Frames += f
		if err != nil {
			werr := wait()
			if werr != nil && !errors.Is(werr, context.Canceled) {
				//an emission failed first, that one is more informative.
				return st, werr
			}
			return st, err
		}
		st.Entries++
	}
	if err := wait(); err != nil {
		return st, err
	}
	D.log.Info("conversion finished", "entries", st.Entries, "structures", st.Structures, "trajectory_frames", st.Frames)
	return st, nil
}

// sequential emits each job as soon as it is built.
func (D *Driver) sequential(ctx context.Context) (func(job) error, func() error) {
	emit := func(j job) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return D.emitOne(j)
	}
	return emit, func() error { return nil }
}

// parallel hands jobs to at most Workers goroutines. The first failure cancels
// the group, so further calls to emit return the context error.
func (D *Driver) parallel(ctx context.Context) (func(job) error, func() error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(D.cfg.Workers)
	emit := func(j job) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		g.Go(func() error { return D.emitOne(j) })
		return nil
	}
	return emit, g.Wait
}

func (D *Driver) emitOne(j job) error {
	if err := D.em.Emit(j.id, j.s); err != nil {
		return fmt.Errorf("%s: emitting %s: %w", j.loc, j.id, err)
	}
	D.log.Debug("emitted structure", "id", j.id, "atoms", j.s.Len())
	return nil
}

// entry segments batch entry i and emits its structures. It returns the
// number of structures and trajectory frames handed to emit.
func (D *Driver) entry(i int, e *batch.Entry, emit func(job) error) (int, int, error) {
	var structs, frames int
	fail := func(err error) (int, int, error) {
		return structs, frames, err
	}
	coords, err := segment(e.FracCoords, e.NumAtoms, "frac_coords")
	if err != nil {
		return fail(fmt.Errorf("batch %d: %w", i, err))
	}
	types, err := segment(e.AtomTypes, e.NumAtoms, "atom_types")
	if err != nil {
		return fail(fmt.Errorf("batch %d: %w", i, err))
	}
	var trajCoords *cryst.TrajRagged[[3]float64]
	var trajTypes *cryst.TrajRagged[int]
	if D.cfg.Trajectory {
		if trajCoords, err = segmentTraj(e.AllFracCoordsStack, e.NumAtoms, "all_frac_coords_stack"); err != nil {
			return fail(fmt.Errorf("batch %d: %w", i, err))
		}
		if trajTypes, err = segmentTraj(e.AllAtomTypesStack, e.NumAtoms, "all_atom_types_stack"); err != nil {
			return fail(fmt.Errorf("batch %d: %w", i, err))
		}
	}
	for j := 0; j < coords.Len(); j++ {
		loc := fmt.Sprintf("batch %d structure %d", i, j)
		cell := cryst.NewCell(e.Lengths[j], e.Angles[j])
		if D.cfg.CheckLattice {
			if err := cell.Validate(); err != nil {
				return fail(fmt.Errorf("%s: %w", loc, err))
			}
		}
		s, err := cryst.NewStructure(coords.Slice(j), types.Slice(j), cell)
		if err != nil {
			return fail(fmt.Errorf("%s: %w", loc, err))
		}
		if err := emit(job{id: ID(i, j), s: s, loc: loc}); err != nil {
			return fail(err)
		}
		structs++
		if !D.cfg.Trajectory {
			continue
		}
		//the lattice is not part of the trajectory: every step gets the final cell.
		for k := 0; k < trajCoords.Steps(); k++ {
			sloc := fmt.Sprintf("%s step %d", loc, k)
			s, err := cryst.NewStructure(trajCoords.At(j, k), trajTypes.At(j, k), cell)
			if err != nil {
				return fail(fmt.Errorf("%s: %w", sloc, err))
			}
			if err := emit(job{id: ID(i, j, k), s: s, loc: sloc}); err != nil {
				return fail(err)
			}
			frames++
		}
	}
	return structs, frames, nil
}

func segment[T any](data []T, counts []int, field string) (*cryst.Ragged[T], error) {
	r, err := cryst.NewRagged(data, counts)
	if err != nil {
		return nil, named(err, field)
	}
	return r, nil
}

func segmentTraj[T any](steps [][]T, counts []int, field string) (*cryst.TrajRagged[T], error) {
	r, err := cryst.NewTrajRagged(steps, counts)
	if err != nil {
		return nil, named(err, field)
	}
	return r, nil
}

// named sets the field name on shape mismatch errors.
func named(err error, field string) error {
	var sm *cryst.ShapeMismatchError
	if errors.As(err, &sm) {
		sm.Field = field
		sm.Decorate("convert")
	}
	return err
}

// Format is an output file format.
type Format string

const (
	POSCAR Format = "poscar"
	CIF    Format = "cif"
	XYZ    Format = "xyz"
)

// ParseFormat returns the Format named by s (case-insensitive).
// The empty string means POSCAR.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return POSCAR, nil
	case POSCAR, CIF, XYZ:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q, use poscar, cif or xyz", s)
}
