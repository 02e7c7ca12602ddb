/*
 * emit.go, part of gocryst.
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

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	cryst "github.com/rmera/gocryst"
)

// FileEmitter writes each structure to its own file in Dir.
type FileEmitter struct {
	Dir    string
	Format Format
}

// Emitter returns the FileEmitter for the output location and format in C.
func (C Config) Emitter() FileEmitter {
	return FileEmitter{Dir: C.Output, Format: C.Format}
}

// Filename returns the name, without directory, of the file for the
// structure with identifier id.
func (F FileEmitter) Filename(id string) string {
	switch F.Format {
	case CIF:
		return id + ".cif"
	case XYZ:
		return id + ".xyz"
	}
	return "POSCAR_" + id
}

// Emit writes s to the file for id, replacing it if it exists.
func (F FileEmitter) Emit(id string, s *cryst.Structure) error {
	name := filepath.Join(F.Dir, F.Filename(id))
	switch F.Format {
	case CIF:
		return cryst.CIFFileWrite(name, s, id)
	case XYZ:
		return cryst.XYZFileWrite(name, s)
	case POSCAR, "":
		return cryst.POSCARFileWrite(name, s, "")
	}
	return fmt.Errorf("unknown output format %q", F.Format)
}

// PrepareOutput creates the output directory dir. It refuses to work on a
// directory that already exists, so a run never mixes its files with those
// of a previous one.
func PrepareOutput(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("output location %s already exists", dir)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.Mkdir(dir, 0o755)
}

// Recorder is an Emitter that keeps what it receives in memory. It is safe
// for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	ids        []string
	structures map[string]*cryst.Structure
}

// Emit records s under id. Emitting the same id twice is an error.
func (R *Recorder) Emit(id string, s *cryst.Structure) error {
	R.mu.Lock()
	defer R.mu.Unlock()
	if R.structures == nil {
		R.structures = make(map[string]*cryst.Structure)
	}
	if _, ok := R.structures[id]; ok {
		return fmt.Errorf("identifier %s emitted twice", id)
	}
	R.ids = append(R.ids, id)
	R.structures[id] = s
	return nil
}

// IDs returns the recorded identifiers in the order they were emitted.
func (R *Recorder) IDs() []string {
	R.mu.Lock()
	defer R.mu.Unlock()
	return append([]string(nil), R.ids...)
}

// Get returns the structure recorded under id, or nil.
func (R *Recorder) Get(id string) *cryst.Structure {
	R.mu.Lock()
	defer R.mu.Unlock()
	return R.structures[id]
}

// Len returns the number of recorded structures.
func (R *Recorder) Len() int {
	R.mu.Lock()
	defer R.mu.Unlock()
	return len(R.ids)
}
