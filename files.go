/*
 * files.go, part of gocryst.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

//Writers for the structure files. Each format has a function writing to an io.Writer
//and a *FileWrite wrapper that creates (or truncates) the named file.

// WritePOSCAR writes S to out in the VASP 5 POSCAR format, with fractional
// ("Direct") coordinates. Atoms are grouped by element with a stable sort on
// their symbols. If comment is empty, the species list is used as the first line.
func WritePOSCAR(out io.Writer, S *Structure, comment string) error {
	if S == nil {
		return &CError{ErrNilStructure, []string{"WritePOSCAR"}}
	}
	if err := S.CheckSymbols(); err != nil {
		return errDecorate(err, "WritePOSCAR")
	}
	sorted := S.SortBySymbol()
	syms, counts := sorted.Species()
	if comment == "" {
		comment = strings.Join(syms, " ")
	}
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%s\n", strings.ReplaceAll(comment, "\n", " "))
	fmt.Fprintf(w, "%19.16f\n", 1.0)
	L := sorted.Cell.Vectors()
	for i := 0; i < 3; i++ {
		fmt.Fprintf(w, " %21.16f %21.16f %21.16f\n", L.At(i, 0), L.At(i, 1), L.At(i, 2))
	}
	for _, s := range syms {
		fmt.Fprintf(w, " %3s", s)
	}
	fmt.Fprint(w, "\n")
	for _, c := range counts {
		fmt.Fprintf(w, " %3d", c)
	}
	fmt.Fprint(w, "\nDirect\n")
	for i := 0; i < sorted.Len(); i++ {
		v := sorted.Frac.Vec(i)
		fmt.Fprintf(w, " %19.16f %19.16f %19.16f\n", v[0], v[1], v[2])
	}
	if err := w.Flush(); err != nil {
		return &CError{err.Error(), []string{"WritePOSCAR"}}
	}
	return nil
}

// WriteCIF writes S to out as a P1 CIF data block named name, with
// fractional coordinates.
func WriteCIF(out io.Writer, S *Structure, name string) error {
	if S == nil {
		return &CError{ErrNilStructure, []string{"WriteCIF"}}
	}
	if err := S.CheckSymbols(); err != nil {
		return errDecorate(err, "WriteCIF")
	}
	if name == "" {
		name = "image0"
	}
	p := S.Cell.Params()
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "data_%s\n\n", strings.ReplaceAll(name, " ", "_"))
	fmt.Fprintf(w, "_chemical_formula_sum    '%s'\n", cifFormula(S))
	fmt.Fprintf(w, "_cell_length_a       %.8f\n", p[0])
	fmt.Fprintf(w, "_cell_length_b       %.8f\n", p[1])
	fmt.Fprintf(w, "_cell_length_c       %.8f\n", p[2])
	fmt.Fprintf(w, "_cell_angle_alpha    %.8f\n", p[3])
	fmt.Fprintf(w, "_cell_angle_beta     %.8f\n", p[4])
	fmt.Fprintf(w, "_cell_angle_gamma    %.8f\n", p[5])
	fmt.Fprintf(w, "_cell_volume         %.8f\n\n", S.Cell.Volume())
	fmt.Fprint(w, "_symmetry_space_group_name_H-M    'P 1'\n")
	fmt.Fprint(w, "_symmetry_Int_Tables_number       1\n\n")
	fmt.Fprint(w, "loop_\n  _symmetry_equiv_pos_as_xyz\n  'x, y, z'\n\n")
	fmt.Fprint(w, "loop_\n  _atom_site_type_symbol\n  _atom_site_label\n  _atom_site_symmetry_multiplicity\n")
	fmt.Fprint(w, "  _atom_site_fract_x\n  _atom_site_fract_y\n  _atom_site_fract_z\n  _atom_site_occupancy\n")
	perElement := make(map[string]int)
	for i, a := range S.Atoms {
		v := S.Frac.Vec(i)
		fmt.Fprintf(w, "  %-2s  %s%d  1  %.8f  %.8f  %.8f  1.0000\n", a.Symbol, a.Symbol, perElement[a.Symbol], v[0], v[1], v[2])
		perElement[a.Symbol]++
	}
	if err := w.Flush(); err != nil {
		return &CError{err.Error(), []string{"WriteCIF"}}
	}
	return nil
}

// cifFormula is the formula with a count after every element, separated by spaces.
func cifFormula(S *Structure) string {
	syms, counts := S.Species()
	f := make([]string, len(syms))
	for i, s := range syms {
		f[i] = fmt.Sprintf("%s%d", s, counts[i])
	}
	return strings.Join(f, " ")
}

// WriteXYZ writes S to out as an extended XYZ frame, with cartesian coordinates
// and the lattice vectors in the comment line.
func WriteXYZ(out io.Writer, S *Structure) error {
	if S == nil {
		return &CError{ErrNilStructure, []string{"WriteXYZ"}}
	}
	if err := S.CheckSymbols(); err != nil {
		return errDecorate(err, "WriteXYZ")
	}
	L := S.Cell.Vectors()
	lat := make([]string, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			lat = append(lat, fmt.Sprintf("%.8f", L.At(i, j)))
		}
	}
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%d\n", S.Len())
	fmt.Fprintf(w, "Lattice=\"%s\" Properties=species:S:1:pos:R:3 pbc=\"T T T\"\n", strings.Join(lat, " "))
	if S.Len() > 0 {
		C := S.Cartesian()
		for i, a := range S.Atoms {
			c := C.Vec(i)
			fmt.Fprintf(w, "%-2s  %14.8f %14.8f %14.8f\n", a.Symbol, c[0], c[1], c[2])
		}
	}
	if err := w.Flush(); err != nil {
		return &CError{err.Error(), []string{"WriteXYZ"}}
	}
	return nil
}

// writeFile creates the file name and calls write on it.
func writeFile(name, caller string, write func(io.Writer) error) error {
	out, err := os.Create(name)
	if err != nil {
		return &CError{err.Error(), []string{caller}}
	}
	if err = write(out); err != nil {
		out.Close()
		return errDecorate(err, caller)
	}
	if err = out.Close(); err != nil {
		return &CError{err.Error(), []string{caller}}
	}
	return nil
}

// POSCARFileWrite writes S in the POSCAR format to the file name.
func POSCARFileWrite(name string, S *Structure, comment string) error {
	return writeFile(name, "POSCARFileWrite", func(w io.Writer) error { return WritePOSCAR(w, S, comment) })
}

// CIFFileWrite writes S as a CIF data block called block to the file name.
func CIFFileWrite(name string, S *Structure, block string) error {
	return writeFile(name, "CIFFileWrite", func(w io.Writer) error { return WriteCIF(w, S, block) })
}

// XYZFileWrite writes S in the extended XYZ format to the file name.
func XYZFileWrite(name string, S *Structure) error {
	return writeFile(name, "XYZFileWrite", func(w io.Writer) error { return WriteXYZ(w, S) })
}
