/*
 * doc.go, part of gocryst.
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

/*
Package cryst is the main package of the goCryst library. It provides the
periodic structure type, the ragged containers used to take batched, padded
model output apart, and readers and writers for some crystallographic files.

	**goCryst Capabilities**

	Segments concatenated per-atom arrays into per-structure views, using the
	atom counts of each structure (Ragged), also along a trajectory axis
	(TrajRagged).

	Builds structures from fractional coordinates, atomic numbers and the six
	lattice parameters, and turns the parameters into lattice vectors.

	Writes POSCAR (VASP 5), CIF (P1) and extended XYZ files.

	Reads LAMMPS data files with the atomic and charge atom styles.

	Computes minimum-image interatomic distances, cell volumes and densities.

Coordinates are kept in v3.Matrix objects, based on gonum's mat.Dense, with
one row per atom.

The batch package loads batched model output, and the convert package drives
the conversion of a whole batch into structure files.
*/
package cryst
