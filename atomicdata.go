/*
 * atomicdata.go, part of gocryst.
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

import "fmt"

// The chemical symbols, indexed by atomic number. Index 0 is "X", a dummy atom.
var symbols = [...]string{"X",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// Standard atomic weights, indexed by atomic number. For elements
// without stable isotopes, the mass number of the longest-lived one.
var masses = [...]float64{0,
	1.008, 4.0026, 6.94, 9.0122, 10.81, 12.011, 14.007, 15.999, 18.998, 20.180,
	22.990, 24.305, 26.982, 28.085, 30.974, 32.06, 35.45, 39.948, 39.098, 40.078,
	44.956, 47.867, 50.942, 51.996, 54.938, 55.845, 58.933, 58.693, 63.546, 65.38,
	69.723, 72.630, 74.922, 78.971, 79.904, 83.798, 85.468, 87.62, 88.906, 91.224,
	92.906, 95.95, 97, 101.07, 102.91, 106.42, 107.87, 112.41, 114.82, 118.71,
	121.76, 127.60, 126.90, 131.29, 132.91, 137.33, 138.91, 140.12, 140.91, 144.24,
	145, 150.36, 151.96, 157.25, 158.93, 162.50, 164.93, 167.26, 168.93, 173.05,
	174.97, 178.49, 180.95, 183.84, 186.21, 190.23, 192.22, 195.08, 196.97, 200.59,
	204.38, 207.2, 208.98, 209, 210, 222, 223, 226, 227, 232.04,
	231.04, 238.03, 237, 244, 243, 247, 247, 251, 252, 257,
	258, 259, 262, 267, 270, 269, 270, 270, 278, 281,
	281, 285, 286, 289, 289, 293, 293, 294,
}

var symbolNumber map[string]int

func init() {
	symbolNumber = make(map[string]int, len(symbols))
	for z, s := range symbols {
		symbolNumber[s] = z
	}
}

// Symbol returns the chemical symbol for the atomic number z.
// 0 is a dummy atom, "X".
func Symbol(z int) (string, error) {
	if z < 0 || z >= len(symbols) {
		return "", &CError{fmt.Sprintf("%s: atomic number %d", ErrUnknownElement, z), []string{"Symbol"}}
	}
	return symbols[z], nil
}

// Number returns the atomic number for the chemical symbol s.
func Number(s string) (int, error) {
	z, ok := symbolNumber[s]
	if !ok {
		return 0, &CError{fmt.Sprintf("%s: symbol %q", ErrUnknownElement, s), []string{"Number"}}
	}
	return z, nil
}

// Mass returns the atomic mass, in amu, for the atomic number z,
// or 0 for an unknown element.
func Mass(z int) float64 {
	if z <= 0 || z >= len(masses) {
		return 0
	}
	return masses[z]
}
