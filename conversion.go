/*
 * conversion.go, part of gocryst.
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

//This provides useful conversion factors and other constants

// Conversions
const (
	Deg2Rad = 0.017453292519943295
	Rad2Deg = 1 / Deg2Rad
	Amu2G   = 1.66053906660e-24 //atomic mass units to grams
	A32Cm3  = 1e-24             //cubic Angstrom to cubic cm
)

// Others
const (
	// MinSiteDistance is the distance, in A, under which two atoms are
	// considered to be sharing a site.
	MinSiteDistance = 0.5
)
