/*
 * interfaces.go, part of gocryst.
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

// Error is implemented by the errors of every package in gocryst. Decorate
// appends the name of a calling function (optionally followed by ": " and some
// context) to the call chain carried by the error, and returns the chain, so
// callers can add information without wrapping the error or changing its type.
type Error interface {
	Error() string
	Decorate(string) []string //an empty string only returns the chain.
}
