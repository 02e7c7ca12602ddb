/*
 * summary.go, part of gocryst.
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

package chemplot

import (
	"fmt"
	"io"
	"math"
	"sort"

	cryst "github.com/rmera/gocryst"
	"github.com/rmera/gocryst/batch"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary contains some descriptors of a batch set.
type Summary struct {
	Entries    int
	Structures int
	Atoms      int
	Steps      int //trajectory steps, over all the entries

	AtomsMean, AtomsStd   float64
	AtomsMin, AtomsMax    float64
	VolumeMean, VolumeStd float64 //A^3. Malformed cells are left out.
	Malformed             int     //structures whose lattice parameters don't define a cell

	//g/cm^3. Only for well-formed cells in entries whose atom counts add up.
	DensityMean, DensityStd float64

	Species map[int]int //atoms of each atomic number, final states only

	//per structure, for plotting
	AtomsPerStructure []float64
	Volumes           []float64
	Densities         []float64
}

// Summarize collects the descriptors for set. It also works on sets whose
// atom counts don't add up, those entries just don't contribute densities.
func Summarize(set *batch.Set) Summary {
	s := Summary{Entries: set.Len(), Species: make(map[int]int)}
	for _, e := range set.Entries {
		s.Steps += e.Steps()
		for _, z := range e.AtomTypes {
			s.Species[z]++
		}
		types, errt := cryst.NewRagged(e.AtomTypes, e.NumAtoms)
		frac, errf := cryst.NewRagged(e.FracCoords, e.NumAtoms)
		segmented := errt == nil && errf == nil
		for j, n := range e.NumAtoms {
			s.Structures++
			s.Atoms += n
			s.AtomsPerStructure = append(s.AtomsPerStructure, float64(n))
			cell := cryst.NewCell(e.Lengths[j], e.Angles[j])
			if cell.Validate() != nil {
				s.Malformed++
				continue
			}
			s.Volumes = append(s.Volumes, cell.Volume())
			if !segmented {
				continue
			}
			S, err := cryst.NewStructure(frac.Slice(j), types.Slice(j), cell)
			if err == nil {
				s.Densities = append(s.Densities, S.Density())
			}
		}
	}
	if len(s.AtomsPerStructure) > 0 {
		s.AtomsMean, s.AtomsStd = meanStd(s.AtomsPerStructure)
		s.AtomsMin = floats.Min(s.AtomsPerStructure)
		s.AtomsMax = floats.Max(s.AtomsPerStructure)
	}
	if len(s.Volumes) > 0 {
		s.VolumeMean, s.VolumeStd = meanStd(s.Volumes)
	}
	if len(s.Densities) > 0 {
		s.DensityMean, s.DensityStd = meanStd(s.Densities)
	}
	return s
}

// the standard deviation of a single value is taken to be 0.
func meanStd(x []float64) (float64, float64) {
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

// Write prints the summary in a human-readable form.
func (S Summary) Write(out io.Writer) error {
	zs := make([]int, 0, len(S.Species))
	for z := range S.Species {
		zs = append(zs, z)
	}
	sort.Ints(zs)
	species := ""
	for _, z := range zs {
		sym, err := cryst.Symbol(z)
		if err != nil {
			sym = fmt.Sprintf("Z=%d", z)
		}
		species += fmt.Sprintf(" %s:%d", sym, S.Species[z])
	}
	_, err := fmt.Fprintf(out, "batch entries:        %d\nstructures:           %d\natoms:                %d\ntrajectory steps:     %d\n"+
		"atoms per structure:  %.2f +/- %.2f (min %.0f, max %.0f)\ncell volume (A^3):    %.2f +/- %.2f\ndensity (g/cm^3):     %.3f +/- %.3f\nmalformed cells:      %d\nspecies:             %s\n",
		S.Entries, S.Structures, S.Atoms, S.Steps, S.AtomsMean, S.AtomsStd, S.AtomsMin, S.AtomsMax,
		nanZero(S.VolumeMean), nanZero(S.VolumeStd), nanZero(S.DensityMean), nanZero(S.DensityStd), S.Malformed, species)
	return err
}

func nanZero(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}
