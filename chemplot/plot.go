/*
 * plot.go, part of gocryst.
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

// Package chemplot produces summaries and plots to inspect a batch set
// before converting it.
package chemplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// HistogramPlot plots a histogram of values and saves it in the PNG file
// plotname.png. If bins is not positive, the number of bins is chosen
// from the number of values with Sturges' rule.
func HistogramPlot(values []float64, bins int, title, xlabel, plotname string) error {
	if len(values) == 0 {
		return fmt.Errorf("HistogramPlot: no values to plot")
	}
	if bins <= 0 {
		bins = sturges(len(values))
	}
	p := basicPlot(title, xlabel, "Count")
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return err
	}
	p.Add(h)
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}

// sturges returns the number of bins given by Sturges' rule for n values.
func sturges(n int) int {
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}
