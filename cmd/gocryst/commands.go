/*
 * commands.go, part of gocryst.
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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/rmera/gocryst/batch"
	"github.com/rmera/gocryst/chemplot"
	"github.com/rmera/gocryst/convert"
	"github.com/rmera/gocryst/dataset"
	"github.com/rmera/gocryst/internal/config"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "gocryst",
		Short:         "Converts batched crystal structures into structure files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	convertCmd = &cobra.Command{
		Use:   "convert INPUT [OUTPUT]",
		Short: "Writes one structure file per structure in a batch file",
		Long: `Reads a batch file (JSON, optionally compressed with zstd or gzip) and writes
one file per structure to OUTPUT, named after the batch entry and structure
indexes (POSCAR_i_j). With --traj, every step of the generation trajectory of
each structure is written too (POSCAR_i_j_k). OUTPUT must not exist. It can be
omitted if the configuration file gives output_location.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runConvert,
	}
	configFile   string
	traj         bool
	format       string
	workers      int
	checkLattice bool

	inspectCmd = &cobra.Command{
		Use:   "inspect INPUT",
		Short: "Prints a summary of a batch file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	plotPrefix string

	lmp2csvCmd = &cobra.Command{
		Use:   "lmp2csv",
		Short: "Builds train/val/test CSV data sets from LAMMPS relaxations",
		Long: `Pairs each LAMMPS data file with its log, renders the structure as a CIF
and takes the final pair energy from the log. Structures that can't be read,
or have two atoms closer than 0.5 A, are skipped. The records are split 6:2:2
into train.csv, val.csv and test.csv.

The list flags take one value each and are repeated for more, in order:
  gocryst lmp2csv --structure_files a.data --structure_files b.data \
    --log_files a.log --log_files b.log --atomic_symbols Na --atomic_symbols Cl
Values are not split on commas.`,
		Args: cobra.NoArgs,
		RunE: runLmp2csv,
	}
	structureFiles []string
	logFiles       []string
	atomicSymbols  []string
	seed           uint64
	outDir         string
)

func init() {
	convertCmd.Flags().StringVar(&configFile, "config", "", "YAML configuration file. Flags override its values.")
	convertCmd.Flags().BoolVar(&traj, "traj", false, "Also write the trajectory steps")
	convertCmd.Flags().StringVar(&format, "format", "poscar", "Output format (poscar, cif, xyz)")
	convertCmd.Flags().IntVar(&workers, "workers", 1, "Maximum number of files written at the same time")
	convertCmd.Flags().BoolVar(&checkLattice, "check-lattice", false, "Fail on lattice parameters that don't define a cell")

	inspectCmd.Flags().StringVar(&plotPrefix, "plot-prefix", "", "If given, write histograms of atoms per structure and cell volumes to PREFIX_natoms.png and PREFIX_volume.png")

	lmp2csvCmd.Flags().StringArrayVar(&structureFiles, "structure_files", nil, "LAMMPS data file (repeat for each file)")
	lmp2csvCmd.Flags().StringArrayVar(&logFiles, "log_files", nil, "LAMMPS log file, one per data file (repeat for each file)")
	lmp2csvCmd.Flags().StringArrayVar(&atomicSymbols, "atomic_symbols", nil, "Element of a LAMMPS atom type (repeat for each type, in type order)")
	lmp2csvCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the data set split")
	lmp2csvCmd.Flags().StringVar(&outDir, "out", ".", "Directory for the CSV files")
	for _, f := range []string{"structure_files", "log_files", "atomic_symbols"} {
		lmp2csvCmd.MarkFlagRequired(f)
	}

	rootCmd.AddCommand(convertCmd, inspectCmd, lmp2csvCmd)
}

// convertConfig merges the configuration file, if any, with the flags
// that were explicitly set.
func convertConfig(cmd *cobra.Command, args []string) (convert.Config, error) {
	cfg := &config.Config{Format: format, Workers: workers}
	if configFile != "" {
		var err error
		if cfg, err = config.New(configFile); err != nil {
			return convert.Config{}, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("traj") {
		cfg.Trajectory = traj
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("check-lattice") {
		cfg.CheckLattice = checkLattice
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}
	if err := cfg.Check(); err != nil {
		return convert.Config{}, err
	}
	if cfg.Output == "" {
		return convert.Config{}, fmt.Errorf("no output location given")
	}
	return cfg.Convert()
}

func runConvert(cmd *cobra.Command, args []string) error {
	cc, err := convertConfig(cmd, args)
	if err != nil {
		return err
	}
	set, err := batch.Load(args[0])
	if err != nil {
		return err
	}
	//checked here too, so nothing is created for a run that can't work.
	if cc.Trajectory && !set.HasTrajectory() {
		return convert.ErrNoTrajectory
	}
	if err := convert.PrepareOutput(cc.Output); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger := slog.Default().With("input", args[0], "output", cc.Output)
	_, err = convert.New(cc, cc.Emitter(), logger).Run(ctx, set)
	return err
}

func runInspect(cmd *cobra.Command, args []string) error {
	set, err := batch.Load(args[0])
	if err != nil {
		return err
	}
	s := chemplot.Summarize(set)
	if err := s.Write(cmd.OutOrStdout()); err != nil {
		return err
	}
	if plotPrefix == "" {
		return nil
	}
	if err := chemplot.HistogramPlot(s.AtomsPerStructure, 0, "Atoms per structure", "Atoms", plotPrefix+"_natoms"); err != nil {
		return err
	}
	if len(s.Volumes) == 0 {
		slog.Warn("no valid cells, volume histogram not written")
		return nil
	}
	return chemplot.HistogramPlot(s.Volumes, 0, "Cell volume", "Volume (A^3)", plotPrefix+"_volume")
}

func runLmp2csv(cmd *cobra.Command, args []string) error {
	res, err := dataset.Build(dataset.Options{
		StructureFiles: structureFiles,
		LogFiles:       logFiles,
		Symbols:        atomicSymbols,
		Seed:           seed,
		OutDir:         outDir,
		Logger:         slog.Default(),
	})
	if err != nil {
		return err
	}
	slog.Info("data set written", "train", res.Train, "val", res.Val, "test", res.Test, "skipped", res.Skipped)
	return nil
}
