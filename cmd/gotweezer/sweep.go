/*
 * sweep.go, part of gotweezer.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/cheggaaa/pb/v3"
	tweezer "github.com/rmera/gotweezer"
	"github.com/rmera/gotweezer/sweep"
	"github.com/rmera/gotweezer/sweepdb"
	"github.com/rmera/gotweezer/tweezerplot"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SweepOptions are the flags of the sweep command. They override the
// configuration file.
type SweepOptions struct {
	Output  string
	Plot    string
	Workers int
	Quiet   bool
	DB      string
	Label   string
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(opts *RootOptions) *cobra.Command {
	sopts := &SweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate the tweezer over a range of wavelengths",
		Long: `Evaluate the tweezer over the range of wavelengths given in the sweep
section of the configuration file. Wavelengths resonant with a transition are
kept, marked as invalid.

The output file is compressed with gzip if its name ends in z, with flate if it
ends in r, and with zstd otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, opts, sopts)
		},
	}
	cmd.Flags().StringVarP(&sopts.Output, "output", "o", "", "sweep file to write")
	cmd.Flags().StringVarP(&sopts.Plot, "plot", "p", "", "write plots with this name prefix")
	cmd.Flags().IntVarP(&sopts.Workers, "workers", "w", 0, "number of workers (default: from config, or the number of CPUs)")
	cmd.Flags().BoolVarP(&sopts.Quiet, "quiet", "q", false, "don't show a progress bar")
	cmd.Flags().StringVar(&sopts.DB, "db", "", "also store the sweep in this SQLite database")
	cmd.Flags().StringVar(&sopts.Label, "label", "", "label of the run stored with --db")
	return cmd
}

func runSweep(cmd *cobra.Command, opts *RootOptions, sopts *SweepOptions) error {
	c, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	s, ws, err := c.SweepSetup()
	if err != nil {
		return err
	}
	output, plotname, workers := c.Sweep.Output, c.Sweep.Plot, c.Sweep.Workers
	if sopts.Output != "" {
		output = sopts.Output
	}
	if sopts.Plot != "" {
		plotname = sopts.Plot
	}
	if sopts.Workers > 0 {
		workers = sopts.Workers
	}
	bar := pb.New(len(ws))
	if sopts.Quiet {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(cmd.ErrOrStderr())
	}
	bar.Start()
	ropts := []sweep.Option{sweep.OnProgress(func() { bar.Increment() }), sweep.WithLogger(opts.log)}
	if workers > 0 {
		ropts = append(ropts, sweep.Workers(workers))
	}
	points, err := sweep.Run(cmd.Context(), s, ws, ropts...)
	bar.Finish()
	if err != nil {
		return err
	}
	if output != "" {
		if err := sweep.WriteFile(output, sweepHeader(s), points); err != nil {
			return err
		}
		opts.log.Info().Str("file", output).Int("points", len(points)).Msg("sweep written")
	}
	if sopts.DB != "" {
		id, err := storeSweep(cmd.Context(), sopts.DB, sopts.Label, s, points)
		if err != nil {
			return err
		}
		opts.log.Info().Str("db", sopts.DB).Str("run", id).Msg("sweep stored")
		fmt.Fprintf(cmd.OutOrStdout(), "run: %s\n", id)
	}
	if plotname != "" {
		if err := tweezerplot.SweepPlot(points, "Tweezer sweep", plotname); err != nil {
			return err
		}
		opts.log.Info().Str("plot", plotname).Msg("plots written")
	}
	printSummary(cmd.OutOrStdout(), points)
	return nil
}

func storeSweep(ctx context.Context, path, label string, s *sweep.Setup, points []sweep.Point) (string, error) {
	st, err := sweepdb.Open(path)
	if err != nil {
		return "", err
	}
	defer st.Close()
	return st.Save(ctx, label, s, points)
}

func sweepHeader(s *sweep.Setup) map[string]string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	h := map[string]string{
		"power":       f(s.Power),
		"na":          f(s.NA),
		"waist":       f(s.Waist),
		"mass":        f(s.Mass),
		"transitions": strconv.Itoa(len(s.Transitions)),
	}
	return h
}

func printSummary(out io.Writer, points []sweep.Point) {
	sum := sweep.Summarize(points)
	p := message.NewPrinter(language.English)
	p.Fprintf(out, "points: %d, resonant: %d\n", sum.N, sum.Resonant)
	if sum.DeepestIndex < 0 {
		fmt.Fprintln(out, "no valid points")
		return
	}
	d := points[sum.DeepestIndex]
	fmt.Fprintf(out, "deepest: %.3f nm, %.4g uK\n", d.Wavelength*tweezer.M2Nm, tweezer.ToKelvin(d.Potential)*tweezer.K2MuK)
	b := points[sum.BestIndex]
	fmt.Fprintf(out, "best depth/scattering: %.3f nm, %.4g uK, %.4g 1/s\n", b.Wavelength*tweezer.M2Nm, tweezer.ToKelvin(b.Potential)*tweezer.K2MuK, b.Scattering)
	p.Fprintf(out, "largest scattering: %.0f 1/s\n", sum.MaxScattering)
}
