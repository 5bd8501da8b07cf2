/*
 * modes.go, part of gotweezer.
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
	"errors"
	"fmt"
	"math"

	tweezer "github.com/rmera/gotweezer"
	"github.com/rmera/gotweezer/modes"
	"github.com/rmera/gotweezer/tweezerplot"
	"github.com/spf13/cobra"
)

// NewModesCommand creates the modes command.
func NewModesCommand(opts *RootOptions) *cobra.Command {
	var plotname string
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "Radial normal modes of the configured ion chain",
		Long: `Radial normal modes of the configured ion chain, with the configured tweezer
acting on the ions listed in chain.tweezer_ions.

An unstable chain is reported, but its modes are still printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModes(cmd, opts, plotname)
		},
	}
	cmd.Flags().StringVarP(&plotname, "plot", "p", "", "write plots with this name prefix")
	return cmd
}

func runModes(cmd *cobra.Command, opts *RootOptions, plotname string) error {
	c, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	ch, tw, err := c.ChainModel()
	if err != nil {
		return err
	}
	R, err := ch.Modes(tw)
	if err != nil && !errors.Is(err, modes.ErrUnstable) {
		return err
	}
	unstable := err != nil
	if unstable {
		opts.log.Warn().Err(err).Msg("unstable chain")
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "epsilon: %.6g\n", R.Epsilon)
	fmt.Fprintf(out, "v: %.6g\n", R.V)
	for k := 0; k < R.Len(); k++ {
		f := R.Frequencies[k] / (2 * math.Pi) * tweezer.Hz2MHz
		fmt.Fprintf(out, "mode %2d: 2pi x %10.6f MHz  %8.4f\n", k, f, R.Mode(k, nil))
	}
	if unstable {
		fmt.Fprintln(out, "the chain is unstable")
	}
	if plotname == "" {
		return nil
	}
	if err := tweezerplot.ModePlot(R, "Radial modes", plotname); err != nil {
		return err
	}
	opts.log.Info().Str("plot", plotname).Msg("plots written")
	return nil
}
