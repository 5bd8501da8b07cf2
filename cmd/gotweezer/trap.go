/*
 * trap.go, part of gotweezer.
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
	"fmt"
	"math"

	tweezer "github.com/rmera/gotweezer"
	"github.com/spf13/cobra"
)

// NewTrapCommand creates the trap command.
func NewTrapCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trap",
		Short: "Potential, scattering and trap frequencies of the configured tweezer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrap(cmd, opts)
		},
	}
}

func runTrap(cmd *cobra.Command, opts *RootOptions) error {
	c, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	b, err := c.Beam()
	if err != nil {
		return err
	}
	ts, err := c.TransitionList()
	if err != nil {
		return err
	}
	m, err := c.MassKg()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	lambda, _ := tweezer.Wavelength(b.Omega)
	fmt.Fprintf(out, "Tweezer: %.3f nm, %g W, waist %.4g um, mass %.5g kg\n", lambda*tweezer.M2Nm, b.Power, b.Waist*1e6, m)
	fmt.Fprintf(out, "%-14s %14s %14s %14s\n", "Transition", "U (J)", "U_RWA (J)", "Gamma (1/s)")
	var rwa float64
	for _, t := range ts {
		u, err := t.Potential(b)
		if err != nil {
			return err
		}
		r, err := t.PotentialRWA(b)
		if err != nil {
			return err
		}
		g, err := t.Scattering(b)
		if err != nil {
			return err
		}
		rwa += r
		opts.log.Debug().Str("transition", t.Name).Float64("potential", u).Float64("scattering", g).Msg("transition done")
		fmt.Fprintf(out, "%-14s %14.6e %14.6e %14.6e\n", t.Name, u, r, g)
	}
	u, err := tweezer.TotalPotential(b, ts)
	if err != nil {
		return err
	}
	g, err := tweezer.TotalScattering(b, ts)
	if err != nil {
		return err
	}
	wr, err := tweezer.OmegaRadial(u, b.Waist, m)
	if err != nil {
		return err
	}
	wa, err := tweezer.OmegaAxial(u, b.Waist, lambda, m)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%-14s %14.6e %14.6e %14.6e\n", "Total", u, rwa, g)
	fmt.Fprintf(out, "Depth: %.4g uK (%.4g MHz)\n", tweezer.ToKelvin(u)*tweezer.K2MuK, tweezer.ToHertz(u)*tweezer.Hz2MHz)
	fmt.Fprintf(out, "Radial frequency: 2pi x %.4g MHz\n", wr/(2*math.Pi)*tweezer.Hz2MHz)
	fmt.Fprintf(out, "Axial frequency: 2pi x %.4g MHz\n", wa/(2*math.Pi)*tweezer.Hz2MHz)
	return nil
}
