/*
 * root.go, part of gotweezer.
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

	"github.com/rmera/gotweezer/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions holds the global flags of all commands.
type RootOptions struct {
	Config   string
	LogLevel string
	Pretty   bool
	log      zerolog.Logger
}

// NewRootCommand creates the root command of gotweezer.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "gotweezer",
		Short: "Optical tweezers for trapped ions",
		Long: `gotweezer computes the optical dipole potential, scattering rate and trap
frequencies of a tweezer acting on a trapped ion, the radial modes of an ion
chain with tweezers, and sweeps of the tweezer wavelength.

The experiment is described in a YAML file, given with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidLevel(opts.LogLevel) {
				return fmt.Errorf("invalid log level %q: must be one of %v", opts.LogLevel, ValidLevels)
			}
			opts.log = newLogger(opts.LogLevel, opts.Pretty, cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "tweezer.yaml", "experiment description (YAML)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&opts.Pretty, "pretty", false, "human-readable logs")

	cmd.AddCommand(NewTrapCommand(opts))
	cmd.AddCommand(NewModesCommand(opts))
	cmd.AddCommand(NewSweepCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewJSONCommand(opts))
	return cmd
}

// loadConfig reads the configuration file. The log settings in the file are used
// unless the corresponding flags were given.
func loadConfig(cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	c, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}
	level, pretty := opts.LogLevel, opts.Pretty
	if c.Log.Level != "" && !cmd.Flags().Changed("log-level") {
		level = c.Log.Level
	}
	if !cmd.Flags().Changed("pretty") {
		pretty = pretty || c.Log.Pretty
	}
	opts.log = newLogger(level, pretty, cmd.ErrOrStderr())
	opts.log.Debug().Str("config", opts.Config).Msg("configuration loaded")
	return c, nil
}
