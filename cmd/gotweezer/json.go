/*
 * json.go, part of gotweezer.
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
	"bufio"

	"github.com/rmera/gotweezer/tweezerjson"
	"github.com/spf13/cobra"
)

// NewJSONCommand creates the json command.
func NewJSONCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "json",
		Short: "Read one line of JSON options from stdin and write the results as JSON",
		Long: `Read one line of JSON options from the standard input, and write the
results, or a JSON error, in one line to the standard output. The configuration
file is not used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSON(cmd, opts)
		},
	}
}

func runJSON(cmd *cobra.Command, opts *RootOptions) error {
	out := cmd.OutOrStdout()
	O, jerr := tweezerjson.DecodeOptions(bufio.NewReader(cmd.InOrStdin()))
	if jerr == nil {
		var info *tweezerjson.Info
		info, jerr = tweezerjson.Evaluate(O)
		if jerr == nil {
			jerr = info.Send(out)
		}
	}
	if jerr == nil {
		return nil
	}
	jerr.Decorate("json")
	opts.log.Error().Str("function", jerr.Function).Bool("singular", jerr.Singular).Msg(jerr.Message)
	if err := tweezerjson.SendError(jerr, out); err != nil {
		return err
	}
	return jerr
}
