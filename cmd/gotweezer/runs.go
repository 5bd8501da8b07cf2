/*
 * runs.go, part of gotweezer.
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

	"github.com/rmera/gotweezer/sweep"
	"github.com/rmera/gotweezer/sweepdb"
	"github.com/spf13/cobra"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand(opts *RootOptions) *cobra.Command {
	var dbpath, output string
	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List the sweeps stored in a database, or export one of them",
		Long: `Without arguments, list the sweeps stored in the database given with --db.
With a run ID, print the summary of that sweep and, if --output is given,
write it to a sweep file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := sweepdb.Open(dbpath)
			if err != nil {
				return err
			}
			defer st.Close()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				runs, err := st.Runs(cmd.Context())
				if err != nil {
					return err
				}
				for _, r := range runs {
					fmt.Fprintf(out, "%s  %s  %5d  %s\n", r.ID, r.Created.Format("2006-01-02 15:04:05"), r.Points, r.Label)
				}
				return nil
			}
			s, err := st.Setup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			points, err := st.Points(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output != "" {
				if err := sweep.WriteFile(output, sweepHeader(s), points); err != nil {
					return err
				}
				opts.log.Info().Str("file", output).Str("run", args[0]).Msg("sweep exported")
			}
			printSummary(out, points)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbpath, "db", "tweezer.db", "SQLite database")
	cmd.Flags().StringVarP(&output, "output", "o", "", "export the run to this sweep file")
	return cmd
}
