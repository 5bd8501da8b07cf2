/*
 * root_test.go, part of gotweezer.
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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tweezer "github.com/rmera/gotweezer"
	"github.com/rmera/gotweezer/sweep"
	"github.com/rmera/gotweezer/tweezerjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
ion: 40Ca
tweezer:
  wavelength: 532e-9
  power: 0.1
  waist: 1e-6
chain:
  ions: 3
  spacing: 5e-6
  radial_freq_hz: 3e6
  tweezer_ions: [1]
sweep:
  from: 500e-9
  to: 1100e-9
  points: 25
  workers: 2
`

func writeConfig(Te *testing.T) string {
	path := filepath.Join(Te.TempDir(), "tweezer.yaml")
	require.NoError(Te, os.WriteFile(path, []byte(testConfig), 0o644))
	return path
}

func execute(Te *testing.T, stdin string, args ...string) (string, string, error) {
	cmd := NewRootCommand()
	var out, errout bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errout)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errout.String(), err
}

func TestCommandPresence(Te *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(Te, "gotweezer", cmd.Use)
	for _, name := range []string{"trap", "modes", "sweep", "runs", "json"} {
		Te.Run(name, func(Te *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(Te, err)
			assert.Equal(Te, name, sub.Name())
		})
	}
}

func TestGlobalFlags(Te *testing.T) {
	cmd := NewRootCommand()
	f := cmd.PersistentFlags().Lookup("config")
	require.NotNil(Te, f)
	assert.Equal(Te, "c", f.Shorthand)
	f = cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(Te, f)
	assert.Equal(Te, "warn", f.DefValue)
	require.NotNil(Te, cmd.PersistentFlags().Lookup("pretty"))

	sw, _, err := cmd.Find([]string{"sweep"})
	require.NoError(Te, err)
	for _, name := range []string{"output", "plot", "workers", "quiet", "db", "label"} {
		assert.NotNil(Te, sw.Flags().Lookup(name), name)
	}
}

func TestTrap(Te *testing.T) {
	out, _, err := execute(Te, "", "trap", "--config", writeConfig(Te))
	require.NoError(Te, err)
	assert.Contains(Te, out, "S1/2-P1/2")
	assert.Contains(Te, out, "Total")
	assert.Contains(Te, out, "Radial frequency")
	assert.Contains(Te, out, "Axial frequency")

	_, _, err = execute(Te, "", "trap", "--config", writeConfig(Te), "--log-level", "loud")
	assert.Error(Te, err)
	_, _, err = execute(Te, "", "trap", "--config", filepath.Join(Te.TempDir(), "missing.yaml"))
	assert.Error(Te, err)
}

func TestModes(Te *testing.T) {
	out, _, err := execute(Te, "", "modes", "-c", writeConfig(Te))
	require.NoError(Te, err)
	assert.Contains(Te, out, "epsilon")
	assert.Contains(Te, out, "mode  2")
	assert.NotContains(Te, out, "unstable")
}

func TestSweep(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "sweep.tsf")
	out, _, err := execute(Te, "", "sweep", "-c", writeConfig(Te), "--quiet", "-o", name, "-w", "3")
	require.NoError(Te, err)
	assert.Contains(Te, out, "points: 25")
	assert.Contains(Te, out, "deepest")
	points, header, err := sweep.ReadFile(name)
	require.NoError(Te, err)
	assert.Len(Te, points, 25)
	assert.Equal(Te, "0.1", header["power"])
	assert.Equal(Te, "3", header["transitions"])
}

func TestSweepDB(Te *testing.T) {
	dir := Te.TempDir()
	db := filepath.Join(dir, "sweeps.db")
	out, _, err := execute(Te, "", "sweep", "-c", writeConfig(Te), "-q", "--db", db, "--label", "green")
	require.NoError(Te, err)
	require.Contains(Te, out, "run: ")
	id := strings.TrimSpace(strings.SplitN(strings.SplitN(out, "run: ", 2)[1], "\n", 2)[0])

	out, _, err = execute(Te, "", "runs", "--db", db)
	require.NoError(Te, err)
	assert.Contains(Te, out, id)
	assert.Contains(Te, out, "green")

	name := filepath.Join(dir, "exported.tsz")
	out, _, err = execute(Te, "", "runs", "--db", db, id, "-o", name)
	require.NoError(Te, err)
	assert.Contains(Te, out, "points: 25")
	points, _, err := sweep.ReadFile(name)
	require.NoError(Te, err)
	assert.Len(Te, points, 25)
}

func TestJSON(Te *testing.T) {
	in := `{"wavelength":532e-9,"beam":{"power":0.1,"waist":1e-6}}` + "\n"
	out, _, err := execute(Te, in, "json")
	require.NoError(Te, err)
	info := new(tweezerjson.Info)
	require.NoError(Te, json.Unmarshal([]byte(out), info))
	w, _ := tweezer.AngularFrequency(532e-9)
	u, err := tweezer.TotalPotential(tweezer.Beam{Omega: w, Power: 0.1, Waist: 1e-6}, tweezer.CaTransitions())
	require.NoError(Te, err)
	assert.InEpsilon(Te, u, info.Potential, 1e-12)

	out, _, err = execute(Te, "not json\n", "json")
	require.Error(Te, err)
	jerr := new(tweezerjson.Error)
	require.NoError(Te, json.Unmarshal([]byte(out), jerr))
	assert.True(Te, jerr.IsError)
	assert.True(Te, jerr.InOptions)
}
