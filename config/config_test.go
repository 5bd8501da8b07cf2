/*
 * config_test.go, part of gotweezer.
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

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	tweezer "github.com/rmera/gotweezer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
ion: 40Ca
tweezer:
  wavelength: 532e-9
  power: 0.1
  na: 0.3
chain:
  ions: 3
  spacing: 5e-6
  radial_freq_hz: 3e6
  tweezer_ions: [1]
sweep:
  from: 400e-9
  to: 1100e-9
  points: 50
  workers: 2
log:
  level: debug
`

func TestParse(Te *testing.T) {
	c, err := Parse([]byte(testYAML))
	require.NoError(Te, err)
	m, err := c.MassKg()
	require.NoError(Te, err)
	ca, _ := tweezer.IonMass("40Ca")
	assert.Equal(Te, ca, m)
	ts, err := c.TransitionList()
	require.NoError(Te, err)
	assert.Len(Te, ts, 3)
	b, err := c.Beam()
	require.NoError(Te, err)
	w, _ := tweezer.BeamWaist(532e-9, 0.3)
	assert.Equal(Te, w, b.Waist)
	assert.Equal(Te, 0.1, b.Power)

	ch, tw, err := c.ChainModel()
	require.NoError(Te, err)
	assert.Equal(Te, 3, ch.Len())
	assert.InEpsilon(Te, 2*math.Pi*3e6, ch.RadialFreq, 1e-15)
	assert.Equal(Te, 0.0, tw[0])
	assert.Greater(Te, tw[1], 0.0)
	wt, err := c.TweezerRadialFreq()
	require.NoError(Te, err)
	assert.Equal(Te, wt, tw[1])

	s, ws, err := c.SweepSetup()
	require.NoError(Te, err)
	assert.Len(Te, ws, 50)
	assert.NoError(Te, s.Check())
	assert.Equal(Te, "debug", c.Log.Level)
}

func TestCustomTransitions(Te *testing.T) {
	c, err := Parse([]byte(`
mass: 1e-25
transitions:
  - {name: a, wavelength: 400e-9, linewidth: 1e8}
  - {name: b, wavelength: 800e-9, lifetime: 1e-8}
tweezer: {wavelength: 600e-9, power: 1, waist: 2e-6}
`))
	require.NoError(Te, err)
	ts, err := c.TransitionList()
	require.NoError(Te, err)
	require.Len(Te, ts, 2)
	assert.Equal(Te, 1e8, ts[0].Linewidth)
	assert.InEpsilon(Te, 1e8, ts[1].Linewidth, 1e-15)
	m, _ := c.MassKg()
	assert.Equal(Te, 1e-25, m)
	_, _, err = c.SweepSetup()
	assert.Error(Te, err)
	_, _, err = c.ChainModel()
	assert.Error(Te, err)
}

func TestInvalid(Te *testing.T) {
	bad := map[string]string{
		"yaml":       "tweezer: [",
		"ion":        "ion: 40Xx\ntweezer: {wavelength: 5e-7, na: 0.3}",
		"no waist":   "tweezer: {wavelength: 5e-7}",
		"linewidth":  "transitions: [{name: x, wavelength: 4e-7}]\ntweezer: {wavelength: 5e-7, na: 0.3}",
		"chain ion":  "tweezer: {wavelength: 5e-7, na: 0.3}\nchain: {ions: 2, spacing: 5e-6, radial_freq_hz: 1e6, tweezer_ions: [2]}",
		"sweep span": "tweezer: {wavelength: 5e-7, na: 0.3}\nsweep: {from: 9e-7, to: 4e-7, points: 10}",
		"log level":  "tweezer: {wavelength: 5e-7, na: 0.3}\nlog: {level: loud}",
		"power":      "tweezer: {wavelength: 5e-7, na: 0.3, power: -1}",
	}
	for name, y := range bad {
		_, err := Parse([]byte(y))
		assert.Error(Te, err, name)
	}
}

func TestLoad(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "exp.yaml")
	require.NoError(Te, os.WriteFile(path, []byte(testYAML), 0o644))
	c, err := Load(path)
	require.NoError(Te, err)
	assert.Equal(Te, "40Ca", c.Ion)
	_, err = Load(filepath.Join(Te.TempDir(), "missing.yaml"))
	assert.Error(Te, err)
}
