/*
 * config.go, part of gotweezer.
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
	"fmt"
	"math"
	"os"

	tweezer "github.com/rmera/gotweezer"
	"github.com/rmera/gotweezer/modes"
	"github.com/rmera/gotweezer/sweep"
	"gopkg.in/yaml.v3"
)

// Config describes an experiment: the ion, its transitions, the tweezer and,
// optionally, an ion chain and a wavelength sweep. All quantities are SI, except
// where the field name says otherwise.
type Config struct {
	Ion         string             `yaml:"ion"`  //species for tweezer.IonMass, e.g. 40Ca
	Mass        float64            `yaml:"mass"` //kg, overrides Ion
	Transitions []TransitionConfig `yaml:"transitions"`
	Tweezer     TweezerConfig      `yaml:"tweezer"`
	Chain       *ChainConfig       `yaml:"chain"`
	Sweep       *SweepConfig       `yaml:"sweep"`
	Log         LogConfig          `yaml:"log"`
}

// TransitionConfig is one transition. Either Linewidth (rad/s) or Lifetime (s)
// of the upper state must be given.
type TransitionConfig struct {
	Name       string  `yaml:"name"`
	Wavelength float64 `yaml:"wavelength"`
	Linewidth  float64 `yaml:"linewidth"`
	Lifetime   float64 `yaml:"lifetime"`
}

// TweezerConfig is the tweezer beam. If Waist is zero, it is obtained from NA.
type TweezerConfig struct {
	Wavelength float64 `yaml:"wavelength"`
	Power      float64 `yaml:"power"`
	NA         float64 `yaml:"na"`
	Waist      float64 `yaml:"waist"`
}

// ChainConfig is a uniformly spaced ion chain. The configured tweezer acts on the ions
// listed (0-based) in TweezerIons.
type ChainConfig struct {
	Ions         int     `yaml:"ions"`
	Spacing      float64 `yaml:"spacing"`
	RadialFreqHz float64 `yaml:"radial_freq_hz"`
	TweezerIons  []int   `yaml:"tweezer_ions"`
}

// SweepConfig is a range of tweezer wavelengths.
type SweepConfig struct {
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Points  int     `yaml:"points"`
	Workers int     `yaml:"workers"`
	Output  string  `yaml:"output"` //sweep file, optional
	Plot    string  `yaml:"plot"`   //plot name prefix, optional
}

// LogConfig holds the logger configuration.
type LogConfig struct {
	Level  string `yaml:"level"` //debug, info, warn, error
	Pretty bool   `yaml:"pretty"`
}

// Load reads and validates the YAML file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotweezer/config: can't read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("gotweezer/config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML configuration.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate returns an error if the configuration is incomplete or inconsistent.
func (c *Config) Validate() error {
	if _, err := c.MassKg(); err != nil {
		return err
	}
	if _, err := c.TransitionList(); err != nil {
		return err
	}
	if c.Tweezer.Waist == 0 && (c.Tweezer.NA <= 0 || c.Tweezer.NA > 1) {
		return fmt.Errorf("tweezer needs either a waist or a numerical aperture in (0,1]")
	}
	if c.Tweezer.Power < 0 {
		return fmt.Errorf("negative tweezer power %g", c.Tweezer.Power)
	}
	if c.Chain != nil {
		if c.Chain.Ions < 1 || c.Chain.Spacing <= 0 || c.Chain.RadialFreqHz <= 0 {
			return fmt.Errorf("chain needs a positive number of ions, spacing and radial_freq_hz")
		}
		for _, i := range c.Chain.TweezerIons {
			if i < 0 || i >= c.Chain.Ions {
				return fmt.Errorf("tweezer on ion %d, but the chain has %d ions", i, c.Chain.Ions)
			}
		}
	}
	if c.Sweep != nil {
		if _, err := sweep.Span(c.Sweep.From, c.Sweep.To, c.Sweep.Points); err != nil {
			return fmt.Errorf("sweep: %w", err)
		}
		if c.Sweep.Workers < 0 {
			return fmt.Errorf("sweep: negative number of workers")
		}
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// MassKg returns the ion mass. If neither mass nor ion are given, tweezer.DefaultMass is used.
func (c *Config) MassKg() (float64, error) {
	switch {
	case c.Mass < 0 || math.IsNaN(c.Mass):
		return 0, fmt.Errorf("invalid mass %g", c.Mass)
	case c.Mass > 0:
		return c.Mass, nil
	case c.Ion != "":
		return tweezer.IonMass(c.Ion)
	default:
		return tweezer.DefaultMass, nil
	}
}

// TransitionList returns the configured transitions, or the Ca+ ones if none are given.
func (c *Config) TransitionList() ([]tweezer.Transition, error) {
	if len(c.Transitions) == 0 {
		return tweezer.CaTransitions(), nil
	}
	ret := make([]tweezer.Transition, 0, len(c.Transitions))
	for i, t := range c.Transitions {
		omega, err := tweezer.AngularFrequency(t.Wavelength)
		if err != nil {
			return nil, fmt.Errorf("transition %d (%s): %w", i, t.Name, err)
		}
		gamma := t.Linewidth
		if gamma == 0 && t.Lifetime > 0 {
			gamma = 1 / t.Lifetime
		}
		if gamma <= 0 {
			return nil, fmt.Errorf("transition %d (%s) needs a positive linewidth or lifetime", i, t.Name)
		}
		ret = append(ret, tweezer.Transition{Name: t.Name, Omega: omega, Linewidth: gamma})
	}
	return ret, nil
}

// Beam returns the tweezer beam.
func (c *Config) Beam() (tweezer.Beam, error) {
	var b tweezer.Beam
	var err error
	if b.Omega, err = tweezer.AngularFrequency(c.Tweezer.Wavelength); err != nil {
		return b, fmt.Errorf("tweezer: %w", err)
	}
	b.Power = c.Tweezer.Power
	b.Waist = c.Tweezer.Waist
	if b.Waist == 0 {
		if b.Waist, err = tweezer.BeamWaist(c.Tweezer.Wavelength, c.Tweezer.NA); err != nil {
			return b, fmt.Errorf("tweezer: %w", err)
		}
	}
	return b, nil
}

// TweezerRadialFreq returns the radial trap angular frequency created by the tweezer
// on one ion.
func (c *Config) TweezerRadialFreq() (float64, error) {
	b, err := c.Beam()
	if err != nil {
		return 0, err
	}
	ts, err := c.TransitionList()
	if err != nil {
		return 0, err
	}
	m, err := c.MassKg()
	if err != nil {
		return 0, err
	}
	u, err := tweezer.TotalPotential(b, ts)
	if err != nil {
		return 0, err
	}
	return tweezer.OmegaRadial(u, b.Waist, m)
}

// ChainModel returns the configured chain and the tweezer frequency on each of its ions.
func (c *Config) ChainModel() (*modes.Chain, []float64, error) {
	if c.Chain == nil {
		return nil, nil, fmt.Errorf("no chain configured")
	}
	m, err := c.MassKg()
	if err != nil {
		return nil, nil, err
	}
	ch, err := modes.NewUniformChain(c.Chain.Ions, c.Chain.Spacing, m, 2*math.Pi*c.Chain.RadialFreqHz)
	if err != nil {
		return nil, nil, err
	}
	tw := make([]float64, c.Chain.Ions)
	if len(c.Chain.TweezerIons) == 0 {
		return ch, tw, nil
	}
	wt, err := c.TweezerRadialFreq()
	if err != nil {
		return nil, nil, err
	}
	for _, i := range c.Chain.TweezerIons {
		tw[i] = wt
	}
	return ch, tw, nil
}

// SweepSetup returns the sweep setup and the wavelengths to evaluate.
func (c *Config) SweepSetup() (*sweep.Setup, []float64, error) {
	if c.Sweep == nil {
		return nil, nil, fmt.Errorf("no sweep configured")
	}
	m, err := c.MassKg()
	if err != nil {
		return nil, nil, err
	}
	ts, err := c.TransitionList()
	if err != nil {
		return nil, nil, err
	}
	ws, err := sweep.Span(c.Sweep.From, c.Sweep.To, c.Sweep.Points)
	if err != nil {
		return nil, nil, err
	}
	s := &sweep.Setup{Power: c.Tweezer.Power, NA: c.Tweezer.NA, Waist: c.Tweezer.Waist, Mass: m, Transitions: ts}
	return s, ws, nil
}
