/*
 * tweezer_test.go, part of gotweezer.
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

package tweezer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//the S1/2-P1/2 line of Ca+ and a 532 nm, 100 mW tweezer with a 1 micron waist.
var (
	testOmegaRes  = 2 * math.Pi * C / 396.959e-9
	testLinewidth = 1 / 7.098e-9
	testOmegaTw   = 2 * math.Pi * C / 532e-9
	testPower     = 0.1
	testWaist     = 1e-6
)

func TestPotentialFixture(Te *testing.T) {
	u, err := Potential(testOmegaTw, testLinewidth, testOmegaRes, testPower, testWaist)
	require.NoError(Te, err)
	assert.InEpsilon(Te, -2.5565004362422697e-25, u, 1e-12)
	assert.Less(Te, u, 0.0, "a red-detuned tweezer must attract the ion")
	assert.InEpsilon(Te, -0.018516657283945952, ToKelvin(u), 1e-9)

	urwa, err := PotentialRWA(testOmegaTw, testLinewidth, testOmegaRes, testPower, testWaist)
	require.NoError(Te, err)
	assert.InEpsilon(Te, -2.2320339179992315e-25, urwa, 1e-12)
}

func TestBlueDetunedRepels(Te *testing.T) {
	blue := testOmegaRes * 1.2
	u, err := Potential(blue, testLinewidth, testOmegaRes, testPower, testWaist)
	require.NoError(Te, err)
	assert.Greater(Te, u, 0.0)
}

func TestRWAAgreesNearResonance(Te *testing.T) {
	//The counter-rotating term is smaller than the rotating one by a factor of
	//about detuning/(2 omegaRes), so at a relative detuning of 1e-4 both expressions
	//must agree to better than 1e-3.
	for _, rel := range []float64{-1e-4, -1e-5, 1e-5, 1e-4} {
		wt := testOmegaRes * (1 + rel)
		full, err := Potential(wt, testLinewidth, testOmegaRes, testPower, testWaist)
		require.NoError(Te, err)
		rwa, err := PotentialRWA(wt, testLinewidth, testOmegaRes, testPower, testWaist)
		require.NoError(Te, err)
		assert.InEpsilon(Te, full, rwa, 1e-3, "relative detuning %g", rel)
	}
	//Far from resonance, the approximation is poor.
	full, _ := Potential(testOmegaRes/3, testLinewidth, testOmegaRes, testPower, testWaist)
	rwa, _ := PotentialRWA(testOmegaRes/3, testLinewidth, testOmegaRes, testPower, testWaist)
	assert.Greater(Te, math.Abs(full-rwa)/math.Abs(full), 0.1)
}

func TestScattering(Te *testing.T) {
	g, err := Scattering(testOmegaTw, testLinewidth, testOmegaRes, testPower, testWaist)
	require.NoError(Te, err)
	assert.InEpsilon(Te, 134.91863136128384, g, 1e-12)
	for _, f := range []float64{0.1, 0.5, 0.9, 0.999, 1.001, 1.5, 3} {
		g, err := Scattering(testOmegaRes*f, testLinewidth, testOmegaRes, testPower, testWaist)
		require.NoError(Te, err)
		assert.GreaterOrEqual(Te, g, 0.0, "factor %g", f)
	}
	g, err = Scattering(testOmegaTw, testLinewidth, testOmegaRes, 0, testWaist)
	require.NoError(Te, err)
	assert.Equal(Te, 0.0, g)
}

func TestResonantDrive(Te *testing.T) {
	fs := map[string]func(float64, float64, float64, float64, float64) (float64, error){
		"Potential":    Potential,
		"PotentialRWA": PotentialRWA,
		"Scattering":   Scattering,
	}
	for name, f := range fs {
		Te.Run(name, func(Te *testing.T) {
			v, err := f(testOmegaRes, testLinewidth, testOmegaRes, testPower, testWaist)
			require.Error(Te, err)
			assert.True(Te, errors.Is(err, ErrSingular))
			assert.False(Te, errors.Is(err, ErrDomain))
			assert.Equal(Te, 0.0, v)
			var terr *Error
			require.True(Te, errors.As(err, &terr))
			assert.True(Te, terr.Singular())
			assert.Contains(Te, err.Error(), name)
		})
	}
}

func TestDomainErrors(Te *testing.T) {
	cases := []struct {
		name                    string
		wt, gamma, wr, p, waist float64
	}{
		{"zero tweezer frequency", 0, testLinewidth, testOmegaRes, testPower, testWaist},
		{"negative linewidth", testOmegaTw, -1, testOmegaRes, testPower, testWaist},
		{"zero resonance", testOmegaTw, testLinewidth, 0, testPower, testWaist},
		{"negative power", testOmegaTw, testLinewidth, testOmegaRes, -1, testWaist},
		{"zero waist", testOmegaTw, testLinewidth, testOmegaRes, testPower, 0},
		{"NaN power", testOmegaTw, testLinewidth, testOmegaRes, math.NaN(), testWaist},
		{"infinite frequency", math.Inf(1), testLinewidth, testOmegaRes, testPower, testWaist},
	}
	for _, c := range cases {
		Te.Run(c.name, func(Te *testing.T) {
			_, err := Potential(c.wt, c.gamma, c.wr, c.p, c.waist)
			assert.True(Te, errors.Is(err, ErrDomain), "%v", err)
			_, err = PotentialRWA(c.wt, c.gamma, c.wr, c.p, c.waist)
			assert.True(Te, errors.Is(err, ErrDomain), "%v", err)
			_, err = Scattering(c.wt, c.gamma, c.wr, c.p, c.waist)
			assert.True(Te, errors.Is(err, ErrDomain), "%v", err)
		})
	}
}

func TestTotals(Te *testing.T) {
	b := Beam{Omega: testOmegaTw, Power: testPower, Waist: testWaist}
	ts := CaTransitions()
	var sumU, sumG float64
	for _, t := range ts {
		u, err := t.Potential(b)
		require.NoError(Te, err)
		sumU += u
		g, err := t.Scattering(b)
		require.NoError(Te, err)
		sumG += g
	}
	u, err := TotalPotential(b, ts)
	require.NoError(Te, err)
	assert.InEpsilon(Te, sumU, u, 1e-12)
	g, err := TotalScattering(b, ts)
	require.NoError(Te, err)
	assert.InEpsilon(Te, sumG, g, 1e-12)

	_, err = TotalPotential(b, nil)
	assert.True(Te, errors.Is(err, ErrDomain))

	//tune the beam onto the 729 nm line
	b.Omega = ts[2].Omega
	_, err = TotalPotential(b, ts)
	require.True(Te, errors.Is(err, ErrSingular))
	assert.Contains(Te, err.Error(), "S1/2-D5/2")
	assert.Contains(Te, err.Error(), "TotalPotential")
}

func TestOverflowIsNotResonance(Te *testing.T) {
	cases := []struct {
		name         string
		power, waist float64
	}{
		{"huge intensity", 1e300, 1e-10},
		{"zero power on a vanishing waist", 0, 1e-170},
	}
	fs := map[string]func(float64, float64, float64, float64, float64) (float64, error){
		"Potential":    Potential,
		"PotentialRWA": PotentialRWA,
		"Scattering":   Scattering,
	}
	for _, c := range cases {
		for name, f := range fs {
			Te.Run(c.name+"/"+name, func(Te *testing.T) {
				v, err := f(testOmegaTw, testLinewidth, testOmegaRes, c.power, c.waist)
				require.Error(Te, err)
				assert.True(Te, errors.Is(err, ErrDomain), "%v", err)
				assert.False(Te, errors.Is(err, ErrSingular), "%v", err)
				assert.Equal(Te, 0.0, v)
			})
		}
	}
}

func TestRWAPrefactor(Te *testing.T) {
	//PotentialRWA keeps the -(3 pi c^2/wt^3) prefactor, so it is the full potential
	//with the counter-rotating term removed.
	full, err := Potential(testOmegaTw, testLinewidth, testOmegaRes, testPower, testWaist)
	require.NoError(Te, err)
	rwa, err := PotentialRWA(testOmegaTw, testLinewidth, testOmegaRes, testPower, testWaist)
	require.NoError(Te, err)
	rot := testLinewidth / (testOmegaRes - testOmegaTw)
	counter := testLinewidth / (testOmegaRes + testOmegaTw)
	assert.InEpsilon(Te, rot/(rot+counter), rwa/full, 1e-12)
	want := -3 * math.Pi * C * C / (testOmegaTw * testOmegaTw * testOmegaTw) * rot * testPower / (testWaist * testWaist)
	assert.InEpsilon(Te, want, rwa, 1e-12)
}
