/*
 * tweezer.go, part of gotweezer.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Transition is a resonance of the ion that the tweezer light couples to.
type Transition struct {
	Name      string  `json:"name" yaml:"name"`
	Omega     float64 `json:"omega" yaml:"omega"`         //angular frequency of the resonance, rad/s
	Linewidth float64 `json:"linewidth" yaml:"linewidth"` //natural linewidth, rad/s
}

// Beam is the tweezer laser beam.
type Beam struct {
	Omega float64 `json:"omega" yaml:"omega"` //angular frequency, rad/s
	Power float64 `json:"power" yaml:"power"` //total optical power, W
	Waist float64 `json:"waist" yaml:"waist"` //beam waist at the focus, m
}

// checkDrive validates the arguments shared by Potential, PotentialRWA and Scattering.
// The resonance condition is reported as a singularity, everything else as a domain error.
func checkDrive(caller string, omegaTweezer, linewidth, omegaRes, power, waist float64) error {
	if err := positive(caller, "tweezer angular frequency", omegaTweezer); err != nil {
		return err
	}
	if err := positive(caller, "linewidth", linewidth); err != nil {
		return err
	}
	if err := positive(caller, "resonance angular frequency", omegaRes); err != nil {
		return err
	}
	if err := nonNegative(caller, "optical power", power); err != nil {
		return err
	}
	if err := positive(caller, "beam waist", waist); err != nil {
		return err
	}
	if omegaTweezer == omegaRes || omegaTweezer == -omegaRes {
		return singularError(caller, omegaTweezer, omegaRes)
	}
	return nil
}

// checkResult reports a non-finite detuning term as a resonant drive. Any other
// non-finite result comes from arguments too extreme to be represented, which is a
// domain error.
func checkResult(caller string, u, detuning, omegaTweezer, omegaRes float64) (float64, error) {
	if math.IsInf(detuning, 0) || math.IsNaN(detuning) {
		return 0, singularError(caller, omegaTweezer, omegaRes)
	}
	return finiteResult(caller, u)
}

// Potential returns the optical dipole potential (AC Stark shift), in J, created by a
// far-detuned tweezer of angular frequency omegaTweezer, power power and waist waist
// on a transition with angular frequency omegaRes and linewidth linewidth. The
// rotating-wave approximation is not used, so both the co- and counter-rotating terms
// are kept. A negative value is an attractive potential.
//
// All frequencies are angular (rad/s). The arguments must be finite, power can be zero and
// everything else must be positive. If omegaTweezer == omegaRes the drive is resonant
// and an error wrapping ErrSingular is returned instead of an infinite potential.
func Potential(omegaTweezer, linewidth, omegaRes, power, waist float64) (float64, error) {
	if err := checkDrive("Potential", omegaTweezer, linewidth, omegaRes, power, waist); err != nil {
		return 0, err
	}
	d := detunings(linewidth, omegaRes, omegaTweezer)
	u := -prefactor(omegaTweezer) * d * intensity(power, waist)
	return checkResult("Potential", u, d, omegaTweezer, omegaRes)
}

// PotentialRWA returns the same quantity as Potential, under the rotating-wave
// approximation, i.e. the counter-rotating term linewidth/(omegaRes+omegaTweezer)
// is dropped:
//
//	U = -(3 pi c^2/omegaTweezer^3) (linewidth/(omegaRes-omegaTweezer)) (power/waist^2)
//
// The prefactor is the same -(3 pi c^2/omegaTweezer^3) used by Potential, so both agree
// close to resonance. Note that this differs by a factor of -pi from the expression
// +(3 c^2/omegaTweezer^3)(...) sometimes quoted for this approximation.
// It has the same domain and singularity as Potential.
func PotentialRWA(omegaTweezer, linewidth, omegaRes, power, waist float64) (float64, error) {
	if err := checkDrive("PotentialRWA", omegaTweezer, linewidth, omegaRes, power, waist); err != nil {
		return 0, err
	}
	d := linewidth / (omegaRes - omegaTweezer)
	u := -prefactor(omegaTweezer) * d * intensity(power, waist)
	return checkResult("PotentialRWA", u, d, omegaTweezer, omegaRes)
}

// Scattering returns the rate, in photons per second, at which the tweezer light is
// scattered off the given resonance, without the rotating-wave approximation.
// The result is never negative. Domain and singularity as in Potential.
func Scattering(omegaTweezer, linewidth, omegaRes, power, waist float64) (float64, error) {
	if err := checkDrive("Scattering", omegaTweezer, linewidth, omegaRes, power, waist); err != nil {
		return 0, err
	}
	ratio := omegaTweezer / omegaRes
	d := detunings(linewidth, omegaRes, omegaTweezer)
	g := (prefactor(omegaTweezer) / Hbar) * ratio * ratio * ratio * d * d * intensity(power, waist)
	return checkResult("Scattering", g, d, omegaTweezer, omegaRes)
}

//3 pi c^2/omega^3
func prefactor(omega float64) float64 {
	return 3 * math.Pi * C * C / (omega * omega * omega)
}

//the sum of the rotating and counter-rotating detuning terms.
func detunings(linewidth, omegaRes, omegaTweezer float64) float64 {
	return linewidth/(omegaRes-omegaTweezer) + linewidth/(omegaRes+omegaTweezer)
}

func intensity(power, waist float64) float64 {
	return power / (waist * waist)
}

// Potential returns the potential created by the beam b on the transition.
func (t Transition) Potential(b Beam) (float64, error) {
	u, err := Potential(b.Omega, t.Linewidth, t.Omega, b.Power, b.Waist)
	return u, t.decorate(err, "Transition.Potential")
}

// PotentialRWA returns the potential created by the beam b on the transition, using
// the rotating-wave approximation.
func (t Transition) PotentialRWA(b Beam) (float64, error) {
	u, err := PotentialRWA(b.Omega, t.Linewidth, t.Omega, b.Power, b.Waist)
	return u, t.decorate(err, "Transition.PotentialRWA")
}

// Scattering returns the scattering rate of the beam b off the transition.
func (t Transition) Scattering(b Beam) (float64, error) {
	g, err := Scattering(b.Omega, t.Linewidth, t.Omega, b.Power, b.Waist)
	return g, t.decorate(err, "Transition.Scattering")
}

func (t Transition) decorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if t.Name != "" {
		caller = fmt.Sprintf("%s: %s", caller, t.Name)
	}
	return Decorate(err, caller)
}

// TotalPotential returns the potential created by the beam on an ion with several
// transitions, that is, the sum of the contributions of each transition.
// If any transition is resonant with the beam, the ErrSingular error is returned.
func TotalPotential(b Beam, transitions []Transition) (float64, error) {
	return total("TotalPotential", b, transitions, Transition.Potential)
}

// TotalScattering returns the sum of the scattering rates of the beam off each
// of the given transitions.
func TotalScattering(b Beam, transitions []Transition) (float64, error) {
	return total("TotalScattering", b, transitions, Transition.Scattering)
}

func total(caller string, b Beam, transitions []Transition, f func(Transition, Beam) (float64, error)) (float64, error) {
	if len(transitions) == 0 {
		return 0, domainError(caller, "no transitions given")
	}
	terms := make([]float64, len(transitions))
	var err error
	for i, t := range transitions {
		terms[i], err = f(t, b)
		if err != nil {
			return 0, Decorate(err, caller)
		}
	}
	return floats.Sum(terms), nil
}
