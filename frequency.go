/*
 * frequency.go, part of gotweezer.
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

import "math"

// Epsilon returns the dimensionless parameter that compares the Coulomb coupling
// between neighbouring ions of a chain with the radial confinement:
//
//	epsilon = sqrt(e^2 / (4 pi eps0 d^3 m wx^2))
//
// d is the ion-ion separation (m), wx the radial trap angular frequency (rad/s) and m
// the ion mass (kg). All three must be positive. The result is positive and decreases
// monotonically with d.
func Epsilon(d, wx, m float64) (float64, error) {
	if err := positive("Epsilon", "ion separation", d); err != nil {
		return 0, err
	}
	if err := positive("Epsilon", "radial trap frequency", wx); err != nil {
		return 0, err
	}
	if err := positive("Epsilon", "mass", m); err != nil {
		return 0, err
	}
	return finiteResult("Epsilon", math.Sqrt(coulombK*E*E/(d*d*d*m*wx*wx)))
}

// V returns the dimensionless ratio wxt/wx between the radial trap frequency
// created by a tweezer, wxt, and that of the RF trap, wx.
// wx can't be zero.
func V(wx, wxt float64) (float64, error) {
	if err := finite("V", "radial trap frequency", wx); err != nil {
		return 0, err
	}
	if err := finite("V", "tweezer radial frequency", wxt); err != nil {
		return 0, err
	}
	if wx == 0 {
		return 0, domainError("V", "radial trap frequency can't be zero")
	}
	return finiteResult("V", wxt/wx)
}

// OmegaRadial returns the radial trap angular frequency of a tweezer of depth U (J, any
// sign) and waist waist (m), for an ion of mass m (kg):
//
//	omega_radial = sqrt(4|U| / (m waist^2))
//
// The result is never negative.
func OmegaRadial(U, waist, m float64) (float64, error) {
	if err := finite("OmegaRadial", "potential", U); err != nil {
		return 0, err
	}
	if err := positive("OmegaRadial", "beam waist", waist); err != nil {
		return 0, err
	}
	if err := positive("OmegaRadial", "mass", m); err != nil {
		return 0, err
	}
	return finiteResult("OmegaRadial", math.Sqrt(4*math.Abs(U)/(m*waist*waist)))
}

// OmegaAxial returns the axial (along the beam) trap angular frequency of a tweezer of
// depth U and waist waist, with wavelength wavelength (m), for an ion of mass m:
//
//	omega_axial = sqrt(2|U|/m) / (pi waist^2 / wavelength)
//
// The denominator is the Rayleigh range of the beam. The result is never negative.
func OmegaAxial(U, waist, wavelength, m float64) (float64, error) {
	if err := finite("OmegaAxial", "potential", U); err != nil {
		return 0, err
	}
	if err := positive("OmegaAxial", "mass", m); err != nil {
		return 0, err
	}
	zr, err := RayleighRange(waist, wavelength)
	if err != nil {
		return 0, Decorate(err, "OmegaAxial")
	}
	return finiteResult("OmegaAxial", math.Sqrt(2*math.Abs(U)/m)/zr)
}

// RayleighRange returns pi w^2/lambda for a Gaussian beam of waist w and wavelength lambda.
func RayleighRange(waist, wavelength float64) (float64, error) {
	if err := positive("RayleighRange", "beam waist", waist); err != nil {
		return 0, err
	}
	if err := positive("RayleighRange", "wavelength", wavelength); err != nil {
		return 0, err
	}
	return finiteResult("RayleighRange", math.Pi*waist*waist/wavelength)
}

// AngularFrequency returns the angular frequency, in rad/s, of light with the given
// vacuum wavelength in m.
func AngularFrequency(wavelength float64) (float64, error) {
	if err := positive("AngularFrequency", "wavelength", wavelength); err != nil {
		return 0, err
	}
	return finiteResult("AngularFrequency", 2*math.Pi*C/wavelength)
}

// Wavelength is the inverse of AngularFrequency.
func Wavelength(omega float64) (float64, error) {
	if err := positive("Wavelength", "angular frequency", omega); err != nil {
		return 0, err
	}
	return finiteResult("Wavelength", 2*math.Pi*C/omega)
}

// BeamWaist returns the diffraction-limited waist, lambda/(pi NA), of a Gaussian
// beam of wavelength lambda focused by optics with numerical aperture na (0 < na <= 1).
func BeamWaist(wavelength, na float64) (float64, error) {
	if err := positive("BeamWaist", "wavelength", wavelength); err != nil {
		return 0, err
	}
	if err := positive("BeamWaist", "numerical aperture", na); err != nil {
		return 0, err
	}
	if na > 1 {
		return 0, domainError("BeamWaist", "numerical aperture can't be larger than 1, got %g", na)
	}
	return wavelength / (math.Pi * na), nil
}

//ToKelvin returns the energy U in temperature units.
func ToKelvin(U float64) float64 {
	return U / KB
}

//ToHertz returns the energy U in frequency units (U/h).
func ToHertz(U float64) float64 {
	return U / H
}
