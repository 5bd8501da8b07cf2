/*
 * doc.go, part of gotweezer.
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package tweezer provides the formulas used to design optical tweezers for trapped ions:
trapping potentials, scattering rates and the trap frequencies and dimensionless
parameters that describe an ion chain with tweezers.

	**gotweezer Capabilities**

	Optical dipole potential of a far-detuned beam, with and without the
	rotating-wave approximation, for one transition or summed over several.

	Photon scattering rate off a resonance.

	Radial and axial trap frequencies of a tweezer of a given depth.

	The epsilon and v parameters of an ion chain with tweezers.

	Gaussian-beam helpers (waist from numerical aperture, Rayleigh range)
	and unit conversions.

	Elementwise evaluation of the formulas over slices.

All functions are pure, so they can be called concurrently without any coordination.
Formulas never return infinities or NaNs: arguments outside the domain of a formula
give an error wrapping ErrDomain, as do arguments so extreme that the result
overflows, and a tweezer resonant with a transition gives an error wrapping ErrSingular.

Sub-packages:

	modes: radial normal modes of an ion chain with tweezers (uses gonum).
	sweep: concurrent wavelength sweeps, and compressed files to store them.
	tweezerplot: plots of sweeps and modes (uses gonum/plot).
	tweezerjson: JSON bridge to external programs.
	sweepdb: SQLite store of sweeps.
	config: YAML description of an experiment.

The gotweezer command line tool is in cmd/gotweezer.
*/
package tweezer
