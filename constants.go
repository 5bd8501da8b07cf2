/*
 * constants.go, part of gotweezer.
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

//Physical constants in SI units, CODATA 2018.
//They are untyped constants, so there is no way to change them at run time.
const (
	Eps0       = 8.8541878128e-12  //vacuum permittivity, F/m
	E          = 1.602176634e-19   //elementary charge, C
	H          = 6.62607015e-34    //Planck constant, J s
	Hbar       = 1.054571817e-34   //reduced Planck constant, J s
	C          = 299792458.0       //speed of light, m/s
	AtomicMass = 1.66053906660e-27 //atomic mass unit, kg
	KB         = 1.380649e-23      //Boltzmann constant, J/K
)

//Coulomb constant 1/(4 pi eps0), N m^2/C^2
const coulombK = 1 / (4 * math.Pi * Eps0)

//Conversions
const (
	Nm2M   = 1e-9
	M2Nm   = 1e9
	Hz2MHz = 1e-6
	K2MuK  = 1e6
)
