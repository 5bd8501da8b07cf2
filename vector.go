/*
 * vector.go, part of gotweezer.
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

	"gonum.org/v1/gonum/floats"
)

// Map applies f to each element of xs and puts the results in dst, which is returned.
// If dst is nil or shorter than xs, a new slice is allocated. Elements are independent
// of each other. On failure, the error of the first failing element is returned,
// decorated with its index, and the contents of dst are undefined.
func Map(dst, xs []float64, f func(float64) (float64, error)) ([]float64, error) {
	dst = getCopySlice(len(xs), dst)
	var err error
	for i, x := range xs {
		dst[i], err = f(x)
		if err != nil {
			return nil, Decorate(err, fmt.Sprintf("Map: element %d", i))
		}
	}
	return dst, nil
}

// PotentialSpectrum evaluates Potential for each tweezer angular frequency in omegas,
// keeping the other arguments fixed. Results go to dst, as in Map.
func PotentialSpectrum(dst, omegas []float64, linewidth, omegaRes, power, waist float64) ([]float64, error) {
	if floats.HasNaN(omegas) {
		return nil, domainError("PotentialSpectrum", "NaN in tweezer frequencies")
	}
	return Map(dst, omegas, func(w float64) (float64, error) {
		return Potential(w, linewidth, omegaRes, power, waist)
	})
}

// ScatteringSpectrum evaluates Scattering for each tweezer angular frequency in omegas.
func ScatteringSpectrum(dst, omegas []float64, linewidth, omegaRes, power, waist float64) ([]float64, error) {
	if floats.HasNaN(omegas) {
		return nil, domainError("ScatteringSpectrum", "NaN in tweezer frequencies")
	}
	return Map(dst, omegas, func(w float64) (float64, error) {
		return Scattering(w, linewidth, omegaRes, power, waist)
	})
}

// ScaleAll returns a copy of xs multiplied by s, in dst if it has enough room.
// It is meant for unit changes of whole spectra.
func ScaleAll(dst, xs []float64, s float64) []float64 {
	d := getCopySlice(len(xs), dst)
	return floats.ScaleTo(d, s, xs)
}

func getCopySlice(N int, dest []float64) []float64 {
	if len(dest) >= N {
		return dest[:N] //floats.ScaleTo wants both slices to _match_
	}
	return make([]float64, N)
}
