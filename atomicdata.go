/*
 * atomicdata.go, part of gotweezer.
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
	"sort"
)

//A map for assigning masses (in atomic mass units) to the ion species
//commonly used in trapped-ion experiments. These are neutral atomic masses
//(AME2020), the missing electron is neglected.
var ionMass = map[string]float64{
	"9Be":   9.0121831,
	"24Mg":  23.985041697,
	"25Mg":  24.98583696,
	"40Ca":  39.962590863,
	"43Ca":  42.958766381,
	"88Sr":  87.9056125,
	"137Ba": 136.90582714,
	"138Ba": 137.90524700,
	"171Yb": 170.93633150,
	"174Yb": 173.93886755,
}

// DefaultMass is the mass of the calcium ions in the experiment, in kg. It uses
// the standard atomic weight of calcium.
const DefaultMass = 40.07 * AtomicMass

// IonMass returns the mass, in kg, of the ion species given by symbol,
// written as mass number followed by the element ("40Ca", "171Yb").
func IonMass(symbol string) (float64, error) {
	m, ok := ionMass[symbol]
	if !ok {
		return 0, domainError("IonMass", "unknown ion species %q, known species are %v", symbol, IonSpecies())
	}
	return m * AtomicMass, nil
}

// IonSpecies returns the symbols accepted by IonMass, sorted.
func IonSpecies() []string {
	ret := make([]string, 0, len(ionMass))
	for k := range ionMass {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//vacuum wavelengths (nm) and lifetimes (s) of the excited state
//for the transitions of Ca+ starting at the S1/2 ground state.
var caTransitions = []struct {
	name       string
	wavelength float64
	lifetime   float64
}{
	{"S1/2-P1/2", 396.959, 7.098e-9},
	{"S1/2-P3/2", 393.366, 6.924e-9},
	{"S1/2-D5/2", 729.147, 1.168},
}

// CaTransitions returns the transitions from the ground state of Ca+, with
// linewidths taken as the inverse lifetime of the upper state. A new slice is
// returned on each call.
func CaTransitions() []Transition {
	ret := make([]Transition, 0, len(caTransitions))
	for _, v := range caTransitions {
		omega, err := AngularFrequency(v.wavelength * Nm2M)
		if err != nil {
			panic(fmt.Sprintf("gotweezer: corrupted transition table: %v", err)) //the table above is wrong
		}
		ret = append(ret, Transition{Name: v.name, Omega: omega, Linewidth: 1 / v.lifetime})
	}
	return ret
}
