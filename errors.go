/*
 * errors.go, part of gotweezer.
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
	"fmt"
	"math"
	"strings"
)

// The two kinds of failure a formula can report. Use errors.Is to tell them apart.
var (
	//ErrDomain is returned when an argument violates the documented precondition
	//of a formula (zero mass, negative waist, NaN input, and so on).
	ErrDomain = errors.New("gotweezer: argument outside the domain of the formula")

	//ErrSingular is returned when the tweezer is resonant with a transition, i.e.
	//a detuning denominator vanishes. It is a physical regime boundary, not a bug.
	ErrSingular = errors.New("gotweezer: resonant drive, detuning denominator vanishes")
)

// Decorator is the interface for errors that can carry the list of functions
// they went through before reaching the caller.
type Decorator interface {
	error
	//Decorate adds dec to the decoration slice and returns the resulting slice.
	//If passed an empty string, it just returns the current value.
	Decorate(dec string) []string
}

// Error is the error type returned by all formulas in this package. It wraps
// either ErrDomain or ErrSingular.
type Error struct {
	message string
	deco    []string
	kind    error
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return err.message
	}
	return fmt.Sprintf("%s [%s]", err.message, strings.Join(err.deco, " < "))
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Unwrap returns ErrDomain or ErrSingular.
func (err *Error) Unwrap() error { return err.kind }

// Singular returns true if the error was caused by a resonant drive.
func (err *Error) Singular() bool { return err.kind == ErrSingular }

// Decorate adds caller to err if err is a Decorator, and returns err.
// Other errors are returned unchanged.
func Decorate(err error, caller string) error {
	var d Decorator
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}

func domainError(caller, format string, args ...interface{}) error {
	return &Error{message: fmt.Sprintf("gotweezer: "+format, args...), deco: []string{caller}, kind: ErrDomain}
}

func singularError(caller string, omegaTweezer, omegaRes float64) error {
	return &Error{message: fmt.Sprintf("gotweezer: tweezer frequency %g rad/s is resonant with the transition at %g rad/s", omegaTweezer, omegaRes), deco: []string{caller}, kind: ErrSingular}
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShape = PanicMsg("gotweezer: Dimension mismatch")
)

//the guards below are shared by every formula.

func finite(caller, name string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return domainError(caller, "%s must be finite, got %g", name, x)
	}
	return nil
}

func positive(caller, name string, x float64) error {
	if err := finite(caller, name, x); err != nil {
		return err
	}
	if x <= 0 {
		return domainError(caller, "%s must be positive, got %g", name, x)
	}
	return nil
}

// finiteResult turns an overflowed or undefined result into a domain error.
func finiteResult(caller string, x float64) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, domainError(caller, "result is not finite (%g), arguments out of the representable range", x)
	}
	return x, nil
}

func nonNegative(caller, name string, x float64) error {
	if err := finite(caller, name, x); err != nil {
		return err
	}
	if x < 0 {
		return domainError(caller, "%s can't be negative, got %g", name, x)
	}
	return nil
}
