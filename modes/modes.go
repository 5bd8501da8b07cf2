/*
 * modes.go, part of gotweezer.
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

package modes

import (
	"errors"
	"fmt"
	"math"
	"sort"

	tweezer "github.com/rmera/gotweezer"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrUnstable is returned when a mode has a non-positive eigenvalue, i.e. the
// linear chain is not a stable configuration (zig-zag transition).
var ErrUnstable = errors.New("gotweezer/modes: linear chain is unstable")

// Chain is a linear chain of identical ions along the trap axis, in a radial
// harmonic potential of angular frequency RadialFreq.
type Chain struct {
	Positions  []float64 //axial equilibrium positions, m
	Spacing    float64   //reference ion-ion separation d used for epsilon, m
	Mass       float64   //kg
	RadialFreq float64   //wx, rad/s
}

// NewUniformChain returns a chain of n ions separated by d, centered at zero.
func NewUniformChain(n int, d, m, wx float64) (*Chain, error) {
	if n < 1 {
		return nil, fmt.Errorf("gotweezer/modes: NewUniformChain: a chain needs at least one ion, got %d: %w", n, tweezer.ErrDomain)
	}
	pos := make([]float64, n)
	for i := range pos {
		pos[i] = (float64(i) - float64(n-1)/2) * d
	}
	c := &Chain{Positions: pos, Spacing: d, Mass: m, RadialFreq: wx}
	if err := c.Check(); err != nil {
		return nil, tweezer.Decorate(err, "NewUniformChain")
	}
	return c, nil
}

// Len returns the number of ions in the chain.
func (c *Chain) Len() int {
	return len(c.Positions)
}

// Check returns an error if the chain is not physically meaningful.
func (c *Chain) Check() error {
	if _, err := tweezer.Epsilon(c.Spacing, c.RadialFreq, c.Mass); err != nil {
		return tweezer.Decorate(err, "Chain.Check")
	}
	if len(c.Positions) == 0 {
		return fmt.Errorf("gotweezer/modes: Chain.Check: empty chain: %w", tweezer.ErrDomain)
	}
	for i, zi := range c.Positions {
		if math.IsNaN(zi) || math.IsInf(zi, 0) {
			return fmt.Errorf("gotweezer/modes: Chain.Check: position %d is not finite: %w", i, tweezer.ErrDomain)
		}
		for _, zj := range c.Positions[i+1:] {
			if zi == zj {
				return fmt.Errorf("gotweezer/modes: Chain.Check: two ions at %g m: %w", zi, tweezer.ErrDomain)
			}
		}
	}
	return nil
}

// Matrix returns the dimensionless (in units of wx^2) Hessian of the radial motion of the chain:
//
//	A_ii = 1 + v_i^2 - eps^2 sum_{j!=i} (d/|z_i-z_j|)^3
//	A_ij = eps^2 (d/|z_i-z_j|)^3
//
// tweezers[i] is the radial trap angular frequency added by a tweezer on ion i, zero
// for no tweezer. tweezers can be nil, otherwise it must have one element per ion.
func (c *Chain) Matrix(tweezers []float64) (*mat.SymDense, error) {
	if err := c.Check(); err != nil {
		return nil, tweezer.Decorate(err, "Chain.Matrix")
	}
	eps, _ := tweezer.Epsilon(c.Spacing, c.RadialFreq, c.Mass) //checked above
	vs, err := c.vs(tweezers)
	if err != nil {
		return nil, tweezer.Decorate(err, "Chain.Matrix")
	}
	n := c.Len()
	eps2 := eps * eps
	A := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		diag := 1 + vs[i]*vs[i]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			r := c.Spacing / math.Abs(c.Positions[i]-c.Positions[j])
			coupling := eps2 * r * r * r
			diag -= coupling
			if j > i {
				A.SetSym(i, j, coupling)
			}
		}
		A.SetSym(i, i, diag)
	}
	return A, nil
}

func (c *Chain) vs(tweezers []float64) ([]float64, error) {
	vs := make([]float64, c.Len())
	if tweezers == nil {
		return vs, nil
	}
	if len(tweezers) != c.Len() {
		return nil, fmt.Errorf("gotweezer/modes: %d tweezer frequencies given for %d ions: %w", len(tweezers), c.Len(), tweezer.ErrDomain)
	}
	var err error
	for i, wt := range tweezers {
		if wt < 0 {
			return nil, fmt.Errorf("gotweezer/modes: negative tweezer frequency on ion %d: %w", i, tweezer.ErrDomain)
		}
		vs[i], err = tweezer.V(c.RadialFreq, wt)
		if err != nil {
			return nil, err
		}
	}
	return vs, nil
}

// Result contains the radial normal modes of a chain, sorted by increasing frequency.
type Result struct {
	Epsilon     float64
	V           []float64 //v of each ion
	Eigenvalues []float64 //in units of wx^2
	Frequencies []float64 //rad/s
	vecs        *mat.Dense
}

// Modes diagonalizes the matrix given by Matrix and returns the normal modes of the chain.
// If any eigenvalue is not positive, the result is returned together with an error wrapping
// ErrUnstable.
func (c *Chain) Modes(tweezers []float64) (*Result, error) {
	A, err := c.Matrix(tweezers)
	if err != nil {
		return nil, tweezer.Decorate(err, "Chain.Modes")
	}
	var es mat.EigenSym
	if ok := es.Factorize(A, true); !ok {
		return nil, fmt.Errorf("gotweezer/modes: Chain.Modes: eigendecomposition failed")
	}
	evals := es.Values(nil)
	var evecs mat.Dense
	es.VectorsTo(&evecs)
	n := c.Len()
	//I prefer the modes as rows.
	vecs := mat.NewDense(n, n, nil)
	vecs.Copy(evecs.T())
	eig := eigenpair{vecs, evals}
	sort.Sort(eig)
	for i := 0; i < n; i++ {
		fixSign(vecs.RawRowView(i))
	}
	R := &Result{Eigenvalues: evals, vecs: vecs, Frequencies: make([]float64, n)}
	R.Epsilon, _ = tweezer.Epsilon(c.Spacing, c.RadialFreq, c.Mass)
	R.V, _ = c.vs(tweezers)
	var unstable []int
	for i, l := range evals {
		if l <= 0 {
			unstable = append(unstable, i)
			continue
		}
		R.Frequencies[i] = c.RadialFreq * math.Sqrt(l)
	}
	if unstable != nil {
		return R, fmt.Errorf("gotweezer/modes: Chain.Modes: non-positive eigenvalues for modes %v: %w", unstable, ErrUnstable)
	}
	return R, nil
}

// Len returns the number of modes.
func (R *Result) Len() int {
	return len(R.Eigenvalues)
}

// Mode returns the normalized vector of the k-th mode, i.e. the amplitude of each ion in
// that mode. It is put in dst if dst has enough room.
func (R *Result) Mode(k int, dst []float64) []float64 {
	n := R.Len()
	if k < 0 || k >= n {
		panic(tweezer.ErrShape)
	}
	if len(dst) < n {
		dst = make([]float64, n)
	}
	copy(dst[:n], R.vecs.RawRowView(k))
	return dst[:n]
}

// Participation returns the squared amplitude of the ion in the k-th mode.
// The participations of all the ions in a mode add up to 1.
func (R *Result) Participation(ion, k int) float64 {
	a := R.vecs.At(k, ion)
	return a * a
}

// Vectors returns a view of the mode matrix. Row k is the k-th mode.
func (R *Result) Vectors() mat.Matrix {
	return R.vecs
}

//the vectors are defined up to a sign. We make the largest component positive
//so results are reproducible.
func fixSign(v []float64) {
	i := floats.MaxIdx(absAll(v))
	if v[i] < 0 {
		floats.Scale(-1, v)
	}
}

func absAll(v []float64) []float64 {
	ret := make([]float64, len(v))
	for i, x := range v {
		ret[i] = math.Abs(x)
	}
	return ret
}

type eigenpair struct {
	//evecs must have as many rows as evals has elements.
	evecs *mat.Dense
	evals sort.Float64Slice
}

func (E eigenpair) Less(i, j int) bool {
	return E.evals[i] < E.evals[j]
}

func (E eigenpair) Swap(i, j int) {
	E.evals.Swap(i, j)
	ri := E.evecs.RawRowView(i)
	rj := E.evecs.RawRowView(j)
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

func (E eigenpair) Len() int {
	return len(E.evals)
}
