/*
 * sweep.go, part of gotweezer.
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

package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	tweezer "github.com/rmera/gotweezer"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Setup is everything about a tweezer except its wavelength.
type Setup struct {
	Power       float64 //W
	NA          float64 //numerical aperture, used to get the waist when Waist is zero
	Waist       float64 //fixed beam waist in m, or zero
	Mass        float64 //ion mass, kg
	Transitions []tweezer.Transition
}

// Check returns an error if the setup can't be used in a sweep.
func (s *Setup) Check() error {
	if s.Power < 0 || math.IsNaN(s.Power) || math.IsInf(s.Power, 0) {
		return fmt.Errorf("gotweezer/sweep: invalid power %g: %w", s.Power, tweezer.ErrDomain)
	}
	if s.Waist == 0 && (s.NA <= 0 || s.NA > 1) {
		return fmt.Errorf("gotweezer/sweep: no waist given and invalid numerical aperture %g: %w", s.NA, tweezer.ErrDomain)
	}
	if s.Waist < 0 {
		return fmt.Errorf("gotweezer/sweep: negative waist %g: %w", s.Waist, tweezer.ErrDomain)
	}
	if !(s.Mass > 0) {
		return fmt.Errorf("gotweezer/sweep: invalid mass %g: %w", s.Mass, tweezer.ErrDomain)
	}
	if len(s.Transitions) == 0 {
		return fmt.Errorf("gotweezer/sweep: no transitions: %w", tweezer.ErrDomain)
	}
	return nil
}

// Point is the result of evaluating a setup at one wavelength.
type Point struct {
	Wavelength  float64 //m
	Omega       float64 //rad/s
	Waist       float64 //m
	Potential   float64 //J, summed over all transitions
	Scattering  float64 //1/s, summed over all transitions
	OmegaRadial float64 //rad/s
	OmegaAxial  float64 //rad/s
	//Err is not nil if the wavelength is resonant with a transition.
	//In that case only the three first fields are meaningful.
	Err error
}

// Valid returns true if the point is not resonant with any transition.
func (p Point) Valid() bool {
	return p.Err == nil
}

// Merit returns |U|/(hbar Gamma_sc), the trap depth in units of the energy scattered
// per unit time. Larger is better. It is +Inf if there is no scattering, and NaN for
// invalid points.
func (p Point) Merit() float64 {
	if !p.Valid() {
		return math.NaN()
	}
	if p.Scattering == 0 {
		return math.Inf(1)
	}
	return math.Abs(p.Potential) / (tweezer.Hbar * p.Scattering)
}

// Evaluate computes the point for the given wavelength, in m. A wavelength resonant with
// any of the transitions gives an invalid point and a nil error. Other problems
// give an error.
func (s *Setup) Evaluate(wavelength float64) (Point, error) {
	p := Point{Wavelength: wavelength}
	var err error
	if p.Omega, err = tweezer.AngularFrequency(wavelength); err != nil {
		return p, tweezer.Decorate(err, "Setup.Evaluate")
	}
	p.Waist = s.Waist
	if p.Waist == 0 {
		if p.Waist, err = tweezer.BeamWaist(wavelength, s.NA); err != nil {
			return p, tweezer.Decorate(err, "Setup.Evaluate")
		}
	}
	b := tweezer.Beam{Omega: p.Omega, Power: s.Power, Waist: p.Waist}
	if p.Potential, err = tweezer.TotalPotential(b, s.Transitions); err != nil {
		if errors.Is(err, tweezer.ErrSingular) {
			p.Err = err
			return p, nil
		}
		return p, tweezer.Decorate(err, "Setup.Evaluate")
	}
	if p.Scattering, err = tweezer.TotalScattering(b, s.Transitions); err != nil {
		return p, tweezer.Decorate(err, "Setup.Evaluate")
	}
	if p.OmegaRadial, err = tweezer.OmegaRadial(p.Potential, p.Waist, s.Mass); err != nil {
		return p, tweezer.Decorate(err, "Setup.Evaluate")
	}
	if p.OmegaAxial, err = tweezer.OmegaAxial(p.Potential, p.Waist, wavelength, s.Mass); err != nil {
		return p, tweezer.Decorate(err, "Setup.Evaluate")
	}
	return p, nil
}

// Span returns n wavelengths evenly spaced between min and max, both included.
func Span(min, max float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("gotweezer/sweep: a span needs at least 2 points, got %d: %w", n, tweezer.ErrDomain)
	}
	if !(min > 0) || !(max > min) || math.IsInf(max, 0) {
		return nil, fmt.Errorf("gotweezer/sweep: invalid span %g-%g: %w", min, max, tweezer.ErrDomain)
	}
	return floats.Span(make([]float64, n), min, max), nil
}

type runOptions struct {
	workers  int
	progress func()
	log      zerolog.Logger
}

// Option modifies the way Run works.
type Option func(*runOptions)

// Workers sets the number of goroutines used by Run. The default is runtime.NumCPU().
func Workers(n int) Option {
	return func(o *runOptions) { o.workers = n }
}

// OnProgress sets a function to be called after each point is evaluated. It will be
// called from several goroutines at the same time.
func OnProgress(f func()) Option {
	return func(o *runOptions) { o.progress = f }
}

// WithLogger sets the logger used by Run. By default nothing is logged.
func WithLogger(l zerolog.Logger) Option {
	return func(o *runOptions) { o.log = l }
}

// Run evaluates the setup at each of the given wavelengths, concurrently. The points are
// returned in the same order as the wavelengths. Resonant wavelengths give invalid points,
// any other error stops the sweep and is returned, as is the context error if ctx is
// cancelled before the sweep finishes.
func Run(ctx context.Context, s *Setup, wavelengths []float64, opts ...Option) ([]Point, error) {
	o := runOptions{workers: runtime.NumCPU(), log: zerolog.Nop()}
	for _, f := range opts {
		f(&o)
	}
	if err := s.Check(); err != nil {
		return nil, tweezer.Decorate(err, "sweep.Run")
	}
	if o.workers < 1 {
		return nil, fmt.Errorf("gotweezer/sweep: Run: need at least one worker, got %d: %w", o.workers, tweezer.ErrDomain)
	}
	log := o.log.With().Str("component", "sweep").Logger()
	log.Debug().Int("points", len(wavelengths)).Int("workers", o.workers).Msg("starting sweep")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	points := make([]Point, len(wavelengths))
	jobs := make(chan int)
	var firstErr error
	var once sync.Once
	wg := new(sync.WaitGroup)
	wg.Add(o.workers)
	for w := 0; w < o.workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				p, err := s.Evaluate(wavelengths[i])
				if err != nil {
					once.Do(func() {
						firstErr = fmt.Errorf("gotweezer/sweep: point %d (%g m): %w", i, wavelengths[i], err)
						cancel()
					})
					continue
				}
				points[i] = p
				if o.progress != nil {
					o.progress()
				}
			}
		}()
	}
feed:
	for i := range wavelengths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if firstErr != nil {
		log.Error().Err(firstErr).Msg("sweep aborted")
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Msg("sweep cancelled")
		return nil, err
	}
	sum := Summarize(points)
	log.Info().Int("points", sum.N).Int("resonant", sum.Resonant).Msg("sweep done")
	return points, nil
}

// Summary contains some statistics of a sweep, over its valid points.
type Summary struct {
	N               int
	Resonant        int     //invalid points
	DeepestIndex    int     //index of the point with the largest |U|, -1 if no valid points
	BestIndex       int     //index of the point with the largest Merit, -1 if no valid points
	MeanOmegaRadial float64 //rad/s
	MaxScattering   float64 //1/s
}

// Summarize returns the Summary of the points.
func Summarize(points []Point) Summary {
	sum := Summary{N: len(points), DeepestIndex: -1, BestIndex: -1}
	depths := make([]float64, 0, len(points))
	merits := make([]float64, 0, len(points))
	radial := make([]float64, 0, len(points))
	scat := make([]float64, 0, len(points))
	index := make([]int, 0, len(points))
	for i, p := range points {
		if !p.Valid() {
			sum.Resonant++
			continue
		}
		depths = append(depths, math.Abs(p.Potential))
		merits = append(merits, p.Merit())
		radial = append(radial, p.OmegaRadial)
		scat = append(scat, p.Scattering)
		index = append(index, i)
	}
	if len(index) == 0 {
		return sum
	}
	sum.DeepestIndex = index[floats.MaxIdx(depths)]
	sum.BestIndex = index[floats.MaxIdx(merits)]
	sum.MeanOmegaRadial = stat.Mean(radial, nil)
	sum.MaxScattering = floats.Max(scat)
	return sum
}
