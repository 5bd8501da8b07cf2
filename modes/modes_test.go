/*
 * modes_test.go, part of gotweezer.
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
	"math"
	"testing"

	tweezer "github.com/rmera/gotweezer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	testD    = 5e-6
	testMass = 6.64e-26
)

var testWx = 2 * math.Pi * 3e6

func TestTwoIons(Te *testing.T) {
	c, err := NewUniformChain(2, testD, testMass, testWx)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{-testD / 2, testD / 2}, c.Positions)
	eps, err := tweezer.Epsilon(testD, testWx, testMass)
	require.NoError(Te, err)
	eps2 := eps * eps

	A, err := c.Matrix(nil)
	require.NoError(Te, err)
	assert.InDelta(Te, 1-eps2, A.At(0, 0), 1e-14)
	assert.InDelta(Te, eps2, A.At(0, 1), 1e-14)

	R, err := c.Modes(nil)
	require.NoError(Te, err)
	require.Equal(Te, 2, R.Len())
	//rocking mode first, then the center of mass mode at wx.
	assert.InDelta(Te, 1-2*eps2, R.Eigenvalues[0], 1e-12)
	assert.InDelta(Te, 1, R.Eigenvalues[1], 1e-12)
	assert.InEpsilon(Te, testWx, R.Frequencies[1], 1e-12)
	assert.InEpsilon(Te, testWx*math.Sqrt(1-2*eps2), R.Frequencies[0], 1e-12)
	com := R.Mode(1, nil)
	assert.InDelta(Te, 1/math.Sqrt2, com[0], 1e-12)
	assert.InDelta(Te, 1/math.Sqrt2, com[1], 1e-12)
	rock := R.Mode(0, nil)
	assert.InDelta(Te, 0, rock[0]+rock[1], 1e-12)
	assert.InDelta(Te, 0.5, R.Participation(0, 0), 1e-12)
	assert.Equal(Te, eps, R.Epsilon)
}

func TestUniformTweezersShiftModes(Te *testing.T) {
	c, err := NewUniformChain(5, testD, testMass, testWx)
	require.NoError(Te, err)
	bare, err := c.Modes(nil)
	require.NoError(Te, err)
	wt := 2 * math.Pi * 1e6
	tw := []float64{wt, wt, wt, wt, wt}
	dressed, err := c.Modes(tw)
	require.NoError(Te, err)
	v, _ := tweezer.V(testWx, wt)
	for i := range bare.Eigenvalues {
		assert.InDelta(Te, bare.Eigenvalues[i]+v*v, dressed.Eigenvalues[i], 1e-12)
	}
	for _, x := range dressed.V {
		assert.InDelta(Te, v, x, 1e-15)
	}
}

func TestModesOrthonormal(Te *testing.T) {
	c, err := NewUniformChain(4, testD, testMass, testWx)
	require.NoError(Te, err)
	R, err := c.Modes([]float64{0, 2 * math.Pi * 2e6, 0, 0})
	require.NoError(Te, err)
	require.True(Te, sortedAscending(R.Eigenvalues))
	require.True(Te, sortedAscending(R.Frequencies))
	for k := 0; k < R.Len(); k++ {
		mk := R.Mode(k, nil)
		assert.InDelta(Te, 1, floats.Dot(mk, mk), 1e-12)
		var part float64
		for ion := 0; ion < c.Len(); ion++ {
			part += R.Participation(ion, k)
		}
		assert.InDelta(Te, 1, part, 1e-12)
		for j := k + 1; j < R.Len(); j++ {
			assert.InDelta(Te, 0, floats.Dot(mk, R.Mode(j, nil)), 1e-12)
		}
	}
	//the eigenvectors really diagonalize the matrix.
	A, err := c.Matrix([]float64{0, 2 * math.Pi * 2e6, 0, 0})
	require.NoError(Te, err)
	var av mat.VecDense
	m0 := mat.NewVecDense(4, R.Mode(0, nil))
	av.MulVec(A, m0)
	for i := 0; i < 4; i++ {
		assert.InDelta(Te, R.Eigenvalues[0]*m0.AtVec(i), av.AtVec(i), 1e-12)
	}
	r, cols := R.Vectors().Dims()
	assert.Equal(Te, 4, r)
	assert.Equal(Te, 4, cols)
}

func sortedAscending(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if x[i] < x[i-1] {
			return false
		}
	}
	return true
}

func TestUnstableChain(Te *testing.T) {
	//weak radial confinement, the two ions would rather sit side by side.
	c, err := NewUniformChain(2, testD, testMass, 2*math.Pi*1e6)
	require.NoError(Te, err)
	R, err := c.Modes(nil)
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrUnstable))
	require.NotNil(Te, R)
	assert.Less(Te, R.Eigenvalues[0], 0.0)
	assert.Equal(Te, 0.0, R.Frequencies[0])
	//a strong tweezer on both ions stabilizes it.
	wt := 2 * math.Pi * 1e6
	_, err = c.Modes([]float64{wt, wt})
	assert.NoError(Te, err)
}

func TestBadChains(Te *testing.T) {
	_, err := NewUniformChain(0, testD, testMass, testWx)
	assert.True(Te, errors.Is(err, tweezer.ErrDomain))
	_, err = NewUniformChain(3, testD, 0, testWx)
	assert.True(Te, errors.Is(err, tweezer.ErrDomain))
	c := &Chain{Positions: []float64{0, 0}, Spacing: testD, Mass: testMass, RadialFreq: testWx}
	assert.True(Te, errors.Is(c.Check(), tweezer.ErrDomain))
	c, err = NewUniformChain(3, testD, testMass, testWx)
	require.NoError(Te, err)
	_, err = c.Modes([]float64{1, 2})
	assert.True(Te, errors.Is(err, tweezer.ErrDomain))
	_, err = c.Modes([]float64{1, -2, 3})
	assert.True(Te, errors.Is(err, tweezer.ErrDomain))
	R, err := c.Modes(nil)
	require.NoError(Te, err)
	assert.Panics(Te, func() { R.Mode(7, nil) })
}
