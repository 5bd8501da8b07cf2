/*
 * json.go, part of gotweezer.
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

package tweezerjson

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	tweezer "github.com/rmera/gotweezer"
	"github.com/rmera/gotweezer/modes"
)

//An easily JSON-serializable error type,
type Error struct {
	deco          []string
	IsError       bool   `json:"is_error"`       //If this is false (no error) all the other fields will be at their zero-values.
	InOptions     bool   `json:"in_options"`     //If error, was it in parsing the options?
	InProcess     bool   `json:"in_process"`     //In computing the results?
	InPostProcess bool   `json:"in_postprocess"` //was it in preparing the output?
	Singular      bool   `json:"singular"`       //Was the tweezer resonant with a transition?
	Function      string `json:"function"`       //which go function gave the error
	Message       string `json:"message"`        //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - ")) // Yo, dawg, I heard you like errors, so I got an error while serializing your error so you can... you know the drill.
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "options":
		jerr.InOptions = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InProcess = true
	}
	jerr.Singular = errors.Is(err, tweezer.ErrSingular)
	jerr.Function = function
	jerr.Message = err.Error()
	jerr.deco = []string{function}
	return jerr
}

//Options passed from the calling external program, one JSON object in one line.
type Options struct {
	Transitions []tweezer.Transition `json:"transitions"` //If empty, the Ca+ transitions are used.
	Beam        tweezer.Beam         `json:"beam"`
	Wavelength  float64              `json:"wavelength"` //Tweezer wavelength, m. Used if Beam.Omega is zero.
	NA          float64              `json:"na"`         //Used if Beam.Waist is zero.
	Mass        float64              `json:"mass"`       //kg
	Ion         string               `json:"ion"`        //Ion species, used if Mass is zero.
	Chain       *ChainOptions        `json:"chain"`      //optional
}

//ChainOptions describes an ion chain, for the calculation of the radial modes.
type ChainOptions struct {
	Ions       int       `json:"ions"`
	Spacing    float64   `json:"spacing"`     //m
	RadialFreq float64   `json:"radial_freq"` //rad/s
	Tweezers   []float64 `json:"tweezers"`    //tweezer radial frequency on each ion, rad/s
}

//Information to be passed back to the calling program.
type Info struct {
	Omega           float64     `json:"omega"`
	Wavelength      float64     `json:"wavelength"`
	Waist           float64     `json:"waist"`
	Mass            float64     `json:"mass"`
	Potential       float64     `json:"potential"`
	PotentialRWA    float64     `json:"potential_rwa"`
	DepthKelvin     float64     `json:"depth_kelvin"`
	Scattering      float64     `json:"scattering"`
	OmegaRadial     float64     `json:"omega_radial"`
	OmegaAxial      float64     `json:"omega_axial"`
	Epsilon         float64     `json:"epsilon,omitempty"`
	V               []float64   `json:"v,omitempty"`
	ModeFrequencies []float64   `json:"mode_frequencies,omitempty"`
	ModeVectors     [][]float64 `json:"mode_vectors,omitempty"`
}

//Send Marshals the info and writes to out, returns an error or nil
func (J *Info) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return NewError("postprocess", "Info.Send", err)
	}
	return nil
}

//SendError writes the serialized error, in one line, to out.
func SendError(J *Error, out io.Writer) error {
	_, err := fmt.Fprintf(out, "%s\n", J.Marshal())
	return err
}

//DecodeOptions Decodes or unmarshals json options into an Options structure
func DecodeOptions(stdin *bufio.Reader) (*Options, *Error) {
	line, err := stdin.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return nil, NewError("options", "DecodeOptions", err)
	}
	ret := new(Options)
	err = json.Unmarshal(line, ret)
	if err != nil {
		return nil, NewError("options", "DecodeOptions", err)
	}
	return ret, nil
}

//fill sets the defaults of the options, and derives the beam frequency,
//waist and mass if needed.
func (O *Options) fill() error {
	var err error
	if len(O.Transitions) == 0 {
		O.Transitions = tweezer.CaTransitions()
	}
	if O.Beam.Omega == 0 {
		if O.Beam.Omega, err = tweezer.AngularFrequency(O.Wavelength); err != nil {
			return err
		}
	}
	if O.Wavelength == 0 {
		if O.Wavelength, err = tweezer.Wavelength(O.Beam.Omega); err != nil {
			return err
		}
	}
	if O.Beam.Waist == 0 {
		if O.Beam.Waist, err = tweezer.BeamWaist(O.Wavelength, O.NA); err != nil {
			return err
		}
	}
	switch {
	case O.Mass != 0:
	case O.Ion != "":
		if O.Mass, err = tweezer.IonMass(O.Ion); err != nil {
			return err
		}
	default:
		O.Mass = tweezer.DefaultMass
	}
	return nil
}

//Evaluate computes all the quantities requested in the options.
func Evaluate(O *Options) (*Info, *Error) {
	const funcname = "Evaluate"
	if err := O.fill(); err != nil {
		return nil, NewError("options", funcname, err)
	}
	var err error
	I := &Info{Omega: O.Beam.Omega, Wavelength: O.Wavelength, Waist: O.Beam.Waist, Mass: O.Mass}
	if I.Potential, err = tweezer.TotalPotential(O.Beam, O.Transitions); err != nil {
		return nil, NewError("process", funcname, err)
	}
	for _, t := range O.Transitions {
		u, err := t.PotentialRWA(O.Beam)
		if err != nil {
			return nil, NewError("process", funcname, err)
		}
		I.PotentialRWA += u
	}
	I.DepthKelvin = tweezer.ToKelvin(I.Potential)
	if I.Scattering, err = tweezer.TotalScattering(O.Beam, O.Transitions); err != nil {
		return nil, NewError("process", funcname, err)
	}
	if I.OmegaRadial, err = tweezer.OmegaRadial(I.Potential, O.Beam.Waist, O.Mass); err != nil {
		return nil, NewError("process", funcname, err)
	}
	if I.OmegaAxial, err = tweezer.OmegaAxial(I.Potential, O.Beam.Waist, O.Wavelength, O.Mass); err != nil {
		return nil, NewError("process", funcname, err)
	}
	if O.Chain == nil {
		return I, nil
	}
	c, err := modes.NewUniformChain(O.Chain.Ions, O.Chain.Spacing, O.Mass, O.Chain.RadialFreq)
	if err != nil {
		return nil, NewError("options", funcname, err)
	}
	R, err := c.Modes(O.Chain.Tweezers)
	if err != nil {
		return nil, NewError("process", funcname, err)
	}
	I.Epsilon = R.Epsilon
	I.V = R.V
	I.ModeFrequencies = R.Frequencies
	for k := 0; k < R.Len(); k++ {
		I.ModeVectors = append(I.ModeVectors, R.Mode(k, nil))
	}
	return I, nil
}
