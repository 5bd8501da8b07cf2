/*
 * plot.go, part of gotweezer.
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

package tweezerplot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	tweezer "github.com/rmera/gotweezer"
	"github.com/rmera/gotweezer/modes"
	"github.com/rmera/gotweezer/sweep"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size of the saved plots.
var (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// SweepPlot plots the trap depth (in microkelvin) and the scattering rate (logarithmic scale)
// of the valid points of a sweep against the wavelength in nm. The plots are saved as
// plotname_depth.png and plotname_scattering.png. If plotname ends in one of the
// extensions gonum/plot can save (.png, .svg, .pdf, .eps, .jpg, .tif), that format
// is used instead, e.g. "ca.svg" gives ca_depth.svg and ca_scattering.svg.
func SweepPlot(points []sweep.Point, title, plotname string) error {
	base, ext := splitName(plotname)
	depth := make(plotter.XYs, 0, len(points))
	scat := make(plotter.XYs, 0, len(points))
	for _, v := range points {
		if !v.Valid() {
			continue
		}
		x := v.Wavelength * tweezer.M2Nm
		depth = append(depth, plotter.XY{X: x, Y: tweezer.ToKelvin(v.Potential) * tweezer.K2MuK})
		//log scale, so zeros are left out.
		if v.Scattering > 0 {
			scat = append(scat, plotter.XY{X: x, Y: v.Scattering})
		}
	}
	if len(depth) == 0 {
		return fmt.Errorf("gotweezer/tweezerplot: SweepPlot: no valid points to plot")
	}
	p := basicPlot(title, "Wavelength (nm)", "U/kB (µK)")
	if err := addLine(p, depth, 0, 2); err != nil {
		return err
	}
	if err := p.Save(Width, Height, base+"_depth"+ext); err != nil {
		return err
	}
	if len(scat) == 0 {
		return nil
	}
	p = basicPlot(title, "Wavelength (nm)", "Scattering rate (1/s)")
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{}
	if err := addLine(p, scat, 1, 2); err != nil {
		return err
	}
	return p.Save(Width, Height, base+"_scattering"+ext)
}

func addLine(p *plot.Plot, xys plotter.XYs, key, steps int) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	r, g, b := colors(key, steps)
	l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
	l.LineStyle.Width = vg.Points(1.5)
	p.Add(l)
	return nil
}

// ModePlot plots the frequency, in MHz, of each radial mode of a chain, and, in a
// second plot, the participation of each ion in each mode, one colored line per mode.
// The plots are saved as plotname_freqs.png and plotname_participation.png, or in the
// format given by the extension of plotname, as in SweepPlot.
func ModePlot(R *modes.Result, title, plotname string) error {
	base, ext := splitName(plotname)
	if R == nil || R.Len() == 0 {
		return fmt.Errorf("gotweezer/tweezerplot: ModePlot: no modes to plot")
	}
	n := R.Len()
	freqs := make(plotter.XYs, 0, n)
	for k, f := range R.Frequencies {
		if f <= 0 || math.IsNaN(f) {
			continue //unstable mode
		}
		freqs = append(freqs, plotter.XY{X: float64(k), Y: f / (2 * math.Pi) * tweezer.Hz2MHz})
	}
	p := basicPlot(title, "Mode", "Frequency (MHz)")
	s, err := plotter.NewScatter(freqs)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)
	if err := p.Save(Width, Height, base+"_freqs"+ext); err != nil {
		return err
	}
	p = basicPlot(title, "Ion", "Participation")
	p.Y.Min = 0
	p.Y.Max = 1
	for k := 0; k < n; k++ {
		part := make(plotter.XYs, n)
		for ion := 0; ion < n; ion++ {
			part[ion].X = float64(ion)
			part[ion].Y = R.Participation(ion, k)
		}
		if err := addLine(p, part, k, n); err != nil {
			return err
		}
	}
	return p.Save(Width, Height, base+"_participation"+ext)
}

//splitName separates a known image extension from the plot name. PNG is the default.
func splitName(plotname string) (base, ext string) {
	e := filepath.Ext(plotname)
	switch strings.ToLower(e) {
	case ".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff":
		return strings.TrimSuffix(plotname, e), strings.ToLower(e)
	}
	return plotname, ".png"
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

//colors spreads steps colors over the hue circle, skipping the yellows, which are hard to see.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := (float64(key) * norm) + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}
