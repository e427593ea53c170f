// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhe

import (
	"math"

	"github.com/bilke/ogs/inp"
)

// Bhe1U implements a single U-tube borehole heat exchanger
//
//	Unknowns: T_in, T_out, T_g1 (grout around inlet leg), T_g2 (grout around outlet leg)
//	Coefficients: 1/R_fig, 1/R_fog, 1/R_gg, 1/R_gs
//	 R_fig -- fluid in inlet leg to its grout zone
//	 R_fog -- fluid in outlet leg to its grout zone
//	 R_gg  -- between both grout zones
//	 R_gs  -- grout to soil
type Bhe1U struct {
	base
	In  Flow // flow in inlet leg
	Out Flow // flow in outlet leg
}

// register kind
func init() {
	setAllocator("1U", func(idx int, dat *inp.BheData) Device {
		return &Bhe1U{base: base{idx: idx, dat: dat}}
	})
}

// Kind returns Kind1U
func (o *Bhe1U) Kind() Kind { return Kind1U }

// NumUnknowns returns 4
func (o *Bhe1U) NumUnknowns() int { return 4 }

// UpdateHeatTransferCoefficients recomputes the thermal resistances for given flow rate
func (o *Bhe1U) UpdateHeatTransferCoefficients(flowRate float64) {
	d := o.dat
	o.In = pipeFlow(flowRate, d.Leg.Diam, d.Length, &d.Fluid)
	o.Out = o.In

	// advective and conductive resistances of the pipes
	radv := 1.0 / (o.In.Nu * d.Fluid.Lambda * math.Pi)
	d0 := d.Leg.Diam + 2*d.Leg.Wall
	rcon := math.Log(d0/d.Leg.Diam) / (2 * math.Pi * d.Leg.Lambda)

	// grout resistances
	D, s, λg := d.Diam, d.Spacing, d.Grout.Lambda
	rconb := math.Acosh((D*D+d0*d0-s*s)/(2*D*d0)) / (2 * math.Pi * λg)
	rg := rconb * (1.601 - 0.888*s/D)
	rar := math.Acosh((2*s*s-d0*d0)/(d0*d0)) / (2 * math.Pi * λg)
	χ := math.Log(math.Sqrt(D*D+2*d0*d0)/(2*d0)) / math.Log(D/(math.Sqrt2*d0))

	// reduce χ until the grout-grout resistance is physically meaningful
	var rgs, rgg float64
	for i := 0; i < 20; i++ {
		rgs = (1 - χ) * rg
		rgg = 2 * rgs * (rar - 2*χ*rg) / (2*rgs - rar + 2*χ*rg)
		if rgg > 0 && !math.IsInf(rgg, 0) && !math.IsNaN(rgg) {
			break
		}
		χ *= 2.0 / 3.0
	}
	rfig := radv + rcon + χ*rg
	o.setResistances(flowRate, rfig, rfig, rgg, rgs)
}
