// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhe

import (
	"math"

	"github.com/bilke/ogs/inp"
)

// coaxial holds the computations shared by both coaxial kinds
//
//	Unknowns: T_in, T_out, T_g
//	Coefficients: 1/R_ff, 1/R_fg, 1/R_gs
//	 R_ff -- between the fluid in the inner pipe and the fluid in the annulus
//	 R_fg -- between the fluid in the annulus and the grout
//	 R_gs -- grout to soil
type coaxial struct {
	base
	Inner   Flow // flow in inner pipe
	Annulus Flow // flow in annular gap
}

// NumUnknowns returns 3
func (o *coaxial) NumUnknowns() int { return 3 }

// UpdateHeatTransferCoefficients recomputes the thermal resistances for given flow rate
func (o *coaxial) UpdateHeatTransferCoefficients(flowRate float64) {
	d := o.dat
	di := d.Inner.Diam
	dio := di + 2*d.Inner.Wall
	do := d.Outer.Diam
	doo := do + 2*d.Outer.Wall
	o.Inner = pipeFlow(flowRate, di, d.Length, &d.Fluid)
	o.Annulus = annulusFlow(flowRate, dio, do, d.Length, &d.Fluid)

	// advective resistances
	λf := d.Fluid.Lambda
	ha := o.Annulus.Nu * λf / (do - dio)
	radvi := 1.0 / (o.Inner.Nu * λf * math.Pi)
	radvai := 1.0 / (ha * math.Pi * dio)
	radvao := 1.0 / (ha * math.Pi * do)

	// conductive resistances of pipe walls
	rconi := math.Log(dio/di) / (2 * math.Pi * d.Inner.Lambda)
	rcono := math.Log(doo/do) / (2 * math.Pi * d.Outer.Lambda)

	// grout
	D := d.Diam
	rg := math.Log(D/doo) / (2 * math.Pi * d.Grout.Lambda)
	χ := math.Log(math.Sqrt(D*D+doo*doo)/(math.Sqrt2*doo)) / math.Log(D/doo)

	rff := radvi + radvai + rconi
	rfg := radvao + rcono + χ*rg
	rgs := (1 - χ) * rg
	o.setResistances(flowRate, rff, rfg, rgs)
}

// BheCXA implements a coaxial borehole heat exchanger with inflow through the annulus
type BheCXA struct {
	coaxial
}

// BheCXC implements a coaxial borehole heat exchanger with inflow through the inner pipe
type BheCXC struct {
	coaxial
}

// Kind returns KindCXA
func (o *BheCXA) Kind() Kind { return KindCXA }

// Kind returns KindCXC
func (o *BheCXC) Kind() Kind { return KindCXC }

// InflowChannel returns the flow entering the borehole
func (o *BheCXA) InflowChannel() Flow { return o.Annulus }

// InflowChannel returns the flow entering the borehole
func (o *BheCXC) InflowChannel() Flow { return o.Inner }

// register kinds
func init() {
	setAllocator("CXA", func(idx int, dat *inp.BheData) Device {
		return &BheCXA{coaxial{base: base{idx: idx, dat: dat}}}
	})
	setAllocator("CXC", func(idx int, dat *inp.BheData) Device {
		return &BheCXC{coaxial{base: base{idx: idx, dat: dat}}}
	})
}
