// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bhe implements borehole heat exchanger devices
package bhe

import (
	"github.com/bilke/ogs/inp"
	"github.com/cpmech/gosl/chk"
)

// Kind tags the type of borehole heat exchanger
type Kind int

// all kinds of borehole heat exchangers
const (
	Kind1U  Kind = iota // single U-tube
	KindCXA             // coaxial with annular inflow
	KindCXC             // coaxial with centred inflow
)

// String returns the configuration tag of the kind
func (o Kind) String() string {
	switch o {
	case Kind1U:
		return "1U"
	case KindCXA:
		return "CXA"
	case KindCXC:
		return "CXC"
	}
	return "unknown"
}

// Device defines what all borehole heat exchangers implement.
// The set of implementations is closed: only this package can add kinds.
type Device interface {
	Index() int                                      // position in the ordered list of devices
	Kind() Kind                                      // type tag
	UsesExternalCoupling() bool                      // inflow temperature comes from the network exchange
	UpdateHeatTransferCoefficients(flowRate float64) // recompute coefficients for given flow rate [m³/s]
	Coefficients() []float64                         // current heat transfer coefficients [W/m/K]
	FlowRate() float64                               // flow rate used for the current coefficients
	NumUnknowns() int                                // number of temperature unknowns along the borehole
	InflowIni() float64                              // inflow temperature before the first coupling cycle
	Data() *inp.BheData                              // input data

	sealed()
}

// Visitor handles each kind of borehole heat exchanger
type Visitor interface {
	Visit1U(o *Bhe1U)
	VisitCXA(o *BheCXA)
	VisitCXC(o *BheCXC)
}

// Visit calls the method of v corresponding to the kind of d
func Visit(d Device, v Visitor) {
	switch o := d.(type) {
	case *Bhe1U:
		v.Visit1U(o)
	case *BheCXA:
		v.VisitCXA(o)
	case *BheCXC:
		v.VisitCXC(o)
	default:
		chk.Panic("cannot visit BHE of type %T", d)
	}
}

// AnyCoupled tells whether any device takes its inflow from the network
func AnyCoupled(devices []Device) bool {
	for _, d := range devices {
		if d.UsesExternalCoupling() {
			return true
		}
	}
	return false
}

// base holds data shared by all kinds
type base struct {
	idx  int
	dat  *inp.BheData
	flow float64   // flow rate of last update
	cfs  []float64 // coefficients == 1/R
}

func (o *base) Index() int                 { return o.idx }
func (o *base) UsesExternalCoupling() bool { return o.dat.UseNetwork }
func (o *base) FlowRate() float64          { return o.flow }
func (o *base) InflowIni() float64         { return o.dat.TinIni }
func (o *base) Data() *inp.BheData         { return o.dat }
func (o *base) sealed()                    {}

// Coefficients returns a copy of the current coefficients
func (o *base) Coefficients() []float64 {
	res := make([]float64, len(o.cfs))
	copy(res, o.cfs)
	return res
}

// setResistances stores the reciprocal of thermal resistances
func (o *base) setResistances(flowRate float64, res ...float64) {
	o.flow = flowRate
	if len(o.cfs) != len(res) {
		o.cfs = make([]float64, len(res))
	}
	for i, r := range res {
		o.cfs[i] = 1.0 / r
	}
}
