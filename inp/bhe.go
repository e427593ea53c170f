// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
)

// FluidData holds the properties of the circulating fluid
type FluidData struct {
	Rho    float64 `json:"rho"`    // density [kg/m³]
	Mu     float64 `json:"mu"`     // dynamic viscosity [Pa·s]
	Cp     float64 `json:"cp"`     // specific heat capacity [J/kg/K]
	Lambda float64 `json:"lambda"` // thermal conductivity [W/m/K]
}

// PipeData holds the geometry of one pipe
type PipeData struct {
	Diam   float64 `json:"diam"`   // inner diameter [m]
	Wall   float64 `json:"wall"`   // wall thickness [m]
	Lambda float64 `json:"lambda"` // wall thermal conductivity [W/m/K]
}

// GroutData holds the properties of the borehole filling
type GroutData struct {
	Lambda float64 `json:"lambda"` // thermal conductivity [W/m/K]
	Rho    float64 `json:"rho"`    // density [kg/m³]
	Cp     float64 `json:"cp"`     // specific heat capacity [J/kg/K]
	Por    float64 `json:"por"`    // porosity
}

// BheData holds the definition of one borehole heat exchanger
//
//	Type is one of:
//	 "1U"  -- single U-tube; Leg holds the geometry of both legs
//	 "CXA" -- coaxial with annular inflow; Inner and Outer hold the pipes
//	 "CXC" -- coaxial with centred inflow; Inner and Outer hold the pipes
type BheData struct {

	// essential
	Type     string  `json:"type"`     // device type tag
	Length   float64 `json:"length"`   // borehole length [m]
	Diam     float64 `json:"diam"`     // borehole diameter [m]
	FlowRate float64 `json:"flowrate"` // design flow rate [m³/s]; used when not coupled
	TinIni   float64 `json:"tinini"`   // inflow temperature before the first coupling cycle [°C]

	// coupling with the pipe network
	UseNetwork bool    `json:"usenetwork"` // inflow is given by the network exchange
	Tini       float64 `json:"tini"`       // BC is active from this time on
	Tfin       float64 `json:"tfin"`       // BC is active until this time; 0 means forever

	// pipes
	Leg     PipeData `json:"leg"`     // 1U: both legs
	Spacing float64  `json:"spacing"` // 1U: distance between leg centres [m]
	Inner   PipeData `json:"inner"`   // coaxial: inner pipe
	Outer   PipeData `json:"outer"`   // coaxial: outer pipe

	// materials
	Fluid FluidData `json:"fluid"`
	Grout GroutData `json:"grout"`
}

// Check checks the geometry and material data of a borehole heat exchanger
func (o *BheData) Check() (err error) {
	if o.Length <= 0 || o.Diam <= 0 {
		return chk.Err("borehole length and diameter must be positive. L=%g D=%g", o.Length, o.Diam)
	}
	if o.Fluid.Rho <= 0 || o.Fluid.Mu <= 0 || o.Fluid.Cp <= 0 || o.Fluid.Lambda <= 0 {
		return chk.Err("fluid properties must be positive: %+v", o.Fluid)
	}
	if o.Grout.Lambda <= 0 {
		return chk.Err("grout thermal conductivity must be positive. λg=%g", o.Grout.Lambda)
	}
	switch o.Type {
	case "1U":
		if err = o.Leg.check("leg"); err != nil {
			return
		}
		d0 := o.Leg.Diam + 2*o.Leg.Wall
		if o.Spacing < d0 || o.Spacing+d0 > o.Diam {
			return chk.Err("1U pipes do not fit in borehole. spacing=%g pipe=%g D=%g", o.Spacing, d0, o.Diam)
		}
	case "CXA", "CXC":
		if err = o.Inner.check("inner"); err != nil {
			return
		}
		if err = o.Outer.check("outer"); err != nil {
			return
		}
		if o.Inner.Diam+2*o.Inner.Wall >= o.Outer.Diam {
			return chk.Err("inner pipe does not fit in outer pipe. di=%g wi=%g Do=%g", o.Inner.Diam, o.Inner.Wall, o.Outer.Diam)
		}
		if o.Outer.Diam+2*o.Outer.Wall >= o.Diam {
			return chk.Err("outer pipe does not fit in borehole. Do=%g wo=%g D=%g", o.Outer.Diam, o.Outer.Wall, o.Diam)
		}
	}
	if o.Tfin > 0 && o.Tfin < o.Tini {
		return chk.Err("activity interval is inverted: [%g, %g]", o.Tini, o.Tfin)
	}
	return
}

func (o PipeData) check(name string) error {
	if o.Diam <= 0 || o.Wall < 0 || o.Lambda <= 0 {
		return chk.Err("%s pipe data is invalid: %+v", name, o)
	}
	return nil
}
