// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"github.com/bilke/ogs/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Loop implements a closed pipe network with one heat pump connected in parallel to all BHEs.
// The heat pump extracts a constant or time dependent power, shared among BHEs in proportion to their flow
// rates, so the inflow temperature of BHE i is
//
//	Tin_i = Tout_i - P_i / (ρ_i c_i q_i)
type Loop struct {
	Power float64   // total extracted power [W]
	Load  dbf.T     // power as a function of time; overrides Power when given
	Flows []float64 // flow rate of each BHE [m³/s]
	RhoCp []float64 // volumetric heat capacity of the fluid in each BHE [J/m³/K]
}

// NewLoop returns a new built-in network
//
//	Flow rates are taken, by order of precedence, from dat.FlowRates, dat.TotalFlow split
//	evenly, or the design flow rate of each BHE. The number of entries in dat.FlowRates is not
//	checked here: Solve returns them as they are. load may be nil.
func NewLoop(dat *inp.NetworkData, bhes []*inp.BheData, load dbf.T) (o *Loop) {
	o = new(Loop)
	o.Power = dat.Power
	o.Load = load
	n := len(bhes)
	switch {
	case len(dat.FlowRates) > 0:
		o.Flows = append([]float64{}, dat.FlowRates...)
	case dat.TotalFlow > 0:
		o.Flows = make([]float64, n)
		for i := range o.Flows {
			o.Flows[i] = dat.TotalFlow / float64(n)
		}
	default:
		o.Flows = make([]float64, n)
		for i, b := range bhes {
			o.Flows[i] = b.FlowRate
		}
	}
	o.RhoCp = make([]float64, n)
	for i, b := range bhes {
		o.RhoCp[i] = b.Fluid.Rho * b.Fluid.Cp
	}
	return
}

// Solve returns the flow rates of all BHEs
func (o *Loop) Solve() (flowRates []float64, err error) {
	return append([]float64{}, o.Flows...), nil
}

// PowerAt returns the extracted power at time t
func (o *Loop) PowerAt(t float64) float64 {
	if o.Load == nil {
		return o.Power
	}
	return o.Load.F(t, nil)
}

// Update computes the inflow temperatures for the given outflow temperatures
func (o *Loop) Update(t float64, rec *Record, outlets []Outlet) (err error) {
	power := o.PowerAt(t)
	var qtot float64
	for _, q := range o.Flows {
		qtot += q
	}
	for _, out := range outlets {
		if out.Device < 0 || out.Device >= len(o.Flows) || out.Device >= len(o.RhoCp) {
			return chk.Err("network has no BHE with index %d", out.Device)
		}
		row, found := rec.LookupRow(out.Node)
		if !found {
			return chk.Err("boundary node %d of BHE %d is not in the exchange record", out.Node, out.Device)
		}
		q := o.Flows[out.Device]
		tin := out.T
		if q > 0 && qtot > 0 {
			p := power * q / qtot
			tin = out.T - p/(o.RhoCp[out.Device]*q)
		}
		rec.SetRow(row, tin, out.T, q)
	}
	return
}
