// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"github.com/cpmech/gosl/chk"
)

// Solver defines the hydraulic solver of the pipe network
type Solver interface {

	// Solve returns the flow rate of each BHE, in the order of the BHE configuration
	Solve() (flowRates []float64, err error)
}

// Outlet holds the outflow temperature of one BHE at the end of an assembly pass
type Outlet struct {
	Node   int     `json:"node"`   // boundary node id in the exchange record
	Device int     `json:"device"` // index of the BHE in the configuration
	T      float64 `json:"t"`      // outflow temperature
}

// Partner defines the co-simulation partner. It is the only writer of the value columns of
// the exchange record.
type Partner interface {
	Solver

	// Update runs one coupling cycle at time t: given the outflow temperatures, it writes
	// Tin, Tout and FlowRate of the rows of rec
	Update(t float64, rec *Record, outlets []Outlet) (err error)
}

// CheckFlowRates checks that the solver returned one flow rate per BHE
func CheckFlowRates(flowRates []float64, ndevices int) error {
	if len(flowRates) != ndevices {
		return chk.Err("the number of BHEs in the model (%d) and in the pipe network (%d) are not the same", ndevices, len(flowRates))
	}
	return nil
}
