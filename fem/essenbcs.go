// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/bilke/ogs/network"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// BcArray is an array of InflowBc's
type BcArray []*InflowBc

// EssentialBcs holds all essential boundary conditions of one processor
//
//	Values are collected in the order of inlet indices so that all processors list them in
//	the same way.
type EssentialBcs struct {
	Bcs BcArray // all BHE boundary conditions
}

// NewEssentialBcs returns an empty set of boundary conditions
func NewEssentialBcs() *EssentialBcs {
	return &EssentialBcs{Bcs: make([]*InflowBc, 0)}
}

// Add adds a boundary condition
func (o *EssentialBcs) Add(bc *InflowBc) {
	o.Bcs = append(o.Bcs, bc)
	sort.Sort(o.Bcs)
}

// Len returns the number of boundary conditions
func (o *EssentialBcs) Len() int { return len(o.Bcs) }

// Values collects the essential values of all active boundary conditions at time t
//
//	x -- current solution used for the outflow values
func (o *EssentialBcs) Values(t float64, x la.Vector) (ids []int, vals []float64) {
	for _, bc := range o.Bcs {
		if !bc.Active(t) {
			continue
		}
		i, v := bc.EssentialBcValues(t, x)
		ids = append(ids, i...)
		vals = append(vals, v...)
	}
	return
}

// Outlets returns the outflow temperatures of all active boundary conditions
func (o *EssentialBcs) Outlets(t float64, x la.Vector) (outlets []network.Outlet) {
	for _, bc := range o.Bcs {
		if !bc.Active(t) {
			continue
		}
		outlets = append(outlets, network.Outlet{Node: bc.NodeId, Device: bc.Device.Index(), T: x[bc.Outlet]})
	}
	return
}

// List returns a simple list logging bcs at time t
func (o *EssentialBcs) List(t float64, x la.Vector) (l string) {
	l = "\n==================================================================\n"
	l += io.Sf("%6s%8s%8s%6s%20s%20s\n", "bhe", "inlet", "outlet", "on", "T_in", io.Sf("T_out @ t=%g", t))
	l += "------------------------------------------------------------------\n"
	for _, bc := range o.Bcs {
		l += io.Sf("%6d%8d%8d%6v%20.10f%20.10f\n", bc.Device.Index(), bc.Inlet, bc.Outlet, bc.Active(t), bc.Inflow(), x[bc.Outlet])
	}
	l += "==================================================================\n"
	return
}

// functions to implement Sort interface
func (o BcArray) Len() int           { return len(o) }
func (o BcArray) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o BcArray) Less(i, j int) bool { return o[i].Inlet < o[j].Inlet }
