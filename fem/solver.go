// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/bilke/ogs/bhe"
	"github.com/bilke/ogs/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Assembler computes the solution of one time step given the essential boundary values
type Assembler interface {

	// Solve updates x at time t; x[ids[i]] must equal vals[i] for every inflow port
	Solve(t float64, ids []int, vals []float64, x la.Vector) (err error)
}

// allocators holds all available assemblers
var allocators = make(map[string]func(sim *inp.Simulation, devices []bhe.Device, dofs [][2]int) (Assembler, error))

// NewAssembler allocates the assembler named in the simulation data
func NewAssembler(sim *inp.Simulation, devices []bhe.Device, dofs [][2]int) (Assembler, error) {
	alloc, ok := allocators[sim.Data.Asm]
	if !ok {
		return nil, chk.Err("cannot find assembler type named %q", sim.Data.Asm)
	}
	return alloc(sim, devices, dofs)
}

// Dirichlet only imposes the essential values; all other values are kept
type Dirichlet struct{}

// add assembler to factory
func init() {
	allocators["dirichlet"] = func(sim *inp.Simulation, devices []bhe.Device, dofs [][2]int) (Assembler, error) {
		return new(Dirichlet), nil
	}
}

// Solve sets x[ids] = vals
func (o *Dirichlet) Solve(t float64, ids []int, vals []float64, x la.Vector) (err error) {
	if len(ids) != len(vals) {
		return chk.Err("number of essential indices (%d) and values (%d) differ", len(ids), len(vals))
	}
	for i, id := range ids {
		if id < 0 || id >= len(x) {
			return chk.Err("essential index %d is out of range [0, %d)", id, len(x))
		}
		x[id] = vals[i]
	}
	return
}
