// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/bilke/ogs/bhe"
	"github.com/bilke/ogs/inp"
	"github.com/bilke/ogs/network"
	"github.com/cpmech/gosl/chk"
	log "github.com/sirupsen/logrus"
)

// Process holds the BHEs of a heat transport process and their coupling with the pipe network
// on one processor
type Process struct {
	Sim     *inp.Simulation // simulation data
	Rank    int             // processor id
	Devices []bhe.Device    // all BHEs, in configuration order
	Dofs    [][2]int        // {inlet, outlet} of each BHE on this processor
	Partner network.Partner // pipe network; nil if no BHE is coupled
	Rec     *network.Record // exchange record
	Bcs     *EssentialBcs   // boundary conditions of coupled BHEs on this processor
}

// NewProcess sets up the BHEs of a simulation on processor rank
//
//	partner -- pipe network; required if any BHE is coupled, ignored otherwise
//
// The partner is asked for the flow rates once; the exchange record gets one row per coupled
// BHE present on this processor and is sealed on return.
func NewProcess(sim *inp.Simulation, rank int, partner network.Partner) (o *Process, err error) {

	// devices
	o = &Process{Sim: sim, Rank: rank}
	o.Devices, err = bhe.NewAll(sim.Bhes)
	if err != nil {
		return nil, err
	}

	// flow rates
	if bhe.AnyCoupled(o.Devices) {
		if partner == nil {
			return nil, chk.Err("BHEs are coupled to the pipe network but no network partner is available")
		}
		o.Partner = partner
		if err = ApplyFlowRates(partner, o.Devices); err != nil {
			return nil, err
		}
	}

	// partition
	o.Dofs, err = sim.PartitionDofs(rank)
	if err != nil {
		return nil, err
	}
	if err = CheckAllPartitions(rank, o.Devices, o.Dofs); err != nil {
		return nil, err
	}

	// boundary conditions
	o.Rec = network.NewRecord()
	o.Bcs = NewEssentialBcs()
	for i, d := range o.Devices {
		if !d.UsesExternalCoupling() {
			continue
		}
		bc, err := CreateInflowBc(rank, o.Dofs[i], d, o.Rec)
		if err != nil {
			return nil, err
		}
		if bc != nil {
			o.Bcs.Add(bc)
		}
	}
	o.Rec.Seal()
	log.WithFields(log.Fields{"rank": rank, "bhes": len(o.Devices), "bcs": o.Bcs.Len()}).Info("BHE process set")
	return
}

// ApplyFlowRates gets the flow rates from the hydraulic solver and updates the coefficients
// of all devices
func ApplyFlowRates(solver network.Solver, devices []bhe.Device) (err error) {
	flowRates, err := solver.Solve()
	if err != nil {
		return chk.Err("hydraulic solver failed:\n%v", err)
	}
	if err = network.CheckFlowRates(flowRates, len(devices)); err != nil {
		return
	}
	for i, d := range devices {
		d.UpdateHeatTransferCoefficients(flowRates[i])
		log.WithFields(log.Fields{"bhe": i, "kind": d.Kind(), "q": flowRates[i]}).Debug("flow rate set")
	}
	return
}

// NumDofs returns the size of the solution vector required by the ports of this processor
func (o *Process) NumDofs() (n int) {
	for _, p := range o.Dofs {
		for _, eq := range p {
			if eq+1 > n {
				n = eq + 1
			}
		}
	}
	return
}
