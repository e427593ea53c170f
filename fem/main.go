// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the coupling of borehole heat exchangers with the heat transport
// solver and the pipe network
package fem

import (
	"math"
	"time"

	"github.com/bilke/ogs/inp"
	"github.com/bilke/ogs/network"
	"github.com/bilke/ogs/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Main holds all data for a simulation of borehole heat exchangers
type Main struct {
	Fs      afero.Fs        // file system for input and output
	Sim     *inp.Simulation // simulation data
	Opts    *inp.RunOptions // run options
	Proc    *Process        // BHEs and boundary conditions of this processor
	Coupler *Coupler        // time loop driver
	Hist    *out.History    // history of the exchange record
	Nproc   int             // number of processors
	Rank    int             // processor id
	ShowMsg bool            // show messages
	closer  func() error    // closes the network partner, if needed
}

// NewMain returns a new Main structure
//
//	Input:
//	 fs          -- file system
//	 simfilepath -- simulation (.sim) filename including full path
//	 alias       -- word to be appended to simulation key; e.g. when running multiple simulations
//	 opts        -- run options; nil means default options
//	 partner     -- pipe network; nil means the one selected in opts, if any BHE is coupled
func NewMain(fs afero.Fs, simfilepath, alias string, opts *inp.RunOptions, partner network.Partner) (o *Main, err error) {

	// new Main object
	o = &Main{Fs: fs, Opts: opts}
	if o.Opts == nil {
		o.Opts = inp.DefaultRunOptions()
	}

	// read input data
	o.Sim, err = inp.ReadSim(fs, simfilepath, alias)
	if err != nil {
		return nil, err
	}
	if o.Opts.DirOut != "" {
		o.Sim.DirOut = o.Opts.DirOut
	}

	// multiprocessing data
	o.Nproc = 1
	if mpi.IsOn() && o.Opts.Parallel {
		o.Rank = mpi.WorldRank()
		o.Nproc = mpi.WorldSize()
	}
	o.ShowMsg = o.Opts.Verbose && (o.Rank == 0)

	// message
	if o.ShowMsg {
		io.Pf("> Simulation (.sim) file read\n")
		io.Pf("%v", o.Sim)
	}

	// network partner
	if partner == nil && o.Sim.UsesNetwork() {
		partner, o.closer, err = NewPartner(o.Sim, o.Opts)
		if err != nil {
			return nil, err
		}
	}

	// process
	o.Proc, err = NewProcess(o.Sim, o.Rank, partner)
	if err != nil {
		o.close()
		return nil, err
	}
	if o.ShowMsg {
		io.Pf("> BHE process set: %d boundary conditions on all processors\n", o.NumBcsGlobal())
	}

	// assembler and coupler
	asm, err := NewAssembler(o.Sim, o.Proc.Devices, o.Proc.Dofs)
	if err != nil {
		o.close()
		return nil, err
	}
	o.Hist = out.NewHistory()
	o.Coupler = NewCoupler(o.Proc, asm)
	o.Coupler.Hist = o.Hist
	return
}

// NewPartner allocates the pipe network selected in the run options
func NewPartner(sim *inp.Simulation, opts *inp.RunOptions) (partner network.Partner, closer func() error, err error) {
	switch opts.Partner {
	case inp.PartnerLoop:
		load, err := sim.LoadFunc()
		if err != nil {
			return nil, nil, err
		}
		return network.NewLoop(&sim.Network, sim.Bhes, load), nil, nil
	case inp.PartnerWs:
		ws, err := network.DialWs(opts.Address)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("address", opts.Address).Info("connected to network partner")
		return ws, ws.Close, nil
	}
	return nil, nil, chk.Err("cannot find network partner named %q", opts.Partner)
}

// Run runs all coupling cycles from t=0 to t=Tf
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Running coupling cycles\n")
	}

	// time loop
	ctrl := o.Sim.Control
	nsteps := int(math.Ceil(ctrl.Tf/ctrl.Dt - 1e-10))
	tout := 0.0
	for k := 0; k <= nsteps; k++ {
		t := math.Min(float64(k)*ctrl.Dt, ctrl.Tf)
		err = o.Coupler.Step(t)
		if err != nil {
			return
		}
		if t >= tout-1e-10 {
			tout += ctrl.DtOut
			if o.ShowMsg {
				io.Pf("> t = %g\n", t)
				if o.Sim.Data.ListBcs {
					io.Pf("%v", o.Proc.Bcs.List(t, o.Coupler.X))
				}
			}
		}
	}
	return
}

// NumBcsGlobal returns the number of boundary conditions on all processors
func (o *Main) NumBcsGlobal() int {
	n := []float64{float64(o.Proc.Bcs.Len())}
	if o.Nproc > 1 {
		sum := make([]float64, 1)
		comm := mpi.NewCommunicator(nil)
		comm.AllReduceSum(sum, n)
		return int(sum[0])
	}
	return int(n[0])
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit closes the partner, prints final message with cpu time and saves the history
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// clean resources
	o.close()

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// skip if previous error is not nil
	if prevErr != nil {
		return prevErr
	}

	// save history
	fnkey := o.Sim.Key
	if o.Nproc > 1 {
		fnkey = io.Sf("%s_p%d", fnkey, o.Rank)
	}
	if err = o.Hist.Save(o.Fs, o.Sim.DirOut, fnkey); err != nil {
		return
	}
	if o.Opts.Plot {
		err = out.PlotHistory(o.Fs, o.Hist, o.Sim.DirOut, fnkey)
	}
	return
}

// close closes the network partner once
func (o *Main) close() {
	if o.closer == nil {
		return
	}
	if err := o.closer(); err != nil {
		log.WithError(err).Warn("cannot close network partner")
	}
	o.closer = nil
}
