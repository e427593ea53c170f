// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/bilke/ogs/bhe"
	"github.com/bilke/ogs/inp"
	"github.com/bilke/ogs/network"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/hashicorp/go-multierror"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// fakeNetwork returns given flow rates and sets Tin = Tout - Dt on every update
type fakeNetwork struct {
	flows   []float64
	dt      float64
	nsolve  int
	nupdate int
}

func (o *fakeNetwork) Solve() ([]float64, error) {
	o.nsolve++
	return o.flows, nil
}

func (o *fakeNetwork) Update(t float64, rec *network.Record, outlets []network.Outlet) error {
	o.nupdate++
	for _, out := range outlets {
		row, _ := rec.LookupRow(out.Node)
		rec.SetRow(row, out.T-o.dt, out.T, o.flows[out.Device])
	}
	return nil
}

func bheData(coupled bool) *inp.BheData {
	return &inp.BheData{
		Type:       "1U",
		Length:     100,
		Diam:       0.15,
		FlowRate:   2e-4,
		TinIni:     10,
		UseNetwork: coupled,
		Leg:        inp.PipeData{Diam: 0.0262, Wall: 0.0029, Lambda: 0.39},
		Spacing:    0.06,
		Fluid:      inp.FluidData{Rho: 992.92, Mu: 0.00067418, Cp: 4068, Lambda: 0.62863},
		Grout:      inp.GroutData{Lambda: 2.3},
	}
}

func newSim(coupled ...bool) (sim *inp.Simulation) {
	sim = &inp.Simulation{
		Data:    inp.Data{Tsoil: 12, Asm: "lumped"},
		Network: inp.NetworkData{Power: 1000},
	}
	for _, c := range coupled {
		sim.Bhes = append(sim.Bhes, bheData(c))
	}
	sim.Control.SetDefault()
	return
}

func newDevice(tst *testing.T, idx int, coupled bool) bhe.Device {
	d, err := bhe.New(idx, bheData(coupled))
	if err != nil {
		tst.Fatalf("cannot allocate BHE:\n%v", err)
	}
	return d
}

func Test_partition01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("partition01. one BHE on one partition")

	d := newDevice(tst, 0, true)
	rec := network.NewRecord()

	// both ports
	bc, err := CreateInflowBc(0, [2]int{5, 9}, d, rec)
	if err != nil {
		tst.Errorf("CreateInflowBc failed:\n%v", err)
		return
	}
	if bc == nil {
		tst.Errorf("boundary condition should have been created\n")
		return
	}
	chk.Ints(tst, "pair", []int{bc.Inlet, bc.Outlet}, []int{5, 9})
	chk.Int(tst, "node id", bc.NodeId, 9)
	chk.Ints(tst, "record nodes", rec.NodeIds(), []int{9})

	// no port
	bc, err = CreateInflowBc(0, [2]int{-1, -1}, d, rec)
	if err != nil {
		tst.Errorf("BHE outside partition is not an error:\n%v", err)
	}
	if bc != nil {
		tst.Errorf("no boundary condition should have been created\n")
	}

	// one port
	for _, pair := range [][2]int{{-1, 9}, {5, -1}} {
		bc, err = CreateInflowBc(3, pair, d, rec)
		if err == nil {
			tst.Errorf("pair %v should have failed\n", pair)
		}
		if bc != nil {
			tst.Errorf("no boundary condition should have been created\n")
		}
		io.Pforan("%v\n", err)
	}
	chk.Int(tst, "record length", rec.Len(), 1)

	// same node twice
	_, err = CreateInflowBc(0, [2]int{5, 9}, d, rec)
	if err == nil {
		tst.Errorf("duplicated node should have failed\n")
	}
}

func Test_partition02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("partition02. two BHEs on two partitions")

	sim := newSim(true, true)
	sim.Partitions = []*inp.PartitionData{
		{Rank: 0, Dofs: [][2]int{{5, 9}, {-1, -1}}},
		{Rank: 1, Dofs: [][2]int{{-1, -1}, {5, 9}}},
	}

	var total int
	for rank, idx := range []int{0, 1} {
		proc, err := NewProcess(sim, rank, &fakeNetwork{flows: []float64{2e-4, 3e-4}})
		if err != nil {
			tst.Errorf("NewProcess failed on processor %d:\n%v", rank, err)
			return
		}
		chk.Int(tst, "number of bcs", proc.Bcs.Len(), 1)
		bc := proc.Bcs.Bcs[0]
		chk.Int(tst, "device", bc.Device.Index(), idx)
		chk.Ints(tst, "pair", []int{bc.Inlet, bc.Outlet}, []int{5, 9})
		if !proc.Rec.Sealed() {
			tst.Errorf("record should be sealed after setup\n")
		}
		total += proc.Bcs.Len()
	}
	chk.Int(tst, "total number of bcs", total, 2)
}

func Test_partition03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("partition03. all cut BHEs are reported")

	devices := []bhe.Device{newDevice(tst, 0, true), newDevice(tst, 1, true), newDevice(tst, 2, false), newDevice(tst, 3, true)}
	dofs := [][2]int{{-1, 4}, {1, 2}, {-1, 7}, {8, -1}}
	err := CheckAllPartitions(2, devices, dofs)
	if err == nil {
		tst.Errorf("partition check should have failed\n")
		return
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		tst.Errorf("error should aggregate all BHEs. got %T\n", err)
		return
	}
	chk.Int(tst, "number of cut BHEs", len(merr.Errors), 2) // BHE 2 is not coupled
	io.Pforan("%v\n", err)

	if err = CheckAllPartitions(0, devices, dofs[:2]); err == nil {
		tst.Errorf("dof table with wrong size should have failed\n")
	}

	sim := newSim(true, true)
	sim.Partitions = []*inp.PartitionData{{Rank: 0, Dofs: [][2]int{{0, 1}, {2, -1}}}}
	if _, err = NewProcess(sim, 0, &fakeNetwork{flows: []float64{1e-4, 1e-4}}); err == nil {
		tst.Errorf("NewProcess should have failed with cut BHE\n")
	}
}

func Test_inflow01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("inflow01. values from the record")

	rec := network.NewRecord()
	bc, err := CreateInflowBc(0, [2]int{5, 9}, newDevice(tst, 0, true), rec)
	if err != nil {
		tst.Errorf("CreateInflowBc failed:\n%v", err)
		return
	}
	rec.Seal()
	rec.SetRow(0, 15.0, 12.0, 0.002)
	rec.WriteTime(0)

	x := la.NewVector(10)
	x[9] = 12.5
	ids, vals := bc.EssentialBcValues(10.0, x)
	chk.Ints(tst, "ids", ids, []int{5, 9})
	chk.Int(tst, "number of values", len(vals), 2)
	if vals[0] != 15.0 {
		tst.Errorf("inflow value should be exactly 15. got %v\n", vals[0])
	}
	chk.Float64(tst, "outflow", 1e-17, vals[1], 12.5)
	chk.Float64(tst, "record time", 1e-17, rec.Time(), 10.0)
	chk.Float64(tst, "flow rate of device", 1e-17, bc.Device.FlowRate(), 0.002)

	// record values are read at call time
	rec.SetRow(0, 14.25, 12.0, 0.002)
	_, vals = bc.EssentialBcValues(11.0, x)
	chk.Float64(tst, "new inflow", 1e-17, vals[0], 14.25)
	chk.Float64(tst, "record time", 1e-17, rec.Time(), 11.0)
}

func Test_inflow02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("inflow02. missing rows")

	// node is not in the record
	rec := network.NewRecord()
	rec.AppendBoundaryNode(21)
	rec.Seal()
	rec.SetRow(0, 30, 30, 1)
	d := newDevice(tst, 0, true)
	bc := NewInflowBc([2]int{5, 9}, d, rec)
	x := la.NewVector(10)
	coefs := d.Coefficients()
	ids, vals := bc.EssentialBcValues(7, x)
	chk.Ints(tst, "ids", ids, []int{5, 9})
	chk.Array(tst, "vals", 1e-17, vals, []float64{10, 0})
	chk.Float64(tst, "record time", 1e-17, rec.Time(), 7)
	chk.Array(tst, "coefficients unchanged", 1e-17, d.Coefficients(), coefs)

	// row exists but the partner has not written it yet
	rec = network.NewRecord()
	bc, _ = CreateInflowBc(0, [2]int{5, 9}, d, rec)
	rec.Seal()
	_, vals = bc.EssentialBcValues(1, x)
	chk.Float64(tst, "initial inflow", 1e-17, vals[0], 10)
	if math.IsNaN(vals[0]) {
		tst.Errorf("inflow must not be NaN\n")
	}

	// the last value is retained
	rec.SetRow(0, 15, 12, 0.002)
	_, vals = bc.EssentialBcValues(2, x)
	chk.Float64(tst, "inflow", 1e-17, vals[0], 15)
	other := network.NewRecord()
	other.AppendBoundaryNode(99)
	other.SetRow(0, 20, 12, 0.002)
	bc.Rec = other
	_, vals = bc.EssentialBcValues(3, x)
	chk.Float64(tst, "retained inflow", 1e-17, vals[0], 15)
	chk.Float64(tst, "retained inflow", 1e-17, bc.Inflow(), 15)
}

func Test_inflow03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("inflow03. activity interval")

	dat := bheData(true)
	dat.Tini, dat.Tfin = 10, 20
	d, _ := bhe.New(0, dat)
	rec := network.NewRecord()
	bc, _ := CreateInflowBc(0, [2]int{0, 1}, d, rec)
	chk.Bools(tst, "active at t=5,10,20,21", []bool{bc.Active(5), bc.Active(10), bc.Active(20), bc.Active(21)}, []bool{false, true, true, false})

	bcs := NewEssentialBcs()
	bcs.Add(bc)
	x := la.NewVector(2)
	ids, _ := bcs.Values(5, x)
	chk.Int(tst, "inactive", len(ids), 0)
	chk.Int(tst, "no outlets", len(bcs.Outlets(5, x)), 0)
	ids, _ = bcs.Values(15, x)
	chk.Ints(tst, "active", ids, []int{0, 1})

	dat.Tfin = 0
	if !bc.Active(1e9) {
		tst.Errorf("zero final time should mean active forever\n")
	}
}

func Test_essen01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("essen01. collection of boundary conditions")

	rec := network.NewRecord()
	bcs := NewEssentialBcs()
	for i, pair := range [][2]int{{6, 7}, {0, 1}, {3, 2}} {
		bc, err := CreateInflowBc(0, pair, newDevice(tst, i, true), rec)
		if err != nil {
			tst.Errorf("CreateInflowBc failed:\n%v", err)
			return
		}
		bcs.Add(bc)
	}
	rec.Seal()
	rec.SetRow(0, 7.5, 9, 1e-4)

	x := la.Vector{0, 1, 2, 3, 4, 5, 6, 7}
	ids, vals := bcs.Values(0, x)
	chk.Ints(tst, "ids", ids, []int{0, 1, 3, 2, 6, 7})
	chk.Array(tst, "vals", 1e-17, vals, []float64{10, 1, 10, 2, 7.5, 7})

	outlets := bcs.Outlets(0, x)
	chk.Int(tst, "number of outlets", len(outlets), 3)
	chk.Int(tst, "outlet node", outlets[2].Node, 7)
	chk.Int(tst, "outlet device", outlets[2].Device, 0)
	chk.Float64(tst, "outlet T", 1e-17, outlets[2].T, 7)
	io.Pf("%v", bcs.List(0, x))
}

func Test_gateway01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gateway01. flow rates")

	// fan-out
	net := &fakeNetwork{flows: []float64{1e-4, 3e-4}}
	devices := []bhe.Device{newDevice(tst, 0, true), newDevice(tst, 1, true)}
	if err := ApplyFlowRates(net, devices); err != nil {
		tst.Errorf("ApplyFlowRates failed:\n%v", err)
		return
	}
	chk.Float64(tst, "q0", 1e-17, devices[0].FlowRate(), 1e-4)
	chk.Float64(tst, "q1", 1e-17, devices[1].FlowRate(), 3e-4)

	// mismatch: fatal before any boundary condition exists
	net = &fakeNetwork{flows: []float64{1e-4, 3e-4, 2e-4}}
	proc, err := NewProcess(newSim(true, false), 0, net)
	if err == nil {
		tst.Errorf("flow rate count mismatch should have failed\n")
	}
	if proc != nil {
		tst.Errorf("no process should have been returned\n")
	}
	chk.Int(tst, "solve calls", net.nsolve, 1)
	chk.Int(tst, "update calls", net.nupdate, 0)
	io.Pforan("%v\n", err)

	// coupled BHE without partner
	if _, err = NewProcess(newSim(false, true), 0, nil); err == nil {
		tst.Errorf("coupled BHE without partner should have failed\n")
	}

	// no coupled BHE: the solver is not called
	net = &fakeNetwork{flows: []float64{1}}
	proc, err = NewProcess(newSim(false, false), 0, net)
	if err != nil {
		tst.Errorf("NewProcess failed:\n%v", err)
		return
	}
	chk.Int(tst, "solve calls", net.nsolve, 0)
	chk.Int(tst, "number of bcs", proc.Bcs.Len(), 0)
	if proc.Partner != nil {
		tst.Errorf("uncoupled process should have no partner\n")
	}
}
