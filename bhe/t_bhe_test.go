// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhe

import (
	"math"
	"testing"

	"github.com/bilke/ogs/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

var water = inp.FluidData{Rho: 992.92, Mu: 0.00067418, Cp: 4068, Lambda: 0.62863}

func data1U() *inp.BheData {
	return &inp.BheData{
		Type:     "1U",
		Length:   100,
		Diam:     0.15,
		FlowRate: 2e-4,
		TinIni:   10,
		Leg:      inp.PipeData{Diam: 0.0262, Wall: 0.0029, Lambda: 0.39},
		Spacing:  0.06,
		Fluid:    water,
		Grout:    inp.GroutData{Lambda: 2.3},
	}
}

func dataCoax(tag string) *inp.BheData {
	return &inp.BheData{
		Type:     tag,
		Length:   100,
		Diam:     0.216,
		FlowRate: 2e-4,
		Inner:    inp.PipeData{Diam: 0.0378, Wall: 0.0031, Lambda: 0.39},
		Outer:    inp.PipeData{Diam: 0.0964, Wall: 0.0087, Lambda: 0.39},
		Fluid:    water,
		Grout:    inp.GroutData{Lambda: 2.3},
	}
}

// kindCounter counts visited kinds
type kindCounter struct{ n1U, nCXA, nCXC int }

func (o *kindCounter) Visit1U(b *Bhe1U)   { o.n1U++ }
func (o *kindCounter) VisitCXA(b *BheCXA) { o.nCXA++ }
func (o *kindCounter) VisitCXC(b *BheCXC) { o.nCXC++ }

func Test_bhe01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bhe01. factory and visitation")

	devices, err := NewAll([]*inp.BheData{data1U(), dataCoax("CXA"), dataCoax("CXC"), data1U()})
	if err != nil {
		tst.Errorf("NewAll failed:\n%v", err)
		return
	}

	kinds := make([]int, len(devices))
	for i, d := range devices {
		chk.Int(tst, "index", d.Index(), i)
		kinds[i] = int(d.Kind())
	}
	chk.Ints(tst, "kinds", kinds, []int{int(Kind1U), int(KindCXA), int(KindCXC), int(Kind1U)})
	chk.Int(tst, "nu 1U", devices[0].NumUnknowns(), 4)
	chk.Int(tst, "nu CXA", devices[1].NumUnknowns(), 3)
	chk.Int(tst, "nu CXC", devices[2].NumUnknowns(), 3)

	var c kindCounter
	for _, d := range devices {
		Visit(d, &c)
	}
	chk.Int(tst, "visited 1U", c.n1U, 2)
	chk.Int(tst, "visited CXA", c.nCXA, 1)
	chk.Int(tst, "visited CXC", c.nCXC, 1)

	chk.String(tst, Kind1U.String(), "1U")
	chk.String(tst, KindCXA.String(), "CXA")
	chk.String(tst, KindCXC.String(), "CXC")
}

func Test_bhe02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bhe02. unknown type")

	dat := data1U()
	dat.Type = "2U"
	_, err := New(0, dat)
	if err == nil {
		tst.Errorf("New should have failed with unknown type\n")
	}
	_, err = NewAll([]*inp.BheData{data1U(), dat})
	if err == nil {
		tst.Errorf("NewAll should have failed with unknown type\n")
	}
}

func Test_bhe03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bhe03. idempotent update of coefficients")

	for _, dat := range []*inp.BheData{data1U(), dataCoax("CXA"), dataCoax("CXC")} {
		d, err := New(0, dat)
		if err != nil {
			tst.Errorf("New failed:\n%v", err)
			return
		}
		d.UpdateHeatTransferCoefficients(3.7e-4)
		first := d.Coefficients()
		d.UpdateHeatTransferCoefficients(1e-3)
		d.UpdateHeatTransferCoefficients(3.7e-4)
		d.UpdateHeatTransferCoefficients(3.7e-4)
		second := d.Coefficients()
		chk.Int(tst, "number of coefficients", len(second), len(first))
		for i := range first {
			if math.Float64bits(first[i]) != math.Float64bits(second[i]) {
				tst.Errorf("%s: coefficient %d is not bit-identical: %v != %v\n", d.Kind(), i, first[i], second[i])
			}
		}
		chk.Float64(tst, "flow rate", 1e-17, d.FlowRate(), 3.7e-4)
		io.Pforan("%s: %v\n", d.Kind(), first)
	}
}

func Test_bhe04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bhe04. coefficients are positive and grow with flow rate")

	for _, dat := range []*inp.BheData{data1U(), dataCoax("CXA"), dataCoax("CXC")} {
		d, err := New(0, dat)
		if err != nil {
			tst.Errorf("New failed:\n%v", err)
			return
		}
		var prev float64
		for _, q := range []float64{0, 2e-4, 4e-4, 1e-3} {
			d.UpdateHeatTransferCoefficients(q)
			cfs := d.Coefficients()
			for i, c := range cfs {
				if c <= 0 || math.IsInf(c, 0) || math.IsNaN(c) {
					tst.Errorf("%s: coefficient %d is invalid at q=%g: %v\n", d.Kind(), i, q, c)
				}
			}
			if cfs[0] < prev {
				tst.Errorf("%s: fluid coefficient decreased with flow rate: %v < %v\n", d.Kind(), cfs[0], prev)
			}
			prev = cfs[0]
		}
	}
}

func Test_bhe05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bhe05. flow regimes")

	f := &water
	d, L := 0.0262, 100.0
	pr := prandtl(f)
	nuLo := nusselt(ReLaminar-1e-9, pr, d, L)
	nuHi := nusselt(ReLaminar, pr, d, L)
	chk.Float64(tst, "continuity @ laminar limit", 1e-6, nuLo, nuHi)
	nuLo = nusselt(ReTurbulent-1e-9, pr, d, L)
	nuHi = nusselt(ReTurbulent, pr, d, L)
	chk.Float64(tst, "continuity @ turbulent limit", 1e-6, nuLo, nuHi)
	chk.Float64(tst, "no flow", 1e-13, nusselt(0, pr, d, L), 3.66)

	fl := pipeFlow(2e-4, d, L, f)
	chk.Float64(tst, "velocity", 1e-12, fl.V, 2e-4/(math.Pi*d*d/4))
	if fl.Re < ReTurbulent {
		tst.Errorf("flow should be turbulent. Re=%g\n", fl.Re)
	}
	fl = pipeFlow(-2e-4, d, L, f)
	chk.Float64(tst, "reversed flow velocity", 1e-12, fl.V, 2e-4/(math.Pi*d*d/4))
}

func Test_bhe06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bhe06. coupling flag and coaxial channels")

	dat := dataCoax("CXA")
	dat.UseNetwork = true
	cxa, _ := New(0, dat)
	cxc, _ := New(1, dataCoax("CXC"))
	chk.Bools(tst, "coupled", []bool{cxa.UsesExternalCoupling(), cxc.UsesExternalCoupling()}, []bool{true, false})
	chk.Bools(tst, "any coupled", []bool{AnyCoupled([]Device{cxa, cxc}), AnyCoupled([]Device{cxc})}, []bool{true, false})

	a := cxa.(*BheCXA)
	c := cxc.(*BheCXC)
	chk.Float64(tst, "CXA inflow through annulus", 1e-17, a.InflowChannel().V, a.Annulus.V)
	chk.Float64(tst, "CXC inflow through inner pipe", 1e-17, c.InflowChannel().V, c.Inner.V)

	// the same geometry gives the same resistances; only the meaning of the channels differs
	chk.Array(tst, "same coefficients", 1e-15, a.Coefficients(), c.Coefficients())
}
