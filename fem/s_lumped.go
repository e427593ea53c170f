// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/bilke/ogs/ana"
	"github.com/bilke/ogs/bhe"
	"github.com/bilke/ogs/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// LumpedGround computes the outflow temperature of each BHE from a steady energy balance
// between the fluid, the grout and the undisturbed soil:
//
//	ρ c q (Tout - Tin) = Kfg L (Tg - (Tin+Tout)/2)
//	Kfg L (Tg - (Tin+Tout)/2) = Kgs L (Tsoil - Tg)
//
// where Kfg and Kgs are the fluid-grout and grout-soil coefficients of the BHE. If Soil is set,
// Tsoil is replaced by the borehole wall temperature obtained by superposing the line source
// responses to the heat rates of all previous steps:
//
//	Tb(t) = Tsoil - Σ_k (q'_k - q'_{k-1}) G(D/2, t - t_k)
type LumpedGround struct {
	Dirichlet
	Tsoil   float64         // undisturbed soil temperature
	Soil    *ana.LineSource // ground response; nil means steady soil
	Devices []bhe.Device    // all BHEs
	Dofs    [][2]int        // {inlet, outlet} of each BHE on this processor

	// load history
	times [][]float64 // [ndevices][nsteps] times of extracted heat rates
	loads [][]float64 // [ndevices][nsteps] extracted heat rate per length [W/m]
}

// add assembler to factory
func init() {
	allocators["lumped"] = func(sim *inp.Simulation, devices []bhe.Device, dofs [][2]int) (Assembler, error) {
		o := &LumpedGround{Tsoil: sim.Data.Tsoil, Devices: devices, Dofs: dofs}
		s := sim.Materials.Solid
		if s.Lambda > 0 {
			o.Soil = new(ana.LineSource)
			if err := o.Soil.Init(s.Lambda, s.Rho, s.Cp); err != nil {
				return nil, chk.Err("cannot set ground response of lumped assembler:\n%v", err)
			}
		} else {
			log.Debug("no solid conductivity given; lumped assembler uses steady soil")
		}
		o.times = make([][]float64, len(devices))
		o.loads = make([][]float64, len(devices))
		return o, nil
	}
}

// Solve imposes the essential values and then computes the outflow of all BHEs on this
// processor. Outflow values given in vals are overwritten.
func (o *LumpedGround) Solve(t float64, ids []int, vals []float64, x la.Vector) (err error) {
	if err = o.Dirichlet.Solve(t, ids, vals, x); err != nil {
		return
	}
	for i, d := range o.Devices {
		in, out := o.Dofs[i][0], o.Dofs[i][1]
		if in < 0 || out < 0 {
			continue
		}
		x[out], _, err = o.balance(d, x[in], o.WallTemperature(i, t))
		if err != nil {
			return chk.Err("cannot compute outflow of BHE %d at t=%g:\n%v", d.Index(), t, err)
		}
		o.record(i, t, d, x[in], x[out])
	}
	return
}

// Balance returns the outflow and grout temperatures of a BHE for a given inflow temperature
// with the borehole wall at the undisturbed soil temperature
func (o *LumpedGround) Balance(d bhe.Device, tin float64) (tout, tg float64, err error) {
	return o.balance(d, tin, o.Tsoil)
}

// WallTemperature returns the borehole wall temperature of BHE i at time t due to the heat
// extracted in previous steps
func (o *LumpedGround) WallTemperature(i int, t float64) (tb float64) {
	tb = o.Tsoil
	if o.Soil == nil || i >= len(o.times) {
		return
	}
	r := o.Devices[i].Data().Diam / 2
	prev := 0.0
	for k, tk := range o.times[i] {
		if tk >= t {
			break
		}
		tb -= (o.loads[i][k] - prev) * o.Soil.G(r, t-tk)
		prev = o.loads[i][k]
	}
	return
}

// record stores the heat rate per length extracted by BHE i at time t. A repeated time
// replaces the last entry
func (o *LumpedGround) record(i int, t float64, d bhe.Device, tin, tout float64) {
	if o.Soil == nil {
		return
	}
	dat := d.Data()
	q := dat.Fluid.Rho * dat.Fluid.Cp * math.Abs(d.FlowRate()) * (tout - tin) / dat.Length
	n := len(o.times[i])
	if n > 0 && math.Abs(o.times[i][n-1]-t) < 1e-10 {
		o.loads[i][n-1] = q
		return
	}
	o.times[i] = append(o.times[i], t)
	o.loads[i] = append(o.loads[i], q)
}

// balance solves the energy balance with the borehole wall at temperature tb
func (o *LumpedGround) balance(d bhe.Device, tin, tb float64) (tout, tg float64, err error) {
	var k conductances
	bhe.Visit(d, &k)
	dat := d.Data()
	L := dat.Length
	rc := dat.Fluid.Rho * dat.Fluid.Cp * math.Abs(d.FlowRate())
	a := mat.NewDense(2, 2, []float64{
		rc + k.fg*L/2, -k.fg * L,
		-k.fg * L / 2, (k.fg + k.gs) * L,
	})
	b := mat.NewVecDense(2, []float64{
		rc*tin - k.fg*L*tin/2,
		k.gs*L*tb + k.fg*L*tin/2,
	})
	var y mat.VecDense
	if err = y.SolveVec(a, b); err != nil {
		return
	}
	return y.AtVec(0), y.AtVec(1), nil
}

// conductances collects the fluid-grout and grout-soil coefficients of each kind [W/m/K]
type conductances struct{ fg, gs float64 }

// Visit1U adds both legs; each leg has its own grout zone
func (o *conductances) Visit1U(b *bhe.Bhe1U) {
	c := b.Coefficients()
	o.fg, o.gs = c[0]+c[1], 2*c[3]
}

func (o *conductances) VisitCXA(b *bhe.BheCXA) {
	c := b.Coefficients()
	o.fg, o.gs = c[1], c[2]
}

func (o *conductances) VisitCXC(b *bhe.BheCXC) {
	c := b.Coefficients()
	o.fg, o.gs = c[1], c[2]
}
