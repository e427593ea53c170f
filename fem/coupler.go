// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/bilke/ogs/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	log "github.com/sirupsen/logrus"
)

// Coupler runs coupling cycles between the assembler and the pipe network
//
//	One cycle at time t:
//	 1. boundary conditions read the record and give the essential values
//	 2. the assembler computes the solution
//	 3. the partner reads the outflow temperatures and writes the record
//	so the record is never written while boundary conditions read it.
type Coupler struct {
	Proc *Process     // BHE process
	Asm  Assembler    // assembler
	X    la.Vector    // solution
	Hist *out.History // history of the record; nil means no history. Empty records are not stored
}

// NewCoupler returns a new coupler with the solution initialised with the soil temperature and
// the initial inflow temperature of every BHE
func NewCoupler(proc *Process, asm Assembler) (o *Coupler) {
	o = &Coupler{Proc: proc, Asm: asm}
	o.X = la.NewVector(proc.NumDofs())
	o.X.Fill(proc.Sim.Data.Tsoil)
	for i, d := range proc.Devices {
		in := proc.Dofs[i][0]
		if in >= 0 {
			o.X[in] = d.InflowIni()
		}
	}
	return
}

// Step runs one coupling cycle at time t
func (o *Coupler) Step(t float64) (err error) {
	ids, vals := o.Proc.Bcs.Values(t, o.X)
	if err = o.Asm.Solve(t, ids, vals, o.X); err != nil {
		return chk.Err("assembler failed at t=%g:\n%v", t, err)
	}
	outlets := o.Proc.Bcs.Outlets(t, o.X)
	if o.Proc.Partner != nil && len(outlets) > 0 {
		if err = o.Proc.Partner.Update(t, o.Proc.Rec, outlets); err != nil {
			return chk.Err("network partner failed at t=%g:\n%v", t, err)
		}
	}
	log.WithFields(log.Fields{"rank": o.Proc.Rank, "t": t, "bcs": len(ids) / 2}).Debug("coupling cycle done")
	if o.Hist != nil && o.Proc.Rec.Len() > 0 {
		o.Hist.Push(o.Proc.Rec)
	}
	return
}
