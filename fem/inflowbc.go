// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/bilke/ogs/bhe"
	"github.com/bilke/ogs/network"
	"github.com/cpmech/gosl/la"
	log "github.com/sirupsen/logrus"
)

// InflowBc implements the essential boundary condition at the ports of a BHE coupled to the
// pipe network. The inflow temperature is read from the exchange record; the outflow
// temperature is the current value of the solution.
type InflowBc struct {
	Inlet  int             // global index of the inflow port
	Outlet int             // global index of the outflow port
	NodeId int             // row key in the exchange record; equal to Outlet
	Device bhe.Device      // BHE
	Rec    *network.Record // exchange record shared by all BCs of this processor
	tin    float64         // last inflow temperature
}

// NewInflowBc returns a new boundary condition. The record is not modified.
func NewInflowBc(pair [2]int, device bhe.Device, rec *network.Record) *InflowBc {
	return &InflowBc{
		Inlet:  pair[0],
		Outlet: pair[1],
		NodeId: pair[1],
		Device: device,
		Rec:    rec,
		tin:    device.InflowIni(),
	}
}

// CreateInflowBc creates the boundary condition of a BHE on this partition and appends its
// boundary node to the record
//
//	Returns nil and no error if neither port is on this partition.
func CreateInflowBc(rank int, pair [2]int, device bhe.Device, rec *network.Record) (bc *InflowBc, err error) {
	present, err := CheckPartition(device.Index(), rank, pair)
	if err != nil || !present {
		return nil, err
	}
	bc = NewInflowBc(pair, device, rec)
	if _, err = rec.AppendBoundaryNode(bc.NodeId); err != nil {
		return nil, err
	}
	return
}

// Active tells whether the boundary condition applies at time t
func (o *InflowBc) Active(t float64) bool {
	dat := o.Device.Data()
	if t < dat.Tini {
		return false
	}
	if dat.Tfin > 0 && t > dat.Tfin {
		return false
	}
	return true
}

// Inflow returns the last inflow temperature
func (o *InflowBc) Inflow() float64 { return o.tin }

// EssentialBcValues returns the inflow and outflow pairs, in this order
//
//	The inflow value comes from the record row of this BC. If the row is missing or the
//	partner has not written it yet, the previous inflow value is kept. When the row is
//	found, the coefficients of the BHE are updated for the flow rate of the row.
func (o *InflowBc) EssentialBcValues(t float64, x la.Vector) (ids []int, vals []float64) {
	if row, found := o.Rec.LookupRow(o.NodeId); found && o.Rec.Populated(row) {
		o.tin = o.Rec.Tin(row)
		o.Device.UpdateHeatTransferCoefficients(o.Rec.FlowRate(row))
	} else {
		log.WithFields(log.Fields{"bhe": o.Device.Index(), "node": o.NodeId, "found": found}).Debug("no network data; keeping inflow")
	}
	o.Rec.WriteTime(t)
	return []int{o.Inlet, o.Outlet}, []float64{o.tin, x[o.Outlet]}
}
