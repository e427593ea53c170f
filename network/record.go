// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package network implements the data exchange with the pipe network solver
package network

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Record holds the data exchanged between boundary conditions and the network partner.
// Columns are parallel: row i of every column refers to the boundary node NodeId(i).
//
//	Ownership and ordering:
//	 * rows are appended only during setup, one per coupled BHE; Seal ends setup
//	 * the partner writes Tin, Tout and FlowRate once per coupling cycle through SetRow,
//	   between two assembly passes; boundary conditions only read them
//	 * every boundary condition writes the time; all of them write the same time
//	The record is process-local and is never shared between partitions, so it has no lock.
type Record struct {
	nodeIds  []int     // boundary node ids; the outlet global index of each BHE
	tin      []float64 // inflow temperature
	tout     []float64 // outflow temperature
	flowRate []float64 // flow rate
	t        float64   // current time of the coupling
	sealed   bool
}

// recordJSON is the wire form of a record
type recordJSON struct {
	NodeIds  []int     `json:"node_ids"`
	Tin      []float64 `json:"t_in"`
	Tout     []float64 `json:"t_out"`
	FlowRate []float64 `json:"flow_rate"`
	T        float64   `json:"t"`
}

// NewRecord returns a record with zero rows
func NewRecord() *Record {
	return &Record{
		nodeIds:  make([]int, 0),
		tin:      make([]float64, 0),
		tout:     make([]float64, 0),
		flowRate: make([]float64, 0),
	}
}

// AppendBoundaryNode adds a row for the given boundary node. The values of the new row are
// NaN until the partner writes them.
func (o *Record) AppendBoundaryNode(nodeId int) (row int, err error) {
	if o.sealed {
		return -1, chk.Err("cannot append boundary node %d: exchange record is sealed", nodeId)
	}
	if _, found := o.LookupRow(nodeId); found {
		return -1, chk.Err("boundary node %d is already in the exchange record", nodeId)
	}
	nan := math.NaN()
	o.nodeIds = append(o.nodeIds, nodeId)
	o.tin = append(o.tin, nan)
	o.tout = append(o.tout, nan)
	o.flowRate = append(o.flowRate, nan)
	return len(o.nodeIds) - 1, nil
}

// Seal ends the setup phase; no rows can be appended afterwards
func (o *Record) Seal() { o.sealed = true }

// Sealed tells whether setup has finished
func (o *Record) Sealed() bool { return o.sealed }

// LookupRow returns the row of a boundary node
func (o *Record) LookupRow(nodeId int) (row int, found bool) {
	for i, id := range o.nodeIds {
		if id == nodeId {
			return i, true
		}
	}
	return -1, false
}

// Populated tells whether the partner has written the values of a row
func (o *Record) Populated(row int) bool {
	return !math.IsNaN(o.tin[row]) && !math.IsNaN(o.flowRate[row])
}

// SetRow sets the values of a row. Only the partner calls this.
func (o *Record) SetRow(row int, tin, tout, flowRate float64) {
	o.tin[row] = tin
	o.tout[row] = tout
	o.flowRate[row] = flowRate
}

// NodeId returns the boundary node of a row
func (o *Record) NodeId(row int) int { return o.nodeIds[row] }

// NodeIds returns a copy of the boundary nodes of all rows
func (o *Record) NodeIds() []int { return append([]int{}, o.nodeIds...) }

// Tin returns the inflow temperature of a row
func (o *Record) Tin(row int) float64 { return o.tin[row] }

// Tout returns the outflow temperature of a row
func (o *Record) Tout(row int) float64 { return o.tout[row] }

// FlowRate returns the flow rate of a row
func (o *Record) FlowRate(row int) float64 { return o.flowRate[row] }

// WriteTime sets the current time
func (o *Record) WriteTime(t float64) { o.t = t }

// Time returns the current time
func (o *Record) Time() float64 { return o.t }

// Len returns the number of rows
func (o *Record) Len() int { return len(o.nodeIds) }

// Check checks that all columns have the same length
func (o *Record) Check() error {
	n := len(o.nodeIds)
	if len(o.tin) != n || len(o.tout) != n || len(o.flowRate) != n {
		return chk.Err("exchange record columns have different lengths: node_ids=%d t_in=%d t_out=%d flow_rate=%d",
			n, len(o.tin), len(o.tout), len(o.flowRate))
	}
	return nil
}

// Snapshot returns a deep copy of the record
func (o *Record) Snapshot() *Record {
	s := &Record{
		nodeIds:  make([]int, len(o.nodeIds)),
		tin:      make([]float64, len(o.tin)),
		tout:     make([]float64, len(o.tout)),
		flowRate: make([]float64, len(o.flowRate)),
		t:        o.t,
		sealed:   o.sealed,
	}
	copy(s.nodeIds, o.nodeIds)
	copy(s.tin, o.tin)
	copy(s.tout, o.tout)
	copy(s.flowRate, o.flowRate)
	return s
}

// MarshalJSON encodes the populated rows only
func (o *Record) MarshalJSON() ([]byte, error) {
	w := recordJSON{
		NodeIds:  make([]int, 0, len(o.nodeIds)),
		Tin:      make([]float64, 0, len(o.nodeIds)),
		Tout:     make([]float64, 0, len(o.nodeIds)),
		FlowRate: make([]float64, 0, len(o.nodeIds)),
		T:        o.t,
	}
	for i, id := range o.nodeIds {
		if !o.Populated(i) || math.IsNaN(o.tout[i]) {
			continue
		}
		w.NodeIds = append(w.NodeIds, id)
		w.Tin = append(w.Tin, o.tin[i])
		w.Tout = append(w.Tout, o.tout[i])
		w.FlowRate = append(w.FlowRate, o.flowRate[i])
	}
	return json.Marshal(&w)
}

// UnmarshalJSON decodes a record; the result is sealed
func (o *Record) UnmarshalJSON(b []byte) (err error) {
	var w recordJSON
	if err = json.Unmarshal(b, &w); err != nil {
		return
	}
	r := Record{nodeIds: w.NodeIds, tin: w.Tin, tout: w.Tout, flowRate: w.FlowRate, t: w.T, sealed: true}
	if err = r.Check(); err != nil {
		return
	}
	*o = r
	return
}

// String returns a table with the contents of the record
func (o *Record) String() (l string) {
	l = io.Sf("%8s%16s%16s%16s   t=%g\n", "node", "T_in", "T_out", "flow_rate", o.t)
	for i, id := range o.nodeIds {
		l += io.Sf("%8d%16.8f%16.8f%16.8e\n", id, o.tin[i], o.tout[i], o.flowRate[i])
	}
	return
}
