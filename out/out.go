// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output handling of the coupling history for analyses and plotting
package out

import (
	"path/filepath"

	"github.com/bilke/ogs/network"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/afero"
)

// constants
var (
	TolT = 1e-3 // tolerance to compare times
)

// History holds snapshots of the exchange record taken at the end of coupling cycles
type History struct {
	Records []*network.Record // snapshots
}

// NewHistory returns an empty history
func NewHistory() *History {
	return &History{Records: make([]*network.Record, 0)}
}

// Push stores a copy of the record
func (o *History) Push(rec *network.Record) {
	o.Records = append(o.Records, rec.Snapshot())
}

// Len returns the number of snapshots
func (o *History) Len() int { return len(o.Records) }

// Times returns the time of all snapshots
func (o *History) Times() (times []float64) {
	times = make([]float64, len(o.Records))
	for i, r := range o.Records {
		times[i] = r.Time()
	}
	return
}

// NodeIds returns all boundary nodes found in the history, in order of appearance
func (o *History) NodeIds() (ids []int) {
	seen := make(map[int]bool)
	for _, r := range o.Records {
		for _, id := range r.NodeIds() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return
}

// Series returns the values of one boundary node along time
//
//	Snapshots where the row is missing or was not written by the partner yet are skipped.
func (o *History) Series(nodeId int) (t, tin, tout, flowRate []float64) {
	for _, r := range o.Records {
		row, found := r.LookupRow(nodeId)
		if !found || !r.Populated(row) {
			continue
		}
		t = append(t, r.Time())
		tin = append(tin, r.Tin(row))
		tout = append(tout, r.Tout(row))
		flowRate = append(flowRate, r.FlowRate(row))
	}
	return
}

// At returns the snapshot closest to time t, within TolT
func (o *History) At(t float64) (rec *network.Record, found bool) {
	for _, r := range o.Records {
		if r.Time() > t-TolT && r.Time() < t+TolT {
			return r, true
		}
	}
	return nil, false
}

// Save saves the history as a table; one line per boundary node and snapshot
//
//	Rows not written yet are saved as NaN.
func (o *History) Save(fs afero.Fs, dirout, fnkey string) (err error) {
	if err = fs.MkdirAll(dirout, 0777); err != nil {
		return chk.Err("cannot create output directory %q:\n%v", dirout, err)
	}
	l := io.Sf("%16s%8s%16s%16s%16s\n", "t", "node", "T_in", "T_out", "flow_rate")
	for _, r := range o.Records {
		for i := 0; i < r.Len(); i++ {
			l += io.Sf("%16g%8d%16.8f%16.8f%16.8e\n", r.Time(), r.NodeId(i), r.Tin(i), r.Tout(i), r.FlowRate(i))
		}
	}
	fn := filepath.Join(dirout, fnkey+".txt")
	if err = afero.WriteFile(fs, fn, []byte(l), 0644); err != nil {
		return chk.Err("cannot save history to %q:\n%v", fn, err)
	}
	return
}
