// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhe

import (
	"github.com/bilke/ogs/inp"
	"github.com/cpmech/gosl/chk"
)

// allocatorType defines a function that allocates a device
type allocatorType func(idx int, dat *inp.BheData) Device

// allocators holds all device allocators; filled once by init functions
var allocators = make(map[string]allocatorType)

// setAllocator sets the allocator for a type tag
func setAllocator(tag string, fcn allocatorType) {
	if _, ok := allocators[tag]; ok {
		chk.Panic("cannot set allocator for BHE type %q because it exists already", tag)
	}
	allocators[tag] = fcn
}

// New returns a new device with coefficients computed for the design flow rate
func New(idx int, dat *inp.BheData) (d Device, err error) {
	fcn, ok := allocators[dat.Type]
	if !ok {
		return nil, chk.Err("unknown BHE type %q for BHE %d. Use 1U, CXA or CXC", dat.Type, idx)
	}
	d = fcn(idx, dat)
	d.UpdateHeatTransferCoefficients(dat.FlowRate)
	return
}

// NewAll returns the devices in configuration order
func NewAll(dats []*inp.BheData) (devices []Device, err error) {
	devices = make([]Device, len(dats))
	for i, dat := range dats {
		devices[i], err = New(i, dat)
		if err != nil {
			return nil, err
		}
	}
	return
}
