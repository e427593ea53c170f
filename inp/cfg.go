// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// partner kinds
const (
	PartnerLoop = "loop" // built-in pipe network
	PartnerWs   = "ws"   // remote co-simulation host reached by websocket
)

// RunOptions holds the options of one run, read from an .ini file
//
//	[run]
//	verbose  = true
//	loglevel = info
//	parallel = true
//
//	[coupling]
//	partner = loop
//	address = ws://localhost:9000/ws
//
//	[output]
//	dirout = /tmp/ogs
//	plot   = true
type RunOptions struct {
	Verbose  bool   // show messages
	LogLevel string // logrus level
	Parallel bool   // allow parallel run

	Partner string // "loop" or "ws"
	Address string // websocket address of the co-simulation host

	DirOut string // overrides the directory given in the .sim file
	Plot   bool   // plot coupling history at the end of the run
}

// DefaultRunOptions returns the options used when there is no .ini file
func DefaultRunOptions() *RunOptions {
	return &RunOptions{
		Verbose:  true,
		LogLevel: "info",
		Parallel: true,
		Partner:  PartnerLoop,
	}
}

// ReadRunOptions reads run options from an .ini file
func ReadRunOptions(fs afero.Fs, fn string) (o *RunOptions, err error) {
	b, err := afero.ReadFile(fs, fn)
	if err != nil {
		return nil, chk.Err("cannot read run options file %q:\n%v", fn, err)
	}
	file, err := ini.Load(b)
	if err != nil {
		return nil, chk.Err("cannot parse run options file %q:\n%v", fn, err)
	}
	o = loadRunOptions(file)
	if o.Partner != PartnerLoop && o.Partner != PartnerWs {
		return nil, chk.Err("unknown coupling partner %q. Use %q or %q", o.Partner, PartnerLoop, PartnerWs)
	}
	if o.Partner == PartnerWs && o.Address == "" {
		return nil, chk.Err("coupling partner %q requires an address", o.Partner)
	}
	return
}

func loadRunOptions(file *ini.File) *RunOptions {
	d := DefaultRunOptions()
	return &RunOptions{
		Verbose:  file.Section("run").Key("verbose").MustBool(d.Verbose),
		LogLevel: file.Section("run").Key("loglevel").MustString(d.LogLevel),
		Parallel: file.Section("run").Key("parallel").MustBool(d.Parallel),
		Partner:  file.Section("coupling").Key("partner").MustString(d.Partner),
		Address:  file.Section("coupling").Key("address").String(),
		DirOut:   file.Section("output").Key("dirout").String(),
		Plot:     file.Section("output").Key("plot").MustBool(false),
	}
}
