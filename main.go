// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bilke/ogs/fem"
	"github.com/bilke/ogs/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.WorldRank() == 0 {
				io.PfRed("\nERROR: %v", err)
				io.Pf("See location of error below:\n")
				chk.Verbose = true
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
		}
		mpi.Stop()
	}()
	mpi.Start()

	// read input parameters
	fs := afero.NewOsFs()
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	optspath := io.ArgToString(1, "")
	opts := inp.DefaultRunOptions()
	if optspath != "" {
		var err error
		opts, err = inp.ReadRunOptions(fs, optspath)
		if err != nil {
			chk.Panic("%v", err)
		}
	}
	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		chk.Panic("invalid log level %q:\n%v", opts.LogLevel, err)
	}
	log.SetLevel(level)

	// message
	if mpi.WorldRank() == 0 && opts.Verbose {
		io.PfWhite("\nBHE network coupling\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"run options", "optspath", optspath,
			"show messages", "verbose", opts.Verbose,
			"allow parallel run", "parallel", opts.Parallel,
			"network partner", "partner", opts.Partner,
		))
	}

	// analysis data
	alias := ""
	analysis, err := fem.NewMain(fs, fnamepath, alias, opts, nil)
	if err != nil {
		chk.Panic("cannot set simulation:\n%v", err)
	}

	// run simulation
	err = analysis.Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
}
