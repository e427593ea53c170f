// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// bhehost serves the built-in pipe network of a simulation to remote simulations over
// websockets
//
//	Usage: bhehost sim.sim [address]
package main

import (
	"net/http"

	"github.com/bilke/ogs/inp"
	"github.com/bilke/ogs/network"
	"github.com/cpmech/gosl/io"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	addr := io.ArgToString(1, ":8080")

	// network
	sim, err := inp.ReadSim(afero.NewOsFs(), fnamepath, "")
	if err != nil {
		log.WithError(err).Fatal("cannot read simulation")
	}
	load, err := sim.LoadFunc()
	if err != nil {
		log.WithError(err).Fatal("cannot get load function")
	}
	loop := network.NewLoop(&sim.Network, sim.Bhes, load)
	log.WithFields(log.Fields{"sim": sim.Key, "bhes": len(sim.Bhes), "power": sim.Network.Power}).Info("network ready")

	// serve
	http.Handle("/ws", network.NewHost(loop))
	log.WithField("address", addr).Info("listening")
	if err = http.ListenAndServe(addr, nil); err != nil {
		log.WithError(err).Fatal("ListenAndServe")
	}
}
