// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/bilke/ogs/bhe"
	"github.com/cpmech/gosl/chk"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
)

// CheckPartition checks the global indices of the ports of one BHE on one partition
//
//	pair -- {inlet, outlet}; a negative index means the port is not on this partition
//	present is false when both ports are absent: there is no boundary here.
//	Only one port on this partition is an error: the partition cuts the BHE.
func CheckPartition(idx, rank int, pair [2]int) (present bool, err error) {
	in, out := pair[0] >= 0, pair[1] >= 0
	switch {
	case in && out:
		return true, nil
	case !in && !out:
		return false, nil
	}
	return false, chk.Err("the partition cuts BHE %d into two independent parts on processor %d: inlet=%d outlet=%d",
		idx, rank, pair[0], pair[1])
}

// CheckAllPartitions checks the ports of all coupled BHEs and reports every cut BHE at once
func CheckAllPartitions(rank int, devices []bhe.Device, dofs [][2]int) error {
	if len(dofs) != len(devices) {
		return chk.Err("processor %d has %d dof pairs but there are %d BHEs", rank, len(dofs), len(devices))
	}
	var result *multierror.Error
	for i, d := range devices {
		if !d.UsesExternalCoupling() {
			continue
		}
		if _, err := CheckPartition(d.Index(), rank, dofs[i]); err != nil {
			log.WithFields(log.Fields{"rank": rank, "bhe": d.Index(), "inlet": dofs[i][0], "outlet": dofs[i][1]}).Error("partition cuts BHE")
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
