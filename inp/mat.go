// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
)

// PhaseData holds the properties of one phase of the soil
type PhaseData struct {
	Lambda float64 `json:"lambda"` // thermal conductivity [W/m/K]
	Cp     float64 `json:"cp"`     // specific heat capacity [J/kg/K]
	Rho    float64 `json:"rho"`    // density [kg/m³]
}

// MaterialData holds the soil properties for each phase
type MaterialData struct {
	Solid PhaseData `json:"solid"`
	Fluid PhaseData `json:"fluid"`
	Gas   PhaseData `json:"gas"`
}

// Check checks that all material parameters are positive
func (o *MaterialData) Check() error {
	names := []string{"solid", "fluid", "gas"}
	for i, p := range []PhaseData{o.Solid, o.Fluid, o.Gas} {
		if p.Lambda <= 0 || p.Cp <= 0 || p.Rho <= 0 {
			return chk.Err("%s phase parameters must be positive: %+v", names[i], p)
		}
	}
	return nil
}
