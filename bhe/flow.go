// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bhe

import (
	"math"

	"github.com/bilke/ogs/inp"
)

// limits of the flow regimes
const (
	ReLaminar   = 2300.0  // upper limit of laminar flow
	ReTurbulent = 10000.0 // lower limit of fully turbulent flow
)

// Flow holds the dimensionless numbers of the flow in one channel
type Flow struct {
	V  float64 // mean velocity [m/s]
	Re float64 // Reynolds number
	Pr float64 // Prandtl number
	Nu float64 // Nusselt number
}

// pipeFlow computes the flow in a circular pipe with inner diameter d
func pipeFlow(q, d, length float64, f *inp.FluidData) (o Flow) {
	o.V = math.Abs(q) / (math.Pi * d * d / 4)
	o.Re = reynolds(o.V, d, f)
	o.Pr = prandtl(f)
	o.Nu = nusselt(o.Re, o.Pr, d, length)
	return
}

// annulusFlow computes the flow in the gap between an inner pipe with outer diameter di and
// an outer pipe with inner diameter do
func annulusFlow(q, di, do, length float64, f *inp.FluidData) (o Flow) {
	dh := do - di
	o.V = math.Abs(q) / (math.Pi * (do*do - di*di) / 4)
	o.Re = reynolds(o.V, dh, f)
	o.Pr = prandtl(f)
	o.Nu = nusselt(o.Re, o.Pr, dh, length) * annulusFactor(o.Re, di/do)
	return
}

func reynolds(v, d float64, f *inp.FluidData) float64 {
	return f.Rho * v * d / f.Mu
}

func prandtl(f *inp.FluidData) float64 {
	return f.Mu * f.Cp / f.Lambda
}

// nusselt computes the Nusselt number with a linear blend between the laminar and turbulent
// correlations in the transition regime
func nusselt(re, pr, d, length float64) float64 {
	if re < ReLaminar {
		return nusseltLaminar(re, pr, d, length)
	}
	if re >= ReTurbulent {
		return nusseltTurbulent(re, pr, d, length)
	}
	γ := (re - ReLaminar) / (ReTurbulent - ReLaminar)
	return (1-γ)*nusseltLaminar(ReLaminar, pr, d, length) + γ*nusseltTurbulent(ReTurbulent, pr, d, length)
}

func nusseltLaminar(re, pr, d, length float64) float64 {
	nu1 := 3.66
	nu2 := 1.615 * math.Cbrt(re*pr*d/length)
	return math.Cbrt(nu1*nu1*nu1 + 0.7*0.7*0.7 + math.Pow(nu2-0.7, 3))
}

// nusseltTurbulent implements Gnielinski's correlation
func nusseltTurbulent(re, pr, d, length float64) float64 {
	ξ := math.Pow(1.8*math.Log10(re)-1.5, -2)
	return (ξ / 8 * re * pr) / (1 + 12.7*math.Sqrt(ξ/8)*(math.Pow(pr, 2.0/3.0)-1)) * (1 + math.Pow(d/length, 2.0/3.0))
}

// annulusFactor corrects the pipe correlation for the heat transfer at the inner wall of an
// annular gap with diameter ratio a = di/do
func annulusFactor(re, a float64) float64 {
	if re < ReLaminar {
		return 1 + 0.14*math.Pow(a, -0.5)
	}
	return 0.86 * math.Pow(a, -0.16)
}
