// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// EulerGamma is the Euler-Mascheroni constant
const EulerGamma = 0.57721566490153286061

// LineSource computes the temperature change in an infinite medium around an infinite line
// that extracts heat at a constant rate q' per unit length (Kelvin line source)
//
//	ΔT(r,t) = -q' G(r,t)      G(r,t) = E1(r²/(4αt)) / (4πλ)      α = λ/(ρc)
//
//	    |  q' [W/m]
//	    |
//	 ---+---> r        λ, ρc
//	    |
//	    |
type LineSource struct {
	Lambda float64 // thermal conductivity [W/m/K]
	RhoCp  float64 // volumetric heat capacity [J/m³/K]
}

// Init initialises this structure
func (o *LineSource) Init(lambda, rho, cp float64) (err error) {
	o.Lambda, o.RhoCp = lambda, rho*cp
	if o.Lambda <= 0 || o.RhoCp <= 0 {
		return chk.Err("line source requires positive conductivity and heat capacity. λ=%g ρc=%g", o.Lambda, o.RhoCp)
	}
	return
}

// Diffusivity returns α = λ/(ρc)
func (o *LineSource) Diffusivity() float64 { return o.Lambda / o.RhoCp }

// G returns the response to a unit heat rate per length at distance r after time t [m·K/W]
func (o *LineSource) G(r, t float64) float64 {
	if t <= 0 {
		return 0
	}
	u := r * r / (4 * o.Diffusivity() * t)
	return E1(u) / (4 * math.Pi * o.Lambda)
}

// E1 computes the exponential integral E1(x) = ∫_x^∞ exp(-s)/s ds for x > 0
func E1(x float64) float64 {
	if x <= 0 {
		return math.Inf(1)
	}

	// power series
	if x <= 1 {
		sum, term := 0.0, 1.0
		for k := 1; k < 100; k++ {
			term *= -x / float64(k)
			δ := term / float64(k)
			sum += δ
			if math.Abs(δ) < 1e-17*math.Abs(sum) {
				break
			}
		}
		return -EulerGamma - math.Log(x) - sum
	}

	// continued fraction (modified Lentz)
	tiny := 1e-300
	b := x + 1
	c := 1.0 / tiny
	d := 1.0 / b
	h := d
	for i := 1; i < 200; i++ {
		a := -float64(i * i)
		b += 2
		d = 1.0 / (a*d + b)
		c = b + a/c
		δ := c * d
		h *= δ
		if math.Abs(δ-1) < 1e-16 {
			break
		}
	}
	return h * math.Exp(-x)
}
