// Package coefficients computes the SOH model coefficients from the
// concentration parameter kappa of the local von Mises equilibrium.
package coefficients

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/notargets/gosoh/model_problems/SOH2D"
)

const DefaultNodes = 256

/*
	With M(theta) ~ exp(kappa*cos(theta)) on the circle:
		c1     = <cos(theta)>_M
		c2     = <cos(theta) sin(theta) h(theta)>_M / <sin(theta) h(theta)>_M
		lambda = 1/kappa
	where h is the generalized collision invariant, odd, vanishing at 0 and pi:
		h(theta) = (theta - pi * G(theta)) / kappa,  0 <= theta <= pi
		G(theta) = int_0^theta exp(-kappa*cos) / int_0^pi exp(-kappa*cos)
	All integrands are even on [-pi,pi] so the integrals are taken over [0,pi].
	Exponentials are shifted by kappa to stay finite for large kappa.
*/
func Compute(kappa float64, nodesO ...int) (cf SOH2D.Coefficients, err error) {
	var (
		n = DefaultNodes
	)
	if len(nodesO) != 0 && nodesO[0] > 1 {
		n = nodesO[0]
	}
	if !(kappa > 0) || math.IsInf(kappa, 0) {
		err = fmt.Errorf("concentration parameter must be positive and finite, have %g", kappa)
		return
	}
	w := func(theta float64) float64 { return math.Exp(kappa * (math.Cos(theta) - 1)) }
	wInv := func(phi float64) float64 { return math.Exp(-kappa * (math.Cos(phi) + 1)) }
	Z := quad.Fixed(w, 0, math.Pi, n, quad.Legendre{}, 0)
	c1 := quad.Fixed(func(theta float64) float64 { return math.Cos(theta) * w(theta) }, 0, math.Pi, n, quad.Legendre{}, 0) / Z

	ZInv := quad.Fixed(wInv, 0, math.Pi, n, quad.Legendre{}, 0)
	h := func(theta float64) float64 {
		G := quad.Fixed(wInv, 0, theta, n, quad.Legendre{}, 0) / ZInv
		return (theta - math.Pi*G) / kappa
	}
	// The outer integrals share the nested evaluation of h, so both are summed on one node set.
	var (
		num, den float64
		x        = make([]float64, n)
		wt       = make([]float64, n)
	)
	quad.Legendre{}.FixedLocations(x, wt, 0, math.Pi)
	for i, theta := range x {
		sh := math.Sin(theta) * h(theta) * w(theta)
		num += wt[i] * math.Cos(theta) * sh
		den += wt[i] * sh
	}
	if den == 0 {
		err = fmt.Errorf("degenerate collision invariant for kappa = %g", kappa)
		return
	}
	cf = SOH2D.Coefficients{
		C1:     c1,
		C2:     num / den,
		Lambda: 1. / kappa,
	}
	return
}
