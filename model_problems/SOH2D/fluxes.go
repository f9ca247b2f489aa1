package SOH2D

import (
	"fmt"
	"math"
	"strings"
)

type FluxType uint

const (
	FLUX_Roe FluxType = iota
	FLUX_HLLE
)

var (
	FluxNames = map[string]FluxType{
		"roe":  FLUX_Roe,
		"hlle": FLUX_HLLE,
	}
	FluxPrintNames = []string{"Roe (local Lax Friedrichs fix)", "HLLE"}
)

func (ft FluxType) Print() (txt string) {
	if int(ft) < len(FluxPrintNames) {
		txt = FluxPrintNames[ft]
		return
	}
	txt = fmt.Sprintf("FluxType(%d)", ft)
	return
}

func NewFluxType(label string) (ft FluxType, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("unable to use flux named %q, use one of roe, hlle", label)
	}
	return
}

func (ft FluxType) valid() bool { return int(ft) < len(FluxPrintNames) }

// Coefficients of the SOH system. C1 transports density, C2 transports
// orientation and Lambda scales the pressure term.
type Coefficients struct {
	C1, C2, Lambda float64
}

// Discriminant is (c2^2 - c1*c2)*u^2 + lambda*c1, the radicand of the acoustic
// eigenvalues along the sweep direction.
func (cf Coefficients) Discriminant(u float64) float64 {
	return (cf.C2*cf.C2-cf.C1*cf.C2)*u*u + cf.Lambda*cf.C1
}

// Eigenvalues returns the transport eigenvalue l0 = c2*u and the acoustic pair
// lm <= l0 <= lp.
func (cf Coefficients) Eigenvalues(u float64) (l0, lm, lp float64) {
	var (
		sq = math.Sqrt(cf.Discriminant(u))
	)
	l0 = cf.C2 * u
	lm, lp = l0-sq, l0+sq
	return
}

// MaxWaveSpeed bounds |eigenvalue| over all unit orientations.
func (cf Coefficients) MaxWaveSpeed() (smax float64) {
	var (
		d = math.Max(cf.Discriminant(0), cf.Discriminant(1))
	)
	smax = math.Abs(cf.C2) + math.Sqrt(math.Max(d, 0))
	return
}

// CheckHyperbolic verifies the eigenvalues are real and distinct for every
// orientation component in [-1,1]. The discriminant is linear in u^2, so the
// end points decide.
func (cf Coefficients) CheckHyperbolic() (err error) {
	for _, val := range []float64{cf.C1, cf.C2, cf.Lambda} {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			err = fmt.Errorf("coefficients must be finite, have c1=%g c2=%g lambda=%g", cf.C1, cf.C2, cf.Lambda)
			return
		}
	}
	if cf.C1 <= 0 || cf.Lambda <= 0 {
		err = fmt.Errorf("coefficients require c1 > 0 and lambda > 0, have c1=%g lambda=%g", cf.C1, cf.Lambda)
		return
	}
	d0, d1 := cf.Discriminant(0), cf.Discriminant(1)
	if d0 <= 0 || d1 <= 0 {
		err = fmt.Errorf("non-positive discriminant for c1=%g c2=%g lambda=%g: delta(u=0)=%g, delta(|u|=1)=%g",
			cf.C1, cf.C2, cf.Lambda, d0, d1)
	}
	return
}

// PhysicalFlux is the x-direction flux of (rho, rho*u, rho*v).
func (cf Coefficients) PhysicalFlux(rho, u, v float64) (F [3]float64) {
	F = [3]float64{
		cf.C1 * rho * u,
		cf.C2*rho*u*u + cf.Lambda*rho,
		cf.C2 * rho * u * v,
	}
	return
}

// FluxX solves the 1-D Riemann problem across an interface normal to x.
func FluxX(rhoL, rhoR, uL, uR, vL, vR float64, cf Coefficients, method FluxType) (F [3]float64) {
	if rhoL < RhoDegenerate && rhoR < RhoDegenerate {
		return
	}
	switch method {
	case FLUX_HLLE:
		F = HLLEFlux(rhoL, rhoR, uL, uR, vL, vR, cf)
	case FLUX_Roe:
		F = RoeFlux(rhoL, rhoR, uL, uR, vL, vR, cf)
	default:
		panic(fmt.Errorf("unable to use flux type %d", method))
	}
	return
}

// FluxY solves the Riemann problem across an interface normal to y, bottom cell
// B and top cell T. The state is rotated by (u,v) -> (v,-u) so that FluxX sees
// the y direction as its normal, and the momentum flux is rotated back.
func FluxY(rhoB, rhoT, uB, uT, vB, vT float64, cf Coefficients, method FluxType) (G [3]float64) {
	F := FluxX(rhoB, rhoT, vB, vT, -uB, -uT, cf, method)
	G = [3]float64{F[0], -F[2], F[1]}
	return
}

func roeAverage(rhoL, rhoR, uL, uR, vL, vR float64) (um, vm float64) {
	var (
		rhoLs, rhoRs = math.Sqrt(rhoL), math.Sqrt(rhoR)
		oors         = 1. / (rhoLs + rhoRs)
	)
	um = (rhoLs*uL + rhoRs*uR) * oors
	vm = (rhoLs*vL + rhoRs*vR) * oors
	return
}

func RoeFlux(rhoL, rhoR, uL, uR, vL, vR float64, cf Coefficients) (F [3]float64) {
	var (
		C1, C2 = cf.C1, cf.C2
		FL     = cf.PhysicalFlux(rhoL, uL, vL)
		FR     = cf.PhysicalFlux(rhoR, uR, vR)
	)
	um, vm := roeAverage(rhoL, rhoR, uL, uR, vL, vR)
	/*
		Eigenvectors of the flux Jacobian at the Roe state, in (rho, rho*u, rho*v):
			r- = (1, lm/c1, c2*vm*(lm-c1*um)/(c1*(lm-c2*um)))
			r0 = (0, 0, 1)
			r+ = (1, lp/c1, c2*vm*(lp-c1*um)/(c1*(lp-c2*um)))
	*/
	_, lm, lp := cf.Eigenvalues(um)
	r3m := C2 * vm * (lm - C1*um) / (C1 * (lm - C2*um))
	r3p := C2 * vm * (lp - C1*um) / (C1 * (lp - C2*um))

	// Wave strengths of the jump in conservative variables
	dRho := rhoR - rhoL
	dM := rhoR*uR - rhoL*uL
	dN := rhoR*vR - rhoL*vL
	a3 := (C1*dM - lm*dRho) / (lp - lm)
	a1 := dRho - a3
	a2 := dN - a1*r3m - a3*r3p

	// Local Lax Friedrichs fix: each wave speed is the larger of the left and right values
	l0L, lmL, lpL := cf.Eigenvalues(uL)
	l0R, lmR, lpR := cf.Eigenvalues(uR)
	am := math.Max(math.Abs(lmL), math.Abs(lmR))
	a0 := math.Max(math.Abs(l0L), math.Abs(l0R))
	ap := math.Max(math.Abs(lpL), math.Abs(lpR))

	a1, a2, a3 = am*a1, a0*a2, ap*a3
	F[0] = 0.5*(FL[0]+FR[0]) - 0.5*(a1+a3)
	F[1] = 0.5*(FL[1]+FR[1]) - 0.5*(a1*lm+a3*lp)/C1
	F[2] = 0.5*(FL[2]+FR[2]) - 0.5*(a1*r3m+a2+a3*r3p)
	return
}

func HLLEFlux(rhoL, rhoR, uL, uR, vL, vR float64, cf Coefficients) (F [3]float64) {
	var (
		FL = cf.PhysicalFlux(rhoL, uL, vL)
		FR = cf.PhysicalFlux(rhoR, uR, vR)
		UL = [3]float64{rhoL, rhoL * uL, rhoL * vL}
		UR = [3]float64{rhoR, rhoR * uR, rhoR * vR}
	)
	um, _ := roeAverage(rhoL, rhoR, uL, uR, vL, vR)
	_, lmL, _ := cf.Eigenvalues(uL)
	_, _, lpR := cf.Eigenvalues(uR)
	_, lmM, lpM := cf.Eigenvalues(um)
	sLm := math.Min(math.Min(lmL, lmM), 0)
	sRp := math.Max(math.Max(lpR, lpM), 0)
	if sRp == sLm { // Both bounds zero, unreachable for hyperbolic coefficients
		for n := 0; n < 3; n++ {
			F[n] = 0.5 * (FL[n] + FR[n])
		}
		return
	}
	oods := 1. / (sRp - sLm)
	for n := 0; n < 3; n++ {
		F[n] = ((sRp*FL[n] - sLm*FR[n]) + sRp*sLm*(UR[n]-UL[n])) * oods
	}
	return
}
