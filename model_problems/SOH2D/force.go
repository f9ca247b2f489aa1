package SOH2D

import (
	"fmt"
	"math"

	"github.com/notargets/gosoh/utils"
)

// ForceField is a static exterior force sampled at cell centers, zero on the
// ghost layer. Both components are marked read only.
type ForceField struct {
	Fx, Fy utils.Matrix
}

func NewForceField(Fx, Fy utils.Matrix) (ff *ForceField) {
	Fx.SetReadOnly("Fx")
	Fy.SetReadOnly("Fy")
	ff = &ForceField{Fx: Fx, Fy: Fy}
	return
}

func (ff *ForceField) checkShape(g Grid) (err error) {
	var (
		nr, nc = g.Shape()
	)
	for _, f := range []utils.Matrix{ff.Fx, ff.Fy} {
		if f.IsEmpty() {
			err = fmt.Errorf("force field component not allocated")
			return
		}
		if r, cc := f.Dims(); r != nr || cc != nc {
			err = fmt.Errorf("force field is %d x %d, grid requires %d x %d", r, cc, nr, nc)
			return
		}
	}
	return
}

/*
RotateToward is the exact solution over dt of dOmega/dt = lambda*(I - Omega Omega^T)*F
for a constant force F. In angle form, with psi the force direction,
	tan((theta - psi)/2) = tan((theta0 - psi)/2) * exp(-lambda*|F|*t)
*/
func RotateToward(u, v, fx, fy, lambda, dt float64) (uN, vN float64, rotated bool) {
	var (
		fmag = math.Sqrt(fx*fx + fy*fy)
	)
	if fmag <= ForceTol {
		return u, v, false
	}
	theta0 := math.Atan2(v, u)
	psi := math.Atan2(fy, fx)
	C0 := math.Tan(0.5 * (theta0 - psi))
	theta := psi + 2*math.Atan(C0*math.Exp(-lambda*fmag*dt))
	vN, uN = math.Sincos(theta)
	return uN, vN, true
}

// ForceStep rotates the orientation of every interior cell toward the local
// force, then refreshes the ghost layer. Density is not changed.
func (c *Integrator) ForceStep(st *State) (rotated int) {
	if c.cfg.Force == nil {
		return
	}
	var (
		g      = c.cfg.Grid
		nc, nj = g.Ncelly + 2, g.Ncelly
		u, v   = st.U.DataP, st.V.DataP
		fx, fy = c.cfg.Force.Fx.DataP, c.cfg.Force.Fy.DataP
		lambda = c.cfg.Coeffs.Lambda
		dt     = c.cfg.Dt
	)
	c.pmCell.ParallelRange(func(bn, kMin, kMax int) {
		var count int
		for i := kMin + 1; i <= kMax; i++ {
			for j := 1; j <= nj; j++ {
				ind := i*nc + j
				var ok bool
				if u[ind], v[ind], ok = RotateToward(u[ind], v[ind], fx[ind], fy[ind], lambda, dt); ok {
					count++
				}
			}
		}
		c.counts[bn][0] = count
	})
	for np := range c.counts {
		rotated += c.counts[np][0]
		c.counts[np] = [2]int{}
	}
	c.cfg.BCs.Apply(st)
	return
}
