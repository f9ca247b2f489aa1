package SOH2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gosoh/utils"
)

// rk4Angle integrates dtheta/dt = lambda*|F|*sin(psi - theta)
func rk4Angle(theta, psi, rate, T float64, nsteps int) float64 {
	var (
		h = T / float64(nsteps)
		f = func(th float64) float64 { return rate * math.Sin(psi-th) }
	)
	for n := 0; n < nsteps; n++ {
		k1 := f(theta)
		k2 := f(theta + 0.5*h*k1)
		k3 := f(theta + 0.5*h*k2)
		k4 := f(theta + h*k3)
		theta += h * (k1 + 2*k2 + 2*k3 + k4) / 6
	}
	return theta
}

func TestRotateToward(t *testing.T) {
	var (
		lambda = 0.8
		dt     = 0.7
	)
	for _, tc := range []struct {
		theta0, fx, fy float64
	}{
		{0.3, 1, 0},
		{2.9, 0, 2},
		{-2.5, -1.5, 0.5},
		{1, 0.1, -3},
		{-3, 0.4, 0.01},
	} {
		v0, u0 := math.Sincos(tc.theta0)
		uN, vN, rotated := RotateToward(u0, v0, tc.fx, tc.fy, lambda, dt)
		require.True(t, rotated)
		var (
			psi   = math.Atan2(tc.fy, tc.fx)
			fmag  = math.Hypot(tc.fx, tc.fy)
			theta = rk4Angle(tc.theta0, psi, lambda*fmag, dt, 20000)
		)
		vE, uE := math.Sincos(theta)
		assert.InDelta(t, uE, uN, 1.e-9, "case %+v", tc)
		assert.InDelta(t, vE, vN, 1.e-9, "case %+v", tc)
		assert.InDelta(t, 1, uN*uN+vN*vN, 1.e-14)
		// Never rotates past the force direction
		assert.True(t, math.Cos(theta-psi) >= math.Cos(tc.theta0-psi)-1.e-14)
	}
	{ // Aligned orientation is a fixed point
		uN, vN, _ := RotateToward(0, 1, 0, 5, lambda, dt)
		assert.InDelta(t, 0, uN, 1.e-15)
		assert.InDelta(t, 1, vN, 1.e-15)
	}
	{ // Negligible force leaves the orientation untouched
		uN, vN, rotated := RotateToward(0.6, 0.8, 1.e-10, 0, lambda, dt)
		assert.False(t, rotated)
		assert.Equal(t, 0.6, uN)
		assert.Equal(t, 0.8, vN)
	}
}

func TestForceStep(t *testing.T) {
	g, err := NewGrid(6, 5, 1, 1)
	require.NoError(t, err)
	bcs, _ := NewBCPair("periodic", "neumann")
	st, err := NewInitialState(g, bcs, InitParams{Type: INIT_Vortex, Rho0: 1})
	require.NoError(t, err)
	nr, nc := g.Shape()
	Fx, Fy := utils.NewMatrix(nr, nc), utils.NewMatrix(nr, nc)
	for i := 1; i <= g.Ncellx; i++ {
		for j := 1; j <= g.Ncelly; j++ {
			if i != 3 { // row 3 feels no force
				Fx.DataP[i*nc+j] = float64(i)
				Fy.DataP[i*nc+j] = -float64(j)
			}
		}
	}
	ff := NewForceField(Fx, Fy)
	assert.True(t, ff.Fx.IsReadOnly())
	assert.Panics(t, func() { ff.Fy.Set(1, 1, 0) })
	c, err := NewIntegrator(Config{
		Grid: g, Dt: 0.05, Coeffs: testCoeffs, BCs: bcs, Force: ff,
	}, WithReporter(NopReporter{}))
	require.NoError(t, err)
	before := st.Copy()
	rotated := c.ForceStep(st)
	assert.Equal(t, g.NumInterior()-g.Ncelly, rotated)
	assert.Equal(t, before.Rho.DataP, st.Rho.DataP)
	for i := 1; i <= g.Ncellx; i++ {
		for j := 1; j <= g.Ncelly; j++ {
			ind := i*nc + j
			uE, vE, _ := RotateToward(before.U.DataP[ind], before.V.DataP[ind],
				Fx.DataP[ind], Fy.DataP[ind], testCoeffs.Lambda, 0.05)
			assert.Equal(t, uE, st.U.DataP[ind])
			assert.Equal(t, vE, st.V.DataP[ind])
		}
	}
	// Ghost layer is refreshed
	assert.Equal(t, st.U.DataP[g.Ncellx*nc+2], st.U.DataP[0*nc+2])
	{ // Step reports the rotation count
		ss, err := c.Step(st)
		require.NoError(t, err)
		assert.Equal(t, rotated, ss.Rotated)
	}
}
