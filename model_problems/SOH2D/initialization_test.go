package SOH2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialState(t *testing.T) {
	g, err := NewGrid(10, 8, 1, 0.8)
	require.NoError(t, err)
	bcs, err := NewBCPair("periodic", "reflecting")
	require.NoError(t, err)
	nc := g.Ncelly + 2
	for label := range InitNames {
		it, err := NewInitType(label)
		require.NoError(t, err)
		st, err := NewInitialState(g, bcs, InitParams{
			Type: it, Rho0: 0.5, Theta0: 0.3, Amplitude: 2, Scale: 0.25, Seed: 11,
		})
		require.NoError(t, err, "init %s", it.Print())
		for ind := range st.Rho.DataP {
			u, v := st.U.DataP[ind], st.V.DataP[ind]
			assert.InDelta(t, 1, u*u+v*v, 1.e-14)
			assert.True(t, st.Rho.DataP[ind] >= RhoFloor)
		}
		// Ghosts are filled
		assert.Equal(t, st.Rho.DataP[g.Ncellx*nc+3], st.Rho.DataP[3])
	}
	{ // Uniform is exact
		st, err := NewInitialState(g, bcs, InitParams{Type: INIT_Uniform, Rho0: 2, Theta0: math.Pi / 3})
		require.NoError(t, err)
		assert.InDelta(t, 2*g.Lx*g.Ly, st.Mass(g), 1.e-13)
		assert.InDelta(t, 0.5, st.U.At(4, 4), 1.e-15)
	}
	{ // Noise is reproducible from the seed
		ip := InitParams{Type: INIT_Noise, Rho0: 1, Amplitude: 0.3, Seed: 5}
		s1, _ := NewInitialState(g, bcs, ip)
		s2, _ := NewInitialState(g, bcs, ip)
		assert.Equal(t, s1.Rho.DataP, s2.Rho.DataP)
		ip.Seed = 6
		s3, _ := NewInitialState(g, bcs, ip)
		assert.NotEqual(t, s1.Rho.DataP, s3.Rho.DataP)
	}
	{ // Blob peaks at the center
		st, err := NewInitialState(g, bcs, InitParams{Type: INIT_Blob, Rho0: 0.1, Amplitude: 1, Scale: 0.2})
		require.NoError(t, err)
		assert.True(t, st.Rho.At(5, 4) > st.Rho.At(1, 1))
	}
	_, err = NewInitType("shear")
	assert.Error(t, err)
	_, err = NewInitialState(g, bcs, InitParams{Type: INIT_Uniform, Rho0: -1})
	assert.Error(t, err)
	_, err = NewInitialState(g, bcs, InitParams{Type: InitType(9), Rho0: 1})
	assert.Error(t, err)
}
