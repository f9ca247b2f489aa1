package coefficients

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	{ // c1 is the Bessel ratio I1/I0
		cf, err := Compute(1)
		require.NoError(t, err)
		assert.InDelta(t, 0.446390, cf.C1, 1.e-6)
		assert.InDelta(t, 0.18677, cf.C2, 1.e-4)
		assert.InDelta(t, 1, cf.Lambda, 1.e-15)
		assert.NoError(t, cf.CheckHyperbolic())
	}
	{ // Small kappa: c1 ~ kappa/2, c2 ~ 3*kappa/16
		kappa := 1.e-3
		cf, err := Compute(kappa)
		require.NoError(t, err)
		assert.InDelta(t, kappa/2, cf.C1, 1.e-6*kappa)
		assert.InDelta(t, 3*kappa/16, cf.C2, 1.e-4*kappa)
		assert.InDelta(t, 0.375, cf.C2/cf.C1, 1.e-4)
	}
	{ // Ordering holds over the useful range, and large kappa stays finite
		for _, kappa := range []float64{0.1, 0.5, 2, 5, 10, 40} {
			cf, err := Compute(kappa)
			require.NoError(t, err)
			assert.True(t, cf.C2 > 0 && cf.C2 < cf.C1 && cf.C1 < 1, "kappa %g: %+v", kappa, cf)
			assert.InDelta(t, 1/kappa, cf.Lambda, 1.e-15)
			assert.False(t, math.IsNaN(cf.C2))
			assert.NoError(t, cf.CheckHyperbolic(), "kappa %g", kappa)
		}
	}
	{ // Node count converges
		c64, _ := Compute(3, 64)
		c256, _ := Compute(3)
		assert.InDelta(t, c256.C1, c64.C1, 1.e-10)
		assert.InDelta(t, c256.C2, c64.C2, 1.e-6)
	}
	for _, kappa := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Compute(kappa)
		assert.Error(t, err)
	}
}
