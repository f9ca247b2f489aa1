package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestMatrix(t *testing.T) {
	// Storage is aliased between the dense matrix and the data slice
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		M.Set(1, 2, 7)
		assert.Equal(t, 7., M.DataP[5])
		M.DataP[0] = -1
		assert.Equal(t, -1., M.At(0, 0))
		assert.True(t, mat.Equal(M.T(), mat.NewDense(3, 2, []float64{-1, 4, 2, 5, 3, 7})))
		assert.Equal(t, 3, M.RawMatrix().Stride)
	}
	// Copy does not alias
	{
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		C := M.Copy()
		C.DataP[0] = 9
		assert.Equal(t, 1., M.DataP[0])
		assert.False(t, C.IsEmpty())
		assert.True(t, Matrix{}.IsEmpty())
	}
	// SubSum
	{
		M := NewMatrix(3, 4, []float64{
			1, 2, 3, 4,
			5, 6, 7, 8,
			9, 10, 11, 12,
		})
		assert.Equal(t, 6.+7+10+11, M.SubSum(1, 3, 1, 3))
		assert.Equal(t, 78., M.SubSum(0, 3, 0, 4))
		assert.Equal(t, 0., M.SubSum(1, 1, 0, 4))
	}
	// Read only
	{
		M := NewMatrix(2, 2)
		M.SetReadOnly("force")
		assert.True(t, M.IsReadOnly())
		assert.PanicsWithError(t, "attempt to write to a read only matrix named: \"force\"", func() { M.Set(0, 0, 1) })
		assert.Panics(t, func() { NewMatrix(2, 2, []float64{1, 2, 3}) })
	}
}
