package SOH2D

import (
	"fmt"

	"github.com/notargets/gosoh/types"
	"github.com/notargets/gosoh/utils"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
)

func (ax Axis) String() string {
	if ax == XAxis {
		return "x"
	}
	return "y"
}

// ApplyBC overwrites the two ghost layers of A normal to axis.
// Periodic copies the opposite interior edge, Neumann copies the adjacent
// interior value and Reflecting copies its negative.
func ApplyBC(A utils.Matrix, axis Axis, bc types.BCFLAG) {
	var (
		nr, nc = A.Dims()
		d      = A.DataP
	)
	switch axis {
	case XAxis:
		var (
			lo, hi   = d[0:nc], d[(nr-1)*nc : nr*nc]
			in1, inN = d[nc : 2*nc], d[(nr-2)*nc : (nr-1)*nc]
		)
		switch bc {
		case types.BC_Periodic:
			copy(lo, inN)
			copy(hi, in1)
		case types.BC_Neumann:
			copy(lo, in1)
			copy(hi, inN)
		case types.BC_Reflecting:
			for j := 0; j < nc; j++ {
				lo[j], hi[j] = -in1[j], -inN[j]
			}
		default:
			panic(fmt.Errorf("unknown boundary condition %d", bc))
		}
	case YAxis:
		switch bc {
		case types.BC_Periodic:
			for i := 0; i < nr; i++ {
				row := d[i*nc : (i+1)*nc]
				row[0], row[nc-1] = row[nc-2], row[1]
			}
		case types.BC_Neumann:
			for i := 0; i < nr; i++ {
				row := d[i*nc : (i+1)*nc]
				row[0], row[nc-1] = row[1], row[nc-2]
			}
		case types.BC_Reflecting:
			for i := 0; i < nr; i++ {
				row := d[i*nc : (i+1)*nc]
				row[0], row[nc-1] = -row[1], -row[nc-2]
			}
		default:
			panic(fmt.Errorf("unknown boundary condition %d", bc))
		}
	}
}

// BCPair holds the boundary policy for each axis.
type BCPair struct {
	X, Y types.BCFLAG
}

func NewBCPair(bcx, bcy string) (bp BCPair, err error) {
	if bp.X, err = types.NewBCFLAG(bcx); err != nil {
		return
	}
	bp.Y, err = types.NewBCFLAG(bcy)
	return
}

func (bp BCPair) Validate() (err error) {
	for _, bc := range []types.BCFLAG{bp.X, bp.Y} {
		switch bc {
		case types.BC_Periodic, types.BC_Neumann, types.BC_Reflecting:
		default:
			err = fmt.Errorf("unknown boundary condition %d", bc)
			return
		}
	}
	return
}

// Apply fills the ghost layer of all three fields, x axis first.
func (bp BCPair) Apply(st *State) {
	bp.applyAxis(st, XAxis, bp.X)
	bp.applyAxis(st, YAxis, bp.Y)
}

/*
A reflecting axis is a solid slip wall: density and the tangential orientation
component are Neumann, the normal component is negated so it vanishes at the wall.
*/
func (bp BCPair) applyAxis(st *State, axis Axis, bc types.BCFLAG) {
	if bc != types.BC_Reflecting {
		ApplyBC(st.Rho, axis, bc)
		ApplyBC(st.U, axis, bc)
		ApplyBC(st.V, axis, bc)
		return
	}
	normal, tangent := st.U, st.V
	if axis == YAxis {
		normal, tangent = st.V, st.U
	}
	ApplyBC(st.Rho, axis, types.BC_Neumann)
	ApplyBC(tangent, axis, types.BC_Neumann)
	ApplyBC(normal, axis, types.BC_Reflecting)
}
