package SOH2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gosoh/utils"
)

type PotentialType uint

const (
	POT_None PotentialType = iota
	POT_Harmonic
	POT_Gaussian
)

var (
	PotentialNames = map[string]PotentialType{
		"":         POT_None,
		"none":     POT_None,
		"harmonic": POT_Harmonic,
		"gaussian": POT_Gaussian,
	}
	PotentialPrintNames = []string{"None", "Harmonic trap", "Gaussian well"}
)

func (pt PotentialType) Print() (txt string) {
	if int(pt) < len(PotentialPrintNames) {
		txt = PotentialPrintNames[pt]
		return
	}
	txt = fmt.Sprintf("PotentialType(%d)", pt)
	return
}

func NewPotentialType(label string) (pt PotentialType, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if pt, ok = PotentialNames[label]; !ok {
		err = fmt.Errorf("unable to use potential named %q, use one of none, harmonic, gaussian", label)
	}
	return
}

// PotentialParams describes V(x,y) centered at (X0,Y0).
// Harmonic: V = Strength/2 * r^2. Gaussian: V = -Strength * exp(-r^2/Width^2).
type PotentialParams struct {
	Type     PotentialType
	Strength float64
	X0, Y0   float64
	Width    float64
}

func (pp PotentialParams) V(x, y float64) (val float64) {
	var (
		r2 = (x-pp.X0)*(x-pp.X0) + (y-pp.Y0)*(y-pp.Y0)
	)
	switch pp.Type {
	case POT_Harmonic:
		val = 0.5 * pp.Strength * r2
	case POT_Gaussian:
		val = -pp.Strength * math.Exp(-r2/(pp.Width*pp.Width))
	}
	return
}

/*
NewPotentialForce samples F = -grad(V) at cell centers by centered differences
across each cell, leaving the ghost layer zero. Returns nil for POT_None.
*/
func NewPotentialForce(g Grid, pp PotentialParams) (ff *ForceField, err error) {
	switch pp.Type {
	case POT_None:
		return
	case POT_Harmonic:
	case POT_Gaussian:
		if !(pp.Width > 0) {
			err = fmt.Errorf("gaussian potential needs a positive width, have %g", pp.Width)
			return
		}
	default:
		err = fmt.Errorf("unable to use potential type %d", pp.Type)
		return
	}
	var (
		nr, nc = g.Shape()
		Fx, Fy = utils.NewMatrix(nr, nc), utils.NewMatrix(nr, nc)
		hx, hy = 0.5 * g.Dx, 0.5 * g.Dy
	)
	for i := 1; i <= g.Ncellx; i++ {
		for j := 1; j <= g.Ncelly; j++ {
			x, y := g.CellCenter(i, j)
			ind := i*nc + j
			Fx.DataP[ind] = -(pp.V(x+hx, y) - pp.V(x-hx, y)) / g.Dx
			Fy.DataP[ind] = -(pp.V(x, y+hy) - pp.V(x, y-hy)) / g.Dy
		}
	}
	ff = NewForceField(Fx, Fy)
	return
}
