package SOH2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/ojrac/opensimplex-go"
)

type InitType uint

const (
	INIT_Uniform InitType = iota
	INIT_Noise
	INIT_Blob
	INIT_Vortex
)

var (
	InitNames = map[string]InitType{
		"uniform": INIT_Uniform,
		"noise":   INIT_Noise,
		"blob":    INIT_Blob,
		"vortex":  INIT_Vortex,
	}
	InitPrintNames = []string{"Uniform", "Simplex noise", "Gaussian density blob", "Vortex"}
)

func (it InitType) Print() (txt string) {
	if int(it) < len(InitPrintNames) {
		txt = InitPrintNames[it]
		return
	}
	txt = fmt.Sprintf("InitType(%d)", it)
	return
}

func NewInitType(label string) (it InitType, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use initial condition named %q, use one of uniform, noise, blob, vortex", label)
	}
	return
}

type InitParams struct {
	Type      InitType
	Rho0      float64 // Background density
	Theta0    float64 // Background orientation angle, radians
	Amplitude float64 // Density perturbation, relative for noise and absolute for blob
	Scale     float64 // Feature length scale
	Seed      int64
}

/*
NewInitialState allocates the grid fields and fills the interior, then the ghost
layer. Density is floored at RhoFloor and orientations are unit length.
*/
func NewInitialState(g Grid, bcs BCPair, ip InitParams) (st *State, err error) {
	if err = bcs.Validate(); err != nil {
		return
	}
	if !(ip.Rho0 >= 0) {
		err = fmt.Errorf("background density must be non-negative, have %g", ip.Rho0)
		return
	}
	var (
		scale  = ip.Scale
		xc, yc = 0.5 * g.Lx, 0.5 * g.Ly
		nc     = g.Ncelly + 2
		field  func(x, y float64) (rho, theta float64)
	)
	if !(scale > 0) {
		scale = 0.1 * math.Min(g.Lx, g.Ly)
	}
	switch ip.Type {
	case INIT_Uniform:
		field = func(x, y float64) (float64, float64) { return ip.Rho0, ip.Theta0 }
	case INIT_Noise:
		var (
			rhoNoise   = opensimplex.New(ip.Seed)
			thetaNoise = opensimplex.New(ip.Seed + 1)
		)
		field = func(x, y float64) (float64, float64) {
			rho := ip.Rho0 * (1 + ip.Amplitude*rhoNoise.Eval2(x/scale, y/scale))
			theta := ip.Theta0 + math.Pi*thetaNoise.Eval2(x/scale, y/scale)
			return rho, theta
		}
	case INIT_Blob:
		field = func(x, y float64) (float64, float64) {
			r2 := ((x-xc)*(x-xc) + (y-yc)*(y-yc)) / (scale * scale)
			return ip.Rho0 + ip.Amplitude*math.Exp(-r2), ip.Theta0
		}
	case INIT_Vortex:
		field = func(x, y float64) (float64, float64) {
			return ip.Rho0, math.Atan2(y-yc, x-xc) + 0.5*math.Pi
		}
	default:
		err = fmt.Errorf("unable to use initial condition type %d", ip.Type)
		return
	}
	st = NewState(g)
	rho, u, v := st.Rho.DataP, st.U.DataP, st.V.DataP
	for i := 1; i <= g.Ncellx; i++ {
		for j := 1; j <= g.Ncelly; j++ {
			x, y := g.CellCenter(i, j)
			r, theta := field(x, y)
			ind := i*nc + j
			rho[ind] = math.Max(r, RhoFloor)
			v[ind], u[ind] = math.Sincos(theta)
		}
	}
	bcs.Apply(st)
	return
}
