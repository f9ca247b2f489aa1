package SOH2D

import (
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"

	"github.com/notargets/gosoh/utils"
)

const (
	RhoFloor      = 1.e-6  // Density floor applied after each sweep
	RhoDegenerate = 1.e-9  // Below this on both sides of an interface the flux is zero
	MomentumTol   = 1.e-12 // Momentum norm below which the orientation is kept
	ForceTol      = 1.e-9  // Force magnitude below which the rotation is skipped
)

/*
	Grid fields are (Ncellx+2) x (Ncelly+2) matrices, row index is x and column index is y.
	Interior cell (i,j), 1 <= i <= Ncellx, 1 <= j <= Ncelly, is stored at (i,j).
	Rows 0 and Ncellx+1, columns 0 and Ncelly+1 are the ghost layer.
*/
type Grid struct {
	Ncellx, Ncelly int
	Lx, Ly         float64
	Dx, Dy         float64
}

func NewGrid(Ncellx, Ncelly int, Lx, Ly float64) (g Grid, err error) {
	if Ncellx < 1 || Ncelly < 1 {
		err = fmt.Errorf("grid needs at least one cell per axis, have %d x %d", Ncellx, Ncelly)
		return
	}
	if !(Lx > 0) || !(Ly > 0) {
		err = fmt.Errorf("domain lengths must be positive, have Lx=%g, Ly=%g", Lx, Ly)
		return
	}
	g = Grid{
		Ncellx: Ncellx, Ncelly: Ncelly,
		Lx: Lx, Ly: Ly,
		Dx: Lx / float64(Ncellx), Dy: Ly / float64(Ncelly),
	}
	return
}

// Shape is the storage shape including the ghost layer.
func (g Grid) Shape() (nr, nc int) { return g.Ncellx + 2, g.Ncelly + 2 }

func (g Grid) NumInterior() int { return g.Ncellx * g.Ncelly }

// CellCenter is the physical location of the center of storage cell (i,j).
func (g Grid) CellCenter(i, j int) (x, y float64) {
	x = (float64(i) - 0.5) * g.Dx
	y = (float64(j) - 0.5) * g.Dy
	return
}

// StableDt returns the time step for a given CFL number, bounded by the
// fastest wave over all orientations on the finer axis.
func (g Grid) StableDt(cf Coefficients, CFL float64) (dt float64) {
	dt = CFL * math.Min(g.Dx, g.Dy) / cf.MaxWaveSpeed()
	return
}

type State struct {
	Rho, U, V utils.Matrix
}

func NewState(g Grid) (st *State) {
	nr, nc := g.Shape()
	st = &State{
		Rho: utils.NewMatrix(nr, nc),
		U:   utils.NewMatrix(nr, nc),
		V:   utils.NewMatrix(nr, nc),
	}
	return
}

func (st *State) Copy() *State {
	return &State{Rho: st.Rho.Copy(), U: st.U.Copy(), V: st.V.Copy()}
}

// Mass integrates density over the interior.
func (st *State) Mass(g Grid) float64 {
	return st.Rho.SubSum(1, g.Ncellx+1, 1, g.Ncelly+1) * g.Dx * g.Dy
}

// Config is fixed for the life of an Integrator.
type Config struct {
	Grid           Grid
	Dt             float64
	Coeffs         Coefficients
	BCs            BCPair
	Force          *ForceField // nil when no exterior potential is present
	Flux           FluxType
	ParallelDegree int // Number of go routines per pass, 0 uses all CPUs
}

func (cfg Config) Validate() (err error) {
	var (
		g = cfg.Grid
	)
	if g.Ncellx < 1 || g.Ncelly < 1 || !(g.Dx > 0) || !(g.Dy > 0) {
		err = fmt.Errorf("invalid grid %+v", g)
		return
	}
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		err = fmt.Errorf("time step must be positive and finite, have %g", cfg.Dt)
		return
	}
	if !cfg.Flux.valid() {
		err = fmt.Errorf("unable to use flux type %d", cfg.Flux)
		return
	}
	if err = cfg.BCs.Validate(); err != nil {
		return
	}
	if err = cfg.Coeffs.CheckHyperbolic(); err != nil {
		return
	}
	if cfg.Force != nil {
		if err = cfg.Force.checkShape(g); err != nil {
			return
		}
	}
	if cfg.ParallelDegree < 0 {
		err = fmt.Errorf("parallel degree must be >= 0, have %d", cfg.ParallelDegree)
	}
	return
}

type StepStats struct {
	X, Y    SweepStats
	Rotated int // cells rotated by the exterior force step
}

func (ss StepStats) BadCells() int { return ss.X.BadCells + ss.Y.BadCells }

type Integrator struct {
	cfg                Config
	reporter           Reporter
	ParallelDegree     int
	FluxBufX, FluxBufY [3]utils.Matrix // (Ncellx+1) x Ncelly and (Ncelly+1) x Ncellx
	pmFluxX, pmFluxY   *utils.PartitionMap
	pmCell             *utils.PartitionMap // Interior rows
	counts             [][2]int            // Per partition bad cell and degenerate norm counts
}

type Option func(c *Integrator)

func WithReporter(r Reporter) Option {
	return func(c *Integrator) {
		if r != nil {
			c.reporter = r
		}
	}
}

func NewIntegrator(cfg Config, opts ...Option) (c *Integrator, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	var (
		g = cfg.Grid
	)
	c = &Integrator{
		cfg:      cfg,
		reporter: NewZapReporter(zap.L()),
	}
	for _, opt := range opts {
		opt(c)
	}
	for n := 0; n < 3; n++ {
		c.FluxBufX[n] = utils.NewMatrix(g.Ncellx+1, g.Ncelly)
		c.FluxBufY[n] = utils.NewMatrix(g.Ncelly+1, g.Ncellx)
	}
	c.SetParallelDegree(cfg.ParallelDegree)
	return
}

// SetParallelDegree sets the number of go routines per pass, values below 1
// use all CPUs. The degree is capped at the number of interior rows.
func (c *Integrator) SetParallelDegree(ProcLimit int) {
	var (
		Kmax = c.cfg.Grid.Ncellx
	)
	if ProcLimit > 0 {
		c.ParallelDegree = ProcLimit
	} else {
		c.ParallelDegree = runtime.NumCPU()
	}
	if c.ParallelDegree > Kmax {
		c.ParallelDegree = Kmax
	}
	c.pmFluxX = utils.NewPartitionMap(c.ParallelDegree, c.cfg.Grid.Ncellx+1)
	c.pmFluxY = utils.NewPartitionMap(c.ParallelDegree, c.cfg.Grid.Ncelly+1)
	c.pmCell = utils.NewPartitionMap(c.ParallelDegree, Kmax)
	c.counts = make([][2]int, c.ParallelDegree)
}

func (c *Integrator) Config() Config { return c.cfg }

func (c *Integrator) checkState(st *State) (err error) {
	var (
		nr, nc = c.cfg.Grid.Shape()
	)
	if st == nil {
		err = fmt.Errorf("nil state")
		return
	}
	for _, f := range []utils.Matrix{st.Rho, st.U, st.V} {
		if f.IsEmpty() {
			err = fmt.Errorf("state field not allocated")
			return
		}
		if r, cc := f.Dims(); r != nr || cc != nc {
			err = fmt.Errorf("state field is %d x %d, grid requires %d x %d", r, cc, nr, nc)
			return
		}
	}
	return
}

// Step advances the state one time step in place:
// x sweep, y sweep, then the exterior force rotation when a force is configured.
// Each stage ends with a boundary refresh.
func (c *Integrator) Step(st *State) (ss StepStats, err error) {
	if err = c.checkState(st); err != nil {
		return
	}
	ss.X = c.SweepX(st)
	ss.Y = c.SweepY(st)
	if c.cfg.Force != nil {
		ss.Rotated = c.ForceStep(st)
	}
	return
}
