package SOH2D

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/gosoh/utils"
)

// HistoryRecord is one row of the diagnostic history, written to history.csv.
type HistoryRecord struct {
	Step         int     `csv:"step" yaml:"step"`
	Time         float64 `csv:"time" yaml:"time"`
	Dt           float64 `csv:"dt" yaml:"dt"`
	Mass         float64 `csv:"mass" yaml:"mass"`
	MinRho       float64 `csv:"min_rho" yaml:"min_rho"`
	MaxRho       float64 `csv:"max_rho" yaml:"max_rho"`
	MeanRho      float64 `csv:"mean_rho" yaml:"mean_rho"`
	MeanU        float64 `csv:"mean_u" yaml:"mean_u"` // Density weighted mean orientation
	MeanV        float64 `csv:"mean_v" yaml:"mean_v"`
	MaxNormError float64 `csv:"max_norm_error" yaml:"max_norm_error"` // max | u^2+v^2 - 1 |
	BadCellsX    int     `csv:"bad_cells_x" yaml:"bad_cells_x"`
	BadCellsY    int     `csv:"bad_cells_y" yaml:"bad_cells_y"`
	DegenerateX  int     `csv:"degenerate_x" yaml:"degenerate_x"`
	DegenerateY  int     `csv:"degenerate_y" yaml:"degenerate_y"`
	Rotated      int     `csv:"rotated" yaml:"rotated"`
}

// Diagnose reduces the interior of the state to a history record, the step
// counters are left for the caller.
func Diagnose(g Grid, st *State) (hr HistoryRecord) {
	var (
		nc       = g.Ncelly + 2
		N        = g.NumInterior()
		rho      = make([]float64, 0, N)
		uu, vv   = make([]float64, 0, N), make([]float64, 0, N)
		rd, u, v = st.Rho.DataP, st.U.DataP, st.V.DataP
	)
	for i := 1; i <= g.Ncellx; i++ {
		for j := 1; j <= g.Ncelly; j++ {
			ind := i*nc + j
			rho = append(rho, rd[ind])
			uu = append(uu, u[ind])
			vv = append(vv, v[ind])
			hr.MaxNormError = math.Max(hr.MaxNormError, math.Abs(u[ind]*u[ind]+v[ind]*v[ind]-1))
		}
	}
	hr.Mass = floats.Sum(rho) * g.Dx * g.Dy
	hr.MinRho, hr.MaxRho = floats.Min(rho), floats.Max(rho)
	hr.MeanRho = stat.Mean(rho, nil)
	hr.MeanU = stat.Mean(uu, rho)
	hr.MeanV = stat.Mean(vv, rho)
	return
}

type SolveParams struct {
	FinalTime     float64
	MaxIterations int
	SaveSteps     int // History is recorded every SaveSteps, and always at the first and last step
	Verbose       bool
}

func (sp SolveParams) CheckIfFinished(Time float64, steps int) (finished bool) {
	if Time >= sp.FinalTime || (sp.MaxIterations > 0 && steps >= sp.MaxIterations) {
		finished = true
	}
	return
}

// Solve steps the state until FinalTime or MaxIterations. The final step is
// shortened so that the integration ends exactly on FinalTime. The context is
// checked between steps, cancellation returns the history so far with the
// context error.
func Solve(ctx context.Context, c *Integrator, st *State, sp SolveParams, om *OutputManager) (hist []HistoryRecord, err error) {
	var (
		cfg      = c.Config()
		Time, dt float64
		steps    int
		finished bool
		elapsed  time.Duration
		pending  []HistoryRecord
		step     = c
	)
	if !(sp.FinalTime > 0) && sp.MaxIterations <= 0 {
		err = fmt.Errorf("need a positive final time or iteration limit, have %g and %d", sp.FinalTime, sp.MaxIterations)
		return
	}
	if sp.FinalTime <= 0 {
		sp.FinalTime = math.Inf(1)
	}
	if sp.SaveSteps <= 0 {
		sp.SaveSteps = 1
	}
	record := func(hr HistoryRecord) (err error) {
		hist = append(hist, hr)
		pending = append(pending, hr)
		if len(pending) >= 100 || finished {
			err = om.WriteHistory(pending)
			pending = pending[:0]
		}
		return
	}
	hr := Diagnose(cfg.Grid, st)
	if err = record(hr); err != nil {
		return
	}
	if sp.Verbose {
		PrintInitialization(cfg, sp.FinalTime)
		PrintUpdate(hr)
	}
	for !finished {
		if err = ctx.Err(); err != nil {
			_ = om.WriteHistory(pending)
			return
		}
		dt = cfg.Dt
		if rem := sp.FinalTime - Time; rem < dt {
			last := cfg
			last.Dt = rem
			if step, err = NewIntegrator(last, WithReporter(c.reporter)); err != nil {
				err = fmt.Errorf("building final step of length %g: %w", rem, err)
				return
			}
			step.SetParallelDegree(c.ParallelDegree)
			dt = rem
		}
		start := time.Now()
		var ss StepStats
		if ss, err = step.Step(st); err != nil {
			_ = om.WriteHistory(pending)
			return
		}
		elapsed += time.Since(start)
		steps++
		Time += dt
		if sp.FinalTime-Time < 1.e-9*cfg.Dt {
			Time = sp.FinalTime
		}
		if utils.IsNan([3]utils.Matrix{st.Rho, st.U, st.V}) {
			err = fmt.Errorf("non-finite state at step %d, time %g", steps, Time)
			_ = om.WriteHistory(pending)
			return
		}
		finished = sp.CheckIfFinished(Time, steps)
		if finished || steps%sp.SaveSteps == 0 {
			hr = Diagnose(cfg.Grid, st)
			hr.Step, hr.Time, hr.Dt = steps, Time, dt
			hr.BadCellsX, hr.BadCellsY = ss.X.BadCells, ss.Y.BadCells
			hr.DegenerateX, hr.DegenerateY = ss.X.DegenerateNorms, ss.Y.DegenerateNorms
			hr.Rotated = ss.Rotated
			if err = record(hr); err != nil {
				return
			}
			if sp.Verbose {
				PrintUpdate(hr)
			}
		}
	}
	if sp.Verbose {
		PrintFinal(cfg, elapsed, steps)
	}
	return
}

func PrintInitialization(cfg Config, FinalTime float64) {
	fmt.Printf("Grid %d x %d, Lx = %g, Ly = %g, flux = %s, bc = (%s, %s)\n",
		cfg.Grid.Ncellx, cfg.Grid.Ncelly, cfg.Grid.Lx, cfg.Grid.Ly, cfg.Flux.Print(), cfg.BCs.X, cfg.BCs.Y)
	fmt.Printf("c1 = %8.5f, c2 = %8.5f, lambda = %8.5f, dt = %10.4e\n",
		cfg.Coeffs.C1, cfg.Coeffs.C2, cfg.Coeffs.Lambda, cfg.Dt)
	fmt.Printf("Solving until finaltime = %8.5f\n", FinalTime)
	fmt.Printf("    iter    time")
	fmt.Printf("       Mass     MinRho     MaxRho")
	fmt.Printf("    NormErr   Bad\n")
}

func PrintUpdate(hr HistoryRecord) {
	format := "%11.4e"
	fmt.Printf("%8d%8.5f", hr.Step, hr.Time)
	fmt.Printf(format, hr.Mass)
	fmt.Printf(format, hr.MinRho)
	fmt.Printf(format, hr.MaxRho)
	fmt.Printf(format, hr.MaxNormError)
	fmt.Printf("%6d\n", hr.BadCellsX+hr.BadCellsY)
}

func PrintFinal(cfg Config, elapsed time.Duration, steps int) {
	if steps == 0 {
		return
	}
	rate := float64(elapsed.Microseconds()) / float64(cfg.Grid.NumInterior()*steps)
	fmt.Printf("\nRate of execution = %8.5f us/(cell*iteration) over %d iterations\n", rate, steps)
	fmt.Printf("%s\n", utils.GetMemUsage())
}
