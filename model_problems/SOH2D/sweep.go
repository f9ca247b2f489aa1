package SOH2D

import (
	"math"
)

type SweepStats struct {
	Axis            Axis
	BadCells        int // Cells whose updated density was not positive, clamped to RhoFloor
	DegenerateNorms int // Cells whose momentum norm fell below MomentumTol
	Cells           int // Interior cells updated
}

func (ss SweepStats) BadFraction() float64 {
	if ss.Cells == 0 {
		return 0
	}
	return float64(ss.BadCells) / float64(ss.Cells)
}

/*
	Each sweep runs four passes, the passes are separated by a join so that
	every write of one pass is visible to the next:
		1) Flux pass - one Riemann solve per interface into the flux buffers
		2) Conservative update of (rho, rho*u, rho*v) from the flux differences
		3) Relaxation of (u,v) onto the unit circle and density clamp (fused with 2)
		4) Boundary refresh of the ghost layer
*/

// SweepX advances the state along x, interface k separates rows k and k+1.
func (c *Integrator) SweepX(st *State) (ss SweepStats) {
	var (
		g          = c.cfg.Grid
		cf, method = c.cfg.Coeffs, c.cfg.Flux
		nc, nj     = g.Ncelly + 2, g.Ncelly
		rho, u, v  = st.Rho.DataP, st.U.DataP, st.V.DataP
		fr, fm, fn = c.FluxBufX[0].DataP, c.FluxBufX[1].DataP, c.FluxBufX[2].DataP
		ratio      = c.cfg.Dt / g.Dx
	)
	c.pmFluxX.ParallelRange(func(_, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			for j := 1; j <= nj; j++ {
				l, r := k*nc+j, (k+1)*nc+j
				F := FluxX(rho[l], rho[r], u[l], u[r], v[l], v[r], cf, method)
				ind := k*nj + j - 1
				fr[ind], fm[ind], fn[ind] = F[0], F[1], F[2]
			}
		}
	})
	c.pmCell.ParallelRange(func(bn, kMin, kMax int) {
		var bad, degen int
		for i := kMin + 1; i <= kMax; i++ {
			for j := 1; j <= nj; j++ {
				fL, fR := (i-1)*nj+j-1, i*nj+j-1
				b, d := relax(rho, u, v, i*nc+j,
					ratio*(fr[fR]-fr[fL]), ratio*(fm[fR]-fm[fL]), ratio*(fn[fR]-fn[fL]))
				bad += b
				degen += d
			}
		}
		c.counts[bn] = [2]int{bad, degen}
	})
	ss = c.gatherStats(XAxis)
	c.cfg.BCs.Apply(st)
	c.report(ss)
	return
}

// SweepY advances the state along y, interface k separates columns k and k+1.
// The flux buffer is stored transposed, (Ncelly+1) x Ncellx.
func (c *Integrator) SweepY(st *State) (ss SweepStats) {
	var (
		g          = c.cfg.Grid
		cf, method = c.cfg.Coeffs, c.cfg.Flux
		nc, ni, nj = g.Ncelly + 2, g.Ncellx, g.Ncelly
		rho, u, v  = st.Rho.DataP, st.U.DataP, st.V.DataP
		fr, fm, fn = c.FluxBufY[0].DataP, c.FluxBufY[1].DataP, c.FluxBufY[2].DataP
		ratio      = c.cfg.Dt / g.Dy
	)
	c.pmFluxY.ParallelRange(func(_, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			for i := 1; i <= ni; i++ {
				b, t := i*nc+k, i*nc+k+1
				G := FluxY(rho[b], rho[t], u[b], u[t], v[b], v[t], cf, method)
				ind := k*ni + i - 1
				fr[ind], fm[ind], fn[ind] = G[0], G[1], G[2]
			}
		}
	})
	c.pmCell.ParallelRange(func(bn, kMin, kMax int) {
		var bad, degen int
		for i := kMin + 1; i <= kMax; i++ {
			for j := 1; j <= nj; j++ {
				fB, fT := (j-1)*ni+i-1, j*ni+i-1
				b, d := relax(rho, u, v, i*nc+j,
					ratio*(fr[fT]-fr[fB]), ratio*(fm[fT]-fm[fB]), ratio*(fn[fT]-fn[fB]))
				bad += b
				degen += d
			}
		}
		c.counts[bn] = [2]int{bad, degen}
	})
	ss = c.gatherStats(YAxis)
	c.cfg.BCs.Apply(st)
	c.report(ss)
	return
}

// relax applies the conservative update to one cell and projects the new
// momentum onto the unit circle. A vanishing momentum keeps the previous
// orientation, renormalized.
func relax(rho, u, v []float64, ind int, dRho, dM, dN float64) (bad, degenerate int) {
	var (
		r0, u0, v0 = rho[ind], u[ind], v[ind]
		r          = r0 - dRho
		m          = r0*u0 - dM
		n          = r0*v0 - dN
		norm       = math.Sqrt(m*m + n*n)
	)
	if norm < MomentumTol {
		degenerate = 1
		if norm0 := math.Sqrt(u0*u0 + v0*v0); norm0 > 0 {
			u[ind], v[ind] = u0/norm0, v0/norm0
		}
	} else {
		u[ind], v[ind] = m/norm, n/norm
	}
	if r <= 0 {
		bad = 1
	}
	if r < RhoFloor {
		r = RhoFloor
	}
	rho[ind] = r
	return
}

func (c *Integrator) gatherStats(axis Axis) (ss SweepStats) {
	ss.Axis = axis
	ss.Cells = c.cfg.Grid.NumInterior()
	for np := range c.counts {
		ss.BadCells += c.counts[np][0]
		ss.DegenerateNorms += c.counts[np][1]
		c.counts[np] = [2]int{}
	}
	return
}

func (c *Integrator) report(ss SweepStats) {
	if ss.BadCells > 0 {
		c.reporter.ReportSweep(ss)
	}
}
