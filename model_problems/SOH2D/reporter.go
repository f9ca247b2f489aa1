package SOH2D

import (
	"go.uber.org/zap"
)

// Reporter receives the once-per-sweep summary of clamped density cells.
// It is called only when at least one cell was clamped.
type Reporter interface {
	ReportSweep(ss SweepStats)
}

type NopReporter struct{}

func (NopReporter) ReportSweep(SweepStats) {}

type ZapReporter struct {
	log *zap.Logger
}

func NewZapReporter(log *zap.Logger) *ZapReporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapReporter{log: log}
}

func (zr *ZapReporter) ReportSweep(ss SweepStats) {
	zr.log.Warn("negative density clamped",
		zap.Stringer("axis", ss.Axis),
		zap.Int("bad_cells", ss.BadCells),
		zap.Int("cells", ss.Cells),
		zap.Float64("fraction", ss.BadFraction()),
		zap.Float64("floor", RhoFloor))
}
