package SOH2D

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// RunRecord is the resolved description of a run, written once as run.yaml.
type RunRecord struct {
	RunID          string    `yaml:"run_id"`
	Title          string    `yaml:"title"`
	Started        time.Time `yaml:"started"`
	Flux           string    `yaml:"flux"`
	BCx            string    `yaml:"bc_x"`
	BCy            string    `yaml:"bc_y"`
	Ncellx         int       `yaml:"ncellx"`
	Ncelly         int       `yaml:"ncelly"`
	Lx             float64   `yaml:"lx"`
	Ly             float64   `yaml:"ly"`
	Dt             float64   `yaml:"dt"`
	FinalTime      float64   `yaml:"final_time"`
	Kappa          float64   `yaml:"kappa,omitempty"`
	C1             float64   `yaml:"c1"`
	C2             float64   `yaml:"c2"`
	Lambda         float64   `yaml:"lambda"`
	Init           string    `yaml:"init"`
	Potential      string    `yaml:"potential"`
	ParallelDegree int       `yaml:"parallel_degree"`
}

func NewRunRecord(title string, cfg Config, FinalTime float64) (rr RunRecord) {
	rr = RunRecord{
		Title:     title,
		Started:   time.Now().UTC(),
		Flux:      cfg.Flux.Print(),
		BCx:       cfg.BCs.X.String(),
		BCy:       cfg.BCs.Y.String(),
		Ncellx:    cfg.Grid.Ncellx,
		Ncelly:    cfg.Grid.Ncelly,
		Lx:        cfg.Grid.Lx,
		Ly:        cfg.Grid.Ly,
		Dt:        cfg.Dt,
		FinalTime: FinalTime,
		C1:        cfg.Coeffs.C1,
		C2:        cfg.Coeffs.C2,
		Lambda:    cfg.Coeffs.Lambda,
		Potential: POT_None.Print(),

		ParallelDegree: cfg.ParallelDegree,
	}
	return
}

// OutputManager writes the run record and the diagnostic history into a
// directory named by a fresh run id. A nil manager discards everything.
type OutputManager struct {
	dir           string
	RunID         string
	historyFile   *os.File
	headerWritten bool
}

// NewOutputManager returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	om := &OutputManager{RunID: uuid.NewString()}
	om.dir = filepath.Join(dir, om.RunID)
	if err := os.MkdirAll(om.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(om.dir, "history.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating history.csv: %w", err)
	}
	om.historyFile = f
	return om, nil
}

func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

func (om *OutputManager) WriteRunRecord(rr RunRecord) error {
	if om == nil {
		return nil
	}
	rr.RunID = om.RunID
	data, err := yaml.Marshal(&rr)
	if err != nil {
		return fmt.Errorf("encoding run record: %w", err)
	}
	if err = os.WriteFile(filepath.Join(om.dir, "run.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing run.yaml: %w", err)
	}
	return nil
}

func (om *OutputManager) WriteHistory(records []HistoryRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.historyFile); err != nil {
			return fmt.Errorf("writing history: %w", err)
		}
		om.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.historyFile); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

func (om *OutputManager) Close() error {
	if om == nil || om.historyFile == nil {
		return nil
	}
	return om.historyFile.Close()
}

func ReadHistory(path string) (hist []HistoryRecord, err error) {
	var f *os.File
	if f, err = os.Open(path); err != nil {
		return
	}
	defer f.Close()
	if err = gocsv.UnmarshalFile(f, &hist); err != nil {
		err = fmt.Errorf("reading %s: %w", path, err)
	}
	return
}

// HistorySummary condenses a run history into its drift and failure counts.
type HistorySummary struct {
	Steps             int
	FinalTime         float64
	MassDrift         float64 // (final - initial) / initial
	MinRho            float64
	MaxNormError      float64
	BadCells          int // Summed over recorded steps only
	DegenerateNorms   int
	RecordedStepCount int
}

func SummarizeHistory(hist []HistoryRecord) (hs HistorySummary) {
	if len(hist) == 0 {
		return
	}
	var (
		first, last = hist[0], hist[len(hist)-1]
	)
	hs.Steps, hs.FinalTime = last.Step, last.Time
	hs.RecordedStepCount = len(hist)
	if first.Mass != 0 {
		hs.MassDrift = (last.Mass - first.Mass) / first.Mass
	}
	hs.MinRho = first.MinRho
	for _, hr := range hist {
		hs.MinRho = min(hs.MinRho, hr.MinRho)
		hs.MaxNormError = max(hs.MaxNormError, hr.MaxNormError)
		hs.BadCells += hr.BadCellsX + hr.BadCellsY
		hs.DegenerateNorms += hr.DegenerateX + hr.DegenerateY
	}
	return
}
