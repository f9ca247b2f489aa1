package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notargets/gosoh/InputParameters"
)

func TestRun2D(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
CFL: 0.4
InitType: Blob
FluxType: HLLE
FinalTime: 0.05
Ncellx: 12
Ncelly: 10
Kappa: 1
BCx: Reflecting
BCy: Periodic
PotentialType: Harmonic
PotentialStrength: 1
ParallelDegree: 2
SaveSteps: 1
`)
	ip := InputParameters.NewInputParameters2D()
	require.NoError(t, ip.Parse(fileInput))
	ip.OutputDir = t.TempDir()

	{ // Case construction
		c, st, err := NewCase(ip, zap.NewNop())
		require.NoError(t, err)
		cfg := c.Config()
		assert.Equal(t, 12, cfg.Grid.Ncellx)
		assert.NotNil(t, cfg.Force)
		assert.Equal(t, 2, c.ParallelDegree)
		assert.InDelta(t, 0.446390, cfg.Coeffs.C1, 1.e-6)
		assert.InDelta(t, 0.4*cfg.Grid.Dx/cfg.Coeffs.MaxWaveSpeed(), cfg.Dt, 1.e-15)
		assert.NotNil(t, st)
	}
	require.NoError(t, Run2D(&Model2D{Quiet: true}, ip))
	runs, err := os.ReadDir(ip.OutputDir)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	for _, name := range []string{"history.csv", "run.yaml"} {
		_, err = os.Stat(filepath.Join(ip.OutputDir, runs[0].Name(), name))
		assert.NoError(t, err)
	}
}

func TestNewCaseErrors(t *testing.T) {
	for _, mod := range []func(ip *InputParameters.InputParameters2D){
		func(ip *InputParameters.InputParameters2D) { ip.CFL = 0 },
		func(ip *InputParameters.InputParameters2D) { ip.Kappa = -1 },
		func(ip *InputParameters.InputParameters2D) { ip.Ncellx = 0 },
		func(ip *InputParameters.InputParameters2D) { ip.BCy = "outflow" },
		func(ip *InputParameters.InputParameters2D) { ip.FluxType = "rusanov" },
		func(ip *InputParameters.InputParameters2D) { ip.InitType = "shear" },
		func(ip *InputParameters.InputParameters2D) { ip.PotentialType = "coulomb" },
		func(ip *InputParameters.InputParameters2D) {
			ip.PotentialType, ip.PotentialWidth = "gaussian", 0
		},
		func(ip *InputParameters.InputParameters2D) { ip.C1, ip.C2, ip.Lambda = 1, 0.5, 0.25 },
	} {
		ip := InputParameters.NewInputParameters2D()
		ip.Ncellx, ip.Ncelly = 4, 4
		mod(ip)
		_, _, err := NewCase(ip, zap.NewNop())
		assert.Error(t, err)
	}
}

func TestNewCaseExplicitCoefficients(t *testing.T) {
	ip := InputParameters.NewInputParameters2D()
	require.NoError(t, ip.Parse([]byte("Ncellx: 4\nNcelly: 4\nC1: 1\nC2: 0\nLambda: 1\n")))
	c, _, err := NewCase(ip, zap.NewNop())
	require.NoError(t, err)
	cf := c.Config().Coeffs
	assert.Equal(t, 1., cf.C1)
	assert.Equal(t, 0., cf.C2)
	assert.Equal(t, 1., cf.Lambda)
}

func TestPrintCoefficients(t *testing.T) {
	assert.NoError(t, PrintCoefficients([]float64{0.5, 1, 2}, 64))
	assert.Error(t, PrintCoefficients([]float64{1, 0}, 64))
}
