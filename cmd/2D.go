/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/gosoh/InputParameters"
	"github.com/notargets/gosoh/model_problems/SOH2D"
	"github.com/notargets/gosoh/model_problems/SOH2D/coefficients"
)

type Model2D struct {
	ICFile    string
	OutputDir string
	Profile   string
	Quiet     bool
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional SOH solver on a uniform grid",
	Long:  `Two dimensional SOH solver on a uniform grid, reads a YAML input file and writes the run history`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		m2d := &Model2D{}
		if m2d.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		m2d.Quiet, _ = cmd.Flags().GetBool("quiet")
		m2d.Profile = viper.GetString("profile")
		m2d.OutputDir = viper.GetString("output")
		ip := processInput(m2d)
		switch m2d.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			fmt.Printf("error: unknown profile mode %q, use cpu or mem\n", m2d.Profile)
			os.Exit(1)
		}
		if err = Run2D(m2d, ip); err != nil {
			zap.L().Error("run failed", zap.Error(err))
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processInput(m2d *Model2D) (ip *InputParameters.InputParameters2D) {
	var (
		err error
	)
	if len(m2d.ICFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Test Case"
CFL: 0.4
FluxType: HLLE # Can be "Roe"
InitType: Noise # Can be "Uniform", "Blob", "Vortex"
FinalTime: 4
Ncellx: 128
Ncelly: 128
Kappa: 1 # Or give C1, C2 and Lambda directly
BCx: Periodic # Can be "Neumann", "Reflecting"
BCy: Reflecting
PotentialType: Harmonic # Can be "None", "Gaussian"
PotentialStrength: 0.5
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = os.ReadFile(m2d.ICFile); err != nil {
		panic(err)
	}
	ip = InputParameters.NewInputParameters2D()
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	if len(m2d.OutputDir) != 0 {
		ip.OutputDir = m2d.OutputDir
	}
	return
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- CFL\n\t- Kappa\n\t- BCx, BCy")
	TwoDCmd.Flags().StringP("output", "o", "", "directory for run output, overrides OutputDir in the input file")
	TwoDCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
	TwoDCmd.Flags().BoolP("quiet", "q", false, "suppress the iteration table")
	_ = viper.BindPFlag("output", TwoDCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("profile", TwoDCmd.Flags().Lookup("profile"))
}

// NewCase builds the integrator and initial state described by the input.
func NewCase(ip *InputParameters.InputParameters2D, log *zap.Logger) (c *SOH2D.Integrator, st *SOH2D.State, err error) {
	var (
		cf   SOH2D.Coefficients
		g    SOH2D.Grid
		bcs  SOH2D.BCPair
		ft   SOH2D.FluxType
		it   SOH2D.InitType
		pt   SOH2D.PotentialType
		ff   *SOH2D.ForceField
		cfg  SOH2D.Config
		fail = func(what string, e error) error { return fmt.Errorf("%s: %w", what, e) }
	)
	if !(ip.CFL > 0) || ip.CFL > 1 {
		err = fmt.Errorf("CFL must be in (0,1], have %g", ip.CFL)
		return
	}
	if ip.ExplicitCoefficients() {
		cf = SOH2D.Coefficients{C1: ip.C1, C2: ip.C2, Lambda: ip.Lambda}
	} else if cf, err = coefficients.Compute(ip.Kappa); err != nil {
		err = fail("coefficients", err)
		return
	}
	log.Debug("coefficients", zap.Float64("c1", cf.C1), zap.Float64("c2", cf.C2), zap.Float64("lambda", cf.Lambda))
	if g, err = SOH2D.NewGrid(ip.Ncellx, ip.Ncelly, ip.Lx, ip.Ly); err != nil {
		err = fail("grid", err)
		return
	}
	if bcs, err = SOH2D.NewBCPair(ip.BCx, ip.BCy); err != nil {
		err = fail("boundary conditions", err)
		return
	}
	if ft, err = SOH2D.NewFluxType(ip.FluxType); err != nil {
		return
	}
	if it, err = SOH2D.NewInitType(ip.InitType); err != nil {
		return
	}
	if pt, err = SOH2D.NewPotentialType(ip.PotentialType); err != nil {
		return
	}
	if ff, err = SOH2D.NewPotentialForce(g, SOH2D.PotentialParams{
		Type:     pt,
		Strength: ip.PotentialStrength,
		X0:       0.5 * ip.Lx,
		Y0:       0.5 * ip.Ly,
		Width:    ip.PotentialWidth,
	}); err != nil {
		err = fail("potential", err)
		return
	}
	if err = cf.CheckHyperbolic(); err != nil {
		return
	}
	cfg = SOH2D.Config{
		Grid:           g,
		Dt:             g.StableDt(cf, ip.CFL),
		Coeffs:         cf,
		BCs:            bcs,
		Force:          ff,
		Flux:           ft,
		ParallelDegree: ip.ParallelDegree,
	}
	if c, err = SOH2D.NewIntegrator(cfg, SOH2D.WithReporter(SOH2D.NewZapReporter(log))); err != nil {
		return
	}
	st, err = SOH2D.NewInitialState(g, bcs, SOH2D.InitParams{
		Type:      it,
		Rho0:      ip.Rho0,
		Theta0:    ip.Theta0,
		Amplitude: ip.Amplitude,
		Scale:     ip.Scale,
		Seed:      ip.Seed,
	})
	return
}

func Run2D(m2d *Model2D, ip *InputParameters.InputParameters2D) (err error) {
	var (
		log = zap.L()
		c   *SOH2D.Integrator
		st  *SOH2D.State
		om  *SOH2D.OutputManager
	)
	if !m2d.Quiet {
		ip.Print()
	}
	if c, st, err = NewCase(ip, log); err != nil {
		return
	}
	if om, err = SOH2D.NewOutputManager(ip.OutputDir); err != nil {
		return
	}
	defer om.Close()
	rr := SOH2D.NewRunRecord(ip.Title, c.Config(), ip.FinalTime)
	if !ip.ExplicitCoefficients() {
		rr.Kappa = ip.Kappa
	}
	rr.Init = ip.InitType
	if ip.PotentialType != "" {
		rr.Potential = ip.PotentialType
	}
	rr.ParallelDegree = c.ParallelDegree
	if err = om.WriteRunRecord(rr); err != nil {
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Info("starting run",
		zap.String("title", ip.Title),
		zap.Int("ncellx", ip.Ncellx), zap.Int("ncelly", ip.Ncelly),
		zap.Float64("dt", c.Config().Dt),
		zap.Int("parallel_degree", c.ParallelDegree),
		zap.String("output", om.Dir()))
	hist, err := SOH2D.Solve(ctx, c, st, SOH2D.SolveParams{
		FinalTime:     ip.FinalTime,
		MaxIterations: ip.MaxIterations,
		SaveSteps:     ip.SaveSteps,
		Verbose:       !m2d.Quiet,
	}, om)
	if len(hist) != 0 {
		last := hist[len(hist)-1]
		log.Info("run finished",
			zap.Int("steps", last.Step),
			zap.Float64("time", last.Time),
			zap.Float64("mass", last.Mass),
			zap.Float64("mass_change", last.Mass-hist[0].Mass),
			zap.Error(err))
	}
	return
}
