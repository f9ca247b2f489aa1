package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title             string  `yaml:"Title"`
	CFL               float64 `yaml:"CFL"`
	FluxType          string  `yaml:"FluxType"`
	InitType          string  `yaml:"InitType"`
	FinalTime         float64 `yaml:"FinalTime"`
	MaxIterations     int     `yaml:"MaxIterations"`
	Ncellx            int     `yaml:"Ncellx"`
	Ncelly            int     `yaml:"Ncelly"`
	Lx                float64 `yaml:"Lx"`
	Ly                float64 `yaml:"Ly"`
	Kappa             float64 `yaml:"Kappa"` // Concentration, used when C1, C2 and Lambda are not all given
	C1                float64 `yaml:"C1"`
	C2                float64 `yaml:"C2"`
	Lambda            float64 `yaml:"Lambda"`
	BCx               string  `yaml:"BCx"`
	BCy               string  `yaml:"BCy"`
	Rho0              float64 `yaml:"Rho0"`
	Theta0            float64 `yaml:"Theta0"`
	Amplitude         float64 `yaml:"Amplitude"`
	Scale             float64 `yaml:"Scale"`
	Seed              int64   `yaml:"Seed"`
	PotentialType     string  `yaml:"PotentialType"`
	PotentialStrength float64 `yaml:"PotentialStrength"`
	PotentialWidth    float64 `yaml:"PotentialWidth"`
	ParallelDegree    int     `yaml:"ParallelDegree"`
	SaveSteps         int     `yaml:"SaveSteps"`
	OutputDir         string  `yaml:"OutputDir"`
}

// NewInputParameters2D returns the defaults, overridden by Parse.
func NewInputParameters2D() *InputParameters2D {
	return &InputParameters2D{
		CFL:       0.4,
		FluxType:  "hlle",
		InitType:  "noise",
		Ncellx:    64,
		Ncelly:    64,
		Lx:        1,
		Ly:        1,
		Kappa:     1,
		BCx:       "periodic",
		BCy:       "periodic",
		Rho0:      1,
		Amplitude: 0.5,
		SaveSteps: 10,
	}
}

func (ip *InputParameters2D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ExplicitCoefficients is true when the coefficients are given directly
// rather than computed from Kappa. C2 may be zero, so only C1 and Lambda
// decide.
func (ip *InputParameters2D) ExplicitCoefficients() bool {
	return ip.C1 != 0 && ip.Lambda != 0
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%d]\t\t\t= MaxIterations\n", ip.MaxIterations)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	fmt.Printf("[%s]\t\t\t= InitType\n", ip.InitType)
	fmt.Printf("[%d x %d]\t\t= Grid\n", ip.Ncellx, ip.Ncelly)
	fmt.Printf("[%g x %g]\t\t= Domain\n", ip.Lx, ip.Ly)
	if ip.ExplicitCoefficients() {
		fmt.Printf("[%g, %g, %g]\t= c1, c2, lambda\n", ip.C1, ip.C2, ip.Lambda)
	} else {
		fmt.Printf("%8.5f\t\t= Kappa\n", ip.Kappa)
	}
	fmt.Printf("BCs[x] = %s, BCs[y] = %s\n", ip.BCx, ip.BCy)
	if ip.PotentialType != "" {
		fmt.Printf("[%s]\t\t= Potential, strength = %g, width = %g\n",
			ip.PotentialType, ip.PotentialStrength, ip.PotentialWidth)
	}
}
