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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notargets/gosoh/model_problems/SOH2D"
	"github.com/notargets/gosoh/model_problems/SOH2D/coefficients"
)

// CoeffsCmd prints the model coefficients for a list of concentrations
var CoeffsCmd = &cobra.Command{
	Use:   "coeffs",
	Short: "Compute the SOH coefficients c1, c2 and lambda from the concentration kappa",
	Long: `
Computes c1, c2 and lambda by Gauss-Legendre quadrature of the von Mises
equilibrium and the generalized collision invariant,

gosoh coeffs --kappa 0.5,1,2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kappas, _ := cmd.Flags().GetFloat64Slice("kappa")
		nodes, _ := cmd.Flags().GetInt("nodes")
		return PrintCoefficients(kappas, nodes)
	},
}

func init() {
	rootCmd.AddCommand(CoeffsCmd)
	CoeffsCmd.Flags().Float64SliceP("kappa", "k", []float64{1}, "concentration parameter(s)")
	CoeffsCmd.Flags().IntP("nodes", "n", coefficients.DefaultNodes, "number of quadrature nodes")
}

func PrintCoefficients(kappas []float64, nodes int) (err error) {
	fmt.Printf("     kappa         c1         c2     lambda  hyperbolic\n")
	for _, kappa := range kappas {
		var cf SOH2D.Coefficients
		if cf, err = coefficients.Compute(kappa, nodes); err != nil {
			return
		}
		fmt.Printf("%10.4f %10.6f %10.6f %10.6f  %v\n", kappa, cf.C1, cf.C2, cf.Lambda, cf.CheckHyperbolic() == nil)
	}
	return
}
