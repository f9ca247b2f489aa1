package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/notargets/gosoh/model_problems/SOH2D"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: historySummary history.csv [history.csv ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("%8s %10s %12s %11s %11s %8s %8s  %s\n",
		"steps", "time", "mass drift", "min rho", "norm err", "bad", "degen", "file")
	for _, csvFile := range flag.Args() {
		hist, err := SOH2D.ReadHistory(csvFile)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		hs := SOH2D.SummarizeHistory(hist)
		fmt.Printf("%8d %10.5f %12.4e %11.4e %11.4e %8d %8d  %s\n",
			hs.Steps, hs.FinalTime, hs.MassDrift, hs.MinRho, hs.MaxNormError, hs.BadCells, hs.DegenerateNorms, csvFile)
	}
}
