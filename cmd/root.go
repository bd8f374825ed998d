package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCMD = &cobra.Command{
	Use:   "warmac",
	Short: "Warframe Market Average Calculator",
	Long: `A program to fetch the average market cost of an item in Warframe.
Retrieves buy/sell orders for an item from the warframe.market API and
computes the median, mean, mode, harmonic mean, or geometric mean of
the listed platinum prices.`,
	Version: "0.0.4",
}

func Execute() {
	err := rootCMD.Execute()
	if err != nil {
		os.Exit(1)
	}
}
