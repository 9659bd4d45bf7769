// The fenestra command demonstrates and inspects the window lifecycle
// coordinator.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "fenestra",
	Short: "Fenestra CLI tool runs scripted window lifecycle scenarios " +
		"against the coordinator.",
	Long: `Fenestra CLI tool runs scripted window lifecycle scenarios ` +
		`against the coordinator. Currently, it supports running a ` +
		`multi-window demo with simulated surface releases and keyboard ` +
		`input.`,
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
