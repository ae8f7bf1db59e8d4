package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "pfrun",
	Short: "load and smoke-test a PFMAP tile grid",
	Long: `pfrun is a small command-line tool for exercising the tile grid
package against a PFMAP file:
	- load a map and build its default ground navigation layer,
	- request a path between two world-space points,
	- run a hover/selection check against a synthetic entity set.`,
}

// Execute adds all child commands to the root command and runs it. It is
// called by main.main and only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
