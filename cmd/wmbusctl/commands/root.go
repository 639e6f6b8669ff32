// Package commands implements the wmbusctl CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// serverAddr is the wmbusd daemon address (host:port) used when a
	// command is given --remote instead of decoding locally.
	serverAddr string

	// outputFormat controls whether JSON output is pretty-printed.
	outputFormat string
)

// rootCmd is the top-level cobra command for wmbusctl.
var rootCmd = &cobra.Command{
	Use:   "wmbusctl",
	Short: "CLI companion for the wmbusd decoder",
	Long:  "wmbusctl decodes wM-Bus telegrams locally, or against a running wmbusd daemon via --remote.",
	// Silence cobra's built-in usage/error printing so we control it.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", "localhost:8080",
		"wmbusd daemon address (host:port), used with --remote")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "json",
		"output format: json, json-compact")

	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
