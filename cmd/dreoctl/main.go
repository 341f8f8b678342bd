// Dreoctl is a diagnostic command-line client for the Dreo cloud.
//
// It wraps the dreocloud library: save an access token with 'login', then
// query and update device state with 'status' and 'set', or stream pushed
// events with 'watch'.
//
// Usage:
//
//	dreoctl [command] [flags]
//
// See 'dreoctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreoctl/dreocloud/internal/logging"
	"github.com/dreoctl/dreocloud/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dreoctl",
	Short: "Dreo Cloud Diagnostic Utility",
	Long: `A command-line client for the Dreo cloud.

Resolves the regional API endpoint from your access token, encrypts
requests, and queries or updates device state. Set DREOCLOUD_LOG_LEVEL
to debug for request pipeline detail.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dreoctl %s\n", version.Full())
	},
}
