package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wayfind",
		Short: "Client-side routing for Go-rendered web UIs",
		Long: `Wayfind matches browser locations against a declarative route
table, extracts dynamic path and query parameters, and re-renders the
selected view on every location change without a reload.

The CLI hosts a small demo application that exercises the router:

  • Ordered first-match route patterns (:params and /* catch-alls)
  • Canonical URL rewriting and fragment scroll targeting
  • Prometheus metrics at /metrics
  • Live tab sync over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
