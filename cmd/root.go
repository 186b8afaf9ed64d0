package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"efarchive/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "efarchive",
	Short: "efarchive - poll, render and archive EuroFaktura sales invoices",
	Long: `efarchive is a batch pipeline for a small-business invoicing workflow:
it polls the EuroFaktura web API for newly issued sales invoices, persists
them locally, renders print-ready HTML documents and publishes a searchable
browsing archive.

The three stages (poll, render, archive) are independent batch commands
sharing a filesystem data directory, intended to be run in sequence by a
scheduler such as a CI cron job.`,
	Version: version,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
