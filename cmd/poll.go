package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"efarchive/internal/config"
	"efarchive/internal/eurofaktura"
	"efarchive/internal/logger"
	"efarchive/internal/poller"
	"efarchive/internal/storage"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Pull newly issued invoices from the EuroFaktura API",
	Long: `Poll the EuroFaktura API for sales invoices issued since the last
checkpoint, deduplicate them by document identifier, persist snapshots and
advance the persisted cursor.

The cursor only ever moves forward: after a successful run it is set to one
second past the newest issuedTimestamp in the batch, so the API's inclusive
lower bound does not re-fetch the boundary record. A failed run leaves the
cursor untouched; the next scheduled invocation is the retry mechanism.

Required environment variables:
  EF_ENDPOINT  - API endpoint URL
  EF_USERNAME  - account username
  EF_TOKEN     - access token
  EF_SECRETKEY - secret key (may be empty, but is always transmitted)`,
	Example: `  # One poll run against the data directory from EF_DATA_DIR
  efarchive poll

  # Override the data directory
  efarchive poll --data ./data`,
	RunE: runPoll,
}

func init() {
	rootCmd.AddCommand(pollCmd)

	pollCmd.Flags().String("data", "", "Data directory (default: EF_DATA_DIR or ./data)")
	pollCmd.Flags().Int("timeout", 60, "HTTP timeout in seconds")
}

func runPoll(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("poll")

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Configuration invalid")
		return err
	}

	dataDir, _ := cmd.Flags().GetString("data")
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	log.Info().
		Str("endpoint", cfg.Endpoint).
		Str("data_dir", dataDir).
		Msg("Starting poll")

	ctx, cancel := signalContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	store := storage.NewDir(dataDir)
	client := eurofaktura.NewClient(cfg.Endpoint, cfg.Username, cfg.SecretKey, cfg.Token, store)

	summary, err := poller.New(client, store, cfg.InitialCursor).Run(ctx)
	if err != nil {
		return fmt.Errorf("poll run failed: %w", err)
	}

	fmt.Printf("Pulled %d invoices (%d fresh). Cursor now: %s\n",
		summary.Pulled, summary.Fresh, summary.CursorAfter)
	return nil
}

// signalContext creates a context with a timeout that is also canceled on
// SIGINT/SIGTERM, so an interrupted run leaves no partial state commit.
func signalContext(timeout time.Duration, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling run")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
