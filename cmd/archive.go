package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"efarchive/internal/archive"
	"efarchive/internal/config"
	"efarchive/internal/logger"
	"efarchive/internal/render"
	"efarchive/internal/storage"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Rebuild the browsable invoice archive",
	Long: `Render every invoice in the retrieved collection to a static HTML
document, regenerate the JSON index consumed by the browsing UI, and write
the UI page itself into the archive directory.

The whole archive is rebuilt unconditionally on every run. Re-running on
unchanged input produces identical output except for the generatedAt
timestamp, so the command can be scheduled after each poll without
bookkeeping.`,
	Example: `  # Rebuild archive/ from data/invoices.json
  efarchive archive

  # Custom directories
  efarchive archive --data ./data --out ./public`,
	RunE: runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	archiveCmd.Flags().String("data", "", "Data directory (default: EF_DATA_DIR or ./data)")
	archiveCmd.Flags().String("out", "", "Archive output directory (default: EF_ARCHIVE_DIR or ./archive)")
}

func runArchive(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("archive")

	dataDir, _ := cmd.Flags().GetString("data")
	outDir, _ := cmd.Flags().GetString("out")
	if dataDir == "" || outDir == "" {
		// Directory defaults come from the environment config; credentials
		// are not needed to rebuild the archive, so a missing EF_TOKEN must
		// not block it.
		if cfg, err := config.Load(); err == nil {
			if dataDir == "" {
				dataDir = cfg.DataDir
			}
			if outDir == "" {
				outDir = cfg.ArchiveDir
			}
		}
		if dataDir == "" {
			dataDir = "data"
		}
		if outDir == "" {
			outDir = "archive"
		}
	}

	log.Info().
		Str("data_dir", dataDir).
		Str("out_dir", outDir).
		Msg("Rebuilding archive")

	indexer := archive.New(storage.NewDir(dataDir), storage.NewDir(outDir), render.New())

	index, err := indexer.Run()
	if err != nil {
		return fmt.Errorf("archive rebuild failed: %w", err)
	}

	fmt.Printf("Archive index generated: %d invoices\n", len(index.Items))
	return nil
}
