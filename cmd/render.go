package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"efarchive/internal/logger"
	"efarchive/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a single invoice JSON file to printable HTML",
	Long: `Render one invoice record onto the A4 invoice template and write a
self-contained HTML document (inline styles, QR code embedded as a data
URI, no external fetches).

The input schema is tolerant: every display field is resolved through an
ordered list of known key aliases and degrades to an empty or placeholder
value when absent. Only unparseable JSON fails the render.`,
	Example: `  # Render one pulled invoice
  efarchive render --in data/tmp_invoice.json --out archive/html/60_77740.html`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("in", "", "Input invoice JSON file (required)")
	renderCmd.Flags().String("out", "", "Output HTML file (required)")
	_ = renderCmd.MarkFlagRequired("in")
	_ = renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("render")

	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("out")

	data, err := os.ReadFile(inPath)
	if err != nil {
		log.Error().Err(err).Str("file", inPath).Msg("Failed to read invoice file")
		return fmt.Errorf("failed to read invoice file: %w", err)
	}

	renderer := render.New()

	inv, err := renderer.Parse(data)
	if err != nil {
		if errors.Is(err, render.ErrMalformedInvoice) {
			log.Error().Err(err).Str("file", inPath).Msg("Invoice JSON is malformed")
			return fmt.Errorf("invoice file %s is not valid JSON: %w", inPath, err)
		}
		return err
	}

	doc, err := renderer.Render(inv)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, doc, 0644); err != nil {
		log.Error().Err(err).Str("file", outPath).Msg("Failed to write rendered document")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info().
		Str("in", inPath).
		Str("out", outPath).
		Int("bytes", len(doc)).
		Msg("Invoice rendered")

	fmt.Printf("Rendered: %s\n", outPath)
	return nil
}
