// Package archive drives the invoice renderer across the whole retrieved
// collection and publishes a searchable index: one static HTML document per
// invoice, a JSON index consumed by the browsing UI, and the UI itself.
// The archive is fully regenerated on every run; re-running on unchanged
// input is byte-identical except for the generatedAt stamp.
package archive

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"efarchive/internal/fieldmap"
	"efarchive/internal/logger"
	"efarchive/internal/render"
	"efarchive/internal/storage"
)

const (
	collectionFile = "invoices.json"
	indexFile      = "invoices.index.json"
)

// Index is the contract consumed by the browsing UI. All item fields are
// pre-escaped display strings.
type Index struct {
	GeneratedAt string  `json:"generatedAt"`
	Items       []Entry `json:"items"`
}

// Entry is one projected summary row of the index.
type Entry struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Date   string `json:"date"`
	Buyer  string `json:"buyer"`
	Total  string `json:"total"`
}

var (
	idAliases       = []string{"documentID", "documentId", "id", "number"}
	numberAliases   = []string{"number", "DocumentNumber", "documentNumber"}
	dateAliases     = []string{"date", "DocumentDate", "documentDate"}
	buyerAliases    = []string{"buyerName", "BuyerName", "customerName"}
	currencyAliases = []string{"documentCurrency", "DocumentCurrency", "currency"}
	totalAliases    = []string{"documentAmount", "amountLeftToBePaid", "totalNetAmount", "totalAmountInVatReportingCurr"}
)

// unsafeIDChars matches everything outside the filename-safe set. Distinct
// raw identifiers differing only in disallowed characters can collide after
// sanitization; accepted limitation for this dataset.
var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9_\-:.]`)

// SanitizeID collapses every character outside [A-Za-z0-9_-:.] to an
// underscore, producing a safe output filename.
func SanitizeID(raw string) string {
	return unsafeIDChars.ReplaceAllString(raw, "_")
}

// Indexer rebuilds the archive from the poller's persisted collection.
type Indexer struct {
	data     storage.Store
	out      storage.Store
	renderer *render.Renderer
	log      zerolog.Logger
	now      func() time.Time
}

// New creates an Indexer reading the collection from data and writing the
// archive artifacts to out.
func New(data, out storage.Store, renderer *render.Renderer) *Indexer {
	return &Indexer{
		data:     data,
		out:      out,
		renderer: renderer,
		log:      logger.WithComponent("archive"),
		now:      time.Now,
	}
}

// Run regenerates every per-invoice document, the index JSON and the
// browsing UI. Input order is preserved in the index.
func (ix *Indexer) Run() (*Index, error) {
	invoices, err := ix.loadCollection()
	if err != nil {
		return nil, err
	}

	index := &Index{
		GeneratedAt: ix.now().UTC().Format(time.RFC3339),
		Items:       make([]Entry, 0, len(invoices)),
	}

	for i, inv := range invoices {
		rawID := fieldmap.Pick(inv, idAliases, "")
		if rawID == "" {
			rawID = fmt.Sprintf("inv_%d", i+1)
		}
		id := SanitizeID(rawID)

		doc, err := ix.renderer.Render(inv)
		if err != nil {
			return nil, fmt.Errorf("render invoice %s: %w", id, err)
		}
		if err := ix.out.WriteFile("html/"+id+".html", doc); err != nil {
			return nil, fmt.Errorf("write invoice %s: %w", id, err)
		}

		currency := fieldmap.Pick(inv, currencyAliases, "")
		index.Items = append(index.Items, Entry{
			ID:     html.EscapeString(id),
			Number: html.EscapeString(fieldmap.Pick(inv, numberAliases, rawID)),
			Date:   html.EscapeString(fieldmap.Pick(inv, dateAliases, "")),
			Buyer:  html.EscapeString(fieldmap.Pick(inv, buyerAliases, "")),
			Total:  html.EscapeString(render.Money(fieldmap.Pick(inv, totalAliases, ""), currency)),
		})
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal index: %w", err)
	}
	if err := ix.out.WriteFile(indexFile, data); err != nil {
		return nil, fmt.Errorf("write index: %w", err)
	}

	if err := ix.writeUI(); err != nil {
		return nil, err
	}

	ix.log.Info().
		Int("invoices", len(index.Items)).
		Msg("Archive index generated")

	return index, nil
}

// loadCollection reads the cumulative invoice collection, tolerating the
// container shapes older exports used: a bare array, {items: [...]},
// {invoices: [...]}, or a single object. A missing file is an empty archive.
func (ix *Indexer) loadCollection() ([]map[string]any, error) {
	if !ix.data.Exists(collectionFile) {
		ix.log.Warn().Str("file", collectionFile).Msg("No invoice collection found; archive will be empty")
		return nil, nil
	}

	raw, err := ix.data.ReadFile(collectionFile)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse collection: %w", err)
	}
	return asArray(parsed), nil
}

func asArray(parsed any) []map[string]any {
	toMaps := func(list []any) []map[string]any {
		out := make([]map[string]any, 0, len(list))
		for _, entry := range list {
			if obj, ok := entry.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	}

	switch v := parsed.(type) {
	case []any:
		return toMaps(v)
	case map[string]any:
		if list, ok := v["items"].([]any); ok {
			return toMaps(list)
		}
		if list, ok := v["invoices"].([]any); ok {
			return toMaps(list)
		}
		return []map[string]any{v}
	default:
		return nil
	}
}
