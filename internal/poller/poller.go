// Package poller pulls newly issued invoices from the remote API, dedups
// them against the persisted checkpoint, and appends the fresh ones to the
// cumulative local collection read by the archive stage.
package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"efarchive/internal/eurofaktura"
	"efarchive/internal/fieldmap"
	"efarchive/internal/logger"
	"efarchive/internal/storage"
)

const (
	// collectionFile is the cumulative set of all fresh invoices pulled so
	// far. It is the archive indexer's input.
	collectionFile = "invoices.json"

	summaryFile = "summary.json"

	// seenCap bounds the persisted seen-identifier set. A dedup aid across
	// the inclusive cursor boundary, not a correctness guarantee: records
	// older than the cursor are already excluded by time.
	seenCap = 2000
)

// documentIDAliases are the key spellings under which a document identifier
// has been observed.
var documentIDAliases = []string{"documentID", "documentId", "id"}

// issuedTimestampAliases are the key spellings of the issue timestamp.
var issuedTimestampAliases = []string{"issuedTimestamp", "IssuedTimestamp"}

// InvoiceLister is the one remote operation the poller depends on.
type InvoiceLister interface {
	ListIssuedInvoices(ctx context.Context, issuedFrom string) ([]eurofaktura.Invoice, error)
}

// Summary records the outcome of one poll run.
type Summary struct {
	RunID        string `json:"runId"`
	GeneratedAt  string `json:"generatedAt"`
	Pulled       int    `json:"pulled"`
	Fresh        int    `json:"fresh"`
	Duplicates   int    `json:"duplicates"`
	SkippedNoID  int    `json:"skippedNoId"`
	CursorBefore string `json:"issuedTimestampFrom_used"`
	CursorAfter  string `json:"issuedTimestampFrom_next"`
}

// Poller runs the incremental pull. One instance per run is fine; it holds
// no state between runs beyond what the store persists.
type Poller struct {
	lister        InvoiceLister
	store         storage.Store
	initialCursor string
	log           zerolog.Logger
	now           func() time.Time
}

// New creates a Poller. initialCursor seeds the checkpoint when no state
// file exists yet.
func New(lister InvoiceLister, store storage.Store, initialCursor string) *Poller {
	return &Poller{
		lister:        lister,
		store:         store,
		initialCursor: initialCursor,
		log:           logger.WithComponent("poller"),
		now:           time.Now,
	}
}

// Run executes one poll: list, snapshot, dedup, append, advance, commit.
// On any error the persisted state is left untouched.
func (p *Poller) Run(ctx context.Context) (*Summary, error) {
	state, err := loadState(p.store, p.initialCursor)
	if err != nil {
		return nil, err
	}
	cursorBefore := state.IssuedTimestampFrom

	p.log.Info().
		Str("cursor", cursorBefore).
		Msg("Starting poll run")

	invoices, err := p.lister.ListIssuedInvoices(ctx, cursorBefore)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		// Snapshots record an empty list, not JSON null.
		invoices = []eurofaktura.Invoice{}
	}

	runStamp := p.now().UTC().Format("2006-01-02T15-04-05Z")
	if err := p.writeJSON(fmt.Sprintf("invoices_%s.json", runStamp), invoices); err != nil {
		return nil, err
	}

	fresh, skippedNoID := p.dedup(state, invoices)
	if fresh == nil {
		fresh = []eurofaktura.Invoice{}
	}

	if len(fresh) > 0 {
		if err := p.appendToCollection(fresh); err != nil {
			return nil, err
		}
	}
	if err := p.writeJSON(fmt.Sprintf("fresh_%s.json", runStamp), fresh); err != nil {
		return nil, err
	}

	newest, found := newestTimestamp(invoices)
	if found {
		state.IssuedTimestampFrom = advanceCursor(cursorBefore, newest)
	} else if len(invoices) > 0 {
		p.log.Warn().
			Int("pulled", len(invoices)).
			Msg("No record carried a usable issuedTimestamp; cursor left unchanged")
	}

	rememberSeen(state, fresh)

	if err := saveState(p.store, state); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:        uuid.NewString(),
		GeneratedAt:  p.now().UTC().Format(time.RFC3339),
		Pulled:       len(invoices),
		Fresh:        len(fresh),
		Duplicates:   len(invoices) - len(fresh) - skippedNoID,
		SkippedNoID:  skippedNoID,
		CursorBefore: cursorBefore,
		CursorAfter:  state.IssuedTimestampFrom,
	}
	if err := p.writeJSON(summaryFile, summary); err != nil {
		return nil, err
	}

	p.log.Info().
		Str("run_id", summary.RunID).
		Int("pulled", summary.Pulled).
		Int("fresh", summary.Fresh).
		Int("duplicates", summary.Duplicates).
		Int("skipped_no_id", summary.SkippedNoID).
		Str("cursor_before", summary.CursorBefore).
		Str("cursor_after", summary.CursorAfter).
		Msg("Poll run completed")

	return summary, nil
}

// dedup splits the batch into fresh records and counts the id-less ones.
// Records without any identifier are skipped outright; they cannot be
// deduplicated and the cursor still covers them by time.
func (p *Poller) dedup(state *State, invoices []eurofaktura.Invoice) ([]eurofaktura.Invoice, int) {
	seen := make(map[string]bool, len(state.SeenDocumentIDs))
	for _, id := range state.SeenDocumentIDs {
		seen[id] = true
	}

	var fresh []eurofaktura.Invoice
	skippedNoID := 0
	for _, inv := range invoices {
		id := fieldmap.Pick(inv, documentIDAliases, "")
		if id == "" {
			skippedNoID++
			p.log.Debug().Msg("Skipping record without a document identifier")
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		fresh = append(fresh, inv)
	}
	return fresh, skippedNoID
}

// appendToCollection adds fresh records to the cumulative invoices file.
func (p *Poller) appendToCollection(fresh []eurofaktura.Invoice) error {
	var collection []eurofaktura.Invoice
	if p.store.Exists(collectionFile) {
		data, err := p.store.ReadFile(collectionFile)
		if err != nil {
			return fmt.Errorf("read collection: %w", err)
		}
		if err := json.Unmarshal(data, &collection); err != nil {
			return fmt.Errorf("parse collection: %w", err)
		}
	}
	collection = append(collection, fresh...)
	return p.writeJSON(collectionFile, collection)
}

func (p *Poller) writeJSON(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := p.store.WriteFile(name, data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// newestTimestamp scans the whole batch, duplicates included, for the
// maximum issuedTimestamp.
func newestTimestamp(invoices []eurofaktura.Invoice) (time.Time, bool) {
	var newest time.Time
	found := false
	for _, inv := range invoices {
		raw := fieldmap.Pick(inv, issuedTimestampAliases, "")
		if raw == "" {
			continue
		}
		t, ok := parseTimestamp(raw)
		if !ok {
			continue
		}
		if !found || t.After(newest) {
			newest = t
			found = true
		}
	}
	return newest, found
}

// rememberSeen appends the fresh ids to the seen set, newest last, and
// trims the set to the most recent seenCap entries.
func rememberSeen(state *State, fresh []eurofaktura.Invoice) {
	for _, inv := range fresh {
		if id := fieldmap.Pick(inv, documentIDAliases, ""); id != "" {
			state.SeenDocumentIDs = append(state.SeenDocumentIDs, id)
		}
	}
	if len(state.SeenDocumentIDs) > seenCap {
		state.SeenDocumentIDs = state.SeenDocumentIDs[len(state.SeenDocumentIDs)-seenCap:]
	}
}
