package poller

import (
	"encoding/json"
	"fmt"
	"time"

	"efarchive/internal/storage"
)

// CursorLayout is the timestamp format the API uses for issuedTimestamp
// bounds. All cursor arithmetic happens in UTC.
const CursorLayout = "2006-01-02 15:04:05"

// stateFile is the only long-lived mutable record in the pipeline. It is
// fully read at the start of a run and fully overwritten at the end.
const stateFile = "state.json"

// State is the persisted poll checkpoint.
type State struct {
	// IssuedTimestampFrom is the lower bound for the next listing call.
	// It only ever moves forward.
	IssuedTimestampFrom string `json:"issuedTimestampFrom"`

	// SeenDocumentIDs are the most recently pulled document identifiers,
	// kept for dedup across the inclusive cursor boundary. Capped to
	// seenCap entries; older duplicates are excluded by the cursor itself.
	SeenDocumentIDs []string `json:"seenDocumentIDs,omitempty"`
}

func loadState(store storage.Store, initialCursor string) (*State, error) {
	if !store.Exists(stateFile) {
		return &State{IssuedTimestampFrom: initialCursor}, nil
	}

	data, err := store.ReadFile(stateFile)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	if state.IssuedTimestampFrom == "" {
		state.IssuedTimestampFrom = initialCursor
	}
	return &state, nil
}

func saveState(store storage.Store, state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := store.WriteFile(stateFile, data); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// advanceCursor returns the cursor that should follow current after a batch
// whose maximum usable issuedTimestamp is newest. The next bound is newest
// plus one second, computed with real UTC calendar arithmetic, so the API's
// inclusive lower bound behaves exclusively on the next run. The cursor
// never moves backwards.
func advanceCursor(current string, newest time.Time) string {
	next := newest.Add(time.Second)
	if cur, err := time.ParseInLocation(CursorLayout, current, time.UTC); err == nil {
		if !next.After(cur) {
			return current
		}
	}
	return next.Format(CursorLayout)
}

// parseTimestamp parses an API-format timestamp as UTC.
func parseTimestamp(value string) (time.Time, bool) {
	t, err := time.ParseInLocation(CursorLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
