package archive

import (
	_ "embed"
	"fmt"
)

// The browsing UI is a static page shipped with the archive output. It
// fetches invoices.index.json, renders a filterable table and batch-prints
// selected invoices through popup iframes. Regenerated alongside the index
// so the served directory is always complete.

//go:embed static/index.html
var uiIndexHTML []byte

//go:embed static/app.js
var uiAppJS []byte

func (ix *Indexer) writeUI() error {
	if err := ix.out.WriteFile("index.html", uiIndexHTML); err != nil {
		return fmt.Errorf("write UI page: %w", err)
	}
	if err := ix.out.WriteFile("app.js", uiAppJS); err != nil {
		return fmt.Errorf("write UI script: %w", err)
	}
	return nil
}
