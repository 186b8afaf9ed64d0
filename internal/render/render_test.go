package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"efarchive/internal/render"
)

func renderString(t *testing.T, inv map[string]any) string {
	t.Helper()
	doc, err := render.New().Render(inv)
	require.NoError(t, err)
	return string(doc)
}

func TestMoney(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		currency string
		want     string
	}{
		{"whole number", "120", "BGN", "120 BGN"},
		{"fractional", "120.5", "BGN", "120.50 BGN"},
		{"whole float", "120.00", "BGN", "120 BGN"},
		{"non-numeric passes through", "N/A", "BGN", "N/A BGN"},
		{"empty stays empty", "", "BGN", ""},
		{"no currency", "99.9", "", "99.90"},
		{"negative", "-10.25", "EUR", "-10.25 EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.Money(tt.value, tt.currency))
		})
	}
}

func TestParse(t *testing.T) {
	r := render.New()

	inv, err := r.Parse([]byte(`{"number":"0001"}`))
	require.NoError(t, err)
	assert.Equal(t, "0001", inv["number"])

	inv, err = r.Parse([]byte(`[{"number":"0002"}]`))
	require.NoError(t, err)
	assert.Equal(t, "0002", inv["number"])

	inv, err = r.Parse([]byte(`{"invoice":{"number":"0003"}}`))
	require.NoError(t, err)
	assert.Equal(t, "0003", inv["number"])

	_, err = r.Parse([]byte(`{not json`))
	assert.ErrorIs(t, err, render.ErrMalformedInvoice)
}

func TestRenderEscapesUserControlledFields(t *testing.T) {
	html := renderString(t, map[string]any{
		"number":    `10<script>alert("x")</script>`,
		"buyerName": `O'Neill & Sons <b>"Ltd"</b>`,
	})

	assert.NotContains(t, html, "<script>alert")
	assert.NotContains(t, html, `<b>"Ltd"</b>`)
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "&amp; Sons")
}

func TestRenderFieldAliases(t *testing.T) {
	html := renderString(t, map[string]any{
		"DocumentNumber":  "0047",
		"documentDate":    "2026-01-30",
		"dueDate":         "2026-02-14",
		"customerName":    "ACME Ltd",
		"buyerStreet":     "1 Main St",
		"buyerPostalCode": "1000",
		"buyerCity":       "Sofia",
		"currency":        "EUR",
		"documentAmount":  120.5,
	})

	assert.Contains(t, html, "0047")
	assert.Contains(t, html, "2026-01-30")
	assert.Contains(t, html, "2026-02-14")
	assert.Contains(t, html, "ACME Ltd")
	assert.Contains(t, html, "1 Main St")
	assert.Contains(t, html, "1000 Sofia")
	assert.Contains(t, html, "120.50 EUR")
}

func TestRenderMissingItemsShowsPlaceholder(t *testing.T) {
	html := renderString(t, map[string]any{"number": "0001"})
	assert.Contains(t, html, "No items")
}

func TestRenderLineItems(t *testing.T) {
	html := renderString(t, map[string]any{
		"number":           "0001",
		"documentCurrency": "BGN",
		"Items": []any{
			map[string]any{
				"productName":             "Consulting",
				"quantity":                float64(2),
				"unit":                    "h",
				"priceInDocumentCurrency": float64(60),
				"amount":                  float64(120),
			},
			map[string]any{
				"description": "Hosting",
				"qty":         "1",
				"price":       "9.99",
				"total":       "9.99",
			},
		},
	})

	assert.Contains(t, html, "Consulting")
	assert.Contains(t, html, "60 BGN")
	assert.Contains(t, html, "120 BGN")
	assert.Contains(t, html, "Hosting")
	assert.Contains(t, html, "9.99 BGN")
	assert.NotContains(t, html, "No items")
}

func TestRenderEmbedsQRCodeAsDataURI(t *testing.T) {
	html := renderString(t, map[string]any{
		"number":     "0001",
		"documentID": "60_77740",
	})

	assert.Contains(t, html, `src="data:image/png;base64,`)
}

func TestQRTextPriority(t *testing.T) {
	// The barcode field wins over the document identifier: the two inputs
	// must produce different QR payloads, hence different images.
	withBarcode := renderString(t, map[string]any{
		"documentIdBarCode": "PAY-REF-1",
		"documentID":        "60_1",
	})
	withoutBarcode := renderString(t, map[string]any{
		"documentID": "60_1",
	})

	assert.NotEqual(t, qrPayload(withBarcode), qrPayload(withoutBarcode))
}

func qrPayload(html string) string {
	const marker = `src="data:image/png;base64,`
	i := strings.Index(html, marker)
	if i < 0 {
		return ""
	}
	rest := html[i+len(marker):]
	if j := strings.Index(rest, `"`); j >= 0 {
		return rest[:j]
	}
	return rest
}

func TestRenderIsSelfContained(t *testing.T) {
	html := renderString(t, map[string]any{
		"number":    "0001",
		"buyerName": "ACME",
	})

	assert.NotContains(t, html, `src="http`, "document must not fetch external resources")
	assert.NotContains(t, html, `href="http`)
}

func TestBrandingImages(t *testing.T) {
	logo := "data:image/png;base64,aGVsbG8="

	html := renderString(t, map[string]any{
		"number":   "0001",
		"branding": map[string]any{"logoBase64": logo},
	})
	assert.Contains(t, html, logo)

	// Non-data, non-URL branding values are dropped, not injected.
	html = renderString(t, map[string]any{
		"number":   "0001",
		"branding": map[string]any{"logoBase64": "javascript:alert(1)"},
	})
	assert.NotContains(t, html, "javascript:alert")
}
