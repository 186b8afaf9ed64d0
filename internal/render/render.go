// Package render turns one loosely structured invoice record into a
// self-contained, print-ready A4 HTML document. Field access is tolerant:
// every display field resolves through an ordered alias list and degrades
// to an empty or placeholder value, so a render always completes once the
// input JSON parses.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog"
	"efarchive/internal/fieldmap"
	"efarchive/internal/logger"
)

// ErrMalformedInvoice is returned when the input cannot be parsed as JSON
// at all. This is the only way a render fails; missing fields never do.
var ErrMalformedInvoice = errors.New("malformed invoice JSON")

// qrFallbackText is encoded when an invoice carries no barcode, reference,
// identifier or number at all.
const qrFallbackText = "INVOICE"

// Renderer maps invoice records onto the invoice template.
type Renderer struct {
	log zerolog.Logger
}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{log: logger.WithComponent("render")}
}

// Parse decodes raw invoice JSON, tolerating the historical container
// shapes (bare object, array, {invoice: ...} wrapper).
func (r *Renderer) Parse(data []byte) (map[string]any, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInvoice, err)
	}
	return fieldmap.Unwrap(parsed), nil
}

// Render produces the HTML document for one invoice record.
func (r *Renderer) Render(inv map[string]any) ([]byte, error) {
	doc := r.buildDocument(inv)

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("execute invoice template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) buildDocument(inv map[string]any) document {
	currency := fieldmap.Pick(inv, currencyAliases, "BGN")

	postal := fieldmap.Pick(inv, buyerPostalAliases, "")
	city := fieldmap.Pick(inv, buyerCityAliases, "")

	doc := document{
		Number:      fieldmap.Pick(inv, numberAliases, ""),
		Date:        fieldmap.Pick(inv, dateAliases, ""),
		Due:         fieldmap.Pick(inv, dueAliases, ""),
		BuyerName:   fieldmap.Pick(inv, buyerNameAliases, ""),
		BuyerStreet: fieldmap.Pick(inv, buyerStreetAliases, ""),
		BuyerCity:   strings.TrimSpace(postal + " " + city),
		SellerName:  fieldmap.Pick(inv, sellerNameAliases, ""),
		IBAN:        fieldmap.Pick(inv, ibanAliases, ""),
		BankName:    fieldmap.Pick(inv, bankNameAliases, ""),
		Items:       r.buildItems(inv, currency),
		Subtotal:    Money(fieldmap.Pick(inv, subtotalAliases, ""), currency),
		Total:       Money(fieldmap.Pick(inv, totalAliases, ""), currency),
	}

	// The QR code must never fail the render; an empty URI simply drops
	// the code from the document.
	qrText := fieldmap.Pick(inv, qrTextAliases, qrFallbackText)
	if uri := qrDataURI(qrText); uri != "" {
		doc.QR = template.URL(uri)
	} else {
		r.log.Warn().Str("text", qrText).Msg("QR generation failed; rendering without code")
	}

	doc.Logo = brandingImage(inv, []string{"branding.logoBase64", "branding.logoUrl"})
	doc.Watermark = brandingImage(inv, []string{"branding.watermarkBase64", "branding.watermarkUrl"})

	return doc
}

// buildItems resolves the line item table, substituting a single explicit
// placeholder row when the invoice carries no items.
func (r *Renderer) buildItems(inv map[string]any, currency string) []itemRow {
	raw, ok := fieldmap.PickRaw(inv, itemsAliases)
	if !ok {
		return []itemRow{placeholderRow()}
	}
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return []itemRow{placeholderRow()}
	}

	rows := make([]itemRow, 0, len(list))
	for _, entry := range list {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name := fieldmap.Pick(item, itemNameAliases, "")
		if name == "" {
			name = "-"
		}
		rows = append(rows, itemRow{
			Name:      name,
			Qty:       fieldmap.Pick(item, itemQtyAliases, ""),
			Unit:      fieldmap.Pick(item, itemUnitAliases, ""),
			UnitPrice: Money(fieldmap.Pick(item, itemPriceAliases, ""), currency),
			Total:     Money(fieldmap.Pick(item, itemTotalAliases, ""), currency),
		})
	}
	if len(rows) == 0 {
		return []itemRow{placeholderRow()}
	}
	return rows
}

func placeholderRow() itemRow {
	return itemRow{Name: "No items", Qty: "—", Unit: "—", UnitPrice: "—", Total: "—"}
}

// brandingImage resolves an optional branding image. Only data URIs and,
// for explicit *Url fields, http(s) URLs are trusted; anything else is
// dropped rather than inserted into an src attribute.
func brandingImage(inv map[string]any, paths []string) template.URL {
	for _, path := range paths {
		value := fieldmap.Pick(inv, []string{path}, "")
		if value == "" {
			continue
		}
		if strings.HasPrefix(value, "data:image/") {
			return template.URL(value)
		}
		if strings.HasSuffix(path, "Url") &&
			(strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")) {
			return template.URL(value)
		}
	}
	return ""
}
