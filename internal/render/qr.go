package render

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSizePx is the rendered QR edge length. Large enough to scan from an
// A4 print at the layout's 28mm box.
const qrSizePx = 220

// qrDataURI encodes text as a QR code PNG embedded in a data URI, so the
// rendered document needs no network access. Returns "" on failure; the
// document then renders without a code.
func qrDataURI(text string) string {
	if text == "" {
		return ""
	}
	png, err := qrcode.Encode(text, qrcode.Medium, qrSizePx)
	if err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
