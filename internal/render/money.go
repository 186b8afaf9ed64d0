package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Money formats an amount for display: whole numbers without decimals,
// everything else with exactly two, followed by the currency code. Inputs
// that are not numeric come back verbatim (the template escapes them);
// empty input stays empty.
func Money(value, currency string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	var display string
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		display = value
	} else if n == float64(int64(n)) {
		display = strconv.FormatInt(int64(n), 10)
	} else {
		display = fmt.Sprintf("%.2f", n)
	}

	return strings.TrimSpace(display + " " + currency)
}
