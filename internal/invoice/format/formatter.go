// Package format holds the pure numbering and money-formatting helpers shared
// by the persistence path and the editor preview. Both call sites must agree
// bit-for-bit, so neither reimplements these.
package format

import (
	"strconv"
	"strings"
	"time"

	settingsdomain "github.com/hazimzaman/new-invoices/internal/settings/domain"
)

// NextInvoiceNumber derives the next human-facing invoice number from the
// caller's settings.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Deterministic given its input (nil settings excepted: the degraded-mode
//   fallback is the current unix-millisecond clock, so invoice creation is
//   never blocked on settings existing)
func NextInvoiceNumber(settings *settingsdomain.BusinessSettings) string {
	if settings == nil {
		return strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	candidate := settings.InvoiceNumber + 1
	if prefix := strings.TrimSpace(settings.InvoicePrefix); prefix != "" {
		return prefix + strconv.FormatInt(candidate, 10)
	}
	return strconv.FormatInt(candidate, 10)
}

// ParseNumber parses a price as entered in the editor. Unparseable or absent
// values count as zero rather than failing, matching the running-total
// behavior users see before submitting.
func ParseNumber(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

// Total sums item prices with ParseNumber semantics.
func Total(prices []string) float64 {
	var sum float64
	for _, price := range prices {
		sum += ParseNumber(price)
	}
	return sum
}

// FormatCurrency renders an amount as the client's symbol followed by the
// two-decimal value, no thousands separator. Existing PDFs and emails depend
// on this exact shape.
func FormatCurrency(amount float64, symbol string) string {
	if strings.TrimSpace(symbol) == "" {
		symbol = "$"
	}
	return symbol + strconv.FormatFloat(amount, 'f', 2, 64)
}
