package format

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	settingsdomain "github.com/hazimzaman/new-invoices/internal/settings/domain"
)

func TestNextInvoiceNumber_WithPrefix(t *testing.T) {
	settings := &settingsdomain.BusinessSettings{
		InvoiceNumber: 7,
		InvoicePrefix: "INV-",
	}

	assert.Equal(t, "INV-8", NextInvoiceNumber(settings))
}

func TestNextInvoiceNumber_WithoutPrefix(t *testing.T) {
	settings := &settingsdomain.BusinessSettings{InvoiceNumber: 41}

	assert.Equal(t, "42", NextInvoiceNumber(settings))
}

func TestNextInvoiceNumber_TrimsPrefixWhitespace(t *testing.T) {
	settings := &settingsdomain.BusinessSettings{
		InvoiceNumber: 0,
		InvoicePrefix: "  ",
	}

	assert.Equal(t, "1", NextInvoiceNumber(settings))
}

func TestNextInvoiceNumber_NilSettingsFallsBackToTimestamp(t *testing.T) {
	got := NextInvoiceNumber(nil)

	assert.NotEmpty(t, got)
	parsed, err := strconv.ParseInt(got, 10, 64)
	assert.NoError(t, err)
	assert.Greater(t, parsed, int64(0))
}

func TestParseNumber_LenientOnGarbage(t *testing.T) {
	assert.Equal(t, 10.5, ParseNumber(" 10.5 "))
	assert.Equal(t, 0.0, ParseNumber("abc"))
	assert.Equal(t, 0.0, ParseNumber(""))
	assert.Equal(t, -3.0, ParseNumber("-3"))
}

func TestTotal_SkipsUnparseablePrices(t *testing.T) {
	total := Total([]string{"10.00", "5.5", "not-a-number", ""})

	assert.Equal(t, 15.5, total)
}

func TestTotal_EmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "€7.00", FormatCurrency(7, "€"))
	assert.Equal(t, "$1234.50", FormatCurrency(1234.5, "$"))
	assert.Equal(t, "RM0.99", FormatCurrency(0.99, "RM"))
}

func TestFormatCurrency_DefaultsToDollar(t *testing.T) {
	assert.Equal(t, "$7.00", FormatCurrency(7, ""))
	assert.Equal(t, "$7.00", FormatCurrency(7, "  "))
}
