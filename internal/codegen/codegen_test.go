package codegen

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSKUFormat(t *testing.T) {
	now := time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)

	sku := SKU("laptop", now)
	assert.Regexp(t, regexp.MustCompile(`^LAP-240715-[1-9][0-9]{3}$`), sku)
}

func TestSKUShortHint(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	sku := SKU("tv", now)
	assert.Regexp(t, regexp.MustCompile(`^TV-240102-[1-9][0-9]{3}$`), sku)
}

func TestSupplierProductCode(t *testing.T) {
	assert.Equal(t, "ACME-001", SupplierProductCode("ACME", 1))
	assert.Equal(t, "ACME-042", SupplierProductCode("ACME", 42))
	assert.Equal(t, "ACME-1000", SupplierProductCode("ACME", 1000))
}

func TestNextInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-001", NextInvoiceNumber(""))
	assert.Equal(t, "INV-002", NextInvoiceNumber("INV-001"))
	assert.Equal(t, "INV-100", NextInvoiceNumber("INV-099"))
	assert.Equal(t, "INV-1000", NextInvoiceNumber("INV-999"))

	// unparseable last number restarts the sequence
	assert.Equal(t, "INV-001", NextInvoiceNumber("INV-20240715-ABCDEF"))
}

func TestNextInvoiceNumberMonotonic(t *testing.T) {
	last := ""
	prev := ""
	for i := 0; i < 5; i++ {
		next := NextInvoiceNumber(last)
		assert.NotEqual(t, prev, next)
		assert.Greater(t, next, prev)
		prev = next
		last = next
	}
	assert.Equal(t, "INV-005", last)
}

func TestRandomNumberFormat(t *testing.T) {
	now := time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)

	num := RandomNumber("PAYMENT", now)
	assert.Regexp(t, regexp.MustCompile(`^PAYMENT-20240715-[0-9A-Z]{6}$`), num)

	inv := RandomNumber("INV", now)
	assert.Regexp(t, regexp.MustCompile(`^INV-20240715-[0-9A-Z]{6}$`), inv)
}
