// Package codegen produces the human-readable identifiers used across the
// system: product SKUs, per-supplier product codes and transaction numbers.
// None of the random formats are globally unique on their own; uniqueness is
// enforced by database constraints and collisions surface as conflicts.
package codegen

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SKU builds a product SKU from a type/name hint: the first three characters
// of the hint uppercased, a YYMMDD date code (UTC) and a random 4-digit
// suffix, hyphen-joined.
func SKU(hint string, now time.Time) string {
	typeCode := strings.TrimSpace(hint)
	if len(typeCode) > 3 {
		typeCode = typeCode[:3]
	}
	typeCode = strings.ToUpper(typeCode)

	dateCode := now.UTC().Format("060102")
	randomCode := 1000 + rand.Intn(9000)

	return fmt.Sprintf("%s-%s-%d", typeCode, dateCode, randomCode)
}

// SupplierProductCode builds a product code from the supplier code and a
// sequence number zero-padded to three digits. The sequence number is the
// caller's responsibility; concurrent creations for the same supplier can
// produce duplicates, which the unique SKU index rejects.
func SupplierProductCode(supplierCode string, seq int) string {
	return fmt.Sprintf("%s-%03d", supplierCode, seq)
}

// NextInvoiceNumber parses the last incrementing invoice number ("INV-<n>"),
// increments it and re-pads to three digits. An empty or unparseable last
// number starts the sequence at INV-001.
func NextInvoiceNumber(last string) string {
	n := 0
	if last != "" {
		parsed, err := strconv.Atoi(strings.TrimPrefix(last, "INV-"))
		if err == nil {
			n = parsed
		}
	}
	return fmt.Sprintf("INV-%03d", n+1)
}

// RandomNumber builds a timestamped transaction number:
// "{PREFIX}-{YYYYMMDD}-{6 random base36 chars}".
func RandomNumber(prefix string, now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.Intn(len(base36Alphabet))]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}
