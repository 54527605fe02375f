package billing

import (
	"fmt"
	"regexp"
	"strconv"
)

// InvoiceNumberWidth is the fixed width of an invoice number
const InvoiceNumberWidth = 8

var numericInvoiceNumber = regexp.MustCompile(`^\d+$`)

// NextInvoiceNumber returns the number following the highest purely numeric
// value in existing, zero-padded to InvoiceNumberWidth digits. Non-numeric
// legacy numbers are ignored. existing must include archived invoices.
func NextInvoiceNumber(existing []string) string {
	var highest uint64
	for _, n := range existing {
		if !numericInvoiceNumber.MatchString(n) {
			continue
		}
		v, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			// out of range for uint64; cannot be the base of an 8-digit sequence
			continue
		}
		if v > highest {
			highest = v
		}
	}
	return fmt.Sprintf("%0*d", InvoiceNumberWidth, highest+1)
}

// IsInvoiceNumber reports whether s is a well-formed invoice number
func IsInvoiceNumber(s string) bool {
	return len(s) >= InvoiceNumberWidth && numericInvoiceNumber.MatchString(s)
}
