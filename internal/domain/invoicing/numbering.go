// Package invoicing holds the pure rules of the invoice aggregate: number
// sequencing, totals and input validation. It performs no I/O.
package invoicing

import (
	"math/big"
	"strings"
)

// SeedNumber is proposed for a factory that has no invoices yet.
const SeedNumber = "001"

// NextNumber derives the invoice number that follows last.
//
// The longest trailing run of digits is incremented and left-padded with
// zeros to its original width; the text before it is kept as is:
//
//	"001"   -> "002"
//	"A-007" -> "A-008"
//	"999"   -> "1000"
//
// When last does not end in a digit, "-1" is appended ("ABC" -> "ABC-1").
func NextNumber(last string) string {
	prefix, digits := SplitNumber(last)
	if digits == "" {
		return last + "-1"
	}
	// The run may exceed int64 ("INV" + 25 digits), so increment it exactly.
	n, _ := new(big.Int).SetString(digits, 10)
	next := n.Add(n, big.NewInt(1)).String()
	if pad := len(digits) - len(next); pad > 0 {
		next = strings.Repeat("0", pad) + next
	}
	return prefix + next
}

// SplitNumber separates an invoice number into its prefix and the maximal
// trailing run of ASCII digits. digits is empty when there is none.
func SplitNumber(number string) (prefix, digits string) {
	i := len(number)
	for i > 0 && number[i-1] >= '0' && number[i-1] <= '9' {
		i--
	}
	return number[:i], number[i:]
}
