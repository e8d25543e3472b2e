// Package numwords spells out rupee amounts using the Indian numbering system
// (thousand, lakh, crore).
package numwords

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for negative or non-numeric amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// AmountError describes why an amount was rejected.
type AmountError struct {
	Input  string
	Reason string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("invalid amount %q: %s", e.Input, e.Reason)
}

func (e *AmountError) Unwrap() error {
	return ErrInvalidAmount
}

const (
	thousand = 1_000
	lakh     = 100_000
	crore    = 10_000_000
)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// ToWords returns the English words for n, e.g. 1500 -> "One Thousand Five Hundred".
// Compound tens are hyphenated ("Twenty-Three").
func ToWords(n int64) (string, error) {
	if n < 0 {
		return "", &AmountError{Input: fmt.Sprint(n), Reason: "must not be negative"}
	}
	return spell(n), nil
}

func spell(n int64) string {
	switch {
	case n == 0:
		return "Zero"
	case n < thousand:
		return belowThousand(n)
	case n < lakh:
		return join(belowThousand(n/thousand)+" Thousand", belowThousand(n%thousand))
	case n < crore:
		return join(belowThousand(n/lakh)+" Lakh", belowLakh(n%lakh))
	default:
		// Crores recurse through the full converter so that both the quotient
		// and the remainder pick up lakh/thousand grouping.
		rest := ""
		if r := n % crore; r != 0 {
			rest = spell(r)
		}
		return join(spell(n/crore)+" Crore", rest)
	}
}

func belowLakh(n int64) string {
	if n < thousand {
		return belowThousand(n)
	}
	return join(belowThousand(n/thousand)+" Thousand", belowThousand(n%thousand))
}

func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + "-" + ones[n%10]
	default:
		return join(ones[n/100]+" Hundred", belowThousand(n%100))
	}
}

func join(head, tail string) string {
	if tail == "" {
		return head
	}
	return head + " " + tail
}

// ParseAmount reads a form amount. Surrounding whitespace and Indian digit
// grouping commas are accepted; any fractional part is truncated.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return decimal.Zero, &AmountError{Input: raw, Reason: "empty"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &AmountError{Input: raw, Reason: "not a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &AmountError{Input: raw, Reason: "must not be negative"}
	}
	d = d.Truncate(0)
	if !d.BigInt().IsInt64() {
		return decimal.Zero, &AmountError{Input: raw, Reason: "too large"}
	}
	return d, nil
}

// Amount is a whole-rupee amount together with its words form.
type Amount struct {
	Numeral int64  `json:"numeral"`
	Words   string `json:"words"`
}

// NewAmount spells out n.
func NewAmount(n int64) (Amount, error) {
	w, err := ToWords(n)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Numeral: n, Words: w}, nil
}

// ParseToAmount combines ParseAmount and NewAmount.
func ParseToAmount(raw string) (Amount, error) {
	d, err := ParseAmount(raw)
	if err != nil {
		return Amount{}, err
	}
	return NewAmount(d.IntPart())
}
