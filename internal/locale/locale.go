// Package locale holds the date, number and currency conventions used when
// rendering documents.
package locale

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidDate is returned when a form date cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// InputDateFormat is the calendar-date layout produced by HTML date inputs.
const InputDateFormat = "2006-01-02"

// Formatter renders dates and amounts for one locale convention.
type Formatter interface {
	// LongDate renders "17 October 2026".
	LongDate(t time.Time) string
	// WeekdayDate renders "Saturday, 17 October 2026".
	WeekdayDate(t time.Time) string
	// MonthYear renders "Oct 2026".
	MonthYear(t time.Time) string
	// ShortDate renders "17/10/2026".
	ShortDate(t time.Time) string
	// GroupDigits inserts thousands separators.
	GroupDigits(n int64) string
	// Currency prefixes the grouped numeral with the currency symbol.
	Currency(n int64) string
	// AmountInWords wraps the spelled-out amount, e.g. "(Rupees Ten Only)".
	AmountInWords(words string) string
	// Upper upper-cases headings such as the organization name.
	Upper(s string) string
}

// India is the en-IN convention: day-month-year dates and lakh/crore digit
// grouping (12,34,567).
type India struct {
	Symbol string
	Unit   string
}

// NewIndia returns the rupee convention.
func NewIndia() India {
	return India{Symbol: "₹", Unit: "Rupees"}
}

var _ Formatter = India{}

func (India) LongDate(t time.Time) string {
	return t.Format("2 January 2006")
}

func (India) WeekdayDate(t time.Time) string {
	return t.Format("Monday, 2 January 2006")
}

func (India) MonthYear(t time.Time) string {
	// en-IN abbreviates September to four letters.
	if t.Month() == time.September {
		return "Sept " + strconv.Itoa(t.Year())
	}
	return t.Format("Jan 2006")
}

func (India) ShortDate(t time.Time) string {
	return t.Format("2/1/2006")
}

// GroupDigits groups the last three digits, then pairs: 1234567 -> "12,34,567".
func (India) GroupDigits(n int64) string {
	sign := ""
	digits := strconv.FormatInt(n, 10)
	if n < 0 {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var b strings.Builder
	b.WriteString(sign)
	first := len(head) % 2
	if first > 0 {
		b.WriteString(head[:first])
	}
	for i := first; i < len(head); i += 2 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

func (in India) Currency(n int64) string {
	return in.Symbol + in.GroupDigits(n)
}

func (in India) AmountInWords(words string) string {
	return fmt.Sprintf("(%s %s Only)", in.Unit, words)
}

// Upper uses a fresh Caser per call; Casers are stateful.
func (India) Upper(s string) string {
	return cases.Upper(language.English).String(s)
}

// ParseDate reads a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(InputDateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// MaskNationalID groups a 12-digit identifier as "1234-5678-9012". Spaces and
// hyphens in the input are ignored. Anything that is not exactly 12 digits is
// returned trimmed but otherwise unchanged.
func MaskNationalID(s string) string {
	s = strings.TrimSpace(s)
	var digits strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-':
		default:
			return s
		}
	}
	d := digits.String()
	if len(d) != 12 {
		return s
	}
	return d[0:4] + "-" + d[4:8] + "-" + d[8:12]
}
