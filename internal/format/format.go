// Package format holds the display helpers shared by the wizard summary,
// the export and the validation rule sets.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout is the MM/DD/YYYY layout used for every user-facing date.
const DateLayout = "01/02/2006"

var printer = message.NewPrinter(language.AmericanEnglish)

var hundred = decimal.NewFromInt(100)

// Currency renders an amount as US dollars with thousands separators, e.g.
// "$1,234.56". Cents are exact at any magnitude.
func Currency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole, cents, _ := strings.Cut(rounded.StringFixed(2), ".")
	return sign + "$" + groupDigits(whole) + "." + cents
}

// groupDigits inserts thousands separators into a run of decimal digits.
func groupDigits(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return printer.Sprintf("%d", n)
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Percent returns part as a whole-number percentage of total, rounded half up.
// A zero total yields 0.
func Percent(part, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	return int(part.Div(total).Mul(hundred).Round(0).IntPart())
}

// FeeAmount returns amount multiplied by a fractional fee rate (0.05 == 5%).
func FeeAmount(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// ComposeDate builds a UTC calendar date from separately entered parts.
// It returns nil when any part is unset or the combination is not a real date.
func ComposeDate(month, day, year int) *time.Time {
	if month == 0 || day == 0 || year == 0 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow (02/30 -> 03/02); reject those.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil
	}
	return &t
}

// SplitDate decomposes a date into month, day and year parts. A nil date
// yields zeros.
func SplitDate(t *time.Time) (month, day, year int) {
	if t == nil {
		return 0, 0, 0
	}
	return int(t.Month()), t.Day(), t.Year()
}

// DateNeeded renders a need-by date as MM/DD/YYYY, or "TBD" when unset.
func DateNeeded(t *time.Time) string {
	if t == nil {
		return "TBD"
	}
	return t.Format(DateLayout)
}

// ParseDate parses a strict MM/DD/YYYY string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
