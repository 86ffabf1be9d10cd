package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	PositionBefore = "before"
	PositionAfter  = "after"
)

// Formatter renders money amounts the way the store is configured to
// display them: a symbol, a position relative to the number, and
// two-decimal amounts with thousands separators.
type Formatter struct {
	Symbol   string
	Position string
}

// Amount formats d with thousands separators and two decimal places,
// without the currency symbol.
func (f Formatter) Amount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// Filter wraps an already-formatted amount with the currency symbol.
// Passing an empty string yields the bare symbol.
func (f Formatter) Filter(amount string) string {
	if f.Position == PositionAfter {
		return amount + f.Symbol
	}
	return f.Symbol + amount
}

// FilterAmount is Filter(Amount(d)).
func (f Formatter) FilterAmount(d decimal.Decimal) string {
	return f.Filter(f.Amount(d))
}

// Before reports whether the symbol renders before the amount.
func (f Formatter) Before() bool {
	return f.Position != PositionAfter
}
