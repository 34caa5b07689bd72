// Package schedule holds the display-time derivations for events: price
// formatting, the door-price fallback and calendar-day classification.  None
// of these values are persisted.
package schedule

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iliyamo/livehouse/internal/model"
)

const (
	// CurrencySymbol prefixes every formatted price.
	CurrencySymbol = "¥"
	// DoorSurcharge is added to the advance price when no door price is set.
	DoorSurcharge = 500
	// NoPrice is shown when no door price can be derived.
	NoPrice = "---"
)

var printer = message.NewPrinter(language.Japanese)

// ParsePrice strips every non-digit from s and parses what is left as a
// base-10 integer.  It reports false when s has no digits or the number does
// not fit in an int64.
func ParsePrice(s string) (int64, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Yen formats n with the currency symbol and thousands separators.
func Yen(n int64) string {
	return CurrencySymbol + printer.Sprintf("%d", n)
}

// FormatCurrency normalizes a typed price.  "2000", "2,000" and "¥2,000" all
// become "¥2,000"; text without digits is returned unchanged.
func FormatCurrency(value string) string {
	n, ok := ParsePrice(value)
	if !ok {
		return value
	}
	return Yen(n)
}

// EffectiveDoorPrice returns the price shown for paying at the door.
func EffectiveDoorPrice(e model.Event) string {
	if e.DoorPrice != "" {
		return e.DoorPrice
	}
	n, ok := ParsePrice(e.TicketPrice)
	if !ok {
		return NoPrice
	}
	return Yen(n + DoorSurcharge)
}
