// Package rates owns the fixed, ordered list of destination countries.
// The displayed country menu, the digit a caller keys in, and the rate
// lookup all derive from the same slice, so the three can never drift
// apart when a country is added or removed.
package rates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is one destination country with its currency and the rate
// expressed as local-currency units per one USD.
type Entry struct {
	Country string          `json:"-"`
	Code    string          `json:"code"`
	Rate    decimal.Decimal `json:"rate"`
}

// Table is an ordered rate table. The slice order is the menu order.
type Table struct {
	entries []Entry
}

func New(entries []Entry) *Table {
	return &Table{entries: entries}
}

// Default returns the table the service ships with.
func Default() *Table {
	return New([]Entry{
		{Country: "Ghana", Code: "GHS", Rate: decimal.RequireFromString("5.8")},
		{Country: "Nigeria", Code: "NGN", Rate: decimal.RequireFromString("900")},
		{Country: "Kenya", Code: "KES", Rate: decimal.RequireFromString("130")},
		{Country: "South Africa", Code: "ZAR", Rate: decimal.RequireFromString("18")},
	})
}

// Entries returns the table in menu order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ByDigit resolves a menu selection to its country: digit "1" is the
// first configured country. Anything out of range or non-numeric
// reports ok=false rather than failing.
func (t *Table) ByDigit(digit string) (Entry, bool) {
	i, err := strconv.Atoi(digit)
	if err != nil || i < 1 || i > len(t.entries) {
		return Entry{}, false
	}
	return t.entries[i-1], true
}

// MenuLines renders the numbered country list shown in the send-money flow.
func (t *Table) MenuLines() string {
	var b strings.Builder
	for i, e := range t.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, e.Country)
	}
	return b.String()
}

// RateLines renders the full table as "1 USD = X CODE" per country.
func (t *Table) RateLines() string {
	var b strings.Builder
	for i, e := range t.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "1 USD = %s %s", e.Rate.String(), e.Code)
	}
	return b.String()
}

// Snapshot returns the table keyed by country name, for the admin dump.
func (t *Table) Snapshot() map[string]Entry {
	out := make(map[string]Entry, len(t.entries))
	for _, e := range t.entries {
		out[e.Country] = e
	}
	return out
}
