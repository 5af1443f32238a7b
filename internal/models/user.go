package models

import "github.com/shopspring/decimal"

// Balance holds a user's funds in the three currencies the directory tracks.
type Balance struct {
	Local decimal.Decimal `json:"local"`
	USD   decimal.Decimal `json:"USD"`
	EUR   decimal.Decimal `json:"EUR"`
}

// DirectoryEntry is one account holder, keyed by phone number in the
// directory. Entries are seeded at startup and never created or removed
// at runtime.
type DirectoryEntry struct {
	Name    string  `json:"name"`
	Balance Balance `json:"balance"`
	Country string  `json:"country"`
}
