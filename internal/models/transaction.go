package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// StatusCompleted is the only status a recorded transfer can carry;
	// pending and failed states are not modeled.
	StatusCompleted = "completed"

	// CurrencyUSD is the fixed sending currency.
	CurrencyUSD = "USD"
)

// Transaction is one completed cross-border transfer. Records are
// append-only: once written to the ledger they are never mutated.
type Transaction struct {
	ID            string          `json:"id"`
	Sender        string          `json:"sender"`
	Recipient     string          `json:"recipient"`
	Amount        decimal.Decimal `json:"amount"`   // in USD
	Currency      string          `json:"currency"` // always "USD"
	LocalAmount   decimal.Decimal `json:"localAmount"`
	LocalCurrency string          `json:"localCurrency"`
	Timestamp     time.Time       `json:"timestamp"`
	Status        string          `json:"status"`
}
