// Package ledger owns the recording of completed transfers: identifier
// assignment, validation, and the append to the underlying log.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kofiadjei/ussd-remit/internal/interfaces"
	"github.com/kofiadjei/ussd-remit/internal/models"
)

var ErrNonPositiveAmount = errors.New("amount must be positive")

// Ledger wraps a TransactionLog and stamps each record with a unique id,
// the fixed sending currency, a timestamp, and the completed status.
type Ledger struct {
	log interfaces.TransactionLog
}

func NewLedger(log interfaces.TransactionLog) *Ledger {
	return &Ledger{log: log}
}

// Record validates and appends a transfer. The caller supplies sender,
// recipient, amount, and the computed local amount/currency; everything
// else is assigned here. The stamped record is returned so the caller
// can surface the reference id.
func (l *Ledger) Record(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.Amount.Cmp(decimal.Zero) <= 0 {
		return models.Transaction{}, ErrNonPositiveAmount
	}

	tx.ID = uuid.New().String()
	tx.Currency = models.CurrencyUSD
	tx.Status = models.StatusCompleted
	tx.Timestamp = time.Now().UTC()

	if err := l.log.AppendTransaction(ctx, tx); err != nil {
		return models.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}
	return tx, nil
}

// Transactions returns the full log in append order.
func (l *Ledger) Transactions() ([]models.Transaction, error) {
	return l.log.Transactions()
}
