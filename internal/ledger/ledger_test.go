package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kofiadjei/ussd-remit/internal/models"
	"github.com/kofiadjei/ussd-remit/internal/storage/memory"
)

func newTestLedger() *Ledger {
	return NewLedger(memory.NewStore(nil))
}

func TestRecordStampsTransaction(t *testing.T) {
	l := newTestLedger()

	tx, err := l.Record(context.Background(), models.Transaction{
		Sender:        "+233123456789",
		Recipient:     "+234000",
		Amount:        decimal.RequireFromString("10"),
		LocalAmount:   decimal.RequireFromString("58"),
		LocalCurrency: "GHS",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tx.ID)
	require.Equal(t, models.CurrencyUSD, tx.Currency)
	require.Equal(t, models.StatusCompleted, tx.Status)
	require.False(t, tx.Timestamp.IsZero())

	stored, err := l.Transactions()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, tx.ID, stored[0].ID)
}

func TestRecordRejectsNonPositiveAmounts(t *testing.T) {
	l := newTestLedger()

	for _, amount := range []string{"0", "-5", "-0.01"} {
		_, err := l.Record(context.Background(), models.Transaction{
			Sender:    "+233123456789",
			Recipient: "+234000",
			Amount:    decimal.RequireFromString(amount),
		})
		require.ErrorIsf(t, err, ErrNonPositiveAmount, "amount %s", amount)
	}

	stored, err := l.Transactions()
	require.NoError(t, err)
	require.Empty(t, stored)
}

// Two confirmations landing at the same instant must both be recorded
// with distinct identifiers.
func TestConcurrentRecordsGetDistinctIDs(t *testing.T) {
	l := newTestLedger()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Record(context.Background(), models.Transaction{
				Sender:        "+233123456789",
				Recipient:     "+234000",
				Amount:        decimal.RequireFromString("10"),
				LocalAmount:   decimal.RequireFromString("58"),
				LocalCurrency: "GHS",
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := l.Transactions()
	require.NoError(t, err)
	require.Len(t, stored, n)

	seen := make(map[string]bool, n)
	for _, tx := range stored {
		require.False(t, seen[tx.ID], "duplicate transaction id %s", tx.ID)
		seen[tx.ID] = true
	}
}
