package interfaces

import (
	"context"

	"github.com/kofiadjei/ussd-remit/internal/models"
)

// TransactionLog is the append-only record of completed transfers.
// Append must be safe under concurrent invocation: two confirmations
// arriving at the same instant are both recorded, never merged.
type TransactionLog interface {
	AppendTransaction(ctx context.Context, tx models.Transaction) error
	Transactions() ([]models.Transaction, error)
}

// Directory resolves phone numbers to account holders. The directory is
// seeded once at startup and read-only afterwards.
type Directory interface {
	FindUser(phoneNumber string) (models.DirectoryEntry, bool)
	Users() map[string]models.DirectoryEntry
}
