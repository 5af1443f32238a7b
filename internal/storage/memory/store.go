package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kofiadjei/ussd-remit/internal/interfaces"
	"github.com/kofiadjei/ussd-remit/internal/models"
)

// Store is an in-memory implementation of both the transaction log and
// the user directory. Appends are mutex-guarded so concurrent session
// confirmations are each recorded; reads hand out copies so callers
// cannot reach into internal state.
type Store struct {
	mu           sync.Mutex
	transactions []models.Transaction
	users        map[string]models.DirectoryEntry
}

// NewStore returns a store seeded with the given directory. The
// directory map is copied; the ledger starts empty.
func NewStore(users map[string]models.DirectoryEntry) *Store {
	seeded := make(map[string]models.DirectoryEntry, len(users))
	for phone, entry := range users {
		seeded[phone] = entry
	}
	return &Store{
		transactions: make([]models.Transaction, 0),
		users:        seeded,
	}
}

// DemoDirectory is the directory the demo service starts with.
func DemoDirectory() map[string]models.DirectoryEntry {
	return map[string]models.DirectoryEntry{
		"+233123456789": {
			Name: "Emmanuel Acheampong",
			Balance: models.Balance{
				Local: decimal.RequireFromString("2500"),
				USD:   decimal.RequireFromString("250"),
				EUR:   decimal.RequireFromString("225"),
			},
			Country: "Ghana",
		},
		"+234987654321": {
			Name: "Toluwalase Oyebamiji",
			Balance: models.Balance{
				Local: decimal.RequireFromString("45000"),
				USD:   decimal.RequireFromString("120"),
				EUR:   decimal.RequireFromString("100"),
			},
			Country: "Nigeria",
		},
	}
}

// AppendTransaction adds a completed transfer to the log.
func (s *Store) AppendTransaction(ctx context.Context, tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, tx)
	return nil
}

// Transactions returns a copy of the full transaction log in append order.
func (s *Store) Transactions() ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]models.Transaction, len(s.transactions))
	copy(copied, s.transactions)
	return copied, nil
}

// FindUser looks up a directory entry by phone number.
func (s *Store) FindUser(phoneNumber string) (models.DirectoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.users[phoneNumber]
	return entry, ok
}

// Users returns a copy of the full directory.
func (s *Store) Users() map[string]models.DirectoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]models.DirectoryEntry, len(s.users))
	for phone, entry := range s.users {
		copied[phone] = entry
	}
	return copied
}

var (
	_ interfaces.TransactionLog = (*Store)(nil)
	_ interfaces.Directory      = (*Store)(nil)
)
