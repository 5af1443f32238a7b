package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/kofiadjei/ussd-remit/internal/interfaces"
	"github.com/kofiadjei/ussd-remit/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id             TEXT PRIMARY KEY,
	sender         TEXT NOT NULL,
	recipient      TEXT NOT NULL,
	amount         NUMERIC NOT NULL,
	currency       TEXT NOT NULL,
	local_amount   NUMERIC NOT NULL,
	local_currency TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	status         TEXT NOT NULL
)`

// Store is a Postgres-backed transaction log, used instead of the
// in-memory log when DATABASE_URL is configured.
type Store struct {
	db *sql.DB
}

func Open(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) AppendTransaction(ctx context.Context, tx models.Transaction) error {
	const query = `INSERT INTO transactions
		(id, sender, recipient, amount, currency, local_amount, local_currency, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID, tx.Sender, tx.Recipient, tx.Amount, tx.Currency,
		tx.LocalAmount, tx.LocalCurrency, tx.Timestamp, tx.Status)
	return err
}

func (s *Store) Transactions() ([]models.Transaction, error) {
	const query = `SELECT id, sender, recipient, amount, currency, local_amount, local_currency, created_at, status
		FROM transactions ORDER BY created_at ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.Sender, &tx.Recipient, &tx.Amount, &tx.Currency,
			&tx.LocalAmount, &tx.LocalCurrency, &tx.Timestamp, &tx.Status,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

var _ interfaces.TransactionLog = (*Store)(nil)
