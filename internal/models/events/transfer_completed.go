package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopicTransferCompleted is the broker topic transfer events are published on.
const TopicTransferCompleted = "transfer.completed"

type TransferCompleted struct {
	TransactionID string          `json:"transaction_id"`
	Sender        string          `json:"sender"`
	Recipient     string          `json:"recipient"`
	Amount        decimal.Decimal `json:"amount"`
	LocalAmount   decimal.Decimal `json:"local_amount"`
	LocalCurrency string          `json:"local_currency"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
