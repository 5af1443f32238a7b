// Package ussd implements the session menu engine. USSD is stateless per
// HTTP call: the handset resends the accumulated input string on every
// round trip, so the engine reconstructs its position in the menu from
// that string alone and never holds session state between calls.
package ussd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kofiadjei/ussd-remit/internal/interfaces"
	"github.com/kofiadjei/ussd-remit/internal/ledger"
	"github.com/kofiadjei/ussd-remit/internal/models"
	modelevents "github.com/kofiadjei/ussd-remit/internal/models/events"
	"github.com/kofiadjei/ussd-remit/internal/rates"
)

// delimiter separates menu selections in the accumulated input string.
const delimiter = "*"

const (
	rootMenu = "Welcome to cross-border payments\n" +
		"1. Send Money\n" +
		"2. Receive Money\n" +
		"3. Check Balance\n" +
		"4. Exchange Rates"
	promptRecipient = "Enter recipient phone number"
	promptAmount    = "Enter amount to send:"
	invalidOption   = "Invalid option selected."
	cancelledText   = "Transaction cancelled."
	notFoundText    = "User not found. Please register for an account."
	faultText       = "An error occurred. Please try again."
)

// step is the engine's position in the menu, derived deterministically
// from the segment count and contents of the input path.
type step int

const (
	stepRoot step = iota
	stepAwaitRecipient
	stepAwaitCountry
	stepAwaitAmount
	stepAwaitConfirm
	stepConfirmed
	stepCancelled
	stepReceiveInfo
	stepBalance
	stepRates
	stepInvalid
)

// Reply is one USSD response. Continue keeps the session open (the
// transport renders it with a "CON " prefix); otherwise the session
// terminates ("END ").
type Reply struct {
	Continue bool
	Text     string
}

// Enqueuer hands a notification off for delivery without blocking the
// session response on the gateway.
type Enqueuer interface {
	Enqueue(phoneNumber, message string)
}

// Engine turns an accumulated input path into the next menu response.
// It is a pure function of (path, directory, rate table) except at the
// confirm step, where it appends to the ledger, queues two SMS
// notifications, and publishes a transfer event.
type Engine struct {
	directory interfaces.Directory
	rates     *rates.Table
	ledger    *ledger.Ledger
	notify    Enqueuer
	events    interfaces.EventPublisher
	logger    *slog.Logger
}

func NewEngine(
	directory interfaces.Directory,
	table *rates.Table,
	ledgerService *ledger.Ledger,
	notify Enqueuer,
	events interfaces.EventPublisher,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		directory: directory,
		rates:     table,
		ledger:    ledgerService,
		notify:    notify,
		events:    events,
		logger:    logger,
	}
}

// Handle processes one session step. The session id is opaque: it is
// logged for correlation but never used to look anything up.
func (e *Engine) Handle(ctx context.Context, sessionID, phoneNumber, text string) Reply {
	st, segs := classify(text)

	switch st {
	case stepRoot:
		return cont(rootMenu)
	case stepAwaitRecipient:
		return cont(promptRecipient)
	case stepAwaitCountry:
		return cont("Select recipient's country:\n" + e.rates.MenuLines())
	case stepAwaitAmount:
		return cont(promptAmount)
	case stepAwaitConfirm:
		return e.confirmPrompt(segs)
	case stepConfirmed:
		return e.complete(ctx, sessionID, phoneNumber, segs)
	case stepCancelled:
		return end(cancelledText)
	case stepReceiveInfo:
		return end(fmt.Sprintf(
			"To receive money, share your phone number (%s) with the sender. You will be notified when money is sent to you.",
			phoneNumber))
	case stepBalance:
		return e.balance(phoneNumber)
	case stepRates:
		return end("Current Exchange Rates:\n" + e.rates.RateLines())
	default:
		return end(invalidOption)
	}
}

// classify partitions every reachable input path into exactly one step.
// The send-money sub-flow is discriminated purely by segment count; the
// recipient phone number occupies a single segment, so counts stay
// unambiguous. Options 2-4 are valid only as the entire path.
func classify(text string) (step, []string) {
	if text == "" {
		return stepRoot, nil
	}
	segs := strings.Split(text, delimiter)

	switch segs[0] {
	case "1":
		switch len(segs) {
		case 1:
			return stepAwaitRecipient, segs
		case 2:
			return stepAwaitCountry, segs
		case 3:
			return stepAwaitAmount, segs
		case 4:
			return stepAwaitConfirm, segs
		case 5:
			// The final segment must match exactly: checking a suffix
			// would misread amounts ending in 1 or 2.
			switch segs[4] {
			case "1":
				return stepConfirmed, segs
			case "2":
				return stepCancelled, segs
			}
		}
	case "2":
		if len(segs) == 1 {
			return stepReceiveInfo, segs
		}
	case "3":
		if len(segs) == 1 {
			return stepBalance, segs
		}
	case "4":
		if len(segs) == 1 {
			return stepRates, segs
		}
	}
	return stepInvalid, segs
}

// parseTransfer validates the collected send-money segments. The same
// parse backs both the confirmation prompt and the final confirm, so the
// displayed amount and the recorded amount cannot diverge.
func (e *Engine) parseTransfer(segs []string) (recipient string, dest rates.Entry, amount decimal.Decimal, err error) {
	recipient = segs[1]

	dest, ok := e.rates.ByDigit(segs[2])
	if !ok {
		return "", rates.Entry{}, decimal.Decimal{}, fmt.Errorf("unknown country option %q", segs[2])
	}

	amount, err = decimal.NewFromString(segs[3])
	if err != nil {
		return "", rates.Entry{}, decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", segs[3], err)
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return "", rates.Entry{}, decimal.Decimal{}, fmt.Errorf("non-positive amount %q", segs[3])
	}
	return recipient, dest, amount, nil
}

func (e *Engine) confirmPrompt(segs []string) Reply {
	recipient, dest, amount, err := e.parseTransfer(segs)
	if err != nil {
		e.logger.Warn("rejected transfer input", "error", err)
		return end(invalidOption)
	}
	return cont(fmt.Sprintf("Confirm sending %s USD to %s in %s:\n1. Confirm\n2. Cancel",
		amount.String(), recipient, dest.Country))
}

func (e *Engine) complete(ctx context.Context, sessionID, phoneNumber string, segs []string) Reply {
	recipient, dest, amount, err := e.parseTransfer(segs)
	if err != nil {
		e.logger.Warn("rejected transfer input", "session_id", sessionID, "error", err)
		return end(invalidOption)
	}

	localAmount := amount.Mul(dest.Rate)
	tx, err := e.ledger.Record(ctx, models.Transaction{
		Sender:        phoneNumber,
		Recipient:     recipient,
		Amount:        amount,
		LocalAmount:   localAmount,
		LocalCurrency: dest.Code,
	})
	if err != nil {
		e.logger.Error("recording transfer failed", "session_id", sessionID, "sender", phoneNumber, "error", err)
		return end(faultText)
	}

	e.logger.Info("transfer completed",
		"session_id", sessionID,
		"transaction_id", tx.ID,
		"sender", phoneNumber,
		"recipient", recipient,
		"amount_usd", amount.String(),
		"local_amount", localAmount.String(),
		"local_currency", dest.Code,
	)

	// Fire-and-forget: neither a gateway nor a broker failure reaches
	// the caller or rolls back the record above.
	e.notify.Enqueue(phoneNumber, fmt.Sprintf(
		"You sent %s USD (%s %s) to %s. Reference: %s",
		amount.String(), localAmount.String(), dest.Code, recipient, tx.ID))
	e.notify.Enqueue(recipient, fmt.Sprintf(
		"You received %s %s (%s USD) from %s. Reference: %s",
		localAmount.String(), dest.Code, amount.String(), phoneNumber, tx.ID))

	if err := e.events.Publish(modelevents.TopicTransferCompleted, modelevents.TransferCompleted{
		TransactionID: tx.ID,
		Sender:        tx.Sender,
		Recipient:     tx.Recipient,
		Amount:        tx.Amount,
		LocalAmount:   tx.LocalAmount,
		LocalCurrency: tx.LocalCurrency,
		OccurredAt:    tx.Timestamp,
	}); err != nil {
		e.logger.Warn("publishing transfer event failed", "transaction_id", tx.ID, "error", err)
	}

	return end(fmt.Sprintf(
		"Your cross-border payment of $%s to %s has been processed. Reference: %s",
		amount.String(), recipient, tx.ID))
}

func (e *Engine) balance(phoneNumber string) Reply {
	entry, ok := e.directory.FindUser(phoneNumber)
	if !ok {
		return end(notFoundText)
	}
	return end(fmt.Sprintf("Your current balance is:\nLocal Currency: %s\nUSD: %s\nEUR: %s",
		entry.Balance.Local.String(), entry.Balance.USD.String(), entry.Balance.EUR.String()))
}

func cont(text string) Reply { return Reply{Continue: true, Text: text} }
func end(text string) Reply  { return Reply{Continue: false, Text: text} }
