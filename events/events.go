package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Event types emitted after a ledger mutation commits
const (
	CustomerCreated    = "customer.created"
	AccountOpened      = "account.opened"
	TransactionPosted  = "transaction.posted"
	AccountDeactivated = "account.deactivated"
)

// Event describes one committed change to the ledger
type Event struct {
	ID              string           `json:"event_id"`
	Type            string           `json:"event_type"`
	CustomerID      int              `json:"customer_id,omitempty"`
	AccountNumber   string           `json:"account_number,omitempty"`
	TransactionID   int64            `json:"transaction_id,omitempty"`
	TransactionType string           `json:"transaction_type,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	BalanceAfter    *decimal.Decimal `json:"balance_after,omitempty"`
	Counterparty    string           `json:"counterparty,omitempty"`
	Description     string           `json:"description,omitempty"`
	Memo            string           `json:"memo,omitempty"`
	OccurredAt      time.Time        `json:"occurred_at"`
}

// New stamps a fresh event ID
func New(eventType string, at time.Time) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: at,
	}
}

// Publisher delivers ledger events to an outside consumer. The events of one
// action arrive in a single call, in the order they happened.
type Publisher interface {
	Publish(ctx context.Context, evs ...Event) error
	Close() error
}

// LogPublisher writes events to the structured log only
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, evs ...Event) error {
	for _, event := range evs {
		p.logger.Info("ledger event",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
			zap.String("account", event.AccountNumber),
			zap.Int64("transaction_id", event.TransactionID),
		)
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// Nop discards every event
type Nop struct{}

func (Nop) Publish(context.Context, ...Event) error { return nil }
func (Nop) Close() error                            { return nil }

var (
	_ Publisher = (*LogPublisher)(nil)
	_ Publisher = Nop{}
)
