package payment

import "time"

// Event is a payment fact buffered on the aggregate and drained by the
// command handlers after a successful commit.
type Event interface {
	Name() string
	OccurredAt() time.Time
}

// SucceededEvent is emitted exactly once per settled payment attempt.
type SucceededEvent struct {
	PaymentID    string    `json:"payment_id"`
	OrderID      string    `json:"order_id"`
	Amount       string    `json:"amount"`
	Method       string    `json:"method"`
	ProviderTxID string    `json:"provider_tx_id"`
	At           time.Time `json:"at"`
}

// Name implements Event.
func (SucceededEvent) Name() string { return "payment.succeeded" }

// OccurredAt implements Event.
func (e SucceededEvent) OccurredAt() time.Time { return e.At }
