package ports

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment attempts.
type PaymentRepository interface {
	// Add persists a new payment attempt.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment attempt.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment attempt by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetAllByOrder retrieves every attempt ever opened for the order,
	// oldest first. The at-most-one-settlement invariant is checked over
	// this set inside the payment critical section.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error)

	// GetByProviderTxID retrieves the attempt settled with the given
	// provider reference, if any. Used by webhook replay handling.
	GetByProviderTxID(ctx context.Context, providerTxID string) (*payment.Payment, error)
}
