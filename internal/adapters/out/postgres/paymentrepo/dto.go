// Package paymentrepo provides data transfer objects and mapping functions
// for payment attempt persistence.
package paymentrepo

import (
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO represents the database structure for persisting payment
// attempts. order_id is indexed for the settled-sibling check; the provider
// reference is unique so a replayed callback can never settle twice at the
// storage level either.
type PaymentDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID uuid.UUID `gorm:"type:uuid;not null"`

	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method string          `gorm:"type:varchar(32);not null"`
	Phone  string          `gorm:"type:varchar(32)"`

	Status       string  `gorm:"type:varchar(16);not null;index"`
	ProviderTxID *string `gorm:"type:varchar(64);uniqueIndex"`
	FailReason   string  `gorm:"type:varchar(255)"`

	CreatedAt  time.Time `gorm:"not null"`
	ResolvedAt *time.Time
}

// TableName specifies the database table name for payment attempts.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment aggregate to its database representation.
func fromDomain(aggregate *payment.Payment) PaymentDTO {
	var providerTxID *string
	if ref := aggregate.ProviderTxID(); ref != "" {
		providerTxID = &ref
	}

	return PaymentDTO{
		ID:       aggregate.ID().Bytes(),
		OrderID:  aggregate.OrderID().Bytes(),
		ClientID: aggregate.ClientID().Bytes(),

		Amount: aggregate.Amount(),
		Method: string(aggregate.Method()),
		Phone:  aggregate.Phone(),

		Status:       string(aggregate.Status()),
		ProviderTxID: providerTxID,
		FailReason:   aggregate.FailReason(),

		CreatedAt:  aggregate.CreatedAt(),
		ResolvedAt: aggregate.ResolvedAt(),
	}
}

// toDomain converts a database DTO back to a payment aggregate.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var providerTxID string
	if dto.ProviderTxID != nil {
		providerTxID = *dto.ProviderTxID
	}

	return payment.RestorePayment(payment.RestorePaymentParams{
		ID:       id,
		OrderID:  orderID,
		ClientID: clientID,

		Amount: dto.Amount,
		Method: payment.Method(dto.Method),
		Phone:  dto.Phone,

		Status:       payment.Status(dto.Status),
		ProviderTxID: providerTxID,
		FailReason:   dto.FailReason,

		CreatedAt:  dto.CreatedAt,
		ResolvedAt: dto.ResolvedAt,
	})
}
