// Package commands contains the write operations of the dispatch engine.
// Every handler follows the same shape: validate the command, serialize on
// the order's key where a race matters, run the read-validate-write sequence
// inside a unit of work, publish drained domain events after the commit.
package commands

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"
)

// Unit of Work interfaces are cut per handler: each command depends on the
// narrowest transaction surface it needs.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides the courier repository bound to the
	// transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// PaymentRepoFactory provides the payment repository bound to the
	// transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// OrderUoW serves commands that touch order aggregates only.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW serves commands that touch courier profiles only.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW serves commands that coordinate order and courier changes, such
	// as assignment: the courier link and the status transition commit
	// together or not at all.
	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// UoWFactory creates cross-aggregate unit of work instances.
	UoWFactory interface {
		Create() UoW
	}

	// PaymentUoW serves the payment commands, which read the order and
	// write the payment ledger in one transaction.
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	// PaymentUoWFactory creates payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}
)
