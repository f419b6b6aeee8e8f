package commands

import (
	"errors"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

var ErrDispatchPendingOrdersCommandIsNotConstructed = errors.New(
	"DispatchPendingOrdersCommand must be created via NewDispatchPendingOrdersCommand constructor",
)

// DispatchPendingOrdersCommand triggers one proactive dispatch sweep: every
// pending order gets matched against the available couriers around its
// pickup point and assigned to the best one, if any. The scheduled job fires
// it periodically.
type DispatchPendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchPendingOrdersCommand creates a dispatch sweep trigger.
func NewDispatchPendingOrdersCommand() DispatchPendingOrdersCommand {
	return DispatchPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *DispatchPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPendingOrdersCommandIsNotConstructed)
}
