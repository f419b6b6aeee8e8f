package order_test

import (
	"testing"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending,
		order.Assigned,
		order.PickedUp,
		order.InTransit,
		order.Delivered,
		order.Cancelled,
	}
}

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:   {order.Assigned, order.Cancelled},
		order.Assigned:  {order.PickedUp, order.Cancelled},
		order.PickedUp:  {order.InTransit, order.Delivered},
		order.InTransit: {order.Delivered},
		order.Delivered: {},
		order.Cancelled: {},
	}

	isAllowed := func(from, to order.Status) bool {
		for _, next := range allowed[from] {
			if next == to {
				return true
			}
		}
		return false
	}

	// Every (from, to) pair outside the table must fail with
	// ErrInvalidTransition; every pair inside must succeed.
	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			from, to := from, to
			t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
				next, err := from.TransitionTo(to)

				if isAllowed(from, to) {
					require.NoError(t, err)
					assert.Equal(t, to, next)
				} else {
					require.Error(t, err)
					assert.ErrorIs(t, err, errs.ErrInvalidTransition)
					assert.Equal(t, order.Unknown, next)
				}
			})
		}
	}
}

func TestStatus_TerminalStates(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, s := range []order.Status{order.Pending, order.Assigned, order.PickedUp, order.InTransit} {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("defined statuses are valid", func(t *testing.T) {
		for _, s := range allStatuses() {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown and out of range are invalid", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Pending:     "pending",
		order.Assigned:    "assigned",
		order.PickedUp:    "picked_up",
		order.InTransit:   "in_transit",
		order.Delivered:   "delivered",
		order.Cancelled:   "cancelled",
		order.Unknown:     "unknown",
		order.Status(127): "unknown",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range allStatuses() {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		for _, input := range []string{"", "unknown", "shipped", "PENDING"} {
			_, err := order.StatusFromString(input)
			require.Error(t, err, input)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	t.Run("pending must not have a courier", func(t *testing.T) {
		require.NoError(t, order.Pending.ValidateCanHaveCourier(false))
		require.Error(t, order.Pending.ValidateCanHaveCourier(true))
	})

	t.Run("post-assignment statuses require a courier", func(t *testing.T) {
		for _, s := range []order.Status{order.Assigned, order.PickedUp, order.InTransit, order.Delivered} {
			require.NoError(t, s.ValidateCanHaveCourier(true), s.String())
			require.Error(t, s.ValidateCanHaveCourier(false), s.String())
		}
	})

	t.Run("cancelled may carry a courier or not", func(t *testing.T) {
		require.NoError(t, order.Cancelled.ValidateCanHaveCourier(true))
		require.NoError(t, order.Cancelled.ValidateCanHaveCourier(false))
	})
}
