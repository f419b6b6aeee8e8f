package commands_test

import (
	"sync"
	"testing"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/application/usecases/commands"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/payment"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfirmHandler(store *memStore, publisher *recordingPublisher) commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(
		memPaymentUoWFactory{store},
		lock.NewKeyedMutex(),
		publisher,
		fixedClock{testNow},
	)
}

// seedAttempt opens a pending payment attempt for the order.
func seedAttempt(t *testing.T, store *memStore, aggregate *order.Order) *payment.Payment {
	t.Helper()

	handler := newInitiateHandler(store)
	cmd, err := commands.NewInitiatePaymentCommand(
		kernel.NewUUID(), aggregate.ID(), aggregate.ClientID(),
		payment.MethodOrangeMoney, "+22670010203")
	require.NoError(t, err)

	attempt, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return attempt
}

func TestConfirmPaymentCommandHandler_Handle(t *testing.T) {
	t.Run("settles the attempt and publishes the event", func(t *testing.T) {
		store := newMemStore()
		aggregate := seedPendingOrder(t, store)
		attempt := seedAttempt(t, store, aggregate)
		publisher := &recordingPublisher{}
		handler := newConfirmHandler(store, publisher)

		cmd, err := commands.NewConfirmPaymentCommand(attempt.ID(), true, "OM-12345", "")
		require.NoError(t, err)
		require.NoError(t, handler.Handle(t.Context(), cmd))

		assert.True(t, attempt.IsSettled())
		assert.Equal(t, []string{"payment.succeeded"}, publisher.names())
	})

	t.Run("replaying the callback is a no-op", func(t *testing.T) {
		store := newMemStore()
		aggregate := seedPendingOrder(t, store)
		attempt := seedAttempt(t, store, aggregate)
		publisher := &recordingPublisher{}
		handler := newConfirmHandler(store, publisher)

		cmd, err := commands.NewConfirmPaymentCommand(attempt.ID(), true, "OM-12345", "")
		require.NoError(t, err)
		require.NoError(t, handler.Handle(t.Context(), cmd))
		require.NoError(t, handler.Handle(t.Context(), cmd))

		// One settlement, one event.
		assert.Equal(t, []string{"payment.succeeded"}, publisher.names())
	})

	t.Run("a sibling settlement blocks the attempt", func(t *testing.T) {
		store := newMemStore()
		aggregate := seedPendingOrder(t, store)
		first := seedAttempt(t, store, aggregate)
		second := seedAttempt(t, store, aggregate)
		handler := newConfirmHandler(store, &recordingPublisher{})

		cmd, err := commands.NewConfirmPaymentCommand(first.ID(), true, "OM-11111", "")
		require.NoError(t, err)
		require.NoError(t, handler.Handle(t.Context(), cmd))

		cmd, err = commands.NewConfirmPaymentCommand(second.ID(), true, "OM-22222", "")
		require.NoError(t, err)
		err = handler.Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAlreadyPaid)
		assert.False(t, second.IsSettled())
	})

	t.Run("records a provider failure", func(t *testing.T) {
		store := newMemStore()
		aggregate := seedPendingOrder(t, store)
		attempt := seedAttempt(t, store, aggregate)
		publisher := &recordingPublisher{}
		handler := newConfirmHandler(store, publisher)

		cmd, err := commands.NewConfirmPaymentCommand(attempt.ID(), false, "", "insufficient balance")
		require.NoError(t, err)
		require.NoError(t, handler.Handle(t.Context(), cmd))

		assert.Equal(t, payment.StatusFailed, attempt.Status())
		assert.Empty(t, publisher.names())
	})

	t.Run("settlement requires a provider reference", func(t *testing.T) {
		_, err := commands.NewConfirmPaymentCommand(kernel.NewUUID(), true, "", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

// Concurrent settlements of sibling attempts for one order: at most one
// attempt ever reaches success.
func TestConfirmPaymentCommandHandler_ConcurrentSettlements(t *testing.T) {
	const attempts = 8

	store := newMemStore()
	aggregate := seedPendingOrder(t, store)

	opened := make([]*payment.Payment, attempts)
	for i := range opened {
		opened[i] = seedAttempt(t, store, aggregate)
	}

	handler := newConfirmHandler(store, &recordingPublisher{})

	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i, attempt := range opened {
		wg.Add(1)
		go func(i int, attempt *payment.Payment) {
			defer wg.Done()
			cmd, err := commands.NewConfirmPaymentCommand(
				attempt.ID(), true, "OM-"+attempt.ID().String()[:8], "")
			if err != nil {
				results <- err
				return
			}
			results <- handler.Handle(t.Context(), cmd)
		}(i, attempt)
	}
	wg.Wait()
	close(results)

	var wins, rejections int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, errs.ErrAlreadyPaid)
			rejections++
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, rejections)

	settled := 0
	for _, attempt := range opened {
		if attempt.IsSettled() {
			settled++
		}
	}
	assert.Equal(t, 1, settled)
}
