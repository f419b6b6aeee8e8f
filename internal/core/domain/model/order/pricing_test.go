package order_test

import (
	"testing"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPricing(t *testing.T) {
	t.Run("derives total, commission and earnings", func(t *testing.T) {
		p, err := order.NewPricing(
			decimal.NewFromInt(500),
			decimal.NewFromInt(750),
			decimal.NewFromFloat(0.2),
		)

		require.NoError(t, err)
		assert.Equal(t, "1250", p.TotalPrice().String())
		assert.Equal(t, "250", p.Commission().String())
		assert.Equal(t, "1000", p.CourierEarnings().String())
	})

	t.Run("rounds to whole francs", func(t *testing.T) {
		p, err := order.NewPricing(
			decimal.NewFromFloat(500.4),
			decimal.NewFromFloat(333.3),
			decimal.NewFromFloat(0.15),
		)

		require.NoError(t, err)
		// 833.7 rounds to 834, commission 834*0.15 = 125.1 rounds to 125.
		assert.Equal(t, "834", p.TotalPrice().String())
		assert.Equal(t, "125", p.Commission().String())
		assert.Equal(t, "709", p.CourierEarnings().String())
	})

	t.Run("earnings plus commission equals total", func(t *testing.T) {
		p, err := order.NewPricing(
			decimal.NewFromInt(700),
			decimal.NewFromInt(1234),
			decimal.NewFromFloat(0.17),
		)

		require.NoError(t, err)
		sum := p.Commission().Add(p.CourierEarnings())
		assert.True(t, sum.Equal(p.TotalPrice()), sum.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := order.NewPricing(
			decimal.NewFromInt(-1),
			decimal.NewFromInt(0),
			decimal.NewFromFloat(0.2),
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects commission rate outside [0, 1]", func(t *testing.T) {
		for _, rate := range []decimal.Decimal{
			decimal.NewFromFloat(-0.1),
			decimal.NewFromFloat(1.1),
		} {
			_, err := order.NewPricing(
				decimal.NewFromInt(500),
				decimal.NewFromInt(500),
				rate,
			)
			require.Error(t, err, rate.String())
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("zero commission gives everything to the courier", func(t *testing.T) {
		p, err := order.NewPricing(
			decimal.NewFromInt(500),
			decimal.NewFromInt(500),
			decimal.Zero,
		)

		require.NoError(t, err)
		assert.True(t, p.CourierEarnings().Equal(p.TotalPrice()))
	})
}

func TestRestorePricing(t *testing.T) {
	t.Run("keeps persisted amounts as is", func(t *testing.T) {
		p, err := order.RestorePricing(
			decimal.NewFromInt(500),
			decimal.NewFromInt(750),
			decimal.NewFromInt(1250),
			decimal.NewFromInt(250),
			decimal.NewFromInt(1000),
		)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "1250", p.TotalPrice().String())
	})

	t.Run("rejects negative total", func(t *testing.T) {
		_, err := order.RestorePricing(
			decimal.Zero, decimal.Zero,
			decimal.NewFromInt(-100),
			decimal.Zero, decimal.Zero,
		)
		require.Error(t, err)
	})
}

func TestPricing_Validate(t *testing.T) {
	var p order.Pricing
	assert.Equal(t, order.ErrPricingIsNotConstructed, p.Validate())
}
