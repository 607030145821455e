// AngelaMos | 2026
// service_test.go

package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mercadito/internal/core"
)

func lockedFixture() map[int64]*LockedProduct {
	return map[int64]*LockedProduct{
		1: {ID: 1, SellerID: 10, Price: decimal.NewFromFloat(19.99), Stock: 5, IsActive: true},
		2: {ID: 2, SellerID: 11, Price: decimal.NewFromFloat(4.50), Stock: 100, IsActive: true},
		3: {ID: 3, SellerID: 10, Price: decimal.NewFromFloat(250.00), Stock: 1, IsActive: false},
	}
}

func TestBuildOrderLines(t *testing.T) {
	t.Run("prices lines and totals", func(t *testing.T) {
		items, total, err := buildOrderLines([]OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		}, lockedFixture())
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromFloat(19.99)))
		assert.True(t, items[0].Subtotal.Equal(decimal.NewFromFloat(39.98)))
		assert.True(t, items[1].Subtotal.Equal(decimal.NewFromFloat(13.50)))
		assert.True(t, total.Equal(decimal.NewFromFloat(53.48)))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, _, err := buildOrderLines([]OrderItemRequest{
			{ProductID: 99, Quantity: 1},
		}, lockedFixture())
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("inactive product rejected", func(t *testing.T) {
		_, _, err := buildOrderLines([]OrderItemRequest{
			{ProductID: 3, Quantity: 1},
		}, lockedFixture())
		require.Error(t, err)
		assert.NotErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		_, _, err := buildOrderLines([]OrderItemRequest{
			{ProductID: 1, Quantity: 6},
		}, lockedFixture())
		require.Error(t, err)

		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", appErr.Code)
	})

	t.Run("repeated product lines validate combined demand", func(t *testing.T) {
		// 3 + 3 exceeds the stock of 5 even though each line alone fits
		_, _, err := buildOrderLines([]OrderItemRequest{
			{ProductID: 1, Quantity: 3},
			{ProductID: 1, Quantity: 3},
		}, lockedFixture())
		require.Error(t, err)

		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", appErr.Code)
	})

	t.Run("any bad line fails the whole order", func(t *testing.T) {
		items, _, err := buildOrderLines([]OrderItemRequest{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 101},
		}, lockedFixture())
		assert.Error(t, err)
		assert.Nil(t, items)
	})
}

func TestSortedProductIDs(t *testing.T) {
	ids := sortedProductIDs([]OrderItemRequest{
		{ProductID: 7, Quantity: 1},
		{ProductID: 3, Quantity: 1},
		{ProductID: 7, Quantity: 2},
		{ProductID: 1, Quantity: 1},
	})

	assert.Equal(t, []int64{1, 3, 7}, ids)
}
