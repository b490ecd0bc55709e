package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestProductOnSale(t *testing.T) {
	tests := []struct {
		name          string
		price         int64
		discountPrice *int64
		onSale        bool
		effective     int64
		percent       int
	}{
		{"no discount price", 1000, nil, false, 1000, 0},
		{"discount below price", 1000, int64Ptr(800), true, 800, 20},
		{"discount equal to price", 1000, int64Ptr(1000), false, 1000, 0},
		{"discount above price", 1000, int64Ptr(1200), false, 1000, 0},
		{"percent rounds to nearest", 900, int64Ptr(600), true, 600, 33},
		{"percent rounds up at half", 800, int64Ptr(700), true, 700, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, DiscountPrice: tt.discountPrice}
			assert.Equal(t, tt.onSale, p.OnSale())
			assert.Equal(t, tt.effective, p.EffectivePrice())
			assert.Equal(t, tt.percent, p.SalePercent())
		})
	}
}

func TestCartItemDisplayName(t *testing.T) {
	assert.Equal(t, "Taco", CartItem{Name: "Taco"}.DisplayName())
	assert.Equal(t, "Soda", CartItem{Product: "Soda"}.DisplayName())
	assert.Equal(t, "Taco", CartItem{Name: "Taco", Product: "Soda"}.DisplayName())
	assert.Equal(t, "Unknown", CartItem{}.DisplayName())
}

func TestCartItemCount(t *testing.T) {
	assert.Equal(t, 3, CartItem{Quantity: 3}.Count())
	assert.Equal(t, 1, CartItem{}.Count())
	assert.Equal(t, 1, CartItem{Quantity: -2}.Count())
}

func TestCartItemsScanRoundTrip(t *testing.T) {
	items := CartItems{
		{Name: "Taco", ProductID: 7, Quantity: 2, UnitPrice: 3500},
		{Product: "Soda", Quantity: 1, UnitPrice: 1500},
	}

	value, err := items.Value()
	require.NoError(t, err)

	var decoded CartItems
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, items, decoded)
}

func TestCartItemsScanNil(t *testing.T) {
	var items CartItems
	require.NoError(t, items.Scan(nil))
	assert.Nil(t, items)
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "TACO10", NormalizeCouponCode("  taco10 "))
	assert.Equal(t, "TACO10", NormalizeCouponCode("TACO10"))
	assert.Equal(t, "", NormalizeCouponCode("   "))
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusPending))
	assert.True(t, ValidOrderStatus(OrderStatusConfirmed))
	assert.True(t, ValidOrderStatus(OrderStatusCancelled))
	assert.False(t, ValidOrderStatus("delivered"))
	assert.False(t, ValidOrderStatus(""))
}

func TestValidMessageType(t *testing.T) {
	assert.True(t, ValidMessageType(MessageWelcome))
	assert.True(t, ValidMessageType(MessageFarewellPurchase))
	assert.True(t, ValidMessageType(MessageFarewellNoPurchase))
	assert.False(t, ValidMessageType("goodbye"))
}
