package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCart_Totals(t *testing.T) {
	c := &Cart{Items: []Item{
		{ProductID: 1, Quantity: 2, PriceAtAdd: decimal.RequireFromString("3.25")},
		{ProductID: 2, Quantity: 1, PriceAtAdd: decimal.RequireFromString("10")},
	}}

	assert.True(t, c.TotalPrice().Equal(decimal.RequireFromString("16.5")))
	assert.Equal(t, 2, c.TotalItems(), "按行计数")
	assert.False(t, c.IsEmpty())

	it, ok := c.FindByProduct(2)
	assert.True(t, ok)
	assert.Equal(t, 1, it.Quantity)

	_, ok = c.FindByProduct(3)
	assert.False(t, ok)

	assert.True(t, (&Cart{}).TotalPrice().IsZero())
}
