package order

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/grocery/pkg/clock"
)

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"pending", "Confirmed", " SHIPPED ", "delivered", "cancelled"} {
		s, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Contains(t, Statuses, s)
	}

	_, err := ParseStatus("REFUNDED")
	assert.True(t, errors.Is(err, ErrInvalidStatus))
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	lines := []Line{
		NewLine(1, "苹果", 3, decimal.RequireFromString("4.50")),
		NewLine(2, "香蕉", 2, decimal.RequireFromString("1.25")),
	}

	o := NewOrder("ORD-1-AAAAAAAA", 7, lines, " cod ", Delivery{FullName: "张三"}, now)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, "COD", o.PaymentMethod)
	assert.Equal(t, "13.5", o.Lines[0].LineTotal.String())
	assert.True(t, o.Total.Equal(decimal.RequireFromString("16.00")), "总价等于各行小计之和: %s", o.Total)
	assert.Equal(t, now, o.CreatedAt)
	assert.Nil(t, o.DeliveredAt)
}

func TestJoinAddressLines(t *testing.T) {
	assert.Equal(t, "幸福路1号", JoinAddressLines("幸福路1号", ""))
	assert.Equal(t, "幸福路1号", JoinAddressLines("幸福路1号", "   "))
	assert.Equal(t, "幸福路1号, 3单元", JoinAddressLines("幸福路1号", "3单元"))
}

func TestOrder_SetStatus(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusPending}

	o.SetStatus(StatusDelivered, t0)
	require.NotNil(t, o.DeliveredAt)
	assert.Equal(t, t0, *o.DeliveredAt)

	t.Run("送达时间不会被清除", func(t *testing.T) {
		o.SetStatus(StatusShipped, t0.Add(time.Hour))
		assert.Equal(t, StatusShipped, o.Status)
		require.NotNil(t, o.DeliveredAt)
		assert.Equal(t, t0, *o.DeliveredAt)
	})
}

func TestOrder_Cancel(t *testing.T) {
	now := time.Now()
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusShipped} {
		o := &Order{Status: s}
		require.NoError(t, o.Cancel(now), s)
		assert.Equal(t, StatusCancelled, o.Status)
	}
	for _, s := range []Status{StatusDelivered, StatusCancelled} {
		o := &Order{Status: s}
		err := o.Cancel(now)
		assert.True(t, errors.Is(err, ErrNotCancellable), s)
		assert.Equal(t, s, o.Status)
	}
}

func TestNumberGenerator(t *testing.T) {
	fixed := clock.NewFixed(time.UnixMilli(1714557600000))
	g := NewNumberGenerator(fixed)
	g.newUUID = func() uuid.UUID { return uuid.MustParse("9f86d081-884c-4d63-9f2a-2f3b6c7d8e9f") }

	assert.Equal(t, "ORD-1714557600000-9F86D081", g.Next())

	t.Run("真实UUID格式", func(t *testing.T) {
		g := NewNumberGenerator(fixed)
		assert.Regexp(t, regexp.MustCompile(`^ORD-1714557600000-[0-9A-F]{8}$`), g.Next())
	})
}
