package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/grocery/internal/application/event"
	"github.com/xiebiao/grocery/internal/infrastructure/config"
	"github.com/xiebiao/grocery/pkg/circuitbreaker"
	"github.com/xiebiao/grocery/pkg/clock"
)

type fakeSender struct {
	err   error
	calls int
	keys  []string
}

func (f *fakeSender) Publish(ctx context.Context, routingKey string, _ interface{}) error {
	f.calls++
	f.keys = append(f.keys, routingKey)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("missing deadline")
	}
	return f.err
}

func TestBreakerPublisher(t *testing.T) {
	ctx := context.Background()

	t.Run("正常发布透传路由键", func(t *testing.T) {
		s := &fakeSender{}
		p := NewBreakerPublisher(s, circuitbreaker.New("test-ok", circuitbreaker.Config{}))

		require.NoError(t, p.Publish(ctx, event.OrderCreated, event.OrderCreatedEvent{OrderID: 1}))
		assert.Equal(t, []string{event.OrderCreated}, s.keys)
	})

	t.Run("连续失败后熔断,不再调用Broker", func(t *testing.T) {
		s := &fakeSender{err: errors.New("connection closed")}
		cb := circuitbreaker.New("test-trip", circuitbreaker.Config{
			Timeout: time.Minute,
			Clock:   clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
			ReadyToTrip: func(c circuitbreaker.Counts) bool {
				return c.ConsecutiveFailures >= 2
			},
		})
		p := NewBreakerPublisher(s, cb)

		assert.Error(t, p.Publish(ctx, event.OrderCancelled, nil))
		assert.Error(t, p.Publish(ctx, event.OrderCancelled, nil))

		err := p.Publish(ctx, event.OrderCancelled, nil)
		assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
		assert.Equal(t, 2, s.calls)
	})

	t.Run("已取消的请求上下文仍能发布", func(t *testing.T) {
		s := &fakeSender{}
		p := NewBreakerPublisher(s, circuitbreaker.New("test-cancel", circuitbreaker.Config{}))

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.NoError(t, p.Publish(cctx, event.ProductOutOfStock, nil))
	})
}

func TestNewEventPublisher_Disabled(t *testing.T) {
	p, cleanup, err := NewEventPublisher(&config.Config{})
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), event.OrderCreated, nil))
}
