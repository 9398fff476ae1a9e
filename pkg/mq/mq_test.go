package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

// fakeAck 记录Ack/Nack调用
type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAck) Ack(uint64, bool) error { a.acked = true; return nil }

func (a *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *fakeAck) Reject(_ uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

type orderCreated struct {
	OrderNumber string `json:"order_number"`
	UserID      uint   `json:"user_id"`
}

func TestPublisher_Publish(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("发布JSON持久化消息", func(t *testing.T) {
		ch := &fakeChannel{}
		p := &Publisher{channel: ch, exchange: "grocery.events", now: func() time.Time { return fixed }}

		err := p.Publish(context.Background(), "order.created", orderCreated{OrderNumber: "ORD-1-ABCDEF12", UserID: 7})
		require.NoError(t, err)

		require.Len(t, ch.published, 1)
		msg := ch.published[0]
		assert.Equal(t, "order.created", ch.keys[0])
		assert.Equal(t, "order.created", msg.Type)
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
		assert.Equal(t, fixed, msg.Timestamp)
		assert.Len(t, msg.MessageId, 36)

		var got orderCreated
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, "ORD-1-ABCDEF12", got.OrderNumber)
	})

	t.Run("Channel错误被包装返回", func(t *testing.T) {
		ch := &fakeChannel{err: amqp.ErrClosed}
		p := &Publisher{channel: ch, exchange: "grocery.events", now: time.Now}

		err := p.Publish(context.Background(), "order.created", orderCreated{})
		require.Error(t, err)
		assert.ErrorIs(t, err, amqp.ErrClosed)
	})

	t.Run("无法序列化的消息", func(t *testing.T) {
		p := &Publisher{channel: &fakeChannel{}, exchange: "grocery.events", now: time.Now}
		err := p.Publish(context.Background(), "order.created", make(chan int))
		assert.Error(t, err)
	})
}

func TestHandleDelivery(t *testing.T) {
	ok := func(context.Context, string, []byte) error { return nil }
	fail := func(context.Context, string, []byte) error { return errors.New("下游不可用") }

	t.Run("处理成功Ack", func(t *testing.T) {
		ack := &fakeAck{}
		handleDelivery(context.Background(), "q", amqp.Delivery{Acknowledger: ack, RoutingKey: "product.out_of_stock"}, ok)
		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
	})

	t.Run("首次失败重新入队", func(t *testing.T) {
		ack := &fakeAck{}
		handleDelivery(context.Background(), "q", amqp.Delivery{Acknowledger: ack}, fail)
		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue)
	})

	t.Run("重投后仍失败不再入队", func(t *testing.T) {
		ack := &fakeAck{}
		handleDelivery(context.Background(), "q", amqp.Delivery{Acknowledger: ack, Redelivered: true}, fail)
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("handler收到routing key和消息体", func(t *testing.T) {
		var gotKey string
		var gotBody []byte
		h := func(_ context.Context, key string, body []byte) error {
			gotKey, gotBody = key, body
			return nil
		}
		handleDelivery(context.Background(), "q", amqp.Delivery{
			Acknowledger: &fakeAck{},
			RoutingKey:   "product.back_in_stock",
			Body:         []byte(`{"product_id":1}`),
		}, h)
		assert.Equal(t, "product.back_in_stock", gotKey)
		assert.JSONEq(t, `{"product_id":1}`, string(gotBody))
	})
}
