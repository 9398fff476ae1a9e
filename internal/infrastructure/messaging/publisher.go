// Package messaging 领域事件发布的基础设施实现
package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/grocery/internal/application/event"
	"github.com/xiebiao/grocery/internal/infrastructure/config"
	"github.com/xiebiao/grocery/pkg/circuitbreaker"
	"github.com/xiebiao/grocery/pkg/mq"
)

// publishTimeout 单次发布的超时,避免Broker卡顿拖慢请求
const publishTimeout = 3 * time.Second

// sender 底层发送能力,由*mq.Publisher实现
type sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// BreakerPublisher 带熔断保护的事件发布者
// Broker持续不可用时熔断器打开,后续事件直接丢弃并返回ErrOpenState
type BreakerPublisher struct {
	sender sender
	cb     *circuitbreaker.CircuitBreaker
}

// NewBreakerPublisher 包装sender
func NewBreakerPublisher(s sender, cb *circuitbreaker.CircuitBreaker) *BreakerPublisher {
	return &BreakerPublisher{sender: s, cb: cb}
}

func (p *BreakerPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	// 事件在事务提交后发布,请求取消不应丢掉事件
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	return p.cb.Execute(func() error {
		return p.sender.Publish(ctx, routingKey, payload)
	})
}

// NopPublisher mq.enabled=false时使用,只打印调试日志
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, routingKey string, _ interface{}) error {
	slog.DebugContext(ctx, "消息队列未启用,跳过事件", "routing_key", routingKey)
	return nil
}

// NewEventPublisher 根据配置创建事件发布者,返回的cleanup负责关闭连接
func NewEventPublisher(cfg *config.Config) (event.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		return NopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, nil, err
	}

	cb := circuitbreaker.New("mq-publisher", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			slog.Warn("熔断器状态变化", "name", name, "from", from.String(), "to", to.String())
		},
	})

	cleanup := func() {
		if err := pub.Close(); err != nil {
			slog.Error("关闭消息发布者失败", "error", err)
		}
	}
	return NewBreakerPublisher(pub, cb), cleanup, nil
}
