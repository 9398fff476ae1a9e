// stock-alert 订阅商品库存事件，售罄和补货时输出告警日志
//
// 与api进程共用同一份配置，需要mq.enabled=true
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/grocery/internal/application/event"
	"github.com/xiebiao/grocery/internal/infrastructure/config"
	"github.com/xiebiao/grocery/pkg/logger"
	"github.com/xiebiao/grocery/pkg/metrics"
	"github.com/xiebiao/grocery/pkg/mq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if _, err := logger.New(logger.Options{
		Service: "grocery-stock-alert",
		Env:     cfg.Env,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
	}); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}

	if !cfg.MQ.Enabled {
		slog.Error("消息队列未启用，请设置mq.enabled=true")
		os.Exit(1)
	}

	metrics.InitMetrics()

	consumer, err := mq.NewConsumer(
		cfg.MQ.URL,
		cfg.MQ.Exchange,
		cfg.MQ.ExchangeType,
		cfg.MQ.AlertQueue,
		[]string{event.ProductOutOfStock, event.ProductBackInStock},
	)
	if err != nil {
		slog.Error("创建消费者失败", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Consume(ctx, handleStockEvent); err != nil {
		slog.Error("消费异常退出", "error", err)
		os.Exit(1)
	}
}

// handleStockEvent 无法解析的消息返回错误，由消费者决定是否重投
func handleStockEvent(ctx context.Context, routingKey string, body []byte) error {
	var e event.StockEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return fmt.Errorf("解析库存事件失败: %w", err)
	}

	switch routingKey {
	case event.ProductOutOfStock:
		slog.WarnContext(ctx, "商品已售罄",
			"product_id", e.ProductID,
			"product_name", e.ProductName,
			"reference", e.Reference,
		)
	case event.ProductBackInStock:
		slog.InfoContext(ctx, "商品重新有货",
			"product_id", e.ProductID,
			"product_name", e.ProductName,
			"stock", e.Stock,
			"reference", e.Reference,
		)
	default:
		slog.DebugContext(ctx, "忽略未知事件", "routing_key", routingKey)
	}
	return nil
}
