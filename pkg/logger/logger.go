// Package logger 基于log/slog的结构化日志
//
// 设计说明:
// 1. 输出格式由配置决定(json用于生产采集, console用于本地开发)
// 2. 通过ContextHandler自动附加trace_id/span_id/request_id
// 3. New会调用slog.SetDefault,业务代码直接使用slog.InfoContext等函数即可
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Options 日志选项
type Options struct {
	Service   string
	Env       string
	Level     string // debug | info | warn | error
	Format    string // console | json
	Output    string // stdout | stderr | /path/to/file
	AddSource bool
}

// New 创建Logger并设置为全局默认Logger
func New(opts Options) (*slog.Logger, error) {
	w, err := openOutput(opts.Output)
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     ParseLevel(opts.Level),
		AddSource: opts.AddSource,
	}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}

	l := slog.New(NewContextHandler(h)).With(
		"service", opts.Service,
		"env", opts.Env,
	)

	slog.SetDefault(l)
	return l, nil
}

func openOutput(output string) (io.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
}

// ParseLevel 解析日志级别,未知值按info处理
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// =========================================
// Context处理
// =========================================

type requestIDKey struct{}

// WithRequestID 将请求ID写入Context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext 从Context读取请求ID
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ContextHandler 从Context提取追踪信息并附加到每条日志
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler 包装一个slog.Handler
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{handler: h}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		spanContext := trace.SpanContextFromContext(ctx)
		if spanContext.HasTraceID() {
			r.AddAttrs(slog.String("trace_id", spanContext.TraceID().String()))
		}
		if spanContext.HasSpanID() {
			r.AddAttrs(slog.String("span_id", spanContext.SpanID().String()))
		}
		if id := RequestIDFromContext(ctx); id != "" {
			r.AddAttrs(slog.String("request_id", id))
		}
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs 必须返回包装后的Handler,否则With()之后会丢失上下文字段
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}
