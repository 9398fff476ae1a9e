// Package saga 基于补偿的多步骤流程编排
//
// 每个步骤包含正向操作与补偿操作;任一步骤失败时,
// 按相反顺序补偿所有已成功的步骤。
// 适用于无法放进同一个数据库事务的流程(例如"下单"与"清空购物车"分属两个用例)。
package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xiebiao/grocery/pkg/metrics"
)

// Step Saga步骤
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 一次流程执行(不可复用)
type Saga struct {
	name     string
	steps    []Step
	executed []Step
	timeout  time.Duration
}

// New 创建Saga,timeout<=0表示不限制
func New(name string, timeout time.Duration) *Saga {
	return &Saga{
		name:    name,
		timeout: timeout,
	}
}

// AddStep 追加步骤,compensate可以为nil(最后一步通常不需要补偿)
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
	return s
}

// Execute 按顺序执行所有步骤
// 失败时返回的错误包装了步骤原始错误,errors.Is/As可以穿透
func (s *Saga) Execute(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		metrics.IncCounterVec(metrics.SagaExecutionsTotal, map[string]string{"saga": s.name, "result": result})
		metrics.ObserveHistogram(metrics.SagaExecutionDuration, time.Since(start).Seconds())
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.compensate(ctx)
			return fmt.Errorf("saga %s 超时: %w", s.name, ctxErr)
		}

		if step.Action != nil {
			if stepErr := step.Action(ctx); stepErr != nil {
				s.compensate(ctx)
				return fmt.Errorf("saga %s 步骤[%d:%s]执行失败: %w", s.name, i, step.Name, stepErr)
			}
		}

		s.executed = append(s.executed, step)
	}

	return nil
}

// compensate 逆序补偿已执行的步骤
// 补偿使用脱离原请求取消信号的Context,避免原请求超时导致补偿也无法执行
func (s *Saga) compensate(ctx context.Context) {
	compCtx := context.WithoutCancel(ctx)

	var errs []error
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}

		metrics.IncCounter(metrics.SagaCompensationsTotal)
		if err := step.Compensate(compCtx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", step.Name, err))
		}
	}

	if len(errs) > 0 {
		slog.ErrorContext(ctx, "saga compensation failed", "saga", s.name, "error", errors.Join(errs...))
	}
	s.executed = nil
}
