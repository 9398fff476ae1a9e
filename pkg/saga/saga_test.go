package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaga_Execute_Success(t *testing.T) {
	var executed []string

	s := New("checkout", 5*time.Second).
		AddStep("创建订单",
			func(ctx context.Context) error { executed = append(executed, "创建订单"); return nil },
			func(ctx context.Context) error { executed = append(executed, "取消订单"); return nil },
		).
		AddStep("清空购物车",
			func(ctx context.Context) error { executed = append(executed, "清空购物车"); return nil },
			nil,
		)

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"创建订单", "清空购物车"}, executed)
}

func TestSaga_Execute_FailureAndCompensate(t *testing.T) {
	var executed []string
	errClear := errors.New("清空失败")

	s := New("checkout", 5*time.Second).
		AddStep("扣减库存",
			func(ctx context.Context) error { executed = append(executed, "扣减库存"); return nil },
			func(ctx context.Context) error { executed = append(executed, "恢复库存"); return nil },
		).
		AddStep("创建订单",
			func(ctx context.Context) error { executed = append(executed, "创建订单"); return nil },
			func(ctx context.Context) error { executed = append(executed, "取消订单"); return nil },
		).
		AddStep("清空购物车",
			func(ctx context.Context) error { return errClear },
			nil,
		)

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errClear)

	// 逆序补偿
	assert.Equal(t, []string{"扣减库存", "创建订单", "取消订单", "恢复库存"}, executed)
}

func TestSaga_Execute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var compensated bool

	s := New("checkout", 0).
		AddStep("第一步",
			func(ctx context.Context) error { cancel(); return nil },
			func(ctx context.Context) error {
				compensated = true
				// 补偿Context不受原请求取消影响
				assert.NoError(t, ctx.Err())
				return nil
			},
		).
		AddStep("第二步", func(ctx context.Context) error { return nil }, nil)

	err := s.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, compensated)
}

func TestSaga_CompensationErrorDoesNotStopOthers(t *testing.T) {
	var compensated []string

	s := New("checkout", time.Second).
		AddStep("a", func(ctx context.Context) error { return nil },
			func(ctx context.Context) error { compensated = append(compensated, "a"); return nil }).
		AddStep("b", func(ctx context.Context) error { return nil },
			func(ctx context.Context) error { compensated = append(compensated, "b"); return errors.New("x") }).
		AddStep("c", func(ctx context.Context) error { return errors.New("fail") }, nil)

	require.Error(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"b", "a"}, compensated)
}
