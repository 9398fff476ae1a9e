// Package clock 可注入的时钟
// 订单号、发货时间等依赖当前时间的逻辑通过Clock获取时间,测试中可替换为固定时钟
package clock

import (
	"sync"
	"time"
)

// Clock 时间来源
type Clock interface {
	Now() time.Time
}

// Real 系统时钟
type Real struct{}

// New 返回系统时钟
func New() Clock {
	return Real{}
}

func (Real) Now() time.Time {
	return time.Now()
}

// Fixed 固定时钟(测试用),可通过Advance推进
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed 创建固定时钟
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance 推进时钟
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
