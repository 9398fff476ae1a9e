package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/xiebiao/grocery/pkg/clock"
)

// NumberGenerator 订单号生成器
// 格式: ORD-<毫秒时间戳>-<UUID前8位大写>
// 示例: ORD-1714557600000-9F86D081
//
// 毫秒时间戳保证大致有序,随机段保证同一毫秒内不冲突。
// 极端情况下的冲突由orders.order_number唯一索引兜底。
type NumberGenerator struct {
	clock   clock.Clock
	newUUID func() uuid.UUID
}

// NewNumberGenerator 创建订单号生成器
func NewNumberGenerator(c clock.Clock) *NumberGenerator {
	return &NumberGenerator{clock: c, newUUID: uuid.New}
}

// Next 生成下一个订单号
func (g *NumberGenerator) Next() string {
	id := strings.ReplaceAll(g.newUUID().String(), "-", "")
	return fmt.Sprintf("ORD-%d-%s", g.clock.Now().UnixMilli(), strings.ToUpper(id[:8]))
}
