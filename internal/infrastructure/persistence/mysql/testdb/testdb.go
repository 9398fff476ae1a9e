// Package testdb 为仓储与用例测试提供内存SQLite数据库
package testdb

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
)

// New 创建一个已迁移的内存数据库,测试结束自动关闭
// 连接数限制为1:内存库每个连接都是独立的数据库
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), mysql.GormConfig("silent"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, mysql.AutoMigrate(db))
	return db
}
