// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"murmur/internal/config"
	"murmur/internal/db"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Open returns a fresh, migrated database with foreign keys enforced.
// It is closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.Config{
		DBType:      "sqlite",
		DatabaseURL: ":memory:",
		DBLogLevel:  "silent",
	}
	gdb, err := db.Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}
