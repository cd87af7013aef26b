package db

import (
	"testing"

	"murmur/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	for _, tc := range []struct{ dbType, name string }{
		{"sqlite", "sqlite"},
		{"mysql", "mysql"},
		{"postgres", "postgres"},
		{"pq", "postgres"},
	} {
		t.Run(tc.dbType, func(t *testing.T) {
			d, err := Dialector(tc.dbType, "dsn")
			require.NoError(t, err)
			assert.Equal(t, tc.name, d.Name())
		})
	}

	_, err := Dialector("sqlserver", "dsn")
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestWithParam(t *testing.T) {
	assert.Equal(t, "app.db?_pragma=foreign_keys(1)", withParam("app.db", "_pragma", "foreign_keys(1)"))
	assert.Equal(t, "u@tcp(h)/db?charset=utf8mb4&parseTime=true", withParam("u@tcp(h)/db?charset=utf8mb4", "parseTime", "true"))
	assert.Equal(t, "u@tcp(h)/db?parseTime=false", withParam("u@tcp(h)/db?parseTime=false", "parseTime", "true"))
}

func TestConnectSQLiteEnforcesForeignKeys(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	gdb, err := Connect(config.Config{DBType: "sqlite", DatabaseURL: ":memory:", DBLogLevel: "silent"}, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })
	require.NoError(t, AutoMigrate(gdb))

	var on int
	require.NoError(t, gdb.Raw("PRAGMA foreign_keys").Scan(&on).Error)
	assert.Equal(t, 1, on)

	for _, table := range []string{"users", "posts", "comments", "likes", "notes"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	err = gdb.Exec("INSERT INTO posts (user_id, content, created_at) VALUES (42, 'orphan', CURRENT_TIMESTAMP)").Error
	assert.Error(t, err, "post for a missing user must be rejected")

	assert.Equal(t, 1, logs.FilterMessage("database connected").Len())
}

func TestNewLoggerLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	l := newLogger(log, "info")
	l.Info(t.Context(), "hello %s", "gorm")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "gorm", logs.All()[0].LoggerName)

	quiet := newLogger(log, "silent").LogMode(logger.Silent)
	quiet.Error(t.Context(), "dropped")
	assert.Equal(t, 1, logs.Len())

	warn := newLogger(log, "")
	warn.Info(t.Context(), "below warn")
	assert.Equal(t, 1, logs.Len())
	warn.Warn(t.Context(), "kept")
	assert.Equal(t, 2, logs.Len())
}
