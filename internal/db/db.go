package db

import (
	"fmt"
	"strings"

	"murmur/internal/auth"
	"murmur/internal/config"
	"murmur/internal/note"
	"murmur/internal/post"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DBType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger(log, cfg.DBLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBType, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql db: %w", err)
	}

	if cfg.DBType == "sqlite" {
		// one connection keeps the foreign_keys pragma and in-memory
		// databases alive for the life of the pool
		sqlDB.SetMaxOpenConns(1)
		if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	} else if cfg.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(max(cfg.DBMaxOpenConns/2, 1))
	}

	log.Info("database connected", zap.String("type", cfg.DBType))
	return gdb, nil
}

// Dialector maps DB_TYPE to a gorm dialector. "postgres" goes through
// pgx, "pq" through lib/pq.
func Dialector(dbType, dsn string) (gorm.Dialector, error) {
	switch dbType {
	case "sqlite":
		return sqlite.Open(withParam(dsn, "_pragma", "foreign_keys(1)")), nil
	case "mysql":
		return mysql.Open(withParam(dsn, "parseTime", "true")), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "pq":
		return postgres.New(postgres.Config{DriverName: "postgres", DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// AutoMigrate creates the five tables if absent. Order matters: parents
// before the tables holding foreign keys to them.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&auth.User{},
		&post.Post{},
		&post.Comment{},
		&post.Like{},
		&note.Note{},
	)
}

func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withParam(dsn, key, value string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + value
}

type zapWriter struct {
	s *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...any) {
	w.s.Infof(format, args...)
}

func newLogger(log *zap.Logger, level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(zapWriter{s: log.Named("gorm").Sugar()}, logger.Config{
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
