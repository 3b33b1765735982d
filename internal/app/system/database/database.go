// Package database opens the SQLite content database and applies the
// embedded goose migrations.
//
// All content tables (About, Media, Home, Projects) live in a single
// database file. Migrations are forward-only "create if missing" scripts
// under migrations/, numbered in the order they were added.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// goose keeps its dialect, base FS and logger in package globals.
var gooseMu sync.Mutex

// Options controls how the database handle is opened.
type Options struct {
	// MaxOpenConns caps the pool. SQLite serializes writers, so small
	// values are normal. Zero means 1.
	MaxOpenConns int
}

// DSN builds a modernc.org/sqlite data source name for path with foreign
// keys enabled and a busy timeout. ":memory:" and "file:" URIs are passed
// through with the same pragmas appended.
func DSN(path string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	switch {
	case path == ":memory:":
		return "file::memory:?" + pragmas
	case strings.HasPrefix(path, "file:"):
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + pragmas
	default:
		return "file:" + path + "?" + pragmas + "&_pragma=journal_mode(WAL)"
	}
}

// Open opens the SQLite database at path and verifies the connection.
func Open(ctx context.Context, path string, opts Options) (*sql.DB, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}
	return db, nil
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := configureGoose(logger); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Version returns the current migration version of db.
func Version(ctx context.Context, db *sql.DB, logger *zap.Logger) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := configureGoose(logger); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	return v, nil
}

// AppliedVersion reads the highest applied migration straight from the
// goose version table. It leaves goose's global settings alone, so it is
// safe on hot paths such as health checks.
func AppliedVersion(ctx context.Context, db *sql.DB) (int64, error) {
	var v int64
	q := fmt.Sprintf(`SELECT COALESCE(MAX(version_id), 0) FROM %s WHERE is_applied`, goose.TableName())
	if err := db.QueryRowContext(ctx, q).Scan(&v); err != nil {
		return 0, fmt.Errorf("read applied version: %w", err)
	}
	return v, nil
}

// Status logs the applied/pending state of every migration.
func Status(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := configureGoose(logger); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

func configureGoose(logger *zap.Logger) error {
	goose.SetBaseFS(migrations)
	if logger != nil {
		goose.SetLogger(gooseLogger{s: logger.Sugar()})
	} else {
		goose.SetLogger(goose.NopLogger())
	}
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// gooseLogger routes goose output through zap.
type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.s.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.s.Fatalf(strings.TrimSuffix(format, "\n"), v...)
}
