// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration provides a thin wrapper around golang-migrate for
// running database schema migrations.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. The SQL files are embedded
// in the binary, so the durable tier can bring its own schema up to date the
// first time a connection is established, without a migrations directory on disk.
package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/bookscout/internal/platform/constants"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// RunUp applies all pending UP migrations.
//
// # Parameters
//   - dsn: A libpq-compatible DSN or postgres:// URL.
//   - logger: Structured logger for migration events.
func RunUp(dsn string, logger *slog.Logger) error {
	source, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return fmt.Errorf("migration: failed to open embedded files: %w", err)
	}

	// golang-migrate pgx/v5 driver expects "pgx5://" scheme. The driver takes
	// no context, so the dial is bounded through the DSN.
	target := Pgx5DSN(WithConnectTimeout(dsn, constants.DatabaseConnectTimeout))
	migrator, err := migrate.NewWithSourceInstance("iofs", source, target)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	// Enable verbose logging via the slog bridge.
	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}

	logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)

	return nil
}

// Pgx5DSN rewrites a postgres:// or postgresql:// URL to the pgx5:// scheme
// required by golang-migrate/v4. Other strings are returned unchanged.
func Pgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// WithConnectTimeout sets the libpq connect_timeout parameter on dsn unless it
// already carries one. The value is rounded up to whole seconds.
func WithConnectTimeout(dsn string, timeout time.Duration) string {
	seconds := strconv.Itoa(int((timeout + time.Second - 1) / time.Second))

	parsed, err := url.Parse(dsn)
	if err != nil || parsed.Scheme == "" {
		if strings.Contains(dsn, "connect_timeout=") {
			return dsn
		}
		return strings.TrimSpace(dsn + " connect_timeout=" + seconds)
	}

	query := parsed.Query()
	if query.Has("connect_timeout") {
		return dsn
	}
	query.Set("connect_timeout", seconds)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_progress", slog.String("message", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
