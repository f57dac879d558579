package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/markdave123-py/dataroom/internal/logger"
)

//go:embed scripts/initdb.sql
var initSQL string

const schemaVersion = "1"

// EnsureBootstrapped applies the schema once per database. A version row in
// dataroom_meta marks a database that has already been initialized so repeated
// starts skip the DDL.
func EnsureBootstrapped(ctx context.Context, conn *sql.DB) error {
	log := logger.New("database")

	bootCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	var current string
	err := conn.QueryRowContext(bootCtx,
		`SELECT value FROM dataroom_meta WHERE key = 'schema_version'`).Scan(&current)
	switch {
	case err == nil:
		if current != schemaVersion {
			return fmt.Errorf("schema version mismatch: have %s, want %s", current, schemaVersion)
		}
		return nil
	case errors.Is(err, sql.ErrNoRows):
		// Meta table exists but is empty; fall through and stamp it.
	default:
		// Table likely missing on a fresh database. The init script is
		// idempotent, so just run it.
	}

	log.Info("initializing database schema")
	if _, err := conn.ExecContext(bootCtx, initSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	_, err = conn.ExecContext(bootCtx, `
		INSERT INTO dataroom_meta (key, value) VALUES ('schema_version', $1)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, schemaVersion)
	if err != nil {
		return fmt.Errorf("stamp schema version: %w", err)
	}
	return nil
}
