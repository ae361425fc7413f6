package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"career-guide/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// ErrDirty means an earlier migration failed halfway and needs a manual fix.
var ErrDirty = errors.New("database is dirty")

const (
	migrationsTableExists = `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`
	createMigrationsTable = `CREATE TABLE schema_migrations (version NUMBER(19) PRIMARY KEY, dirty NUMBER(1) DEFAULT 0 NOT NULL)`
	selectLatestVersion   = `SELECT version, dirty FROM schema_migrations ORDER BY version DESC FETCH FIRST 1 ROWS ONLY`
	insertVersion         = `INSERT INTO schema_migrations (version, dirty) VALUES (:1, 1)`
	markClean             = `UPDATE schema_migrations SET dirty = 0 WHERE version = :1`
	markDirty             = `UPDATE schema_migrations SET dirty = 1 WHERE version = :1`
	deleteVersion         = `DELETE FROM schema_migrations WHERE version = :1`
)

// Migrator applies versioned SQL files read through a golang-migrate source
// driver. Each file holds exactly one Oracle statement without a trailing
// semicolon.
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
}

// NewMigrator reads migrations from dir inside fsys.
func NewMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migration source: %w", err)
	}
	return &Migrator{db: db, src: src}, nil
}

// NewEmbeddedMigrator uses the migrations compiled into the binary.
func NewEmbeddedMigrator(db *sqlx.DB) (*Migrator, error) {
	return NewMigrator(db, migrationFiles, "migrations")
}

func (m *Migrator) Close() error {
	return m.src.Close()
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	var n int
	if err := m.db.GetContext(ctx, &n, migrationsTableExists); err != nil {
		return fmt.Errorf("could not check schema_migrations: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

type versionRow struct {
	Version uint `db:"VERSION"`
	Dirty   int  `db:"DIRTY"`
}

// Version returns the latest applied version, 0 when none.
func (m *Migrator) Version(ctx context.Context) (version uint, dirty bool, err error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, false, err
	}
	var rows []versionRow
	if err := m.db.SelectContext(ctx, &rows, selectLatestVersion); err != nil {
		return 0, false, fmt.Errorf("could not read schema version: %w", err)
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].Version, rows[0].Dirty != 0, nil
}

// Up applies every migration newer than the current version and returns how
// many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	current, dirty, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, fmt.Errorf("%w at version %d", ErrDirty, current)
	}

	next, err := m.src.First()
	if current > 0 {
		next, err = m.src.Next(current)
	}
	applied := 0
	for err == nil {
		if err := m.apply(ctx, next); err != nil {
			return applied, err
		}
		applied++
		next, err = m.src.Next(next)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return applied, fmt.Errorf("could not list migrations: %w", err)
	}

	logger.Get().Info("Migrations completed successfully", zap.Int("applied", applied))
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, version uint) error {
	body, name, err := m.src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	stmt, err := readStatement(body)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}

	if _, err := m.db.ExecContext(ctx, insertVersion, version); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}
	if _, err := m.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("could not execute migration %d_%s: %w", version, name, err)
	}
	if _, err := m.db.ExecContext(ctx, markClean, version); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}
	logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", name))
	return nil
}

// Down reverts up to steps migrations, newest first. steps <= 0 reverts all.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	current, dirty, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, fmt.Errorf("%w at version %d", ErrDirty, current)
	}

	reverted := 0
	for current > 0 && (steps <= 0 || reverted < steps) {
		if err := m.revert(ctx, current); err != nil {
			return reverted, err
		}
		reverted++

		prev, err := m.src.Prev(current)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return reverted, fmt.Errorf("could not list migrations: %w", err)
		}
		current = prev
	}
	logger.Get().Info("Migrations reverted", zap.Int("reverted", reverted))
	return reverted, nil
}

func (m *Migrator) revert(ctx context.Context, version uint) error {
	body, name, err := m.src.ReadDown(version)
	if err != nil {
		return fmt.Errorf("could not read down migration %d: %w", version, err)
	}
	stmt, err := readStatement(body)
	if err != nil {
		return fmt.Errorf("could not read down migration %d: %w", version, err)
	}

	if _, err := m.db.ExecContext(ctx, markDirty, version); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}
	if _, err := m.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("could not execute down migration %d_%s: %w", version, name, err)
	}
	if _, err := m.db.ExecContext(ctx, deleteVersion, version); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}
	logger.Get().Info("Reverted migration", zap.Uint("version", version), zap.String("name", name))
	return nil
}

func readStatement(r io.ReadCloser) (string, error) {
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	stmt := strings.TrimSuffix(strings.TrimSpace(string(b)), ";")
	if stmt == "" {
		return "", errors.New("empty migration")
	}
	return stmt, nil
}
