package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

const exportColumns = `
	id, task_id, name, kind, sensor_group,
	extent, dswe, tile,
	state, error,
	created_at, updated_at
`

// CreateExport creates a new export record in the ledger.
func (r *Repository) CreateExport(ctx context.Context, e model.ExportRecord) error {
	if e.ID == "" || e.Name == "" {
		return fmt.Errorf("export id and name are required: %w", model.ErrNotValid)
	}

	query := `INSERT INTO exports (` + exportColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(
		ctx,
		query,
		e.ID,
		e.TaskID,
		e.Name,
		e.Kind,
		e.Group,
		e.Extent,
		e.Tier,
		e.Tile,
		e.State,
		e.Error,
		e.CreatedAt.Unix(),
		e.UpdatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: exports.") {
			return fmt.Errorf("export already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert export: %w", err)
	}

	r.logger.Debugf("Created export in repository: %s", e.ID)
	return nil
}

// GetExport retrieves an export by ID.
func (r *Repository) GetExport(ctx context.Context, id string) (*model.ExportRecord, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE id = ?`

	export, err := r.scanOne(ctx, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("export %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query export: %w", err)
	}

	return export, nil
}

// GetExportByName retrieves the latest export with a name.
func (r *Repository) GetExportByName(ctx context.Context, name string) (*model.ExportRecord, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE name = ? ORDER BY created_at DESC, id DESC LIMIT 1`

	export, err := r.scanOne(ctx, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("export with name %s: %w", name, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query export: %w", err)
	}

	return export, nil
}

// ListExports returns the exports matching the options, latest first.
func (r *Repository) ListExports(ctx context.Context, opts model.ExportListOpts) ([]model.ExportRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.Tile != "" {
		where = append(where, "tile = ?")
		args = append(args, opts.Tile)
	}
	if len(opts.States) > 0 {
		placeholders := make([]string, 0, len(opts.States))
		for _, s := range opts.States {
			placeholders = append(placeholders, "?")
			args = append(args, s)
		}
		where = append(where, "state IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := `SELECT ` + exportColumns + ` FROM exports`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query exports: %w", err)
	}
	defer rows.Close()

	var exports []model.ExportRecord
	for rows.Next() {
		export, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		exports = append(exports, export)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return exports, nil
}

// UpdateExport updates an existing export.
func (r *Repository) UpdateExport(ctx context.Context, e model.ExportRecord) error {
	query := `
		UPDATE exports
		SET
			task_id = ?,
			name = ?,
			kind = ?,
			sensor_group = ?,
			extent = ?,
			dswe = ?,
			tile = ?,
			state = ?,
			error = ?,
			created_at = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		e.TaskID,
		e.Name,
		e.Kind,
		e.Group,
		e.Extent,
		e.Tier,
		e.Tile,
		e.State,
		e.Error,
		e.CreatedAt.Unix(),
		e.UpdatedAt.Unix(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("could not update export: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("export %s: %w", e.ID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated export in repository: %s", e.ID)
	return nil
}

func (r *Repository) scanOne(ctx context.Context, query string, arg any) (*model.ExportRecord, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	export, err := r.scanRow(row)
	if err != nil {
		return nil, err
	}
	return &export, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanRow(s scanner) (model.ExportRecord, error) {
	var e model.ExportRecord
	var createdAt, updatedAt sql.NullInt64

	err := s.Scan(
		&e.ID,
		&e.TaskID,
		&e.Name,
		&e.Kind,
		&e.Group,
		&e.Extent,
		&e.Tier,
		&e.Tile,
		&e.State,
		&e.Error,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return model.ExportRecord{}, err
	}

	if !createdAt.Valid {
		return model.ExportRecord{}, fmt.Errorf("created_at is required")
	}
	e.CreatedAt = timeFromUnix(createdAt.Int64)
	if updatedAt.Valid {
		e.UpdatedAt = timeFromUnix(updatedAt.Int64)
	}

	return e, nil
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }
