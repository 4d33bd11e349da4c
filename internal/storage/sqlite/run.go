package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rossyndicate/srst/internal/model"
)

// CreateRun creates a new acquisition run in the ledger.
func (r *Repository) CreateRun(ctx context.Context, run model.AcquisitionRun) error {
	if run.ID == "" {
		return fmt.Errorf("run id is required: %w", model.ErrNotValid)
	}

	query := `
		INSERT INTO runs (
			id, project, tile, run_date, status,
			submitted, skipped, error,
			started_at, finished_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		run.ID,
		run.Project,
		run.Tile,
		run.RunDate.Format(model.DateLayout),
		run.Status,
		run.Submitted,
		run.Skipped,
		run.Error,
		run.StartedAt.Unix(),
		unixOrNil(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("could not insert run: %w", err)
	}

	r.logger.Debugf("Created run in repository: %s", run.ID)
	return nil
}

// UpdateRun updates the status and counters of a run.
func (r *Repository) UpdateRun(ctx context.Context, run model.AcquisitionRun) error {
	query := `
		UPDATE runs
		SET
			status = ?,
			submitted = ?,
			skipped = ?,
			error = ?,
			finished_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, run.Status, run.Submitted, run.Skipped, run.Error, unixOrNil(run.FinishedAt), run.ID)
	if err != nil {
		return fmt.Errorf("could not update run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run %s: %w", run.ID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated run: %s (status: %s)", run.ID, run.Status)
	return nil
}

// ListRuns returns the latest runs first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]model.AcquisitionRun, error) {
	query := `
		SELECT id, project, tile, run_date, status, submitted, skipped, error, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.AcquisitionRun
	for rows.Next() {
		var (
			run        model.AcquisitionRun
			runDate    string
			startedAt  int64
			finishedAt sql.NullInt64
		)
		err := rows.Scan(&run.ID, &run.Project, &run.Tile, &runDate, &run.Status, &run.Submitted, &run.Skipped, &run.Error, &startedAt, &finishedAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}

		run.RunDate, err = time.Parse(model.DateLayout, runDate)
		if err != nil {
			return nil, fmt.Errorf("invalid run date %q: %w", runDate, err)
		}
		run.StartedAt = timeFromUnix(startedAt)
		if finishedAt.Valid {
			t := timeFromUnix(finishedAt.Int64)
			run.FinishedAt = &t
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return runs, nil
}

func unixOrNil(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	u := t.Unix()
	return &u
}
