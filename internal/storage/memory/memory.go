package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	exports map[string]model.ExportRecord
	runs    map[string]model.AcquisitionRun
	mu      sync.RWMutex
	logger  log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		exports: make(map[string]model.ExportRecord),
		runs:    make(map[string]model.AcquisitionRun),
		logger:  cfg.Logger,
	}, nil
}

// CreateExport creates a new export in the repository.
func (r *Repository) CreateExport(ctx context.Context, e model.ExportRecord) error {
	if e.ID == "" || e.Name == "" {
		return fmt.Errorf("export id and name are required: %w", model.ErrNotValid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.exports[e.ID]; ok {
		return fmt.Errorf("export with id %s: %w", e.ID, model.ErrAlreadyExists)
	}

	r.exports[e.ID] = e
	r.logger.Debugf("Created export in repository: %s", e.ID)

	return nil
}

// GetExport retrieves an export by ID.
func (r *Repository) GetExport(ctx context.Context, id string) (*model.ExportRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.exports[id]
	if !ok {
		return nil, fmt.Errorf("export %s: %w", id, model.ErrNotFound)
	}

	return &e, nil
}

// GetExportByName retrieves the latest export with a name.
func (r *Repository) GetExportByName(ctx context.Context, name string) (*model.ExportRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.sorted() {
		if e.Name == name {
			return &e, nil
		}
	}

	return nil, fmt.Errorf("export with name %s: %w", name, model.ErrNotFound)
}

// ListExports returns the exports matching the options, latest first.
func (r *Repository) ListExports(ctx context.Context, opts model.ExportListOpts) ([]model.ExportRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var exports []model.ExportRecord
	for _, e := range r.sorted() {
		if opts.Tile != "" && e.Tile != opts.Tile {
			continue
		}
		if len(opts.States) > 0 && !slices.Contains(opts.States, e.State) {
			continue
		}
		exports = append(exports, e)
	}

	return exports, nil
}

// UpdateExport updates an existing export.
func (r *Repository) UpdateExport(ctx context.Context, e model.ExportRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.exports[e.ID]; !ok {
		return fmt.Errorf("export %s: %w", e.ID, model.ErrNotFound)
	}

	r.exports[e.ID] = e
	r.logger.Debugf("Updated export in repository: %s", e.ID)

	return nil
}

// CreateRun creates a new acquisition run in the repository.
func (r *Repository) CreateRun(ctx context.Context, run model.AcquisitionRun) error {
	if run.ID == "" {
		return fmt.Errorf("run id is required: %w", model.ErrNotValid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[run.ID]; ok {
		return fmt.Errorf("run with id %s: %w", run.ID, model.ErrAlreadyExists)
	}

	r.runs[run.ID] = run
	return nil
}

// UpdateRun updates an existing run.
func (r *Repository) UpdateRun(ctx context.Context, run model.AcquisitionRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[run.ID]; !ok {
		return fmt.Errorf("run %s: %w", run.ID, model.ErrNotFound)
	}

	r.runs[run.ID] = run
	return nil
}

// ListRuns returns the latest runs first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]model.AcquisitionRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]model.AcquisitionRun, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	return runs, nil
}

// sorted returns the exports latest first, must be called with the lock held.
func (r *Repository) sorted() []model.ExportRecord {
	exports := make([]model.ExportRecord, 0, len(r.exports))
	for _, e := range r.exports {
		exports = append(exports, e)
	}
	sort.Slice(exports, func(i, j int) bool {
		if exports[i].CreatedAt.Equal(exports[j].CreatedAt) {
			return exports[i].ID > exports[j].ID
		}
		return exports[i].CreatedAt.After(exports[j].CreatedAt)
	})
	return exports
}
