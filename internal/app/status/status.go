package status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rossyndicate/srst/internal/engine"
	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/storage"
)

// ServiceConfig is the configuration for the status service.
type ServiceConfig struct {
	Repository storage.Repository
	// Engine is optional, only required by refresh requests.
	Engine engine.Engine
	Now    func() time.Time
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Status"})

	return nil
}

// Service retrieves detailed export status.
type Service struct {
	repo   storage.Repository
	engine engine.Engine
	now    func() time.Time
	logger log.Logger
}

// NewService creates a new status service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		engine: cfg.Engine,
		now:    cfg.Now,
		logger: cfg.Logger,
	}, nil
}

// Request represents the status request parameters.
type Request struct {
	// NameOrID is the export name or ledger ID to query.
	NameOrID string
	// Refresh asks the engine for the task state before returning.
	Refresh bool
}

// Run retrieves the status of an export by name or ID.
// It tries name lookup first, then ID lookup if the input looks like a ULID.
func (s *Service) Run(ctx context.Context, req Request) (*model.ExportRecord, error) {
	if req.Refresh && s.engine == nil {
		return nil, fmt.Errorf("refresh requires an engine: %w", model.ErrNotValid)
	}

	s.logger.Debugf("getting status for export: %s", req.NameOrID)

	rec, err := s.lookup(ctx, req.NameOrID)
	if err != nil {
		return nil, err
	}

	if !req.Refresh || rec.State.Terminal() {
		return rec, nil
	}

	task, err := s.engine.Task(ctx, rec.TaskID)
	if err != nil {
		return nil, fmt.Errorf("could not get task %q: %w", rec.TaskID, err)
	}

	if task.State == rec.State && task.Error == rec.Error {
		return rec, nil
	}

	s.logger.Infof("Export %s changed state %s -> %s", rec.Name, rec.State, task.State)
	rec.State = task.State
	rec.Error = task.Error
	rec.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateExport(ctx, *rec); err != nil {
		return nil, fmt.Errorf("could not update export: %w", err)
	}

	return rec, nil
}

func (s *Service) lookup(ctx context.Context, nameOrID string) (*model.ExportRecord, error) {
	rec, err := s.repo.GetExportByName(ctx, nameOrID)
	if err == nil {
		s.logger.Debugf("found export by name: %s", rec.ID)
		return rec, nil
	}

	// Names are never ULIDs, only those are retried as IDs.
	if errors.Is(err, model.ErrNotFound) && looksLikeULID(nameOrID) {
		s.logger.Debugf("name lookup failed, trying ID lookup")
		rec, err = s.repo.GetExport(ctx, nameOrID)
		if err == nil {
			s.logger.Debugf("found export by ID: %s", rec.ID)
			return rec, nil
		}
	}

	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("export not found: %s: %w", nameOrID, model.ErrNotFound)
	}

	return nil, fmt.Errorf("could not get export status: %w", err)
}

// looksLikeULID checks if a string looks like a ULID (26 characters, alphanumeric uppercase).
func looksLikeULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
