package exportsync

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

// ServiceConfig is the configuration for the export sync service.
type ServiceConfig struct {
	Engine     engine.Engine
	Repository storage.Repository
	Now        func() time.Time
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ExportSync"})
	return nil
}

// Service refreshes the ledger export states with the engine task states.
type Service struct {
	engine engine.Engine
	repo   storage.Repository
	now    func() time.Time
	logger log.Logger
}

// NewService creates a new export sync service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine: cfg.Engine,
		repo:   cfg.Repository,
		now:    cfg.Now,
		logger: cfg.Logger,
	}, nil
}

// Request represents the sync request parameters.
type Request struct {
	// Tile limits the sync to one `PPPRRR` tile, empty syncs all.
	Tile string
}

// Result is the sync outcome.
type Result struct {
	// Checked is the number of non terminal exports asked to the engine.
	Checked int
	// Updated are the exports whose state changed.
	Updated []model.ExportRecord
	// Missing are the names of exports the engine does not know.
	Missing []string
}

// Run syncs every non terminal export of the ledger.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	recs, err := s.repo.ListExports(ctx, model.ExportListOpts{
		Tile:   req.Tile,
		States: []model.TaskState{model.TaskStateReady, model.TaskStateRunning},
	})
	if err != nil {
		return nil, fmt.Errorf("could not list exports: %w", err)
	}

	res := &Result{}
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		res.Checked++
		task, err := s.engine.Task(ctx, rec.TaskID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				s.logger.Warningf("Export %s task %s not found on engine", rec.Name, rec.TaskID)
				res.Missing = append(res.Missing, rec.Name)
				continue
			}
			return res, fmt.Errorf("could not get task %q: %w", rec.TaskID, err)
		}

		if task.State == rec.State && task.Error == rec.Error {
			continue
		}

		s.logger.Infof("Export %s changed state %s -> %s", rec.Name, rec.State, task.State)
		rec.State = task.State
		rec.Error = task.Error
		rec.UpdatedAt = s.now().UTC()
		if err := s.repo.UpdateExport(ctx, rec); err != nil {
			return res, fmt.Errorf("could not update export %q: %w", rec.Name, err)
		}
		res.Updated = append(res.Updated, rec)
	}

	return res, nil
}
