package runlist

import (
	"context"
	"fmt"

	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/storage"
)

// DefaultLimit is the number of runs listed when no limit is requested.
const DefaultLimit = 20

// ServiceConfig is the configuration for the run list service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.RunList"})

	return nil
}

// Service lists the acquisition runs.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new run list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// Limit is the maximum number of runs, 0 uses the default and negative lists all.
	Limit int
}

// Run returns the latest runs first.
func (s *Service) Run(ctx context.Context, req Request) ([]model.AcquisitionRun, error) {
	limit := req.Limit
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 0:
		limit = 0
	}

	runs, err := s.repo.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("could not list runs: %w", err)
	}

	s.logger.Debugf("listed %d runs", len(runs))

	return runs, nil
}
