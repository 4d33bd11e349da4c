package exportlist

import (
	"context"
	"fmt"

	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/storage"
)

// ServiceConfig is the configuration for the export list service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ExportList"})

	return nil
}

// Service lists the ledger exports.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new export list service.
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
	// Tile filters by `PPPRRR` tile, empty lists all.
	Tile string
	// States filters by any of the states, empty lists all.
	States []model.TaskState
}

// Run returns the ledger exports, latest first.
func (s *Service) Run(ctx context.Context, req Request) ([]model.ExportRecord, error) {
	tile := ""
	if req.Tile != "" {
		t, err := model.ParseTile(req.Tile)
		if err != nil {
			return nil, fmt.Errorf("invalid tile filter: %w", err)
		}
		tile = t.String()
	}

	recs, err := s.repo.ListExports(ctx, model.ExportListOpts{
		Tile:   tile,
		States: req.States,
	})
	if err != nil {
		return nil, fmt.Errorf("could not list exports: %w", err)
	}

	s.logger.Debugf("listed %d exports", len(recs))

	return recs, nil
}
