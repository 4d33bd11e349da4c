package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rossyndicate/srst/internal/app/acquire"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/region"
	"github.com/rossyndicate/srst/internal/storage/io"
)

// Acquire submits the region and metadata exports of a tile and writes its scene manifests.
//
// The settings input paths are resolved on [AcquireOpts].WorkDir. Returns [ErrNotValid]
// if the settings or the tile are not valid.
func (c *Client) Acquire(ctx context.Context, opts AcquireOpts) (*AcquireResult, error) {
	rootFS := os.DirFS("/")

	tile, err := model.ParseTile(opts.Tile)
	if err != nil {
		return nil, mapError(err)
	}

	configPath, err := io.RootedPath(".", opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg, err := io.NewSettingsRepository(rootFS).GetSettings(ctx, configPath)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not load settings: %w", err))
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = filepath.Dir(opts.ConfigFile)
	}
	cfg.Inputs, err = io.ResolveInputs(workDir, cfg.Inputs)
	if err != nil {
		return nil, err
	}

	eng, err := c.newEngine(cfg.EEProject)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create engine: %w", err))
	}

	regions, err := region.NewBuilder(region.BuilderConfig{
		Geometries: io.NewGeometryRepository(rootFS),
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create region builder: %w", err)
	}

	svc, err := acquire.NewService(acquire.ServiceConfig{
		Engine:     eng,
		Repository: c.repo,
		Regions:    regions,
		Manifests:  io.NewManifestRepository(cfg.Inputs.OutDir),
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, acquire.Request{
		Config:       cfg,
		Tile:         tile,
		SkipExisting: opts.SkipExisting,
		NoMetadata:   opts.NoMetadata,
		NoManifests:  opts.NoManifests,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &AcquireResult{
		RunID:     res.RunID,
		Submitted: fromInternalExportList(res.Submitted),
		Skipped:   res.Skipped,
		Manifests: res.Manifests,
	}, nil
}
