package acquire

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rossyndicate/srst/internal/engine"
	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/pipeline"
	"github.com/rossyndicate/srst/internal/storage"
	"github.com/rossyndicate/srst/internal/throttle"
)

// RegionBuilder builds the region sets of the configured extents.
type RegionBuilder interface {
	Build(ctx context.Context, cfg model.AcquisitionConfig) ([]model.RegionSet, error)
}

// ManifestWriter writes the scene ID manifests.
type ManifestWriter interface {
	WriteManifest(ctx context.Context, name string, ids []string) (string, error)
}

// ServiceConfig is the configuration for the acquire service.
type ServiceConfig struct {
	Engine     engine.Engine
	Repository storage.Repository
	Regions    RegionBuilder
	Manifests  ManifestWriter
	// Sleep is the throttle wait, by default a timer.
	Sleep  throttle.SleepFunc
	Now    func() time.Time
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Regions == nil {
		return fmt.Errorf("region builder is required")
	}
	if c.Manifests == nil {
		return fmt.Errorf("manifest writer is required")
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Acquire"})
	return nil
}

// Service runs the acquisitions of a tile.
type Service struct {
	engine    engine.Engine
	repo      storage.Repository
	regions   RegionBuilder
	manifests ManifestWriter
	sleep     throttle.SleepFunc
	now       func() time.Time
	logger    log.Logger
}

// NewService creates a new acquire service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine:    cfg.Engine,
		repo:      cfg.Repository,
		regions:   cfg.Regions,
		manifests: cfg.Manifests,
		sleep:     cfg.Sleep,
		now:       cfg.Now,
		logger:    cfg.Logger,
	}, nil
}

// Request represents the acquire request parameters.
type Request struct {
	Config model.AcquisitionConfig
	Tile   model.Tile
	// SkipExisting doesn't resubmit the exports already on the ledger that didn't fail.
	SkipExisting bool
	// NoMetadata disables the metadata exports.
	NoMetadata bool
	// NoManifests disables the scene ID manifests.
	NoManifests bool
}

// Result is the summary of an acquisition.
type Result struct {
	RunID     string
	Submitted []model.ExportRecord
	Skipped   []string
	Manifests []string
}

// Run submits the region and metadata exports of the tile and writes the scene manifests.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	cfg := req.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := req.Tile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tile: %w", err)
	}

	submitter, err := throttle.NewSubmitter(throttle.SubmitterConfig{
		Engine:       s.engine,
		MaxTasks:     cfg.Throttle.MaxTasks,
		PollInterval: cfg.Throttle.PollInterval,
		MaxWait:      cfg.Throttle.MaxWait,
		Sleep:        s.sleep,
		Logger:       s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create submitter: %w", err)
	}

	run := model.AcquisitionRun{
		ID:        ulid.Make().String(),
		Project:   cfg.Project,
		Tile:      req.Tile.String(),
		RunDate:   cfg.RunDate,
		Status:    model.RunStatusRunning,
		StartedAt: s.now().UTC(),
	}
	if err := s.repo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("could not save run: %w", err)
	}

	ctx = log.CtxWithValues(ctx, log.Kv{"run-id": run.ID, "tile": run.Tile})
	logger := s.logger.WithCtxValues(ctx)

	res := &Result{RunID: run.ID}
	runErr := s.run(ctx, logger, submitter, req, res)

	finished := s.now().UTC()
	run.FinishedAt = &finished
	run.Submitted = len(res.Submitted)
	run.Skipped = len(res.Skipped)
	run.Status = model.RunStatusDone
	if runErr != nil {
		run.Status = model.RunStatusFailed
		run.Error = runErr.Error()
	}
	if err := s.repo.UpdateRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Errorf("Could not update run: %s", err)
	}

	if runErr != nil {
		return res, runErr
	}

	logger.Infof("Acquisition finished: %d exports submitted, %d skipped", len(res.Submitted), len(res.Skipped))

	return res, nil
}

func (s *Service) run(ctx context.Context, logger log.Logger, submitter *throttle.Submitter, req Request, res *Result) error {
	cfg := req.Config

	sets, err := s.regions.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not build regions: %w", err)
	}

	tiers, unknown := pipeline.ParseTiers(cfg.DSWE)
	for _, u := range unknown {
		logger.WithValues(log.Kv{"dswe": u}).Warningf("DSWE setting not identified. Check configuration file.")
	}

	// Scene IDs are queried first, groups without scenes on the tile don't submit exports.
	var groups []model.SensorGroup
	collections := make(map[model.SensorGroup]model.ImageCollection, len(pipeline.SensorGroups))
	sceneIDs := make(map[model.SensorGroup][]string, len(pipeline.SensorGroups))
	for _, group := range pipeline.SensorGroups {
		collection := pipeline.NewImageCollection(cfg, group, req.Tile)
		ids, err := s.engine.AggregateIDs(ctx, collection, model.ProductIDProperty)
		if err != nil {
			return fmt.Errorf("could not get %s scene IDs: %w", group, err)
		}

		collections[group] = collection
		sceneIDs[group] = ids
		if len(ids) == 0 {
			logger.WithValues(log.Kv{"group": group}).Warningf("No scenes on the tile, skipping exports")
			continue
		}
		groups = append(groups, group)
	}

	for _, group := range groups {
		for _, set := range sets {
			if len(set.Regions) == 0 {
				logger.WithValues(log.Kv{"extent": set.Kind}).Warningf("No regions to process, skipping")
				continue
			}

			for _, tier := range tiers {
				plan := pipeline.NewReductionPlan(group, tier, cfg.Masks)
				rows := pipeline.NewRowSet(collections[group], set, plan)
				exportReq := model.ExportRequest{
					Name:      pipeline.RegionExportName(cfg, group, set.Kind, tier, req.Tile),
					Folder:    cfg.ProjectFolder,
					Format:    model.FileFormatCSV,
					Kind:      model.ExportKindRegions,
					Selectors: pipeline.Selectors(plan),
					Rows:      &rows,
				}
				record := model.ExportRecord{
					Kind:   model.ExportKindRegions,
					Group:  group,
					Extent: set.Kind,
					Tier:   tier,
					Tile:   req.Tile.String(),
				}

				if err := s.submit(ctx, logger, submitter, req.SkipExisting, exportReq, record, res); err != nil {
					return err
				}
			}
		}
	}

	if !req.NoMetadata {
		for _, group := range groups {
			collection := collections[group]
			exportReq := model.ExportRequest{
				Name:       pipeline.MetadataExportName(cfg, group, req.Tile),
				Folder:     cfg.ProjectFolder,
				Format:     model.FileFormatCSV,
				Kind:       model.ExportKindMetadata,
				Collection: &collection,
			}
			record := model.ExportRecord{
				Kind:  model.ExportKindMetadata,
				Group: group,
				Tile:  req.Tile.String(),
			}

			if err := s.submit(ctx, logger, submitter, req.SkipExisting, exportReq, record, res); err != nil {
				return err
			}
		}
	}

	if !req.NoManifests {
		for _, group := range pipeline.SensorGroups {
			ids := sceneIDs[group]
			path, err := s.manifests.WriteManifest(ctx, pipeline.ManifestFileName(cfg, group), ids)
			if err != nil {
				return fmt.Errorf("could not write %s manifest: %w", group, err)
			}
			logger.Infof("Wrote %d %s scene IDs to %s", len(ids), group, path)

			res.Manifests = append(res.Manifests, path)
		}
	}

	return nil
}

func (s *Service) submit(ctx context.Context, logger log.Logger, submitter *throttle.Submitter, skipExisting bool, req model.ExportRequest, record model.ExportRecord, res *Result) error {
	logger = logger.WithValues(log.Kv{"export": req.Name})

	if skipExisting {
		existing, err := s.repo.GetExportByName(ctx, req.Name)
		switch {
		case err == nil && existing.State != model.TaskStateFailed && existing.State != model.TaskStateCancelled:
			logger.Infof("Export already submitted as task %s (%s), skipping", existing.TaskID, existing.State)
			res.Skipped = append(res.Skipped, req.Name)
			return nil
		case err != nil && !errors.Is(err, model.ErrNotFound):
			return fmt.Errorf("could not check existing export: %w", err)
		}
	}

	task, err := submitter.Submit(ctx, req)
	if err != nil {
		return fmt.Errorf("could not submit export %q: %w", req.Name, err)
	}

	now := s.now().UTC()
	record.ID = ulid.Make().String()
	record.TaskID = task.ID
	record.Name = req.Name
	record.State = task.State
	if record.State == "" {
		record.State = model.TaskStateReady
	}
	record.Error = task.Error
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.repo.CreateExport(ctx, record); err != nil {
		return fmt.Errorf("could not save export: %w", err)
	}

	logger.Infof("Export submitted as task %s", task.ID)
	res.Submitted = append(res.Submitted, record)

	return nil
}
