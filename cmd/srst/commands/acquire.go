package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/rossyndicate/srst/internal/app/acquire"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/printer"
	"github.com/rossyndicate/srst/internal/region"
	"github.com/rossyndicate/srst/internal/storage/io"
	"github.com/rossyndicate/srst/internal/storage/sqlite"
)

type AcquireCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
	engine  *engineFlags

	configPath   string
	tile         string
	tileFile     string
	workDir      string
	outDir       string
	maxTasks     int
	pollInterval time.Duration
	maxWait      time.Duration
	skipExisting bool
	noMetadata   bool
	noManifests  bool
	format       string
}

// NewAcquireCommand returns the acquire command.
func NewAcquireCommand(rootCmd *RootCommand, app *kingpin.Application) *AcquireCommand {
	c := &AcquireCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("acquire", "Submit the surface reflectance and temperature exports of a tile.")
	c.Cmd.Flag("config", "Acquisition settings file (YAML or CSV).").Short('c').Required().StringVar(&c.configPath)
	c.Cmd.Flag("tile", "Landsat WRS-2 tile (PPPRRR).").StringVar(&c.tile)
	c.Cmd.Flag("tile-file", "File with the WRS-2 tile on its first line.").StringVar(&c.tileFile)
	c.Cmd.Flag("work-dir", "Directory the relative input paths are resolved on, by default the settings file directory.").StringVar(&c.workDir)
	c.Cmd.Flag("out-dir", "Manifest output directory, overrides the settings.").StringVar(&c.outDir)
	c.Cmd.Flag("max-tasks", "Maximum active remote tasks, overrides the settings.").IntVar(&c.maxTasks)
	c.Cmd.Flag("poll-interval", "Wait between active task checks, overrides the settings.").DurationVar(&c.pollInterval)
	c.Cmd.Flag("max-wait", "Maximum wait for one submission, overrides the settings.").DurationVar(&c.maxWait)
	c.Cmd.Flag("skip-existing", "Don't resubmit exports already on the ledger that didn't fail.").BoolVar(&c.skipExisting)
	c.Cmd.Flag("no-metadata", "Don't submit the metadata exports.").BoolVar(&c.noMetadata)
	c.Cmd.Flag("no-manifests", "Don't write the scene ID manifests.").BoolVar(&c.noManifests)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.engine = registerEngineFlags(c.Cmd)

	return c
}

func (c AcquireCommand) Name() string { return c.Cmd.FullCommand() }

func (c AcquireCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger
	rootFS := os.DirFS("/")

	if (c.tile == "") == (c.tileFile == "") {
		return fmt.Errorf("one of --tile or --tile-file is required")
	}

	// Load settings.
	configPath, err := io.RootedPath(".", c.configPath)
	if err != nil {
		return err
	}
	cfg, err := io.NewSettingsRepository(rootFS).GetSettings(ctx, configPath)
	if err != nil {
		return fmt.Errorf("could not load settings: %w", err)
	}

	workDir := c.workDir
	if workDir == "" {
		workDir = filepath.Dir(c.configPath)
	}
	cfg.Inputs, err = io.ResolveInputs(workDir, cfg.Inputs)
	if err != nil {
		return err
	}
	c.applyOverrides(&cfg)

	// Load tile.
	var tile model.Tile
	if c.tile != "" {
		tile, err = model.ParseTile(c.tile)
	} else {
		var tilePath string
		tilePath, err = io.RootedPath(".", c.tileFile)
		if err == nil {
			tile, err = io.NewTileRepository(rootFS).GetTile(ctx, tilePath)
		}
	}
	if err != nil {
		return fmt.Errorf("could not load tile: %w", err)
	}

	// Initialize storage (SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	eng, err := c.engine.newEngine(cfg.EEProject, logger)
	if err != nil {
		return fmt.Errorf("could not create engine: %w", err)
	}

	regions, err := region.NewBuilder(region.BuilderConfig{
		Geometries: io.NewGeometryRepository(rootFS),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create region builder: %w", err)
	}

	// Create acquire service.
	svc, err := acquire.NewService(acquire.ServiceConfig{
		Engine:     eng,
		Repository: repo,
		Regions:    regions,
		Manifests:  io.NewManifestRepository(cfg.Inputs.OutDir),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute acquire.
	res, err := svc.Run(ctx, acquire.Request{
		Config:       cfg,
		Tile:         tile,
		SkipExisting: c.skipExisting,
		NoMetadata:   c.noMetadata,
		NoManifests:  c.noManifests,
	})
	if err != nil {
		return fmt.Errorf("could not acquire tile %s: %w", tile, err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintExportList(res.Submitted); err != nil {
		return fmt.Errorf("could not print exports: %w", err)
	}

	logger.Infof("Run %s submitted %d exports, skipped %d, wrote %d manifests", res.RunID, len(res.Submitted), len(res.Skipped), len(res.Manifests))

	return nil
}

func (c AcquireCommand) applyOverrides(cfg *model.AcquisitionConfig) {
	if c.outDir != "" {
		cfg.Inputs.OutDir = c.outDir
	}
	if c.maxTasks > 0 {
		cfg.Throttle.MaxTasks = c.maxTasks
	}
	if c.pollInterval > 0 {
		cfg.Throttle.PollInterval = c.pollInterval
	}
	if c.maxWait > 0 {
		cfg.Throttle.MaxWait = c.maxWait
	}
}
