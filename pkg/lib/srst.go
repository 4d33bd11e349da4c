package lib

import (
	"context"
	"fmt"
	"os"

	"github.com/rossyndicate/srst/internal/conventions"
	"github.com/rossyndicate/srst/internal/engine"
	"github.com/rossyndicate/srst/internal/engine/fake"
	"github.com/rossyndicate/srst/internal/engine/remote"
	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/storage"
	"github.com/rossyndicate/srst/internal/storage/sqlite"
)

// Config configures the SDK client.
//
// Most fields are optional and have sensible defaults. The remote engine
// requires at least RemoteURL.
type Config struct {
	// DBPath is the SQLite export ledger path.
	// Default: ~/.srst/srst.db.
	DBPath string

	// DataDir is the base directory for srst data.
	// Default: ~/.srst.
	DataDir string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger

	// Engine selects the engine implementation.
	// Default: [EngineRemote].
	Engine EngineType

	// RemoteURL is the processing gateway base URL.
	RemoteURL string
	// RemoteToken is the bearer token of the gateway requests.
	RemoteToken string
	// RemoteProject is the cloud project of the tasks.
	// Default: the `ee_proj` of each acquisition settings.
	RemoteProject string
	// RemoteRequestsPerSecond limits the request rate to the gateway.
	RemoteRequestsPerSecond float64

	// FakeScenes are the images known by the fake engine.
	// Only used when Engine is [EngineFake].
	FakeScenes []Scene
}

func (c *Config) defaults() error {
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DataDir = conventions.DataDir(home)
	}

	if c.DBPath == "" {
		c.DBPath = conventions.DBPath(c.DataDir)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.Engine == "" {
		c.Engine = EngineRemote
	}

	switch c.Engine {
	case EngineRemote:
		if c.RemoteURL == "" {
			return fmt.Errorf("remote URL is required for the remote engine: %w", ErrNotValid)
		}
	case EngineFake:
	default:
		return fmt.Errorf("unsupported engine type: %s: %w", c.Engine, ErrNotValid)
	}

	return nil
}

// Client is the main SDK entry point for running acquisitions programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	repo    storage.Repository
	logger  log.Logger
	cfg     Config
	fake    *fake.Engine
	closeFn func() error
}

// New creates a new SDK client backed by a SQLite database.
//
// The caller must call [Client.Close] when done to release the database
// connection. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{RemoteURL: url})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var fakeEngine *fake.Engine
	if cfg.Engine == EngineFake {
		scenes, err := toInternalScenes(cfg.FakeScenes)
		if err != nil {
			return nil, mapError(fmt.Errorf("invalid fake scenes: %w", err))
		}

		// The fake engine never throttles.
		fakeEngine, err = fake.NewEngine(fake.EngineConfig{
			Scenes:      scenes,
			ActiveTasks: func() int { return 0 },
			Logger:      cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create fake engine: %w", err)
		}
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	return &Client{
		repo:    repo,
		logger:  cfg.Logger,
		cfg:     cfg,
		fake:    fakeEngine,
		closeFn: repo.Close,
	}, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

// newEngine returns the engine of an operation, project is used when the client has no remote project.
func (c *Client) newEngine(project string) (engine.Engine, error) {
	if c.fake != nil {
		return c.fake, nil
	}

	if c.cfg.RemoteProject != "" {
		project = c.cfg.RemoteProject
	}

	return remote.NewEngine(remote.EngineConfig{
		BaseURL:           c.cfg.RemoteURL,
		Project:           project,
		Token:             c.cfg.RemoteToken,
		RequestsPerSecond: c.cfg.RemoteRequestsPerSecond,
		Logger:            c.logger,
	})
}
