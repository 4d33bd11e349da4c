package throttle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
)

// Engine is the part of the remote engine the submitter needs.
type Engine interface {
	ActiveTasks(ctx context.Context) (int, error)
	StartExport(ctx context.Context, req model.ExportRequest) (*model.ExportTask, error)
}

// SleepFunc blocks for d or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// SubmitterConfig is the configuration of the throttled submitter.
type SubmitterConfig struct {
	Engine Engine
	// MaxTasks is the ceiling of active remote tasks, submissions wait while the ceiling is reached.
	MaxTasks int
	// PollInterval is the sleep between active task checks.
	PollInterval time.Duration
	// MaxWait bounds the wait of a single submission, zero waits forever.
	MaxWait time.Duration
	Sleep   SleepFunc
	Logger  log.Logger
}

func (c *SubmitterConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}

	if c.MaxTasks == 0 {
		c.MaxTasks = 10
	}
	if c.MaxTasks < 0 {
		return fmt.Errorf("max tasks must be positive")
	}

	if c.PollInterval == 0 {
		c.PollInterval = 120 * time.Second
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll interval must be positive")
	}

	if c.MaxWait < 0 {
		return fmt.Errorf("max wait must not be negative")
	}

	if c.Sleep == nil {
		c.Sleep = sleep
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "throttle.Submitter"})

	return nil
}

// Submitter submits export requests keeping the active remote tasks below a ceiling.
type Submitter struct {
	engine       Engine
	maxTasks     int
	pollInterval time.Duration
	maxWait      time.Duration
	sleep        SleepFunc
	logger       log.Logger

	mu        sync.Mutex
	submitted map[string]struct{}
}

// NewSubmitter returns a new throttled submitter.
func NewSubmitter(cfg SubmitterConfig) (*Submitter, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Submitter{
		engine:       cfg.Engine,
		maxTasks:     cfg.MaxTasks,
		pollInterval: cfg.PollInterval,
		maxWait:      cfg.MaxWait,
		sleep:        cfg.Sleep,
		logger:       cfg.Logger,
		submitted:    map[string]struct{}{},
	}, nil
}

// Submit blocks until the active remote tasks are below the ceiling and submits the request once.
// Requests with a name already submitted (or being submitted) by this submitter are rejected.
func (s *Submitter) Submit(ctx context.Context, req model.ExportRequest) (*model.ExportTask, error) {
	if !s.reserve(req.Name) {
		return nil, fmt.Errorf("export %q already submitted: %w", req.Name, model.ErrAlreadyExists)
	}

	logger := s.logger.WithValues(log.Kv{"export": req.Name})

	task, err := s.submit(ctx, logger, req)
	if err != nil {
		s.release(req.Name)
		return nil, err
	}

	logger.Debugf("Export submitted as task %s", task.ID)

	return task, nil
}

func (s *Submitter) submit(ctx context.Context, logger log.Logger, req model.ExportRequest) (*model.ExportTask, error) {
	if err := s.wait(ctx, logger); err != nil {
		return nil, err
	}

	task, err := s.engine.StartExport(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("could not start export %q: %w", req.Name, err)
	}

	return task, nil
}

// reserve marks the name as submitted and returns false if it already was.
func (s *Submitter) reserve(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.submitted[name]; ok {
		return false
	}
	s.submitted[name] = struct{}{}
	return true
}

func (s *Submitter) release(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.submitted, name)
}

func (s *Submitter) wait(ctx context.Context, logger log.Logger) error {
	var waited time.Duration
	for {
		active, err := s.engine.ActiveTasks(ctx)
		if err != nil {
			return fmt.Errorf("could not get active tasks: %w", err)
		}

		if active < s.maxTasks {
			return nil
		}

		if s.maxWait > 0 && waited >= s.maxWait {
			return fmt.Errorf("%d tasks still active after %s: %w", active, waited, model.ErrWaitTimeout)
		}

		logger.Infof("%d tasks active (max %d), waiting %s", active, s.maxTasks, s.pollInterval)
		if err := s.sleep(ctx, s.pollInterval); err != nil {
			return err
		}
		waited += s.pollInterval
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
