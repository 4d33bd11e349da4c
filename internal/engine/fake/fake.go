package fake

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
)

// ReduceFunc reduces one scene over one region.
type ReduceFunc func(scene model.Scene, region model.Region, plan model.ReductionPlan) model.Row

// EngineConfig is the configuration for the fake engine.
type EngineConfig struct {
	// Scenes are the images the fake collections query.
	Scenes []model.Scene
	// Reducer computes the rows of the region exports, by default every plan column is set.
	Reducer ReduceFunc
	// ActiveTasks overrides the active task count, by default the ready and running fake tasks are counted.
	ActiveTasks func() int
	Logger      log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.Reducer == nil {
		c.Reducer = reduceAll
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "engine.Fake"})
	return nil
}

// Engine is a fake implementation of the engine.Engine interface.
// It evaluates the exports locally over the configured scenes without a remote service.
type Engine struct {
	scenes      []model.Scene
	reducer     ReduceFunc
	activeTasks func() int
	tasks       map[string]*model.ExportTask
	rows        map[string][]model.Row
	exported    map[string][]model.Scene
	mu          sync.RWMutex
	logger      log.Logger
}

// NewEngine creates a new fake engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		scenes:      cfg.Scenes,
		reducer:     cfg.Reducer,
		activeTasks: cfg.ActiveTasks,
		tasks:       make(map[string]*model.ExportTask),
		rows:        make(map[string][]model.Row),
		exported:    make(map[string][]model.Scene),
		logger:      cfg.Logger,
	}, nil
}

// ActiveTasks returns the number of ready or running tasks.
func (e *Engine) ActiveTasks(ctx context.Context) (int, error) {
	if e.activeTasks != nil {
		return e.activeTasks(), nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, t := range e.tasks {
		if t.State.Active() {
			n++
		}
	}
	return n, nil
}

// StartExport evaluates the export and stores the result as a ready task.
func (e *Engine) StartExport(ctx context.Context, req model.ExportRequest) (*model.ExportTask, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("export name is required: %w", model.ErrNotValid)
	}

	var (
		rows   []model.Row
		scenes []model.Scene
	)
	switch req.Kind {
	case model.ExportKindRegions:
		if req.Rows == nil {
			return nil, fmt.Errorf("region export without rows: %w", model.ErrNotValid)
		}
		rows = e.reduce(*req.Rows)
	case model.ExportKindMetadata:
		if req.Collection == nil {
			return nil, fmt.Errorf("metadata export without collection: %w", model.ErrNotValid)
		}
		scenes = e.query(*req.Collection)
	default:
		return nil, fmt.Errorf("unknown export kind %q: %w", req.Kind, model.ErrNotValid)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	now := time.Now().UTC()
	task := &model.ExportTask{
		ID:        id,
		Name:      req.Name,
		State:     model.TaskStateReady,
		CreatedAt: now,
		UpdatedAt: now,
	}

	e.tasks[id] = task
	e.rows[id] = rows
	e.exported[id] = scenes
	e.logger.Infof("Started fake export: %s (name: %s, rows: %d)", id, req.Name, len(rows))

	taskCopy := *task
	return &taskCopy, nil
}

// Task returns the state of a task.
func (e *Engine) Task(ctx context.Context, id string) (*model.ExportTask, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	task, ok := e.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	taskCopy := *task
	return &taskCopy, nil
}

// AggregateIDs returns the product IDs or the indexes of the collection scenes.
func (e *Engine) AggregateIDs(ctx context.Context, collection model.ImageCollection, property string) ([]string, error) {
	var get func(model.Scene) string
	switch property {
	case model.ProductIDProperty:
		get = func(s model.Scene) string { return s.ProductID }
	case model.IndexColumn:
		get = func(s model.Scene) string { return s.Index }
	default:
		return nil, fmt.Errorf("unknown property %q: %w", property, model.ErrNotValid)
	}

	scenes := e.query(collection)
	ids := make([]string, 0, len(scenes))
	for _, s := range scenes {
		ids = append(ids, get(s))
	}
	return ids, nil
}

// SetTaskState moves a task to a new state.
func (e *Engine) SetTaskState(id string, state model.TaskState, errMsg string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, ok := e.tasks[id]
	if !ok {
		return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	task.State = state
	task.Error = errMsg
	task.UpdatedAt = time.Now().UTC()
	return nil
}

// Rows returns the rows exported by a region export task.
func (e *Engine) Rows(id string) []model.Row {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.rows[id]
}

// ExportedScenes returns the scenes exported by a metadata export task.
func (e *Engine) ExportedScenes(id string) []model.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.exported[id]
}

func (e *Engine) query(c model.ImageCollection) []model.Scene {
	var scenes []model.Scene
	for _, s := range e.scenes {
		if c.Matches(s) {
			scenes = append(scenes, s)
		}
	}
	return scenes
}

func (e *Engine) reduce(rs model.RowSet) []model.Row {
	var rows []model.Row
	for _, scene := range e.query(rs.Collection) {
		for _, region := range rs.Regions.Regions {
			row := e.reducer(scene, region, rs.Plan)
			row.Index = scene.Index + "_" + region.ID
			rows = append(rows, row)
		}
	}
	return rs.Filter.Apply(rows)
}

func reduceAll(scene model.Scene, region model.Region, plan model.ReductionPlan) model.Row {
	row := model.Row{Values: map[string]float64{}}
	for _, col := range plan.Columns() {
		row.Values[col] = 1
	}
	return row
}
