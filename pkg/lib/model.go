package lib

import (
	"time"

	"github.com/rossyndicate/srst/internal/model"
)

// EngineType identifies the processing engine implementation.
type EngineType string

const (
	// EngineRemote uses the processing gateway HTTP API.
	EngineRemote EngineType = "remote"

	// EngineFake uses an in-memory simulation (nothing is exported).
	// Use this for unit testing without infrastructure dependencies.
	EngineFake EngineType = "fake"
)

// TaskState is the state of the remote task of an export.
//
// The typical lifecycle is:
//
//	READY -> RUNNING -> COMPLETED
//
// A task can also end as FAILED or CANCELLED.
type TaskState string

const (
	TaskStateReady     TaskState = "READY"
	TaskStateRunning   TaskState = "RUNNING"
	TaskStateCompleted TaskState = "COMPLETED"
	TaskStateFailed    TaskState = "FAILED"
	TaskStateCancelled TaskState = "CANCELLED"
)

// ExportKind is what an export writes.
type ExportKind string

const (
	// ExportKindRegions exports the per region reduction rows.
	ExportKindRegions ExportKind = "regions"
	// ExportKindMetadata exports the image metadata of a sensor group.
	ExportKindMetadata ExportKind = "metadata"
)

// Export is a submitted export returned by the SDK.
//
// This is a read-only snapshot of the ledger state at the time of the API call.
// Use [Client.GetExport] with refresh or [Client.SyncExports] to get the engine state.
type Export struct {
	// ID is the unique ledger identifier (ULID) assigned at submission.
	ID string
	// TaskID is the engine task identifier.
	TaskID string
	// Name is the export description, it is also the output file name.
	Name string
	Kind ExportKind
	// Group is the sensor group (`LS57` or `LS89`).
	Group string
	// Extent is the region extent (`site`, `polygon` or `center`), empty on metadata exports.
	Extent string
	// DSWE is the water tier, empty on metadata exports.
	DSWE string
	// Tile is the `PPPRRR` WRS-2 tile.
	Tile      string
	State     TaskState
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RunStatus is the state of an acquisition run.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusDone    RunStatus = "done"
	RunStatusFailed  RunStatus = "failed"
)

// Run is an acquisition run over one tile.
type Run struct {
	ID      string
	Project string
	Tile    string
	RunDate time.Time
	Status  RunStatus
	// Submitted and Skipped count the exports of the run.
	Submitted int
	Skipped   int
	Error     string
	StartedAt time.Time
	// FinishedAt is nil while the run is running.
	FinishedAt *time.Time
}

// Scene is an image known by the fake engine.
type Scene struct {
	// Index is the `system:index` of the image, e.g. `LT05_026028_20050601`.
	Index string
	// ProductID is the `L1_LANDSAT_PRODUCT_ID` of the image.
	ProductID string
	// Dataset is the collection ID, e.g. `LANDSAT/LT05/C02/T1_L2`.
	Dataset string
	// Tile is the `PPPRRR` WRS-2 tile.
	Tile       string
	CloudCover float64
	AcquiredAt time.Time
}

// AcquireOpts are the options of [Client.Acquire].
type AcquireOpts struct {
	// ConfigFile is the acquisition settings file (YAML or CSV).
	ConfigFile string
	// Tile is the `PPPRRR` WRS-2 tile.
	Tile string
	// WorkDir resolves the relative input paths of the settings.
	// Default: the settings file directory.
	WorkDir string
	// SkipExisting doesn't resubmit exports already on the ledger that didn't fail.
	SkipExisting bool
	// NoMetadata disables the metadata exports.
	NoMetadata bool
	// NoManifests disables the scene ID manifests.
	NoManifests bool
}

// AcquireResult is the summary of an acquisition.
type AcquireResult struct {
	RunID     string
	Submitted []Export
	// Skipped are the names of the exports already on the ledger.
	Skipped []string
	// Manifests are the written manifest file paths.
	Manifests []string
}

// ListExportsOpts are the options of [Client.ListExports].
type ListExportsOpts struct {
	// Tile filters by `PPPRRR` tile.
	Tile string
	// States filters by any of the states.
	States []TaskState
}

// GetExportOpts are the options of [Client.GetExport].
type GetExportOpts struct {
	// Refresh asks the engine for the task state first.
	Refresh bool
}

// SyncExportsOpts are the options of [Client.SyncExports].
type SyncExportsOpts struct {
	// Tile limits the sync to one `PPPRRR` tile.
	Tile string
}

// SyncResult is the summary of an export sync.
type SyncResult struct {
	Checked int
	Updated []Export
	// Missing are the names of the exports the engine doesn't know.
	Missing []string
}

func fromInternalExport(e model.ExportRecord) Export {
	return Export{
		ID:        e.ID,
		TaskID:    e.TaskID,
		Name:      e.Name,
		Kind:      ExportKind(e.Kind),
		Group:     string(e.Group),
		Extent:    string(e.Extent),
		DSWE:      string(e.Tier),
		Tile:      e.Tile,
		State:     TaskState(e.State),
		Error:     e.Error,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func fromInternalExportList(es []model.ExportRecord) []Export {
	result := make([]Export, len(es))
	for i, e := range es {
		result[i] = fromInternalExport(e)
	}
	return result
}

func fromInternalRun(r model.AcquisitionRun) Run {
	return Run{
		ID:         r.ID,
		Project:    r.Project,
		Tile:       r.Tile,
		RunDate:    r.RunDate,
		Status:     RunStatus(r.Status),
		Submitted:  r.Submitted,
		Skipped:    r.Skipped,
		Error:      r.Error,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

func toInternalStates(ss []TaskState) []model.TaskState {
	if len(ss) == 0 {
		return nil
	}
	result := make([]model.TaskState, len(ss))
	for i, s := range ss {
		result[i] = model.TaskState(s)
	}
	return result
}

func toInternalScenes(ss []Scene) ([]model.Scene, error) {
	result := make([]model.Scene, 0, len(ss))
	for _, s := range ss {
		tile, err := model.ParseTile(s.Tile)
		if err != nil {
			return nil, err
		}
		result = append(result, model.Scene{
			Index:      s.Index,
			ProductID:  s.ProductID,
			Dataset:    s.Dataset,
			Tile:       tile,
			CloudCover: s.CloudCover,
			AcquiredAt: s.AcquiredAt,
		})
	}
	return result, nil
}
