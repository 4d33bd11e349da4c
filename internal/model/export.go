package model

import "time"

// ExportKind is what an export writes.
type ExportKind string

const (
	// ExportKindRegions exports reduction rows.
	ExportKindRegions ExportKind = "regions"
	// ExportKindMetadata exports the image metadata of a collection.
	ExportKindMetadata ExportKind = "metadata"
)

// FileFormat is the export file format.
type FileFormat string

// FileFormatCSV is the only format used by acquisitions.
const FileFormatCSV FileFormat = "CSV"

// TaskState is the state of a remote export task.
type TaskState string

const (
	TaskStateReady     TaskState = "READY"
	TaskStateRunning   TaskState = "RUNNING"
	TaskStateCompleted TaskState = "COMPLETED"
	TaskStateFailed    TaskState = "FAILED"
	TaskStateCancelled TaskState = "CANCELLED"
)

// Active returns true when the task counts against the remote concurrency ceiling.
func (s TaskState) Active() bool {
	return s == TaskStateReady || s == TaskStateRunning
}

// Terminal returns true when the task will not change its state anymore.
func (s TaskState) Terminal() bool {
	return s == TaskStateCompleted || s == TaskStateFailed || s == TaskStateCancelled
}

// ExportRequest is an export submission.
type ExportRequest struct {
	Name      string
	Folder    string
	Format    FileFormat
	Kind      ExportKind
	Selectors []string
	// Rows is set for region exports.
	Rows *RowSet
	// Collection is set for metadata exports.
	Collection *ImageCollection
}

// ExportTask is the remote task of a submitted export.
type ExportTask struct {
	ID        string
	Name      string
	State     TaskState
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExportRecord is the local ledger entry of a submitted export.
type ExportRecord struct {
	ID        string
	TaskID    string
	Name      string
	Kind      ExportKind
	Group     SensorGroup
	Extent    ExtentKind
	Tier      DSWETier
	Tile      string
	State     TaskState
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExportListOpts filters the ledger export listings.
type ExportListOpts struct {
	// Tile matches the `PPPRRR` tile of the records, empty matches all.
	Tile string
	// States matches any of the states, empty matches all.
	States []TaskState
}
