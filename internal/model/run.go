package model

import "time"

// RunStatus is the state of an acquisition run.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusDone    RunStatus = "done"
	RunStatusFailed  RunStatus = "failed"
)

// AcquisitionRun is the local ledger entry of one acquisition over a tile.
type AcquisitionRun struct {
	ID         string
	Project    string
	Tile       string
	RunDate    time.Time
	Status     RunStatus
	Submitted  int
	Skipped    int
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}
