package storage

import (
	"context"

	"github.com/rossyndicate/srst/internal/model"
)

// Repository is the interface of the local export ledger.
type Repository interface {
	CreateExport(ctx context.Context, r model.ExportRecord) error
	GetExport(ctx context.Context, id string) (*model.ExportRecord, error)
	// GetExportByName returns the latest export with the name.
	GetExportByName(ctx context.Context, name string) (*model.ExportRecord, error)
	ListExports(ctx context.Context, opts model.ExportListOpts) ([]model.ExportRecord, error)
	UpdateExport(ctx context.Context, r model.ExportRecord) error

	CreateRun(ctx context.Context, r model.AcquisitionRun) error
	UpdateRun(ctx context.Context, r model.AcquisitionRun) error
	// ListRuns returns the latest runs first, limit 0 returns all.
	ListRuns(ctx context.Context, limit int) ([]model.AcquisitionRun, error)
}
