package engine

import (
	"context"

	"github.com/rossyndicate/srst/internal/model"
)

// Engine is the interface of the remote image processing service.
type Engine interface {
	// ActiveTasks returns the number of tasks in ready or running state.
	ActiveTasks(ctx context.Context) (int, error)
	// StartExport submits an export of a row set or of the collection metadata.
	StartExport(ctx context.Context, req model.ExportRequest) (*model.ExportTask, error)
	// Task returns the current state of a task.
	Task(ctx context.Context, id string) (*model.ExportTask, error)
	// AggregateIDs returns the values of a property for all the images of a collection.
	AggregateIDs(ctx context.Context, collection model.ImageCollection, property string) ([]string, error)
}
