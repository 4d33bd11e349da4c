package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/storage/memory"
)

var t0 = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

func export(id, name, tile string, state model.TaskState, offset time.Duration) model.ExportRecord {
	return model.ExportRecord{
		ID:        id,
		Name:      name,
		Tile:      tile,
		State:     state,
		CreatedAt: t0.Add(offset),
		UpdatedAt: t0.Add(offset),
	}
}

func TestRepositoryExports(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository) error
		expErr  bool
	}{
		"Creating and getting an export should work.": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				e := export("id-1", "a", "026028", model.TaskStateReady, 0)
				require.NoError(t, repo.CreateExport(ctx, e))

				got, err := repo.GetExport(ctx, "id-1")
				require.NoError(t, err)
				assert.Equal(t, e, *got)

				return nil
			},
		},

		"Getting by name should return the latest export.": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateExport(ctx, export("id-1", "a", "026028", model.TaskStateFailed, 0)))
				require.NoError(t, repo.CreateExport(ctx, export("id-2", "a", "026028", model.TaskStateReady, time.Hour)))

				got, err := repo.GetExportByName(ctx, "a")
				require.NoError(t, err)
				assert.Equal(t, "id-2", got.ID)

				return nil
			},
		},

		"Listing should filter by tile and state.": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateExport(ctx, export("id-1", "a", "026028", model.TaskStateReady, 0)))
				require.NoError(t, repo.CreateExport(ctx, export("id-2", "b", "026028", model.TaskStateCompleted, time.Minute)))
				require.NoError(t, repo.CreateExport(ctx, export("id-3", "c", "034032", model.TaskStateReady, 2*time.Minute)))

				got, err := repo.ListExports(ctx, model.ExportListOpts{Tile: "026028", States: []model.TaskState{model.TaskStateReady}})
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, "id-1", got[0].ID)

				all, err := repo.ListExports(ctx, model.ExportListOpts{})
				require.NoError(t, err)
				require.Len(t, all, 3)
				assert.Equal(t, "id-3", all[0].ID)

				return nil
			},
		},

		"Creating a duplicated export should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateExport(ctx, export("id-1", "a", "026028", model.TaskStateReady, 0)))
				err := repo.CreateExport(ctx, export("id-1", "b", "026028", model.TaskStateReady, 0))
				assert.True(t, errors.Is(err, model.ErrAlreadyExists))
				return err
			},
			expErr: true,
		},

		"Updating a missing export should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.UpdateExport(ctx, export("id-1", "a", "026028", model.TaskStateReady, 0))
				assert.True(t, errors.Is(err, model.ErrNotFound))
				return err
			},
			expErr: true,
		},

		"Runs should be listed latest first.": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateRun(ctx, model.AcquisitionRun{ID: "r1", StartedAt: t0}))
				require.NoError(t, repo.CreateRun(ctx, model.AcquisitionRun{ID: "r2", StartedAt: t0.Add(time.Hour)}))
				require.NoError(t, repo.UpdateRun(ctx, model.AcquisitionRun{ID: "r1", StartedAt: t0, Status: model.RunStatusDone}))

				runs, err := repo.ListRuns(ctx, 0)
				require.NoError(t, err)
				require.Len(t, runs, 2)
				assert.Equal(t, "r2", runs[0].ID)
				assert.Equal(t, model.RunStatusDone, runs[1].Status)

				runs, err = repo.ListRuns(ctx, 1)
				require.NoError(t, err)
				assert.Len(t, runs, 1)

				return nil
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: log.Noop})
			require.NoError(t, err)

			err = test.actions(context.Background(), t, repo)
			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
