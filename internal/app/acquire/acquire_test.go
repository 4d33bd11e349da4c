package acquire_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rossyndicate/srst/internal/app/acquire"
	"github.com/rossyndicate/srst/internal/engine/enginemock"
	"github.com/rossyndicate/srst/internal/engine/fake"
	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/pipeline"
	"github.com/rossyndicate/srst/internal/region"
	"github.com/rossyndicate/srst/internal/storage/io"
	"github.com/rossyndicate/srst/internal/storage/memory"
	"github.com/rossyndicate/srst/internal/storage/storagemock"
)

var tile = model.Tile{Path: 26, Row: 28}

func date(s string) time.Time {
	t, _ := time.Parse(model.DateLayout, s)
	return t
}

func testConfig() model.AcquisitionConfig {
	return model.AcquisitionConfig{
		Project:        "proj",
		ProjectFolder:  "proj_folder",
		StartDate:      date("1984-01-01"),
		EndDate:        date("2024-01-01"),
		RunDate:        date("2024-01-02"),
		SiteBuffer:     200,
		CloudThreshold: 90,
		DSWE:           []string{"1"},
		Extents:        []string{"site"},
		LocationCRS:    "EPSG:4326",
		Masks:          true,
		Throttle:       model.ThrottleConfig{MaxTasks: 10, PollInterval: time.Minute},
		Inputs:         model.InputsConfig{LocationsPath: "locs.csv"},
	}
}

var testScene = model.Scene{
	Index:      "LT05_026028_20050601",
	ProductID:  "LT05_L1TP_026028_20050601_20200902_02_T1",
	Dataset:    pipeline.DatasetLT05,
	Tile:       tile,
	CloudCover: 10,
	AcquiredAt: date("2005-06-01"),
}

type testEnv struct {
	svc    *acquire.Service
	engine *fake.Engine
	repo   *memory.Repository
	outDir string
	sleeps *int
}

func newTestEnv(t *testing.T, active func() int) testEnv {
	t.Helper()
	return newTestEnvWithScenes(t, active, []model.Scene{testScene})
}

func newTestEnvWithScenes(t *testing.T, active func() int, scenes []model.Scene) testEnv {
	t.Helper()

	eng, err := fake.NewEngine(fake.EngineConfig{Scenes: scenes, ActiveTasks: active})
	require.NoError(t, err)

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	builder, err := region.NewBuilder(region.BuilderConfig{
		Geometries: io.NewGeometryRepository(fstest.MapFS{
			"locs.csv": {Data: []byte("id,Latitude,Longitude\n1,44.1,-93.5\n")},
		}),
	})
	require.NoError(t, err)

	outDir := t.TempDir()
	sleeps := 0
	svc, err := acquire.NewService(acquire.ServiceConfig{
		Engine:     eng,
		Repository: repo,
		Regions:    builder,
		Manifests:  io.NewManifestRepository(outDir),
		Sleep: func(ctx context.Context, d time.Duration) error {
			sleeps++
			return nil
		},
		Logger: log.Noop,
	})
	require.NoError(t, err)

	return testEnv{svc: svc, engine: eng, repo: repo, outDir: outDir, sleeps: &sleeps}
}

func TestNewService(t *testing.T) {
	eng := &enginemock.MockEngine{}
	repo := &storagemock.MockRepository{}
	builder, _ := region.NewBuilder(region.BuilderConfig{Geometries: io.NewGeometryRepository(fstest.MapFS{})})
	manifests := io.NewManifestRepository(t.TempDir())

	tests := map[string]struct {
		config acquire.ServiceConfig
		expErr bool
	}{
		"Valid config should create the service.": {
			config: acquire.ServiceConfig{Engine: eng, Repository: repo, Regions: builder, Manifests: manifests},
		},
		"Missing engine should fail.": {
			config: acquire.ServiceConfig{Repository: repo, Regions: builder, Manifests: manifests},
			expErr: true,
		},
		"Missing repository should fail.": {
			config: acquire.ServiceConfig{Engine: eng, Regions: builder, Manifests: manifests},
			expErr: true,
		},
		"Missing region builder should fail.": {
			config: acquire.ServiceConfig{Engine: eng, Repository: repo, Manifests: manifests},
			expErr: true,
		},
		"Missing manifest writer should fail.": {
			config: acquire.ServiceConfig{Engine: eng, Repository: repo, Regions: builder},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := acquire.NewService(test.config)
			if test.expErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestServiceRunSingleSiteSingleScene(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	env := newTestEnv(t, nil)

	res, err := env.svc.Run(context.Background(), acquire.Request{Config: testConfig(), Tile: tile, NoMetadata: true})
	require.NoError(err)

	require.Len(res.Submitted, 1)
	export := res.Submitted[0]
	assert.Equal("proj_point_LS57_C2_SRST_DSWE1_026028_v2024-01-02", export.Name)
	assert.Equal(model.ExportKindRegions, export.Kind)
	assert.Equal(model.SensorGroupLS57, export.Group)
	assert.Equal(model.ExtentKindSite, export.Extent)
	assert.Equal(model.DSWETier1, export.Tier)
	assert.Equal("026028", export.Tile)
	assert.Equal(model.TaskStateReady, export.State)

	rows := env.engine.Rows(export.TaskID)
	require.Len(rows, 1)
	assert.Equal("LT05_026028_20050601_1", rows[0].Index)
	assert.True(rows[0].Has(model.PrimaryColumn))

	stored, err := env.repo.GetExportByName(context.Background(), export.Name)
	require.NoError(err)
	assert.Equal(export, *stored)

	// Manifests.
	require.Len(res.Manifests, 2)
	l57, err := os.ReadFile(filepath.Join(env.outDir, "L57_stack_ids_v2024-01-02.txt"))
	require.NoError(err)
	assert.Equal(testScene.ProductID+"\n", string(l57))
	l89, err := os.ReadFile(filepath.Join(env.outDir, "L89_stack_ids_v2024-01-02.txt"))
	require.NoError(err)
	assert.Empty(l89)

	// Run ledger.
	runs, err := env.repo.ListRuns(context.Background(), 0)
	require.NoError(err)
	require.Len(runs, 1)
	assert.Equal(res.RunID, runs[0].ID)
	assert.Equal(model.RunStatusDone, runs[0].Status)
	assert.Equal(1, runs[0].Submitted)
	assert.NotNil(runs[0].FinishedAt)
}

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		config       func() model.AcquisitionConfig
		req          acquire.Request
		active       func() int
		expNames     []string
		expSleeps    int
		expManifests int
	}{
		"Metadata exports should be submitted after the region exports.": {
			config: testConfig,
			expNames: []string{
				"proj_point_LS57_C2_SRST_DSWE1_026028_v2024-01-02",
				"proj_metadata_LS57_C2_026028_v2024-01-02",
			},
			expManifests: 2,
		},

		"Every extent and tier should submit one export.": {
			config: func() model.AcquisitionConfig {
				c := testConfig()
				c.Extents = []string{"site", "lake"}
				c.DSWE = []string{"1+1a+3", "2"}
				return c
			},
			req: acquire.Request{NoMetadata: true, NoManifests: true},
			expNames: []string{
				"proj_point_LS57_C2_SRST_DSWE1_026028_v2024-01-02",
				"proj_point_LS57_C2_SRST_DSWE1a_026028_v2024-01-02",
				"proj_point_LS57_C2_SRST_DSWE3_026028_v2024-01-02",
			},
		},

		"The no mask variant should be named accordingly.": {
			config: func() model.AcquisitionConfig {
				c := testConfig()
				c.Masks = false
				return c
			},
			req:      acquire.Request{NoMetadata: true, NoManifests: true},
			expNames: []string{"proj_point_LS57_C2_SRST_DSWE1_nomask_026028_v2024-01-02"},
		},

		"A full remote queue should wait before submitting.": {
			config: testConfig,
			req:    acquire.Request{NoMetadata: true, NoManifests: true},
			active: func() func() int {
				calls := 0
				return func() int {
					calls++
					if calls <= 2 {
						return 10
					}
					return 0
				}
			}(),
			expNames:  []string{"proj_point_LS57_C2_SRST_DSWE1_026028_v2024-01-02"},
			expSleeps: 2,
		},

		"Scenes outside the date range should submit nothing.": {
			config: func() model.AcquisitionConfig {
				c := testConfig()
				c.StartDate = date("2010-01-01")
				return c
			},
			expManifests: 2,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			assert := assert.New(t)

			env := newTestEnv(t, test.active)

			req := test.req
			req.Config = test.config()
			req.Tile = tile
			res, err := env.svc.Run(context.Background(), req)
			require.NoError(err)

			var names []string
			for _, e := range res.Submitted {
				names = append(names, e.Name)
			}
			assert.Equal(test.expNames, names)
			assert.Equal(test.expSleeps, *env.sleeps)
			assert.Len(res.Manifests, test.expManifests)
		})
	}
}

func TestServiceRunSkipExisting(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	env := newTestEnv(t, nil)
	req := acquire.Request{Config: testConfig(), Tile: tile, SkipExisting: true, NoManifests: true}

	first, err := env.svc.Run(context.Background(), req)
	require.NoError(err)
	require.Len(first.Submitted, 2)

	// A failed export is resubmitted.
	failed := first.Submitted[0]
	failed.State = model.TaskStateFailed
	require.NoError(env.repo.UpdateExport(context.Background(), failed))

	second, err := env.svc.Run(context.Background(), req)
	require.NoError(err)
	require.Len(second.Submitted, 1)
	assert.Equal(failed.Name, second.Submitted[0].Name)
	assert.Equal([]string{"proj_metadata_LS57_C2_026028_v2024-01-02"}, second.Skipped)
}

func TestServiceRunErrors(t *testing.T) {
	tests := map[string]struct {
		mockEngine func(m *enginemock.MockEngine)
		config     func() model.AcquisitionConfig
		expRuns    int
		expErr     bool
	}{
		"An invalid config should fail without running.": {
			mockEngine: func(m *enginemock.MockEngine) {},
			config: func() model.AcquisitionConfig {
				c := testConfig()
				c.Project = ""
				return c
			},
			expErr: true,
		},

		"A submission error should fail the run.": {
			mockEngine: func(m *enginemock.MockEngine) {
				m.On("AggregateIDs", mock.Anything, mock.Anything, model.ProductIDProperty).Return([]string{"id"}, nil)
				m.On("ActiveTasks", mock.Anything).Once().Return(0, nil)
				m.On("StartExport", mock.Anything, mock.Anything).Once().Return(nil, fmt.Errorf("something"))
			},
			config:  testConfig,
			expRuns: 1,
			expErr:  true,
		},

		"A scene query error should fail the run.": {
			mockEngine: func(m *enginemock.MockEngine) {
				m.On("AggregateIDs", mock.Anything, mock.Anything, model.ProductIDProperty).Once().Return(nil, fmt.Errorf("something"))
			},
			config:  testConfig,
			expRuns: 1,
			expErr:  true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			assert := assert.New(t)

			eng := enginemock.NewMockEngine(t)
			test.mockEngine(eng)

			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(err)

			builder, err := region.NewBuilder(region.BuilderConfig{
				Geometries: io.NewGeometryRepository(fstest.MapFS{
					"locs.csv": {Data: []byte("id,Latitude,Longitude\n1,44.1,-93.5\n")},
				}),
			})
			require.NoError(err)

			svc, err := acquire.NewService(acquire.ServiceConfig{
				Engine:     eng,
				Repository: repo,
				Regions:    builder,
				Manifests:  io.NewManifestRepository(t.TempDir()),
			})
			require.NoError(err)

			_, err = svc.Run(context.Background(), acquire.Request{Config: test.config(), Tile: tile})
			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}

			runs, err := repo.ListRuns(context.Background(), 0)
			require.NoError(err)
			require.Len(runs, test.expRuns)
			for _, r := range runs {
				assert.Equal(model.RunStatusFailed, r.Status)
				assert.NotEmpty(r.Error)
			}
		})
	}
}

func TestServiceRunAppliesSettingsCloudThreshold(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	settings := io.NewSettingsRepository(fstest.MapFS{
		"settings.yaml": {Data: []byte(`
proj: proj
proj_folder: proj_folder
start_date: "1984-01-01"
end_date: "2024-01-01"
run_date: "2024-01-02"
site_buffer: 200
cloud_thresh: 60
DSWE_setting: "1"
extent: site
inputs:
  locations: locs.csv
`)},
	})
	cfg, err := settings.GetSettings(context.Background(), "settings.yaml")
	require.NoError(err)

	cloudy := testScene
	cloudy.Index = "LT05_026028_20050703"
	cloudy.ProductID = "LT05_L1TP_026028_20050703_20200902_02_T1"
	cloudy.CloudCover = 95
	cloudy.AcquiredAt = date("2005-07-03")

	env := newTestEnvWithScenes(t, nil, []model.Scene{testScene, cloudy})

	res, err := env.svc.Run(context.Background(), acquire.Request{Config: cfg, Tile: tile, NoMetadata: true})
	require.NoError(err)

	require.Len(res.Submitted, 1)
	rows := env.engine.Rows(res.Submitted[0].TaskID)
	require.Len(rows, 1)
	assert.Equal("LT05_026028_20050601_1", rows[0].Index)

	l57, err := os.ReadFile(filepath.Join(env.outDir, "L57_stack_ids_v2024-01-02.txt"))
	require.NoError(err)
	assert.Equal(testScene.ProductID+"\n", string(l57))
}
