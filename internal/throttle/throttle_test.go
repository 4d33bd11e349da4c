package throttle_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rossyndicate/srst/internal/engine/enginemock"
	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/throttle"
)

func TestNewSubmitter(t *testing.T) {
	tests := map[string]struct {
		config throttle.SubmitterConfig
		expErr bool
	}{
		"Valid config should create the submitter.": {
			config: throttle.SubmitterConfig{Engine: &enginemock.MockEngine{}},
		},
		"Missing engine should fail.": {
			config: throttle.SubmitterConfig{},
			expErr: true,
		},
		"Negative max tasks should fail.": {
			config: throttle.SubmitterConfig{Engine: &enginemock.MockEngine{}, MaxTasks: -1},
			expErr: true,
		},
		"Negative max wait should fail.": {
			config: throttle.SubmitterConfig{Engine: &enginemock.MockEngine{}, MaxWait: -time.Second},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := throttle.NewSubmitter(test.config)
			if test.expErr {
				assert.Error(t, err)
				assert.Nil(t, s)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, s)
			}
		})
	}
}

func TestSubmitter_Submit(t *testing.T) {
	req := model.ExportRequest{Name: "proj_point_LS57_C2_SRST_DSWE1_026028_v2024-01-02"}
	task := &model.ExportTask{ID: "T1", Name: req.Name, State: model.TaskStateReady}

	tests := map[string]struct {
		maxWait   time.Duration
		sleepErr  error
		mock      func(m *enginemock.MockEngine)
		expSleeps int
		expTask   *model.ExportTask
		expErr    error
	}{
		"Active tasks below the ceiling should submit without sleeping.": {
			mock: func(m *enginemock.MockEngine) {
				m.On("ActiveTasks", mock.Anything).Once().Return(9, nil)
				m.On("StartExport", mock.Anything, req).Once().Return(task, nil)
			},
			expSleeps: 0,
			expTask:   task,
		},

		"Active tasks at the ceiling should sleep before checking again.": {
			mock: func(m *enginemock.MockEngine) {
				m.On("ActiveTasks", mock.Anything).Once().Return(10, nil)
				m.On("ActiveTasks", mock.Anything).Once().Return(12, nil)
				m.On("ActiveTasks", mock.Anything).Once().Return(3, nil)
				m.On("StartExport", mock.Anything, req).Once().Return(task, nil)
			},
			expSleeps: 2,
			expTask:   task,
		},

		"An error counting tasks should be returned.": {
			mock: func(m *enginemock.MockEngine) {
				m.On("ActiveTasks", mock.Anything).Once().Return(0, fmt.Errorf("something"))
			},
			expErr: fmt.Errorf("something"),
		},

		"An error submitting should be returned.": {
			mock: func(m *enginemock.MockEngine) {
				m.On("ActiveTasks", mock.Anything).Once().Return(0, nil)
				m.On("StartExport", mock.Anything, req).Once().Return(nil, fmt.Errorf("something"))
			},
			expErr: fmt.Errorf("something"),
		},

		"Waiting more than the max wait should time out.": {
			maxWait: 2 * time.Minute,
			mock: func(m *enginemock.MockEngine) {
				m.On("ActiveTasks", mock.Anything).Times(3).Return(10, nil)
			},
			expSleeps: 2,
			expErr:    model.ErrWaitTimeout,
		},

		"A cancelled wait should return the context error.": {
			sleepErr: context.Canceled,
			mock: func(m *enginemock.MockEngine) {
				m.On("ActiveTasks", mock.Anything).Once().Return(10, nil)
			},
			expSleeps: 1,
			expErr:    context.Canceled,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := enginemock.NewMockEngine(t)
			test.mock(m)

			var sleeps []time.Duration
			s, err := throttle.NewSubmitter(throttle.SubmitterConfig{
				Engine:       m,
				MaxTasks:     10,
				PollInterval: time.Minute,
				MaxWait:      test.maxWait,
				Sleep: func(ctx context.Context, d time.Duration) error {
					sleeps = append(sleeps, d)
					return test.sleepErr
				},
				Logger: log.Noop,
			})
			require.NoError(err)

			gotTask, err := s.Submit(context.Background(), req)

			assert.Len(sleeps, test.expSleeps)
			for _, d := range sleeps {
				assert.Equal(time.Minute, d)
			}

			if test.expErr != nil {
				require.Error(err)
				if test.expErr == model.ErrWaitTimeout || test.expErr == context.Canceled {
					assert.ErrorIs(err, test.expErr)
				} else {
					assert.Contains(err.Error(), test.expErr.Error())
				}
				return
			}

			require.NoError(err)
			assert.Equal(test.expTask, gotTask)
		})
	}
}

func TestSubmitter_SubmitDuplicatedName(t *testing.T) {
	req := model.ExportRequest{Name: "export-a"}

	m := enginemock.NewMockEngine(t)
	m.On("ActiveTasks", mock.Anything).Once().Return(0, nil)
	m.On("StartExport", mock.Anything, req).Once().Return(&model.ExportTask{ID: "T1", Name: req.Name}, nil)

	s, err := throttle.NewSubmitter(throttle.SubmitterConfig{Engine: m})
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), req)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestSubmitter_SubmitConcurrentDuplicatedName(t *testing.T) {
	req := model.ExportRequest{Name: "export-a"}

	m := enginemock.NewMockEngine(t)
	m.On("ActiveTasks", mock.Anything).Once().Return(0, nil)
	m.On("StartExport", mock.Anything, req).Once().Return(&model.ExportTask{ID: "T1", Name: req.Name}, nil)

	s, err := throttle.NewSubmitter(throttle.SubmitterConfig{Engine: m})
	require.NoError(t, err)

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.Submit(context.Background(), req)
		}()
	}
	wg.Wait()

	ok, dup := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, model.ErrAlreadyExists):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, callers-1, dup)
}

func TestSubmitter_SubmitFailureReleasesName(t *testing.T) {
	req := model.ExportRequest{Name: "export-a"}

	m := enginemock.NewMockEngine(t)
	m.On("ActiveTasks", mock.Anything).Twice().Return(0, nil)
	m.On("StartExport", mock.Anything, req).Once().Return(nil, fmt.Errorf("whatever"))
	m.On("StartExport", mock.Anything, req).Once().Return(&model.ExportTask{ID: "T1", Name: req.Name}, nil)

	s, err := throttle.NewSubmitter(throttle.SubmitterConfig{Engine: m})
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), req)
	require.Error(t, err)

	task, err := s.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "T1", task.ID)
}

func TestSubmitter_SubmitRealSleepHonoursCancellation(t *testing.T) {
	m := enginemock.NewMockEngine(t)
	m.On("ActiveTasks", mock.Anything).Once().Return(10, nil)

	s, err := throttle.NewSubmitter(throttle.SubmitterConfig{Engine: m, PollInterval: time.Hour})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Submit(ctx, model.ExportRequest{Name: "export-a"})
	assert.ErrorIs(t, err, context.Canceled)
}
