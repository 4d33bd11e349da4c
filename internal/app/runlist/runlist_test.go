package runlist_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rossyndicate/srst/internal/app/runlist"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock      func(m *storagemock.MockRepository)
		req       runlist.Request
		expResult []model.AcquisitionRun
		expErr    bool
	}{
		"Without a limit the default limit should be used.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListRuns", mock.Anything, runlist.DefaultLimit).Once().Return([]model.AcquisitionRun{{ID: "1"}}, nil)
			},
			expResult: []model.AcquisitionRun{{ID: "1"}},
		},

		"A custom limit should be forwarded.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListRuns", mock.Anything, 2).Once().Return([]model.AcquisitionRun{{ID: "2"}, {ID: "1"}}, nil)
			},
			req:       runlist.Request{Limit: 2},
			expResult: []model.AcquisitionRun{{ID: "2"}, {ID: "1"}},
		},

		"A negative limit should list all runs.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListRuns", mock.Anything, 0).Once().Return([]model.AcquisitionRun{}, nil)
			},
			req:       runlist.Request{Limit: -1},
			expResult: []model.AcquisitionRun{},
		},

		"A repository error should fail.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListRuns", mock.Anything, mock.Anything).Once().Return(nil, fmt.Errorf("something"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := storagemock.NewMockRepository(t)
			test.mock(m)

			svc, err := runlist.NewService(runlist.ServiceConfig{Repository: m})
			require.NoError(err)

			got, err := svc.Run(context.Background(), test.req)
			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expResult, got)
			}
		})
	}
}
