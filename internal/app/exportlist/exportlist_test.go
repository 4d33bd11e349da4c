package exportlist_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rossyndicate/srst/internal/app/exportlist"
	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock      func(m *storagemock.MockRepository)
		req       exportlist.Request
		expResult []model.ExportRecord
		expErr    bool
	}{
		"Listing without filters should return all exports.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListExports", mock.Anything, model.ExportListOpts{}).Once().Return([]model.ExportRecord{
					{ID: "2", Name: "b"},
					{ID: "1", Name: "a"},
				}, nil)
			},
			req: exportlist.Request{},
			expResult: []model.ExportRecord{
				{ID: "2", Name: "b"},
				{ID: "1", Name: "a"},
			},
		},

		"Listing with filters should forward them normalized.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListExports", mock.Anything, model.ExportListOpts{
					Tile:   "026028",
					States: []model.TaskState{model.TaskStateFailed},
				}).Once().Return([]model.ExportRecord{{ID: "1", Tile: "026028"}}, nil)
			},
			req: exportlist.Request{
				Tile:   " 026028 ",
				States: []model.TaskState{model.TaskStateFailed},
			},
			expResult: []model.ExportRecord{{ID: "1", Tile: "026028"}},
		},

		"An invalid tile filter should fail.": {
			mock:   func(m *storagemock.MockRepository) {},
			req:    exportlist.Request{Tile: "26028"},
			expErr: true,
		},

		"A repository error should fail.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListExports", mock.Anything, mock.Anything).Once().Return(nil, fmt.Errorf("something"))
			},
			req:    exportlist.Request{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := storagemock.NewMockRepository(t)
			test.mock(m)

			svc, err := exportlist.NewService(exportlist.ServiceConfig{Repository: m, Logger: log.Noop})
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
