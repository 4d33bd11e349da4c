package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossyndicate/srst/internal/model"
)

func TestParseStates(t *testing.T) {
	tests := map[string]struct {
		raw       []string
		expStates []model.TaskState
		expErr    bool
	}{
		"No states should not filter.": {
			raw:       nil,
			expStates: nil,
		},
		"States should be case insensitive.": {
			raw:       []string{"failed", " Running "},
			expStates: []model.TaskState{model.TaskStateFailed, model.TaskStateRunning},
		},
		"Unknown states should fail.": {
			raw:    []string{"done"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseStates(test.raw)
			if test.expErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expStates, got)
		})
	}
}
