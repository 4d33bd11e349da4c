package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossyndicate/srst/internal/model"
)

func TestRootedPath(t *testing.T) {
	tests := map[string]struct {
		base    string
		path    string
		expPath string
	}{
		"Empty paths should stay empty.": {
			base:    "/work",
			path:    "",
			expPath: "",
		},
		"Relative paths should be resolved on the base.": {
			base:    "/work",
			path:    "in/locs.csv",
			expPath: "work/in/locs.csv",
		},
		"Absolute paths should ignore the base.": {
			base:    "/work",
			path:    "/data/in/locs.csv",
			expPath: "data/in/locs.csv",
		},
		"Paths should be cleaned.": {
			base:    "/work/sub",
			path:    "../in/./locs.csv",
			expPath: "work/in/locs.csv",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := RootedPath(test.base, test.path)
			require.NoError(t, err)
			assert.Equal(t, test.expPath, got)
		})
	}
}

func TestResolveInputs(t *testing.T) {
	got, err := ResolveInputs("/work", model.InputsConfig{
		LocationsPath:   "in/locs.csv",
		NHDPolygonsPath: "/abs/NHDPlus_polygon.geojson",
		OutDir:          "out",
	})
	require.NoError(t, err)

	assert.Equal(t, model.InputsConfig{
		LocationsPath:   "work/in/locs.csv",
		NHDPolygonsPath: "abs/NHDPlus_polygon.geojson",
		OutDir:          "/work/out",
	}, got)
}
