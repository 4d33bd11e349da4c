package io

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossyndicate/srst/internal/model"
)

func TestGeometryRepository_ListPoints(t *testing.T) {
	tests := map[string]struct {
		data       string
		expRegions []model.Region
		expErr     error
		errMsg     string
	}{
		"Points should be loaded with lon/lat ordering.": {
			data: "id,Latitude,Longitude\n1,40.5,-105.1\n2,41,-106\n",
			expRegions: []model.Region{
				{ID: "1", Geometry: orb.Point{-105.1, 40.5}},
				{ID: "2", Geometry: orb.Point{-106, 41}},
			},
		},

		"Columns should be matched case insensitive and extra columns ignored.": {
			data: "name,LONGITUDE,latitude,ID\nlake,-105,40,abc\n",
			expRegions: []model.Region{
				{ID: "abc", Geometry: orb.Point{-105, 40}},
			},
		},

		"A file with only the header should return no regions.": {
			data: "id,Latitude,Longitude\n",
		},

		"A missing column should fail.": {
			data:   "id,Latitude\n1,40\n",
			expErr: model.ErrNotValid,
			errMsg: `"longitude"`,
		},

		"An invalid coordinate should fail with the line.": {
			data:   "id,Latitude,Longitude\n1,40,-105\n2,north,-105\n",
			expErr: model.ErrNotValid,
			errMsg: "line 3",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			repo := NewGeometryRepository(fstest.MapFS{"locs.csv": &fstest.MapFile{Data: []byte(test.data)}})
			regions, err := repo.ListPoints(context.Background(), "locs.csv")

			if test.expErr != nil {
				require.ErrorIs(err, test.expErr)
				assert.Contains(err.Error(), test.errMsg)
				return
			}

			require.NoError(err)
			assert.Equal(test.expRegions, regions)
		})
	}
}

func TestGeometryRepository_ListPointsMissingFile(t *testing.T) {
	repo := NewGeometryRepository(fstest.MapFS{})
	_, err := repo.ListPoints(context.Background(), "locs.csv")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGeometryRepository_ListPolygons(t *testing.T) {
	square := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}

	tests := map[string]struct {
		data       string
		expRegions []model.Region
		expErr     error
	}{
		"Polygons should take the ID from the feature, the properties or the index.": {
			data: `{"type":"FeatureCollection","features":[
{"type":"Feature","id":"lake-a","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
{"type":"Feature","properties":{"id":42},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}
]}`,
			expRegions: []model.Region{
				{ID: "lake-a", Geometry: square},
				{ID: "42", Geometry: square},
				{ID: "2", Geometry: square},
			},
		},

		"Multipolygons should be accepted.": {
			data: `{"type":"FeatureCollection","features":[
{"type":"Feature","id":"m","properties":{},"geometry":{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,1],[0,0]]]]}}
]}`,
			expRegions: []model.Region{
				{ID: "m", Geometry: orb.MultiPolygon{square}},
			},
		},

		"Point features should fail.": {
			data: `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}}
]}`,
			expErr: model.ErrNotValid,
		},

		"Features without geometry should fail.": {
			data: `{"type":"FeatureCollection","features":[
{"type":"Feature","id":"a","properties":{},"geometry":null}
]}`,
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			repo := NewGeometryRepository(fstest.MapFS{"poly.geojson": &fstest.MapFile{Data: []byte(test.data)}})
			regions, err := repo.ListPolygons(context.Background(), "poly.geojson")

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				return
			}

			require.NoError(err)
			assert.Equal(test.expRegions, regions)
		})
	}
}
