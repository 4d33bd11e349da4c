package region_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/region"
	"github.com/rossyndicate/srst/internal/storage/io"
)

const squareGeoJSON = `{"type":"FeatureCollection","features":[
{"type":"Feature","id":"lake","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[2,0],[2,2],[0,2],[0,0]]]}}
]}`

func testConfig(extents ...string) model.AcquisitionConfig {
	return model.AcquisitionConfig{
		Extents:     extents,
		SiteBuffer:  200,
		LocationCRS: "EPSG:4269",
		PolygonCRS:  "EPSG:32613",
		Inputs: model.InputsConfig{
			LocationsPath:    "locs.csv",
			UserPolygonsPath: "user_polygon.geojson",
			NHDPolygonsPath:  "NHDPlus_polygon.geojson",
			UserCentersPath:  "user_polygon_centers.csv",
			NHDCentersPath:   "NHDPlus_polygon_centers.csv",
		},
	}
}

func TestNewBuilder(t *testing.T) {
	_, err := region.NewBuilder(region.BuilderConfig{})
	assert.Error(t, err)

	b, err := region.NewBuilder(region.BuilderConfig{Geometries: io.NewGeometryRepository(fstest.MapFS{})})
	assert.NoError(t, err)
	assert.NotNil(t, b)
}

func TestBuilder_Build(t *testing.T) {
	square := orb.Polygon{{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}

	tests := map[string]struct {
		fs      fstest.MapFS
		cfg     func() model.AcquisitionConfig
		expSets []model.RegionSet
		expErr  bool
	}{
		"Sites should be buffered and use the location CRS.": {
			fs: fstest.MapFS{
				"locs.csv": {Data: []byte("id,Latitude,Longitude\n1,40,-105\n")},
			},
			cfg: func() model.AcquisitionConfig { return testConfig("site") },
			expSets: []model.RegionSet{
				{Kind: model.ExtentKindSite, Regions: []model.Region{
					{ID: "1", Kind: model.ExtentKindSite, Geometry: orb.Point{-105, 40}, BufferMeters: 200, CRS: "EPSG:4269"},
				}},
			},
		},

		"NHDPlus polygons should not be buffered and use EPSG:4326.": {
			fs: fstest.MapFS{
				"NHDPlus_polygon.geojson": {Data: []byte(squareGeoJSON)},
			},
			cfg: func() model.AcquisitionConfig { return testConfig("poly") },
			expSets: []model.RegionSet{
				{Kind: model.ExtentKindPolygon, Regions: []model.Region{
					{ID: "lake", Kind: model.ExtentKindPolygon, Geometry: square, CRS: "EPSG:4326"},
				}},
			},
		},

		"User polygons should use the polygon CRS.": {
			fs: fstest.MapFS{
				"user_polygon.geojson": {Data: []byte(squareGeoJSON)},
			},
			cfg: func() model.AcquisitionConfig {
				c := testConfig("poly")
				c.UserPolygon = true
				return c
			},
			expSets: []model.RegionSet{
				{Kind: model.ExtentKindPolygon, Regions: []model.Region{
					{ID: "lake", Kind: model.ExtentKindPolygon, Geometry: square, CRS: "EPSG:32613"},
				}},
			},
		},

		"NHDPlus centers should be buffered and always use EPSG:4326.": {
			fs: fstest.MapFS{
				"NHDPlus_polygon_centers.csv": {Data: []byte("id,Latitude,Longitude\nlake,1,1\n")},
			},
			cfg: func() model.AcquisitionConfig { return testConfig("center") },
			expSets: []model.RegionSet{
				{Kind: model.ExtentKindCenter, Regions: []model.Region{
					{ID: "lake", Kind: model.ExtentKindCenter, Geometry: orb.Point{1, 1}, BufferMeters: 200, CRS: "EPSG:4326"},
				}},
			},
		},

		"Missing centers should be derived from the polygons.": {
			fs: fstest.MapFS{
				"user_polygon.geojson": {Data: []byte(squareGeoJSON)},
			},
			cfg: func() model.AcquisitionConfig {
				c := testConfig("center")
				c.UserPolygon = true
				return c
			},
			expSets: []model.RegionSet{
				{Kind: model.ExtentKindCenter, Regions: []model.Region{
					{ID: "lake", Kind: model.ExtentKindCenter, Geometry: orb.Point{1, 1}, BufferMeters: 200, CRS: "EPSG:32613"},
				}},
			},
		},

		"Unknown extents should be skipped and duplicates built once.": {
			fs: fstest.MapFS{
				"locs.csv": {Data: []byte("id,Latitude,Longitude\n1,40,-105\n")},
			},
			cfg: func() model.AcquisitionConfig { return testConfig("lake", "site", "site") },
			expSets: []model.RegionSet{
				{Kind: model.ExtentKindSite, Regions: []model.Region{
					{ID: "1", Kind: model.ExtentKindSite, Geometry: orb.Point{-105, 40}, BufferMeters: 200, CRS: "EPSG:4269"},
				}},
			},
		},

		"Only unknown extents should build nothing.": {
			fs:  fstest.MapFS{},
			cfg: func() model.AcquisitionConfig { return testConfig("lake") },
		},

		"Missing inputs should fail.": {
			fs:     fstest.MapFS{},
			cfg:    func() model.AcquisitionConfig { return testConfig("site") },
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			b, err := region.NewBuilder(region.BuilderConfig{
				Geometries: io.NewGeometryRepository(test.fs),
				Logger:     log.Noop,
			})
			require.NoError(err)

			sets, err := b.Build(context.Background(), test.cfg())

			if test.expErr {
				assert.Error(err)
				return
			}

			require.NoError(err)
			assert.Equal(test.expSets, sets)
		})
	}
}
