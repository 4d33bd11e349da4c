package io

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/rossyndicate/srst/internal/model"
)

// GeometryRepository loads the region geometries (locations CSV and polygon GeoJSON files).
type GeometryRepository struct {
	fs fs.FS
}

// NewGeometryRepository creates a new geometry repository.
func NewGeometryRepository(filesystem fs.FS) *GeometryRepository {
	return &GeometryRepository{fs: filesystem}
}

// ListPoints loads point regions from a CSV with `id`, `Latitude` and `Longitude` columns.
// Columns are matched case insensitive and extra columns are ignored.
func (r *GeometryRepository) ListPoints(ctx context.Context, path string) ([]model.Region, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("points file %q: %w", path, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not open points file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read points header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"id", "latitude", "longitude"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("points file is missing the %q column: %w", required, model.ErrNotValid)
		}
	}

	var regions []model.Region
	for line := 2; ; line++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read points line %d: %w", line, err)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[cols["latitude"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %w", line, model.ErrNotValid)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(record[cols["longitude"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %w", line, model.ErrNotValid)
		}

		regions = append(regions, model.Region{
			ID:       strings.TrimSpace(record[cols["id"]]),
			Geometry: orb.Point{lon, lat},
		})
	}

	return regions, nil
}

// ListPolygons loads polygon regions from a GeoJSON feature collection. The region ID is taken
// from the feature ID, then from the `id` property and falls back to the feature index.
func (r *GeometryRepository) ListPolygons(ctx context.Context, path string) ([]model.Region, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("polygons file %q: %w", path, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not read polygons file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse GeoJSON: %w", err)
	}

	regions := make([]model.Region, 0, len(fc.Features))
	for i, feat := range fc.Features {
		switch feat.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		case nil:
			return nil, fmt.Errorf("feature %d: missing geometry: %w", i, model.ErrNotValid)
		default:
			return nil, fmt.Errorf("feature %d: unsupported geometry %q: %w", i, feat.Geometry.GeoJSONType(), model.ErrNotValid)
		}

		regions = append(regions, model.Region{
			ID:       featureID(feat, i),
			Geometry: feat.Geometry,
		})
	}

	return regions, nil
}

func featureID(feat *geojson.Feature, idx int) string {
	switch id := feat.ID.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}

	if v, ok := feat.Properties["id"]; ok && v != nil {
		return fmt.Sprint(v)
	}

	return strconv.Itoa(idx)
}
