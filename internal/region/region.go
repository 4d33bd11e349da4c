package region

import (
	"context"
	"errors"
	"fmt"

	"github.com/paulmach/orb/planar"

	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
)

// NHDPlusCRS is the CRS of the NHDPlus waterbody files and their centers.
const NHDPlusCRS = "EPSG:4326"

// GeometryRepository loads the raw geometries of the regions.
type GeometryRepository interface {
	ListPoints(ctx context.Context, path string) ([]model.Region, error)
	ListPolygons(ctx context.Context, path string) ([]model.Region, error)
}

// BuilderConfig is the configuration of the region builder.
type BuilderConfig struct {
	Geometries GeometryRepository
	Logger     log.Logger
}

func (c *BuilderConfig) defaults() error {
	if c.Geometries == nil {
		return fmt.Errorf("geometry repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "region.Builder"})

	return nil
}

// Builder builds the region sets for the configured extents.
type Builder struct {
	geometries GeometryRepository
	logger     log.Logger
}

// NewBuilder returns a new region builder.
func NewBuilder(cfg BuilderConfig) (*Builder, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Builder{
		geometries: cfg.Geometries,
		logger:     cfg.Logger,
	}, nil
}

// Build returns one region set per known extent kind in configuration order.
// Unknown kinds are logged and skipped, repeated kinds are built once.
func (b *Builder) Build(ctx context.Context, cfg model.AcquisitionConfig) ([]model.RegionSet, error) {
	var sets []model.RegionSet
	seen := map[model.ExtentKind]bool{}
	for _, token := range cfg.Extents {
		kind, ok := model.ParseExtentKind(token)
		if !ok {
			b.logger.WithValues(log.Kv{"extent": token}).Warningf("Extent not identified. Check configuration file.")
			continue
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true

		set, err := b.build(ctx, cfg, kind)
		if err != nil {
			return nil, fmt.Errorf("could not build %s regions: %w", kind, err)
		}
		b.logger.WithValues(log.Kv{"extent": kind}).Debugf("%d regions built", len(set.Regions))

		sets = append(sets, set)
	}

	return sets, nil
}

func (b *Builder) build(ctx context.Context, cfg model.AcquisitionConfig, kind model.ExtentKind) (model.RegionSet, error) {
	var (
		regions []model.Region
		crs     string
		err     error
	)

	switch kind {
	case model.ExtentKindSite:
		crs = cfg.LocationCRS
		regions, err = b.geometries.ListPoints(ctx, cfg.Inputs.LocationsPath)
	case model.ExtentKindPolygon:
		polygons, polyCRS := polygonInputs(cfg)
		crs = polyCRS
		regions, err = b.geometries.ListPolygons(ctx, polygons)
	case model.ExtentKindCenter:
		regions, crs, err = b.centers(ctx, cfg)
	default:
		return model.RegionSet{}, fmt.Errorf("unknown extent %q: %w", kind, model.ErrNotValid)
	}
	if err != nil {
		return model.RegionSet{}, err
	}

	buffer := 0.0
	if kind.Buffered() {
		buffer = cfg.SiteBuffer
	}

	for i := range regions {
		regions[i].Kind = kind
		regions[i].BufferMeters = buffer
		regions[i].CRS = crs
	}

	return model.RegionSet{Kind: kind, Regions: regions}, nil
}

// centers loads the polygon centers file, if it doesn't exist the centers are derived
// from the polygons.
func (b *Builder) centers(ctx context.Context, cfg model.AcquisitionConfig) ([]model.Region, string, error) {
	centersPath, crs := cfg.Inputs.NHDCentersPath, NHDPlusCRS
	if cfg.UserPolygon {
		centersPath, crs = cfg.Inputs.UserCentersPath, cfg.PolygonCRS
	}

	regions, err := b.geometries.ListPoints(ctx, centersPath)
	if err == nil {
		return regions, crs, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, "", err
	}

	polygonsPath, _ := polygonInputs(cfg)
	b.logger.Infof("Centers file %q missing, deriving centers from %q", centersPath, polygonsPath)

	polygons, err := b.geometries.ListPolygons(ctx, polygonsPath)
	if err != nil {
		return nil, "", err
	}

	regions = make([]model.Region, 0, len(polygons))
	for _, p := range polygons {
		center, _ := planar.CentroidArea(p.Geometry)
		regions = append(regions, model.Region{ID: p.ID, Geometry: center})
	}

	return regions, crs, nil
}

func polygonInputs(cfg model.AcquisitionConfig) (path string, crs string) {
	if cfg.UserPolygon {
		return cfg.Inputs.UserPolygonsPath, cfg.PolygonCRS
	}
	return cfg.Inputs.NHDPolygonsPath, NHDPlusCRS
}
