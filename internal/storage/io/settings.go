package io

import (
	"context"
	"encoding/csv"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rossyndicate/srst/internal/model"
)

// Defaults applied when the settings don't set a value.
const (
	DefaultMaxTasks     = 10
	DefaultPollInterval = 120 * time.Second

	DefaultLocationsPath    = "in/locs.csv"
	DefaultUserPolygonsPath = "out/user_polygon.geojson"
	DefaultNHDPolygonsPath  = "out/NHDPlus_polygon.geojson"
	DefaultUserCentersPath  = "out/user_polygon_centers.csv"
	DefaultNHDCentersPath   = "out/NHDPlus_polygon_centers.csv"
	DefaultOutDir           = "out"
)

// SettingsRepository loads acquisition settings from YAML files or from the
// tabular (one header row, one value row) CSV settings.
type SettingsRepository struct {
	fs       fs.FS
	validate *validator.Validate
	now      func() time.Time
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(filesystem fs.FS) *SettingsRepository {
	return &SettingsRepository{
		fs:       filesystem,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// GetSettings loads the acquisition settings on path, the format is selected by the file extension.
func (r *SettingsRepository) GetSettings(ctx context.Context, p string) (model.AcquisitionConfig, error) {
	data, err := fs.ReadFile(r.fs, p)
	if err != nil {
		return model.AcquisitionConfig{}, fmt.Errorf("reading settings file: %w", err)
	}

	if ctx.Err() != nil {
		return model.AcquisitionConfig{}, ctx.Err()
	}

	var s Settings
	switch strings.ToLower(path.Ext(p)) {
	case ".csv":
		s, err = parseSettingsCSV(string(data))
		if err != nil {
			return model.AcquisitionConfig{}, fmt.Errorf("parsing CSV: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return model.AcquisitionConfig{}, fmt.Errorf("parsing YAML: %w", err)
		}
	}

	if err := r.validate.Struct(s); err != nil {
		return model.AcquisitionConfig{}, fmt.Errorf("invalid settings: %w", err)
	}

	cfg, err := s.toModel(r.now())
	if err != nil {
		return model.AcquisitionConfig{}, fmt.Errorf("invalid settings: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return model.AcquisitionConfig{}, fmt.Errorf("invalid settings: %w", err)
	}

	return cfg, nil
}

// Settings represents the acquisition settings file structure.
type Settings struct {
	EEProject      string           `yaml:"ee_proj"`
	Project        string           `yaml:"proj" validate:"required"`
	ProjectFolder  string           `yaml:"proj_folder" validate:"required"`
	StartDate      string           `yaml:"start_date" validate:"required"`
	EndDate        string           `yaml:"end_date" validate:"required"`
	RunDate        string           `yaml:"run_date"`
	SiteBuffer     float64          `yaml:"site_buffer" validate:"gte=0"`
	CloudThreshold float64          `yaml:"cloud_thresh" validate:"required,gt=0,lte=100"`
	DSWE           string           `yaml:"DSWE_setting" validate:"required"`
	Extent         string           `yaml:"extent" validate:"required"`
	LocationCRS    string           `yaml:"location_crs"`
	Polygon        bool             `yaml:"polygon"`
	PolygonCRS     string           `yaml:"poly_crs"`
	Masks          *bool            `yaml:"masks"`
	Throttle       ThrottleSettings `yaml:"throttle"`
	Inputs         InputsSettings   `yaml:"inputs"`
}

// ThrottleSettings represents the throttle section of the settings.
type ThrottleSettings struct {
	MaxTasks     int    `yaml:"max_tasks" validate:"gte=0"`
	PollInterval string `yaml:"poll_interval"`
	MaxWait      string `yaml:"max_wait"`
}

// InputsSettings represents the input and output paths section of the settings.
type InputsSettings struct {
	Locations    string `yaml:"locations"`
	UserPolygons string `yaml:"user_polygons"`
	NHDPolygons  string `yaml:"nhd_polygons"`
	UserCenters  string `yaml:"user_centers"`
	NHDCenters   string `yaml:"nhd_centers"`
	OutDir       string `yaml:"out_dir"`
}

func (s Settings) toModel(now time.Time) (model.AcquisitionConfig, error) {
	runDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if s.RunDate != "" {
		t, err := time.Parse(model.DateLayout, s.RunDate)
		if err != nil {
			return model.AcquisitionConfig{}, fmt.Errorf("invalid run date %q: %w", s.RunDate, model.ErrNotValid)
		}
		runDate = t
	}

	start, err := time.Parse(model.DateLayout, s.StartDate)
	if err != nil {
		return model.AcquisitionConfig{}, fmt.Errorf("invalid start date %q: %w", s.StartDate, model.ErrNotValid)
	}
	end, err := model.ResolveEndDate(s.EndDate, runDate)
	if err != nil {
		return model.AcquisitionConfig{}, err
	}

	throttle, err := s.Throttle.toModel()
	if err != nil {
		return model.AcquisitionConfig{}, fmt.Errorf("throttle: %w", err)
	}

	masks := true
	if s.Masks != nil {
		masks = *s.Masks
	}

	return model.AcquisitionConfig{
		EEProject:      s.EEProject,
		Project:        s.Project,
		ProjectFolder:  s.ProjectFolder,
		StartDate:      start,
		EndDate:        end,
		RunDate:        runDate,
		SiteBuffer:     s.SiteBuffer,
		CloudThreshold: s.CloudThreshold,
		DSWE:           splitTokens(s.DSWE),
		Extents:        splitTokens(s.Extent),
		LocationCRS:    s.LocationCRS,
		UserPolygon:    s.Polygon,
		PolygonCRS:     s.PolygonCRS,
		Masks:          masks,
		Throttle:       throttle,
		Inputs:         s.Inputs.toModel(),
	}, nil
}

func (t ThrottleSettings) toModel() (model.ThrottleConfig, error) {
	cfg := model.ThrottleConfig{
		MaxTasks:     t.MaxTasks,
		PollInterval: DefaultPollInterval,
	}
	if cfg.MaxTasks == 0 {
		cfg.MaxTasks = DefaultMaxTasks
	}

	if t.PollInterval != "" {
		d, err := time.ParseDuration(t.PollInterval)
		if err != nil {
			return model.ThrottleConfig{}, fmt.Errorf("invalid poll interval %q: %w", t.PollInterval, model.ErrNotValid)
		}
		cfg.PollInterval = d
	}
	if t.MaxWait != "" {
		d, err := time.ParseDuration(t.MaxWait)
		if err != nil {
			return model.ThrottleConfig{}, fmt.Errorf("invalid max wait %q: %w", t.MaxWait, model.ErrNotValid)
		}
		cfg.MaxWait = d
	}

	return cfg, nil
}

func (i InputsSettings) toModel() model.InputsConfig {
	withDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}

	return model.InputsConfig{
		LocationsPath:    withDefault(i.Locations, DefaultLocationsPath),
		UserPolygonsPath: withDefault(i.UserPolygons, DefaultUserPolygonsPath),
		NHDPolygonsPath:  withDefault(i.NHDPolygons, DefaultNHDPolygonsPath),
		UserCentersPath:  withDefault(i.UserCenters, DefaultUserCentersPath),
		NHDCentersPath:   withDefault(i.NHDCenters, DefaultNHDCentersPath),
		OutDir:           withDefault(i.OutDir, DefaultOutDir),
	}
}

// splitTokens splits `site+poly` style settings values.
func splitTokens(s string) []string {
	var tokens []string
	for _, t := range strings.Split(s, "+") {
		t = strings.TrimSpace(t)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// parseSettingsCSV maps the first value row of a tabular settings file by its header.
func parseSettingsCSV(data string) (Settings, error) {
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	if err != nil {
		return Settings{}, err
	}
	if len(records) < 2 {
		return Settings{}, fmt.Errorf("a header and a value row are required")
	}

	header, values := records[0], records[1]
	row := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(values) {
			row[strings.TrimSpace(col)] = strings.TrimSpace(values[i])
		}
	}

	var s Settings
	s.EEProject = row["ee_proj"]
	s.Project = row["proj"]
	s.ProjectFolder = row["proj_folder"]
	s.StartDate = row["start_date"]
	s.EndDate = row["end_date"]
	s.RunDate = row["run_date"]
	s.DSWE = row["DSWE_setting"]
	s.Extent = row["extent"]
	s.LocationCRS = row["location_crs"]
	s.PolygonCRS = row["poly_crs"]

	floats := map[string]*float64{
		"site_buffer":  &s.SiteBuffer,
		"cloud_thresh": &s.CloudThreshold,
	}
	for col, dst := range floats {
		if v := row[col]; v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("column %q: invalid number %q", col, v)
			}
			*dst = f
		}
	}

	if v := row["polygon"]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("column %q: invalid boolean %q", "polygon", v)
		}
		s.Polygon = b
	}
	if v := row["masks"]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("column %q: invalid boolean %q", "masks", v)
		}
		s.Masks = &b
	}

	if v := row["max_tasks"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Settings{}, fmt.Errorf("column %q: invalid integer %q", "max_tasks", v)
		}
		s.Throttle.MaxTasks = n
	}
	s.Throttle.PollInterval = row["poll_interval"]
	s.Throttle.MaxWait = row["max_wait"]

	return s, nil
}
