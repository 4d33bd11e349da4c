package model

import (
	"fmt"
	"time"
)

// DateLayout is the layout of the dates on the acquisition settings and export names.
const DateLayout = "2006-01-02"

// EndDateToday is the end date token that resolves to the run date.
const EndDateToday = "today"

// AcquisitionConfig is the configuration of an acquisition run.
type AcquisitionConfig struct {
	// EEProject is the remote cloud project the engine runs under.
	EEProject string
	// Project prefixes every export name.
	Project string
	// ProjectFolder is the remote destination folder of the exports.
	ProjectFolder string

	StartDate time.Time
	// EndDate is exclusive.
	EndDate time.Time
	// RunDate versions export names and manifests.
	RunDate time.Time

	// SiteBuffer is the radius in metres applied to point regions.
	SiteBuffer float64
	// CloudThreshold is the exclusive upper bound of the scene cloud cover percent.
	CloudThreshold float64

	// DSWE are the raw tier tokens, unknown tokens are skipped when building plans.
	DSWE []string
	// Extents are the raw extent tokens, unknown tokens are skipped when building regions.
	Extents []string

	LocationCRS string
	// UserPolygon selects the user polygon inputs over the NHDPlus ones.
	UserPolygon bool
	PolygonCRS  string

	// Masks selects the masked pull, false runs the `nomask` variant.
	Masks bool

	Throttle ThrottleConfig
	Inputs   InputsConfig
}

// ThrottleConfig is the remote submission throttle configuration.
type ThrottleConfig struct {
	// MaxTasks is the ceiling of active remote tasks.
	MaxTasks int
	// PollInterval is the sleep between active task checks.
	PollInterval time.Duration
	// MaxWait bounds the wait for one submission, zero waits forever.
	MaxWait time.Duration
}

// InputsConfig are the local paths the acquisition reads and writes.
type InputsConfig struct {
	LocationsPath    string
	UserPolygonsPath string
	NHDPolygonsPath  string
	UserCentersPath  string
	NHDCentersPath   string
	OutDir           string
}

// ResolveEndDate returns the end date for a raw settings token.
func ResolveEndDate(raw string, runDate time.Time) (time.Time, error) {
	if raw == EndDateToday {
		return runDate, nil
	}

	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end date %q: %w", raw, ErrNotValid)
	}
	return t, nil
}

// Validate validates the acquisition configuration.
func (c *AcquisitionConfig) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project is required: %w", ErrNotValid)
	}
	if c.ProjectFolder == "" {
		return fmt.Errorf("project folder is required: %w", ErrNotValid)
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("start and end dates are required: %w", ErrNotValid)
	}
	if !c.StartDate.Before(c.EndDate) {
		return fmt.Errorf("start date %s must be before end date %s: %w", c.StartDate.Format(DateLayout), c.EndDate.Format(DateLayout), ErrNotValid)
	}
	if c.RunDate.IsZero() {
		return fmt.Errorf("run date is required: %w", ErrNotValid)
	}
	if c.SiteBuffer < 0 {
		return fmt.Errorf("site buffer must not be negative: %w", ErrNotValid)
	}
	if c.CloudThreshold <= 0 || c.CloudThreshold > 100 {
		return fmt.Errorf("cloud threshold must be in (0, 100], got %v: %w", c.CloudThreshold, ErrNotValid)
	}
	if len(c.Extents) == 0 {
		return fmt.Errorf("at least one extent is required: %w", ErrNotValid)
	}
	if len(c.DSWE) == 0 {
		return fmt.Errorf("at least one DSWE setting is required: %w", ErrNotValid)
	}
	if c.Throttle.MaxTasks <= 0 {
		return fmt.Errorf("throttle max tasks must be positive: %w", ErrNotValid)
	}
	if c.Throttle.PollInterval <= 0 {
		return fmt.Errorf("throttle poll interval must be positive: %w", ErrNotValid)
	}
	if c.Throttle.MaxWait < 0 {
		return fmt.Errorf("throttle max wait must not be negative: %w", ErrNotValid)
	}
	return nil
}
