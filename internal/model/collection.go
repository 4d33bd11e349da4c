package model

import (
	"time"
)

// SensorGroup groups Landsat missions processed with the same band layout.
type SensorGroup string

const (
	// SensorGroupLS57 are Landsat 4/5 TM and 7 ETM+.
	SensorGroupLS57 SensorGroup = "LS57"
	// SensorGroupLS89 are Landsat 8/9 OLI/TIRS.
	SensorGroupLS89 SensorGroup = "LS89"
)

// ManifestToken is the token used on the scene ID manifest file names.
func (s SensorGroup) ManifestToken() string {
	switch s {
	case SensorGroupLS57:
		return "L57"
	case SensorGroupLS89:
		return "L89"
	}
	return string(s)
}

// Dataset is a remote image collection, optionally restricted to a validity window.
type Dataset struct {
	ID    string
	Start *time.Time
	End   *time.Time
}

// BandRename maps a collection band to the common name used across sensors.
type BandRename struct {
	Source string
	Target string
}

// ImageCollection is the immutable query of the images of a sensor group.
type ImageCollection struct {
	Group    SensorGroup
	Datasets []Dataset
	// CloudThreshold is the exclusive upper bound of the scene cloud cover, nil when not filtering.
	CloudThreshold *float64
	// Start is inclusive and End exclusive.
	Start time.Time
	End   time.Time
	Tile  Tile
	Bands []BandRename
}

// Scene is a remote image record.
type Scene struct {
	// Index is the remote `system:index` of the image.
	Index string
	// ProductID is the `L1_LANDSAT_PRODUCT_ID` of the image.
	ProductID  string
	Dataset    string
	Tile       Tile
	CloudCover float64
	AcquiredAt time.Time
}

// Matches returns true if the scene belongs to the collection.
func (c ImageCollection) Matches(s Scene) bool {
	if s.Tile != c.Tile {
		return false
	}
	if c.CloudThreshold != nil && !(s.CloudCover < *c.CloudThreshold) {
		return false
	}
	if s.AcquiredAt.Before(c.Start) || !s.AcquiredAt.Before(c.End) {
		return false
	}

	for _, d := range c.Datasets {
		if d.ID != s.Dataset {
			continue
		}
		if d.Start != nil && s.AcquiredAt.Before(*d.Start) {
			return false
		}
		if d.End != nil && !s.AcquiredAt.Before(*d.End) {
			return false
		}
		return true
	}

	return false
}

// SourceBands returns the band names as they are on the remote datasets.
func (c ImageCollection) SourceBands() []string {
	bands := make([]string, 0, len(c.Bands))
	for _, b := range c.Bands {
		bands = append(bands, b.Source)
	}
	return bands
}

// TargetBands returns the common band names after renaming.
func (c ImageCollection) TargetBands() []string {
	bands := make([]string, 0, len(c.Bands))
	for _, b := range c.Bands {
		bands = append(bands, b.Target)
	}
	return bands
}

// ProductIDProperty is the image property holding the Landsat level 1 product ID.
const ProductIDProperty = "L1_LANDSAT_PRODUCT_ID"
