package pipeline

import (
	"time"

	"github.com/rossyndicate/srst/internal/model"
)

// Remote dataset IDs of the Collection 2 tier 1 level 2 products.
const (
	DatasetLT05 = "LANDSAT/LT05/C02/T1_L2"
	DatasetLE07 = "LANDSAT/LE07/C02/T1_L2"
	DatasetLC08 = "LANDSAT/LC08/C02/T1_L2"
	DatasetLC09 = "LANDSAT/LC09/C02/T1_L2"
)

// Landsat 7 scenes outside this window are not used (scan line corrector and orbit drift).
var (
	le07Start = time.Date(1999, 5, 28, 0, 0, 0, 0, time.UTC)
	le07End   = time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC)
)

var bands57 = []model.BandRename{
	{Source: "SR_B1", Target: "Blue"},
	{Source: "SR_B2", Target: "Green"},
	{Source: "SR_B3", Target: "Red"},
	{Source: "SR_B4", Target: "Nir"},
	{Source: "SR_B5", Target: "Swir1"},
	{Source: "SR_B7", Target: "Swir2"},
	{Source: "QA_PIXEL", Target: "pixel_qa"},
	{Source: "SR_CLOUD_QA", Target: "cloud_qa"},
	{Source: "QA_RADSAT", Target: "radsat_qa"},
	{Source: "ST_B6", Target: "SurfaceTemp"},
	{Source: "ST_QA", Target: "temp_qa"},
	{Source: "ST_CDIST", Target: "ST_CDIST"},
	{Source: "ST_ATRAN", Target: "ST_ATRAN"},
	{Source: "ST_DRAD", Target: "ST_DRAD"},
	{Source: "ST_EMIS", Target: "ST_EMIS"},
	{Source: "ST_EMSD", Target: "ST_EMSD"},
	{Source: "ST_TRAD", Target: "ST_TRAD"},
	{Source: "ST_URAD", Target: "ST_URAD"},
}

var bands89 = []model.BandRename{
	{Source: "SR_B1", Target: "Aerosol"},
	{Source: "SR_B2", Target: "Blue"},
	{Source: "SR_B3", Target: "Green"},
	{Source: "SR_B4", Target: "Red"},
	{Source: "SR_B5", Target: "Nir"},
	{Source: "SR_B6", Target: "Swir1"},
	{Source: "SR_B7", Target: "Swir2"},
	{Source: "QA_PIXEL", Target: "pixel_qa"},
	{Source: "SR_QA_AEROSOL", Target: "aerosol_qa"},
	{Source: "QA_RADSAT", Target: "radsat_qa"},
	{Source: "ST_B10", Target: "SurfaceTemp"},
	{Source: "ST_QA", Target: "temp_qa"},
	{Source: "ST_CDIST", Target: "ST_CDIST"},
	{Source: "ST_ATRAN", Target: "ST_ATRAN"},
	{Source: "ST_DRAD", Target: "ST_DRAD"},
	{Source: "ST_EMIS", Target: "ST_EMIS"},
	{Source: "ST_EMSD", Target: "ST_EMSD"},
	{Source: "ST_TRAD", Target: "ST_TRAD"},
	{Source: "ST_URAD", Target: "ST_URAD"},
}

// SensorGroups are the sensor groups an acquisition processes, in order.
var SensorGroups = []model.SensorGroup{model.SensorGroupLS57, model.SensorGroupLS89}

// NewImageCollection returns the image collection query of a sensor group for a tile.
func NewImageCollection(cfg model.AcquisitionConfig, group model.SensorGroup, tile model.Tile) model.ImageCollection {
	thresh := cfg.CloudThreshold
	c := model.ImageCollection{
		Group:          group,
		Start:          cfg.StartDate,
		End:            cfg.EndDate,
		Tile:           tile,
		CloudThreshold: &thresh,
	}

	switch group {
	case model.SensorGroupLS57:
		start, end := le07Start, le07End
		c.Datasets = []model.Dataset{
			{ID: DatasetLT05},
			{ID: DatasetLE07, Start: &start, End: &end},
		}
		c.Bands = append([]model.BandRename(nil), bands57...)
	case model.SensorGroupLS89:
		c.Datasets = []model.Dataset{
			{ID: DatasetLC08},
			{ID: DatasetLC09},
		}
		c.Bands = append([]model.BandRename(nil), bands89...)
	}

	return c
}
