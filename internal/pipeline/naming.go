package pipeline

import (
	"fmt"

	"github.com/rossyndicate/srst/internal/model"
)

// RegionExportName returns the name of the export of a region reduction.
// e.g. `proj_point_LS57_C2_SRST_DSWE1_026028_v2024-01-02`.
func RegionExportName(cfg model.AcquisitionConfig, group model.SensorGroup, extent model.ExtentKind, tier model.DSWETier, tile model.Tile) string {
	variant := ""
	if !cfg.Masks {
		variant = "_nomask"
	}
	return fmt.Sprintf("%s_%s_%s_C2_SRST_DSWE%s%s_%s_v%s",
		cfg.Project, extent.NameToken(), group, tier, variant, tile, cfg.RunDate.Format(model.DateLayout))
}

// MetadataExportName returns the name of the metadata export of a sensor group.
func MetadataExportName(cfg model.AcquisitionConfig, group model.SensorGroup, tile model.Tile) string {
	return fmt.Sprintf("%s_metadata_%s_C2_%s_v%s", cfg.Project, group, tile, cfg.RunDate.Format(model.DateLayout))
}

// ManifestFileName returns the file name of the scene ID manifest of a sensor group.
func ManifestFileName(cfg model.AcquisitionConfig, group model.SensorGroup) string {
	return fmt.Sprintf("%s_stack_ids_v%s.txt", group.ManifestToken(), cfg.RunDate.Format(model.DateLayout))
}
