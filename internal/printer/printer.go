package printer

import "github.com/rossyndicate/srst/internal/model"

// Printer knows how to print ledger information in different formats.
type Printer interface {
	PrintExportList(exports []model.ExportRecord) error
	PrintExportStatus(export model.ExportRecord) error
	PrintRunList(runs []model.AcquisitionRun) error
	PrintMessage(msg string) error
}
