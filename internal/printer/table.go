package printer

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rossyndicate/srst/internal/model"
)

// TablePrinter prints ledger information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintExportList prints exports in a table format.
func (t *TablePrinter) PrintExportList(exports []model.ExportRecord) error {
	if len(exports) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "NAME\tKIND\tTILE\tSTATE\tCREATED")

	// Print rows.
	for _, e := range exports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Kind, e.Tile, e.State, TimeAgo(e.CreatedAt))
	}

	return nil
}

// PrintExportStatus prints detailed export status.
func (t *TablePrinter) PrintExportStatus(export model.ExportRecord) error {
	fmt.Fprintf(t.writer, "Name:       %s\n", export.Name)
	fmt.Fprintf(t.writer, "ID:         %s\n", export.ID)
	fmt.Fprintf(t.writer, "Task:       %s\n", export.TaskID)
	fmt.Fprintf(t.writer, "Kind:       %s\n", export.Kind)
	fmt.Fprintf(t.writer, "Tile:       %s\n", export.Tile)
	fmt.Fprintf(t.writer, "Group:      %s\n", export.Group)

	if export.Kind == model.ExportKindRegions {
		fmt.Fprintf(t.writer, "Extent:     %s\n", export.Extent)
		fmt.Fprintf(t.writer, "DSWE:       %s\n", export.Tier)
	}

	fmt.Fprintf(t.writer, "State:      %s\n", export.State)
	if export.Error != "" {
		fmt.Fprintf(t.writer, "Error:      %s\n", export.Error)
	}

	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(export.CreatedAt))
	fmt.Fprintf(t.writer, "Updated:    %s\n", FormatTimestamp(export.UpdatedAt))

	return nil
}

// PrintRunList prints acquisition runs in a table format.
func (t *TablePrinter) PrintRunList(runs []model.AcquisitionRun) error {
	if len(runs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "ID\tPROJECT\tTILE\tSTATUS\tSUBMITTED\tSKIPPED\tDURATION\tSTARTED")

	// Print rows.
	for _, r := range runs {
		duration := "-"
		if r.FinishedAt != nil {
			duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			r.ID,
			r.Project,
			r.Tile,
			r.Status,
			r.Submitted,
			r.Skipped,
			duration,
			TimeAgo(r.StartedAt),
		)
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
