package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rossyndicate/srst/internal/model"
)

// JSONPrinter prints ledger information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// listItem represents an export in the list output (subset of fields).
type listItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Tile      string    `json:"tile"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// statusOutput represents the full export status output.
type statusOutput struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Group     string    `json:"group"`
	Extent    string    `json:"extent,omitempty"`
	Tier      string    `json:"dswe,omitempty"`
	Tile      string    `json:"tile"`
	State     string    `json:"state"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// runOutput represents an acquisition run output.
type runOutput struct {
	ID         string     `json:"id"`
	Project    string     `json:"project"`
	Tile       string     `json:"tile"`
	RunDate    string     `json:"run_date"`
	Status     string     `json:"status"`
	Submitted  int        `json:"submitted"`
	Skipped    int        `json:"skipped"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintExportList prints exports in JSON format with a subset of fields.
func (j *JSONPrinter) PrintExportList(exports []model.ExportRecord) error {
	items := make([]listItem, len(exports))
	for i, e := range exports {
		items[i] = listItem{
			ID:        e.ID,
			Name:      e.Name,
			Kind:      string(e.Kind),
			Tile:      e.Tile,
			State:     string(e.State),
			CreatedAt: e.CreatedAt.UTC(),
		}
	}

	return j.encode(items)
}

// PrintExportStatus prints detailed export status in JSON format.
func (j *JSONPrinter) PrintExportStatus(export model.ExportRecord) error {
	output := statusOutput{
		ID:        export.ID,
		TaskID:    export.TaskID,
		Name:      export.Name,
		Kind:      string(export.Kind),
		Group:     string(export.Group),
		Tile:      export.Tile,
		State:     string(export.State),
		Error:     export.Error,
		CreatedAt: export.CreatedAt.UTC(),
		UpdatedAt: export.UpdatedAt.UTC(),
	}

	if export.Kind == model.ExportKindRegions {
		output.Extent = string(export.Extent)
		output.Tier = string(export.Tier)
	}

	return j.encode(output)
}

// PrintRunList prints acquisition runs in JSON format.
func (j *JSONPrinter) PrintRunList(runs []model.AcquisitionRun) error {
	items := make([]runOutput, len(runs))
	for i, r := range runs {
		items[i] = runOutput{
			ID:        r.ID,
			Project:   r.Project,
			Tile:      r.Tile,
			RunDate:   r.RunDate.Format(model.DateLayout),
			Status:    string(r.Status),
			Submitted: r.Submitted,
			Skipped:   r.Skipped,
			Error:     r.Error,
			StartedAt: r.StartedAt.UTC(),
		}
		if r.FinishedAt != nil {
			utcTime := r.FinishedAt.UTC()
			items[i].FinishedAt = &utcTime
		}
	}

	return j.encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
