package remote

import (
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/rossyndicate/srst/internal/model"
)

// --- JSON wire types (private, for the processing gateway API) ---

type taskJSON struct {
	ID           string `json:"id"`
	Description  string `json:"description"`
	State        string `json:"state"`
	ErrorMessage string `json:"error_message,omitempty"`
	CreateTime   string `json:"create_time,omitempty"`
	UpdateTime   string `json:"update_time,omitempty"`
}

type taskListJSON struct {
	Tasks []taskJSON `json:"tasks"`
}

type errorJSON struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type exportJSON struct {
	RequestID   string     `json:"request_id"`
	Description string     `json:"description"`
	Folder      string     `json:"folder"`
	FileFormat  string     `json:"file_format"`
	Kind        string     `json:"kind"`
	Selectors   []string   `json:"selectors"`
	Source      sourceJSON `json:"source"`
}

type sourceJSON struct {
	Collection collectionJSON             `json:"collection"`
	Regions    *geojson.FeatureCollection `json:"regions,omitempty"`
	Plan       *planJSON                  `json:"plan,omitempty"`
	Filter     *filterJSON                `json:"filter,omitempty"`
}

type collectionJSON struct {
	Group          string        `json:"group"`
	Datasets       []datasetJSON `json:"datasets"`
	CloudThreshold *float64      `json:"cloud_threshold,omitempty"`
	Start          string        `json:"start"`
	End            string        `json:"end"`
	WRSPath        int           `json:"wrs_path"`
	WRSRow         int           `json:"wrs_row"`
	Bands          []bandJSON    `json:"bands"`
}

type datasetJSON struct {
	ID    string `json:"id"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type bandJSON struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type planJSON struct {
	Tier        string          `json:"dswe"`
	Masks       bool            `json:"masks"`
	AlgaeGreen  float64         `json:"algae_green_min"`
	AlgaeRed    float64         `json:"algae_red_max"`
	ScaleMeters float64         `json:"scale"`
	Stats       []statGroupJSON `json:"stats"`
}

type statGroupJSON struct {
	Reducer string           `json:"reducer"`
	Masked  bool             `json:"masked"`
	Outputs []statOutputJSON `json:"outputs"`
}

type statOutputJSON struct {
	Band   string `json:"band"`
	Column string `json:"column"`
}

type filterJSON struct {
	NotNull []string `json:"not_null"`
}

type aggregateJSON struct {
	Collection collectionJSON `json:"collection"`
	Property   string         `json:"property"`
}

type aggregateResultJSON struct {
	Values []string `json:"values"`
}

func (t taskJSON) toModel() *model.ExportTask {
	task := &model.ExportTask{
		ID:    t.ID,
		Name:  t.Description,
		State: model.TaskState(t.State),
		Error: t.ErrorMessage,
	}
	if ts, err := time.Parse(time.RFC3339, t.CreateTime); err == nil {
		task.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, t.UpdateTime); err == nil {
		task.UpdatedAt = ts
	}
	return task
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.DateLayout)
}

func fromCollection(c model.ImageCollection) collectionJSON {
	datasets := make([]datasetJSON, 0, len(c.Datasets))
	for _, d := range c.Datasets {
		datasets = append(datasets, datasetJSON{ID: d.ID, Start: dateOrEmpty(d.Start), End: dateOrEmpty(d.End)})
	}

	bands := make([]bandJSON, 0, len(c.Bands))
	for _, b := range c.Bands {
		bands = append(bands, bandJSON{Source: b.Source, Target: b.Target})
	}

	return collectionJSON{
		Group:          string(c.Group),
		Datasets:       datasets,
		CloudThreshold: c.CloudThreshold,
		Start:          c.Start.Format(model.DateLayout),
		End:            c.End.Format(model.DateLayout),
		WRSPath:        c.Tile.Path,
		WRSRow:         c.Tile.Row,
		Bands:          bands,
	}
}

func fromRegions(rs model.RegionSet) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range rs.Regions {
		f := geojson.NewFeature(r.Geometry)
		f.ID = r.ID
		f.Properties["id"] = r.ID
		f.Properties["extent"] = string(r.Kind)
		f.Properties["crs"] = r.CRS
		if r.BufferMeters > 0 {
			f.Properties["buffer_m"] = r.BufferMeters
		}
		fc.Append(f)
	}
	return fc
}

func fromPlan(p model.ReductionPlan) *planJSON {
	stats := make([]statGroupJSON, 0, len(p.Stats))
	for _, g := range p.Stats {
		outputs := make([]statOutputJSON, 0, len(g.Outputs))
		for _, o := range g.Outputs {
			outputs = append(outputs, statOutputJSON{Band: o.Band, Column: o.Column})
		}
		stats = append(stats, statGroupJSON{Reducer: string(g.Reducer), Masked: g.Masked, Outputs: outputs})
	}

	return &planJSON{
		Tier:        string(p.Tier),
		Masks:       p.Masks,
		AlgaeGreen:  p.Algae.GreenMin,
		AlgaeRed:    p.Algae.RedMax,
		ScaleMeters: p.ScaleMeters,
		Stats:       stats,
	}
}

func fromExportRequest(requestID string, req model.ExportRequest) exportJSON {
	e := exportJSON{
		RequestID:   requestID,
		Description: req.Name,
		Folder:      req.Folder,
		FileFormat:  string(req.Format),
		Kind:        string(req.Kind),
		Selectors:   req.Selectors,
	}

	switch {
	case req.Rows != nil:
		e.Source = sourceJSON{
			Collection: fromCollection(req.Rows.Collection),
			Regions:    fromRegions(req.Rows.Regions),
			Plan:       fromPlan(req.Rows.Plan),
			Filter:     &filterJSON{NotNull: req.Rows.Filter.NotNull},
		}
	case req.Collection != nil:
		e.Source = sourceJSON{Collection: fromCollection(*req.Collection)}
	}

	return e
}
