package model

// Reducer is a remote per-region statistic.
type Reducer string

const (
	ReducerMedian   Reducer = "median"
	ReducerMin      Reducer = "min"
	ReducerStdDev   Reducer = "stdDev"
	ReducerMean     Reducer = "mean"
	ReducerKurtosis Reducer = "kurtosis"
	ReducerCount    Reducer = "count"
)

// PrimaryColumn is the reflectance statistic every exported row must have.
// Rows without it had no valid unmasked pixels on the region.
const PrimaryColumn = "med_Blue"

// IndexColumn is the remote row identifier, always the first exported column.
const IndexColumn = "system:index"

// StatOutput is a band reduced into an output column.
type StatOutput struct {
	Band   string
	Column string
}

// StatGroup is a set of bands reduced with the same reducer.
type StatGroup struct {
	Reducer Reducer
	Outputs []StatOutput
	// Masked groups only see the pixels of the DSWE tier of the plan.
	Masked bool
}

// ReductionPlan declares what the remote service computes per image and region.
type ReductionPlan struct {
	Group SensorGroup
	Tier  DSWETier
	// Masks enables the cloud, shadow and saturation masks before reducing.
	Masks       bool
	Algae       AlgaeThresholds
	ScaleMeters float64
	Stats       []StatGroup
}

// Columns returns the output columns of the plan in declaration order.
func (p ReductionPlan) Columns() []string {
	var cols []string
	for _, g := range p.Stats {
		for _, o := range g.Outputs {
			cols = append(cols, o.Column)
		}
	}
	return cols
}

// Row is a reduction output row of one image and region.
type Row struct {
	Index  string
	Values map[string]float64
}

// Has returns true if the row has a value for the column.
func (r Row) Has(column string) bool {
	_, ok := r.Values[column]
	return ok
}

// RowFilter selects the rows kept for export.
type RowFilter struct {
	NotNull []string
}

// Keep returns true if the row passes the filter.
func (f RowFilter) Keep(r Row) bool {
	for _, c := range f.NotNull {
		if !r.Has(c) {
			return false
		}
	}
	return true
}

// Apply returns the rows that pass the filter, in order.
func (f RowFilter) Apply(rows []Row) []Row {
	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Keep(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// RowSet is the flattened per image per region reduction of a collection.
type RowSet struct {
	Collection ImageCollection
	Regions    RegionSet
	Plan       ReductionPlan
	Filter     RowFilter
}
