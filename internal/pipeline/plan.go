package pipeline

import (
	"strings"

	"github.com/rossyndicate/srst/internal/model"
)

// ReductionScaleMeters is the nominal scale the regions are reduced at.
const ReductionScaleMeters = 30

var (
	reflectance57 = []string{"Blue", "Green", "Red", "Nir", "Swir1", "Swir2"}
	reflectance89 = []string{"Aerosol", "Blue", "Green", "Red", "Nir", "Swir1", "Swir2"}

	// Surface temperature correction bands and their short column names.
	thermalMedians = []model.StatOutput{
		{Band: "temp_qa", Column: "med_temp_qa"},
		{Band: "ST_ATRAN", Column: "med_atran"},
		{Band: "ST_DRAD", Column: "med_drad"},
		{Band: "ST_EMIS", Column: "med_emis"},
		{Band: "ST_EMSD", Column: "med_emsd"},
		{Band: "ST_TRAD", Column: "med_trad"},
		{Band: "ST_URAD", Column: "med_urad"},
	}
)

func prefixed(prefix string, bands []string) []model.StatOutput {
	outs := make([]model.StatOutput, 0, len(bands))
	for _, b := range bands {
		outs = append(outs, model.StatOutput{Band: b, Column: prefix + b})
	}
	return outs
}

// NewReductionPlan returns the per image, per region reduction of a sensor group
// masked to a DSWE tier.
func NewReductionPlan(group model.SensorGroup, tier model.DSWETier, masks bool) model.ReductionPlan {
	reflectance := reflectance57
	if group == model.SensorGroupLS89 {
		reflectance = reflectance89
	}
	withTemp := append(append([]string(nil), reflectance...), "SurfaceTemp")

	medians := append(prefixed("med_", withTemp), thermalMedians...)

	return model.ReductionPlan{
		Group:       group,
		Tier:        tier,
		Masks:       masks,
		Algae:       model.DefaultAlgaeThresholds,
		ScaleMeters: ReductionScaleMeters,
		Stats: []model.StatGroup{
			{Reducer: model.ReducerMedian, Masked: true, Outputs: medians},
			{Reducer: model.ReducerMin, Masked: true, Outputs: []model.StatOutput{
				{Band: "SurfaceTemp", Column: "min_SurfaceTemp"},
				{Band: "ST_CDIST", Column: "min_cloud_dist"},
			}},
			{Reducer: model.ReducerStdDev, Masked: true, Outputs: prefixed("sd_", withTemp)},
			{Reducer: model.ReducerMean, Masked: true, Outputs: prefixed("mean_", withTemp)},
			{Reducer: model.ReducerKurtosis, Masked: true, Outputs: prefixed("kurt_", []string{"SurfaceTemp"})},
			{Reducer: model.ReducerCount, Outputs: prefixed("pCount_", []string{
				model.WaterLayerAny,
				model.WaterLayerHigh,
				model.WaterLayerVeg,
				model.WaterLayerAlgaeAdj,
			})},
			{Reducer: model.ReducerMean, Outputs: prefixed("prop_", []string{"clouds", "hillShadow"})},
			{Reducer: model.ReducerMean, Outputs: prefixed("mean_", []string{"hillShade"})},
		},
	}
}

// Selectors returns the exported columns of a plan.
func Selectors(plan model.ReductionPlan) []string {
	return append([]string{model.IndexColumn}, plan.Columns()...)
}

// NewRowSet returns the flattened reduction of a collection over a region set,
// dropping the rows without valid pixels.
func NewRowSet(collection model.ImageCollection, regions model.RegionSet, plan model.ReductionPlan) model.RowSet {
	return model.RowSet{
		Collection: collection,
		Regions:    regions,
		Plan:       plan,
		Filter:     model.RowFilter{NotNull: []string{model.PrimaryColumn}},
	}
}

// ParseTiers returns the known DSWE tiers of the settings tokens in order and
// without duplicates, plus the tokens that are not tiers.
// Tokens may hold several tiers separated by `+` or `,`.
func ParseTiers(tokens []string) (tiers []model.DSWETier, unknown []string) {
	seen := map[model.DSWETier]bool{}
	for _, token := range tokens {
		for _, raw := range strings.FieldsFunc(token, func(r rune) bool { return r == '+' || r == ',' || r == ' ' }) {
			tier, ok := model.ParseDSWETier(raw)
			if !ok {
				unknown = append(unknown, raw)
				continue
			}
			if seen[tier] {
				continue
			}
			seen[tier] = true
			tiers = append(tiers, tier)
		}
	}
	return tiers, unknown
}
