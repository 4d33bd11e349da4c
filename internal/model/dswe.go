package model

// DSWETier is the water confidence level the reduction masks pixels with.
type DSWETier string

const (
	// DSWETier1 is high confidence open water (DSWE == 1).
	DSWETier1 DSWETier = "1"
	// DSWETier1a is high confidence water plus algae adjusted water.
	DSWETier1a DSWETier = "1a"
	// DSWETier3 is vegetated water (DSWE == 3).
	DSWETier3 DSWETier = "3"
)

// ParseDSWETier returns the tier for a configuration token.
// The second return value is false when the token is not a pullable tier.
func ParseDSWETier(s string) (DSWETier, bool) {
	switch DSWETier(s) {
	case DSWETier1, DSWETier1a, DSWETier3:
		return DSWETier(s), true
	}
	return "", false
}

// Water presence layers counted on every reduction.
const (
	WaterLayerAny      = "dswe_gt0"
	WaterLayerHigh     = "dswe1"
	WaterLayerVeg      = "dswe3"
	WaterLayerAlgaeAdj = "dswe1a"
)

// AlgaeThresholds are the spectral bounds that reclassify DSWE > 1 pixels as water.
type AlgaeThresholds struct {
	// GreenMin is the exclusive lower bound on green reflectance.
	GreenMin float64
	// RedMax is the exclusive upper bound on red reflectance.
	RedMax float64
}

// DefaultAlgaeThresholds are green > 0.05 and red < 0.04.
var DefaultAlgaeThresholds = AlgaeThresholds{GreenMin: 0.05, RedMax: 0.04}
