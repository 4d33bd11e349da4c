package model

import "github.com/paulmach/orb"

// Region is a named geometry statistics are aggregated over.
type Region struct {
	ID       string
	Kind     ExtentKind
	Geometry orb.Geometry
	// BufferMeters is the radius applied to point geometries, zero for polygons.
	BufferMeters float64
	// CRS of the source coordinates (e.g. `EPSG:4326`).
	CRS string
}

// RegionSet is the set of regions built for one extent kind.
type RegionSet struct {
	Kind    ExtentKind
	Regions []Region
}

// Bound returns the bounding box of all the regions on the set
// and false if the set is empty.
func (r RegionSet) Bound() (orb.Bound, bool) {
	if len(r.Regions) == 0 {
		return orb.Bound{}, false
	}

	b := r.Regions[0].Geometry.Bound()
	for _, reg := range r.Regions[1:] {
		b = b.Union(reg.Geometry.Bound())
	}
	return b, true
}
