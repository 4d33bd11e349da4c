package model

// ExtentKind is the kind of geometry a region set is built from.
type ExtentKind string

const (
	// ExtentKindSite are point locations (buffered).
	ExtentKindSite ExtentKind = "site"
	// ExtentKindPolygon are waterbody polygons.
	ExtentKindPolygon ExtentKind = "poly"
	// ExtentKindCenter are polygon centroids (buffered).
	ExtentKindCenter ExtentKind = "center"
)

// ParseExtentKind returns the extent kind for a configuration token.
// The second return value is false when the token is not a known kind.
func ParseExtentKind(s string) (ExtentKind, bool) {
	switch ExtentKind(s) {
	case ExtentKindSite, ExtentKindPolygon, ExtentKindCenter:
		return ExtentKind(s), true
	}
	return "", false
}

// Buffered returns true when the regions of this kind are point geometries that
// need a buffer radius.
func (e ExtentKind) Buffered() bool {
	return e == ExtentKindSite || e == ExtentKindCenter
}

// NameToken is the token used for the extent on export names.
func (e ExtentKind) NameToken() string {
	switch e {
	case ExtentKindSite:
		return "point"
	case ExtentKindPolygon:
		return "poly"
	case ExtentKindCenter:
		return "center"
	}
	return string(e)
}
