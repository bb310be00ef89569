package ann

// LocalizationKind discriminates the three kinds of time localization.
type LocalizationKind int

// Localization kind constants.
const (
	// KindPoint is a single time instant.
	KindPoint LocalizationKind = iota
	// KindInterval is a contiguous time span.
	KindInterval
	// KindDisjoint is a discontinuous span made of ordered intervals.
	KindDisjoint
)

// String returns the kind name as used in serialized files.
func (k LocalizationKind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindInterval:
		return "interval"
	case KindDisjoint:
		return "disjoint"
	}
	return "unknown"
}

// Localization is the polymorphic time anchor of an annotation: a Point,
// an Interval or a Disjoint.
type Localization interface {
	// Kind returns the discriminant of the concrete type.
	Kind() LocalizationKind
	// Start returns the earliest point of the localization.
	Start() *Point
	// End returns the latest point of the localization. For a point,
	// Start and End are the same point.
	End() *Point
	// Duration returns the covered duration with its uncertainty margin.
	Duration() Duration
	// EqualLocalization reports fuzzy equality with another localization
	// of the same kind.
	EqualLocalization(other Localization) bool
	// CopyLocalization returns an independent deep copy.
	CopyLocalization() Localization

	String() string
}

// CompareLocalization orders two localizations by start point, then by end
// point, using fuzzy point ordering. Returns -1, 0 or 1.
func CompareLocalization(a, b Localization) int {
	if c := ComparePoint(a.Start(), b.Start()); c != 0 {
		return c
	}
	return ComparePoint(a.End(), b.End())
}

// Duration is a time span value with the uncertainty margin inherited from
// the radii of the bounding points.
type Duration struct {
	Value  float64
	Margin float64
}
