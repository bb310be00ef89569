// Package ann defines the building blocks of a temporal annotation: the
// localization primitives (Point, Interval, Disjoint), the Location that
// groups scored alternative localizations, typed Tags grouped into scored
// Labels, and the Annotation that ties one Location to its Labels.
//
// Time comparison is tolerance-based: every Point carries a radius
// expressing measurement uncertainty, and two points are equal when their
// uncertainty ranges overlap. Note that this relation is intentionally NOT
// transitive: with large radii, three points can pairwise compare equal
// without all representing the same instant. This is an accepted modeling
// choice, not a defect. Ordering (Before/After) is defined consistently
// with the fuzzy equality, and every sorting or containment algorithm in
// this module relies only on the ordering, never on global equivalence
// classes inferred from pairwise equality.
package ann
