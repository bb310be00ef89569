package ann

import (
	"fmt"

	"github.com/brigitte-bigi/annago/core/errors"
)

// Point represents a time instant with measurement uncertainty: a midpoint
// in seconds and a non-negative radius. A radius of zero means the instant
// is exact.
type Point struct {
	midpoint float64
	radius   float64
}

// NewPoint creates a Point. Both midpoint and radius must be non-negative.
func NewPoint(midpoint, radius float64) (*Point, error) {
	if midpoint < 0 {
		return nil, errors.NewValue("midpoint", midpoint)
	}
	if radius < 0 {
		return nil, errors.NewValue("radius", radius)
	}
	return &Point{midpoint: midpoint, radius: radius}, nil
}

// MustPoint creates an exact Point and panics on a negative midpoint.
// Intended for literals in tests and pipeline stages.
func MustPoint(midpoint float64) *Point {
	p, err := NewPoint(midpoint, 0)
	if err != nil {
		panic(err)
	}
	return p
}

// Midpoint returns the time value in seconds.
func (p *Point) Midpoint() float64 { return p.midpoint }

// Radius returns the uncertainty radius in seconds.
func (p *Point) Radius() float64 { return p.radius }

// SetMidpoint updates the time value. Negative values are rejected.
func (p *Point) SetMidpoint(midpoint float64) error {
	if midpoint < 0 {
		return errors.NewValue("midpoint", midpoint)
	}
	p.midpoint = midpoint
	return nil
}

// SetRadius updates the uncertainty radius. Negative values are rejected.
func (p *Point) SetRadius(radius float64) error {
	if radius < 0 {
		return errors.NewValue("radius", radius)
	}
	p.radius = radius
	return nil
}

// Equal reports whether the uncertainty ranges of the two points overlap:
// |m1-m2| <= r1+r2. See the package documentation for the transitivity
// caveat of this relation.
func (p *Point) Equal(other *Point) bool {
	if other == nil {
		return false
	}
	delta := p.midpoint - other.midpoint
	if delta < 0 {
		delta = -delta
	}
	return delta <= p.radius+other.radius
}

// Before reports whether p is strictly before other under fuzzy ordering:
// the points are not Equal and p's midpoint is lower.
func (p *Point) Before(other *Point) bool {
	return !p.Equal(other) && p.midpoint < other.midpoint
}

// After reports whether p is strictly after other under fuzzy ordering.
func (p *Point) After(other *Point) bool {
	return !p.Equal(other) && p.midpoint > other.midpoint
}

// ComparePoint returns -1, 0 or 1 when a is before, equal to, or after b.
func ComparePoint(a, b *Point) int {
	if a.Equal(b) {
		return 0
	}
	if a.midpoint < b.midpoint {
		return -1
	}
	return 1
}

// Copy returns an independent copy of the point.
func (p *Point) Copy() *Point {
	return &Point{midpoint: p.midpoint, radius: p.radius}
}

// Kind implements Localization.
func (p *Point) Kind() LocalizationKind { return KindPoint }

// Start implements Localization. For a point it is the point itself.
func (p *Point) Start() *Point { return p }

// End implements Localization. For a point it is the point itself.
func (p *Point) End() *Point { return p }

// Duration implements Localization: a point lasts zero seconds with a
// margin of twice its radius.
func (p *Point) Duration() Duration {
	return Duration{Value: 0, Margin: 2 * p.radius}
}

// EqualLocalization implements Localization.
func (p *Point) EqualLocalization(other Localization) bool {
	o, ok := other.(*Point)
	return ok && p.Equal(o)
}

// CopyLocalization implements Localization.
func (p *Point) CopyLocalization() Localization { return p.Copy() }

func (p *Point) String() string {
	if p.radius == 0 {
		return fmt.Sprintf("Point(%v)", p.midpoint)
	}
	return fmt.Sprintf("Point(%v, %v)", p.midpoint, p.radius)
}
