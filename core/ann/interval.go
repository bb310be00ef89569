package ann

import (
	"fmt"

	"github.com/brigitte-bigi/annago/core/errors"
)

// Interval is a contiguous time span bounded by two points, with the
// invariant begin < end under fuzzy ordering.
type Interval struct {
	begin *Point
	end   *Point
}

// NewInterval creates an Interval. The begin point must be strictly before
// the end point under fuzzy ordering; anything else is rejected.
func NewInterval(begin, end *Point) (*Interval, error) {
	if begin == nil || end == nil {
		return nil, errors.NewType("nil", "Point")
	}
	if !begin.Before(end) {
		return nil, &errors.ValidationError{
			Field:   "interval",
			Message: fmt.Sprintf("begin %v must be strictly before end %v", begin, end),
		}
	}
	return &Interval{begin: begin, end: end}, nil
}

// Begin returns the begin point.
func (i *Interval) Begin() *Point { return i.begin }

// End returns the end point.
func (i *Interval) End() *Point { return i.end }

// SetBegin replaces the begin point, preserving the ordering invariant.
func (i *Interval) SetBegin(p *Point) error {
	if p == nil {
		return errors.NewType("nil", "Point")
	}
	if !p.Before(i.end) {
		return &errors.ValidationError{
			Field:   "interval",
			Message: fmt.Sprintf("begin %v must be strictly before end %v", p, i.end),
		}
	}
	i.begin = p
	return nil
}

// SetEnd replaces the end point, preserving the ordering invariant.
func (i *Interval) SetEnd(p *Point) error {
	if p == nil {
		return errors.NewType("nil", "Point")
	}
	if !i.begin.Before(p) {
		return &errors.ValidationError{
			Field:   "interval",
			Message: fmt.Sprintf("begin %v must be strictly before end %v", i.begin, p),
		}
	}
	i.end = p
	return nil
}

// Contains reports whether the interval non-strictly contains other, under
// fuzzy point ordering: begin <= other.begin and other.end <= end.
func (i *Interval) Contains(other *Interval) bool {
	return !i.begin.After(other.begin) && !other.end.After(i.end)
}

// ContainsPoint reports whether the point falls inside the interval,
// bounds included under fuzzy comparison.
func (i *Interval) ContainsPoint(p *Point) bool {
	return !p.Before(i.begin) && !p.After(i.end)
}

// Overlaps reports whether the two intervals share any time span. Touching
// boundaries count as overlap when the boundary points compare equal.
func (i *Interval) Overlaps(other *Interval) bool {
	return !i.begin.After(other.end) && !other.begin.After(i.end)
}

// Copy returns an independent deep copy.
func (i *Interval) Copy() *Interval {
	return &Interval{begin: i.begin.Copy(), end: i.end.Copy()}
}

// Kind implements Localization.
func (i *Interval) Kind() LocalizationKind { return KindInterval }

// Start implements Localization.
func (i *Interval) Start() *Point { return i.begin }

// Duration implements Localization.
func (i *Interval) Duration() Duration {
	return Duration{
		Value:  i.end.Midpoint() - i.begin.Midpoint(),
		Margin: i.begin.Radius() + i.end.Radius(),
	}
}

// EqualLocalization implements Localization.
func (i *Interval) EqualLocalization(other Localization) bool {
	o, ok := other.(*Interval)
	return ok && i.begin.Equal(o.begin) && i.end.Equal(o.end)
}

// CopyLocalization implements Localization.
func (i *Interval) CopyLocalization() Localization { return i.Copy() }

func (i *Interval) String() string {
	return fmt.Sprintf("Interval(%v, %v)", i.begin, i.end)
}
