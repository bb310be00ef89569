package ann

import (
	"fmt"
	"strings"

	"github.com/brigitte-bigi/annago/core/errors"
)

// Disjoint is one discontinuous time span: an ordered set of
// non-overlapping intervals, e.g. a word split across a disfluency.
type Disjoint struct {
	intervals []*Interval
}

// NewDisjoint creates a Disjoint from at least one interval. The intervals
// must already be in increasing time order and must not overlap.
func NewDisjoint(intervals ...*Interval) (*Disjoint, error) {
	if len(intervals) == 0 {
		return nil, errors.NewValidation("disjoint", "at least one interval is required")
	}
	for k, iv := range intervals {
		if iv == nil {
			return nil, errors.NewType("nil", "Interval")
		}
		if k == 0 {
			continue
		}
		prev := intervals[k-1]
		if iv.Begin().Before(prev.End()) {
			return nil, &errors.ValidationError{
				Field:   "disjoint",
				Message: fmt.Sprintf("interval %v overlaps or precedes %v", iv, prev),
			}
		}
	}
	return &Disjoint{intervals: intervals}, nil
}

// Intervals returns the ordered intervals.
func (d *Disjoint) Intervals() []*Interval { return d.intervals }

// Len returns the number of intervals.
func (d *Disjoint) Len() int { return len(d.intervals) }

// Kind implements Localization.
func (d *Disjoint) Kind() LocalizationKind { return KindDisjoint }

// Start implements Localization: the begin of the first interval.
func (d *Disjoint) Start() *Point { return d.intervals[0].Begin() }

// End implements Localization: the end of the last interval.
func (d *Disjoint) End() *Point { return d.intervals[len(d.intervals)-1].End() }

// Duration implements Localization: the sum of the interval durations,
// gaps excluded.
func (d *Disjoint) Duration() Duration {
	var total Duration
	for _, iv := range d.intervals {
		dur := iv.Duration()
		total.Value += dur.Value
		total.Margin += dur.Margin
	}
	return total
}

// EqualLocalization implements Localization: same interval count with
// pairwise fuzzy-equal bounds.
func (d *Disjoint) EqualLocalization(other Localization) bool {
	o, ok := other.(*Disjoint)
	if !ok || len(d.intervals) != len(o.intervals) {
		return false
	}
	for k, iv := range d.intervals {
		if !iv.EqualLocalization(o.intervals[k]) {
			return false
		}
	}
	return true
}

// CopyLocalization implements Localization.
func (d *Disjoint) CopyLocalization() Localization {
	intervals := make([]*Interval, len(d.intervals))
	for k, iv := range d.intervals {
		intervals[k] = iv.Copy()
	}
	return &Disjoint{intervals: intervals}
}

func (d *Disjoint) String() string {
	parts := make([]string, len(d.intervals))
	for k, iv := range d.intervals {
		parts[k] = iv.String()
	}
	return fmt.Sprintf("Disjoint(%s)", strings.Join(parts, ", "))
}
