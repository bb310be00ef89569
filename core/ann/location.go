package ann

import (
	"github.com/brigitte-bigi/annago/core/errors"
)

// ScoredLocalization is one alternative localization with its confidence.
type ScoredLocalization struct {
	Loc    Localization
	Score  float64
	Scored bool
}

// Location holds one or more alternative localizations of the same event,
// each with an optional confidence score. Exactly one alternative is the
// best at any time: the highest-scored one, the first on a tie, the first
// overall when nothing is scored.
type Location struct {
	alts []ScoredLocalization
}

// NewLocation creates a Location with a single unscored localization.
func NewLocation(loc Localization) (*Location, error) {
	if loc == nil {
		return nil, errors.NewType("nil", "Localization")
	}
	return &Location{alts: []ScoredLocalization{{Loc: loc}}}, nil
}

// AddAlternative appends a scored alternative localization. All
// alternatives of one location must share the same kind.
func (l *Location) AddAlternative(loc Localization, score float64) error {
	if loc == nil {
		return errors.NewType("nil", "Localization")
	}
	if loc.Kind() != l.Kind() {
		return errors.NewType(loc.Kind().String(), l.Kind().String())
	}
	l.alts = append(l.alts, ScoredLocalization{Loc: loc, Score: score, Scored: true})
	return nil
}

// AddUnscoredAlternative appends an alternative localization without a
// confidence. All alternatives of one location must share the same kind.
func (l *Location) AddUnscoredAlternative(loc Localization) error {
	if loc == nil {
		return errors.NewType("nil", "Localization")
	}
	if loc.Kind() != l.Kind() {
		return errors.NewType(loc.Kind().String(), l.Kind().String())
	}
	l.alts = append(l.alts, ScoredLocalization{Loc: loc})
	return nil
}

// SetScore assigns a confidence to the alternative at the given index.
func (l *Location) SetScore(index int, score float64) error {
	if index < 0 || index >= len(l.alts) {
		return errors.NewNotFound("localization alternative", "")
	}
	l.alts[index].Score = score
	l.alts[index].Scored = true
	return nil
}

// Kind returns the localization kind shared by all alternatives.
func (l *Location) Kind() LocalizationKind { return l.alts[0].Loc.Kind() }

// Alternatives returns all scored alternatives in insertion order.
func (l *Location) Alternatives() []ScoredLocalization { return l.alts }

// Len returns the number of alternatives.
func (l *Location) Len() int { return len(l.alts) }

// Best returns the localization with the highest score; ties are broken by
// insertion order, and without any score the first alternative wins.
func (l *Location) Best() Localization {
	best := 0
	for k := 1; k < len(l.alts); k++ {
		if l.alts[k].Scored && (!l.alts[best].Scored || l.alts[k].Score > l.alts[best].Score) {
			best = k
		}
	}
	return l.alts[best].Loc
}

// Start returns the earliest start point over all alternatives' best. By
// convention search and ordering use the best localization only.
func (l *Location) Start() *Point { return l.Best().Start() }

// End returns the end point of the best localization.
func (l *Location) End() *Point { return l.Best().End() }

// Equal reports whether the two locations hold pairwise equal alternatives
// in the same order. Scores participate in equality.
func (l *Location) Equal(other *Location) bool {
	if other == nil || len(l.alts) != len(other.alts) {
		return false
	}
	for k, alt := range l.alts {
		o := other.alts[k]
		if alt.Scored != o.Scored || (alt.Scored && alt.Score != o.Score) {
			return false
		}
		if !alt.Loc.EqualLocalization(o.Loc) {
			return false
		}
	}
	return true
}

// Copy returns an independent deep copy.
func (l *Location) Copy() *Location {
	alts := make([]ScoredLocalization, len(l.alts))
	for k, alt := range l.alts {
		alts[k] = ScoredLocalization{Loc: alt.Loc.CopyLocalization(), Score: alt.Score, Scored: alt.Scored}
	}
	return &Location{alts: alts}
}
