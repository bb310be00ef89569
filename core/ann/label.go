package ann

import (
	"strings"

	"github.com/brigitte-bigi/annago/core/errors"
)

// ScoredTag is one alternative reading with its optional confidence.
type ScoredTag struct {
	Tag    Tag
	Score  float64
	Scored bool
}

// Label is an ordered list of alternative Tags for one span, each with an
// optional confidence weight: a distribution over possible transcriptions
// of the same event.
type Label struct {
	tags []ScoredTag
}

// NewLabel creates a Label with a single unscored tag.
func NewLabel(tag Tag) *Label {
	return &Label{tags: []ScoredTag{{Tag: tag}}}
}

// NewScoredLabel creates a Label with a single scored tag.
func NewScoredLabel(tag Tag, score float64) *Label {
	return &Label{tags: []ScoredTag{{Tag: tag, Score: score, Scored: true}}}
}

// Append adds a scored alternative tag.
func (l *Label) Append(tag Tag, score float64) {
	l.tags = append(l.tags, ScoredTag{Tag: tag, Score: score, Scored: true})
}

// AppendUnscored adds an alternative tag without a confidence.
func (l *Label) AppendUnscored(tag Tag) {
	l.tags = append(l.tags, ScoredTag{Tag: tag})
}

// Tags returns all alternatives in insertion order.
func (l *Label) Tags() []ScoredTag { return l.tags }

// Len returns the number of alternative tags.
func (l *Label) Len() int { return len(l.tags) }

// Best returns the tag with the maximum score. Ties are broken by
// first-occurrence order; with no score at all the first tag wins.
func (l *Label) Best() Tag {
	best := 0
	for k := 1; k < len(l.tags); k++ {
		if l.tags[k].Scored && (!l.tags[best].Scored || l.tags[k].Score > l.tags[best].Score) {
			best = k
		}
	}
	return l.tags[best].Tag
}

// Score returns the confidence of the given tag, or an error when the tag
// is not an alternative of this label or carries no score.
func (l *Label) Score(tag Tag) (float64, error) {
	for _, st := range l.tags {
		if st.Tag.Equal(tag) {
			if !st.Scored {
				return 0, errors.NewNotFound("score for tag", tag.Content())
			}
			return st.Score, nil
		}
	}
	return 0, errors.NewNotFound("tag", tag.Content())
}

// TagPredicate evaluates one condition against a tag. See the Contains,
// EqualTo and Not helpers.
type TagPredicate func(Tag) bool

// Match evaluates predicates against every alternative tag. With matchAll
// true the predicates are AND-combined, otherwise OR-combined; the label
// matches when at least one alternative satisfies the combination.
func (l *Label) Match(predicates []TagPredicate, matchAll bool) bool {
	if len(predicates) == 0 {
		return false
	}
	for _, st := range l.tags {
		if matchTag(st.Tag, predicates, matchAll) {
			return true
		}
	}
	return false
}

func matchTag(tag Tag, predicates []TagPredicate, matchAll bool) bool {
	for _, pred := range predicates {
		ok := pred(tag)
		if matchAll && !ok {
			return false
		}
		if !matchAll && ok {
			return true
		}
	}
	return matchAll
}

// EqualTo returns a predicate matching tags with equal typed content.
func EqualTo(ref Tag) TagPredicate {
	return func(t Tag) bool { return t.Equal(ref) }
}

// Contains returns a predicate matching tags whose string content
// contains the given substring.
func Contains(substr string) TagPredicate {
	return func(t Tag) bool {
		return substr != "" && strings.Contains(t.Content(), substr)
	}
}

// Not negates a predicate.
func Not(pred TagPredicate) TagPredicate {
	return func(t Tag) bool { return !pred(t) }
}

// Equal reports whether the two labels hold pairwise equal alternatives
// in the same order, scores included.
func (l *Label) Equal(other *Label) bool {
	if other == nil || len(l.tags) != len(other.tags) {
		return false
	}
	for k, st := range l.tags {
		o := other.tags[k]
		if st.Scored != o.Scored || (st.Scored && st.Score != o.Score) {
			return false
		}
		if !st.Tag.Equal(o.Tag) {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of the label.
func (l *Label) Copy() *Label {
	tags := make([]ScoredTag, len(l.tags))
	copy(tags, l.tags)
	return &Label{tags: tags}
}

func (l *Label) String() string { return l.Best().Content() }
