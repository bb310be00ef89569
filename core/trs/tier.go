package trs

import (
	"github.com/google/uuid"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
)

// Tier is a named, time-ordered sequence of annotations sharing one
// localization kind. The kind is fixed by the first annotation appended;
// interval and disjoint tiers reject overlapping annotations unless the
// originating format explicitly allows them.
type Tier struct {
	name    string
	meta    *ann.Metadata
	anns    []*ann.Annotation
	kind    ann.LocalizationKind
	kindSet bool

	media *Media
	vocab *CtrlVocab

	// owner is a non-owning back-reference used to look up hierarchy
	// links; the hierarchy logic itself lives in the Transcription.
	owner *Transcription

	allowOverlaps bool
}

// NewTier creates a detached tier. Tiers meant to participate in a
// hierarchy are created through Transcription.NewTier or appended with
// Transcription.Append.
func NewTier(name string) *Tier {
	meta := ann.NewMetadata()
	meta.Set(ann.MetaKeyID, uuid.NewString())
	return &Tier{name: name, meta: meta}
}

// Name returns the tier name.
func (t *Tier) Name() string { return t.name }

// SetName renames the tier. Hierarchy links are tracked by identity, so
// renaming never invalidates them.
func (t *Tier) SetName(name string) { t.name = name }

// ID returns the generated tier identifier.
func (t *Tier) ID() string { return t.meta.GetDefault(ann.MetaKeyID, "") }

// SetID overrides the generated identifier; readers use it to preserve
// the identifier found in the file.
func (t *Tier) SetID(id string) { t.meta.Set(ann.MetaKeyID, id) }

// Metadata returns the tier metadata.
func (t *Tier) Metadata() *ann.Metadata { return t.meta }

// Media returns the attached media reference, or nil.
func (t *Tier) Media() *Media { return t.media }

// SetMedia attaches a media reference.
func (t *Tier) SetMedia(m *Media) { t.media = m }

// CtrlVocab returns the attached controlled vocabulary, or nil.
func (t *Tier) CtrlVocab() *CtrlVocab { return t.vocab }

// SetCtrlVocab restricts the tier to the tags of the vocabulary. All
// annotations already present must comply.
func (t *Tier) SetCtrlVocab(v *CtrlVocab) error {
	if v != nil {
		for _, a := range t.anns {
			if err := checkVocab(v, a); err != nil {
				return err
			}
		}
	}
	t.vocab = v
	return nil
}

// AllowOverlaps lifts the non-overlap constraint; formats whose model
// permits overlapping annotations set it before filling the tier.
func (t *Tier) AllowOverlaps() { t.allowOverlaps = true }

// OverlapsAllowed reports whether overlapping annotations are accepted.
func (t *Tier) OverlapsAllowed() bool { return t.allowOverlaps }

// Kind returns the localization kind of the tier. Meaningless until the
// first annotation is appended (see IsEmpty).
func (t *Tier) Kind() ann.LocalizationKind { return t.kind }

// IsPoint reports whether this is a point tier.
func (t *Tier) IsPoint() bool { return t.kindSet && t.kind == ann.KindPoint }

// IsInterval reports whether this is an interval tier.
func (t *Tier) IsInterval() bool { return t.kindSet && t.kind == ann.KindInterval }

// IsDisjoint reports whether this is a disjoint tier.
func (t *Tier) IsDisjoint() bool { return t.kindSet && t.kind == ann.KindDisjoint }

// IsEmpty reports whether the tier has no annotation.
func (t *Tier) IsEmpty() bool { return len(t.anns) == 0 }

// Len returns the number of annotations.
func (t *Tier) Len() int { return len(t.anns) }

// At returns the annotation at the given index, or nil when out of range.
func (t *Tier) At(index int) *ann.Annotation {
	if index < 0 || index >= len(t.anns) {
		return nil
	}
	return t.anns[index]
}

// Annotations returns the ordered annotations.
func (t *Tier) Annotations() []*ann.Annotation { return t.anns }

// Index returns the position of the annotation, or -1.
func (t *Tier) Index(a *ann.Annotation) int {
	for k, existing := range t.anns {
		if existing == a {
			return k
		}
	}
	return -1
}

// CreateAnnotation builds an annotation from a location and labels and
// appends it at its sorted position.
func (t *Tier) CreateAnnotation(location *ann.Location, labels ...*ann.Label) (*ann.Annotation, error) {
	a, err := ann.NewAnnotation(location, labels...)
	if err != nil {
		return nil, err
	}
	if err := t.Add(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Add inserts the annotation at its sorted position. The localization
// kind must match the tier kind, the tags must comply with an attached
// vocabulary, overlaps are rejected unless allowed, and any registered
// hierarchy link is re-validated; a failing validation rolls the insert
// back and the tier is left unchanged.
func (t *Tier) Add(a *ann.Annotation) error {
	if a == nil {
		return errors.NewType("nil", "Annotation")
	}
	kind := a.Location().Kind()
	if t.kindSet && kind != t.kind {
		return errors.NewType(kind.String(), t.kind.String())
	}
	if t.vocab != nil {
		if err := checkVocab(t.vocab, a); err != nil {
			return err
		}
	}
	if !t.allowOverlaps && t.overlapsExisting(a.Location()) {
		return errors.NewValidation("tier", "annotation "+a.Location().Best().String()+
			" overlaps an existing annotation of tier "+t.name)
	}

	index := t.insertionIndex(a.Location())
	t.anns = append(t.anns, nil)
	copy(t.anns[index+1:], t.anns[index:])
	t.anns[index] = a
	wasSet := t.kindSet
	t.kind, t.kindSet = kind, true

	if t.owner != nil {
		if err := t.owner.validateEdit(t, a.Location()); err != nil {
			// rollback
			t.anns = append(t.anns[:index], t.anns[index+1:]...)
			t.kindSet = wasSet
			return err
		}
	}
	return nil
}

// RemoveAt deletes the annotation at the given index. Registered
// hierarchy links are re-validated over the vacated span; a failing
// validation restores the annotation.
func (t *Tier) RemoveAt(index int) error {
	if index < 0 || index >= len(t.anns) {
		return errors.NewNotFound("annotation", "")
	}
	removed := t.anns[index]
	t.anns = append(t.anns[:index], t.anns[index+1:]...)

	if t.owner != nil {
		if err := t.owner.validateEdit(t, removed.Location()); err != nil {
			t.anns = append(t.anns, nil)
			copy(t.anns[index+1:], t.anns[index:])
			t.anns[index] = removed
			return err
		}
	}
	return nil
}

// Remove deletes the given annotation.
func (t *Tier) Remove(a *ann.Annotation) error {
	index := t.Index(a)
	if index < 0 {
		return errors.NewNotFound("annotation", a.ID())
	}
	return t.RemoveAt(index)
}

// SetAnnotationLocation moves an annotation of this tier. The move is
// transactional: ordering, overlap and hierarchy constraints are checked
// against the new location and the previous state is restored on failure.
func (t *Tier) SetAnnotationLocation(a *ann.Annotation, location *ann.Location) error {
	index := t.Index(a)
	if index < 0 {
		return errors.NewNotFound("annotation", a.ID())
	}
	if location == nil {
		return errors.NewType("nil", "Location")
	}
	if location.Kind() != t.kind {
		return errors.NewType(location.Kind().String(), t.kind.String())
	}

	old := a.Location()
	// re-insert at the position the new location sorts to
	t.anns = append(t.anns[:index], t.anns[index+1:]...)
	if !t.allowOverlaps && t.overlapsExisting(location) {
		t.anns = append(t.anns, nil)
		copy(t.anns[index+1:], t.anns[index:])
		t.anns[index] = a
		return errors.NewValidation("tier", "new location overlaps an existing annotation of tier "+t.name)
	}
	newIndex := t.insertionIndex(location)
	if err := a.SetLocation(location); err != nil {
		t.anns = append(t.anns, nil)
		copy(t.anns[index+1:], t.anns[index:])
		t.anns[index] = a
		return err
	}
	t.anns = append(t.anns, nil)
	copy(t.anns[newIndex+1:], t.anns[newIndex:])
	t.anns[newIndex] = a

	if t.owner != nil {
		err := t.owner.validateEdit(t, location)
		if err == nil {
			err = t.owner.validateEdit(t, old)
		}
		if err != nil {
			// rollback to the previous location and position
			t.anns = append(t.anns[:newIndex], t.anns[newIndex+1:]...)
			_ = a.SetLocation(old)
			t.anns = append(t.anns, nil)
			copy(t.anns[index+1:], t.anns[index:])
			t.anns[index] = a
			return err
		}
	}
	return nil
}

// Find returns the annotations within the span [begin, end]. With
// overlaps true, any annotation sharing time with the span is returned;
// an annotation beginning exactly at the span end is excluded, while one
// ending exactly at the span begin counts. With overlaps false only
// annotations entirely covered by the span are returned.
func (t *Tier) Find(begin, end *ann.Point, overlaps bool) []*ann.Annotation {
	var found []*ann.Annotation
	for _, a := range t.anns {
		loc := a.Location().Best()
		if loc.Start().After(end) || (!overlaps && loc.Start().Before(begin)) {
			// sorted order: nothing later can match
			if loc.Start().After(end) {
				break
			}
			continue
		}
		if overlaps {
			if !loc.End().Before(begin) && loc.Start().Before(end) {
				found = append(found, a)
			}
		} else {
			if !loc.End().After(end) {
				found = append(found, a)
			}
		}
	}
	return found
}

// Near returns the index of the annotation nearest to the point:
// direction 1 looks at or after the point, -1 at or before, 0 the
// closest regardless of side. Returns -1 when no annotation qualifies.
func (t *Tier) Near(p *ann.Point, direction int) int {
	if len(t.anns) == 0 {
		return -1
	}
	after := -1
	for k, a := range t.anns {
		loc := a.Location().Best()
		if !loc.End().Before(p) {
			after = k
			break
		}
	}
	before := -1
	for k := len(t.anns) - 1; k >= 0; k-- {
		loc := t.anns[k].Location().Best()
		if !loc.Start().After(p) {
			before = k
			break
		}
	}

	switch {
	case direction > 0:
		return after
	case direction < 0:
		return before
	case after < 0:
		return before
	case before < 0:
		return after
	case after == before:
		return after
	}
	// closest by midpoint distance, earlier one on a tie
	da := t.anns[after].Location().Best().Start().Midpoint() - p.Midpoint()
	db := p.Midpoint() - t.anns[before].Location().Best().End().Midpoint()
	if da < 0 {
		da = -da
	}
	if db < 0 {
		db = -db
	}
	if db <= da {
		return before
	}
	return after
}

// Matches returns the annotations with at least one label satisfying the
// predicates, AND-combined when matchAll is true.
func (t *Tier) Matches(predicates []ann.TagPredicate, matchAll bool) []*ann.Annotation {
	var found []*ann.Annotation
	for _, a := range t.anns {
		for _, label := range a.Labels() {
			if label.Match(predicates, matchAll) {
				found = append(found, a)
				break
			}
		}
	}
	return found
}

// StartPoint returns the earliest point covered by the tier, or nil when
// the tier is empty.
func (t *Tier) StartPoint() *ann.Point {
	if len(t.anns) == 0 {
		return nil
	}
	return t.anns[0].Location().Best().Start()
}

// EndPoint returns the latest point covered by the tier, or nil when the
// tier is empty. Annotations are ordered by start, so every end point is
// inspected.
func (t *Tier) EndPoint() *ann.Point {
	var end *ann.Point
	for _, a := range t.anns {
		e := a.Location().Best().End()
		if end == nil || e.After(end) {
			end = e
		}
	}
	return end
}

// Copy returns a deep copy of the tier, detached from any transcription.
func (t *Tier) Copy() *Tier {
	c := NewTier(t.name)
	c.kind, c.kindSet = t.kind, t.kindSet
	c.allowOverlaps = t.allowOverlaps
	c.media = t.media
	c.vocab = t.vocab
	for _, key := range t.meta.Keys() {
		if key == ann.MetaKeyID {
			continue
		}
		v, _ := t.meta.Get(key)
		c.meta.Set(key, v)
	}
	c.anns = make([]*ann.Annotation, len(t.anns))
	for k, a := range t.anns {
		c.anns[k] = a.Copy()
	}
	return c
}

// insertionIndex returns the position keeping annotations in
// non-decreasing time order.
func (t *Tier) insertionIndex(location *ann.Location) int {
	loc := location.Best()
	lo, hi := 0, len(t.anns)
	for lo < hi {
		mid := (lo + hi) / 2
		if ann.CompareLocalization(t.anns[mid].Location().Best(), loc) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// overlapsExisting reports whether the location shares time with an
// existing annotation: span overlap for interval and disjoint tiers, a
// fuzzy-equal point for point tiers.
func (t *Tier) overlapsExisting(location *ann.Location) bool {
	loc := location.Best()
	for _, existing := range t.anns {
		other := existing.Location().Best()
		if loc.Kind() == ann.KindPoint && other.Kind() == ann.KindPoint {
			if loc.Start().Equal(other.Start()) {
				return true
			}
			continue
		}
		if other.Start().After(loc.End()) {
			break
		}
		if spansOverlap(loc, other) {
			return true
		}
	}
	return false
}

// spansOverlap reports strict time sharing between two localizations:
// touching bounds do not count, so contiguous annotations are legal.
func spansOverlap(a, b ann.Localization) bool {
	return a.Start().Before(b.End()) && b.Start().Before(a.End())
}

func checkVocab(v *CtrlVocab, a *ann.Annotation) error {
	for _, label := range a.Labels() {
		for _, st := range label.Tags() {
			if !v.Contains(st.Tag) {
				return errors.NewValidation("vocabulary",
					"tag "+st.Tag.Content()+" is not an entry of vocabulary "+v.Name())
			}
		}
	}
	return nil
}
