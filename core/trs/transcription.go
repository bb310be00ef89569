package trs

import (
	"github.com/google/uuid"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
)

// Transcription is the top-level container of annotated data: an ordered
// list of tiers, the media and controlled vocabularies they reference,
// free metadata, and the hierarchy graph constraining tier pairs. A
// Transcription is exclusively owned by its current holder; concurrent use
// from several goroutines must be serialized by the caller.
type Transcription struct {
	name   string
	meta   *ann.Metadata
	tiers  []*Tier
	media  []*Media
	vocabs []*CtrlVocab
	hier   *Hierarchy
}

// NewTranscription creates an empty transcription.
func NewTranscription(name string) *Transcription {
	meta := ann.NewMetadata()
	meta.Set(ann.MetaKeyID, uuid.NewString())
	return &Transcription{
		name: name,
		meta: meta,
		hier: NewHierarchy(),
	}
}

// Name returns the transcription name.
func (t *Transcription) Name() string { return t.name }

// SetName renames the transcription.
func (t *Transcription) SetName(name string) { t.name = name }

// Metadata returns the transcription metadata.
func (t *Transcription) Metadata() *ann.Metadata { return t.meta }

// Len returns the number of tiers.
func (t *Transcription) Len() int { return len(t.tiers) }

// IsEmpty reports whether the transcription holds no tier.
func (t *Transcription) IsEmpty() bool { return len(t.tiers) == 0 }

// Tiers returns the ordered tiers.
func (t *Transcription) Tiers() []*Tier { return t.tiers }

// TierAt returns the tier at the given index, or nil when out of range.
func (t *Transcription) TierAt(index int) *Tier {
	if index < 0 || index >= len(t.tiers) {
		return nil
	}
	return t.tiers[index]
}

// Tier returns the first tier with the given name, or nil.
func (t *Transcription) Tier(name string) *Tier {
	for _, tier := range t.tiers {
		if tier.Name() == name {
			return tier
		}
	}
	return nil
}

// TierIndex returns the position of the named tier, or -1.
func (t *Transcription) TierIndex(name string) int {
	for k, tier := range t.tiers {
		if tier.Name() == name {
			return k
		}
	}
	return -1
}

// NewTier creates an empty tier owned by this transcription and appends
// it. Tier names are unique within a transcription.
func (t *Transcription) NewTier(name string) (*Tier, error) {
	tier := NewTier(name)
	if err := t.Append(tier); err != nil {
		return nil, err
	}
	return tier, nil
}

// Append takes ownership of a tier built elsewhere, typically by an
// annotation pipeline stage. The tier must be internally consistent
// already; only the name uniqueness is checked here.
func (t *Transcription) Append(tier *Tier) error {
	if tier == nil {
		return errors.NewType("nil", "Tier")
	}
	if t.Tier(tier.Name()) != nil {
		return errors.NewValidation("tier", "a tier named "+tier.Name()+" already exists")
	}
	tier.owner = t
	t.tiers = append(t.tiers, tier)
	return nil
}

// RemoveTier removes the named tier and drops every hierarchy link it
// participates in.
func (t *Transcription) RemoveTier(name string) error {
	index := t.TierIndex(name)
	if index < 0 {
		return errors.NewNotFound("tier", name)
	}
	tier := t.tiers[index]
	t.hier.removeTier(tier)
	tier.owner = nil
	t.tiers = append(t.tiers[:index], t.tiers[index+1:]...)
	return nil
}

// Hierarchy returns the hierarchy graph, for inspection.
func (t *Transcription) Hierarchy() *Hierarchy { return t.hier }

// AddLink registers a constraint between two tiers of this transcription.
// The initial full validation must pass before the link is registered; on
// failure the hierarchy and both tiers are left unmodified.
func (t *Transcription) AddLink(typ LinkType, parent, child *Tier) error {
	if !typ.IsValid() {
		return errors.NewValidation("hierarchy", "unknown link type "+string(typ))
	}
	if parent == nil || child == nil {
		return errors.NewType("nil", "Tier")
	}
	if parent == child {
		return errors.NewValidation("hierarchy", "a tier cannot be linked to itself")
	}
	if parent.owner != t || child.owner != t {
		return errors.NewValidation("hierarchy", "both tiers must belong to the transcription")
	}
	if t.hier.ParentOf(child) != nil {
		return errors.NewValidation("hierarchy", "tier "+child.Name()+" already has a parent")
	}
	if t.hier.isAncestor(parent, child) {
		return errors.NewValidation("hierarchy", "link would create a cycle")
	}
	if typ == TimeAlignment && !(parent.IsInterval() || parent.IsDisjoint()) {
		return errors.NewValidation("hierarchy", "a TimeAlignment parent must be an interval tier")
	}

	link := &Link{Type: typ, Parent: parent, Child: child}
	if err := validateLink(link, nil, nil); err != nil {
		return err
	}
	t.hier.add(link)
	return nil
}

// RemoveLink drops the constraint on the given child tier.
func (t *Transcription) RemoveLink(child *Tier) {
	t.hier.remove(child)
}

// Media returns all media references.
func (t *Transcription) Media() []*Media { return t.media }

// AddMedia registers a media reference.
func (t *Transcription) AddMedia(m *Media) error {
	if m == nil {
		return errors.NewType("nil", "Media")
	}
	t.media = append(t.media, m)
	return nil
}

// Vocabs returns all controlled vocabularies.
func (t *Transcription) Vocabs() []*CtrlVocab { return t.vocabs }

// Vocab returns the named vocabulary, or nil.
func (t *Transcription) Vocab(name string) *CtrlVocab {
	for _, v := range t.vocabs {
		if v.Name() == name {
			return v
		}
	}
	return nil
}

// AddVocab registers a controlled vocabulary. Names are unique.
func (t *Transcription) AddVocab(v *CtrlVocab) error {
	if v == nil {
		return errors.NewType("nil", "CtrlVocab")
	}
	if t.Vocab(v.Name()) != nil {
		return errors.NewValidation("vocabulary", "a vocabulary named "+v.Name()+" already exists")
	}
	t.vocabs = append(t.vocabs, v)
	return nil
}

// validateEdit re-checks every hierarchy link the tier participates in,
// restricted to the span of the edited location. Called by Tier after a
// structural mutation; an error makes the tier roll the mutation back.
func (t *Transcription) validateEdit(tier *Tier, edited *ann.Location) error {
	var from, to *ann.Point
	if edited != nil {
		loc := edited.Best()
		from, to = loc.Start(), loc.End()
	}
	if link := t.hier.ParentOf(tier); link != nil {
		if err := validateLink(link, from, to); err != nil {
			return err
		}
	}
	for _, link := range t.hier.ChildrenOf(tier) {
		if err := validateLink(link, from, to); err != nil {
			return err
		}
	}
	return nil
}
