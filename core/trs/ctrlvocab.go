package trs

import (
	"github.com/google/uuid"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
)

// VocabEntry is one legal tag of a controlled vocabulary, with an
// optional human-readable description.
type VocabEntry struct {
	Tag         ann.Tag
	Description string
}

// CtrlVocab is a controlled vocabulary: the restricted set of tags a tier
// may carry. Entries keep their insertion order.
type CtrlVocab struct {
	name    string
	meta    *ann.Metadata
	entries []VocabEntry
}

// NewCtrlVocab creates an empty vocabulary.
func NewCtrlVocab(name string) *CtrlVocab {
	meta := ann.NewMetadata()
	meta.Set(ann.MetaKeyID, uuid.NewString())
	return &CtrlVocab{name: name, meta: meta}
}

// Name returns the vocabulary name.
func (v *CtrlVocab) Name() string { return v.name }

// Metadata returns the vocabulary metadata.
func (v *CtrlVocab) Metadata() *ann.Metadata { return v.meta }

// Add appends a legal tag. A tag already present is rejected.
func (v *CtrlVocab) Add(tag ann.Tag, description string) error {
	if v.Contains(tag) {
		return errors.NewValidation("vocabulary", "tag "+tag.Content()+" is already an entry")
	}
	v.entries = append(v.entries, VocabEntry{Tag: tag, Description: description})
	return nil
}

// Remove deletes a tag from the vocabulary.
func (v *CtrlVocab) Remove(tag ann.Tag) error {
	for k, entry := range v.entries {
		if entry.Tag.Equal(tag) {
			v.entries = append(v.entries[:k], v.entries[k+1:]...)
			return nil
		}
	}
	return errors.NewNotFound("vocabulary entry", tag.Content())
}

// Contains reports whether the tag is a legal entry.
func (v *CtrlVocab) Contains(tag ann.Tag) bool {
	for _, entry := range v.entries {
		if entry.Tag.Equal(tag) {
			return true
		}
	}
	return false
}

// Entries returns all entries in insertion order.
func (v *CtrlVocab) Entries() []VocabEntry { return v.entries }

// Len returns the number of entries.
func (v *CtrlVocab) Len() int { return len(v.entries) }
