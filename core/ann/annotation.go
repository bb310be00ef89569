package ann

import (
	"github.com/google/uuid"

	"github.com/brigitte-bigi/annago/core/errors"
)

// MetaKeyID is the metadata key holding the generated annotation identity.
const MetaKeyID = "id"

// Annotation is one timed event: a Location plus an ordered list of
// Labels, with free metadata. A unique identifier is generated at
// construction and stored in the metadata; identity never participates in
// equality comparisons.
type Annotation struct {
	meta     *Metadata
	location *Location
	labels   []*Label
}

// NewAnnotation creates an Annotation from a location and optional labels.
// Identifier generation happens here and nowhere else.
func NewAnnotation(location *Location, labels ...*Label) (*Annotation, error) {
	if location == nil {
		return nil, errors.NewType("nil", "Location")
	}
	meta := NewMetadata()
	meta.Set(MetaKeyID, uuid.NewString())
	return &Annotation{meta: meta, location: location, labels: labels}, nil
}

// ID returns the generated unique identifier.
func (a *Annotation) ID() string {
	return a.meta.GetDefault(MetaKeyID, "")
}

// Metadata returns the annotation metadata, identity key included.
func (a *Annotation) Metadata() *Metadata { return a.meta }

// Location returns the annotation location.
func (a *Annotation) Location() *Location { return a.location }

// Labels returns the ordered labels.
func (a *Annotation) Labels() []*Label { return a.labels }

// SetLabels replaces all labels. The mutation is not hierarchy-relevant
// since it never moves the annotation in time.
func (a *Annotation) SetLabels(labels ...*Label) {
	a.labels = labels
}

// AppendLabel adds a label at the end of the sequence.
func (a *Annotation) AppendLabel(label *Label) {
	a.labels = append(a.labels, label)
}

// BestTag returns the best tag of the first label. Annotations created by
// the readers always carry at least one label; for a label-less annotation
// an empty string tag is returned.
func (a *Annotation) BestTag() Tag {
	if len(a.labels) == 0 {
		return NewTag("")
	}
	return a.labels[0].Best()
}

// SetLocation replaces the location without any cross-tier consistency
// check. Annotations attached to a tier must be moved through
// Tier.SetAnnotationLocation, which re-validates hierarchy links and
// rolls back on failure.
func (a *Annotation) SetLocation(location *Location) error {
	if location == nil {
		return errors.NewType("nil", "Location")
	}
	a.location = location
	return nil
}

// Equal compares location and labels; metadata, identity included, is
// excluded on purpose.
func (a *Annotation) Equal(other *Annotation) bool {
	if other == nil {
		return false
	}
	if !a.location.Equal(other.location) {
		return false
	}
	if len(a.labels) != len(other.labels) {
		return false
	}
	for k, label := range a.labels {
		if !label.Equal(other.labels[k]) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy with a fresh identity.
func (a *Annotation) Copy() *Annotation {
	labels := make([]*Label, len(a.labels))
	for k, label := range a.labels {
		labels[k] = label.Copy()
	}
	c, _ := NewAnnotation(a.location.Copy(), labels...)
	for _, key := range a.meta.Keys() {
		if key == MetaKeyID {
			continue
		}
		v, _ := a.meta.Get(key)
		c.meta.Set(key, v)
	}
	return c
}
