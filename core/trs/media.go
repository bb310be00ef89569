// Package trs assembles annotations into named Tiers and Tiers into a
// Transcription: the container of everything read from or written to an
// annotated file. The Transcription also owns the hierarchy graph that
// constrains parent/child tier pairs; tiers only hold a non-owning
// back-reference to their container, and every time-structure mutation is
// re-validated against the registered links before it is committed.
package trs

import (
	"github.com/google/uuid"

	"github.com/brigitte-bigi/annago/core/ann"
)

// Media is a reference to an audio or video file the annotations apply to.
type Media struct {
	meta *ann.Metadata
	url  string
	mime string
}

// NewMedia creates a media reference with a generated identifier.
func NewMedia(url, mime string) *Media {
	meta := ann.NewMetadata()
	meta.Set(ann.MetaKeyID, uuid.NewString())
	return &Media{meta: meta, url: url, mime: mime}
}

// ID returns the generated media identifier.
func (m *Media) ID() string { return m.meta.GetDefault(ann.MetaKeyID, "") }

// SetID overrides the generated identifier; readers use it to preserve
// the identifier found in the file.
func (m *Media) SetID(id string) { m.meta.Set(ann.MetaKeyID, id) }

// URL returns the media location.
func (m *Media) URL() string { return m.url }

// MimeType returns the declared mime type, possibly empty.
func (m *Media) MimeType() string { return m.mime }

// Metadata returns the media metadata.
func (m *Media) Metadata() *ann.Metadata { return m.meta }
