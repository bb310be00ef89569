// Package xra provides the native XML annotation format. It is the only
// format with the full capability set, so a round-trip through it is
// lossless for every feature of the data model.
package xra

import (
	"github.com/brigitte-bigi/annago/core/aio"
	"github.com/brigitte-bigi/annago/core/trs"
	"github.com/brigitte-bigi/annago/internal/formats/base"
)

// FormatVersion is written in the root element of every produced file.
const FormatVersion = "1.5"

// Handler implements the aio.FormatHandler interface for XRA.
type Handler struct{}

// Manifest returns the static format description.
func (h *Handler) Manifest() *aio.Manifest {
	return &aio.Manifest{
		Name:      "xra",
		Extension: ".xra",
		Software:  "SPPAS",
		Caps: aio.Capabilities{
			MultiTiers:      true,
			NoTiers:         true,
			Metadata:        true,
			CtrlVocab:       true,
			Media:           true,
			Hierarchy:       true,
			Point:           true,
			Interval:        true,
			Disjoint:        true,
			AltLocalization: true,
			AltTag:          true,
			Radius:          true,
			Gaps:            true,
			Overlaps:        true,
		},
	}
}

// Register adds the handler to the format registry.
func Register() {
	aio.Register(func() aio.FormatHandler { return &Handler{} })
}

func init() {
	Register()
}

// Detect implements aio.FormatHandler.Detect.
func (h *Handler) Detect(path string) (*aio.DetectResult, error) {
	return base.DetectFile(path, base.DetectConfig{
		Extensions:     []string{".xra"},
		ContentMarkers: []string{"<Document"},
		FormatName:     "xra",
	})
}

// Read implements aio.FormatHandler.Read.
func (h *Handler) Read(path string) (*trs.Transcription, error) {
	return readFile(path)
}

// Write implements aio.FormatHandler.Write.
func (h *Handler) Write(path string, t *trs.Transcription) error {
	return writeFile(path, t)
}
