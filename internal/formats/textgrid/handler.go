// Package textgrid reads and writes Praat TextGrid files. Both the long
// and the short ooTextFile variants are read; the long variant is written.
// UTF-8 and UTF-16 input are accepted.
package textgrid

import (
	"github.com/brigitte-bigi/annago/core/aio"
	"github.com/brigitte-bigi/annago/core/trs"
	"github.com/brigitte-bigi/annago/internal/formats/base"
)

// Handler implements the aio.FormatHandler interface for TextGrid.
type Handler struct{}

// Manifest returns the static format description.
func (h *Handler) Manifest() *aio.Manifest {
	return &aio.Manifest{
		Name:      "textgrid",
		Extension: ".TextGrid",
		Software:  "Praat",
		Caps: aio.Capabilities{
			MultiTiers: true,
			Point:      true,
			Interval:   true,
			Gaps:       true,
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
		Extensions:     []string{".textgrid"},
		ContentMarkers: []string{"ooTextFile", "TextGrid"},
		FormatName:     "textgrid",
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
