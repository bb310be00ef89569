// Package rawtxt is the last-resort format: a plain transcription with one
// annotation per non-empty line. Reading never fails on well-encoded text,
// so the heuristic dispatcher uses it when nothing else matches.
package rawtxt

import (
	"os"
	"strings"

	"github.com/brigitte-bigi/annago/core/aio"
	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
	"github.com/brigitte-bigi/annago/core/trs"
	"github.com/brigitte-bigi/annago/internal/formats/base"
)

// TierName is the single tier produced by reading.
const TierName = "Transcription"

// Handler implements the aio.FormatHandler interface for raw text.
type Handler struct{}

// Manifest returns the static format description.
func (h *Handler) Manifest() *aio.Manifest {
	return &aio.Manifest{
		Name:      "rawtxt",
		Extension: ".txt",
		Software:  "SPPAS",
		Fallback:  true,
		Caps: aio.Capabilities{
			Point: true,
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

// Detect implements aio.FormatHandler.Detect. Any readable file passes:
// this is the fallback format.
func (h *Handler) Detect(path string) (*aio.DetectResult, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &aio.DetectResult{Detected: false, Reason: "not a readable file"}, nil
	}
	return &aio.DetectResult{Detected: true, Format: "rawtxt", Reason: "raw text accepts any file"}, nil
}

// Read implements aio.FormatHandler.Read. Each non-empty line becomes a
// point annotation whose midpoint is the line rank, starting at 1.
func (h *Handler) Read(path string) (*trs.Transcription, error) {
	lines, err := base.ReadLines(path)
	if err != nil {
		return nil, err
	}
	t := trs.NewTranscription(TierName)
	tier, err := t.NewTier(TierName)
	if err != nil {
		return nil, err
	}
	rank := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rank++
		p, err := ann.NewPoint(float64(rank), 0)
		if err != nil {
			return nil, err
		}
		loc, err := ann.NewLocation(p)
		if err != nil {
			return nil, err
		}
		if _, err := tier.CreateAnnotation(loc, ann.NewLabel(ann.NewTag(line))); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Write implements aio.FormatHandler.Write: the best tag of every
// annotation, one per line, tiers in order.
func (h *Handler) Write(path string, t *trs.Transcription) error {
	var b strings.Builder
	for _, tier := range t.Tiers() {
		for _, a := range tier.Annotations() {
			b.WriteString(a.BestTag().Content())
			b.WriteString("\n")
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}
