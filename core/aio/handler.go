// Package aio reads and writes annotated files. Format support is provided
// by handlers registered at init time; the package-level Read and Write
// dispatch on the file extension, with an optional content heuristic for
// unknown extensions.
package aio

import (
	"github.com/brigitte-bigi/annago/core/trs"
)

// DetectResult reports whether a file matches a format, and why.
type DetectResult struct {
	Detected bool
	Format   string
	Reason   string
}

// Manifest describes a format handler.
type Manifest struct {
	// Name is the registry key, unique and lowercase.
	Name string
	// Extension is the default file extension, including the dot.
	Extension string
	// Software names the application the format originates from.
	Software string
	// Binary marks formats whose files are not UTF-8 text.
	Binary bool
	// Fallback marks last-resort handlers whose Detect accepts anything.
	// The heuristic skips them until every other handler has declined.
	Fallback bool
	// Caps is the fixed capability vector of the format.
	Caps Capabilities
}

// FormatHandler is implemented by every format adapter.
type FormatHandler interface {
	// Manifest returns the static format description.
	Manifest() *Manifest

	// Detect checks whether the file at path is in this format.
	Detect(path string) (*DetectResult, error)

	// Read parses the file at path into a transcription.
	Read(path string) (*trs.Transcription, error)

	// Write serializes the transcription to the file at path.
	Write(path string, t *trs.Transcription) error
}
