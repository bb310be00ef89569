// Package sqlite stores transcriptions in an annotation database: a
// SQLite file holding the complete data model except alternative
// localizations. The driver is pure Go by default; building with the
// cgo_sqlite tag switches to mattn/go-sqlite3.
package sqlite

import (
	"bytes"
	"database/sql"

	"github.com/brigitte-bigi/annago/core/aio"
	"github.com/brigitte-bigi/annago/core/trs"
	"github.com/brigitte-bigi/annago/internal/formats/base"
)

// sqliteMagic is the 16-byte header of every SQLite database file.
var sqliteMagic = []byte("SQLite format 3\x00")

// Handler implements the aio.FormatHandler interface for annotation
// databases.
type Handler struct{}

// Manifest returns the static format description.
func (h *Handler) Manifest() *aio.Manifest {
	return &aio.Manifest{
		Name:      "adb",
		Extension: ".adb",
		Software:  "SPPAS",
		Binary:    true,
		Caps: aio.Capabilities{
			MultiTiers: true,
			NoTiers:    true,
			Metadata:   true,
			CtrlVocab:  true,
			Media:      true,
			Hierarchy:  true,
			Point:      true,
			Interval:   true,
			Disjoint:   true,
			AltTag:     true,
			Radius:     true,
			Gaps:       true,
			Overlaps:   true,
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

// Detect implements aio.FormatHandler.Detect by the file magic.
func (h *Handler) Detect(path string) (*aio.DetectResult, error) {
	return base.DetectFile(path, base.DetectConfig{
		Extensions: []string{".adb"},
		FormatName: "adb",
		CustomValidator: func(path string, data []byte) (bool, string, error) {
			if len(data) >= len(sqliteMagic) && bytes.Equal(data[:len(sqliteMagic)], sqliteMagic) {
				return true, "SQLite database header", nil
			}
			return false, "", nil
		},
	})
}

// open opens the database with the driver selected at build time.
func open(path string) (*sql.DB, error) {
	return sql.Open(driverName, path)
}

// Read implements aio.FormatHandler.Read.
func (h *Handler) Read(path string) (*trs.Transcription, error) {
	return readDB(path)
}

// Write implements aio.FormatHandler.Write.
func (h *Handler) Write(path string, t *trs.Transcription) error {
	return writeDB(path, t)
}
