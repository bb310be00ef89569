// Package csv reads and writes a columnar annotation table: one row per
// annotation, as tiername,begin,end,label. A row whose begin equals its
// end is a point annotation.
package csv

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brigitte-bigi/annago/core/aio"
	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/encoding"
	"github.com/brigitte-bigi/annago/core/errors"
	"github.com/brigitte-bigi/annago/core/trs"
	"github.com/brigitte-bigi/annago/internal/formats/base"
)

// Handler implements the aio.FormatHandler interface for CSV tables.
type Handler struct{}

// Manifest returns the static format description.
func (h *Handler) Manifest() *aio.Manifest {
	return &aio.Manifest{
		Name:      "csv",
		Extension: ".csv",
		Software:  "SPPAS",
		Caps: aio.Capabilities{
			MultiTiers: true,
			Point:      true,
			Interval:   true,
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

// Detect implements aio.FormatHandler.Detect. Content sniffing checks
// that every row has four fields with numeric begin and end.
func (h *Handler) Detect(path string) (*aio.DetectResult, error) {
	return base.DetectFile(path, base.DetectConfig{
		Extensions: []string{".csv"},
		FormatName: "csv",
		CustomValidator: func(path string, data []byte) (bool, string, error) {
			r := csv.NewReader(strings.NewReader(string(data)))
			r.FieldsPerRecord = 4
			rows := 0
			for {
				record, err := r.Read()
				if err != nil {
					break
				}
				if _, err := strconv.ParseFloat(record[1], 64); err != nil {
					return false, "", nil
				}
				if _, err := strconv.ParseFloat(record[2], 64); err != nil {
					return false, "", nil
				}
				rows++
			}
			if rows == 0 {
				return false, "", nil
			}
			return true, "annotation table rows detected", nil
		},
	})
}

// Read implements aio.FormatHandler.Read.
func (h *Handler) Read(path string) (*trs.Transcription, error) {
	content, err := base.ReadText(path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1

	t := trs.NewTranscription(baseName(path))
	line := 0
	for {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.NewParse("csv", path, line+1, err.Error())
		}
		line++
		if len(record) < 4 {
			return nil, errors.NewParse("csv", path, line, "expected tiername,begin,end,label")
		}
		name := strings.TrimSpace(record[0])
		begin, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, errors.NewParse("csv", path, line, "malformed begin "+strconv.Quote(record[1]))
		}
		end, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, errors.NewParse("csv", path, line, "malformed end "+strconv.Quote(record[2]))
		}

		tier := t.Tier(name)
		if tier == nil {
			tier, err = t.NewTier(name)
			if err != nil {
				return nil, err
			}
			tier.AllowOverlaps()
		}
		loc, err := rowLocation(begin, end)
		if err != nil {
			return nil, errors.NewParse("csv", path, line, err.Error())
		}
		if _, err := tier.CreateAnnotation(loc, ann.NewLabel(ann.NewTag(record[3]))); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func rowLocation(begin, end float64) (*ann.Location, error) {
	b, err := ann.NewPoint(begin, 0)
	if err != nil {
		return nil, err
	}
	if begin == end {
		return ann.NewLocation(b)
	}
	e, err := ann.NewPoint(end, 0)
	if err != nil {
		return nil, err
	}
	iv, err := ann.NewInterval(b, e)
	if err != nil {
		return nil, err
	}
	return ann.NewLocation(iv)
}

// Write implements aio.FormatHandler.Write.
func (h *Handler) Write(path string, t *trs.Transcription) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIO("write", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, tier := range t.Tiers() {
		for _, a := range tier.Annotations() {
			loc := a.Location().Best()
			record := []string{
				tier.Name(),
				encoding.FormatFloat(loc.Start().Midpoint()),
				encoding.FormatFloat(loc.End().Midpoint()),
				a.BestTag().Content(),
			}
			if err := w.Write(record); err != nil {
				return errors.NewIO("write", path, err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
