package aio

import (
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/brigitte-bigi/annago/core/encoding"
	"github.com/brigitte-bigi/annago/core/errors"
	"github.com/brigitte-bigi/annago/core/trs"
	"github.com/brigitte-bigi/annago/internal/logging"
)

// Provenance metadata keys stamped on transcriptions by Read and Write.
const (
	MetaFileReader    = "file_reader"
	MetaFileWriter    = "file_writer"
	MetaFileName      = "file_name"
	MetaFilePath      = "file_path"
	MetaFileExt       = "file_ext"
	MetaFileReadDate  = "file_read_date"
	MetaFileWriteDate = "file_write_date"
	MetaFileChecksum  = "file_checksum"
	MetaFileVersion   = "file_version"
)

// Read parses the annotated file at path. The handler is chosen by the file
// extension; with heuristic set, unknown extensions fall back to content
// detection over all registered handlers, and finally to a fallback handler.
// Files ending in .xz are decompressed transparently.
func Read(path string, heuristic bool) (*trs.Transcription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}

	readPath := path
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".xz") {
		readPath, err = decompressXZ(path)
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(filepath.Dir(readPath))
		ext = filepath.Ext(readPath)
	}

	handler, err := resolveHandler(readPath, ext, heuristic)
	if err != nil {
		return nil, err
	}
	m := handler.Manifest()

	if !m.Binary {
		text, err := os.ReadFile(readPath)
		if err != nil {
			return nil, errors.NewIO("read", readPath, err)
		}
		if !hasUTF16BOM(text) && !encoding.ValidUTF8(text) {
			return nil, errors.NewEncoding(path, "UTF-8", nil)
		}
	}

	t, err := handler.Read(readPath)
	if err != nil {
		return nil, err
	}

	sum := blake3.Sum256(data)
	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		abs = path
	}
	meta := t.Metadata()
	meta.Set(MetaFileReader, m.Name)
	meta.Set(MetaFileName, filepath.Base(path))
	meta.Set(MetaFilePath, abs)
	meta.Set(MetaFileExt, ext)
	meta.Set(MetaFileReadDate, time.Now().Format(time.RFC3339))
	meta.Set(MetaFileChecksum, hex.EncodeToString(sum[:]))

	logging.FileRead(path, m.Name)
	return t, nil
}

// Write serializes the transcription to path. The handler is chosen by the
// file extension; unknown extensions are an error.
func Write(path string, t *trs.Transcription) error {
	ext := filepath.Ext(path)
	handler := ByExtension(ext)
	if handler == nil {
		return errors.NewExtension(path, ext)
	}
	m := handler.Manifest()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	meta := t.Metadata()
	meta.Set(MetaFileWriter, m.Name)
	meta.Set(MetaFileName, filepath.Base(path))
	meta.Set(MetaFilePath, abs)
	meta.Set(MetaFileExt, ext)
	meta.Set(MetaFileWriteDate, time.Now().Format(time.RFC3339))
	meta.Set(MetaFileVersion, strconv.Itoa(fileVersion(t)+1))

	if err := handler.Write(path, t); err != nil {
		return err
	}
	logging.FileWrite(path, m.Name)
	return nil
}

// Detect runs content detection over all registered handlers and returns
// the first match, fallback handlers last.
func Detect(path string) (*DetectResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewIO("stat", path, err)
	}
	handler, err := resolveHandler(path, filepath.Ext(path), true)
	if err != nil {
		return &DetectResult{Detected: false, Reason: "no registered format matches"}, nil
	}
	return handler.Detect(path)
}

// resolveHandler picks a handler for the file: by extension first, then,
// with heuristic, by content detection in registration order.
func resolveHandler(path, ext string, heuristic bool) (FormatHandler, error) {
	if h := ByExtension(ext); h != nil {
		return h, nil
	}
	if !heuristic {
		return nil, errors.NewExtension(path, ext)
	}
	var fallback FormatHandler
	for _, h := range Handlers() {
		if h.Manifest().Fallback {
			if fallback == nil {
				fallback = h
			}
			continue
		}
		res, err := h.Detect(path)
		if err == nil && res != nil && res.Detected {
			return h, nil
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, errors.NewExtension(path, ext)
}

// decompressXZ expands path into a temporary directory, keeping the inner
// file name so extension dispatch still works. The caller removes the
// directory.
func decompressXZ(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.NewIO("open", path, err)
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return "", errors.NewIO("decompress", path, err)
	}

	dir, err := os.MkdirTemp("", "annago-xz-*")
	if err != nil {
		return "", errors.NewIO("tempdir", path, err)
	}
	inner := filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	out, err := os.Create(inner)
	if err != nil {
		os.RemoveAll(dir)
		return "", errors.NewIO("create", inner, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.RemoveAll(dir)
		return "", errors.NewIO("decompress", path, err)
	}
	if err := out.Close(); err != nil {
		os.RemoveAll(dir)
		return "", errors.NewIO("close", inner, err)
	}
	return inner, nil
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 &&
		((data[0] == 0xFE && data[1] == 0xFF) || (data[0] == 0xFF && data[1] == 0xFE))
}

func fileVersion(t *trs.Transcription) int {
	v, ok := t.Metadata().Get(MetaFileVersion)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
