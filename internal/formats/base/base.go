// Package base provides common functionality shared by the format adapters:
// extension and content-marker detection, and text loading with encoding
// normalization.
package base

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/brigitte-bigi/annago/core/aio"
	"github.com/brigitte-bigi/annago/core/errors"
)

// DetectConfig configures DetectFile.
type DetectConfig struct {
	// Extensions lists the valid file extensions (with the dot).
	Extensions []string
	// ContentMarkers are strings that must all be present in the content.
	ContentMarkers []string
	// FormatName is reported in the DetectResult.
	FormatName string
	// CustomValidator optionally inspects the raw content.
	CustomValidator func(path string, data []byte) (bool, string, error)
}

// DetectFile checks the path against the extension list, the content
// markers, and the optional validator. It never returns an error for a
// non-matching file, only a negative result with a reason.
func DetectFile(path string, config DetectConfig) (*aio.DetectResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return &aio.DetectResult{Detected: false, Reason: fmt.Sprintf("cannot stat: %v", err)}, nil
	}
	if info.IsDir() {
		return &aio.DetectResult{Detected: false, Reason: "path is a directory"}, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	extensionMatch := false
	for _, valid := range config.Extensions {
		if ext == strings.ToLower(valid) {
			extensionMatch = true
			break
		}
	}

	if len(config.ContentMarkers) > 0 || config.CustomValidator != nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return &aio.DetectResult{Detected: false, Reason: fmt.Sprintf("cannot read: %v", err)}, nil
		}

		if len(config.ContentMarkers) > 0 {
			content, err := decodeText(data)
			if err == nil {
				all := true
				for _, marker := range config.ContentMarkers {
					if !strings.Contains(content, marker) {
						all = false
						break
					}
				}
				if all {
					return &aio.DetectResult{
						Detected: true,
						Format:   config.FormatName,
						Reason:   fmt.Sprintf("%s markers detected", config.FormatName),
					}, nil
				}
			}
		}

		if config.CustomValidator != nil {
			detected, reason, err := config.CustomValidator(path, data)
			if err != nil {
				return &aio.DetectResult{Detected: false, Reason: fmt.Sprintf("validation error: %v", err)}, nil
			}
			if detected {
				return &aio.DetectResult{
					Detected: true,
					Format:   config.FormatName,
					Reason:   reason,
				}, nil
			}
		}
	}

	if extensionMatch {
		return &aio.DetectResult{
			Detected: true,
			Format:   config.FormatName,
			Reason:   fmt.Sprintf("%s file extension detected", config.FormatName),
		}, nil
	}
	return &aio.DetectResult{Detected: false, Reason: fmt.Sprintf("not a %s file", config.FormatName)}, nil
}

// ReadText reads a text file, decoding UTF-16 when a BOM announces it,
// stripping a UTF-8 BOM, and normalizing line endings to \n.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIO("read", path, err)
	}
	content, err := decodeText(data)
	if err != nil {
		return "", errors.NewEncoding(path, "UTF-8", nil)
	}
	return content, nil
}

// ReadLines reads a text file and splits it into lines.
func ReadLines(path string) ([]string, error) {
	content, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(content, "\n"), nil
}

func decodeText(data []byte) (string, error) {
	if len(data) >= 2 && ((data[0] == 0xFE && data[1] == 0xFF) || (data[0] == 0xFF && data[1] == 0xFE)) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		decoded, err := dec.Bytes(data)
		if err != nil {
			return "", err
		}
		data = decoded
	}
	data = trimUTF8BOM(data)
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s, nil
}

func trimUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
