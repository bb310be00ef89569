package base

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetectFile(t *testing.T) {
	byExt := DetectConfig{Extensions: []string{".xra"}, FormatName: "xra"}
	byMarker := DetectConfig{
		ContentMarkers: []string{"ooTextFile", "TextGrid"},
		FormatName:     "textgrid",
	}

	t.Run("extension match", func(t *testing.T) {
		path := writeFile(t, "a.xra", []byte("<Document/>"))
		res, err := DetectFile(path, byExt)
		if err != nil || !res.Detected || res.Format != "xra" {
			t.Errorf("DetectFile() = %+v, %v", res, err)
		}
	})

	t.Run("extension mismatch", func(t *testing.T) {
		path := writeFile(t, "a.csv", []byte("x"))
		res, _ := DetectFile(path, byExt)
		if res.Detected {
			t.Errorf("DetectFile() = %+v, want not detected", res)
		}
	})

	t.Run("content markers", func(t *testing.T) {
		path := writeFile(t, "a.weird", []byte("File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n"))
		res, _ := DetectFile(path, byMarker)
		if !res.Detected || res.Format != "textgrid" {
			t.Errorf("DetectFile() = %+v", res)
		}
	})

	t.Run("partial markers", func(t *testing.T) {
		path := writeFile(t, "a.weird", []byte("ooTextFile only\n"))
		res, _ := DetectFile(path, byMarker)
		if res.Detected {
			t.Errorf("DetectFile() = %+v, want not detected", res)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		res, err := DetectFile(filepath.Join(t.TempDir(), "absent"), byExt)
		if err != nil || res.Detected {
			t.Errorf("DetectFile() = %+v, %v", res, err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		res, _ := DetectFile(t.TempDir(), byExt)
		if res.Detected {
			t.Error("a directory must not be detected")
		}
	})

	t.Run("custom validator", func(t *testing.T) {
		config := DetectConfig{
			FormatName: "adb",
			CustomValidator: func(path string, data []byte) (bool, string, error) {
				return len(data) > 0 && data[0] == 'S', "magic byte", nil
			},
		}
		path := writeFile(t, "a.weird", []byte("SQLite format 3\x00"))
		res, _ := DetectFile(path, config)
		if !res.Detected || res.Reason != "magic byte" {
			t.Errorf("DetectFile() = %+v", res)
		}
	})
}

func TestReadText(t *testing.T) {
	t.Run("plain utf8", func(t *testing.T) {
		path := writeFile(t, "a.txt", []byte("line one\r\nline two\rline three\n"))
		got, err := ReadText(path)
		if err != nil {
			t.Fatal(err)
		}
		if got != "line one\nline two\nline three\n" {
			t.Errorf("ReadText() = %q", got)
		}
	})

	t.Run("utf8 bom stripped", func(t *testing.T) {
		path := writeFile(t, "a.txt", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'})
		got, err := ReadText(path)
		if err != nil || got != "hi" {
			t.Errorf("ReadText() = %q, %v", got, err)
		}
	})

	t.Run("utf16le decoded", func(t *testing.T) {
		units := utf16.Encode([]rune("héllo\n"))
		data := []byte{0xFF, 0xFE}
		for _, u := range units {
			data = append(data, byte(u), byte(u>>8))
		}
		path := writeFile(t, "a.txt", data)
		got, err := ReadText(path)
		if err != nil || got != "héllo\n" {
			t.Errorf("ReadText() = %q, %v", got, err)
		}
	})

	t.Run("utf16be decoded", func(t *testing.T) {
		units := utf16.Encode([]rune("hi"))
		data := []byte{0xFE, 0xFF}
		for _, u := range units {
			data = append(data, byte(u>>8), byte(u))
		}
		path := writeFile(t, "a.txt", data)
		got, err := ReadText(path)
		if err != nil || got != "hi" {
			t.Errorf("ReadText() = %q, %v", got, err)
		}
	})
}

func TestReadLines(t *testing.T) {
	path := writeFile(t, "a.txt", []byte("a\nb\n"))
	lines, err := ReadLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 || lines[0] != "a" || lines[1] != "b" || lines[2] != "" {
		t.Errorf("ReadLines() = %q", lines)
	}
}
