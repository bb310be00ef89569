package rawtxt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/trs"
)

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte("first utterance\n\n  second utterance  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	h := &Handler{}
	trans, err := h.Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	tier := trans.Tier(TierName)
	if tier == nil || !tier.IsPoint() {
		t.Fatal("reading must produce one point tier")
	}
	if tier.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (blank lines skipped)", tier.Len())
	}
	if got := tier.At(0).BestTag().Content(); got != "first utterance" {
		t.Errorf("first line = %q", got)
	}
	if got := tier.At(1).BestTag().Content(); got != "second utterance" {
		t.Errorf("second line = %q, want trimmed text", got)
	}
	if got := tier.At(1).Location().Start().Midpoint(); got != 2 {
		t.Errorf("second midpoint = %v, want the line rank 2", got)
	}
}

func TestWrite(t *testing.T) {
	trans := trs.NewTranscription("doc")
	tier, _ := trans.NewTier("T")
	for i, text := range []string{"hello", "world"} {
		p, _ := ann.NewPoint(float64(i+1), 0)
		loc, err := ann.NewLocation(p)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := tier.CreateAnnotation(loc, ann.NewLabel(ann.NewTag(text))); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	h := &Handler{}
	if err := h.Write(path, trans); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\nworld\n" {
		t.Errorf("written content = %q", data)
	}
}

func TestDetectAlwaysTrue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anything.bin")
	if err := os.WriteFile(path, []byte{0x00, 0x01}, 0644); err != nil {
		t.Fatal(err)
	}
	h := &Handler{}
	res, err := h.Detect(path)
	if err != nil || !res.Detected {
		t.Errorf("Detect() = %+v, %v", res, err)
	}
	res, _ = h.Detect(filepath.Join(t.TempDir(), "absent"))
	if res.Detected {
		t.Error("a missing file must not be detected")
	}
}
