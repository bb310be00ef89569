package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/trs"
)

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

const csvSample = "IPU,0.0,2.0,speech\nTokens,0.0,1.0,the\nTokens,1.0,2.0,cat\n"

func TestConvertCmd_Run(t *testing.T) {
	tests := []struct {
		name    string
		outName string
		wantErr bool
	}{
		{name: "csv to textgrid", outName: "out.TextGrid", wantErr: false},
		{name: "csv to xra", outName: "out.xra", wantErr: false},
		{name: "unknown target extension", outName: "out.nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := createTestFile(t, dir, "sample.csv", csvSample)
			out := filepath.Join(dir, tt.outName)

			cmd := &ConvertCmd{In: in, Out: out}
			err := cmd.Run()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if _, err := os.Stat(out); err != nil {
					t.Errorf("output file not written: %v", err)
				}
			}
		})
	}
}

func TestConvertCmd_MissingInput(t *testing.T) {
	dir := t.TempDir()
	cmd := &ConvertCmd{
		In:  filepath.Join(dir, "absent.csv"),
		Out: filepath.Join(dir, "out.xra"),
	}
	if err := cmd.Run(); err == nil {
		t.Error("Run() with missing input should fail")
	}
}

func TestInfoCmd_Run(t *testing.T) {
	dir := t.TempDir()
	in := createTestFile(t, dir, "sample.csv", csvSample)

	cmd := &InfoCmd{Path: in}
	if err := cmd.Run(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestDetectCmd_Run(t *testing.T) {
	dir := t.TempDir()
	in := createTestFile(t, dir, "sample.csv", csvSample)

	cmd := &DetectCmd{Path: in}
	if err := cmd.Run(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestFormatsCmd_Run(t *testing.T) {
	cmd := &FormatsCmd{}
	if err := cmd.Run(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestVersionCmd_Run(t *testing.T) {
	cmd := &VersionCmd{}
	if err := cmd.Run(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestTierKind(t *testing.T) {
	trans := trs.NewTranscription("kinds")

	empty, err := trans.NewTier("Empty")
	if err != nil {
		t.Fatal(err)
	}
	if got := tierKind(empty); got != "empty" {
		t.Errorf("tierKind(empty tier) = %q", got)
	}

	points, err := trans.NewTier("Points")
	if err != nil {
		t.Fatal(err)
	}
	p, err := ann.NewPoint(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	loc, err := ann.NewLocation(p)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := points.CreateAnnotation(loc, ann.NewLabel(ann.NewTag("x"))); err != nil {
		t.Fatal(err)
	}
	if got := tierKind(points); got != "point" {
		t.Errorf("tierKind(point tier) = %q", got)
	}
}
