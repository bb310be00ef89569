package textgrid

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
	"github.com/brigitte-bigi/annago/core/trs"
)

const longSample = `File type = "ooTextFile"
Object class = "TextGrid"

xmin = 0
xmax = 2
tiers? <exists>
size = 2
item []:
    item [1]:
        class = "IntervalTier"
        name = "Tokens"
        xmin = 0
        xmax = 2
        intervals: size = 3
        intervals [1]:
            xmin = 0
            xmax = 0.5
            text = "the"
        intervals [2]:
            xmin = 0.5
            xmax = 1
            text = ""
        intervals [3]:
            xmin = 1
            xmax = 2
            text = "cat ""fluffy"""
    item [2]:
        class = "TextTier"
        name = "Pitch"
        xmin = 0
        xmax = 2
        points: size = 1
        points [1]:
            number = 0.75
            mark = "120"
`

const shortSample = `File type = "ooTextFile"
Object class = "TextGrid"

0
2
<exists>
1
"IntervalTier"
"Tokens"
0
2
2
0
0.5
"the"
0.5
2
"cat"
`

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadLong(t *testing.T) {
	h := &Handler{}
	trans, err := h.Read(writeSample(t, "sample.TextGrid", longSample))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if trans.Len() != 2 {
		t.Fatalf("tier count = %d, want 2", trans.Len())
	}

	tokens := trans.Tier("Tokens")
	if tokens == nil || !tokens.IsInterval() {
		t.Fatal("Tokens must be an interval tier")
	}
	// the empty interval is a gap, not an annotation
	if tokens.Len() != 2 {
		t.Fatalf("Tokens Len() = %d, want 2", tokens.Len())
	}
	if got := tokens.At(0).BestTag().Content(); got != "the" {
		t.Errorf("first text = %q", got)
	}
	if got := tokens.At(1).BestTag().Content(); got != `cat "fluffy"` {
		t.Errorf("quoted text = %q", got)
	}
	loc := tokens.At(1).Location().Best()
	if loc.Start().Midpoint() != 1 || loc.End().Midpoint() != 2 {
		t.Errorf("bounds = [%v,%v]", loc.Start().Midpoint(), loc.End().Midpoint())
	}

	pitch := trans.Tier("Pitch")
	if pitch == nil || !pitch.IsPoint() {
		t.Fatal("Pitch must be a point tier")
	}
	if pitch.Len() != 1 || pitch.At(0).Location().Start().Midpoint() != 0.75 {
		t.Errorf("Pitch = %d annotations", pitch.Len())
	}
}

func TestReadShort(t *testing.T) {
	h := &Handler{}
	trans, err := h.Read(writeSample(t, "sample.TextGrid", shortSample))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	tokens := trans.Tier("Tokens")
	if tokens == nil || tokens.Len() != 2 {
		t.Fatalf("Tokens = %v", tokens)
	}
	loc := tokens.At(1).Location().Best()
	if loc.Start().Midpoint() != 0.5 || loc.End().Midpoint() != 2 {
		t.Errorf("bounds = [%v,%v]", loc.Start().Midpoint(), loc.End().Midpoint())
	}
}

func TestReadUTF16(t *testing.T) {
	units := utf16.Encode([]rune(longSample))
	data := []byte{0xFF, 0xFE}
	for _, u := range units {
		data = append(data, byte(u), byte(u>>8))
	}
	h := &Handler{}
	trans, err := h.Read(writeSample(t, "sample.TextGrid", string(data)))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if trans.Tier("Tokens") == nil {
		t.Error("UTF-16 content not decoded")
	}
}

func TestReadMalformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
		line    int
	}{
		{"not a textgrid", "File type = \"ooTextFile\"\nObject class = \"Pitch\"\n", 2},
		{"bad number", strings.Replace(longSample, "xmax = 0.5", "xmax = oops", 1), 17},
		{"text before bounds", "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n\nxmin = 0\nclass = \"IntervalTier\"\nname = \"T\"\nintervals [1]:\ntext = \"x\"\n", 0},
	}
	h := &Handler{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Read(writeSample(t, "bad.TextGrid", tc.content))
			var parseErr *errors.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error = %v, want ParseError", err)
			}
			if tc.line > 0 && parseErr.Line != tc.line {
				t.Errorf("line = %d, want %d", parseErr.Line, tc.line)
			}
		})
	}
}

func TestReadMultilineText(t *testing.T) {
	content := "File type = \"ooTextFile\"\n" +
		"Object class = \"TextGrid\"\n\n" +
		"xmin = 0\nxmax = 2\ntiers? <exists>\nsize = 1\nitem []:\n" +
		"    item [1]:\n" +
		"        class = \"IntervalTier\"\n" +
		"        name = \"Notes\"\n" +
		"        xmin = 0\nxmax = 2\n" +
		"        intervals: size = 1\n" +
		"        intervals [1]:\n" +
		"            xmin = 0\n            xmax = 2\n" +
		"            text = \"first line\nsecond \"\"quoted\"\" line\"\n"
	h := &Handler{}
	trans, err := h.Read(writeSample(t, "multi.TextGrid", content))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	notes := trans.Tier("Notes")
	if notes == nil || notes.Len() != 1 {
		t.Fatalf("Notes = %v", notes)
	}
	want := "first line\nsecond \"quoted\" line"
	if got := notes.At(0).BestTag().Content(); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestReadUnterminatedText(t *testing.T) {
	content := "File type = \"ooTextFile\"\n" +
		"Object class = \"TextGrid\"\n\n" +
		"xmin = 0\nxmax = 2\ntiers? <exists>\nsize = 1\nitem []:\n" +
		"    item [1]:\n" +
		"        class = \"IntervalTier\"\n" +
		"        name = \"Notes\"\n" +
		"        xmin = 0\nxmax = 2\n" +
		"        intervals: size = 1\n" +
		"        intervals [1]:\n" +
		"            xmin = 0\n            xmax = 2\n" +
		"            text = \"never closed\n"
	h := &Handler{}
	_, err := h.Read(writeSample(t, "open.TextGrid", content))
	var parseErr *errors.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
}

func TestWriteOverlappingIntervalsRejected(t *testing.T) {
	src := trs.NewTranscription("doc")
	tier, _ := src.NewTier("Tokens")
	tier.AllowOverlaps()
	for _, e := range [][2]float64{{0, 2}, {1, 3}} {
		begin, _ := ann.NewPoint(e[0], 0)
		end, _ := ann.NewPoint(e[1], 0)
		iv, err := ann.NewInterval(begin, end)
		if err != nil {
			t.Fatal(err)
		}
		loc, err := ann.NewLocation(iv)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := tier.CreateAnnotation(loc, ann.NewLabel(ann.NewTag("x"))); err != nil {
			t.Fatal(err)
		}
	}

	h := &Handler{}
	err := h.Write(filepath.Join(t.TempDir(), "out.TextGrid"), src)
	if err == nil {
		t.Fatal("overlapping intervals cannot become a Praat IntervalTier")
	}
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	src := trs.NewTranscription("doc")
	tokens, _ := src.NewTier("Tokens")
	for _, e := range []struct {
		b, e float64
		text string
	}{{0.5, 1, "the"}, {1.5, 2, "cat"}} {
		begin, _ := ann.NewPoint(e.b, 0)
		end, _ := ann.NewPoint(e.e, 0)
		iv, err := ann.NewInterval(begin, end)
		if err != nil {
			t.Fatal(err)
		}
		loc, err := ann.NewLocation(iv)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := tokens.CreateAnnotation(loc, ann.NewLabel(ann.NewTag(e.text))); err != nil {
			t.Fatal(err)
		}
	}
	pitch, _ := src.NewTier("Pitch")
	p, _ := ann.NewPoint(0.75, 0)
	loc, err := ann.NewLocation(p)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pitch.CreateAnnotation(loc, ann.NewLabel(ann.NewTag("120"))); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.TextGrid")
	h := &Handler{}
	if err := h.Write(path, src); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// the gap between the annotations must be padded with an empty interval
	if !strings.Contains(string(data), "text = \"\"") {
		t.Error("gap filler interval missing")
	}

	got, err := h.Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	gt := got.Tier("Tokens")
	if gt == nil || gt.Len() != 2 {
		t.Fatalf("Tokens after round trip = %v", gt)
	}
	for i := 0; i < 2; i++ {
		if !gt.At(i).Equal(tokens.At(i)) {
			t.Errorf("annotation %d differs after round trip", i)
		}
	}
	gp := got.Tier("Pitch")
	if gp == nil || gp.Len() != 1 || gp.At(0).Location().Start().Midpoint() != 0.75 {
		t.Errorf("Pitch after round trip = %v", gp)
	}
}

func TestDetect(t *testing.T) {
	h := &Handler{}
	res, err := h.Detect(writeSample(t, "sample.TextGrid", longSample))
	if err != nil || !res.Detected {
		t.Errorf("Detect() = %+v, %v", res, err)
	}
	res, _ = h.Detect(writeSample(t, "other.csv", "a,b,c\n"))
	if res.Detected {
		t.Errorf("Detect() on csv = %+v", res)
	}
}
