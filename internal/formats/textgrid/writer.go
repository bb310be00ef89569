package textgrid

import (
	"fmt"
	"os"
	"strings"

	"github.com/brigitte-bigi/annago/core/encoding"
	"github.com/brigitte-bigi/annago/core/errors"
	"github.com/brigitte-bigi/annago/core/trs"
)

// writeFile emits the long ooTextFile variant. Interval tiers are padded
// with empty-text intervals so every tier covers the whole time range, as
// Praat requires.
func writeFile(path string, t *trs.Transcription) error {
	xmin, xmax := timeRange(t)

	var b strings.Builder
	b.WriteString("File type = \"ooTextFile\"\n")
	b.WriteString("Object class = \"TextGrid\"\n\n")
	fmt.Fprintf(&b, "xmin = %s\n", encoding.FormatFloat(xmin))
	fmt.Fprintf(&b, "xmax = %s\n", encoding.FormatFloat(xmax))
	b.WriteString("tiers? <exists>\n")
	fmt.Fprintf(&b, "size = %d\n", t.Len())
	b.WriteString("item []:\n")

	for i, tier := range t.Tiers() {
		fmt.Fprintf(&b, "    item [%d]:\n", i+1)
		if tier.IsPoint() {
			writePointTier(&b, tier, xmin, xmax)
		} else if err := writeIntervalTier(&b, tier, xmin, xmax); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// timeRange computes the covered span over all tiers, [0,1] for an empty
// transcription so the output stays loadable.
func timeRange(t *trs.Transcription) (float64, float64) {
	first := true
	var xmin, xmax float64
	for _, tier := range t.Tiers() {
		if tier.IsEmpty() {
			continue
		}
		lo := tier.StartPoint().Midpoint()
		hi := tier.EndPoint().Midpoint()
		if first {
			xmin, xmax = lo, hi
			first = false
			continue
		}
		if lo < xmin {
			xmin = lo
		}
		if hi > xmax {
			xmax = hi
		}
	}
	if first || xmin == xmax {
		return 0, 1
	}
	return xmin, xmax
}

type entry struct {
	xmin, xmax float64
	text       string
}

func writeIntervalTier(b *strings.Builder, tier *trs.Tier, xmin, xmax float64) error {
	// collect annotations, inserting fillers over the gaps
	var entries []entry
	cursor := xmin
	for _, a := range tier.Annotations() {
		loc := a.Location().Best()
		lo := loc.Start().Midpoint()
		hi := loc.End().Midpoint()
		if lo < cursor {
			// a Praat IntervalTier is a sequential partition of the time range
			return errors.NewUnsupported("overlapping annotations",
				"tier "+tier.Name()+" cannot be written as a Praat IntervalTier")
		}
		if lo > cursor {
			entries = append(entries, entry{cursor, lo, ""})
		}
		entries = append(entries, entry{lo, hi, a.BestTag().Content()})
		if hi > cursor {
			cursor = hi
		}
	}
	if cursor < xmax {
		entries = append(entries, entry{cursor, xmax, ""})
	}

	b.WriteString("        class = \"IntervalTier\"\n")
	fmt.Fprintf(b, "        name = %s\n", encoding.QuotePraat(tier.Name()))
	fmt.Fprintf(b, "        xmin = %s\n", encoding.FormatFloat(xmin))
	fmt.Fprintf(b, "        xmax = %s\n", encoding.FormatFloat(xmax))
	fmt.Fprintf(b, "        intervals: size = %d\n", len(entries))
	for i, e := range entries {
		fmt.Fprintf(b, "        intervals [%d]:\n", i+1)
		fmt.Fprintf(b, "            xmin = %s\n", encoding.FormatFloat(e.xmin))
		fmt.Fprintf(b, "            xmax = %s\n", encoding.FormatFloat(e.xmax))
		fmt.Fprintf(b, "            text = %s\n", encoding.QuotePraat(e.text))
	}
	return nil
}

func writePointTier(b *strings.Builder, tier *trs.Tier, xmin, xmax float64) {
	b.WriteString("        class = \"TextTier\"\n")
	fmt.Fprintf(b, "        name = %s\n", encoding.QuotePraat(tier.Name()))
	fmt.Fprintf(b, "        xmin = %s\n", encoding.FormatFloat(xmin))
	fmt.Fprintf(b, "        xmax = %s\n", encoding.FormatFloat(xmax))
	fmt.Fprintf(b, "        points: size = %d\n", tier.Len())
	for i, a := range tier.Annotations() {
		fmt.Fprintf(b, "        points [%d]:\n", i+1)
		fmt.Fprintf(b, "            number = %s\n", encoding.FormatFloat(a.Location().Start().Midpoint()))
		fmt.Fprintf(b, "            mark = %s\n", encoding.QuotePraat(a.BestTag().Content()))
	}
}
