package xra

import (
	"fmt"
	"os"
	"strings"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/encoding"
	"github.com/brigitte-bigi/annago/core/errors"
	"github.com/brigitte-bigi/annago/core/trs"
)

func writeFile(path string, t *trs.Transcription) error {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b, "<Document format=\"xra\" version=\"%s\" name=\"%s\">\n",
		FormatVersion, encoding.EscapeXMLAttr(t.Name()))

	writeMetadata(&b, "  ", t.Metadata(), "")

	for _, m := range t.Media() {
		fmt.Fprintf(&b, "  <Media id=\"%s\" url=\"%s\" mimetype=\"%s\"/>\n",
			encoding.EscapeXMLAttr(m.ID()),
			encoding.EscapeXMLAttr(m.URL()),
			encoding.EscapeXMLAttr(m.MimeType()))
	}

	for _, v := range t.Vocabs() {
		writeVocabulary(&b, v)
	}

	for _, tier := range t.Tiers() {
		writeTier(&b, tier)
	}

	writeHierarchy(&b, t)

	b.WriteString("</Document>\n")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// writeHierarchy emits the links ordered by the child tier's position, so
// output is stable across runs.
func writeHierarchy(b *strings.Builder, t *trs.Transcription) {
	links := t.Hierarchy().Links()
	if len(links) == 0 {
		return
	}
	var ordered []*trs.Link
	for _, tier := range t.Tiers() {
		if link := t.Hierarchy().ParentOf(tier); link != nil {
			ordered = append(ordered, link)
		}
	}
	b.WriteString("  <Hierarchy>\n")
	for _, link := range ordered {
		fmt.Fprintf(b, "    <Link type=\"%s\" from=\"%s\" to=\"%s\"/>\n",
			link.Type,
			encoding.EscapeXMLAttr(link.Parent.ID()),
			encoding.EscapeXMLAttr(link.Child.ID()))
	}
	b.WriteString("  </Hierarchy>\n")
}

// writeMetadata emits the entries of a metadata block, skipping the given
// key. An empty block is omitted entirely.
func writeMetadata(b *strings.Builder, indent string, meta *ann.Metadata, skip string) {
	var keys []string
	for _, key := range meta.Keys() {
		if key != skip {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}
	b.WriteString(indent + "<Metadata>\n")
	for _, key := range keys {
		value := meta.GetDefault(key, "")
		fmt.Fprintf(b, "%s  <Entry key=\"%s\">%s</Entry>\n",
			indent, encoding.EscapeXMLAttr(key), encoding.EscapeXMLText(value))
	}
	b.WriteString(indent + "</Metadata>\n")
}

func writeVocabulary(b *strings.Builder, v *trs.CtrlVocab) {
	fmt.Fprintf(b, "  <Vocabulary id=\"%s\" name=\"%s\">\n",
		encoding.EscapeXMLAttr(v.Metadata().GetDefault(ann.MetaKeyID, "")),
		encoding.EscapeXMLAttr(v.Name()))
	for _, entry := range v.Entries() {
		b.WriteString("    <Entry")
		writeTagType(b, entry.Tag)
		if entry.Description != "" {
			fmt.Fprintf(b, " description=\"%s\"", encoding.EscapeXMLAttr(entry.Description))
		}
		fmt.Fprintf(b, ">%s</Entry>\n", encoding.EscapeXMLText(entry.Tag.Content()))
	}
	b.WriteString("  </Vocabulary>\n")
}

func writeTier(b *strings.Builder, tier *trs.Tier) {
	fmt.Fprintf(b, "  <Tier id=\"%s\" tiername=\"%s\"",
		encoding.EscapeXMLAttr(tier.ID()), encoding.EscapeXMLAttr(tier.Name()))
	if m := tier.Media(); m != nil {
		fmt.Fprintf(b, " media=\"%s\"", encoding.EscapeXMLAttr(m.ID()))
	}
	if v := tier.CtrlVocab(); v != nil {
		fmt.Fprintf(b, " vocab=\"%s\"", encoding.EscapeXMLAttr(v.Name()))
	}
	b.WriteString(">\n")
	writeMetadata(b, "    ", tier.Metadata(), ann.MetaKeyID)

	for _, a := range tier.Annotations() {
		writeAnnotation(b, a)
	}
	b.WriteString("  </Tier>\n")
}

func writeAnnotation(b *strings.Builder, a *ann.Annotation) {
	fmt.Fprintf(b, "    <Annotation id=\"%s\">\n", encoding.EscapeXMLAttr(a.ID()))
	writeMetadata(b, "      ", a.Metadata(), ann.MetaKeyID)

	b.WriteString("      <Location>\n")
	for _, alt := range a.Location().Alternatives() {
		writeLocalization(b, "        ", alt.Loc, alt.Score, alt.Scored)
	}
	b.WriteString("      </Location>\n")

	for _, label := range a.Labels() {
		b.WriteString("      <Label>\n")
		for _, st := range label.Tags() {
			b.WriteString("        <Tag")
			writeTagType(b, st.Tag)
			if st.Scored {
				fmt.Fprintf(b, " score=\"%s\"", encoding.FormatFloat(st.Score))
			}
			fmt.Fprintf(b, ">%s</Tag>\n", encoding.EscapeXMLText(st.Tag.Content()))
		}
		b.WriteString("      </Label>\n")
	}
	b.WriteString("    </Annotation>\n")
}

func writeTagType(b *strings.Builder, tag ann.Tag) {
	if tag.Type() != ann.TagString {
		fmt.Fprintf(b, " type=\"%s\"", tag.Type().String())
	}
}

func writeLocalization(b *strings.Builder, indent string, loc ann.Localization, score float64, scored bool) {
	scoreAttr := ""
	if scored {
		scoreAttr = fmt.Sprintf(" score=\"%s\"", encoding.FormatFloat(score))
	}
	switch l := loc.(type) {
	case *ann.Point:
		fmt.Fprintf(b, "%s<Point %s%s/>\n", indent, pointAttrs(l), scoreAttr)
	case *ann.Interval:
		fmt.Fprintf(b, "%s<Interval%s>\n", indent, scoreAttr)
		writeIntervalBounds(b, indent+"  ", l)
		fmt.Fprintf(b, "%s</Interval>\n", indent)
	case *ann.Disjoint:
		fmt.Fprintf(b, "%s<Disjoint%s>\n", indent, scoreAttr)
		for _, iv := range l.Intervals() {
			fmt.Fprintf(b, "%s  <Interval>\n", indent)
			writeIntervalBounds(b, indent+"    ", iv)
			fmt.Fprintf(b, "%s  </Interval>\n", indent)
		}
		fmt.Fprintf(b, "%s</Disjoint>\n", indent)
	}
}

func writeIntervalBounds(b *strings.Builder, indent string, iv *ann.Interval) {
	fmt.Fprintf(b, "%s<Begin %s/>\n", indent, pointAttrs(iv.Begin()))
	fmt.Fprintf(b, "%s<End %s/>\n", indent, pointAttrs(iv.End()))
}

// pointAttrs renders the midpoint and, when meaningful, the radius.
func pointAttrs(p *ann.Point) string {
	attrs := fmt.Sprintf("midpoint=\"%s\"", encoding.FormatFloat(p.Midpoint()))
	if p.Radius() > 0 {
		attrs += fmt.Sprintf(" radius=\"%s\"", encoding.FormatFloat(p.Radius()))
	}
	return attrs
}
