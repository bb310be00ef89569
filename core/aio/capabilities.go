package aio

import (
	"github.com/brigitte-bigi/annago/core/trs"
)

// Capabilities describes what a file format can represent. Each flag is
// fixed per format; the dispatcher and the CLI compare them against the
// features a transcription actually uses.
type Capabilities struct {
	MultiTiers      bool
	NoTiers         bool
	Metadata        bool
	CtrlVocab       bool
	Media           bool
	Hierarchy       bool
	Point           bool
	Interval        bool
	Disjoint        bool
	AltLocalization bool
	AltTag          bool
	Radius          bool
	Gaps            bool
	Overlaps        bool
}

// capabilityNames pairs every flag with its display name, in a stable order.
var capabilityNames = []struct {
	name string
	get  func(Capabilities) bool
}{
	{"multi-tiers", func(c Capabilities) bool { return c.MultiTiers }},
	{"no-tiers", func(c Capabilities) bool { return c.NoTiers }},
	{"metadata", func(c Capabilities) bool { return c.Metadata }},
	{"ctrl-vocab", func(c Capabilities) bool { return c.CtrlVocab }},
	{"media", func(c Capabilities) bool { return c.Media }},
	{"hierarchy", func(c Capabilities) bool { return c.Hierarchy }},
	{"point", func(c Capabilities) bool { return c.Point }},
	{"interval", func(c Capabilities) bool { return c.Interval }},
	{"disjoint", func(c Capabilities) bool { return c.Disjoint }},
	{"alt-localization", func(c Capabilities) bool { return c.AltLocalization }},
	{"alt-tag", func(c Capabilities) bool { return c.AltTag }},
	{"radius", func(c Capabilities) bool { return c.Radius }},
	{"gaps", func(c Capabilities) bool { return c.Gaps }},
	{"overlaps", func(c Capabilities) bool { return c.Overlaps }},
}

// Names returns the display names of the supported capabilities.
func (c Capabilities) Names() []string {
	var out []string
	for _, cn := range capabilityNames {
		if cn.get(c) {
			out = append(out, cn.name)
		}
	}
	return out
}

// Missing returns the names of the capabilities required but not supported.
func (c Capabilities) Missing(required Capabilities) []string {
	var out []string
	for _, cn := range capabilityNames {
		if cn.get(required) && !cn.get(c) {
			out = append(out, cn.name)
		}
	}
	return out
}

// Required computes the capabilities a transcription actually exercises,
// so a destination format's losses can be reported before writing.
func Required(t *trs.Transcription) Capabilities {
	var req Capabilities
	if t.Len() > 1 {
		req.MultiTiers = true
	}
	if t.IsEmpty() {
		req.NoTiers = true
	}
	if t.Metadata().Len() > 0 {
		req.Metadata = true
	}
	if len(t.Vocabs()) > 0 {
		req.CtrlVocab = true
	}
	if len(t.Media()) > 0 {
		req.Media = true
	}
	if len(t.Hierarchy().Links()) > 0 {
		req.Hierarchy = true
	}
	for _, tier := range t.Tiers() {
		switch {
		case tier.IsPoint():
			req.Point = true
		case tier.IsInterval():
			req.Interval = true
		case tier.IsDisjoint():
			req.Disjoint = true
		}
		if tier.IsInterval() || tier.IsDisjoint() {
			gaps, overlaps := tierGapsOverlaps(tier)
			req.Gaps = req.Gaps || gaps
			req.Overlaps = req.Overlaps || overlaps
		}
		for _, a := range tier.Annotations() {
			if len(a.Location().Alternatives()) > 1 {
				req.AltLocalization = true
			}
			for _, lab := range a.Labels() {
				if lab.Len() > 1 {
					req.AltTag = true
				}
			}
			best := a.Location().Best()
			if best.Start().Radius() > 0 || best.End().Radius() > 0 {
				req.Radius = true
			}
		}
	}
	return req
}

// tierGapsOverlaps scans a tier sorted by start time and reports
// whether consecutive annotations leave uncovered time or share time.
func tierGapsOverlaps(tier *trs.Tier) (gaps, overlaps bool) {
	anns := tier.Annotations()
	if len(anns) < 2 {
		return false, false
	}
	maxEnd := anns[0].Location().Best().End()
	for _, a := range anns[1:] {
		loc := a.Location().Best()
		if loc.Start().After(maxEnd) {
			gaps = true
		}
		if loc.Start().Before(maxEnd) {
			overlaps = true
		}
		if loc.End().After(maxEnd) {
			maxEnd = loc.End()
		}
	}
	return gaps, overlaps
}
