package trs

import (
	"fmt"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
)

// LinkType is the kind of constraint between a parent and a child tier.
type LinkType string

// Link type constants.
const (
	// TimeAlignment requires every child annotation to be non-strictly
	// contained in some parent annotation: the child refines the parent's
	// segmentation over the same coverage.
	TimeAlignment LinkType = "TimeAlignment"
	// TimeAssociation requires a one-to-one time correspondence: equal
	// annotation counts with pairwise fuzzy-equal spans.
	TimeAssociation LinkType = "TimeAssociation"
)

// IsValid reports whether the link type is one of the two constraints.
func (lt LinkType) IsValid() bool {
	return lt == TimeAlignment || lt == TimeAssociation
}

// Link is one registered parent/child constraint.
type Link struct {
	Type   LinkType
	Parent *Tier
	Child  *Tier
}

// Hierarchy is the graph of links owned by a Transcription. A child tier
// has at most one parent; a parent may constrain any number of children.
type Hierarchy struct {
	links map[*Tier]*Link // keyed by child
}

// NewHierarchy creates an empty hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{links: make(map[*Tier]*Link)}
}

// ParentOf returns the link constraining the tier as a child, or nil.
func (h *Hierarchy) ParentOf(child *Tier) *Link {
	return h.links[child]
}

// ChildrenOf returns all links where the tier is the parent.
func (h *Hierarchy) ChildrenOf(parent *Tier) []*Link {
	var children []*Link
	for _, link := range h.links {
		if link.Parent == parent {
			children = append(children, link)
		}
	}
	return children
}

// Links returns all registered links.
func (h *Hierarchy) Links() []*Link {
	links := make([]*Link, 0, len(h.links))
	for _, link := range h.links {
		links = append(links, link)
	}
	return links
}

// add registers a link after the Transcription validated it.
func (h *Hierarchy) add(link *Link) {
	h.links[link.Child] = link
}

// remove drops the link constraining the child, if any.
func (h *Hierarchy) remove(child *Tier) {
	delete(h.links, child)
}

// removeTier drops every link the tier participates in, as parent or
// child, leaving no dangling reference.
func (h *Hierarchy) removeTier(tier *Tier) {
	delete(h.links, tier)
	for child, link := range h.links {
		if link.Parent == tier {
			delete(h.links, child)
		}
	}
}

// isAncestor reports whether candidate is reachable from tier following
// parent links. Used to reject cyclic link creation.
func (h *Hierarchy) isAncestor(tier, candidate *Tier) bool {
	for link := h.links[tier]; link != nil; link = h.links[link.Parent] {
		if link.Parent == candidate {
			return true
		}
	}
	return false
}

// validateLink checks the constraint over a time range. A nil range means
// a full check; otherwise only child annotations overlapping [from, to]
// are verified, so boundary edits cost O(affected region).
func validateLink(link *Link, from, to *ann.Point) error {
	switch link.Type {
	case TimeAlignment:
		return validateAlignment(link, from, to)
	case TimeAssociation:
		return validateAssociation(link)
	}
	return errors.NewValidation("hierarchy", "unknown link type "+string(link.Type))
}

// validateAlignment checks containment of child annotations in parent
// annotations, restricted to the affected range when given.
func validateAlignment(link *Link, from, to *ann.Point) error {
	parent, child := link.Parent, link.Child
	anns := child.Annotations()
	if from != nil && to != nil {
		anns = affectedAnnotations(child, from, to)
	}
	for _, a := range anns {
		loc := a.Location().Best()
		if !containedInSome(parent, loc) {
			return errors.NewHierarchy(string(TimeAlignment), parent.Name(), child.Name(),
				fmt.Sprintf("child annotation %v is not contained in any parent annotation", loc))
		}
	}
	return nil
}

// affectedAnnotations collects the child annotations touching [from, to],
// inclusive at both bounds. Find's search contract excludes an annotation
// beginning exactly at the span end, which a validation sweep must not:
// a child point sitting on the edited region's end bound is affected too.
func affectedAnnotations(child *Tier, from, to *ann.Point) []*ann.Annotation {
	var out []*ann.Annotation
	for _, a := range child.Annotations() {
		loc := a.Location().Best()
		if loc.Start().After(to) {
			break
		}
		if !loc.End().Before(from) {
			out = append(out, a)
		}
	}
	return out
}

// containedInSome reports whether the localization is non-strictly
// contained in the span of at least one parent annotation.
func containedInSome(parent *Tier, loc ann.Localization) bool {
	candidates := parent.Find(loc.Start(), loc.End(), true)
	for _, p := range candidates {
		ploc := p.Location().Best()
		if !loc.Start().Before(ploc.Start()) && !loc.End().After(ploc.End()) {
			return true
		}
	}
	return false
}

// validateAssociation checks the one-to-one correspondence. Counts make a
// range restriction meaningless, so the check is always pairwise complete.
func validateAssociation(link *Link) error {
	parent, child := link.Parent, link.Child
	if parent.Len() != child.Len() {
		return errors.NewHierarchy(string(TimeAssociation), parent.Name(), child.Name(),
			fmt.Sprintf("annotation counts differ: %d vs %d", parent.Len(), child.Len()))
	}
	for k := 0; k < parent.Len(); k++ {
		ploc := parent.At(k).Location().Best()
		cloc := child.At(k).Location().Best()
		if !ploc.Start().Equal(cloc.Start()) || !ploc.End().Equal(cloc.End()) {
			return errors.NewHierarchy(string(TimeAssociation), parent.Name(), child.Name(),
				fmt.Sprintf("annotations at index %d do not correspond: %v vs %v", k, ploc, cloc))
		}
	}
	return nil
}
