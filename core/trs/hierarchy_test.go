package trs

import (
	"testing"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
)

// buildAligned returns a transcription with an "IPU" parent tier [0,3]
// and a "Tokens" child tier [0,1], [1,2], [2,3].
func buildAligned(t *testing.T) (*Transcription, *Tier, *Tier) {
	t.Helper()
	trans := NewTranscription("sample")

	parent, err := trans.NewTier("IPU")
	if err != nil {
		t.Fatalf("NewTier(IPU) error = %v", err)
	}
	if _, err := parent.CreateAnnotation(intervalLoc(t, 0, 3),
		ann.NewLabel(ann.NewTag("ipu_1"))); err != nil {
		t.Fatalf("CreateAnnotation() error = %v", err)
	}

	child, err := trans.NewTier("Tokens")
	if err != nil {
		t.Fatalf("NewTier(Tokens) error = %v", err)
	}
	fillTier(t, child)
	return trans, parent, child
}

func TestAddLinkTimeAlignment(t *testing.T) {
	trans, parent, child := buildAligned(t)

	if err := trans.AddLink(TimeAlignment, parent, child); err != nil {
		t.Fatalf("AddLink() error = %v", err)
	}
	link := trans.Hierarchy().ParentOf(child)
	if link == nil || link.Parent != parent || link.Type != TimeAlignment {
		t.Errorf("ParentOf(child) = %+v", link)
	}
}

func TestAddLinkTimeAlignmentViolationLeavesTiersUnmodified(t *testing.T) {
	trans, parent, child := buildAligned(t)
	// extend the child past the parent's coverage
	if _, err := child.CreateAnnotation(intervalLoc(t, 3, 4),
		ann.NewLabel(ann.NewTag("d"))); err != nil {
		t.Fatalf("CreateAnnotation() error = %v", err)
	}

	err := trans.AddLink(TimeAlignment, parent, child)
	if err == nil {
		t.Fatal("link creation with uncovered child annotations must fail")
	}
	if !errors.Is(err, errors.ErrHierarchy) {
		t.Errorf("error = %v, want ErrHierarchy", err)
	}
	if trans.Hierarchy().ParentOf(child) != nil {
		t.Error("failed link must not be registered")
	}
	if parent.Len() != 1 || child.Len() != 4 {
		t.Error("failed link creation must leave the tiers unmodified")
	}
}

func TestAlignmentBlocksChildEdits(t *testing.T) {
	trans, parent, child := buildAligned(t)
	if err := trans.AddLink(TimeAlignment, parent, child); err != nil {
		t.Fatalf("AddLink() error = %v", err)
	}

	t.Run("out-of-coverage append rejected", func(t *testing.T) {
		_, err := child.CreateAnnotation(intervalLoc(t, 3, 4))
		if err == nil {
			t.Fatal("append past the parent coverage must fail")
		}
		if !errors.Is(err, errors.ErrHierarchy) {
			t.Errorf("error = %v, want ErrHierarchy", err)
		}
		if child.Len() != 3 {
			t.Errorf("rolled-back append left Len() = %d, want 3", child.Len())
		}
	})

	t.Run("in-coverage edits still legal", func(t *testing.T) {
		// replace [2,3] by [2,2.5]: still inside the parent interval
		last := child.At(2)
		if err := child.SetAnnotationLocation(last, intervalLoc(t, 2, 2.5)); err != nil {
			t.Errorf("legal move rejected: %v", err)
		}
	})

	t.Run("move outside coverage rejected and rolled back", func(t *testing.T) {
		first := child.At(0)
		err := child.SetAnnotationLocation(first, intervalLoc(t, 3.5, 4.5))
		if err == nil {
			t.Fatal("move past the parent coverage must fail")
		}
		loc := first.Location().Best()
		if loc.Start().Midpoint() != 0 || loc.End().Midpoint() != 1 {
			t.Errorf("failed move must restore the location, got %v", loc)
		}
		if child.At(0) != first {
			t.Error("failed move must restore the position")
		}
	})
}

func TestAlignmentBlocksParentEdits(t *testing.T) {
	trans, parent, child := buildAligned(t)
	if err := trans.AddLink(TimeAlignment, parent, child); err != nil {
		t.Fatalf("AddLink() error = %v", err)
	}

	// removing the covering parent annotation orphans all children
	err := parent.RemoveAt(0)
	if err == nil {
		t.Fatal("removing the covering parent annotation must fail")
	}
	if !errors.Is(err, errors.ErrHierarchy) {
		t.Errorf("error = %v, want ErrHierarchy", err)
	}
	if parent.Len() != 1 {
		t.Error("failed removal must restore the parent annotation")
	}
}

func TestAlignmentGuardsChildPointAtParentEndBound(t *testing.T) {
	trans := NewTranscription("sample")
	parent, _ := trans.NewTier("IPU")
	for _, iv := range [][2]float64{{0, 2}, {2, 3}} {
		if _, err := parent.CreateAnnotation(intervalLoc(t, iv[0], iv[1])); err != nil {
			t.Fatalf("CreateAnnotation() error = %v", err)
		}
	}
	// the second point sits exactly on the end bound of [2,3]
	child, _ := trans.NewTier("Pitch")
	for _, m := range []float64{1, 3} {
		if _, err := child.CreateAnnotation(pointLoc(t, m)); err != nil {
			t.Fatalf("CreateAnnotation() error = %v", err)
		}
	}
	if err := trans.AddLink(TimeAlignment, parent, child); err != nil {
		t.Fatalf("AddLink() error = %v", err)
	}

	// removing [2,3] orphans the point at 3, even though that point
	// starts exactly where the edited span ends
	err := parent.RemoveAt(1)
	if err == nil {
		t.Fatal("removing the parent interval covering an end-bound point must fail")
	}
	if !errors.Is(err, errors.ErrHierarchy) {
		t.Errorf("error = %v, want ErrHierarchy", err)
	}
	if parent.Len() != 2 {
		t.Error("failed removal must restore the parent annotation")
	}
}

func TestTimeAssociation(t *testing.T) {
	trans := NewTranscription("sample")
	left, _ := trans.NewTier("Words")
	right, _ := trans.NewTier("POS")
	fillTier(t, left)
	fillTier(t, right)

	if err := trans.AddLink(TimeAssociation, left, right); err != nil {
		t.Fatalf("AddLink() error = %v", err)
	}

	t.Run("count-changing edit rejected", func(t *testing.T) {
		_, err := right.CreateAnnotation(intervalLoc(t, 5, 6))
		if err == nil {
			t.Fatal("an association child cannot gain annotations alone")
		}
		if right.Len() != 3 {
			t.Errorf("rolled-back append left Len() = %d, want 3", right.Len())
		}
	})

	t.Run("mismatched counts rejected at creation", func(t *testing.T) {
		other := NewTranscription("other")
		a, _ := other.NewTier("A")
		b, _ := other.NewTier("B")
		fillTier(t, a)
		if _, err := b.CreateAnnotation(intervalLoc(t, 0, 1)); err != nil {
			t.Fatalf("CreateAnnotation() error = %v", err)
		}
		if err := other.AddLink(TimeAssociation, a, b); err == nil {
			t.Error("association with different counts must fail")
		}
	})
}

func TestAddLinkRejections(t *testing.T) {
	trans, parent, child := buildAligned(t)
	if err := trans.AddLink(TimeAlignment, parent, child); err != nil {
		t.Fatalf("AddLink() error = %v", err)
	}

	t.Run("second parent rejected", func(t *testing.T) {
		other, _ := trans.NewTier("Other")
		if _, err := other.CreateAnnotation(intervalLoc(t, 0, 3)); err != nil {
			t.Fatalf("CreateAnnotation() error = %v", err)
		}
		if err := trans.AddLink(TimeAlignment, other, child); err == nil {
			t.Error("a child with a parent must reject a second link")
		}
	})

	t.Run("cycle rejected", func(t *testing.T) {
		if err := trans.AddLink(TimeAlignment, child, parent); err == nil {
			t.Error("a cyclic link must be rejected")
		}
	})

	t.Run("self link rejected", func(t *testing.T) {
		if err := trans.AddLink(TimeAlignment, parent, parent); err == nil {
			t.Error("a self link must be rejected")
		}
	})

	t.Run("foreign tier rejected", func(t *testing.T) {
		foreign := NewTier("Foreign")
		if err := trans.AddLink(TimeAlignment, parent, foreign); err == nil {
			t.Error("a tier of another transcription must be rejected")
		}
	})

	t.Run("point parent rejected for alignment", func(t *testing.T) {
		ptTier, _ := trans.NewTier("Pitch")
		if _, err := ptTier.CreateAnnotation(pointLoc(t, 0.5)); err != nil {
			t.Fatalf("CreateAnnotation() error = %v", err)
		}
		target, _ := trans.NewTier("Target")
		if _, err := target.CreateAnnotation(intervalLoc(t, 0, 1)); err != nil {
			t.Fatalf("CreateAnnotation() error = %v", err)
		}
		if err := trans.AddLink(TimeAlignment, ptTier, target); err == nil {
			t.Error("a point tier cannot parent a TimeAlignment link")
		}
	})
}

func TestRemoveTierDropsLinks(t *testing.T) {
	trans, parent, child := buildAligned(t)
	if err := trans.AddLink(TimeAlignment, parent, child); err != nil {
		t.Fatalf("AddLink() error = %v", err)
	}

	if err := trans.RemoveTier("IPU"); err != nil {
		t.Fatalf("RemoveTier() error = %v", err)
	}
	if trans.Hierarchy().ParentOf(child) != nil {
		t.Error("removing a tier must drop its links")
	}
	// the child is free again
	if _, err := child.CreateAnnotation(intervalLoc(t, 10, 11)); err != nil {
		t.Errorf("edit after link removal rejected: %v", err)
	}
}
