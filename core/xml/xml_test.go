package xml

import "testing"

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<Document version="1.0" name="sample">
  <Tier id="t1" tiername="Tokens">
    <Annotation id="a1">
      <Interval><Begin midpoint="0.0" radius="0.005"/><End midpoint="1.0"/></Interval>
    </Annotation>
  </Tier>
  <Tier id="t2" tiername="Phones"/>
</Document>`

func TestParseAndRoot(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	root := doc.Root()
	if root == nil {
		t.Fatal("Root() = nil")
	}
	if root.Name() != "Document" {
		t.Errorf("Root().Name() = %q, want %q", root.Name(), "Document")
	}
	if root.Attr("name") != "sample" {
		t.Errorf(`Attr("name") = %q, want "sample"`, root.Attr("name"))
	}
}

func TestXPath(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tiers, err := doc.XPath("//Tier")
	if err != nil {
		t.Fatalf("XPath() error = %v", err)
	}
	if len(tiers) != 2 {
		t.Fatalf("XPath(//Tier) returned %d nodes, want 2", len(tiers))
	}
	if tiers[0].Attr("tiername") != "Tokens" {
		t.Errorf("first tier name = %q, want Tokens", tiers[0].Attr("tiername"))
	}

	first, err := doc.XPathFirst("//Annotation")
	if err != nil {
		t.Fatalf("XPathFirst() error = %v", err)
	}
	if first == nil || first.Attr("id") != "a1" {
		t.Errorf("XPathFirst(//Annotation) = %v", first)
	}

	if _, err := doc.XPath("//["); err == nil {
		t.Error("invalid xpath accepted")
	}
}

func TestChildrenAndAttrs(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	root := doc.Root()

	tiers := root.ChildrenByName("Tier")
	if len(tiers) != 2 {
		t.Fatalf("ChildrenByName(Tier) = %d, want 2", len(tiers))
	}

	ann := tiers[0].Child("Annotation")
	if ann == nil {
		t.Fatal("Child(Annotation) = nil")
	}
	begin := ann.Child("Interval").Child("Begin")
	if begin == nil {
		t.Fatal("Begin element not found")
	}

	mid, err := begin.FloatAttr("midpoint")
	if err != nil || mid != 0.0 {
		t.Errorf("FloatAttr(midpoint) = %v, %v", mid, err)
	}
	radius, err := begin.FloatAttr("radius")
	if err != nil || radius != 0.005 {
		t.Errorf("FloatAttr(radius) = %v, %v", radius, err)
	}

	end := ann.Child("Interval").Child("End")
	if end.HasAttr("radius") {
		t.Error("HasAttr(radius) on End should be false")
	}
	if _, err := end.FloatAttr("radius"); err == nil {
		t.Error("FloatAttr on missing attribute should fail")
	}
}
