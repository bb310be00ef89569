package xra

import (
	"os"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
	"github.com/brigitte-bigi/annago/core/trs"
	"github.com/brigitte-bigi/annago/core/xml"
)

func readFile(path string) (*trs.Transcription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, errors.NewParse("xra", path, 0, err.Error())
	}
	root, err := doc.XPathFirst("/Document")
	if err != nil {
		return nil, errors.NewParse("xra", path, 0, err.Error())
	}
	if root == nil {
		return nil, errors.NewParse("xra", path, 0, "missing <Document> root element")
	}

	t := trs.NewTranscription(root.Attr("name"))
	readMetadata(root.Child("Metadata"), t.Metadata())

	mediaByID := make(map[string]*trs.Media)
	for _, node := range root.ChildrenByName("Media") {
		m := trs.NewMedia(node.Attr("url"), node.Attr("mimetype"))
		if id := node.Attr("id"); id != "" {
			m.SetID(id)
		}
		if err := t.AddMedia(m); err != nil {
			return nil, err
		}
		mediaByID[m.ID()] = m
	}

	for _, node := range root.ChildrenByName("Vocabulary") {
		v, err := readVocabulary(path, node)
		if err != nil {
			return nil, err
		}
		if err := t.AddVocab(v); err != nil {
			return nil, err
		}
	}

	tierByID := make(map[string]*trs.Tier)
	for _, node := range root.ChildrenByName("Tier") {
		tier, err := readTier(path, t, node, mediaByID)
		if err != nil {
			return nil, err
		}
		tierByID[tier.ID()] = tier
	}

	if hier := root.Child("Hierarchy"); hier != nil {
		for _, node := range hier.ChildrenByName("Link") {
			parent := tierByID[node.Attr("from")]
			child := tierByID[node.Attr("to")]
			if parent == nil || child == nil {
				return nil, errors.NewParse("xra", path, 0,
					"hierarchy link references an unknown tier id")
			}
			if err := t.AddLink(trs.LinkType(node.Attr("type")), parent, child); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func readMetadata(node *xml.Node, meta *ann.Metadata) {
	if node == nil {
		return
	}
	for _, entry := range node.ChildrenByName("Entry") {
		if key := entry.Attr("key"); key != "" {
			meta.Set(key, entry.Text())
		}
	}
}

func readVocabulary(path string, node *xml.Node) (*trs.CtrlVocab, error) {
	v := trs.NewCtrlVocab(node.Attr("name"))
	if id := node.Attr("id"); id != "" {
		v.Metadata().Set(ann.MetaKeyID, id)
	}
	for _, entry := range node.ChildrenByName("Entry") {
		tag, err := readTag(path, entry)
		if err != nil {
			return nil, err
		}
		if err := v.Add(tag, entry.Attr("description")); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func readTier(path string, t *trs.Transcription, node *xml.Node, mediaByID map[string]*trs.Media) (*trs.Tier, error) {
	tier, err := t.NewTier(node.Attr("tiername"))
	if err != nil {
		return nil, err
	}
	if id := node.Attr("id"); id != "" {
		tier.SetID(id)
	}
	// the format can represent overlapping intervals
	tier.AllowOverlaps()
	readMetadata(node.Child("Metadata"), tier.Metadata())

	if mid := node.Attr("media"); mid != "" {
		if m := mediaByID[mid]; m != nil {
			tier.SetMedia(m)
		}
	}
	if vname := node.Attr("vocab"); vname != "" {
		v := t.Vocab(vname)
		if v == nil {
			return nil, errors.NewParse("xra", path, 0,
				"tier "+tier.Name()+" references unknown vocabulary "+vname)
		}
		if err := tier.SetCtrlVocab(v); err != nil {
			return nil, err
		}
	}

	for _, an := range node.ChildrenByName("Annotation") {
		locNode := an.Child("Location")
		if locNode == nil {
			return nil, errors.NewParse("xra", path, 0,
				"annotation without <Location> in tier "+tier.Name())
		}
		loc, err := readLocation(path, locNode)
		if err != nil {
			return nil, err
		}
		var labels []*ann.Label
		for _, ln := range an.ChildrenByName("Label") {
			label, err := readLabel(path, ln)
			if err != nil {
				return nil, err
			}
			labels = append(labels, label)
		}
		a, err := tier.CreateAnnotation(loc, labels...)
		if err != nil {
			return nil, err
		}
		if id := an.Attr("id"); id != "" {
			a.Metadata().Set(ann.MetaKeyID, id)
		}
	}
	return tier, nil
}

func readLocation(path string, node *xml.Node) (*ann.Location, error) {
	children := node.Children()
	if len(children) == 0 {
		return nil, errors.NewParse("xra", path, 0, "empty <Location>")
	}
	var loc *ann.Location
	for i, child := range children {
		l, err := readLocalization(path, child)
		if err != nil {
			return nil, err
		}
		score, scored, err := scoreAttr(child)
		if err != nil {
			return nil, errors.NewParse("xra", path, 0, err.Error())
		}
		if i == 0 {
			loc, err = ann.NewLocation(l)
			if err != nil {
				return nil, err
			}
			if scored {
				if err := loc.SetScore(0, score); err != nil {
					return nil, err
				}
			}
			continue
		}
		if scored {
			err = loc.AddAlternative(l, score)
		} else {
			err = loc.AddUnscoredAlternative(l)
		}
		if err != nil {
			return nil, err
		}
	}
	return loc, nil
}

func readLocalization(path string, node *xml.Node) (ann.Localization, error) {
	switch node.Name() {
	case "Point":
		return readPoint(path, node)
	case "Interval":
		return readInterval(path, node)
	case "Disjoint":
		var intervals []*ann.Interval
		for _, in := range node.ChildrenByName("Interval") {
			iv, err := readInterval(path, in)
			if err != nil {
				return nil, err
			}
			intervals = append(intervals, iv)
		}
		return ann.NewDisjoint(intervals...)
	default:
		return nil, errors.NewParse("xra", path, 0, "unknown localization <"+node.Name()+">")
	}
}

func readInterval(path string, node *xml.Node) (*ann.Interval, error) {
	bn := node.Child("Begin")
	en := node.Child("End")
	if bn == nil || en == nil {
		return nil, errors.NewParse("xra", path, 0, "<Interval> needs <Begin> and <End>")
	}
	begin, err := readPoint(path, bn)
	if err != nil {
		return nil, err
	}
	end, err := readPoint(path, en)
	if err != nil {
		return nil, err
	}
	return ann.NewInterval(begin, end)
}

func readPoint(path string, node *xml.Node) (*ann.Point, error) {
	midpoint, err := node.FloatAttr("midpoint")
	if err != nil {
		return nil, errors.NewParse("xra", path, 0, err.Error())
	}
	radius := 0.0
	if node.HasAttr("radius") {
		radius, err = node.FloatAttr("radius")
		if err != nil {
			return nil, errors.NewParse("xra", path, 0, err.Error())
		}
	}
	return ann.NewPoint(midpoint, radius)
}

func readLabel(path string, node *xml.Node) (*ann.Label, error) {
	tags := node.ChildrenByName("Tag")
	if len(tags) == 0 {
		return nil, errors.NewParse("xra", path, 0, "<Label> without <Tag>")
	}
	var label *ann.Label
	for i, tn := range tags {
		tag, err := readTag(path, tn)
		if err != nil {
			return nil, err
		}
		score, scored, err := scoreAttr(tn)
		if err != nil {
			return nil, errors.NewParse("xra", path, 0, err.Error())
		}
		switch {
		case i == 0 && scored:
			label = ann.NewScoredLabel(tag, score)
		case i == 0:
			label = ann.NewLabel(tag)
		case scored:
			label.Append(tag, score)
		default:
			label.AppendUnscored(tag)
		}
	}
	return label, nil
}

func readTag(path string, node *xml.Node) (ann.Tag, error) {
	typ, err := ann.TagTypeFromString(node.Attr("type"))
	if err != nil {
		return ann.Tag{}, errors.NewParse("xra", path, 0, err.Error())
	}
	tag, err := ann.NewTypedTag(node.Text(), typ)
	if err != nil {
		return ann.Tag{}, err
	}
	return tag, nil
}

func scoreAttr(node *xml.Node) (float64, bool, error) {
	if !node.HasAttr("score") {
		return 0, false, nil
	}
	score, err := node.FloatAttr("score")
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}
