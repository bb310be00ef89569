package ann

import (
	"strconv"
	"strings"

	"github.com/brigitte-bigi/annago/core/encoding"
	"github.com/brigitte-bigi/annago/core/errors"
)

// TagType enumerates the content types a Tag can hold.
type TagType int

// Tag type constants.
const (
	TagString TagType = iota
	TagInt
	TagFloat
	TagBool
	TagPoint
	TagRect
)

var tagTypeNames = map[TagType]string{
	TagString: "str",
	TagInt:    "int",
	TagFloat:  "float",
	TagBool:   "bool",
	TagPoint:  "point",
	TagRect:   "rect",
}

// String returns the type name as serialized in files.
func (t TagType) String() string {
	if name, ok := tagTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// TagTypeFromString parses a serialized type name. An empty name defaults
// to the string type.
func TagTypeFromString(name string) (TagType, error) {
	switch name {
	case "", "str":
		return TagString, nil
	case "int":
		return TagInt, nil
	case "float":
		return TagFloat, nil
	case "bool":
		return TagBool, nil
	case "point":
		return TagPoint, nil
	case "rect":
		return TagRect, nil
	}
	return TagString, errors.NewType(name, "tag type")
}

// Tag is one typed, immutable content value. The type is fixed at
// construction as a tagged union; the canonical string form is kept so
// that any tag round-trips as text at the serialization boundary.
type Tag struct {
	typ TagType
	str string // canonical string form, always set

	i    int64
	f    float64
	b    bool
	pt   *FuzzyPoint
	rect *FuzzyRect
}

// NewTag creates a string-typed tag. Surrounding whitespace is stripped,
// as NewTypedTag does for every type.
func NewTag(content string) Tag {
	return Tag{typ: TagString, str: strings.TrimSpace(content)}
}

// NewTypedTag parses content into the declared type. Content that cannot
// be coerced is rejected with a TypeError, never silently defaulted.
func NewTypedTag(content string, typ TagType) (Tag, error) {
	content = strings.TrimSpace(content)
	switch typ {
	case TagString:
		return Tag{typ: TagString, str: content}, nil
	case TagInt:
		i, err := strconv.ParseInt(content, 10, 64)
		if err != nil {
			return Tag{}, &errors.TypeError{Value: content, Expected: "int", Err: err}
		}
		return NewIntTag(i), nil
	case TagFloat:
		f, err := strconv.ParseFloat(content, 64)
		if err != nil {
			return Tag{}, &errors.TypeError{Value: content, Expected: "float", Err: err}
		}
		return NewFloatTag(f), nil
	case TagBool:
		b, err := strconv.ParseBool(content)
		if err != nil {
			return Tag{}, &errors.TypeError{Value: content, Expected: "bool", Err: err}
		}
		return NewBoolTag(b), nil
	case TagPoint:
		pt, err := ParseFuzzyPoint(content)
		if err != nil {
			return Tag{}, err
		}
		return NewPointTag(pt), nil
	case TagRect:
		rect, err := ParseFuzzyRect(content)
		if err != nil {
			return Tag{}, err
		}
		return NewRectTag(rect), nil
	}
	return Tag{}, errors.NewType(typ.String(), "tag type")
}

// NewIntTag creates an int-typed tag.
func NewIntTag(i int64) Tag {
	return Tag{typ: TagInt, str: strconv.FormatInt(i, 10), i: i}
}

// NewFloatTag creates a float-typed tag.
func NewFloatTag(f float64) Tag {
	return Tag{typ: TagFloat, str: encoding.FormatFloat(f), f: f}
}

// NewBoolTag creates a bool-typed tag.
func NewBoolTag(b bool) Tag {
	return Tag{typ: TagBool, str: strconv.FormatBool(b), b: b}
}

// NewPointTag creates a fuzzy-point-typed tag.
func NewPointTag(pt *FuzzyPoint) Tag {
	return Tag{typ: TagPoint, str: pt.String(), pt: pt}
}

// NewRectTag creates a fuzzy-rect-typed tag.
func NewRectTag(rect *FuzzyRect) Tag {
	return Tag{typ: TagRect, str: rect.String(), rect: rect}
}

// Type returns the declared content type.
func (t Tag) Type() TagType { return t.typ }

// Content returns the canonical string form of the content.
func (t Tag) Content() string { return t.str }

// TypedContent returns the content in its declared type: string, int64,
// float64, bool, *FuzzyPoint or *FuzzyRect.
func (t Tag) TypedContent() any {
	switch t.typ {
	case TagInt:
		return t.i
	case TagFloat:
		return t.f
	case TagBool:
		return t.b
	case TagPoint:
		return t.pt
	case TagRect:
		return t.rect
	}
	return t.str
}

// Int returns the int content, or a TypeError for any other type.
func (t Tag) Int() (int64, error) {
	if t.typ != TagInt {
		return 0, errors.NewType(t.str, "int")
	}
	return t.i, nil
}

// Float returns the float content, or a TypeError for any other type.
func (t Tag) Float() (float64, error) {
	if t.typ != TagFloat {
		return 0, errors.NewType(t.str, "float")
	}
	return t.f, nil
}

// Bool returns the bool content, or a TypeError for any other type.
func (t Tag) Bool() (bool, error) {
	if t.typ != TagBool {
		return false, errors.NewType(t.str, "bool")
	}
	return t.b, nil
}

// FuzzyPoint returns the point content, or a TypeError for any other type.
func (t Tag) FuzzyPoint() (*FuzzyPoint, error) {
	if t.typ != TagPoint {
		return nil, errors.NewType(t.str, "point")
	}
	return t.pt, nil
}

// FuzzyRect returns the rect content, or a TypeError for any other type.
func (t Tag) FuzzyRect() (*FuzzyRect, error) {
	if t.typ != TagRect {
		return nil, errors.NewType(t.str, "rect")
	}
	return t.rect, nil
}

// Equal compares typed content: the tags must share a type and their
// contents must match. Point and rect contents use their contains-based
// equality.
func (t Tag) Equal(other Tag) bool {
	if t.typ != other.typ {
		return false
	}
	switch t.typ {
	case TagInt:
		return t.i == other.i
	case TagFloat:
		return t.f == other.f
	case TagBool:
		return t.b == other.b
	case TagPoint:
		return t.pt.Equal(other.pt)
	case TagRect:
		return t.rect.Equal(other.rect)
	}
	return t.str == other.str
}

// IsEmpty reports whether the content is an empty string.
func (t Tag) IsEmpty() bool { return t.str == "" }

// IsSilence reports whether the content is a silence symbol of the default
// symbol table.
func (t Tag) IsSilence() bool {
	return DefaultSymbols.Category(t.str) == CategorySilence
}

// IsPause reports whether the content is a short-pause symbol.
func (t Tag) IsPause() bool {
	return DefaultSymbols.Category(t.str) == CategoryPause
}

// IsLaugh reports whether the content is a laughter symbol.
func (t Tag) IsLaugh() bool {
	return DefaultSymbols.Category(t.str) == CategoryLaugh
}

// IsNoise reports whether the content is a noise symbol.
func (t Tag) IsNoise() bool {
	return DefaultSymbols.Category(t.str) == CategoryNoise
}

// IsDummy reports whether the content is the dummy symbol.
func (t Tag) IsDummy() bool {
	return DefaultSymbols.Category(t.str) == CategoryDummy
}

// IsSpeech reports whether the content is none of the event symbols.
func (t Tag) IsSpeech() bool {
	return !(t.IsSilence() || t.IsPause() || t.IsLaugh() || t.IsNoise() || t.IsDummy())
}

func (t Tag) String() string { return t.str }
