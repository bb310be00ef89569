package ann

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/brigitte-bigi/annago/core/errors"
)

// FuzzyPoint is a 2D pixel coordinate with an optional tolerance radius,
// used to tag a position in an image or video frame. Its textual form is
// "(x,y)" or "(x,y,r)".
type FuzzyPoint struct {
	x, y   int
	radius int
}

// FuzzyRect is a 2D pixel rectangle with an optional tolerance radius.
// Its textual form is "(x,y,w,h)" or "(x,y,w,h,r)".
type FuzzyRect struct {
	x, y, w, h int
	radius     int
}

// coordList is the participle grammar shared by the fuzzy point and rect
// textual forms: a parenthesized comma-separated list of integers.
type coordList struct {
	Values []int `parser:"'(' @Int ( ',' @Int )* ')'"`
}

var coordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var coordParser = participle.MustBuild[coordList](
	participle.Lexer(coordLexer),
	participle.Elide("Whitespace"),
)

// NewFuzzyPoint creates a FuzzyPoint. The radius must be non-negative;
// zero means the coordinate is exact.
func NewFuzzyPoint(x, y, radius int) (*FuzzyPoint, error) {
	if radius < 0 {
		return nil, errors.NewValue("radius", float64(radius))
	}
	return &FuzzyPoint{x: x, y: y, radius: radius}, nil
}

// ParseFuzzyPoint parses the textual form "(x,y)" or "(x,y,r)".
func ParseFuzzyPoint(s string) (*FuzzyPoint, error) {
	coords, err := coordParser.ParseString("", s)
	if err != nil {
		return nil, &errors.TypeError{Value: s, Expected: "point", Err: err}
	}
	switch len(coords.Values) {
	case 2:
		return NewFuzzyPoint(coords.Values[0], coords.Values[1], 0)
	case 3:
		return NewFuzzyPoint(coords.Values[0], coords.Values[1], coords.Values[2])
	}
	return nil, errors.NewType(s, "point")
}

// Coord returns the x,y coordinate.
func (p *FuzzyPoint) Coord() (int, int) { return p.x, p.y }

// Radius returns the tolerance radius.
func (p *FuzzyPoint) Radius() int { return p.radius }

// Contains reports whether the coordinate falls within the tolerance
// square centered on the point.
func (p *FuzzyPoint) Contains(x, y int) bool {
	return abs(x-p.x) <= p.radius && abs(y-p.y) <= p.radius
}

// Equal reports contains-based equality: each coordinate difference is
// within the combined radius of the two points.
func (p *FuzzyPoint) Equal(other *FuzzyPoint) bool {
	if other == nil {
		return false
	}
	r := p.radius + other.radius
	return abs(p.x-other.x) <= r && abs(p.y-other.y) <= r
}

// String returns the canonical textual form. The radius is emitted only
// when non-zero so that parsed content round-trips unchanged.
func (p *FuzzyPoint) String() string {
	if p.radius == 0 {
		return fmt.Sprintf("(%d,%d)", p.x, p.y)
	}
	return fmt.Sprintf("(%d,%d,%d)", p.x, p.y, p.radius)
}

// NewFuzzyRect creates a FuzzyRect. Width and height must be positive and
// the radius non-negative.
func NewFuzzyRect(x, y, w, h, radius int) (*FuzzyRect, error) {
	if w <= 0 {
		return nil, errors.NewValue("width", float64(w))
	}
	if h <= 0 {
		return nil, errors.NewValue("height", float64(h))
	}
	if radius < 0 {
		return nil, errors.NewValue("radius", float64(radius))
	}
	return &FuzzyRect{x: x, y: y, w: w, h: h, radius: radius}, nil
}

// ParseFuzzyRect parses the textual form "(x,y,w,h)" or "(x,y,w,h,r)".
func ParseFuzzyRect(s string) (*FuzzyRect, error) {
	coords, err := coordParser.ParseString("", s)
	if err != nil {
		return nil, &errors.TypeError{Value: s, Expected: "rect", Err: err}
	}
	switch len(coords.Values) {
	case 4:
		return NewFuzzyRect(coords.Values[0], coords.Values[1], coords.Values[2], coords.Values[3], 0)
	case 5:
		return NewFuzzyRect(coords.Values[0], coords.Values[1], coords.Values[2], coords.Values[3], coords.Values[4])
	}
	return nil, errors.NewType(s, "rect")
}

// Coord returns the x,y,w,h values.
func (r *FuzzyRect) Coord() (int, int, int, int) { return r.x, r.y, r.w, r.h }

// Radius returns the tolerance radius.
func (r *FuzzyRect) Radius() int { return r.radius }

// Contains reports whether the coordinate falls inside the rectangle
// enlarged by the tolerance radius on every side.
func (r *FuzzyRect) Contains(x, y int) bool {
	return x >= r.x-r.radius && x <= r.x+r.w+r.radius &&
		y >= r.y-r.radius && y <= r.y+r.h+r.radius
}

// Equal reports contains-based equality: every component difference is
// within the combined radius of the two rectangles.
func (r *FuzzyRect) Equal(other *FuzzyRect) bool {
	if other == nil {
		return false
	}
	tol := r.radius + other.radius
	return abs(r.x-other.x) <= tol && abs(r.y-other.y) <= tol &&
		abs(r.w-other.w) <= tol && abs(r.h-other.h) <= tol
}

// String returns the canonical textual form. The radius is emitted only
// when non-zero so that parsed content round-trips unchanged.
func (r *FuzzyRect) String() string {
	if r.radius == 0 {
		return fmt.Sprintf("(%d,%d,%d,%d)", r.x, r.y, r.w, r.h)
	}
	return fmt.Sprintf("(%d,%d,%d,%d,%d)", r.x, r.y, r.w, r.h, r.radius)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
