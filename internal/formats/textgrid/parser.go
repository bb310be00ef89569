package textgrid

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brigitte-bigi/annago/core/ann"
	"github.com/brigitte-bigi/annago/core/errors"
	"github.com/brigitte-bigi/annago/core/trs"
	"github.com/brigitte-bigi/annago/internal/formats/base"
)

// parser is a line cursor over the decoded file content. Praat files are
// line oriented in both variants, so errors carry 1-based line numbers.
type parser struct {
	path  string
	lines []string
	pos   int
}

func readFile(path string) (*trs.Transcription, error) {
	content, err := base.ReadText(path)
	if err != nil {
		return nil, err
	}
	p := &parser{path: path, lines: strings.Split(content, "\n")}

	line, _, ok := p.next()
	if !ok || !strings.Contains(line, "ooTextFile") {
		return nil, p.fail("not an ooTextFile")
	}
	line, _, ok = p.next()
	if !ok || !strings.Contains(line, "TextGrid") {
		return nil, p.fail("not a TextGrid object")
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t := trs.NewTranscription(name)

	line, ok = p.peek()
	if !ok {
		return t, nil
	}
	if strings.HasPrefix(line, "xmin") {
		err = p.parseLong(t)
	} else {
		err = p.parseShort(t)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// next returns the following non-blank line, trimmed, with its 1-based
// number.
func (p *parser) next() (string, int, bool) {
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		p.pos++
		if line != "" {
			return line, p.pos, true
		}
	}
	return "", p.pos, false
}

func (p *parser) peek() (string, bool) {
	pos := p.pos
	line, _, ok := p.next()
	p.pos = pos
	return line, ok
}

func (p *parser) fail(msg string) error {
	return errors.NewParse("textgrid", p.path, p.pos, msg)
}

// parseLong consumes the verbose variant: attribute lines inside nested
// item/intervals/points blocks. Tier-level xmin/xmax lines are told apart
// from entry bounds by whether an entry block is open.
func (p *parser) parseLong(t *trs.Transcription) error {
	var (
		tier         *trs.Tier
		pendingClass string
		isPoint      bool
		inEntry      bool
		xmin, xmax   float64
		haveMin      bool
		haveMax      bool
	)
	for {
		line, _, ok := p.next()
		if !ok {
			return nil
		}
		switch {
		case strings.HasPrefix(line, "class ="):
			cls := unquote(p.valueAfterEq(line))
			if cls != "IntervalTier" && cls != "TextTier" {
				return p.fail("unsupported tier class " + cls)
			}
			pendingClass = cls
			tier = nil
			inEntry = false

		case strings.HasPrefix(line, "name ="):
			if pendingClass == "" {
				return p.fail("tier name before class")
			}
			var err error
			tier, err = t.NewTier(unquote(p.valueAfterEq(line)))
			if err != nil {
				return err
			}
			isPoint = pendingClass == "TextTier"

		case strings.HasPrefix(line, "intervals [") || strings.HasPrefix(line, "points ["):
			inEntry = true
			haveMin, haveMax = false, false

		case strings.HasPrefix(line, "xmin ="):
			if inEntry {
				v, err := p.parseFloat(p.valueAfterEq(line))
				if err != nil {
					return err
				}
				xmin, haveMin = v, true
			}

		case strings.HasPrefix(line, "xmax ="):
			if inEntry {
				v, err := p.parseFloat(p.valueAfterEq(line))
				if err != nil {
					return err
				}
				xmax, haveMax = v, true
			}

		case strings.HasPrefix(line, "number ="):
			if inEntry {
				v, err := p.parseFloat(p.valueAfterEq(line))
				if err != nil {
					return err
				}
				xmin, haveMin = v, true
			}

		case strings.HasPrefix(line, "text ="):
			if tier == nil || !inEntry {
				return p.fail("text outside an interval block")
			}
			if !haveMin || !haveMax {
				return p.fail("interval text before its bounds")
			}
			text, err := p.quotedValue(p.valueAfterEq(line))
			if err != nil {
				return err
			}
			if err := addInterval(tier, xmin, xmax, text); err != nil {
				return err
			}
			inEntry = false

		case strings.HasPrefix(line, "mark ="):
			if tier == nil || !inEntry || !isPoint {
				return p.fail("mark outside a point block")
			}
			if !haveMin {
				return p.fail("point mark before its time")
			}
			mark, err := p.quotedValue(p.valueAfterEq(line))
			if err != nil {
				return err
			}
			if err := addPoint(tier, xmin, mark); err != nil {
				return err
			}
			inEntry = false
		}
	}
}

// parseShort consumes the compact variant: bare values, one per line.
func (p *parser) parseShort(t *trs.Transcription) error {
	// global xmin, xmax, tiers flag, tier count
	if _, err := p.nextFloat(); err != nil {
		return err
	}
	if _, err := p.nextFloat(); err != nil {
		return err
	}
	if _, _, ok := p.next(); !ok {
		return p.fail("truncated header")
	}
	count, err := p.nextInt()
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		cls, _, ok := p.next()
		if !ok {
			return p.fail("truncated tier header")
		}
		cls = unquote(cls)
		if cls != "IntervalTier" && cls != "TextTier" {
			return p.fail("unsupported tier class " + cls)
		}
		nameLine, _, ok := p.next()
		if !ok {
			return p.fail("truncated tier header")
		}
		tier, err := t.NewTier(unquote(nameLine))
		if err != nil {
			return err
		}
		if _, err := p.nextFloat(); err != nil {
			return err
		}
		if _, err := p.nextFloat(); err != nil {
			return err
		}
		entries, err := p.nextInt()
		if err != nil {
			return err
		}

		for k := 0; k < entries; k++ {
			if cls == "IntervalTier" {
				b, err := p.nextFloat()
				if err != nil {
					return err
				}
				e, err := p.nextFloat()
				if err != nil {
					return err
				}
				line, _, ok := p.next()
				if !ok {
					return p.fail("truncated interval")
				}
				text, err := p.quotedValue(line)
				if err != nil {
					return err
				}
				if err := addInterval(tier, b, e, text); err != nil {
					return err
				}
			} else {
				n, err := p.nextFloat()
				if err != nil {
					return err
				}
				line, _, ok := p.next()
				if !ok {
					return p.fail("truncated point")
				}
				mark, err := p.quotedValue(line)
				if err != nil {
					return err
				}
				if err := addPoint(tier, n, mark); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (p *parser) valueAfterEq(line string) string {
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (p *parser) parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, p.fail("malformed number " + strconv.Quote(s))
	}
	return v, nil
}

func (p *parser) nextFloat() (float64, error) {
	line, _, ok := p.next()
	if !ok {
		return 0, p.fail("unexpected end of file")
	}
	return p.parseFloat(line)
}

func (p *parser) nextInt() (int, error) {
	v, err := p.nextFloat()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// quotedValue returns the complete Praat string starting at raw, reading
// further lines when the closing quote sits on a later line. Praat writes
// text values verbatim, so a mark containing newlines spans several file
// lines; the embedded newlines are part of the value.
func (p *parser) quotedValue(raw string) (string, error) {
	if !strings.HasPrefix(raw, "\"") {
		return unquote(raw), nil
	}
	value := raw
	for !closedQuote(value) {
		if p.pos >= len(p.lines) {
			return "", p.fail("unterminated quoted text")
		}
		value += "\n" + strings.TrimRight(p.lines[p.pos], "\r")
		p.pos++
	}
	return unquote(value), nil
}

// closedQuote reports whether s is a complete Praat string: an opening
// quote, content with embedded quotes doubled, and a closing quote.
func closedQuote(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '"' {
			i++
			continue
		}
		return i == len(s)-1
	}
	return false
}

// unquote strips Praat quoting: surrounding double quotes, with inner
// quotes doubled.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "\"") && strings.HasSuffix(s, "\"") {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, "\"\"", "\"")
}

// addInterval appends one interval annotation. Empty text is Praat's
// representation of a gap, not an annotation, and is skipped.
func addInterval(tier *trs.Tier, xmin, xmax float64, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	begin, err := ann.NewPoint(xmin, 0)
	if err != nil {
		return err
	}
	end, err := ann.NewPoint(xmax, 0)
	if err != nil {
		return err
	}
	iv, err := ann.NewInterval(begin, end)
	if err != nil {
		return err
	}
	loc, err := ann.NewLocation(iv)
	if err != nil {
		return err
	}
	_, err = tier.CreateAnnotation(loc, ann.NewLabel(ann.NewTag(text)))
	return err
}

func addPoint(tier *trs.Tier, number float64, mark string) error {
	if strings.TrimSpace(mark) == "" {
		return nil
	}
	pt, err := ann.NewPoint(number, 0)
	if err != nil {
		return err
	}
	loc, err := ann.NewLocation(pt)
	if err != nil {
		return err
	}
	_, err = tier.CreateAnnotation(loc, ann.NewLabel(ann.NewTag(mark)))
	return err
}
