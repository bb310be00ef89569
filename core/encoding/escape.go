// Package encoding provides shared text encoding, escaping and number
// formatting utilities used by the format writers.
package encoding

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// EscapeXMLText escapes the basic XML entities for element text content.
func EscapeXMLText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeXMLAttr escapes text for use in XML attributes.
// Includes quote escaping in addition to basic XML entities.
func EscapeXMLAttr(s string) string {
	s = EscapeXMLText(s)
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// FormatFloat renders a float with the shortest representation that
// round-trips exactly. All writers use it so that a value parsed from a
// file is re-emitted with identical text.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ValidUTF8 reports whether data is entirely valid UTF-8, after skipping
// an optional byte order mark.
func ValidUTF8(data []byte) bool {
	return utf8.Valid(TrimBOM(data))
}

// TrimBOM removes a leading UTF-8 byte order mark if present.
func TrimBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// QuotePraat wraps s in double quotes with Praat-style doubling of
// embedded quotes, as expected inside a TextGrid file.
func QuotePraat(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
