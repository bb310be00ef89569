package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestTypeError(t *testing.T) {
	tests := []struct {
		name     string
		err      *TypeError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "int content",
			err:      &TypeError{Value: "abc", Expected: "int"},
			wantMsg:  `value "abc" is not of the expected type int`,
			wantBase: ErrInvalidType,
		},
		{
			name:     "localization kind",
			err:      &TypeError{Value: "Point", Expected: "Interval"},
			wantMsg:  `value "Point" is not of the expected type Interval`,
			wantBase: ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestValueError(t *testing.T) {
	err := &ValueError{Name: "radius", Value: -0.5}
	want := "invalid value -0.5 for radius: expected a non-negative value"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrNegativeValue) {
		t.Errorf("errors.Is(err, ErrNegativeValue) = false, want true")
	}
}

func TestExtensionError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ExtensionError
		wantMsg string
	}{
		{
			name:    "with extension",
			err:     &ExtensionError{Path: "sample.xyz", Extension: ".xyz"},
			wantMsg: `unknown extension ".xyz" for file sample.xyz`,
		},
		{
			name:    "without extension",
			err:     &ExtensionError{Path: "sample"},
			wantMsg: "missing extension for file sample",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrUnsupportedExtension) {
				t.Errorf("errors.Is(err, ErrUnsupportedExtension) = false, want true")
			}
		})
	}
}

func TestEncodingError(t *testing.T) {
	err := &EncodingError{Path: "sample.csv"}
	want := "file sample.csv is not a valid UTF-8 file"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("errors.Is(err, ErrEncoding) = false, want true")
	}
}

func TestHierarchyError(t *testing.T) {
	err := NewHierarchy("TimeAlignment", "Tokens", "Phones", "child interval not contained in any parent interval")
	want := `TimeAlignment constraint violated between parent "Tokens" and child "Phones": child interval not contained in any parent interval`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrHierarchy) {
		t.Errorf("errors.Is(err, ErrHierarchy) = false, want true")
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParseError
		wantMsg string
	}{
		{
			name:    "with line number",
			err:     &ParseError{Format: "TextGrid", Path: "sample.TextGrid", Line: 12, Message: "expected xmin"},
			wantMsg: "failed to parse TextGrid at sample.TextGrid line 12: expected xmin",
		},
		{
			name:    "without line number",
			err:     &ParseError{Format: "XRA", Path: "sample.xra", Message: "missing Document element"},
			wantMsg: "failed to parse XRA at sample.xra: missing Document element",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Errorf("errors.Is(err, ErrInvalidInput) = false, want true")
			}
		})
	}
}

func TestIOErrorUnwrap(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := NewIO("open", "/data/sample.xra", underlying)
	if got := err.Error(); got != "failed to open /data/sample.xra: permission denied" {
		t.Errorf("Error() = %q", got)
	}
	if got := err.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}
}

func TestEmptyError(t *testing.T) {
	err := NewEmpty("tier filter")
	if got := err.Error(); got != "tier filter produced an empty result" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("errors.Is(err, ErrEmpty) = false, want true")
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("boom")
	wrapped := Wrap(base, "reading tier")
	if wrapped.Error() != "reading tier: boom" {
		t.Errorf("Wrap() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base with errors.Is")
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapf(t *testing.T) {
	base := errors.New("boom")
	wrapped := Wrapf(base, "tier %q", "Tokens")
	if wrapped.Error() != `tier "Tokens": boom` {
		t.Errorf("Wrapf() = %q", wrapped.Error())
	}
	if Wrapf(nil, "ignored") != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}
