package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidPaper, "unknown paper type: %q", "A9"), `INVALID_PAPER: unknown paper type: "A9"`},
		{"wrapped", Wrap(ErrCodeStorage, errors.New("disk full"), "write report %s", "r1"), "STORAGE_ERROR: write report r1: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidInput, cause, "decode design document")

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestCodeLookup(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		invalid  bool
		notFound bool
	}{
		{"paper", New(ErrCodeInvalidPaper, "x"), ErrCodeInvalidPaper, true, false},
		{"scale", New(ErrCodeInvalidScale, "x"), ErrCodeInvalidScale, true, false},
		{"rules", New(ErrCodeInvalidRules, "x"), ErrCodeInvalidRules, true, false},
		{"file", New(ErrCodeFileNotFound, "x"), ErrCodeFileNotFound, false, true},
		{"report", New(ErrCodeReportNotFound, "x"), ErrCodeReportNotFound, false, true},
		{"storage", New(ErrCodeStorage, "x"), ErrCodeStorage, false, false},
		{"outermost wins", Wrap(ErrCodeStorage, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeStorage, false, false},
		{"through fmt wrap", fmt.Errorf("invalid options: %w", New(ErrCodeInvalidFormat, "gif")), ErrCodeInvalidFormat, true, false},
		{"plain", errors.New("x"), "", false, false},
		{"nil", nil, "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if got := IsInvalid(tt.err); got != tt.invalid {
				t.Errorf("IsInvalid() = %v, want %v", got, tt.invalid)
			}
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
		})
	}
	if Is(nil, "") {
		t.Error(`Is(nil, "") should be false`)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidPaper, "unknown paper type"), "unknown paper type"},
		{"plain", errors.New("permission denied"), "permission denied"},
		{"wrapped plain cause", Wrap(ErrCodeInvalidInput, errors.New("unexpected EOF"), "decode design document"),
			"decode design document: unexpected EOF"},
		{"wrapped coded cause", Wrap(ErrCodeStorage, New(ErrCodeInvalidPath, "bad id"), "read report"),
			"read report: bad id"},
		{"behind fmt wrap", fmt.Errorf("render: %w", New(ErrCodeUnsupported, "rsvg-convert not found")),
			"rsvg-convert not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
