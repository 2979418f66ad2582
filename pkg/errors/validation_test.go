package errors

import (
	"math"
	"testing"
)

func TestValidateScaleFactor(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"default", 1.0, false},
		{"zero means default", 0, false},
		{"zoom", 2.5, false},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScaleFactor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScaleFactor(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScale) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidScale)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "out.json", false},
		{"nested", "build/out.json", false},
		{"absolute", "/tmp/out.json", false},
		{"dotted name", "a..b.json", false},

		{"empty", "", true},
		{"traversal", "../out.json", true},
		{"windows traversal", "a\\..\\out.json", true},
		{"null byte", "out\x00.json", true},
		{"newline", "out\n.json", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "0b9c6c6e-6a57-4c1e-9a57-1f2e3d4c5b6a", false},
		{"upper", "0B9C6C6E-6A57-4C1E-9A57-1F2E3D4C5B6A", false},

		{"empty", "", true},
		{"short", "0b9c6c6e", true},
		{"bad dash", "0b9c6c6e06a57-4c1e-9a57-1f2e3d4c5b6a", true},
		{"non hex", "zb9c6c6e-6a57-4c1e-9a57-1f2e3d4c5b6a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReportID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReportID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
