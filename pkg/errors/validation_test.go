package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Node0", false},
		{"valid with space", "Berlin Core", false},
		{"valid unicode", "Zürich", false},

		{"empty", "", false},
		{"blank", "   ", false},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"quote", "foo\"bar", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("node 1 name", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && strings.Count(err.Error(), string(ErrCodeInvalidInput)) != 1 {
				t.Errorf("ValidateName(%q) error = %q, want the code exactly once", tt.input, err)
			}
			if err != nil && !strings.Contains(err.Error(), "node 1 name") {
				t.Errorf("ValidateName(%q) error = %q, want the field label", tt.input, err)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 12.5, false},
		{"negative", -0.1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("volume", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonNegative(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	if err := ValidateFinite("x", -3); err != nil {
		t.Errorf("ValidateFinite(-3) error = %v, want nil", err)
	}
	if err := ValidateFinite("x", math.Inf(-1)); err == nil {
		t.Error("ValidateFinite(-Inf) should fail")
	}
}
