package errors

import (
	"strings"
	"testing"
)

func TestValidateRegionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "sidebar", false},
		{"valid with spaces", "status bar", false},
		{"valid with unicode", "région", false},
		{"empty", "", true},
		{"control character", "side\x01bar", true},
		{"null byte", "side\x00bar", true},
		{"too long", strings.Repeat("a", 257), true},
		{"max length ok", strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegionName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegionName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocumentKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid key", "default", false},
		{"valid with dots", "layouts.main", false},
		{"valid with dashes", "two-column", false},
		{"empty", "", true},
		{"path separator", "a/b", true},
		{"traversal", "a..b", true},
		{"leading dot", ".hidden", true},
		{"backslash", "a\\b", true},
		{"too long", strings.Repeat("a", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
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
		{"valid relative", "layouts/main.json", false},
		{"valid absolute", "/tmp/layouts/main.json", false},
		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"null byte", "a\x00b", true},
		{"backslash", "a\\b", true},
		{"too long", strings.Repeat("a", 501), true},
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
