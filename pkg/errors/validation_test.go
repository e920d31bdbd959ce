package errors

import (
	"strings"
	"testing"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"json object", `{"@id":"#a"}`, false},
		{"html", `<html><body></body></html>`, false},

		{"empty", "", true},
		{"whitespace only", "  \n\t", true},
		{"null byte", "{\x00}", true},
		{"too large", strings.Repeat("a", MaxInputBytes+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateInput() code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.org/page.html", false},
		{"http", "http://example.org", false},

		{"empty", "", true},
		{"file scheme", "file:///etc/passwd", true},
		{"no scheme", "example.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty means derive", "", false},
		{"absolute", "https://example.org/doc", false},
		{"urn", "urn:example:doc", false},

		{"relative", "#book", true},
		{"path only", "/books/1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		uri     string
		wantErr bool
	}{
		{"no target", "", "", false},
		{"entity", "entity", "http://schema.org/Book", false},
		{"property", "property", "http://schema.org/name", false},

		{"unknown kind", "shape", "http://schema.org/Book", true},
		{"missing uri", "entity", "", true},
		{"uri without kind", "", "http://schema.org/Book", true},
		{"whitespace in uri", "property", "http://schema.org/ name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.kind, tt.uri)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTarget(%q, %q) error = %v, wantErr %v", tt.kind, tt.uri, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTarget) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidTarget)
			}
		})
	}
}
