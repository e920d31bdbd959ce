package cli

import (
	"slices"
	"testing"
)

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		name       string
		toComplete string
		want       []string
	}{
		{"empty", "", []string{"html", "text", "json", "term", "dot", "svg"}},
		{"prefix", "t", []string{"text", "term"}},
		{"second element", "html,d", []string{"html,dot"}},
		{"skips chosen", "text,", []string{"text,html", "text,json", "text,term", "text,dot", "text,svg"}},
		{"no match", "pdf", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := completeFormats(nil, nil, tt.toComplete)
			if !slices.Equal(got, tt.want) {
				t.Errorf("completeFormats(%q) = %v, want %v", tt.toComplete, got, tt.want)
			}
		})
	}
}
