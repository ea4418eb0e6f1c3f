package query

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantLowered string
		wantTokens  []string
	}{
		{
			name:        "simple query",
			raw:         "Phone Repair",
			wantLowered: "phone repair",
			wantTokens:  []string{"phone", "repair"},
		},
		{
			name:        "punctuation stripped before tokenizing",
			raw:         "How do I book an appointment?",
			wantLowered: "how do i book an appointment?",
			wantTokens:  []string{"how", "book", "appointment"},
		},
		{
			name:        "short tokens discarded",
			raw:         "is my pc ok",
			wantLowered: "is my pc ok",
			wantTokens:  nil,
		},
		{
			name:        "apostrophes removed not split",
			raw:         "what's broken",
			wantLowered: "what's broken",
			wantTokens:  []string{"whats", "broken"},
		},
		{
			name:        "empty input",
			raw:         "",
			wantLowered: "",
			wantTokens:  nil,
		},
		{
			name:        "whitespace only",
			raw:         "   \t\n ",
			wantLowered: "",
			wantTokens:  nil,
		},
		{
			name:        "surrounding whitespace trimmed",
			raw:         "  laptop screen  ",
			wantLowered: "laptop screen",
			wantTokens:  []string{"laptop", "screen"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got.Lowered != tt.wantLowered {
				t.Errorf("Lowered = %q, want %q", got.Lowered, tt.wantLowered)
			}
			if !reflect.DeepEqual(got.Tokens, tt.wantTokens) {
				t.Errorf("Tokens = %v, want %v", got.Tokens, tt.wantTokens)
			}
		})
	}
}

func TestNormalizedEmpty(t *testing.T) {
	if !Normalize("").Empty() {
		t.Error("Normalize(\"\").Empty() = false, want true")
	}
	if Normalize("laptop").Empty() {
		t.Error("Normalize(\"laptop\").Empty() = true, want false")
	}
}
