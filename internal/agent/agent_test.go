package agent

import (
	"strings"
	"testing"
)

func TestOrFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{"empty output", "", Fallback},
		{"whitespace output", "  \n\t ", Fallback},
		{"real answer passes through", "A humanoid robot has a human-like form.", "A humanoid robot has a human-like form."},
		{"explicit fallback passes through", Fallback, Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := orFallback(tt.answer); got != tt.want {
				t.Errorf("orFallback(%q) = %q, want %q", tt.answer, got, tt.want)
			}
		})
	}
}

// TestInstructions_ContainFallbackLiteral pins the exact fallback phrase in
// the prompt. The model is told to reply with this literal string, so any
// drift between the prompt and the Fallback constant breaks the contract.
func TestInstructions_ContainFallbackLiteral(t *testing.T) {
	t.Parallel()

	if !strings.Contains(instructions, `"`+Fallback+`"`) {
		t.Errorf("instructions do not contain the quoted fallback literal %q", Fallback)
	}
	if !strings.Contains(instructions, "retrieve") {
		t.Error("instructions do not name the retrieve tool")
	}
}
