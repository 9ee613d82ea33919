package util

import "testing"

func TestNormalizeTagSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "MECHA", "mecha"},
		{"spaces to dashes", "time skip", "time-skip"},
		{"underscores to dashes", "time_skip", "time-skip"},
		{"already normalized", "time-skip", "time-skip"},

		// Whitespace handling
		{"trim whitespace", "  mecha  ", "mecha"},
		{"multiple spaces", "time   skip", "time-skip"},
		{"tabs and spaces", "time\t skip", "time-skip"},

		// Special characters
		{"emoji removal", "⚔️ Swordplay!", "swordplay"},
		{"slash separator", "action/adventure", "action-adventure"},
		{"apostrophe removal", "demon's blade", "demons-blade"},

		// Dash handling
		{"multiple dashes", "time--skip", "time-skip"},
		{"leading dashes", "--mecha", "mecha"},
		{"trailing dashes", "mecha--", "mecha"},

		// Edge cases
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "top10", "top10"},

		// Real-world examples
		{"tournament arc", "Tournament Arc", "tournament-arc"},
		{"found family", "Found Family", "found-family"},
		{"power system", "power_system", "power-system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeTagSlug(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeTagSlug(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"Time Skip", "time_skip", "", "Mecha", "!!!"})
	want := []string{"time-skip", "mecha"}

	if len(got) != len(want) {
		t.Fatalf("NormalizeTags returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeTags[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
