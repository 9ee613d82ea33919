package normalize

import "testing"

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"si", "si"},
		{"SI", "si"},
		{"sin", "si"},
		{"tam", "ta"},
		{"Sinhala", "si"},
		{"TAMIL", "ta"},
		{"si_LK", "si"},
		{"en-US", "en"},
		{"japanese", "ja"},
		{"", ""},
		{"klingon", ""},
		{"fr", ""}, // not a supported UI language
	}

	for _, tt := range tests {
		if got := LanguageCode(tt.input); got != tt.expected {
			t.Errorf("LanguageCode(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestLanguage(t *testing.T) {
	if got := Language("sin"); got != "Sinhala" {
		t.Errorf("Language(\"sin\") = %q, want Sinhala", got)
	}
	if got := Language("nope"); got != "" {
		t.Errorf("Language(\"nope\") = %q, want empty", got)
	}
}

func TestCountryCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"LK", "LK"},
		{"lk", "LK"},
		{"Sri Lanka", "LK"},
		{"usa", "US"},
		{"India", "IN"},
		{"", ""},
		{"Atlantis", ""},
	}

	for _, tt := range tests {
		if got := CountryCode(tt.input); got != tt.expected {
			t.Errorf("CountryCode(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
