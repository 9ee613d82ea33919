// Package normalize provides utilities for normalizing profile data.
package normalize

import "strings"

// iso639_2to1 maps ISO 639-2 (3-letter) codes to ISO 639-1 (2-letter) codes
// for the languages the platform serves content in.
var iso639_2to1 = map[string]string{
	"eng": "en",
	"sin": "si",
	"tam": "ta",
	"jpn": "ja",
	"hin": "hi",
}

// languageNameToCode maps common language names to ISO 639-1 codes.
var languageNameToCode = map[string]string{
	"english":   "en",
	"sinhala":   "si",
	"sinhalese": "si",
	"tamil":     "ta",
	"japanese":  "ja",
	"hindi":     "hi",
}

// supportedLanguages are the codes a profile may carry. Subtitles ship in
// en/si/ta; ja and hi cover audio preference.
var supportedLanguages = map[string]bool{
	"en": true,
	"si": true,
	"ta": true,
	"ja": true,
	"hi": true,
}

// codeToLanguageName maps supported codes to display names.
var codeToLanguageName = map[string]string{
	"en": "English",
	"si": "Sinhala",
	"ta": "Tamil",
	"ja": "Japanese",
	"hi": "Hindi",
}

// LanguageCode converts various language representations to a supported
// ISO 639-1 code. It handles:
//   - ISO 639-1 codes: "en" -> "en"
//   - ISO 639-2 codes: "sin" -> "si"
//   - Locale codes: "en-US", "si_LK" -> "en", "si"
//   - Language names: "Tamil", "TAMIL" -> "ta"
//
// Returns empty string for unrecognized or unsupported values.
func LanguageCode(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	// Handle locale codes (e.g., "en-US", "si_LK").
	if idx := strings.IndexAny(s, "-_"); idx > 0 {
		s = s[:idx]
	}

	if len(s) == 2 && supportedLanguages[s] {
		return s
	}

	if len(s) == 3 {
		if code, ok := iso639_2to1[s]; ok {
			return code
		}
	}

	if code, ok := languageNameToCode[s]; ok {
		return code
	}

	return ""
}

// Language converts a language representation to its display name.
// "si" -> "Sinhala", "tamil" -> "Tamil". Returns empty string for
// unrecognized values.
func Language(raw string) string {
	code := LanguageCode(raw)
	if code == "" {
		return ""
	}
	return codeToLanguageName[code]
}

// countryNameToCode maps common country spellings to ISO 3166-1 alpha-2.
var countryNameToCode = map[string]string{
	"sri lanka":      "LK",
	"srilanka":       "LK",
	"india":          "IN",
	"united kingdom": "GB",
	"uk":             "GB",
	"united states":  "US",
	"usa":            "US",
	"australia":      "AU",
	"canada":         "CA",
	"japan":          "JP",
}

// CountryCode converts a country representation to ISO 3166-1 alpha-2.
// Already-valid two-letter codes are uppercased and passed through;
// recognized names are mapped. Returns empty string otherwise.
func CountryCode(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	if code, ok := countryNameToCode[s]; ok {
		return code
	}

	if len(s) == 2 && s[0] >= 'a' && s[0] <= 'z' && s[1] >= 'a' && s[1] <= 'z' {
		return strings.ToUpper(s)
	}

	return ""
}
