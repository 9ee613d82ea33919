package genre

// CanonicalAliases maps common genre variations to canonical slugs.
// Keys are the slugified form of the variation.
var CanonicalAliases = map[string][]string{
	// Sci-fi variations
	"scifi":           {"sci_fi"},
	"sf":              {"sci_fi"},
	"science_fiction": {"sci_fi"},

	// Slice of life variations
	"sol":       {"slice_of_life"},
	"iyashikei": {"slice_of_life"},

	// Demographic spellings
	"shonen": {"shounen"},
	"shojo":  {"shoujo"},

	// Combined labels -> multiple genres
	"romcom":         {"romance", "comedy"},
	"battle_shounen": {"action", "shounen"},
	"mahou_shoujo":   {"fantasy", "shoujo"},

	// Common synonyms
	"scary":    {"horror"},
	"suspense": {"thriller"},
	"mech":     {"mecha"},
	"musical":  {"music"},
}

// NormalizeToSlugs takes a raw genre label and returns canonical slug(s).
// Returns the slugified input if no specific mapping is found.
func NormalizeToSlugs(raw string) []string {
	slug := Slugify(raw)

	if canonical, ok := CanonicalAliases[slug]; ok {
		return canonical
	}

	return []string{slug}
}

// Canonicalize normalizes a genre list to canonical slugs, dropping empties
// and duplicates while preserving first-seen order.
func Canonicalize(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))

	for _, r := range raw {
		for _, slug := range NormalizeToSlugs(r) {
			if slug == "" {
				continue
			}
			if _, dup := seen[slug]; dup {
				continue
			}
			seen[slug] = struct{}{}
			out = append(out, slug)
		}
	}

	return out
}
