package recipe

import "strings"

// cuisineAliases maps the variants models tend to produce onto the canonical
// style names shown to users.
var cuisineAliases = map[string]string{
	"italian":             "Italian",
	"italian-inspired":    "Italian",
	"italian style":       "Italian",
	"mediterranean":       "Mediterranean",
	"mediterranean-style": "Mediterranean",
	"asian":               "Asian",
	"asian-inspired":      "Asian",
	"asian fusion":        "Asian",
	"mexican":             "Mexican",
	"mexican-inspired":    "Mexican",
	"tex-mex":             "Mexican",
	"american":            "American",
	"american-style":      "American",
	"comfort food":        "American",
	"french":              "French",
	"french-inspired":     "French",
}

// NormalizeCuisine returns the display name for a cuisine or cooking style.
// Unknown values are returned unchanged and blank values yield fallback.
func NormalizeCuisine(cuisine, fallback string) string {
	key := strings.ToLower(strings.TrimSpace(cuisine))
	if key == "" {
		return fallback
	}
	if name, ok := cuisineAliases[key]; ok {
		return name
	}
	return cuisine
}
