// Package parser turns free-text completions into structured recipe data.
//
// Parsing never fails: text that does not match yields empty lists and absent
// fields, which callers render as a degraded but valid result.
package parser

import (
	"regexp"
	"strings"

	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

// MaxSuggestions is how many suggestions are kept from one completion.
const MaxSuggestions = 3

const markerLiteral = "**Recipe"

var recipeMarkerRe = regexp.MustCompile(`\*\*Recipe \d+:\*\*\s*`)

// ParseSuggestions extracts up to MaxSuggestions (title, description) pairs.
// The result is never nil.
func ParseSuggestions(text string) []recipe.Suggestion {
	lines := splitLines(text)

	suggestions := parseMarkedBlocks(lines)
	if len(suggestions) == 0 {
		suggestions = parseLinePairs(lines)
	}

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

// parseMarkedBlocks reads "**Recipe N:** Title" blocks. The description runs
// from the following line until a blank line or the next marker.
func parseMarkedBlocks(lines []string) []recipe.Suggestion {
	out := make([]recipe.Suggestion, 0, MaxSuggestions)

	for i := 0; i < len(lines); {
		loc := recipeMarkerRe.FindStringIndex(lines[i])
		if loc == nil {
			i++
			continue
		}

		title := strings.TrimSpace(lines[i][loc[1]:])
		next := i + 1
		if title == "" {
			// Title placed on the line after the marker.
			for next < len(lines) && strings.TrimSpace(lines[next]) == "" {
				next++
			}
			if next >= len(lines) || strings.Contains(lines[next], markerLiteral) {
				i = next
				continue
			}
			title = strings.TrimSpace(lines[next])
			next++
		}

		var desc []string
		for next < len(lines) {
			line := strings.TrimSpace(lines[next])
			if line == "" || strings.Contains(line, markerLiteral) {
				break
			}
			desc = append(desc, line)
			next++
		}

		if len(desc) > 0 {
			out = append(out, recipe.Suggestion{
				Title:       title,
				Description: strings.TrimSpace(strings.Join(desc, "\n")),
			})
		}
		i = next
	}

	return out
}

// parseLinePairs is the fallback for output that ignored the template: non-empty
// lines are taken two at a time and a pair counts when its first line mentions
// "Recipe".
func parseLinePairs(lines []string) []recipe.Suggestion {
	nonEmpty := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonEmpty = append(nonEmpty, line)
		}
	}

	out := make([]recipe.Suggestion, 0, MaxSuggestions)
	for i := 0; i+1 < len(nonEmpty); i += 2 {
		if !strings.Contains(nonEmpty[i], "Recipe") {
			continue
		}
		out = append(out, recipe.Suggestion{
			Title:       strings.TrimSpace(stripFirstMarker(nonEmpty[i])),
			Description: strings.TrimSpace(nonEmpty[i+1]),
		})
	}
	return out
}

func stripFirstMarker(line string) string {
	loc := recipeMarkerRe.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[:loc[0]] + line[loc[1]:]
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
