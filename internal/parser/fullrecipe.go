package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

// section is the parser cursor while scanning a detailed recipe.
type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionInstructions
	sectionNutrition
)

var (
	numberedStepRe = regexp.MustCompile(`^\d+\.`)
	numberRe       = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// bulletMarkers are the leading glyphs accepted on ingredient lines.
var bulletMarkers = []string{"-", "•"}

// ParseFullRecipe scans the completion line by line. The title is taken from
// the caller, not from the text.
func ParseFullRecipe(text, title string) recipe.FullRecipe {
	out := recipe.FullRecipe{
		Title:        title,
		Ingredients:  []string{},
		Instructions: []string{},
	}

	cur := sectionNone
	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if next, ok := headerSection(line); ok {
			cur = next
			continue
		}

		switch cur {
		case sectionIngredients:
			if item, ok := stripBullet(line); ok {
				out.Ingredients = append(out.Ingredients, item)
			}
		case sectionInstructions:
			if numberedStepRe.MatchString(line) {
				out.Instructions = append(out.Instructions, line)
			}
		case sectionNutrition:
			applyNutritionLine(&out.Nutrition, line)
		}
	}

	return out
}

// headerSection reports whether the line switches sections. Header lines are
// not data.
func headerSection(line string) (section, bool) {
	upper := strings.ToUpper(line)
	switch {
	case strings.Contains(upper, "INGREDIENTS"):
		return sectionIngredients, true
	case strings.Contains(upper, "INSTRUCTIONS"):
		return sectionInstructions, true
	case strings.Contains(upper, "NUTRITION"):
		return sectionNutrition, true
	}
	return sectionNone, false
}

func stripBullet(line string) (string, bool) {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(line, m) {
			return strings.TrimSpace(strings.TrimPrefix(line, m)), true
		}
	}
	return "", false
}

// applyNutritionLine attributes the line to at most one nutrient, checked in
// the order calories, protein, carb, fat. A keyword with no number leaves the
// field untouched.
func applyNutritionLine(n *recipe.Nutrition, line string) {
	lower := strings.ToLower(line)

	var field **int
	switch {
	case strings.Contains(lower, "calories"):
		field = &n.Calories
	case strings.Contains(lower, "protein"):
		field = &n.Protein
	case strings.Contains(lower, "carb"):
		field = &n.Carbohydrates
	case strings.Contains(lower, "fat"):
		field = &n.Fat
	default:
		return
	}

	v, ok := firstNumber(line)
	if !ok {
		return
	}
	*field = &v
}

func firstNumber(line string) (int, bool) {
	m := numberRe.FindString(line)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(f)), true
}
