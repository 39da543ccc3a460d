// Package prompt renders the two natural-language prompts sent to the
// completion endpoint. The output is a pure function of its input.
package prompt

import (
	"fmt"
	"strings"

	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

// Section markers the parsers key off. They must reach the model verbatim.
const (
	RecipeMarker       = "**Recipe"
	IngredientsHeader  = "INGREDIENTS"
	InstructionsHeader = "INSTRUCTIONS"
	NutritionHeader    = "NUTRITION"
)

const suggestionsInstructions = `For each recipe, provide:
1. A creative recipe title
2. A brief 1-2 sentence description

Format as:
**Recipe 1:** [Title]
[Description]

**Recipe 2:** [Title]
[Description]

**Recipe 3:** [Title]
[Description]`

const fullRecipeInstructions = `Please provide:

INGREDIENTS:
- List all ingredients with exact measurements in metric units

INSTRUCTIONS:
- Clear, numbered step-by-step cooking instructions

NUTRITION (be accurate with calculations):
- Total calories and per serving
- Total protein (g) and per serving
- Total carbohydrates (g) and per serving
- Total fat (g) and per serving

Format the response clearly with these exact section headers.`

// BuildSuggestionsPrompt asks for three titled recipe ideas.
func BuildSuggestionsPrompt(form recipe.FormData) string {
	var b strings.Builder
	b.WriteString("Generate 3 different recipe ideas using these ingredients:\n")
	writeIngredients(&b, form)
	if pref := preferenceLine(form.Preference); pref != "" {
		b.WriteString(pref)
	}
	b.WriteString("\n")
	b.WriteString(suggestionsInstructions)
	return b.String()
}

// BuildFullRecipePrompt asks for the sectioned detail of the chosen title.
func BuildFullRecipePrompt(title string, form recipe.FormData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed recipe for \"%s\" using:\n", title)
	writeIngredients(&b, form)
	b.WriteString("\n")
	b.WriteString(fullRecipeInstructions)
	return b.String()
}

// writeIngredients emits the bullet list shared by both prompts. Omitted
// fields produce no line at all.
func writeIngredients(b *strings.Builder, form recipe.FormData) {
	fmt.Fprintf(b, "- Protein: %s (%dg)\n", form.ProteinName(), form.ProteinAmount)
	if starch := form.StarchName(); starch != "" {
		fmt.Fprintf(b, "- Starch: %s\n", starch)
	}
	if len(form.ExtraIngredients) > 0 {
		fmt.Fprintf(b, "- Additional ingredients: %s\n", strings.Join(form.ExtraIngredients, ", "))
	}
	fmt.Fprintf(b, "- Portions: %d\n", form.Portions)
	if style := strings.TrimSpace(form.CookingStyle); style != "" {
		fmt.Fprintf(b, "- Style: %s\n", style)
	}
}

func preferenceLine(p recipe.Preference) string {
	if p == "" || p == recipe.PreferenceNone {
		return ""
	}
	return fmt.Sprintf("- Preference: %s\n", p)
}
