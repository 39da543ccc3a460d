package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

func sampleForm() recipe.FormData {
	return recipe.FormData{
		Portions:         4,
		Protein:          recipe.ProteinChickenThighs,
		ProteinAmount:    500,
		Starch:           recipe.StarchSweetPotato,
		ExtraIngredients: []string{"garlic", "spinach"},
		CookingStyle:     recipe.StyleAsian,
		Preference:       recipe.PreferenceQuick,
	}
}

func TestBuildSuggestionsPrompt(t *testing.T) {
	out := BuildSuggestionsPrompt(sampleForm())

	assert.Contains(t, out, "- Protein: chicken-thighs (500g)\n")
	assert.Contains(t, out, "- Starch: sweet-potato\n")
	assert.Contains(t, out, "- Additional ingredients: garlic, spinach\n")
	assert.Contains(t, out, "- Portions: 4\n")
	assert.Contains(t, out, "- Style: asian\n")
	assert.Contains(t, out, "- Preference: quick\n")
	for i := 1; i <= 3; i++ {
		assert.Contains(t, out, RecipeMarker+" "+string(rune('0'+i))+":** [Title]")
	}
}

func TestBuildSuggestionsPrompt_OmitsUnsetFields(t *testing.T) {
	form := sampleForm()
	form.Starch = recipe.StarchNone
	form.ExtraIngredients = nil
	form.CookingStyle = ""
	form.Preference = recipe.PreferenceNone

	out := BuildSuggestionsPrompt(form)

	assert.NotContains(t, out, "Starch:")
	assert.NotContains(t, out, "Additional ingredients:")
	assert.NotContains(t, out, "Style:")
	assert.NotContains(t, out, "Preference:")
	assert.NotContains(t, out, "\n\n\n", "omitted fields must not leave blank lines behind")
}

func TestBuildSuggestionsPrompt_CustomProtein(t *testing.T) {
	form := sampleForm()
	form.Protein = recipe.ProteinOther
	form.CustomProteinName = "venison loin"

	out := BuildSuggestionsPrompt(form)

	assert.Contains(t, out, "- Protein: venison loin (500g)")
	assert.NotContains(t, out, "Protein: other")
}

func TestBuildSuggestionsPrompt_CustomStarch(t *testing.T) {
	form := sampleForm()
	form.Starch = recipe.StarchOther
	form.CustomStarchName = "polenta"

	out := BuildSuggestionsPrompt(form)

	assert.Contains(t, out, "- Starch: polenta\n")
}

func TestBuildSuggestionsPrompt_Deterministic(t *testing.T) {
	form := sampleForm()
	assert.Equal(t, BuildSuggestionsPrompt(form), BuildSuggestionsPrompt(form))
	assert.Equal(t, BuildFullRecipePrompt("Soy Glazed Thighs", form), BuildFullRecipePrompt("Soy Glazed Thighs", form))
}

func TestBuildFullRecipePrompt(t *testing.T) {
	out := BuildFullRecipePrompt("Honey Garlic Thighs", sampleForm())

	assert.True(t, strings.HasPrefix(out, `Create a detailed recipe for "Honey Garlic Thighs" using:`))
	assert.Contains(t, out, "- Protein: chicken-thighs (500g)")
	assert.Contains(t, out, IngredientsHeader+":")
	assert.Contains(t, out, InstructionsHeader+":")
	assert.Contains(t, out, NutritionHeader+" (be accurate with calculations):")
	assert.Contains(t, out, "metric units")
	assert.Contains(t, out, "numbered")
	assert.NotContains(t, out, "Preference:")
}
