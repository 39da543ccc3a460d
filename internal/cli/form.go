package cli

import (
	"github.com/spf13/pflag"

	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

// formFlags collects the builder fields from the command line.
type formFlags struct {
	portions      int
	protein       string
	customProtein string
	amount        int
	starch        string
	customStarch  string
	extras        []string
	style         string
	preference    string
}

func (f *formFlags) register(fs *pflag.FlagSet) {
	def := recipe.DefaultFormData()
	fs.IntVarP(&f.portions, "portions", "n", def.Portions, "number of portions (1-6)")
	fs.StringVarP(&f.protein, "protein", "p", "", "main protein (turkey, salmon, chicken-thighs, chicken-breasts, beef, pork, tofu, beans, eggs, other)")
	fs.StringVar(&f.customProtein, "custom-protein", "", "protein name when --protein=other")
	fs.IntVarP(&f.amount, "amount", "a", def.ProteinAmount, "protein amount in grams (100-1000, steps of 25)")
	fs.StringVarP(&f.starch, "starch", "s", "", "side starch (rice, potato, sweet-potato, pasta, none, other)")
	fs.StringVar(&f.customStarch, "custom-starch", "", "starch name when --starch=other")
	fs.StringSliceVarP(&f.extras, "extra", "e", nil, "extra ingredient, repeatable")
	fs.StringVar(&f.style, "style", "", "cooking style (italian, mediterranean, asian, mexican, american or any custom style)")
	fs.StringVar(&f.preference, "preference", string(def.Preference), "dish preference (healthy, quick, indulgent, comfort, light, none)")
}

func (f *formFlags) form() recipe.FormData {
	form := recipe.DefaultFormData()
	form.Portions = f.portions
	form.Protein = recipe.Protein(f.protein)
	form.CustomProteinName = f.customProtein
	form.ProteinAmount = f.amount
	form.Starch = recipe.Starch(f.starch)
	form.CustomStarchName = f.customStarch
	form.CookingStyle = f.style
	form.Preference = recipe.Preference(f.preference)
	for _, e := range f.extras {
		form.AddIngredient(e)
	}
	return form
}
