// Package recipe holds the wizard's domain types: the submitted form, the
// suggestions parsed from the first completion and the full recipe parsed from
// the second.
package recipe

// Protein is the main protein chosen in the builder.
type Protein string

const (
	ProteinTurkey         Protein = "turkey"
	ProteinSalmon         Protein = "salmon"
	ProteinChickenThighs  Protein = "chicken-thighs"
	ProteinChickenBreasts Protein = "chicken-breasts"
	ProteinBeef           Protein = "beef"
	ProteinPork           Protein = "pork"
	ProteinTofu           Protein = "tofu"
	ProteinBeans          Protein = "beans"
	ProteinEggs           Protein = "eggs"
	ProteinOther          Protein = "other"
)

// Proteins lists every accepted protein in display order.
var Proteins = []Protein{
	ProteinTurkey, ProteinSalmon, ProteinChickenThighs, ProteinChickenBreasts,
	ProteinBeef, ProteinPork, ProteinTofu, ProteinBeans, ProteinEggs, ProteinOther,
}

// Starch is the optional side starch.
type Starch string

const (
	StarchRice        Starch = "rice"
	StarchPotato      Starch = "potato"
	StarchSweetPotato Starch = "sweet-potato"
	StarchPasta       Starch = "pasta"
	StarchNone        Starch = "none"
	StarchOther       Starch = "other"
)

// Starches lists every accepted starch in display order.
var Starches = []Starch{
	StarchRice, StarchPotato, StarchSweetPotato, StarchPasta, StarchNone, StarchOther,
}

// Preference is the overall dish character the user asked for.
type Preference string

const (
	PreferenceHealthy   Preference = "healthy"
	PreferenceQuick     Preference = "quick"
	PreferenceIndulgent Preference = "indulgent"
	PreferenceComfort   Preference = "comfort"
	PreferenceLight     Preference = "light"
	PreferenceNone      Preference = "none"
)

// Preferences lists every accepted preference in display order.
var Preferences = []Preference{
	PreferenceHealthy, PreferenceQuick, PreferenceIndulgent,
	PreferenceComfort, PreferenceLight, PreferenceNone,
}

// Built-in cooking styles. Any other non-empty string is accepted as a custom
// style.
const (
	StyleItalian       = "italian"
	StyleMediterranean = "mediterranean"
	StyleAsian         = "asian"
	StyleMexican       = "mexican"
	StyleAmerican      = "american"
)

// Styles lists the built-in cooking styles.
var Styles = []string{StyleItalian, StyleMediterranean, StyleAsian, StyleMexican, StyleAmerican}

// Form limits.
const (
	MinPortions      = 1
	MaxPortions      = 6
	MinProteinAmount = 100
	MaxProteinAmount = 1000
	ProteinStep      = 25
)

// FormData is what the builder submits. It is read-only once a request has
// been issued for it.
type FormData struct {
	Portions          int        `json:"portions" mapstructure:"portions" validate:"min=1,max=6"`
	Protein           Protein    `json:"protein" mapstructure:"protein" validate:"required,oneof=turkey salmon chicken-thighs chicken-breasts beef pork tofu beans eggs other"`
	ProteinAmount     int        `json:"proteinAmount" mapstructure:"proteinAmount" validate:"min=100,max=1000,protein_step"`
	CustomProteinName string     `json:"customProteinName,omitempty" mapstructure:"customProteinName" validate:"required_if=Protein other"`
	Starch            Starch     `json:"starch,omitempty" mapstructure:"starch" validate:"omitempty,oneof=rice potato sweet-potato pasta none other"`
	CustomStarchName  string     `json:"customStarchName,omitempty" mapstructure:"customStarchName" validate:"required_if=Starch other"`
	ExtraIngredients  []string   `json:"extraIngredients" mapstructure:"extraIngredients" validate:"unique,dive,required"`
	CookingStyle      string     `json:"cookingStyle,omitempty" mapstructure:"cookingStyle"`
	Preference        Preference `json:"preference" mapstructure:"preference" validate:"omitempty,oneof=healthy quick indulgent comfort light none"`
}

// DefaultFormData returns the state of a freshly reset builder.
func DefaultFormData() FormData {
	return FormData{
		Portions:         2,
		ProteinAmount:    300,
		ExtraIngredients: []string{},
		Preference:       PreferenceNone,
	}
}

// ProteinName resolves the protein as it should appear in a prompt.
func (f FormData) ProteinName() string {
	if f.Protein == ProteinOther {
		return f.CustomProteinName
	}
	return string(f.Protein)
}

// StarchName resolves the starch as it should appear in a prompt. It returns
// "" when no starch line should be emitted.
func (f FormData) StarchName() string {
	switch f.Starch {
	case "", StarchNone:
		return ""
	case StarchOther:
		return f.CustomStarchName
	default:
		return string(f.Starch)
	}
}

// Suggestion is one recipe idea returned by the first completion.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Nutrition is a partial nutrition summary. A nil field was not found in the
// model output.
type Nutrition struct {
	Calories      *int `json:"calories,omitempty"`
	Protein       *int `json:"protein,omitempty"`
	Carbohydrates *int `json:"carbohydrates,omitempty"`
	Fat           *int `json:"fat,omitempty"`
}

// IsEmpty reports whether no nutrient was found.
func (n Nutrition) IsEmpty() bool {
	return n.Calories == nil && n.Protein == nil && n.Carbohydrates == nil && n.Fat == nil
}

// FullRecipe is the structured form of the detailed-recipe completion.
type FullRecipe struct {
	Title        string    `json:"title"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	Nutrition    Nutrition `json:"nutrition"`
}
