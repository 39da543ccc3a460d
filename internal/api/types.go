package api

import (
	"github.com/pageza/recipe-wizard/backend/internal/model"
	"github.com/pageza/recipe-wizard/backend/internal/recipe"
	"github.com/pageza/recipe-wizard/backend/internal/service"
)

// FullRecipeRequest is the body of POST /recipes/full.
type FullRecipeRequest struct {
	Title string          `json:"title"`
	Form  recipe.FormData `json:"form"`
}

// SelectRequest is the body of POST /wizard/select.
type SelectRequest struct {
	Title string `json:"title"`
}

// SuggestionsResponse wraps a suggestion list. Suggestions is never null.
type SuggestionsResponse struct {
	Suggestions []recipe.Suggestion `json:"suggestions"`
}

// FullRecipeResponse wraps a generated recipe.
type FullRecipeResponse struct {
	Recipe *recipe.FullRecipe `json:"recipe"`
}

// SessionView is a wizard session plus its display cuisine label.
type SessionView struct {
	*service.Session
	Cuisine string `json:"cuisine,omitempty"`
}

// CreateSessionResponse is returned by POST /sessions.
type CreateSessionResponse struct {
	Token   string          `json:"token"`
	Session SessionView     `json:"session"`
	Form    recipe.FormData `json:"form"`
}

// WizardResponse is returned by every wizard operation.
type WizardResponse struct {
	Session SessionView `json:"session"`
}

// WizardErrorResponse carries a failed transition's error with the session
// state it left behind.
type WizardErrorResponse struct {
	Error   string      `json:"error"`
	Kind    string      `json:"kind"`
	Session SessionView `json:"session"`
}

// HistoryResponse lists generated recipes.
type HistoryResponse struct {
	Recipes []model.Recipe `json:"recipes"`
}

// PreferencesResponse wraps saved preferences.
type PreferencesResponse struct {
	Preferences service.Preferences `json:"preferences"`
}

// FormStateResponse carries the form a builder should start from and
// whether it came from saved state.
type FormStateResponse struct {
	Form  recipe.FormData `json:"form"`
	Saved bool            `json:"saved"`
}

func newSessionView(sess *service.Session) SessionView {
	view := SessionView{Session: sess}
	if sess.Form != nil {
		view.Cuisine = recipe.NormalizeCuisine(sess.Form.CookingStyle, "")
	}
	return view
}
