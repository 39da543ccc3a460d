package service

import (
	"context"

	"github.com/pageza/recipe-wizard/backend/internal/model"
	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

// Completer sends one prompt to the completion endpoint and returns the text.
// *completion.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// IRecipeService generates suggestions and full recipes from a form.
type IRecipeService interface {
	GenerateSuggestions(ctx context.Context, form recipe.FormData) ([]recipe.Suggestion, error)
	GenerateFullRecipe(ctx context.Context, title string, form recipe.FormData) (*recipe.FullRecipe, error)
}

// IHistoryService records and lists generated recipes.
type IHistoryService interface {
	Record(ctx context.Context, sessionID string, fr *recipe.FullRecipe) (*model.Recipe, error)
	List(ctx context.Context, sessionID string, limit int) ([]model.Recipe, error)
}

// IPreferencesService persists per-session preferences and form state.
type IPreferencesService interface {
	GetPreferences(ctx context.Context, sessionID string) Preferences
	SavePreferences(ctx context.Context, sessionID string, prefs Preferences) error
	GetFormState(ctx context.Context, sessionID string) *recipe.FormData
	SaveFormState(ctx context.Context, sessionID string, form recipe.FormData) error
	ClearFormState(ctx context.Context, sessionID string) error
	InitialForm(ctx context.Context, sessionID string) recipe.FormData
}

// IWizardService drives one wizard session through its states.
type IWizardService interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Submit(ctx context.Context, id string, form recipe.FormData) (*Session, error)
	Select(ctx context.Context, id, title string) (*Session, error)
	Retry(ctx context.Context, id string) (*Session, error)
	StartOver(ctx context.Context, id string) (*Session, error)
	GenerateNew(ctx context.Context, id string) (*Session, error)
	TryDifferent(ctx context.Context, id string) (*Session, error)
}
