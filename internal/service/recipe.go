package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pageza/recipe-wizard/backend/internal/completion"
	"github.com/pageza/recipe-wizard/backend/internal/parser"
	"github.com/pageza/recipe-wizard/backend/internal/prompt"
	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

// ErrEmptyTitle is returned when a full recipe is requested without a title.
var ErrEmptyTitle = errors.New("recipe title is required")

// RecipeService composes prompt building, completion and parsing.
type RecipeService struct {
	completer Completer
	log       zerolog.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(completer Completer, log zerolog.Logger) *RecipeService {
	return &RecipeService{
		completer: completer,
		log:       log.With().Str("component", "recipe_service").Logger(),
	}
}

// GenerateSuggestions asks for three recipe ideas. Zero parsed suggestions is
// a successful result.
func (s *RecipeService) GenerateSuggestions(ctx context.Context, form recipe.FormData) ([]recipe.Suggestion, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	text, err := s.completer.Complete(ctx, prompt.BuildSuggestionsPrompt(form), completion.SuggestionsMaxTokens)
	if err != nil {
		return nil, err
	}

	suggestions := parser.ParseSuggestions(text)
	if len(suggestions) == 0 {
		s.log.Warn().Int("response_length", len(text)).Msg("no suggestions parsed from completion")
	} else {
		s.log.Debug().Int("count", len(suggestions)).Msg("parsed suggestions")
	}
	return suggestions, nil
}

// GenerateFullRecipe expands title into ingredients, instructions and nutrition.
func (s *RecipeService) GenerateFullRecipe(ctx context.Context, title string, form recipe.FormData) (*recipe.FullRecipe, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	text, err := s.completer.Complete(ctx, prompt.BuildFullRecipePrompt(title, form), completion.FullRecipeMaxTokens)
	if err != nil {
		return nil, err
	}

	fr := parser.ParseFullRecipe(text, title)
	s.log.Debug().
		Str("title", title).
		Int("ingredients", len(fr.Ingredients)).
		Int("instructions", len(fr.Instructions)).
		Bool("nutrition", !fr.Nutrition.IsEmpty()).
		Msg("parsed full recipe")
	return &fr, nil
}
