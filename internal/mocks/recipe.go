package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-wizard/backend/internal/model"
	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// GenerateSuggestions mocks the GenerateSuggestions method
func (m *MockRecipeService) GenerateSuggestions(ctx context.Context, form recipe.FormData) ([]recipe.Suggestion, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Suggestion), args.Error(1)
}

// GenerateFullRecipe mocks the GenerateFullRecipe method
func (m *MockRecipeService) GenerateFullRecipe(ctx context.Context, title string, form recipe.FormData) (*recipe.FullRecipe, error) {
	args := m.Called(ctx, title, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.FullRecipe), args.Error(1)
}

// MockHistoryService is a mock implementation of the history service
type MockHistoryService struct {
	mock.Mock
}

// Record mocks the Record method
func (m *MockHistoryService) Record(ctx context.Context, sessionID string, fr *recipe.FullRecipe) (*model.Recipe, error) {
	args := m.Called(ctx, sessionID, fr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// List mocks the List method
func (m *MockHistoryService) List(ctx context.Context, sessionID string, limit int) ([]model.Recipe, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}
