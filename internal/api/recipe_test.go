package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-wizard/backend/internal/completion"
	"github.com/pageza/recipe-wizard/backend/internal/middleware"
	"github.com/pageza/recipe-wizard/backend/internal/mocks"
	"github.com/pageza/recipe-wizard/backend/internal/recipe"
	"github.com/pageza/recipe-wizard/backend/internal/service"
)

func setupRecipeRouter(recipes service.IRecipeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler(zerolog.Nop()))
	NewRecipeHandler(recipes, nil).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateSuggestions(t *testing.T) {
	t.Run("should return an empty list rather than null", func(t *testing.T) {
		recipes := new(mocks.MockRecipeService)
		recipes.On("GenerateSuggestions", mock.Anything, mock.Anything).Return([]recipe.Suggestion{}, nil)

		w := post(setupRecipeRouter(recipes), "/api/v1/recipes/suggestions", `{"protein":"tofu","portions":2,"proteinAmount":300}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"suggestions":[]}`, w.Body.String())
	})

	t.Run("should decode the form", func(t *testing.T) {
		recipes := new(mocks.MockRecipeService)
		recipes.On("GenerateSuggestions", mock.Anything, mock.MatchedBy(func(f recipe.FormData) bool {
			return f.Protein == recipe.ProteinSalmon && f.ProteinAmount == 400 && len(f.ExtraIngredients) == 1
		})).Return([]recipe.Suggestion{{Title: "A", Description: "B"}}, nil).Once()

		w := post(setupRecipeRouter(recipes), "/api/v1/recipes/suggestions",
			`{"protein":"salmon","proteinAmount":400,"portions":2,"extraIngredients":["lemon"]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body SuggestionsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []recipe.Suggestion{{Title: "A", Description: "B"}}, body.Suggestions)
		recipes.AssertExpectations(t)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		recipes := new(mocks.MockRecipeService)
		w := post(setupRecipeRouter(recipes), "/api/v1/recipes/suggestions", `{"protein":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"kind":"invalid_request"`)
		recipes.AssertNotCalled(t, "GenerateSuggestions", mock.Anything, mock.Anything)
	})

	t.Run("should map completion errors", func(t *testing.T) {
		tests := []struct {
			kind   completion.Kind
			status int
		}{
			{completion.KindRateLimit, http.StatusTooManyRequests},
			{completion.KindQuota, http.StatusPaymentRequired},
			{completion.KindServiceUnavailable, http.StatusServiceUnavailable},
			{completion.KindTimeout, http.StatusGatewayTimeout},
			{completion.KindAuth, http.StatusBadGateway},
			{completion.KindAPIError, http.StatusBadGateway},
		}
		for _, tt := range tests {
			recipes := new(mocks.MockRecipeService)
			recipes.On("GenerateSuggestions", mock.Anything, mock.Anything).
				Return(nil, &completion.Error{Kind: tt.kind, Message: "upstream said no"})

			w := post(setupRecipeRouter(recipes), "/api/v1/recipes/suggestions", `{}`)
			assert.Equal(t, tt.status, w.Code, string(tt.kind))
			assert.JSONEq(t, `{"error":"upstream said no","kind":"`+string(tt.kind)+`"}`, w.Body.String())
		}
	})
}

func TestGenerateFullRecipe(t *testing.T) {
	t.Run("should pass title and form", func(t *testing.T) {
		calories := 320
		recipes := new(mocks.MockRecipeService)
		recipes.On("GenerateFullRecipe", mock.Anything, "Tofu Stir Fry", mock.Anything).Return(&recipe.FullRecipe{
			Title:        "Tofu Stir Fry",
			Ingredients:  []string{"tofu"},
			Instructions: []string{"1. Fry."},
			Nutrition:    recipe.Nutrition{Calories: &calories},
		}, nil)

		w := post(setupRecipeRouter(recipes), "/api/v1/recipes/full", `{"title":"Tofu Stir Fry","form":{"protein":"tofu"}}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"recipe":{"title":"Tofu Stir Fry","ingredients":["tofu"],"instructions":["1. Fry."],"nutrition":{"calories":320}}}`, w.Body.String())
	})

	t.Run("should report a missing title", func(t *testing.T) {
		recipes := new(mocks.MockRecipeService)
		recipes.On("GenerateFullRecipe", mock.Anything, "", mock.Anything).Return(nil, service.ErrEmptyTitle)

		w := post(setupRecipeRouter(recipes), "/api/v1/recipes/full", `{"form":{}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"kind":"invalid_request"`)
	})
}
