package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-wizard/backend/internal/recipe"
	"github.com/pageza/recipe-wizard/backend/internal/service"
)

// RecipeHandler serves stateless generation.
type RecipeHandler struct {
	recipes   service.IRecipeService
	rateLimit gin.HandlerFunc
}

// NewRecipeHandler creates a handler. rateLimit may be nil.
func NewRecipeHandler(recipes service.IRecipeService, rateLimit gin.HandlerFunc) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, rateLimit: rateLimit}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes", chain(h.rateLimit)...)
	{
		recipes.POST("/suggestions", h.GenerateSuggestions)
		recipes.POST("/full", h.GenerateFullRecipe)
	}
}

func (h *RecipeHandler) GenerateSuggestions(c *gin.Context) {
	var form recipe.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}

	suggestions, err := h.recipes.GenerateSuggestions(c.Request.Context(), form)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

func (h *RecipeHandler) GenerateFullRecipe(c *gin.Context) {
	var req FullRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	fr, err := h.recipes.GenerateFullRecipe(c.Request.Context(), req.Title, req.Form)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, FullRecipeResponse{Recipe: fr})
}
