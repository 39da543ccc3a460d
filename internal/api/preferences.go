package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-wizard/backend/internal/middleware"
	"github.com/pageza/recipe-wizard/backend/internal/recipe"
	"github.com/pageza/recipe-wizard/backend/internal/service"
)

// PreferencesHandler serves saved preferences and builder form state.
type PreferencesHandler struct {
	preferences service.IPreferencesService
	auth        gin.HandlerFunc
}

func NewPreferencesHandler(preferences service.IPreferencesService, auth gin.HandlerFunc) *PreferencesHandler {
	return &PreferencesHandler{preferences: preferences, auth: auth}
}

func (h *PreferencesHandler) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("/preferences", h.auth)
	{
		prefs.GET("", h.GetPreferences)
		prefs.PUT("", h.SavePreferences)
	}

	form := router.Group("/form-state", h.auth)
	{
		form.GET("", h.GetFormState)
		form.PUT("", h.SaveFormState)
		form.DELETE("", h.ClearFormState)
	}
}

func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	prefs := h.preferences.GetPreferences(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, PreferencesResponse{Preferences: prefs})
}

func (h *PreferencesHandler) SavePreferences(c *gin.Context) {
	var prefs service.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.preferences.SavePreferences(c.Request.Context(), middleware.SessionID(c), prefs); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, PreferencesResponse{Preferences: prefs})
}

func (h *PreferencesHandler) GetFormState(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.SessionID(c)
	saved := h.preferences.GetFormState(ctx, id) != nil
	c.JSON(http.StatusOK, FormStateResponse{Form: h.preferences.InitialForm(ctx, id), Saved: saved})
}

// SaveFormState stores an in-progress form. It is not validated.
func (h *PreferencesHandler) SaveFormState(c *gin.Context) {
	var form recipe.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.preferences.SaveFormState(c.Request.Context(), middleware.SessionID(c), form); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, FormStateResponse{Form: form, Saved: true})
}

func (h *PreferencesHandler) ClearFormState(c *gin.Context) {
	if err := h.preferences.ClearFormState(c.Request.Context(), middleware.SessionID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
