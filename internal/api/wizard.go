package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-wizard/backend/internal/middleware"
	"github.com/pageza/recipe-wizard/backend/internal/recipe"
	"github.com/pageza/recipe-wizard/backend/internal/service"
)

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(sessionID string) (string, error)
}

// WizardHandler serves sessions, wizard transitions and history.
type WizardHandler struct {
	wizard      service.IWizardService
	preferences service.IPreferencesService
	history     service.IHistoryService
	tokens      TokenIssuer
	auth        gin.HandlerFunc
	rateLimit   gin.HandlerFunc
}

// NewWizardHandler creates a handler. auth is required; rateLimit may be nil.
func NewWizardHandler(wizard service.IWizardService, preferences service.IPreferencesService, history service.IHistoryService, tokens TokenIssuer, auth, rateLimit gin.HandlerFunc) *WizardHandler {
	return &WizardHandler{
		wizard:      wizard,
		preferences: preferences,
		history:     history,
		tokens:      tokens,
		auth:        auth,
		rateLimit:   rateLimit,
	}
}

func (h *WizardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sessions", h.CreateSession)

	wizard := router.Group("/wizard", h.auth)
	{
		wizard.GET("", h.GetSession)
		wizard.GET("/history", h.History)
		wizard.POST("/start-over", h.StartOver)
		wizard.POST("/generate-new", h.GenerateNew)
		wizard.POST("/try-different", h.TryDifferent)

		wizard.POST("/submit", chain(h.rateLimit, h.Submit)...)
		wizard.POST("/select", chain(h.rateLimit, h.Select)...)
		wizard.POST("/retry", chain(h.rateLimit, h.Retry)...)
	}
}

func (h *WizardHandler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.wizard.Create(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	token, err := h.tokens.Issue(sess.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	form := recipe.DefaultFormData()
	if h.preferences != nil {
		form = h.preferences.InitialForm(ctx, sess.ID)
	}
	c.JSON(http.StatusCreated, CreateSessionResponse{
		Token:   token,
		Session: newSessionView(sess),
		Form:    form,
	})
}

func (h *WizardHandler) GetSession(c *gin.Context) {
	sess, err := h.wizard.Get(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, sess, err)
}

func (h *WizardHandler) Submit(c *gin.Context) {
	var form recipe.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.wizard.Submit(c.Request.Context(), middleware.SessionID(c), form)
	h.respond(c, sess, err)
}

func (h *WizardHandler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.wizard.Select(c.Request.Context(), middleware.SessionID(c), req.Title)
	h.respond(c, sess, err)
}

func (h *WizardHandler) Retry(c *gin.Context) {
	sess, err := h.wizard.Retry(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, sess, err)
}

func (h *WizardHandler) StartOver(c *gin.Context) {
	sess, err := h.wizard.StartOver(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, sess, err)
}

func (h *WizardHandler) GenerateNew(c *gin.Context) {
	sess, err := h.wizard.GenerateNew(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, sess, err)
}

func (h *WizardHandler) TryDifferent(c *gin.Context) {
	sess, err := h.wizard.TryDifferent(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, sess, err)
}

func (h *WizardHandler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "limit must be a non-negative integer", Kind: middleware.KindInvalidRequest})
			return
		}
		limit = n
	}

	rows, err := h.history.List(c.Request.Context(), middleware.SessionID(c), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Recipes: rows})
}

// respond writes the session, or the error. A failed generation still
// returns the erred session alongside the mapped status.
func (h *WizardHandler) respond(c *gin.Context, sess *service.Session, err error) {
	if err == nil {
		c.JSON(http.StatusOK, WizardResponse{Session: newSessionView(sess)})
		return
	}
	if sess == nil {
		_ = c.Error(err)
		return
	}

	status, body := middleware.StatusFor(err)
	c.JSON(status, WizardErrorResponse{
		Error:   body.Error,
		Kind:    body.Kind,
		Session: newSessionView(sess),
	})
}
