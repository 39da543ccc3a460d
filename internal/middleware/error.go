package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipe-wizard/backend/internal/completion"
	"github.com/pageza/recipe-wizard/backend/internal/recipe"
	"github.com/pageza/recipe-wizard/backend/internal/service"
)

// Error kinds for failures that do not come from the completion client.
const (
	KindInvalidForm       = "invalid_form"
	KindInvalidRequest    = "invalid_request"
	KindUnauthorized      = "unauthorized"
	KindSessionNotFound   = "session_not_found"
	KindInvalidTransition = "invalid_transition"
	KindRateLimited       = "rate_limited"
	KindInternal          = "internal"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error  string              `json:"error"`
	Kind   string              `json:"kind"`
	Fields []recipe.FieldError `json:"fields,omitempty"`
}

// StatusFor maps err to an HTTP status and response body.
func StatusFor(err error) (int, ErrorResponse) {
	var cerr *completion.Error
	if errors.As(err, &cerr) {
		return completionStatus(cerr.Kind), ErrorResponse{Error: cerr.Message, Kind: string(cerr.Kind)}
	}

	var verr *recipe.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, ErrorResponse{Error: "invalid form", Kind: KindInvalidForm, Fields: verr.Fields}
	}

	switch {
	case errors.Is(err, service.ErrEmptyTitle), errors.Is(err, service.ErrUnknownSuggestion):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindInvalidRequest}
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, ErrorResponse{Error: err.Error(), Kind: KindUnauthorized}
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Kind: KindSessionNotFound}
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict, ErrorResponse{Error: err.Error(), Kind: KindInvalidTransition}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error", Kind: KindInternal}
}

func completionStatus(kind completion.Kind) int {
	switch kind {
	case completion.KindRateLimit:
		return http.StatusTooManyRequests
	case completion.KindQuota:
		return http.StatusPaymentRequired
	case completion.KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case completion.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// ErrorHandler renders the last error attached with c.Error as JSON and turns
// panics into a 500.
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", c.Request.URL.Path).Msg("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error", Kind: KindInternal})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := StatusFor(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		}
		c.JSON(status, body)
	}
}
