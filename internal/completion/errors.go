package completion

import (
	"errors"
	"fmt"
)

// Kind classifies why a completion request failed.
type Kind string

const (
	KindAuth               Kind = "auth"
	KindRateLimit          Kind = "rate_limit"
	KindQuota              Kind = "quota"
	KindServiceUnavailable Kind = "service_unavailable"
	KindTimeout            Kind = "timeout"
	KindNetwork            Kind = "network"
	KindAPIError           Kind = "api_error"
	KindEmptyResponse      Kind = "empty_response"
)

// Error is returned by Client.Complete for every failure. Status is the HTTP
// status of the upstream response, or 0 when none was received.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("completion %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("completion %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrRateLimit)
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrAuth               = &Error{Kind: KindAuth}
	ErrRateLimit          = &Error{Kind: KindRateLimit}
	ErrQuota              = &Error{Kind: KindQuota}
	ErrServiceUnavailable = &Error{Kind: KindServiceUnavailable}
	ErrTimeout            = &Error{Kind: KindTimeout}
	ErrNetwork            = &Error{Kind: KindNetwork}
	ErrAPIError           = &Error{Kind: KindAPIError}
	ErrEmptyResponse      = &Error{Kind: KindEmptyResponse}
)

// KindOf returns the kind of a completion error, or "" for any other error.
func KindOf(err error) Kind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return ""
}

// Default user-facing messages per kind.
const (
	msgMissingKey         = "API key is not configured. Please set OPENAI_API_KEY."
	msgInvalidKey         = "Invalid API key. Please check your API key."
	msgRateLimit          = "Rate limit exceeded. Please try again in a moment."
	msgQuota              = "Insufficient quota. Please check your account billing."
	msgServiceUnavailable = "The completion service is temporarily unavailable. Please try again later."
	msgTimeout            = "Request timed out. Please try again."
	msgNetwork            = "Network error. Please check your internet connection."
	msgAPIError           = "An error occurred while communicating with the completion service."
	msgEmptyResponse      = "Empty response from the completion service."
)
