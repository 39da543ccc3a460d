// Package completion performs single request/response exchanges with an
// OpenAI-compatible chat-completion endpoint and classifies failures.
package completion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// Fixed request parameters.
const (
	DefaultModel         = openai.GPT3Dot5Turbo
	DefaultBaseURL       = "https://api.openai.com/v1"
	DefaultTimeout       = 30 * time.Second
	Temperature          = 0.7
	SuggestionsMaxTokens = 500
	FullRecipeMaxTokens  = 1200

	// PlaceholderAPIKey is the value shipped in example env files.
	PlaceholderAPIKey = "your_openai_api_key_here"
)

// Config is read once at construction and never mutated.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client sends prompts to the completion endpoint. It performs no retries.
type Client struct {
	api     *openai.Client
	apiKey  string
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient builds a client from cfg, filling unset fields with defaults.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     log.With().Str("component", "completion").Logger(),
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Complete sends prompt as a single user message and returns the raw text of
// the first choice. Every failure is an *Error.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" || c.apiKey == PlaceholderAPIKey {
		return "", &Error{Kind: KindAuth, Message: msgMissingKey, Status: http.StatusUnauthorized}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: Temperature,
		MaxTokens:   maxTokens,
	})
	elapsed := time.Since(start)

	if err != nil {
		cerr := classify(err)
		c.log.Warn().
			Err(err).
			Str("kind", string(cerr.Kind)).
			Int("status", cerr.Status).
			Dur("elapsed", elapsed).
			Msg("completion request failed")
		return "", cerr
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		c.log.Warn().Dur("elapsed", elapsed).Msg("completion returned no content")
		return "", &Error{Kind: KindEmptyResponse, Message: msgEmptyResponse, Status: http.StatusOK}
	}

	c.log.Debug().
		Int("max_tokens", maxTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("elapsed", elapsed).
		Msg("completion received")

	return resp.Choices[0].Message.Content, nil
}

// classify maps a transport or API failure onto the error taxonomy.
func classify(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fromStatus(apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fromStatus(reqErr.HTTPStatusCode, "", err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: msgTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: msgTimeout, Err: err}
	}

	// Transport failures come back from http.Client as *url.Error.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{Kind: KindNetwork, Message: msgNetwork, Err: err}
	}

	// A 2xx body that is empty or does not decode carries no completion text.
	if isDecodeError(err) {
		return &Error{Kind: KindEmptyResponse, Message: msgEmptyResponse, Status: http.StatusOK, Err: err}
	}

	return &Error{Kind: KindNetwork, Message: msgNetwork, Err: err}
}

func isDecodeError(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func fromStatus(status int, serverMsg string, err error) *Error {
	e := &Error{Status: status, Err: err}
	switch status {
	case http.StatusUnauthorized:
		e.Kind, e.Message = KindAuth, msgInvalidKey
	case http.StatusTooManyRequests:
		e.Kind, e.Message = KindRateLimit, msgRateLimit
	case http.StatusPaymentRequired:
		e.Kind, e.Message = KindQuota, msgQuota
	case http.StatusServiceUnavailable:
		e.Kind, e.Message = KindServiceUnavailable, msgServiceUnavailable
	default:
		e.Kind, e.Message = KindAPIError, msgAPIError
		if strings.TrimSpace(serverMsg) != "" {
			e.Message = serverMsg
		}
	}
	return e
}
