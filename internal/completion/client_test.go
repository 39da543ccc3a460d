package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (*Client, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	client := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: ts.URL + "/v1",
		Timeout: timeout,
	}, zerolog.Nop())
	return client, &calls
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	body, _ := json.Marshal(content)
	fmt.Fprintf(w, `{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%s},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":20,"total_tokens":30}}`, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"message":%q,"type":"test_error"}}`, message)
}

func TestComplete_Success(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var authHeader, path string

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeCompletion(w, "**Recipe 1:** Test\nA test.")
	}, time.Second)

	text, err := client.Complete(context.Background(), "make me dinner", SuggestionsMaxTokens)

	require.NoError(t, err)
	assert.Equal(t, "**Recipe 1:** Test\nA test.", text)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "/v1/chat/completions", path)
	assert.Equal(t, DefaultModel, got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 0.0001)
	assert.Equal(t, 500, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "make me dinner", got.Messages[0].Content)
}

func TestComplete_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		kind    Kind
		wantMsg string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, message: "bad key", kind: KindAuth, wantMsg: msgInvalidKey},
		{name: "rate limited", status: http.StatusTooManyRequests, message: "slow down", kind: KindRateLimit, wantMsg: msgRateLimit},
		{name: "quota", status: http.StatusPaymentRequired, message: "pay up", kind: KindQuota, wantMsg: msgQuota},
		{name: "unavailable", status: http.StatusServiceUnavailable, message: "down", kind: KindServiceUnavailable, wantMsg: msgServiceUnavailable},
		{name: "other status uses server message", status: http.StatusBadRequest, message: "model not found", kind: KindAPIError, wantMsg: "model not found"},
		{name: "server error", status: http.StatusInternalServerError, message: "boom", kind: KindAPIError, wantMsg: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeError(w, tt.status, tt.message)
			}, time.Second)

			_, err := client.Complete(context.Background(), "prompt", FullRecipeMaxTokens)

			require.Error(t, err)
			var cerr *Error
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.kind, cerr.Kind)
			assert.Equal(t, tt.status, cerr.Status)
			assert.Equal(t, tt.wantMsg, cerr.Message)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls), "no retries")
		})
	}
}

func TestComplete_NonJSONErrorBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>bad gateway</html>")
	}, time.Second)

	_, err := client.Complete(context.Background(), "prompt", 10)

	assert.Equal(t, KindAPIError, KindOf(err))
	assert.ErrorIs(t, err, ErrAPIError)
	assert.Contains(t, err.Error(), "status 502")
}

func TestComplete_Timeout(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	_, err := client.Complete(context.Background(), "prompt", 10)

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestComplete_Network(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: url}, zerolog.Nop())
	_, err := client.Complete(context.Background(), "prompt", 10)

	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestComplete_ConnectionDropped(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}, time.Second)

	_, err := client.Complete(context.Background(), "prompt", 10)

	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestComplete_EmptyResponse(t *testing.T) {
	bodies := map[string]func(w http.ResponseWriter){
		"whitespace content": func(w http.ResponseWriter) { writeCompletion(w, "  \n\t ") },
		"no choices": func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"choices":[]}`)
		},
		"malformed body": func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"choices":[`)
		},
		"empty body": func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
		},
		"whitespace body": func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, "   \n")
		},
		"not json": func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "text/plain")
			fmt.Fprint(w, "<html>oops</html>")
		},
	}

	for name, write := range bodies {
		t.Run(name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { write(w) }, time.Second)

			_, err := client.Complete(context.Background(), "prompt", 10)

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, KindEmptyResponse, cerr.Kind)
			assert.Equal(t, http.StatusOK, cerr.Status)
		})
	}
}

func TestComplete_MissingKeyFailsFast(t *testing.T) {
	for _, key := range []string{"", PlaceholderAPIKey} {
		t.Run(fmt.Sprintf("key=%q", key), func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
			}))
			defer ts.Close()

			client := NewClient(Config{APIKey: key, BaseURL: ts.URL}, zerolog.Nop())
			_, err := client.Complete(context.Background(), "prompt", 10)

			assert.ErrorIs(t, err, ErrAuth)
			assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindQuota, KindOf(fmt.Errorf("wrapped: %w", &Error{Kind: KindQuota})))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.False(t, errors.Is(&Error{Kind: KindQuota}, ErrAuth))
}
