package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

const suggestionsText = `**Recipe 1:** Lemon Salmon
Bright and zesty.

**Recipe 2:** Salmon Risotto
Creamy rice.

**Recipe 3:** Herb Salmon
Fresh herbs.`

const fullRecipeText = `INGREDIENTS:
- 400g salmon
- 1 cup rice

INSTRUCTIONS:
1. Cook the rice.
2. Bake the salmon.

NUTRITION:
Calories: 450
Protein: 25g`

// completionServer returns content for every chat completion and records the
// last prompt it received.
func completionServer(t *testing.T, content string, lastPrompt *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if lastPrompt != nil && len(req.Messages) > 0 {
			*lastPrompt = req.Messages[len(req.Messages)-1].Content
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-3.5-turbo",
			"choices": []map[string]interface{}{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("ENV", "development")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSuggestCommand(t *testing.T) {
	t.Run("should print numbered suggestions", func(t *testing.T) {
		var prompt string
		srv := completionServer(t, suggestionsText, &prompt)

		out, _, err := run(t, "suggest", "--base-url", srv.URL+"/v1",
			"--protein", "salmon", "--amount", "400", "--starch", "rice",
			"--extra", "lemon", "--extra", "garlic", "--style", "italian")
		require.NoError(t, err)

		assert.Equal(t, "1. Lemon Salmon\n   Bright and zesty.\n2. Salmon Risotto\n   Creamy rice.\n3. Herb Salmon\n   Fresh herbs.\n", out)
		assert.Contains(t, prompt, "salmon (400g)")
		assert.Contains(t, prompt, "lemon, garlic")
	})

	t.Run("should print json", func(t *testing.T) {
		srv := completionServer(t, suggestionsText, nil)

		out, _, err := run(t, "suggest", "--format", "json", "--base-url", srv.URL+"/v1", "--protein", "tofu")
		require.NoError(t, err)

		var body struct {
			Suggestions []recipe.Suggestion `json:"suggestions"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &body))
		require.Len(t, body.Suggestions, 3)
		assert.Equal(t, "Herb Salmon", body.Suggestions[2].Title)
	})

	t.Run("should say so when nothing parses", func(t *testing.T) {
		srv := completionServer(t, "I cannot help with that.", nil)

		out, _, err := run(t, "suggest", "--base-url", srv.URL+"/v1", "--protein", "beef")
		require.NoError(t, err)
		assert.Contains(t, out, "No suggestions")
	})

	t.Run("should reject an invalid form before calling out", func(t *testing.T) {
		var prompt string
		srv := completionServer(t, suggestionsText, &prompt)

		_, errOut, err := run(t, "suggest", "--base-url", srv.URL+"/v1", "--protein", "salmon", "--amount", "110")
		require.Error(t, err)
		assert.ErrorIs(t, err, recipe.ErrInvalidForm)
		assert.Contains(t, errOut, "Error:")
		assert.Empty(t, prompt)
	})
}

func TestRecipeCommand(t *testing.T) {
	t.Run("should print the recipe", func(t *testing.T) {
		var prompt string
		srv := completionServer(t, fullRecipeText, &prompt)

		out, _, err := run(t, "recipe", "Lemon Salmon", "--base-url", srv.URL+"/v1", "--protein", "salmon", "--amount", "400")
		require.NoError(t, err)

		assert.Contains(t, prompt, "Lemon Salmon")
		assert.Contains(t, out, "Lemon Salmon\n\nIngredients:\n  - 400g salmon\n  - 1 cup rice\n")
		assert.Contains(t, out, "  1. Cook the rice.\n  2. Bake the salmon.\n")
		assert.Contains(t, out, "  Calories: 450\n  Protein: 25g\n")
		assert.NotContains(t, out, "Fat:")
	})

	t.Run("should require a title", func(t *testing.T) {
		_, _, err := run(t, "recipe", "--protein", "salmon")
		assert.Error(t, err)
	})
}

func TestConfigFlag(t *testing.T) {
	srv := completionServer(t, suggestionsText, nil)
	cfgFile := filepath.Join(t.TempDir(), "recipewizard.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("openai_base_url: "+srv.URL+"/v1\n"), 0o600))

	out, _, err := run(t, "suggest", "--config", cfgFile, "--protein", "eggs")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Lemon Salmon")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "recipectl dev (commit: none, built: unknown)\n", out)
}
