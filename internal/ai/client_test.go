package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onemeal-app/onemeal-backend/config"
)

// fakeGemini serves the two endpoints the client touches: the model listing
// and generateContent. The reply func decides what text comes back.
type fakeGemini struct {
	models []map[string]any
	reply  func(model string, req generateRequest) string

	listCalls     int
	generateCalls int
	lastModel     string
	lastRequest   generateRequest
}

func (f *fakeGemini) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1beta/models":
			f.listCalls++
			_ = json.NewEncoder(w).Encode(map[string]any{"models": f.models})

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":generateContent"):
			f.generateCalls++
			var req generateRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			f.lastRequest = req

			name := strings.TrimPrefix(r.URL.Path, "/v1beta/models/")
			f.lastModel = strings.TrimSuffix(name, ":generateContent")

			text := f.reply(f.lastModel, req)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
				},
			})

		default:
			http.NotFound(w, r)
		}
	}
}

func defaultModels() []map[string]any {
	return []map[string]any{
		{"name": "models/gemini-pro-vision", "supportedGenerationMethods": []string{"generateContent"}},
		{"name": "models/gemini-1.5-flash", "supportedGenerationMethods": []string{"generateContent"}},
		{"name": "models/embedding-001", "supportedGenerationMethods": []string{"embedContent"}},
	}
}

func newTestClient(t *testing.T, f *fakeGemini) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return NewClient(&config.AIConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL + "/v1beta",
		RatePerSec: 1000,
		Timeout:    5 * time.Second,
	})
}

func TestVerifyFoodImage(t *testing.T) {
	t.Run("accepts when the answer contains YES", func(t *testing.T) {
		f := &fakeGemini{models: defaultModels(), reply: func(string, generateRequest) string {
			return "Sure! YES, that is food."
		}}
		c := newTestClient(t, f)

		ok, verdict, err := c.VerifyFoodImage(context.Background(), "image/jpeg", []byte{0xff, 0xd8})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, verdict, "YES")

		assert.Equal(t, "gemini-1.5-flash", f.lastModel, "vision calls want a flash model")
		require.Len(t, f.lastRequest.Contents, 1)
		parts := f.lastRequest.Contents[0].Parts
		require.Len(t, parts, 2)
		require.NotNil(t, parts[1].InlineData)
		assert.Equal(t, "image/jpeg", parts[1].InlineData.MIMEType)
	})

	t.Run("rejects on NO", func(t *testing.T) {
		f := &fakeGemini{models: defaultModels(), reply: func(string, generateRequest) string {
			return "no"
		}}
		c := newTestClient(t, f)

		ok, verdict, err := c.VerifyFoodImage(context.Background(), "image/png", []byte{1})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "NO", verdict)
	})

	t.Run("no flash model available", func(t *testing.T) {
		f := &fakeGemini{models: []map[string]any{
			{"name": "models/gemini-pro", "supportedGenerationMethods": []string{"generateContent"}},
		}}
		c := newTestClient(t, f)

		_, _, err := c.VerifyFoodImage(context.Background(), "image/png", []byte{1})
		assert.ErrorIs(t, err, ErrNoModel)
	})
}

func TestSuggestRecipes(t *testing.T) {
	recipeJSON := `[{"title":"Dal Tadka","time":"30 mins","calories":"400 kcal","tags":["Lunch"],"ingredients":["dal","ghee"],"instructions":["Boil","Temper"]}]`

	t.Run("parses a fenced answer", func(t *testing.T) {
		f := &fakeGemini{models: defaultModels(), reply: func(string, generateRequest) string {
			return "```json\n" + recipeJSON + "\n```"
		}}
		c := newTestClient(t, f)

		recipes, err := c.SuggestRecipes(context.Background(), ModeIngredients, "dal, ghee")
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Dal Tadka", recipes[0].Title)
		assert.Equal(t, []string{"Boil", "Temper"}, recipes[0].Instructions)

		assert.NotContains(t, f.lastModel, "vision", "text calls avoid vision models")
		assert.Contains(t, f.lastRequest.Contents[0].Parts[0].Text, "dal, ghee")
	})

	t.Run("parses a bare answer", func(t *testing.T) {
		f := &fakeGemini{models: defaultModels(), reply: func(string, generateRequest) string {
			return recipeJSON
		}}
		c := newTestClient(t, f)

		recipes, err := c.SuggestRecipes(context.Background(), ModeDiet, "weight loss")
		require.NoError(t, err)
		assert.Len(t, recipes, 1)
	})

	t.Run("malformed JSON is not papered over", func(t *testing.T) {
		f := &fakeGemini{models: defaultModels(), reply: func(string, generateRequest) string {
			return "Here are some great recipes for you!"
		}}
		c := newTestClient(t, f)

		_, err := c.SuggestRecipes(context.Background(), ModeIngredients, "rice")
		assert.ErrorIs(t, err, ErrBadRecipeJSON)
	})

	t.Run("unknown mode fails before any network call", func(t *testing.T) {
		f := &fakeGemini{models: defaultModels()}
		c := newTestClient(t, f)

		_, err := c.SuggestRecipes(context.Background(), "horoscope", "aries")
		assert.ErrorIs(t, err, ErrUnknownMode)
		assert.Zero(t, f.listCalls)
		assert.Zero(t, f.generateCalls)
	})
}

func TestChat(t *testing.T) {
	f := &fakeGemini{models: defaultModels(), reply: func(string, generateRequest) string {
		return "Leftover rice keeps two days refrigerated."
	}}
	c := newTestClient(t, f)

	answer, err := c.Chat(context.Background(), "How long does cooked rice keep?")
	require.NoError(t, err)
	assert.Contains(t, answer, "two days")
}

func TestModelIsResolvedOnce(t *testing.T) {
	f := &fakeGemini{models: defaultModels(), reply: func(string, generateRequest) string {
		return "ok"
	}}
	c := newTestClient(t, f)

	for i := 0; i < 3; i++ {
		_, err := c.Chat(context.Background(), "ping")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, f.listCalls)
}

func TestGenerateSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1beta/models" {
			_ = json.NewEncoder(w).Encode(map[string]any{"models": defaultModels()})
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "Resource has been exhausted"},
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(&config.AIConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL + "/v1beta",
		RatePerSec: 1000,
		Timeout:    5 * time.Second,
	})

	_, err := c.Chat(context.Background(), "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Resource has been exhausted")
}
