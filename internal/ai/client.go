package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/onemeal-app/onemeal-backend/config"
)

var ErrNoModel = errors.New("no suitable AI model found")

// Client talks to the Gemini generative-language REST API. All calls go
// through a shared rate limiter; the free tier rejects bursts well below
// anything a busy instance would otherwise produce.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter

	mu     sync.Mutex
	models map[string]string // kind -> resolved model name
}

func NewClient(cfg *config.AIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		models:  make(map[string]string),
	}
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type listModelsResponse struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
	Error *apiError `json:"error"`
}

// pickModel resolves a concrete model name the way the client app does:
// list the account's models and take the first match for the wanted kind.
// Vision calls want a flash model; text calls avoid vision-only ones. The
// result is cached per kind for the process lifetime.
func (c *Client) pickModel(ctx context.Context, vision bool) (string, error) {
	kind := "text"
	if vision {
		kind = "vision"
	}

	c.mu.Lock()
	cached := c.models[kind]
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models?key="+c.apiKey, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("list models: %w", err)
	}
	defer resp.Body.Close()

	var out listModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode models: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("list models: %s (code %d)", out.Error.Message, out.Error.Code)
	}

	for _, m := range out.Models {
		if !supports(m.SupportedGenerationMethods, "generateContent") {
			continue
		}
		if vision && !strings.Contains(m.Name, "flash") {
			continue
		}
		if !vision && strings.Contains(m.Name, "vision") {
			continue
		}

		name := strings.TrimPrefix(m.Name, "models/")
		c.mu.Lock()
		c.models[kind] = name
		c.mu.Unlock()
		return name, nil
	}

	return "", ErrNoModel
}

// generate runs a single generateContent call and returns the first
// candidate's text.
func (c *Client) generate(ctx context.Context, model string, parts []part) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("generate content: %s (code %d)", out.Error.Message, out.Error.Code)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("generate content: status %d", resp.StatusCode)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate content: empty response after %s", time.Since(start))
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}

func supports(methods []string, want string) bool {
	for _, m := range methods {
		if m == want {
			return true
		}
	}
	return false
}
