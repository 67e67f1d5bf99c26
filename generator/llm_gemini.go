package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash"
)

// GeminiLLM calls the Generative Language generateContent API. The key travels in the query string.
type GeminiLLM struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	decoder ResponseDecoder
}

func NewGeminiLLM(cfg LLMSettings) *GeminiLLM {
	model := strings.TrimPrefix(strings.TrimSpace(cfg.Model), "models/")
	if model == "" {
		model = defaultGeminiModel
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultGeminiBaseURL
	}
	return &GeminiLLM{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: base,
		client:  cfg.httpClient(),
		decoder: GeminiDecoder,
	}
}

func (g *GeminiLLM) Name() string { return ProviderGemini }

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

func (g *GeminiLLM) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 1000,
			TopP:            0.8,
			TopK:            40,
		},
	})
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Err: err}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Err: redactKey(err, g.apiKey)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{Provider: g.Name(), Status: resp.StatusCode}
	}
	text, err := g.decoder.Decode(raw)
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Status: resp.StatusCode, Err: err}
	}
	return text, nil
}

// redactKey keeps the query-string key out of *url.Error messages.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	msg := strings.ReplaceAll(err.Error(), url.QueryEscape(key), "REDACTED")
	msg = strings.ReplaceAll(msg, key, "REDACTED")
	return fmt.Errorf("%s", msg)
}
