package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultGeminiBaseURL  = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel    = "gemini-2.5-flash-preview-05-20"
	defaultEmbeddingModel = "models/embedding-001"
)

// GeminiClient talks to the Gemini REST API. It implements both
// TextGenerator and Embedder.
type GeminiClient struct {
	apiKey         string
	baseURL        string
	model          string
	embeddingModel string
	client         *http.Client
}

// GeminiOption customizes a GeminiClient.
type GeminiOption func(*GeminiClient)

// WithGeminiBaseURL overrides the API endpoint (used by tests).
func WithGeminiBaseURL(url string) GeminiOption {
	return func(c *GeminiClient) {
		c.baseURL = url
	}
}

// WithGeminiModel overrides the generation model.
func WithGeminiModel(model string) GeminiOption {
	return func(c *GeminiClient) {
		c.model = model
	}
}

// NewGemini creates a Gemini client.
func NewGemini(apiKey string, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		apiKey:         apiKey,
		baseURL:        defaultGeminiBaseURL,
		model:          defaultGeminiModel,
		embeddingModel: defaultEmbeddingModel,
		client:         newHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends one generateContent request and returns the first
// candidate's text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body := generateContentRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	respBody, err := c.doPost(ctx, url, body)
	if err != nil {
		return "", err
	}

	var resp generateContentResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decoding generateContent response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

type embedContentRequest struct {
	Model   string        `json:"model"`
	Content geminiContent `json:"content"`
}

type batchEmbedRequest struct {
	Requests []embedContentRequest `json:"requests"`
}

type batchEmbedResponse struct {
	Embeddings []struct {
		Values []float32 `json:"values"`
	} `json:"embeddings"`
}

// Embed maps each text to its embedding vector via batchEmbedContents.
func (c *GeminiClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	reqs := make([]embedContentRequest, len(texts))
	for i, t := range texts {
		reqs[i] = embedContentRequest{
			Model:   c.embeddingModel,
			Content: geminiContent{Parts: []geminiPart{{Text: t}}},
		}
	}

	url := fmt.Sprintf("%s/%s:batchEmbedContents?key=%s", c.baseURL, c.embeddingModel, c.apiKey)
	respBody, err := c.doPost(ctx, url, batchEmbedRequest{Requests: reqs})
	if err != nil {
		return nil, err
	}

	var resp batchEmbedResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding embedding response: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	embeddings := make([][]float32, len(texts))
	for i, e := range resp.Embeddings {
		embeddings[i] = e.Values
	}
	return embeddings, nil
}

func (c *GeminiClient) doPost(ctx context.Context, url string, body interface{}) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
