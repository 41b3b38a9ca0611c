// Package llm wraps the two hosted generative-text collaborators: Gemini
// for classification, summarization, refinement, embeddings and RAG chat,
// and Groq for the explanation draft stage.
//
// Every call is a single attempt. Failures surface as errors here; the
// analysis and rag layers decide which degraded message ships to clients.
package llm

import (
	"context"
	"net/http"
	"time"
)

// TextGenerator produces a completion for a single prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder maps a batch of texts to embedding vectors, index-aligned with
// the input.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// requestTimeout bounds a single outbound call. Generation on long legal
// documents can take a while; kept generous but finite.
const requestTimeout = 120 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
