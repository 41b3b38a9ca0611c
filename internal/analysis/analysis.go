// Package analysis holds the prompted document pipelines: classification,
// summarization and the two-stage explanation refinement.
//
// All three follow the same degraded-result convention: the returned string
// is always usable client-facing text, and the returned error carries the
// typed failure signal for internal callers.
package analysis

import (
	"github.com/docuwise/legal-assistant/internal/llm"
	"github.com/docuwise/legal-assistant/pkg/logger"
)

// GeminiFailureMessage is the fixed degraded output when a Gemini call
// fails. Pinned byte-for-byte by tests; clients match on it.
const GeminiFailureMessage = "An error occurred while calling the Gemini API."

// Analyzer runs the prompted pipelines against the two hosted
// collaborators: gemini for classify/summarize/refine, groq for the
// explanation draft.
type Analyzer struct {
	gemini llm.TextGenerator
	groq   llm.TextGenerator
	logger logger.Logger
}

func NewAnalyzer(gemini, groq llm.TextGenerator, log logger.Logger) *Analyzer {
	return &Analyzer{
		gemini: gemini,
		groq:   groq,
		logger: log,
	}
}
