package analysis

import (
	"context"
	"fmt"

	"github.com/docuwise/legal-assistant/pkg/logger"
)

// Summarize produces a plain-language summary of the full document text.
// docType is optional context from the classifier. The raw response is
// returned unmodified on success.
func (a *Analyzer) Summarize(ctx context.Context, text, docType string) (string, error) {
	prompt := fmt.Sprintf(`You are a legal document assistant. Summarize the following document in plain language.
Document Type: %s
Document Content:
%s`, docType, text)

	summary, err := a.gemini.Generate(ctx, prompt)
	if err != nil {
		a.logger.Error("summarization failed", logger.Error(err))
		return GeminiFailureMessage, err
	}

	return summary, nil
}
