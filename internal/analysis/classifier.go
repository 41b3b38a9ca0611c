package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuwise/legal-assistant/internal/models"
	"github.com/docuwise/legal-assistant/pkg/logger"
)

// classifyMaxChars bounds the document prefix sent to the classifier.
// Longer documents are classified on this prefix only.
const classifyMaxChars = 4000

// classifierInstruction enumerates the taxonomy from models.Categories so
// the prompt and the model list cannot drift apart.
var classifierInstruction = fmt.Sprintf(
	"You are a highly accurate legal document classifier. "+
		"Classify the following document into one of these categories: %s. "+
		"Respond with only the category name. If none fit, use '%s'.",
	quotedCategories(), models.DefaultCategory)

func quotedCategories() string {
	quoted := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		quoted[i] = "'" + c + "'"
	}
	return strings.Join(quoted, ", ")
}

// Classify asks the generator for exactly one taxonomy label. The trimmed
// response is returned verbatim; membership in the taxonomy is not
// enforced.
func (a *Analyzer) Classify(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nDocument Content:\n%s", classifierInstruction, truncate(text, classifyMaxChars))

	label, err := a.gemini.Generate(ctx, prompt)
	if err != nil {
		a.logger.Error("classification failed", logger.Error(err))
		return GeminiFailureMessage, err
	}

	return strings.TrimSpace(label), nil
}

// truncate cuts text to at most n characters (runes, to avoid splitting a
// multi-byte sequence).
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
