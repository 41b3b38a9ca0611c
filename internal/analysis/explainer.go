package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuwise/legal-assistant/pkg/logger"
)

const draftPromptTemplate = `You are an expert legal document analyst and communication specialist. Your task is to provide a very detailed, comprehensive, yet human-understandable explanation of the given document.

Document Type: %s
Document Content:
%s

Please provide a VERY DETAILED explanation following these guidelines:

1. **Structure**: Organize your explanation in clear sections with headings:
   - Document Overview
   - Key Parties Involved
   - Main Legal Issues/Subject Matter
   - Important Terms and Conditions
   - Legal Implications
   - Timeline and Deadlines (if any)
   - Action Items or Next Steps

2. **Content Requirements**:
   - Explain ALL legal jargon and technical terms in simple language
   - Include all important names, dates, locations, amounts, and legal authorities mentioned
   - Describe the purpose and significance of the document
   - Explain potential consequences or implications
   - Highlight any deadlines, obligations, or rights
   - Include background context where helpful

3. **Writing Style**:
   - Use simple, clear language that anyone can understand
   - Avoid legal jargon unless you immediately explain it
   - Use examples or analogies to clarify complex concepts
   - Write in a conversational but professional tone
   - Include relevant details but organize them logically

4. **Length**: This should be a comprehensive explanation - aim for detailed coverage of all important aspects. Don't rush through important points.

Make sure to cover every significant aspect of this document in detail while keeping it accessible to non-lawyers.`

const refinePromptTemplate = `You are an expert editor specializing in making legal and technical content accessible to general audiences.

Your task is to enhance and refine the following document explanation to make it even more detailed, clear, and human-readable:

Original Explanation:
%s

Enhancement Requirements:
1. **Expand on any areas that seem brief or unclear**
2. **Add more context and background information where helpful**
3. **Ensure all legal terms are fully explained with examples**
4. **Improve the flow and organization of information**
5. **Add more detailed explanations of implications and consequences**
6. **Include practical advice or insights where appropriate**
7. **Maintain a warm, approachable tone while being thorough**

The final explanation should be comprehensive enough that someone with no legal background can fully understand:
- What this document is about
- Who is involved and their roles
- What are the main legal issues or agreements
- What happens next or what actions are required
- Why this document matters

Please provide the enhanced, very detailed explanation that maintains accuracy while being highly accessible.`

// Explain runs the two-stage refinement: a Groq draft over the full text,
// then a Gemini editing pass over the draft. A failed draft does not
// short-circuit: the refinement stage runs on the draft's error text so
// the caller still receives best-effort output.
func (a *Analyzer) Explain(ctx context.Context, text, docType string) (string, error) {
	draft, err := a.groq.Generate(ctx, fmt.Sprintf(draftPromptTemplate, docType, text))
	if err != nil {
		a.logger.Error("explanation draft failed", logger.Error(err))
		draft = fmt.Sprintf("Error generating explanation with LLaMA: %v", err)
	}

	refined, err := a.gemini.Generate(ctx, fmt.Sprintf(refinePromptTemplate, draft))
	if err != nil {
		a.logger.Error("explanation refinement failed", logger.Error(err))
		return GeminiFailureMessage, err
	}

	return strings.TrimSpace(refined), nil
}
