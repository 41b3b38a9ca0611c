package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuwise/legal-assistant/internal/llm"
	"github.com/docuwise/legal-assistant/pkg/logger"
	"github.com/docuwise/legal-assistant/pkg/vectorstore"
)

// topK is the number of nearest chunks retrieved per question.
const topK = 5

const answerPromptTemplate = `You are an expert legal assistant for question-answering tasks on legal documents. Use the following pieces of retrieved context to answer the question thoroughly and accurately.

Instructions:
1. If the information is not in the document, clearly state that you don't know and cannot answer based on the provided document.
2. Provide detailed, comprehensive answers when the information is available.
3. Cite relevant sections or page numbers when possible.
4. Explain legal terms and concepts in simple language.
5. Be professional but approachable in your tone.
6. If the question is ambiguous, ask for clarification.

Context: %s

Remember: Base your answers strictly on the provided document context. If you need to make any assumptions, clearly state them.

Question: %s`

// Session is an answer-capable handle over one built index. Answer may be
// called repeatedly; the index is immutable once built.
type Session struct {
	store    *vectorstore.Store
	embedder llm.Embedder
	chat     llm.TextGenerator
	logger   logger.Logger
}

func NewSession(store *vectorstore.Store, embedder llm.Embedder, chat llm.TextGenerator, log logger.Logger) *Session {
	return &Session{
		store:    store,
		embedder: embedder,
		chat:     chat,
		logger:   log,
	}
}

// Answer retrieves the top-k chunks for the question and asks the chat
// collaborator to answer from them. On any failure the returned string is
// the degraded in-band message and the error carries the typed signal.
func (s *Session) Answer(ctx context.Context, question string) (string, error) {
	vecs, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		s.logger.Error("question embedding failed", logger.Error(err))
		return degradedAnswer(err), err
	}

	chunks, err := s.store.Search(ctx, vecs[0], topK)
	if err != nil {
		s.logger.Error("retrieval failed", logger.Error(err))
		return degradedAnswer(err), err
	}

	contexts := make([]string, len(chunks))
	for i, c := range chunks {
		contexts[i] = fmt.Sprintf("[page %d] %s", c.Page, c.Content)
	}

	prompt := fmt.Sprintf(answerPromptTemplate, strings.Join(contexts, "\n\n"), question)

	answer, err := s.chat.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("answer generation failed", logger.Error(err))
		return degradedAnswer(err), err
	}

	return answer, nil
}

// Close releases the underlying index.
func (s *Session) Close() error {
	return s.store.Close()
}

func degradedAnswer(err error) string {
	return fmt.Sprintf("Error processing question: %v", err)
}
