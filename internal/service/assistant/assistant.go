// Package assistant orchestrates the document workflow: upload intake,
// classify-then-explain analysis, and per-session RAG chat lifecycle.
package assistant

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/docuwise/legal-assistant/internal/models"
)

// ErrSessionNotFound marks an operation against an unknown session id.
var ErrSessionNotFound = errors.New("session not found")

// ErrExtraction marks a document whose text could not be extracted. The
// wrapped message is the client-facing extraction error text.
var ErrExtraction = errors.New("text extraction failed")

// Service is the application surface the transport layer calls into.
type Service interface {
	// Upload validates and stores an incoming document, assigns it a
	// session id and records it in the registry.
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (models.UploadedFile, error)

	// Explain runs the full pipeline for a stored document: extract,
	// classify, then produce the refined plain-language explanation.
	Explain(ctx context.Context, sessionID string) (models.Explanation, error)

	// CreateRAGSession builds a retrieval index over the session's PDF
	// and registers an answer-capable chat handle for it.
	CreateRAGSession(ctx context.Context, sessionID string) (models.UploadedFile, error)

	// Answer routes a chat question to the session's RAG handle. The
	// returned string is always usable text; on degraded failures it
	// carries the in-band error message alongside a non-nil error.
	Answer(ctx context.Context, sessionID, question string) (string, error)

	// HasChat reports whether the session has an active RAG handle.
	HasChat(sessionID string) bool

	// Sessions lists registry counts and known session ids.
	Sessions() models.SessionList

	// DeleteSession removes the session's registry entries, closes its
	// chat handle and deletes the stored document. Idempotent: deleting
	// an absent id succeeds.
	DeleteSession(ctx context.Context, sessionID string) error
}
