package assistant

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/docuwise/legal-assistant/internal/analysis"
	"github.com/docuwise/legal-assistant/internal/extractor"
	"github.com/docuwise/legal-assistant/internal/llm"
	"github.com/docuwise/legal-assistant/internal/models"
	"github.com/docuwise/legal-assistant/internal/rag"
	"github.com/docuwise/legal-assistant/internal/registry"
	"github.com/docuwise/legal-assistant/internal/utils/validator"
	"github.com/docuwise/legal-assistant/pkg/logger"
	"github.com/docuwise/legal-assistant/pkg/storage"
)

type service struct {
	registry  registry.Registry
	storage   storage.Storage
	extractor *extractor.Extractor
	analyzer  *analysis.Analyzer
	indexer   *rag.Indexer
	embedder  llm.Embedder
	chat      llm.TextGenerator
	logger    logger.Logger
}

// New wires the workflow service from its collaborators. embedder and
// chat serve the RAG sessions; the analyzer owns its own generators.
func New(
	reg registry.Registry,
	store storage.Storage,
	ext *extractor.Extractor,
	analyzer *analysis.Analyzer,
	indexer *rag.Indexer,
	embedder llm.Embedder,
	chat llm.TextGenerator,
	log logger.Logger,
) Service {
	return &service{
		registry:  reg,
		storage:   store,
		extractor: ext,
		analyzer:  analyzer,
		indexer:   indexer,
		embedder:  embedder,
		chat:      chat,
		logger:    log,
	}
}

func (s *service) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (models.UploadedFile, error) {
	if err := validator.ValidateUpload(header); err != nil {
		return models.UploadedFile{}, err
	}

	sessionID := uuid.NewString()
	filename := filepath.Base(header.Filename)
	storedName := sessionID + "_" + filename

	if _, err := s.storage.Save(ctx, file, storedName); err != nil {
		return models.UploadedFile{}, fmt.Errorf("storing upload: %w", err)
	}

	info := models.UploadedFile{
		SessionID:   sessionID,
		Filename:    filename,
		StoredName:  storedName,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		UploadedAt:  time.Now().UTC(),
	}
	s.registry.PutFile(info)

	s.logger.Info("document uploaded",
		logger.String("session_id", sessionID),
		logger.String("filename", filename),
		logger.Int64("size", header.Size),
	)
	return info, nil
}

func (s *service) Explain(ctx context.Context, sessionID string) (models.Explanation, error) {
	info, ok := s.registry.GetFile(sessionID)
	if !ok {
		return models.Explanation{}, ErrSessionNotFound
	}

	rc, err := s.storage.Open(ctx, info.StoredName)
	if err != nil {
		return models.Explanation{}, fmt.Errorf("opening stored document: %w", err)
	}
	defer rc.Close()

	res, err := s.extractor.Extract(info.Filename, rc)
	if err != nil {
		return models.Explanation{}, fmt.Errorf("extracting text: %w", err)
	}
	if res.Degraded() {
		return models.Explanation{}, fmt.Errorf("%w: %s", ErrExtraction, res.Text)
	}

	// The pipeline degrades in-band past this point: a failed
	// classification or refinement still yields a usable response body.
	docType, err := s.analyzer.Classify(ctx, res.Text)
	if err != nil {
		s.logger.Warn("classification degraded",
			logger.String("session_id", sessionID),
			logger.Error(err),
		)
	}

	explanation, err := s.analyzer.Explain(ctx, res.Text, docType)
	if err != nil {
		s.logger.Warn("explanation degraded",
			logger.String("session_id", sessionID),
			logger.Error(err),
		)
	}

	return models.Explanation{
		SessionID:    sessionID,
		Filename:     info.Filename,
		DocumentType: docType,
		Explanation:  explanation,
	}, nil
}

func (s *service) CreateRAGSession(ctx context.Context, sessionID string) (models.UploadedFile, error) {
	info, ok := s.registry.GetFile(sessionID)
	if !ok {
		return models.UploadedFile{}, ErrSessionNotFound
	}

	rc, err := s.storage.Open(ctx, info.StoredName)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("opening stored document: %w", err)
	}
	defer rc.Close()

	store, err := s.indexer.Build(ctx, info.Filename, rc)
	if err != nil {
		return models.UploadedFile{}, err
	}

	s.registry.PutChat(sessionID, rag.NewSession(store, s.embedder, s.chat, s.logger))

	s.logger.Info("RAG session created",
		logger.String("session_id", sessionID),
		logger.String("filename", info.Filename),
	)
	return info, nil
}

func (s *service) Answer(ctx context.Context, sessionID, question string) (string, error) {
	chat, ok := s.registry.GetChat(sessionID)
	if !ok {
		return "", ErrSessionNotFound
	}
	return chat.Answer(ctx, question)
}

func (s *service) HasChat(sessionID string) bool {
	_, ok := s.registry.GetChat(sessionID)
	return ok
}

func (s *service) Sessions() models.SessionList {
	return s.registry.List()
}

func (s *service) DeleteSession(ctx context.Context, sessionID string) error {
	info, ok := s.registry.Delete(sessionID)
	if !ok {
		// Absent ids delete cleanly.
		s.logger.Debug("delete of unknown session", logger.String("session_id", sessionID))
		return nil
	}

	if info.StoredName != "" {
		if err := s.storage.Remove(ctx, info.StoredName); err != nil {
			s.logger.Warn("failed to remove stored document",
				logger.String("session_id", sessionID),
				logger.String("stored_name", info.StoredName),
				logger.Error(err),
			)
		}
	}

	s.logger.Info("session deleted", logger.String("session_id", sessionID))
	return nil
}
