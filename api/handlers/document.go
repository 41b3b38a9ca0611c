package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docuwise/legal-assistant/internal/rag"
	"github.com/docuwise/legal-assistant/internal/service/assistant"
	"github.com/docuwise/legal-assistant/internal/utils/validator"
	"github.com/docuwise/legal-assistant/pkg/logger"
)

type DocumentHandler struct {
	service assistant.Service
	logger  logger.Logger
}

// UploadResponse confirms a stored upload and hands the client its
// session id for the follow-up calls.
type UploadResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	FileSize  int64  `json:"file_size"`
}

// ErrorResponse is the error envelope for every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewDocumentHandler(service assistant.Service, logger logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger,
	}
}

// Health confirms the API is up.
func (h *DocumentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Legal Document Assistant API is running",
	})
}

// Upload accepts a multipart document and opens a new session for it.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "No file selected", err)
		return
	}
	defer file.Close()

	info, err := h.service.Upload(c.Request.Context(), file, header)
	switch {
	case errors.Is(err, validator.ErrMissingFilename):
		h.handleError(c, http.StatusBadRequest, "No file selected", err)
		return
	case errors.Is(err, validator.ErrUnsupportedType):
		h.handleError(c, http.StatusBadRequest, "File type not supported. Please upload PDF, TXT, JPG, or JPEG files", err)
		return
	case err != nil:
		h.handleError(c, http.StatusInternalServerError, "Failed to store file", err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Message:   "File uploaded successfully",
		SessionID: info.SessionID,
		Filename:  info.Filename,
		FileSize:  info.Size,
	})
}

// Explain runs the classify-then-explain pipeline for a session.
func (h *DocumentHandler) Explain(c *gin.Context) {
	sessionID := c.Param("session_id")

	result, err := h.service.Explain(c.Request.Context(), sessionID)
	switch {
	case errors.Is(err, assistant.ErrSessionNotFound):
		h.handleError(c, http.StatusNotFound, "Session not found. Please upload a document first", err)
		return
	case errors.Is(err, assistant.ErrExtraction):
		h.handleError(c, http.StatusInternalServerError, "Failed to extract text from document", err)
		return
	case err != nil:
		h.handleError(c, http.StatusInternalServerError, "Failed to explain document", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateRAGSession builds the retrieval index for a session's PDF.
func (h *DocumentHandler) CreateRAGSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	info, err := h.service.CreateRAGSession(c.Request.Context(), sessionID)
	switch {
	case errors.Is(err, assistant.ErrSessionNotFound):
		h.handleError(c, http.StatusNotFound, "Session not found. Please upload a document first", err)
		return
	case errors.Is(err, rag.ErrNotPDF):
		h.handleError(c, http.StatusBadRequest, "RAG chatbot only supports PDF files", err)
		return
	case err != nil:
		h.handleError(c, http.StatusInternalServerError, "Failed to create RAG session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "RAG session created successfully",
		"session_id": info.SessionID,
		"filename":   info.Filename,
	})
}

// Sessions lists active sessions for debugging and dashboards.
func (h *DocumentHandler) Sessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Sessions())
}

// DeleteSession releases a session's registry entries and stored file.
// Deleting an absent id still acks.
func (h *DocumentHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	if err := h.service.DeleteSession(c.Request.Context(), sessionID); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to delete session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Session deleted successfully",
		"session_id": sessionID,
	})
}

func (h *DocumentHandler) handleError(c *gin.Context, status int, message string, err error) {
	h.logger.Error(message,
		logger.String("path", c.Request.URL.Path),
		logger.Error(err),
	)

	response := ErrorResponse{
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(status, response)
}
