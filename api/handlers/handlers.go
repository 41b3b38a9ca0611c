package handlers

import (
	"github.com/docuwise/legal-assistant/internal/service/assistant"
	"github.com/docuwise/legal-assistant/pkg/logger"
)

type Handlers struct {
	Document *DocumentHandler
	Chat     *ChatHandler
}

func NewHandlers(service assistant.Service, logger logger.Logger) *Handlers {
	return &Handlers{
		Document: NewDocumentHandler(service, logger),
		Chat:     NewChatHandler(service, logger),
	}
}
