package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/docuwise/legal-assistant/internal/service/assistant"
	"github.com/docuwise/legal-assistant/pkg/logger"
)

const (
	chatReadyMessage     = "RAG Chatbot is ready! Ask me anything about your document."
	chatNoSessionMessage = "Error: No RAG session found. Please upload a document first."
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from arbitrary origins; access control is
	// handled at the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatHandler serves the per-session websocket chat over a built RAG
// index. Messages are handled sequentially per connection.
type ChatHandler struct {
	service assistant.Service
	logger  logger.Logger
}

func NewChatHandler(service assistant.Service, logger logger.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	sessionID := c.Param("session_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			logger.String("session_id", sessionID),
			logger.Error(err),
		)
		return
	}
	defer conn.Close()

	if !h.service.HasChat(sessionID) {
		conn.WriteMessage(websocket.TextMessage, []byte(chatNoSessionMessage))
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(chatReadyMessage)); err != nil {
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed",
					logger.String("session_id", sessionID),
					logger.Error(err),
				)
			}
			return
		}

		question := strings.TrimSpace(string(msg))
		if question == "" {
			continue
		}

		answer, err := h.service.Answer(c.Request.Context(), sessionID, question)
		if errors.Is(err, assistant.ErrSessionNotFound) {
			// Session deleted mid-conversation.
			conn.WriteMessage(websocket.TextMessage, []byte(chatNoSessionMessage))
			return
		}

		reply := "Bot: " + answer
		if err != nil {
			// Failures stay in-band and the connection survives them.
			// The session already built the client-facing message.
			reply = answer
			if reply == "" {
				reply = "Error: " + err.Error()
			}
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			return
		}
	}
}
