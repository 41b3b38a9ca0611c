package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/docuwise/legal-assistant/api/handlers"
	"github.com/docuwise/legal-assistant/api/middleware"
)

// SetupRoutes wires all endpoints onto the engine.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.Use(middleware.CORS())

	r.GET("/", h.Document.Health)
	r.POST("/upload", h.Document.Upload)
	r.POST("/explain/:session_id", h.Document.Explain)
	r.POST("/create-rag/:session_id", h.Document.CreateRAGSession)
	r.GET("/sessions", h.Document.Sessions)
	r.DELETE("/session/:session_id", h.Document.DeleteSession)
	r.GET("/ws/:session_id", h.Chat.Chat)
}
