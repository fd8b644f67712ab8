package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tupi-ai/askpdf/service"
	"github.com/tupi-ai/askpdf/types"
)

// WebsocketHandler runs an interactive question-and-answer session over a
// websocket. Each chat frame is answered through the RAG pipeline; errors on
// a single question are reported as error frames and the session continues.
type WebsocketHandler struct {
	rag      *service.RAGService
	upgrader websocket.Upgrader
}

func NewWebsocketHandler(rag *service.RAGService) *WebsocketHandler {
	return &WebsocketHandler{
		rag: rag,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // adjust for production
			},
		},
	}
}

func (h *WebsocketHandler) HandleChat(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024)

	ctx := c.Request.Context()
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		var req types.WebsocketRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			h.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			if err := conn.WriteJSON(types.WebsocketResponse{Type: types.TypeWebsocketPong}); err != nil {
				log.Println("Write error:", err)
			}
		case types.TypeWebsocketChat:
			question := strings.TrimSpace(req.Payload)
			if question == "" {
				h.writeError(conn, "question must not be empty")
				continue
			}
			answer, err := h.rag.Ask(ctx, question)
			if err != nil {
				log.Println("RAG error:", err)
				h.writeError(conn, err.Error())
				continue
			}
			if err := conn.WriteJSON(types.WebsocketResponse{
				Type:    types.TypeWebsocketAnswer,
				Payload: answer,
			}); err != nil {
				log.Println("Write error:", err)
			}
		default:
			h.writeError(conn, "unknown message type "+req.Type)
		}
	}
}

func (h *WebsocketHandler) writeError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: message,
	}); err != nil {
		log.Println("Write error:", err)
	}
}

// Health is a plain liveness endpoint.
func (h *WebsocketHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
