package controller

import (
	"net/http"

	apperrors "github.com/avirtanen/noshcart-backend/internal/errors"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	ws "github.com/avirtanen/noshcart-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocketController upgrades connections onto the notification push
// channel for the request's cart session.
type WebSocketController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWebSocketController(hub *ws.Hub, checkOrigin func(r *http.Request) bool) *WebSocketController {
	return &WebSocketController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Connect upgrades the request to a websocket and registers it with the
// hub. The session id comes from the usual header, or from a query
// parameter since browsers cannot set headers on websocket upgrades.
// GET /api/ws?session_id=<id>
func (ctrl *WebSocketController) Connect(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		apperrors.NotFound(c, apperrors.SessionNotFound, "no cart session for this connection")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		middleware.GetLoggerFromContext(c).Warn("WebSocket upgrade failed", map[string]interface{}{
			"session_id": sess.ID(),
			"error":      err.Error(),
		})
		return
	}

	client := &ws.Client{
		Hub:       ctrl.hub,
		Conn:      &ws.Conn{Conn: conn},
		SessionID: sess.ID(),
		Send:      make(chan []byte, 64),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
