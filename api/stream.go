package api

import (
	"net/http"
	"time"

	"github.com/Flowearn/Flow-data/internal/panel"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// StreamPanels handles GET /ws requests: it upgrades the connection and
// pushes panel view changes as JSON messages. The initial full panel set is
// sent first so a freshly connected dashboard renders immediately.
func (h *APIHandler) StreamPanels(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	updates, cancel := h.panels.Subscribe()

	go h.writePump(conn, updates, cancel)
	go h.readPump(conn, cancel)
}

// writePump pushes the snapshot backlog and then every view change until the
// subscription or the connection dies. Pings keep intermediaries from
// dropping the idle connection.
func (h *APIHandler) writePump(conn *websocket.Conn, updates <-chan panel.View, cancel func()) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		conn.Close()
	}()

	for _, view := range h.panels.Views() {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(view); err != nil {
			return
		}
	}

	for {
		select {
		case view, ok := <-updates:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(view); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs are processed, and tears the
// subscription down when the peer goes away.
func (h *APIHandler) readPump(conn *websocket.Conn, cancel func()) {
	defer func() {
		cancel()
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("websocket closed", "error", err)
			}
			return
		}
	}
}
