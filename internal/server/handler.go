package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/soar/gamepadlab/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local tool, same host
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("WebSocket upgrade failed", "error", err)
			return
		}

		client := hub.NewClient(h, conn)
		h.Register(client)
		b.SendInitial(client)

		go client.WritePump()
		go client.ReadPump()
	}
}
