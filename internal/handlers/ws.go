package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var dashboardUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks happen at the CORS layer; the socket itself only
		// serves events the session token already authorizes.
		return true
	},
}

// DashboardWebSocket streams the signed-in client's dashboard events
// (sign-in/out, booking created, booking status changed, journal saved).
// Auth uses the session token via Authorization header or, for browser
// WebSocket clients, a token query parameter.
func (h *Handlers) DashboardWebSocket(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	identity, err := h.Sessions.Current(r.Context(), token)
	if err != nil {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	conn, err := dashboardUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := h.Events.Subscribe(identity.ID)
	defer unsubscribe()

	done := make(chan struct{})

	// Writer: forward hub events to this connection.
	go func() {
		defer close(done)
		for evt := range events {
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		}
	}()

	// Reader: only pongs and client pings are expected; anything else is
	// discarded. The read deadline drops dead connections.
	conn.SetReadLimit(4 * 1024)
	conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		select {
		case <-done:
			return
		default:
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	}
}
