package http

import (
	"log"
	"net/http"

	"ultimate-quiz-service/internal/domain"
)

type wsMessage struct {
	Type    string           `json:"type"`
	Payload domain.Standings `json:"payload"`
}

// ServeLeaderboardWS upgrades the connection and streams standings: the
// current snapshot on connect, then an update after every recorded result.
func (h *Handler) ServeLeaderboardWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.board.Subscribe(r.Context())
	defer cancel()

	// Drain the reader so we notice the peer closing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case standings, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(wsMessage{Type: "leaderboard", Payload: standings}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}
