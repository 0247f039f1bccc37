package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/app/notification"
)

const writeWait = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsStream adapts a websocket connection to notification.Stream.
type wsStream struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsStream) Send(n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(n)
}

// handleNotifications streams session notifications. The first message is
// the initial state; client messages are read only to detect disconnects.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zlog.Error().Err(err).Msg("httpapi: failed to upgrade websocket")
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			zlog.Debug().Err(err).Msg("httpapi: failed to close websocket")
		}
	}()

	subscriptionID, err := s.session.Subscribe(&wsStream{conn: conn})
	if err != nil {
		zlog.Warn().Err(err).Msg("httpapi: failed to subscribe")
		return
	}
	defer s.session.Unsubscribe(subscriptionID)
	zlog.Info().Msgf("httpapi: subscriber connected: subscription=%s remote=%s", subscriptionID, r.RemoteAddr)

	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-s.session.Done():
			_ = conn.Close()
		case <-closed:
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zlog.Debug().Err(err).Msg("httpapi: websocket read ended")
			}
			zlog.Info().Msgf("httpapi: subscriber disconnected: subscription=%s", subscriptionID)
			return
		}
	}
}
