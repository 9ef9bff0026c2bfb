package webui

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mailcove/admin/pkg/notify"
	"github.com/mailcove/admin/pkg/server/web"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// options for gorilla connection upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// changeListener queues hub events for one WebSocket connection.
type changeListener struct {
	hub *notify.Hub
	c   chan notify.Event
}

// newChangeListener creates a listener and registers it with the hub.
func newChangeListener(hub *notify.Hub) *changeListener {
	cl := &changeListener{
		hub: hub,
		c:   make(chan notify.Event, 100),
	}
	hub.AddListener(cl)
	return cl
}

// Receive handles an incoming change event.
func (cl *changeListener) Receive(ev notify.Event) error {
	cl.c <- ev
	return nil
}

// wsReader makes sure the websocket client is still connected, discards any
// messages from the client.
func (cl *changeListener) wsReader(conn *websocket.Conn) {
	slog := log.With().Str("module", "webui").Str("proto", "WebSocket").
		Str("remote", conn.RemoteAddr().String()).Logger()
	defer cl.Close()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		slog.Warn().Err(err).Msg("Failed to setup read deadline")
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			slog.Warn().Err(err).Msg("Failed to set read deadline in pong")
		}
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				slog.Warn().Err(err).Msg("Socket error")
			} else {
				slog.Debug().Msg("Closing socket")
			}
			break
		}
	}
}

// wsWriter relays hub events to the websocket client.
func (cl *changeListener) wsWriter(conn *websocket.Conn) {
	slog := log.With().Str("module", "webui").Str("proto", "WebSocket").
		Str("remote", conn.RemoteAddr().String()).Logger()

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.Close()
	}()

	// Handle events from the hub until the listener is closed.
	for {
		select {
		case ev, ok := <-cl.c:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				slog.Warn().Err(err).Msg("Failed to set write deadline for event")
			}
			if !ok {
				// Listener closed, exit.
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if conn.WriteJSON(ev) != nil {
				// Write failed.
				return
			}
		case <-ticker.C:
			// Send ping.
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				slog.Warn().Err(err).Msg("Failed to set write deadline for ping")
			}
			if conn.WriteMessage(websocket.PingMessage, []byte{}) != nil {
				// Write error.
				return
			}
		}
	}
}

// Close removes the listener registration.
func (cl *changeListener) Close() {
	select {
	case <-cl.c:
		// Already closed.
	default:
		cl.hub.RemoveListener(cl)
		close(cl.c)
	}
}

// ChangeSocket upgrades the connection to a websocket and notifies the
// client of configuration changes made through other console sessions.
func ChangeSocket(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()
	log.Debug().Str("module", "webui").Str("proto", "WebSocket").
		Str("remote", conn.RemoteAddr().String()).Msg("Upgraded to WebSocket")
	// Create, register listener; then interact with conn.
	cl := newChangeListener(ctx.Hub)
	go cl.wsWriter(conn)
	cl.wsReader(conn)
	return nil
}
