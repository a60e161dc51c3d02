package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/voxmeet/signal/internal/core/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Session descriptions run to a few KB; leave headroom.
	maxMessageSize = 64 * 1024

	sendBufferSize = 256
)

// envelope is the wire frame in both directions.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSClient adapts one gorilla connection to port.Client. A single
// writer goroutine drains the send channel, which keeps delivery FIFO
// per connection; Send never blocks on a slow peer.
type WSClient struct {
	id   domain.ConnectionID
	conn *websocket.Conn

	send chan []byte
	done chan struct{}
	once sync.Once
}

func NewWSClient(id domain.ConnectionID, conn *websocket.Conn) *WSClient {
	return &WSClient{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

func (c *WSClient) ID() domain.ConnectionID {
	return c.id
}

func (c *WSClient) Send(evt domain.Event) error {
	data, err := json.Marshal(evt.Data)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(envelope{Event: evt.Name, Data: data})
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return domain.ErrUnknownConnection
	case c.send <- frame:
		return nil
	default:
		// Slow or dead peer; dropping beats stalling the sender.
		return errors.New("send buffer full")
	}
}

func (c *WSClient) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// WritePump is the connection's single writer. It also owns the ping
// keepalive.
func (c *WSClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
			return

		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if h.Cfg.AllowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == h.Cfg.AllowedOrigin
		},
	}
}

// ServeWS upgrades the connection, issues its connection id, and runs
// the read loop. Every lifecycle event for this connection is processed
// here sequentially; the deferred disconnect runs exactly once, whether
// the peer left cleanly or the socket just died.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	up := h.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	connID := domain.NewConnectionID()
	client := NewWSClient(connID, conn)

	l := log.With().Str("connection_id", connID.String()).Logger()
	l.Info().Msg("New client connected")

	go client.WritePump()
	h.Hub.Register(client)

	defer func() {
		h.Hub.Unregister(client)
		h.Session.Disconnect(context.Background(), connID)
		client.Close()
		l.Info().Msg("Client disconnected")
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Warn().Err(err).Msg("Unexpected close error")
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			l.Debug().Err(err).Msg("Malformed frame ignored")
			continue
		}

		h.dispatch(r.Context(), l, connID, env)
	}
}

func (h *Handler) dispatch(ctx context.Context, l zerolog.Logger, connID domain.ConnectionID, env envelope) {
	switch env.Event {
	case "announce":
		var req struct {
			DisplayName string `json:"displayName"`
		}
		if err := json.Unmarshal(env.Data, &req); err != nil {
			l.Debug().Err(err).Str("event", env.Event).Msg("Malformed payload ignored")
			return
		}
		h.Session.Announce(ctx, connID, req.DisplayName)

	case "joinRoom":
		var req struct {
			RoomID      string `json:"roomId"`
			DisplayName string `json:"displayName"`
		}
		if err := json.Unmarshal(env.Data, &req); err != nil {
			l.Debug().Err(err).Str("event", env.Event).Msg("Malformed payload ignored")
			return
		}
		h.Session.JoinRoom(ctx, connID, req.RoomID, req.DisplayName)

	case "leaveRoom":
		var req struct {
			RoomID string `json:"roomId"`
		}
		if err := json.Unmarshal(env.Data, &req); err != nil {
			l.Debug().Err(err).Str("event", env.Event).Msg("Malformed payload ignored")
			return
		}
		h.Session.LeaveRoom(ctx, connID, req.RoomID)

	case "sendOffer":
		var req struct {
			To     string          `json:"to"`
			Offer  json.RawMessage `json:"offer"`
			RoomID string          `json:"roomId"`
		}
		if err := json.Unmarshal(env.Data, &req); err != nil {
			l.Debug().Err(err).Str("event", env.Event).Msg("Malformed payload ignored")
			return
		}
		h.Relay.Offer(ctx, connID, domain.ConnectionID(req.To), req.RoomID, req.Offer)

	case "sendAnswer":
		var req struct {
			To     string          `json:"to"`
			Answer json.RawMessage `json:"answer"`
		}
		if err := json.Unmarshal(env.Data, &req); err != nil {
			l.Debug().Err(err).Str("event", env.Event).Msg("Malformed payload ignored")
			return
		}
		h.Relay.Answer(ctx, connID, domain.ConnectionID(req.To), req.Answer)

	case "sendIceCandidate":
		var req struct {
			To        string          `json:"to"`
			Candidate json.RawMessage `json:"candidate"`
		}
		if err := json.Unmarshal(env.Data, &req); err != nil {
			l.Debug().Err(err).Str("event", env.Event).Msg("Malformed payload ignored")
			return
		}
		h.Relay.IceCandidate(ctx, connID, domain.ConnectionID(req.To), req.Candidate)

	case "rejectCall":
		var req struct {
			To string `json:"to"`
		}
		if err := json.Unmarshal(env.Data, &req); err != nil {
			l.Debug().Err(err).Str("event", env.Event).Msg("Malformed payload ignored")
			return
		}
		h.Relay.Reject(ctx, connID, domain.ConnectionID(req.To))

	case "endCall":
		var req struct {
			To string `json:"to"`
		}
		if err := json.Unmarshal(env.Data, &req); err != nil {
			l.Debug().Err(err).Str("event", env.Event).Msg("Malformed payload ignored")
			return
		}
		h.Relay.End(ctx, connID, domain.ConnectionID(req.To))

	case "chatMessage":
		var req struct {
			RoomID string `json:"roomId"`
			Text   string `json:"text"`
		}
		if err := json.Unmarshal(env.Data, &req); err != nil {
			l.Debug().Err(err).Str("event", env.Event).Msg("Malformed payload ignored")
			return
		}
		roomID, err := domain.ParseRoomID(req.RoomID)
		if err != nil {
			l.Debug().Str("room_id", req.RoomID).Msg("Chat message with bad room id ignored")
			return
		}
		if err := h.Chat.Send(ctx, connID, roomID, req.Text); err != nil {
			l.Debug().Err(err).Msg("Chat message dropped")
		}

	default:
		l.Debug().Str("event", env.Event).Msg("Unknown event ignored")
	}
}
