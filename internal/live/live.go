// Package live maintains the per-room websocket subscription. Each inbound
// frame is one raw message-shaped payload (the current full state of some
// message); frames are delivered to the consumer in the order the backend
// sent them. Outbound sends are fire-and-forget: the stored message comes
// back over the same feed.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/adamavenir/murmur/internal/types"
)

// Conn is a live room subscription.
type Conn struct {
	ws     *websocket.Conn
	events chan json.RawMessage

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Dial opens the subscription for a room. baseURL is the backend HTTP base;
// the socket endpoint is derived from it. clientID identifies this client
// instance to the backend for connection bookkeeping.
func Dial(ctx context.Context, baseURL, roomID, clientID string) (*Conn, error) {
	endpoint, err := socketURL(baseURL, roomID, clientID)
	if err != nil {
		return nil, err
	}

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial live feed: %w", err)
	}

	c := &Conn{
		ws:     ws,
		events: make(chan json.RawMessage, 64),
	}
	go c.readLoop(roomID)
	return c, nil
}

// Events returns the inbound payload channel. It is closed when the
// connection ends; payloads arrive in backend send order.
func (c *Conn) Events() <-chan json.RawMessage {
	return c.events
}

// Send publishes an outgoing message. HTML escaping is disabled so message
// text crosses the wire as typed.
func (c *Conn) Send(out types.OutgoingMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	w, err := c.ws.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return w.Close()
}

// Close tears down the subscription. Safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(2*time.Second))
		c.writeMu.Unlock()
		err = c.ws.Close()
	})
	return err
}

func (c *Conn) readLoop(roomID string) {
	defer close(c.events)
	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Str("room", roomID).Msg("live feed closed unexpectedly")
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		c.events <- json.RawMessage(data)
	}
}

func socketURL(baseURL, roomID, clientID string) (string, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}
	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/ws/rooms/" + url.PathEscape(roomID)
	query := url.Values{}
	query.Set("clientId", clientID)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
