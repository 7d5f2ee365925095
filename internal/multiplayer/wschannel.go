package multiplayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/ws"
)

const sendTimeout = 5 * time.Second

// WSChannel implements PeerChannel over a websocket connection to the
// relay. The relay stamps each relayed payload with the sender's peer ID,
// which is what OnData reports.
type WSChannel struct {
	conn *websocket.Conn

	mu       sync.RWMutex
	handlers Handlers
	room     string
	selfID   string

	peerCount atomic.Int64
	joined    atomic.Bool

	closeOnce sync.Once
	done      chan struct{}
}

// DialRelay connects to the relay and joins a room. An empty room code
// asks the relay for a fresh room; Room() then returns the code to share
// with friends.
func DialRelay(ctx context.Context, url, room, name string) (*WSChannel, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w", err)
	}

	c := &WSChannel{
		conn: conn,
		done: make(chan struct{}),
	}

	join, err := ws.NewMessage(ws.TypeJoinRoom, ws.JoinRoomRequest{Room: room, Name: name})
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := c.write(join); err != nil {
		conn.Close()
		return nil, fmt.Errorf("join room: %w", err)
	}

	go c.readPump()
	return c, nil
}

// SetHandlers registers the event callbacks.
func (c *WSChannel) SetHandlers(h Handlers) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = h
}

func (c *WSChannel) callbacks() Handlers {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handlers
}

// Room returns the joined room code, once the relay has confirmed it.
func (c *WSChannel) Room() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.room
}

// SelfID returns the peer ID the relay assigned to this client.
func (c *WSChannel) SelfID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selfID
}

// Connected reports whether the room has been joined and at least one
// other peer is present.
func (c *WSChannel) Connected() bool {
	return c.joined.Load() && c.peerCount.Load() > 0
}

// Send delivers a payload to every other peer in the room.
func (c *WSChannel) Send(payload []byte) error {
	msg := ws.Message{Type: ws.TypePosition, Data: payload}
	return c.write(msg)
}

func (c *WSChannel) write(msg ws.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(sendTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *WSChannel) readPump() {
	defer c.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Deliberate close, not an error.
			default:
				if h := c.callbacks(); h.OnError != nil {
					h.OnError(err)
				}
			}
			return
		}

		var msg ws.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("dropping malformed relay message", "error", err)
			continue
		}
		c.dispatch(msg)
	}
}

func (c *WSChannel) dispatch(msg ws.Message) {
	h := c.callbacks()

	switch msg.Type {
	case ws.TypeRoomJoined:
		var joined ws.RoomJoined
		if err := json.Unmarshal(msg.Data, &joined); err != nil {
			slog.Warn("dropping malformed room_joined", "error", err)
			return
		}
		c.mu.Lock()
		c.room = joined.Room
		c.selfID = joined.SelfID
		c.mu.Unlock()
		c.peerCount.Store(int64(len(joined.Peers)))
		c.joined.Store(true)
		for _, p := range joined.Peers {
			if h.OnConnect != nil {
				h.OnConnect(p.ID)
			}
		}

	case ws.TypePeerJoined:
		var peer ws.PeerInfo
		if err := json.Unmarshal(msg.Data, &peer); err != nil {
			return
		}
		c.peerCount.Add(1)
		if h.OnConnect != nil {
			h.OnConnect(peer.ID)
		}

	case ws.TypePeerLeft:
		var peer ws.PeerInfo
		if err := json.Unmarshal(msg.Data, &peer); err != nil {
			return
		}
		if c.peerCount.Add(-1) < 0 {
			c.peerCount.Store(0)
		}
		if h.OnPeerLeft != nil {
			h.OnPeerLeft(peer.ID)
		}

	case ws.TypePeerPosition:
		var rel ws.PeerPosition
		if err := json.Unmarshal(msg.Data, &rel); err != nil {
			slog.Warn("dropping malformed peer_position", "error", err)
			return
		}
		if h.OnData != nil {
			h.OnData(rel.From, rel.Payload)
		}

	case ws.TypeError:
		var em ws.ErrorMessage
		if err := json.Unmarshal(msg.Data, &em); err != nil {
			return
		}
		if h.OnError != nil {
			h.OnError(errors.New(em.Message))
		}

	default:
		slog.Debug("ignoring relay message", "type", msg.Type)
	}
}

// Close shuts the channel down. Safe to call more than once; the session
// calls it on teardown so restarts never leak connections.
func (c *WSChannel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.joined.Store(false)
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		err = c.conn.Close()
	})
	return err
}
