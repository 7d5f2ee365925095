package relay

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/ws"
)

// Router dispatches incoming relay messages. The relay never interprets
// position payloads beyond stamping the sender; peers stay untrusted and
// the simulation on each client decides what to believe.
type Router struct {
	rm *Manager

	// sessions tracks client ID -> (player ID, room code).
	sessions map[string]session
	mu       sync.RWMutex
}

type session struct {
	playerID string
	roomCode string
}

// NewRouter creates a new message router.
func NewRouter(rm *Manager) *Router {
	return &Router{
		rm:       rm,
		sessions: make(map[string]session),
	}
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	case ws.TypeJoinRoom:
		r.handleJoinRoom(cm.Client, msg)
	case ws.TypePosition:
		r.handlePosition(cm.Client, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

func (r *Router) handleJoinRoom(client *ws.Client, msg ws.Message) {
	var req ws.JoinRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid join data"))
		return
	}

	r.mu.RLock()
	_, joined := r.sessions[client.ID]
	r.mu.RUnlock()
	if joined {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	var room *Room
	if req.Room == "" {
		room = r.rm.Create()
	} else {
		room = r.rm.GetOrCreate(strings.ToUpper(strings.TrimSpace(req.Room)))
	}

	playerID := uuid.New().String()
	member := &Member{ID: playerID, Name: req.Name, Client: client}
	if !room.Add(member) {
		client.SendMessage(ws.NewErrorMessage("room is full"))
		return
	}

	r.mu.Lock()
	r.sessions[client.ID] = session{playerID: playerID, roomCode: room.Code}
	r.mu.Unlock()

	reply, _ := ws.NewMessage(ws.TypeRoomJoined, ws.RoomJoined{
		Room:   room.Code,
		SelfID: playerID,
		Peers:  room.Peers(playerID),
	})
	client.SendMessage(reply)

	notice, _ := ws.NewMessage(ws.TypePeerJoined, ws.PeerInfo{ID: playerID, Name: req.Name})
	room.BroadcastExcept(playerID, notice)

	slog.Info("peer joined room", "room", room.Code, "player", playerID, "peers", room.Count())
}

func (r *Router) handlePosition(client *ws.Client, msg ws.Message) {
	r.mu.RLock()
	sess, ok := r.sessions[client.ID]
	r.mu.RUnlock()
	if !ok {
		client.SendMessage(ws.NewErrorMessage("join a room first"))
		return
	}

	room := r.rm.Get(sess.roomCode)
	if room == nil {
		return
	}

	relayed, err := ws.NewMessage(ws.TypePeerPosition, ws.PeerPosition{
		From:    sess.playerID,
		Payload: msg.Data,
	})
	if err != nil {
		return
	}
	room.BroadcastExcept(sess.playerID, relayed)
}

// HandleDisconnect removes the client from its room and tells the
// remaining peers.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.mu.Lock()
	sess, ok := r.sessions[client.ID]
	delete(r.sessions, client.ID)
	r.mu.Unlock()
	if !ok {
		return
	}

	room := r.rm.Get(sess.roomCode)
	if room == nil {
		return
	}

	room.Remove(sess.playerID)
	notice, _ := ws.NewMessage(ws.TypePeerLeft, ws.PeerInfo{ID: sess.playerID})
	room.BroadcastExcept(sess.playerID, notice)

	if room.IsEmpty() {
		r.rm.Remove(room.Code)
	}
	slog.Info("peer left room", "room", sess.roomCode, "player", sess.playerID)
}
