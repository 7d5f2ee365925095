package relay

import (
	"sync"

	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/ws"
)

// MaxPeers caps a room. Position fan-out is O(peers^2) per tick across a
// room, so rooms stay small.
const MaxPeers = 8

// Member is one connected player in a room.
type Member struct {
	ID     string
	Name   string
	Client *ws.Client
}

// Room groups peers that exchange position packets with each other.
type Room struct {
	Code string

	members map[string]*Member // player ID -> member
	mu      sync.RWMutex
}

// NewRoom creates an empty room with the given code.
func NewRoom(code string) *Room {
	return &Room{
		Code:    code,
		members: make(map[string]*Member),
	}
}

// Add joins a member. Returns false if the room is full.
func (r *Room) Add(m *Member) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.members) >= MaxPeers {
		return false
	}
	r.members[m.ID] = m
	return true
}

// Remove drops a member by player ID.
func (r *Room) Remove(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, playerID)
}

// Count returns the number of members.
func (r *Room) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// IsEmpty returns true if the room has no members.
func (r *Room) IsEmpty() bool {
	return r.Count() == 0
}

// Peers lists every member except the given player, for join responses.
func (r *Room) Peers(exceptID string) []ws.PeerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	peers := make([]ws.PeerInfo, 0, len(r.members))
	for id, m := range r.members {
		if id == exceptID {
			continue
		}
		peers = append(peers, ws.PeerInfo{ID: id, Name: m.Name})
	}
	return peers
}

// BroadcastExcept sends a message to every member but the sender.
func (r *Room) BroadcastExcept(senderID string, msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, m := range r.members {
		if id == senderID {
			continue
		}
		m.Client.SendMessage(msg)
	}
}
