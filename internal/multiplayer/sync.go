package multiplayer

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// TypePosition is the only packet type peers exchange.
const TypePosition = "position"

// Packet is the wire format for one position update.
type Packet struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Lane int     `json:"lane"`
}

// RemotePlayer is the last known transform of a peer. Positions snap to
// the newest packet; there is no interpolation.
type RemotePlayer struct {
	ID       string
	Name     string
	X, Y, Z  float64
	Lane     int
	LastSeen time.Time
}

// Sync pushes the local transform to peers and maintains remote player
// state from inbound packets. Inbound callbacks arrive on the channel's
// receive goroutine while the game loop reads remotes, so the registry is
// mutex-guarded; everything else is single-threaded.
type Sync struct {
	ch  PeerChannel
	now func() time.Time

	mu      sync.RWMutex
	remotes map[string]*RemotePlayer
}

// NewSync wires a Sync onto an established channel.
func NewSync(ch PeerChannel) *Sync {
	s := &Sync{
		ch:      ch,
		now:     time.Now,
		remotes: make(map[string]*RemotePlayer),
	}
	ch.SetHandlers(Handlers{
		OnData:     s.handleData,
		OnConnect:  s.handleConnect,
		OnPeerLeft: s.RemovePeer,
		OnError: func(err error) {
			slog.Warn("peer channel error", "error", err)
		},
	})
	return s
}

// BroadcastPosition sends the local transform to all peers. A no-op while
// no peer is connected.
func (s *Sync) BroadcastPosition(x, y, z float64, lane int) error {
	if !s.ch.Connected() {
		return nil
	}
	data, err := json.Marshal(Packet{Type: TypePosition, X: x, Y: y, Z: z, Lane: lane})
	if err != nil {
		return err
	}
	return s.ch.Send(data)
}

// handleData applies one inbound payload. Malformed payloads are dropped
// and logged; a bad peer must never take the session down. Ordering is
// last-message-wins per peer.
func (s *Sync) handleData(peerID string, payload []byte) {
	var pkt Packet
	if err := json.Unmarshal(payload, &pkt); err != nil {
		slog.Warn("dropping malformed peer packet", "peer", peerID, "error", err)
		return
	}
	if pkt.Type != TypePosition {
		slog.Debug("ignoring unknown peer packet type", "peer", peerID, "type", pkt.Type)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.remotes[peerID]
	if !ok {
		r = &RemotePlayer{ID: peerID}
		s.remotes[peerID] = r
		slog.Info("remote player appeared", "peer", peerID)
	}
	r.X, r.Y, r.Z = pkt.X, pkt.Y, pkt.Z
	r.Lane = pkt.Lane
	r.LastSeen = s.now()
}

func (s *Sync) handleConnect(peerID string) {
	slog.Info("peer connected", "peer", peerID)
}

// RemovePeer drops a departed peer's representation.
func (s *Sync) RemovePeer(peerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.remotes, peerID)
}

// Remotes returns a snapshot of all remote players for rendering.
func (s *Sync) Remotes() []RemotePlayer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RemotePlayer, 0, len(s.remotes))
	for _, r := range s.remotes {
		out = append(out, *r)
	}
	return out
}

// Close tears down the underlying channel so a new session does not leak
// the old connection.
func (s *Sync) Close() error {
	return s.ch.Close()
}
