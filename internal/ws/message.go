package ws

import "encoding/json"

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message types - room membership
const (
	TypeJoinRoom   = "join_room"
	TypeRoomJoined = "room_joined"
	TypePeerJoined = "peer_joined"
	TypePeerLeft   = "peer_left"
)

// Message types - position sync
const (
	TypePosition     = "position"
	TypePeerPosition = "peer_position"
)

// Message types - system
const (
	TypeError = "error"
)

// JoinRoomRequest asks the relay to place the client in a room. An empty
// room code requests a brand-new room.
type JoinRoomRequest struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

// PeerInfo identifies one peer in a room.
type PeerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomJoined confirms membership and lists the peers already present.
type RoomJoined struct {
	Room   string     `json:"room"`
	SelfID string     `json:"self_id"`
	Peers  []PeerInfo `json:"peers"`
}

// PeerPosition wraps a relayed position payload with its sender.
type PeerPosition struct {
	From    string          `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorMessage{Message: msg})
	return Message{Type: TypeError, Data: data}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}
