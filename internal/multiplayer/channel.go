package multiplayer

// Handlers receives peer channel events. Callbacks run on the channel's
// receive goroutine.
type Handlers struct {
	// OnData is invoked with the sender's peer ID and the raw payload.
	OnData func(peerID string, payload []byte)
	// OnConnect is invoked when a peer becomes reachable.
	OnConnect func(peerID string)
	// OnPeerLeft is invoked when a peer goes away.
	OnPeerLeft func(peerID string)
	// OnError is invoked on transport-level failures.
	OnError func(err error)
}

// PeerChannel abstracts an established bidirectional channel to the other
// players in a room. How the channel got established (signaling) is
// outside this package.
type PeerChannel interface {
	// Send delivers the payload to every connected peer.
	Send(payload []byte) error
	// Connected reports whether at least one peer is reachable.
	Connected() bool
	// SetHandlers registers the event callbacks. Must be called before
	// traffic starts.
	SetHandlers(h Handlers)
	// Close tears the channel down. Safe to call more than once.
	Close() error
}
