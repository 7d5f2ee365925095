package relay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/ws"
)

func newTestClient(id string) *ws.Client {
	// No live connection: SendMessage only pushes into the Send buffer.
	return ws.NewClient(id, ws.NewHub(), nil)
}

func drain(t *testing.T, c *ws.Client) []ws.Message {
	t.Helper()
	var out []ws.Message
	for {
		select {
		case data := <-c.Send:
			var msg ws.Message
			require.NoError(t, json.Unmarshal(data, &msg))
			out = append(out, msg)
		default:
			return out
		}
	}
}

func join(t *testing.T, r *Router, c *ws.Client, room string) ws.RoomJoined {
	t.Helper()
	msg, err := ws.NewMessage(ws.TypeJoinRoom, ws.JoinRoomRequest{Room: room, Name: c.ID})
	require.NoError(t, err)
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	r.HandleMessage(&ws.ClientMessage{Client: c, Data: data})

	msgs := drain(t, c)
	require.NotEmpty(t, msgs)
	require.Equal(t, ws.TypeRoomJoined, msgs[0].Type)

	var joined ws.RoomJoined
	require.NoError(t, json.Unmarshal(msgs[0].Data, &joined))
	return joined
}

func TestRouter_JoinCreatesRoom(t *testing.T) {
	rm := NewManager()
	r := NewRouter(rm)
	c := newTestClient("alice")

	joined := join(t, r, c, "")

	assert.Len(t, joined.Room, 4)
	assert.NotEmpty(t, joined.SelfID)
	assert.Empty(t, joined.Peers)
	assert.Equal(t, 1, rm.RoomCount())
}

func TestRouter_SecondPeerSeesFirst(t *testing.T) {
	rm := NewManager()
	r := NewRouter(rm)
	alice := newTestClient("alice")
	bob := newTestClient("bob")

	aliceJoined := join(t, r, alice, "")
	bobJoined := join(t, r, bob, aliceJoined.Room)

	assert.Equal(t, aliceJoined.Room, bobJoined.Room)
	require.Len(t, bobJoined.Peers, 1)
	assert.Equal(t, aliceJoined.SelfID, bobJoined.Peers[0].ID)

	// Alice got the peer_joined notice.
	msgs := drain(t, alice)
	require.Len(t, msgs, 1)
	assert.Equal(t, ws.TypePeerJoined, msgs[0].Type)
}

func TestRouter_JoinNormalizesRoomCode(t *testing.T) {
	rm := NewManager()
	r := NewRouter(rm)
	alice := newTestClient("alice")
	bob := newTestClient("bob")

	join(t, r, alice, "abcd") // lowercase code
	bobJoined := join(t, r, bob, " ABCD ")

	assert.Equal(t, "ABCD", bobJoined.Room)
	require.Len(t, bobJoined.Peers, 1)
}

func TestRouter_DoubleJoinRejected(t *testing.T) {
	r := NewRouter(NewManager())
	c := newTestClient("alice")

	join(t, r, c, "")

	msg, _ := ws.NewMessage(ws.TypeJoinRoom, ws.JoinRoomRequest{Room: "", Name: "alice"})
	data, _ := json.Marshal(msg)
	r.HandleMessage(&ws.ClientMessage{Client: c, Data: data})

	msgs := drain(t, c)
	require.Len(t, msgs, 1)
	assert.Equal(t, ws.TypeError, msgs[0].Type)
}

func TestRouter_PositionRelayedToPeersOnly(t *testing.T) {
	r := NewRouter(NewManager())
	alice := newTestClient("alice")
	bob := newTestClient("bob")

	aliceJoined := join(t, r, alice, "")
	join(t, r, bob, aliceJoined.Room)
	drain(t, alice) // discard bob's peer_joined notice

	payload := json.RawMessage(`{"type":"position","x":5,"y":1,"z":20,"lane":1}`)
	msg := ws.Message{Type: ws.TypePosition, Data: payload}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	r.HandleMessage(&ws.ClientMessage{Client: alice, Data: data})

	assert.Empty(t, drain(t, alice), "sender gets no echo")

	msgs := drain(t, bob)
	require.Len(t, msgs, 1)
	require.Equal(t, ws.TypePeerPosition, msgs[0].Type)

	var rel ws.PeerPosition
	require.NoError(t, json.Unmarshal(msgs[0].Data, &rel))
	assert.Equal(t, aliceJoined.SelfID, rel.From)
	assert.JSONEq(t, string(payload), string(rel.Payload))
}

func TestRouter_PositionBeforeJoinRejected(t *testing.T) {
	r := NewRouter(NewManager())
	c := newTestClient("alice")

	msg := ws.Message{Type: ws.TypePosition, Data: json.RawMessage(`{"type":"position"}`)}
	data, _ := json.Marshal(msg)
	r.HandleMessage(&ws.ClientMessage{Client: c, Data: data})

	msgs := drain(t, c)
	require.Len(t, msgs, 1)
	assert.Equal(t, ws.TypeError, msgs[0].Type)
}

func TestRouter_MalformedMessageRejected(t *testing.T) {
	r := NewRouter(NewManager())
	c := newTestClient("alice")

	r.HandleMessage(&ws.ClientMessage{Client: c, Data: []byte("{broken")})

	msgs := drain(t, c)
	require.Len(t, msgs, 1)
	assert.Equal(t, ws.TypeError, msgs[0].Type)
}

func TestRouter_DisconnectNotifiesAndCleansUp(t *testing.T) {
	rm := NewManager()
	r := NewRouter(rm)
	alice := newTestClient("alice")
	bob := newTestClient("bob")

	aliceJoined := join(t, r, alice, "")
	join(t, r, bob, aliceJoined.Room)
	drain(t, alice)

	r.HandleDisconnect(bob)

	msgs := drain(t, alice)
	require.Len(t, msgs, 1)
	assert.Equal(t, ws.TypePeerLeft, msgs[0].Type)

	r.HandleDisconnect(alice)
	assert.Equal(t, 0, rm.RoomCount(), "empty room removed")
}

func TestRoom_FullRejectsJoin(t *testing.T) {
	room := NewRoom("TEST")
	for i := 0; i < MaxPeers; i++ {
		require.True(t, room.Add(&Member{ID: string(rune('a' + i))}))
	}
	assert.False(t, room.Add(&Member{ID: "overflow"}))
}
