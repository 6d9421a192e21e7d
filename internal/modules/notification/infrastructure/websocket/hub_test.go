package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvOrFail(t *testing.T, ch chan []byte, want string) {
	t.Helper()
	select {
	case msg := <-ch:
		assert.Equal(t, want, string(msg))
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func TestHub_UnicastReachesOnlyTheTargetUser(t *testing.T) {
	h := NewHub()
	targetID := uuid.New()

	target := &Client{send: make(chan []byte, 1), userID: targetID}
	other := &Client{send: make(chan []byte, 1), userID: uuid.New()}
	h.clients[target] = true
	h.clients[other] = true

	go h.Run()
	defer h.Stop()

	h.SendToUser(targetID, []byte(`{"title":"Price Drop Alert! 💰"}`))

	recvOrFail(t, target.send, `{"title":"Price Drop Alert! 💰"}`)
	select {
	case <-other.send:
		t.Fatal("unicast leaked to a different user")
	default:
	}
}

func TestHub_UnicastReachesAllConnectionsOfTheUser(t *testing.T) {
	h := NewHub()
	userID := uuid.New()

	// Same user on two devices
	phone := &Client{send: make(chan []byte, 1), userID: userID}
	laptop := &Client{send: make(chan []byte, 1), userID: userID}
	h.clients[phone] = true
	h.clients[laptop] = true

	go h.Run()
	defer h.Stop()

	h.SendToUser(userID, []byte("alert"))
	recvOrFail(t, phone.send, "alert")
	recvOrFail(t, laptop.send, "alert")
}

func TestHub_BroadcastReachesEveryone(t *testing.T) {
	h := NewHub()
	a := &Client{send: make(chan []byte, 1), userID: uuid.New()}
	b := &Client{send: make(chan []byte, 1), userID: uuid.New()}
	h.clients[a] = true
	h.clients[b] = true

	go h.Run()
	defer h.Stop()

	h.BroadcastMessage([]byte("market update"))
	recvOrFail(t, a.send, "market update")
	recvOrFail(t, b.send, "market update")
}

func TestHub_RegisterUnregister(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	userID := uuid.New()
	client := &Client{send: make(chan []byte, 1), userID: userID}

	h.register <- client
	h.SendToUser(userID, []byte("hello"))
	recvOrFail(t, client.send, "hello")

	h.unregister <- client
	// Unregister closes the send channel
	require.Eventually(t, func() bool {
		select {
		case _, open := <-client.send:
			return !open
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	h := NewHub()
	userID := uuid.New()
	// Unbuffered send channel with no reader simulates a stalled connection
	stalled := &Client{send: make(chan []byte), userID: userID}
	h.clients[stalled] = true

	go h.Run()
	defer h.Stop()

	h.SendToUser(userID, []byte("first"))

	// The stalled client was evicted; a second send finds no clients and
	// must not block the hub loop
	done := make(chan struct{})
	go func() {
		h.SendToUser(userID, []byte("second"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub loop blocked on a stalled client")
	}
}

func TestHub_SendAfterStopDoesNotBlock(t *testing.T) {
	h := NewHub()
	go h.Run()
	h.Stop()
	h.Stop() // idempotent

	done := make(chan struct{})
	go func() {
		h.SendToUser(uuid.New(), []byte("late"))
		h.BroadcastMessage([]byte("late"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("send after stop blocked")
	}
}
