package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalPaint/internal/state"
)

var seed = state.Entry{Site: "host", Lamport: 1, Stroke: state.Stroke{{X: 0, Y: 0}, {X: 1, Y: 1}}}

func startHub(t *testing.T) (*Hub, string, chan state.Entry) {
	t.Helper()
	received := make(chan state.Entry, 4)
	hub := NewHub(nil)
	hub.Snapshot = func() []state.Entry { return []state.Entry{seed} }
	hub.OnStroke = func(e state.Entry) { received <- e }

	mux := http.NewServeMux()
	mux.Handle(Path, hub)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return hub, strings.TrimPrefix(srv.URL, "http://"), received
}

// join connects a client and waits for its snapshot, which the hub sends
// only after registering the peer.
func join(t *testing.T, addr string) (*Client, chan []state.Entry) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	msgs := make(chan []state.Entry, 4)
	go c.Run(func(es []state.Entry) { msgs <- es })

	snap := recv(t, msgs)
	require.Len(t, snap, 1)
	assert.Equal(t, seed.Stroke, snap[0].Stroke)
	return c, msgs
}

func recv[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	var zero T
	return zero
}

func TestHubRelaysToOtherPeers(t *testing.T) {
	hub, addr, received := startHub(t)
	a, aMsgs := join(t, addr)
	_, bMsgs := join(t, addr)
	assert.Equal(t, 2, hub.Peers())

	e := state.Entry{Handle: "local-only", Site: "a", Lamport: 3, Stroke: state.Stroke{{X: 1, Y: 2}, {X: 3, Y: 4}}}
	require.NoError(t, a.Send(e))

	got := recv(t, received)
	assert.Equal(t, "a", got.Site)
	assert.Empty(t, got.Handle)

	relayed := recv(t, bMsgs)
	require.Len(t, relayed, 1)
	assert.Equal(t, e.Stroke, relayed[0].Stroke)
	assert.Equal(t, uint64(3), relayed[0].Lamport)

	select {
	case m := <-aMsgs:
		t.Fatalf("sender got its own stroke back: %v", m)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubPublishReachesAllPeers(t *testing.T) {
	hub, addr, _ := startHub(t)
	_, aMsgs := join(t, addr)
	_, bMsgs := join(t, addr)

	e := state.Entry{Site: "host", Lamport: 2, Stroke: state.Stroke{{X: 5, Y: 5}, {X: 6, Y: 6}}}
	hub.Publish(e)

	for _, ch := range []chan []state.Entry{aMsgs, bMsgs} {
		got := recv(t, ch)
		require.Len(t, got, 1)
		assert.Equal(t, "host", got[0].Site)
	}
}

func TestMessageEntries(t *testing.T) {
	assert.Len(t, StrokeMessage(seed).Entries(), 1)
	assert.Nil(t, Message{Type: TypeStroke}.Entries())
	assert.Len(t, Message{Type: TypeSnapshot, Strokes: []state.Entry{seed, seed}}.Entries(), 2)
	assert.Nil(t, Message{Type: "bogus"}.Entries())
}

func TestDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := Dial(ctx, "127.0.0.1:1")
	assert.ErrorContains(t, err, "connecting to")
}
