package net

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"LocalPaint/internal/state"
)

// Hub is run by the host. It accepts websocket peers, hands every stroke
// they send to OnStroke and relays it to the other peers.
type Hub struct {
	// OnStroke receives strokes sent by peers. It is called from the peer's
	// read goroutine.
	OnStroke func(state.Entry)
	// Snapshot returns the strokes sent to a peer when it joins.
	Snapshot func() []state.Entry

	upgrader websocket.Upgrader
	log      *slog.Logger

	mu    sync.RWMutex
	peers map[*peer]struct{}
}

type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes
}

func (p *peer) send(m Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteJSON(m)
}

// NewHub creates a hub that logs to logger, or nowhere if logger is nil.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			// peers are other LocalPaint instances, not browsers
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:   logger,
		peers: make(map[*peer]struct{}),
	}
}

// ServeHTTP upgrades the request and serves the peer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	p := &peer{conn: conn}
	addr := conn.RemoteAddr().String()
	h.add(p, addr)
	defer h.remove(p, addr)
	defer conn.Close()

	var snap []state.Entry
	if h.Snapshot != nil {
		snap = h.Snapshot()
	}
	if err := p.send(Message{Type: TypeSnapshot, Strokes: snap}); err != nil {
		h.log.Warn("sending snapshot failed", "peer", addr, "err", err)
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			h.log.Info("peer disconnected", "peer", addr, "err", err)
			return
		}
		if msg.Type != TypeStroke || msg.Stroke == nil {
			h.log.Debug("ignoring message", "peer", addr, "type", msg.Type)
			continue
		}
		h.log.Debug("stroke received", "peer", addr, "site", msg.Stroke.Site, "lamport", msg.Stroke.Lamport)
		if h.OnStroke != nil {
			h.OnStroke(*msg.Stroke)
		}
		h.broadcast(msg, p)
	}
}

func (h *Hub) add(p *peer, addr string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
	h.log.Info("peer connected", "peer", addr, "peers", len(h.peers))
}

func (h *Hub) remove(p *peer, addr string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.peers, p)
	h.log.Info("peer removed", "peer", addr, "peers", len(h.peers))
}

// Publish sends a stroke drawn on the host to every peer.
func (h *Hub) Publish(e state.Entry) {
	h.broadcast(StrokeMessage(e), nil)
}

// Peers returns the number of connected peers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

func (h *Hub) broadcast(m Message, exclude *peer) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		if p == exclude {
			continue
		}
		if err := p.send(m); err != nil {
			h.log.Warn("sending to peer failed", "peer", p.conn.RemoteAddr().String(), "err", err)
		}
	}
}
