package net

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"LocalPaint/internal/state"
)

// Path is the HTTP path the hub is served on.
const Path = "/ws"

// Client is a joined session's connection to a host.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Dial connects to the hub at addr ("host:port").
func Dial(ctx context.Context, addr string) (*Client, error) {
	url := fmt.Sprintf("ws://%s%s", addr, Path)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// LocalAddr returns the client side address of the connection.
func (c *Client) LocalAddr() string {
	return c.conn.LocalAddr().String()
}

// Send publishes a locally committed stroke.
func (c *Client) Send(e state.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(StrokeMessage(e)); err != nil {
		return fmt.Errorf("sending stroke: %w", err)
	}
	return nil
}

// Run reads messages until the connection fails and passes the strokes in
// each one to handle. It always returns a non-nil error.
func (c *Client) Run(handle func([]state.Entry)) error {
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("reading from host: %w", err)
		}
		if entries := msg.Entries(); len(entries) > 0 {
			handle(entries)
		}
	}
}

// Close closes the connection, which makes Run return.
func (c *Client) Close() error {
	return c.conn.Close()
}
