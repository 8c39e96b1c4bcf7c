// Package net shares committed strokes between LocalPaint sessions over
// websockets and finds hosts on the local network with mDNS.
package net

import "LocalPaint/internal/state"

// Message types on the wire.
const (
	TypeStroke   = "stroke"
	TypeSnapshot = "snapshot"
)

// Message is one JSON text frame.
type Message struct {
	Type    string        `json:"type"`
	Stroke  *state.Entry  `json:"stroke,omitempty"`
	Strokes []state.Entry `json:"strokes,omitempty"`
}

// StrokeMessage wraps a single committed stroke.
func StrokeMessage(e state.Entry) Message {
	return Message{Type: TypeStroke, Stroke: &e}
}

// Entries returns the strokes carried by m.
func (m Message) Entries() []state.Entry {
	switch m.Type {
	case TypeStroke:
		if m.Stroke != nil {
			return []state.Entry{*m.Stroke}
		}
	case TypeSnapshot:
		return m.Strokes
	}
	return nil
}
