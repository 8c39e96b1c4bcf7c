package state

import (
	"fmt"
	"image/color"
)

// Point is a position in the paint area's local coordinate space.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Stroke is an ordered list of points. Insertion order is drawing order.
type Stroke []Point

// Rect is an axis aligned rectangle.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

func (r Rect) Width() float32  { return r.MaxX - r.MinX }
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Bounds returns the bounding box of the stroke. ok is false for an empty stroke.
func (s Stroke) Bounds() (r Rect, ok bool) {
	if len(s) == 0 {
		return Rect{}, false
	}
	r = Rect{MinX: s[0].X, MinY: s[0].Y, MaxX: s[0].X, MaxY: s[0].Y}
	for _, p := range s[1:] {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r, true
}

// Clone returns a copy that shares no memory with s.
func (s Stroke) Clone() Stroke {
	if s == nil {
		return nil
	}
	out := make(Stroke, len(s))
	copy(out, s)
	return out
}

// Handle is an opaque identifier addressing one drawable object.
type Handle string

// Entry is a committed stroke and the handle it is drawn under.
// Handles are local to one surface and are not serialized.
type Entry struct {
	Handle  Handle `json:"-"`
	Stroke  Stroke `json:"points"`
	Site    string `json:"site"`    // session that drew the stroke
	Lamport uint64 `json:"lamport"` // logical commit time on Site
}

// Key identifies a stroke across sessions.
func (e Entry) Key() string {
	return fmt.Sprintf("%s-%d", e.Site, e.Lamport)
}

// Cap is the shape drawn at the ends of a polyline.
type Cap int

const (
	CapRound Cap = iota
	CapFlat
)

// Style is applied to every polyline the surface yields.
type Style struct {
	Thickness float32
	Color     color.NRGBA
	Cap       Cap
}

// DefaultStyle is a 12 unit thick, round capped black line.
func DefaultStyle() Style {
	return Style{
		Thickness: 12,
		Color:     color.NRGBA{A: 0xff},
		Cap:       CapRound,
	}
}

// Polyline is one element of the draw list handed to the renderer.
type Polyline struct {
	Handle    Handle
	Points    Stroke
	Thickness float32
	Color     color.NRGBA
	Cap       Cap
}
