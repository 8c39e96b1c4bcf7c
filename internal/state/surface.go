package state

import (
	"log/slog"

	"github.com/google/uuid"
)

// Signal is an application level request raised by the surface.
type Signal int

const (
	SignalNone Signal = iota
	SignalCancel
	SignalQuit
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalCancel:
		return "cancel"
	case SignalQuit:
		return "quit"
	}
	return "unknown"
}

// Outcome reports what happened to the active stroke during a tick.
type Outcome int

const (
	OutcomeNone      Outcome = iota
	OutcomeCommitted         // the stroke was moved into the store
	OutcomeDiscarded         // fewer than two points
	OutcomeDropped           // released after a cancel
	OutcomeExhausted         // no handle was available
	OutcomeRejected          // the store refused the handle or key
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCommitted:
		return "committed"
	case OutcomeDiscarded:
		return "discarded"
	case OutcomeDropped:
		return "dropped"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeRejected:
		return "rejected"
	}
	return "unknown"
}

// Frame is everything the host needs after one tick.
type Frame struct {
	Lines   []Polyline
	Action  Action
	Signal  Signal
	Outcome Outcome
	Merged  int // strokes merged from Merge during this tick
}

// Surface turns per-tick input snapshots into committed strokes and a draw
// list. A Surface is not safe for concurrent use.
type Surface struct {
	pool     *IDPool
	store    *Store
	clock    Clock
	capacity int
	style    Style
	site     string
	log      *slog.Logger

	phase        Phase
	active       Stroke
	activeHandle Handle

	pending []Entry

	// OnCommit is called after a locally drawn stroke is committed.
	OnCommit func(Entry)
}

// Option configures a Surface.
type Option func(*Surface)

// WithCapacity sets the number of handles kept in reserve.
func WithCapacity(n int) Option {
	return func(s *Surface) { s.capacity = n }
}

// WithStyle sets the style of every yielded polyline.
func WithStyle(st Style) Option {
	return func(s *Surface) { s.style = st }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSite sets the session id stamped on locally drawn strokes.
func WithSite(site string) Option {
	return func(s *Surface) { s.site = site }
}

// NewSurface creates a surface whose handles come from gen. The handle for
// the active stroke is reserved immediately; the pool is filled on the first
// tick that needs it.
func NewSurface(gen Generator, opts ...Option) *Surface {
	s := &Surface{
		pool:     NewIDPool(gen),
		store:    NewStore(),
		capacity: DefaultPoolCapacity,
		style:    DefaultStyle(),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.site == "" {
		s.site = uuid.NewString()
	}
	s.activeHandle = gen.Next()
	return s
}

// Update runs one tick. A quit request ends the tick before any pointer
// input is classified.
func (s *Surface) Update(in Input) Frame {
	var f Frame
	if in.Quit {
		f.Signal = SignalQuit
		f.Lines = s.DrawList()
		return f
	}

	prev := s.phase
	act := Classify(prev, in)
	f.Action = act
	if act.Kind != ActionNone || len(s.pending) > 0 {
		s.pool.EnsureCapacity(s.capacity)
	}

	switch act.Kind {
	case ActionCancel:
		s.active = s.active[:0]
		f.Signal = SignalCancel
		s.log.Debug("stroke cancelled")
	case ActionPress:
		s.active = append(s.active[:0], act.Pos)
	case ActionDrag:
		s.active = append(s.active, act.Pos)
	case ActionRelease:
		f.Outcome = s.release(prev)
	}
	s.phase = act.Next(prev)

	f.Merged = s.applyPending()
	f.Lines = s.DrawList()
	return f
}

func (s *Surface) release(prev Phase) Outcome {
	points := s.active
	s.active = s.active[:0]

	switch {
	case prev != PhasePressed:
		return OutcomeDropped
	case len(points) < 2:
		s.log.Debug("stroke discarded", "points", len(points))
		return OutcomeDiscarded
	}

	h, ok := s.pool.Acquire()
	if !ok {
		s.log.Warn("no handles left, stroke dropped",
			"points", len(points), "capacity", s.capacity)
		return OutcomeExhausted
	}
	e := Entry{
		Handle:  h,
		Stroke:  points.Clone(),
		Site:    s.site,
		Lamport: s.clock.Tick(),
	}
	if !s.store.Commit(e) {
		s.log.Warn("store rejected stroke", "handle", string(h), "lamport", e.Lamport)
		return OutcomeRejected
	}
	s.log.Debug("stroke committed",
		"handle", string(h), "points", len(points), "strokes", s.store.Len())
	if s.OnCommit != nil {
		s.OnCommit(e)
	}
	return OutcomeCommitted
}

// applyPending binds handles to strokes queued by Merge. Strokes that do not
// get a handle stay queued for a later tick.
func (s *Surface) applyPending() int {
	merged := 0
	for len(s.pending) > 0 {
		e := s.pending[0]
		if s.store.Has(e.Site, e.Lamport) || len(e.Stroke) < 2 {
			s.pending = s.pending[1:]
			continue
		}
		h, ok := s.pool.Acquire()
		if !ok {
			s.log.Warn("no handles left, merge deferred", "pending", len(s.pending))
			break
		}
		e.Handle = h
		s.clock.Observe(e.Lamport)
		s.store.Commit(e)
		s.pending = s.pending[1:]
		merged++
	}
	if len(s.pending) == 0 {
		s.pending = nil
	}
	return merged
}

// Merge queues strokes drawn elsewhere. They are committed on the next tick
// under handles from this surface's pool; strokes already present are ignored.
// The Handle field of the given entries is not used.
func (s *Surface) Merge(entries ...Entry) {
	for _, e := range entries {
		e.Handle = ""
		e.Stroke = e.Stroke.Clone()
		s.pending = append(s.pending, e)
	}
}

// Flush commits queued merges without processing any pointer input, refilling
// the pool as often as needed. It returns the number of strokes merged.
func (s *Surface) Flush() int {
	merged := 0
	for len(s.pending) > 0 {
		s.pool.EnsureCapacity(s.capacity)
		n := s.applyPending()
		if n == 0 {
			break
		}
		merged += n
	}
	return merged
}

// Pending returns the number of merged strokes waiting for a tick.
func (s *Surface) Pending() int {
	return len(s.pending)
}

// DrawList returns the committed strokes in commit order followed by the
// active stroke, if it has any points.
func (s *Surface) DrawList() []Polyline {
	entries := s.store.entries
	lines := make([]Polyline, 0, len(entries)+1)
	for _, e := range entries {
		lines = append(lines, s.polyline(e.Handle, e.Stroke))
	}
	if len(s.active) > 0 {
		lines = append(lines, s.polyline(s.activeHandle, s.active.Clone()))
	}
	return lines
}

func (s *Surface) polyline(h Handle, pts Stroke) Polyline {
	return Polyline{
		Handle:    h,
		Points:    pts,
		Thickness: s.style.Thickness,
		Color:     s.style.Color,
		Cap:       s.style.Cap,
	}
}

// SetCapacity changes the reserve size and resizes the pool right away.
func (s *Surface) SetCapacity(n int) {
	s.capacity = n
	s.pool.EnsureCapacity(n)
}

// Strokes returns the committed strokes in commit order.
func (s *Surface) Strokes() []Entry { return s.store.All() }

// Len returns the number of committed strokes.
func (s *Surface) Len() int { return s.store.Len() }

// Active returns a copy of the stroke being drawn.
func (s *Surface) Active() Stroke { return s.active.Clone() }

// ActiveHandle returns the handle reserved for the active stroke.
func (s *Surface) ActiveHandle() Handle { return s.activeHandle }

// Phase returns the pointer phase after the last tick.
func (s *Surface) Phase() Phase { return s.phase }

// Pool returns the surface's identifier pool.
func (s *Surface) Pool() *IDPool { return s.pool }

// Site returns the session id stamped on local strokes.
func (s *Surface) Site() string { return s.site }

// Style returns the style applied to yielded polylines.
func (s *Surface) Style() Style { return s.style }
