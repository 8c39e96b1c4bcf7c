package state

// Store holds committed strokes in commit order, each bound to one handle.
type Store struct {
	entries []Entry
	byKey   map[string]int
	byID    map[Handle]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byKey: make(map[string]int),
		byID:  make(map[Handle]int),
	}
}

// Commit appends e. It returns false without modifying the store if e has
// fewer than two points, if its handle is already bound, or if a stroke
// with the same site and timestamp was committed before.
func (s *Store) Commit(e Entry) bool {
	if len(e.Stroke) < 2 || e.Handle == "" {
		return false
	}
	if _, dup := s.byID[e.Handle]; dup {
		return false
	}
	key := e.Key()
	if _, dup := s.byKey[key]; dup {
		return false
	}
	e.Stroke = e.Stroke.Clone()
	s.byKey[key] = len(s.entries)
	s.byID[e.Handle] = len(s.entries)
	s.entries = append(s.entries, e)
	return true
}

// Has reports whether a stroke with the given site and timestamp exists.
func (s *Store) Has(site string, lamport uint64) bool {
	_, ok := s.byKey[Entry{Site: site, Lamport: lamport}.Key()]
	return ok
}

// Len returns the number of committed strokes.
func (s *Store) Len() int {
	return len(s.entries)
}

// All returns the committed strokes in commit order. The slice is a copy;
// the point data is shared and must not be modified.
func (s *Store) All() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
