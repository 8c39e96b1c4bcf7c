package export

import (
	"encoding/json"
	"fmt"
	"io"

	"LocalPaint/internal/state"
)

// SaveJSON writes the strokes as an indented JSON array.
func SaveJSON(w io.Writer, entries []state.Entry) error {
	if entries == nil {
		entries = []state.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding strokes: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing strokes: %w", err)
	}
	return nil
}

// LoadJSON reads strokes written by SaveJSON. Strokes with fewer than two
// points are skipped.
func LoadJSON(r io.Reader) ([]state.Entry, error) {
	var entries []state.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing strokes: %w", err)
	}
	out := entries[:0]
	for _, e := range entries {
		if len(e.Stroke) >= 2 {
			out = append(out, e)
		}
	}
	return out, nil
}
