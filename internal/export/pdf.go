// Package export writes committed strokes to PDF and JSON files.
package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"LocalPaint/internal/state"
)

// margin around the drawing, in points
const margin = 36

// PDF renders the strokes on a single page sized to fit them.
func PDF(w io.Writer, entries []state.Entry, st state.Style) error {
	var bounds state.Rect
	found := false
	for _, e := range entries {
		r, ok := e.Stroke.Bounds()
		if !ok {
			continue
		}
		if !found {
			bounds, found = r, true
		} else {
			bounds = bounds.Union(r)
		}
	}

	pad := float64(st.Thickness)/2 + margin
	width, height := 2*pad, 2*pad
	if found {
		width += float64(bounds.Width())
		height += float64(bounds.Height())
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	p.SetCreator("LocalPaint", true)
	p.AddPage()
	p.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
	if st.Color.A < 0xff {
		p.SetAlpha(float64(st.Color.A)/0xff, "Normal")
	}
	p.SetLineWidth(float64(st.Thickness))
	if st.Cap == state.CapRound {
		p.SetLineCapStyle("round")
		p.SetLineJoinStyle("round")
	}

	for _, e := range entries {
		pts := e.Stroke
		for i := 1; i < len(pts); i++ {
			p.Line(
				float64(pts[i-1].X-bounds.MinX)+pad, float64(pts[i-1].Y-bounds.MinY)+pad,
				float64(pts[i].X-bounds.MinX)+pad, float64(pts[i].Y-bounds.MinY)+pad,
			)
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
