package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalPaint/internal/state"
)

func newTestArea(t *testing.T, opts ...state.Option) *PaintArea {
	t.Helper()
	test.NewTempApp(t)
	s := state.NewSurface(&state.SequenceGenerator{Prefix: "h"}, opts...)
	a := NewPaintArea(s, nil)
	w := test.NewWindow(a)
	t.Cleanup(w.Close)
	w.Resize(fyne.NewSize(400, 400))
	return a
}

func mouse(x, y float32, b desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     b,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestPaintAreaDrawsStroke(t *testing.T) {
	a := newTestArea(t)
	var frames []state.Frame
	a.OnFrame = func(f state.Frame) { frames = append(frames, f) }

	a.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	a.Dragged(drag(20, 15))
	a.Dragged(drag(30, 40))
	assert.Equal(t, state.Stroke{{X: 10, Y: 10}, {X: 20, Y: 15}, {X: 30, Y: 40}}, a.Surface().Active())
	a.MouseUp(mouse(30, 40, desktop.MouseButtonPrimary))
	a.DragEnd()

	require.Equal(t, 1, a.Surface().Len())
	assert.Empty(t, a.Surface().Active())
	assert.Equal(t, state.OutcomeCommitted, frames[3].Outcome)
}

func TestPaintAreaIgnoresSecondaryButton(t *testing.T) {
	a := newTestArea(t)
	a.MouseDown(mouse(10, 10, desktop.MouseButtonSecondary))
	a.Dragged(drag(20, 20))
	a.MouseUp(mouse(20, 20, desktop.MouseButtonSecondary))

	assert.Zero(t, a.Surface().Len())
	assert.Equal(t, state.PhaseIdle, a.Surface().Phase())
}

func TestPaintAreaEscapeCancels(t *testing.T) {
	a := newTestArea(t)
	var signals []state.Signal
	a.OnSignal = func(s state.Signal) { signals = append(signals, s) }

	a.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	a.Dragged(drag(50, 50))
	a.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	a.Dragged(drag(60, 60))
	assert.Empty(t, a.Surface().Active())
	assert.Equal(t, state.PhaseCancelled, a.Surface().Phase())

	a.MouseUp(mouse(60, 60, desktop.MouseButtonPrimary))
	assert.Zero(t, a.Surface().Len())
	assert.Equal(t, state.PhaseIdle, a.Surface().Phase())
	assert.Equal(t, []state.Signal{state.SignalCancel}, signals)
}

func TestPaintAreaEscapeWhileIdleKeepsNextStroke(t *testing.T) {
	a := newTestArea(t)
	a.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.Equal(t, state.PhaseIdle, a.Surface().Phase())

	a.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	a.Dragged(drag(20, 20))
	a.Dragged(drag(30, 30))
	assert.Equal(t, state.PhasePressed, a.Surface().Phase())
	a.MouseUp(mouse(30, 30, desktop.MouseButtonPrimary))

	require.Equal(t, 1, a.Surface().Len())
	assert.Equal(t, state.Stroke{{X: 10, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 30}}, a.Surface().Strokes()[0].Stroke)
}

func TestPaintAreaQuit(t *testing.T) {
	a := newTestArea(t)
	var got state.Signal
	a.OnSignal = func(s state.Signal) { got = s }
	a.Quit()
	assert.Equal(t, state.SignalQuit, got)
}

func TestPaintAreaRendererCachesCommittedStrokes(t *testing.T) {
	a := newTestArea(t)
	r := test.WidgetRenderer(a)
	assert.Len(t, r.Objects(), 1, "background only")

	a.MouseDown(mouse(0, 0, desktop.MouseButtonPrimary))
	a.Dragged(drag(10, 0))
	a.Dragged(drag(10, 10))
	a.MouseUp(mouse(10, 10, desktop.MouseButtonPrimary))

	// two segments and three round caps
	objs := r.Objects()
	require.Len(t, objs, 1+2+3)
	seg, ok := objs[1].(*canvas.Line)
	require.True(t, ok)
	assert.Equal(t, float32(12), seg.StrokeWidth)
	assert.Equal(t, fyne.NewPos(0, 0), seg.Position1)
	committed := objs[1]

	a.MouseDown(mouse(50, 50, desktop.MouseButtonPrimary))
	a.Dragged(drag(60, 60))
	objs = r.Objects()
	require.Len(t, objs, 6+1+2)
	assert.Same(t, committed, objs[1], "committed stroke objects are reused")
	_, ok = objs[len(objs)-1].(*canvas.Circle)
	assert.True(t, ok, "active stroke is drawn last")
}

func TestPaintAreaMerge(t *testing.T) {
	a := newTestArea(t, state.WithCapacity(1))
	entries := []state.Entry{
		{Site: "peer", Lamport: 1, Stroke: state.Stroke{{X: 0, Y: 0}, {X: 5, Y: 5}}},
		{Site: "peer", Lamport: 2, Stroke: state.Stroke{{X: 0, Y: 0}, {X: 6, Y: 6}}},
	}
	assert.Equal(t, 2, a.Merge(entries...))
	assert.Equal(t, 0, a.Merge(entries...))
	assert.Equal(t, 2, a.Surface().Len())
}
