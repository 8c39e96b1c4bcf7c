package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LocalPaint/internal/state"
)

// PaintArea is the fyne widget in front of a state.Surface. It turns mouse
// and key events into input snapshots and draws the surface's draw list.
// All methods must be called on the fyne UI goroutine.
type PaintArea struct {
	widget.BaseWidget

	surface *state.Surface
	log     *slog.Logger

	// live input, sampled into a snapshot on every tick
	down    bool
	pos     state.Point
	cancel  bool
	quit    bool
	focused bool

	frame state.Frame

	// OnSignal receives cancel and quit requests.
	OnSignal func(state.Signal)
	// OnFrame is called after every tick.
	OnFrame func(state.Frame)
}

var _ fyne.Widget = (*PaintArea)(nil)
var _ fyne.Draggable = (*PaintArea)(nil)
var _ fyne.Focusable = (*PaintArea)(nil)
var _ desktop.Mouseable = (*PaintArea)(nil)

// NewPaintArea wraps s in a widget.
func NewPaintArea(s *state.Surface, logger *slog.Logger) *PaintArea {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &PaintArea{surface: s, log: logger}
	a.ExtendBaseWidget(a)
	return a
}

func toPoint(p fyne.Position) state.Point {
	return state.Point{X: p.X, Y: p.Y}
}

func (a *PaintArea) tick() {
	in := state.Input{Down: a.down, Pos: a.pos, Cancel: a.cancel, Quit: a.quit}
	a.cancel, a.quit = false, false

	f := a.surface.Update(in)
	a.frame = f
	if f.Outcome == state.OutcomeExhausted {
		a.log.Warn("stroke dropped, no drawable handles left")
	}
	if a.OnFrame != nil {
		a.OnFrame(f)
	}
	if f.Signal != state.SignalNone && a.OnSignal != nil {
		a.OnSignal(f.Signal)
	}
	if f.Action.Kind != state.ActionNone || f.Merged > 0 {
		a.Refresh()
	}
}

func (a *PaintArea) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	a.down = true
	a.pos = toPoint(e.Position)
	if !a.focused {
		if c := fyne.CurrentApp().Driver().CanvasForObject(a); c != nil {
			c.Focus(a)
		}
	}
	a.tick()
}

func (a *PaintArea) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	a.down = false
	a.pos = toPoint(e.Position)
	a.tick()
}

func (a *PaintArea) Dragged(e *fyne.DragEvent) {
	if !a.down {
		return
	}
	a.pos = toPoint(e.Position)
	a.tick()
}

func (a *PaintArea) DragEnd() {
	if a.down {
		a.down = false
		a.tick()
	}
}

func (a *PaintArea) FocusGained() { a.focused = true }
func (a *PaintArea) FocusLost()   { a.focused = false }
func (a *PaintArea) TypedRune(rune) {}

func (a *PaintArea) TypedKey(e *fyne.KeyEvent) {
	if e.Name != fyne.KeyEscape {
		return
	}
	a.cancel = true
	a.tick()
	// Ticks only run on events, so the release that ends the cancel would
	// otherwise wait for the next press and swallow it.
	if !a.down {
		a.tick()
	}
}

// Quit asks the surface to raise a quit signal.
func (a *PaintArea) Quit() {
	a.quit = true
	a.tick()
}

// Merge commits strokes drawn elsewhere and redraws. It returns how many
// were new.
func (a *PaintArea) Merge(entries ...state.Entry) int {
	if len(entries) == 0 {
		return 0
	}
	a.surface.Merge(entries...)
	n := a.surface.Flush()
	if n > 0 {
		a.Refresh()
		if a.OnFrame != nil {
			a.OnFrame(state.Frame{Lines: a.surface.DrawList(), Merged: n})
		}
	}
	return n
}

// Strokes returns the committed strokes.
func (a *PaintArea) Strokes() []state.Entry { return a.surface.Strokes() }

// Style returns the stroke style.
func (a *PaintArea) Style() state.Style { return a.surface.Style() }

// Surface returns the wrapped surface.
func (a *PaintArea) Surface() *state.Surface { return a.surface }

func (a *PaintArea) CreateRenderer() fyne.WidgetRenderer {
	r := &paintAreaRenderer{
		area:       a,
		background: canvas.NewRectangle(color.White),
		cache:      make(map[state.Handle][]fyne.CanvasObject),
	}
	r.Refresh()
	return r
}

type paintAreaRenderer struct {
	area       *PaintArea
	background *canvas.Rectangle
	// canvas objects of committed strokes, built once per handle
	cache   map[state.Handle][]fyne.CanvasObject
	objects []fyne.CanvasObject
}

func (r *paintAreaRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *paintAreaRenderer) Refresh() {
	active := r.area.surface.ActiveHandle()
	objects := []fyne.CanvasObject{r.background}
	for _, line := range r.area.surface.DrawList() {
		if line.Handle == active {
			objects = append(objects, polylineObjects(line)...)
			continue
		}
		objs, ok := r.cache[line.Handle]
		if !ok {
			objs = polylineObjects(line)
			r.cache[line.Handle] = objs
		}
		objects = append(objects, objs...)
	}
	r.objects = objects
	canvas.Refresh(r.area)
}

// polylineObjects draws a polyline as line segments. Round caps and joins
// are a filled circle on every point.
func polylineObjects(l state.Polyline) []fyne.CanvasObject {
	var objs []fyne.CanvasObject
	for i := 1; i < len(l.Points); i++ {
		seg := canvas.NewLine(l.Color)
		seg.StrokeWidth = l.Thickness
		seg.Position1 = fyne.NewPos(l.Points[i-1].X, l.Points[i-1].Y)
		seg.Position2 = fyne.NewPos(l.Points[i].X, l.Points[i].Y)
		objs = append(objs, seg)
	}
	if l.Cap != state.CapRound {
		return objs
	}
	radius := l.Thickness / 2
	for _, p := range l.Points {
		dot := canvas.NewCircle(l.Color)
		dot.Move(fyne.NewPos(p.X-radius, p.Y-radius))
		dot.Resize(fyne.NewSize(l.Thickness, l.Thickness))
		objs = append(objs, dot)
	}
	return objs
}

func (r *paintAreaRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *paintAreaRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *paintAreaRenderer) Destroy() {}
