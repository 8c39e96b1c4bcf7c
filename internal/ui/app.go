package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LocalPaint/internal/state"
)

// Window is the application shell around a PaintArea.
type Window struct {
	App  fyne.App
	Win  fyne.Window
	Area *PaintArea

	status *widget.Label
	log    *slog.Logger

	// OnLoad is called with strokes loaded from a file, after they were
	// handed to the paint area.
	OnLoad func([]state.Entry)
}

// NewWindow builds the main window. shareLink is shown in the toolbar when
// not empty.
func NewWindow(a fyne.App, area *PaintArea, title, shareLink string, size fyne.Size, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Window{
		App:    a,
		Win:    a.NewWindow(title),
		Area:   area,
		status: widget.NewLabel("Ready"),
		log:    logger,
	}
	w.Win.Resize(size)

	area.OnSignal = w.handleSignal
	area.OnFrame = w.reportFrame

	quit := &desktop.CustomShortcut{KeyName: fyne.KeyQ, Modifier: fyne.KeyModifierShortcutDefault}
	w.Win.Canvas().AddShortcut(quit, func(fyne.Shortcut) { area.Quit() })
	w.Win.SetCloseIntercept(area.Quit)

	toolbar := NewToolbar(w, shareLink)
	w.Win.SetContent(container.NewBorder(toolbar, w.status, nil, nil, area))
	w.Win.Canvas().Focus(area)
	return w
}

func (w *Window) handleSignal(s state.Signal) {
	switch s {
	case state.SignalQuit:
		w.log.Info("quit requested")
		w.App.Quit()
	case state.SignalCancel:
		w.status.SetText("Stroke cancelled")
	}
}

func (w *Window) reportFrame(f state.Frame) {
	switch f.Outcome {
	case state.OutcomeCommitted:
		w.status.SetText(fmt.Sprintf("%d strokes", w.Area.Surface().Len()))
	case state.OutcomeExhausted:
		w.status.SetText("Out of drawable handles, stroke dropped")
	}
	if f.Merged > 0 {
		w.status.SetText(fmt.Sprintf("%d strokes (%d received)", w.Area.Surface().Len(), f.Merged))
	}
}

// SetStatus updates the status bar. It may be called from any goroutine.
func (w *Window) SetStatus(text string) {
	fyne.Do(func() {
		w.status.SetText(text)
	})
}

// ShowAndRun shows the window and runs the event loop until quit.
func (w *Window) ShowAndRun() {
	w.Win.ShowAndRun()
}
