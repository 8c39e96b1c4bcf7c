package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"LocalPaint/internal/export"
)

// ShowSave asks for a file and saves the committed strokes as JSON.
func (w *Window) ShowSave() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.Win)
			return
		}
		if wc == nil {
			return
		}
		if err := w.SaveTo(wc); err != nil {
			w.log.Error("save failed", "uri", wc.URI().String(), "err", err)
			dialog.ShowError(err, w.Win)
		}
	}, w.Win)
	d.SetFileName("drawing.json")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// ShowOpen asks for a JSON file and merges its strokes into the drawing.
func (w *Window) ShowOpen() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.Win)
			return
		}
		if rc == nil {
			return
		}
		if err := w.LoadFrom(rc); err != nil {
			w.log.Error("load failed", "uri", rc.URI().String(), "err", err)
			dialog.ShowError(err, w.Win)
		}
	}, w.Win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// ShowExportPDF asks for a file and writes the drawing as PDF.
func (w *Window) ShowExportPDF() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.Win)
			return
		}
		if wc == nil {
			return
		}
		if err := w.ExportPDFTo(wc); err != nil {
			w.log.Error("pdf export failed", "uri", wc.URI().String(), "err", err)
			dialog.ShowError(err, w.Win)
		}
	}, w.Win)
	d.SetFileName("drawing.pdf")
	d.Show()
}

// SaveTo writes the committed strokes as JSON and closes wc.
func (w *Window) SaveTo(wc fyne.URIWriteCloser) (err error) {
	defer func() {
		if cerr := wc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", wc.URI(), cerr)
		}
	}()
	strokes := w.Area.Strokes()
	if err := export.SaveJSON(wc, strokes); err != nil {
		return err
	}
	w.status.SetText(fmt.Sprintf("Saved %d strokes", len(strokes)))
	return nil
}

// LoadFrom reads strokes from rc, merges them and closes rc.
func (w *Window) LoadFrom(rc fyne.URIReadCloser) error {
	defer rc.Close()
	entries, err := export.LoadJSON(rc)
	if err != nil {
		return err
	}
	added := w.Area.Merge(entries...)
	w.status.SetText(fmt.Sprintf("Loaded %d strokes", added))
	w.log.Info("strokes loaded", "uri", rc.URI().String(), "read", len(entries), "added", added)
	if w.OnLoad != nil {
		w.OnLoad(entries)
	}
	return nil
}

// ExportPDFTo writes the drawing as PDF and closes wc.
func (w *Window) ExportPDFTo(wc fyne.URIWriteCloser) (err error) {
	defer func() {
		if cerr := wc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", wc.URI(), cerr)
		}
	}()
	if err := export.PDF(wc, w.Area.Strokes(), w.Area.Style()); err != nil {
		return err
	}
	w.status.SetText("Exported PDF")
	return nil
}
