package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewToolbar builds the file actions and the share link display.
func NewToolbar(w *Window, shareLink string) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), w.ShowOpen),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), w.ShowSave),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), w.ShowExportPDF),
	)

	items := []fyne.CanvasObject{tb, layout.NewSpacer()}
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		link.Disable()
		copyLink := widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
			w.Win.Clipboard().SetContent(shareLink)
			w.status.SetText("Share link copied")
		})
		items = append(items, widget.NewLabel("Share:"), link, copyLink)
	}
	return container.NewHBox(items...)
}
