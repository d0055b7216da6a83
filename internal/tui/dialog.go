package tui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/Zachkp/portfolio/internal/resume"
)

const (
	dialogWidth  = 72
	dialogHeight = 22
)

// documentView shows the extracted document text. It only takes focus
// when it holds text worth scrolling.
type documentView struct {
	*tview.TextView
	scrollable bool
}

// dialog is the resume preview window.
type dialog struct {
	root  tview.Primitive
	frame *tview.Flex

	view     *documentView
	openBtn  *tview.Button
	download *tview.Button
	closeBtn *tview.Button

	preview resume.Preview
}

func newDialog(a *App) *dialog {
	d := &dialog{
		view: &documentView{TextView: tview.NewTextView()},
	}
	d.view.SetScrollable(true).SetWrap(true).SetWordWrap(true)

	d.openBtn = tview.NewButton("Open").SetSelectedFunc(func() { a.openLocator(d.preview.DocumentURL) })
	d.download = tview.NewButton("Download").SetSelectedFunc(func() { a.download(d.preview) })
	d.closeBtn = tview.NewButton("Close").SetSelectedFunc(func() { a.modal.Close() })

	buttons := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(d.openBtn, 8, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(d.download, 12, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(d.closeBtn, 9, 0, false).
		AddItem(nil, 0, 1, false)

	d.frame = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.view, 0, 1, true).
		AddItem(buttons, 1, 0, false)
	d.frame.SetBorder(true).SetTitle(" Resume ")

	d.root = tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(d.frame, dialogHeight, 0, true).
			AddItem(nil, 0, 1, false), dialogWidth, 0, true).
		AddItem(nil, 0, 1, false)

	return d
}

// Focusables lists the dialog's focus loop in order.
func (d *dialog) Focusables() []tview.Primitive {
	return []tview.Primitive{d.view, d.openBtn, d.download, d.closeBtn}
}

// show resets the dialog for p.
func (d *dialog) show(p resume.Preview) {
	d.preview = p
	d.download.SetDisabled(false)
	d.view.ScrollToBeginning()

	if p.Inline() {
		d.view.scrollable = true
		d.view.SetText("Loading resume...")
		return
	}
	d.showFallback(p)
}

// showFallback renders the thumbnail block: the explanation plus where
// the document and its thumbnail live.
func (d *dialog) showFallback(p resume.Preview) {
	d.view.scrollable = false
	var b strings.Builder
	b.WriteString(p.Message)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Thumbnail: %s\n", p.ThumbnailURL)
	fmt.Fprintf(&b, "Document:  %s\n", p.DocumentURL)
	b.WriteString("\nUse Open to view it in your PDF viewer or Download to save ")
	b.WriteString(p.Filename)
	b.WriteString(".")
	d.view.SetText(b.String())
}

func (d *dialog) showText(text string) {
	d.view.scrollable = true
	d.view.SetText(strings.TrimSpace(text))
	d.view.ScrollToBeginning()
}
