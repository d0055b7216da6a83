package tui

import (
	"strings"

	"github.com/rivo/tview"
)

const projectPage = "project"

// Project is one entry of the project list and its detail dialog.
type Project struct {
	Title      string
	Category   string
	Summary    string
	Overview   string
	Challenges []string
	Tags       []string
	GithubURL  string
	LiveURL    string
}

// projectDialog shows one project's details with links out.
type projectDialog struct {
	root  tview.Primitive
	frame *tview.Flex

	view     *tview.TextView
	github   *tview.Button
	live     *tview.Button
	closeBtn *tview.Button

	project Project
}

func newProjectDialog(a *App) *projectDialog {
	d := &projectDialog{view: tview.NewTextView()}
	d.view.SetScrollable(true).SetWrap(true).SetWordWrap(true)

	d.github = tview.NewButton("Code").SetSelectedFunc(func() { a.openLocator(d.project.GithubURL) })
	d.live = tview.NewButton("Live").SetSelectedFunc(func() { a.openLocator(d.project.LiveURL) })
	d.closeBtn = tview.NewButton("Close").SetSelectedFunc(func() { a.projectModal.Close() })

	buttons := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(d.github, 8, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(d.live, 8, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(d.closeBtn, 9, 0, false).
		AddItem(nil, 0, 1, false)

	d.frame = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.view, 0, 1, true).
		AddItem(buttons, 1, 0, false)
	d.frame.SetBorder(true)

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
func (d *projectDialog) Focusables() []tview.Primitive {
	return []tview.Primitive{d.view, d.github, d.live, d.closeBtn}
}

// show fills the dialog for p. Link buttons without a target are
// disabled and drop out of the focus loop.
func (d *projectDialog) show(p Project) {
	d.project = p
	d.frame.SetTitle(" " + p.Title + " ")
	d.github.SetDisabled(p.GithubURL == "")
	d.live.SetDisabled(p.LiveURL == "")
	d.view.SetText(renderProject(p))
	d.view.ScrollToBeginning()
}

func renderProject(p Project) string {
	var b strings.Builder
	if len(p.Tags) > 0 {
		b.WriteString(strings.Join(p.Tags, " · "))
		b.WriteString("\n\n")
	}
	b.WriteString(strings.TrimSpace(p.Summary))
	if p.Overview != "" {
		b.WriteString("\n\nOVERVIEW\n\n")
		b.WriteString(strings.TrimSpace(p.Overview))
	}
	if len(p.Challenges) > 0 {
		b.WriteString("\n\nCHALLENGES\n")
		for _, c := range p.Challenges {
			b.WriteString("\n  - ")
			b.WriteString(c)
		}
	}
	return b.String()
}
