// Package tui renders the portfolio in a terminal, including the resume
// preview dialog.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Zachkp/portfolio/internal/focustrap"
	"github.com/Zachkp/portfolio/internal/modal"
	"github.com/Zachkp/portfolio/internal/platform"
	"github.com/Zachkp/portfolio/internal/resume"
)

const (
	mainPage   = "main"
	resumePage = "resume"

	// previewPages caps how much of the document is extracted for the
	// inline view.
	previewPages = 3
)

// Section is one block of portfolio copy.
type Section struct {
	Title string
	Body  string
}

// Verdicts reports the current resume verdict.
type Verdicts interface {
	Verdict() resume.Verdict
}

// Options configures an App.
type Options struct {
	Sections []Section
	// Projects fill the project list; each opens a detail dialog.
	Projects []Project
	// Origin is the site the resume assets are fetched from.
	Origin   string
	Env      platform.Env
	Verdicts Verdicts
	Client   *http.Client
	Logger   *slog.Logger

	// Trigger saves the document. Nil uses a resume.SaveTrigger that
	// reports back to the status bar.
	Trigger resume.Trigger
	// DownloadDir overrides the default trigger's directory.
	DownloadDir string
	// Open shows a document in the system viewer. Nil uses
	// resume.OpenInViewer.
	Open func(locator string) error

	// Scheduler and Queue default to the running application's event
	// loop.
	Scheduler modal.Scheduler
	Queue     func(fn func())
}

// App is the terminal portfolio.
type App struct {
	app    *tview.Application
	pages  *tview.Pages
	body   *tview.TextView
	status *tview.TextView

	projectList  *tview.List
	resumeButton *tview.Button
	quitButton   *tview.Button
	mainFocus    *focustrap.Trap[tview.Primitive]

	dialog *dialog
	modal  *modal.Controller[tview.Primitive]

	projectDialog *projectDialog
	projectModal  *modal.Controller[tview.Primitive]

	opts    Options
	trigger resume.Trigger
	logger  *slog.Logger

	mu  sync.Mutex
	gen uint64
}

// New builds the application without starting it.
func New(opts Options) *App {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Open == nil {
		opts.Open = resume.OpenInViewer
	}

	a := &App{
		app:    tview.NewApplication(),
		pages:       tview.NewPages(),
		body:        tview.NewTextView(),
		status:      tview.NewTextView(),
		projectList: tview.NewList(),
		opts:        opts,
		logger:      opts.Logger,
	}
	if opts.Queue == nil {
		a.opts.Queue = func(fn func()) { a.app.QueueUpdateDraw(fn) }
	}
	if opts.Scheduler == nil {
		a.opts.Scheduler = modal.SchedulerFunc(func(fn func()) { go a.opts.Queue(fn) })
	}

	a.trigger = opts.Trigger
	if a.trigger == nil {
		saveOpts := []resume.SaveOption{resume.WithOpener(opts.Open), resume.WithNotify(a.downloaded)}
		if opts.DownloadDir != "" {
			saveOpts = append(saveOpts, resume.WithDir(opts.DownloadDir))
		}
		a.trigger = resume.NewSaveTrigger(opts.Client, a.logger, saveOpts...)
	}

	a.build()
	return a
}

func (a *App) build() {
	a.body.SetScrollable(true).SetWrap(true).SetWordWrap(true)
	a.body.SetBorder(true).SetTitle(" Zach Kordas-Potter ")
	a.body.SetText(renderSections(a.opts.Sections))

	a.resumeButton = tview.NewButton("Resume").SetSelectedFunc(a.openResume)
	a.quitButton = tview.NewButton("Quit").SetSelectedFunc(a.app.Stop)

	nav := tview.NewFlex().
		AddItem(a.resumeButton, 10, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(a.quitButton, 8, 0, false).
		AddItem(nil, 0, 1, false)

	a.projectList.SetBorder(true).SetTitle(" Projects ")
	for _, p := range a.opts.Projects {
		a.projectList.AddItem(p.Title, p.Category, 0, nil)
	}
	a.projectList.SetSelectedFunc(func(i int, _, _ string, _ rune) { a.openProject(i) })

	a.status.SetText("Tab moves focus · Enter opens a project · r opens the resume · q quits")

	content := tview.NewFlex().
		AddItem(a.body, 0, 1, true).
		AddItem(a.projectList, 32, 0, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nav, 1, 0, false).
		AddItem(content, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages.AddPage(mainPage, root, true, true)

	a.mainFocus = focustrap.New[tview.Primitive](focustrap.ContainerFunc[tview.Primitive](func() []tview.Primitive {
		return []tview.Primitive{a.body, a.projectList, a.resumeButton, a.quitButton}
	}), nil)

	lock := scrollLock{a.body.Box, a.projectList.Box}

	a.dialog = newDialog(a)
	a.modal = modal.New(modal.Options[tview.Primitive]{
		Focus:        focusManager{a.app},
		Scroll:       lock,
		Content:      a.dialog,
		Interactable: interactable,
		Scheduler:    a.opts.Scheduler,
	})
	a.modal.OnChange(a.modalChanged)

	a.projectDialog = newProjectDialog(a)
	a.projectModal = modal.New(modal.Options[tview.Primitive]{
		Focus:        focusManager{a.app},
		Scroll:       lock,
		Content:      a.projectDialog,
		Interactable: interactable,
		Scheduler:    a.opts.Scheduler,
	})
	a.projectModal.OnChange(a.projectChanged)

	a.app.SetRoot(a.pages, true).
		SetInputCapture(a.captureKey).
		SetMouseCapture(a.captureMouse)
}

func renderSections(sections []Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.ToUpper(s.Title))
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(s.Body))
	}
	return b.String()
}

// Run starts the event loop and blocks until the user quits. The dialog
// is torn down on exit.
func (a *App) Run() error {
	defer a.projectModal.Teardown()
	defer a.modal.Teardown()
	return a.app.EnableMouse(true).Run()
}

// Stop ends the event loop.
func (a *App) Stop() {
	a.app.Stop()
}

// VerdictResolved updates the status bar once the resume probe finishes.
func (a *App) VerdictResolved(v resume.Verdict) {
	a.opts.Queue(func() {
		a.status.SetText(fmt.Sprintf("Resume check: %s", v))
	})
}

// active returns the controller and frame of the dialog on screen, or a
// nil controller when none is open.
func (a *App) active() (*modal.Controller[tview.Primitive], *tview.Flex) {
	switch {
	case a.modal.IsOpen():
		return a.modal, a.dialog.frame
	case a.projectModal.IsOpen():
		return a.projectModal, a.projectDialog.frame
	}
	return nil, nil
}

func (a *App) captureKey(ev *tcell.EventKey) *tcell.EventKey {
	if m, _ := a.active(); m != nil {
		switch ev.Key() {
		case tcell.KeyEscape:
			m.Cancel()
			return nil
		case tcell.KeyTab, tcell.KeyBacktab:
			if m.Tab(ev.Key() == tcell.KeyBacktab) {
				return nil
			}
		}
		return ev
	}

	switch ev.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		current := a.app.GetFocus()
		if next, ok := a.mainFocus.Next(current, ev.Key() == tcell.KeyBacktab); ok {
			a.app.SetFocus(next)
		}
		return nil
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'r':
			a.openResume()
			return nil
		case 'q':
			a.app.Stop()
			return nil
		}
	}
	return ev
}

func (a *App) captureMouse(ev *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
	m, frame := a.active()
	if m == nil || action != tview.MouseLeftClick {
		return ev, action
	}
	if !frame.InRect(ev.Position()) {
		m.Dismiss()
		return nil, action
	}
	return ev, action
}

// openResume shows the preview dialog for the current verdict.
func (a *App) openResume() {
	if m, _ := a.active(); m != nil {
		return
	}

	v := resume.Unknown
	if a.opts.Verdicts != nil {
		v = a.opts.Verdicts.Verdict()
	}
	p := resume.NewPreview(v, a.opts.Env.Constrained, a.opts.Origin)

	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	a.dialog.show(p)
	a.modal.Open()

	if p.Inline() {
		go a.loadDocument(gen, p)
	}
}

// openProject shows the detail dialog for the i-th project.
func (a *App) openProject(i int) {
	if m, _ := a.active(); m != nil || i < 0 || i >= len(a.opts.Projects) {
		return
	}
	a.projectDialog.show(a.opts.Projects[i])
	a.projectModal.Open()
}

func (a *App) projectChanged(s modal.State, r modal.Reason) {
	switch s {
	case modal.Open:
		a.pages.AddPage(projectPage, a.projectDialog.root, true, true)
	case modal.Closed:
		a.pages.RemovePage(projectPage)
		a.logger.Debug("project dialog closed", "reason", r.String())
	}
}

func (a *App) modalChanged(s modal.State, r modal.Reason) {
	switch s {
	case modal.Open:
		a.pages.AddPage(resumePage, a.dialog.root, true, true)
	case modal.Closed:
		a.pages.RemovePage(resumePage)
		a.logger.Debug("resume dialog closed", "reason", r.String())
	}
}

// current reports whether gen is still the open dialog.
func (a *App) current(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen == gen && a.modal.IsOpen()
}

// loadDocument renders the document text inline, or the fallback block
// when the document cannot be read as text.
func (a *App) loadDocument(gen uint64, p resume.Preview) {
	text, err := a.documentText(p.DocumentURL)
	if err != nil {
		a.logger.Debug("inline preview unavailable", "error", err)
	}

	a.opts.Queue(func() {
		if !a.current(gen) {
			return
		}
		if err != nil {
			a.dialog.showFallback(p)
			return
		}
		a.dialog.showText(text)
	})
}

func (a *App) documentText(locator string) (string, error) {
	data, err := resume.FetchDocument(context.Background(), a.opts.Client, locator, resume.MaxDocumentSize)
	if err != nil {
		return "", err
	}
	return resume.ExtractText(data, previewPages)
}

// download saves the document in the background. The button stays
// disabled until the save finishes.
func (a *App) download(p resume.Preview) {
	a.dialog.download.SetDisabled(true)
	a.status.SetText("Downloading " + p.Filename + "...")
	go func() {
		a.trigger.Trigger(p.DocumentURL, p.Filename)
		a.opts.Queue(func() { a.dialog.download.SetDisabled(false) })
	}()
}

// downloaded is the default trigger's completion hook.
func (a *App) downloaded(path string, err error) {
	a.opts.Queue(func() {
		if err != nil {
			a.status.SetText("Download failed, opened in viewer instead")
			return
		}
		a.status.SetText("Saved to " + path)
	})
}

// openLocator hands locator to the system viewer in the background.
func (a *App) openLocator(locator string) {
	if locator == "" {
		return
	}
	go func() {
		if err := a.opts.Open(locator); err != nil {
			a.logger.Warn("open in viewer", "locator", locator, "error", err)
			a.opts.Queue(func() { a.status.SetText("Could not open a viewer") })
		}
	}()
}

type focusManager struct {
	app *tview.Application
}

func (f focusManager) Focused() (tview.Primitive, bool) {
	p := f.app.GetFocus()
	return p, p != nil
}

func (f focusManager) Focus(p tview.Primitive) {
	f.app.SetFocus(p)
}

// scrollLock stops the page behind a dialog from reacting to keys and the
// mouse wheel while the dialog is up.
type scrollLock []*tview.Box

func (l scrollLock) Lock() func() {
	type captures struct {
		keys  func(*tcell.EventKey) *tcell.EventKey
		mouse func(tview.MouseAction, *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse)
	}
	saved := make([]captures, len(l))

	for i, box := range l {
		saved[i] = captures{box.GetInputCapture(), box.GetMouseCapture()}
		box.SetInputCapture(func(*tcell.EventKey) *tcell.EventKey { return nil })
		box.SetMouseCapture(func(tview.MouseAction, *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
			return tview.MouseConsumed, nil
		})
	}

	return func() {
		for i, box := range l {
			box.SetInputCapture(saved[i].keys)
			box.SetMouseCapture(saved[i].mouse)
		}
	}
}

func interactable(p tview.Primitive) bool {
	switch v := p.(type) {
	case *tview.Button:
		return !v.IsDisabled()
	case *documentView:
		return v.scrollable
	}
	return true
}
