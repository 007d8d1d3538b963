// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/app.go
// Summary: Terminal front end: event loop and key handling.

package ui

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/filegrid/filegrid/grid"
	"github.com/filegrid/filegrid/history"
	"github.com/filegrid/filegrid/navigator"
	"github.com/filegrid/filegrid/preview"
	"github.com/filegrid/filegrid/session"
)

// Options configures the front end.
type Options struct {
	HomePath     string
	ShowHidden   bool
	PreviewStyle string
	PreviewMax   int
}

// App drives the terminal UI: it owns the screen, routes key events to
// the state model, and repaints when the model broadcasts changes.
type App struct {
	screen  tcell.Screen
	opts    Options
	groups  *grid.GroupController
	nav     *navigator.Navigator
	lister  *grid.Lister
	watcher *grid.DirWatcher
	visits  history.VisitLog
	store   *session.Store

	views     map[*grid.PaneController]*paneView
	recent    []history.Location
	preview   *preview.Document
	prevTitle string
	notice    string
	quit      chan struct{}
	needsDraw bool
}

// paneView is the per-pane presentation state next to the controller.
// watched is the directory this view holds a watcher reference on.
type paneView struct {
	slot    grid.ListingSlot
	cursor  int
	watched string
}

// NewApp wires the state model to a fresh tcell screen.
func NewApp(groups *grid.GroupController, nav *navigator.Navigator, visits history.VisitLog, store *session.Store, opts Options) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()

	watcher, err := grid.NewDirWatcher()
	if err != nil {
		screen.Fini()
		return nil, err
	}

	app := &App{
		screen:  screen,
		opts:    opts,
		groups:  groups,
		nav:     nav,
		lister:  grid.NewLister(),
		watcher: watcher,
		visits:  visits,
		store:   store,
		views:   make(map[*grid.PaneController]*paneView),
		quit:    make(chan struct{}),
	}
	app.lister.Start()
	app.refreshAllPanes()
	app.refreshRecent()
	return app, nil
}

// refreshRecent re-ranks the sidebar's recent locations.
func (a *App) refreshRecent() {
	if a.visits == nil {
		return
	}
	locations, err := a.visits.TopLocations(recentLimit)
	if err != nil {
		log.Printf("UI: TopLocations: %v", err)
		return
	}
	a.recent = locations
}

const recentLimit = 8

// OnEvent repaints after any state-model broadcast.
func (a *App) OnEvent(ev grid.Event) {
	switch ev.Type {
	case grid.EventNavigated:
		if pc, ok := ev.Payload.(*grid.PaneController); ok {
			a.afterNavigate(pc)
		}
	case grid.EventLayoutChanged, grid.EventGroupsChanged:
		a.refreshAllPanes()
	}
	a.needsDraw = true
}

// Run blocks in the main event loop until quit.
func (a *App) Run() error {
	defer a.shutdown()

	eventChan := make(chan tcell.Event, 10)
	go func() {
		for {
			select {
			case <-a.quit:
				return
			default:
				eventChan <- a.screen.PollEvent()
			}
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	a.draw()
	for {
		select {
		case ev := <-eventChan:
			if done := a.handleEvent(ev); done {
				return nil
			}
		case listing := <-a.lister.Results():
			a.applyListing(listing)
		case dir := <-a.watcher.Changed():
			a.refreshShowing(dir)
		case <-ticker.C:
			if a.needsDraw {
				a.draw()
				a.needsDraw = false
			}
		case <-a.quit:
			return nil
		}
	}
}

func (a *App) shutdown() {
	if err := a.saveSession(); err != nil {
		log.Printf("UI: Failed to save session on shutdown: %v", err)
	}
	a.lister.Stop()
	if err := a.watcher.Close(); err != nil {
		log.Printf("UI: Watcher close: %v", err)
	}
	a.screen.Fini()
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Clear()
		a.draw()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	// A visible preview swallows everything except its dismissal.
	if a.preview != nil {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			a.preview = nil
			a.needsDraw = true
		}
		return false
	}

	ws := a.groups.ActiveWorkspace()
	pane := ws.ActivePane()
	view := a.viewFor(pane)

	switch ev.Key() {
	case tcell.KeyCtrlC:
		close(a.quit)
		return true
	case tcell.KeyUp:
		a.moveCursor(view, -1)
	case tcell.KeyDown:
		a.moveCursor(view, 1)
	case tcell.KeyPgUp:
		a.moveCursor(view, -pageStride)
	case tcell.KeyPgDn:
		a.moveCursor(view, pageStride)
	case tcell.KeyEnter:
		a.openSelection(pane, view)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		pane.GoUp()
	case tcell.KeyLeft:
		pane.GoBack()
	case tcell.KeyRight:
		pane.GoForward()
	case tcell.KeyTab:
		next := (ws.ActivePaneIndex() + 1) % ws.PaneCount()
		if err := ws.SetActivePane(next); err != nil {
			log.Printf("UI: SetActivePane: %v", err)
		}
	case tcell.KeyRune:
		return a.handleRune(ev.Rune(), ws, pane, view)
	}
	a.needsDraw = true
	return false
}

const pageStride = 20

func (a *App) handleRune(r rune, ws *grid.Workspace, pane *grid.PaneController, view *paneView) bool {
	switch r {
	case 'q':
		close(a.quit)
		return true
	case 'j':
		a.moveCursor(view, 1)
	case 'k':
		a.moveCursor(view, -1)
	case 'h':
		pane.GoUp()
	case '~':
		pane.Navigate(a.opts.HomePath)
	case 'l':
		a.openSelection(pane, view)
	case '1':
		ws.SetSplitLayout(grid.SplitSingle)
	case '2':
		ws.SetSplitLayout(grid.SplitTwo)
	case '4':
		ws.SetSplitLayout(grid.SplitFour)
	case 't':
		pane.OpenTab(pane.ActiveTab().Path())
	case 'x':
		if err := pane.CloseTab(pane.ActiveIndex()); err != nil {
			a.showNotice(err.Error())
		}
	case '[':
		a.cycleTab(pane, -1)
	case ']':
		a.cycleTab(pane, 1)
	case 'p':
		if err := pane.ToggleTabPin(pane.ActiveIndex()); err != nil {
			a.showNotice(err.Error())
		}
	case 'g':
		if _, err := a.groups.CreateGroup(""); err != nil {
			a.showNotice(err.Error())
		}
	case 'G':
		if err := a.groups.CloseGroup(a.groups.ActiveIndex()); err != nil {
			a.showNotice(err.Error())
		}
	case '{':
		a.cycleGroup(-1)
	case '}':
		a.cycleGroup(1)
	case 'v':
		a.cycleViewMode(pane)
	case '+':
		tab := pane.ActiveTab()
		tab.SetIconZoom(tab.IconZoom() + 25)
	case '-':
		tab := pane.ActiveTab()
		tab.SetIconZoom(tab.IconZoom() - 25)
	case '.':
		a.opts.ShowHidden = !a.opts.ShowHidden
		a.refreshAllPanes()
	case 'd':
		a.trashSelection(pane, view)
	case 'D':
		a.duplicateSelection(pane, view)
	case 'n':
		a.createFolder(pane)
	case 'N':
		a.createFile(pane)
	case 'y':
		a.transferSelection(ws, pane, view, false)
	case 'm':
		a.transferSelection(ws, pane, view, true)
	case 'b':
		a.addFavorite(pane)
	case 's':
		a.openShellHere(pane)
	case 'r':
		a.refreshPane(pane)
	case ' ':
		a.showPreview(pane, view)
	case 'S':
		if err := a.saveSession(); err != nil {
			a.showNotice(err.Error())
		} else {
			a.showNotice("session saved")
		}
	}
	a.needsDraw = true
	return false
}

func (a *App) cycleTab(pane *grid.PaneController, delta int) {
	count := pane.TabCount()
	next := (pane.ActiveIndex() + delta + count) % count
	if err := pane.SetActiveTab(next); err != nil {
		log.Printf("UI: SetActiveTab: %v", err)
	}
}

func (a *App) cycleGroup(delta int) {
	count := a.groups.GroupCount()
	next := (a.groups.ActiveIndex() + delta + count) % count
	if err := a.groups.SetActiveGroup(next); err != nil {
		log.Printf("UI: SetActiveGroup: %v", err)
	}
}

func (a *App) cycleViewMode(pane *grid.PaneController) {
	switch pane.ActiveTab().ViewMode() {
	case grid.ViewDetails:
		pane.SetViewMode(grid.ViewList)
	case grid.ViewList:
		pane.SetViewMode(grid.ViewIcons)
	default:
		pane.SetViewMode(grid.ViewDetails)
	}
}

func (a *App) moveCursor(view *paneView, delta int) {
	entries := view.slot.Entries()
	if len(entries) == 0 {
		view.cursor = 0
		return
	}
	view.cursor += delta
	if view.cursor < 0 {
		view.cursor = 0
	}
	if view.cursor >= len(entries) {
		view.cursor = len(entries) - 1
	}
}

func (a *App) openSelection(pane *grid.PaneController, view *paneView) {
	entries := view.slot.Entries()
	if view.cursor < 0 || view.cursor >= len(entries) {
		return
	}
	entry := entries[view.cursor]
	if entry.IsDir {
		pane.Navigate(entry.Path)
		return
	}
	a.previewFile(entry.Path)
}

func (a *App) showPreview(pane *grid.PaneController, view *paneView) {
	entries := view.slot.Entries()
	if view.cursor < 0 || view.cursor >= len(entries) || entries[view.cursor].IsDir {
		return
	}
	a.previewFile(entries[view.cursor].Path)
}

func (a *App) previewFile(path string) {
	doc, err := preview.File(path, preview.Config{
		StyleName: a.opts.PreviewStyle,
		MaxBytes:  a.opts.PreviewMax,
	})
	if err != nil {
		a.showNotice(err.Error())
		return
	}
	a.preview = doc
	a.prevTitle = path
}

func (a *App) addFavorite(pane *grid.PaneController) {
	path := pane.ActiveTab().Path()
	if err := a.nav.AddDynamicEntry("", path); err != nil {
		a.showNotice(err.Error())
		return
	}
	if err := a.nav.Save(); err != nil {
		a.showNotice(err.Error())
		return
	}
	a.showNotice("added to favorites")
}

func (a *App) showNotice(msg string) {
	a.notice = msg
	a.needsDraw = true
}

// afterNavigate re-lists the pane, records the visit, and rewires the
// directory watch.
func (a *App) afterNavigate(pane *grid.PaneController) {
	a.refreshPane(pane)
	if a.visits != nil {
		if err := a.visits.RecordVisit(pane.ActiveTab().Path(), time.Now()); err != nil {
			log.Printf("UI: RecordVisit: %v", err)
		}
		a.refreshRecent()
	}
}

func (a *App) viewFor(pane *grid.PaneController) *paneView {
	view, ok := a.views[pane]
	if !ok {
		view = &paneView{}
		a.views[pane] = view
		a.refreshPane(pane)
	}
	return view
}

// refreshPane queues a fresh listing for the pane's current directory.
func (a *App) refreshPane(pane *grid.PaneController) {
	view, ok := a.views[pane]
	if !ok {
		view = &paneView{}
		a.views[pane] = view
	}
	path := pane.ActiveTab().Path()
	token := a.lister.Request(path, a.opts.ShowHidden)
	view.slot.Expect(token)
	if view.watched == path {
		return
	}
	if view.watched != "" {
		a.watcher.Unwatch(view.watched)
		view.watched = ""
	}
	if err := a.watcher.Watch(path); err != nil {
		log.Printf("UI: Watch %s: %v", path, err)
		return
	}
	view.watched = path
}

// refreshAllPanes re-lists every visible pane and prunes stale views.
func (a *App) refreshAllPanes() {
	visible := make(map[*grid.PaneController]bool)
	for gi := 0; gi < a.groups.GroupCount(); gi++ {
		group := a.groups.Group(gi)
		if !group.Visible() {
			continue
		}
		for _, pane := range group.Workspace().Panes() {
			visible[pane] = true
			a.refreshPane(pane)
		}
	}
	for pane, view := range a.views {
		if !visible[pane] {
			if view.watched != "" {
				a.watcher.Unwatch(view.watched)
			}
			delete(a.views, pane)
		}
	}
}

// refreshShowing re-lists every pane currently showing dir.
func (a *App) refreshShowing(dir string) {
	for pane := range a.views {
		if pane.ActiveTab().Path() == dir {
			a.refreshPane(pane)
		}
	}
}

func (a *App) applyListing(listing grid.Listing) {
	for pane, view := range a.views {
		if view.slot.Apply(listing) {
			if view.cursor >= len(view.slot.Entries()) {
				view.cursor = 0
			}
			if notice := view.slot.Notice(); notice != nil {
				if pane == a.groups.ActiveWorkspace().ActivePane() {
					a.showNotice(notice.Error())
				}
			}
			a.needsDraw = true
			return
		}
	}
}

func (a *App) saveSession() error {
	if a.store == nil {
		return nil
	}
	return a.store.Save(a.groups.ExportState())
}
