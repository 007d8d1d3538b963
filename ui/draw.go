// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/draw.go
// Summary: Screen composition: group bar, sidebar, panes, status line.

package ui

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/filegrid/filegrid/grid"
)

const sidebarWidth = 24

var (
	styleDefault  = tcell.StyleDefault
	styleDim      = tcell.StyleDefault.Dim(true)
	styleActive   = tcell.StyleDefault.Bold(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleBar      = tcell.StyleDefault.Reverse(true)
	styleNotice   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDir      = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
)

func (a *App) draw() {
	w, h := a.screen.Size()
	if w < 10 || h < 5 {
		a.screen.Show()
		return
	}
	a.screen.Clear()

	a.drawGroupBar(0, 0, w)
	a.drawSidebar(0, 1, sidebarWidth, h-2)
	a.drawWorkspace(sidebarWidth, 1, w-sidebarWidth, h-2)
	a.drawStatus(0, h-1, w)

	if a.preview != nil {
		a.drawPreview(w, h)
	}
	a.screen.Show()
}

func (a *App) drawGroupBar(x, y, w int) {
	fill(a.screen, x, y, w, 1, ' ', styleBar)
	col := x + 1
	for gi := 0; gi < a.groups.GroupCount(); gi++ {
		group := a.groups.Group(gi)
		if !group.Visible() {
			continue
		}
		label := " " + group.Title() + " "
		style := styleBar
		if gi == a.groups.ActiveIndex() {
			style = styleBar.Bold(true).Underline(true)
		}
		col = drawText(a.screen, col, y, w-col, label, style)
		if col >= x+w {
			break
		}
	}
}

func (a *App) drawSidebar(x, y, w, h int) {
	row := y
	for _, group := range a.nav.Groups() {
		if row >= y+h {
			return
		}
		marker := "▾"
		if group.Collapsible && !group.Expanded {
			marker = "▸"
		}
		drawText(a.screen, x+1, row, w-2, marker+" "+group.Name, styleActive)
		row++
		if group.Collapsible && !group.Expanded {
			continue
		}
		for _, entry := range group.Entries {
			if entry.Hidden {
				continue
			}
			if row >= y+h {
				return
			}
			drawText(a.screen, x+3, row, w-4, entry.Label, styleDefault)
			row++
		}
	}

	if len(a.recent) == 0 || row >= y+h {
		return
	}
	drawText(a.screen, x+1, row, w-2, "▾ Recent", styleActive)
	row++
	for _, loc := range a.recent {
		if row >= y+h {
			return
		}
		drawText(a.screen, x+3, row, w-4, filepath.Base(loc.Path), styleDim)
		row++
	}
}

func (a *App) drawWorkspace(x, y, w, h int) {
	ws := a.groups.ActiveWorkspace()
	rects := paneRects(ws.SplitLayout(), x, y, w, h)
	for i, pane := range ws.Panes() {
		if i >= len(rects) {
			break
		}
		a.drawPane(pane, rects[i], i == ws.ActivePaneIndex())
	}
}

type rect struct{ x, y, w, h int }

// paneRects carves the workspace area into the layout's pane frames.
func paneRects(layout grid.SplitLayout, x, y, w, h int) []rect {
	switch layout {
	case grid.SplitTwo:
		half := w / 2
		return []rect{
			{x, y, half, h},
			{x + half, y, w - half, h},
		}
	case grid.SplitFour:
		halfW, halfH := w/2, h/2
		return []rect{
			{x, y, halfW, halfH},
			{x + halfW, y, w - halfW, halfH},
			{x, y + halfH, halfW, h - halfH},
			{x + halfW, y + halfH, w - halfW, h - halfH},
		}
	default:
		return []rect{{x, y, w, h}}
	}
}

func (a *App) drawPane(pane *grid.PaneController, r rect, active bool) {
	if r.w < 4 || r.h < 3 {
		return
	}
	frameStyle := styleDim
	if active {
		frameStyle = styleActive
	}
	drawFrame(a.screen, r, frameStyle)

	inner := rect{r.x + 1, r.y + 1, r.w - 2, r.h - 2}
	a.drawTabBar(pane, inner.x, inner.y, inner.w, active)
	drawText(a.screen, inner.x, inner.y+1, inner.w, breadcrumbs(pane.ActiveTab().Path(), inner.w), styleDim)

	view := a.viewFor(pane)
	a.drawEntries(pane, view, rect{inner.x, inner.y + 2, inner.w, inner.h - 2}, active)
}

func (a *App) drawTabBar(pane *grid.PaneController, x, y, w int, active bool) {
	col := x
	for i := 0; i < pane.TabCount(); i++ {
		tab := pane.Tab(i)
		label := tab.Title()
		if tab.Pinned() {
			label = "⚲" + label
		}
		label = " " + runewidth.Truncate(label, 16, "…") + " "
		style := styleDim
		if i == pane.ActiveIndex() {
			style = styleDefault
			if active {
				style = styleActive.Underline(true)
			}
		}
		col = drawText(a.screen, col, y, w-(col-x), label, style)
		if col >= x+w {
			break
		}
	}
}

func (a *App) drawEntries(pane *grid.PaneController, view *paneView, r rect, active bool) {
	entries := view.slot.Entries()
	if len(entries) == 0 {
		drawText(a.screen, r.x, r.y, r.w, "(empty)", styleDim)
		return
	}

	mode := pane.ActiveTab().ViewMode()
	top := 0
	if view.cursor >= r.h {
		top = view.cursor - r.h + 1
	}
	for row := 0; row < r.h && top+row < len(entries); row++ {
		entry := entries[top+row]
		style := styleDefault
		if entry.IsDir {
			style = styleDir
		}
		if entry.Hidden {
			style = style.Dim(true)
		}
		if active && top+row == view.cursor {
			style = styleSelected
		}
		drawText(a.screen, r.x, r.y+row, r.w, entryLine(entry, mode, r.w), style)
	}
}

// entryLine formats one row for the tab's view mode.
func entryLine(entry grid.Entry, mode grid.ViewMode, w int) string {
	name := entry.Name
	if entry.IsDir {
		name += "/"
	}
	switch mode {
	case grid.ViewDetails:
		size := "<dir>"
		if !entry.IsDir {
			size = humanSize(entry.Size)
		}
		stamp := ""
		if !entry.ModTime.IsZero() {
			stamp = entry.ModTime.Format("2006-01-02 15:04")
		}
		nameWidth := w - 26
		if nameWidth < 8 {
			nameWidth = 8
		}
		return fmt.Sprintf("%s %8s  %s",
			runewidth.FillRight(runewidth.Truncate(name, nameWidth, "…"), nameWidth), size, stamp)
	case grid.ViewIcons:
		icon := "🗎"
		if entry.IsDir {
			icon = "🗀"
		}
		return icon + " " + name
	default:
		return name
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}

func (a *App) drawStatus(x, y, w int) {
	fill(a.screen, x, y, w, 1, ' ', styleBar)
	pane := a.groups.ActiveWorkspace().ActivePane()
	tab := pane.ActiveTab()
	left := fmt.Sprintf(" %s  tab %d/%d  %s %d%%",
		tab.Path(), pane.ActiveIndex()+1, pane.TabCount(), tab.ViewMode(), tab.IconZoom())
	drawText(a.screen, x, y, w, left, styleBar)
	if a.notice != "" {
		msg := " " + a.notice + " "
		col := w - runewidth.StringWidth(msg)
		if col > 0 {
			drawText(a.screen, col, y, w-col, msg, styleNotice.Reverse(true))
		}
	}
}

func (a *App) drawPreview(w, h int) {
	margin := 2
	r := rect{margin, margin, w - 2*margin, h - 2*margin}
	if r.w < 10 || r.h < 4 {
		return
	}
	fill(a.screen, r.x, r.y, r.w, r.h, ' ', styleDefault)
	drawFrame(a.screen, r, styleActive)
	title := " " + runewidth.Truncate(a.prevTitle, r.w-4, "…") + " "
	drawText(a.screen, r.x+1, r.y, r.w-2, title, styleActive)

	row := r.y + 1
	for _, line := range a.preview.Lines {
		if row >= r.y+r.h-1 {
			break
		}
		col := r.x + 1
		for _, span := range line.Spans {
			if col >= r.x+r.w-1 {
				break
			}
			col = drawStyledText(a.screen, col, row, r.x+r.w-1-col, span.Text, span.Style)
		}
		row++
	}
	if a.preview.Truncated && row < r.y+r.h {
		drawText(a.screen, r.x+1, r.y+r.h-1, r.w-2, " …truncated ", styleDim)
	}
}

// drawText writes s clipped to width w, returning the next column.
func drawText(s tcell.Screen, x, y, w int, text string, style tcell.Style) int {
	return drawStyledText(s, x, y, w, text, style)
}

func drawStyledText(s tcell.Screen, x, y, w int, text string, style tcell.Style) int {
	col := x
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if col+rw > x+w {
			break
		}
		s.SetContent(col, y, r, nil, style)
		col += rw
	}
	return col
}

func fill(s tcell.Screen, x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, r, nil, style)
		}
	}
}

func drawFrame(s tcell.Screen, r rect, style tcell.Style) {
	for col := r.x; col < r.x+r.w; col++ {
		s.SetContent(col, r.y, tcell.RuneHLine, nil, style)
		s.SetContent(col, r.y+r.h-1, tcell.RuneHLine, nil, style)
	}
	for row := r.y; row < r.y+r.h; row++ {
		s.SetContent(r.x, row, tcell.RuneVLine, nil, style)
		s.SetContent(r.x+r.w-1, row, tcell.RuneVLine, nil, style)
	}
	s.SetContent(r.x, r.y, tcell.RuneULCorner, nil, style)
	s.SetContent(r.x+r.w-1, r.y, tcell.RuneURCorner, nil, style)
	s.SetContent(r.x, r.y+r.h-1, tcell.RuneLLCorner, nil, style)
	s.SetContent(r.x+r.w-1, r.y+r.h-1, tcell.RuneLRCorner, nil, style)
}
