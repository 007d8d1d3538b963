// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/group.go
// Summary: Group bar controller: ordered workspaces with a protected group 0.

package grid

import (
	"fmt"
	"log"
)

// HomeGroupTitle is the fixed label of group 0.
const HomeGroupTitle = "Home"

// Group pairs a title with a workspace and a visibility flag. Hidden
// groups keep their full state.
type Group struct {
	title     string
	visible   bool
	workspace *Workspace
}

// Title returns the group's label.
func (g *Group) Title() string { return g.title }

// Visible reports whether the group shows in the group bar.
func (g *Group) Visible() bool { return g.visible }

// Workspace returns the group's workspace.
func (g *Group) Workspace() *Workspace { return g.workspace }

// GroupController owns the ordered group list. Group 0 always exists,
// keeps its fixed title, and can never be closed.
type GroupController struct {
	groups     []*Group
	active     int
	homePath   string
	dispatcher *EventDispatcher
}

// NewGroupController returns a controller with group 0 rooted at homePath.
func NewGroupController(homePath string, dispatcher *EventDispatcher) *GroupController {
	gc := &GroupController{
		homePath:   homePath,
		dispatcher: dispatcher,
	}
	gc.groups = []*Group{gc.newGroup(HomeGroupTitle)}
	return gc
}

func (gc *GroupController) newGroup(title string) *Group {
	return &Group{
		title:     title,
		visible:   true,
		workspace: NewWorkspace(gc.homePath, gc.dispatcher),
	}
}

// GroupCount returns the number of groups, hidden included.
func (gc *GroupController) GroupCount() int { return len(gc.groups) }

// Group returns the group at index, or nil out of range.
func (gc *GroupController) Group(index int) *Group {
	if index < 0 || index >= len(gc.groups) {
		return nil
	}
	return gc.groups[index]
}

// ActiveIndex returns the active group's index.
func (gc *GroupController) ActiveIndex() int { return gc.active }

// ActiveGroup returns the active group.
func (gc *GroupController) ActiveGroup() *Group { return gc.groups[gc.active] }

// ActiveWorkspace returns the active group's workspace.
func (gc *GroupController) ActiveWorkspace() *Workspace {
	return gc.groups[gc.active].workspace
}

// CreateGroup appends a visible group with a fresh single-pane workspace
// at the home directory and activates it. An empty name gets a generated
// unique "Group N" label; a name already in use fails with
// ErrDuplicateName.
func (gc *GroupController) CreateGroup(name string) (int, error) {
	if name == "" {
		name = gc.generateName()
	} else if gc.titleInUse(name, -1) {
		return 0, ErrDuplicateName
	}
	gc.groups = append(gc.groups, gc.newGroup(name))
	gc.active = len(gc.groups) - 1
	log.Printf("Groups: Created group %q (index %d)", name, gc.active)
	gc.notify()
	return gc.active, nil
}

// CloseGroup removes the group at index, releasing its state. Group 0 is
// protected. When the close leaves only a hidden group 0 behind, group 0
// is shown again and reset to a single default tab at the home directory.
func (gc *GroupController) CloseGroup(index int) error {
	if index == 0 {
		return ErrProtectedGroup
	}
	if index < 0 || index >= len(gc.groups) {
		return ErrInvalidIndex
	}

	title := gc.groups[index].title
	gc.groups = append(gc.groups[:index], gc.groups[index+1:]...)
	if gc.active >= index {
		gc.active--
	}
	if gc.active < 0 {
		gc.active = 0
	}

	if gc.visibleCount() == 0 {
		gc.groups[0].visible = true
		gc.groups[0].workspace = NewWorkspace(gc.homePath, gc.dispatcher)
		gc.active = 0
		log.Printf("Groups: Last visible group closed, reset %q", HomeGroupTitle)
	}
	if !gc.groups[gc.active].visible {
		gc.active = gc.firstVisible()
	}
	log.Printf("Groups: Closed group %q", title)
	gc.notify()
	return nil
}

// RenameGroup relabels the group at index. Group 0's title is fixed and
// titles must stay unique.
func (gc *GroupController) RenameGroup(index int, name string) error {
	if index == 0 {
		return ErrProtectedGroup
	}
	if index < 0 || index >= len(gc.groups) {
		return ErrInvalidIndex
	}
	if name == "" {
		return fmt.Errorf("grid: group name is empty")
	}
	if gc.titleInUse(name, index) {
		return ErrDuplicateName
	}
	gc.groups[index].title = name
	gc.notify()
	return nil
}

// SetGroupVisible toggles a group in or out of the group bar without
// touching its state. The last visible group cannot be hidden.
func (gc *GroupController) SetGroupVisible(index int, visible bool) error {
	if index < 0 || index >= len(gc.groups) {
		return ErrInvalidIndex
	}
	if !visible && gc.visibleCount() == 1 && gc.groups[index].visible {
		return ErrProtectedGroup
	}
	gc.groups[index].visible = visible
	if !visible && gc.active == index {
		gc.active = gc.firstVisible()
	}
	gc.notify()
	return nil
}

// SetActiveGroup focuses the group at index, showing it if hidden.
func (gc *GroupController) SetActiveGroup(index int) error {
	if index < 0 || index >= len(gc.groups) {
		return ErrInvalidIndex
	}
	gc.groups[index].visible = true
	if index != gc.active {
		gc.active = index
		gc.notify()
	}
	return nil
}

// MoveTabsOut converts a lone group 0 into a named group: the new group
// takes over group 0's workspace and group 0 restarts with one fresh tab
// at the home directory. It applies only while group 0 is the sole group.
func (gc *GroupController) MoveTabsOut(name string) (int, error) {
	if len(gc.groups) != 1 {
		return 0, fmt.Errorf("grid: tabs can only move out of a lone %s group", HomeGroupTitle)
	}
	if name == "" {
		name = gc.generateName()
	} else if gc.titleInUse(name, -1) {
		return 0, ErrDuplicateName
	}

	moved := &Group{title: name, visible: true, workspace: gc.groups[0].workspace}
	gc.groups[0].workspace = NewWorkspace(gc.homePath, gc.dispatcher)
	gc.groups = append(gc.groups, moved)
	gc.active = len(gc.groups) - 1
	log.Printf("Groups: Moved %s tabs out into new group %q", HomeGroupTitle, name)
	gc.notify()
	return gc.active, nil
}

// ExportState captures every group, hidden ones included.
func (gc *GroupController) ExportState() SessionRecord {
	rec := SessionRecord{
		Version:     SessionVersion,
		ActiveGroup: gc.active,
		Groups:      make([]GroupRecord, len(gc.groups)),
	}
	for i, g := range gc.groups {
		rec.Groups[i] = GroupRecord{
			Title:     g.title,
			Visible:   g.visible,
			Workspace: g.workspace.ExportState(),
		}
	}
	return rec
}

// ImportState replaces the whole group list from a record, all or
// nothing. Unknown versions and empty group lists are schema mismatches
// and leave state untouched.
func (gc *GroupController) ImportState(rec SessionRecord) error {
	if rec.Version != SessionVersion || len(rec.Groups) == 0 {
		return ErrSchemaMismatch
	}

	groups := make([]*Group, len(rec.Groups))
	for i, gr := range rec.Groups {
		ws := NewWorkspace(gc.homePath, gc.dispatcher)
		if err := ws.ImportState(gr.Workspace, gc.homePath); err != nil {
			return err
		}
		title := gr.Title
		if i == 0 {
			title = HomeGroupTitle
		}
		groups[i] = &Group{title: title, visible: gr.Visible, workspace: ws}
	}

	gc.groups = groups
	gc.active = clampIndex(rec.ActiveGroup, len(groups))
	if gc.visibleCount() == 0 {
		gc.groups[0].visible = true
		gc.active = 0
	}
	if !gc.groups[gc.active].visible {
		gc.active = gc.firstVisible()
	}
	gc.notify()
	return nil
}

func (gc *GroupController) generateName() string {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("Group %d", n)
		if !gc.titleInUse(candidate, -1) {
			return candidate
		}
	}
}

func (gc *GroupController) titleInUse(name string, except int) bool {
	for i, g := range gc.groups {
		if i != except && g.title == name {
			return true
		}
	}
	return false
}

func (gc *GroupController) visibleCount() int {
	count := 0
	for _, g := range gc.groups {
		if g.visible {
			count++
		}
	}
	return count
}

func (gc *GroupController) firstVisible() int {
	for i, g := range gc.groups {
		if g.visible {
			return i
		}
	}
	return 0
}

func (gc *GroupController) notify() {
	if gc.dispatcher != nil {
		gc.dispatcher.Broadcast(Event{Type: EventGroupsChanged, Payload: gc})
	}
}
