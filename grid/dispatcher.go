// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/dispatcher.go
// Summary: Event fan-out between the state model and its observers.

package grid

import "sync"

// EventType identifies a state-model change notification.
type EventType int

const (
	// EventNavigated fires after a tab commits a new current path.
	EventNavigated EventType = iota
	// EventTabsChanged fires when tabs are opened, closed, moved, or retitled.
	EventTabsChanged
	// EventViewChanged fires when a tab's view mode or zoom changes.
	EventViewChanged
	// EventLayoutChanged fires when a workspace's split layout or active pane changes.
	EventLayoutChanged
	// EventGroupsChanged fires when groups are created, closed, renamed, or toggled.
	EventGroupsChanged
	// EventNotice carries a user-visible message, typically a recovered error.
	EventNotice
)

// Event is broadcast to listeners when observable state changes.
type Event struct {
	Type    EventType
	Payload interface{}
}

// Listener receives state-model events.
type Listener interface {
	OnEvent(Event)
}

// EventDispatcher fans events out to subscribed listeners.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventDispatcher returns an empty dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{}
}

// Subscribe registers a listener for future events.
func (d *EventDispatcher) Subscribe(l Listener) {
	if d == nil || l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

// Unsubscribe removes a previously registered listener.
func (d *EventDispatcher) Unsubscribe(l Listener) {
	if d == nil || l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, cur := range d.listeners {
		if cur == l {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Broadcast delivers the event to every subscribed listener.
func (d *EventDispatcher) Broadcast(ev Event) {
	if d == nil {
		return
	}
	d.mu.RLock()
	listeners := make([]Listener, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.RUnlock()

	for _, l := range listeners {
		l.OnEvent(ev)
	}
}
