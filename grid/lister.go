// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/lister.go
// Summary: Background directory enumeration with stale-result discard.

package grid

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry describes one directory member in a listing.
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
	Hidden  bool
}

// Listing is the result of one enumeration request, tagged with the
// request's token so consumers can discard stale deliveries.
type Listing struct {
	Token   uuid.UUID
	Path    string
	Entries []Entry
	Err     error
}

type listRequest struct {
	token      uuid.UUID
	path       string
	showHidden bool
}

// Lister enumerates directories on a background worker. Every request
// gets a fresh token; results arrive on Results in completion order.
type Lister struct {
	requests chan listRequest
	results  chan Listing
	quit     chan struct{}
	done     chan struct{}
}

// NewLister returns a stopped lister; call Start before requesting.
func NewLister() *Lister {
	return &Lister{
		requests: make(chan listRequest, 16),
		results:  make(chan Listing, 16),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (l *Lister) Start() {
	go l.run()
}

// Stop shuts the worker down and waits for it to exit.
func (l *Lister) Stop() {
	close(l.quit)
	<-l.done
}

// Results delivers completed listings.
func (l *Lister) Results() <-chan Listing {
	return l.results
}

// Request queues an enumeration of path and returns its token.
func (l *Lister) Request(path string, showHidden bool) uuid.UUID {
	token := uuid.New()
	select {
	case l.requests <- listRequest{token: token, path: path, showHidden: showHidden}:
	case <-l.quit:
	}
	return token
}

func (l *Lister) run() {
	defer close(l.done)
	for {
		select {
		case req := <-l.requests:
			listing := listDirectory(req)
			select {
			case l.results <- listing:
			case <-l.quit:
				return
			}
		case <-l.quit:
			return
		}
	}
}

func listDirectory(req listRequest) Listing {
	listing := Listing{Token: req.token, Path: req.path}

	members, err := os.ReadDir(req.path)
	if err != nil {
		log.Printf("Lister: Failed to read %s: %v", req.path, err)
		listing.Err = err
		return listing
	}

	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		name := m.Name()
		hidden := strings.HasPrefix(name, ".")
		if hidden && !req.showHidden {
			continue
		}
		entry := Entry{
			Name:   name,
			Path:   filepath.Join(req.path, name),
			IsDir:  m.IsDir(),
			Hidden: hidden,
		}
		if info, err := m.Info(); err == nil {
			entry.Size = info.Size()
			entry.ModTime = info.ModTime()
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	listing.Entries = entries
	return listing
}

// ListingSlot tracks a pane's most recent request token and keeps the
// last valid listing when a newer one fails.
type ListingSlot struct {
	token   uuid.UUID
	path    string
	entries []Entry
	notice  error
}

// Expect records the token of the pane's newest request. Older
// in-flight results become stale.
func (s *ListingSlot) Expect(token uuid.UUID) {
	s.token = token
}

// Apply accepts a delivered listing if its token is still current. A
// failed listing keeps the previous entries and stores the error as the
// pane's notice. It reports whether the listing was applied.
func (s *ListingSlot) Apply(l Listing) bool {
	if l.Token != s.token {
		return false
	}
	if l.Err != nil {
		s.notice = l.Err
		return true
	}
	s.path = l.Path
	s.entries = l.Entries
	s.notice = nil
	return true
}

// Path returns the directory of the last valid listing.
func (s *ListingSlot) Path() string { return s.path }

// Entries returns the last valid listing's entries.
func (s *ListingSlot) Entries() []Entry { return s.entries }

// Notice returns the pending per-pane error, if any.
func (s *ListingSlot) Notice() error { return s.notice }

// ClearNotice drops the pending notice once it has been shown.
func (s *ListingSlot) ClearNotice() { s.notice = nil }
