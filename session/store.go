// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/store.go
// Summary: Persists the group/workspace session with an integrity hash.

package session

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/filegrid/filegrid/config"
	"github.com/filegrid/filegrid/grid"
)

// Store persists session documents to disk with a content hash so a
// partially written or hand-edited file is detected on load.
type Store struct {
	path string
	mu   sync.Mutex
}

// StoredSession is the serialized representation written to disk.
type StoredSession struct {
	Timestamp time.Time          `json:"timestamp"`
	Hash      string             `json:"hash"`
	State     grid.SessionRecord `json:"state"`
}

// NewStore returns a store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the session state atomically, stamping it with a SHA-1
// hash of the state payload.
func (s *Store) Save(state grid.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stateData, err := json.Marshal(state)
	if err != nil {
		return err
	}

	hasher := sha1.New()
	hasher.Write(stateData)

	stored := StoredSession{
		Timestamp: time.Now().UTC(),
		Hash:      hex.EncodeToString(hasher.Sum(nil)),
		State:     state,
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return config.WriteFileAtomic(s.path, data, 0o644)
}

// Load reads the stored session and verifies its hash. A missing file
// returns os.ErrNotExist; a damaged or mismatched one returns
// grid.ErrSchemaMismatch so the caller can start a fresh session.
func (s *Store) Load() (grid.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored StoredSession
	data, err := os.ReadFile(s.path)
	if err != nil {
		return grid.SessionRecord{}, err
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("Session: Corrupt file %s: %v", s.path, err)
		return grid.SessionRecord{}, fmt.Errorf("%w: %v", grid.ErrSchemaMismatch, err)
	}

	stateData, err := json.Marshal(stored.State)
	if err != nil {
		return grid.SessionRecord{}, err
	}
	hasher := sha1.New()
	hasher.Write(stateData)
	if hex.EncodeToString(hasher.Sum(nil)) != stored.Hash {
		log.Printf("Session: Hash mismatch in %s, discarding", s.path)
		return grid.SessionRecord{}, fmt.Errorf("%w: integrity hash mismatch", grid.ErrSchemaMismatch)
	}
	if stored.State.Version != grid.SessionVersion {
		return grid.SessionRecord{}, fmt.Errorf("%w: version %d", grid.ErrSchemaMismatch, stored.State.Version)
	}
	return stored.State, nil
}
