/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package session keeps per-room batch results and the in-flight markers
// that deduplicate concurrent batch requests. Entries live for the
// process lifetime; there is no eviction.
package session

import (
	"sync"

	"github.com/carverauto/fedradar/pkg/models"
	"github.com/carverauto/fedradar/pkg/prober"
)

// Store is the process-wide session state. Each room moves through
// absent -> running -> ready; the running marker doubles as a broadcast
// channel so later callers can wait for the first batch instead of
// starting their own.
type Store struct {
	mu       sync.Mutex
	results  map[models.RoomID]*prober.Results
	inflight map[models.RoomID]chan struct{}
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{
		results:  make(map[models.RoomID]*prober.Results),
		inflight: make(map[models.RoomID]chan struct{}),
	}
}

// Begin claims the room's batch slot. When no batch is running, started
// is true and the caller owns the slot until it calls release; release
// is idempotent and must run on every exit path, clearing the marker and
// waking all waiters. When a batch is already running, started is false
// and wait closes once it finishes.
func (s *Store) Begin(room models.RoomID) (release func(), wait <-chan struct{}, started bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.inflight[room]; ok {
		return nil, ch, false
	}

	ch := make(chan struct{})
	s.inflight[room] = ch

	var once sync.Once

	release = func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			delete(s.inflight, room)
			close(ch)
		})
	}

	return release, ch, true
}

// InFlight reports whether a batch is currently running for the room.
func (s *Store) InFlight(room models.RoomID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.inflight[room]

	return ok
}

// Get returns the cached batch results for the room.
func (s *Store) Get(room models.RoomID) (*prober.Results, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, ok := s.results[room]

	return results, ok
}

// Put caches the room's batch results, replacing any previous batch.
func (s *Store) Put(room models.RoomID, results *prober.Results) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[room] = results
}
