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

package prober

import (
	"maps"
	"slices"
	"sync"

	"github.com/carverauto/fedradar/pkg/models"
	"github.com/carverauto/fedradar/pkg/software"
)

// TakeState describes what Take found for a server before removing it.
type TakeState int

const (
	// TakeNotMember means the server was not part of the batch.
	TakeNotMember TakeState = iota
	// TakeHadVersion means a probe result was present and has been removed.
	TakeHadVersion
	// TakeHadError means a failure message was present and has been removed.
	TakeHadError
	// TakeInFlight means the server is a member but currently has no
	// entry, so another re-probe already took it.
	TakeInFlight
)

// Results holds the outcome of one batch. Membership is fixed when the
// batch starts; Versions and Errors fill in as probes complete. Every
// member server sits in exactly one of the two maps except during the
// window where a re-probe has taken its entry and not yet stored a new
// one.
type Results struct {
	mu        sync.Mutex
	publishMu sync.Mutex

	servers  map[string][]models.UserID
	order    []string
	versions map[string]software.Info
	errors   map[string]string
	eventID  models.EventID
}

// View is a detached value copy of a Results for rendering. Mutating a
// view never affects the live results.
type View struct {
	Servers  map[string][]models.UserID
	Order    []string
	Versions map[string]software.Info
	Errors   map[string]string
	EventID  models.EventID
}

// NewResults seeds an empty result set with the roster's membership.
func NewResults(roster *Roster) *Results {
	servers := make(map[string][]models.UserID, len(roster.Servers))
	for server, users := range roster.Servers {
		servers[server] = slices.Clone(users)
	}

	return &Results{
		servers:  servers,
		order:    slices.Clone(roster.Order),
		versions: make(map[string]software.Info),
		errors:   make(map[string]string),
	}
}

// StoreVersion records a successful probe, displacing any failure entry.
func (r *Results) StoreVersion(server string, info software.Info) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.errors, server)
	r.versions[server] = info
}

// StoreError records a failed probe's user-facing message, displacing
// any version entry.
func (r *Results) StoreError(server, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.versions, server)
	r.errors[server] = message
}

// Take removes the server's current entry and reports what it was. The
// caller is expected to store a new outcome; until it does, the server
// reads as in flight.
func (r *Results) Take(server string) (software.Info, string, TakeState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.servers[server]; !ok {
		return software.Info{}, "", TakeNotMember
	}

	if info, ok := r.versions[server]; ok {
		delete(r.versions, server)
		return info, "", TakeHadVersion
	}

	if message, ok := r.errors[server]; ok {
		delete(r.errors, server)
		return software.Info{}, message, TakeHadError
	}

	return software.Info{}, "", TakeInFlight
}

// SetEventID records the handle of the published summary message.
func (r *Results) SetEventID(id models.EventID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.eventID = id
}

// EventID returns the handle of the published summary message.
func (r *Results) EventID() models.EventID {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.eventID
}

// PublishLocked runs fn while holding the publish lock, serializing
// re-render and republish steps against each other without blocking
// probe bookkeeping.
func (r *Results) PublishLocked(fn func()) {
	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	fn()
}

// Snapshot returns a deep copy of the current state.
func (r *Results) Snapshot() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	view := View{
		Servers:  make(map[string][]models.UserID, len(r.servers)),
		Order:    slices.Clone(r.order),
		Versions: maps.Clone(r.versions),
		Errors:   maps.Clone(r.errors),
		EventID:  r.eventID,
	}

	for server, users := range r.servers {
		view.Servers[server] = slices.Clone(users)
	}

	return view
}
