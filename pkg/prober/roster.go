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
	"github.com/carverauto/fedradar/pkg/models"
)

// Roster maps homeservers to the room members they host. Order records
// servers in the order they were first seen so summaries render
// deterministically.
type Roster struct {
	Servers map[string][]models.UserID
	Order   []string
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{
		Servers: make(map[string][]models.UserID),
	}
}

// FromMembers builds a roster from a member list, keeping first-seen
// server order.
func FromMembers(members []models.UserID) *Roster {
	roster := NewRoster()
	for _, member := range members {
		roster.Add(member)
	}

	return roster
}

// Add files a member under its homeserver. Malformed user IDs are
// dropped; a roster only ever contains servers that can be probed.
func (r *Roster) Add(user models.UserID) {
	server := user.Homeserver()
	if server == "" {
		return
	}

	if _, ok := r.Servers[server]; !ok {
		r.Order = append(r.Order, server)
	}

	r.Servers[server] = append(r.Servers[server], user)
}

// ServerCount returns the number of distinct homeservers.
func (r *Roster) ServerCount() int {
	return len(r.Order)
}

// MemberCount returns the number of members filed under any server.
func (r *Roster) MemberCount() int {
	count := 0
	for _, users := range r.Servers {
		count += len(users)
	}

	return count
}
