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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/carverauto/fedradar/pkg/models"
)

var (
	errRosterNoRoom    = errors.New("roster file names no room_id")
	errRosterNoMembers = errors.New("roster file lists no members")
)

// rosterFile is the member source used by the CLI shims: a JSON file
// standing in for the chat platform's member list.
type rosterFile struct {
	RoomID  models.RoomID   `json:"room_id"`
	Members []models.UserID `json:"members"`
}

// loadRosterFile reads a roster file and checks it names a room and at
// least one member.
func loadRosterFile(path string) (*rosterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var roster rosterFile
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %w", path, err)
	}

	if roster.RoomID == "" {
		return nil, fmt.Errorf("%w: %s", errRosterNoRoom, path)
	}

	if len(roster.Members) == 0 {
		return nil, fmt.Errorf("%w: %s", errRosterNoMembers, path)
	}

	return &roster, nil
}

// JoinedMembers implements bot.MemberSource from the file contents.
func (r *rosterFile) JoinedMembers(_ context.Context, _ models.RoomID) ([]models.UserID, error) {
	return r.Members, nil
}
