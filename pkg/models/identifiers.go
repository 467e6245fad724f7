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

package models

import (
	"fmt"
	"strings"
)

// UserID is a fully qualified federated user identifier ("@local:server.name").
type UserID string

// RoomID identifies a room, used as the session key for cached batch results.
type RoomID string

// EventID identifies a published message. Summaries are edited in place by
// re-sending content against the same EventID.
type EventID string

var errInvalidUserID = fmt.Errorf("invalid user ID")

// Parse splits a user ID into its localpart and homeserver name. The
// homeserver may contain a port ("example.org:8448"), so only the first
// colon separates the parts.
func (u UserID) Parse() (localpart, homeserver string, err error) {
	s := string(u)
	if !strings.HasPrefix(s, "@") {
		return "", "", fmt.Errorf("%w: %q must start with '@'", errInvalidUserID, s)
	}

	localpart, homeserver, found := strings.Cut(s[1:], ":")
	if !found || homeserver == "" {
		return "", "", fmt.Errorf("%w: %q has no homeserver part", errInvalidUserID, s)
	}

	return localpart, homeserver, nil
}

// Homeserver returns the server part of the user ID, or "" when malformed.
func (u UserID) Homeserver() string {
	_, server, err := u.Parse()
	if err != nil {
		return ""
	}

	return server
}
