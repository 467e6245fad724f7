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

package bot

//go:generate mockgen -destination=mock_bot.go -package=bot github.com/carverauto/fedradar/pkg/bot Messenger,MemberSource

import (
	"context"

	"github.com/carverauto/fedradar/pkg/models"
)

// Messenger publishes notices to a room and edits them in place.
// Summaries are published once and then only ever edited against the
// same event ID.
type Messenger interface {
	SendNotice(ctx context.Context, room models.RoomID, text string) (models.EventID, error)
	EditNotice(ctx context.Context, room models.RoomID, event models.EventID, text string) error
}

// MemberSource lists the joined members of a room.
type MemberSource interface {
	JoinedMembers(ctx context.Context, room models.RoomID) ([]models.UserID, error)
}
