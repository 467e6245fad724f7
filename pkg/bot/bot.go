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

// Package bot implements the !servers command family: whole-room version
// batches, ad-hoc and repeat probes of single servers, version filters
// and room-upgrade readiness reports.
package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/carverauto/fedradar/pkg/compat"
	"github.com/carverauto/fedradar/pkg/logger"
	"github.com/carverauto/fedradar/pkg/models"
	"github.com/carverauto/fedradar/pkg/prober"
	"github.com/carverauto/fedradar/pkg/session"
)

// ErrNotCommand marks input that is not addressed to the bot at all.
// Callers normally ignore it.
var ErrNotCommand = errors.New("not a recognized command")

// Bot wires the command handlers to their collaborators. One Bot serves
// all rooms; per-room state lives in the session store.
type Bot struct {
	messenger Messenger
	members   MemberSource
	prober    *prober.Prober
	table     *compat.Table
	sessions  *session.Store
	logger    logger.Logger
}

// NewBot creates the command handler.
func NewBot(
	messenger Messenger,
	members MemberSource,
	p *prober.Prober,
	table *compat.Table,
	sessions *session.Store,
	log logger.Logger,
) *Bot {
	return &Bot{
		messenger: messenger,
		members:   members,
		prober:    p,
		table:     table,
		sessions:  sessions,
		logger:    log,
	}
}

// Dispatch parses one line of input and runs the matching command.
// Recognized commands are !servers with aliases !versions, !server and
// !version; an unrecognized subcommand falls back to the whole-room
// check, matching how the command was originally registered.
func (b *Bot) Dispatch(ctx context.Context, room models.RoomID, input string) error {
	fields := strings.Fields(input)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "!") {
		return ErrNotCommand
	}

	switch strings.ToLower(strings.TrimPrefix(fields[0], "!")) {
	case "servers", "versions", "server", "version":
	default:
		return ErrNotCommand
	}

	args := fields[1:]
	if len(args) == 0 {
		return b.HandleServers(ctx, room)
	}

	switch strings.ToLower(args[0]) {
	case "test", "check", "version":
		if len(args) < 2 {
			return b.sendNotice(ctx, room, "Usage: !servers test <server>")
		}

		return b.HandleTest(ctx, room, args[1])
	case "retest", "recheck":
		if len(args) < 2 {
			return b.sendNotice(ctx, room, "Usage: !servers retest <server>")
		}

		return b.HandleRetest(ctx, room, args[1])
	case "upgrade":
		if len(args) < 2 {
			return b.sendNotice(ctx, room, "Usage: !servers upgrade <room version>")
		}

		return b.HandleUpgrade(ctx, room, args[1])
	case "match":
		if len(args) < 2 {
			return b.sendNotice(ctx, room, "Usage: !servers match <software> [operator] [version]")
		}

		return b.HandleMatch(ctx, room, args[1:])
	default:
		return b.HandleServers(ctx, room)
	}
}

func (b *Bot) sendNotice(ctx context.Context, room models.RoomID, text string) error {
	_, err := b.messenger.SendNotice(ctx, room, text)

	return err
}
