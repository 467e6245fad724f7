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

import (
	"context"
	"fmt"

	"github.com/carverauto/fedradar/pkg/models"
	"github.com/carverauto/fedradar/pkg/prober"
	"github.com/carverauto/fedradar/pkg/report"
)

// HandleServers runs the whole-room check. A second request while a
// batch is running is rejected rather than queued; the requester can
// watch the existing summary fill in instead.
func (b *Bot) HandleServers(ctx context.Context, room models.RoomID) error {
	if b.sessions.InFlight(room) {
		return b.sendNotice(ctx, room, "There is already a test in progress.")
	}

	return b.testOrWait(ctx, room)
}

// testOrWait starts a batch, or waits for the one already running.
func (b *Bot) testOrWait(ctx context.Context, room models.RoomID) error {
	release, wait, started := b.sessions.Begin(room)
	if !started {
		select {
		case <-wait:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	defer release()

	return b.runBatch(ctx, room)
}

// cachedOrTest returns the room's cached results, running or awaiting a
// batch when there are none yet. The bool result reports whether a view
// is available; when it is false the user has already been told why.
func (b *Bot) cachedOrTest(ctx context.Context, room models.RoomID) (prober.View, bool) {
	if results, ok := b.sessions.Get(room); ok {
		return results.Snapshot(), true
	}

	if err := b.testOrWait(ctx, room); err != nil {
		b.logger.Warn().Err(err).Str("room", string(room)).Msg("Batch failed while filling cache")
	}

	if results, ok := b.sessions.Get(room); ok {
		return results.Snapshot(), true
	}

	if err := b.sendNotice(ctx, room, "Cache didn't contain test results even after waiting 😿"); err != nil {
		b.logger.Warn().Err(err).Str("room", string(room)).Msg("Failed to send notice")
	}

	return prober.View{}, false
}

// runBatch publishes the progress notice, loads the member list, probes
// every homeserver and edits the notice into the final summary. The
// published event ID is kept with the results so re-probes can edit the
// same summary later.
func (b *Bot) runBatch(ctx context.Context, room models.RoomID) error {
	eventID, err := b.messenger.SendNotice(ctx, room, "Loading member list...")
	if err != nil {
		return fmt.Errorf("failed to publish progress notice: %w", err)
	}

	members, err := b.members.JoinedMembers(ctx, room)
	if err != nil {
		return fmt.Errorf("failed to load members of %s: %w", room, err)
	}

	roster := prober.FromMembers(members)

	err = b.messenger.EditNotice(ctx, room, eventID, fmt.Sprintf(
		"Member list loaded, found %s on %s. Now running federation tests",
		report.Pluralize(roster.MemberCount(), "member"),
		report.Pluralize(roster.ServerCount(), "server")))
	if err != nil {
		return fmt.Errorf("failed to update progress notice: %w", err)
	}

	results := b.prober.ProbeAll(ctx, roster)
	results.SetEventID(eventID)
	b.sessions.Put(room, results)

	if err := b.messenger.EditNotice(ctx, room, eventID, report.FormatSummary(results.Snapshot())); err != nil {
		return fmt.Errorf("failed to publish summary: %w", err)
	}

	return nil
}
