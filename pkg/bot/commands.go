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
	"strings"

	"github.com/carverauto/fedradar/pkg/fedtest"
	"github.com/carverauto/fedradar/pkg/models"
	"github.com/carverauto/fedradar/pkg/prober"
	"github.com/carverauto/fedradar/pkg/report"
	"github.com/carverauto/fedradar/pkg/software"
)

// comparisonOperators maps filter operator spellings onto predicates
// over a three-way comparison result.
var comparisonOperators = map[string]func(int) bool{
	"=":   func(c int) bool { return c == 0 },
	"==":  func(c int) bool { return c == 0 },
	"===": func(c int) bool { return c == 0 },
	">":   func(c int) bool { return c > 0 },
	">=":  func(c int) bool { return c >= 0 },
	"<":   func(c int) bool { return c < 0 },
	"<=":  func(c int) bool { return c <= 0 },
	"!=":  func(c int) bool { return c != 0 },
	"!==": func(c int) bool { return c != 0 },
	"≠":   func(c int) bool { return c != 0 },
}

// HandleTest probes one server right now, independently of any cached
// batch.
func (b *Bot) HandleTest(ctx context.Context, room models.RoomID, server string) error {
	info, err := b.prober.ProbeOne(ctx, server)
	if err != nil {
		return b.sendNotice(ctx, room, fmt.Sprintf("Testing %s failed: %s", server, fedtest.FailureMessage(err)))
	}

	return b.sendNotice(ctx, room, fmt.Sprintf("%s is on %s", server, info))
}

// HandleRetest re-probes one server from the previous batch, stores the
// new outcome and, when the outcome changed, republishes the batch
// summary in place before reporting what happened to the server.
func (b *Bot) HandleRetest(ctx context.Context, room models.RoomID, server string) error {
	results, ok := b.sessions.Get(room)
	if !ok {
		return b.sendNotice(ctx, room,
			"No cached results. Please use `!servers` to test all servers in the room first.")
	}

	prevInfo, prevError, state := results.Take(server)

	switch state {
	case prober.TakeNotMember:
		return b.sendNotice(ctx, room,
			"That server isn't in the previous results. If the server joined recently, you must retest the whole room.")
	case prober.TakeInFlight:
		return b.sendNotice(ctx, room, "That server seems to be in the progress of being retested.")
	case prober.TakeHadVersion, prober.TakeHadError:
	}

	noticeID, err := b.messenger.SendNotice(ctx, room, fmt.Sprintf("Re-testing %s...", server))
	if err != nil {
		// Put the taken entry back, otherwise the server would read as
		// mid-retest forever.
		if state == prober.TakeHadVersion {
			results.StoreVersion(server, prevInfo)
		} else {
			results.StoreError(server, prevError)
		}

		return fmt.Errorf("failed to publish re-test notice: %w", err)
	}

	var (
		newInfo  software.Info
		newError string
	)

	newInfo, probeErr := b.prober.ProbeOne(ctx, server)
	if probeErr != nil {
		newError = fedtest.FailureMessage(probeErr)
		results.StoreError(server, newError)
	} else {
		results.StoreVersion(server, newInfo)
	}

	prevHadVersion := state == prober.TakeHadVersion
	newHasVersion := probeErr == nil

	changed := prevHadVersion != newHasVersion ||
		(newHasVersion && !newInfo.Equal(prevInfo)) ||
		(!newHasVersion && newError != prevError)

	if changed {
		results.PublishLocked(func() {
			summaryID := results.EventID()
			if summaryID == "" {
				return
			}

			if err := b.messenger.EditNotice(ctx, room, summaryID, report.FormatSummary(results.Snapshot())); err != nil {
				b.logger.Warn().Err(err).Str("server", server).Msg("Failed to republish summary")
			}
		})
	}

	var status string

	switch {
	case !newHasVersion:
		status = fmt.Sprintf("Testing %s failed: %s", server, newError)
	case !prevHadVersion:
		status = fmt.Sprintf("%s is back up and on version %s", server, newInfo)
	case newInfo.Equal(prevInfo):
		status = fmt.Sprintf("%s is still on %s", server, prevInfo)
	case strings.EqualFold(prevInfo.Family, newInfo.Family):
		action := "downgraded"
		if c, err := prevInfo.Compare(newInfo); err == nil && c < 0 {
			action = "updated"
		}

		status = fmt.Sprintf("%s %s %s from %s to %s",
			server, action, prevInfo.Family, prevInfo.VersionString(), newInfo.VersionString())
	default:
		status = fmt.Sprintf("%s switched from %s to %s", server, prevInfo, newInfo)
	}

	return b.messenger.EditNotice(ctx, room, noticeID, status)
}

// HandleUpgrade reports who would be left behind if the room moved to
// the given room version.
func (b *Bot) HandleUpgrade(ctx context.Context, room models.RoomID, roomVersion string) error {
	if !b.table.KnownRevision(roomVersion) {
		return b.sendNotice(ctx, room, fmt.Sprintf("Unknown room version %s", roomVersion))
	}

	view, ok := b.cachedOrTest(ctx, room)
	if !ok {
		return nil
	}

	return b.sendNotice(ctx, room, report.FormatUpgradeReport(view, b.table, roomVersion))
}

// HandleMatch reports which members' servers satisfy a software filter.
// The filter is a software name, an optional operator and an optional
// version; without a version every server of that software matches.
func (b *Bot) HandleMatch(ctx context.Context, room models.RoomID, args []string) error {
	family := args[0]
	rest := args[1:]

	compare := comparisonOperators["="]
	if len(rest) > 0 {
		if op, ok := comparisonOperators[rest[0]]; ok {
			compare = op
			rest = rest[1:]
		}
	}

	version := strings.Join(rest, " ")

	var match func(software.Info) bool

	if version == "" {
		match = func(info software.Info) bool {
			return strings.EqualFold(info.Family, family)
		}
	} else {
		want, err := software.Parse(family, version)
		if err != nil {
			return b.sendNotice(ctx, room, err.Error())
		}

		match = func(info software.Info) bool {
			if !strings.EqualFold(info.Family, want.Family) {
				return false
			}

			c, err := info.Compare(want)

			return err == nil && compare(c)
		}
	}

	view, ok := b.cachedOrTest(ctx, room)
	if !ok {
		return nil
	}

	return b.sendNotice(ctx, room, report.FormatMatchReport(view, match))
}
