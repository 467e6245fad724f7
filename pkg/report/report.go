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

// Package report renders batch results into the markdown published to
// rooms. Every function is pure over a prober.View, so the same view
// always renders to the same bytes. That property is what makes editing
// a published summary in place safe.
package report

import (
	"fmt"
	"html"
	"slices"
	"sort"
	"strings"

	"github.com/carverauto/fedradar/pkg/compat"
	"github.com/carverauto/fedradar/pkg/models"
	"github.com/carverauto/fedradar/pkg/prober"
	"github.com/carverauto/fedradar/pkg/software"
)

// VersionGroup is one line of the summary: every server that runs the
// same version, with their members concatenated in first-seen order.
type VersionGroup struct {
	Info        software.Info
	ServerCount int
	Users       []models.UserID
}

// GroupByVersion buckets successful probes by version. The representative
// Info is the first-seen server's rendering of that version. Groups come
// back sorted descending, native order within a family and display
// priority across families, with ties keeping first-seen order.
func GroupByVersion(view prober.View) []VersionGroup {
	index := make(map[string]int)
	groups := make([]VersionGroup, 0, len(view.Versions))

	for _, server := range view.Order {
		info, ok := view.Versions[server]
		if !ok {
			continue
		}

		users := view.Servers[server]

		key := info.GroupKey()
		if i, ok := index[key]; ok {
			groups[i].ServerCount++
			groups[i].Users = append(groups[i].Users, users...)

			continue
		}

		index[key] = len(groups)
		groups = append(groups, VersionGroup{
			Info:        info,
			ServerCount: 1,
			Users:       slices.Clone(users),
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return software.Less(groups[j].Info, groups[i].Info)
	})

	return groups
}

// FormatSummary renders the published batch summary: the grouped version
// list and, when any probe failed, a collapsible failure section.
func FormatSummary(view prober.View) string {
	groups := GroupByVersion(view)

	lines := make([]string, 0, len(groups))
	for _, group := range groups {
		lines = append(lines, fmt.Sprintf("* %s with %s on %s",
			Pluralize(group.ServerCount, "server"),
			Pluralize(len(group.Users), "member"),
			group.Info))
	}

	summary := "### Versions\n\n" + strings.Join(lines, "\n")

	failed := failedServers(view)
	if len(failed) == 0 {
		return summary
	}

	errorLines := make([]string, 0, len(failed))
	for _, server := range failed {
		errorLines = append(errorLines, fmt.Sprintf("* %s (%s): %s",
			server,
			Pluralize(len(view.Servers[server]), "member"),
			view.Errors[server]))
	}

	return summary + "\n\n" + fmt.Sprintf("<details><summary>%s failed</summary>\n\n%s\n\n</details>",
		Pluralize(len(failed), "server"),
		strings.Join(errorLines, "\n"))
}

// FormatUpgradeReport renders which members would be left behind if the
// room moved to the given revision. Servers whose software the table
// does not know land in their own bucket; outdated servers are listed
// per member, and a staleness footer appears when an outdated server
// already runs something newer than the table has heard of.
func FormatUpgradeReport(view prober.View, table *compat.Table, revision string) string {
	var (
		upToDateServers, upToDateUsers int
		unknownServers, unknownUsers   int
		outdatedServers, outdatedUsers int

		outdated   []string
		staleTable bool
	)

	for _, server := range view.Order {
		info, ok := view.Versions[server]
		if !ok {
			continue
		}

		users := view.Servers[server]

		compatible, err := table.IsCompatible(info, revision)

		switch {
		case err != nil:
			unknownServers++
			unknownUsers += len(users)
		case compatible:
			upToDateServers++
			upToDateUsers += len(users)
		default:
			staleTable = staleTable || table.ExceedsLatestKnown(info)
			outdatedServers++
			outdatedUsers += len(users)
			outdated = append(outdated, MakeUserList(server, info, users))
		}
	}

	var parts []string

	if upToDateServers > 0 {
		parts = append(parts, fmt.Sprintf("%s on %s are up to date",
			Pluralize(upToDateUsers, "user"),
			Pluralize(upToDateServers, "server")))
	} else {
		parts = append(parts, "Nobody is up to date 😿")
	}

	if unknownServers > 0 {
		parts = append(parts, fmt.Sprintf(
			"%s on %s %s using unknown software or have faked their server's user agent",
			Pluralize(unknownUsers, "user"),
			Pluralize(unknownServers, "server"),
			isAre(unknownUsers)))
	}

	if len(outdated) > 0 {
		parts = append(parts, fmt.Sprintf("<details><summary>%s on %s %s outdated</summary>\n\n%s\n\n</details>",
			Pluralize(outdatedUsers, "user"),
			Pluralize(outdatedServers, "server"),
			isAre(outdatedUsers),
			strings.Join(outdated, "\n")))
	} else {
		parts = append(parts, "Nobody is outdated 🎉")
	}

	if staleTable {
		parts = append(parts, fmt.Sprintf("<sub>Room version support table last updated on %s</sub>", table.Updated()))
	}

	return strings.Join(parts, "\n\n")
}

// FormatMatchReport lists the members whose server's version satisfies
// the given predicate.
func FormatMatchReport(view prober.View, match func(software.Info) bool) string {
	var (
		lines                        []string
		matchedUsers, matchedServers int
	)

	for _, server := range view.Order {
		info, ok := view.Versions[server]
		if !ok || !match(info) {
			continue
		}

		users := view.Servers[server]
		matchedUsers += len(users)
		matchedServers++

		lines = append(lines, MakeUserList(server, info, users))
	}

	if len(lines) == 0 {
		return "No matches :("
	}

	return fmt.Sprintf("Matched %s on %s\n\n%s",
		Pluralize(matchedUsers, "user"),
		Pluralize(matchedServers, "server"),
		strings.Join(lines, "\n"))
}

// MakeUserList renders one server's line for match and upgrade reports,
// listing up to three members and truncating the rest.
func MakeUserList(server string, info software.Info, users []models.UserID) string {
	var list string

	switch len(users) {
	case 1:
		list = UserLink(users[0])
	case 2:
		list = UserLink(users[0]) + " and " + UserLink(users[1])
	case 3:
		list = UserLink(users[0]) + ", " + UserLink(users[1]) + " and " + UserLink(users[2])
	default:
		list = fmt.Sprintf("%s, %s and %d others", UserLink(users[0]), UserLink(users[1]), len(users)-2)
	}

	return fmt.Sprintf("* %s (%s) with %s", server, info, list)
}

// UserLink renders a matrix.to markdown link for a user. The visible
// label is interleaved with zero-width no-break spaces so posting the
// report does not ping everyone it names.
func UserLink(user models.UserID) string {
	return fmt.Sprintf("[%s](https://matrix.to/#/%s)",
		html.EscapeString(Antinotify(string(user))),
		html.EscapeString(string(user)))
}

// Antinotify interleaves text with zero-width no-break spaces so client
// mention matching no longer sees the original sequence.
func Antinotify(text string) string {
	var b strings.Builder

	for i, r := range []rune(text) {
		if i > 0 {
			b.WriteRune('\uFEFF')
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Pluralize renders a count with its unit, appending "s" except for
// exactly one.
func Pluralize(count int, word string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, word)
	}

	return fmt.Sprintf("%d %ss", count, word)
}

func failedServers(view prober.View) []string {
	var failed []string

	for _, server := range view.Order {
		if _, ok := view.Errors[server]; ok {
			failed = append(failed, server)
		}
	}

	return failed
}

func isAre(count int) string {
	if count > 1 {
		return "are"
	}

	return "is"
}
