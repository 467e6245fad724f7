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

package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fedradar/pkg/compat"
	"github.com/carverauto/fedradar/pkg/models"
	"github.com/carverauto/fedradar/pkg/prober"
	"github.com/carverauto/fedradar/pkg/software"
)

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 server", Pluralize(1, "server"))
	assert.Equal(t, "2 servers", Pluralize(2, "server"))
	assert.Equal(t, "0 members", Pluralize(0, "member"))
}

func TestAntinotify(t *testing.T) {
	assert.Equal(t, "a\uFEFFb", Antinotify("ab"))
	assert.Equal(t, "a", Antinotify("a"))
	assert.Empty(t, Antinotify(""))
}

func TestUserLink(t *testing.T) {
	assert.Equal(t,
		"[@\uFEFFa\uFEFF:\uFEFFb](https://matrix.to/#/@a:b)",
		UserLink("@a:b"))
}

func TestUserLink_EscapesHTML(t *testing.T) {
	link := UserLink("@mal<ice:example.org")

	assert.Contains(t, link, "&lt;")
	assert.NotContains(t, link, "<")
}

func TestMakeUserList(t *testing.T) {
	info := software.MustParse("Synapse", "1.65.0")

	tests := []struct {
		name  string
		users []models.UserID
		want  string
	}{
		{
			name:  "one user",
			users: []models.UserID{"@a:ex.org"},
			want:  "* ex.org (Synapse 1.65.0) with " + UserLink("@a:ex.org"),
		},
		{
			name:  "two users",
			users: []models.UserID{"@a:ex.org", "@b:ex.org"},
			want:  "* ex.org (Synapse 1.65.0) with " + UserLink("@a:ex.org") + " and " + UserLink("@b:ex.org"),
		},
		{
			name:  "three users",
			users: []models.UserID{"@a:ex.org", "@b:ex.org", "@c:ex.org"},
			want: "* ex.org (Synapse 1.65.0) with " +
				UserLink("@a:ex.org") + ", " + UserLink("@b:ex.org") + " and " + UserLink("@c:ex.org"),
		},
		{
			name:  "five users truncated",
			users: []models.UserID{"@a:ex.org", "@b:ex.org", "@c:ex.org", "@d:ex.org", "@e:ex.org"},
			want: "* ex.org (Synapse 1.65.0) with " +
				UserLink("@a:ex.org") + ", " + UserLink("@b:ex.org") + " and 3 others",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MakeUserList("ex.org", info, tt.users))
		})
	}
}

func TestGroupByVersion_MergesEqualVersions(t *testing.T) {
	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org":   {"@alice:one.example.org"},
			"two.example.org":   {"@bob:two.example.org"},
			"three.example.org": {"@carol:three.example.org", "@dave:three.example.org"},
			"four.example.org":  {"@erin:four.example.org"},
		},
		Order: []string{"one.example.org", "two.example.org", "three.example.org", "four.example.org"},
		Versions: map[string]software.Info{
			"one.example.org":   software.MustParse("Synapse", "1.65.0"),
			"two.example.org":   software.MustParse("Dendrite", "0.9.3"),
			"three.example.org": software.MustParse("Synapse", "1.65"),
		},
		Errors: map[string]string{
			"four.example.org": "test timed out",
		},
	}

	groups := GroupByVersion(view)
	require.Len(t, groups, 2)

	assert.Equal(t, "Synapse 1.65.0", groups[0].Info.String())
	assert.Equal(t, 2, groups[0].ServerCount)
	assert.Equal(t, []models.UserID{
		"@alice:one.example.org",
		"@carol:three.example.org",
		"@dave:three.example.org",
	}, groups[0].Users)

	assert.Equal(t, "Dendrite 0.9.3", groups[1].Info.String())
	assert.Equal(t, 1, groups[1].ServerCount)
}

func TestGroupByVersion_DescendingWithinFamily(t *testing.T) {
	view := prober.View{
		Servers: map[string][]models.UserID{
			"old.example.org": {"@a:old.example.org"},
			"new.example.org": {"@b:new.example.org"},
		},
		Order: []string{"old.example.org", "new.example.org"},
		Versions: map[string]software.Info{
			"old.example.org": software.MustParse("Synapse", "1.58.0"),
			"new.example.org": software.MustParse("Synapse", "1.65.0"),
		},
	}

	groups := GroupByVersion(view)
	require.Len(t, groups, 2)
	assert.Equal(t, "Synapse 1.65.0", groups[0].Info.String())
	assert.Equal(t, "Synapse 1.58.0", groups[1].Info.String())
}

func TestGroupByVersion_TiesKeepFirstSeenOrder(t *testing.T) {
	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org": {"@a:one.example.org"},
			"two.example.org": {"@b:two.example.org"},
		},
		Order: []string{"one.example.org", "two.example.org"},
		Versions: map[string]software.Info{
			"one.example.org": software.MustParse("caddy", "1.0"),
			"two.example.org": software.MustParse("nginx", "9.9"),
		},
	}

	groups := GroupByVersion(view)
	require.Len(t, groups, 2)
	assert.Equal(t, "caddy 1.0", groups[0].Info.String())
	assert.Equal(t, "nginx 9.9", groups[1].Info.String())
}

func TestGroupByVersion_Pure(t *testing.T) {
	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org": {"@a:one.example.org"},
			"two.example.org": {"@b:two.example.org"},
		},
		Order: []string{"one.example.org", "two.example.org"},
		Versions: map[string]software.Info{
			"one.example.org": software.MustParse("Synapse", "1.65.0"),
			"two.example.org": software.MustParse("Synapse", "1.60.0"),
		},
	}

	assert.Equal(t, GroupByVersion(view), GroupByVersion(view))
}

func TestFormatSummary(t *testing.T) {
	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org":   {"@alice:one.example.org"},
			"two.example.org":   {"@bob:two.example.org", "@carol:two.example.org"},
			"three.example.org": {"@dave:three.example.org"},
		},
		Order: []string{"one.example.org", "two.example.org", "three.example.org"},
		Versions: map[string]software.Info{
			"one.example.org": software.MustParse("Synapse", "1.65.0"),
			"two.example.org": software.MustParse("Synapse", "1.65.0"),
		},
		Errors: map[string]string{
			"three.example.org": "Server couldn't be reached",
		},
	}

	want := "### Versions\n\n" +
		"* 2 servers with 3 members on Synapse 1.65.0\n\n" +
		"<details><summary>1 server failed</summary>\n\n" +
		"* three.example.org (1 member): Server couldn't be reached\n\n" +
		"</details>"

	assert.Equal(t, want, FormatSummary(view))
}

func TestFormatSummary_NoFailures(t *testing.T) {
	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org": {"@alice:one.example.org"},
		},
		Order: []string{"one.example.org"},
		Versions: map[string]software.Info{
			"one.example.org": software.MustParse("Conduit", "0.4.0"),
		},
	}

	assert.Equal(t, "### Versions\n\n* 1 server with 1 member on Conduit 0.4.0", FormatSummary(view))
}

func TestFormatSummary_AllFailed(t *testing.T) {
	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org": {"@alice:one.example.org"},
		},
		Order:    []string{"one.example.org"},
		Versions: map[string]software.Info{},
		Errors: map[string]string{
			"one.example.org": "test timed out",
		},
	}

	want := "### Versions\n\n\n\n" +
		"<details><summary>1 server failed</summary>\n\n" +
		"* one.example.org (1 member): test timed out\n\n" +
		"</details>"

	assert.Equal(t, want, FormatSummary(view))
}

func TestFormatSummary_Reproducible(t *testing.T) {
	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org": {"@alice:one.example.org"},
			"two.example.org": {"@bob:two.example.org"},
		},
		Order: []string{"one.example.org", "two.example.org"},
		Versions: map[string]software.Info{
			"one.example.org": software.MustParse("Synapse", "1.65.0"),
		},
		Errors: map[string]string{
			"two.example.org": "invalid TLS certificates",
		},
	}

	assert.Equal(t, FormatSummary(view), FormatSummary(view))
}

func TestFormatUpgradeReport_OutdatedForNewRevision(t *testing.T) {
	table := compat.Default()

	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org": {"@alice:one.example.org"},
		},
		Order: []string{"one.example.org"},
		Versions: map[string]software.Info{
			"one.example.org": software.MustParse("Synapse", "1.41.0"),
		},
	}

	want := "Nobody is up to date 😿\n\n" +
		"<details><summary>1 user on 1 server is outdated</summary>\n\n" +
		"* one.example.org (Synapse 1.41.0) with " + UserLink("@alice:one.example.org") + "\n\n" +
		"</details>"

	assert.Equal(t, want, FormatUpgradeReport(view, table, "9"))
}

func TestFormatUpgradeReport_UpToDateForOlderRevision(t *testing.T) {
	table := compat.Default()

	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org": {"@alice:one.example.org"},
		},
		Order: []string{"one.example.org"},
		Versions: map[string]software.Info{
			"one.example.org": software.MustParse("Synapse", "1.41.0"),
		},
	}

	assert.Equal(t,
		"1 user on 1 server are up to date\n\nNobody is outdated 🎉",
		FormatUpgradeReport(view, table, "8"))
}

func TestFormatUpgradeReport_UnknownSoftware(t *testing.T) {
	table := compat.Default()

	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org": {"@alice:one.example.org"},
		},
		Order: []string{"one.example.org"},
		Versions: map[string]software.Info{
			"one.example.org": software.MustParse("caddy", "1.0"),
		},
	}

	want := "Nobody is up to date 😿\n\n" +
		"1 user on 1 server is using unknown software or have faked their server's user agent\n\n" +
		"Nobody is outdated 🎉"

	assert.Equal(t, want, FormatUpgradeReport(view, table, "10"))
}

func TestFormatUpgradeReport_StaleTableFooter(t *testing.T) {
	table := compat.Default()

	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org": {"@alice:one.example.org"},
		},
		Order: []string{"one.example.org"},
		Versions: map[string]software.Info{
			"one.example.org": software.MustParse("Conduit", "0.5.0"),
		},
	}

	got := FormatUpgradeReport(view, table, "10")

	assert.Contains(t, got, "Nobody is up to date 😿")
	assert.Contains(t, got, "<sub>Room version support table last updated on 2022-08-19</sub>")
	assert.True(t, strings.HasSuffix(got, "</sub>"))
}

func TestFormatUpgradeReport_CountsAndPlurals(t *testing.T) {
	table := compat.Default()

	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org":   {"@a:one.example.org", "@b:one.example.org"},
			"two.example.org":   {"@c:two.example.org"},
			"three.example.org": {"@d:three.example.org"},
		},
		Order: []string{"one.example.org", "two.example.org", "three.example.org"},
		Versions: map[string]software.Info{
			"one.example.org":   software.MustParse("Synapse", "1.41.0"),
			"two.example.org":   software.MustParse("Synapse", "1.40.0"),
			"three.example.org": software.MustParse("Synapse", "1.65.0"),
		},
	}

	got := FormatUpgradeReport(view, table, "9")

	assert.Contains(t, got, "1 user on 1 server are up to date")
	assert.Contains(t, got, "<details><summary>3 users on 2 servers are outdated</summary>")
	assert.Contains(t, got, "* one.example.org (Synapse 1.41.0) with ")
	assert.Contains(t, got, "* two.example.org (Synapse 1.40.0) with ")
}

func TestFormatMatchReport_FilterScenario(t *testing.T) {
	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org":   {"@alice:one.example.org"},
			"two.example.org":   {"@bob:two.example.org"},
			"three.example.org": {"@carol:three.example.org"},
		},
		Order: []string{"one.example.org", "two.example.org", "three.example.org"},
		Versions: map[string]software.Info{
			"one.example.org":   software.MustParse("Synapse", "1.60.0"),
			"two.example.org":   software.MustParse("Synapse", "1.59.0"),
			"three.example.org": software.MustParse("Dendrite", "0.9.0"),
		},
	}

	want := software.MustParse("Synapse", "1.60.0")
	match := func(info software.Info) bool {
		if !strings.EqualFold(info.Family, want.Family) {
			return false
		}

		c, err := info.Compare(want)

		return err == nil && c >= 0
	}

	wantReport := "Matched 1 user on 1 server\n\n" +
		"* one.example.org (Synapse 1.60.0) with " + UserLink("@alice:one.example.org")

	assert.Equal(t, wantReport, FormatMatchReport(view, match))
}

func TestFormatMatchReport_NoMatches(t *testing.T) {
	view := prober.View{
		Servers: map[string][]models.UserID{
			"one.example.org": {"@alice:one.example.org"},
		},
		Order: []string{"one.example.org"},
		Versions: map[string]software.Info{
			"one.example.org": software.MustParse("Synapse", "1.60.0"),
		},
	}

	assert.Equal(t, "No matches :(", FormatMatchReport(view, func(software.Info) bool {
		return false
	}))
}
