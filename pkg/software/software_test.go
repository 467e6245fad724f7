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

package software

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Synapse(t *testing.T) {
	tests := []struct {
		name        string
		family      string
		version     string
		wantDisplay string
	}{
		{
			name:        "plain release",
			family:      "Synapse",
			version:     "1.42.0",
			wantDisplay: "1.42.0",
		},
		{
			name:        "release candidate",
			family:      "Synapse",
			version:     "1.42.0rc2",
			wantDisplay: "1.42.0rc2",
		},
		{
			name:        "lowercase family is canonicalized",
			family:      "synapse",
			version:     "1.65.0",
			wantDisplay: "1.65.0",
		},
		{
			name:        "build suffix after space is dropped",
			family:      "Synapse",
			version:     "1.42.0 (b=matrix-org-hotfixes,4d2a91e)",
			wantDisplay: "1.42.0",
		},
		{
			name:        "two release components",
			family:      "Synapse",
			version:     "1.42",
			wantDisplay: "1.42",
		},
		{
			name:        "uppercase stage is normalized",
			family:      "Synapse",
			version:     "1.42.0RC2",
			wantDisplay: "1.42.0rc2",
		},
		{
			name:        "leading v is dropped",
			family:      "SYNAPSE",
			version:     "v1.2.3",
			wantDisplay: "1.2.3",
		},
		{
			name:        "c stage normalizes to rc",
			family:      "Synapse",
			version:     "1.0c1",
			wantDisplay: "1.0rc1",
		},
		{
			name:        "separated stage",
			family:      "Synapse",
			version:     "1.40.0-rc.3",
			wantDisplay: "1.40.0rc3",
		},
		{
			name:        "stage without number",
			family:      "Synapse",
			version:     "1.0rc",
			wantDisplay: "1.0rc0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(tt.family, tt.version)

			require.NoError(t, err)
			assert.Equal(t, FamilySynapse, info.Family)
			assert.Equal(t, tt.wantDisplay, info.VersionString())
			assert.Equal(t, "Synapse "+tt.wantDisplay, info.String())
			assert.True(t, info.Comparable())
		})
	}
}

func TestParse_SynapseInvalid(t *testing.T) {
	for _, version := range []string{
		"",
		"garbage",
		"1.2.3.4",
		"1.0.dev1",
		"1.0.post1",
		"1!2.0",
		"1.0+local.1",
	} {
		t.Run(version, func(t *testing.T) {
			_, err := Parse("Synapse", version)
			require.ErrorIs(t, err, ErrInvalidVersion)
		})
	}
}

func TestParse_SemverFamilies(t *testing.T) {
	tests := []struct {
		family     string
		version    string
		wantFamily string
	}{
		{"Dendrite", "0.9.3", FamilyDendrite},
		{"dendrite", "0.9.3", FamilyDendrite},
		{"Conduit", "0.4.0", FamilyConduit},
		{"CONDUIT", "0.4.0-next", FamilyConduit},
		{"Catalyst", "1.0.0", FamilyCatalyst},
	}

	for _, tt := range tests {
		t.Run(tt.family+" "+tt.version, func(t *testing.T) {
			info, err := Parse(tt.family, tt.version)

			require.NoError(t, err)
			assert.Equal(t, tt.wantFamily, info.Family)
			assert.True(t, info.Comparable())
		})
	}

	_, err := Parse("Dendrite", "ten")
	require.ErrorIs(t, err, ErrInvalidVersion)
}

func TestParse_UnknownFamilyNeverFails(t *testing.T) {
	info, err := Parse("caddy", "whatever ~ 2.x")

	require.NoError(t, err)
	assert.Equal(t, "caddy", info.Family)
	assert.Equal(t, "whatever ~ 2.x", info.VersionString())
	assert.Equal(t, "caddy whatever ~ 2.x", info.String())
	assert.False(t, info.Comparable())

	empty, err := Parse("mystery", "")
	require.NoError(t, err)
	assert.Equal(t, "mystery ", empty.String())
}

func TestCompare_Ordering(t *testing.T) {
	tests := []struct {
		name   string
		family string
		lower  string
		higher string
	}{
		{"synapse release after rc", "Synapse", "1.42.0rc2", "1.42.0"},
		{"synapse rc numbers compare numerically", "Synapse", "1.42.0rc2", "1.42.0rc10"},
		{"synapse alpha before beta", "Synapse", "1.42.0a1", "1.42.0b1"},
		{"synapse beta before rc", "Synapse", "1.42.0b1", "1.42.0rc1"},
		{"synapse minor versions", "Synapse", "1.41.0", "1.42.0rc2"},
		{"dendrite patch versions", "Dendrite", "0.8.6", "0.8.7"},
		{"conduit prerelease before release", "Conduit", "0.4.0-rc1", "0.4.0"},
		{"unknown family falls back to string order", "weechat", "abc", "abd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lower := MustParse(tt.family, tt.lower)
			higher := MustParse(tt.family, tt.higher)

			c, err := lower.Compare(higher)
			require.NoError(t, err)
			assert.Negative(t, c)

			c, err = higher.Compare(lower)
			require.NoError(t, err)
			assert.Positive(t, c)
		})
	}
}

func TestCompare_FamilyMismatch(t *testing.T) {
	synapse := MustParse("Synapse", "1.42.0")
	dendrite := MustParse("Dendrite", "0.9.3")

	_, err := synapse.Compare(dendrite)
	require.ErrorIs(t, err, ErrFamilyMismatch)
}

func TestCompare_Trichotomy(t *testing.T) {
	versions := []string{"1.40.0", "1.42.0rc2", "1.42.0rc10", "1.42.0", "1.42.1", "1.65.0"}

	for _, a := range versions {
		for _, b := range versions {
			infoA := MustParse("Synapse", a)
			infoB := MustParse("Synapse", b)

			c, err := infoA.Compare(infoB)
			require.NoError(t, err)

			switch {
			case a == b:
				assert.Zero(t, c, "%s vs %s", a, b)
			default:
				reverse, err := infoB.Compare(infoA)
				require.NoError(t, err)
				assert.Equal(t, -c, reverse, "%s vs %s must be antisymmetric", a, b)
				assert.NotZero(t, c, "%s vs %s must order strictly", a, b)
			}
		}
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, MustParse("Synapse", "1.42").Equal(MustParse("synapse", "1.42.0")))
	assert.True(t, MustParse("Conduit", "0.4.0+git").Equal(MustParse("Conduit", "0.4.0")))
	assert.True(t, MustParse("nio", "raw-string").Equal(MustParse("nio", "raw-string")))

	assert.False(t, MustParse("Synapse", "1.42.0").Equal(MustParse("Synapse", "1.42.0rc2")))
	assert.False(t, MustParse("Synapse", "1.42.0").Equal(MustParse("Dendrite", "0.9.3")))
	assert.False(t, MustParse("nio", "a").Equal(MustParse("nio", "b")))
}

func TestGroupKey(t *testing.T) {
	assert.Equal(t,
		MustParse("Synapse", "1.42").GroupKey(),
		MustParse("synapse", "1.42.0").GroupKey())

	assert.Equal(t,
		MustParse("Conduit", "0.4.0+debian").GroupKey(),
		MustParse("Conduit", "0.4.0").GroupKey())

	assert.NotEqual(t,
		MustParse("Synapse", "1.42.0").GroupKey(),
		MustParse("Synapse", "1.42.0rc2").GroupKey())

	assert.NotEqual(t,
		MustParse("caddy", "2").GroupKey(),
		MustParse("nginx", "2").GroupKey())
}

func TestLess_DisplayOrdering(t *testing.T) {
	synapseOld := MustParse("Synapse", "1.41.0")
	synapseNew := MustParse("Synapse", "1.42.0")
	conduit := MustParse("Conduit", "0.4.0")
	dendrite := MustParse("Dendrite", "0.9.3")
	unknown := MustParse("caddy", "2.5.1")

	assert.True(t, Less(synapseOld, synapseNew))
	assert.False(t, Less(synapseNew, synapseOld))

	// Families rank Synapse > construct > Conduit > Dendrite > everything else.
	assert.True(t, Less(conduit, synapseOld))
	assert.True(t, Less(dendrite, conduit))
	assert.True(t, Less(unknown, dendrite))

	other := MustParse("nginx", "1.0")
	assert.False(t, Less(unknown, other))
	assert.False(t, Less(other, unknown))
}

func TestParse_DisplayRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"Synapse", "1.42.0rc2"},
		{"Synapse", "1.42"},
		{"Dendrite", "0.9.3"},
		{"Conduit", "0.4.0-rc1"},
		{"Catalyst", "1.0.0"},
	}

	for _, pair := range pairs {
		t.Run(pair[0]+" "+pair[1], func(t *testing.T) {
			first := MustParse(pair[0], pair[1])
			second := MustParse(first.Family, first.VersionString())

			assert.True(t, first.Equal(second))
			assert.Equal(t, first.String(), second.String())
		})
	}
}
