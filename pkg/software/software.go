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

// Package software parses reported homeserver software versions into
// comparable family-tagged values. Each known family has its own version
// scheme; unrecognized families fall back to opaque string ordering.
package software

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	ErrInvalidVersion = errors.New("invalid version")
	ErrFamilyMismatch = errors.New("cannot compare versions across software families")
)

// Canonical family names. Parse maps reported software names onto these
// case-insensitively; anything else passes through as reported.
const (
	FamilySynapse   = "Synapse"
	FamilyDendrite  = "Dendrite"
	FamilyConduit   = "Conduit"
	FamilyCatalyst  = "Catalyst"
	FamilyConstruct = "construct"
)

// Info is a parsed software identity: a family plus a version value that
// orders correctly within that family. Values are immutable once parsed.
type Info struct {
	Family string

	display string
	cmp     *semver.Version
	raw     string
}

// Parse builds an Info from a reported software name and version string.
// Synapse versions use the dotted-release scheme with optional pre-release
// stages (anything after the first space is discarded); Dendrite, Conduit
// and Catalyst report semantic versions. Unknown families never fail: the
// version stays an opaque token ordered by plain string comparison.
func Parse(family, version string) (Info, error) {
	switch CanonicalFamily(family) {
	case FamilySynapse:
		token, _, _ := strings.Cut(version, " ")

		v, display, err := parsePEP440(token)
		if err != nil {
			return Info{}, err
		}

		return Info{Family: FamilySynapse, display: display, cmp: v, raw: version}, nil
	case FamilyDendrite:
		return parseSemver(FamilyDendrite, version)
	case FamilyConduit:
		return parseSemver(FamilyConduit, version)
	case FamilyCatalyst:
		return parseSemver(FamilyCatalyst, version)
	default:
		return Info{Family: family, display: version, raw: version}, nil
	}
}

// MustParse is Parse for static version literals; it panics on error.
func MustParse(family, version string) Info {
	info, err := Parse(family, version)
	if err != nil {
		panic(err)
	}

	return info
}

// CanonicalFamily maps a reported software name onto its canonical family
// name, or returns it unchanged when the family is unrecognized.
func CanonicalFamily(family string) string {
	switch strings.ToLower(family) {
	case "synapse":
		return FamilySynapse
	case "dendrite":
		return FamilyDendrite
	case "conduit":
		return FamilyConduit
	case "catalyst":
		return FamilyCatalyst
	default:
		return family
	}
}

func parseSemver(family, version string) (Info, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return Info{}, fmt.Errorf("%w %q for %s", ErrInvalidVersion, version, family)
	}

	return Info{Family: family, display: v.String(), cmp: v, raw: version}, nil
}

// VersionString returns the displayed version without the family name.
func (i Info) VersionString() string {
	return i.display
}

// String renders the value as "Family version", the form shown in summaries.
func (i Info) String() string {
	return i.Family + " " + i.display
}

// Comparable reports whether the family has a known version scheme.
func (i Info) Comparable() bool {
	return i.cmp != nil
}

// Compare orders two values of the same family: -1, 0 or 1. Families are
// matched case-insensitively; comparing across families returns
// ErrFamilyMismatch.
func (i Info) Compare(other Info) (int, error) {
	if !strings.EqualFold(i.Family, other.Family) {
		return 0, fmt.Errorf("%w: %s vs %s", ErrFamilyMismatch, i.Family, other.Family)
	}

	if i.cmp != nil && other.cmp != nil {
		return i.cmp.Compare(other.cmp), nil
	}

	return strings.Compare(i.raw, other.raw), nil
}

// Equal reports whether both values name the same family and version.
// Build metadata does not participate, matching the ordering rules.
func (i Info) Equal(other Info) bool {
	c, err := i.Compare(other)
	return err == nil && c == 0
}

// GroupKey returns a stable aggregation key: equal keys group together in
// summaries. The key folds family case and normalizes the version so that
// differently-written equal versions land in one group.
func (i Info) GroupKey() string {
	family := strings.ToLower(i.Family)

	if i.cmp != nil {
		canonical := fmt.Sprintf("%d.%d.%d", i.cmp.Major(), i.cmp.Minor(), i.cmp.Patch())
		if pre := i.cmp.Prerelease(); pre != "" {
			canonical += "-" + pre
		}

		return family + " " + canonical
	}

	return family + " " + i.raw
}

// displayOrder ranks families for summary ordering when versions are not
// directly comparable. Unlisted families rank at 0.
var displayOrder = map[string]int{
	FamilySynapse:   100,
	FamilyConstruct: 50,
	FamilyConduit:   40,
	FamilyDendrite:  10,
}

// Less orders values for display: same-family values by their native
// version ordering, different families by the fixed display priority.
// This ordering is presentational only; compatibility decisions never
// consult it.
func Less(a, b Info) bool {
	if strings.EqualFold(a.Family, b.Family) {
		if c, err := a.Compare(b); err == nil {
			return c < 0
		}
	}

	return displayOrder[a.Family] < displayOrder[b.Family]
}
