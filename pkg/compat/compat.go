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

// Package compat answers whether a homeserver version supports a given
// room revision, from a sparse table of per-family requirements.
package compat

import (
	"errors"
	"fmt"

	"github.com/carverauto/fedradar/pkg/software"
)

// ErrUnknownSoftware marks a family the table has no row for. Callers
// distinguish this from "known incompatible".
var ErrUnknownSoftware = errors.New("unknown software")

type requirementKind int

const (
	kindAlways requirementKind = iota
	kindNever
	kindMinVersion
)

// Requirement states what a room revision demands of one software family:
// unconditionally supported, unconditionally unsupported, or supported
// from a minimum version on.
type Requirement struct {
	kind requirementKind
	min  software.Info
}

func Always() Requirement {
	return Requirement{kind: kindAlways}
}

func Never() Requirement {
	return Requirement{kind: kindNever}
}

func MinVersion(min software.Info) Requirement {
	return Requirement{kind: kindMinVersion, min: min}
}

// Table holds the static compatibility data. Family keys are the
// canonical names produced by software.Parse; lookups are exact, so
// software reporting an uncanonicalized name counts as unknown.
// A Table is immutable after construction.
type Table struct {
	rows      map[string]map[string]Requirement
	latest    map[string]software.Info
	revisions map[string]struct{}
	updated   string
}

// IsCompatible reports whether the version supports the room revision.
// A family absent from the table returns ErrUnknownSoftware; a revision
// absent from the family's row means "not confirmed compatible" (false,
// no error). A minimum-version entry whose family differs from the
// probed version is a construction bug and panics.
func (t *Table) IsCompatible(version software.Info, revision string) (bool, error) {
	row, ok := t.rows[version.Family]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownSoftware, version.Family)
	}

	req, ok := row[revision]
	if !ok {
		return false, nil
	}

	switch req.kind {
	case kindAlways:
		return true, nil
	case kindNever:
		return false, nil
	default:
		c, err := version.Compare(req.min)
		if err != nil {
			panic(fmt.Sprintf("compat: requirement for %s revision %s compares across families: %v",
				version.Family, revision, err))
		}

		return c >= 0, nil
	}
}

// ExceedsLatestKnown reports whether the version is newer than the table's
// recorded latest release for its family. Advisory only: a true result
// suggests the table is stale, it never feeds a compatibility decision.
func (t *Table) ExceedsLatestKnown(version software.Info) bool {
	latest, ok := t.latest[version.Family]
	if !ok {
		return false
	}

	c, err := version.Compare(latest)
	if err != nil {
		return false
	}

	return c > 0
}

// KnownRevision reports whether the revision appears in the table's
// enumerated protocol revisions.
func (t *Table) KnownRevision(revision string) bool {
	_, ok := t.revisions[revision]
	return ok
}

// Updated returns the date the table data was last refreshed.
func (t *Table) Updated() string {
	return t.updated
}

// Default returns the built-in table.
func Default() *Table {
	synMin := func(v string) Requirement {
		return MinVersion(software.MustParse(software.FamilySynapse, v))
	}
	denMin := func(v string) Requirement {
		return MinVersion(software.MustParse(software.FamilyDendrite, v))
	}
	conMin := func(v string) Requirement {
		return MinVersion(software.MustParse(software.FamilyConduit, v))
	}

	revisions := make(map[string]struct{})
	for _, rev := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"} {
		revisions[rev] = struct{}{}
	}

	return &Table{
		updated:   "2022-08-19",
		revisions: revisions,
		latest: map[string]software.Info{
			software.FamilySynapse:  software.MustParse(software.FamilySynapse, "1.65.0"),
			software.FamilyDendrite: software.MustParse(software.FamilyDendrite, "0.9.3"),
			software.FamilyConduit:  software.MustParse(software.FamilyConduit, "0.4.0"),
		},
		rows: map[string]map[string]Requirement{
			software.FamilySynapse: {
				"1":  Always(),
				"2":  synMin("0.99.0rc1"),
				"3":  synMin("0.99.0rc1"),
				"4":  synMin("0.99.5rc1"),
				"5":  synMin("1.0.0rc1"),
				"6":  synMin("1.14.0rc1"),
				"7":  synMin("1.37.0rc1"),
				"8":  synMin("1.40.0rc3"),
				"9":  synMin("1.42.0rc2"),
				"10": synMin("1.64.0rc1"),
			},
			software.FamilyConstruct: {
				"1":  Always(),
				"2":  Always(),
				"3":  Always(),
				"4":  Always(),
				"5":  Always(),
				"6":  Always(),
				"7":  Always(),
				"8":  Always(),
				"9":  Always(),
				"10": Never(),
			},
			software.FamilyDendrite: {
				"1": Always(),
				"2": Always(),
				"3": Always(),
				"4": Always(),
				"5": Always(),
				"6": Always(),
				"7": denMin("0.4.1"),
				// Room version 8 support landed in 0.5.1 but was only
				// marked stable in 0.8.6.
				"8":  denMin("0.8.6"),
				"9":  denMin("0.8.6"),
				"10": denMin("0.8.7"),
			},
			software.FamilyConduit: {
				"1": Never(),
				"2": Never(),
				"3": Never(),
				"4": Never(),
				// Conduit marks room versions below 6 as unstable.
				"5":  Never(),
				"6":  Always(),
				"7":  conMin("0.4.0"),
				"8":  conMin("0.4.0"),
				"9":  conMin("0.4.0"),
				"10": Never(),
			},
			software.FamilyCatalyst: {
				"1":  Never(),
				"2":  Never(),
				"3":  Never(),
				"4":  Never(),
				"5":  Never(),
				"6":  Always(),
				"7":  Always(),
				"8":  Always(),
				"9":  Always(),
				"10": Always(),
			},
		},
	}
}
