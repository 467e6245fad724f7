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

package compat

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/carverauto/fedradar/pkg/software"
)

var errInvalidRequirement = errors.New("requirement must be a boolean or a version string")

// tableDoc is the JSON override format. Every field is optional; present
// fields override the built-in data. A family under minimums replaces
// that family's whole row.
type tableDoc struct {
	Updated   string                                `json:"updated,omitempty"`
	Revisions []string                              `json:"revisions,omitempty"`
	Latest    map[string]string                     `json:"latest,omitempty"`
	Minimums  map[string]map[string]json.RawMessage `json:"minimums,omitempty"`
}

// Load reads a JSON override file and applies it on top of the built-in
// table.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compatibility table '%s': %w", path, err)
	}

	var doc tableDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compatibility table '%s': %w", path, err)
	}

	table := Default()

	if doc.Updated != "" {
		table.updated = doc.Updated
	}

	if len(doc.Revisions) > 0 {
		revisions := make(map[string]struct{}, len(doc.Revisions))
		for _, rev := range doc.Revisions {
			revisions[rev] = struct{}{}
		}

		table.revisions = revisions
	}

	for family, version := range doc.Latest {
		info, err := software.Parse(family, version)
		if err != nil {
			return nil, fmt.Errorf("latest version for %s: %w", family, err)
		}

		table.latest[info.Family] = info
	}

	for family, entries := range doc.Minimums {
		row := make(map[string]Requirement, len(entries))

		for revision, raw := range entries {
			req, err := parseRequirement(family, raw)
			if err != nil {
				return nil, fmt.Errorf("minimum for %s revision %s: %w", family, revision, err)
			}

			row[revision] = req
		}

		// Known families canonicalize so "synapse" overrides the Synapse
		// row; others keep the key as written (the construct row is
		// lowercase on purpose).
		table.rows[software.CanonicalFamily(family)] = row
	}

	return table, nil
}

func parseRequirement(family string, raw json.RawMessage) (Requirement, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return Always(), nil
		}

		return Never(), nil
	}

	var version string
	if err := json.Unmarshal(raw, &version); err != nil {
		return Requirement{}, errInvalidRequirement
	}

	info, err := software.Parse(family, version)
	if err != nil {
		return Requirement{}, err
	}

	return MinVersion(info), nil
}
