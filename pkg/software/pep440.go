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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// pep440Pattern accepts the subset of Python-style version strings Synapse
// releases use: up to three dotted release components and an optional
// pre-release stage. Separators before and after the stage are tolerated
// and dropped in the normalized form.
var pep440Pattern = regexp.MustCompile(
	`(?i)^v?([0-9]+(?:\.[0-9]+){0,2})(?:[._-]?(a|b|c|rc|alpha|beta|pre|preview)[._-]?([0-9]*))?$`)

// pep440Stages maps spelled-out or alternate stage markers onto their
// normalized forms. Ordering follows from the normalized letters:
// a < b < rc < final release.
var pep440Stages = map[string]string{
	"a":       "a",
	"alpha":   "a",
	"b":       "b",
	"beta":    "b",
	"c":       "rc",
	"rc":      "rc",
	"pre":     "rc",
	"preview": "rc",
}

// parsePEP440 maps a Synapse version token onto a semver value whose
// precedence matches the source scheme: missing release components count
// as zero, and stage numbers compare numerically. The returned display
// string is the normalized token.
func parsePEP440(token string) (*semver.Version, string, error) {
	m := pep440Pattern.FindStringSubmatch(token)
	if m == nil {
		return nil, "", fmt.Errorf("%w %q for %s", ErrInvalidVersion, token, FamilySynapse)
	}

	var release [3]uint64

	for idx, part := range strings.Split(m[1], ".") {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, "", fmt.Errorf("%w %q for %s", ErrInvalidVersion, token, FamilySynapse)
		}

		release[idx] = n
	}

	display := m[1]
	prerelease := ""

	if m[2] != "" {
		stage := pep440Stages[strings.ToLower(m[2])]

		var stageNum uint64

		if m[3] != "" {
			n, err := strconv.ParseUint(m[3], 10, 64)
			if err != nil {
				return nil, "", fmt.Errorf("%w %q for %s", ErrInvalidVersion, token, FamilySynapse)
			}

			stageNum = n
		}

		prerelease = fmt.Sprintf("%s.%d", stage, stageNum)
		display += fmt.Sprintf("%s%d", stage, stageNum)
	}

	return semver.New(release[0], release[1], release[2], prerelease, ""), display, nil
}
