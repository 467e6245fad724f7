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

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/fedradar/pkg/logger"
)

type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

var (
	errInvalidDuration            = fmt.Errorf("invalid duration")
	errTesterTemplatePlaceholder  = fmt.Errorf("federation_tester template must contain the {server} placeholder")
	errProbeTimeoutMustBePositive = fmt.Errorf("probe_timeout must be positive")
)

const (
	// DefaultFederationTester is the public federation tester endpoint.
	DefaultFederationTester = "https://federationtester.matrix.org/api/report?server_name={server}"

	// DefaultProbeTimeout bounds a single server probe.
	DefaultProbeTimeout = 60 * time.Second
)

// BotConfig represents the configuration for the version checker bot.
type BotConfig struct {
	FederationTester string         `json:"federation_tester"`
	ProbeTimeout     Duration       `json:"probe_timeout,omitempty"`
	CompatTable      string         `json:"compat_table,omitempty"` // optional table override file
	Logging          *logger.Config `json:"logging,omitempty"`
}

// Validate implements config.Validator. Unset fields fall back to defaults.
func (c *BotConfig) Validate() error {
	if c.FederationTester == "" {
		c.FederationTester = DefaultFederationTester
	}

	if !strings.Contains(c.FederationTester, "{server}") {
		return fmt.Errorf("%w: %q", errTesterTemplatePlaceholder, c.FederationTester)
	}

	if c.ProbeTimeout == 0 {
		c.ProbeTimeout = Duration(DefaultProbeTimeout)
	}

	if c.ProbeTimeout < 0 {
		return errProbeTimeoutMustBePositive
	}

	return nil
}
