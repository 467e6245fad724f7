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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{
			name:  "duration string",
			input: `"60s"`,
			want:  60 * time.Second,
		},
		{
			name:  "compound duration string",
			input: `"1m30s"`,
			want:  90 * time.Second,
		},
		{
			name:  "numeric nanoseconds",
			input: `5000000000`,
			want:  5 * time.Second,
		},
		{
			name:    "invalid string",
			input:   `"soon"`,
			wantErr: true,
		},
		{
			name:    "invalid type",
			input:   `[1, 2]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestBotConfigValidateDefaults(t *testing.T) {
	cfg := &BotConfig{}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultFederationTester, cfg.FederationTester)
	assert.Equal(t, DefaultProbeTimeout, time.Duration(cfg.ProbeTimeout))
}

func TestBotConfigValidateTemplate(t *testing.T) {
	cfg := &BotConfig{
		FederationTester: "https://tester.example/api/report?server_name=fixed",
	}

	require.Error(t, cfg.Validate())
}

func TestBotConfigValidateNegativeTimeout(t *testing.T) {
	cfg := &BotConfig{ProbeTimeout: Duration(-time.Second)}

	require.Error(t, cfg.Validate())
}

func TestBotConfigUnmarshal(t *testing.T) {
	data := `{
		"federation_tester": "https://tester.example/api/report?server_name={server}",
		"probe_timeout": "30s"
	}`

	var cfg BotConfig

	require.NoError(t, json.Unmarshal([]byte(data), &cfg))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30*time.Second, time.Duration(cfg.ProbeTimeout))
}
