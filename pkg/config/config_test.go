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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fedradar/pkg/models"
)

var errAlwaysInvalid = errors.New("always invalid")

type invalidConfig struct {
	Name string `json:"name"`
}

func (*invalidConfig) Validate() error {
	return errAlwaysInvalid
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFileConfigLoader_Load(t *testing.T) {
	path := writeConfigFile(t, `{"federation_tester":"https://tester.example/api?server_name={server}"}`)

	var cfg models.BotConfig

	loader := &FileConfigLoader{}
	err := loader.Load(context.Background(), path, &cfg)

	require.NoError(t, err)
	assert.Equal(t, "https://tester.example/api?server_name={server}", cfg.FederationTester)
}

func TestFileConfigLoader_MissingFile(t *testing.T) {
	loader := &FileConfigLoader{}

	err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"), &models.BotConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestFileConfigLoader_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	loader := &FileConfigLoader{}
	err := loader.Load(context.Background(), path, &models.BotConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadAndValidate_FillsDefaults(t *testing.T) {
	path := writeConfigFile(t, `{}`)

	var cfg models.BotConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)

	require.NoError(t, err)
	assert.Equal(t, models.DefaultFederationTester, cfg.FederationTester)
	assert.Equal(t, models.Duration(models.DefaultProbeTimeout), cfg.ProbeTimeout)
}

func TestLoadAndValidate_ValidatorError(t *testing.T) {
	path := writeConfigFile(t, `{"name":"anything"}`)

	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &invalidConfig{})

	require.ErrorIs(t, err, errAlwaysInvalid)
}

func TestLoadAndValidate_InvalidSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "carrier-pigeon")

	err := NewConfig(nil).LoadAndValidate(context.Background(), "ignored.json", &models.BotConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid CONFIG_SOURCE")
}

func TestLoadAndValidate_EnvSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("FEDRADAR_FEDERATION_TESTER", "https://env.example/report?server_name={server}")
	t.Setenv("FEDRADAR_PROBE_TIMEOUT", "45s")

	var cfg models.BotConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg)

	require.NoError(t, err)
	assert.Equal(t, "https://env.example/report?server_name={server}", cfg.FederationTester)
	assert.Equal(t, models.Duration(45*time.Second), cfg.ProbeTimeout)
}

func TestLoadAndValidate_EnvSourceNestedLogging(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("FEDRADAR_LOGGING_LEVEL", "debug")

	var cfg models.BotConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg)

	require.NoError(t, err)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadAndValidate_EnvSourceLeavesAbsentNestedNil(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("FEDRADAR_COMPAT_TABLE", "/etc/fedradar/table.json")

	var cfg models.BotConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg)

	require.NoError(t, err)
	assert.Equal(t, "/etc/fedradar/table.json", cfg.CompatTable)
	assert.Nil(t, cfg.Logging)
}

func TestEnvConfigLoader_ConfigJSON(t *testing.T) {
	t.Setenv("FEDRADAR_CONFIG_JSON", `{"federation_tester":"https://json.example/?server_name={server}","probe_timeout":"30s"}`)

	var cfg models.BotConfig

	loader := NewEnvConfigLoader(nil, "FEDRADAR_")
	err := loader.Load(context.Background(), "", &cfg)

	require.NoError(t, err)
	assert.Equal(t, "https://json.example/?server_name={server}", cfg.FederationTester)
	assert.Equal(t, models.Duration(30*time.Second), cfg.ProbeTimeout)
}

func TestEnvConfigLoader_RejectsNonPointer(t *testing.T) {
	loader := NewEnvConfigLoader(nil, "FEDRADAR_")

	err := loader.Load(context.Background(), "", models.BotConfig{})
	require.ErrorIs(t, err, ErrDstMustBeNonNilPointer)

	s := "not a struct"
	err = loader.Load(context.Background(), "", &s)
	require.ErrorIs(t, err, ErrDstMustBePointerToStruct)
}

func TestValidateConfig_NonValidator(t *testing.T) {
	type plain struct {
		Value string `json:"value"`
	}

	assert.NoError(t, ValidateConfig(&plain{Value: "x"}))
}
