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

// fedradar audits the homeserver software versions behind a federated
// chat room: it probes every member's server through a federation
// tester, groups the results by version and reports who would be left
// behind by a room version upgrade.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/carverauto/fedradar/pkg/bot"
	"github.com/carverauto/fedradar/pkg/compat"
	"github.com/carverauto/fedradar/pkg/config"
	"github.com/carverauto/fedradar/pkg/fedtest"
	"github.com/carverauto/fedradar/pkg/logger"
	"github.com/carverauto/fedradar/pkg/models"
	"github.com/carverauto/fedradar/pkg/prober"
	"github.com/carverauto/fedradar/pkg/session"
)

var (
	configPath string
	debug      bool
	rosterPath string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fedradar",
		Short:         "Federated homeserver version auditor",
		Long:          "fedradar probes the homeservers behind a federated chat room,\ngroups them by software version and checks room version compatibility.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to the JSON config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newCheckCommand(),
		newProbeCommand(),
		newMatchCommand(),
		newUpgradeCommand(),
		newConsoleCommand(),
		newVersionCommand(),
	)

	return root
}

// engine bundles the wired command handler with the collaborators the
// CLI shims need direct access to.
type engine struct {
	bot     *bot.Bot
	console *consoleMessenger
	log     logger.Logger
}

// buildEngine loads configuration and wires the probe pipeline to a
// console messenger and the given member source.
func buildEngine(ctx context.Context, members bot.MemberSource) (*engine, error) {
	cfg := &models.BotConfig{}

	if configPath != "" {
		if err := config.NewConfig(nil).LoadAndValidate(ctx, configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := cfg.Logging
	if logCfg == nil {
		logCfg = logger.DefaultConfig()
	}

	if debug {
		logCfg.Debug = true
	}

	log, err := logger.CreateComponentLogger(ctx, "fedradar", logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	table := compat.Default()
	if cfg.CompatTable != "" {
		table, err = compat.Load(cfg.CompatTable)
		if err != nil {
			return nil, fmt.Errorf("failed to load compatibility table: %w", err)
		}
	}

	client := fedtest.NewClient(cfg.FederationTester, &http.Client{}, log)
	p := prober.New(client, time.Duration(cfg.ProbeTimeout), log)
	console := newConsoleMessenger(os.Stdout)

	return &engine{
		bot:     bot.NewBot(console, members, p, table, session.NewStore(), log),
		console: console,
		log:     log,
	}, nil
}

func shutdownLogging(log logger.Logger) {
	if err := logger.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("Failed to flush log exports")
	}
}
