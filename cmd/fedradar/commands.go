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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carverauto/fedradar/pkg/models"
	"github.com/carverauto/fedradar/pkg/version"
)

// adhocRoom is the session key used by one-shot commands that have no
// real room behind them.
const adhocRoom = models.RoomID("!console:fedradar")

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <server>",
		Short: "Run one federation test against a single server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cmd.Context(), &rosterFile{})
			if err != nil {
				return err
			}

			defer shutdownLogging(eng.log)

			return eng.bot.HandleTest(cmd.Context(), adhocRoom, args[0])
		},
	}
}

func newProbeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe every homeserver in a roster and print the version summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			roster, err := loadRosterFile(rosterPath)
			if err != nil {
				return err
			}

			eng, err := buildEngine(cmd.Context(), roster)
			if err != nil {
				return err
			}

			defer shutdownLogging(eng.log)

			return eng.bot.HandleServers(cmd.Context(), roster.RoomID)
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "Path to the roster JSON file")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

func newMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <software> [operator] [version]",
		Short: "Report roster members whose server matches a software filter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := loadRosterFile(rosterPath)
			if err != nil {
				return err
			}

			eng, err := buildEngine(cmd.Context(), roster)
			if err != nil {
				return err
			}

			defer shutdownLogging(eng.log)

			return eng.bot.HandleMatch(cmd.Context(), roster.RoomID, args)
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "Path to the roster JSON file")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

func newUpgradeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade <room-version>",
		Short: "Report who would be left behind by a room version upgrade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := loadRosterFile(rosterPath)
			if err != nil {
				return err
			}

			eng, err := buildEngine(cmd.Context(), roster)
			if err != nil {
				return err
			}

			defer shutdownLogging(eng.log)

			return eng.bot.HandleUpgrade(cmd.Context(), roster.RoomID, args[0])
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "Path to the roster JSON file")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("fedradar %s\n", version.GetFullVersion())
		},
	}
}
