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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/carverauto/fedradar/pkg/bot"
	"github.com/carverauto/fedradar/pkg/models"
)

// Dracula theme colors.
const (
	draculaCyan    = "#8BE9FD"
	draculaGreen   = "#50FA7B"
	draculaComment = "#6272A4"
	draculaPink    = "#FF79C6"
)

type consoleStyles struct {
	event lipgloss.Style
	edit  lipgloss.Style
	body  lipgloss.Style
	hint  lipgloss.Style
}

func newConsoleStyles() consoleStyles {
	return consoleStyles{
		event: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		edit: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)),
		body: lipgloss.NewStyle().
			PaddingLeft(2),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
	}
}

// consoleMessenger renders notices to a terminal in place of a chat
// room. Each notice gets a minted event ID so edits can reference the
// message they replace, mirroring the published-message contract.
type consoleMessenger struct {
	mu      sync.Mutex
	out     io.Writer
	styles  consoleStyles
	notices map[models.EventID]string
	last    string
}

func newConsoleMessenger(out io.Writer) *consoleMessenger {
	return &consoleMessenger{
		out:     out,
		styles:  newConsoleStyles(),
		notices: make(map[models.EventID]string),
	}
}

// SendNotice implements bot.Messenger.
func (c *consoleMessenger) SendNotice(_ context.Context, _ models.RoomID, text string) (models.EventID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	event := models.EventID("$" + uuid.NewString())
	c.notices[event] = text
	c.last = text

	c.render(c.styles.event.Render(string(event)), text)

	return event, nil
}

var errUnknownEvent = errors.New("cannot edit unknown event")

// EditNotice implements bot.Messenger, replacing the notice published
// under the given event ID.
func (c *consoleMessenger) EditNotice(_ context.Context, _ models.RoomID, event models.EventID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.notices[event]; !ok {
		return fmt.Errorf("%w: %s", errUnknownEvent, event)
	}

	c.notices[event] = text
	c.last = text

	c.render(c.styles.edit.Render("edit of "+string(event)), text)

	return nil
}

// LastNotice returns the most recently published or edited text.
func (c *consoleMessenger) LastNotice() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}

func (c *consoleMessenger) render(header, text string) {
	fmt.Fprintf(c.out, "%s\n%s\n\n", header, c.styles.body.Render(text))
}

func newConsoleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Interactive command loop against a roster file",
		Long: `Start an interactive loop that feeds each input line to the command
dispatcher, rendering published notices and edits to the terminal.

Commands: !servers [test|retest|match|upgrade ...], /copy, /quit`,
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

			return runConsole(cmd.Context(), eng, roster.RoomID)
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "Path to the roster JSON file")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

func runConsole(ctx context.Context, eng *engine, room models.RoomID) error {
	hint := eng.console.styles.hint
	fmt.Println(hint.Render(fmt.Sprintf("Room %s loaded. Try !servers; /copy copies the last notice; /quit exits.", room)))

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(hint.Render("> "))

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/copy":
			if err := clipboard.WriteAll(eng.console.LastNotice()); err != nil {
				fmt.Println(hint.Render("Copy failed: " + err.Error()))
			} else {
				fmt.Println(hint.Render("Copied last notice to clipboard."))
			}

			continue
		}

		if err := eng.bot.Dispatch(ctx, room, line); err != nil {
			if errors.Is(err, bot.ErrNotCommand) {
				fmt.Println(hint.Render("Unrecognized input. Try !servers, /copy or /quit."))
				continue
			}

			eng.log.Error().Err(err).Str("input", line).Msg("Command failed")
		}
	}
}
