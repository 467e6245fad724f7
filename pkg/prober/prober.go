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

// Package prober fans one federation test out per homeserver and
// collects the outcomes into a result set keyed by server.
package prober

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/fedradar/pkg/fedtest"
	"github.com/carverauto/fedradar/pkg/logger"
	"github.com/carverauto/fedradar/pkg/software"
)

//go:generate mockgen -destination=mock_prober.go -package=prober github.com/carverauto/fedradar/pkg/prober ServerTester

// ServerTester runs a single federation test against a server name.
type ServerTester interface {
	Probe(ctx context.Context, server string) (software.Info, error)
}

// Prober runs batches of federation tests with a per-probe deadline.
type Prober struct {
	tester  ServerTester
	timeout time.Duration
	logger  logger.Logger
}

// New creates a prober. Every probe gets its own timeout carved from the
// caller's context; one slow server never delays the rest of the batch.
func New(tester ServerTester, timeout time.Duration, log logger.Logger) *Prober {
	return &Prober{
		tester:  tester,
		timeout: timeout,
		logger:  log,
	}
}

// ProbeAll tests every server in the roster concurrently and returns the
// collected results once all probes have finished. Individual probe
// failures are recorded as data; ProbeAll itself never fails and never
// short-circuits the batch.
func (p *Prober) ProbeAll(ctx context.Context, roster *Roster) *Results {
	results := NewResults(roster)

	g, ctx := errgroup.WithContext(ctx)

	for _, server := range roster.Order {
		g.Go(func() error {
			info, err := p.ProbeOne(ctx, server)
			if err != nil {
				message := fedtest.FailureMessage(err)
				p.logger.Debug().Str("server", server).Str("error", message).Msg("Probe failed")
				results.StoreError(server, message)

				return nil
			}

			p.logger.Debug().Str("server", server).Str("version", info.String()).Msg("Probe succeeded")
			results.StoreVersion(server, info)

			return nil
		})
	}

	_ = g.Wait()

	return results
}

// ProbeOne tests a single server under the batch timeout policy. Used
// for ad-hoc checks and re-probes so both paths share one deadline rule.
func (p *Prober) ProbeOne(ctx context.Context, server string) (software.Info, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.tester.Probe(ctx, server)
}
