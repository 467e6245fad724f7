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

// Package fedtest probes homeservers through a federation tester API and
// turns the tester's report into either a parsed software version or a
// classified, human-readable failure.
package fedtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/idna"

	"github.com/carverauto/fedradar/pkg/logger"
	"github.com/carverauto/fedradar/pkg/software"
)

const serverPlaceholder = "{server}"

// Client queries a federation tester endpoint for homeserver reports.
type Client struct {
	endpoint   string
	httpClient HTTPClient
	logger     logger.Logger
}

// NewClient creates a probe client. The endpoint is a URL template
// containing a {server} placeholder. A nil httpClient falls back to a
// plain http.Client; callers control per-probe deadlines through the
// request context.
func NewClient(endpoint string, httpClient HTTPClient, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     log,
	}
}

// Probe runs a federation test against the given server name and returns
// the software the server advertises. Failures that the tester can
// explain come back as *Error with a user-facing message; transport and
// decoding problems come back as plain errors.
func (c *Client) Probe(ctx context.Context, server string) (software.Info, error) {
	c.logger.Debug().Str("server", server).Msg("Testing server")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.reportURL(server), http.NoBody)
	if err != nil {
		return software.Info{}, fmt.Errorf("failed to create federation tester request for %s: %w", server, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return software.Info{}, &Error{Kind: KindTimeout, Message: msgTimeout}
		}

		return software.Info{}, fmt.Errorf("federation tester request for %s failed: %w", server, err)
	}
	defer c.closeResponse(resp)

	if resp.StatusCode != http.StatusOK {
		return software.Info{}, fmt.Errorf("%w: %d", errUnexpectedStatusCode, resp.StatusCode)
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return software.Info{}, fmt.Errorf("failed to decode federation tester report for %s: %w", server, err)
	}

	return c.evaluate(server, &report)
}

// evaluate turns a decoded report into a version or a classified error.
func (c *Client) evaluate(server string, report *Report) (software.Info, error) {
	name, version := report.Version.Name, report.Version.Version

	if !report.FederationOK {
		message, kind := classifyFailure(server, report)

		// A server can fail federation checks while still advertising
		// its software; surface both halves to the room.
		if name != "" && version != "" {
			info, err := software.Parse(name, version)
			if err != nil {
				return software.Info{}, fmt.Errorf("failed to parse advertised version for %s: %w", server, err)
			}

			return software.Info{}, &Error{Kind: kind, Message: message + " // " + info.String()}
		}

		return software.Info{}, &Error{Kind: kind, Message: message}
	}

	if name == "" || version == "" {
		return software.Info{}, &Error{Kind: KindNoVersionInfo, Message: msgNoVersion}
	}

	return software.Parse(name, version)
}

func (c *Client) reportURL(server string) string {
	return strings.ReplaceAll(c.endpoint, serverPlaceholder, url.QueryEscape(normalizeServerName(server)))
}

func (c *Client) closeResponse(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to close response body")
		}
	}
}

// normalizeServerName converts an internationalized hostname to its
// punycode form, keeping any port suffix. Names that cannot be converted
// pass through unchanged and the tester reports on them as given.
func normalizeServerName(server string) string {
	host, port := server, ""
	if h, p, err := net.SplitHostPort(server); err == nil {
		host, port = h, p
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return server
	}

	if port != "" {
		return net.JoinHostPort(ascii, port)
	}

	return ascii
}

// isIPv6 reports whether a resolved address string from the tester is an
// IPv6 endpoint. Bracketed literals and bare addresses with more than
// one colon both count.
func isIPv6(addr string) bool {
	return strings.HasPrefix(addr, "[") || strings.Count(addr, ":") > 1
}

type addressError struct {
	addr    string
	message string
}

// classifyFailure condenses a failing report into one message and a
// failure kind. Addresses are walked in sorted order so the same report
// always renders the same text.
func classifyFailure(server string, report *Report) (string, Kind) {
	var (
		ipv4Failures, ipv6Failures int
		ipv4Reports, ipv6Reports   int
		ipv4OK, ipv6OK             int

		failedAddresses int
		distinctErrors  []addressError
		identityFailure bool
	)

	seen := make(map[string]struct{})

	for _, addr := range slices.Sorted(maps.Keys(report.ConnectionErrors)) {
		if isIPv6(addr) {
			ipv6Failures++
		} else {
			ipv4Failures++
		}
	}

	for _, addr := range slices.Sorted(maps.Keys(report.ConnectionReports)) {
		if isIPv6(addr) {
			ipv6Reports++
		} else {
			ipv4Reports++
		}

		conn := report.ConnectionReports[addr]

		addErr := func(message string) {
			failedAddresses++

			if _, ok := seen[message]; !ok {
				seen[message] = struct{}{}
				distinctErrors = append(distinctErrors, addressError{addr: addr, message: message})
			}
		}

		switch {
		case !conn.Checks.MatchingServerName:
			got := "undefined"
			if conn.Keys != nil && conn.Keys.ServerName != nil {
				got = *conn.Keys.ServerName
			}

			addErr(fmt.Sprintf("mismatching server name, tested: %s, got: %s", server, got))

			identityFailure = true
		case !conn.Checks.ValidCertificates:
			addErr("invalid TLS certificates")

			identityFailure = true
		case !conn.Checks.AllChecksOK:
			addErr("some checks failed")
		default:
			if isIPv6(addr) {
				ipv6OK++
			} else {
				ipv4OK++
			}
		}
	}

	totalIPv4 := ipv4Failures + ipv4Reports
	totalIPv6 := ipv6Failures + ipv6Reports
	total := totalIPv4 + totalIPv6
	allFailed := ipv4Failures+ipv6Failures == total

	var msgs []string

	if allFailed {
		if total == 1 {
			msgs = append(msgs, "Server couldn't be reached")
		} else {
			msgs = append(msgs, "Server couldn't be reached on any address")
		}
	} else {
		if ipv4Failures > 0 {
			if totalIPv4 > 1 {
				msgs = append(msgs, fmt.Sprintf("%d/%d IPv4 addresses couldn't be reached", ipv4Failures, totalIPv4))
			} else {
				msgs = append(msgs, "IPv4 address couldn't be reached")
			}
		}

		if ipv6Failures > 0 {
			if totalIPv6 > 1 {
				msgs = append(msgs, fmt.Sprintf("%d/%d IPv6 addresses couldn't be reached", ipv6Failures, totalIPv6))
			} else {
				msgs = append(msgs, "IPv6 address couldn't be reached")
			}
		}
	}

	if len(distinctErrors) > 0 {
		plural := ""
		if failedAddresses > 1 {
			plural = "es"
		}

		var errorsMsg string
		if len(distinctErrors) == 1 {
			errorsMsg = distinctErrors[0].message
		} else {
			parts := make([]string, 0, len(distinctErrors))
			for _, e := range distinctErrors {
				parts = append(parts, e.addr+": "+e.message)
			}

			errorsMsg = strings.Join(parts, ", ")
		}

		msgs = append(msgs, fmt.Sprintf("%d/%d address%s failed the test: %s", failedAddresses, total, plural, errorsMsg))
	}

	suffix := ""

	if ipv4OK > 0 {
		if totalIPv4 > 1 {
			suffix = fmt.Sprintf("%d/%d IPv4 addresses are OK", ipv4OK, totalIPv4)
		} else {
			suffix = "IPv4 is OK"
		}
	}

	if ipv6OK > 0 {
		ok := "IPv6 is OK"
		if totalIPv6 > 1 {
			ok = fmt.Sprintf("%d/%d IPv6 addresses are OK", ipv6OK, totalIPv6)
		}

		if suffix != "" {
			suffix += " and " + ok
		} else {
			suffix = ok
		}
	}

	if suffix != "" {
		suffix = " (" + suffix + ")"
	}

	var kind Kind

	switch {
	case allFailed:
		kind = KindUnreachable
	case identityFailure:
		kind = KindTLSOrIdentityMismatch
	default:
		kind = KindProtocolCheckFailed
	}

	switch {
	case len(msgs) > 1:
		return strings.Join(msgs[:len(msgs)-1], ", ") + " and " + msgs[len(msgs)-1] + suffix, kind
	case len(msgs) == 1:
		return msgs[0] + suffix, kind
	case total == 0:
		return "No server addresses found", kind
	default:
		return "federation not OK (unknown error)", kind
	}
}
