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

package fedtest

import (
	"context"
	"errors"
	"fmt"
)

var (
	errUnexpectedStatusCode = errors.New("unexpected status code from federation tester")
)

const (
	msgTimeout   = "test timed out"
	msgInternal  = "internal plugin error"
	msgNoVersion = "server not responding to version requests"
)

// Kind classifies a probe failure for logging and retest comparisons.
// The user-facing text lives in Error.Message.
type Kind int

const (
	KindUnreachable Kind = iota
	KindTLSOrIdentityMismatch
	KindProtocolCheckFailed
	KindNoVersionInfo
	KindTimeout
	KindInternal
)

// String returns a short label for the failure kind.
func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindTLSOrIdentityMismatch:
		return "tls_or_identity_mismatch"
	case KindProtocolCheckFailed:
		return "protocol_check_failed"
	case KindNoVersionInfo:
		return "no_version_info"
	case KindTimeout:
		return "timeout"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a classified probe failure. Message is the exact text shown
// to room members in summaries and retest responses.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// FailureMessage renders any probe error as user-facing text. Classified
// failures carry their own message, deadline expiry reads as a timeout,
// and anything else is reported as an internal error without leaking
// details into the room.
func FailureMessage(err error) string {
	var probeErr *Error
	if errors.As(err, &probeErr) {
		return probeErr.Message
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return msgTimeout
	}

	return msgInternal
}
