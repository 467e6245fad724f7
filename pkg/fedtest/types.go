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

import "encoding/json"

// Report is the subset of the federation tester response the probe
// needs. Field names follow the tester's JSON document.
type Report struct {
	FederationOK      bool                        `json:"FederationOK"`
	ConnectionErrors  map[string]json.RawMessage  `json:"ConnectionErrors"`
	ConnectionReports map[string]ConnectionReport `json:"ConnectionReports"`
	Version           VersionBlock                `json:"Version"`
}

// ConnectionReport describes the outcome of testing a single resolved
// address of the server.
type ConnectionReport struct {
	Checks Checks    `json:"Checks"`
	Keys   *KeyBlock `json:"Keys"`
}

// Checks carries the per-address pass/fail flags. A missing or null
// Checks object decodes to the zero value, which reads as every check
// having failed.
type Checks struct {
	AllChecksOK        bool `json:"AllChecksOK"`
	MatchingServerName bool `json:"MatchingServerName"`
	ValidCertificates  bool `json:"ValidCertificates"`
}

// KeyBlock holds the server identity the tester observed on the wire.
type KeyBlock struct {
	ServerName *string `json:"server_name"`
}

// VersionBlock is the software identity the server advertises.
type VersionBlock struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
