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

//go:generate mockgen -destination=mock_fedtest.go -package=fedtest github.com/carverauto/fedradar/pkg/fedtest HTTPClient

import (
	"net/http"
)

// HTTPClient abstracts the HTTP client used to reach the federation
// tester so tests can provide canned responses.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
