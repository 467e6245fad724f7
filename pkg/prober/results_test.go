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

package prober

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fedradar/pkg/models"
	"github.com/carverauto/fedradar/pkg/software"
)

func seededResults(t *testing.T) *Results {
	t.Helper()

	roster := NewRoster()
	roster.Add("@alice:a.example.org")
	roster.Add("@carol:a.example.org")
	roster.Add("@bob:b.example.org")

	results := NewResults(roster)
	results.StoreVersion("a.example.org", software.MustParse("Synapse", "1.65.0"))
	results.StoreError("b.example.org", "Server couldn't be reached")

	return results
}

func TestTake_StateMachine(t *testing.T) {
	results := seededResults(t)

	_, _, state := results.Take("missing.example.org")
	assert.Equal(t, TakeNotMember, state)

	info, _, state := results.Take("a.example.org")
	require.Equal(t, TakeHadVersion, state)
	assert.Equal(t, "Synapse 1.65.0", info.String())

	_, _, state = results.Take("a.example.org")
	assert.Equal(t, TakeInFlight, state)

	results.StoreVersion("a.example.org", software.MustParse("Synapse", "1.66.0"))

	info, _, state = results.Take("a.example.org")
	require.Equal(t, TakeHadVersion, state)
	assert.Equal(t, "Synapse 1.66.0", info.String())

	_, message, state := results.Take("b.example.org")
	require.Equal(t, TakeHadError, state)
	assert.Equal(t, "Server couldn't be reached", message)

	_, _, state = results.Take("b.example.org")
	assert.Equal(t, TakeInFlight, state)
}

func TestStore_DisplacesPreviousOutcome(t *testing.T) {
	results := seededResults(t)

	results.StoreError("a.example.org", "test timed out")

	view := results.Snapshot()
	_, hasVersion := view.Versions["a.example.org"]
	assert.False(t, hasVersion)
	assert.Equal(t, "test timed out", view.Errors["a.example.org"])

	results.StoreVersion("b.example.org", software.MustParse("Dendrite", "0.9.3"))

	view = results.Snapshot()
	_, hasError := view.Errors["b.example.org"]
	assert.False(t, hasError)
	assert.Equal(t, "Dendrite 0.9.3", view.Versions["b.example.org"].String())
}

func TestSnapshot_Independence(t *testing.T) {
	results := seededResults(t)

	view := results.Snapshot()

	results.StoreVersion("a.example.org", software.MustParse("Synapse", "1.66.0"))
	assert.Equal(t, "Synapse 1.65.0", view.Versions["a.example.org"].String())

	view.Servers["a.example.org"][0] = "@mallory:a.example.org"
	view.Order[0] = "tampered.example.org"
	delete(view.Errors, "b.example.org")

	fresh := results.Snapshot()
	assert.Equal(t, models.UserID("@alice:a.example.org"), fresh.Servers["a.example.org"][0])
	assert.Equal(t, "a.example.org", fresh.Order[0])
	assert.Equal(t, "Server couldn't be reached", fresh.Errors["b.example.org"])
}

func TestEventID_RoundTrip(t *testing.T) {
	results := seededResults(t)

	assert.Empty(t, results.EventID())

	results.SetEventID("$summary")
	assert.Equal(t, models.EventID("$summary"), results.EventID())
	assert.Equal(t, models.EventID("$summary"), results.Snapshot().EventID)
}

func TestPublishLocked_Serializes(t *testing.T) {
	results := seededResults(t)

	const workers = 50

	counter := 0

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results.PublishLocked(func() {
				counter++
			})
		}()
	}

	wg.Wait()
	assert.Equal(t, workers, counter)
}
