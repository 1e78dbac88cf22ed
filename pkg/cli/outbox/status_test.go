/* Copyright 2025 Dnote Authors
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

package outbox

import (
	"context"
	"testing"

	"github.com/raynetcare/raynetcare/pkg/assert"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
)

// countingSignal records how many times it was consulted
type countingSignal struct {
	online bool
	calls  int
}

func (s *countingSignal) Online(ctx context.Context) bool {
	s.calls++
	return s.online
}

func TestIsActuallyOnline(t *testing.T) {
	testCases := []struct {
		flag     *string
		signal   bool
		expected bool
	}{
		{flag: nil, signal: true, expected: true},
		{flag: nil, signal: false, expected: false},
		{flag: strPtr("0"), signal: true, expected: true},
		{flag: strPtr("0"), signal: false, expected: false},
		{flag: strPtr("1"), signal: true, expected: false},
		{flag: strPtr("1"), signal: false, expected: false},
		{flag: strPtr("true"), signal: true, expected: true},
	}

	for _, tc := range testCases {
		store := NewMemoryStorage()
		if tc.flag != nil {
			if err := store.Set(consts.ForceOfflineKey, *tc.flag); err != nil {
				t.Fatal(err)
			}
		}

		got := IsActuallyOnline(context.Background(), StaticSignal(tc.signal), store)
		assert.Equal(t, got, tc.expected, "online mismatch")
	}
}

func TestIsActuallyOnlineForcedSkipsSignal(t *testing.T) {
	store := NewMemoryStorage()
	if err := SetForcedOffline(store, true); err != nil {
		t.Fatal(err)
	}

	signal := &countingSignal{online: true}
	got := IsActuallyOnline(context.Background(), signal, store)

	assert.Equal(t, got, false, "online mismatch")
	assert.Equal(t, signal.calls, 0, "signal was consulted")
}

func TestSetForcedOffline(t *testing.T) {
	store := NewMemoryStorage()

	if err := SetForcedOffline(store, true); err != nil {
		t.Fatal(err)
	}
	v, _, _ := store.Get(consts.ForceOfflineKey)
	assert.Equal(t, v, "1", "stored value mismatch")
	assert.Equal(t, IsForcedOffline(store), true, "flag mismatch")

	if err := SetForcedOffline(store, false); err != nil {
		t.Fatal(err)
	}
	v, _, _ = store.Get(consts.ForceOfflineKey)
	assert.Equal(t, v, "0", "stored value mismatch")
	assert.Equal(t, IsForcedOffline(store), false, "flag mismatch")
}

func TestIsForcedOfflineStoreError(t *testing.T) {
	assert.Equal(t, IsForcedOffline(failingStorage{}), false, "flag mismatch")
}

func strPtr(s string) *string {
	return &s
}
