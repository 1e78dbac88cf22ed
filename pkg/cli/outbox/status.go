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

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
)

// Connectivity is the ambient signal telling whether the network is reachable
type Connectivity interface {
	Online(ctx context.Context) bool
}

// StaticSignal is a Connectivity with a fixed answer
type StaticSignal bool

// Online returns the fixed answer
func (s StaticSignal) Online(ctx context.Context) bool {
	return bool(s)
}

// IsForcedOffline reports whether the forced offline flag is set to "1"
func IsForcedOffline(store Storage) bool {
	v, _, err := store.Get(consts.ForceOfflineKey)
	if err != nil {
		return false
	}

	return v == "1"
}

// SetForcedOffline persists the forced offline flag as "1" or "0"
func SetForcedOffline(store Storage, on bool) error {
	val := "0"
	if on {
		val = "1"
	}

	if err := store.Set(consts.ForceOfflineKey, val); err != nil {
		return errors.Wrap(err, "setting forced offline flag")
	}

	return nil
}

// IsActuallyOnline is true only when the connectivity signal is up and the
// forced offline flag is not set. The signal is not consulted while forced
// offline.
func IsActuallyOnline(ctx context.Context, signal Connectivity, store Storage) bool {
	if IsForcedOffline(store) {
		return false
	}

	return signal.Online(ctx)
}
