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
	"crypto/rand"
	"fmt"
	"io"

	"github.com/raynetcare/raynetcare/pkg/clock"
)

const (
	uidPrefix       = "offline-"
	uidSuffixLength = 8
	uidAlphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"

	// bytes at or above this are discarded so every character is equally likely
	uidMaxUnbiasedByte = 256 - 256%len(uidAlphabet)
)

// UID returns an identifier for a note created locally, before the server
// has seen it. It combines the clock's unix milliseconds with a random base36
// suffix, e.g. "offline-1741000000000-k3j9x0qa".
func UID(c clock.Clock) string {
	return fmt.Sprintf("%s%d-%s", uidPrefix, c.Now().UnixMilli(), randomSuffix(rand.Reader, uidSuffixLength))
}

func randomSuffix(r io.Reader, n int) string {
	out := make([]byte, 0, n)
	buf := make([]byte, n)

	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			// crypto/rand.Reader does not fail on supported platforms
			panic(err)
		}

		for _, b := range buf {
			if int(b) >= uidMaxUnbiasedByte {
				continue
			}
			out = append(out, uidAlphabet[int(b)%len(uidAlphabet)])
			if len(out) == n {
				break
			}
		}
	}

	return string(out)
}
