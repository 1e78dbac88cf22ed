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

package ls

import (
	"testing"
	"time"

	"github.com/raynetcare/raynetcare/pkg/assert"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
)

func TestGetLastSyncAt(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		set      bool
		expected time.Time
	}{
		{name: "never synced", expected: time.Time{}},
		{name: "initial value", value: "0", set: true, expected: time.Time{}},
		{name: "garbage", value: "yesterday", set: true, expected: time.Time{}},
		{name: "synced", value: "1741000000", set: true, expected: time.Unix(1741000000, 0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.InitTestCtx(t)
			if tc.set {
				if err := ctx.Store().Set(consts.LastSyncAt, tc.value); err != nil {
					t.Fatal(err)
				}
			}

			got, err := getLastSyncAt(ctx)
			if err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, got.Equal(tc.expected), true, "last sync time mismatch")
		})
	}
}
