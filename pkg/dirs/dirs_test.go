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

package dirs

import (
	"path/filepath"
	"testing"

	"github.com/raynetcare/raynetcare/pkg/assert"
)

func TestDefaultDirs(t *testing.T) {
	t.Setenv("HOME", "/home/carer")
	t.Setenv(envConfigHome, "")
	t.Setenv(envDataHome, "")
	t.Setenv(envCacheHome, "")
	Reload()
	defer Reload()

	assert.Equal(t, Home, "/home/carer", "home mismatch")
	assert.Equal(t, ConfigHome, filepath.Join("/home/carer", ".config"), "config home mismatch")
	assert.Equal(t, DataHome, filepath.Join("/home/carer", ".local", "share"), "data home mismatch")
	assert.Equal(t, CacheHome, filepath.Join("/home/carer", ".cache"), "cache home mismatch")
}

func TestCustomDirs(t *testing.T) {
	testCases := []struct {
		envKey   string
		envVal   string
		got      *string
		expected string
	}{
		{
			envKey:   envConfigHome,
			envVal:   "~/custom/config",
			got:      &ConfigHome,
			expected: "~/custom/config",
		},
		{
			envKey:   envDataHome,
			envVal:   "~/custom/data",
			got:      &DataHome,
			expected: "~/custom/data",
		},
		{
			envKey:   envCacheHome,
			envVal:   "~/custom/cache",
			got:      &CacheHome,
			expected: "~/custom/cache",
		},
	}

	for _, tc := range testCases {
		t.Setenv(tc.envKey, tc.envVal)

		Reload()

		assert.Equal(t, *tc.got, tc.expected, "result mismatch")
	}

	Reload()
}
