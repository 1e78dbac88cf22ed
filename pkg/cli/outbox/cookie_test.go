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
	"testing"

	"github.com/raynetcare/raynetcare/pkg/assert"
)

func TestGetCookie(t *testing.T) {
	testCases := []struct {
		cookies  string
		name     string
		expected string
	}{
		{
			cookies:  "",
			name:     "csrftoken",
			expected: "",
		},
		{
			cookies:  "csrftoken=abc",
			name:     "csrftoken",
			expected: "abc",
		},
		{
			cookies:  "sessionid=xyz; csrftoken=abc",
			name:     "csrftoken",
			expected: "abc",
		},
		{
			cookies:  "  csrftoken=abc  ;sessionid=xyz",
			name:     "csrftoken",
			expected: "abc",
		},
		{
			cookies:  "csrftoken=a%2Bb%3D%3D",
			name:     "csrftoken",
			expected: "a+b==",
		},
		{
			cookies:  "xcsrftoken=nope; csrftoken=yes",
			name:     "csrftoken",
			expected: "yes",
		},
		{
			cookies:  "csrftoken=first; csrftoken=second",
			name:     "csrftoken",
			expected: "first",
		},
		{
			cookies:  "sessionid=xyz",
			name:     "csrftoken",
			expected: "",
		},
		{
			cookies:  "csrftoken=",
			name:     "csrftoken",
			expected: "",
		},
		{
			cookies:  "csrftoken=100%",
			name:     "csrftoken",
			expected: "100%",
		},
	}

	for _, tc := range testCases {
		got := GetCookie(tc.cookies, tc.name)
		assert.Equal(t, got, tc.expected, "cookie mismatch for "+tc.cookies)
	}
}
