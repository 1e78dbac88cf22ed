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
	"net/url"
	"strings"
)

// GetCookie returns the decoded value of the named cookie in a document style
// cookie string such as "sessionid=abc; csrftoken=x%2By". It returns an empty
// string if the cookie is missing.
func GetCookie(cookies, name string) string {
	if cookies == "" {
		return ""
	}

	prefix := name + "="
	for _, c := range strings.Split(cookies, ";") {
		c = strings.TrimSpace(c)
		if !strings.HasPrefix(c, prefix) {
			continue
		}

		raw := c[len(prefix):]
		val, err := url.PathUnescape(raw)
		if err != nil {
			return raw
		}

		return val
	}

	return ""
}
