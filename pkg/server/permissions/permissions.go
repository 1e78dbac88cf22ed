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

// Package permissions decides what a staff member may read
package permissions

import (
	"github.com/raynetcare/raynetcare/pkg/server/database"
)

// ViewServiceUser checks if the given user can view the service user.
// Staff without a managing role need their assignments preloaded.
func ViewServiceUser(user *database.User, serviceUserID int) bool {
	if user == nil || user.ID == 0 {
		return false
	}
	if serviceUserID == 0 {
		return false
	}
	if database.SeesAllServiceUsers(user.Role) {
		return true
	}

	for _, su := range user.ServiceUsers {
		if su.ID == serviceUserID {
			return true
		}
	}

	return false
}

// ViewNote checks if the given user can view the given note
func ViewNote(user *database.User, note database.CommunicationNote) bool {
	if note.ID == 0 {
		return false
	}

	return ViewServiceUser(user, note.ServiceUserID)
}
