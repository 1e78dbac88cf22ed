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

package database

const (
	// RoleAdmin can see and write notes for every service user
	RoleAdmin = "ADMIN"
	// RoleManager can see and write notes for every service user
	RoleManager = "MANAGER"
	// RoleStaff can only see service users assigned to them
	RoleStaff = "STAFF"
)

const (
	// MaxVisitTypeLength is the longest visit type stored for a note
	MaxVisitTypeLength = 50
	// MaxClientUIDLength is the longest client uid stored for a note
	MaxClientUIDLength = 64
)

// IsValidRole reports whether the given role is known
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	default:
		return false
	}
}

// SeesAllServiceUsers reports whether the role grants access to every service user
func SeesAllServiceUsers(role string) bool {
	return role == RoleAdmin || role == RoleManager
}
