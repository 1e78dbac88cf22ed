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

package presenters

import (
	"github.com/raynetcare/raynetcare/pkg/server/database"
)

// ServiceUser is a result of PresentServiceUser
type ServiceUser struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Address     string `json:"address,omitempty"`
	KeyNotes    string `json:"key_notes,omitempty"`
}

// PresentServiceUser presents a service user
func PresentServiceUser(su database.ServiceUser) ServiceUser {
	return ServiceUser{
		ID:          su.ID,
		FullName:    su.FullName,
		DateOfBirth: FormatDate(su.DateOfBirth),
		Address:     su.Address,
		KeyNotes:    su.KeyNotes,
	}
}

// PresentServiceUsers presents service users
func PresentServiceUsers(sus []database.ServiceUser) []ServiceUser {
	ret := []ServiceUser{}

	for _, su := range sus {
		ret = append(ret, PresentServiceUser(su))
	}

	return ret
}

// User is a result of PresentUser
type User struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PresentUser presents a staff member
func PresentUser(user database.User) User {
	return User{
		UUID:     user.UUID,
		Username: user.Username,
		Role:     user.Role,
	}
}
