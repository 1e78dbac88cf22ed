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

package operations

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/assert"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"github.com/raynetcare/raynetcare/pkg/server/testutils"
)

func TestGetNote(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	author := testutils.SetupUserData(db, "alice", "password123", database.RoleStaff)
	colleague := testutils.SetupUserData(db, "bob", "password123", database.RoleStaff)
	outsider := testutils.SetupUserData(db, "carol", "password123", database.RoleStaff)
	manager := testutils.SetupUserData(db, "dave", "password123", database.RoleManager)

	su := testutils.SetupServiceUser(db, "Margaret Jones")
	testutils.AssignServiceUser(db, author, su)
	testutils.AssignServiceUser(db, colleague, su)

	note := testutils.SetupNote(db, author, su, "Ate breakfast", "uid-1")

	testCases := []struct {
		name       string
		user       database.User
		expectedOK bool
	}{
		{"author", author, true},
		{"assigned colleague", colleague, true},
		{"unassigned staff", outsider, false},
		{"manager", manager, true},
		{"guest", database.User{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := GetNote(db, note.ID, &tc.user)
			if err != nil {
				t.Fatal(errors.Wrap(err, "executing"))
			}

			assert.Equal(t, ok, tc.expectedOK, "ok mismatch")
			if tc.expectedOK {
				assert.Equal(t, got.ID, note.ID, "id mismatch")
				assert.Equal(t, got.CreatedBy.Username, "alice", "author mismatch")
			} else {
				assert.Equal(t, got.ID, 0, "note should be empty")
			}
		})
	}
}

func TestGetNote_nonexistent(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice", "password123", database.RoleAdmin)

	note, ok, err := GetNote(db, 42, &user)
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	assert.Equal(t, ok, false, "ok mismatch")
	assert.Equal(t, note.ID, 0, "note should be empty")
}
