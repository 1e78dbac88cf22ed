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

package cmd

import (
	"strings"
	"testing"

	"github.com/raynetcare/raynetcare/pkg/assert"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"github.com/raynetcare/raynetcare/pkg/server/testutils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T, path string) *gorm.DB {
	db, err := initDB(path, "")
	if err != nil {
		t.Fatal(err)
	}

	return db
}

func TestStaffCreateCmd(t *testing.T) {
	tmpDB := t.TempDir() + "/test.db"

	staffCreateCmd([]string{"--dbPath", tmpDB, "--username", "alice", "--password", "password123", "--role", database.RoleManager})

	db := openTestDB(t, tmpDB)
	defer database.Close(db)

	var count int64
	testutils.MustExec(t, db.Model(&database.User{}).Count(&count), "counting users")
	assert.Equal(t, count, int64(1), "should have 1 user")

	var user database.User
	testutils.MustExec(t, db.Where("username = ?", "alice").First(&user), "finding user")
	assert.Equal(t, user.Role, database.RoleManager, "role mismatch")
}

func TestStaffRemoveCmd(t *testing.T) {
	tmpDB := t.TempDir() + "/test.db"

	db := openTestDB(t, tmpDB)
	testutils.SetupUserData(db, "alice", "password123", database.RoleStaff)
	database.Close(db)

	staffRemoveCmd([]string{"--dbPath", tmpDB, "--username", "alice"}, strings.NewReader("y\n"))

	db2 := openTestDB(t, tmpDB)
	defer database.Close(db2)

	var count int64
	testutils.MustExec(t, db2.Model(&database.User{}).Count(&count), "counting users")
	assert.Equal(t, count, int64(0), "should have 0 users")
}

func TestStaffRemoveCmd_Aborted(t *testing.T) {
	tmpDB := t.TempDir() + "/test.db"

	db := openTestDB(t, tmpDB)
	testutils.SetupUserData(db, "alice", "password123", database.RoleStaff)
	database.Close(db)

	staffRemoveCmd([]string{"--dbPath", tmpDB, "--username", "alice"}, strings.NewReader("n\n"))

	db2 := openTestDB(t, tmpDB)
	defer database.Close(db2)

	var count int64
	testutils.MustExec(t, db2.Model(&database.User{}).Count(&count), "counting users")
	assert.Equal(t, count, int64(1), "user should be kept")
}

func TestStaffResetPasswordCmd(t *testing.T) {
	tmpDB := t.TempDir() + "/test.db"

	db := openTestDB(t, tmpDB)
	user := testutils.SetupUserData(db, "alice", "oldpassword123", database.RoleStaff)
	testutils.SetupSession(db, user)
	oldPasswordHash := user.Password
	database.Close(db)

	staffResetPasswordCmd([]string{"--dbPath", tmpDB, "--username", "alice", "--password", "newpassword123"})

	db2 := openTestDB(t, tmpDB)
	defer database.Close(db2)

	var updatedUser database.User
	testutils.MustExec(t, db2.Where("username = ?", "alice").First(&updatedUser), "finding user")

	assert.NotEqual(t, updatedUser.Password, oldPasswordHash, "password hash should be different")

	err := bcrypt.CompareHashAndPassword([]byte(updatedUser.Password), []byte("newpassword123"))
	assert.Equal(t, err, nil, "new password should match")

	var sessionCount int64
	testutils.MustExec(t, db2.Model(&database.Session{}).Count(&sessionCount), "counting sessions")
	assert.Equal(t, sessionCount, int64(0), "sessions should be revoked")
}

func TestStaffAssignCmd(t *testing.T) {
	tmpDB := t.TempDir() + "/test.db"

	db := openTestDB(t, tmpDB)
	user := testutils.SetupUserData(db, "alice", "password123", database.RoleStaff)
	su := testutils.SetupServiceUser(db, "Margaret Jones")
	database.Close(db)

	staffAssignCmd([]string{"--dbPath", tmpDB, "--username", "alice", "--serviceUserID", "1"})

	db2 := openTestDB(t, tmpDB)

	var got database.User
	testutils.MustExec(t, db2.Preload("ServiceUsers").Where("id = ?", user.ID).First(&got), "finding user")
	assert.Equal(t, len(got.ServiceUsers), 1, "assignment count mismatch")
	assert.Equal(t, got.ServiceUsers[0].ID, su.ID, "assigned service user mismatch")
	database.Close(db2)

	staffAssignCmd([]string{"--dbPath", tmpDB, "--username", "alice", "--serviceUserID", "1", "--remove"})

	db3 := openTestDB(t, tmpDB)
	defer database.Close(db3)

	var got2 database.User
	testutils.MustExec(t, db3.Preload("ServiceUsers").Where("id = ?", user.ID).First(&got2), "finding user")
	assert.Equal(t, len(got2.ServiceUsers), 0, "assignment should be removed")
}
