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

package app

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/assert"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"github.com/raynetcare/raynetcare/pkg/server/testutils"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateStaff(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		if _, err := a.CreateStaff("alice", "pass1234", database.RoleManager); err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		var userCount int64
		var userRecord database.User
		testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting user")
		testutils.MustExec(t, db.First(&userRecord), "finding user")

		assert.Equal(t, userCount, int64(1), "user count mismatch")
		assert.Equal(t, userRecord.Username, "alice", "username mismatch")
		assert.Equal(t, userRecord.Role, database.RoleManager, "role mismatch")
		assert.NotEqual(t, userRecord.UUID, "", "uuid should be set")

		passwordErr := bcrypt.CompareHashAndPassword([]byte(userRecord.Password), []byte("pass1234"))
		assert.Equal(t, passwordErr, nil, "Password mismatch")
	})

	t.Run("default role", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		user, err := a.CreateStaff("  bob ", "pass1234", "")
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, user.Username, "bob", "username should be trimmed")
		assert.Equal(t, user.Role, database.RoleStaff, "role mismatch")
	})

	t.Run("duplicate username", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		testutils.SetupUserData(db, "alice", "somepassword", database.RoleStaff)

		a := NewTest()
		a.DB = db
		_, err := a.CreateStaff("alice", "newpassword", database.RoleStaff)

		assert.Equal(t, err, ErrDuplicateUsername, "error mismatch")

		var userCount int64
		testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting user")
		assert.Equal(t, userCount, int64(1), "user count mismatch")
	})

	testCases := []struct {
		name        string
		username    string
		password    string
		role        string
		expectedErr error
	}{
		{name: "empty username", username: " ", password: "pass1234", role: database.RoleStaff, expectedErr: ErrUsernameRequired},
		{name: "short password", username: "alice", password: "pass", role: database.RoleStaff, expectedErr: ErrPasswordTooShort},
		{name: "unknown role", username: "alice", password: "pass1234", role: "OWNER", expectedErr: ErrInvalidRole},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutils.InitMemoryDB(t)

			a := NewTest()
			a.DB = db
			_, err := a.CreateStaff(tc.username, tc.password, tc.role)

			assert.Equal(t, errors.Cause(err), tc.expectedErr, "error mismatch")
		})
	}
}

func TestAuthenticate(t *testing.T) {
	testCases := []struct {
		username    string
		password    string
		expectedErr error
	}{
		{username: "alice", password: "pass1234", expectedErr: nil},
		{username: "alice", password: "wrongpassword", expectedErr: ErrLoginInvalid},
		{username: "bob", password: "pass1234", expectedErr: ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.username+"/"+tc.password, func(t *testing.T) {
			db := testutils.InitMemoryDB(t)
			user := testutils.SetupUserData(db, "alice", "pass1234", database.RoleStaff)

			a := NewTest()
			a.DB = db
			got, err := a.Authenticate(tc.username, tc.password)

			assert.Equal(t, err, tc.expectedErr, "error mismatch")
			if tc.expectedErr == nil {
				assert.Equal(t, got.ID, user.ID, "user mismatch")
			}
		})
	}
}

func TestSignIn(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "alice", "pass1234", database.RoleStaff)

	a := NewTest()
	a.DB = db
	session, err := a.SignIn(&user)
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	var userRecord database.User
	testutils.MustExec(t, db.Where("id = ?", user.ID).First(&userRecord), "finding user")

	assert.NotEqual(t, session.Key, "", "session key should be set")
	assert.Equal(t, session.UserID, user.ID, "session user mismatch")
	assert.Equal(t, session.ExpiresAt.Equal(a.Clock.Now().Add(DefaultSessionTTL)), true, "expiry mismatch")
	assert.Equal(t, userRecord.LastLoginAt.Equal(a.Clock.Now()), true, "last login mismatch")
}

func TestUpdateUserPassword(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "alice", "oldpassword", database.RoleStaff)
	testutils.SetupSession(db, user)

	if err := UpdateUserPassword(db, &user, "newpassword123"); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	var userRecord database.User
	var sessionCount int64
	testutils.MustExec(t, db.Where("id = ?", user.ID).First(&userRecord), "finding user")
	testutils.MustExec(t, db.Model(&database.Session{}).Count(&sessionCount), "counting sessions")

	assert.Equal(t, bcrypt.CompareHashAndPassword([]byte(userRecord.Password), []byte("newpassword123")), nil, "new password should match")
	assert.Equal(t, sessionCount, int64(0), "sessions should be deleted")

	err := UpdateUserPassword(db, &user, "short")
	assert.Equal(t, err, ErrPasswordTooShort, "error mismatch")
}

func TestRemoveUser(t *testing.T) {
	t.Run("without notes", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		user := testutils.SetupUserData(db, "alice", "pass1234", database.RoleStaff)
		su := testutils.SetupServiceUser(db, "Margaret Jones")
		testutils.AssignServiceUser(db, user, su)
		testutils.SetupSession(db, user)

		a := NewTest()
		a.DB = db
		if err := a.RemoveUser("alice"); err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		var userCount, sessionCount, serviceUserCount int64
		testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting users")
		testutils.MustExec(t, db.Model(&database.Session{}).Count(&sessionCount), "counting sessions")
		testutils.MustExec(t, db.Model(&database.ServiceUser{}).Count(&serviceUserCount), "counting service users")

		assert.Equal(t, userCount, int64(0), "user count mismatch")
		assert.Equal(t, sessionCount, int64(0), "session count mismatch")
		assert.Equal(t, serviceUserCount, int64(1), "service user should be kept")
	})

	t.Run("with notes", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		user := testutils.SetupUserData(db, "alice", "pass1234", database.RoleStaff)
		su := testutils.SetupServiceUser(db, "Margaret Jones")
		testutils.SetupNote(db, user, su, "Morning visit", "uid-1")

		a := NewTest()
		a.DB = db
		err := a.RemoveUser("alice")

		assert.Equal(t, errors.Cause(err), ErrUserHasExistingNotes, "error mismatch")
	})

	t.Run("not found", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		err := a.RemoveUser("nobody")

		assert.Equal(t, err, ErrNotFound, "error mismatch")
	})
}
