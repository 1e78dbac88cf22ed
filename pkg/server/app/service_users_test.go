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
	"time"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/assert"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"github.com/raynetcare/raynetcare/pkg/server/testutils"
)

func TestCreateServiceUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		dob := time.Date(1941, time.June, 2, 0, 0, 0, 0, time.UTC)
		su, err := a.CreateServiceUser(ServiceUserParams{
			FullName:    " Margaret Jones ",
			DateOfBirth: &dob,
			Address:     "12 Mill Lane",
			KeyNotes:    "Hard of hearing",
		})
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		var record database.ServiceUser
		testutils.MustExec(t, db.Where("id = ?", su.ID).First(&record), "finding service user")

		assert.Equal(t, record.FullName, "Margaret Jones", "full name mismatch")
		assert.Equal(t, record.Address, "12 Mill Lane", "address mismatch")
		assert.Equal(t, record.KeyNotes, "Hard of hearing", "key notes mismatch")
		assert.Equal(t, record.DateOfBirth.Equal(dob), true, "date of birth mismatch")
	})

	t.Run("empty name", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		a := NewTest()
		a.DB = db
		_, err := a.CreateServiceUser(ServiceUserParams{FullName: "  "})

		assert.Equal(t, err, ErrFullNameRequired, "error mismatch")
	})
}

func TestVisibleServiceUsers(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	admin := testutils.SetupUserData(db, "admin", "pass1234", database.RoleAdmin)
	manager := testutils.SetupUserData(db, "manager", "pass1234", database.RoleManager)
	staff := testutils.SetupUserData(db, "staff", "pass1234", database.RoleStaff)
	other := testutils.SetupUserData(db, "other", "pass1234", database.RoleStaff)

	su1 := testutils.SetupServiceUser(db, "Margaret Jones")
	su2 := testutils.SetupServiceUser(db, "Arthur Smith")
	su3 := testutils.SetupServiceUser(db, "Edith Brown")
	testutils.AssignServiceUser(db, staff, su1)
	testutils.AssignServiceUser(db, staff, su3)
	testutils.AssignServiceUser(db, other, su2)

	a := NewTest()
	a.DB = db

	names := func(sus []database.ServiceUser) []string {
		ret := []string{}
		for _, su := range sus {
			ret = append(ret, su.FullName)
		}
		return ret
	}

	testCases := []struct {
		name     string
		user     database.User
		query    string
		expected []string
	}{
		{name: "admin sees all", user: admin, expected: []string{"Arthur Smith", "Edith Brown", "Margaret Jones"}},
		{name: "manager sees all", user: manager, expected: []string{"Arthur Smith", "Edith Brown", "Margaret Jones"}},
		{name: "staff sees assigned", user: staff, expected: []string{"Edith Brown", "Margaret Jones"}},
		{name: "staff search", user: staff, query: "marg", expected: []string{"Margaret Jones"}},
		{name: "staff search outside assignment", user: staff, query: "arthur", expected: []string{}},
		{name: "admin search is case insensitive", user: admin, query: "SMITH", expected: []string{"Arthur Smith"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.VisibleServiceUsers(tc.user, tc.query)
			if err != nil {
				t.Fatal(err)
			}

			assert.DeepEqual(t, names(got), tc.expected, "service users mismatch")
		})
	}
}

func TestCanAccessServiceUser(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	manager := testutils.SetupUserData(db, "manager", "pass1234", database.RoleManager)
	staff := testutils.SetupUserData(db, "staff", "pass1234", database.RoleStaff)
	assigned := testutils.SetupServiceUser(db, "Margaret Jones")
	unassigned := testutils.SetupServiceUser(db, "Arthur Smith")
	testutils.AssignServiceUser(db, staff, assigned)

	a := NewTest()
	a.DB = db

	testCases := []struct {
		name          string
		user          database.User
		serviceUserID int
		expected      bool
	}{
		{name: "staff assigned", user: staff, serviceUserID: assigned.ID, expected: true},
		{name: "staff unassigned", user: staff, serviceUserID: unassigned.ID, expected: false},
		{name: "manager unassigned", user: manager, serviceUserID: unassigned.ID, expected: true},
		{name: "manager missing", user: manager, serviceUserID: 9999, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.CanAccessServiceUser(tc.user, tc.serviceUserID)
			if err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, got, tc.expected, "access mismatch")
		})
	}
}

func TestAssignServiceUser(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	staff := testutils.SetupUserData(db, "staff", "pass1234", database.RoleStaff)
	su := testutils.SetupServiceUser(db, "Margaret Jones")

	a := NewTest()
	a.DB = db

	if err := a.AssignServiceUser(staff, su.ID); err != nil {
		t.Fatal(errors.Wrap(err, "assigning"))
	}
	ok, err := a.CanAccessServiceUser(staff, su.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ok, true, "should be accessible after assignment")

	if err := a.UnassignServiceUser(staff, su.ID); err != nil {
		t.Fatal(errors.Wrap(err, "unassigning"))
	}
	ok, err = a.CanAccessServiceUser(staff, su.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ok, false, "should not be accessible after unassignment")

	err = a.AssignServiceUser(staff, 9999)
	assert.Equal(t, err, ErrNotFound, "error mismatch")
}
