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
	"errors"
	"strings"
	"time"

	pkgErrors "github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"gorm.io/gorm"
)

// ServiceUserParams are the fields of a new service user
type ServiceUserParams struct {
	FullName    string
	DateOfBirth *time.Time
	Address     string
	KeyNotes    string
}

// CreateServiceUser creates a service user
func (a *App) CreateServiceUser(p ServiceUserParams) (database.ServiceUser, error) {
	name := strings.TrimSpace(p.FullName)
	if name == "" {
		return database.ServiceUser{}, ErrFullNameRequired
	}

	su := database.ServiceUser{
		FullName:    name,
		DateOfBirth: p.DateOfBirth,
		Address:     strings.TrimSpace(p.Address),
		KeyNotes:    strings.TrimSpace(p.KeyNotes),
	}
	if err := a.DB.Create(&su).Error; err != nil {
		return database.ServiceUser{}, pkgErrors.Wrap(err, "inserting service user")
	}

	return su, nil
}

// GetServiceUser finds a service user by id
func (a *App) GetServiceUser(id int) (database.ServiceUser, error) {
	var su database.ServiceUser
	err := a.DB.Where("id = ?", id).First(&su).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return su, ErrNotFound
	} else if err != nil {
		return su, pkgErrors.Wrap(err, "finding service user")
	}

	return su, nil
}

// AssignServiceUser lets a staff member see and write notes for the service user
func (a *App) AssignServiceUser(user database.User, serviceUserID int) error {
	su, err := a.GetServiceUser(serviceUserID)
	if err != nil {
		return err
	}

	if err := a.DB.Model(&user).Association("ServiceUsers").Append(&su); err != nil {
		return pkgErrors.Wrap(err, "appending assignment")
	}

	return nil
}

// UnassignServiceUser removes the service user from the staff member's assignments
func (a *App) UnassignServiceUser(user database.User, serviceUserID int) error {
	su := database.ServiceUser{Model: database.Model{ID: serviceUserID}}

	if err := a.DB.Model(&user).Association("ServiceUsers").Delete(&su); err != nil {
		return pkgErrors.Wrap(err, "deleting assignment")
	}

	return nil
}

// visibleScope restricts a service user query to the ones the staff member can see
func visibleScope(user database.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if database.SeesAllServiceUsers(user.Role) {
			return db
		}

		return db.Where("service_users.id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Table("staff_assignments").
				Select("service_user_id").
				Where("user_id = ?", user.ID))
	}
}

// VisibleServiceUsers returns the service users the staff member can see,
// ordered by name. A non-empty query filters by name.
func (a *App) VisibleServiceUsers(user database.User, query string) ([]database.ServiceUser, error) {
	var ret []database.ServiceUser

	conn := a.DB.Model(&database.ServiceUser{}).Scopes(visibleScope(user))
	if q := strings.TrimSpace(query); q != "" {
		conn = conn.Where("LOWER(service_users.full_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	if err := conn.Order("service_users.full_name ASC").Order("service_users.id ASC").Find(&ret).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding service users")
	}

	return ret, nil
}

// CanAccessServiceUser reports whether the staff member can see the service
// user. A service user that does not exist is not accessible.
func (a *App) CanAccessServiceUser(user database.User, serviceUserID int) (bool, error) {
	var count int64

	err := a.DB.Model(&database.ServiceUser{}).
		Scopes(visibleScope(user)).
		Where("service_users.id = ?", serviceUserID).
		Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(err, "counting visible service users")
	}

	return count > 0, nil
}
