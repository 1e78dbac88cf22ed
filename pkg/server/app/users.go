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

	pkgErrors "github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"github.com/raynetcare/raynetcare/pkg/server/helpers"
	"github.com/raynetcare/raynetcare/pkg/server/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrUserHasExistingNotes is an error for removing a staff member who wrote notes
var ErrUserHasExistingNotes = errors.New("user has existing notes")

// TouchLastLoginAt updates the last login timestamp
func (a *App) TouchLastLoginAt(user database.User, tx *gorm.DB) error {
	t := a.Clock.Now()
	if err := tx.Model(&user).Update("last_login_at", &t).Error; err != nil {
		return pkgErrors.Wrap(err, "updating last_login_at")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", pkgErrors.Wrap(err, "hashing password")
	}

	return string(hashed), nil
}

// CreateStaff creates a staff member with the given role
func (a *App) CreateStaff(username, password, role string) (database.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return database.User{}, ErrUsernameRequired
	}
	if role == "" {
		role = database.RoleStaff
	}
	if !database.IsValidRole(role) {
		return database.User{}, ErrInvalidRole
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return database.User{}, err
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.User{}, err
	}

	tx := a.DB.Begin()

	var count int64
	if err := tx.Model(database.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "counting user")
	}
	if count > 0 {
		tx.Rollback()
		return database.User{}, ErrDuplicateUsername
	}

	user := database.User{
		UUID:     uuid,
		Username: username,
		Password: hashedPassword,
		Role:     role,
	}
	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "saving user")
	}

	if err := tx.Commit().Error; err != nil {
		return database.User{}, pkgErrors.Wrap(err, "committing transaction")
	}

	return user, nil
}

// GetUserByUsername finds a staff member by username
func (a *App) GetUserByUsername(username string) (*database.User, error) {
	var user database.User
	err := a.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, pkgErrors.Wrap(err, "finding user")
	}

	return &user, nil
}

// Authenticate authenticates a staff member
func (a *App) Authenticate(username, password string) (*database.User, error) {
	user, err := a.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, ErrLoginInvalid
	}

	return user, nil
}

// SignIn signs in a user
func (a *App) SignIn(user *database.User) (*database.Session, error) {
	err := a.TouchLastLoginAt(*user, a.DB)
	if err != nil {
		log.ErrorWrap(err, "touching login timestamp")
	}

	session, err := a.CreateSession(user.ID)
	if err != nil {
		return nil, pkgErrors.Wrap(err, "creating session")
	}

	return &session, nil
}

// UpdateUserPassword replaces the password of the user and signs out all of
// their sessions
func UpdateUserPassword(db *gorm.DB, user *database.User, password string) error {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return err
	}

	tx := db.Begin()

	if err := tx.Model(user).Update("password", hashedPassword).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "updating password")
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&database.Session{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting sessions")
	}

	if err := tx.Commit().Error; err != nil {
		return pkgErrors.Wrap(err, "committing transaction")
	}

	return nil
}

// RemoveUser removes a staff member who has not written any notes
func (a *App) RemoveUser(username string) error {
	user, err := a.GetUserByUsername(username)
	if err != nil {
		return err
	}

	var noteCount int64
	if err := a.DB.Model(&database.CommunicationNote{}).Where("created_by_id = ?", user.ID).Count(&noteCount).Error; err != nil {
		return pkgErrors.Wrap(err, "counting notes")
	}
	if noteCount > 0 {
		return pkgErrors.Wrapf(ErrUserHasExistingNotes, "%d notes", noteCount)
	}

	tx := a.DB.Begin()

	if err := tx.Model(user).Association("ServiceUsers").Clear(); err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "clearing assignments")
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&database.Session{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting sessions")
	}
	if err := tx.Delete(user).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user")
	}

	if err := tx.Commit().Error; err != nil {
		return pkgErrors.Wrap(err, "committing transaction")
	}

	return nil
}
