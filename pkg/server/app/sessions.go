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

	pkgErrors "github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/crypt"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"gorm.io/gorm"
)

// CreateSession returns a new session for the user of the given id
func (a *App) CreateSession(userID int) (database.Session, error) {
	key, err := crypt.GetRandomStr(32)
	if err != nil {
		return database.Session{}, pkgErrors.Wrap(err, "generating key")
	}

	now := a.Clock.Now()
	session := database.Session{
		UserID:     userID,
		Key:        key,
		LastUsedAt: now,
		ExpiresAt:  now.Add(a.sessionTTL()),
	}

	if err := a.DB.Save(&session).Error; err != nil {
		return database.Session{}, pkgErrors.Wrap(err, "saving session")
	}

	return session, nil
}

// GetSessionUser returns the unexpired session of the given key and its user.
// The boolean is false if no such session exists.
func (a *App) GetSessionUser(key string) (database.Session, database.User, bool, error) {
	var session database.Session
	var user database.User

	if key == "" {
		return session, user, false, nil
	}

	err := a.DB.Where("key = ?", key).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session, user, false, nil
	} else if err != nil {
		return session, user, false, pkgErrors.Wrap(err, "finding session")
	}

	if session.ExpiresAt.Before(a.Clock.Now()) {
		return session, user, false, nil
	}

	err = a.DB.Where("id = ?", session.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session, user, false, nil
	} else if err != nil {
		return session, user, false, pkgErrors.Wrap(err, "finding user from session")
	}

	return session, user, true, nil
}

// TouchSession records the use of the session
func (a *App) TouchSession(session database.Session) error {
	if err := a.DB.Model(&session).Update("last_used_at", a.Clock.Now()).Error; err != nil {
		return pkgErrors.Wrap(err, "updating last_used_at")
	}

	return nil
}

// DeleteUserSessions deletes all existing sessions for the given user. It effectively
// invalidates all existing sessions.
func (a *App) DeleteUserSessions(db *gorm.DB, userID int) error {
	if err := db.Where("user_id = ?", userID).Delete(&database.Session{}).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting sessions")
	}

	return nil
}

// DeleteSession deletes the session that match the given info
func (a *App) DeleteSession(sessionKey string) error {
	if err := a.DB.Where("key = ?", sessionKey).Delete(&database.Session{}).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting the session")
	}

	return nil
}

// DeleteExpiredSessions removes every session past its expiry and returns
// how many were removed
func (a *App) DeleteExpiredSessions() (int64, error) {
	res := a.DB.Where("expires_at < ?", a.Clock.Now()).Delete(&database.Session{})
	if err := res.Error; err != nil {
		return 0, pkgErrors.Wrap(err, "deleting expired sessions")
	}

	return res.RowsAffected, nil
}
