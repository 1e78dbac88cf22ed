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

// Package operations holds reads that combine queries with permission checks
package operations

import (
	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"github.com/raynetcare/raynetcare/pkg/server/permissions"
	"gorm.io/gorm"
)

// GetNote retrieves a note for the given user. ok is false when the note
// does not exist or the user cannot see it.
func GetNote(db *gorm.DB, id int, user *database.User) (database.CommunicationNote, bool, error) {
	zeroNote := database.CommunicationNote{}
	if id <= 0 || user == nil {
		return zeroNote, false, nil
	}

	var note database.CommunicationNote
	err := db.Preload("CreatedBy").Where("id = ?", id).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zeroNote, false, nil
	} else if err != nil {
		return zeroNote, false, errors.Wrap(err, "finding note")
	}

	viewer := *user
	if !database.SeesAllServiceUsers(viewer.Role) {
		if err := db.Model(&viewer).Association("ServiceUsers").Find(&viewer.ServiceUsers); err != nil {
			return zeroNote, false, errors.Wrap(err, "finding assignments")
		}
	}

	if ok := permissions.ViewNote(&viewer, note); !ok {
		return zeroNote, false, nil
	}

	return note, true, nil
}
