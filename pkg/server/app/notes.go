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
	"fmt"
	"strings"
	"unicode/utf8"

	pkgErrors "github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"gorm.io/gorm"
)

const (
	// DefaultNotesLimit is the number of notes listed when no limit is given
	DefaultNotesLimit = 50
	// MaxNotesLimit is the largest number of notes listed at once
	MaxNotesLimit = 200
)

// PushNote is a note queued offline on a client
type PushNote struct {
	ClientUID     string `json:"client_uid"`
	ServiceUserID int    `json:"service_user_id"`
	VisitType     string `json:"visit_type"`
	NoteText      string `json:"note_text"`
	ConcernFlag   bool   `json:"concern_flag"`
	CreatedAt     int64  `json:"created_at"`
}

// PushResult is the outcome of a batch of pushed notes
type PushResult struct {
	Saved  int      `json:"saved"`
	Errors []string `json:"errors"`
}

// CreateNote stores a communication note written by the staff member
func (a *App) CreateNote(user database.User, n PushNote) (database.CommunicationNote, error) {
	visitType := strings.TrimSpace(n.VisitType)
	text := strings.TrimSpace(n.NoteText)
	clientUID := strings.TrimSpace(n.ClientUID)

	if text == "" {
		return database.CommunicationNote{}, ErrNoteTextRequired
	}
	if utf8.RuneCountInString(visitType) > database.MaxVisitTypeLength {
		return database.CommunicationNote{}, ErrVisitTypeTooLong
	}
	if len(clientUID) > database.MaxClientUIDLength {
		return database.CommunicationNote{}, ErrClientUIDTooLong
	}

	note := database.CommunicationNote{
		ServiceUserID:   n.ServiceUserID,
		CreatedByID:     user.ID,
		VisitType:       visitType,
		NoteText:        text,
		ConcernFlag:     n.ConcernFlag,
		ClientUID:       clientUID,
		ClientCreatedAt: n.CreatedAt,
	}
	if err := a.DB.Create(&note).Error; err != nil {
		return note, pkgErrors.Wrap(err, "inserting note")
	}

	return note, nil
}

// hasClientUID reports whether a note with the given client uid is already stored
func (a *App) hasClientUID(clientUID string) (bool, error) {
	var note database.CommunicationNote
	err := a.DB.Select("id").Where("client_uid = ?", clientUID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	} else if err != nil {
		return false, pkgErrors.Wrap(err, "finding note by client uid")
	}

	return true, nil
}

func noteError(idx int, err error) string {
	return fmt.Sprintf("Note %d: %s", idx, err.Error())
}

// PushNotes stores a batch of notes queued offline. Each note is handled on
// its own: a failing note is reported by its index in the batch and does not
// stop the others. A note whose client uid is already stored is skipped
// without an error so that a client can safely push the same batch again.
func (a *App) PushNotes(user database.User, notes []PushNote) PushResult {
	ret := PushResult{Errors: []string{}}

	for idx, n := range notes {
		ok, err := a.CanAccessServiceUser(user, n.ServiceUserID)
		if err != nil {
			ret.Errors = append(ret.Errors, noteError(idx, err))
			continue
		}
		if !ok {
			ret.Errors = append(ret.Errors, noteError(idx, ErrForbiddenServiceUser))
			continue
		}

		if uid := strings.TrimSpace(n.ClientUID); uid != "" {
			exists, err := a.hasClientUID(uid)
			if err != nil {
				ret.Errors = append(ret.Errors, noteError(idx, err))
				continue
			}
			if exists {
				continue
			}
		}

		if _, err := a.CreateNote(user, n); err != nil {
			ret.Errors = append(ret.Errors, noteError(idx, err))
			continue
		}

		ret.Saved++
	}

	return ret
}

// NotesFilter narrows down the listed notes
type NotesFilter struct {
	ServiceUserID int
	Concern       *bool
	Limit         int
}

func (f NotesFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultNotesLimit
	}
	if f.Limit > MaxNotesLimit {
		return MaxNotesLimit
	}

	return f.Limit
}

// ListNotes returns the most recent notes about service users the staff
// member can see, newest first
func (a *App) ListNotes(user database.User, f NotesFilter) ([]database.CommunicationNote, error) {
	if f.ServiceUserID != 0 {
		ok, err := a.CanAccessServiceUser(user, f.ServiceUserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrForbiddenServiceUser
		}
	}

	conn := a.DB.Model(&database.CommunicationNote{})
	if f.ServiceUserID != 0 {
		conn = conn.Where("service_user_id = ?", f.ServiceUserID)
	} else if !database.SeesAllServiceUsers(user.Role) {
		conn = conn.Where("service_user_id IN (?)",
			a.DB.Table("staff_assignments").Select("service_user_id").Where("user_id = ?", user.ID))
	}
	if f.Concern != nil {
		conn = conn.Where("concern_flag = ?", *f.Concern)
	}

	var ret []database.CommunicationNote
	err := conn.Preload("CreatedBy").Order("created_at DESC").Order("id DESC").Limit(f.limit()).Find(&ret).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding notes")
	}

	return ret, nil
}
