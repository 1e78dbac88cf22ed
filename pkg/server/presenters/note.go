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
	"time"

	"github.com/raynetcare/raynetcare/pkg/server/database"
)

// Note is a result of PresentNote
type Note struct {
	ID              int       `json:"id"`
	ServiceUserID   int       `json:"service_user_id"`
	VisitType       string    `json:"visit_type"`
	NoteText        string    `json:"note_text"`
	ConcernFlag     bool      `json:"concern_flag"`
	ClientUID       string    `json:"client_uid,omitempty"`
	ClientCreatedAt int64     `json:"client_created_at,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	CreatedBy       NoteUser  `json:"created_by"`
}

// NoteUser is the author nested in a Note
type NoteUser struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
}

// PresentNote presents note
func PresentNote(note database.CommunicationNote) Note {
	return Note{
		ID:              note.ID,
		ServiceUserID:   note.ServiceUserID,
		VisitType:       note.VisitType,
		NoteText:        note.NoteText,
		ConcernFlag:     note.ConcernFlag,
		ClientUID:       note.ClientUID,
		ClientCreatedAt: note.ClientCreatedAt,
		CreatedAt:       FormatTS(note.CreatedAt),
		CreatedBy: NoteUser{
			UUID:     note.CreatedBy.UUID,
			Username: note.CreatedBy.Username,
		},
	}
}

// PresentNotes presents notes
func PresentNotes(notes []database.CommunicationNote) []Note {
	ret := []Note{}

	for _, note := range notes {
		ret = append(ret, PresentNote(note))
	}

	return ret
}
