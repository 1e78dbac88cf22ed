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

// Package outbox queues notes written while offline and pushes them to the
// server once connectivity returns
package outbox

// Note is a communication note written in the field. The outbox treats it as
// an opaque record; the JSON field names are the ones the server reads.
type Note struct {
	ClientUID     string `json:"client_uid"`
	ServiceUserID int    `json:"service_user_id"`
	VisitType     string `json:"visit_type"`
	NoteText      string `json:"note_text"`
	ConcernFlag   bool   `json:"concern_flag"`
	CreatedAt     int64  `json:"created_at"`
}

// NewNote constructs a note with the given data
func NewNote(clientUID string, serviceUserID int, visitType, text string, concern bool, createdAt int64) Note {
	return Note{
		ClientUID:     clientUID,
		ServiceUserID: serviceUserID,
		VisitType:     visitType,
		NoteText:      text,
		ConcernFlag:   concern,
		CreatedAt:     createdAt,
	}
}
