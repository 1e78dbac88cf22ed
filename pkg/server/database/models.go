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

package database

import (
	"time"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// User is a staff member who writes communication notes
type User struct {
	Model
	UUID         string        `json:"uuid" gorm:"type:text;uniqueIndex"`
	Username     string        `json:"username" gorm:"uniqueIndex;not null"`
	Password     string        `json:"-"`
	Role         string        `json:"role" gorm:"default:STAFF"`
	LastLoginAt  *time.Time    `json:"-"`
	ServiceUsers []ServiceUser `json:"-" gorm:"many2many:staff_assignments;"`
}

// ServiceUser is a person receiving care
type ServiceUser struct {
	Model
	FullName    string     `json:"full_name" gorm:"index;not null"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     string     `json:"address"`
	KeyNotes    string     `json:"key_notes"`
}

// CommunicationNote is a note written by a staff member about a service user
type CommunicationNote struct {
	Model
	ServiceUserID int         `json:"service_user_id" gorm:"index;not null"`
	ServiceUser   ServiceUser `json:"-"`
	CreatedByID   int         `json:"created_by_id" gorm:"index;not null"`
	CreatedBy     User        `json:"-" gorm:"foreignKey:CreatedByID"`
	VisitType     string      `json:"visit_type" gorm:"size:50"`
	NoteText      string      `json:"note_text" gorm:"not null"`
	ConcernFlag   bool        `json:"concern_flag" gorm:"default:false"`
	ClientUID     string      `json:"client_uid" gorm:"size:64;index"`
	// ClientCreatedAt is when the note was written on the client, in unix milliseconds
	ClientCreatedAt int64 `json:"client_created_at"`
}

// Session represents a user session
type Session struct {
	Model
	UserID     int    `gorm:"index"`
	Key        string `gorm:"uniqueIndex"`
	LastUsedAt time.Time
	ExpiresAt  time.Time `gorm:"index"`
}
