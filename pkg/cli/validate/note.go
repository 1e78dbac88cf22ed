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

// Package validate checks user input before it is queued
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// MaxVisitTypeLength is the longest visit type the server accepts
const MaxVisitTypeLength = 50

// ErrServiceUserID is an error for a missing or non-positive service user id
var ErrServiceUserID = errors.New("The service user id must be a positive number")

// ErrNoteTextEmpty is an error for a note without text
var ErrNoteTextEmpty = errors.New("The note text is empty")

// ErrVisitTypeMultiline is an error for a visit type that has linebreaks
var ErrVisitTypeMultiline = errors.New("The visit type contains multiple lines")

// ErrVisitTypeTooLong is an error for a visit type over MaxVisitTypeLength characters
var ErrVisitTypeTooLong = errors.New("The visit type is too long")

// ServiceUserID validates a service user id
func ServiceUserID(id int) error {
	if id <= 0 {
		return ErrServiceUserID
	}

	return nil
}

// NoteText validates the body of a note
func NoteText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNoteTextEmpty
	}

	return nil
}

// VisitType validates a visit type. An empty visit type is allowed.
func VisitType(visitType string) error {
	if strings.ContainsAny(visitType, "\r\n") {
		return ErrVisitTypeMultiline
	}

	if utf8.RuneCountInString(strings.TrimSpace(visitType)) > MaxVisitTypeLength {
		return ErrVisitTypeTooLong
	}

	return nil
}

// Note validates every field of a note before it is queued
func Note(serviceUserID int, visitType, text string) error {
	if err := ServiceUserID(serviceUserID); err != nil {
		return err
	}
	if err := VisitType(visitType); err != nil {
		return err
	}
	if err := NoteText(text); err != nil {
		return err
	}

	return nil
}
